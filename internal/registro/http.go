package registro

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	httpmiddleware "github.com/conselhodigital/tutelar/internal/http/middleware"
)

// Handler expõe o CRUD JSON de uma coleção.
type Handler struct {
	repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// RegisterRoutes monta as rotas da coleção no router recebido.
// O corpo é sempre JSON; rotas multipart vivem em outros módulos.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.handleList)
	r.Post("/", h.handleCreate)
	r.Put("/{id}", h.handleUpdate)
	r.Delete("/{id}", h.handleDelete)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	records, err := h.repo.List(r.Context())
	if err != nil {
		writeInternalError(w, err)
		return
	}
	if records == nil {
		records = []Registro{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	fields, ok := decodeBody(w, r)
	if !ok {
		return
	}

	created, err := h.repo.Create(r.Context(), fields, httpmiddleware.GetUserID(r.Context()))
	if err != nil {
		writeInternalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, created)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	fields, ok := decodeBody(w, r)
	if !ok {
		return
	}

	updated, err := h.repo.Update(r.Context(), id, fields)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "registro não encontrado")
			return
		}
		writeInternalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "registro não encontrado")
			return
		}
		writeInternalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func decodeBody(w http.ResponseWriter, r *http.Request) (Registro, bool) {
	var fields Registro
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&fields); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "corpo JSON inválido")
		return nil, false
	}
	return fields, true
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "id inválido")
		return 0, false
	}
	return id, true
}
