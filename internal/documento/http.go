package documento

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	httpmiddleware "github.com/conselhodigital/tutelar/internal/http/middleware"
	"github.com/conselhodigital/tutelar/internal/upload"
)

const pdfMaxMemory = 10 << 20

// Handler expõe o CRUD multipart de documentos.
type Handler struct {
	repo    *Repository
	uploads *upload.Saver
}

func NewHandler(repo *Repository, uploads *upload.Saver) *Handler {
	return &Handler{repo: repo, uploads: uploads}
}

// RegisterRoutes monta as rotas de documentos. A criação é multipart;
// o corpo nunca passa pelo decoder JSON.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.handleList)
	r.Post("/", h.handleCreate)
	r.Delete("/{id}", h.handleDelete)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	docs, err := h.repo.List(r.Context())
	if err != nil {
		writeInternalError(w, err)
		return
	}
	if docs == nil {
		docs = []Documento{}
	}
	writeJSON(w, http.StatusOK, docs)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(pdfMaxMemory); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "dados multipart inválidos")
		return
	}

	form := r.MultipartForm

	nome := strings.TrimSpace(firstValue(form.Value["nome"]))
	if nome == "" {
		writeError(w, http.StatusBadRequest, "VALIDATION", "nome do documento é obrigatório")
		return
	}

	files := form.File["arquivo"]
	if len(files) == 0 {
		writeError(w, http.StatusBadRequest, "VALIDATION", "arquivo PDF é obrigatório")
		return
	}

	// Validação e gravação do anexo acontecem antes de qualquer mutação
	// da coleção: rejeição não deixa registro órfão.
	ref, err := h.uploads.Save(files[0], "arquivo", upload.PolicyPDF)
	if err != nil {
		if errors.Is(err, upload.ErrValidation) {
			writeError(w, http.StatusBadRequest, "VALIDATION", err.Error())
			return
		}
		writeInternalError(w, err)
		return
	}

	tipo := strings.TrimSpace(firstValue(form.Value["tipo"]))
	if tipo == "" {
		tipo = TipoPadrao
	}

	doc, err := h.repo.Create(r.Context(), Documento{
		Nome:        nome,
		Tipo:        tipo,
		Descricao:   strings.TrimSpace(firstValue(form.Value["descricao"])),
		Arquivo:     ref,
		NomeArquivo: files[0].Filename,
		CreatedBy:   httpmiddleware.GetUserID(r.Context()),
	})
	if err != nil {
		writeInternalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, doc)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "id inválido")
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "documento não encontrado")
			return
		}
		writeInternalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func firstValue(vals []string) string {
	if len(vals) == 0 {
		return ""
	}
	return vals[0]
}
