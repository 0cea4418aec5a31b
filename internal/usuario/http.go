package usuario

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	httpmiddleware "github.com/conselhodigital/tutelar/internal/http/middleware"
	"github.com/conselhodigital/tutelar/internal/upload"
)

const fotoMaxMemory = 5 << 20

// Handler expõe login e as rotas de perfil.
type Handler struct {
	service *Service
	uploads *upload.Saver
}

func NewHandler(service *Service, uploads *upload.Saver) *Handler {
	return &Handler{service: service, uploads: uploads}
}

// RegisterPublicRoutes monta as rotas sem autenticação.
func (h *Handler) RegisterPublicRoutes(r chi.Router) {
	r.Post("/login", h.handleLogin)
}

// RegisterRoutes monta as rotas autenticadas de perfil.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/users/me", func(r chi.Router) {
		r.Get("/", h.handleMe)
		r.Put("/", h.handleUpdateMe)
	})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "corpo JSON inválido")
		return
	}

	result, err := h.service.Login(r.Context(), body.Username, body.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "AUTH", "usuário ou senha inválidos")
			return
		}
		writeInternalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	perfil, err := h.service.Me(r.Context(), httpmiddleware.GetUserID(r.Context()))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "usuário não encontrado")
			return
		}
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, perfil)
}

// handleUpdateMe recebe multipart: nomeCompleto e telefone são aplicados
// apenas quando presentes no formulário; a foto só muda quando um
// arquivo válido foi enviado — e é validada antes de tocar no registro.
func (h *Handler) handleUpdateMe(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(fotoMaxMemory); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "dados multipart inválidos")
		return
	}

	var patch PerfilPatch
	form := r.MultipartForm
	if vals, ok := form.Value["nomeCompleto"]; ok && len(vals) > 0 {
		patch.NomeCompleto = &vals[0]
	}
	if vals, ok := form.Value["telefone"]; ok && len(vals) > 0 {
		patch.Telefone = &vals[0]
	}

	if files := form.File["foto"]; len(files) > 0 {
		ref, err := h.uploads.Save(files[0], "foto", upload.PolicyFoto)
		if err != nil {
			if errors.Is(err, upload.ErrValidation) {
				writeError(w, http.StatusBadRequest, "VALIDATION", err.Error())
				return
			}
			writeInternalError(w, err)
			return
		}
		patch.Foto = &ref
	}

	perfil, err := h.service.UpdateProfile(r.Context(), httpmiddleware.GetUserID(r.Context()), patch)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "usuário não encontrado")
			return
		}
		writeInternalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, perfil)
}
