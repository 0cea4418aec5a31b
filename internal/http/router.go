package http

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/conselhodigital/tutelar/internal/config"
	"github.com/conselhodigital/tutelar/internal/documento"
	httpmiddleware "github.com/conselhodigital/tutelar/internal/http/middleware"
	"github.com/conselhodigital/tutelar/internal/registro"
	"github.com/conselhodigital/tutelar/internal/upload"
	"github.com/conselhodigital/tutelar/internal/usuario"
)

// Prefixo público sob o qual os anexos são servidos e referenciados.
const UploadsPrefix = "/uploads"

// Coleções de esquema aberto expostas como CRUD JSON.
var colecoes = []string{"recepcao", "atendimentos", "casos"}

// NewRouter devolve o roteador configurado com todas as rotas da API.
//
// A escolha do parser de corpo é por rota: handlers JSON usam
// json.Decoder, handlers multipart chamam ParseMultipartForm. Não existe
// parser global — um corpo multipart nunca passa pelo decoder JSON.
func NewRouter(cfg *config.Config, usuarios *usuario.Service) (http.Handler, error) {
	uploads := upload.NewSaver(cfg.UploadDir, UploadsPrefix)

	usuarioHandler := usuario.NewHandler(usuarios, uploads)

	documentoRepo, err := documento.NewRepository(cfg.DataDir, uploads)
	if err != nil {
		return nil, fmt.Errorf("documentos: %w", err)
	}
	documentoHandler := documento.NewHandler(documentoRepo, uploads)

	registroHandlers := make(map[string]*registro.Handler, len(colecoes))
	for _, nome := range colecoes {
		repo, err := registro.NewRepository(cfg.DataDir, nome)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", nome, err)
		}
		registroHandlers[nome] = registro.NewHandler(repo)
	}

	publicLimiter := httpmiddleware.NewRateLimiter(cfg.RateLimitPublic.RequestsPerSecond, cfg.RateLimitPublic.Burst)
	authLimiter := httpmiddleware.NewRateLimiter(cfg.RateLimitAuth.RequestsPerSecond, cfg.RateLimitAuth.Burst)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(httpmiddleware.Logging)
	r.Use(httpmiddleware.Recover)
	r.Use(httpmiddleware.CORS(cfg.AllowOrigins))

	r.Route("/api", func(api chi.Router) {
		api.Group(func(public chi.Router) {
			public.Use(httpmiddleware.IPRateLimit(publicLimiter))

			public.Get("/health", handleHealth)
			usuarioHandler.RegisterPublicRoutes(public)
		})

		api.Group(func(private chi.Router) {
			private.Use(httpmiddleware.Auth(usuarios.JWT()))
			private.Use(httpmiddleware.UserRateLimit(authLimiter))

			usuarioHandler.RegisterRoutes(private)

			for _, nome := range colecoes {
				handler := registroHandlers[nome]
				private.Route("/"+nome, func(r chi.Router) {
					handler.RegisterRoutes(r)
				})
			}

			private.Route("/documentos", func(r chi.Router) {
				documentoHandler.RegisterRoutes(r)
			})
		})
	})

	// Anexos servidos estaticamente pela mesma referência gravada nos
	// registros.
	r.Handle(UploadsPrefix+"/*", http.StripPrefix(UploadsPrefix+"/",
		http.FileServer(http.Dir(cfg.UploadDir))))

	return r, nil
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
