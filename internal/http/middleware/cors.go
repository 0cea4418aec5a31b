package middleware

import (
	"net/http"
	"strings"
)

// CORS aplica política baseada em ALLOW_ORIGINS. Lista vazia libera
// qualquer origem (deploy de escritório único atrás de rede local);
// com entradas, só origens com correspondência exata são aceitas.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	allowExact := make(map[string]struct{}, len(allowedOrigins))
	for _, entry := range allowedOrigins {
		if e := strings.TrimSpace(entry); e != "" {
			allowExact[e] = struct{}{}
		}
	}
	allowAll := len(allowExact) == 0

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			_, allowed := allowExact[origin]
			if origin != "" && (allowAll || allowed) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Vary", "Origin")
				w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
				w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
