package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/conselhodigital/tutelar/internal/auth"
)

const testSecret = "segredo-de-teste-com-32-caracteres!"

func protectedHandler(t *testing.T, mgr *auth.JWTManager) http.Handler {
	t.Helper()
	return Auth(mgr)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetUserID(r.Context()) != 3 {
			t.Errorf("userID esperado 3, veio %d", GetUserID(r.Context()))
		}
		if GetUsername(r.Context()) != "admin" {
			t.Errorf("username esperado admin, veio %q", GetUsername(r.Context()))
		}
		if GetRole(r.Context()) != "admin" {
			t.Errorf("role esperada admin, veio %q", GetRole(r.Context()))
		}
		w.WriteHeader(http.StatusOK)
	}))
}

func TestAuthMissingToken(t *testing.T) {
	mgr := auth.NewJWTManager(testSecret, time.Hour)
	handler := Auth(mgr)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler não deveria ser alcançado sem token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("esperado 401, veio %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "token ausente") {
		t.Errorf("mensagem deveria distinguir token ausente: %s", rec.Body)
	}
}

func TestAuthInvalidToken(t *testing.T) {
	mgr := auth.NewJWTManager(testSecret, time.Hour)
	handler := Auth(mgr)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler não deveria ser alcançado com token inválido")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer abc.def.ghi")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("esperado 401, veio %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "token inválido") {
		t.Errorf("mensagem deveria distinguir token inválido: %s", rec.Body)
	}
}

func TestAuthExpiredToken(t *testing.T) {
	expired := auth.NewJWTManager(testSecret, -time.Minute)
	token, err := expired.GenerateAccessToken(3, "admin", "admin")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	mgr := auth.NewJWTManager(testSecret, time.Hour)
	handler := Auth(mgr)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler não deveria ser alcançado com token expirado")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("esperado 401, veio %d", rec.Code)
	}
}

func TestAuthValidTokenInjectsIdentity(t *testing.T) {
	mgr := auth.NewJWTManager(testSecret, time.Hour)
	token, err := mgr.GenerateAccessToken(3, "admin", "admin")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	protectedHandler(t, mgr).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("esperado 200, veio %d", rec.Code)
	}
}
