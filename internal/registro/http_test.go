package registro

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	httpmiddleware "github.com/conselhodigital/tutelar/internal/http/middleware"
)

func newTestRouter(t *testing.T) chi.Router {
	t.Helper()
	repo, err := NewRepository(t.TempDir(), "atendimentos")
	if err != nil {
		t.Fatalf("repositório: %v", err)
	}

	r := chi.NewRouter()
	NewHandler(repo).RegisterRoutes(r)
	return r
}

func doRequest(t *testing.T, router chi.Router, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req = withAuth(req)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func withAuth(req *http.Request) *http.Request {
	ctx := req.Context()
	ctx = context.WithValue(ctx, httpmiddleware.ContextKeyUserID, int64(1))
	ctx = context.WithValue(ctx, httpmiddleware.ContextKeyUsername, "admin")
	ctx = context.WithValue(ctx, httpmiddleware.ContextKeyRole, "admin")
	return req.WithContext(ctx)
}

func TestCRUDFlow(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/", map[string]any{
		"crianca":  "J.S.",
		"situacao": "aberta",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("create: esperado 200, veio %d (%s)", rec.Code, rec.Body)
	}

	var created map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create: %v", err)
	}
	if created["id"].(float64) != 1 {
		t.Errorf("id esperado 1, veio %v", created["id"])
	}
	if created["createdBy"].(float64) != 1 {
		t.Errorf("createdBy esperado 1, veio %v", created["createdBy"])
	}

	rec = doRequest(t, router, http.MethodGet, "/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list: esperado 200, veio %d", rec.Code)
	}
	var listed []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("list: esperado 1 registro, veio %d", len(listed))
	}

	rec = doRequest(t, router, http.MethodPut, "/1", map[string]any{"situacao": "encerrada"})
	if rec.Code != http.StatusOK {
		t.Fatalf("update: esperado 200, veio %d", rec.Code)
	}
	var updated map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("decode update: %v", err)
	}
	if updated["crianca"] != "J.S." {
		t.Errorf("merge deveria preservar campos ausentes do patch: %v", updated)
	}
	if updated["situacao"] != "encerrada" {
		t.Errorf("situacao esperada encerrada, veio %v", updated["situacao"])
	}
	if updated["updatedAt"] == nil {
		t.Error("updatedAt deveria ser carimbado na atualização")
	}

	rec = doRequest(t, router, http.MethodDelete, "/1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: esperado 200, veio %d", rec.Code)
	}

	rec = doRequest(t, router, http.MethodGet, "/", nil)
	var after []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &after); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(after) != 0 {
		t.Errorf("coleção deveria estar vazia, veio %d registros", len(after))
	}
}

func TestUnknownIDReturns404(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
	}{
		{"update", http.MethodPut, "/42", map[string]any{"situacao": "x"}},
		{"delete", http.MethodDelete, "/42", nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(t, router, tc.method, tc.path, tc.body)
			if rec.Code != http.StatusNotFound {
				t.Fatalf("esperado 404, veio %d", rec.Code)
			}
		})
	}
}

func TestCreateWithInvalidBody(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString("{quebrado"))
	req = withAuth(req)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("esperado 400, veio %d", rec.Code)
	}
}
