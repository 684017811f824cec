package routing_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/km-arc/go-uploads/framework/routing"
)

func hit(t *testing.T, r *routing.Router, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func ok(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func TestRouter_Verbs(t *testing.T) {
	r := routing.New()
	r.Get("/a", ok)
	r.Post("/a", ok)
	r.Put("/a", ok)
	r.Delete("/a", ok)

	for _, m := range []string{"GET", "POST", "PUT", "DELETE"} {
		if rec := hit(t, r, m, "/a"); rec.Code != http.StatusOK {
			t.Errorf("%s /a: got %d", m, rec.Code)
		}
	}
	if rec := hit(t, r, "PATCH", "/a"); rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("PATCH /a: got %d want 405", rec.Code)
	}
}

func TestRouter_Prefix(t *testing.T) {
	r := routing.New()
	r.Prefix("/api/v1", func(api *routing.Router) {
		api.Get("/ping", ok)
	})

	if rec := hit(t, r, "GET", "/api/v1/ping"); rec.Code != http.StatusOK {
		t.Errorf("prefixed route: got %d", rec.Code)
	}
	if rec := hit(t, r, "GET", "/ping"); rec.Code != http.StatusNotFound {
		t.Errorf("unprefixed route should 404, got %d", rec.Code)
	}
}

func TestRouter_Param(t *testing.T) {
	r := routing.New()
	r.Get("/users/{id}", func(w http.ResponseWriter, req *http.Request) {
		_, _ = w.Write([]byte(routing.Param(req, "id")))
	})

	rec := hit(t, r, "GET", "/users/42")
	if rec.Body.String() != "42" {
		t.Errorf("param: got %q", rec.Body.String())
	}
}

func TestRouter_GroupMiddleware(t *testing.T) {
	r := routing.New()
	r.Get("/open", ok)
	r.Group(func(protected *routing.Router) {
		protected.Middleware(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				if req.Header.Get("Authorization") == "" {
					w.WriteHeader(http.StatusUnauthorized)
					return
				}
				next.ServeHTTP(w, req)
			})
		})
		protected.Get("/secret", ok)
	})

	if rec := hit(t, r, "GET", "/open"); rec.Code != http.StatusOK {
		t.Errorf("open route: got %d", rec.Code)
	}
	if rec := hit(t, r, "GET", "/secret"); rec.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated secret: got %d want 401", rec.Code)
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/secret", nil)
	req.Header.Set("Authorization", "Bearer token")
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("authenticated secret: got %d", rec.Code)
	}
}

func TestRouter_Any(t *testing.T) {
	r := routing.New()
	r.Any("/webhook", ok)

	for _, m := range []string{"GET", "POST", "PUT", "PATCH", "DELETE"} {
		if rec := hit(t, r, m, "/webhook"); rec.Code != http.StatusOK {
			t.Errorf("%s /webhook: got %d", m, rec.Code)
		}
	}
}
