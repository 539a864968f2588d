package routes_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/cmdreview/pkg/routes"
)

func status(code int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(code)
	}
}

func deny(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func TestRegister(t *testing.T) {
	mux := http.NewServeMux()

	routes.Register(mux, routes.Group{
		Prefix: "/reports",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/stats", Handler: status(http.StatusOK)},
			{Method: "GET", Pattern: "/stats/{id}", Handler: status(http.StatusOK), Middleware: []func(http.Handler) http.Handler{deny}},
		},
		Children: []routes.Group{
			{
				Prefix:     "/admin",
				Middleware: []func(http.Handler) http.Handler{deny},
				Routes: []routes.Route{
					{Method: "GET", Pattern: "/overview", Handler: status(http.StatusOK)},
				},
			},
		},
	})

	tests := []struct {
		name   string
		method string
		path   string
		auth   bool
		want   int
	}{
		{"open route", "GET", "/reports/stats", false, http.StatusOK},
		{"route middleware denies", "GET", "/reports/stats/7", false, http.StatusUnauthorized},
		{"route middleware allows", "GET", "/reports/stats/7", true, http.StatusOK},
		{"child group denies", "GET", "/reports/admin/overview", false, http.StatusUnauthorized},
		{"child group allows", "GET", "/reports/admin/overview", true, http.StatusOK},
		{"wrong method", "POST", "/reports/stats", false, http.StatusMethodNotAllowed},
		{"unknown path", "GET", "/reports/unknown", false, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.auth {
				req.Header.Set("Authorization", "Bearer x")
			}
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Errorf("%s %s: got %d, want %d", tt.method, tt.path, rec.Code, tt.want)
			}
		})
	}
}
