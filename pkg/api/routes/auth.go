package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// auth mounts the authentication group. Session issuing lives behind the
// identity provider; this surface exposes provider discovery.
func (d *Deps) auth() Module {
	return d.module("auth", "/api/auth", "Auth API is running", func(r chi.Router) {
		r.Get("/providers", func(w http.ResponseWriter, req *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{
				"providers": []string{"password", "token"},
			})
		})
	})
}
