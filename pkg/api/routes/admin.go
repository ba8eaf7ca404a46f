package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// admin mounts operational endpoints. The collection listing doubles as a
// reachability check against the live store.
func (d *Deps) admin() Module {
	return d.module("admin", "/api/admin", "Admin API is running", func(r chi.Router) {
		r.Get("/collections", func(w http.ResponseWriter, req *http.Request) {
			collections, err := d.Store.ListCollections(req.Context())
			if err != nil {
				writeStoreError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{
				"collections": collections,
				"count":       len(collections),
			})
		})
	})
}
