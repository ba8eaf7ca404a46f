package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Player-facing collections.
const (
	usersCollection      = "users"
	charactersCollection = "characters"
	friendsCollection    = "friends"
)

func (d *Deps) user() Module {
	return d.module("user", "/api/user", "User API is running", func(r chi.Router) {
		r.Get("/{id}/profile", func(w http.ResponseWriter, req *http.Request) {
			doc, err := d.Store.Get(req.Context(), usersCollection, chi.URLParam(req, "id"))
			if err != nil {
				writeStoreError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, doc)
		})
	})
}

func (d *Deps) character() Module {
	return d.module("character", "/api/character", "Character API is running", func(r chi.Router) {
		r.Get("/{id}", func(w http.ResponseWriter, req *http.Request) {
			doc, err := d.Store.Get(req.Context(), charactersCollection, chi.URLParam(req, "id"))
			if err != nil {
				writeStoreError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, doc)
		})
	})
}

func (d *Deps) friends() Module {
	return d.module("friends", "/api/friends", "Friends API is running", func(r chi.Router) {
		r.Get("/{id}", func(w http.ResponseWriter, req *http.Request) {
			doc, err := d.Store.Get(req.Context(), friendsCollection, chi.URLParam(req, "id"))
			if err != nil {
				writeStoreError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, doc)
		})
	})
}
