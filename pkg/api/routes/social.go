package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Social collections.
const (
	guildsCollection      = "guilds"
	leaderboardCollection = "leaderboard"
	mailCollection        = "mail"
)

func (d *Deps) guild() Module {
	return d.module("guild", "/api/guild", "Guild API is running", func(r chi.Router) {
		r.Get("/{id}", func(w http.ResponseWriter, req *http.Request) {
			doc, err := d.Store.Get(req.Context(), guildsCollection, chi.URLParam(req, "id"))
			if err != nil {
				writeStoreError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, doc)
		})
	})
}

func (d *Deps) leaderboard() Module {
	return d.module("leaderboard", "/api/leaderboard", "Leaderboard API is running", func(r chi.Router) {
		r.Get("/global", func(w http.ResponseWriter, req *http.Request) {
			doc, err := d.Store.Get(req.Context(), leaderboardCollection, "global")
			if err != nil {
				writeStoreError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, doc)
		})
	})
}

func (d *Deps) chat() Module {
	return d.module("chat", "/api/chat", "Chat API is running", nil)
}

func (d *Deps) mail() Module {
	return d.module("mail", "/api/mail", "Mail API is running", func(r chi.Router) {
		r.Get("/{id}", func(w http.ResponseWriter, req *http.Request) {
			doc, err := d.Store.Get(req.Context(), mailCollection, chi.URLParam(req, "id"))
			if err != nil {
				writeStoreError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, doc)
		})
	})
}
