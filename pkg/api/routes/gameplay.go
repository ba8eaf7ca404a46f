package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Gameplay collections.
const (
	questsCollection       = "quests"
	eventsCollection       = "events"
	achievementsCollection = "achievements"
)

func (d *Deps) combat() Module {
	return d.module("combat", "/api/combat", "Combat API is running", nil)
}

func (d *Deps) quests() Module {
	return d.module("quests", "/api/quests", "Quests API is running", func(r chi.Router) {
		r.Get("/{id}", func(w http.ResponseWriter, req *http.Request) {
			doc, err := d.Store.Get(req.Context(), questsCollection, chi.URLParam(req, "id"))
			if err != nil {
				writeStoreError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, doc)
		})
	})
}

func (d *Deps) events() Module {
	return d.module("events", "/api/events", "Events API is running", func(r chi.Router) {
		r.Get("/current", func(w http.ResponseWriter, req *http.Request) {
			doc, err := d.Store.Get(req.Context(), eventsCollection, "current")
			if err != nil {
				writeStoreError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, doc)
		})
	})
}

func (d *Deps) achievements() Module {
	return d.module("achievements", "/api/achievements", "Achievements API is running", func(r chi.Router) {
		r.Get("/{id}", func(w http.ResponseWriter, req *http.Request) {
			doc, err := d.Store.Get(req.Context(), achievementsCollection, chi.URLParam(req, "id"))
			if err != nil {
				writeStoreError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, doc)
		})
	})
}
