package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Economy collections.
const (
	inventoryCollection = "inventory"
	itemsCollection     = "items"
	shopCollection      = "shop"
)

func (d *Deps) inventory() Module {
	return d.module("inventory", "/api/inventory", "Inventory API is running", func(r chi.Router) {
		r.Get("/{id}", func(w http.ResponseWriter, req *http.Request) {
			doc, err := d.Store.Get(req.Context(), inventoryCollection, chi.URLParam(req, "id"))
			if err != nil {
				writeStoreError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, doc)
		})
	})
}

func (d *Deps) items() Module {
	return d.module("items", "/api/items", "Items API is running", func(r chi.Router) {
		r.Get("/{id}", func(w http.ResponseWriter, req *http.Request) {
			doc, err := d.Store.Get(req.Context(), itemsCollection, chi.URLParam(req, "id"))
			if err != nil {
				writeStoreError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, doc)
		})
	})
}

func (d *Deps) shop() Module {
	return d.module("shop", "/api/shop", "Shop API is running", func(r chi.Router) {
		r.Get("/catalog", func(w http.ResponseWriter, req *http.Request) {
			doc, err := d.Store.Get(req.Context(), shopCollection, "catalog")
			if err != nil {
				writeStoreError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, doc)
		})
	})
}

func (d *Deps) trade() Module {
	return d.module("trade", "/api/trade", "Trade API is running", nil)
}
