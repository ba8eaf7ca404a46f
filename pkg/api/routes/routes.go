// Package routes defines the game API route modules. Each module owns one
// URL prefix under /api and mounts its own chi sub-router; the parent router
// treats modules as opaque handlers.
package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/questforge/questforge/pkg/docstore"
)

// Deps carries the shared collaborators handed to every route module.
type Deps struct {
	Store       docstore.Store
	Version     string
	Environment string
}

// Module is one mounted route group.
type Module struct {
	// Name identifies the module in logs and the welcome document.
	Name string

	// Prefix is the mount point under the router root, e.g. "/api/auth".
	Prefix string

	Handler http.Handler
}

// All returns every route module in mount order.
func All(deps *Deps) []Module {
	return []Module{
		deps.auth(),
		deps.user(),
		deps.character(),
		deps.combat(),
		deps.inventory(),
		deps.items(),
		deps.quests(),
		deps.guild(),
		deps.leaderboard(),
		deps.shop(),
		deps.trade(),
		deps.chat(),
		deps.mail(),
		deps.events(),
		deps.achievements(),
		deps.friends(),
		deps.admin(),
	}
}

// Prefixes returns the mount prefixes of the given modules, for the welcome
// document.
func Prefixes(modules []Module) []string {
	prefixes := make([]string, 0, len(modules))
	for _, m := range modules {
		prefixes = append(prefixes, m.Prefix)
	}
	return prefixes
}

// landing answers GET <prefix>/ with the module's identity document.
func (d *Deps) landing(message string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"message":     message,
			"version":     d.Version,
			"environment": d.Environment,
		})
	}
}

// module builds a Module whose sub-router always carries the landing
// endpoint plus any extra routes the caller mounts.
func (d *Deps) module(name, prefix, message string, mount func(r chi.Router)) Module {
	r := chi.NewRouter()
	r.Get("/", d.landing(message))
	if mount != nil {
		mount(r)
	}
	return Module{Name: name, Prefix: prefix, Handler: r}
}
