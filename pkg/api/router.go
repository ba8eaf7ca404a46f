package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/questforge/questforge/internal/logger"
	"github.com/questforge/questforge/pkg/api/routes"
	"github.com/questforge/questforge/pkg/docstore"
)

// RouterDeps carries the collaborators the router hands down to handlers
// and route modules.
type RouterDeps struct {
	Store       docstore.Store
	Version     string
	Environment string
}

// NewRouter creates and configures the chi router with all middleware and
// routes.
//
// The middleware stack, in order:
//   - Request ID for request tracking
//   - Real IP extraction for proper client identification
//   - Custom request logging using the internal logger
//   - Panic recovery to prevent server crashes
//   - CORS policy from configuration
//   - Fixed-window per-client rate limiting
//   - Request timeout to prevent hung requests
//
// Routes:
//   - GET / and GET /api - welcome document listing mounted prefixes
//   - GET /api/health - request-time store health probe
//   - /api/{auth,user,character,combat,inventory,items,quests,guild,
//     leaderboard,shop,trade,chat,mail,events,achievements,friends,admin}
func NewRouter(config APIConfig, deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(corsMiddleware(config.CORSOrigins))
	if config.RateLimit.MaxRequests > 0 {
		limiter := newRateLimiter(config.RateLimit.Window, config.RateLimit.MaxRequests)
		r.Use(limiter.middleware)
	}
	r.Use(middleware.Timeout(30 * time.Second))

	modules := routes.All(&routes.Deps{
		Store:       deps.Store,
		Version:     deps.Version,
		Environment: deps.Environment,
	})
	prefixes := routes.Prefixes(modules)

	welcome := welcomeHandler(deps.Version, deps.Environment, prefixes)
	r.Get("/", welcome)
	r.Get("/api", welcome)

	healthHandler := newHealthHandler(deps.Store)
	r.Get("/api/health", healthHandler.Health)

	for _, m := range modules {
		r.Mount(m.Prefix, m.Handler)
		logger.Debug("Route module mounted", "module", m.Name, "prefix", m.Prefix)
	}

	return r
}
