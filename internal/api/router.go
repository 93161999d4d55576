package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/linkdeck/linkdeck/internal/auth"
	"github.com/linkdeck/linkdeck/internal/ingest"
	"github.com/linkdeck/linkdeck/internal/store"
)

// Deps holds all dependencies required to build the API router.
type Deps struct {
	BearerAuth *auth.BearerTokenMiddleware
	Ingest     *ingest.Service
	LinkStore  store.LinkStoreIface
	UserStore  *store.UserStore
	TokenStore auth.TokenStore
}

// NewAPIRouter creates a chi sub-router for /api/v1. Registration, login, and
// the health check are open; everything else requires a Bearer token. All
// routes return application/json.
func NewAPIRouter(deps Deps) chi.Router {
	r := chi.NewRouter()

	r.Use(jsonContentType)

	r.Get("/healthz", handleHealthz)
	registerAuthRoutes(r, deps.UserStore, deps.TokenStore)

	r.Group(func(r chi.Router) {
		r.Use(deps.BearerAuth.Authenticate)
		registerMeRoute(r)
		registerLinkRoutes(r, deps.Ingest, deps.LinkStore)
		registerTokenRoutes(r, deps.TokenStore)
	})

	return r
}

// NewRouter creates the top-level router: request logging, panic recovery,
// the /api/v1 mount, and the Prometheus scrape endpoint.
func NewRouter(deps Deps) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Mount("/api/v1", NewAPIRouter(deps))
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// handleHealthz reports liveness.
// GET /api/v1/healthz
//
// @Summary      Health check
// @Description  Returns ok when the service is accepting requests.
// @Tags         Health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /healthz [get]
func handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonContentType is a middleware that sets Content-Type: application/json on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}
