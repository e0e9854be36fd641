// Package gateway assembles the storefront's HTTP surface.
package gateway

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"Storefront/internal/auth"
	"Storefront/internal/catalog"
	"Storefront/internal/settings"
	"Storefront/pkg/kit"
)

type HTTPDeps struct {
	Log      *zap.Logger
	Service  string
	Registry *prometheus.Registry

	MetricsEnabled bool
	MetricsToken   string
}

// ReadyCheck is one dependency probed by /readyz.
type ReadyCheck struct {
	Name string
	Ping func(ctx context.Context) error
}

type Deps struct {
	Auth     *auth.Server
	Tokens   *auth.TokenMaker
	Catalog  *catalog.Server
	Settings *settings.Server
	Ready    []ReadyCheck
}

const (
	readyTimeout = 2 * time.Second

	loginLimitPerMin = 5
	limitWindow      = 60 * time.Second
)

func NewHandler(deps Deps, httpDeps HTTPDeps) http.Handler {
	r := chi.NewRouter()
	setupMiddleware(r, httpDeps)
	setupMetrics(r, httpDeps)

	r.Get("/healthz", healthz)
	r.Get("/readyz", readyz(deps.Ready, httpDeps.Log))

	r.Mount("/api/products", deps.Catalog.ProductRoutes())
	r.Mount("/api/brands", deps.Catalog.BrandRoutes())
	r.Mount("/api/settings", deps.Settings.PublicRoutes())

	loginLimiter := kit.NewIPRateLimiter(loginLimitPerMin, limitWindow)

	r.Route("/api/admin", func(ar chi.Router) {
		ar.With(loginLimiter.Middleware).Post("/login", deps.Auth.HandleLogin)

		ar.Group(func(pr chi.Router) {
			pr.Use(AuthJWT(deps.Tokens))
			pr.Get("/session", deps.Auth.HandleSession)
			pr.Mount("/settings", deps.Settings.AdminRoutes())
			pr.Mount("/brands", deps.Catalog.AdminBrandRoutes())
		})
	})

	return r
}

func setupMiddleware(r *chi.Mux, deps HTTPDeps) {
	r.Use(chimw.RequestID)
	r.Use(kit.Recoverer)
	r.Use(kit.Logging(deps.Log))
}

func setupMetrics(r *chi.Mux, deps HTTPDeps) {
	if deps.Registry == nil {
		return
	}

	metrics := kit.NewMetrics(deps.Registry, "storefront")
	r.Use(metrics.Middleware(deps.Service, kit.RoutePattern))

	if !deps.MetricsEnabled {
		return
	}

	r.With(kit.MetricsAuth(deps.MetricsToken)).
		Handle("/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func readyz(checks []ReadyCheck, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		for _, c := range checks {
			if err := c.Ping(ctx); err != nil {
				if log != nil {
					log.Warn("readyz failed: "+c.Name, zap.Error(err))
				}
				kit.WriteError(w, r, http.StatusServiceUnavailable, c.Name+" not ready", nil)
				return
			}
		}

		w.WriteHeader(http.StatusOK)
	}
}
