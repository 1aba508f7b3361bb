package gateway

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"QKart/internal/auth"
	"QKart/internal/cart"
	"QKart/internal/catalog"
	"QKart/pkg/kit"
)

type HTTPDeps struct {
	Log      *zap.Logger
	Service  string
	Registry *prometheus.Registry

	MetricsEnabled bool
	MetricsToken   string

	// AllowedOrigins enables CORS for browser storefronts served elsewhere.
	AllowedOrigins []string
}

type Deps struct {
	JWTSecret string
	Users     auth.UserStore
	Products  catalog.Store
	Carts     cart.Store
}

const (
	readyTimeout      = 2 * time.Second
	readyProbeTimeout = 700 * time.Millisecond
)

// NewHandler builds the public storefront API: auth, catalog and cart
// behind one router.
func NewHandler(deps Deps, httpDeps HTTPDeps) (http.Handler, error) {
	if deps.JWTSecret == "" {
		return nil, errors.New("gateway: JWT secret is required")
	}
	if deps.Users == nil || deps.Products == nil || deps.Carts == nil {
		return nil, errors.New("gateway: users, products and carts stores are required")
	}

	log := kit.OrNop(httpDeps.Log)
	jwt := auth.NewTokenMaker(deps.JWTSecret)

	r := chi.NewRouter()
	setupMiddleware(r, httpDeps)
	setupMetrics(r, httpDeps)

	r.Get("/healthz", healthz)
	r.Get("/readyz", readyz(deps, log))

	(&auth.Server{Log: log, Store: deps.Users, JWT: jwt}).Mount(r)
	(&catalog.Server{Log: log, Store: deps.Products}).Mount(r)
	(&cart.Server{Log: log, Store: deps.Carts, Products: deps.Products}).Mount(r, jwt)

	return r, nil
}

func setupMiddleware(r *chi.Mux, deps HTTPDeps) {
	r.Use(chimw.RequestID)
	r.Use(kit.Recoverer)
	r.Use(kit.Logging(deps.Log))

	if len(deps.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: deps.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Authorization", "Content-Type"},
			MaxAge:         600,
		}))
	}
}

func setupMetrics(r *chi.Mux, deps HTTPDeps) {
	if deps.Registry == nil {
		return
	}

	metrics := kit.NewMetrics(deps.Registry)
	r.Use(metrics.Middleware(deps.Service, kit.ChiRoutePatternOrPath))

	if !deps.MetricsEnabled {
		return
	}

	r.With(kit.MetricsAuth(deps.MetricsToken)).
		Handle("/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

type pinger interface {
	Ping(ctx context.Context) error
}

func readyz(deps Deps, log *zap.Logger) http.HandlerFunc {
	checks := []struct {
		name string
		p    pinger
	}{
		{"users", deps.Users},
		{"products", deps.Products},
		{"carts", deps.Carts},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		for _, c := range checks {
			if err := checkReady(ctx, c.p); err != nil {
				log.Warn("readyz failed", zap.String("store", c.name), zap.Error(err))
				kit.WriteError(w, r, http.StatusServiceUnavailable, c.name+" not ready")
				return
			}
		}

		w.WriteHeader(http.StatusOK)
	}
}

func checkReady(ctx context.Context, p pinger) error {
	cctx, cancel := context.WithTimeout(ctx, readyProbeTimeout)
	defer cancel()
	return p.Ping(cctx)
}
