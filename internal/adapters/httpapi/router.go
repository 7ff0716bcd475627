package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/Guilhem-Bonnet/Anime-Showcase/internal/app"
	"github.com/Guilhem-Bonnet/Anime-Showcase/internal/ports"
	"github.com/Guilhem-Bonnet/Anime-Showcase/internal/view"
)

type Server struct {
	logger  zerolog.Logger
	home    *app.Homepage
	catalog *app.CatalogService
	views   *view.Renderer
	bus     ports.EventBus
	// registry est optionnel: sans lui, ni /metrics ni métriques HTTP.
	registry *prometheus.Registry
	metrics  *httpMetrics

	// RotationInterval est exposé au navigateur (data-interval), à titre indicatif.
	RotationInterval time.Duration
	heartbeat        time.Duration
}

func NewServer(logger zerolog.Logger, home *app.Homepage, catalog *app.CatalogService, views *view.Renderer, bus ports.EventBus, registry *prometheus.Registry) *Server {
	s := &Server{
		logger:           logger,
		home:             home,
		catalog:          catalog,
		views:            views,
		bus:              bus,
		registry:         registry,
		RotationInterval: app.DefaultRotationInterval,
		heartbeat:        defaultHeartbeat,
	}
	if registry != nil {
		s.metrics = newHTTPMetrics(registry)
	}
	return s
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(hlog.NewHandler(s.logger))
	r.Use(hlog.RequestIDHandler("request_id", "Request-Id"))
	r.Use(hlog.RemoteAddrHandler("remote_ip"))
	r.Use(hlog.UserAgentHandler("user_agent"))
	r.Use(hlog.AccessHandler(accessLogFn))
	if s.metrics != nil {
		r.Use(s.metrics.middleware)
	}

	// SSE: connexion longue, hors du timeout global.
	r.Get("/api/v1/events", s.handleEvents)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(defaultRequestTimeout))

		r.Route("/api/v1", func(r chi.Router) {
			r.Get("/health", s.handleHealth)
			r.Get("/version", s.handleVersion)
			r.Get("/openapi.json", s.handleOpenAPI)

			if s.home != nil {
				NewHomeHandler(s.home).Routes(r)
			}
			if s.catalog != nil {
				NewCatalogHandler(s.catalog).Routes(r)
			}
		})

		if s.views != nil {
			s.pageRoutes(r)
		}
		if s.registry != nil {
			r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{Registry: s.registry}))
		}
	})

	r.Handle("/static/*", http.StripPrefix("/static/", view.Static()))

	return r
}
