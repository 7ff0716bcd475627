package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/Guilhem-Bonnet/Anime-Showcase/internal/buildinfo"
	"github.com/Guilhem-Bonnet/Anime-Showcase/internal/httpjson"
)

const defaultRequestTimeout = 30 * time.Second

type healthResponse struct {
	Status     string `json:"status"`
	Home       string `json:"home"`
	Generation string `json:"generation,omitempty"`
}

// handleHealth répond 200 même avant le premier chargement: la page d'accueil
// se remplit en arrière-plan et "home" indique seulement où elle en est.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok", Home: "loading"}
	if gen := s.home.Snapshot().Generation; gen != "" {
		resp.Home = "ready"
		resp.Generation = gen
	}
	httpjson.Write(w, http.StatusOK, resp)
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	httpjson.Write(w, http.StatusOK, buildinfo.Current())
}

func accessLogFn(r *http.Request, status, size int, duration time.Duration) {
	logger := hlog.FromRequest(r)
	evt := logger.Info().
		Int("status", status).
		Int("size", size).
		Dur("duration", duration).
		Str("method", r.Method).
		Str("path", r.URL.Path)
	if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
		evt = evt.Str("route", rctx.RoutePattern())
	}
	evt.Msg("http")
}
