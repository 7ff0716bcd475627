package httpapi

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/Guilhem-Bonnet/Anime-Showcase/internal/app"
	"github.com/Guilhem-Bonnet/Anime-Showcase/internal/httpjson"
)

type HomeHandler struct {
	home *app.Homepage
}

func NewHomeHandler(home *app.Homepage) *HomeHandler {
	return &HomeHandler{home: home}
}

func (h *HomeHandler) Routes(r chi.Router) {
	r.Route("/home", func(r chi.Router) {
		r.Get("/", h.get)
		r.Post("/reload", h.reload)
	})
}

func (h *HomeHandler) get(w http.ResponseWriter, r *http.Request) {
	httpjson.Write(w, http.StatusOK, h.home.Snapshot())
}

// reload reconstruit la page; la rotation précédente est annulée par Homepage.Load.
func (h *HomeHandler) reload(w http.ResponseWriter, r *http.Request) {
	if err := h.home.Load(r.Context()); err != nil {
		hlog.FromRequest(r).Warn().Err(err).Msg("homepage reload aborted")
		status := http.StatusServiceUnavailable
		if errors.Is(err, r.Context().Err()) {
			status = http.StatusRequestTimeout
		}
		httpjson.WriteCodedError(w, status, app.ErrorCode(err), err.Error())
		return
	}
	httpjson.Write(w, http.StatusOK, h.home.Snapshot())
}
