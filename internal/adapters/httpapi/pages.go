package httpapi

import (
	"bytes"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/Guilhem-Bonnet/Anime-Showcase/internal/app"
	"github.com/Guilhem-Bonnet/Anime-Showcase/internal/domain"
	"github.com/Guilhem-Bonnet/Anime-Showcase/internal/view"
)

func (s *Server) pageRoutes(r chi.Router) {
	if s.home != nil {
		r.Get("/", s.handleIndex)
	}
	if s.catalog != nil {
		r.Get("/search", s.handleSearch)
		r.Get("/browse", s.handleBrowse)
		r.Get("/genre/{id}/{name}", s.handleGenre)
		r.Get("/anime/{id}", s.handleAnime)
	}
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.renderError(w, r, http.StatusNotFound, "Page not found.")
	})
}

// render passe par un tampon: une erreur de template ne laisse pas de page à moitié écrite.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	var buf bytes.Buffer
	if err := s.views.Render(&buf, name, data); err != nil {
		hlog.FromRequest(r).Error().Err(err).Str("template", name).Msg("render failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (s *Server) renderError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	s.render(w, r, status, "error", view.ErrorData{
		Page:    view.Page{Title: http.StatusText(status)},
		Status:  status,
		Message: msg,
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "index", view.HomeData{
		Page:       view.Page{Title: "Home"},
		Home:       s.home.Snapshot(),
		IntervalMS: s.RotationInterval.Milliseconds(),
	})
}

// cardsOrFallback construit les cartes; en cas d'échec, le message de repli et un 502.
func (s *Server) cardsOrFallback(r *http.Request, items []domain.AnimeSummary, err error) ([]domain.Node, string, int) {
	if err == nil {
		var cards []domain.Node
		cards, err = app.BuildCards(items)
		if err == nil {
			return cards, "", http.StatusOK
		}
	}
	hlog.FromRequest(r).Error().Err(err).Str("code", app.ErrorCode(err)).Msg("catalog page fetch failed")
	return nil, app.CarouselFallbackMessage, http.StatusBadGateway
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	items, err := s.catalog.Search(r.Context(), q)
	cards, msg, status := s.cardsOrFallback(r, items, err)
	s.render(w, r, status, "list", view.ListData{
		Page:    view.Page{Title: "Search", Query: q},
		Heading: `Results for "` + q + `"`,
		Cards:   cards,
		Message: msg,
	})
}

func (s *Server) handleBrowse(w http.ResponseWriter, r *http.Request) {
	data := view.BrowseData{Page: view.Page{Title: "Browse"}}
	status := http.StatusOK
	genres, err := s.catalog.Genres(r.Context())
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Str("code", app.ErrorCode(err)).Msg("genres fetch failed")
		data.Message = app.CarouselFallbackMessage
		status = http.StatusBadGateway
	}
	data.Genres = genres
	s.render(w, r, status, "browse", data)
}

func (s *Server) handleGenre(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		s.renderError(w, r, http.StatusNotFound, "Unknown genre.")
		return
	}
	name := chi.URLParam(r, "name")
	items, err := s.catalog.ByGenre(r.Context(), id)
	cards, msg, status := s.cardsOrFallback(r, items, err)
	s.render(w, r, status, "list", view.ListData{
		Page:    view.Page{Title: name},
		Heading: name,
		Cards:   cards,
		Message: msg,
	})
}

func (s *Server) handleAnime(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		s.renderError(w, r, http.StatusNotFound, "Unknown anime.")
		return
	}
	detail, err := s.catalog.Detail(r.Context(), id)
	if err != nil {
		if isNotFound(err) {
			s.renderError(w, r, http.StatusNotFound, "Unknown anime.")
			return
		}
		hlog.FromRequest(r).Error().Err(err).Str("code", app.ErrorCode(err)).Int("id", id).Msg("anime detail fetch failed")
		s.render(w, r, http.StatusBadGateway, "anime", view.DetailData{
			Page:    view.Page{Title: "Anime"},
			Message: app.CarouselFallbackMessage,
		})
		return
	}
	s.render(w, r, http.StatusOK, "anime", view.DetailData{
		Page:     view.Page{Title: detail.Title},
		Anime:    detail,
		Score:    app.FormatScore(detail.Score),
		Synopsis: app.FullSynopsis(detail.Synopsis),
	})
}
