package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/Guilhem-Bonnet/Anime-Showcase/internal/app"
	"github.com/Guilhem-Bonnet/Anime-Showcase/internal/httpjson"
	"github.com/Guilhem-Bonnet/Anime-Showcase/internal/ports"
)

// CatalogHandler expose le catalogue distant en JSON (utilisé par le client CLI).
type CatalogHandler struct {
	catalog *app.CatalogService
}

func NewCatalogHandler(catalog *app.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

func (h *CatalogHandler) Routes(r chi.Router) {
	r.Get("/list", h.list)
	r.Get("/search", h.search)
	r.Get("/genres", h.genres)
	r.Get("/anime/{id}", h.detail)
}

func (h *CatalogHandler) list(w http.ResponseWriter, r *http.Request) {
	endpoint := r.URL.Query().Get("endpoint")
	if !validEndpointPath(endpoint) {
		httpjson.WriteError(w, http.StatusBadRequest, "invalid endpoint")
		return
	}
	items, err := h.catalog.List(r.Context(), endpoint)
	if err != nil {
		writeUpstreamError(w, r, err)
		return
	}
	httpjson.Write(w, http.StatusOK, items)
}

func (h *CatalogHandler) search(w http.ResponseWriter, r *http.Request) {
	items, err := h.catalog.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		if errors.Is(err, app.ErrEmptyQuery) {
			httpjson.WriteError(w, http.StatusBadRequest, "missing q")
			return
		}
		writeUpstreamError(w, r, err)
		return
	}
	httpjson.Write(w, http.StatusOK, items)
}

func (h *CatalogHandler) genres(w http.ResponseWriter, r *http.Request) {
	genres, err := h.catalog.Genres(r.Context())
	if err != nil {
		writeUpstreamError(w, r, err)
		return
	}
	httpjson.Write(w, http.StatusOK, genres)
}

func (h *CatalogHandler) detail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		httpjson.WriteError(w, http.StatusBadRequest, "invalid id")
		return
	}
	detail, err := h.catalog.Detail(r.Context(), id)
	if err != nil {
		writeUpstreamError(w, r, err)
		return
	}
	httpjson.Write(w, http.StatusOK, detail)
}

// validEndpointPath n'accepte qu'un chemin relatif à la base Jikan.
func validEndpointPath(p string) bool {
	if p == "" || strings.HasPrefix(p, "/") || strings.Contains(p, "://") || strings.Contains(p, "..") {
		return false
	}
	return !strings.ContainsAny(p, " \\#")
}

func isNotFound(err error) bool {
	if errors.Is(err, app.ErrNotFound) {
		return true
	}
	var apiErr *ports.APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// writeUpstreamError: 404 distant -> 404, le reste -> 502 avec le code d'erreur.
func writeUpstreamError(w http.ResponseWriter, r *http.Request, err error) {
	code := app.ErrorCode(err)
	if isNotFound(err) {
		httpjson.WriteCodedError(w, http.StatusNotFound, code, "not found")
		return
	}
	hlog.FromRequest(r).Error().Err(err).Str("code", code).Msg("catalog request failed")
	httpjson.WriteCodedError(w, http.StatusBadGateway, code, err.Error())
}
