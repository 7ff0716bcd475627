package app

import (
	"context"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/Guilhem-Bonnet/Anime-Showcase/internal/domain"
	"github.com/Guilhem-Bonnet/Anime-Showcase/internal/ports"
)

const (
	DefaultHeroContainerID = "hero-slider"
	DefaultHeroLimit       = 5
)

type HeroRenderer struct {
	logger  zerolog.Logger
	catalog ports.CatalogClient

	ContainerID string
	Limit       int
	Synopsis    SynopsisOptions
}

func NewHeroRenderer(logger zerolog.Logger, catalog ports.CatalogClient) *HeroRenderer {
	return &HeroRenderer{
		logger:      logger,
		catalog:     catalog,
		ContainerID: DefaultHeroContainerID,
		Limit:       DefaultHeroLimit,
		Synopsis:    DefaultSynopsisOptions(),
	}
}

func (h *HeroRenderer) EndpointPath() string {
	limit := h.Limit
	if limit <= 0 {
		limit = DefaultHeroLimit
	}
	return "top/anime?limit=" + strconv.Itoa(limit)
}

// Populate reconstruit le hero dans doc. Le slider renvoyé est nil en cas d'échec,
// de conteneur absent ou de liste vide: dans ces cas aucune rotation ne doit démarrer.
func (h *HeroRenderer) Populate(ctx context.Context, doc *domain.Document) (*domain.Slider, RenderState) {
	c := doc.Container(h.ContainerID)
	if c == nil {
		return nil, StateSkipped
	}

	path := h.EndpointPath()
	items, err := h.catalog.FetchList(ctx, path)
	var nodes []domain.Node
	if err == nil {
		nodes, err = BuildSlides(items, h.Synopsis)
	}
	if err != nil {
		h.logger.Error().Err(err).
			Str("code", ErrorCode(err)).
			Str("endpoint", path).
			Msg("hero banner fetch failed")
		c.Replace([]domain.Node{MessageNode(HeroFallbackMessage)})
		return nil, StateFailed
	}

	c.Replace(nodes)
	if len(nodes) == 0 {
		return nil, StateRendered
	}
	slider, err := domain.NewSlider(c)
	if err != nil {
		return nil, StateRendered
	}
	return slider, StateRendered
}
