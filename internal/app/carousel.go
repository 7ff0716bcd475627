package app

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/Guilhem-Bonnet/Anime-Showcase/internal/domain"
	"github.com/Guilhem-Bonnet/Anime-Showcase/internal/ports"
)

// CarouselRenderer remplit un conteneur de cartes. Sans état: plusieurs appels
// concurrents sur des conteneurs différents sont sûrs.
type CarouselRenderer struct {
	logger  zerolog.Logger
	catalog ports.CatalogClient
}

func NewCarouselRenderer(logger zerolog.Logger, catalog ports.CatalogClient) *CarouselRenderer {
	return &CarouselRenderer{logger: logger, catalog: catalog}
}

// Populate: conteneur absent => no-op, sans appel réseau ni erreur.
func (r *CarouselRenderer) Populate(ctx context.Context, doc *domain.Document, endpointPath, containerID string) RenderState {
	c := doc.Container(containerID)
	if c == nil {
		return StateSkipped
	}

	items, err := r.catalog.FetchList(ctx, endpointPath)
	var nodes []domain.Node
	if err == nil {
		nodes, err = BuildCards(items)
	}
	if err != nil {
		r.logger.Error().Err(err).
			Str("code", ErrorCode(err)).
			Str("endpoint", endpointPath).
			Str("container", containerID).
			Msg("carousel fetch failed")
		c.Replace([]domain.Node{MessageNode(CarouselFallbackMessage)})
		return StateFailed
	}
	c.Replace(nodes)
	return StateRendered
}
