package ports

import (
	"context"

	"github.com/Guilhem-Bonnet/Anime-Showcase/internal/domain"
)

// CatalogClient lit le catalogue distant. Aucune relance, aucun cache:
// les erreurs (*NetworkError, *APIError) remontent telles quelles.
type CatalogClient interface {
	FetchList(ctx context.Context, endpointPath string) ([]domain.AnimeSummary, error)
	FetchAnime(ctx context.Context, id int) (domain.AnimeDetail, error)
	FetchStreaming(ctx context.Context, id int) ([]domain.StreamingLink, error)
	FetchGenres(ctx context.Context) ([]domain.Genre, error)
}
