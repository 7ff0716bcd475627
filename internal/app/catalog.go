package app

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/Guilhem-Bonnet/Anime-Showcase/internal/domain"
	"github.com/Guilhem-Bonnet/Anime-Showcase/internal/ports"
)

const DefaultResultLimit = 24

var ErrEmptyQuery = errors.New("empty search query")

// CatalogService sert les pages de recherche, de genres et de détail.
// Chaque appel part vers le catalogue distant: rien n'est conservé.
type CatalogService struct {
	catalog ports.CatalogClient

	ResultLimit int
	// AffiliateID est ajouté aux liens Crunchyroll (vide: liens inchangés).
	AffiliateID string
}

func NewCatalogService(catalog ports.CatalogClient) *CatalogService {
	return &CatalogService{catalog: catalog, ResultLimit: DefaultResultLimit}
}

func (s *CatalogService) limit() int {
	if s.ResultLimit <= 0 {
		return DefaultResultLimit
	}
	return s.ResultLimit
}

// List relaie un chemin d'endpoint brut (ex: "top/anime", "seasons/now").
func (s *CatalogService) List(ctx context.Context, endpointPath string) ([]domain.AnimeSummary, error) {
	return s.catalog.FetchList(ctx, endpointPath)
}

func (s *CatalogService) Search(ctx context.Context, query string) ([]domain.AnimeSummary, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil, ErrEmptyQuery
	}
	v := url.Values{}
	v.Set("q", q)
	v.Set("limit", strconv.Itoa(s.limit()))
	return s.catalog.FetchList(ctx, "anime?"+v.Encode())
}

func (s *CatalogService) Genres(ctx context.Context) ([]domain.Genre, error) {
	return s.catalog.FetchGenres(ctx)
}

func (s *CatalogService) ByGenre(ctx context.Context, genreID int) ([]domain.AnimeSummary, error) {
	v := url.Values{}
	v.Set("genres", strconv.Itoa(genreID))
	v.Set("limit", strconv.Itoa(s.limit()))
	return s.catalog.FetchList(ctx, "anime?"+v.Encode())
}

// Detail combine la fiche et ses liens de streaming; un échec de l'un fait échouer l'ensemble.
func (s *CatalogService) Detail(ctx context.Context, id int) (domain.AnimeDetail, error) {
	detail, err := s.catalog.FetchAnime(ctx, id)
	if err != nil {
		return domain.AnimeDetail{}, err
	}
	links, err := s.catalog.FetchStreaming(ctx, id)
	if err != nil {
		return domain.AnimeDetail{}, err
	}
	detail.Streaming = lo.Map(links, func(l domain.StreamingLink, _ int) domain.StreamingLink {
		l.URL = AffiliateLink(l.URL, l.Name, s.AffiliateID)
		return l
	})
	return detail, nil
}

// AffiliateLink ajoute l'identifiant d'affiliation aux liens Crunchyroll.
func AffiliateLink(rawURL, serviceName, affiliateID string) string {
	if affiliateID == "" || !strings.Contains(strings.ToLower(serviceName), "crunchyroll") {
		return rawURL
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	q := u.Query()
	q.Set("af_id", affiliateID)
	u.RawQuery = q.Encode()
	return u.String()
}
