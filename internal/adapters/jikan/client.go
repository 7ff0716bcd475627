package jikan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/Guilhem-Bonnet/Anime-Showcase/internal/domain"
	"github.com/Guilhem-Bonnet/Anime-Showcase/internal/ports"
)

const DefaultBaseURL = "https://api.jikan.moe/v4"

var (
	errMissingData = errors.New("response has no data field")
	errBadEntry    = errors.New("entry is missing mal_id or title")
)

// Client lit l'API Jikan v4 en GET uniquement. Pas de relance, pas de cache,
// pas de gestion du rate-limit: chaque échec remonte immédiatement.
type Client struct {
	baseURL   string
	client    *http.Client
	metrics   *Metrics
	userAgent string
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.client = hc
		}
	}
}

func WithMetrics(m *Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if strings.TrimSpace(ua) != "" {
			c.userAgent = strings.TrimSpace(ua)
		}
	}
}

func New(baseURL string, opts ...Option) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:   strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		client:    &http.Client{},
		userAgent: "showcase-server",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ ports.CatalogClient = (*Client)(nil)

func (c *Client) FetchList(ctx context.Context, endpointPath string) ([]domain.AnimeSummary, error) {
	var out listResponse
	var items []domain.AnimeSummary
	err := c.getJSON(ctx, endpointPath, &out, func() error {
		if out.Data == nil {
			return errMissingData
		}
		items = make([]domain.AnimeSummary, 0, len(out.Data))
		for i := range out.Data {
			item, ok := toSummary(&out.Data[i])
			if !ok {
				return fmt.Errorf("entry %d: %w", i, errBadEntry)
			}
			items = append(items, item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) FetchAnime(ctx context.Context, id int) (domain.AnimeDetail, error) {
	var out itemResponse
	var detail domain.AnimeDetail
	err := c.getJSON(ctx, "anime/"+strconv.Itoa(id), &out, func() error {
		if out.Data == nil {
			return errMissingData
		}
		summary, ok := toSummary(out.Data)
		if !ok {
			return errBadEntry
		}
		detail = domain.AnimeDetail{
			AnimeSummary: summary,
			Type:         out.Data.Type,
			Status:       out.Data.Status,
			Episodes:     lo.FromPtr(out.Data.Episodes),
			Year:         lo.FromPtr(out.Data.Year),
			Genres:       lo.Map(out.Data.Genres, func(g namedRef, _ int) domain.Genre { return toGenre(g) }),
		}
		return nil
	})
	return detail, err
}

func (c *Client) FetchStreaming(ctx context.Context, id int) ([]domain.StreamingLink, error) {
	var out streamingResponse
	err := c.getJSON(ctx, "anime/"+strconv.Itoa(id)+"/streaming", &out, func() error {
		if out.Data == nil {
			return errMissingData
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	links := make([]domain.StreamingLink, 0, len(out.Data))
	for _, s := range out.Data {
		links = append(links, domain.StreamingLink{Name: s.Name, URL: s.URL})
	}
	return links, nil
}

func (c *Client) FetchGenres(ctx context.Context) ([]domain.Genre, error) {
	var out genresResponse
	err := c.getJSON(ctx, "genres/anime", &out, func() error {
		if out.Data == nil {
			return errMissingData
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return lo.Map(out.Data, func(g namedRef, _ int) domain.Genre { return toGenre(g) }), nil
}

// getJSON décode la réponse dans out puis applique check, qui valide la forme.
func (c *Client) getJSON(ctx context.Context, endpointPath string, out any, check func() error) error {
	endpoint := endpointLabel(endpointPath)
	started := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(endpointPath), nil)
	if err != nil {
		// URL invalide: le chemin vient de l'appelant, pas du réseau.
		return &ports.APIError{Path: endpointPath, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		c.metrics.observe(endpoint, outcomeNetworkError, time.Since(started))
		return &ports.NetworkError{Path: endpointPath, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.metrics.observe(endpoint, outcomeHTTPStatus, time.Since(started))
		return &ports.APIError{
			Path:       endpointPath,
			StatusCode: resp.StatusCode,
			Err:        errors.New("jikan http error: " + resp.Status),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.metrics.observe(endpoint, outcomeInvalidPayload, time.Since(started))
		return &ports.APIError{Path: endpointPath, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode: %w", err)}
	}
	if check != nil {
		if err := check(); err != nil {
			c.metrics.observe(endpoint, outcomeInvalidPayload, time.Since(started))
			return &ports.APIError{Path: endpointPath, StatusCode: resp.StatusCode, Err: err}
		}
	}
	c.metrics.observe(endpoint, outcomeOK, time.Since(started))
	return nil
}

func (c *Client) url(endpointPath string) string {
	return c.baseURL + "/" + strings.TrimLeft(strings.TrimSpace(endpointPath), "/")
}

func toSummary(a *animeData) (domain.AnimeSummary, bool) {
	if a == nil || a.MalID <= 0 || strings.TrimSpace(a.Title) == "" {
		return domain.AnimeSummary{}, false
	}
	image := a.Images.JPG.LargeImageURL
	if image == "" {
		image = a.Images.JPG.ImageURL
	}
	return domain.AnimeSummary{
		ID:       a.MalID,
		Title:    a.Title,
		ImageURL: image,
		Synopsis: a.Synopsis,
		Score:    a.Score,
	}, true
}

func toGenre(g namedRef) domain.Genre {
	return domain.Genre{ID: g.MalID, Name: g.Name, Count: g.Count}
}
