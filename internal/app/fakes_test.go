package app

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/Guilhem-Bonnet/Anime-Showcase/internal/domain"
	"github.com/Guilhem-Bonnet/Anime-Showcase/internal/ports"
)

type fakeCatalog struct {
	mu    sync.Mutex
	lists map[string][]domain.AnimeSummary
	errs  map[string]error
	calls []string

	detail    domain.AnimeDetail
	streaming []domain.StreamingLink
	genres    []domain.Genre
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{lists: map[string][]domain.AnimeSummary{}, errs: map[string]error{}}
}

func (f *fakeCatalog) record(path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, path)
	return f.errs[path]
}

func (f *fakeCatalog) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeCatalog) FetchList(ctx context.Context, path string) ([]domain.AnimeSummary, error) {
	if err := f.record(path); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	items, ok := f.lists[path]
	if !ok {
		return nil, &ports.APIError{Path: path, StatusCode: http.StatusNotFound, Err: errors.New("no fixture")}
	}
	return items, nil
}

func (f *fakeCatalog) FetchAnime(ctx context.Context, id int) (domain.AnimeDetail, error) {
	if err := f.record("anime/" + strconv.Itoa(id)); err != nil {
		return domain.AnimeDetail{}, err
	}
	return f.detail, nil
}

func (f *fakeCatalog) FetchStreaming(ctx context.Context, id int) ([]domain.StreamingLink, error) {
	if err := f.record("anime/" + strconv.Itoa(id) + "/streaming"); err != nil {
		return nil, err
	}
	return f.streaming, nil
}

func (f *fakeCatalog) FetchGenres(ctx context.Context) ([]domain.Genre, error) {
	if err := f.record("genres/anime"); err != nil {
		return nil, err
	}
	return f.genres, nil
}

func strPtr(s string) *string { return &s }
func floatPtr(f float64) *float64 { return &f }

func summaries(ids ...int) []domain.AnimeSummary {
	out := make([]domain.AnimeSummary, 0, len(ids))
	for _, id := range ids {
		out = append(out, domain.AnimeSummary{
			ID:       id,
			Title:    "Anime " + strconv.Itoa(id),
			ImageURL: "https://cdn.example/" + strconv.Itoa(id) + ".jpg",
			Synopsis: strPtr("Synopsis " + strconv.Itoa(id)),
			Score:    floatPtr(8 + float64(id)/10),
		})
	}
	return out
}

// manualTicker remplace time.Ticker dans les tests de rotation.
type manualTicker struct {
	mu      sync.Mutex
	created int
	stopped int
	chans   []chan time.Time
}

func (m *manualTicker) factory(time.Duration) (<-chan time.Time, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ch := make(chan time.Time)
	m.created++
	m.chans = append(m.chans, ch)
	return ch, func() {
		m.mu.Lock()
		m.stopped++
		m.mu.Unlock()
	}
}

func (m *manualTicker) counts() (created, stopped int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.created, m.stopped
}

func (m *manualTicker) last() chan time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.chans) == 0 {
		return nil
	}
	return m.chans[len(m.chans)-1]
}

// waitFor relance cond jusqu'à ce qu'elle réussisse ou que le délai expire.
func waitFor(t *testing.T, timeout time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for {
		if cond() {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(5 * time.Millisecond)
	}
}
