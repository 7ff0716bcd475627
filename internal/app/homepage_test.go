package app

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/Guilhem-Bonnet/Anime-Showcase/internal/adapters/memorybus"
	"github.com/Guilhem-Bonnet/Anime-Showcase/internal/ports"
)

type homeFixture struct {
	cat  *fakeCatalog
	bus  *memorybus.Bus
	mt   *manualTicker
	home *Homepage
}

func newHomeFixture(t *testing.T) *homeFixture {
	t.Helper()
	cat := newFakeCatalog()
	cat.lists["top/anime?limit=5"] = summaries(1, 2, 3, 4, 5)
	cat.lists["top/anime"] = summaries(10, 11, 12)
	cat.lists["seasons/now"] = summaries(20, 21)

	bus := memorybus.New()
	mt := &manualTicker{}
	rot := NewRotator(zerolog.Nop(), bus)
	rot.newTicker = mt.factory

	home := NewHomepage(context.Background(), zerolog.Nop(), bus,
		NewHeroRenderer(zerolog.Nop(), cat),
		NewCarouselRenderer(zerolog.Nop(), cat),
		rot, DefaultHomeLayout())
	t.Cleanup(home.Close)
	return &homeFixture{cat: cat, bus: bus, mt: mt, home: home}
}

func (f *homeFixture) load(t *testing.T) {
	t.Helper()
	if err := f.home.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
}

func TestHomepage_LoadRendersEveryRegion(t *testing.T) {
	f := newHomeFixture(t)
	events, cancel := f.bus.Subscribe()
	defer cancel()

	f.load(t)
	snap := f.home.Snapshot()

	if snap.Generation == "" {
		t.Fatalf("generation not set")
	}
	if snap.Hero.State != StateRotating || len(snap.Hero.Nodes) != 5 {
		t.Fatalf("hero: want 5 rotating slides, got %s with %d", snap.Hero.State, len(snap.Hero.Nodes))
	}
	if len(snap.Carousels) != 2 {
		t.Fatalf("carousels: want 2, got %d", len(snap.Carousels))
	}
	top, season := snap.Carousels[0], snap.Carousels[1]
	if top.SectionID != "top-anime" || top.State != StateRendered || len(top.Nodes) != 3 {
		t.Fatalf("top carousel: got %s %s with %d cards", top.SectionID, top.State, len(top.Nodes))
	}
	if len(season.Nodes) != 2 {
		t.Fatalf("seasonal cards: want 2, got %d", len(season.Nodes))
	}
	if season.Binding == nil || season.Binding.Step != 960 || season.Binding.Ratio != ScrollStepRatio {
		t.Fatalf("seasonal binding: got %+v", season.Binding)
	}

	calls := f.cat.Calls()
	slices.Sort(calls)
	if want := []string{"seasons/now", "top/anime", "top/anime?limit=5"}; !slices.Equal(calls, want) {
		t.Fatalf("calls: want %v, got %v", want, calls)
	}

	if evt := <-events; evt.Topic != TopicHomeLoaded {
		t.Fatalf("first event: want %s, got %s", TopicHomeLoaded, evt.Topic)
	}
}

func TestHomepage_FailuresAreIsolated(t *testing.T) {
	f := newHomeFixture(t)
	f.cat.errs["seasons/now"] = &ports.NetworkError{Path: "seasons/now", Err: errors.New("refused")}

	f.load(t)
	snap := f.home.Snapshot()

	if snap.Hero.State != StateRotating || snap.Carousels[0].State != StateRendered {
		t.Fatalf("healthy regions: got hero=%s top=%s", snap.Hero.State, snap.Carousels[0].State)
	}
	season := snap.Carousels[1]
	if season.State != StateFailed || len(season.Nodes) != 1 || season.Nodes[0].Text != CarouselFallbackMessage {
		t.Fatalf("seasonal carousel: got %s %+v", season.State, season.Nodes)
	}
	// la navigation reste liée même si le carousel a échoué
	if season.Binding == nil {
		t.Fatalf("seasonal navigation not bound")
	}
}

func TestHomepage_HeroFailureStartsNoRotation(t *testing.T) {
	f := newHomeFixture(t)
	f.cat.errs["top/anime?limit=5"] = &ports.APIError{Path: "top/anime?limit=5", StatusCode: 500}

	f.load(t)
	snap := f.home.Snapshot()
	if snap.Hero.State != StateFailed || snap.Hero.Nodes[0].Text != HeroFallbackMessage {
		t.Fatalf("hero: got %s %+v", snap.Hero.State, snap.Hero.Nodes)
	}
	if created, _ := f.mt.counts(); created != 0 {
		t.Fatalf("ticker created after hero failure: %d", created)
	}
}

func TestHomepage_ReloadCancelsPreviousRotation(t *testing.T) {
	f := newHomeFixture(t)

	f.load(t)
	first := f.home.Snapshot().Generation
	if !waitFor(t, time.Second, func() bool { c, _ := f.mt.counts(); return c == 1 }) {
		t.Fatal("first rotation never started")
	}

	f.load(t)
	if f.home.Snapshot().Generation == first {
		t.Fatalf("reload kept generation %s", first)
	}

	ok := waitFor(t, time.Second, func() bool {
		c, s := f.mt.counts()
		return c == 2 && s == 1
	})
	if !ok {
		c, s := f.mt.counts()
		t.Fatalf("after reload: want 2 created 1 stopped, got %d %d", c, s)
	}

	f.home.Close()
	if created, stopped := f.mt.counts(); created != 2 || stopped != 2 {
		t.Fatalf("after Close: want 2 created 2 stopped, got %d %d", created, stopped)
	}
}

func TestHomepage_CanceledLoadKeepsPreviousState(t *testing.T) {
	f := newHomeFixture(t)
	f.load(t)
	before := f.home.Snapshot().Generation

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := f.home.Load(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Load: want context.Canceled, got %v", err)
	}
	if got := f.home.Snapshot().Generation; got != before {
		t.Fatalf("generation: want %s kept, got %s", before, got)
	}
}

func TestHomepage_SnapshotBeforeLoad(t *testing.T) {
	f := newHomeFixture(t)
	snap := f.home.Snapshot()
	if snap.Generation != "" || snap.Hero.State != StateIdle || len(snap.Hero.Nodes) != 0 {
		t.Fatalf("hero before load: got %q %s %d", snap.Generation, snap.Hero.State, len(snap.Hero.Nodes))
	}
	if len(snap.Carousels) != 2 || snap.Carousels[0].State != StateIdle {
		t.Fatalf("carousels before load: got %+v", snap.Carousels)
	}
}
