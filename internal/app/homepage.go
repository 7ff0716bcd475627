package app

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/xid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/Guilhem-Bonnet/Anime-Showcase/internal/domain"
	"github.com/Guilhem-Bonnet/Anime-Showcase/internal/ports"
)

const DefaultCarouselWidth = 1200

type CarouselConfig struct {
	SectionID    string
	Title        string
	ContainerID  string
	EndpointPath string
}

// HomeLayout décrit le balisage initial de la page d'accueil.
type HomeLayout struct {
	HeroContainerID string
	Carousels       []CarouselConfig
	CarouselWidth   float64
}

func DefaultHomeLayout() HomeLayout {
	return HomeLayout{
		HeroContainerID: DefaultHeroContainerID,
		Carousels: []CarouselConfig{
			{SectionID: "top-anime", Title: "Top Anime", ContainerID: "top-anime-carousel", EndpointPath: "top/anime"},
			{SectionID: "seasonal-anime", Title: "This Season", ContainerID: "seasonal-anime-carousel", EndpointPath: "seasons/now"},
		},
		CarouselWidth: DefaultCarouselWidth,
	}
}

func (l HomeLayout) NewDocument() *domain.Document {
	ids := make([]string, 0, len(l.Carousels)+1)
	if l.HeroContainerID != "" {
		ids = append(ids, l.HeroContainerID)
	}
	sections := make([]domain.Section, 0, len(l.Carousels))
	for _, c := range l.Carousels {
		ids = append(ids, c.ContainerID)
		sections = append(sections, domain.Section{
			ID:           c.SectionID,
			Title:        c.Title,
			ContainerID:  c.ContainerID,
			HasPrev:      true,
			HasNext:      true,
			VisibleWidth: l.CarouselWidth,
		})
	}
	return domain.NewDocument(ids, sections)
}

type RegionView struct {
	ContainerID string        `json:"containerId"`
	State       RenderState   `json:"state"`
	Nodes       []domain.Node `json:"nodes"`
}

type CarouselView struct {
	RegionView
	SectionID string   `json:"sectionId"`
	Title     string   `json:"title"`
	Binding   *Binding `json:"binding,omitempty"`
}

type HomeSnapshot struct {
	Generation string         `json:"generation"`
	LoadedAt   time.Time      `json:"loadedAt"`
	Hero       RegionView     `json:"hero"`
	Carousels  []CarouselView `json:"carousels"`
}

type homeLoadedEvent struct {
	Generation string `json:"generation"`
}

// Homepage possède le cycle de vie de la page: un document, un slider, un seul timer de rotation.
// Load remplace le tout et annule la rotation précédente avant d'en lancer une nouvelle.
type Homepage struct {
	base   context.Context
	logger zerolog.Logger
	bus    ports.EventBus

	hero      *HeroRenderer
	carousels *CarouselRenderer
	rotator   *Rotator
	layout    HomeLayout

	loadMu sync.Mutex

	mu           sync.RWMutex
	generation   string
	loadedAt     time.Time
	doc          *domain.Document
	heroState    RenderState
	states       map[string]RenderState
	bindings     []Binding
	stopRotation context.CancelFunc
	wg           sync.WaitGroup
}

func NewHomepage(base context.Context, logger zerolog.Logger, bus ports.EventBus, hero *HeroRenderer, carousels *CarouselRenderer, rotator *Rotator, layout HomeLayout) *Homepage {
	if base == nil {
		base = context.Background()
	}
	if hero != nil && layout.HeroContainerID != "" {
		hero.ContainerID = layout.HeroContainerID
	}
	return &Homepage{
		base:      base,
		logger:    logger,
		bus:       bus,
		hero:      hero,
		carousels: carousels,
		rotator:   rotator,
		layout:    layout,
		heroState: StateIdle,
		states:    map[string]RenderState{},
	}
}

// Load construit un document neuf: hero et carousels en parallèle, navigation liée
// sans attendre les fetchs. Les échecs de région ne remontent pas: seule l'annulation
// de ctx fait échouer Load, et dans ce cas l'état précédent est conservé.
func (h *Homepage) Load(ctx context.Context) error {
	h.loadMu.Lock()
	defer h.loadMu.Unlock()

	started := time.Now()
	generation := xid.New().String()
	doc := h.layout.NewDocument()

	var (
		slider    *domain.Slider
		heroState = StateLoading
		statesMu  sync.Mutex
		states    = make(map[string]RenderState, len(h.layout.Carousels))
	)

	var g errgroup.Group
	if h.hero != nil {
		g.Go(func() error {
			slider, heroState = h.hero.Populate(ctx, doc)
			return nil
		})
	}
	if h.carousels != nil {
		for _, cs := range h.layout.Carousels {
			cs := cs
			g.Go(func() error {
				st := h.carousels.Populate(ctx, doc, cs.EndpointPath, cs.ContainerID)
				statesMu.Lock()
				states[cs.ContainerID] = st
				statesMu.Unlock()
				return nil
			})
		}
	}
	bindings := BindNavigation(doc)
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return err
	}
	if h.hero == nil {
		heroState = StateSkipped
	}

	h.mu.Lock()
	h.generation = generation
	h.loadedAt = time.Now().UTC()
	h.doc = doc
	h.heroState = heroState
	h.states = states
	h.bindings = bindings
	h.mu.Unlock()

	if h.startRotation(generation, slider) {
		heroState = StateRotating
		h.mu.Lock()
		h.heroState = heroState
		h.mu.Unlock()
	}

	h.logger.Info().
		Str("generation", generation).
		Str("hero", string(heroState)).
		Interface("carousels", states).
		Dur("took", time.Since(started)).
		Msg("homepage loaded")

	if h.bus != nil {
		if b, err := json.Marshal(homeLoadedEvent{Generation: generation}); err == nil {
			h.bus.Publish(TopicHomeLoaded, b)
		}
	}
	return nil
}

// startRotation annule le timer courant puis en lance un nouveau si le slider a plus d'une slide.
func (h *Homepage) startRotation(generation string, slider *domain.Slider) bool {
	h.mu.Lock()
	if h.stopRotation != nil {
		h.stopRotation()
		h.stopRotation = nil
	}
	if h.rotator == nil || slider == nil || slider.Len() <= 1 || h.base.Err() != nil {
		h.mu.Unlock()
		return false
	}
	rctx, cancel := context.WithCancel(h.base)
	h.stopRotation = cancel
	h.wg.Add(1)
	h.mu.Unlock()

	go func() {
		defer h.wg.Done()
		h.rotator.Run(rctx, generation, slider)
	}()
	return true
}

func (h *Homepage) Snapshot() HomeSnapshot {
	h.mu.RLock()
	defer h.mu.RUnlock()

	snap := HomeSnapshot{
		Generation: h.generation,
		LoadedAt:   h.loadedAt,
		Hero: RegionView{
			ContainerID: h.layout.HeroContainerID,
			State:       h.heroState,
			Nodes:       h.doc.Container(h.layout.HeroContainerID).Nodes(),
		},
		Carousels: make([]CarouselView, 0, len(h.layout.Carousels)),
	}
	for _, cs := range h.layout.Carousels {
		st, ok := h.states[cs.ContainerID]
		if !ok {
			st = StateIdle
		}
		view := CarouselView{
			RegionView: RegionView{
				ContainerID: cs.ContainerID,
				State:       st,
				Nodes:       h.doc.Container(cs.ContainerID).Nodes(),
			},
			SectionID: cs.SectionID,
			Title:     cs.Title,
		}
		for i := range h.bindings {
			if h.bindings[i].SectionID == cs.SectionID {
				b := h.bindings[i]
				view.Binding = &b
				break
			}
		}
		snap.Carousels = append(snap.Carousels, view)
	}
	return snap
}

// Close arrête la rotation et attend la fin de la goroutine.
func (h *Homepage) Close() {
	h.mu.Lock()
	if h.stopRotation != nil {
		h.stopRotation()
		h.stopRotation = nil
	}
	h.mu.Unlock()
	h.wg.Wait()
}
