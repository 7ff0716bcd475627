package app

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/Guilhem-Bonnet/Anime-Showcase/internal/domain"
	"github.com/Guilhem-Bonnet/Anime-Showcase/internal/ports"
)

const (
	DefaultRotationInterval = 7 * time.Second

	TopicHeroActive = "hero.active"
	TopicHomeLoaded = "home.loaded"
)

type HeroActiveEvent struct {
	Generation string `json:"generation"`
	Index      int    `json:"index"`
	ItemID     int    `json:"itemId"`
}

// Rotator fait tourner les slides du hero à intervalle fixe jusqu'à l'annulation du contexte.
type Rotator struct {
	logger zerolog.Logger
	bus    ports.EventBus

	TickInterval time.Duration

	// newTicker est remplaçable en test.
	newTicker func(d time.Duration) (<-chan time.Time, func())
}

func NewRotator(logger zerolog.Logger, bus ports.EventBus) *Rotator {
	return &Rotator{
		logger:       logger,
		bus:          bus,
		TickInterval: DefaultRotationInterval,
		newTicker: func(d time.Duration) (<-chan time.Time, func()) {
			t := time.NewTicker(d)
			return t.C, t.Stop
		},
	}
}

// Run bloque. Rien n'est démarré pour zéro ou une slide.
func (r *Rotator) Run(ctx context.Context, generation string, slider *domain.Slider) {
	if slider == nil || slider.Len() <= 1 {
		return
	}
	interval := r.TickInterval
	if interval <= 0 {
		interval = DefaultRotationInterval
	}
	ticks, stop := r.newTicker(interval)
	defer stop()

	r.logger.Debug().Str("generation", generation).Int("slides", slider.Len()).Dur("interval", interval).Msg("hero rotation started")
	for {
		select {
		case <-ctx.Done():
			r.logger.Debug().Str("generation", generation).Msg("hero rotation stopped")
			return
		case <-ticks:
			r.Step(generation, slider)
		}
	}
}

// Step avance d'une slide et publie l'index actif.
func (r *Rotator) Step(generation string, slider *domain.Slider) int {
	idx, node := slider.Advance()
	if r.bus != nil {
		b, err := json.Marshal(HeroActiveEvent{Generation: generation, Index: idx, ItemID: node.ItemID})
		if err == nil {
			r.bus.Publish(TopicHeroActive, b)
		}
	}
	return idx
}
