package app

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/Guilhem-Bonnet/Anime-Showcase/internal/domain"
)

const (
	HeroFallbackMessage     = "Could not load featured anime."
	CarouselFallbackMessage = "Could not load anime. The API might be down."
	NoSynopsisText          = "No synopsis available."
	ScoreNotAvailable       = "N/A"
	Ellipsis                = "..."

	DefaultSynopsisLimit = 200
)

var ErrInvalidItem = errors.New("invalid catalog item")

// SynopsisOptions règle la troncature du synopsis des slides.
// EllipsisAlways reproduit le comportement historique: "..." même sans troncature.
type SynopsisOptions struct {
	Limit          int
	EllipsisAlways bool
}

func DefaultSynopsisOptions() SynopsisOptions {
	return SynopsisOptions{Limit: DefaultSynopsisLimit, EllipsisAlways: true}
}

// TruncateSynopsis coupe en runes, pas en octets.
func TruncateSynopsis(synopsis *string, opts SynopsisOptions) string {
	if synopsis == nil || *synopsis == "" {
		return NoSynopsisText
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultSynopsisLimit
	}
	runes := []rune(*synopsis)
	if len(runes) > limit {
		return string(runes[:limit]) + Ellipsis
	}
	if opts.EllipsisAlways {
		return *synopsis + Ellipsis
	}
	return *synopsis
}

// FullSynopsis: texte intégral pour la page de détail, sans troncature.
func FullSynopsis(synopsis *string) string {
	if synopsis == nil || *synopsis == "" {
		return NoSynopsisText
	}
	return *synopsis
}

// FormatScore: score absent ou nul -> "N/A".
func FormatScore(score *float64) string {
	if score == nil || *score == 0 {
		return ScoreNotAvailable
	}
	return strconv.FormatFloat(*score, 'f', -1, 64)
}

func validateSummary(a domain.AnimeSummary) error {
	if a.ID <= 0 {
		return fmt.Errorf("%w: id %d", ErrInvalidItem, a.ID)
	}
	if strings.TrimSpace(a.Title) == "" {
		return fmt.Errorf("%w: empty title for id %d", ErrInvalidItem, a.ID)
	}
	if a.ImageURL != "" {
		u, err := url.Parse(a.ImageURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%w: bad image url for id %d", ErrInvalidItem, a.ID)
		}
	}
	return nil
}

func BuildSlide(a domain.AnimeSummary, active bool, opts SynopsisOptions) (domain.Node, error) {
	if err := validateSummary(a); err != nil {
		return domain.Node{}, err
	}
	return domain.Node{
		Kind:     domain.NodeSlide,
		ItemID:   a.ID,
		Title:    a.Title,
		ImageURL: a.ImageURL,
		Text:     TruncateSynopsis(a.Synopsis, opts),
		Href:     domain.DetailPath(a.ID),
		Active:   active,
	}, nil
}

func BuildCard(a domain.AnimeSummary) (domain.Node, error) {
	if err := validateSummary(a); err != nil {
		return domain.Node{}, err
	}
	return domain.Node{
		Kind:     domain.NodeCard,
		ItemID:   a.ID,
		Title:    a.Title,
		ImageURL: a.ImageURL,
		Score:    FormatScore(a.Score),
		Href:     domain.DetailPath(a.ID),
	}, nil
}

func MessageNode(text string) domain.Node {
	return domain.Node{Kind: domain.NodeMessage, Text: text}
}

// BuildSlides: la première slide est active. Un seul élément invalide invalide toute la liste.
func BuildSlides(items []domain.AnimeSummary, opts SynopsisOptions) ([]domain.Node, error) {
	nodes := make([]domain.Node, 0, len(items))
	for i, it := range items {
		n, err := BuildSlide(it, i == 0, opts)
		if err != nil {
			return nil, &CodedError{Code: CodeInvalidPayload, Message: "slide " + strconv.Itoa(i), Err: err}
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func BuildCards(items []domain.AnimeSummary) ([]domain.Node, error) {
	nodes := make([]domain.Node, 0, len(items))
	for i, it := range items {
		n, err := BuildCard(it)
		if err != nil {
			return nil, &CodedError{Code: CodeInvalidPayload, Message: "card " + strconv.Itoa(i), Err: err}
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}
