package app

import (
	"errors"
	"strings"
	"testing"

	"github.com/Guilhem-Bonnet/Anime-Showcase/internal/domain"
)

func TestTruncateSynopsis(t *testing.T) {
	long := strings.Repeat("a", 250)
	short := "A short synopsis."
	accented := strings.Repeat("é", 201)

	tests := []struct {
		name     string
		synopsis *string
		opts     SynopsisOptions
		want     string
	}{
		{"absent", nil, DefaultSynopsisOptions(), NoSynopsisText},
		{"empty", strPtr(""), DefaultSynopsisOptions(), NoSynopsisText},
		{"long", &long, DefaultSynopsisOptions(), strings.Repeat("a", 200) + "..."},
		{"short keeps ellipsis by default", &short, DefaultSynopsisOptions(), short + "..."},
		{"short without forced ellipsis", &short, SynopsisOptions{Limit: 200}, short},
		{"exactly limit", strPtr(strings.Repeat("b", 200)), SynopsisOptions{Limit: 200}, strings.Repeat("b", 200)},
		{"runes not bytes", &accented, DefaultSynopsisOptions(), strings.Repeat("é", 200) + "..."},
		{"zero limit falls back", &long, SynopsisOptions{}, strings.Repeat("a", 200) + "..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncateSynopsis(tt.synopsis, tt.opts); got != tt.want {
				t.Fatalf("TruncateSynopsis: want %q, got %q", tt.want, got)
			}
		})
	}
}

func TestFormatScore(t *testing.T) {
	tests := []struct {
		score *float64
		want  string
	}{
		{nil, "N/A"},
		{floatPtr(0), "N/A"},
		{floatPtr(9.1), "9.1"},
		{floatPtr(8.75), "8.75"},
		{floatPtr(8), "8"},
	}
	for _, tt := range tests {
		if got := FormatScore(tt.score); got != tt.want {
			t.Fatalf("FormatScore(%v): want %q, got %q", tt.score, tt.want, got)
		}
	}
}

func TestBuildSlides_FirstActiveAndOrder(t *testing.T) {
	nodes, err := BuildSlides(summaries(1, 2, 3, 4, 5), DefaultSynopsisOptions())
	if err != nil {
		t.Fatalf("BuildSlides: %v", err)
	}
	if len(nodes) != 5 {
		t.Fatalf("slides: want 5, got %d", len(nodes))
	}
	for i, n := range nodes {
		if n.Kind != domain.NodeSlide || n.ItemID != i+1 || n.Active != (i == 0) || n.Href != domain.DetailPath(i+1) {
			t.Fatalf("slide %d: got %+v", i, n)
		}
	}
	if nodes[0].Text != "Synopsis 1..." {
		t.Fatalf("synopsis: got %q", nodes[0].Text)
	}
}

func TestBuildCards_ScoreMarker(t *testing.T) {
	items := summaries(10, 11)
	items[1].Score = nil
	nodes, err := BuildCards(items)
	if err != nil {
		t.Fatalf("BuildCards: %v", err)
	}
	if len(nodes) != 2 {
		t.Fatalf("cards: want 2, got %d", len(nodes))
	}
	if nodes[0].Score != "9" || nodes[1].Score != ScoreNotAvailable {
		t.Fatalf("scores: got %q %q", nodes[0].Score, nodes[1].Score)
	}
	if nodes[1].Href != "/anime/11" {
		t.Fatalf("href: got %q", nodes[1].Href)
	}
}

func TestBuilders_RejectInvalidItems(t *testing.T) {
	bad := []domain.AnimeSummary{
		{ID: 0, Title: "x"},
		{ID: 1, Title: "  "},
		{ID: 2, Title: "x", ImageURL: "javascript:alert(1)"},
		{ID: 3, Title: "x", ImageURL: "/relative.jpg"},
	}
	for _, a := range bad {
		if _, err := BuildCard(a); !errors.Is(err, ErrInvalidItem) {
			t.Fatalf("BuildCard(%+v): want ErrInvalidItem, got %v", a, err)
		}
	}

	items := summaries(1, 2)
	items = append(items, bad[2])
	_, err := BuildCards(items)
	var coded *CodedError
	if !errors.As(err, &coded) || coded.Code != CodeInvalidPayload {
		t.Fatalf("BuildCards: want invalid_payload CodedError, got %v", err)
	}
	if ErrorCode(err) != CodeInvalidPayload {
		t.Fatalf("ErrorCode: got %q", ErrorCode(err))
	}

	// image absente: acceptée, la carte est rendue sans image
	if _, err := BuildCard(domain.AnimeSummary{ID: 4, Title: "No image"}); err != nil {
		t.Fatalf("BuildCard without image: %v", err)
	}
}

func TestFullSynopsis(t *testing.T) {
	long := strings.Repeat("x", 500)
	if got := FullSynopsis(&long); got != long {
		t.Fatalf("FullSynopsis truncated the text")
	}
	if got := FullSynopsis(strPtr("")); got != NoSynopsisText {
		t.Fatalf("FullSynopsis(empty): got %q", got)
	}
}
