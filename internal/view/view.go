package view

import (
	"embed"
	"io"
	"io/fs"
	"net/http"
	"strings"

	"github.com/gofiber/template/html/v2"
	"github.com/samber/lo"

	"github.com/Guilhem-Bonnet/Anime-Showcase/internal/app"
	"github.com/Guilhem-Bonnet/Anime-Showcase/internal/domain"
)

//go:embed templates static
var files embed.FS

const layout = "layouts/base"

// Données passées aux templates. Page est commun à toutes (titre, barre de recherche).
type Page struct {
	Title string
	Query string
}

type HomeData struct {
	Page
	Home       app.HomeSnapshot
	IntervalMS int64
}

type ListData struct {
	Page
	Heading string
	Cards   []domain.Node
	Message string
}

type BrowseData struct {
	Page
	Genres  []domain.Genre
	Message string
}

type DetailData struct {
	Page
	Anime    domain.AnimeDetail
	Score    string
	Synopsis string
	Message  string
}

type ErrorData struct {
	Page
	Status  int
	Message string
}

type Renderer struct {
	engine *html.Engine
}

func New() (*Renderer, error) {
	sub, err := fs.Sub(files, "templates")
	if err != nil {
		return nil, err
	}
	engine := html.NewFileSystem(http.FS(sub), ".html")
	engine.AddFunc("genrePath", domain.GenrePath)
	engine.AddFunc("genreNames", func(genres []domain.Genre) string {
		return strings.Join(lo.Map(genres, func(g domain.Genre, _ int) string { return g.Name }), ", ")
	})
	if err := engine.Load(); err != nil {
		return nil, err
	}
	return &Renderer{engine: engine}, nil
}

// Render exécute la page name dans le layout commun.
func (r *Renderer) Render(w io.Writer, name string, data any) error {
	return r.engine.Render(w, name, data, layout)
}

// Static sert les fichiers embarqués (app.js, style.css); à monter derrière StripPrefix.
func Static() http.Handler {
	sub, err := fs.Sub(files, "static")
	if err != nil {
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}
