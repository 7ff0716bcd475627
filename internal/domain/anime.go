package domain

import (
	"net/url"
	"strconv"
)

// AnimeSummary est l'entrée minimale renvoyée par le catalogue distant.
// Lecture seule: construite à chaque réponse, jamais modifiée.
type AnimeSummary struct {
	ID       int      `json:"id" jsonschema:"minimum=1"`
	Title    string   `json:"title"`
	ImageURL string   `json:"imageUrl"`
	Synopsis *string  `json:"synopsis,omitempty"`
	Score    *float64 `json:"score,omitempty"`
}

type Genre struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type StreamingLink struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type AnimeDetail struct {
	AnimeSummary

	Type     string `json:"type,omitempty"`
	Status   string `json:"status,omitempty"`
	Episodes int    `json:"episodes,omitempty"`
	Year     int    `json:"year,omitempty"`

	Genres    []Genre         `json:"genres"`
	Streaming []StreamingLink `json:"streaming"`
}

// DetailPath renvoie la route de détail produite pour chaque élément rendu.
func DetailPath(id int) string {
	return "/anime/" + strconv.Itoa(id)
}

func GenrePath(id int, name string) string {
	return "/genre/" + strconv.Itoa(id) + "/" + url.PathEscape(name)
}
