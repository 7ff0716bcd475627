package jikan

// Formes JSON de l'API Jikan v4 (seuls les champs consommés).

type imageSet struct {
	JPG struct {
		ImageURL      string `json:"image_url"`
		SmallImageURL string `json:"small_image_url"`
		LargeImageURL string `json:"large_image_url"`
	} `json:"jpg"`
}

type namedRef struct {
	MalID int    `json:"mal_id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type animeData struct {
	MalID    int      `json:"mal_id"`
	Title    string   `json:"title"`
	Synopsis *string  `json:"synopsis"`
	Score    *float64 `json:"score"`
	Images   imageSet `json:"images"`

	Type     string     `json:"type"`
	Status   string     `json:"status"`
	Episodes *int       `json:"episodes"`
	Year     *int       `json:"year"`
	Genres   []namedRef `json:"genres"`
}

type listResponse struct {
	Data []animeData `json:"data"`
}

type itemResponse struct {
	Data *animeData `json:"data"`
}

type genresResponse struct {
	Data []namedRef `json:"data"`
}

type streamingResponse struct {
	Data []struct {
		Name string `json:"name"`
		URL  string `json:"url"`
	} `json:"data"`
}
