package httpapi

import (
	"net/http"
	"sync"

	"github.com/invopop/jsonschema"

	"github.com/Guilhem-Bonnet/Anime-Showcase/internal/app"
	"github.com/Guilhem-Bonnet/Anime-Showcase/internal/buildinfo"
	"github.com/Guilhem-Bonnet/Anime-Showcase/internal/domain"
	"github.com/Guilhem-Bonnet/Anime-Showcase/internal/httpjson"
)

type apiError struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty" jsonschema:"enum=network_error,enum=http_status,enum=invalid_payload,enum=canceled,enum=internal"`
}

func generateSchema[T any]() *jsonschema.Schema {
	r := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	s := r.Reflect(v)
	s.Version = ""
	return s
}

var (
	openAPIOnce sync.Once
	openAPIDoc  map[string]any
)

// openAPISpec est construit une fois: les schémas sont dérivés des types Go exposés.
func openAPISpec() map[string]any {
	openAPIOnce.Do(func() {
		jsonOK := func(schemaRef string) map[string]any {
			return map[string]any{
				"description": "OK",
				"content": map[string]any{
					"application/json": map[string]any{
						"schema": map[string]any{"$ref": schemaRef},
					},
				},
			}
		}
		jsonErr := map[string]any{
			"description": "Error",
			"content": map[string]any{
				"application/json": map[string]any{
					"schema": map[string]any{"$ref": "#/components/schemas/Error"},
				},
			},
		}
		animeList := map[string]any{
			"type":  "array",
			"items": map[string]any{"$ref": "#/components/schemas/AnimeSummary"},
		}

		openAPIDoc = map[string]any{
			"openapi": "3.1.0",
			"info": map[string]any{
				"title":   "Anime Showcase API",
				"version": buildinfo.Current().Version,
			},
			"components": map[string]any{
				"schemas": map[string]any{
					"Error":         generateSchema[apiError](),
					"Health":        generateSchema[healthResponse](),
					"AnimeSummary":  generateSchema[domain.AnimeSummary](),
					"AnimeList":     animeList,
					"AnimeDetail":   generateSchema[domain.AnimeDetail](),
					"Genre":         generateSchema[domain.Genre](),
					"HomeSnapshot":  generateSchema[app.HomeSnapshot](),
					"HeroActive":    generateSchema[app.HeroActiveEvent](),
					"BuildInfo":     generateSchema[buildinfo.Info](),
					"OpenAPIObject": map[string]any{"type": "object", "additionalProperties": true},
				},
			},
			"paths": map[string]any{
				"/api/v1/health": map[string]any{
					"get": map[string]any{"responses": map[string]any{"200": jsonOK("#/components/schemas/Health")}},
				},
				"/api/v1/version": map[string]any{
					"get": map[string]any{"responses": map[string]any{"200": jsonOK("#/components/schemas/BuildInfo")}},
				},
				"/api/v1/openapi.json": map[string]any{
					"get": map[string]any{"responses": map[string]any{"200": jsonOK("#/components/schemas/OpenAPIObject")}},
				},
				"/api/v1/events": map[string]any{
					"get": map[string]any{
						"description": "SSE: hello, hero.active (HeroActive), home.loaded, ping.",
						"responses":   map[string]any{"200": map[string]any{"description": "text/event-stream"}},
					},
				},
				"/api/v1/home": map[string]any{
					"get": map[string]any{"responses": map[string]any{"200": jsonOK("#/components/schemas/HomeSnapshot")}},
				},
				"/api/v1/home/reload": map[string]any{
					"post": map[string]any{"responses": map[string]any{
						"200": jsonOK("#/components/schemas/HomeSnapshot"),
						"503": jsonErr,
					}},
				},
				"/api/v1/list": map[string]any{
					"get": map[string]any{
						"parameters": []any{queryParam("endpoint", "Endpoint path relative to the catalog base URL, e.g. top/anime.")},
						"responses": map[string]any{
							"200": jsonOK("#/components/schemas/AnimeList"),
							"400": jsonErr,
							"502": jsonErr,
						},
					},
				},
				"/api/v1/search": map[string]any{
					"get": map[string]any{
						"parameters": []any{queryParam("q", "Search query.")},
						"responses": map[string]any{
							"200": jsonOK("#/components/schemas/AnimeList"),
							"400": jsonErr,
							"502": jsonErr,
						},
					},
				},
				"/api/v1/genres": map[string]any{
					"get": map[string]any{"responses": map[string]any{
						"200": map[string]any{
							"description": "OK",
							"content": map[string]any{"application/json": map[string]any{"schema": map[string]any{
								"type":  "array",
								"items": map[string]any{"$ref": "#/components/schemas/Genre"},
							}}},
						},
						"502": jsonErr,
					}},
				},
				"/api/v1/anime/{id}": map[string]any{
					"get": map[string]any{
						"parameters": []any{map[string]any{
							"name": "id", "in": "path", "required": true,
							"schema": map[string]any{"type": "integer", "minimum": 1},
						}},
						"responses": map[string]any{
							"200": jsonOK("#/components/schemas/AnimeDetail"),
							"400": jsonErr,
							"404": jsonErr,
							"502": jsonErr,
						},
					},
				},
			},
		}
	})
	return openAPIDoc
}

func queryParam(name, description string) map[string]any {
	return map[string]any{
		"name":        name,
		"in":          "query",
		"required":    true,
		"description": description,
		"schema":      map[string]any{"type": "string"},
	}
}

func (s *Server) handleOpenAPI(w http.ResponseWriter, r *http.Request) {
	httpjson.Write(w, http.StatusOK, openAPISpec())
}
