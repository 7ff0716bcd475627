package ports

import (
	"errors"
	"strconv"
)

var ErrNotFound = errors.New("not found")

// NetworkError: échec de transport (DNS, connexion refusée, timeout, annulation).
type NetworkError struct {
	Path string
	Err  error
}

func (e *NetworkError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return "network error on " + e.Path
	}
	return "network error on " + e.Path + ": " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error { return e.Err }

// APIError: statut HTTP hors 2xx, ou corps illisible/mal formé.
// StatusCode vaut le statut reçu (y compris 200 quand seul le corps est en cause).
type APIError struct {
	Path       string
	StatusCode int
	Err        error
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	msg := "api error on " + e.Path + " (status " + strconv.Itoa(e.StatusCode) + ")"
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *APIError) Unwrap() error { return e.Err }

// Malformed indique un corps de réponse rejeté alors que le statut était un succès.
func (e *APIError) Malformed() bool {
	return e != nil && e.StatusCode >= 200 && e.StatusCode < 300
}
