package app

import (
	"context"
	"errors"

	"github.com/Guilhem-Bonnet/Anime-Showcase/internal/ports"
)

var ErrNotFound = ports.ErrNotFound

// Codes d'erreur stables, repris dans les logs et les réponses JSON.
const (
	CodeNetwork        = "network_error"
	CodeHTTPStatus     = "http_status"
	CodeInvalidPayload = "invalid_payload"
	CodeCanceled       = "canceled"
	CodeInternal       = "internal"
)

// CodedError porte un code stable en plus du message.
type CodedError struct {
	Code    string
	Message string
	Err     error
}

func (e *CodedError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return e.Message
	}
	if e.Message == "" {
		return e.Err.Error()
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *CodedError) Unwrap() error { return e.Err }

// ErrorCode classe une erreur du catalogue ou du rendu.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	var coded *CodedError
	if errors.As(err, &coded) && coded.Code != "" {
		return coded.Code
	}
	var apiErr *ports.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Malformed() {
			return CodeInvalidPayload
		}
		return CodeHTTPStatus
	}
	if errors.Is(err, context.Canceled) {
		return CodeCanceled
	}
	var netErr *ports.NetworkError
	if errors.As(err, &netErr) {
		return CodeNetwork
	}
	return CodeInternal
}
