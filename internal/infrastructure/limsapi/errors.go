package limsapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/urufarma/lims-web/internal/domain"
)

// APIError respuesta no-2xx del backend. Message es el "detail"/"message" del cuerpo
// o, si no es JSON, el cuerpo crudo.
type APIError struct {
	Status  int
	Method  string
	Path    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("limsapi: %s %s: HTTP %d", e.Method, e.Path, e.Status)
	}
	return fmt.Sprintf("limsapi: %s %s: HTTP %d: %s", e.Method, e.Path, e.Status, e.Message)
}

// Is permite errors.Is(err, domain.ErrUnauthorized) y similares según el status.
func (e *APIError) Is(target error) bool {
	switch e.Status {
	case http.StatusUnauthorized:
		return target == domain.ErrUnauthorized
	case http.StatusForbidden:
		return target == domain.ErrForbidden
	case http.StatusNotFound:
		return target == domain.ErrNotFound
	case http.StatusConflict:
		return target == domain.ErrConflict
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return target == domain.ErrValidation
	}
	return e.Status >= 500 && target == domain.ErrUnavailable
}

// UserMessage texto para mostrar al usuario: el mensaje del backend si lo hay, si no fallback.
func UserMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

type errorBody struct {
	Detail  json.RawMessage `json:"detail"`
	Message string          `json:"message"`
}

// parseErrorMessage FastAPI devuelve detail string o, en 422, una lista de {loc, msg}.
func parseErrorMessage(raw []byte) string {
	var body errorBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return strings.TrimSpace(string(raw))
	}
	if len(body.Detail) > 0 {
		var s string
		if json.Unmarshal(body.Detail, &s) == nil {
			return s
		}
		var items []struct {
			Msg string `json:"msg"`
		}
		if json.Unmarshal(body.Detail, &items) == nil {
			msgs := make([]string, 0, len(items))
			for _, it := range items {
				if it.Msg != "" {
					msgs = append(msgs, it.Msg)
				}
			}
			if len(msgs) > 0 {
				return strings.Join(msgs, "; ")
			}
		}
	}
	if body.Message != "" {
		return body.Message
	}
	return strings.TrimSpace(string(raw))
}
