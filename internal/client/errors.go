package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"comanda-service/internal/domain"
)

// ErrCancelled is returned when the view scope that issued a request was
// closed before its result could be applied.
var ErrCancelled = errors.New("request cancelled")

// NetworkError means the request never produced an HTTP response.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string { return fmt.Sprintf("network error: %s: %v", e.Op, e.Err) }

func (e *NetworkError) Unwrap() error { return e.Err }

// ServerError is any other non-2xx answer.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string { return fmt.Sprintf("server error %d: %s", e.Status, e.Message) }

type errorBody struct {
	Message string          `json:"message"`
	Details json.RawMessage `json:"details,omitempty"`
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
	Error   *errorBody      `json:"error,omitempty"`
}

func (e envelope) message() string {
	switch {
	case e.Error != nil && e.Error.Message != "":
		return e.Error.Message
	case e.Message != "":
		return e.Message
	}
	return "request failed"
}

type details struct {
	Field    string `json:"field"`
	Resource string `json:"resource"`
	ID       uint64 `json:"id"`
	Entity   string `json:"entity"`
	From     string `json:"from"`
	To       string `json:"to"`
}

// apiError maps a failed response onto the domain taxonomy.
func apiError(status int, env envelope) error {
	msg := env.message()
	var d details
	if env.Error != nil && len(env.Error.Details) > 0 {
		_ = json.Unmarshal(env.Error.Details, &d)
	}
	switch status {
	case http.StatusBadRequest:
		return &domain.ValidationError{Message: msg}
	case http.StatusUnauthorized:
		return &domain.AuthError{Message: msg}
	case http.StatusForbidden:
		return &domain.ForbiddenError{Message: msg}
	case http.StatusNotFound:
		if d.Resource == "" {
			d.Resource = "resource"
		}
		return &domain.NotFoundError{Resource: d.Resource, ID: d.ID}
	case http.StatusConflict:
		return &domain.InvalidStateError{Message: msg}
	case http.StatusUnprocessableEntity:
		return &domain.InvalidTransitionError{Entity: d.Entity, From: d.From, To: d.To}
	}
	return &ServerError{Status: status, Message: msg}
}
