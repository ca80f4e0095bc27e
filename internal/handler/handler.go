package handler

import (
	"errors"
	"net/http"

	"github.com/aebalz/vibetrack/internal/analytics"
	"github.com/aebalz/vibetrack/internal/imaging"
	"github.com/aebalz/vibetrack/internal/repository"
	"github.com/aebalz/vibetrack/internal/service"
)

// Handler groups every HTTP handler of the application.
type Handler struct {
	Health      *HealthHandler
	Entries     *EntryHandler
	Analytics   *AnalyticsHandler
	Preferences *PreferenceHandler
	Relay       *RelayHandler
}

// Envelope wraps successful responses.
type Envelope struct {
	Data any   `json:"data"`
	Meta *Meta `json:"meta,omitempty"`
}

// Meta carries list metadata.
type Meta struct {
	Count int `json:"count"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

func ok(data any) (int, any) {
	return http.StatusOK, Envelope{Data: data}
}

func list[T any](items []T) (int, any) {
	if items == nil {
		items = []T{}
	}
	return http.StatusOK, Envelope{Data: items, Meta: &Meta{Count: len(items)}}
}

func fail(err error) (int, any) {
	return statusFor(err), ErrorResponse{Error: err.Error()}
}

func failStatus(status int, msg string) (int, any) {
	return status, ErrorResponse{Error: msg}
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, imaging.ErrDecode),
		errors.Is(err, imaging.ErrTooLarge),
		errors.Is(err, repository.ErrUnsupportedFormat),
		errors.Is(err, analytics.ErrUnknownTimeframe):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrEntryNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
