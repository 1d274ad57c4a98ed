package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/valentino/internal/poem"
)

// HTTPStatus returns the appropriate HTTP status code for a generation error.
func HTTPStatus(err error) int {
	var busy *poem.UpstreamBusyError
	if errors.As(err, &busy) {
		return http.StatusServiceUnavailable
	}
	// ConfigError and anything else are server-side failures.
	return http.StatusInternalServerError
}

// UserMessage maps a generation error to a human-readable, non-technical
// message. Provider error payloads never pass through.
func UserMessage(err error) string {
	var configErr *poem.ConfigError
	if errors.As(err, &configErr) {
		return "The poem service is misconfigured. Please try again later."
	}

	var busy *poem.UpstreamBusyError
	if errors.As(err, &busy) {
		return "The poets are busy right now. Please try again in a moment."
	}

	return "Failed to generate poem. Please try again."
}
