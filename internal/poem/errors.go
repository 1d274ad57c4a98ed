package poem

import (
	"errors"
	"fmt"
)

// ErrNoPoem signals that no poem could be recovered from model output.
// Callers substitute the deterministic fallback; this never reaches a user.
var ErrNoPoem = errors.New("no poem could be extracted from model output")

// ConfigError represents a provider misconfiguration (missing or rejected
// credential). Not retryable by the user.
type ConfigError struct {
	Message string
	Cause   error
}

func (e *ConfigError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("configuration error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// UpstreamBusyError represents provider throttling or exhausted quota.
// Transient; the user may retry.
type UpstreamBusyError struct {
	Cause error
}

func (e *UpstreamBusyError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("upstream busy: %v", e.Cause)
	}
	return "upstream busy"
}

func (e *UpstreamBusyError) Unwrap() error {
	return e.Cause
}

// GenerationError represents any other upstream failure.
type GenerationError struct {
	Message string
	Cause   error
}

func (e *GenerationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("generation failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("generation failed: %s", e.Message)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}
