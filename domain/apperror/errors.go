package apperror

import (
	"errors"
	"fmt"
)

// DisplayLimit bounds provider error text shown to operators.
const DisplayLimit = 200

// TransportError wraps network, DNS and timeout failures.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport error: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// AuthError means the provider rejected the OAuth exchange.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string { return "LinkedIn authorization failed: " + e.Message }

// APIError is a non-success provider response. Body is kept verbatim.
type APIError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: HTTP %d: %s", e.Op, e.StatusCode, e.Body)
}

// Display is the truncated form stored per item.
func (e *APIError) Display() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, Truncate(e.Body, DisplayLimit))
}

// ConfigError is raised before any call when a credential or target id is missing.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string { return e.Reason }

func NewConfigError(reason string) error { return &ConfigError{Reason: reason} }

func IsAuth(err error) bool {
	var target *AuthError
	return errors.As(err, &target)
}

func IsConfig(err error) bool {
	var target *ConfigError
	return errors.As(err, &target)
}

func IsTransport(err error) bool {
	var target *TransportError
	return errors.As(err, &target)
}

// Message returns the operator-facing text for err.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Display()
	}
	return Truncate(err.Error(), DisplayLimit)
}

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
