package services

import (
	"errors"
	"fmt"
)

// Error kinds a provider can fail with. Match them with errors.Is.
var (
	ErrTokenAcquisition = errors.New("token acquisition failed")
	ErrProviderFetch    = errors.New("provider fetch failed")
)

// TransportError is returned when an outbound call never produced an HTTP
// response: connection failures, timeouts, cancelled contexts.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// PlatformError represents an error from a catalog provider
type PlatformError struct {
	Platform  string
	Operation string
	Message   string
	Kind      error
	Err       error
}

func (e *PlatformError) Error() string {
	msg := e.Platform + " " + e.Operation + " failed"
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += " - " + e.Err.Error()
	}
	return msg
}

func (e *PlatformError) Unwrap() error {
	return e.Err
}

// Is matches the error kind, so errors.Is(err, ErrProviderFetch) works
// without the kind being part of the wrapped chain.
func (e *PlatformError) Is(target error) bool {
	return e.Kind != nil && target == e.Kind
}

func tokenError(platform, message string, err error) error {
	return &PlatformError{
		Platform:  platform,
		Operation: "acquire_token",
		Message:   message,
		Kind:      ErrTokenAcquisition,
		Err:       err,
	}
}

func fetchError(platform, operation, message string, err error) error {
	return &PlatformError{
		Platform:  platform,
		Operation: operation,
		Message:   message,
		Kind:      ErrProviderFetch,
		Err:       err,
	}
}

// ErrorKind returns a short label for logging provider failures
func ErrorKind(err error) string {
	var transport *TransportError
	switch {
	case errors.Is(err, ErrTokenAcquisition):
		return "token_acquisition"
	case errors.As(err, &transport):
		return "transport"
	case errors.Is(err, ErrProviderFetch):
		return "provider_fetch"
	default:
		return "unknown"
	}
}
