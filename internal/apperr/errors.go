// Package apperr holds the error kinds surfaced to the user: validation
// failures caught before any network call, unavailable remote services, and
// responses whose shape could not be understood.
package apperr

import (
	"errors"
	"fmt"
)

const (
	ServiceCatalog = "catalog"
	ServiceSteer   = "steer"
)

// ErrNotFound is returned when a feature key does not match any selection entry.
var ErrNotFound = errors.New("feature not found")

// ValidationError is a caller-side input error; no state is mutated.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// UnavailableError wraps a transport or HTTP failure of a remote service.
// Status is zero when no HTTP response was received.
type UnavailableError struct {
	Service string
	Status  int
	Message string
	Err     error
}

func (e *UnavailableError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s unavailable (HTTP %d): %s", e.Service, e.Status, e.Message)
	}
	return fmt.Sprintf("%s unavailable: %s", e.Service, e.Message)
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}

// ParseError reports a response with an unexpected shape.
type ParseError struct {
	Service string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s returned an unexpected response: %v", e.Service, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsUnavailable reports whether err is an UnavailableError for service.
func IsUnavailable(err error, service string) bool {
	var u *UnavailableError
	return errors.As(err, &u) && u.Service == service
}

// IsParse reports whether err is a ParseError for service.
func IsParse(err error, service string) bool {
	var p *ParseError
	return errors.As(err, &p) && p.Service == service
}

// Describe turns an error into the status line shown to the user.
func Describe(err error) string {
	var (
		v *ValidationError
		u *UnavailableError
		p *ParseError
	)
	switch {
	case errors.As(err, &v):
		return v.Message
	case errors.As(err, &u):
		if u.Service == ServiceCatalog {
			return "Search failed: " + u.Message
		}
		return "Send failed: " + u.Message
	case errors.As(err, &p):
		if p.Service == ServiceCatalog {
			return "Could not read search results: " + p.Err.Error()
		}
		return "Could not read chat reply: " + p.Err.Error()
	default:
		return "Error: " + err.Error()
	}
}
