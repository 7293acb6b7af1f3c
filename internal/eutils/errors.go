// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package eutils

import (
	"errors"
	"fmt"
)

// ErrInvalidDateRange is returned by MakeDateBins when the start date
// falls after the end date.
var ErrInvalidDateRange = errors.New("start date must not be after end date")

// StatusError is returned when the service answers with a non-success
// HTTP status. It carries no recovery semantics; the whole resolve call
// aborts.
type StatusError struct {
	StatusCode int
	Path       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("eutils %s returned HTTP %d", e.Path, e.StatusCode)
}

// ParseError is returned when a response body lacks an expected field
// or carries one in an unexpected shape.
type ParseError struct {
	Field string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("parsing %s field", e.Field)
	}
	return fmt.Sprintf("parsing %s field: %v", e.Field, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
