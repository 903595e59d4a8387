// Package domainerrors defines coded errors shared across service
// boundaries. Stores return sentinel errors; services translate them into
// coded errors here so transports can map outcomes without string matching.
package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies an error for callers and for the HTTP layer.
type Code string

const (
	CodeBadRequest Code = "bad_request"
	CodeNotFound   Code = "not_found"
	CodeConflict   Code = "conflict"
	// CodeCollision marks exhausted credential regeneration: every issued
	// token already existed. Distinct from CodeConflict so operators can
	// tell an entropy problem from an ordinary uniqueness clash.
	CodeCollision Code = "issuance_collision"
	// CodeUnavailable marks a backing-store failure: the verdict is
	// unknown, not denied.
	CodeUnavailable Code = "infrastructure_error"
	CodeInternal    Code = "internal"
)

// DomainError carries a code, a human message and an optional cause.
type DomainError struct {
	Code    Code
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// New creates a coded error without a cause.
func New(code Code, message string) error {
	return &DomainError{Code: code, Message: message}
}

// Wrap creates a coded error around a cause; errors.Is still reaches the
// cause through it.
func Wrap(code Code, message string, err error) error {
	return &DomainError{Code: code, Message: message, Err: err}
}

// Is reports whether err is a DomainError anywhere in its chain.
func Is(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

// HasCode reports whether err carries the given code anywhere in its chain.
func HasCode(err error, code Code) bool {
	var de *DomainError
	return errors.As(err, &de) && de.Code == code
}

// CodeOf extracts the code from err, defaulting to CodeInternal for
// uncoded errors.
func CodeOf(err error) Code {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// ToHTTPStatus maps a code to its HTTP response status.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeBadRequest:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict, CodeCollision:
		return http.StatusConflict
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
