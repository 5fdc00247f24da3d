package engine

import (
	"errors"

	"github.com/tartampluch/go-age/internal/config"
)

// Kind classifies a rejected birth date.
type Kind string

const (
	KindMissingInput Kind = config.KindMissingInput
	KindFutureDate   Kind = config.KindFutureDate
	KindTooOld       Kind = config.KindTooOld
)

// ValidationError reports why a birth date cannot be used for a calculation.
// It is recoverable: the caller presents a message and asks for another date.
type ValidationError struct {
	Kind    Kind
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Message != "" {
		return config.ErrValidation + ": " + e.Message
	}
	return config.ErrValidation + ": " + string(e.Kind)
}

// Is matches validation errors by kind, so errors.Is(err, ErrTooOld) works on any wrapped value.
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinels for errors.Is.
var (
	ErrMissingInput = &ValidationError{Kind: KindMissingInput, Message: config.ErrMissingInput}
	ErrFutureDate   = &ValidationError{Kind: KindFutureDate, Message: config.ErrFutureDate}
	ErrTooOld       = &ValidationError{Kind: KindTooOld, Message: config.ErrTooOld}
)

// KindOf extracts the validation kind from err. The boolean is false for other errors.
func KindOf(err error) (Kind, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Kind, true
	}
	return "", false
}
