package chart

import (
	"errors"
	"fmt"
)

// ErrorKind classifies chart engine failures.
type ErrorKind string

const (
	InvalidKind           ErrorKind = "invalid_kind"
	MissingRequiredField  ErrorKind = "missing_required_field"
	EmptyOrWrongShape     ErrorKind = "empty_or_wrong_shape"
	LengthMismatch        ErrorKind = "length_mismatch"
	NonNumericValue       ErrorKind = "non_numeric_value"
	InconsistentDataShape ErrorKind = "inconsistent_data_shape"
	InvalidBinCount       ErrorKind = "invalid_bin_count"
	RenderFailure         ErrorKind = "render_failure"
)

// Sentinels for errors.Is matching against a kind.
var (
	ErrInvalidKind           = errors.New("invalid chart kind")
	ErrMissingRequiredField  = errors.New("missing required field")
	ErrEmptyOrWrongShape     = errors.New("empty or wrong shape")
	ErrLengthMismatch        = errors.New("length mismatch")
	ErrNonNumericValue       = errors.New("non-numeric value")
	ErrInconsistentDataShape = errors.New("inconsistent data shape")
	ErrInvalidBinCount       = errors.New("invalid bin count")
	ErrRenderFailure         = errors.New("render failure")
)

func (k ErrorKind) sentinel() error {
	switch k {
	case InvalidKind:
		return ErrInvalidKind
	case MissingRequiredField:
		return ErrMissingRequiredField
	case EmptyOrWrongShape:
		return ErrEmptyOrWrongShape
	case LengthMismatch:
		return ErrLengthMismatch
	case NonNumericValue:
		return ErrNonNumericValue
	case InconsistentDataShape:
		return ErrInconsistentDataShape
	case InvalidBinCount:
		return ErrInvalidBinCount
	case RenderFailure:
		return ErrRenderFailure
	}
	return nil
}

// ValidationError is returned when a request does not satisfy the schema of
// its chart kind. No rendering resource exists when one is returned.
type ValidationError struct {
	Kind    ErrorKind
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Unwrap exposes the sentinel for the error kind.
func (e *ValidationError) Unwrap() error {
	return e.Kind.sentinel()
}

func invalid(kind ErrorKind, field, format string, args ...any) *ValidationError {
	return &ValidationError{Kind: kind, Field: field, Message: fmt.Sprintf(format, args...)}
}

// RenderError wraps a failure that happened while drawing or saving a chart.
type RenderError struct {
	Kind  Kind
	Stage string
	Err   error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s chart (%s): %v", e.Kind, e.Stage, e.Err)
}

// Unwrap returns both the render sentinel and the underlying cause.
func (e *RenderError) Unwrap() []error {
	return []error{ErrRenderFailure, e.Err}
}

// KindOf reports the ErrorKind carried by err, or "" when err did not come
// from the chart engine.
func KindOf(err error) ErrorKind {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Kind
	}
	var rerr *RenderError
	if errors.As(err, &rerr) {
		return RenderFailure
	}
	return ""
}

// IsValidation reports whether err is a request validation failure.
func IsValidation(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}
