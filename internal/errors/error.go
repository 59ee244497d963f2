package errors

import (
	"errors"
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryParse       Category = "parse"
	CategoryRecognition Category = "recognition"
	CategoryNavigation  Category = "navigation"
	CategoryRouteConfig Category = "routes"
	CategoryConfig      Category = "config"
	CategoryCLI         Category = "cli"
)

// Input is the navigation string an error refers to, with the byte offset
// of the failure when known.
type Input struct {
	URL string

	// Offset is the failing byte offset in URL, or -1.
	Offset int
}

// OutletError is a structured error with the offending URL, suggestions,
// and documentation.
type OutletError struct {
	// Code is a unique error identifier (e.g., "E101").
	Code string

	// Category is the error type (parse, recognition, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Input is the navigation string that caused the error, if any.
	Input *Input

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Example shows the correct form.
	Example string

	// DocURL is a link to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *OutletError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *OutletError) Unwrap() error {
	return e.Wrapped
}

// WithURL records the navigation string and the failing offset (-1 when
// unknown).
func (e *OutletError) WithURL(url string, offset int) *OutletError {
	e.Input = &Input{URL: url, Offset: offset}
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *OutletError) WithSuggestion(s string) *OutletError {
	e.Suggestion = s
	return e
}

// WithExample adds an example to the error.
func (e *OutletError) WithExample(ex string) *OutletError {
	e.Example = ex
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *OutletError) WithDetail(d string) *OutletError {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *OutletError) Wrap(err error) *OutletError {
	e.Wrapped = err
	return e
}

// New creates an OutletError from a registered error code.
func New(code string) *OutletError {
	template, ok := registry[code]
	if !ok {
		return &OutletError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &OutletError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
		DocURL:   docURL(code),
	}
}

// Newf creates a new OutletError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *OutletError {
	return &OutletError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in an OutletError. An error that already
// carries an OutletError is returned as that OutletError.
func FromError(err error, code string) *OutletError {
	if err == nil {
		return nil
	}
	var oe *OutletError
	if errors.As(err, &oe) {
		return oe
	}
	return New(code).Wrap(err)
}
