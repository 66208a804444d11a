package errors

import (
	stderrors "errors"
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryConfig Category = "config"
	CategoryScript Category = "script"
	CategoryServer Category = "server"
	CategoryCLI    Category = "cli"
)

// SonnerError is a structured error with a code and a fix suggestion.
type SonnerError struct {
	// Code is a unique error identifier (e.g., "E120").
	Code string

	// Category is the error type.
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *SonnerError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *SonnerError) Unwrap() error {
	return e.Wrapped
}

// WithSuggestion adds a fix suggestion to the error.
func (e *SonnerError) WithSuggestion(s string) *SonnerError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *SonnerError) WithDetail(d string) *SonnerError {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *SonnerError) Wrap(err error) *SonnerError {
	e.Wrapped = err
	return e
}

// New creates a SonnerError from a registered error code.
func New(code string) *SonnerError {
	template, ok := registry[code]
	if !ok {
		return &SonnerError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &SonnerError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
	}
}

// FromError wraps a standard error in a SonnerError with code. A
// SonnerError anywhere in err's chain is returned as is.
func FromError(err error, code string) *SonnerError {
	if err == nil {
		return nil
	}
	var se *SonnerError
	if stderrors.As(err, &se) {
		return se
	}
	return New(code).Wrap(err)
}

// HasCode reports whether err is a SonnerError with the given code.
func HasCode(err error, code string) bool {
	for err != nil {
		if se, ok := err.(*SonnerError); ok && se.Code == code {
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
