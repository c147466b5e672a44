package project

import (
	"errors"
	"fmt"
)

// Sentinel errors for load failures that have no underlying cause.
var (
	ErrNotObject             = errors.New("project file must be a JSON object")
	ErrMissingAppVersion     = errors.New("the appVersion of the project file should be a string")
	ErrInvalidUTF8           = errors.New("project file is not valid UTF-8")
	ErrDanglingKey           = errors.New("every audioKey in audioKeys should be a key of audioItems")
	ErrMissingCharacterIndex = errors.New(`every audioItem should have a "characterIndex" attribute`)
)

// ErrorKind classifies why a project file failed to load.
type ErrorKind string

const (
	KindIO        ErrorKind = "io"
	KindDecode    ErrorKind = "decode"
	KindVersion   ErrorKind = "version"
	KindSchema    ErrorKind = "schema"
	KindInvariant ErrorKind = "invariant"
)

// LoadError reports a project file that could not be loaded. The kind is
// kept for logs; users only ever see a generic message.
type LoadError struct {
	Kind ErrorKind
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s error in %s: %v", e.Kind, e.Path, e.Err)
	}
	return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
}

// Unwrap returns the underlying error.
func (e *LoadError) Unwrap() error {
	return e.Err
}

// ValidationError represents a validation error with context.
type ValidationError struct {
	Path string // dot-notation path to the offending value
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidationResult contains validation results.
type ValidationResult struct {
	Valid  bool
	Errors []error
}

func newValidationResult() *ValidationResult {
	return &ValidationResult{
		Valid:  true,
		Errors: make([]error, 0),
	}
}

func (r *ValidationResult) add(err error) {
	r.Valid = false
	r.Errors = append(r.Errors, err)
}

// Err returns nil for a valid result, the single error when there is one,
// and a joined error otherwise.
func (r *ValidationResult) Err() error {
	if r == nil || r.Valid {
		return nil
	}
	switch len(r.Errors) {
	case 0:
		return errors.New("validation failed")
	case 1:
		return r.Errors[0]
	}
	return errors.Join(r.Errors...)
}
