package errors

import (
	"fmt"
)

// ParseError represents a registry-export artifact or configuration parsing
// failure with optional line metadata.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures configuration validation issues.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// FetchError represents a failure to acquire or parse the desired-state
// artifact for a subject.
type FetchError struct {
	Subject string
	Err     error
}

// NewFetchError constructs a FetchError.
func NewFetchError(subject string, err error) error {
	return &FetchError{Subject: subject, Err: err}
}

func (e *FetchError) Error() string {
	if e == nil {
		return ""
	}
	if e.Subject != "" {
		return fmt.Sprintf("fetch error for %s: %v", e.Subject, e.Err)
	}
	return fmt.Sprintf("fetch error: %v", e.Err)
}

// Unwrap exposes the root error.
func (e *FetchError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// RequirementError indicates the current live-store snapshot could not be
// obtained or interpreted while computing required changes.
type RequirementError struct {
	Subject string
	Err     error
}

// NewRequirementError constructs a RequirementError.
func NewRequirementError(subject string, err error) error {
	return &RequirementError{Subject: subject, Err: err}
}

func (e *RequirementError) Error() string {
	if e == nil {
		return ""
	}
	if e.Subject != "" {
		return fmt.Sprintf("requirement error for %s: %v", e.Subject, e.Err)
	}
	return fmt.Sprintf("requirement error: %v", e.Err)
}

// Unwrap exposes the root error.
func (e *RequirementError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// OperationError represents a failure of the mutating import operation.
type OperationError struct {
	Subject string
	Err     error
}

// NewOperationError constructs an OperationError.
func NewOperationError(subject string, err error) error {
	return &OperationError{Subject: subject, Err: err}
}

func (e *OperationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Subject != "" {
		return fmt.Sprintf("operation error for %s: %v", e.Subject, e.Err)
	}
	return fmt.Sprintf("operation error: %v", e.Err)
}

// Unwrap exposes the root error.
func (e *OperationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// DriftError indicates the post-apply retest still observed required changes
// even though the import operation reported success.
type DriftError struct {
	Subject string
	Message string
}

// NewDriftError constructs a DriftError.
func NewDriftError(subject, message string) error {
	return &DriftError{Subject: subject, Message: message}
}

func (e *DriftError) Error() string {
	if e == nil {
		return ""
	}
	if e.Subject != "" {
		return fmt.Sprintf("drift detected for %s: %s", e.Subject, e.Message)
	}
	return fmt.Sprintf("drift detected: %s", e.Message)
}
