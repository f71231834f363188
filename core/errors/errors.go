// Package errors provides standardized error types and helpers for the Parley codebase.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	// ErrMalformedRecord indicates a source JSON record is missing a required field
	ErrMalformedRecord = errors.New("malformed source record")
	// ErrMalformedArtifact indicates a persisted artifact is missing an expected element
	ErrMalformedArtifact = errors.New("malformed artifact")
	// ErrInvalidInput indicates invalid input or validation failure
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnsupported indicates an unsupported operation or format
	ErrUnsupported = errors.New("unsupported")
)

// RecordError represents a malformed source record with context.
// Record failures are terminal for the file being processed: the caller
// aborts the file, no partial recovery is attempted.
type RecordError struct {
	Medium string // Source medium ("email", "forum")
	Path   string // File path, if known
	Field  string // Field that is absent or has the wrong shape
	Err    error  // Underlying error, if any
}

func (e *RecordError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("malformed %s record in %s: missing or invalid %q", e.Medium, e.Path, e.Field)
	}
	return fmt.Sprintf("malformed %s record: missing or invalid %q", e.Medium, e.Field)
}

// Unwrap always links back to ErrMalformedRecord, with the underlying
// cause alongside when one is attached.
func (e *RecordError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrMalformedRecord, e.Err}
	}
	return []error{ErrMalformedRecord}
}

// ArtifactError represents a persisted artifact missing an expected
// structural element on read.
type ArtifactError struct {
	Path    string // Artifact path, if known
	Element string // Structural element that was expected
	Err     error  // Underlying error, if any
}

func (e *ArtifactError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("malformed artifact %s: missing %q", e.Path, e.Element)
	}
	return fmt.Sprintf("malformed artifact: missing %q", e.Element)
}

// Unwrap always links back to ErrMalformedArtifact, with the
// underlying cause alongside when one is attached.
func (e *ArtifactError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrMalformedArtifact, e.Err}
	}
	return []error{ErrMalformedArtifact}
}

// UnsupportedError represents an unsupported feature or format
type UnsupportedError struct {
	Feature string // Feature or format that is unsupported
	Reason  string // Why it's not supported
	Err     error  // Underlying error, if any
}

func (e *UnsupportedError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("unsupported %s: %s", e.Feature, e.Reason)
	}
	return fmt.Sprintf("unsupported %s", e.Feature)
}

// Unwrap always links back to ErrUnsupported, with the underlying
// cause alongside when one is attached.
func (e *UnsupportedError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrUnsupported, e.Err}
	}
	return []error{ErrUnsupported}
}

// Helper functions for creating common errors

// NewRecord creates a RecordError
func NewRecord(medium, path, field string) *RecordError {
	return &RecordError{
		Medium: medium,
		Path:   path,
		Field:  field,
	}
}

// NewArtifact creates an ArtifactError
func NewArtifact(path, element string) *ArtifactError {
	return &ArtifactError{
		Path:    path,
		Element: element,
	}
}

// NewUnsupported creates an UnsupportedError
func NewUnsupported(feature, reason string) *UnsupportedError {
	return &UnsupportedError{
		Feature: feature,
		Reason:  reason,
	}
}

// Wrap adds context to an error. If err is nil, returns nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf adds formatted context to an error. If err is nil, returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// Is wraps errors.Is for convenience
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
