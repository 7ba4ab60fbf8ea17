// Package errors defines the error taxonomy shared by the chart engine and
// its callers.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// ErrorType represents the category of error.
type ErrorType string

const (
	// ErrorTypeValidation is malformed input rejected before domain logic runs.
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypePrinciple is a creative-orientation or delayed-resolution violation.
	ErrorTypePrinciple ErrorType = "principle_violation"
	// ErrorTypeNotFound is a reference to a chart, action step or entity that does not exist.
	ErrorTypeNotFound ErrorType = "not_found"
	// ErrorTypeIO is a store failure other than absence.
	ErrorTypeIO ErrorType = "io"
)

// BaseError is the base error type with common fields.
type BaseError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error returns the message, followed by the wrapped error if any.
func (e *BaseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *BaseError) Unwrap() error {
	return e.Err
}

// NewBaseError creates a new base error.
func NewBaseError(errType ErrorType, message string, err error) *BaseError {
	return &BaseError{
		Type:    errType,
		Message: message,
		Err:     err,
	}
}

// ValidationError is returned for malformed input.
type ValidationError struct {
	*BaseError
	Field string
}

// NewValidation creates a ValidationError for field.
func NewValidation(field, reason string) *ValidationError {
	msg := reason
	if field != "" {
		msg = fmt.Sprintf("invalid %s: %s", field, reason)
	}
	return &ValidationError{
		BaseError: NewBaseError(ErrorTypeValidation, msg, nil),
		Field:     field,
	}
}

// Principle names a domain principle enforced on chart text.
type Principle string

const (
	PrincipleCreativeOrientation Principle = "creative_orientation"
	PrincipleDelayedResolution   Principle = "delayed_resolution"
)

// PrincipleViolation carries the matched terms and the remediation text shown
// to the caller unchanged.
type PrincipleViolation struct {
	*BaseError
	Principle Principle
	Subject   string
	Terms     []string
}

// NewPrincipleViolation creates a PrincipleViolation whose Error() is exactly message.
func NewPrincipleViolation(principle Principle, subject string, terms []string, message string) *PrincipleViolation {
	return &PrincipleViolation{
		BaseError: NewBaseError(ErrorTypePrinciple, message, nil),
		Principle: principle,
		Subject:   subject,
		Terms:     terms,
	}
}

// NotFoundError is returned when a reference does not resolve.
type NotFoundError struct {
	*BaseError
	Reference string
	Available []string
}

// NewNotFound creates a NotFoundError with a short message.
func NewNotFound(kind, reference string) *NotFoundError {
	return &NotFoundError{
		BaseError: NewBaseError(ErrorTypeNotFound, fmt.Sprintf("%s %s not found", kind, reference), nil),
		Reference: reference,
	}
}

// NewNotFoundWithAvailable creates a NotFoundError whose message lists the
// references that do exist. available entries are printed one per line.
func NewNotFoundWithAvailable(title, reference, expected, listHeading string, available []string, tip string) *NotFoundError {
	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Received: %q\n", reference)
	fmt.Fprintf(&b, "Expected: %s\n", expected)
	if listHeading != "" {
		b.WriteString("\n")
		b.WriteString(listHeading)
		b.WriteString("\n")
		if len(available) == 0 {
			b.WriteString("(none found)\n")
		} else {
			b.WriteString(strings.Join(available, "\n"))
			b.WriteString("\n")
		}
	}
	if tip != "" {
		b.WriteString("\nTip: ")
		b.WriteString(tip)
	}
	return &NotFoundError{
		BaseError: NewBaseError(ErrorTypeNotFound, strings.TrimRight(b.String(), "\n"), nil),
		Reference: reference,
		Available: available,
	}
}

// IOError wraps a store failure.
type IOError struct {
	*BaseError
	Path string
}

// NewIO creates an IOError for path.
func NewIO(path, operation string, err error) *IOError {
	return &IOError{
		BaseError: NewBaseError(ErrorTypeIO, fmt.Sprintf("%s %s", operation, path), err),
		Path:      path,
	}
}

// IsValidation reports whether err is or wraps a ValidationError.
func IsValidation(err error) bool {
	var target *ValidationError
	return stderrors.As(err, &target)
}

// IsPrincipleViolation reports whether err is or wraps a PrincipleViolation.
func IsPrincipleViolation(err error) bool {
	var target *PrincipleViolation
	return stderrors.As(err, &target)
}

// IsNotFound reports whether err is or wraps a NotFoundError.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return stderrors.As(err, &target)
}

// IsIO reports whether err is or wraps an IOError.
func IsIO(err error) bool {
	var target *IOError
	return stderrors.As(err, &target)
}

// Message returns the text to show a caller: the message of the domain error
// inside err's chain without the wrapping context, or err.Error() otherwise.
// Principle violation text therefore reaches the caller unchanged.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var (
		pv  *PrincipleViolation
		nf  *NotFoundError
		val *ValidationError
	)
	switch {
	case stderrors.As(err, &pv):
		return pv.Error()
	case stderrors.As(err, &nf):
		return nf.Error()
	case stderrors.As(err, &val):
		return val.Error()
	}
	return err.Error()
}

// TypeOf returns the category of err, or "" if it is not one of ours.
func TypeOf(err error) ErrorType {
	var base *BaseError
	switch {
	case IsValidation(err):
		return ErrorTypeValidation
	case IsPrincipleViolation(err):
		return ErrorTypePrinciple
	case IsNotFound(err):
		return ErrorTypeNotFound
	case IsIO(err):
		return ErrorTypeIO
	case stderrors.As(err, &base):
		return base.Type
	}
	return ""
}
