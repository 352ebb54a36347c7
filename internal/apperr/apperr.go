// Package apperr defines the error taxonomy shared by the core, the services,
// and the adapters. Every concrete error type matches one sentinel via errors.Is,
// so callers can branch on the class without knowing the concrete type.
package apperr

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinels for errors.Is checks.
var (
	ErrValidation      = errors.New("invalid input")
	ErrInvalidDocument = errors.New("invalid document")
	ErrNotFound        = errors.New("not found")
	ErrPhaseBlocked    = errors.New("phase blocked")
	ErrAlreadyFinal    = errors.New("already in final phase")
	ErrStore           = errors.New("store failure")
)

// ValidationError reports malformed input. Document marks failures of the
// checklist markup itself; an empty Field then means the whole document.
type ValidationError struct {
	Field    string
	Message  string
	Document bool
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		if e.Document {
			return "invalid document: " + e.Message
		}
		return "invalid input: " + e.Message
	}
	return "invalid " + e.Field + ": " + e.Message
}

// Is reports whether target is ErrValidation, or ErrInvalidDocument for
// document failures.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation || (e.Document && target == ErrInvalidDocument)
}

// NotFoundError reports an unknown document, project, item, or task id.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// Is reports whether target is ErrNotFound.
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// PhaseBlockedError is returned when CRITICAL items are still open in the current phase.
type PhaseBlockedError struct {
	Phase    string
	Blocking []string
}

func (e *PhaseBlockedError) Error() string {
	return fmt.Sprintf("phase %s blocked by %d critical item(s): %s",
		e.Phase, len(e.Blocking), strings.Join(e.Blocking, "; "))
}

// Is reports whether target is ErrPhaseBlocked.
func (e *PhaseBlockedError) Is(target error) bool { return target == ErrPhaseBlocked }

// AlreadyFinalError is returned when advancing past the last phase.
type AlreadyFinalError struct {
	Phase string
}

func (e *AlreadyFinalError) Error() string {
	if e.Phase == "" {
		return "project is already in its final state"
	}
	return fmt.Sprintf("phase %s is the final phase; use complete to finish the launch", e.Phase)
}

// Is reports whether target is ErrAlreadyFinal.
func (e *AlreadyFinalError) Is(target error) bool { return target == ErrAlreadyFinal }

// StoreError wraps a persistence failure. It is the only retryable class.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

// Unwrap returns the driver error.
func (e *StoreError) Unwrap() error { return e.Err }

// Is reports whether target is ErrStore.
func (e *StoreError) Is(target error) bool { return target == ErrStore }

// Invalid builds a ValidationError for a request field.
func Invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// InvalidDocument builds a ValidationError for checklist markup or its
// frontmatter.
func InvalidDocument(field, message string) error {
	return &ValidationError{Field: field, Message: message, Document: true}
}

// NotFound builds a NotFoundError.
func NotFound(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// Store wraps err as a StoreError. A nil err yields nil.
func Store(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}

// IsRetryable reports whether err is a transient store failure.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrStore)
}
