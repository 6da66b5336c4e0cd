package domain

import (
	"errors"
	"fmt"
)

// ErrorKind is the closed set of failure classes surfaced by l10n operations.
type ErrorKind string

const (
	KindValidation                ErrorKind = "validation"
	KindConsistency               ErrorKind = "consistency"
	KindMutualExclusion           ErrorKind = "mutual_exclusion"
	KindRuntimeSave               ErrorKind = "runtime_save"
	KindMissingParentLocalization ErrorKind = "missing_parent_localization"
	KindNotFound                  ErrorKind = "not_found"
)

// Error carries a kind, the failing operation and an optional field name.
type Error struct {
	Kind    ErrorKind
	Op      string
	Field   string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	} else if e.Err != nil {
		msg = msg + ": " + e.Err.Error()
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, msg)
	}
	return msg
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches another *Error by kind so errors.Is(err, &Error{Kind: k}) works.
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) || other == nil {
		return false
	}
	return other.Kind != "" && other.Kind == e.Kind && other.Op == "" && other.Err == nil
}

// NewError builds an *Error.
func NewError(kind ErrorKind, op, message string, err error) *Error {
	return &Error{Kind: kind, Op: op, Message: message, Err: err}
}

// FieldError builds an *Error that points at a form/settings field.
func FieldError(kind ErrorKind, op, field, message string) *Error {
	return &Error{Kind: kind, Op: op, Field: field, Message: message}
}

// KindOf returns the kind of the first *Error in err's chain, or "".
// A *NotFoundError anywhere in the chain maps to KindNotFound.
func KindOf(err error) ErrorKind {
	var target *Error
	if errors.As(err, &target) && target != nil {
		return target.Kind
	}
	var missing *NotFoundError
	if errors.As(err, &missing) {
		return KindNotFound
	}
	return ""
}

// IsKind reports whether err carries kind.
func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}

// NotFoundError reports a missing record. KindOf classifies it as
// KindNotFound.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}
