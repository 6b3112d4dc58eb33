// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"fmt"
)

// ErrorKind names a failure category of the recommendation core.
type ErrorKind string

const (
	// KindData covers malformed or missing catalog columns and empty corpora.
	KindData ErrorKind = "data_error"
	// KindNotFitted means ranking was requested before a fit or import.
	KindNotFitted ErrorKind = "not_fitted"
	// KindEmptyCatalog means the published catalog has zero rows.
	KindEmptyCatalog ErrorKind = "empty_catalog"
	// KindArtifact covers corrupt or missing bundle members on import.
	KindArtifact ErrorKind = "artifact_error"
	// KindInvalidInput covers caller mistakes in a single request.
	KindInvalidInput ErrorKind = "invalid_input"
)

// ErrorClass tells a caller who has to act on an error.
type ErrorClass string

const (
	ClassInput    ErrorClass = "input"
	ClassNotReady ErrorClass = "not_ready"
	ClassInternal ErrorClass = "internal"
)

// Class returns the class of the kind.
func (k ErrorKind) Class() ErrorClass {
	switch k {
	case KindInvalidInput:
		return ClassInput
	case KindNotFitted, KindEmptyCatalog:
		return ClassNotReady
	default:
		return ClassInternal
	}
}

// Error is a categorized core error. Sentinel values with an empty Message
// match any Error of the same kind under errors.Is.
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

// Sentinels for errors.Is checks.
var (
	ErrData         = &Error{Kind: KindData}
	ErrNotFitted    = &Error{Kind: KindNotFitted}
	ErrEmptyCatalog = &Error{Kind: KindEmptyCatalog}
	ErrArtifact     = &Error{Kind: KindArtifact}
	ErrInvalidInput = &Error{Kind: KindInvalidInput}
)

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, msg, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, msg)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches sentinels by kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Message == "" && t.Cause == nil && t.Kind == e.Kind
}

// Class returns the class of the error's kind.
func (e *Error) Class() ErrorClass {
	return e.Kind.Class()
}

// NewError builds an Error with a formatted message.
func NewError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WrapError builds an Error that wraps cause.
func WrapError(kind ErrorKind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// KindOf returns the kind of the first *Error in err's chain, or "" when err
// is outside the taxonomy.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Detail converts err into a result-level error object.
func Detail(err error) *ErrorDetail {
	if err == nil {
		return nil
	}
	kind := KindOf(err)
	class := ClassInternal
	if kind != "" {
		class = kind.Class()
	}
	return &ErrorDetail{Kind: kind, Class: class, Message: err.Error()}
}
