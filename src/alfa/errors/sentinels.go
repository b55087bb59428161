// Package errors provides xpatch's error values: a small set of typed
// sentinels built on generics so callers can test error identity with
// errors.Is/As without string matching.
package errors

import (
	stderrors "errors"
	"fmt"
)

type (
	Typed[DISAMB any] interface {
		error
		GetErrorType() DISAMB
	}

	errorString[DISAMB any] struct {
		value string
	}

	errorTypedWrapped[DISAMB any] struct {
		wrapped error
	}
)

func IsTyped[DISAMB any](err error) bool {
	var typed Typed[DISAMB]
	if As(err, &typed) {
		return true
	}
	return false
}

// MakeTypedSentinel creates a typed sentinel error and its checker function.
// This is a convenience helper to reduce boilerplate when creating package errors.
//
// Usage:
//
//	type pkgErrDisamb struct{}
//	var (
//	    ErrMyError, IsMyError = errors.MakeTypedSentinel[pkgErrDisamb]("my error")
//	)
//
// The returned sentinel implements errors.Typed[DISAMB] and can be checked with
// either the returned checker function or errors.IsTyped[DISAMB](err).
func MakeTypedSentinel[DISAMB any](text string) (
	sentinel Typed[DISAMB],
	check func(error) bool,
) {
	sentinel = NewWithType[DISAMB](text)
	check = func(err error) bool {
		return IsTyped[DISAMB](err)
	}
	return sentinel, check
}

func NewWithType[DISAMB any](text string) Typed[DISAMB] {
	return &errorString[DISAMB]{text}
}

func WrapWithType[DISAMB any](err error) Typed[DISAMB] {
	return &errorTypedWrapped[DISAMB]{wrapped: err}
}

func (err *errorTypedWrapped[TYPE]) Error() string {
	return err.wrapped.Error()
}

func (err *errorTypedWrapped[TYPE]) GetErrorType() TYPE {
	var disamb TYPE
	return disamb
}

func (err *errorTypedWrapped[_]) Unwrap() error {
	return err.wrapped
}

func (err *errorString[_]) Error() string {
	return err.value
}

func (err *errorString[TYPE]) GetErrorType() TYPE {
	var disamb TYPE
	return disamb
}

func (err *errorString[DISAMB]) Is(target error) bool {
	_, ok := target.(*errorString[DISAMB])
	return ok
}

// As is stdlib errors.As, re-exported so most files only need to import
// this one errors package.
func As[T any](err error, target *T) bool {
	return stderrors.As(err, target)
}

// Is is stdlib errors.Is, re-exported for the same reason.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// Errorf is fmt.Errorf, re-exported so callers only need to import this
// one errors package for both sentinel and ad-hoc errors.
func Errorf(format string, args ...any) error {
	return fmt.Errorf(format, args...)
}

// Wrap wraps err with the same message, preserving it as the Unwrap
// target so errors.Is/errors.As still see through it. No call-site
// information is added. Returns nil for a nil err.
func Wrap(err error) error {
	if err == nil {
		return nil
	}

	return fmt.Errorf("%w", err)
}

// malformedDeltaDisamb is the single error kind the codec ever surfaces
// to callers. It carries a static Reason naming the first parse step
// that failed; no dynamic payload, no stack context.
type malformedDeltaDisamb struct{}

// MalformedDelta is returned by Decode and GetTag when the delta buffer
// cannot be parsed: a truncated header, a truncated or overflowing
// varint, a body field that disagrees with its length contract, or a
// GDelta instruction that addresses outside base.
type MalformedDelta struct {
	Reason string
}

func (err MalformedDelta) Error() string {
	return "malformed delta: " + err.Reason
}

func (err MalformedDelta) GetErrorType() malformedDeltaDisamb {
	return malformedDeltaDisamb{}
}

func (err MalformedDelta) Is(target error) bool {
	_, ok := target.(MalformedDelta)
	return ok
}

// ErrMalformedDelta constructs a MalformedDelta for the given reason.
func ErrMalformedDelta(reason string) error {
	return MalformedDelta{Reason: reason}
}

// IsMalformedDelta reports whether err is, or wraps, a MalformedDelta.
func IsMalformedDelta(err error) bool {
	return IsTyped[malformedDeltaDisamb](err)
}

// Reasons identify the first parse step that failed. They are static:
// never formatted with the offending value, per the codec's failure
// semantics.
const (
	ReasonTruncatedHeader     = "truncated header"
	ReasonTruncatedVarint     = "truncated varint"
	ReasonVarintOverflow      = "varint overflow"
	ReasonTruncatedBody       = "truncated body"
	ReasonCopyOutOfRange      = "copy offset out of range"
	ReasonLengthMismatch      = "length mismatch"
	ReasonUnknownAlgorithm    = "unknown algorithm code"
	ReasonCompressedFrame     = "invalid compressed frame"
	ReasonInstructionOverflow = "instruction stream overflow"
)
