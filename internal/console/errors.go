package console

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aws/smithy-go"
	pkgerrors "github.com/pkg/errors"
)

// Kind classifies a dispatch failure.
type Kind int

const (
	KindUnknownAction Kind = iota + 1
	KindInvalidParameter
	KindUpstreamFailure
	KindDecryptionFailure
)

var (
	ErrUnknownAction     = errors.New("unknown action")
	ErrInvalidParameter  = errors.New("invalid parameter")
	ErrUpstreamFailure   = errors.New("upstream failure")
	ErrDecryptionFailure = errors.New("decryption failure")
)

func (k Kind) String() string {
	switch k {
	case KindUnknownAction:
		return "unknown_action"
	case KindInvalidParameter:
		return "invalid_parameter"
	case KindUpstreamFailure:
		return "upstream_failure"
	case KindDecryptionFailure:
		return "decryption_failure"
	default:
		return "unclassified"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindUnknownAction:
		return ErrUnknownAction
	case KindInvalidParameter:
		return ErrInvalidParameter
	case KindUpstreamFailure:
		return ErrUpstreamFailure
	case KindDecryptionFailure:
		return ErrDecryptionFailure
	default:
		return nil
	}
}

// Error is a classified failure. The stack is recorded where the failure
// was classified.
type Error struct {
	Kind Kind
	Op   string
	// Code is the provider error code for upstream failures, if any.
	Code string
	Err  error

	trace error
}

func (e *Error) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// Stack renders the recorded stack trace, one frame per line pair.
func (e *Error) Stack() string {
	type stackTracer interface {
		StackTrace() pkgerrors.StackTrace
	}
	st, ok := e.trace.(stackTracer)
	if !ok {
		return ""
	}
	return strings.TrimPrefix(fmt.Sprintf("%+v", st.StackTrace()), "\n")
}

func newError(kind Kind, op string, err error) *Error {
	return &Error{
		Kind:  kind,
		Op:    op,
		Err:   err,
		trace: pkgerrors.WithStack(err),
	}
}

func unknownAction(name string) error {
	return newError(KindUnknownAction, "dispatch", fmt.Errorf("%w %q", ErrUnknownAction, name))
}

func invalidParameter(op string, err error) error {
	return newError(KindInvalidParameter, op, err)
}

func upstream(op string, err error) error {
	e := newError(KindUpstreamFailure, op, err)
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		e.Code = apiErr.ErrorCode()
	}
	return e
}

func decryption(op string, err error) error {
	return newError(KindDecryptionFailure, op, err)
}

// KindOf reports the classification of err, or 0 when it is unclassified.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// StackOf returns the stack recorded for err, if it carries one.
func StackOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Stack()
	}
	return ""
}
