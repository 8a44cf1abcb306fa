package vm

import (
	"errors"
	"fmt"
)

// ---------------------------------------------------------------------------
// Runtime errors
// ---------------------------------------------------------------------------

// ErrorKind classifies a RuntimeError.
type ErrorKind uint8

const (
	KindDoesNotUnderstand ErrorKind = iota + 1
	KindTypeError
	KindValueError
	KindInternal
)

func (k ErrorKind) String() string {
	switch k {
	case KindDoesNotUnderstand:
		return "DoesNotUnderstand"
	case KindTypeError:
		return "TypeError"
	case KindValueError:
		return "ValueError"
	case KindInternal:
		return "InternalError"
	default:
		return fmt.Sprintf("ErrorKind(%d)", uint8(k))
	}
}

// RuntimeError is the single error type produced while executing a
// program. Errors unwind straight to the caller of Run; the language has
// no handler construct.
type RuntimeError struct {
	Kind     ErrorKind
	Class    string // receiver class, when known
	Selector string // selector being sent, when known
	Message  string
}

func (e *RuntimeError) Error() string {
	switch {
	case e.Class != "" && e.Selector != "":
		return fmt.Sprintf("%s: %s>>%s: %s", e.Kind, e.Class, e.Selector, e.Message)
	case e.Class != "":
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Class, e.Message)
	default:
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
}

// Is matches any RuntimeError of the same kind, so the package sentinels
// work with errors.Is.
func (e *RuntimeError) Is(target error) bool {
	t, ok := target.(*RuntimeError)
	return ok && t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrDoesNotUnderstand = &RuntimeError{Kind: KindDoesNotUnderstand, Message: "does not understand"}
	ErrTypeError         = &RuntimeError{Kind: KindTypeError, Message: "type error"}
	ErrValueError        = &RuntimeError{Kind: KindValueError, Message: "value error"}
	ErrInternal          = &RuntimeError{Kind: KindInternal, Message: "internal error"}
)

// KindOf returns the kind of a RuntimeError wrapped anywhere in err, or 0.
func KindOf(err error) ErrorKind {
	var re *RuntimeError
	if errors.As(err, &re) {
		return re.Kind
	}
	return 0
}

func doesNotUnderstand(class, selector, format string, args ...any) *RuntimeError {
	return &RuntimeError{Kind: KindDoesNotUnderstand, Class: class, Selector: selector, Message: fmt.Sprintf(format, args...)}
}

func typeError(class, selector, format string, args ...any) *RuntimeError {
	return &RuntimeError{Kind: KindTypeError, Class: class, Selector: selector, Message: fmt.Sprintf(format, args...)}
}

func valueError(class, selector, format string, args ...any) *RuntimeError {
	return &RuntimeError{Kind: KindValueError, Class: class, Selector: selector, Message: fmt.Sprintf(format, args...)}
}

func internalError(format string, args ...any) *RuntimeError {
	return &RuntimeError{Kind: KindInternal, Message: fmt.Sprintf(format, args...)}
}
