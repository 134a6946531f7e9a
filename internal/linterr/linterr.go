// Package linterr defines the linter's error taxonomy: a small closed set
// of kinds (not Go types) distinguishing fatal failures from ones the
// router recovers from locally.
package linterr

import "fmt"

// Kind discriminates the taxonomy's error categories.
type Kind int

const (
	// Unparseable: no encoding decoded the input. Fatal.
	Unparseable Kind = iota
	// InvalidPhenopacket: external schema validator rejected the input. Fatal.
	InvalidPhenopacket
	// NeedsHPO: a rule factory needs HPO but the context has none.
	// Recovered locally: the router warns and skips that rule.
	NeedsHPO
	// FactoryOther: a rule factory failed for a reason other than NeedsHPO. Fatal.
	FactoryOther
	// PatchingError: patch resolution or application failed. Partial.
	PatchingError
	// IO: reading an input path failed. Fatal.
	IO
	// EncodeError: re-encoding the patched tree to the input's format failed. Partial.
	EncodeError
)

func (k Kind) String() string {
	switch k {
	case Unparseable:
		return "Unparseable"
	case InvalidPhenopacket:
		return "InvalidPhenopacket"
	case NeedsHPO:
		return "NeedsHPO"
	case FactoryOther:
		return "FactoryOther"
	case PatchingError:
		return "PatchingError"
	case IO:
		return "IO"
	case EncodeError:
		return "EncodeError"
	default:
		return "Unknown"
	}
}

// Error is the linter's single error type, tagged with a Kind so callers
// can branch on the taxonomy without type assertions.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is also an *Error of the same Kind, so
// errors.Is(err, linterr.Sentinel(linterr.Unparseable)) matches any
// Unparseable error built via New/Wrap.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}

// New constructs an Error of the given kind with a message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap constructs an Error of the given kind, wrapping an underlying
// cause.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Sentinel returns a zero-message Error of kind, suitable for
// errors.Is(err, linterr.Sentinel(linterr.NeedsHPO)) comparisons.
func Sentinel(kind Kind) *Error {
	return &Error{Kind: kind}
}
