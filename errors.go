package dremel

import (
	"errors"
	"fmt"
)

// Kind classifies the errors this package can return, matching the
// taxonomy of failure modes in the shredding/assembly algorithms rather
// than the Go type of the error value.
type Kind int

const (
	// SchemaBuild covers duplicate nodes, missing descriptors, a leaf
	// with outgoing edges, a non-leaf without any, and recursive
	// message definitions.
	SchemaBuild Kind = iota
	// SchemaMismatch is returned when computing the lowest common
	// ancestor of two nodes that do not share a root.
	SchemaMismatch
	// IndependentlyRepeated is returned when a projection mixes two
	// leaves that live under different repeated ancestors at the same
	// repetition level, which would make a flat tuple ambiguous.
	IndependentlyRepeated
	// UnknownField is returned when a projection names a path that has
	// no corresponding leaf in the schema graph.
	UnknownField
	// InvalidRecord is returned by the shredder when a required field
	// is missing, or a value's shape disagrees with its label.
	InvalidRecord
	// InvalidColumnStream is the Kind StructBuilder panics with when a
	// reader yields a leaf that disagrees with what the FSM expected.
	InvalidColumnStream
	// ReadBeforeFetch is the Kind a reader panics with when its
	// level/value accessors are called before the first call to Next.
	ReadBeforeFetch
	// BuilderProtocol is the Kind StructBuilder panics with when its
	// methods are invoked out of the Start/AssignValue.../Done-or-Rollback
	// sequence.
	BuilderProtocol
	// Internal marks a broken invariant in this package rather than a
	// problem with caller input.
	Internal
)

// Error lets a bare Kind be used as an errors.Is target, e.g.
// errors.Is(err, dremel.UnknownField).
func (k Kind) Error() string { return k.String() }

func (k Kind) String() string {
	switch k {
	case SchemaBuild:
		return "schema_build"
	case SchemaMismatch:
		return "schema_mismatch"
	case IndependentlyRepeated:
		return "independently_repeated"
	case UnknownField:
		return "unknown_field"
	case InvalidRecord:
		return "invalid_record"
	case InvalidColumnStream:
		return "invalid_column_stream"
	case ReadBeforeFetch:
		return "read_before_fetch"
	case BuilderProtocol:
		return "builder_protocol"
	default:
		return "internal"
	}
}

// Error is the concrete error type returned by this package. Callers that
// need to distinguish failure modes should use errors.As to recover it
// and inspect Kind, rather than comparing error strings.
type Error struct {
	Kind   Kind
	Path   string // offending field path, when applicable
	reason error
}

func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Path, e.reason)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.reason)
}

func (e *Error) Unwrap() error { return e.reason }

func newError(kind Kind, path string, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Path: path, reason: fmt.Errorf(format, args...)}
}

// Is lets errors.Is(err, SchemaBuild) work by comparing Kind values
// directly against a bare Kind, in addition to the usual *Error match.
func (e *Error) Is(target error) bool {
	if k, ok := target.(Kind); ok {
		return e.Kind == k
	}
	var other *Error
	if errors.As(target, &other) {
		return e.Kind == other.Kind
	}
	return false
}
