package spoilers

import (
	"bytes"
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies a failed lookup.
type Kind int

const (
	// UnknownKey means the first token matched no top-level alias.
	UnknownKey Kind = iota + 1
	// UnknownAlias means a sub token matched nothing in its namespace.
	UnknownAlias
	// KeyMissing means the document lacks a key it should have.
	KeyMissing
	// WorldIndexRequired means a multiworld lookup was made without a world.
	WorldIndexRequired
	// WorldIndexOutOfRange means the world token is not a valid world.
	WorldIndexOutOfRange
	// InvalidDocument means the input is not a usable spoiler log.
	InvalidDocument
)

var kindNames = map[Kind]string{
	UnknownKey:           "unknown key",
	UnknownAlias:         "unknown alias",
	KeyMissing:           "key missing",
	WorldIndexRequired:   "world index required",
	WorldIndexOutOfRange: "world index out of range",
	InvalidDocument:      "invalid document",
}

func (k Kind) String() string {
	if name, found := kindNames[k]; found {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error is a typed lookup failure. Message is meant for the person who
// issued the query.
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

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same Kind, so errors.Is(err, &Error{Kind: KeyMissing}) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

func Errorf(kind Kind, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap attaches a cause to a typed failure.
func Wrap(kind Kind, err error, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// KindOf returns the Kind of the first *Error in the chain, or 0.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

type stackTracer interface {
	StackTrace() errors.StackTrace
}

func WithStack(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(stackTracer); !ok {
		return errors.WithStack(err)
	}
	return err
}

func StackTrace(err error) string {
	buf := &bytes.Buffer{}
	if err, ok := err.(stackTracer); ok {
		for _, f := range err.StackTrace() {
			fmt.Fprintf(buf, "%+v\n", f)
		}
	}
	return buf.String()
}
