package signature

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformed indicates text that does not follow the signature grammar.
	ErrMalformed = errors.New("signature: malformed")

	// ErrRoundTrip indicates a parsed signature that does not serialize back
	// to its input.
	ErrRoundTrip = errors.New("signature: does not round-trip")
)

// ParseError describes where parsing a signature failed.
type ParseError struct {
	Text    string // text being parsed
	Offset  int    // byte offset within Text
	Message string
	Err     error // ErrMalformed or ErrRoundTrip
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%v: %q at offset %d: %s", e.Err, e.Text, e.Offset, e.Message)
}

func (e *ParseError) Unwrap() error { return e.Err }

func malformed(text string, offset int, format string, args ...any) error {
	return &ParseError{
		Text:    text,
		Offset:  offset,
		Message: fmt.Sprintf(format, args...),
		Err:     ErrMalformed,
	}
}
