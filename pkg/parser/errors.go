package parser

import (
	"errors"
	"fmt"
)

var (
	// ErrUnmatchedText is wrapped by every UnmatchedTextError
	ErrUnmatchedText = errors.New("unmatched text")

	// ErrDeclaratorShape is returned when matched declaration text has no
	// recognizable declarator
	ErrDeclaratorShape = errors.New("unrecognized declarator shape")
)

const (
	reasonTooMuch      = "too much text, try to increase the limits"
	reasonEOF          = "unexpected end of input"
	reasonUnterminated = "unterminated body"
	reasonIncludeEnd   = "unconsumed text at the end of an included file"
)

// maxErrorText bounds the pending text carried by an error
const maxErrorText = 500

// UnmatchedTextError reports buffered source text that no pattern could
// consume
type UnmatchedTextError struct {
	Filename string
	Line     int
	Text     string
	Reason   string
}

func (e *UnmatchedTextError) Error() string {
	return fmt.Sprintf("unmatched text (%s starting at line %d): %s\n%s", e.Filename, e.Line, e.Reason, e.Text)
}

func (e *UnmatchedTextError) Unwrap() error {
	return ErrUnmatchedText
}

func newUnmatchedTextError(filename string, line int, text, reason string) *UnmatchedTextError {
	if rs := []rune(text); len(rs) > maxErrorText {
		text = string(rs[:maxErrorText]) + "..."
	}
	return &UnmatchedTextError{
		Filename: filename,
		Line:     line,
		Text:     text,
		Reason:   reason,
	}
}
