package buffer

import (
	"errors"
	"fmt"
)

var (
	// ErrLineTooWide is wrapped by LineTooWideError.
	ErrLineTooWide = errors.New("line exceeds viewport width")
	// ErrNoMatches is returned by Session.Finish when nothing matched.
	ErrNoMatches = errors.New("no matches")
	// ErrClosed is returned when appending to a frozen index.
	ErrClosed = errors.New("line index is closed")
)

// LineTooWideError reports a line that cannot be displayed without wrapping.
type LineTooWideError struct {
	Line   int
	Length int
	Width  int
}

func (e *LineTooWideError) Error() string {
	return fmt.Sprintf("line %d is %d bytes wide, viewport is %d columns", e.Line+1, e.Length, e.Width)
}

func (e *LineTooWideError) Unwrap() error {
	return ErrLineTooWide
}

// IndexOutOfRangeError is the panic value raised by LineIndex.LineOf for an
// offset outside the indexed buffer.
type IndexOutOfRangeError struct {
	Offset int
	Size   int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("offset %d outside indexed range [0, %d]", e.Offset, e.Size)
}
