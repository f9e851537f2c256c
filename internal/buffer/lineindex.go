package buffer

import (
	"bytes"
	"sort"
)

// LineIndex maps byte offsets of an append-only buffer to line numbers.
//
// starts[i] is the offset of the first byte of line i. Once closed, the last
// entry equals the buffer size and marks the end of the final line.
type LineIndex struct {
	starts  []int
	size    int
	width   int
	lineLen int
	closed  bool
}

// NewLineIndex returns an empty index that rejects lines longer than width
// bytes. A width <= 0 disables the check.
func NewLineIndex(width int) *LineIndex {
	return &LineIndex{
		starts: []int{0},
		width:  width,
	}
}

// Append ingests the next chunk of the buffer. A line start is recorded right
// after every newline in chunk. On error the index is left unchanged.
func (ix *LineIndex) Append(chunk []byte) error {
	if ix.closed {
		return ErrClosed
	}

	starts := ix.starts
	lineLen := ix.lineLen
	offset := ix.size
	line := len(ix.starts) - 1

	for len(chunk) > 0 {
		nl := bytes.IndexByte(chunk, '\n')
		part := chunk
		if nl >= 0 {
			part = chunk[:nl]
		}

		lineLen += len(part)
		visible := lineLen
		if len(part) > 0 && part[len(part)-1] == '\r' {
			visible--
		}
		if ix.width > 0 && visible > ix.width {
			return &LineTooWideError{Line: line, Length: visible, Width: ix.width}
		}

		if nl < 0 {
			offset += len(chunk)
			break
		}
		offset += nl + 1
		starts = append(starts, offset)
		line++
		lineLen = 0
		chunk = chunk[nl+1:]
	}

	ix.starts = starts
	ix.lineLen = lineLen
	ix.size = offset
	return nil
}

// Close freezes the index, closing an unterminated final line at the end of
// the buffer.
func (ix *LineIndex) Close() {
	if ix.closed {
		return
	}
	ix.closed = true
	if ix.starts[len(ix.starts)-1] != ix.size {
		ix.starts = append(ix.starts, ix.size)
	}
}

// Size is the number of bytes indexed so far.
func (ix *LineIndex) Size() int {
	return ix.size
}

// Count is the number of recorded line starts, including the closing one.
func (ix *LineIndex) Count() int {
	return len(ix.starts)
}

// Lines is the number of complete text lines.
func (ix *LineIndex) Lines() int {
	return len(ix.starts) - 1
}

// Start returns the offset at which line begins.
func (ix *LineIndex) Start(line int) int {
	return ix.starts[line]
}

// Last returns the final recorded line start.
func (ix *LineIndex) Last() int {
	return ix.starts[len(ix.starts)-1]
}

// LineOf returns n such that Start(n) <= offset < Start(n+1), or the last
// index when offset is at or past the final recorded start. It panics with
// *IndexOutOfRangeError for offsets outside the buffer.
func (ix *LineIndex) LineOf(offset int) int {
	if offset < 0 || offset > ix.size {
		panic(&IndexOutOfRangeError{Offset: offset, Size: ix.size})
	}
	n := sort.Search(len(ix.starts), func(i int) bool {
		return ix.starts[i] > offset
	})
	return n - 1
}

// EndOffset returns the line start height lines after the line holding start,
// clamped to the last recorded start.
func (ix *LineIndex) EndOffset(start, height int) int {
	if height < 0 {
		height = 0
	}
	idx := ix.LineOf(start) + height
	if last := len(ix.starts) - 1; idx > last {
		idx = last
	}
	return ix.starts[idx]
}
