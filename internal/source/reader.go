package source

import (
	"bufio"
	"errors"
	"io"
)

const (
	readBufferSize = 64 * 1024
	// maxRawLine bounds a single line when a transform may shrink it, so a
	// newline-free binary stream cannot grow one chunk without limit.
	maxRawLine = 1 << 20
)

// ChunkReader splits a stream into line chunks. Each chunk ends with '\n'
// except the last one of the stream, or one that was cut because it already
// exceeds the width; the caller rejects those.
type ChunkReader struct {
	reader    *bufio.Reader
	width     int
	transform func([]byte) []byte
}

// NewChunkReader reads lines of at most width bytes from r.
func NewChunkReader(r io.Reader, width int) *ChunkReader {
	return &ChunkReader{
		reader: bufio.NewReaderSize(r, readBufferSize),
		width:  width,
	}
}

// SetTransform installs fn, applied to every chunk before it is returned.
func (c *ChunkReader) SetTransform(fn func([]byte) []byte) {
	c.transform = fn
}

// Next returns the next chunk, or io.EOF once the stream is exhausted.
func (c *ChunkReader) Next() ([]byte, error) {
	limit := c.limit()
	var line []byte
	for {
		frag, err := c.reader.ReadSlice('\n')
		line = append(line, frag...)
		switch {
		case err == nil:
			return c.finish(line), nil
		case errors.Is(err, bufio.ErrBufferFull):
			if limit > 0 && len(line) > limit {
				return c.finish(line), nil
			}
		case errors.Is(err, io.EOF):
			if len(line) > 0 {
				return c.finish(line), nil
			}
			return nil, io.EOF
		default:
			if len(line) > 0 {
				return c.finish(line), err
			}
			return nil, err
		}
	}
}

func (c *ChunkReader) limit() int {
	if c.transform != nil {
		return maxRawLine
	}
	if c.width <= 0 {
		return 0
	}
	// Room for "\r\n" so a full-width CRLF line is not cut.
	return c.width + 2
}

func (c *ChunkReader) finish(line []byte) []byte {
	if c.transform == nil {
		return line
	}
	return c.transform(line)
}
