package buffer

import (
	"errors"
	"io"
)

// ChunkSource yields successive chunks of input; io.EOF ends the stream.
type ChunkSource interface {
	Next() ([]byte, error)
}

// Filter decides whether a match found during ingestion is kept. buf holds
// every byte ingested so far and must not be modified.
type Filter func(buf []byte, m Match) bool

// Document is the frozen result of an ingestion pass.
type Document struct {
	Buffer  []byte
	Lines   *LineIndex
	Matches []Match
}

// Text returns the bytes covered by m.
func (d *Document) Text(m Match) []byte {
	return d.Buffer[m.Start:m.Stop]
}

// GroupText returns the text of capture group i of m.
func (d *Document) GroupText(m Match, i int) (string, bool) {
	g, ok := m.Group(i)
	if !ok {
		return "", false
	}
	return string(d.Buffer[g.Start:g.Stop]), true
}

// Column returns the 0-based byte column at which m starts.
func (d *Document) Column(m Match) int {
	return m.Start - d.Lines.Start(m.Line)
}

// Session accumulates the buffer, its line index and the match table in a
// single forward pass.
type Session struct {
	buf     []byte
	lines   *LineIndex
	matches []Match
	matcher Matcher
	filter  Filter
	done    bool
}

// NewSession starts an ingestion pass for a viewport width columns wide.
func NewSession(width int, matcher Matcher) *Session {
	return &Session{
		lines:   NewLineIndex(width),
		matcher: matcher,
	}
}

// SetFilter installs f; matches it rejects are not recorded.
func (s *Session) SetFilter(f Filter) {
	s.filter = f
}

// AppendChunk appends chunk to the buffer and records every match found in it.
// The width check runs before the matcher so an oversized line is rejected
// without being searched.
func (s *Session) AppendChunk(chunk []byte) error {
	if s.done {
		return ErrClosed
	}
	base := len(s.buf)
	if err := s.lines.Append(chunk); err != nil {
		return err
	}
	s.buf = append(s.buf, chunk...)

	if s.matcher == nil {
		return nil
	}
	text := trimEOL(chunk)
	for _, hit := range s.matcher.FindAll(text) {
		if hit.Start < 0 || hit.Stop <= hit.Start || hit.Stop > len(text) {
			continue
		}
		m := Match{
			Line:   s.lines.LineOf(base + hit.Start),
			Start:  base + hit.Start,
			Stop:   base + hit.Stop,
			Groups: offsetSpans(hit.Groups, base),
		}
		if s.filter != nil && !s.filter(s.buf, m) {
			continue
		}
		s.matches = append(s.matches, m)
	}
	return nil
}

// Consume appends every chunk from src until it is exhausted.
func (s *Session) Consume(src ChunkSource) error {
	for {
		chunk, err := src.Next()
		if len(chunk) > 0 {
			if appendErr := s.AppendChunk(chunk); appendErr != nil {
				return appendErr
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

// Lines reports how many line starts have been recorded so far.
func (s *Session) Lines() int {
	return s.lines.Count()
}

// Finish freezes the session. It fails with ErrNoMatches when the match table
// is empty.
func (s *Session) Finish() (*Document, error) {
	if !s.done {
		s.done = true
		s.lines.Close()
	}
	if len(s.matches) == 0 {
		return nil, ErrNoMatches
	}
	return &Document{
		Buffer:  s.buf,
		Lines:   s.lines,
		Matches: s.matches,
	}, nil
}

func trimEOL(chunk []byte) []byte {
	n := len(chunk)
	if n > 0 && chunk[n-1] == '\n' {
		n--
		if n > 0 && chunk[n-1] == '\r' {
			n--
		}
	}
	return chunk[:n]
}

func offsetSpans(groups []Span, base int) []Span {
	if len(groups) == 0 {
		return nil
	}
	out := make([]Span, len(groups))
	for i, g := range groups {
		if g.Empty() || g.Start < 0 {
			out[i] = Span{Start: -1, Stop: -1}
			continue
		}
		out[i] = Span{Start: base + g.Start, Stop: base + g.Stop}
	}
	return out
}
