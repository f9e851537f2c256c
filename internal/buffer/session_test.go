package buffer

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func literalMatcher(needle string) Matcher {
	return MatcherFunc(func(line []byte) []Hit {
		var hits []Hit
		from := 0
		for {
			idx := bytes.Index(line[from:], []byte(needle))
			if idx < 0 {
				return hits
			}
			start := from + idx
			hits = append(hits, Hit{Span: Span{Start: start, Stop: start + len(needle)}})
			from = start + len(needle)
		}
	})
}

type sliceSource struct {
	chunks []string
}

func (s *sliceSource) Next() ([]byte, error) {
	if len(s.chunks) == 0 {
		return nil, io.EOF
	}
	chunk := s.chunks[0]
	s.chunks = s.chunks[1:]
	return []byte(chunk), nil
}

func TestSessionRecordsAbsoluteOffsets(t *testing.T) {
	s := NewSession(20, literalMatcher("foo"))
	src := &sliceSource{chunks: []string{"bar\n", "a foo foo\n", "baz\n", "foo"}}
	if err := s.Consume(src); err != nil {
		t.Fatalf("Consume: %v", err)
	}
	doc, err := s.Finish()
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}

	want := []Match{
		{Line: 1, Start: 6, Stop: 9},
		{Line: 1, Start: 10, Stop: 13},
		{Line: 3, Start: 18, Stop: 21},
	}
	if len(doc.Matches) != len(want) {
		t.Fatalf("got %d matches want %d", len(doc.Matches), len(want))
	}
	for i, m := range doc.Matches {
		if m.Line != want[i].Line || m.Start != want[i].Start || m.Stop != want[i].Stop {
			t.Fatalf("match %d = %+v want %+v", i, m, want[i])
		}
		if got := string(doc.Text(m)); got != "foo" {
			t.Fatalf("match %d text %q", i, got)
		}
	}
	if doc.Lines.Last() != len(doc.Buffer) {
		t.Fatalf("last line start %d want buffer size %d", doc.Lines.Last(), len(doc.Buffer))
	}
	if col := doc.Column(doc.Matches[1]); col != 6 {
		t.Fatalf("Column=%d want 6", col)
	}
}

func TestSessionNoMatches(t *testing.T) {
	s := NewSession(20, literalMatcher("zzz"))
	for _, chunk := range []string{"alpha\n", "beta\n"} {
		if err := s.AppendChunk([]byte(chunk)); err != nil {
			t.Fatalf("AppendChunk: %v", err)
		}
	}
	if _, err := s.Finish(); !errors.Is(err, ErrNoMatches) {
		t.Fatalf("expected ErrNoMatches, got %v", err)
	}
}

func TestSessionWideLineAbortsBeforeMatching(t *testing.T) {
	calls := 0
	matcher := MatcherFunc(func(line []byte) []Hit {
		calls++
		return nil
	})
	s := NewSession(4, matcher)

	err := s.AppendChunk([]byte("too wide\n"))
	if !errors.Is(err, ErrLineTooWide) {
		t.Fatalf("expected ErrLineTooWide, got %v", err)
	}
	if calls != 0 {
		t.Fatalf("matcher ran %d times before the width check", calls)
	}
}

func TestSessionConsumeStopsOnWideLine(t *testing.T) {
	s := NewSession(4, literalMatcher("a"))
	src := &sliceSource{chunks: []string{"a\n", "aaaaa\n", "a\n"}}
	if err := s.Consume(src); !errors.Is(err, ErrLineTooWide) {
		t.Fatalf("expected ErrLineTooWide, got %v", err)
	}
	if len(src.chunks) != 1 {
		t.Fatalf("ingestion continued after the error")
	}
}

func TestSessionMatcherSeesLineWithoutEOL(t *testing.T) {
	var seen []string
	matcher := MatcherFunc(func(line []byte) []Hit {
		seen = append(seen, string(line))
		return nil
	})
	s := NewSession(10, matcher)
	for _, chunk := range []string{"one\r\n", "two\n", "three"} {
		if err := s.AppendChunk([]byte(chunk)); err != nil {
			t.Fatalf("AppendChunk: %v", err)
		}
	}
	want := []string{"one", "two", "three"}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("matcher input %d = %q want %q", i, seen[i], want[i])
		}
	}
}

func TestSessionGroupsAndFilter(t *testing.T) {
	matcher := MatcherFunc(func(line []byte) []Hit {
		idx := bytes.IndexByte(line, ':')
		if idx < 0 {
			return nil
		}
		return []Hit{{
			Span:   Span{Start: 0, Stop: len(line)},
			Groups: []Span{{Start: 0, Stop: idx}, {Start: idx + 1, Stop: len(line)}, {Start: -1, Stop: -1}},
		}}
	})
	s := NewSession(20, matcher)
	s.SetFilter(func(buf []byte, m Match) bool {
		g, _ := m.Group(1)
		return string(buf[g.Start:g.Stop]) != "skip.go"
	})
	for _, chunk := range []string{"skip.go:1\n", "main.go:12\n"} {
		if err := s.AppendChunk([]byte(chunk)); err != nil {
			t.Fatalf("AppendChunk: %v", err)
		}
	}
	doc, err := s.Finish()
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if len(doc.Matches) != 1 {
		t.Fatalf("expected filter to drop one match, got %d", len(doc.Matches))
	}
	m := doc.Matches[0]
	if path, _ := doc.GroupText(m, 1); path != "main.go" {
		t.Fatalf("group 1 = %q", path)
	}
	if line, _ := doc.GroupText(m, 2); line != "12" {
		t.Fatalf("group 2 = %q", line)
	}
	if _, ok := doc.GroupText(m, 3); ok {
		t.Fatalf("unmatched group 3 reported as present")
	}
}
