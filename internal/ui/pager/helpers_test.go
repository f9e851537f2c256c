package pager

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/kk-code-lab/pls/internal/buffer"
	"github.com/kk-code-lab/pls/internal/ui/terminal"
)

func literalMatcher(word string) buffer.Matcher {
	return buffer.MatcherFunc(func(line []byte) []buffer.Hit {
		var hits []buffer.Hit
		for off := 0; ; {
			i := bytes.Index(line[off:], []byte(word))
			if i < 0 {
				return hits
			}
			start := off + i
			hits = append(hits, buffer.Hit{Span: buffer.Span{Start: start, Stop: start + len(word)}})
			off = start + len(word)
		}
	})
}

func buildDocument(t *testing.T, lines []string, word string) *buffer.Document {
	t.Helper()
	s := buffer.NewSession(80, literalMatcher(word))
	for _, line := range lines {
		if err := s.AppendChunk([]byte(line + "\n")); err != nil {
			t.Fatalf("AppendChunk: %v", err)
		}
	}
	doc, err := s.Finish()
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	return doc
}

// numberedLines returns n lines "line 0".."line n-1", with word appended to
// the lines listed in marked.
func numberedLines(n int, word string, marked ...int) []string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i)
	}
	for _, m := range marked {
		lines[m] += " " + word
	}
	return lines
}

// fakeTerminal records what the pager draws. Standout is shown as [ and ].
type fakeTerminal struct {
	keys    []terminal.Key
	readErr error
	cols    int
	rows    int
	current strings.Builder
	frames  []string
	ops     []string
	row     int
}

func newFakeTerminal(cols, rows int, keys ...terminal.Key) *fakeTerminal {
	return &fakeTerminal{cols: cols, rows: rows, keys: keys}
}

func (f *fakeTerminal) Write(p []byte) (int, error) {
	f.current.Write(p)
	f.row += bytes.Count(p, []byte{'\n'})
	return len(p), nil
}

func (f *fakeTerminal) EnterStandout() { f.current.WriteByte('[') }
func (f *fakeTerminal) ExitStandout()  { f.current.WriteByte(']') }

func (f *fakeTerminal) CursorUp(n int) {
	f.ops = append(f.ops, fmt.Sprintf("up %d", n))
	f.row -= n
}

func (f *fakeTerminal) ColumnOne() {}

func (f *fakeTerminal) EraseDown() {
	f.ops = append(f.ops, "erase")
	f.current.Reset()
}

func (f *fakeTerminal) ReadKey() (terminal.Key, error) {
	if len(f.keys) == 0 {
		if f.readErr != nil {
			return terminal.Key{}, f.readErr
		}
		return terminal.Key{}, io.EOF
	}
	k := f.keys[0]
	f.keys = f.keys[1:]
	return k, nil
}

func (f *fakeTerminal) Flush() error {
	f.ops = append(f.ops, "flush")
	f.frames = append(f.frames, f.current.String())
	return nil
}

func (f *fakeTerminal) Size() (int, int) { return f.cols, f.rows }
func (f *fakeTerminal) Close() error     { return nil }

func runeKey(r rune) terminal.Key {
	return terminal.Key{Kind: terminal.KeyRune, Rune: r}
}
