package pager

import (
	"bytes"
	"io"

	"github.com/kk-code-lab/pls/internal/buffer"
)

// Surface is what Render paints on.
type Surface interface {
	io.Writer
	EnterStandout()
	ExitStandout()
}

// Render writes the text of w, highlighting sel when it starts inside w. A
// highlight running past w.Stop is cut at the window edge. It returns the
// number of rows written; a window not ending in '\n' is terminated with one.
func Render(s Surface, buf []byte, w Window, sel buffer.Match) (int, error) {
	text := buf[w.Start:w.Stop]
	if w.Start <= sel.Start && sel.Start <= w.Stop {
		stop := min(sel.Stop, w.Stop)
		if _, err := s.Write(buf[w.Start:sel.Start]); err != nil {
			return 0, err
		}
		s.EnterStandout()
		if _, err := s.Write(buf[sel.Start:stop]); err != nil {
			s.ExitStandout()
			return 0, err
		}
		s.ExitStandout()
		if _, err := s.Write(buf[stop:w.Stop]); err != nil {
			return 0, err
		}
	} else if _, err := s.Write(text); err != nil {
		return 0, err
	}

	rows := bytes.Count(text, []byte{'\n'})
	if len(text) > 0 && text[len(text)-1] != '\n' {
		if _, err := s.Write([]byte{'\n'}); err != nil {
			return rows, err
		}
		rows++
	}
	return rows, nil
}
