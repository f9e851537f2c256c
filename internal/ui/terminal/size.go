package terminal

import (
	"os"

	"golang.org/x/term"
)

// Fallback dimensions when no terminal can be queried.
const (
	DefaultCols = 80
	DefaultRows = 24
)

var termGetSize = term.GetSize

// QuerySize reports the controlling terminal's size, trying /dev/tty and then
// stdout before falling back to DefaultCols x DefaultRows.
func QuerySize() (cols, rows int) {
	if tty, err := os.Open("/dev/tty"); err == nil {
		defer func() {
			_ = tty.Close()
		}()
		if c, r, ok := sizeOf(int(tty.Fd())); ok {
			return c, r
		}
	}
	if c, r, ok := sizeOf(int(os.Stdout.Fd())); ok {
		return c, r
	}
	return DefaultCols, DefaultRows
}

func sizeOf(fd int) (int, int, bool) {
	cols, rows, err := termGetSize(fd)
	if err != nil || cols <= 0 || rows <= 0 {
		return 0, 0, false
	}
	return cols, rows, true
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}
