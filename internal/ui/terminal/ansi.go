package terminal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"golang.org/x/term"

	"github.com/kk-code-lab/pls/internal/textutil"
)

const (
	seqStandout   = "\x1b[7m"
	seqReset      = "\x1b[0m"
	seqColumnOne  = "\x1b[1G"
	seqEraseDown  = "\x1b[J"
	seqHideCursor = "\x1b[?25l"
	seqShowCursor = "\x1b[?25h"
	seqAltScreen  = "\x1b[?1049h"
	seqMainScreen = "\x1b[?1049l"
)

// Options controls how a terminal is opened.
type Options struct {
	AltScreen bool
}

// ANSI drives the controlling terminal in raw mode with VT100 sequences.
type ANSI struct {
	input       *os.File
	output      *os.File
	reader      *bufio.Reader
	writer      *bufio.Writer
	restoreTerm *term.State
	opts        Options
	closed      bool
}

// OpenANSI opens /dev/tty (stdin/stdout on Windows) and switches it to raw
// mode. The caller must Close it.
func OpenANSI(opts Options) (*ANSI, error) {
	t := &ANSI{opts: opts}

	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		if runtime.GOOS != "windows" {
			return nil, fmt.Errorf("open terminal: %w", err)
		}
		t.input = os.Stdin
		t.output = os.Stdout
	} else {
		t.input = tty
		t.output = tty
	}

	rawState, err := term.MakeRaw(int(t.input.Fd()))
	if err != nil {
		t.closeTTY()
		return nil, fmt.Errorf("enter raw mode: %w", err)
	}
	t.restoreTerm = rawState
	t.reader = bufio.NewReader(t.input)
	t.writer = bufio.NewWriter(t.output)

	if opts.AltScreen {
		_, _ = t.writer.WriteString(seqAltScreen)
	}
	_, _ = t.writer.WriteString(seqHideCursor)
	return t, nil
}

func newANSI(r io.Reader, w io.Writer) *ANSI {
	return &ANSI{
		reader: bufio.NewReader(r),
		writer: bufio.NewWriter(w),
	}
}

// Write translates '\n' to CRLF, since raw mode turns off output processing,
// and replaces control bytes with '?'.
func (t *ANSI) Write(p []byte) (int, error) {
	for _, b := range p {
		switch {
		case b == '\n':
			_, _ = t.writer.WriteString("\r\n")
		case b == '\r':
		case b == '\t':
			// Tabs paint as a single cell.
			_ = t.writer.WriteByte(' ')
		case textutil.IsControlByte(b):
			_ = t.writer.WriteByte('?')
		default:
			_ = t.writer.WriteByte(b)
		}
	}
	return len(p), nil
}

func (t *ANSI) EnterStandout() {
	_, _ = t.writer.WriteString(seqStandout)
}

func (t *ANSI) ExitStandout() {
	_, _ = t.writer.WriteString(seqReset)
}

func (t *ANSI) CursorUp(n int) {
	if n <= 0 {
		return
	}
	_, _ = fmt.Fprintf(t.writer, "\x1b[%dA", n)
}

func (t *ANSI) ColumnOne() {
	_, _ = t.writer.WriteString(seqColumnOne)
}

func (t *ANSI) EraseDown() {
	_, _ = t.writer.WriteString(seqEraseDown)
}

func (t *ANSI) ReadKey() (Key, error) {
	if t.reader == nil {
		return Key{}, errors.New("no reader available")
	}
	return readKey(t.reader)
}

func (t *ANSI) Flush() error {
	return t.writer.Flush()
}

func (t *ANSI) Size() (int, int) {
	if t.output != nil {
		if cols, rows, ok := sizeOf(int(t.output.Fd())); ok {
			return cols, rows
		}
	}
	return DefaultCols, DefaultRows
}

// Close leaves standout, shows the cursor, restores the saved terminal mode
// and releases /dev/tty. It is safe to call more than once.
func (t *ANSI) Close() error {
	if t.closed {
		return nil
	}
	t.closed = true

	_, _ = t.writer.WriteString(seqReset)
	_, _ = t.writer.WriteString(seqShowCursor)
	if t.opts.AltScreen {
		_, _ = t.writer.WriteString(seqMainScreen)
	}
	err := t.writer.Flush()

	if t.input != nil && t.restoreTerm != nil {
		if rerr := term.Restore(int(t.input.Fd()), t.restoreTerm); rerr != nil && err == nil {
			err = rerr
		}
	}
	t.closeTTY()
	return err
}

func (t *ANSI) closeTTY() {
	if t.input != nil && t.input.Name() == "/dev/tty" {
		_ = t.input.Close()
	}
}
