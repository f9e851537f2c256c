package source

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"syscall"
)

// ErrNoCommand is returned by StartCommand for an empty argument list.
var ErrNoCommand = errors.New("no command given")

// ErrPTYUnavailable is returned by StartCommand when no pseudo-terminal can
// be allocated for the child.
var ErrPTYUnavailable = errors.New("pseudo-terminal unavailable")

// Command runs a program on a pseudo-terminal so it formats its output as it
// would for an interactive user, and exposes that output as a stream.
type Command struct {
	Name   string
	cmd    *exec.Cmd
	pty    *os.File
	reader io.Reader
}

// StartCommand starts args[0] with a cols x rows terminal. When echo is not
// nil, output is copied to it as it is read.
func StartCommand(args []string, cols, rows int, echo io.Writer) (*Command, error) {
	if len(args) == 0 {
		return nil, ErrNoCommand
	}
	cmd := exec.Command(args[0], args[1:]...)
	cmd.Env = append(os.Environ(),
		"COLUMNS="+strconv.Itoa(cols),
		"LINES="+strconv.Itoa(rows),
	)

	f, err := startPTY(cmd, cols, rows)
	if err != nil {
		return nil, fmt.Errorf("start %s: %w", args[0], err)
	}

	c := &Command{
		Name: strings.Join(args, " "),
		cmd:  cmd,
		pty:  f,
	}
	var r io.Reader = ptyReader{f: f}
	if echo != nil {
		r = io.TeeReader(r, echo)
	}
	c.reader = r
	return c, nil
}

func (c *Command) Read(p []byte) (int, error) {
	return c.reader.Read(p)
}

// Drain reads and discards the remaining output so the child is never cut off
// mid-write. Echo still sees every byte.
func (c *Command) Drain() error {
	_, err := io.Copy(io.Discard, c.reader)
	return err
}

// Wait releases the terminal and returns the command's exit status. Callers
// read to end of stream, or Drain, first.
func (c *Command) Wait() (int, error) {
	_ = c.Close()
	err := c.cmd.Wait()
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return -1, err
}

// Close closes the controlling side of the pseudo-terminal.
func (c *Command) Close() error {
	if c.pty == nil {
		return nil
	}
	err := c.pty.Close()
	c.pty = nil
	return err
}

// ptyReader reports the EIO Linux returns once the child side is gone as a
// regular end of stream.
type ptyReader struct {
	f *os.File
}

func (r ptyReader) Read(p []byte) (int, error) {
	n, err := r.f.Read(p)
	if err != nil && errors.Is(err, syscall.EIO) {
		err = io.EOF
	}
	return n, err
}
