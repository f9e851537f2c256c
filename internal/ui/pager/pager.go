package pager

import (
	"errors"
	"io"
	"log"

	"github.com/kk-code-lab/pls/internal/buffer"
	"github.com/kk-code-lab/pls/internal/ui/input"
	"github.com/kk-code-lab/pls/internal/ui/terminal"
)

// State is a step of the navigation loop.
type State int

const (
	Displaying State = iota
	AwaitingInput
	Advancing
	Exiting
)

func (s State) String() string {
	switch s {
	case Displaying:
		return "displaying"
	case AwaitingInput:
		return "awaiting-input"
	case Advancing:
		return "advancing"
	default:
		return "exiting"
	}
}

// Options tunes a Pager.
type Options struct {
	// Height is the number of rows the window may use. Zero means every
	// terminal row but the last, which holds the status line.
	Height int
	// Status enables the status line.
	Status bool
	// Name is shown in the status line.
	Name string
	// Initial is the first selected match; negative values count from the end.
	Initial int
	// Rewind is the number of rows above the cursor the first frame paints
	// over, such as command output echoed before the pager started.
	Rewind int
	Logger *log.Logger
}

// Result describes how a session ended.
type Result struct {
	Selected int
	Match    buffer.Match
	// Open is set when the user asked to open the selection.
	Open bool
}

// Pager is the navigation loop over a Document's matches.
type Pager struct {
	doc     *buffer.Document
	term    terminal.Terminal
	opts    Options
	state   State
	sel     int
	window  Window
	painted int
	command input.Command
	logger  *log.Logger
}

// New prepares a Pager. doc must hold at least one match.
func New(doc *buffer.Document, term terminal.Terminal, opts Options) (*Pager, error) {
	if doc == nil || len(doc.Matches) == 0 {
		return nil, buffer.ErrNoMatches
	}
	if term == nil {
		return nil, errors.New("no terminal")
	}
	p := &Pager{
		doc:     doc,
		term:    term,
		opts:    opts,
		state:   Displaying,
		painted: max(opts.Rewind, 0),
		logger:  opts.Logger,
	}
	if p.logger == nil {
		p.logger = log.New(io.Discard, "", 0)
	}
	p.sel = wrap(opts.Initial, len(doc.Matches))
	return p, nil
}

// State reports the step the loop is in.
func (p *Pager) State() State {
	return p.state
}

// Selected returns the index of the selected match.
func (p *Pager) Selected() int {
	return p.sel
}

// Window returns the window of the last frame.
func (p *Pager) Window() Window {
	return p.window
}

// Run drives the loop until a key ends it. The frame is erased before Run
// returns.
func (p *Pager) Run() (Result, error) {
	var runErr error
	for {
		switch p.state {
		case Displaying:
			if err := p.display(); err != nil {
				runErr = err
				p.state = Exiting
				continue
			}
			p.state = AwaitingInput

		case AwaitingInput:
			key, err := p.term.ReadKey()
			if err != nil {
				if !errors.Is(err, io.EOF) {
					runErr = err
				}
				p.command = input.Quit
				p.state = Exiting
				continue
			}
			p.command = input.Resolve(key)
			if p.command == input.Quit || p.command == input.Open {
				p.state = Exiting
			} else {
				p.state = Advancing
			}

		case Advancing:
			p.advance(p.command)
			p.state = Displaying

		case Exiting:
			return p.exit(runErr)
		}
	}
}

func (p *Pager) advance(cmd input.Command) {
	total := len(p.doc.Matches)
	switch cmd {
	case input.Next:
		p.sel = wrap(p.sel+1, total)
	case input.Previous:
		p.sel = wrap(p.sel-1, total)
	case input.First:
		p.sel = 0
	case input.Last:
		p.sel = total - 1
	}
}

func (p *Pager) display() error {
	p.rewind()

	sel := p.doc.Matches[p.sel]
	next := PlanWindow(p.window, sel, p.doc.Lines, p.height())
	if next != p.window {
		p.logger.Printf("match %d at line %d: window %d-%d", p.sel, sel.Line, next.Start, next.Stop)
	}
	p.window = next

	rows, err := Render(p.term, p.doc.Buffer, p.window, sel)
	p.painted = rows
	if err != nil {
		return err
	}
	if p.opts.Status {
		p.drawStatus(sel)
	}
	return p.term.Flush()
}

// drawStatus leaves the cursor on the status row so the next rewind only
// has to climb over the window rows.
func (p *Pager) drawStatus(sel buffer.Match) {
	cols, _ := p.term.Size()
	text := statusLine(p.sel, len(p.doc.Matches), sel, p.opts.Name, cols-1)
	if text == "" {
		return
	}
	p.term.EnterStandout()
	_, _ = p.term.Write([]byte(text))
	p.term.ExitStandout()
}

func (p *Pager) rewind() {
	p.term.CursorUp(p.painted)
	p.term.ColumnOne()
	p.term.EraseDown()
	p.painted = 0
}

func (p *Pager) exit(runErr error) (Result, error) {
	p.rewind()
	if err := p.term.Flush(); err != nil && runErr == nil {
		runErr = err
	}
	res := Result{
		Selected: p.sel,
		Match:    p.doc.Matches[p.sel],
		Open:     runErr == nil && p.command == input.Open,
	}
	p.logger.Printf("exit after %s with match %d", p.command, p.sel)
	return res, runErr
}

func (p *Pager) height() int {
	if p.opts.Height > 0 {
		return p.opts.Height
	}
	_, rows := p.term.Size()
	return max(rows-1, 1)
}

func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
