// Package app wires input, matching, the pager and the editor into one run.
package app

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"

	"github.com/kk-code-lab/pls/internal/buffer"
	"github.com/kk-code-lab/pls/internal/config"
	"github.com/kk-code-lab/pls/internal/search"
	"github.com/kk-code-lab/pls/internal/source"
	"github.com/kk-code-lab/pls/internal/textutil"
	"github.com/kk-code-lab/pls/internal/ui/pager"
	"github.com/kk-code-lab/pls/internal/ui/terminal"
)

// Options are the settings for one run, after flags and config are merged.
type Options struct {
	Pattern string
	// File is the input path; "" or "-" reads standard input.
	File string
	// Command, when set, is run on a pseudo-terminal and its output paged.
	Command []string

	FixedStrings bool
	IgnoreCase   bool
	SmartCase    bool
	Last         bool
	Existing     bool
	Paths        []string
	Always       bool
	Echo         bool
	AltScreen    bool
	Status       bool
	Backend      string
	Editor       string
}

// Application runs a single pager session.
type Application struct {
	opts Options

	stdout       io.Writer
	querySize    func() (int, int)
	openTerminal func() (terminal.Terminal, error)
	runEditor    func(args []string) error
	getenv       func(string) string
	lookPath     func(string) (string, error)
}

// NewApplication prepares a run with the real terminal and environment.
func NewApplication(opts Options) (*Application, error) {
	if opts.Pattern == "" {
		opts.Pattern = search.DefaultPattern
	}
	switch opts.Backend {
	case "":
		opts.Backend = config.BackendANSI
	case config.BackendANSI, config.BackendTcell:
	default:
		return nil, fmt.Errorf("%w %q", config.ErrUnknownBackend, opts.Backend)
	}

	app := &Application{
		opts:      opts,
		stdout:    os.Stdout,
		querySize: terminal.QuerySize,
		runEditor: runEditor,
		getenv:    os.Getenv,
		lookPath:  exec.LookPath,
	}
	app.openTerminal = app.defaultTerminal
	return app, nil
}

func (app *Application) defaultTerminal() (terminal.Terminal, error) {
	if app.opts.Backend == config.BackendTcell {
		return terminal.OpenTcell()
	}
	return terminal.OpenANSI(terminal.Options{AltScreen: app.opts.AltScreen})
}

// Run ingests the input, shows the pager and opens the chosen match.
func (app *Application) Run() error {
	matcher, err := search.Compile(app.opts.Pattern, search.Options{
		Fixed:      app.opts.FixedStrings,
		IgnoreCase: app.opts.IgnoreCase,
		SmartCase:  app.opts.SmartCase,
	})
	if err != nil {
		return fmt.Errorf("pattern: %w", err)
	}

	cols, rows := app.querySize()
	debugLog.Printf("terminal %dx%d pattern %q", cols, rows, app.opts.Pattern)

	session := buffer.NewSession(cols, matcher)
	if app.opts.Existing {
		session.SetFilter(existingFilter(app.opts.Paths))
	}

	var ing ingestion
	if len(app.opts.Command) > 0 {
		ing, err = app.ingestCommand(session, cols, rows)
	} else {
		ing, err = app.ingestFile(session, cols)
	}
	if err != nil {
		return err
	}
	if ing.skip {
		debugLog.Printf("command succeeded, not paging")
		return nil
	}

	doc, err := session.Finish()
	if err != nil {
		return err
	}
	debugLog.Printf("ingested %d lines, %d matches", doc.Lines.Lines(), len(doc.Matches))

	res, err := app.page(doc, ing, rows)
	if err != nil || !res.Open {
		return err
	}

	loc, err := locate(doc, res.Match, ing.path, app.opts.Paths)
	if err != nil {
		return err
	}
	args, err := editorCommand(loc, app.opts.Editor, runtime.GOOS, app.getenv, app.lookPath)
	if err != nil {
		return err
	}
	return app.runEditor(args)
}

// ingestion describes where the document came from.
type ingestion struct {
	name   string
	path   string
	rewind int
	skip   bool
}

func (app *Application) ingestFile(session *buffer.Session, cols int) (ingestion, error) {
	in, err := source.OpenFile(app.opts.File)
	if err != nil {
		return ingestion{}, err
	}
	defer func() {
		_ = in.Close()
	}()

	if err := session.Consume(source.NewChunkReader(in, cols)); err != nil {
		return ingestion{}, fmt.Errorf("%s: %w", in.Name, err)
	}
	return ingestion{name: in.Name, path: in.Path}, nil
}

func (app *Application) ingestCommand(session *buffer.Session, cols, rows int) (ingestion, error) {
	var echo *lineCounter
	var echoWriter io.Writer
	if app.opts.Echo {
		echo = &lineCounter{w: app.stdout}
		echoWriter = echo
	}

	cmd, err := source.StartCommand(app.opts.Command, cols, rows, echoWriter)
	if err != nil {
		return ingestion{}, err
	}

	reader := source.NewChunkReader(cmd, cols)
	reader.SetTransform(textutil.StripANSI)
	consumeErr := session.Consume(reader)
	if consumeErr != nil {
		debugLog.Printf("command %q: %v, discarding remaining output", cmd.Name, consumeErr)
		if err := cmd.Drain(); err != nil {
			debugLog.Printf("command %q: drain: %v", cmd.Name, err)
		}
	}
	status, waitErr := cmd.Wait()
	if waitErr != nil {
		return ingestion{}, fmt.Errorf("%s: %w", cmd.Name, waitErr)
	}
	debugLog.Printf("command %q exited with %d", cmd.Name, status)

	ing := ingestion{name: cmd.Name, skip: status == 0 && !app.opts.Always}
	if ing.skip {
		return ing, nil
	}
	if consumeErr != nil {
		return ingestion{}, fmt.Errorf("%s: %w", cmd.Name, consumeErr)
	}
	if echo != nil && !app.opts.AltScreen && app.opts.Backend == config.BackendANSI {
		ing.rewind = min(echo.lines, max(rows-1, 0))
	}
	return ing, nil
}

func (app *Application) page(doc *buffer.Document, ing ingestion, rows int) (pager.Result, error) {
	term, err := app.openTerminal()
	if err != nil {
		return pager.Result{}, err
	}
	defer func() {
		_ = term.Close()
	}()

	initial := 0
	if app.opts.Last {
		initial = -1
	}
	p, err := pager.New(doc, term, pager.Options{
		Status:  app.opts.Status,
		Name:    ing.name,
		Initial: initial,
		Rewind:  ing.rewind,
		Logger:  debugLog,
	})
	if err != nil {
		return pager.Result{}, err
	}
	res, err := p.Run()
	if cerr := term.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return res, err
}

// lineCounter counts the newlines it passes through.
type lineCounter struct {
	w     io.Writer
	lines int
}

func (c *lineCounter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	for _, b := range p[:n] {
		if b == '\n' {
			c.lines++
		}
	}
	return n, err
}

