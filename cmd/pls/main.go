package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/jessevdk/go-flags"

	"github.com/kk-code-lab/pls/internal/app"
	"github.com/kk-code-lab/pls/internal/config"
	"github.com/kk-code-lab/pls/internal/ui/terminal"
)

var version = "dev"

const usage = `[OPTIONS] [PATTERN] [FILE]
  pls [OPTIONS] --exec PATTERN COMMAND [ARGS...]

Step through every match of PATTERN (by default compiler-style path:line:col
locations). n/p move between matches, Enter opens the match in an editor and
any other key quits.`

func main() {
	tcell.SetEncodingFallback(tcell.EncodingFallbackUTF8)
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts := &Options{}
	parser := flags.NewParser(opts, flags.HelpFlag|flags.PassDoubleDash|flags.PassAfterNonOption)
	parser.Name = "pls"
	parser.Usage = usage

	rest, err := parser.ParseArgs(args)
	if err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			fmt.Fprintln(stdout, err)
			return 0
		}
		fmt.Fprintf(stderr, "pls: %v\n", err)
		return 1
	}
	if opts.Version {
		fmt.Fprintf(stdout, "pls %s\n", version)
		return 0
	}

	logPath := opts.DebugLog
	if logPath == "" {
		logPath = os.Getenv(app.EnvDebugLog)
	}
	closeLog, err := app.EnableDebugLog(logPath)
	if err != nil {
		fmt.Fprintf(stderr, "pls: %v\n", err)
		return 1
	}
	defer func() {
		_ = closeLog()
	}()

	cfg, err := config.Resolve(opts.Config, os.Getenv)
	if err != nil {
		fmt.Fprintf(stderr, "pls: %v\n", err)
		return 1
	}

	appOpts, err := opts.resolve(cfg, rest, terminal.IsTerminal(os.Stdout))
	if err != nil {
		fmt.Fprintf(stderr, "pls: %v\n", err)
		if errors.Is(err, errUsage) {
			parser.WriteHelp(stderr)
		}
		return 1
	}

	application, err := app.NewApplication(appOpts)
	if err != nil {
		fmt.Fprintf(stderr, "pls: %v\n", err)
		return 1
	}
	if err := application.Run(); err != nil {
		fmt.Fprintf(stderr, "pls: %v\n", err)
		return 1
	}
	return 0
}
