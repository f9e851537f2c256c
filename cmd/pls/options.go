package main

import (
	"errors"
	"fmt"

	"github.com/kk-code-lab/pls/internal/app"
	"github.com/kk-code-lab/pls/internal/config"
)

var errUsage = errors.New("usage")

// Options holds the command-line flags. The struct tags are interpreted by
// github.com/jessevdk/go-flags.
type Options struct {
	FixedStrings bool     `short:"F" long:"fixed-strings" description:"treat PATTERN as a literal string"`
	IgnoreCase   bool     `short:"i" long:"ignore-case" description:"match case-insensitively"`
	SmartCase    bool     `short:"S" long:"smart-case" description:"ignore case unless PATTERN has upper-case letters"`
	Last         bool     `short:"l" long:"last" description:"start on the last match"`
	Existing     bool     `short:"e" long:"existing" description:"only select matches naming existing files"`
	Paths        []string `short:"p" long:"path" value-name:"DIR" description:"directory searched for matched files (repeatable)"`
	Exec         bool     `short:"x" long:"exec" description:"run COMMAND and page its output"`
	Always       bool     `short:"a" long:"always" description:"page command output even when the command succeeds"`
	Echo         bool     `long:"echo" description:"echo command output while it runs"`
	NoEcho       bool     `long:"no-echo" description:"do not echo command output"`
	AltScreen    bool     `long:"alt-screen" description:"use the alternate screen"`
	NoStatus     bool     `long:"no-status" description:"hide the status line"`
	Backend      string   `long:"backend" choice:"ansi" choice:"tcell" description:"terminal backend"`
	Config       string   `short:"f" long:"config" value-name:"PATH" description:"config YAML path"`
	DebugLog     string   `long:"debug-log" value-name:"PATH" description:"append debug output to PATH"`
	Version      bool     `short:"v" long:"version" description:"print version and exit"`
}

// resolve merges the flags, positional arguments and config file into the
// settings for a run. Flags win over the file.
func (o *Options) resolve(cfg *config.Config, args []string, stdoutIsTerminal bool) (app.Options, error) {
	opts := app.Options{
		Pattern:      cfg.Pattern,
		FixedStrings: o.FixedStrings || cfg.FixedStrings,
		IgnoreCase:   o.IgnoreCase || cfg.IgnoreCase,
		SmartCase:    o.SmartCase || cfg.SmartCase,
		Last:         o.Last || cfg.Last,
		Existing:     o.Existing || cfg.Existing,
		Paths:        append(append([]string(nil), o.Paths...), cfg.Paths...),
		Always:       o.Always,
		AltScreen:    o.AltScreen || cfg.AltScreen,
		Status:       cfg.ShowStatus() && !o.NoStatus,
		Backend:      cfg.Backend,
		Editor:       cfg.Editor,
	}
	if o.Backend != "" {
		opts.Backend = o.Backend
	}

	if o.Exec {
		if len(args) < 2 {
			return app.Options{}, fmt.Errorf("%w: --exec needs PATTERN and COMMAND", errUsage)
		}
		if args[0] != "" {
			opts.Pattern = args[0]
		}
		opts.Command = args[1:]
		opts.Echo = !o.NoEcho && (o.Echo || stdoutIsTerminal)
		return opts, nil
	}

	switch len(args) {
	case 0:
	case 1:
		opts.Pattern = args[0]
	case 2:
		opts.Pattern = args[0]
		opts.File = args[1]
	default:
		return app.Options{}, fmt.Errorf("%w: too many arguments", errUsage)
	}
	return opts, nil
}
