package main

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/jessevdk/go-flags"

	"github.com/kk-code-lab/pls/internal/config"
)

func parse(t *testing.T, args ...string) (*Options, []string) {
	t.Helper()
	opts := &Options{}
	parser := flags.NewParser(opts, flags.HelpFlag|flags.PassDoubleDash|flags.PassAfterNonOption)
	rest, err := parser.ParseArgs(args)
	if err != nil {
		t.Fatalf("ParseArgs: %v", err)
	}
	return opts, rest
}

func TestResolveFileMode(t *testing.T) {
	opts, rest := parse(t, "-i", "-p", "src", "-p", "lib", "TODO", "notes.txt")
	got, err := opts.resolve(config.Default(), rest, false)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got.Pattern != "TODO" || got.File != "notes.txt" || !got.IgnoreCase {
		t.Fatalf("unexpected options %+v", got)
	}
	if !reflect.DeepEqual(got.Paths, []string{"src", "lib"}) {
		t.Fatalf("paths = %v", got.Paths)
	}
	if !got.Status || got.Backend != config.BackendANSI {
		t.Fatalf("defaults not applied: %+v", got)
	}
}

func TestResolveExecModeStopsAtCommand(t *testing.T) {
	opts, rest := parse(t, "-x", "-a", "error", "make", "-j4", "all")
	got, err := opts.resolve(config.Default(), rest, true)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got.Pattern != "error" || !got.Always {
		t.Fatalf("unexpected options %+v", got)
	}
	if !reflect.DeepEqual(got.Command, []string{"make", "-j4", "all"}) {
		t.Fatalf("command = %q", got.Command)
	}
	if !got.Echo {
		t.Fatalf("echo should default on when stdout is a terminal")
	}

	opts, rest = parse(t, "-x", "--no-echo", "", "make")
	got, err = opts.resolve(config.Default(), rest, true)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got.Echo || got.Pattern != "" {
		t.Fatalf("unexpected options %+v", got)
	}
}

func TestResolveFlagsOverrideConfig(t *testing.T) {
	status := true
	cfg := &config.Config{Pattern: "cfg", Backend: config.BackendTcell, Status: &status, Paths: []string{"cfgdir"}}

	opts, rest := parse(t, "--backend", "ansi", "--no-status", "-p", "flagdir")
	got, err := opts.resolve(cfg, rest, false)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got.Pattern != "cfg" || got.Backend != config.BackendANSI || got.Status {
		t.Fatalf("unexpected options %+v", got)
	}
	if !reflect.DeepEqual(got.Paths, []string{"flagdir", "cfgdir"}) {
		t.Fatalf("paths = %v", got.Paths)
	}
}

func TestResolveUsageErrors(t *testing.T) {
	opts, rest := parse(t, "a", "b", "c")
	if _, err := opts.resolve(config.Default(), rest, false); !errors.Is(err, errUsage) {
		t.Fatalf("expected usage error, got %v", err)
	}
	opts, rest = parse(t, "-x", "pattern")
	if _, err := opts.resolve(config.Default(), rest, false); !errors.Is(err, errUsage) {
		t.Fatalf("expected usage error, got %v", err)
	}
}

func TestRunVersionAndHelp(t *testing.T) {
	var out, errOut bytes.Buffer
	if code := run([]string{"--version"}, &out, &errOut); code != 0 {
		t.Fatalf("--version exit %d", code)
	}
	if !strings.HasPrefix(out.String(), "pls ") {
		t.Fatalf("unexpected version output %q", out.String())
	}

	out.Reset()
	if code := run([]string{"--help"}, &out, &errOut); code != 0 {
		t.Fatalf("--help exit %d", code)
	}
	if !strings.Contains(out.String(), "--fixed-strings") {
		t.Fatalf("help output missing flags: %q", out.String())
	}
}

func TestRunRejectsUnknownFlag(t *testing.T) {
	var out, errOut bytes.Buffer
	if code := run([]string{"--bogus"}, &out, &errOut); code != 1 {
		t.Fatalf("exit %d, want 1", code)
	}
	if !strings.Contains(errOut.String(), "bogus") {
		t.Fatalf("stderr = %q", errOut.String())
	}
}
