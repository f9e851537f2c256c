package app

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"unicode"
)

// EnvTemplate names the variable holding an editor command template.
const EnvTemplate = "PLS"

var ErrNoEditor = errors.New("no editor found; set PLS, VISUAL or EDITOR")

// Location is a 1-based position in a file.
type Location struct {
	Path   string
	Line   int
	Column int
}

// editorCommand builds the argument list that opens loc. A template (the
// editor setting or $PLS) wins over $VISUAL/$EDITOR, which win over an
// editor found on PATH.
func editorCommand(loc Location, template string, goos string, getenv func(string) string, lookPath func(string) (string, error)) ([]string, error) {
	if template == "" {
		template = getenv(EnvTemplate)
	}
	if args := parseEditorCommand(template); len(args) > 0 {
		return expandTemplate(args, loc), nil
	}

	args, ok := detectEditorCommand(goos, getenv, lookPath)
	if !ok {
		return nil, ErrNoEditor
	}
	return appendLocation(args, loc), nil
}

// expandTemplate substitutes %s with the path and the first two %d with the
// line and column. The path is appended when no argument mentions it.
func expandTemplate(args []string, loc Location) []string {
	numbers := []int{loc.Line, loc.Column}
	hasPath := false
	out := make([]string, 0, len(args)+1)
	for _, arg := range args {
		var b strings.Builder
		for i := 0; i < len(arg); i++ {
			if arg[i] != '%' || i+1 >= len(arg) {
				b.WriteByte(arg[i])
				continue
			}
			switch arg[i+1] {
			case 's':
				b.WriteString(loc.Path)
				hasPath = true
				i++
			case 'd':
				if len(numbers) == 0 {
					b.WriteString("%d")
				} else {
					b.WriteString(strconv.Itoa(numbers[0]))
					numbers = numbers[1:]
				}
				i++
			case '%':
				b.WriteByte('%')
				i++
			default:
				b.WriteByte('%')
			}
		}
		out = append(out, b.String())
	}
	if !hasPath {
		out = append(out, loc.Path)
	}
	return out
}

// appendLocation adds loc in the syntax the editor named by args[0] expects.
func appendLocation(args []string, loc Location) []string {
	line := strconv.Itoa(loc.Line)
	col := strconv.Itoa(loc.Column)
	out := append([]string(nil), args...)

	switch editorName(args[0]) {
	case "vim", "vi", "nvim", "gvim", "mvim":
		return append(out, "+call cursor("+line+", "+col+")", loc.Path)
	case "emacs", "emacsclient":
		return append(out, "+"+line+":"+col, loc.Path)
	case "nano":
		return append(out, "+"+line+","+col, loc.Path)
	case "mate", "mate_wait":
		return append(out, "--line", line+":"+col, loc.Path)
	case "subl", "atom":
		return append(out, loc.Path+":"+line+":"+col)
	case "code", "code-insiders", "codium":
		return append(out, "-g", loc.Path+":"+line+":"+col)
	case "idea", "phpstorm", "goland", "pycharm", "webstorm":
		path := loc.Path
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		return append(out, "--line", line, path)
	case "notepad++":
		return append(out, "-n"+line, "-c"+col, loc.Path)
	default:
		return append(out, "+"+line, loc.Path)
	}
}

func editorName(executable string) string {
	base := filepath.Base(strings.ReplaceAll(executable, `\`, "/"))
	return strings.TrimSuffix(strings.ToLower(base), ".exe")
}

func detectEditorCommand(goos string, getenv func(string) string, lookPath func(string) (string, error)) ([]string, bool) {
	candidates := []string{getenv("VISUAL"), getenv("EDITOR")}

	for _, candidate := range candidates {
		args := parseEditorCommand(candidate)
		if len(args) == 0 {
			continue
		}
		if resolved, ok := resolveEditorExecutableWithLookup(args[0], lookPath); ok {
			args[0] = resolved
			return args, true
		}
	}

	var defaults [][]string
	if strings.EqualFold(goos, "windows") {
		defaults = [][]string{
			{"code", "--wait"},
			{"notepad++.exe"},
		}
	} else {
		defaults = [][]string{
			{"vim"},
			{"nano"},
		}
	}

	for _, def := range defaults {
		if resolved, ok := resolveEditorExecutableWithLookup(def[0], lookPath); ok {
			return append([]string{resolved}, def[1:]...), true
		}
	}

	return nil, false
}

// parseEditorCommand splits cmd into arguments, honouring single and double
// quotes.
func parseEditorCommand(cmd string) []string {
	cmd = strings.TrimSpace(cmd)
	if cmd == "" {
		return nil
	}

	var args []string
	var current strings.Builder
	inSingle := false
	inDouble := false
	quoted := false

	for _, r := range cmd {
		switch {
		case r == '\'' && !inDouble:
			inSingle = !inSingle
			quoted = true
		case r == '"' && !inSingle:
			inDouble = !inDouble
			quoted = true
		case !inSingle && !inDouble && unicode.IsSpace(r):
			if current.Len() > 0 || quoted {
				args = append(args, current.String())
				current.Reset()
				quoted = false
			}
		default:
			current.WriteRune(r)
		}
	}

	if current.Len() > 0 || quoted {
		args = append(args, current.String())
	}

	if len(args) > 0 {
		args[0] = expandUserPath(args[0])
	}
	return args
}

func expandUserPath(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if len(path) == 1 {
		return home
	}
	if sep := path[1]; sep != '/' && sep != '\\' {
		return path
	}
	return filepath.Join(home, path[2:])
}

func resolveEditorExecutableWithLookup(cmd string, lookPath func(string) (string, error)) (string, bool) {
	if cmd == "" {
		return "", false
	}
	path, err := lookPath(expandUserPath(cmd))
	if err != nil || path == "" {
		return "", false
	}
	return path, true
}

// runEditor runs args attached to the controlling terminal, falling back to
// the standard streams where /dev/tty is unavailable.
func runEditor(args []string) error {
	cmd := exec.Command(args[0], args[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if runtime.GOOS != "windows" {
		if tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0); err == nil {
			defer func() {
				_ = tty.Close()
			}()
			cmd.Stdin = tty
			cmd.Stdout = tty
			cmd.Stderr = tty
		}
	}
	debugLog.Printf("editor: %q", args)
	return cmd.Run()
}
