package app

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"

	"github.com/kk-code-lab/pls/internal/buffer"
)

var ErrNoLocation = errors.New("selected match has no file location")

// Capture groups of a location pattern.
const (
	groupPath   = 1
	groupLine   = 2
	groupColumn = 3
)

// resolvePath finds path as given or under the first of dirs that holds it.
func resolvePath(path string, dirs []string) (string, bool) {
	if _, err := os.Stat(path); err == nil {
		return path, true
	}
	if filepath.IsAbs(path) {
		return path, false
	}
	for _, dir := range dirs {
		candidate := filepath.Join(expandUserPath(dir), path)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}
	}
	return path, false
}

// existingFilter keeps matches whose path group names a file that exists.
func existingFilter(dirs []string) buffer.Filter {
	return func(buf []byte, m buffer.Match) bool {
		g, ok := m.Group(groupPath)
		if !ok {
			return false
		}
		_, ok = resolvePath(string(buf[g.Start:g.Stop]), dirs)
		return ok
	}
}

// locate turns a match into the place to open. A match carrying a path group
// names its own file; otherwise the match position inside the input file is
// used.
func locate(doc *buffer.Document, m buffer.Match, inputPath string, dirs []string) (Location, error) {
	if path, ok := doc.GroupText(m, groupPath); ok {
		loc := Location{Line: 1, Column: 1}
		loc.Path, _ = resolvePath(path, dirs)
		if line, ok := groupNumber(doc, m, groupLine); ok {
			loc.Line = line
		}
		if col, ok := groupNumber(doc, m, groupColumn); ok {
			loc.Column = col
		}
		return loc, nil
	}
	if inputPath == "" {
		return Location{}, ErrNoLocation
	}
	return Location{
		Path:   inputPath,
		Line:   m.Line + 1,
		Column: doc.Column(m) + 1,
	}, nil
}

func groupNumber(doc *buffer.Document, m buffer.Match, i int) (int, bool) {
	text, ok := doc.GroupText(m, i)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(text)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}
