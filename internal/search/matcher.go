package search

import (
	"errors"
	"unicode"

	"github.com/kk-code-lab/pls/internal/buffer"
)

// DefaultPattern finds compiler-style "path:line[:column]" locations,
// optionally preceded by a colour escape.
const DefaultPattern = `(?:\x1b\[\dm)?([/\w\-.]+\.\w+):(\d+)(?::(\d+))?`

// ErrEmptyPattern is returned by Compile for an empty pattern.
var ErrEmptyPattern = errors.New("empty pattern")

// Options selects how a pattern is interpreted.
type Options struct {
	Fixed      bool
	IgnoreCase bool
	SmartCase  bool
}

// Compile builds a matcher for pattern.
func Compile(pattern string, opts Options) (buffer.Matcher, error) {
	if pattern == "" {
		return nil, ErrEmptyPattern
	}
	fold := opts.IgnoreCase || (opts.SmartCase && smartCaseInsensitive(pattern))
	if opts.Fixed {
		return newLiteralMatcher(pattern, fold), nil
	}
	return newRegexpMatcher(pattern, fold)
}

// smartCaseInsensitive reports whether a query without upper-case letters
// should match case-insensitively.
func smartCaseInsensitive(query string) bool {
	for _, r := range query {
		if unicode.IsUpper(r) {
			return false
		}
	}
	return true
}
