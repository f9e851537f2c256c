package search

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
	"github.com/kk-code-lab/pls/internal/buffer"
)

// Per-line budget for a single regexp2 scan; pathological backtracking gives
// up on the line instead of hanging ingestion.
const matchTimeout = 2 * time.Second

type regexpMatcher struct {
	re *regexp2.Regexp
}

func newRegexpMatcher(pattern string, fold bool) (*regexpMatcher, error) {
	opts := regexp2.RegexOptions(regexp2.None)
	if fold {
		opts |= regexp2.IgnoreCase
	}
	re, err := regexp2.Compile(pattern, opts)
	if err != nil {
		return nil, fmt.Errorf("compile pattern %q: %w", pattern, err)
	}
	re.MatchTimeout = matchTimeout
	return &regexpMatcher{re: re}, nil
}

func (m *regexpMatcher) FindAll(line []byte) []buffer.Hit {
	if len(line) == 0 {
		return nil
	}
	text := string(line)
	offsets := runeOffsets(text)

	var hits []buffer.Hit
	match, err := m.re.FindStringMatch(text)
	for err == nil && match != nil {
		if match.Length > 0 {
			hit := buffer.Hit{Span: runeSpan(offsets, match.Index, match.Length)}
			if groups := match.Groups(); len(groups) > 1 {
				hit.Groups = make([]buffer.Span, len(groups)-1)
				for i, g := range groups[1:] {
					if len(g.Captures) == 0 {
						hit.Groups[i] = buffer.Span{Start: -1, Stop: -1}
						continue
					}
					hit.Groups[i] = runeSpan(offsets, g.Index, g.Length)
				}
			}
			hits = append(hits, hit)
		}
		match, err = m.re.FindNextMatch(match)
	}
	return hits
}

// runeOffsets maps rune indexes (as reported by regexp2) to byte offsets. It
// returns nil when text is pure ASCII and the two coincide.
func runeOffsets(text string) []int {
	ascii := true
	for i := 0; i < len(text); i++ {
		if text[i] >= utf8.RuneSelf {
			ascii = false
			break
		}
	}
	if ascii {
		return nil
	}
	offsets := make([]int, 0, len(text)+1)
	for i := range text {
		offsets = append(offsets, i)
	}
	return append(offsets, len(text))
}

func runeSpan(offsets []int, index, length int) buffer.Span {
	if offsets == nil {
		return buffer.Span{Start: index, Stop: index + length}
	}
	return buffer.Span{Start: offsets[index], Stop: offsets[index+length]}
}
