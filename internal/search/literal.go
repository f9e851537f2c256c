package search

import (
	"bytes"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/kk-code-lab/pls/internal/buffer"
)

type literalMatcher struct {
	needle      []byte
	needleLower string
	fold        bool
}

func newLiteralMatcher(needle string, fold bool) *literalMatcher {
	return &literalMatcher{
		needle:      []byte(needle),
		needleLower: strings.ToLower(needle),
		fold:        fold,
	}
}

func (m *literalMatcher) FindAll(line []byte) []buffer.Hit {
	if len(line) == 0 {
		return nil
	}
	if m.fold {
		return matchCaseInsensitive(string(line), m.needleLower)
	}
	return matchExact(line, m.needle)
}

func matchExact(haystack, needle []byte) []buffer.Hit {
	var hits []buffer.Hit
	searchFrom := 0
	for {
		idx := bytes.Index(haystack[searchFrom:], needle)
		if idx == -1 {
			return hits
		}
		start := searchFrom + idx
		end := start + len(needle)
		hits = append(hits, buffer.Hit{Span: buffer.Span{Start: start, Stop: end}})
		searchFrom = end
	}
}

func matchCaseInsensitive(plain string, needleLower string) []buffer.Hit {
	lower := strings.ToLower(plain)
	if len(lower) == len(plain) {
		return matchExact([]byte(lower), []byte(needleLower))
	}

	var hits []buffer.Hit
	for i := 0; i < len(plain); {
		if matchesAtFolded(plain, i, needleLower) {
			end := advanceBytesForRunes(plain, i, utf8.RuneCountInString(needleLower))
			hits = append(hits, buffer.Hit{Span: buffer.Span{Start: i, Stop: end}})
			i = end
			continue
		}
		_, size := utf8.DecodeRuneInString(plain[i:])
		if size <= 0 {
			size = 1
		}
		i += size
	}
	return hits
}

func matchesAtFolded(haystack string, start int, needleLower string) bool {
	hIndex := start
	for _, nr := range needleLower {
		if hIndex >= len(haystack) {
			return false
		}
		hr, size := utf8.DecodeRuneInString(haystack[hIndex:])
		if size <= 0 {
			return false
		}
		if unicode.ToLower(hr) != nr {
			return false
		}
		hIndex += size
	}
	return true
}

func advanceBytesForRunes(s string, start int, runeCount int) int {
	i := start
	for count := 0; i < len(s) && count < runeCount; count++ {
		_, size := utf8.DecodeRuneInString(s[i:])
		if size <= 0 {
			size = 1
		}
		i += size
	}
	return i
}
