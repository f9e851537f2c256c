package buffer

// Span is a half-open byte range [Start, Stop).
type Span struct {
	Start int
	Stop  int
}

// Len returns the number of bytes covered by s.
func (s Span) Len() int {
	return s.Stop - s.Start
}

// Empty reports whether s covers no bytes. Capture groups that did not take
// part in a match are reported as empty spans.
func (s Span) Empty() bool {
	return s.Stop <= s.Start
}

// Hit is a matcher result relative to the text it was given.
type Hit struct {
	Span
	Groups []Span
}

// Matcher finds pattern occurrences in one line of text.
type Matcher interface {
	FindAll(line []byte) []Hit
}

// MatcherFunc adapts an ordinary function to a Matcher.
type MatcherFunc func(line []byte) []Hit

func (f MatcherFunc) FindAll(line []byte) []Hit {
	return f(line)
}

// Match is one occurrence of the pattern in the buffer. Offsets are absolute.
type Match struct {
	Line   int
	Start  int
	Stop   int
	Groups []Span
}

// Span returns the matched byte range.
func (m Match) Span() Span {
	return Span{Start: m.Start, Stop: m.Stop}
}

// Group returns capture group i (1-based) if it took part in the match.
func (m Match) Group(i int) (Span, bool) {
	if i < 1 || i > len(m.Groups) {
		return Span{}, false
	}
	g := m.Groups[i-1]
	if g.Empty() {
		return Span{}, false
	}
	return g, true
}
