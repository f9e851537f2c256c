package pager

import (
	"testing"

	"github.com/kk-code-lab/pls/internal/buffer"
)

func TestPlanWindowRecentersOnSelection(t *testing.T) {
	doc := buildDocument(t, numberedLines(20, "hit", 15), "hit")
	sel := doc.Matches[0]
	if sel.Line != 15 {
		t.Fatalf("match line = %d, want 15", sel.Line)
	}

	w := PlanWindow(Window{}, sel, doc.Lines, 10)

	first := doc.Lines.LineOf(w.Start)
	if first < 10 {
		t.Fatalf("window starts at line %d, want >= 10", first)
	}
	if !w.Contains(sel) {
		t.Fatalf("window %+v does not contain match %+v", w, sel)
	}
	if w.Start != doc.Lines.Start(10) || w.Stop != len(doc.Buffer) {
		t.Fatalf("window = %+v, want lines 10-20", w)
	}
}

func TestPlanWindowIsIdempotent(t *testing.T) {
	doc := buildDocument(t, numberedLines(50, "hit", 3, 27, 44), "hit")
	for _, sel := range doc.Matches {
		a := PlanWindow(Window{}, sel, doc.Lines, 7)
		b := PlanWindow(Window{}, sel, doc.Lines, 7)
		if a != b {
			t.Fatalf("plans differ: %+v vs %+v", a, b)
		}
		if again := PlanWindow(a, sel, doc.Lines, 7); again != a {
			t.Fatalf("replanning a containing window moved it: %+v -> %+v", a, again)
		}
	}
}

func TestPlanWindowKeepsContainingWindow(t *testing.T) {
	doc := buildDocument(t, numberedLines(30, "hit", 12, 14), "hit")
	w := PlanWindow(Window{}, doc.Matches[0], doc.Lines, 10)
	if !w.Contains(doc.Matches[1]) {
		t.Fatalf("second match should already be visible in %+v", w)
	}
	if next := PlanWindow(w, doc.Matches[1], doc.Lines, 10); next != w {
		t.Fatalf("window moved from %+v to %+v", w, next)
	}
}

func TestPlanWindowClampsAtBothEnds(t *testing.T) {
	doc := buildDocument(t, numberedLines(20, "hit", 1, 19), "hit")

	top := PlanWindow(Window{}, doc.Matches[0], doc.Lines, 10)
	if top.Start != 0 || top.Stop != doc.Lines.Start(10) {
		t.Fatalf("top window = %+v", top)
	}

	bottom := PlanWindow(Window{}, doc.Matches[1], doc.Lines, 10)
	if bottom.Start != doc.Lines.Start(14) {
		t.Fatalf("bottom window starts at line %d, want 14", doc.Lines.LineOf(bottom.Start))
	}
	if bottom.Stop != len(doc.Buffer) {
		t.Fatalf("bottom window should end at the buffer end, got %+v", bottom)
	}
	if !bottom.Contains(doc.Matches[1]) {
		t.Fatalf("bottom window %+v misses match %+v", bottom, doc.Matches[1])
	}
}

func TestUndefinedWindowContainsNothing(t *testing.T) {
	if (Window{}).Contains(buffer.Match{Start: 0, Stop: 0}) {
		t.Fatalf("zero window must not contain anything")
	}
}

func TestPlanWindowAlwaysContainsSelection(t *testing.T) {
	lines := numberedLines(40, "hit", 0, 5, 6, 20, 33, 39)
	doc := buildDocument(t, lines, "hit")
	for _, height := range []int{1, 2, 5, 10, 39, 60} {
		w := Window{}
		for i := 0; i < 2*len(doc.Matches); i++ {
			sel := doc.Matches[i%len(doc.Matches)]
			w = PlanWindow(w, sel, doc.Lines, height)
			if !w.Contains(sel) {
				t.Fatalf("height %d: window %+v misses match %+v", height, w, sel)
			}
			if n := doc.Lines.LineOf(w.Stop) - doc.Lines.LineOf(w.Start); n > height {
				t.Fatalf("height %d: window spans %d lines", height, n)
			}
		}
	}
}
