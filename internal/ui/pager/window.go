// Package pager steps through the matches of a Document, keeping the selected
// one visible in a fixed-height window.
package pager

import "github.com/kk-code-lab/pls/internal/buffer"

// Window is the half-open byte range [Start, Stop) shown on screen. Both ends
// sit on line starts. The zero Window is undefined and contains nothing.
type Window struct {
	Start int
	Stop  int
}

// Defined reports whether w covers any bytes.
func (w Window) Defined() bool {
	return w.Stop > w.Start
}

// Contains reports whether the whole of m lies inside w.
func (w Window) Contains(m buffer.Match) bool {
	return w.Defined() && m.Start >= w.Start && m.Stop <= w.Stop
}

// PlanWindow returns the window to display for sel. The current window is
// kept while it still holds sel; otherwise the window is recentred so sel's
// line sits in the middle, or as close as the start of the buffer allows.
func PlanWindow(cur Window, sel buffer.Match, lines *buffer.LineIndex, height int) Window {
	if cur.Contains(sel) {
		return cur
	}
	if height < 1 {
		height = 1
	}
	target := lines.LineOf(sel.Start) - height/2
	if target < 0 {
		target = 0
	}
	start := lines.Start(target)
	return Window{Start: start, Stop: lines.EndOffset(start, height)}
}
