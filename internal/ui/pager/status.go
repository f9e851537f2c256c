package pager

import (
	"fmt"

	"github.com/mattn/go-runewidth"

	"github.com/kk-code-lab/pls/internal/buffer"
	"github.com/kk-code-lab/pls/internal/textutil"
)

const statusEllipsis = "…"

// statusLine describes the selection, fitted to width columns.
func statusLine(sel int, total int, m buffer.Match, name string, width int) string {
	if width <= 0 {
		return ""
	}
	text := fmt.Sprintf("match %d/%d  line %d", sel+1, total, m.Line+1)
	if name != "" {
		text += "  " + textutil.SanitizeTerminalText(name)
	}
	return runewidth.Truncate(text, width, statusEllipsis)
}
