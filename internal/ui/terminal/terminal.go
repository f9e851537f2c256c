// Package terminal hides the control sequences and raw-mode handling the
// pager needs behind a small interface.
package terminal

// KeyKind classifies a keystroke.
type KeyKind int

const (
	KeyUnknown KeyKind = iota
	KeyRune
	KeyEnter
	KeyTab
	KeyBacktab
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyEscape
	// KeyCtrl is a control chord; Rune holds the lower-case letter.
	KeyCtrl
)

// Key is a single decoded keystroke.
type Key struct {
	Kind KeyKind
	Rune rune
}

// Terminal is the surface the pager draws on. Implementations buffer output
// until Flush.
type Terminal interface {
	// Write paints text at the cursor; '\n' moves to the start of the next row.
	Write(p []byte) (int, error)
	EnterStandout()
	ExitStandout()
	CursorUp(n int)
	ColumnOne()
	// EraseDown clears from the cursor to the end of the screen.
	EraseDown()
	// ReadKey blocks until one keystroke is available.
	ReadKey() (Key, error)
	Flush() error
	Size() (cols, rows int)
	// Close restores the terminal to the state it was opened in.
	Close() error
}
