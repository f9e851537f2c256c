package terminal

import (
	"io"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/kk-code-lab/pls/internal/textutil"
)

// Screen implements Terminal on a tcell screen. It keeps its own cursor so
// the pager's relative motions map onto absolute cells.
type Screen struct {
	screen   tcell.Screen
	x, y     int
	style    tcell.Style
	standout tcell.Style
}

// OpenTcell initialises a tcell screen for the controlling terminal.
func OpenTcell() (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := s.Init(); err != nil {
		return nil, err
	}
	return newScreen(s), nil
}

func newScreen(s tcell.Screen) *Screen {
	s.HideCursor()
	return &Screen{
		screen:   s,
		style:    tcell.StyleDefault,
		standout: tcell.StyleDefault.Reverse(true),
	}
}

func (s *Screen) Write(p []byte) (int, error) {
	cols, _ := s.screen.Size()
	for i := 0; i < len(p); {
		r, size := utf8.DecodeRune(p[i:])
		i += size
		switch {
		case r == '\n':
			s.x = 0
			s.y++
			continue
		case r == '\r':
			continue
		case r == utf8.RuneError && size == 1:
			r = '?'
		case r < 0x80 && textutil.IsControlByte(byte(r)):
			r = '?'
		case r == '\t':
			r = ' '
		}
		w := runewidth.RuneWidth(r)
		if w < 1 {
			w = 1
		}
		if cols > 0 && s.x+w > cols {
			s.x = 0
			s.y++
		}
		s.screen.SetContent(s.x, s.y, r, nil, s.style)
		s.x += w
	}
	return len(p), nil
}

func (s *Screen) EnterStandout() {
	s.style = s.standout
}

func (s *Screen) ExitStandout() {
	s.style = tcell.StyleDefault
}

func (s *Screen) CursorUp(n int) {
	s.y -= n
	if s.y < 0 {
		s.y = 0
	}
}

func (s *Screen) ColumnOne() {
	s.x = 0
}

func (s *Screen) EraseDown() {
	cols, rows := s.screen.Size()
	for y := s.y; y < rows; y++ {
		start := 0
		if y == s.y {
			start = s.x
		}
		for x := start; x < cols; x++ {
			s.screen.SetContent(x, y, ' ', nil, tcell.StyleDefault)
		}
	}
}

// ReadKey waits for the next key event. Resizes only trigger a repaint of
// the current cells.
func (s *Screen) ReadKey() (Key, error) {
	for {
		ev := s.screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return Key{}, io.EOF
		case *tcell.EventKey:
			return translateKey(ev), nil
		case *tcell.EventResize:
			s.screen.Sync()
		}
	}
}

func translateKey(ev *tcell.EventKey) Key {
	switch ev.Key() {
	case tcell.KeyRune:
		return Key{Kind: KeyRune, Rune: ev.Rune()}
	case tcell.KeyEnter:
		return Key{Kind: KeyEnter}
	case tcell.KeyTab:
		return Key{Kind: KeyTab}
	case tcell.KeyBacktab:
		return Key{Kind: KeyBacktab}
	case tcell.KeyUp:
		return Key{Kind: KeyUp}
	case tcell.KeyDown:
		return Key{Kind: KeyDown}
	case tcell.KeyLeft:
		return Key{Kind: KeyLeft}
	case tcell.KeyRight:
		return Key{Kind: KeyRight}
	case tcell.KeyHome:
		return Key{Kind: KeyHome}
	case tcell.KeyEnd:
		return Key{Kind: KeyEnd}
	case tcell.KeyEscape:
		return Key{Kind: KeyEscape}
	}
	if k := ev.Key(); k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return Key{Kind: KeyCtrl, Rune: rune('a' + int(k-tcell.KeyCtrlA))}
	}
	return Key{Kind: KeyUnknown}
}

func (s *Screen) Flush() error {
	s.screen.Show()
	return nil
}

func (s *Screen) Size() (int, int) {
	return s.screen.Size()
}

func (s *Screen) Close() error {
	s.screen.Fini()
	return nil
}
