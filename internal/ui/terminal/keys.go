package terminal

import (
	"bufio"
	"unicode/utf8"
)

// readKey decodes one keystroke from raw terminal input.
func readKey(r *bufio.Reader) (Key, error) {
	b, err := r.ReadByte()
	if err != nil {
		return Key{}, err
	}

	switch {
	case b == 0x1b:
		return parseEscapeSequence(r), nil
	case b == '\r' || b == '\n':
		return Key{Kind: KeyEnter}, nil
	case b == '\t':
		return Key{Kind: KeyTab}, nil
	case b >= 0x01 && b <= 0x1a:
		return Key{Kind: KeyCtrl, Rune: rune('a' + b - 1)}, nil
	case b < utf8.RuneSelf:
		if b < 0x20 || b == 0x7f {
			return Key{Kind: KeyUnknown}, nil
		}
		return Key{Kind: KeyRune, Rune: rune(b)}, nil
	}

	buf := []byte{b}
	for !utf8.FullRune(buf) {
		next, err := r.ReadByte()
		if err != nil {
			break
		}
		buf = append(buf, next)
	}
	ch, _ := utf8.DecodeRune(buf)
	if ch == utf8.RuneError {
		return Key{Kind: KeyUnknown}, nil
	}
	return Key{Kind: KeyRune, Rune: ch}, nil
}

// parseEscapeSequence treats a lone ESC (nothing else buffered) as the Escape
// key.
func parseEscapeSequence(r *bufio.Reader) Key {
	if r.Buffered() == 0 {
		return Key{Kind: KeyEscape}
	}
	next, err := r.ReadByte()
	if err != nil {
		return Key{Kind: KeyEscape}
	}

	switch next {
	case '[':
		return parseCSI(r)
	case 'O':
		final, err := r.ReadByte()
		if err != nil {
			return Key{Kind: KeyEscape}
		}
		return csiFinal(final)
	default:
		return Key{Kind: KeyEscape}
	}
}

func parseCSI(r *bufio.Reader) Key {
	seq := []byte{}
	for {
		b, err := r.ReadByte()
		if err != nil {
			return Key{Kind: KeyEscape}
		}
		seq = append(seq, b)
		if (b >= 'A' && b <= 'Z') || b == '~' {
			break
		}
		if len(seq) > 5 {
			break
		}
	}

	final := seq[len(seq)-1]
	if final != '~' {
		return csiFinal(final)
	}
	switch string(seq[:len(seq)-1]) {
	case "1", "7":
		return Key{Kind: KeyHome}
	case "4", "8":
		return Key{Kind: KeyEnd}
	}
	return Key{Kind: KeyUnknown}
}

func csiFinal(final byte) Key {
	switch final {
	case 'A':
		return Key{Kind: KeyUp}
	case 'B':
		return Key{Kind: KeyDown}
	case 'C':
		return Key{Kind: KeyRight}
	case 'D':
		return Key{Kind: KeyLeft}
	case 'H':
		return Key{Kind: KeyHome}
	case 'F':
		return Key{Kind: KeyEnd}
	case 'Z':
		return Key{Kind: KeyBacktab}
	}
	return Key{Kind: KeyUnknown}
}
