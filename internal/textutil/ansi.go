package textutil

import "bytes"

// StripANSI removes escape sequences (CSI such as SGR colours, OSC titles and
// two-byte ESC sequences) from line. line is returned unchanged when it holds
// no ESC byte.
func StripANSI(line []byte) []byte {
	if bytes.IndexByte(line, 0x1b) < 0 {
		return line
	}
	out := make([]byte, 0, len(line))
	for i := 0; i < len(line); {
		if line[i] != 0x1b {
			out = append(out, line[i])
			i++
			continue
		}
		i = skipEscape(line, i)
	}
	return out
}

// skipEscape returns the index just past the escape sequence starting at i.
func skipEscape(line []byte, i int) int {
	i++
	if i >= len(line) {
		return i
	}
	switch line[i] {
	case '[':
		i++
		for i < len(line) && (line[i] < 0x40 || line[i] > 0x7e) {
			i++
		}
		return i + 1
	case ']':
		for i < len(line) {
			if line[i] == 0x07 {
				return i + 1
			}
			if line[i] == 0x1b && i+1 < len(line) && line[i+1] == '\\' {
				return i + 2
			}
			i++
		}
		return i
	default:
		// ESC, optional intermediates, final byte (e.g. ESC ( B).
		for i < len(line) && line[i] >= 0x20 && line[i] <= 0x2f {
			i++
		}
		return i + 1
	}
}
