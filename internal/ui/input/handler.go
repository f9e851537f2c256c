package input

import "github.com/kk-code-lab/pls/internal/ui/terminal"

// Command is what a keystroke asks the pager to do.
type Command int

const (
	// Quit ends the session; it is what every unbound key means.
	Quit Command = iota
	Next
	Previous
	First
	Last
	// Open ends the session and reports the selected match to the caller.
	Open
)

func (c Command) String() string {
	switch c {
	case Next:
		return "next"
	case Previous:
		return "previous"
	case First:
		return "first"
	case Last:
		return "last"
	case Open:
		return "open"
	default:
		return "quit"
	}
}

var runeCommands = map[rune]Command{
	'n': Next,
	'j': Next,
	'p': Previous,
	'k': Previous,
	'g': First,
	'G': Last,
}

var ctrlCommands = map[rune]Command{
	'n': Next,
	'p': Previous,
	'a': First,
	'e': Last,
}

// Resolve maps a keystroke to a Command.
func Resolve(key terminal.Key) Command {
	switch key.Kind {
	case terminal.KeyRune:
		if cmd, ok := runeCommands[key.Rune]; ok {
			return cmd
		}
	case terminal.KeyCtrl:
		if cmd, ok := ctrlCommands[key.Rune]; ok {
			return cmd
		}
	case terminal.KeyTab, terminal.KeyDown, terminal.KeyRight:
		return Next
	case terminal.KeyBacktab, terminal.KeyUp, terminal.KeyLeft:
		return Previous
	case terminal.KeyHome:
		return First
	case terminal.KeyEnd:
		return Last
	case terminal.KeyEnter:
		return Open
	}
	return Quit
}
