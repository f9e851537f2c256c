package input

import (
	"testing"

	"github.com/kk-code-lab/pls/internal/ui/terminal"
)

func TestResolveBindings(t *testing.T) {
	tests := []struct {
		key  terminal.Key
		want Command
	}{
		{terminal.Key{Kind: terminal.KeyRune, Rune: 'n'}, Next},
		{terminal.Key{Kind: terminal.KeyRune, Rune: 'j'}, Next},
		{terminal.Key{Kind: terminal.KeyTab}, Next},
		{terminal.Key{Kind: terminal.KeyCtrl, Rune: 'n'}, Next},
		{terminal.Key{Kind: terminal.KeyDown}, Next},
		{terminal.Key{Kind: terminal.KeyRight}, Next},
		{terminal.Key{Kind: terminal.KeyRune, Rune: 'p'}, Previous},
		{terminal.Key{Kind: terminal.KeyRune, Rune: 'k'}, Previous},
		{terminal.Key{Kind: terminal.KeyBacktab}, Previous},
		{terminal.Key{Kind: terminal.KeyCtrl, Rune: 'p'}, Previous},
		{terminal.Key{Kind: terminal.KeyUp}, Previous},
		{terminal.Key{Kind: terminal.KeyLeft}, Previous},
		{terminal.Key{Kind: terminal.KeyRune, Rune: 'g'}, First},
		{terminal.Key{Kind: terminal.KeyHome}, First},
		{terminal.Key{Kind: terminal.KeyCtrl, Rune: 'a'}, First},
		{terminal.Key{Kind: terminal.KeyRune, Rune: 'G'}, Last},
		{terminal.Key{Kind: terminal.KeyEnd}, Last},
		{terminal.Key{Kind: terminal.KeyCtrl, Rune: 'e'}, Last},
		{terminal.Key{Kind: terminal.KeyEnter}, Open},
	}
	for _, tt := range tests {
		if got := Resolve(tt.key); got != tt.want {
			t.Fatalf("Resolve(%+v) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestResolveUnboundKeysQuit(t *testing.T) {
	unbound := []terminal.Key{
		{Kind: terminal.KeyRune, Rune: 'q'},
		{Kind: terminal.KeyRune, Rune: 'N'},
		{Kind: terminal.KeyRune, Rune: ' '},
		{Kind: terminal.KeyCtrl, Rune: 'c'},
		{Kind: terminal.KeyEscape},
		{Kind: terminal.KeyUnknown},
	}
	for _, key := range unbound {
		if got := Resolve(key); got != Quit {
			t.Fatalf("Resolve(%+v) = %v, want quit", key, got)
		}
	}
}
