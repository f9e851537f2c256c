package terminal

import (
	"errors"
	"testing"
)

func TestSizeOfRejectsFailuresAndZeroSizes(t *testing.T) {
	orig := termGetSize
	t.Cleanup(func() { termGetSize = orig })

	termGetSize = func(int) (int, int, error) { return 0, 0, errors.New("not a terminal") }
	if _, _, ok := sizeOf(1); ok {
		t.Fatalf("expected failure to be reported")
	}

	termGetSize = func(int) (int, int, error) { return 0, 24, nil }
	if _, _, ok := sizeOf(1); ok {
		t.Fatalf("expected zero width to be rejected")
	}

	termGetSize = func(int) (int, int, error) { return 120, 40, nil }
	cols, rows, ok := sizeOf(1)
	if !ok || cols != 120 || rows != 40 {
		t.Fatalf("sizeOf = %d,%d,%v", cols, rows, ok)
	}
}

func TestQuerySizeFallsBackToDefaults(t *testing.T) {
	orig := termGetSize
	t.Cleanup(func() { termGetSize = orig })
	termGetSize = func(int) (int, int, error) { return 0, 0, errors.New("not a terminal") }

	cols, rows := QuerySize()
	if cols != DefaultCols || rows != DefaultRows {
		t.Fatalf("QuerySize = %dx%d, want %dx%d", cols, rows, DefaultCols, DefaultRows)
	}
}
