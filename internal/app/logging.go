package app

import (
	"fmt"
	"io"
	"log"
	"os"
)

// EnvDebugLog names the variable that enables the debug log.
const EnvDebugLog = "PLS_DEBUG_LOG"

// The terminal is in raw mode while the pager runs, so debug output only
// ever goes to a file.
var debugLog = log.New(io.Discard, "pls ", log.LstdFlags|log.Lmicroseconds)

// EnableDebugLog appends debug output to path. The returned function closes
// the file and silences the log again.
func EnableDebugLog(path string) (func() error, error) {
	if path == "" {
		return func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open debug log: %w", err)
	}
	debugLog.SetOutput(f)
	return func() error {
		debugLog.SetOutput(io.Discard)
		return f.Close()
	}, nil
}
