//go:build windows

package source

import (
	"fmt"
	"os"
	"os/exec"
)

func startPTY(cmd *exec.Cmd, cols, rows int) (*os.File, error) {
	return nil, fmt.Errorf("%w: not supported on windows", ErrPTYUnavailable)
}
