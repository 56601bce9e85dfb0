// Package doxygen runs the Doxygen executable.
package doxygen

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os/exec"
	"strings"

	"github.com/gorewood/doxy2json/internal/output"
)

// DefaultBinary is the Doxygen executable looked up in PATH.
const DefaultBinary = "doxygen"

// Run executes binary with doxyfile as its only argument.
// Output is forwarded to stdout and stderr; either may be nil to discard it.
// Returns an *output.ExitError on failure with appropriate exit code.
func Run(ctx context.Context, binary, doxyfile string, stdout, stderr io.Writer) error {
	if binary == "" {
		binary = DefaultBinary
	}
	cmd := exec.CommandContext(ctx, binary, doxyfile)

	var captured bytes.Buffer
	cmd.Stdout = discardIfNil(stdout)
	cmd.Stderr = io.MultiWriter(discardIfNil(stderr), &captured)

	err := cmd.Run()
	if err != nil {
		var execErr *exec.Error
		if errors.As(err, &execErr) || errors.Is(err, fs.ErrNotExist) {
			return output.NewSystemErrorWithCause(
				fmt.Sprintf("%s not found: ensure doxygen is installed and in PATH", binary), err)
		}

		errMsg := lastLine(captured.String())
		if errMsg == "" {
			errMsg = err.Error()
		}
		return output.NewSystemErrorWithCause("doxygen failed: "+errMsg, err)
	}
	return nil
}

func discardIfNil(w io.Writer) io.Writer {
	if w == nil {
		return io.Discard
	}
	return w
}

// lastLine returns the last non-empty line of s; Doxygen reports the fatal
// problem last after its warnings.
func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
