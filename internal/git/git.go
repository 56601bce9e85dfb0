package git

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os/exec"
	"strings"

	"github.com/gorewood/doxy2json/internal/output"
)

// DefaultBinary is the git executable looked up in PATH.
const DefaultBinary = "git"

// Repo runs git in Dir. The zero value uses the current directory and the
// git found in PATH.
type Repo struct {
	Dir    string
	Binary string
}

// Run executes git with args and returns its trimmed stdout.
// Failures are *output.ExitError system errors carrying git's stderr.
func (r Repo) Run(ctx context.Context, args ...string) (string, error) {
	binary := r.Binary
	if binary == "" {
		binary = DefaultBinary
	}
	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Dir = r.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var execErr *exec.Error
		if errors.As(err, &execErr) || errors.Is(err, fs.ErrNotExist) {
			return "", output.NewSystemErrorWithCause("git not found: ensure git is installed and in PATH", err)
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", output.NewSystemErrorWithCause("git command failed: "+msg, err)
	}
	return strings.TrimSpace(stdout.String()), nil
}
