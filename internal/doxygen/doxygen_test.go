package doxygen

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gorewood/doxy2json/internal/output"
)

// fakeDoxygen writes an executable shell script standing in for doxygen.
func fakeDoxygen(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts unavailable on windows")
	}
	path := filepath.Join(t.TempDir(), "doxygen")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755))
	return path
}

func TestRun_ForwardsOutput(t *testing.T) {
	bin := fakeDoxygen(t, "echo \"config $1\"\necho 'warning: undocumented' >&2\n")

	var stdout, stderr bytes.Buffer
	err := Run(context.Background(), bin, "Doxyfile", &stdout, &stderr)
	require.NoError(t, err)
	assert.Equal(t, "config Doxyfile\n", stdout.String())
	assert.Equal(t, "warning: undocumented\n", stderr.String())
}

func TestRun_NilWriters(t *testing.T) {
	bin := fakeDoxygen(t, "echo out\necho err >&2\n")
	require.NoError(t, Run(context.Background(), bin, "Doxyfile", nil, nil))
}

func TestRun_Failure(t *testing.T) {
	bin := fakeDoxygen(t, "echo 'warning: ignored' >&2\necho 'error: configuration file Doxyfile not found!' >&2\nexit 1\n")

	err := Run(context.Background(), bin, "Doxyfile", nil, nil)
	require.Error(t, err)
	assert.Equal(t, output.ExitSystemError, output.GetExitCode(err))
	assert.Equal(t, "doxygen failed: error: configuration file Doxyfile not found!", err.Error())

	var exitErr *exec.ExitError
	assert.True(t, errors.As(err, &exitErr))
}

func TestRun_FailureWithoutStderr(t *testing.T) {
	bin := fakeDoxygen(t, "exit 3\n")

	err := Run(context.Background(), bin, "Doxyfile", nil, nil)
	require.Error(t, err)
	assert.Equal(t, "doxygen failed: exit status 3", err.Error())
}

func TestRun_NotFound(t *testing.T) {
	bin := filepath.Join(t.TempDir(), "no-such-doxygen")

	err := Run(context.Background(), bin, "Doxyfile", nil, nil)
	require.Error(t, err)
	assert.Equal(t, output.ExitSystemError, output.GetExitCode(err))
	assert.Contains(t, err.Error(), "not found")
}
