package git

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"

	"github.com/gorewood/doxy2json/internal/output"
)

// requireGit skips the test when git is not installed.
func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
}

// initRepo creates a repository with one commit in a temp dir.
func initRepo(t *testing.T) Repo {
	t.Helper()
	requireGit(t)
	repo := Repo{Dir: t.TempDir()}

	steps := [][]string{
		{"init", "-q"},
		{"-c", "user.name=Test", "-c", "user.email=test@example.com",
			"commit", "-q", "--allow-empty", "-m", "initial"},
	}
	for _, args := range steps {
		if _, err := repo.Run(context.Background(), args...); err != nil {
			t.Fatalf("git %v: %v", args, err)
		}
	}
	return repo
}

func tag(t *testing.T, repo Repo, name string) {
	t.Helper()
	if _, err := repo.Run(context.Background(), "tag", name); err != nil {
		t.Fatalf("git tag %s: %v", name, err)
	}
}

func TestRepo_Run(t *testing.T) {
	requireGit(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		repo     Repo
		args     []string
		wantErr  string
		wantCode int
	}{
		{name: "git version succeeds", args: []string{"version"}},
		{
			name:     "invalid git command",
			args:     []string{"invalid-command-that-does-not-exist"},
			wantErr:  "git command failed: ",
			wantCode: output.ExitSystemError,
		},
		{
			name:     "missing binary",
			repo:     Repo{Binary: "git-binary-that-does-not-exist"},
			args:     []string{"version"},
			wantErr:  "git not found",
			wantCode: output.ExitSystemError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := tt.repo.Run(ctx, tt.args...)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Run() unexpected error: %v", err)
				}
				if !strings.HasPrefix(out, "git version") {
					t.Errorf("Run() = %q, want git version output", out)
				}
				return
			}
			if err == nil {
				t.Fatal("Run() expected error, got nil")
			}
			var exitErr *output.ExitError
			if !errors.As(err, &exitErr) {
				t.Fatalf("Run() error should be *output.ExitError, got %T", err)
			}
			if exitErr.Code != tt.wantCode {
				t.Errorf("Run() exit code = %d, want %d", exitErr.Code, tt.wantCode)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Run() error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidTag(t *testing.T) {
	tests := []struct {
		tag  string
		want bool
	}{
		{"1.0.0", true},
		{"v2.1-rc_1", true},
		{"release", true},
		{"", false},
		{"feature/x", false},
		{"1.0 beta", false},
		{"..\\evil", false},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			if got := ValidTag(tt.tag); got != tt.want {
				t.Errorf("ValidTag(%q) = %v, want %v", tt.tag, got, tt.want)
			}
		})
	}
}

func TestRepo_TagVersion(t *testing.T) {
	ctx := context.Background()

	t.Run("untagged HEAD falls back", func(t *testing.T) {
		got, err := initRepo(t).TagVersion(ctx, "develop")
		if err != nil {
			t.Fatalf("TagVersion() error = %v", err)
		}
		if got != "develop" {
			t.Errorf("TagVersion() = %q, want %q", got, "develop")
		}
	})

	t.Run("outside repository falls back", func(t *testing.T) {
		requireGit(t)
		got, err := Repo{Dir: t.TempDir()}.TagVersion(ctx, "develop")
		if err != nil {
			t.Fatalf("TagVersion() error = %v", err)
		}
		if got != "develop" {
			t.Errorf("TagVersion() = %q, want %q", got, "develop")
		}
	})

	t.Run("tagged HEAD", func(t *testing.T) {
		repo := initRepo(t)
		tag(t, repo, "1.2.3")
		got, err := repo.TagVersion(ctx, "develop")
		if err != nil {
			t.Fatalf("TagVersion() error = %v", err)
		}
		if got != "1.2.3" {
			t.Errorf("TagVersion() = %q, want %q", got, "1.2.3")
		}
	})

	t.Run("invalid tag name", func(t *testing.T) {
		repo := initRepo(t)
		tag(t, repo, "release/1.0")
		_, err := repo.TagVersion(ctx, "develop")
		if err == nil {
			t.Fatal("TagVersion() expected error for invalid tag")
		}
		if code := output.GetExitCode(err); code != output.ExitUserError {
			t.Errorf("exit code = %d, want %d", code, output.ExitUserError)
		}
		if err.Error() != `invalid tag name "release/1.0"` {
			t.Errorf("error = %q", err.Error())
		}
	})

	t.Run("missing git is an error", func(t *testing.T) {
		_, err := Repo{Binary: "git-binary-that-does-not-exist"}.TagVersion(ctx, "develop")
		if code := output.GetExitCode(err); code != output.ExitSystemError {
			t.Errorf("exit code = %d, want %d", code, output.ExitSystemError)
		}
	})
}
