package git

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"

	"github.com/gorewood/doxy2json/internal/output"
)

// tagPattern limits tags to names safe as a single path element.
var tagPattern = regexp.MustCompile(`^[0-9a-zA-Z_\-.]+$`)

// DescribeExactTag returns the tag pointing exactly at HEAD, or "" when
// HEAD is untagged or Dir is not in a repository.
func (r Repo) DescribeExactTag(ctx context.Context) (string, error) {
	tag, err := r.Run(ctx, "describe", "--exact-match", "--tags", "HEAD")
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", nil
		}
		return "", err
	}
	return tag, nil
}

// ValidTag reports whether tag can be used as a version directory name.
func ValidTag(tag string) bool {
	return tagPattern.MatchString(tag)
}

// TagVersion returns the tag at HEAD, or fallback when there is none.
func (r Repo) TagVersion(ctx context.Context, fallback string) (string, error) {
	tag, err := r.DescribeExactTag(ctx)
	if err != nil {
		return "", err
	}
	if tag == "" {
		return fallback, nil
	}
	if !ValidTag(tag) {
		return "", output.NewUserError(fmt.Sprintf("invalid tag name %q", tag))
	}
	return tag, nil
}
