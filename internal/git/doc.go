// Package git looks up release tags for versioned documentation.
//
// A Repo shells out to the git executable in a working directory:
//
//	repo := git.Repo{Dir: filepath.Dir(doxyfilePath)}
//	version, err := repo.TagVersion(ctx, "develop")
//
// An untagged HEAD, or a directory outside any repository, yields the
// fallback. A tag that is not usable as a directory name is a user error
// (exit code 1); a missing or failing git is a system error (exit code 2).
package git
