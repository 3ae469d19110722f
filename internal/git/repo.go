package git

import (
	"errors"

	"github.com/go-git/go-git/v5"

	gitwireerrors "gitwire.dev/gitwire/internal/errors"
)

// DiscoverRepository verifies that dir is inside a git repository and returns
// the repository root. Discovery walks upward the way git itself does; bare
// repositories resolve to dir. This is the only place go-git is consulted:
// everything that reads or mutates history goes through the git binary.
func DiscoverRepository(dir string) (string, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return "", gitwireerrors.ErrNotARepository
		}
		return "", err
	}

	wt, err := repo.Worktree()
	if err != nil {
		if errors.Is(err, git.ErrIsBareRepository) {
			return dir, nil
		}
		return "", err
	}
	return wt.Filesystem.Root(), nil
}
