package notekit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Syncer publishes notebook changes to a remote store.
type Syncer interface {
	Sync(ctx context.Context, message string) error
}

// GitSyncer commits all pending changes in a git repository and optionally
// pushes them. A failing push is reported as ErrSyncFailed so callers can
// treat it as a warning rather than aborting.
type GitSyncer struct {
	Dir        string
	Push       bool
	AuthorName string
	AuthorMail string
}

// NewGitSyncer creates a syncer for the repository at dir.
func NewGitSyncer(dir string, push bool) *GitSyncer {
	return &GitSyncer{
		Dir:        dir,
		Push:       push,
		AuthorName: "notekit",
		AuthorMail: "notekit@localhost",
	}
}

func (s *GitSyncer) Sync(ctx context.Context, message string) error {
	repo, err := git.PlainOpen(s.Dir)
	if err != nil {
		return fmt.Errorf("%w: opening repository: %v", ErrSyncFailed, err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSyncFailed, err)
	}
	if err := wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return fmt.Errorf("%w: staging changes: %v", ErrSyncFailed, err)
	}
	status, err := wt.Status()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSyncFailed, err)
	}
	if status.IsClean() {
		return nil
	}
	_, err = wt.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  s.AuthorName,
			Email: s.AuthorMail,
			When:  time.Now(),
		},
	})
	if err != nil {
		return fmt.Errorf("%w: committing: %v", ErrSyncFailed, err)
	}
	if !s.Push {
		return nil
	}
	err = repo.PushContext(ctx, &git.PushOptions{})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return fmt.Errorf("%w: pushing: %v", ErrSyncFailed, err)
	}
	return nil
}
