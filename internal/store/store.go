package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/raphi011/lineage/internal/config"
	"github.com/raphi011/lineage/internal/git"
	"github.com/raphi011/lineage/internal/lineage"
)

// ErrExists is matched by errors refusing to overwrite an assignment.
var ErrExists = errors.New("assignment already exists")

// ConflictError reports an attempt to replace an existing assignment.
type ConflictError struct {
	Revision  lineage.Revision
	Existing  lineage.Branch
	Requested lineage.Branch
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s is already assigned to %q (requested %q)", e.Revision.Short(), e.Existing, e.Requested)
}

func (e *ConflictError) Is(target error) bool { return target == ErrExists }

// Store reads and writes assignments.
type Store interface {
	// Name describes the backend and its location.
	Name() string

	// Load returns every stored assignment.
	Load(ctx context.Context) (map[lineage.Revision]lineage.Branch, error)

	// Add stores assignments for revisions that have none yet and returns
	// how many were written. Existing entries are left untouched.
	Add(ctx context.Context, assignments map[lineage.Revision]lineage.Branch) (int, error)

	// Set stores a single assignment. Without force an existing, different
	// assignment yields a *ConflictError.
	Set(ctx context.Context, rev lineage.Revision, branch lineage.Branch, force bool) error

	// Remove deletes the assignment of rev, if any.
	Remove(ctx context.Context, rev lineage.Revision) error

	Close() error
}

// Open returns the backend selected by cfg for repo.
func Open(ctx context.Context, repo git.Repo, cfg config.StoreConfig) (Store, error) {
	switch cfg.Backend {
	case "", config.BackendNotes:
		ref := cfg.NotesRef
		if ref == "" {
			ref = config.DefaultNotesRef
		}
		return NewNotesStore(repo.Dir(), ref), nil
	case config.BackendBolt:
		return OpenBolt(BoltPath(repo.GitDir))
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

// newOnly returns the subset of assignments whose revision is not in existing.
func newOnly(existing, assignments map[lineage.Revision]lineage.Branch) map[lineage.Revision]lineage.Branch {
	fresh := make(map[lineage.Revision]lineage.Branch, len(assignments))
	for rev, b := range assignments {
		if _, ok := existing[rev]; ok {
			continue
		}
		fresh[rev] = b
	}
	return fresh
}
