package store

import (
	"context"
	"fmt"

	"github.com/raphi011/lineage/internal/git"
	"github.com/raphi011/lineage/internal/lineage"
)

// NotesStore keeps assignments as git notes.
type NotesStore struct {
	dir string
	ref string
}

// NewNotesStore returns a store for the notes ref of the repository at dir.
func NewNotesStore(dir, ref string) *NotesStore {
	return &NotesStore{dir: dir, ref: ref}
}

func (s *NotesStore) Name() string { return "notes " + s.ref }

// Ref returns the notes ref.
func (s *NotesStore) Ref() string { return s.ref }

func (s *NotesStore) Load(ctx context.Context) (map[lineage.Revision]lineage.Branch, error) {
	notes, err := git.ReadNotes(ctx, s.dir, s.ref)
	if err != nil {
		return nil, err
	}
	known := make(map[lineage.Revision]lineage.Branch, len(notes))
	for commit, content := range notes {
		if content == "" {
			continue
		}
		known[lineage.Revision(commit)] = lineage.Branch(content)
	}
	return known, nil
}

func (s *NotesStore) Add(ctx context.Context, assignments map[lineage.Revision]lineage.Branch) (int, error) {
	if len(assignments) == 0 {
		return 0, nil
	}
	existing, err := s.Load(ctx)
	if err != nil {
		return 0, err
	}
	fresh := newOnly(existing, assignments)
	if len(fresh) == 0 {
		return 0, nil
	}

	notes := make(map[string]string, len(fresh))
	for rev, b := range fresh {
		notes[string(rev)] = string(b)
	}
	msg := fmt.Sprintf("lineage: assign %d revisions", len(notes))
	if err := git.AddNotes(ctx, s.dir, s.ref, notes, msg); err != nil {
		return 0, err
	}
	return len(notes), nil
}

func (s *NotesStore) Set(ctx context.Context, rev lineage.Revision, branch lineage.Branch, force bool) error {
	existing, err := s.Load(ctx)
	if err != nil {
		return err
	}
	if cur, ok := existing[rev]; ok {
		if cur == branch {
			return nil
		}
		if !force {
			return &ConflictError{Revision: rev, Existing: cur, Requested: branch}
		}
	}
	return git.SetNote(ctx, s.dir, s.ref, string(rev), string(branch), force)
}

func (s *NotesStore) Remove(ctx context.Context, rev lineage.Revision) error {
	return git.RemoveNote(ctx, s.dir, s.ref, string(rev))
}

func (s *NotesStore) Close() error { return nil }
