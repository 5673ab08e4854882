package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"

	"github.com/raphi011/lineage/internal/lineage"
	"github.com/raphi011/lineage/internal/storage"
)

// BucketAssignments maps commit id -> branch name.
var BucketAssignments = []byte("assignments")

// BoltFileName is the database file inside the state dir.
const BoltFileName = "assignments.db"

// BoltPath returns the database location for a git dir.
func BoltPath(gitDir string) string {
	return filepath.Join(gitDir, storage.StateDirName, BoltFileName)
}

// BoltStore keeps assignments in a bbolt database.
type BoltStore struct {
	db   *bbolt.DB
	path string
}

// OpenBolt opens or creates the database at path.
func OpenBolt(path string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if err := db.Update(func(tx *bbolt.Tx) error {
		_, e := tx.CreateBucketIfNotExists(BucketAssignments)
		return e
	}); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &BoltStore{db: db, path: path}, nil
}

func (s *BoltStore) Name() string { return "bolt " + s.path }

func (s *BoltStore) Load(ctx context.Context) (map[lineage.Revision]lineage.Branch, error) {
	known := make(map[lineage.Revision]lineage.Branch)
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(BucketAssignments).ForEach(func(k, v []byte) error {
			known[lineage.Revision(k)] = lineage.Branch(v)
			return nil
		})
	})
	return known, err
}

func (s *BoltStore) Add(ctx context.Context, assignments map[lineage.Revision]lineage.Branch) (int, error) {
	added := 0
	err := s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(BucketAssignments)
		for rev, branch := range assignments {
			if b.Get([]byte(rev)) != nil {
				continue
			}
			if err := b.Put([]byte(rev), []byte(branch)); err != nil {
				return err
			}
			added++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return added, nil
}

func (s *BoltStore) Set(ctx context.Context, rev lineage.Revision, branch lineage.Branch, force bool) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(BucketAssignments)
		if cur := b.Get([]byte(rev)); cur != nil && !force && string(cur) != string(branch) {
			return &ConflictError{Revision: rev, Existing: lineage.Branch(cur), Requested: branch}
		}
		return b.Put([]byte(rev), []byte(branch))
	})
}

func (s *BoltStore) Remove(ctx context.Context, rev lineage.Revision) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(BucketAssignments).Delete([]byte(rev))
	})
}

func (s *BoltStore) Close() error { return s.db.Close() }
