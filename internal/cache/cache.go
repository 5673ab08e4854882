package cache

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"time"

	"github.com/raphi011/lineage/internal/storage"
)

// ErrNoReport is returned by Load when no report has been written yet.
var ErrNoReport = errors.New("no report yet: run 'lineage update'")

// Ambiguity is a revision with the branches inference could not choose from.
type Ambiguity struct {
	Revision   string   `json:"revision"`
	Candidates []string `json:"candidates"`
}

// Report is the outcome of the last update run.
type Report struct {
	GeneratedAt      time.Time         `json:"generated_at"`
	Store            string            `json:"store"`
	Assigned         int               `json:"assigned"`
	UnresolvedRoots  []string          `json:"unresolved_roots"`
	UnresolvedLeaves []string          `json:"unresolved_leaves"`
	Ambiguous        []Ambiguity       `json:"ambiguous"`
	Warnings         []string          `json:"warnings,omitempty"`
	Tips             map[string]string `json:"tips,omitempty"` // ref -> commit
}

// Open returns the number of revisions still waiting for a decision.
func (r *Report) Open() int {
	return len(r.UnresolvedRoots) + len(r.UnresolvedLeaves) + len(r.Ambiguous)
}

// IsStale reports whether the branch refs moved since the report was written.
func (r *Report) IsStale(tips map[string]string) bool {
	return !maps.Equal(r.Tips, tips)
}

// Drop removes rev from every open list, after it got a manual assignment.
// It reports whether rev was listed.
func (r *Report) Drop(rev string) bool {
	found := false
	keep := func(list []string) []string {
		out := list[:0]
		for _, s := range list {
			if s == rev {
				found = true
				continue
			}
			out = append(out, s)
		}
		return out
	}
	r.UnresolvedRoots = keep(r.UnresolvedRoots)
	r.UnresolvedLeaves = keep(r.UnresolvedLeaves)

	amb := r.Ambiguous[:0]
	for _, a := range r.Ambiguous {
		if a.Revision == rev {
			found = true
			continue
		}
		amb = append(amb, a)
	}
	r.Ambiguous = amb
	return found
}

// ReportPath returns the path to the report file in a state dir
func ReportPath(dir string) string {
	return filepath.Join(dir, "report.json")
}

// LockPath returns the path to the lock file in a state dir
func LockPath(dir string) string {
	return filepath.Join(dir, "report.lock")
}

// Load reads the report from the state dir.
func Load(dir string) (*Report, error) {
	var r Report
	if err := storage.LoadJSON(ReportPath(dir), &r); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoReport
		}
		return nil, fmt.Errorf("read report: %w", err)
	}
	return &r, nil
}

// Save writes the report under the lock.
func Save(dir string, r *Report) error {
	return WithLock(LockPath(dir), func() error {
		return storage.SaveJSON(ReportPath(dir), r)
	})
}

// Update loads the report under the lock, applies fn and writes it back.
// A missing report yields ErrNoReport without calling fn.
func Update(dir string, fn func(*Report) error) error {
	return WithLock(LockPath(dir), func() error {
		r, err := Load(dir)
		if err != nil {
			return err
		}
		if err := fn(r); err != nil {
			return err
		}
		return storage.SaveJSON(ReportPath(dir), r)
	})
}
