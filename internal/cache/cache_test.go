package cache

import (
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func sampleReport() *Report {
	return &Report{
		GeneratedAt:      time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC),
		Store:            "notes refs/notes/lineage",
		Assigned:         3,
		UnresolvedRoots:  []string{"r1"},
		UnresolvedLeaves: []string{"l1", "l2"},
		Ambiguous:        []Ambiguity{{Revision: "a1", Candidates: []string{"x", "y"}}},
		Warnings:         []string{"w1"},
		Tips:             map[string]string{"refs/heads/main": "c1"},
	}
}

func TestLoad_NoReport(t *testing.T) {
	t.Parallel()

	_, err := Load(t.TempDir())
	if !errors.Is(err, ErrNoReport) {
		t.Errorf("Load() error = %v, want ErrNoReport", err)
	}
}

func TestSaveLoad(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "lineage")
	want := sampleReport()

	if err := Save(dir, want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if !got.GeneratedAt.Equal(want.GeneratedAt) {
		t.Errorf("GeneratedAt = %v, want %v", got.GeneratedAt, want.GeneratedAt)
	}
	if got.Assigned != 3 || got.Store != want.Store {
		t.Errorf("got %+v", got)
	}
	if got.Open() != 4 {
		t.Errorf("Open() = %d, want 4", got.Open())
	}
	if len(got.Ambiguous) != 1 || got.Ambiguous[0].Candidates[1] != "y" {
		t.Errorf("Ambiguous = %+v", got.Ambiguous)
	}
}

func TestReport_IsStale(t *testing.T) {
	t.Parallel()

	r := sampleReport()
	tests := []struct {
		name string
		tips map[string]string
		want bool
	}{
		{"same tips", map[string]string{"refs/heads/main": "c1"}, false},
		{"moved tip", map[string]string{"refs/heads/main": "c2"}, true},
		{"new branch", map[string]string{"refs/heads/main": "c1", "refs/heads/x": "c3"}, true},
		{"deleted branch", map[string]string{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := r.IsStale(tt.tips); got != tt.want {
				t.Errorf("IsStale() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReport_Drop(t *testing.T) {
	t.Parallel()

	tests := []struct {
		rev      string
		want     bool
		wantOpen int
	}{
		{"r1", true, 3},
		{"l2", true, 3},
		{"a1", true, 3},
		{"zz", false, 4},
	}
	for _, tt := range tests {
		t.Run(tt.rev, func(t *testing.T) {
			t.Parallel()
			r := sampleReport()
			if got := r.Drop(tt.rev); got != tt.want {
				t.Errorf("Drop(%q) = %v, want %v", tt.rev, got, tt.want)
			}
			if r.Open() != tt.wantOpen {
				t.Errorf("Open() = %d, want %d", r.Open(), tt.wantOpen)
			}
		})
	}
}

func TestUpdate(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := Update(dir, func(*Report) error { return nil }); !errors.Is(err, ErrNoReport) {
		t.Fatalf("Update() on missing report = %v, want ErrNoReport", err)
	}

	if err := Save(dir, sampleReport()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	err := Update(dir, func(r *Report) error {
		r.Drop("a1")
		return nil
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got.Ambiguous) != 0 {
		t.Errorf("Ambiguous = %+v, want none", got.Ambiguous)
	}

	wantErr := errors.New("abort")
	err = Update(dir, func(r *Report) error {
		r.UnresolvedRoots = nil
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("Update() = %v, want %v", err, wantErr)
	}
	got, err = Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got.UnresolvedRoots) != 1 {
		t.Error("failed update must not be written")
	}
}
