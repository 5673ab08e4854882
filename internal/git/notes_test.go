package git

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
)

const testNotesRef = "refs/notes/lineage"

func TestReadNotes_MissingRef(t *testing.T) {
	t.Parallel()
	repoPath := setupTestRepo(t)
	commit(t, repoPath, "a")

	notes, err := ReadNotes(context.Background(), repoPath, testNotesRef)
	if err != nil {
		t.Fatalf("ReadNotes failed: %v", err)
	}
	if len(notes) != 0 {
		t.Errorf("expected no notes, got %v", notes)
	}
}

func TestAddNotes(t *testing.T) {
	t.Parallel()
	repoPath := setupTestRepo(t)
	ctx := context.Background()
	a := commit(t, repoPath, "a")
	b := commit(t, repoPath, "b")
	c := commit(t, repoPath, "c")

	if err := AddNotes(ctx, repoPath, testNotesRef, map[string]string{a: "main", b: "main"}, "first"); err != nil {
		t.Fatalf("AddNotes failed: %v", err)
	}
	// second batch must build on the first notes commit
	if err := AddNotes(ctx, repoPath, testNotesRef, map[string]string{c: "feature/x"}, "second"); err != nil {
		t.Fatalf("AddNotes failed: %v", err)
	}

	notes, err := ReadNotes(ctx, repoPath, testNotesRef)
	if err != nil {
		t.Fatalf("ReadNotes failed: %v", err)
	}
	want := map[string]string{a: "main", b: "main", c: "feature/x"}
	if len(notes) != len(want) {
		t.Fatalf("notes = %v, want %v", notes, want)
	}
	for commit, branch := range want {
		if notes[commit] != branch {
			t.Errorf("note on %s = %q, want %q", commit[:7], notes[commit], branch)
		}
	}

	count := gitCmd(t, repoPath, "rev-list", "--count", testNotesRef)
	if count != "2" {
		t.Errorf("expected 2 notes commits, got %s", count)
	}

	// notes are readable with plain git
	if got := gitCmd(t, repoPath, "notes", "--ref="+testNotesRef, "show", c); got != "feature/x" {
		t.Errorf("git notes show = %q", got)
	}
}

func TestAddNotes_Empty(t *testing.T) {
	t.Parallel()
	repoPath := setupTestRepo(t)
	ctx := context.Background()
	commit(t, repoPath, "a")

	if err := AddNotes(ctx, repoPath, testNotesRef, nil, "nothing"); err != nil {
		t.Fatalf("AddNotes failed: %v", err)
	}
	if RefExists(ctx, repoPath, testNotesRef) {
		t.Error("empty AddNotes should not create the ref")
	}
}

func TestSetNote(t *testing.T) {
	t.Parallel()
	repoPath := setupTestRepo(t)
	ctx := context.Background()
	a := commit(t, repoPath, "a")

	if err := SetNote(ctx, repoPath, testNotesRef, a, "main", false); err != nil {
		t.Fatalf("SetNote failed: %v", err)
	}
	if err := SetNote(ctx, repoPath, testNotesRef, a, "other", false); err == nil {
		t.Error("expected error when overwriting without force")
	}
	if err := SetNote(ctx, repoPath, testNotesRef, a, "other", true); err != nil {
		t.Fatalf("SetNote with force failed: %v", err)
	}

	notes, err := ReadNotes(ctx, repoPath, testNotesRef)
	if err != nil {
		t.Fatalf("ReadNotes failed: %v", err)
	}
	if notes[a] != "other" {
		t.Errorf("note = %q, want other", notes[a])
	}

	if err := RemoveNote(ctx, repoPath, testNotesRef, a); err != nil {
		t.Fatalf("RemoveNote failed: %v", err)
	}
	if err := RemoveNote(ctx, repoPath, testNotesRef, a); err != nil {
		t.Fatalf("RemoveNote on missing note failed: %v", err)
	}
	notes, err = ReadNotes(ctx, repoPath, testNotesRef)
	if err != nil {
		t.Fatalf("ReadNotes failed: %v", err)
	}
	if len(notes) != 0 {
		t.Errorf("expected no notes, got %v", notes)
	}
}

func TestPushFetchNotes(t *testing.T) {
	t.Parallel()
	repoPath := setupTestRepo(t)
	ctx := context.Background()
	a := commit(t, repoPath, "a")

	remote := filepath.Join(filepath.Dir(repoPath), "remote.git")
	gitCmd(t, "", "init", "-q", "--bare", remote)
	gitCmd(t, repoPath, "remote", "add", "origin", remote)
	gitCmd(t, repoPath, "push", "-q", "origin", "main")

	if err := SetNote(ctx, repoPath, testNotesRef, a, "main", false); err != nil {
		t.Fatalf("SetNote failed: %v", err)
	}
	if err := PushNotes(ctx, repoPath, "origin", testNotesRef); err != nil {
		t.Fatalf("PushNotes failed: %v", err)
	}

	clone := filepath.Join(filepath.Dir(repoPath), "clone")
	gitCmd(t, "", "clone", "-q", remote, clone)
	if err := FetchNotes(ctx, clone, "origin", testNotesRef); err != nil {
		t.Fatalf("FetchNotes failed: %v", err)
	}

	notes, err := ReadNotes(ctx, clone, testNotesRef)
	if err != nil {
		t.Fatalf("ReadNotes failed: %v", err)
	}
	if notes[a] != "main" {
		t.Errorf("fetched note = %q, want main", notes[a])
	}
}

func TestFastImportStream(t *testing.T) {
	t.Parallel()

	stream := string(fastImportStream(testNotesRef, "T <t@t> 1 +0000", "abc", "msg",
		map[string]string{"c2": "b", "c1": "main"}))

	want := "commit refs/notes/lineage\n" +
		"committer T <t@t> 1 +0000\n" +
		"data 4\nmsg\n" +
		"from abc\n" +
		"N inline c1\ndata 5\nmain\n" +
		"N inline c2\ndata 2\nb\n" +
		"\ndone\n"
	if stream != want {
		t.Errorf("stream mismatch:\n got %q\nwant %q", stream, want)
	}
}

func TestParseCatFileBatch(t *testing.T) {
	t.Parallel()

	out := []byte("aaa blob 5\nmain\n\nbbb blob 3\nx y\n")
	contents, err := parseCatFileBatch(out)
	if err != nil {
		t.Fatalf("parseCatFileBatch failed: %v", err)
	}
	if contents["aaa"] != "main\n" || contents["bbb"] != "x y" {
		t.Errorf("contents = %q", contents)
	}

	if _, err := parseCatFileBatch([]byte("ccc missing\n")); err == nil || !strings.Contains(err.Error(), "missing") {
		t.Errorf("expected missing error, got %v", err)
	}
}
