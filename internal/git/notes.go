package git

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"
)

// ReadNotes returns the note content of every annotated commit under ref,
// keyed by commit id, with surrounding whitespace trimmed.
// A missing ref yields an empty map.
func ReadNotes(ctx context.Context, dir, ref string) (map[string]string, error) {
	notes := make(map[string]string)
	if !RefExists(ctx, dir, ref) {
		return notes, nil
	}

	out, err := outputGit(ctx, dir, "notes", "--ref="+ref, "list")
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}

	// blob id -> annotated commits; one blob may back many notes
	byBlob := make(map[string][]string)
	var blobs []string
	for _, line := range strings.Split(strings.TrimSpace(string(out)), "\n") {
		blob, commit, ok := strings.Cut(line, " ")
		if !ok {
			continue
		}
		if _, seen := byBlob[blob]; !seen {
			blobs = append(blobs, blob)
		}
		byBlob[blob] = append(byBlob[blob], commit)
	}
	if len(blobs) == 0 {
		return notes, nil
	}

	stdin := strings.NewReader(strings.Join(blobs, "\n") + "\n")
	out, err = inputGit(ctx, dir, stdin, "cat-file", "--batch")
	if err != nil {
		return nil, fmt.Errorf("read note blobs: %w", err)
	}

	contents, err := parseCatFileBatch(out)
	if err != nil {
		return nil, err
	}
	for blob, commits := range byBlob {
		content, ok := contents[blob]
		if !ok {
			return nil, fmt.Errorf("note blob %s missing from cat-file output", blob)
		}
		for _, c := range commits {
			notes[c] = strings.TrimSpace(content)
		}
	}
	return notes, nil
}

// parseCatFileBatch parses "<oid> <type> <size>\n<content>\n" records.
func parseCatFileBatch(out []byte) (map[string]string, error) {
	contents := make(map[string]string)
	r := bufio.NewReader(bytes.NewReader(out))
	for {
		header, err := r.ReadString('\n')
		if err == io.EOF && header == "" {
			return contents, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read cat-file header: %w", err)
		}

		fields := strings.Fields(header)
		if len(fields) == 2 && fields[1] == "missing" {
			return nil, fmt.Errorf("object %s missing", fields[0])
		}
		if len(fields) != 3 {
			return nil, fmt.Errorf("malformed cat-file header %q", strings.TrimSpace(header))
		}
		size, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, fmt.Errorf("malformed cat-file size %q", fields[2])
		}

		body := make([]byte, size+1) // trailing newline
		if _, err := io.ReadFull(r, body); err != nil {
			return nil, fmt.Errorf("read object %s: %w", fields[0], err)
		}
		contents[fields[0]] = string(body[:size])
	}
}

// AddNotes writes notes (commit id -> content) under ref as a single notes
// commit through git fast-import. Existing notes for the same commits are
// replaced; callers enforce their own conflict policy.
func AddNotes(ctx context.Context, dir, ref string, notes map[string]string, message string) error {
	if len(notes) == 0 {
		return nil
	}

	var parent string
	if RefExists(ctx, dir, ref) {
		out, err := outputGit(ctx, dir, "rev-parse", "--verify", ref)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", ref, err)
		}
		parent = strings.TrimSpace(string(out))
	}

	stream := fastImportStream(ref, committerIdent(ctx, dir), parent, message, notes)
	if err := runFastImport(ctx, dir, stream); err != nil {
		return fmt.Errorf("write notes: %w", err)
	}
	return nil
}

func runFastImport(ctx context.Context, dir string, stream []byte) error {
	_, err := inputGit(ctx, dir, bytes.NewReader(stream), "fast-import", "--quiet", "--done")
	return err
}

// fastImportStream renders a fast-import stream adding one notes commit.
// Commits are written in sorted order so identical input yields identical
// trees.
func fastImportStream(ref, committer, parent, message string, notes map[string]string) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "commit %s\n", ref)
	fmt.Fprintf(&b, "committer %s\n", committer)
	writeData(&b, message+"\n")
	if parent != "" {
		fmt.Fprintf(&b, "from %s\n", parent)
	}
	for _, commit := range slices.Sorted(maps.Keys(notes)) {
		fmt.Fprintf(&b, "N inline %s\n", commit)
		writeData(&b, notes[commit]+"\n")
	}
	b.WriteString("\ndone\n")
	return b.Bytes()
}

func writeData(b *bytes.Buffer, data string) {
	fmt.Fprintf(b, "data %d\n%s", len(data), data)
}

// committerIdent returns the configured committer identity in fast-import's
// raw format, falling back to a fixed identity when none is configured.
func committerIdent(ctx context.Context, dir string) string {
	out, err := outputGit(ctx, dir, "var", "GIT_COMMITTER_IDENT")
	if ident := strings.TrimSpace(string(out)); err == nil && ident != "" {
		return ident
	}
	return fmt.Sprintf("lineage <lineage@localhost> %d +0000", time.Now().Unix())
}

// SetNote writes a single note, replacing an existing one if force is set.
func SetNote(ctx context.Context, dir, ref, commit, content string, force bool) error {
	args := []string{"notes", "--ref=" + ref, "add"}
	if force {
		args = append(args, "-f")
	}
	args = append(args, "-m", content, commit)
	if err := runGit(ctx, dir, args...); err != nil {
		return fmt.Errorf("set note on %s: %w", commit, err)
	}
	return nil
}

// RemoveNote deletes the note of commit. Missing notes are ignored.
func RemoveNote(ctx context.Context, dir, ref, commit string) error {
	if err := runGit(ctx, dir, "notes", "--ref="+ref, "remove", "--ignore-missing", commit); err != nil {
		return fmt.Errorf("remove note on %s: %w", commit, err)
	}
	return nil
}

// PushNotes pushes ref to remote. Non-fast-forward updates are rejected.
func PushNotes(ctx context.Context, dir, remote, ref string) error {
	if err := runGit(ctx, dir, "push", remote, ref+":"+ref); err != nil {
		return fmt.Errorf("push %s to %s: %w", ref, remote, err)
	}
	return nil
}

// FetchNotes fetches ref from remote into the local ref of the same name.
// Non-fast-forward updates are rejected.
func FetchNotes(ctx context.Context, dir, remote, ref string) error {
	if err := runGit(ctx, dir, "fetch", remote, ref+":"+ref); err != nil {
		return fmt.Errorf("fetch %s from %s: %w", ref, remote, err)
	}
	return nil
}
