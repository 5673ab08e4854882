// Package storage provides atomic file operations for lineage state kept
// inside a repository's git directory.
package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// StateDirName is the directory under the git dir holding lineage state.
const StateDirName = "lineage"

// StatePath returns <gitDir>/lineage without touching the filesystem.
func StatePath(gitDir string) string {
	return filepath.Join(gitDir, StateDirName)
}

// StateDir returns <gitDir>/lineage, creating it if needed
func StateDir(gitDir string) (string, error) {
	dir := StatePath(gitDir)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	return dir, nil
}

// SaveJSON atomically writes data as JSON to the specified path.
// It ensures the parent directory exists, writes to a temp file in the same
// directory, then renames to the final path.
func SaveJSON(path string, data any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tempPath := tmp.Name()

	if _, err := tmp.Write(append(jsonData, '\n')); err != nil {
		tmp.Close()
		os.Remove(tempPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tempPath)
		return err
	}

	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return err
	}
	return nil
}

// LoadJSON reads JSON from the specified path into dest.
// Returns os.ErrNotExist if file doesn't exist (caller should handle).
func LoadJSON(path string, dest any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	return json.Unmarshal(data, dest)
}
