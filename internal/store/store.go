// Package store implements the per-user JSON file stores. Every mutation is
// a whole-file read-modify-write: load the full array, change it in memory,
// rewrite the file once. There is no locking between processes; the write
// itself goes through a temp-file rename so a crash never leaves a
// half-written store behind.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var (
	// ErrUnreadable marks a store file that exists but cannot be read or
	// parsed. Callers must not confuse this with an empty store: "no data
	// yet" is an empty slice with a nil error.
	ErrUnreadable = errors.New("store unreadable")

	// ErrNotFound marks a lookup or match-and-remove that found nothing.
	ErrNotFound = errors.New("record not found")
)

// readArray loads a JSON array file. A missing file is an empty store.
func readArray[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: read %s: %v", ErrUnreadable, path, err)
	}
	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrUnreadable, path, err)
	}
	return records, nil
}

// writeArray rewrites the full store file, creating the parent directory on
// demand. Empty slices still serialize as [] so a deliberately emptied store
// is distinguishable from a missing one.
func writeArray[T any](path string, records []T) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create store directory: %w", err)
	}
	if records == nil {
		records = []T{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal store: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write store: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace store: %w", err)
	}
	return nil
}
