// Package fsutil provides file snapshots for change detection and atomic
// file writes.
package fsutil

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"
)

// ErrIsDirectory indicates the path is a directory, not a file.
var ErrIsDirectory = errors.New("path is a directory")

// Snapshot captures the state of a file at a point in time. The zero value
// describes a file that does not exist.
type Snapshot struct {
	Path    string
	Exists  bool
	ModTime time.Time
	Size    int64
	Hash    [sha256.Size]byte
}

// Take records the current state of path. A missing file is not an error;
// it yields a snapshot with Exists unset.
func Take(ctx context.Context, path string) (Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return Snapshot{}, fmt.Errorf("snapshot: %w", err)
	}

	snap := Snapshot{Path: path}

	stat, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return snap, nil
	}
	if err != nil {
		return snap, fmt.Errorf("stat %s: %w", path, err)
	}
	if stat.IsDir() {
		return snap, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	content, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return snap, nil
	}
	if err != nil {
		return snap, fmt.Errorf("read %s: %w", path, err)
	}

	snap.Exists = true
	snap.ModTime = stat.ModTime()
	snap.Size = int64(len(content))
	snap.Hash = sha256.Sum256(content)
	return snap, nil
}

// Refresh takes a new snapshot of the same path and reports whether the
// content differs. A file that only had its mod time touched is unchanged.
func (s Snapshot) Refresh(ctx context.Context) (Snapshot, bool, error) {
	next, err := Take(ctx, s.Path)
	if err != nil {
		return s, false, err
	}
	return next, !s.SameContent(next), nil
}

// SameContent reports whether two snapshots describe identical content.
func (s Snapshot) SameContent(other Snapshot) bool {
	if s.Exists != other.Exists {
		return false
	}
	if !s.Exists {
		return true
	}
	return s.Size == other.Size && s.Hash == other.Hash
}
