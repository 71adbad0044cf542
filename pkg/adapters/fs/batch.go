package fs

import (
	"context"
	"fmt"
	"os"

	"github.com/gschlitt/course-schedule-visualizer/pkg/core"
)

// Commit applies a batch of writes that must become visible together.
//
// Protocol:
//   - Phase 0 (check): every entry's version precondition is verified
//     against the stored modification time. A violation fails the batch
//     with a *core.ConflictError before anything touches disk.
//   - Phase 1 (stage): every entry is written to a sibling staging file
//     (name + ".tmp"). If any staging write fails, all staged files are
//     removed and the batch fails with no visible document changes.
//   - Phase 2 (commit): each staging file is renamed onto its final name,
//     one at a time. Each rename is atomic, the batch as a whole is not:
//     a process interrupted mid-phase leaves some documents new and some
//     old. That window is accepted because every aggregate document is
//     idempotently recomputable from its primary; the failure surfaces as
//     a *core.PartialCommitError rather than being papered over.
//   - Phase 3 (report): the modification time of every renamed file is
//     read back and returned as its new version.
func (s *Store) Commit(ctx context.Context, entries []core.BatchEntry) (map[string]int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return map[string]int64{}, nil
	}

	if err := os.MkdirAll(s.Root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create shared folder: %w", err)
	}

	type staged struct {
		name  string
		path  string
		tmp   string
		codec Codec
	}
	plan := make([]staged, 0, len(entries))

	// Phase 0: preconditions.
	for _, e := range entries {
		path, err := s.resolve(e.Name)
		if err != nil {
			return nil, err
		}
		codec, err := s.codecFor(e.Name)
		if err != nil {
			return nil, err
		}

		info, err := os.Stat(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to stat %s: %w", e.Name, err)
		}
		if err == nil && e.Expected > 0 {
			stored := info.ModTime().UnixMilli()
			if s.conflicts(stored, e.Expected) {
				conflict := &core.ConflictError{Name: e.Name, Expected: e.Expected, Stored: stored}
				conflict.Theirs, conflict.TheirsOK = s.readTheirs(path, codec)
				s.config.Logger.Warn("batch commit rejected",
					"name", e.Name, "expected", e.Expected, "stored", stored)
				return nil, conflict
			}
		}

		plan = append(plan, staged{name: e.Name, path: path, tmp: stagePath(path), codec: codec})
	}

	// Phase 1: stage. Any failure rolls back every staged file.
	for i, e := range entries {
		data, err := plan[i].codec.Encode(e.Content)
		if err == nil {
			err = os.WriteFile(plan[i].tmp, data, 0644)
		}
		if err != nil {
			for _, p := range plan[:i] {
				os.Remove(p.tmp)
			}
			return nil, fmt.Errorf("failed to stage %s: %w", e.Name, err)
		}
	}

	// Phase 2: commit.
	for i, p := range plan {
		if err := os.Rename(p.tmp, p.path); err != nil {
			partial := &core.PartialCommitError{Err: err}
			for _, done := range plan[:i] {
				partial.Applied = append(partial.Applied, done.name)
			}
			for _, left := range plan[i:] {
				partial.Pending = append(partial.Pending, left.name)
				os.Remove(left.tmp)
			}
			s.config.Logger.Error("batch commit interrupted",
				"applied", partial.Applied, "pending", partial.Pending, "error", err)
			return nil, partial
		}
	}

	// Phase 3: report.
	versions := make(map[string]int64, len(plan))
	for _, p := range plan {
		v, err := s.version(p.path)
		if err != nil {
			return nil, err
		}
		versions[p.name] = v
	}

	s.config.Logger.Debug("batch committed", "documents", len(plan))
	return versions, nil
}
