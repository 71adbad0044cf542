package fs

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/gschlitt/course-schedule-visualizer/pkg/core"
)

// DefaultTolerance absorbs filesystem timestamp-rounding jitter from
// immediately-prior writes by the same caller. It is not a staleness window
// for genuine external edits. Filesystems with coarser timestamp resolution
// need a wider tolerance via Config.Tolerance, or false conflicts appear;
// too wide and genuinely concurrent edits within the window go undetected.
const DefaultTolerance = 50 * time.Millisecond

// Store implements core.Store on a shared folder reachable as an ordinary
// filesystem path, local or mounted. It never locks the folder: conflicting
// writes by other processes are detected at write time via the stored
// modification timestamp, not prevented.
type Store struct {
	Root   string
	config Config
	codecs map[string]Codec

	mu            sync.RWMutex
	watcherActive bool
}

// Config holds the configuration for the shared-folder store.
type Config struct {
	Root      string
	Tolerance time.Duration // conflict tolerance; DefaultTolerance if zero
	Logger    *slog.Logger
	Codecs    map[string]Codec // by extension; DefaultCodecs() if nil
}

// New creates a store rooted at config.Root. The root directory is created
// lazily on first write, so pointing at a not-yet-existing folder is fine.
func New(config Config) *Store {
	if config.Tolerance == 0 {
		config.Tolerance = DefaultTolerance
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	codecs := config.Codecs
	if codecs == nil {
		codecs = DefaultCodecs()
	}
	return &Store{
		Root:   config.Root,
		config: config,
		codecs: codecs,
	}
}

// Read retrieves a document by name. Absence is not an error.
func (s *Store) Read(ctx context.Context, name string) (core.Document, bool, error) {
	if err := ctx.Err(); err != nil {
		return core.Document{}, false, err
	}

	path, err := s.resolve(name)
	if err != nil {
		return core.Document{}, false, err
	}

	codec, err := s.codecFor(name)
	if err != nil {
		return core.Document{}, false, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return core.Document{}, false, nil
	}
	if err != nil {
		return core.Document{}, false, fmt.Errorf("failed to read %s: %w", name, err)
	}

	// The version is the mtime observed right after the read, so a caller
	// holding it has a baseline for its next conditional write.
	version, err := s.version(path)
	if err != nil {
		return core.Document{}, false, err
	}

	content, err := codec.Decode(data)
	if err != nil {
		return core.Document{}, false, fmt.Errorf("failed to parse %s: %w", name, err)
	}

	return core.Document{Name: name, Content: content, Version: version}, true, nil
}

// Write persists a document if the version precondition holds.
//
// Contract:
//  1. The root directory is created if missing.
//  2. A document that does not yet exist accepts the write regardless of
//     expected, since there is nothing to conflict with.
//  3. If it exists and expected > 0, conflict iff the stored and expected
//     versions differ by more than the tolerance. On conflict the currently
//     stored content is returned best-effort and nothing is written.
//  4. On success the content is persisted atomically and the new version is
//     read back from the file.
func (s *Store) Write(ctx context.Context, name string, content core.Content, expected int64) (core.WriteResult, error) {
	if err := ctx.Err(); err != nil {
		return core.WriteResult{}, err
	}

	path, err := s.resolve(name)
	if err != nil {
		return core.WriteResult{}, err
	}

	codec, err := s.codecFor(name)
	if err != nil {
		return core.WriteResult{}, err
	}

	if err := os.MkdirAll(s.Root, 0755); err != nil {
		return core.WriteResult{}, fmt.Errorf("failed to create shared folder: %w", err)
	}

	info, err := os.Stat(path)
	if err != nil && !os.IsNotExist(err) {
		return core.WriteResult{}, fmt.Errorf("failed to stat %s: %w", name, err)
	}
	if err == nil && expected > 0 {
		stored := info.ModTime().UnixMilli()
		if s.conflicts(stored, expected) {
			res := core.WriteResult{Conflict: true, Version: stored}
			res.Theirs, res.TheirsOK = s.readTheirs(path, codec)
			s.config.Logger.Warn("conditional write rejected",
				"name", name, "expected", expected, "stored", stored)
			return res, nil
		}
	}

	data, err := codec.Encode(content)
	if err != nil {
		return core.WriteResult{}, fmt.Errorf("failed to serialize %s: %w", name, err)
	}

	if err := s.writeFileAtomic(path, data, 0644); err != nil {
		return core.WriteResult{}, fmt.Errorf("failed to write %s: %w", name, err)
	}

	version, err := s.version(path)
	if err != nil {
		return core.WriteResult{}, err
	}

	s.config.Logger.Debug("document written", "name", name, "version", version)
	return core.WriteResult{Version: version}, nil
}

// List returns the names of documents matching a doublestar glob pattern,
// relative to the store root, in sorted order. Staging files and hidden
// files are excluded.
func (s *Store) List(ctx context.Context, pattern string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var names []string
	err := filepath.WalkDir(s.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == s.Root && os.IsNotExist(err) {
				return filepath.SkipAll // folder not created yet: nothing to list
			}
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != s.Root {
				return filepath.SkipDir
			}
			return nil
		}
		if s.ignored(d.Name()) {
			return nil
		}

		rel, err := filepath.Rel(s.Root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		ok, err := doublestar.Match(pattern, rel)
		if err != nil {
			return fmt.Errorf("bad pattern %q: %w", pattern, err)
		}
		if ok {
			names = append(names, rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan shared folder: %w", err)
	}

	sort.Strings(names)
	return names, nil
}

// conflicts applies the optimistic-concurrency predicate to two versions.
func (s *Store) conflicts(stored, expected int64) bool {
	delta := stored - expected
	if delta < 0 {
		delta = -delta
	}
	return delta > s.config.Tolerance.Milliseconds()
}

// readTheirs loads the currently stored content for conflict reporting.
// Best effort: a payload that no longer parses yields (nil, false).
func (s *Store) readTheirs(path string, codec Codec) (core.Content, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	content, err := codec.Decode(data)
	if err != nil {
		return nil, false
	}
	return content, true
}

// version reads a file's modification time as integer milliseconds.
func (s *Store) version(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	return info.ModTime().UnixMilli(), nil
}

// resolve maps a document name onto its path under the root, rejecting names
// that would escape the shared folder.
func (s *Store) resolve(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("document has no name")
	}
	if filepath.IsAbs(name) || strings.Contains(name, "..") {
		return "", fmt.Errorf("invalid document name: %s", name)
	}
	return filepath.Join(s.Root, filepath.FromSlash(name)), nil
}

// codecFor selects the codec from the document name's extension.
func (s *Store) codecFor(name string) (Codec, error) {
	ext := strings.ToLower(filepath.Ext(name))
	codec, ok := s.codecs[ext]
	if !ok {
		return nil, fmt.Errorf("unsupported document format: %s", name)
	}
	return codec, nil
}

// ignored filters files that are never documents.
func (s *Store) ignored(base string) bool {
	return strings.HasSuffix(base, TempSuffix) ||
		strings.HasPrefix(base, tempFilePrefix) ||
		strings.HasPrefix(base, ".")
}
