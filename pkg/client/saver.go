package client

import (
	"context"
	"sync"

	"github.com/gschlitt/course-schedule-visualizer/pkg/core"
)

// task is one enqueued save: a content snapshot plus the generation it was
// captured at. A task whose generation is no longer current is stale and is
// discarded without any I/O: its snapshot has been superseded by a newer
// edit that will persist instead.
type task struct {
	gen     uint64
	name    string
	content core.Content
	derive  core.DeriveFunc
}

// saver serializes a process's own writes: at most one save is in flight at
// a time, and a burst of edits made faster than I/O completes collapses to
// the newest one. New edits never block the caller; they replace the pending
// slot and wake the single drainer goroutine.
type saver struct {
	commit func(context.Context, task)

	mu        sync.Mutex
	gen       uint64
	pending   *task
	executing bool
	idle      chan struct{}
	wake      chan struct{}
}

func newSaver(commit func(context.Context, task)) *saver {
	return &saver{
		commit: commit,
		wake:   make(chan struct{}, 1),
	}
}

// enqueue registers a save, superseding any not-yet-executed task, and
// returns the generation assigned to it.
func (s *saver) enqueue(name string, content core.Content, derive core.DeriveFunc) uint64 {
	s.mu.Lock()
	s.gen++
	t := task{gen: s.gen, name: name, content: content, derive: derive}
	s.pending = &t
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
	return t.gen
}

// supersede bumps the generation without enqueuing work, invalidating any
// pending or in-flight task. Used by conflict-reload so a stale snapshot
// cannot land on top of freshly adopted content.
func (s *saver) supersede() {
	s.mu.Lock()
	s.gen++
	s.pending = nil
	s.mu.Unlock()
}

// current reports whether gen still identifies the newest edit.
func (s *saver) current(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return gen == s.gen
}

// generation returns the current process-wide edit generation.
func (s *saver) generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

// busy reports whether a task is pending or executing.
func (s *saver) busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending != nil || s.executing
}

// run drains tasks until ctx is done. It is the only goroutine that ever
// issues commits, which is what guarantees writes from this process are
// never interleaved.
func (s *saver) run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-s.wake:
		}

		for {
			s.mu.Lock()
			t := s.pending
			s.pending = nil
			if t == nil {
				s.notifyIdleLocked()
				s.mu.Unlock()
				break
			}
			s.executing = true
			s.mu.Unlock()

			if s.current(t.gen) {
				s.commit(ctx, *t)
			}

			s.mu.Lock()
			s.executing = false
			if s.pending == nil {
				s.notifyIdleLocked()
			}
			s.mu.Unlock()

			if ctx.Err() != nil {
				return nil
			}
		}
	}
}

// flush blocks until every enqueued save has been executed or discarded.
func (s *saver) flush(ctx context.Context) error {
	for {
		s.mu.Lock()
		if s.pending == nil && !s.executing {
			s.mu.Unlock()
			return nil
		}
		if s.idle == nil {
			s.idle = make(chan struct{})
		}
		ch := s.idle
		s.mu.Unlock()

		select {
		case <-ch:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (s *saver) notifyIdleLocked() {
	if s.idle != nil {
		close(s.idle)
		s.idle = nil
	}
}
