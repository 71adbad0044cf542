package fs

import (
	"sync"
	"time"

	"github.com/gschlitt/course-schedule-visualizer/pkg/core"
)

// debouncer collapses bursts of filesystem events for the same document into
// a single emission. Editors and network mounts commonly fire several events
// per logical save.
type debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	timers  map[string]*time.Timer
	wg      sync.WaitGroup
	stopped bool
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{
		delay:  delay,
		timers: make(map[string]*time.Timer),
	}
}

// add schedules fire for the event, replacing any pending emission for the
// same document name.
func (d *debouncer) add(e core.Event, fire func(core.Event)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	if t, ok := d.timers[e.Name]; ok {
		if t.Stop() {
			d.wg.Done()
		}
	}

	d.wg.Add(1)
	d.timers[e.Name] = time.AfterFunc(d.delay, func() {
		defer d.wg.Done()

		d.mu.Lock()
		if d.stopped {
			d.mu.Unlock()
			return
		}
		delete(d.timers, e.Name)
		d.mu.Unlock()

		fire(e)
	})
}

// stopAndWait stops accepting new events and waits for in-flight timers to
// complete, up to the given timeout.
func (d *debouncer) stopAndWait(timeout time.Duration) {
	d.mu.Lock()
	d.stopped = true
	for name, t := range d.timers {
		if t.Stop() {
			d.wg.Done()
		}
		delete(d.timers, name)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(timeout):
	}
}
