package fs

import (
	"github.com/aretw0/introspection"
)

// StoreState exposes internal state for observability.
type StoreState struct {
	Root          string   `json:"root"`
	ToleranceMs   int64    `json:"tolerance_ms"`
	Codecs        []string `json:"codecs"`
	WatcherActive bool     `json:"watcher_active"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	codecs := make([]string, 0, len(s.codecs))
	for ext := range s.codecs {
		codecs = append(codecs, ext)
	}

	return StoreState{
		Root:          s.Root,
		ToleranceMs:   s.config.Tolerance.Milliseconds(),
		Codecs:        codecs,
		WatcherActive: s.watcherActive,
	}
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "store"
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)

func (s *Store) setWatcherActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watcherActive = active
}
