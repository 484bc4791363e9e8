package config

import "sync"

// Store is the shared slot holding the active Config. The input-hook thread
// reads it on every event; the watcher replaces it wholesale after a
// successful reload. Readers only ever see a complete snapshot.
type Store struct {
	mu  sync.RWMutex
	cfg *Config
}

// NewStore creates a store seeded with an initial config. The initial load
// must succeed before the classifier receives events.
func NewStore(cfg *Config) *Store {
	return &Store{cfg: cfg}
}

// Get returns the current snapshot.
func (s *Store) Get() *Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// Replace atomically installs a new snapshot.
func (s *Store) Replace(cfg *Config) {
	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()
}
