package config

import (
	"fmt"
	"sync"
)

// Store owns the live Config. The zero value is not usable; call NewStore.
//
// Store is safe for concurrent use. The engine serializes all traffic anyway,
// the lock only guarantees a reader never sees half of a committed batch.
type Store struct {
	mu  sync.RWMutex
	cfg Config
}

// NewStore returns a Store seeded with cfg. cfg must validate.
func NewStore(cfg Config) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("seed config: %w", err)
	}
	return &Store{cfg: cfg.Clone()}, nil
}

// Snapshot returns an independent copy of the current configuration.
func (s *Store) Snapshot() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.Clone()
}

// Apply validates and applies ops as one unit. Ops run in order against a
// copy of the current configuration; the copy replaces the live value only
// when every op and the final configuration validate. On error the store is
// unchanged.
func (s *Store) Apply(ops ...Op) error {
	for _, op := range ops {
		if op == nil {
			return invalidValue("nil op")
		}
		if err := op.validate(); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.cfg.Clone()
	for _, op := range ops {
		op.apply(&next)
	}
	if err := next.Validate(); err != nil {
		return err
	}
	s.cfg = next
	return nil
}
