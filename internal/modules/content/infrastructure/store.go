package infrastructure

import (
	"sync/atomic"

	"elyseeWeb/internal/modules/content/domain"
)

// Store publishes the current catalog to readers without locking.
// Readers must treat the returned catalog as immutable.
type Store struct {
	current atomic.Pointer[domain.Catalog]
}

func NewStore(initial *domain.Catalog) *Store {
	s := &Store{}
	s.current.Store(initial)
	return s
}

func (s *Store) Catalog() *domain.Catalog {
	return s.current.Load()
}

// Replace swaps in a new catalog; nil is ignored.
func (s *Store) Replace(c *domain.Catalog) {
	if c == nil {
		return
	}
	s.current.Store(c)
}
