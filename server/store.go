package server

import (
	"sync"

	"github.com/google/uuid"
	"github.com/jsphweid/arckit/model"
)

// Store keeps parsed charts in memory under random ids. Stored charts are
// never mutated, so readers can share them.
type Store struct {
	mu     sync.RWMutex
	charts map[string]*model.Chart
}

func NewStore() *Store {
	return &Store{charts: make(map[string]*model.Chart)}
}

func (s *Store) Put(c *model.Chart) string {
	id := uuid.New().String()
	s.mu.Lock()
	s.charts[id] = c
	s.mu.Unlock()
	return id
}

func (s *Store) Get(id string) (*model.Chart, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.charts[id]
	return c, ok
}

func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.charts[id]; !ok {
		return false
	}
	delete(s.charts, id)
	return true
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.charts)
}
