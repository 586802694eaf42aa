package children

import (
	"context"
	"sync"

	"github.com/eyfs-nursery/eyfs-nursery/internal/shared"
)

// Store defines persistence for child records.
type Store interface {
	List(ctx context.Context) ([]Child, error)
	ByID(ctx context.Context, id string) (*Child, error)
	Insert(ctx context.Context, child Child) error
	Update(ctx context.Context, child Child) error
	Delete(ctx context.Context, id string) error
}

// MemoryStore keeps child records in process memory.
type MemoryStore struct {
	mu       sync.RWMutex
	children []Child
}

// NewMemoryStore constructs a store holding the given records.
func NewMemoryStore(seed []Child) *MemoryStore {
	records := make([]Child, len(seed))
	copy(records, seed)
	return &MemoryStore{children: records}
}

// List returns all children.
func (s *MemoryStore) List(ctx context.Context) ([]Child, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Child, len(s.children))
	copy(out, s.children)
	return out, nil
}

// ByID fetches a child by id.
func (s *MemoryStore) ByID(ctx context.Context, id string) (*Child, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.children {
		if s.children[i].ID == id {
			child := s.children[i]
			return &child, nil
		}
	}
	return nil, shared.ErrNotFound
}

// Insert appends a new record.
func (s *MemoryStore) Insert(ctx context.Context, child Child) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.children = append(s.children, child)
	return nil
}

// Update replaces the record with the same id.
func (s *MemoryStore) Update(ctx context.Context, child Child) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.children {
		if s.children[i].ID == child.ID {
			s.children[i] = child
			return nil
		}
	}
	return shared.ErrNotFound
}

// Delete removes the record with the given id.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.children {
		if s.children[i].ID == id {
			s.children = append(s.children[:i], s.children[i+1:]...)
			return nil
		}
	}
	return shared.ErrNotFound
}

var _ Store = (*MemoryStore)(nil)
