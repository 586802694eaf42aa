package classes

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/eyfs-nursery/eyfs-nursery/internal/shared"
)

// Service holds the room/cohort table in memory and applies edits.
type Service struct {
	mu      sync.RWMutex
	classes []Class
}

// NewService builds Service instance seeded with the given classes.
func NewService(seed []Class) *Service {
	records := make([]Class, len(seed))
	copy(records, seed)
	return &Service{classes: records}
}

// List returns all classes.
func (s *Service) List(ctx context.Context) ([]Class, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Class, len(s.classes))
	copy(out, s.classes)
	return out, nil
}

// Get returns a single class.
func (s *Service) Get(ctx context.Context, id string) (*Class, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.classes {
		if s.classes[i].ID == id {
			class := s.classes[i]
			return &class, nil
		}
	}
	return nil, shared.ErrNotFound
}

// Create adds a class.
func (s *Service) Create(ctx context.Context, class Class) (*Class, error) {
	name := strings.TrimSpace(class.Name)
	if name == "" {
		return nil, errors.New("classes: name required")
	}
	class.ID = uuid.NewString()
	class.Name = name
	s.mu.Lock()
	defer s.mu.Unlock()
	s.classes = append(s.classes, class)
	return &class, nil
}

// Update applies edits to an existing class.
func (s *Service) Update(ctx context.Context, id string, class Class) (*Class, error) {
	name := strings.TrimSpace(class.Name)
	if name == "" {
		return nil, errors.New("classes: name required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.classes {
		if s.classes[i].ID == id {
			class.ID = id
			class.Name = name
			s.classes[i] = class
			return &class, nil
		}
	}
	return nil, shared.ErrNotFound
}

// SeedClasses returns the sample rooms the application ships with.
func SeedClasses() []Class {
	return []Class{
		{ID: uuid.NewString(), Name: "Caterpillars", AgeRange: "0-2", Capacity: 9},
		{ID: uuid.NewString(), Name: "Butterflies", AgeRange: "2-3", Capacity: 12},
		{ID: uuid.NewString(), Name: "Bumblebees", AgeRange: "3-5", Capacity: 16},
	}
}
