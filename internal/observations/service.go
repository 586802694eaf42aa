package observations

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/eyfs-nursery/eyfs-nursery/internal/shared"
)

// NewObservation carries the fields for recording an observation.
type NewObservation struct {
	ChildID    string
	AuthorID   string
	Area       string
	Note       string
	NextSteps  string
	ObservedAt time.Time
}

// Service keeps observations in memory and applies edits.
type Service struct {
	mu           sync.RWMutex
	observations []Observation
	now          func() time.Time
}

// NewService builds Service instance.
func NewService() *Service {
	return &Service{now: time.Now}
}

// ListForChild returns all observations for one child, newest first.
func (s *Service) ListForChild(ctx context.Context, childID string) ([]Observation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Observation
	for _, o := range s.observations {
		if o.ChildID == childID {
			out = append(out, o)
		}
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

// Record stores a new observation.
func (s *Service) Record(ctx context.Context, input NewObservation) (*Observation, error) {
	if strings.TrimSpace(input.Note) == "" {
		return nil, errors.New("observations: note required")
	}
	obs := Observation{
		ID:         uuid.NewString(),
		ChildID:    input.ChildID,
		AuthorID:   input.AuthorID,
		Area:       input.Area,
		Note:       strings.TrimSpace(input.Note),
		NextSteps:  strings.TrimSpace(input.NextSteps),
		ObservedAt: input.ObservedAt,
		CreatedAt:  s.now(),
	}
	if obs.ObservedAt.IsZero() {
		obs.ObservedAt = obs.CreatedAt
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observations = append(s.observations, obs)
	return &obs, nil
}

// Amend updates the note and next steps of an existing observation.
func (s *Service) Amend(ctx context.Context, id, note, nextSteps string) (*Observation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.observations {
		if s.observations[i].ID == id {
			if strings.TrimSpace(note) != "" {
				s.observations[i].Note = strings.TrimSpace(note)
			}
			s.observations[i].NextSteps = strings.TrimSpace(nextSteps)
			obs := s.observations[i]
			return &obs, nil
		}
	}
	return nil, shared.ErrNotFound
}

// Delete removes an observation.
func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.observations {
		if s.observations[i].ID == id {
			s.observations = append(s.observations[:i], s.observations[i+1:]...)
			return nil
		}
	}
	return shared.ErrNotFound
}
