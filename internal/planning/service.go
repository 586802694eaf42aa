package planning

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/eyfs-nursery/eyfs-nursery/internal/shared"
)

// NewActivity carries the fields for creating or moving an activity.
type NewActivity struct {
	Title     string
	Area      string
	ClassID   string
	WeekStart time.Time
	Day       time.Weekday
	Slot      string
	Resources string
	Notes     string
}

// Service keeps planned activities in memory and applies edits.
type Service struct {
	mu         sync.RWMutex
	activities []Activity
	now        func() time.Time
}

// NewService builds Service instance.
func NewService() *Service {
	return &Service{now: time.Now}
}

// Week returns the activities planned for the week starting at weekStart,
// optionally filtered by class.
func (s *Service) Week(ctx context.Context, weekStart time.Time, classID string) ([]Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Activity
	for _, a := range s.activities {
		if !a.WeekStart.Equal(weekStart) {
			continue
		}
		if classID != "" && a.ClassID != classID {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

// Plan adds an activity to the grid.
func (s *Service) Plan(ctx context.Context, input NewActivity) (*Activity, error) {
	activity, err := build(input)
	if err != nil {
		return nil, err
	}
	activity.ID = uuid.NewString()
	activity.CreatedAt = s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activities = append(s.activities, activity)
	return &activity, nil
}

// Move rewrites an existing activity, typically after a drag to another
// day or slot.
func (s *Service) Move(ctx context.Context, id string, input NewActivity) (*Activity, error) {
	updated, err := build(input)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.activities {
		if s.activities[i].ID == id {
			updated.ID = id
			updated.CreatedAt = s.activities[i].CreatedAt
			s.activities[i] = updated
			return &updated, nil
		}
	}
	return nil, shared.ErrNotFound
}

// Remove deletes an activity from the grid.
func (s *Service) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.activities {
		if s.activities[i].ID == id {
			s.activities = append(s.activities[:i], s.activities[i+1:]...)
			return nil
		}
	}
	return shared.ErrNotFound
}

// Import bulk-loads activities parsed from CSV, assigning fresh ids.
func (s *Service) Import(ctx context.Context, inputs []NewActivity) (int, error) {
	created := make([]Activity, 0, len(inputs))
	for _, input := range inputs {
		activity, err := build(input)
		if err != nil {
			return 0, err
		}
		activity.ID = uuid.NewString()
		activity.CreatedAt = s.now()
		created = append(created, activity)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activities = append(s.activities, created...)
	return len(created), nil
}

func build(input NewActivity) (Activity, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return Activity{}, errors.New("planning: title required")
	}
	slot := input.Slot
	if slot != SlotMorning && slot != SlotAfternoon {
		return Activity{}, errors.New("planning: slot must be am or pm")
	}
	if input.Day < time.Monday || input.Day > time.Friday {
		return Activity{}, errors.New("planning: day must be Monday through Friday")
	}
	return Activity{
		Title:     title,
		Area:      input.Area,
		ClassID:   input.ClassID,
		WeekStart: input.WeekStart,
		Day:       input.Day,
		Slot:      slot,
		Resources: input.Resources,
		Notes:     input.Notes,
	}, nil
}
