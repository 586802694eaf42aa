package children

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/eyfs-nursery/eyfs-nursery/internal/shared"
)

// NewChild carries the fields for creating or updating a record.
type NewChild struct {
	FirstName      string
	LastName       string
	DateOfBirth    time.Time
	ClassID        string
	KeyPersonID    string
	Allergies      []string
	ParentContacts []ParentContact
	Notes          string
}

// Service handles child-record business logic.
type Service struct {
	store Store
	now   func() time.Time
	title cases.Caser
}

// NewService builds Service instance.
func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now, title: cases.Title(language.BritishEnglish)}
}

// List returns all children.
func (s *Service) List(ctx context.Context) ([]Child, error) {
	return s.store.List(ctx)
}

// Get returns a single child.
func (s *Service) Get(ctx context.Context, id string) (*Child, error) {
	return s.store.ByID(ctx, id)
}

// Create adds a child to the roll. Names are normalised to title case the way
// registration forms arrive in mixed casing.
func (s *Service) Create(ctx context.Context, input NewChild) (*Child, error) {
	child := Child{
		ID:             uuid.NewString(),
		FirstName:      s.title.String(strings.TrimSpace(input.FirstName)),
		LastName:       s.title.String(strings.TrimSpace(input.LastName)),
		DateOfBirth:    input.DateOfBirth,
		ClassID:        input.ClassID,
		KeyPersonID:    input.KeyPersonID,
		Allergies:      input.Allergies,
		ParentContacts: input.ParentContacts,
		Notes:          input.Notes,
		CreatedAt:      s.now(),
	}
	if err := s.store.Insert(ctx, child); err != nil {
		return nil, err
	}
	return &child, nil
}

// Update applies edits to an existing record.
func (s *Service) Update(ctx context.Context, id string, input NewChild) (*Child, error) {
	child, err := s.store.ByID(ctx, id)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	child.FirstName = s.title.String(strings.TrimSpace(input.FirstName))
	child.LastName = s.title.String(strings.TrimSpace(input.LastName))
	child.DateOfBirth = input.DateOfBirth
	child.ClassID = input.ClassID
	child.KeyPersonID = input.KeyPersonID
	child.Allergies = input.Allergies
	child.ParentContacts = input.ParentContacts
	child.Notes = input.Notes
	if err := s.store.Update(ctx, *child); err != nil {
		return nil, err
	}
	return child, nil
}

// Delete removes a child from the roll.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}
