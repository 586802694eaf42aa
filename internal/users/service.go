package users

import (
	"context"
	"fmt"
	"strings"
)

// Service handles directory reads and profile updates. Account creation,
// deletion and password resets go through the session manager, which owns the
// caller-sensitive rules.
type Service struct {
	dir Directory
}

// NewService builds Service instance.
func NewService(dir Directory) *Service {
	return &Service{dir: dir}
}

// ListUsers returns all users.
func (s *Service) ListUsers(ctx context.Context) ([]User, error) {
	return s.dir.List(ctx)
}

// GetUser returns a single user by id.
func (s *Service) GetUser(ctx context.Context, id string) (*User, error) {
	return s.dir.ByID(ctx, id)
}

// UpdateProfile applies administrative edits to an existing account. The
// password is never touched here.
func (s *Service) UpdateProfile(ctx context.Context, id string, input NewUser) (*User, error) {
	user, err := s.dir.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.FirstName = strings.TrimSpace(input.FirstName)
	user.LastName = strings.TrimSpace(input.LastName)
	user.Email = strings.TrimSpace(input.Email)
	user.Username = strings.TrimSpace(input.Username)
	user.Phone = strings.TrimSpace(input.Phone)
	user.Role = input.Role
	user.Status = input.Status
	user.Avatar = input.Avatar
	user.Qualifications = input.Qualifications
	user.Rooms = input.Rooms
	user.ContractType = input.ContractType
	if err := s.dir.Update(ctx, *user); err != nil {
		return nil, fmt.Errorf("users: update %s: %w", id, err)
	}
	return user, nil
}
