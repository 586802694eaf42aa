package users

import (
	"context"
	"sync"

	"github.com/eyfs-nursery/eyfs-nursery/internal/shared"
)

// Directory defines persistence operations for the user directory.
type Directory interface {
	List(ctx context.Context) ([]User, error)
	ByID(ctx context.Context, id string) (*User, error)
	// ByIdentifier matches username OR email, case-sensitive exact.
	ByIdentifier(ctx context.Context, identifier string) (*User, error)
	Insert(ctx context.Context, user User) error
	Update(ctx context.Context, user User) error
	Delete(ctx context.Context, id string) error
}

// MemoryDirectory keeps the directory in process memory, mirroring the seeded
// sample data the application ships with. It is the default store.
type MemoryDirectory struct {
	mu    sync.RWMutex
	users []User
}

// NewMemoryDirectory constructs a directory holding the given users.
func NewMemoryDirectory(seed []User) *MemoryDirectory {
	users := make([]User, len(seed))
	copy(users, seed)
	return &MemoryDirectory{users: users}
}

// List returns all users.
func (d *MemoryDirectory) List(ctx context.Context) ([]User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]User, len(d.users))
	copy(out, d.users)
	return out, nil
}

// ByID fetches a user by id.
func (d *MemoryDirectory) ByID(ctx context.Context, id string) (*User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for i := range d.users {
		if d.users[i].ID == id {
			user := d.users[i]
			return &user, nil
		}
	}
	return nil, shared.ErrNotFound
}

// ByIdentifier fetches a user whose username or email equals the identifier.
func (d *MemoryDirectory) ByIdentifier(ctx context.Context, identifier string) (*User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for i := range d.users {
		if d.users[i].Username == identifier || d.users[i].Email == identifier {
			user := d.users[i]
			return &user, nil
		}
	}
	return nil, shared.ErrNotFound
}

// Insert appends a new user. Username and email must be unique.
func (d *MemoryDirectory) Insert(ctx context.Context, user User) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.users {
		if d.users[i].ID == user.ID || d.users[i].Username == user.Username || d.users[i].Email == user.Email {
			return shared.ErrDuplicate
		}
	}
	d.users = append(d.users, user)
	return nil
}

// Update replaces the stored record with the same id.
func (d *MemoryDirectory) Update(ctx context.Context, user User) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.users {
		if d.users[i].ID == user.ID {
			d.users[i] = user
			return nil
		}
	}
	return shared.ErrNotFound
}

// Delete removes the user with the given id.
func (d *MemoryDirectory) Delete(ctx context.Context, id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.users {
		if d.users[i].ID == id {
			d.users = append(d.users[:i], d.users[i+1:]...)
			return nil
		}
	}
	return shared.ErrNotFound
}

var _ Directory = (*MemoryDirectory)(nil)
