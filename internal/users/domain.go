package users

import "time"

// Account status values.
const (
	StatusActive    = "active"
	StatusInactive  = "inactive"
	StatusSuspended = "suspended"
)

// User represents a staff account in the directory.
type User struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	Username     string
	PasswordHash string
	Phone        string
	Role         string
	Status       string
	Avatar       string
	CreatedAt    time.Time
	// LastLogin is zero until the first successful login.
	LastLogin time.Time

	// HR metadata, irrelevant to access control.
	Qualifications []string
	Rooms          []string
	ContractType   string
}

// DisplayName returns the user's full name.
func (u User) DisplayName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// IsActive reports whether the account may authenticate.
func (u User) IsActive() bool {
	return u.Status == StatusActive
}

// NewUser carries the fields for creating an account. The password arrives in
// plain text and is hashed before it reaches the directory.
type NewUser struct {
	FirstName      string
	LastName       string
	Email          string
	Username       string
	Password       string
	Phone          string
	Role           string
	Status         string
	Avatar         string
	Qualifications []string
	Rooms          []string
	ContractType   string
}
