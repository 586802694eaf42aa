// Package children manages the child records held by the nursery.
package children

import "time"

// ParentContact is a guardian contact attached to a child record.
type ParentContact struct {
	Name         string `json:"name"`
	Relationship string `json:"relationship"`
	Phone        string `json:"phone"`
	Email        string `json:"email,omitempty"`
}

// Child represents a child on roll.
type Child struct {
	ID             string
	FirstName      string
	LastName       string
	DateOfBirth    time.Time
	ClassID        string
	KeyPersonID    string
	Allergies      []string
	ParentContacts []ParentContact
	Notes          string
	CreatedAt      time.Time
}

// DisplayName returns the child's full name.
func (c Child) DisplayName() string {
	return c.FirstName + " " + c.LastName
}
