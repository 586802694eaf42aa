package children

import (
	"time"

	"github.com/google/uuid"
)

// SeedChildren returns the demo roll used in development mode.
func SeedChildren() []Child {
	now := time.Now()
	return []Child{
		{
			ID:          uuid.NewString(),
			FirstName:   "Oliver",
			LastName:    "Bennett",
			DateOfBirth: time.Date(2022, time.March, 14, 0, 0, 0, 0, time.UTC),
			Allergies:   []string{"peanuts"},
			ParentContacts: []ParentContact{
				{Name: "Claire Bennett", Relationship: "mother", Phone: "07700 900101"},
			},
			CreatedAt: now,
		},
		{
			ID:          uuid.NewString(),
			FirstName:   "Amelia",
			LastName:    "Okafor",
			DateOfBirth: time.Date(2021, time.September, 2, 0, 0, 0, 0, time.UTC),
			ParentContacts: []ParentContact{
				{Name: "Daniel Okafor", Relationship: "father", Phone: "07700 900102"},
			},
			CreatedAt: now,
		},
		{
			ID:          uuid.NewString(),
			FirstName:   "Noah",
			LastName:    "Hughes",
			DateOfBirth: time.Date(2023, time.January, 27, 0, 0, 0, 0, time.UTC),
			Allergies:   []string{"dairy", "egg"},
			ParentContacts: []ParentContact{
				{Name: "Megan Hughes", Relationship: "mother", Phone: "07700 900103"},
			},
			Notes:     "Settling in, prefers quiet corner after lunch.",
			CreatedAt: now,
		},
	}
}
