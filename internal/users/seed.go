package users

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/eyfs-nursery/eyfs-nursery/internal/rbac"
)

// SeedUsers returns the sample staff directory the application ships with.
// Passwords are hashed at build time with a low cost; these accounts are
// development fixtures, not production data.
func SeedUsers() []User {
	created := time.Date(2023, time.September, 4, 9, 0, 0, 0, time.UTC)
	return []User{
		{
			ID:             uuid.NewString(),
			FirstName:      "Sarah",
			LastName:       "Johnson",
			Email:          "sarah.johnson@brightsprouts.co.uk",
			Username:       "sarah.johnson",
			PasswordHash:   mustHash("admin123"),
			Phone:          "07700 900123",
			Role:           rbac.RoleAdministrator,
			Status:         StatusActive,
			Avatar:         "avatars/sarah.png",
			CreatedAt:      created,
			Qualifications: []string{"EYPS", "Paediatric First Aid"},
			Rooms:          []string{"Office"},
			ContractType:   "full-time",
		},
		{
			ID:             uuid.NewString(),
			FirstName:      "Emma",
			LastName:       "Williams",
			Email:          "emma.williams@brightsprouts.co.uk",
			Username:       "emma.williams",
			PasswordHash:   mustHash("manager123"),
			Phone:          "07700 900124",
			Role:           rbac.RoleManager,
			Status:         StatusActive,
			CreatedAt:      created,
			Qualifications: []string{"Level 3 Early Years Educator"},
			Rooms:          []string{"Butterflies", "Caterpillars"},
			ContractType:   "full-time",
		},
		{
			ID:             uuid.NewString(),
			FirstName:      "James",
			LastName:       "Taylor",
			Email:          "james.taylor@brightsprouts.co.uk",
			Username:       "james.taylor",
			PasswordHash:   mustHash("practice123"),
			Phone:          "07700 900125",
			Role:           rbac.RolePractitioner,
			Status:         StatusActive,
			CreatedAt:      created.AddDate(0, 2, 0),
			Qualifications: []string{"Level 2 Childcare"},
			Rooms:          []string{"Caterpillars"},
			ContractType:   "part-time",
		},
		{
			ID:             uuid.NewString(),
			FirstName:      "Priya",
			LastName:       "Patel",
			Email:          "priya.patel@brightsprouts.co.uk",
			Username:       "priya.patel",
			PasswordHash:   mustHash("senco123"),
			Phone:          "07700 900126",
			Role:           rbac.RoleSENCO,
			Status:         StatusActive,
			CreatedAt:      created.AddDate(0, 4, 0),
			Qualifications: []string{"SENCO Award", "Level 3 Early Years Educator"},
			Rooms:          []string{"Butterflies"},
			ContractType:   "full-time",
		},
		{
			ID:           uuid.NewString(),
			FirstName:    "Tom",
			LastName:     "Harris",
			Email:        "tom.harris@brightsprouts.co.uk",
			Username:     "tom.harris",
			PasswordHash: mustHash("leader123"),
			Phone:        "07700 900127",
			Role:         rbac.RoleRoomLeader,
			Status:       StatusInactive,
			CreatedAt:    created.AddDate(0, 6, 0),
			Rooms:        []string{"Bumblebees"},
			ContractType: "full-time",
		},
	}
}

func mustHash(password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return string(hash)
}
