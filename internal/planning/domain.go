// Package planning manages the weekly planning calendar of activities.
package planning

import "time"

// Activity slots on the planning grid.
const (
	SlotMorning   = "am"
	SlotAfternoon = "pm"
)

// Activity is one planned entry on the week grid.
type Activity struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	Area      string       `json:"area,omitempty"`
	ClassID   string       `json:"classId,omitempty"`
	WeekStart time.Time    `json:"weekStart"`
	Day       time.Weekday `json:"day"`
	Slot      string       `json:"slot"`
	Resources string       `json:"resources,omitempty"`
	Notes     string       `json:"notes,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
}
