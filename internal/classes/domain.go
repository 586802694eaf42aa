// Package classes manages rooms and cohorts.
package classes

// Class represents a room or cohort of children.
type Class struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	AgeRange   string `json:"ageRange"`
	Capacity   int    `json:"capacity"`
	RoomLeader string `json:"roomLeader,omitempty"`
}
