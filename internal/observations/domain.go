// Package observations manages learning observations recorded against
// children.
package observations

import "time"

// EYFS areas of learning used to tag observations.
const (
	AreaCommunication = "communication-and-language"
	AreaPhysical      = "physical-development"
	AreaPSED          = "personal-social-emotional"
	AreaLiteracy      = "literacy"
	AreaMathematics   = "mathematics"
	AreaWorld         = "understanding-the-world"
	AreaExpressive    = "expressive-arts-and-design"
)

// Observation is a dated note about a child's learning.
type Observation struct {
	ID         string    `json:"id"`
	ChildID    string    `json:"childId"`
	AuthorID   string    `json:"authorId"`
	Area       string    `json:"area"`
	Note       string    `json:"note"`
	NextSteps  string    `json:"nextSteps,omitempty"`
	ObservedAt time.Time `json:"observedAt"`
	CreatedAt  time.Time `json:"createdAt"`
}
