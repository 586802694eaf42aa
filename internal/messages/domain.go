// Package messages manages parent communication.
package messages

import "time"

// Delivery status values.
const (
	StatusQueued    = "queued"
	StatusDelivered = "delivered"
)

// Message is a note sent from the nursery to a child's parents.
type Message struct {
	ID          string
	ChildID     string
	SenderID    string
	Subject     string
	Body        string
	Recipient   string
	Status      string
	CreatedAt   time.Time
	DeliveredAt time.Time
}
