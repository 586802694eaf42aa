package messages

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/eyfs-nursery/eyfs-nursery/internal/shared"
	"github.com/eyfs-nursery/eyfs-nursery/jobs"
)

// Enqueuer submits delivery tasks. *jobs.Client satisfies it.
type Enqueuer interface {
	EnqueueDeliverMessage(ctx context.Context, payload jobs.DeliverMessagePayload) (*asynq.TaskInfo, error)
}

// NewMessage carries the fields for sending a message.
type NewMessage struct {
	ChildID   string
	SenderID  string
	Subject   string
	Body      string
	Recipient string
}

// Service keeps messages in memory and hands delivery to the worker.
type Service struct {
	mu       sync.RWMutex
	messages []Message
	enqueue  Enqueuer
	now      func() time.Time
}

// NewService builds Service instance. A nil enqueuer leaves messages queued,
// which is what tests and the seeded development mode want.
func NewService(enqueue Enqueuer) *Service {
	return &Service{enqueue: enqueue, now: time.Now}
}

// List returns all messages, newest first.
func (s *Service) List(ctx context.Context) ([]Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

// Send stores the message and enqueues its delivery.
func (s *Service) Send(ctx context.Context, input NewMessage) (*Message, error) {
	if strings.TrimSpace(input.Subject) == "" || strings.TrimSpace(input.Body) == "" {
		return nil, errors.New("messages: subject and body required")
	}
	if strings.TrimSpace(input.Recipient) == "" {
		return nil, errors.New("messages: recipient required")
	}
	msg := Message{
		ID:        uuid.NewString(),
		ChildID:   input.ChildID,
		SenderID:  input.SenderID,
		Subject:   strings.TrimSpace(input.Subject),
		Body:      input.Body,
		Recipient: strings.TrimSpace(input.Recipient),
		Status:    StatusQueued,
		CreatedAt: s.now(),
	}
	s.mu.Lock()
	s.messages = append(s.messages, msg)
	s.mu.Unlock()

	if s.enqueue != nil {
		_, err := s.enqueue.EnqueueDeliverMessage(ctx, jobs.DeliverMessagePayload{
			MessageID: msg.ID,
			To:        msg.Recipient,
			Subject:   msg.Subject,
			Body:      msg.Body,
		})
		if err != nil {
			return nil, err
		}
	}
	return &msg, nil
}

// MarkDelivered records a completed delivery reported by the worker.
func (s *Service) MarkDelivered(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.messages {
		if s.messages[i].ID == id {
			s.messages[i].Status = StatusDelivered
			s.messages[i].DeliveredAt = s.now()
			return nil
		}
	}
	return shared.ErrNotFound
}

// Pending returns ids of messages still queued, used by the daily digest
// sweep.
func (s *Service) Pending(ctx context.Context) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []string
	for _, m := range s.messages {
		if m.Status == StatusQueued {
			out = append(out, m.ID)
		}
	}
	return out
}
