package messages

import (
	"context"
	"errors"
	"testing"

	"github.com/hibiken/asynq"

	"github.com/eyfs-nursery/eyfs-nursery/internal/shared"
	"github.com/eyfs-nursery/eyfs-nursery/jobs"
)

type captureEnqueuer struct {
	payloads []jobs.DeliverMessagePayload
	err      error
}

func (c *captureEnqueuer) EnqueueDeliverMessage(ctx context.Context, payload jobs.DeliverMessagePayload) (*asynq.TaskInfo, error) {
	if c.err != nil {
		return nil, c.err
	}
	c.payloads = append(c.payloads, payload)
	return &asynq.TaskInfo{}, nil
}

func TestSendQueuesDelivery(t *testing.T) {
	enq := &captureEnqueuer{}
	svc := NewService(enq)
	ctx := context.Background()

	msg, err := svc.Send(ctx, NewMessage{
		SenderID:  "u-1",
		Subject:   "Trip reminder",
		Body:      "Wellies tomorrow please.",
		Recipient: "parent@example.com",
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if msg.Status != StatusQueued {
		t.Fatalf("expected queued status, got %s", msg.Status)
	}
	if len(enq.payloads) != 1 {
		t.Fatalf("expected one enqueued delivery, got %d", len(enq.payloads))
	}
	if enq.payloads[0].MessageID != msg.ID || enq.payloads[0].To != "parent@example.com" {
		t.Fatalf("unexpected payload: %+v", enq.payloads[0])
	}
}

func TestSendValidatesInput(t *testing.T) {
	svc := NewService(&captureEnqueuer{})
	ctx := context.Background()

	cases := []NewMessage{
		{Subject: "", Body: "b", Recipient: "p@example.com"},
		{Subject: "s", Body: "  ", Recipient: "p@example.com"},
		{Subject: "s", Body: "b", Recipient: ""},
	}
	for _, input := range cases {
		if _, err := svc.Send(ctx, input); err == nil {
			t.Fatalf("expected error for input %+v", input)
		}
	}
}

func TestSendPropagatesEnqueueFailure(t *testing.T) {
	enq := &captureEnqueuer{err: errors.New("redis down")}
	svc := NewService(enq)

	_, err := svc.Send(context.Background(), NewMessage{
		Subject: "s", Body: "b", Recipient: "p@example.com",
	})
	if err == nil {
		t.Fatal("expected enqueue error to surface")
	}
}

func TestMarkDeliveredAndPending(t *testing.T) {
	svc := NewService(nil)
	ctx := context.Background()

	first, err := svc.Send(ctx, NewMessage{Subject: "a", Body: "b", Recipient: "p@example.com"})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	second, err := svc.Send(ctx, NewMessage{Subject: "c", Body: "d", Recipient: "q@example.com"})
	if err != nil {
		t.Fatalf("send: %v", err)
	}

	if err := svc.MarkDelivered(ctx, first.ID); err != nil {
		t.Fatalf("mark delivered: %v", err)
	}
	if err := svc.MarkDelivered(ctx, "missing"); !errors.Is(err, shared.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	pending := svc.Pending(ctx)
	if len(pending) != 1 || pending[0] != second.ID {
		t.Fatalf("expected only second message pending, got %v", pending)
	}

	list, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].ID != second.ID {
		t.Fatalf("expected newest first, got %v", list)
	}
	if list[1].Status != StatusDelivered || list[1].DeliveredAt.IsZero() {
		t.Fatalf("expected first message delivered with timestamp")
	}
}
