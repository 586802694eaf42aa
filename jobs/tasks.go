package jobs

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeDeliverMessage is the task type for delivering a parent message.
	TaskTypeDeliverMessage = "message:deliver"
	// TaskTypeDailyDigest is the cron task that sweeps undelivered messages.
	TaskTypeDailyDigest = "digest:daily"
)

// DeliverMessagePayload describes one outbound parent message.
type DeliverMessagePayload struct {
	MessageID string `json:"messageId"`
	To        string `json:"to"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
}

// NewDeliverMessageTask constructs an Asynq task.
func NewDeliverMessageTask(payload DeliverMessagePayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeDeliverMessage, data), nil
}

// HandleDeliverMessageTask processes TaskTypeDeliverMessage tasks.
func HandleDeliverMessageTask(ctx context.Context, t *asynq.Task) error {
	var payload DeliverMessagePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	// Placeholder: integrate with SMTP/Mailpit in phase 2.
	fmt.Printf("[jobs] deliver message %s to %s subject=%s\n", payload.MessageID, payload.To, payload.Subject)
	return nil
}

// NewDailyDigestTask constructs the scheduled digest task.
func NewDailyDigestTask() *asynq.Task {
	return asynq.NewTask(TaskTypeDailyDigest, nil)
}

// HandleDailyDigestTask processes TaskTypeDailyDigest tasks.
func HandleDailyDigestTask(ctx context.Context, t *asynq.Task) error {
	fmt.Println("[jobs] daily digest sweep")
	return nil
}
