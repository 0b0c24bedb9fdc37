package scheduler

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const TaskConversationReap = "conversation.reap"

// ConversationReapPayload carries the state TTL the reap run must apply.
type ConversationReapPayload struct {
	TTL time.Duration `json:"ttl"`
}

func NewConversationReapTask(payload ConversationReapPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskConversationReap, data), nil
}

func ParseConversationReapPayload(task *asynq.Task) (ConversationReapPayload, error) {
	var payload ConversationReapPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return ConversationReapPayload{}, err
	}
	return payload, nil
}
