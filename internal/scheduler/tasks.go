// Package scheduler enqueues and processes background jobs via asynq.
package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskSavedSearchRefresh = "savedsearches.refresh"

// SavedSearchRefreshPayload describes why a refresh run was requested.
type SavedSearchRefreshPayload struct {
	Reason string `json:"reason"`
}

func NewSavedSearchRefreshTask(payload SavedSearchRefreshPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskSavedSearchRefresh, data), nil
}

func ParseSavedSearchRefreshPayload(task *asynq.Task) (SavedSearchRefreshPayload, error) {
	var payload SavedSearchRefreshPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return SavedSearchRefreshPayload{}, err
	}
	return payload, nil
}
