package scheduler

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const TaskLeadsSweepStale = "leads.sweep_stale"

// SweepStalePayload drives one stale sweep run. Cutoff is the scored_at
// threshold; leads older than it with no outcome are marked stale.
type SweepStalePayload struct {
	Cutoff time.Time `json:"cutoff"`
}

func NewSweepStaleTask(payload SweepStalePayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLeadsSweepStale, data), nil
}

func ParseSweepStalePayload(task *asynq.Task) (SweepStalePayload, error) {
	var payload SweepStalePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return SweepStalePayload{}, err
	}
	return payload, nil
}
