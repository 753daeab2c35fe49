// Package runqueue submits and processes simulation run requests over
// asynq, so a run can be requested without blocking the caller on the
// kernel finishing, and so long batches can be throttled and retried.
package runqueue

import (
	"encoding/json"

	"triagesim/models"

	"github.com/hibiken/asynq"
)

// TypeRunScenario is the asynq task type for a single scenario run.
const TypeRunScenario = "scenario:run"

// NewRunTask builds the asynq task that carries a RunConfig payload.
func NewRunTask(cfg models.RunConfig) (*asynq.Task, error) {
	b, err := json.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeRunScenario, b), nil
}
