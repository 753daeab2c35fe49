// Package resultstore persists completed run results so they can be
// retrieved later by run ID, independent of the worker that produced them.
package resultstore

import (
	"context"

	"triagesim/models"
)

// ResultStore saves and retrieves RunResult documents keyed by RunID.
type ResultStore interface {
	SaveRun(ctx context.Context, result *models.RunResult) error
	GetRun(ctx context.Context, runID string) (*models.RunResult, error)
}
