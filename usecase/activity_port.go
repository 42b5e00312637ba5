package usecase

import (
	"context"

	"github.com/taskboard/backend/domain"
)

// ActivityLog abstracts the activity feed so use cases stay storage-agnostic.
// Record must never fail the mutation it annotates.
type ActivityLog interface {
	Record(ctx context.Context, entry domain.Activity)
	Recent(ctx context.Context, projectID string, limit int) ([]domain.Activity, error)
}
