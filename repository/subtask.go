package repository

import (
	"context"

	"github.com/taskboard/backend/domain"
)

type SubtaskRepository interface {
	Create(ctx context.Context, subtask *domain.Subtask) (*domain.Subtask, error)
	// ListByTaskIDs fetches subtasks for all given tasks in one batched query.
	ListByTaskIDs(ctx context.Context, taskIDs []string) ([]domain.Subtask, error)
	// SetComplete joins through the parent task to enforce project scoping;
	// the subtask table has no project column of its own.
	SetComplete(ctx context.Context, subtaskID, projectID string, isComplete bool) error
}
