package repository

import (
	"context"

	"github.com/taskboard/backend/domain"
)

// BoardRow is one task as fetched for the board: the task itself plus the
// assignee name and comment count joined in by the query.
type BoardRow struct {
	Task         domain.Task
	AssigneeName string
	CommentCount int
}

// TaskRepository persists tasks. Every mutation is scoped by both the task
// id and the project id, never the task id alone.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	// ListBoard returns all board rows for a project ordered by creation
	// time, most recent first.
	ListBoard(ctx context.Context, projectID string) ([]BoardRow, error)
	GetScoped(ctx context.Context, taskID, projectID string) (*domain.Task, error)
	UpdateDetails(ctx context.Context, task *domain.Task) error
	UpdateStatus(ctx context.Context, taskID, projectID, status string) error
	Delete(ctx context.Context, taskID, projectID string) error
}
