package repository

import (
	"context"

	"github.com/taskboard/backend/domain"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) (*domain.Comment, error)
	ListByTask(ctx context.Context, taskID, projectID string) ([]domain.Comment, error)
}
