package repository

import (
	"context"

	"github.com/taskboard/backend/domain"
)

type ProjectRepository interface {
	// CreateWithOwner inserts the project row and its owner membership row
	// atomically: if the membership insert fails the project must not persist.
	CreateWithOwner(ctx context.Context, project *domain.Project) (*domain.Project, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Project, error)
	GetMember(ctx context.Context, projectID, userID string) (*domain.Member, error)
	ListMembers(ctx context.Context, projectID string) ([]domain.Member, error)
	AddMember(ctx context.Context, member domain.Member) error
}
