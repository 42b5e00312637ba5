package project

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/taskboard/backend/domain"
	"github.com/taskboard/backend/repository"
	"github.com/taskboard/backend/usecase"
)

type UseCase struct {
	projects repository.ProjectRepository
	users    repository.UserRepository
	activity usecase.ActivityLog
	logger   *zap.Logger
}

func New(projects repository.ProjectRepository, users repository.UserRepository, activity usecase.ActivityLog, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		projects: projects,
		users:    users,
		activity: activity,
		logger:   logger,
	}
}

// CheckMembership is the authorization gate in front of every board
// operation. A missing membership row is a terminal decision, not an error
// to retry.
func (uc *UseCase) CheckMembership(ctx context.Context, userID, projectID string) (*domain.Member, error) {
	return uc.projects.GetMember(ctx, projectID, userID)
}

// CheckOwnership additionally requires the owner role. Only member
// invitation needs it.
func (uc *UseCase) CheckOwnership(ctx context.Context, userID, projectID string) (*domain.Member, error) {
	member, err := uc.projects.GetMember(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}
	if !member.IsOwner() {
		return nil, domain.ErrNotOwner
	}
	return member, nil
}

// CreateProject creates the project and its owner membership as one
// transactional unit.
func (uc *UseCase) CreateProject(ctx context.Context, ownerID, name string) (*domain.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "project name is required")
	}

	created, err := uc.projects.CreateWithOwner(ctx, &domain.Project{
		Name:    name,
		OwnerID: ownerID,
	})
	if err != nil {
		return nil, err
	}

	uc.record(ctx, created.ID, ownerID, domain.ActionProjectCreated, name)
	return created, nil
}

// ListProjects returns the projects the user is a member of.
func (uc *UseCase) ListProjects(ctx context.Context, userID string) ([]domain.Project, error) {
	return uc.projects.ListByUser(ctx, userID)
}

// ListMembers returns the member roster of a project.
func (uc *UseCase) ListMembers(ctx context.Context, projectID string) ([]domain.Member, error) {
	return uc.projects.ListMembers(ctx, projectID)
}

// InviteMember adds the user with the given email as a project member.
// Only the owner may invite; an unknown email is not-found; an existing
// membership is a conflict.
func (uc *UseCase) InviteMember(ctx context.Context, projectID, inviterID, email string) error {
	if _, err := uc.CheckOwnership(ctx, inviterID, projectID); err != nil {
		return err
	}

	invitee, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	if err := uc.projects.AddMember(ctx, domain.Member{
		ProjectID: projectID,
		UserID:    invitee.ID,
		Role:      domain.RoleMember,
	}); err != nil {
		return err
	}

	uc.record(ctx, projectID, inviterID, domain.ActionMemberInvited, invitee.Email)
	return nil
}

// ActivityFeed returns recent project activity, newest first.
func (uc *UseCase) ActivityFeed(ctx context.Context, projectID string, limit int) ([]domain.Activity, error) {
	if uc.activity == nil {
		return nil, nil
	}
	return uc.activity.Recent(ctx, projectID, limit)
}

func (uc *UseCase) record(ctx context.Context, projectID, actorID, action, detail string) {
	if uc.activity == nil {
		return
	}
	uc.activity.Record(ctx, domain.Activity{
		ProjectID: projectID,
		ActorID:   actorID,
		Action:    action,
		Detail:    detail,
	})
}
