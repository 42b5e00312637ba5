package task

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/taskboard/backend/domain"
	"github.com/taskboard/backend/repository"
	"github.com/taskboard/backend/usecase"
)

// UseCase holds the board mutators. Membership has already been checked by
// the guard before any of these run; every write here is still scoped by
// both the entity id and the project id so a foreign object id can never
// cross a tenant boundary.
type UseCase struct {
	tasks    repository.TaskRepository
	subtasks repository.SubtaskRepository
	comments repository.CommentRepository
	activity usecase.ActivityLog
	logger   *zap.Logger
}

func New(
	tasks repository.TaskRepository,
	subtasks repository.SubtaskRepository,
	comments repository.CommentRepository,
	activity usecase.ActivityLog,
	logger *zap.Logger,
) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:    tasks,
		subtasks: subtasks,
		comments: comments,
		activity: activity,
		logger:   logger,
	}
}

// AddTask creates a task in the todo bucket.
func (uc *UseCase) AddTask(ctx context.Context, actorID, projectID, content, priority string, dueDate *time.Time, assigneeID string) (*domain.Task, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "task content is required")
	}
	if priority == "" {
		priority = domain.PriorityMedium
	}

	created, err := uc.tasks.Create(ctx, &domain.Task{
		ProjectID:  projectID,
		Content:    content,
		Status:     domain.StatusTodo,
		Priority:   priority,
		DueDate:    dueDate,
		AssigneeID: assigneeID,
	})
	if err != nil {
		return nil, err
	}

	uc.record(ctx, projectID, actorID, domain.ActionTaskCreated, content)
	return created, nil
}

// UpdateTaskDetails rewrites a task's content, priority, due date and
// assignee. Absence is detected by the affected-row count, not a pre-read.
func (uc *UseCase) UpdateTaskDetails(ctx context.Context, actorID, projectID, taskID, content, priority string, dueDate *time.Time, assigneeID string) error {
	content = strings.TrimSpace(content)
	if content == "" || priority == "" {
		return domain.NewError(domain.ErrCodeInvalid, "content and priority are required")
	}

	if err := uc.tasks.UpdateDetails(ctx, &domain.Task{
		ID:         taskID,
		ProjectID:  projectID,
		Content:    content,
		Priority:   priority,
		DueDate:    dueDate,
		AssigneeID: assigneeID,
	}); err != nil {
		return err
	}

	uc.record(ctx, projectID, actorID, domain.ActionTaskUpdated, content)
	return nil
}

// UpdateTaskStatus moves a task between buckets.
func (uc *UseCase) UpdateTaskStatus(ctx context.Context, actorID, projectID, taskID, status string) error {
	if !domain.ValidStatus(status) {
		return domain.NewError(domain.ErrCodeInvalid, "status must be todo, inprogress or done")
	}

	if err := uc.tasks.UpdateStatus(ctx, taskID, projectID, status); err != nil {
		return err
	}

	uc.record(ctx, projectID, actorID, domain.ActionTaskMoved, status)
	return nil
}

// DeleteTask removes a task; its subtasks and comments cascade with it.
func (uc *UseCase) DeleteTask(ctx context.Context, actorID, projectID, taskID string) error {
	if err := uc.tasks.Delete(ctx, taskID, projectID); err != nil {
		return err
	}

	uc.record(ctx, projectID, actorID, domain.ActionTaskDeleted, taskID)
	return nil
}

// AddSubtask verifies the parent task belongs to the project before
// inserting; the subtask table itself has no project column to scope on.
func (uc *UseCase) AddSubtask(ctx context.Context, actorID, projectID, taskID, content string) (*domain.Subtask, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "subtask content is required")
	}

	if _, err := uc.tasks.GetScoped(ctx, taskID, projectID); err != nil {
		return nil, err
	}

	created, err := uc.subtasks.Create(ctx, &domain.Subtask{
		TaskID:  taskID,
		Content: content,
	})
	if err != nil {
		return nil, err
	}

	uc.record(ctx, projectID, actorID, domain.ActionSubtaskAdded, content)
	return created, nil
}

// UpdateSubtask toggles completion; scoping joins through the parent task
// at the row level.
func (uc *UseCase) UpdateSubtask(ctx context.Context, actorID, projectID, subtaskID string, isComplete bool) error {
	if err := uc.subtasks.SetComplete(ctx, subtaskID, projectID, isComplete); err != nil {
		return err
	}

	uc.record(ctx, projectID, actorID, domain.ActionSubtaskUpdated, subtaskID)
	return nil
}

// AddComment verifies the task's project scope, then inserts. The returned
// comment carries the author name so clients can render it immediately.
func (uc *UseCase) AddComment(ctx context.Context, authorID, projectID, taskID, content string) (*domain.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "comment content is required")
	}

	if _, err := uc.tasks.GetScoped(ctx, taskID, projectID); err != nil {
		return nil, err
	}

	created, err := uc.comments.Create(ctx, &domain.Comment{
		TaskID:  taskID,
		UserID:  authorID,
		Content: content,
	})
	if err != nil {
		return nil, err
	}

	uc.record(ctx, projectID, authorID, domain.ActionCommentAdded, content)
	return created, nil
}

// ListComments returns a task's comments scoped to the project.
func (uc *UseCase) ListComments(ctx context.Context, projectID, taskID string) ([]domain.Comment, error) {
	return uc.comments.ListByTask(ctx, taskID, projectID)
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
