package board

import (
	"context"

	"go.uber.org/zap"

	"github.com/taskboard/backend/domain"
	"github.com/taskboard/backend/repository"
)

type UseCase struct {
	tasks    repository.TaskRepository
	subtasks repository.SubtaskRepository
	logger   *zap.Logger
}

func New(tasks repository.TaskRepository, subtasks repository.SubtaskRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:    tasks,
		subtasks: subtasks,
		logger:   logger,
	}
}

// GetBoard assembles the three-bucket view of a project's tasks: one query
// for the tasks (with assignee name and comment count), one batched query
// for all their subtasks, grouped by status with the query order preserved.
func (uc *UseCase) GetBoard(ctx context.Context, projectID string) (*domain.Board, error) {
	board := &domain.Board{
		Todo:       []domain.TaskView{},
		InProgress: []domain.TaskView{},
		Done:       []domain.TaskView{},
	}

	rows, err := uc.tasks.ListBoard(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return board, nil
	}

	views := make(map[string]*domain.TaskView, len(rows))
	order := make([]string, 0, len(rows))
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		view := domain.NewTaskView(row.Task, row.AssigneeName, row.CommentCount)
		views[row.Task.ID] = &view
		order = append(order, row.Task.ID)
		ids = append(ids, row.Task.ID)
	}

	subtasks, err := uc.subtasks.ListByTaskIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, st := range subtasks {
		parent, ok := views[st.TaskID]
		if !ok {
			// Stale reference; the row still exists but its parent is gone
			// from this project's fetch.
			uc.logger.Warn("dropping orphaned subtask",
				zap.String("subtask_id", st.ID),
				zap.String("task_id", st.TaskID))
			continue
		}
		parent.Subtasks = append(parent.Subtasks, st)
	}

	for _, id := range order {
		view := views[id]
		switch view.Status {
		case domain.StatusTodo:
			board.Todo = append(board.Todo, *view)
		case domain.StatusInProgress:
			board.InProgress = append(board.InProgress, *view)
		case domain.StatusDone:
			board.Done = append(board.Done, *view)
		default:
			uc.logger.Warn("dropping task with unknown status",
				zap.String("task_id", id),
				zap.String("status", view.Status))
		}
	}

	return board, nil
}
