package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskboard/backend/domain"
	"github.com/taskboard/backend/repository"
)

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository returns a Postgres-backed implementation of TaskRepository.
func NewTaskRepository(pool *pgxpool.Pool) repository.TaskRepository {
	return &taskRepository{pool: pool}
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}
	if task.ID == "" {
		task.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO tasks (id, project_id, content, status, priority, due_date, assignee_id)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING created_at
	`

	if err := r.pool.QueryRow(ctx, query,
		task.ID,
		task.ProjectID,
		task.Content,
		task.Status,
		task.Priority,
		nullTime(task.DueDate),
		nullString(task.AssigneeID),
	).Scan(&task.CreatedAt); err != nil {
		return nil, err
	}

	return task, nil
}

func (r *taskRepository) ListBoard(ctx context.Context, projectID string) ([]repository.BoardRow, error) {
	const query = `
	SELECT t.id, t.project_id, t.content, t.status, t.priority, t.due_date, t.assignee_id, t.created_at,
	       COALESCE(u.name, ''),
	       COUNT(c.id)
	FROM tasks t
	LEFT JOIN users u ON u.id = t.assignee_id
	LEFT JOIN comments c ON c.task_id = t.id
	WHERE t.project_id = $1
	GROUP BY t.id, u.name
	ORDER BY t.created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var board []repository.BoardRow
	for rows.Next() {
		row, err := scanBoardRow(rows)
		if err != nil {
			return nil, err
		}
		board = append(board, *row)
	}
	return board, rows.Err()
}

func (r *taskRepository) GetScoped(ctx context.Context, taskID, projectID string) (*domain.Task, error) {
	const query = `
	SELECT id, project_id, content, status, priority, due_date, assignee_id, created_at
	FROM tasks
	WHERE id = $1 AND project_id = $2
	`
	row := r.pool.QueryRow(ctx, query, taskID, projectID)
	return scanTask(row)
}

func (r *taskRepository) UpdateDetails(ctx context.Context, task *domain.Task) error {
	if task == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE tasks
	SET content = $3,
		priority = $4,
		due_date = $5,
		assignee_id = $6
	WHERE id = $1 AND project_id = $2
	`
	tag, err := r.pool.Exec(ctx, query,
		task.ID,
		task.ProjectID,
		task.Content,
		task.Priority,
		nullTime(task.DueDate),
		nullString(task.AssigneeID),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *taskRepository) UpdateStatus(ctx context.Context, taskID, projectID, status string) error {
	const query = `
	UPDATE tasks
	SET status = $3
	WHERE id = $1 AND project_id = $2
	`
	tag, err := r.pool.Exec(ctx, query, taskID, projectID, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *taskRepository) Delete(ctx context.Context, taskID, projectID string) error {
	// Subtasks and comments go with the task via FK cascade.
	const query = `DELETE FROM tasks WHERE id = $1 AND project_id = $2`
	tag, err := r.pool.Exec(ctx, query, taskID, projectID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func scanTask(row pgx.Row) (*domain.Task, error) {
	var task domain.Task
	var assignee *string

	if err := row.Scan(
		&task.ID,
		&task.ProjectID,
		&task.Content,
		&task.Status,
		&task.Priority,
		&task.DueDate,
		&assignee,
		&task.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}

	if assignee != nil {
		task.AssigneeID = *assignee
	}
	return &task, nil
}

func scanBoardRow(row pgx.Row) (*repository.BoardRow, error) {
	var out repository.BoardRow
	var assignee *string

	if err := row.Scan(
		&out.Task.ID,
		&out.Task.ProjectID,
		&out.Task.Content,
		&out.Task.Status,
		&out.Task.Priority,
		&out.Task.DueDate,
		&assignee,
		&out.Task.CreatedAt,
		&out.AssigneeName,
		&out.CommentCount,
	); err != nil {
		return nil, err
	}

	if assignee != nil {
		out.Task.AssigneeID = *assignee
	}
	return &out, nil
}
