package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskboard/backend/domain"
	"github.com/taskboard/backend/repository"
)

type subtaskRepository struct {
	pool *pgxpool.Pool
}

// NewSubtaskRepository returns a Postgres-backed implementation of SubtaskRepository.
func NewSubtaskRepository(pool *pgxpool.Pool) repository.SubtaskRepository {
	return &subtaskRepository{pool: pool}
}

func (r *subtaskRepository) Create(ctx context.Context, subtask *domain.Subtask) (*domain.Subtask, error) {
	if subtask == nil {
		return nil, domain.ErrInvalidPayload
	}
	if subtask.ID == "" {
		subtask.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO subtasks (id, task_id, content, is_complete)
	VALUES ($1, $2, $3, $4)
	`
	if _, err := r.pool.Exec(ctx, query,
		subtask.ID,
		subtask.TaskID,
		subtask.Content,
		subtask.IsComplete,
	); err != nil {
		return nil, err
	}
	return subtask, nil
}

func (r *subtaskRepository) ListByTaskIDs(ctx context.Context, taskIDs []string) ([]domain.Subtask, error) {
	if len(taskIDs) == 0 {
		return nil, nil
	}

	// Parameterized list binding; the id set is never interpolated.
	const query = `
	SELECT id, task_id, content, is_complete
	FROM subtasks
	WHERE task_id = ANY($1)
	ORDER BY id
	`
	rows, err := r.pool.Query(ctx, query, taskIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subtasks []domain.Subtask
	for rows.Next() {
		var s domain.Subtask
		if err := rows.Scan(&s.ID, &s.TaskID, &s.Content, &s.IsComplete); err != nil {
			return nil, err
		}
		subtasks = append(subtasks, s)
	}
	return subtasks, rows.Err()
}

func (r *subtaskRepository) SetComplete(ctx context.Context, subtaskID, projectID string, isComplete bool) error {
	// Scoping joins through the parent task; subtasks carry no project column.
	const query = `
	UPDATE subtasks s
	SET is_complete = $3
	FROM tasks t
	WHERE s.id = $1 AND s.task_id = t.id AND t.project_id = $2
	`
	tag, err := r.pool.Exec(ctx, query, subtaskID, projectID, isComplete)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSubtaskNotFound
	}
	return nil
}
