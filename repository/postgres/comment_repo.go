package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskboard/backend/domain"
	"github.com/taskboard/backend/repository"
)

type commentRepository struct {
	pool *pgxpool.Pool
}

// NewCommentRepository returns a Postgres-backed implementation of CommentRepository.
func NewCommentRepository(pool *pgxpool.Pool) repository.CommentRepository {
	return &commentRepository{pool: pool}
}

func (r *commentRepository) Create(ctx context.Context, comment *domain.Comment) (*domain.Comment, error) {
	if comment == nil {
		return nil, domain.ErrInvalidPayload
	}
	if comment.ID == "" {
		comment.ID = uuid.NewString()
	}

	// The author name comes back with the insert so clients can render the
	// comment without a second round trip.
	const query = `
	WITH inserted AS (
		INSERT INTO comments (id, task_id, user_id, content)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, user_id
	)
	SELECT i.created_at, u.name
	FROM inserted i
	JOIN users u ON u.id = i.user_id
	`
	if err := r.pool.QueryRow(ctx, query,
		comment.ID,
		comment.TaskID,
		comment.UserID,
		comment.Content,
	).Scan(&comment.CreatedAt, &comment.AuthorName); err != nil {
		return nil, err
	}

	return comment, nil
}

func (r *commentRepository) ListByTask(ctx context.Context, taskID, projectID string) ([]domain.Comment, error) {
	const query = `
	SELECT c.id, c.task_id, c.user_id, c.content, c.created_at, u.name
	FROM comments c
	JOIN tasks t ON t.id = c.task_id AND t.project_id = $2
	JOIN users u ON u.id = c.user_id
	WHERE c.task_id = $1
	ORDER BY c.created_at ASC
	`
	rows, err := r.pool.Query(ctx, query, taskID, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []domain.Comment
	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(&c.ID, &c.TaskID, &c.UserID, &c.Content, &c.CreatedAt, &c.AuthorName); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}
