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

type projectRepository struct {
	pool *pgxpool.Pool
}

// NewProjectRepository returns a Postgres-backed implementation of ProjectRepository.
func NewProjectRepository(pool *pgxpool.Pool) repository.ProjectRepository {
	return &projectRepository{pool: pool}
}

func (r *projectRepository) CreateWithOwner(ctx context.Context, project *domain.Project) (*domain.Project, error) {
	if project == nil {
		return nil, domain.ErrInvalidPayload
	}
	if project.ID == "" {
		project.ID = uuid.NewString()
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const insertProject = `
	INSERT INTO projects (id, name, owner_id)
	VALUES ($1, $2, $3)
	RETURNING created_at
	`
	if err := tx.QueryRow(ctx, insertProject,
		project.ID,
		project.Name,
		project.OwnerID,
	).Scan(&project.CreatedAt); err != nil {
		return nil, err
	}

	const insertOwner = `
	INSERT INTO project_members (project_id, user_id, role)
	VALUES ($1, $2, $3)
	`
	if _, err := tx.Exec(ctx, insertOwner, project.ID, project.OwnerID, domain.RoleOwner); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return project, nil
}

func (r *projectRepository) ListByUser(ctx context.Context, userID string) ([]domain.Project, error) {
	const query = `
	SELECT p.id, p.name, p.owner_id, p.created_at
	FROM projects p
	JOIN project_members m ON m.project_id = p.id
	WHERE m.user_id = $1
	ORDER BY p.created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []domain.Project
	for rows.Next() {
		var p domain.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.OwnerID, &p.CreatedAt); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (r *projectRepository) GetMember(ctx context.Context, projectID, userID string) (*domain.Member, error) {
	const query = `
	SELECT project_id, user_id, role
	FROM project_members
	WHERE project_id = $1 AND user_id = $2
	`
	var m domain.Member
	if err := r.pool.QueryRow(ctx, query, projectID, userID).Scan(&m.ProjectID, &m.UserID, &m.Role); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotMember
		}
		return nil, err
	}
	return &m, nil
}

func (r *projectRepository) ListMembers(ctx context.Context, projectID string) ([]domain.Member, error) {
	const query = `
	SELECT m.project_id, m.user_id, m.role, u.name, u.email
	FROM project_members m
	JOIN users u ON u.id = m.user_id
	WHERE m.project_id = $1
	ORDER BY m.role, u.name
	`
	rows, err := r.pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []domain.Member
	for rows.Next() {
		var m domain.Member
		if err := rows.Scan(&m.ProjectID, &m.UserID, &m.Role, &m.Name, &m.Email); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *projectRepository) AddMember(ctx context.Context, member domain.Member) error {
	const query = `
	INSERT INTO project_members (project_id, user_id, role)
	VALUES ($1, $2, $3)
	`
	if _, err := r.pool.Exec(ctx, query, member.ProjectID, member.UserID, member.Role); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyMember
		}
		return err
	}
	return nil
}
