package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/crewlog/crewlog-engine/pkg/apperrors"
	"github.com/crewlog/crewlog-engine/pkg/models"
)

// ProjectRepository persists projects.
type ProjectRepository interface {
	Create(ctx context.Context, p *models.Project) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error)
	Update(ctx context.Context, p *models.Project) error
	Touch(ctx context.Context, id uuid.UUID, now time.Time) error
	List(ctx context.Context) ([]models.Project, error)
	ListByStatus(ctx context.Context, status models.ProjectStatus) ([]models.Project, error)
}

type projectRepository struct {
	db *pgxpool.Pool
}

// NewProjectRepository creates a ProjectRepository backed by PostgreSQL.
func NewProjectRepository(db *pgxpool.Pool) ProjectRepository {
	return &projectRepository{db: db}
}

const projectColumns = `id, name, type, status, priority, notes, last_active_at, created_at, updated_at`

func (r *projectRepository) Create(ctx context.Context, p *models.Project) error {
	_, err := r.db.Exec(ctx, `
		insert into projects (`+projectColumns+`)
		values ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		p.ID, p.Name, p.Type, p.Status, p.Priority, p.Notes,
		p.LastActiveAt, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

func (r *projectRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	row := r.db.QueryRow(ctx, `select `+projectColumns+` from projects where id = $1`, id)
	p, err := scanProject(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}
	return p, nil
}

func (r *projectRepository) Update(ctx context.Context, p *models.Project) error {
	tag, err := r.db.Exec(ctx, `
		update projects
		set name = $2, type = $3, status = $4, priority = $5, notes = $6,
		    last_active_at = $7, updated_at = $8
		where id = $1`,
		p.ID, p.Name, p.Type, p.Status, p.Priority, p.Notes,
		p.LastActiveAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Touch bumps the project's last-active timestamp. Called when an entry
// or commitment is attached to the project.
func (r *projectRepository) Touch(ctx context.Context, id uuid.UUID, now time.Time) error {
	tag, err := r.db.Exec(ctx, `
		update projects set last_active_at = $2, updated_at = $2 where id = $1`,
		id, now,
	)
	if err != nil {
		return fmt.Errorf("touch project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *projectRepository) List(ctx context.Context) ([]models.Project, error) {
	return r.listQuery(ctx, `
		select `+projectColumns+`
		from projects
		order by last_active_at desc`)
}

func (r *projectRepository) ListByStatus(ctx context.Context, status models.ProjectStatus) ([]models.Project, error) {
	return r.listQuery(ctx, `
		select `+projectColumns+`
		from projects
		where status = $1
		order by last_active_at desc`,
		status)
}

func (r *projectRepository) listQuery(ctx context.Context, query string, args ...any) ([]models.Project, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query projects: %w", err)
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, *p)
	}
	return projects, rows.Err()
}

func scanProject(row pgx.Row) (*models.Project, error) {
	var p models.Project
	err := row.Scan(
		&p.ID, &p.Name, &p.Type, &p.Status, &p.Priority, &p.Notes,
		&p.LastActiveAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

var _ ProjectRepository = (*projectRepository)(nil)
