package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/crewlog/crewlog-engine/pkg/apperrors"
	"github.com/crewlog/crewlog-engine/pkg/models"
)

// ReflectionRepository persists completed reflections. Answers and
// themes are stored as JSONB; reflections are immutable once saved.
type ReflectionRepository interface {
	Create(ctx context.Context, ref *models.Reflection) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Reflection, error)
	ListRecent(ctx context.Context, limit int) ([]models.Reflection, error)
	ListByScope(ctx context.Context, scope models.ReflectionScope, limit int) ([]models.Reflection, error)
}

type reflectionRepository struct {
	db *pgxpool.Pool
}

// NewReflectionRepository creates a ReflectionRepository backed by PostgreSQL.
func NewReflectionRepository(db *pgxpool.Pool) ReflectionRepository {
	return &reflectionRepository{db: db}
}

const reflectionColumns = `id, scope, period_start, period_end, project_id, person_id, mood, themes, answers, created_at`

func (r *reflectionRepository) Create(ctx context.Context, ref *models.Reflection) error {
	_, err := r.db.Exec(ctx, `
		insert into reflections (`+reflectionColumns+`)
		values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		ref.ID, ref.Scope, ref.PeriodStart, ref.PeriodEnd, ref.ProjectID,
		ref.PersonID, ref.Mood, ref.Themes, ref.Answers, ref.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert reflection: %w", err)
	}
	return nil
}

func (r *reflectionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Reflection, error) {
	row := r.db.QueryRow(ctx, `select `+reflectionColumns+` from reflections where id = $1`, id)
	ref, err := scanReflection(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get reflection: %w", err)
	}
	return ref, nil
}

func (r *reflectionRepository) ListRecent(ctx context.Context, limit int) ([]models.Reflection, error) {
	return r.list(ctx, `
		select `+reflectionColumns+`
		from reflections
		order by created_at desc
		limit $1`,
		limit)
}

func (r *reflectionRepository) ListByScope(ctx context.Context, scope models.ReflectionScope, limit int) ([]models.Reflection, error) {
	return r.list(ctx, `
		select `+reflectionColumns+`
		from reflections
		where scope = $1
		order by created_at desc
		limit $2`,
		scope, limit)
}

func (r *reflectionRepository) list(ctx context.Context, query string, args ...any) ([]models.Reflection, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query reflections: %w", err)
	}
	defer rows.Close()

	var reflections []models.Reflection
	for rows.Next() {
		ref, err := scanReflection(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reflection: %w", err)
		}
		reflections = append(reflections, *ref)
	}
	return reflections, rows.Err()
}

func scanReflection(row pgx.Row) (*models.Reflection, error) {
	var ref models.Reflection
	err := row.Scan(
		&ref.ID, &ref.Scope, &ref.PeriodStart, &ref.PeriodEnd, &ref.ProjectID,
		&ref.PersonID, &ref.Mood, &ref.Themes, &ref.Answers, &ref.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &ref, nil
}

var _ ReflectionRepository = (*reflectionRepository)(nil)
