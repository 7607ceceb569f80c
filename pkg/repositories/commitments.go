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

// PersonCommitmentCounts summarizes a person's commitment load for the
// relationship health computation.
type PersonCommitmentCounts struct {
	Active     int
	Overdue    int
	IOwe       int
	WaitingFor int
}

// CommitmentRepository persists commitments.
type CommitmentRepository interface {
	Create(ctx context.Context, c *models.Commitment) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Commitment, error)
	Update(ctx context.Context, c *models.Commitment) error
	ListOpen(ctx context.Context) ([]models.Commitment, error)
	ListForProject(ctx context.Context, projectID uuid.UUID) ([]models.Commitment, error)
	ListOpenForPerson(ctx context.Context, personID uuid.UUID) ([]models.Commitment, error)
	CountsForPerson(ctx context.Context, personID uuid.UUID, now time.Time) (*PersonCommitmentCounts, error)
}

type commitmentRepository struct {
	db *pgxpool.Pool
}

// NewCommitmentRepository creates a CommitmentRepository backed by PostgreSQL.
func NewCommitmentRepository(db *pgxpool.Pool) CommitmentRepository {
	return &commitmentRepository{db: db}
}

const commitmentColumns = `id, title, direction, status, importance, urgency, due_at,
	project_id, person_id, source_entry_id, completed_at, created_at, updated_at`

func (r *commitmentRepository) Create(ctx context.Context, c *models.Commitment) error {
	_, err := r.db.Exec(ctx, `
		insert into commitments (`+commitmentColumns+`)
		values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		c.ID, c.Title, c.Direction, c.Status, c.Importance, c.Urgency, c.DueAt,
		c.ProjectID, c.PersonID, c.SourceEntryID, c.CompletedAt, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert commitment: %w", err)
	}
	return nil
}

func (r *commitmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Commitment, error) {
	row := r.db.QueryRow(ctx, `select `+commitmentColumns+` from commitments where id = $1`, id)
	c, err := scanCommitment(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get commitment: %w", err)
	}
	return c, nil
}

func (r *commitmentRepository) Update(ctx context.Context, c *models.Commitment) error {
	tag, err := r.db.Exec(ctx, `
		update commitments
		set title = $2, direction = $3, status = $4, importance = $5, urgency = $6,
		    due_at = $7, project_id = $8, person_id = $9, completed_at = $10, updated_at = $11
		where id = $1`,
		c.ID, c.Title, c.Direction, c.Status, c.Importance, c.Urgency,
		c.DueAt, c.ProjectID, c.PersonID, c.CompletedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update commitment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *commitmentRepository) ListOpen(ctx context.Context) ([]models.Commitment, error) {
	return r.list(ctx, `
		select `+commitmentColumns+`
		from commitments
		where status in ('open', 'blocked')
		order by due_at asc nulls last, importance desc`)
}

func (r *commitmentRepository) ListForProject(ctx context.Context, projectID uuid.UUID) ([]models.Commitment, error) {
	return r.list(ctx, `
		select `+commitmentColumns+`
		from commitments
		where project_id = $1
		order by due_at asc nulls last, created_at desc`,
		projectID)
}

func (r *commitmentRepository) ListOpenForPerson(ctx context.Context, personID uuid.UUID) ([]models.Commitment, error) {
	return r.list(ctx, `
		select `+commitmentColumns+`
		from commitments
		where person_id = $1 and status in ('open', 'blocked')
		order by due_at asc nulls last, importance desc`,
		personID)
}

// CountsForPerson aggregates a person's commitments in one query.
// Active covers open and blocked; overdue is open past its due date;
// the direction counts cover active commitments only.
func (r *commitmentRepository) CountsForPerson(ctx context.Context, personID uuid.UUID, now time.Time) (*PersonCommitmentCounts, error) {
	var counts PersonCommitmentCounts
	err := r.db.QueryRow(ctx, `
		select
			count(*) filter (where status in ('open', 'blocked')),
			count(*) filter (where status = 'open' and due_at is not null and due_at < $2),
			count(*) filter (where status in ('open', 'blocked') and direction = 'i_owe'),
			count(*) filter (where status in ('open', 'blocked') and direction = 'waiting_for')
		from commitments
		where person_id = $1`,
		personID, now,
	).Scan(&counts.Active, &counts.Overdue, &counts.IOwe, &counts.WaitingFor)
	if err != nil {
		return nil, fmt.Errorf("count commitments for person: %w", err)
	}
	return &counts, nil
}

func (r *commitmentRepository) list(ctx context.Context, query string, args ...any) ([]models.Commitment, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query commitments: %w", err)
	}
	defer rows.Close()

	var commitments []models.Commitment
	for rows.Next() {
		c, err := scanCommitment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan commitment: %w", err)
		}
		commitments = append(commitments, *c)
	}
	return commitments, rows.Err()
}

func scanCommitment(row pgx.Row) (*models.Commitment, error) {
	var c models.Commitment
	err := row.Scan(
		&c.ID, &c.Title, &c.Direction, &c.Status, &c.Importance, &c.Urgency, &c.DueAt,
		&c.ProjectID, &c.PersonID, &c.SourceEntryID, &c.CompletedAt, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

var _ CommitmentRepository = (*commitmentRepository)(nil)
