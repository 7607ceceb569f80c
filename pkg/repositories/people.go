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

// PersonRepository persists people.
type PersonRepository interface {
	Create(ctx context.Context, p *models.Person) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Person, error)
	Update(ctx context.Context, p *models.Person) error
	TouchInteraction(ctx context.Context, id uuid.UUID, at time.Time) error
	List(ctx context.Context) ([]models.Person, error)
}

type personRepository struct {
	db *pgxpool.Pool
}

// NewPersonRepository creates a PersonRepository backed by PostgreSQL.
func NewPersonRepository(db *pgxpool.Pool) PersonRepository {
	return &personRepository{db: db}
}

const personColumns = `id, name, organization, role, relationship, notes, last_interaction_at, created_at, updated_at`

func (r *personRepository) Create(ctx context.Context, p *models.Person) error {
	_, err := r.db.Exec(ctx, `
		insert into people (`+personColumns+`)
		values ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		p.ID, p.Name, p.Organization, p.Role, p.Relationship, p.Notes,
		p.LastInteractionAt, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert person: %w", err)
	}
	return nil
}

func (r *personRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Person, error) {
	row := r.db.QueryRow(ctx, `select `+personColumns+` from people where id = $1`, id)
	p, err := scanPerson(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get person: %w", err)
	}
	return p, nil
}

func (r *personRepository) Update(ctx context.Context, p *models.Person) error {
	tag, err := r.db.Exec(ctx, `
		update people
		set name = $2, organization = $3, role = $4, relationship = $5,
		    notes = $6, last_interaction_at = $7, updated_at = $8
		where id = $1`,
		p.ID, p.Name, p.Organization, p.Role, p.Relationship,
		p.Notes, p.LastInteractionAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update person: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// TouchInteraction records that the person appeared in a new entry.
// The timestamp only moves forward.
func (r *personRepository) TouchInteraction(ctx context.Context, id uuid.UUID, at time.Time) error {
	tag, err := r.db.Exec(ctx, `
		update people
		set last_interaction_at = $2, updated_at = $2
		where id = $1 and (last_interaction_at is null or last_interaction_at < $2)`,
		id, at,
	)
	if err != nil {
		return fmt.Errorf("touch person interaction: %w", err)
	}
	// Zero rows is fine here; a newer interaction already exists.
	_ = tag
	return nil
}

func (r *personRepository) List(ctx context.Context) ([]models.Person, error) {
	rows, err := r.db.Query(ctx, `select `+personColumns+` from people order by name asc`)
	if err != nil {
		return nil, fmt.Errorf("query people: %w", err)
	}
	defer rows.Close()

	var people []models.Person
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, fmt.Errorf("scan person: %w", err)
		}
		people = append(people, *p)
	}
	return people, rows.Err()
}

func scanPerson(row pgx.Row) (*models.Person, error) {
	var p models.Person
	err := row.Scan(
		&p.ID, &p.Name, &p.Organization, &p.Role, &p.Relationship,
		&p.Notes, &p.LastInteractionAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

var _ PersonRepository = (*personRepository)(nil)
