// Package repositories provides PostgreSQL persistence for the journal
// domain. Each repository pairs an interface with a pgx-backed
// implementation; services depend on the interfaces.
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

// EntryRepository persists journal entries. Deletes are soft; deleted
// entries stay in the table with deleted_at set and are excluded from
// every read path.
type EntryRepository interface {
	Create(ctx context.Context, entry *models.Entry) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Entry, error)
	Update(ctx context.Context, entry *models.Entry) error
	SoftDelete(ctx context.Context, id uuid.UUID, now time.Time) error
	ListRecent(ctx context.Context, limit int) ([]models.Entry, error)
	ListForProject(ctx context.Context, projectID uuid.UUID, limit int) ([]models.Entry, error)
	ListForPerson(ctx context.Context, personID uuid.UUID, limit int) ([]models.Entry, error)
	ListDecisions(ctx context.Context, limit int) ([]models.Entry, error)
	ListDecisionsDueForReview(ctx context.Context, now time.Time) ([]models.Entry, error)
}

type entryRepository struct {
	db *pgxpool.Pool
}

// NewEntryRepository creates an EntryRepository backed by PostgreSQL.
func NewEntryRepository(db *pgxpool.Pool) EntryRepository {
	return &entryRepository{db: db}
}

const entryColumns = `e.id, e.kind, e.title, e.content, e.occurred_at, e.decision,
	e.project_id, e.created_at, e.updated_at, e.deleted_at,
	coalesce(array_agg(ep.person_id) filter (where ep.person_id is not null), '{}') as person_ids`

const entryGroupBy = `group by e.id`

func (r *entryRepository) Create(ctx context.Context, entry *models.Entry) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		insert into journal_entries (id, kind, title, content, occurred_at, decision, project_id, created_at, updated_at)
		values ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		entry.ID, entry.Kind, entry.Title, entry.Content, entry.OccurredAt,
		entry.Decision, entry.ProjectID, entry.CreatedAt, entry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert entry: %w", err)
	}

	for _, personID := range entry.PersonIDs {
		_, err = tx.Exec(ctx, `
			insert into entry_people (entry_id, person_id) values ($1, $2)
			on conflict do nothing`,
			entry.ID, personID,
		)
		if err != nil {
			return fmt.Errorf("link entry to person: %w", err)
		}
	}

	return tx.Commit(ctx)
}

func (r *entryRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Entry, error) {
	row := r.db.QueryRow(ctx, `
		select `+entryColumns+`
		from journal_entries e
		left join entry_people ep on ep.entry_id = e.id
		where e.id = $1
		`+entryGroupBy,
		id,
	)

	entry, err := scanEntry(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get entry: %w", err)
	}
	if entry.IsDeleted() {
		return nil, apperrors.ErrDeleted
	}
	return entry, nil
}

func (r *entryRepository) Update(ctx context.Context, entry *models.Entry) error {
	tag, err := r.db.Exec(ctx, `
		update journal_entries
		set kind = $2, title = $3, content = $4, occurred_at = $5,
		    decision = $6, project_id = $7, updated_at = $8
		where id = $1 and deleted_at is null`,
		entry.ID, entry.Kind, entry.Title, entry.Content, entry.OccurredAt,
		entry.Decision, entry.ProjectID, entry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *entryRepository) SoftDelete(ctx context.Context, id uuid.UUID, now time.Time) error {
	tag, err := r.db.Exec(ctx, `
		update journal_entries
		set deleted_at = $2, updated_at = $2
		where id = $1 and deleted_at is null`,
		id, now,
	)
	if err != nil {
		return fmt.Errorf("soft delete entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *entryRepository) ListRecent(ctx context.Context, limit int) ([]models.Entry, error) {
	return r.list(ctx, `
		select `+entryColumns+`
		from journal_entries e
		left join entry_people ep on ep.entry_id = e.id
		where e.deleted_at is null
		`+entryGroupBy+`
		order by e.occurred_at desc
		limit $1`,
		limit,
	)
}

func (r *entryRepository) ListForProject(ctx context.Context, projectID uuid.UUID, limit int) ([]models.Entry, error) {
	return r.list(ctx, `
		select `+entryColumns+`
		from journal_entries e
		left join entry_people ep on ep.entry_id = e.id
		where e.deleted_at is null and e.project_id = $1
		`+entryGroupBy+`
		order by e.occurred_at desc
		limit $2`,
		projectID, limit,
	)
}

func (r *entryRepository) ListForPerson(ctx context.Context, personID uuid.UUID, limit int) ([]models.Entry, error) {
	return r.list(ctx, `
		select `+entryColumns+`
		from journal_entries e
		left join entry_people ep on ep.entry_id = e.id
		where e.deleted_at is null
		  and e.id in (select entry_id from entry_people where person_id = $1)
		`+entryGroupBy+`
		order by e.occurred_at desc
		limit $2`,
		personID, limit,
	)
}

func (r *entryRepository) ListDecisions(ctx context.Context, limit int) ([]models.Entry, error) {
	return r.list(ctx, `
		select `+entryColumns+`
		from journal_entries e
		left join entry_people ep on ep.entry_id = e.id
		where e.deleted_at is null and e.kind = 'decision'
		`+entryGroupBy+`
		order by e.occurred_at desc
		limit $1`,
		limit,
	)
}

func (r *entryRepository) ListDecisionsDueForReview(ctx context.Context, now time.Time) ([]models.Entry, error) {
	return r.list(ctx, `
		select `+entryColumns+`
		from journal_entries e
		left join entry_people ep on ep.entry_id = e.id
		where e.deleted_at is null
		  and e.kind = 'decision'
		  and (e.decision->>'review_at') is not null
		  and (e.decision->>'review_at')::timestamptz <= $1
		  and e.decision->>'outcome' = 'pending'
		`+entryGroupBy+`
		order by (e.decision->>'review_at')::timestamptz asc`,
		now,
	)
}

func (r *entryRepository) list(ctx context.Context, query string, args ...any) ([]models.Entry, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	var entries []models.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, *entry)
	}
	return entries, rows.Err()
}

func scanEntry(row pgx.Row) (*models.Entry, error) {
	var e models.Entry
	err := row.Scan(
		&e.ID, &e.Kind, &e.Title, &e.Content, &e.OccurredAt, &e.Decision,
		&e.ProjectID, &e.CreatedAt, &e.UpdatedAt, &e.DeletedAt, &e.PersonIDs,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

var _ EntryRepository = (*entryRepository)(nil)
