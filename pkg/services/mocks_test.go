package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/crewlog/crewlog-engine/pkg/apperrors"
	"github.com/crewlog/crewlog-engine/pkg/models"
	"github.com/crewlog/crewlog-engine/pkg/repositories"
)

// Hand-rolled repository mocks. Each method delegates to its Func field
// when set and otherwise returns a zero value, counting calls.

type mockEntryRepo struct {
	CreateFunc        func(ctx context.Context, entry *models.Entry) error
	GetByIDFunc       func(ctx context.Context, id uuid.UUID) (*models.Entry, error)
	UpdateFunc        func(ctx context.Context, entry *models.Entry) error
	SoftDeleteFunc    func(ctx context.Context, id uuid.UUID, now time.Time) error
	ListRecentFunc    func(ctx context.Context, limit int) ([]models.Entry, error)
	ListDecisionsFunc func(ctx context.Context, limit int) ([]models.Entry, error)
	ListDueFunc       func(ctx context.Context, now time.Time) ([]models.Entry, error)

	CreateCalls     int
	SoftDeleteCalls int
}

func (m *mockEntryRepo) Create(ctx context.Context, entry *models.Entry) error {
	m.CreateCalls++
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, entry)
	}
	return nil
}

func (m *mockEntryRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Entry, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockEntryRepo) Update(ctx context.Context, entry *models.Entry) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, entry)
	}
	return nil
}

func (m *mockEntryRepo) SoftDelete(ctx context.Context, id uuid.UUID, now time.Time) error {
	m.SoftDeleteCalls++
	if m.SoftDeleteFunc != nil {
		return m.SoftDeleteFunc(ctx, id, now)
	}
	return nil
}

func (m *mockEntryRepo) ListRecent(ctx context.Context, limit int) ([]models.Entry, error) {
	if m.ListRecentFunc != nil {
		return m.ListRecentFunc(ctx, limit)
	}
	return nil, nil
}

func (m *mockEntryRepo) ListForProject(ctx context.Context, projectID uuid.UUID, limit int) ([]models.Entry, error) {
	return nil, nil
}

func (m *mockEntryRepo) ListForPerson(ctx context.Context, personID uuid.UUID, limit int) ([]models.Entry, error) {
	return nil, nil
}

func (m *mockEntryRepo) ListDecisions(ctx context.Context, limit int) ([]models.Entry, error) {
	if m.ListDecisionsFunc != nil {
		return m.ListDecisionsFunc(ctx, limit)
	}
	return nil, nil
}

func (m *mockEntryRepo) ListDecisionsDueForReview(ctx context.Context, now time.Time) ([]models.Entry, error) {
	if m.ListDueFunc != nil {
		return m.ListDueFunc(ctx, now)
	}
	return nil, nil
}

type mockCommitmentRepo struct {
	CreateFunc          func(ctx context.Context, c *models.Commitment) error
	GetByIDFunc         func(ctx context.Context, id uuid.UUID) (*models.Commitment, error)
	UpdateFunc          func(ctx context.Context, c *models.Commitment) error
	CountsForPersonFunc func(ctx context.Context, personID uuid.UUID, now time.Time) (*repositories.PersonCommitmentCounts, error)

	CreateCalls int
	UpdateCalls int
}

func (m *mockCommitmentRepo) Create(ctx context.Context, c *models.Commitment) error {
	m.CreateCalls++
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, c)
	}
	return nil
}

func (m *mockCommitmentRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Commitment, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockCommitmentRepo) Update(ctx context.Context, c *models.Commitment) error {
	m.UpdateCalls++
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, c)
	}
	return nil
}

func (m *mockCommitmentRepo) ListOpen(ctx context.Context) ([]models.Commitment, error) {
	return nil, nil
}

func (m *mockCommitmentRepo) ListForProject(ctx context.Context, projectID uuid.UUID) ([]models.Commitment, error) {
	return nil, nil
}

func (m *mockCommitmentRepo) ListOpenForPerson(ctx context.Context, personID uuid.UUID) ([]models.Commitment, error) {
	return nil, nil
}

func (m *mockCommitmentRepo) CountsForPerson(ctx context.Context, personID uuid.UUID, now time.Time) (*repositories.PersonCommitmentCounts, error) {
	if m.CountsForPersonFunc != nil {
		return m.CountsForPersonFunc(ctx, personID, now)
	}
	return &repositories.PersonCommitmentCounts{}, nil
}

type mockProjectRepo struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*models.Project, error)
	TouchFunc   func(ctx context.Context, id uuid.UUID, now time.Time) error

	TouchCalls int
}

func (m *mockProjectRepo) Create(ctx context.Context, p *models.Project) error { return nil }

func (m *mockProjectRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockProjectRepo) Update(ctx context.Context, p *models.Project) error { return nil }

func (m *mockProjectRepo) Touch(ctx context.Context, id uuid.UUID, now time.Time) error {
	m.TouchCalls++
	if m.TouchFunc != nil {
		return m.TouchFunc(ctx, id, now)
	}
	return nil
}

func (m *mockProjectRepo) List(ctx context.Context) ([]models.Project, error) { return nil, nil }

func (m *mockProjectRepo) ListByStatus(ctx context.Context, status models.ProjectStatus) ([]models.Project, error) {
	return nil, nil
}

type mockPersonRepo struct {
	GetByIDFunc          func(ctx context.Context, id uuid.UUID) (*models.Person, error)
	TouchInteractionFunc func(ctx context.Context, id uuid.UUID, at time.Time) error

	TouchInteractionCalls int
}

func (m *mockPersonRepo) Create(ctx context.Context, p *models.Person) error { return nil }

func (m *mockPersonRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Person, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockPersonRepo) Update(ctx context.Context, p *models.Person) error { return nil }

func (m *mockPersonRepo) TouchInteraction(ctx context.Context, id uuid.UUID, at time.Time) error {
	m.TouchInteractionCalls++
	if m.TouchInteractionFunc != nil {
		return m.TouchInteractionFunc(ctx, id, at)
	}
	return nil
}

func (m *mockPersonRepo) List(ctx context.Context) ([]models.Person, error) { return nil, nil }

type mockReflectionRepo struct {
	CreateFunc      func(ctx context.Context, ref *models.Reflection) error
	ListByScopeFunc func(ctx context.Context, scope models.ReflectionScope, limit int) ([]models.Reflection, error)

	CreateCalls int
}

func (m *mockReflectionRepo) Create(ctx context.Context, ref *models.Reflection) error {
	m.CreateCalls++
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, ref)
	}
	return nil
}

func (m *mockReflectionRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Reflection, error) {
	return nil, apperrors.ErrNotFound
}

func (m *mockReflectionRepo) ListRecent(ctx context.Context, limit int) ([]models.Reflection, error) {
	return nil, nil
}

func (m *mockReflectionRepo) ListByScope(ctx context.Context, scope models.ReflectionScope, limit int) ([]models.Reflection, error) {
	if m.ListByScopeFunc != nil {
		return m.ListByScopeFunc(ctx, scope, limit)
	}
	return nil, nil
}

// noopCache is an InsightCache that never hits.
type noopCache struct{}

func (noopCache) Get(ctx context.Context, key string) (string, bool) { return "", false }

func (noopCache) Set(ctx context.Context, key string, value string, ttl time.Duration) {}

func (noopCache) Invalidate(ctx context.Context, key string) {}

var (
	_ repositories.EntryRepository      = (*mockEntryRepo)(nil)
	_ repositories.CommitmentRepository = (*mockCommitmentRepo)(nil)
	_ repositories.ProjectRepository    = (*mockProjectRepo)(nil)
	_ repositories.PersonRepository     = (*mockPersonRepo)(nil)
	_ repositories.ReflectionRepository = (*mockReflectionRepo)(nil)
)
