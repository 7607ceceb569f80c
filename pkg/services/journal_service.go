package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/crewlog/crewlog-engine/pkg/apperrors"
	"github.com/crewlog/crewlog-engine/pkg/models"
	"github.com/crewlog/crewlog-engine/pkg/repositories"
)

// JournalService owns the write paths of the journal: entries,
// commitments, projects, people, and saved reflections. It enforces the
// domain invariants the repositories do not.
type JournalService interface {
	CreateEntry(ctx context.Context, entry *models.Entry) error
	GetEntry(ctx context.Context, id uuid.UUID) (*models.Entry, error)
	UpdateEntry(ctx context.Context, entry *models.Entry) error
	DeleteEntry(ctx context.Context, id uuid.UUID) error
	ListRecentEntries(ctx context.Context, limit int) ([]models.Entry, error)
	ListProjectEntries(ctx context.Context, projectID uuid.UUID, limit int) ([]models.Entry, error)
	ListPersonEntries(ctx context.Context, personID uuid.UUID, limit int) ([]models.Entry, error)
	ListDecisionsDueForReview(ctx context.Context) ([]models.Entry, error)

	CreateCommitment(ctx context.Context, c *models.Commitment) error
	GetCommitment(ctx context.Context, id uuid.UUID) (*models.Commitment, error)
	TransitionCommitment(ctx context.Context, id uuid.UUID, to models.CommitmentStatus) (*models.Commitment, error)
	ListOpenCommitments(ctx context.Context) ([]models.Commitment, error)

	CreateProject(ctx context.Context, p *models.Project) error
	GetProject(ctx context.Context, id uuid.UUID) (*models.Project, error)
	UpdateProject(ctx context.Context, p *models.Project) error
	ListProjects(ctx context.Context) ([]models.Project, error)

	CreatePerson(ctx context.Context, p *models.Person) error
	GetPerson(ctx context.Context, id uuid.UUID) (*models.Person, error)
	UpdatePerson(ctx context.Context, p *models.Person) error
	ListPeople(ctx context.Context) ([]models.Person, error)
	PersonMetrics(ctx context.Context, personID uuid.UUID) (*models.PersonMetrics, error)

	SaveReflection(ctx context.Context, ref *models.Reflection) error
	ListReflections(ctx context.Context, limit int) ([]models.Reflection, error)
}

type journalService struct {
	entries     repositories.EntryRepository
	commitments repositories.CommitmentRepository
	projects    repositories.ProjectRepository
	people      repositories.PersonRepository
	reflections repositories.ReflectionRepository
	health      HealthPolicy
	logger      *zap.Logger
	now         func() time.Time
}

// NewJournalService creates a JournalService.
func NewJournalService(
	entries repositories.EntryRepository,
	commitments repositories.CommitmentRepository,
	projects repositories.ProjectRepository,
	people repositories.PersonRepository,
	reflections repositories.ReflectionRepository,
	logger *zap.Logger,
) JournalService {
	return &journalService{
		entries:     entries,
		commitments: commitments,
		projects:    projects,
		people:      people,
		reflections: reflections,
		health:      DefaultHealthPolicy(),
		logger:      logger.Named("journal_service"),
		now:         time.Now,
	}
}

// CreateEntry validates and stores an entry, then bumps the activity
// timestamps of its project and people.
func (s *journalService) CreateEntry(ctx context.Context, entry *models.Entry) error {
	if !models.ValidEntryKind(entry.Kind) {
		return fmt.Errorf("%w: unknown entry kind %q", apperrors.ErrConflict, entry.Kind)
	}
	if entry.Kind != models.EntryKindDecision && entry.Decision != nil {
		return fmt.Errorf("%w: decision metadata on a %s entry", apperrors.ErrConflict, entry.Kind)
	}

	now := s.now()
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.OccurredAt.IsZero() {
		entry.OccurredAt = now
	}
	entry.CreatedAt = now
	entry.UpdatedAt = now

	if err := s.entries.Create(ctx, entry); err != nil {
		return err
	}

	s.touchAnchors(ctx, entry)

	s.logger.Info("entry created",
		zap.String("entry_id", entry.ID.String()),
		zap.String("kind", string(entry.Kind)))
	return nil
}

// touchAnchors bumps project last-active and person last-interaction.
// Failures are logged, not returned; the entry itself is already saved.
func (s *journalService) touchAnchors(ctx context.Context, entry *models.Entry) {
	if entry.ProjectID != nil {
		if err := s.projects.Touch(ctx, *entry.ProjectID, entry.OccurredAt); err != nil {
			s.logger.Warn("failed to touch project",
				zap.String("project_id", entry.ProjectID.String()), zap.Error(err))
		}
	}
	for _, personID := range entry.PersonIDs {
		if err := s.people.TouchInteraction(ctx, personID, entry.OccurredAt); err != nil {
			s.logger.Warn("failed to touch person",
				zap.String("person_id", personID.String()), zap.Error(err))
		}
	}
}

func (s *journalService) GetEntry(ctx context.Context, id uuid.UUID) (*models.Entry, error) {
	return s.entries.GetByID(ctx, id)
}

func (s *journalService) UpdateEntry(ctx context.Context, entry *models.Entry) error {
	if !models.ValidEntryKind(entry.Kind) {
		return fmt.Errorf("%w: unknown entry kind %q", apperrors.ErrConflict, entry.Kind)
	}
	if entry.Kind != models.EntryKindDecision && entry.Decision != nil {
		return fmt.Errorf("%w: decision metadata on a %s entry", apperrors.ErrConflict, entry.Kind)
	}
	entry.UpdatedAt = s.now()
	return s.entries.Update(ctx, entry)
}

// DeleteEntry soft-deletes; the row stays for audit and linked
// commitments keep their source reference.
func (s *journalService) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	return s.entries.SoftDelete(ctx, id, s.now())
}

func (s *journalService) ListRecentEntries(ctx context.Context, limit int) ([]models.Entry, error) {
	return s.entries.ListRecent(ctx, normalizeLimit(limit))
}

func (s *journalService) ListProjectEntries(ctx context.Context, projectID uuid.UUID, limit int) ([]models.Entry, error) {
	return s.entries.ListForProject(ctx, projectID, normalizeLimit(limit))
}

func (s *journalService) ListPersonEntries(ctx context.Context, personID uuid.UUID, limit int) ([]models.Entry, error) {
	return s.entries.ListForPerson(ctx, personID, normalizeLimit(limit))
}

// ListDecisionsDueForReview returns pending decisions whose review date
// has arrived, oldest first.
func (s *journalService) ListDecisionsDueForReview(ctx context.Context) ([]models.Entry, error) {
	return s.entries.ListDecisionsDueForReview(ctx, s.now())
}

const defaultListLimit = 50

func normalizeLimit(limit int) int {
	if limit <= 0 || limit > 200 {
		return defaultListLimit
	}
	return limit
}

// CreateCommitment stores a commitment. Every commitment must be
// anchored to a project or a person; free-floating commitments are not
// allowed.
func (s *journalService) CreateCommitment(ctx context.Context, c *models.Commitment) error {
	if !c.HasAnchor() {
		return apperrors.ErrMissingAnchor
	}

	now := s.now()
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Status == "" {
		c.Status = models.CommitmentOpen
	}
	if !models.ValidCommitmentStatus(c.Status) {
		return fmt.Errorf("%w: unknown commitment status %q", apperrors.ErrConflict, c.Status)
	}
	if c.Direction != models.DirectionWaitingFor {
		c.Direction = models.DirectionIOwe
	}
	c.CreatedAt = now
	c.UpdatedAt = now

	if err := s.commitments.Create(ctx, c); err != nil {
		return err
	}

	if c.ProjectID != nil {
		if err := s.projects.Touch(ctx, *c.ProjectID, now); err != nil {
			s.logger.Warn("failed to touch project",
				zap.String("project_id", c.ProjectID.String()), zap.Error(err))
		}
	}

	s.logger.Info("commitment created",
		zap.String("commitment_id", c.ID.String()),
		zap.String("direction", string(c.Direction)))
	return nil
}

func (s *journalService) GetCommitment(ctx context.Context, id uuid.UUID) (*models.Commitment, error) {
	return s.commitments.GetByID(ctx, id)
}

// TransitionCommitment moves a commitment through its lifecycle.
// Reopening is always allowed and clears completion; done and dropped
// are reachable only from open or blocked; blocked only from open.
func (s *journalService) TransitionCommitment(ctx context.Context, id uuid.UUID, to models.CommitmentStatus) (*models.Commitment, error) {
	if !models.ValidCommitmentStatus(to) {
		return nil, fmt.Errorf("%w: unknown commitment status %q", apperrors.ErrConflict, to)
	}

	c, err := s.commitments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.Status == to {
		return c, nil
	}

	now := s.now()
	switch to {
	case models.CommitmentOpen:
		c.Reopen()
	case models.CommitmentDone:
		if c.Status != models.CommitmentOpen && c.Status != models.CommitmentBlocked {
			return nil, transitionErr(c.Status, to)
		}
		c.MarkDone(now)
	case models.CommitmentBlocked:
		if c.Status != models.CommitmentOpen {
			return nil, transitionErr(c.Status, to)
		}
		c.Status = models.CommitmentBlocked
	case models.CommitmentDropped:
		if c.Status != models.CommitmentOpen && c.Status != models.CommitmentBlocked {
			return nil, transitionErr(c.Status, to)
		}
		c.Status = models.CommitmentDropped
	}
	c.UpdatedAt = now

	if err := s.commitments.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func transitionErr(from, to models.CommitmentStatus) error {
	return fmt.Errorf("%w: %s -> %s", apperrors.ErrInvalidTransition, from, to)
}

func (s *journalService) ListOpenCommitments(ctx context.Context) ([]models.Commitment, error) {
	return s.commitments.ListOpen(ctx)
}

func (s *journalService) CreateProject(ctx context.Context, p *models.Project) error {
	now := s.now()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Status == "" {
		p.Status = models.ProjectActive
	}
	if !models.ValidProjectStatus(p.Status) {
		return fmt.Errorf("%w: unknown project status %q", apperrors.ErrConflict, p.Status)
	}
	p.LastActiveAt = now
	p.CreatedAt = now
	p.UpdatedAt = now
	return s.projects.Create(ctx, p)
}

func (s *journalService) GetProject(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	return s.projects.GetByID(ctx, id)
}

func (s *journalService) UpdateProject(ctx context.Context, p *models.Project) error {
	if !models.ValidProjectStatus(p.Status) {
		return fmt.Errorf("%w: unknown project status %q", apperrors.ErrConflict, p.Status)
	}
	p.UpdatedAt = s.now()
	return s.projects.Update(ctx, p)
}

func (s *journalService) ListProjects(ctx context.Context) ([]models.Project, error) {
	return s.projects.List(ctx)
}

func (s *journalService) CreatePerson(ctx context.Context, p *models.Person) error {
	now := s.now()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = now
	p.UpdatedAt = now
	return s.people.Create(ctx, p)
}

func (s *journalService) GetPerson(ctx context.Context, id uuid.UUID) (*models.Person, error) {
	return s.people.GetByID(ctx, id)
}

func (s *journalService) UpdatePerson(ctx context.Context, p *models.Person) error {
	p.UpdatedAt = s.now()
	return s.people.Update(ctx, p)
}

func (s *journalService) ListPeople(ctx context.Context) ([]models.Person, error) {
	return s.people.List(ctx)
}

// PersonMetrics derives relationship metrics from commitment counts and
// interaction recency. Nothing here is persisted or AI-generated.
func (s *journalService) PersonMetrics(ctx context.Context, personID uuid.UUID) (*models.PersonMetrics, error) {
	person, err := s.people.GetByID(ctx, personID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	counts, err := s.commitments.CountsForPerson(ctx, personID, now)
	if err != nil {
		return nil, err
	}

	daysSilent := DaysSince(person.LastInteractionAt, now)
	score := s.health.HealthScore(daysSilent, counts.Overdue, counts.Active)

	return &models.PersonMetrics{
		ActiveCommitments:    counts.Active,
		OverdueCommitments:   counts.Overdue,
		DaysSinceInteraction: daysSilent,
		Balance:              CommitmentBalance(counts.WaitingFor, counts.IOwe),
		HealthScore:          score,
		HealthStatus:         HealthStatusFor(score),
		Staleness:            StalenessBucketFor(daysSilent),
	}, nil
}

// SaveReflection validates scope anchors and stores the reflection.
func (s *journalService) SaveReflection(ctx context.Context, ref *models.Reflection) error {
	if !models.ValidReflectionScope(ref.Scope) {
		return fmt.Errorf("%w: unknown reflection scope %q", apperrors.ErrConflict, ref.Scope)
	}
	if ref.Scope == models.ReflectionProject && ref.ProjectID == nil {
		return fmt.Errorf("%w: project reflection needs a project", apperrors.ErrConflict)
	}
	if ref.Scope == models.ReflectionRelationship && ref.PersonID == nil {
		return fmt.Errorf("%w: relationship reflection needs a person", apperrors.ErrConflict)
	}

	if ref.ID == uuid.Nil {
		ref.ID = uuid.New()
	}
	ref.CreatedAt = s.now()
	return s.reflections.Create(ctx, ref)
}

func (s *journalService) ListReflections(ctx context.Context, limit int) ([]models.Reflection, error) {
	return s.reflections.ListRecent(ctx, normalizeLimit(limit))
}

var _ JournalService = (*journalService)(nil)
