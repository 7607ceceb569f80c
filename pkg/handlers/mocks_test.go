package handlers

import (
	"context"

	"github.com/google/uuid"

	"github.com/crewlog/crewlog-engine/pkg/apperrors"
	"github.com/crewlog/crewlog-engine/pkg/models"
	"github.com/crewlog/crewlog-engine/pkg/services"
)

// Hand-rolled service mocks. Each method delegates to its Func field
// when set and otherwise returns a zero value.

type mockJournalService struct {
	CreateEntryFunc          func(ctx context.Context, entry *models.Entry) error
	GetEntryFunc             func(ctx context.Context, id uuid.UUID) (*models.Entry, error)
	DeleteEntryFunc          func(ctx context.Context, id uuid.UUID) error
	CreateCommitmentFunc     func(ctx context.Context, c *models.Commitment) error
	TransitionCommitmentFunc func(ctx context.Context, id uuid.UUID, to models.CommitmentStatus) (*models.Commitment, error)
	PersonMetricsFunc        func(ctx context.Context, personID uuid.UUID) (*models.PersonMetrics, error)
	SaveReflectionFunc       func(ctx context.Context, ref *models.Reflection) error
	DecisionsDueFunc         func(ctx context.Context) ([]models.Entry, error)
}

func (m *mockJournalService) CreateEntry(ctx context.Context, entry *models.Entry) error {
	if m.CreateEntryFunc != nil {
		return m.CreateEntryFunc(ctx, entry)
	}
	return nil
}

func (m *mockJournalService) GetEntry(ctx context.Context, id uuid.UUID) (*models.Entry, error) {
	if m.GetEntryFunc != nil {
		return m.GetEntryFunc(ctx, id)
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockJournalService) UpdateEntry(ctx context.Context, entry *models.Entry) error {
	return nil
}

func (m *mockJournalService) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	if m.DeleteEntryFunc != nil {
		return m.DeleteEntryFunc(ctx, id)
	}
	return nil
}

func (m *mockJournalService) ListRecentEntries(ctx context.Context, limit int) ([]models.Entry, error) {
	return nil, nil
}

func (m *mockJournalService) ListProjectEntries(ctx context.Context, projectID uuid.UUID, limit int) ([]models.Entry, error) {
	return nil, nil
}

func (m *mockJournalService) ListPersonEntries(ctx context.Context, personID uuid.UUID, limit int) ([]models.Entry, error) {
	return nil, nil
}

func (m *mockJournalService) ListDecisionsDueForReview(ctx context.Context) ([]models.Entry, error) {
	if m.DecisionsDueFunc != nil {
		return m.DecisionsDueFunc(ctx)
	}
	return nil, nil
}

func (m *mockJournalService) CreateCommitment(ctx context.Context, c *models.Commitment) error {
	if m.CreateCommitmentFunc != nil {
		return m.CreateCommitmentFunc(ctx, c)
	}
	return nil
}

func (m *mockJournalService) GetCommitment(ctx context.Context, id uuid.UUID) (*models.Commitment, error) {
	return nil, apperrors.ErrNotFound
}

func (m *mockJournalService) TransitionCommitment(ctx context.Context, id uuid.UUID, to models.CommitmentStatus) (*models.Commitment, error) {
	if m.TransitionCommitmentFunc != nil {
		return m.TransitionCommitmentFunc(ctx, id, to)
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockJournalService) ListOpenCommitments(ctx context.Context) ([]models.Commitment, error) {
	return nil, nil
}

func (m *mockJournalService) CreateProject(ctx context.Context, p *models.Project) error { return nil }

func (m *mockJournalService) GetProject(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	return nil, apperrors.ErrNotFound
}

func (m *mockJournalService) UpdateProject(ctx context.Context, p *models.Project) error { return nil }

func (m *mockJournalService) ListProjects(ctx context.Context) ([]models.Project, error) {
	return nil, nil
}

func (m *mockJournalService) CreatePerson(ctx context.Context, p *models.Person) error { return nil }

func (m *mockJournalService) GetPerson(ctx context.Context, id uuid.UUID) (*models.Person, error) {
	return nil, apperrors.ErrNotFound
}

func (m *mockJournalService) UpdatePerson(ctx context.Context, p *models.Person) error { return nil }

func (m *mockJournalService) ListPeople(ctx context.Context) ([]models.Person, error) {
	return nil, nil
}

func (m *mockJournalService) PersonMetrics(ctx context.Context, personID uuid.UUID) (*models.PersonMetrics, error) {
	if m.PersonMetricsFunc != nil {
		return m.PersonMetricsFunc(ctx, personID)
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockJournalService) SaveReflection(ctx context.Context, ref *models.Reflection) error {
	if m.SaveReflectionFunc != nil {
		return m.SaveReflectionFunc(ctx, ref)
	}
	return nil
}

func (m *mockJournalService) ListReflections(ctx context.Context, limit int) ([]models.Reflection, error) {
	return nil, nil
}

type mockInsightService struct {
	SummarizeEntryFunc          func(ctx context.Context, entryID uuid.UUID) (*models.EntrySummaryResult, error)
	PersonPrepBriefingFunc      func(ctx context.Context, personID uuid.UUID) (*models.PrepBriefingResult, error)
	ProjectPrepBriefingFunc     func(ctx context.Context, projectID uuid.UUID) (*models.PrepBriefingResult, error)
	ReflectionPromptsFunc       func(ctx context.Context, req services.ReflectionRequest) (*models.ReflectionPromptsResult, error)
	QuickReflectionFunc         func(ctx context.Context, trigger string, lastEntryID *uuid.UUID) (*models.ContextualReflectionResult, error)
	SingleQuestionFunc          func(ctx context.Context, topic string) (string, error)
	ExtractThemesFunc           func(ctx context.Context, answers []string) ([]string, error)
	AnalyzeDecisionPatternsFunc func(ctx context.Context) (*models.DecisionPatternAnalysis, error)
	TranscribeAudioFunc         func(ctx context.Context, audio []byte) (string, error)
}

func (m *mockInsightService) SummarizeEntry(ctx context.Context, entryID uuid.UUID) (*models.EntrySummaryResult, error) {
	if m.SummarizeEntryFunc != nil {
		return m.SummarizeEntryFunc(ctx, entryID)
	}
	return &models.EntrySummaryResult{SuggestedActions: []models.SuggestedCommitment{}}, nil
}

func (m *mockInsightService) PersonPrepBriefing(ctx context.Context, personID uuid.UUID) (*models.PrepBriefingResult, error) {
	if m.PersonPrepBriefingFunc != nil {
		return m.PersonPrepBriefingFunc(ctx, personID)
	}
	return &models.PrepBriefingResult{}, nil
}

func (m *mockInsightService) ProjectPrepBriefing(ctx context.Context, projectID uuid.UUID) (*models.PrepBriefingResult, error) {
	if m.ProjectPrepBriefingFunc != nil {
		return m.ProjectPrepBriefingFunc(ctx, projectID)
	}
	return &models.PrepBriefingResult{}, nil
}

func (m *mockInsightService) ReflectionPrompts(ctx context.Context, req services.ReflectionRequest) (*models.ReflectionPromptsResult, error) {
	if m.ReflectionPromptsFunc != nil {
		return m.ReflectionPromptsFunc(ctx, req)
	}
	return &models.ReflectionPromptsResult{}, nil
}

func (m *mockInsightService) QuickReflection(ctx context.Context, trigger string, lastEntryID *uuid.UUID) (*models.ContextualReflectionResult, error) {
	if m.QuickReflectionFunc != nil {
		return m.QuickReflectionFunc(ctx, trigger, lastEntryID)
	}
	return &models.ContextualReflectionResult{}, nil
}

func (m *mockInsightService) SingleQuestion(ctx context.Context, topic string) (string, error) {
	if m.SingleQuestionFunc != nil {
		return m.SingleQuestionFunc(ctx, topic)
	}
	return "", nil
}

func (m *mockInsightService) ExtractThemes(ctx context.Context, answers []string) ([]string, error) {
	if m.ExtractThemesFunc != nil {
		return m.ExtractThemesFunc(ctx, answers)
	}
	return nil, nil
}

func (m *mockInsightService) AnalyzeDecisionPatterns(ctx context.Context) (*models.DecisionPatternAnalysis, error) {
	if m.AnalyzeDecisionPatternsFunc != nil {
		return m.AnalyzeDecisionPatternsFunc(ctx)
	}
	return &models.DecisionPatternAnalysis{}, nil
}

func (m *mockInsightService) TranscribeAudio(ctx context.Context, audio []byte) (string, error) {
	if m.TranscribeAudioFunc != nil {
		return m.TranscribeAudioFunc(ctx, audio)
	}
	return "", nil
}

var (
	_ services.JournalService = (*mockJournalService)(nil)
	_ services.InsightService = (*mockInsightService)(nil)
)
