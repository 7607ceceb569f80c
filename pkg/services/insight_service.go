package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/crewlog/crewlog-engine/pkg/cache"
	"github.com/crewlog/crewlog-engine/pkg/llm"
	"github.com/crewlog/crewlog-engine/pkg/models"
	"github.com/crewlog/crewlog-engine/pkg/prompts"
	"github.com/crewlog/crewlog-engine/pkg/repositories"
)

// ReflectionRequest identifies what a reflection session covers.
// ProjectID and PersonID are set for their respective scopes.
type ReflectionRequest struct {
	Scope       models.ReflectionScope
	PeriodLabel string
	ProjectID   *uuid.UUID
	PersonID    *uuid.UUID
	// Trigger is the free-form context for quick reflections.
	Trigger string
}

// InsightService generates AI-derived content: summaries, prep
// briefings, reflection questions, pattern analysis, and voice note
// transcription. Every operation is bounded by a timeout and degrades
// rather than blocking when the AI is slow, broken, or not configured.
type InsightService interface {
	SummarizeEntry(ctx context.Context, entryID uuid.UUID) (*models.EntrySummaryResult, error)
	PersonPrepBriefing(ctx context.Context, personID uuid.UUID) (*models.PrepBriefingResult, error)
	ProjectPrepBriefing(ctx context.Context, projectID uuid.UUID) (*models.PrepBriefingResult, error)
	ReflectionPrompts(ctx context.Context, req ReflectionRequest) (*models.ReflectionPromptsResult, error)
	QuickReflection(ctx context.Context, trigger string, lastEntryID *uuid.UUID) (*models.ContextualReflectionResult, error)
	SingleQuestion(ctx context.Context, topic string) (string, error)
	ExtractThemes(ctx context.Context, answers []string) ([]string, error)
	AnalyzeDecisionPatterns(ctx context.Context) (*models.DecisionPatternAnalysis, error)
	TranscribeAudio(ctx context.Context, audio []byte) (string, error)
}

// InsightConfig holds the insight service's tunables.
type InsightConfig struct {
	// FullTimeout bounds full generations: summaries, briefings,
	// reflection question sets, pattern analysis.
	FullTimeout time.Duration
	// QuickTimeout bounds lightweight calls: single questions and theme
	// extraction.
	QuickTimeout time.Duration
	// MinDecisionsForPatterns is how many decisions must exist before
	// pattern analysis calls the model.
	MinDecisionsForPatterns int
}

type insightService struct {
	client      llm.Client
	entries     repositories.EntryRepository
	commitments repositories.CommitmentRepository
	projects    repositories.ProjectRepository
	people      repositories.PersonRepository
	reflections repositories.ReflectionRepository
	journal     JournalService
	cache       cache.InsightCache
	cfg         InsightConfig
	logger      *zap.Logger
	now         func() time.Time
}

// NewInsightService creates an InsightService.
func NewInsightService(
	client llm.Client,
	entries repositories.EntryRepository,
	commitments repositories.CommitmentRepository,
	projects repositories.ProjectRepository,
	people repositories.PersonRepository,
	reflections repositories.ReflectionRepository,
	journal JournalService,
	insightCache cache.InsightCache,
	cfg InsightConfig,
	logger *zap.Logger,
) InsightService {
	return &insightService{
		client:      client,
		entries:     entries,
		commitments: commitments,
		projects:    projects,
		people:      people,
		reflections: reflections,
		journal:     journal,
		cache:       insightCache,
		cfg:         cfg,
		logger:      logger.Named("insight_service"),
		now:         time.Now,
	}
}

// complete runs one completion bounded by the given timeout.
func (s *insightService) complete(ctx context.Context, timeout time.Duration, system, user string) (string, error) {
	return llm.Race(ctx, timeout, func(runCtx context.Context) (string, error) {
		return s.client.Complete(runCtx, system, user, llm.CompleteOptions{})
	})
}

// SummarizeEntry generates a summary and suggested commitments for an
// entry. Decision entries get the decision treatment: assumptions and a
// suggested review horizon. The result is never persisted here; the
// caller decides what to keep.
func (s *insightService) SummarizeEntry(ctx context.Context, entryID uuid.UUID) (*models.EntrySummaryResult, error) {
	entry, err := s.entries.GetByID(ctx, entryID)
	if err != nil {
		return nil, err
	}

	projectName := s.projectName(ctx, entry.ProjectID)

	var system, user string
	if entry.IsDecision() {
		system = prompts.DecisionSummarySystemMessage()
		user = prompts.BuildDecisionSummaryPrompt(entry, projectName)
	} else {
		system = prompts.EntrySummarySystemMessage()
		user = prompts.BuildEntrySummaryPrompt(entry, projectName)
	}

	response, err := s.complete(ctx, s.cfg.FullTimeout, system, user)
	if err != nil {
		return nil, err
	}

	result := ParseEntrySummary(response)
	s.logger.Debug("entry summarized",
		zap.String("entry_id", entryID.String()),
		zap.Int("suggested_actions", len(result.SuggestedActions)))
	return result, nil
}

func (s *insightService) projectName(ctx context.Context, projectID *uuid.UUID) string {
	if projectID == nil {
		return ""
	}
	project, err := s.projects.GetByID(ctx, *projectID)
	if err != nil {
		s.logger.Warn("failed to load project for prompt",
			zap.String("project_id", projectID.String()), zap.Error(err))
		return ""
	}
	return project.Name
}

// PersonPrepBriefing generates a briefing ahead of a conversation with
// a person. Fresh briefings are cached for a short window.
func (s *insightService) PersonPrepBriefing(ctx context.Context, personID uuid.UUID) (*models.PrepBriefingResult, error) {
	key := cache.PersonBriefingKey(personID)
	if cached, ok := s.cache.Get(ctx, key); ok {
		return &models.PrepBriefingResult{Briefing: cached}, nil
	}

	person, err := s.people.GetByID(ctx, personID)
	if err != nil {
		return nil, err
	}
	metrics, err := s.journal.PersonMetrics(ctx, personID)
	if err != nil {
		return nil, err
	}
	entries, err := s.entries.ListForPerson(ctx, personID, prompts.MaxRecentEntries)
	if err != nil {
		return nil, err
	}
	open, err := s.commitments.ListOpenForPerson(ctx, personID)
	if err != nil {
		return nil, err
	}

	user := prompts.BuildPersonPrepPrompt(prompts.PersonPrepContext{
		Person:          person,
		Metrics:         *metrics,
		RecentEntries:   entries,
		OpenCommitments: open,
		Now:             s.now(),
	})

	response, err := s.complete(ctx, s.cfg.FullTimeout, prompts.PrepSystemMessage(), user)
	if err != nil {
		return nil, err
	}

	result := ParsePrepBriefing(response)
	s.cache.Set(ctx, key, result.Briefing, cache.DefaultBriefingTTL)
	return result, nil
}

// ProjectPrepBriefing generates a briefing ahead of a project check-in.
func (s *insightService) ProjectPrepBriefing(ctx context.Context, projectID uuid.UUID) (*models.PrepBriefingResult, error) {
	key := cache.ProjectBriefingKey(projectID)
	if cached, ok := s.cache.Get(ctx, key); ok {
		return &models.PrepBriefingResult{Briefing: cached}, nil
	}

	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	entries, err := s.entries.ListForProject(ctx, projectID, prompts.MaxRecentEntries)
	if err != nil {
		return nil, err
	}
	open, err := s.commitments.ListForProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	user := prompts.BuildProjectPrepPrompt(prompts.ProjectPrepContext{
		Project:         project,
		RecentEntries:   entries,
		OpenCommitments: open,
		Now:             s.now(),
	})

	response, err := s.complete(ctx, s.cfg.FullTimeout, prompts.PrepSystemMessage(), user)
	if err != nil {
		return nil, err
	}

	result := ParsePrepBriefing(response)
	s.cache.Set(ctx, key, result.Briefing, cache.DefaultBriefingTTL)
	return result, nil
}

// ReflectionPrompts generates a question set for a reflection session.
// The AI path can fail for any reason; the caller always gets questions,
// falling back to the fixed per-scope sets. The error return reports
// unexpected repository failures only.
func (s *insightService) ReflectionPrompts(ctx context.Context, req ReflectionRequest) (*models.ReflectionPromptsResult, error) {
	rc := prompts.ReflectionContext{
		Scope:       req.Scope,
		PeriodLabel: req.PeriodLabel,
	}

	var err error
	switch req.Scope {
	case models.ReflectionProject:
		if req.ProjectID == nil {
			return nil, fmt.Errorf("project reflection needs a project id")
		}
		rc.ProjectName = s.projectName(ctx, req.ProjectID)
		rc.RecentEntries, err = s.entries.ListForProject(ctx, *req.ProjectID, prompts.MaxRecentEntries)
	case models.ReflectionRelationship:
		if req.PersonID == nil {
			return nil, fmt.Errorf("relationship reflection needs a person id")
		}
		var person *models.Person
		person, err = s.people.GetByID(ctx, *req.PersonID)
		if err == nil {
			rc.PersonName = person.Name
			rc.RecentEntries, err = s.entries.ListForPerson(ctx, *req.PersonID, prompts.MaxRecentEntries)
		}
	default:
		rc.RecentEntries, err = s.entries.ListRecent(ctx, prompts.MaxRecentEntries)
	}
	if err != nil {
		return nil, err
	}

	rc.PastExcerpts = s.pastExcerpts(ctx, req.Scope)

	response, aiErr := s.complete(ctx, s.cfg.FullTimeout, prompts.ReflectionSystemMessage(), prompts.BuildReflectionPrompt(rc))
	if aiErr != nil {
		s.logger.Info("reflection generation degraded to fallback questions",
			zap.String("scope", string(req.Scope)),
			zap.String("reason", string(llm.KindOf(aiErr))))
		return &models.ReflectionPromptsResult{
			Questions: prompts.FallbackQuestions(req.Scope),
		}, nil
	}

	questions, suggestions := ParseReflectionQuestions(response)
	if len(questions) == 0 {
		questions = prompts.FallbackQuestions(req.Scope)
	}
	return &models.ReflectionPromptsResult{
		Questions:   questions,
		Suggestions: suggestions,
	}, nil
}

// pastExcerpts pulls short fragments of recent reflection answers so
// new questions can build on earlier thinking. Failures degrade to no
// excerpts.
func (s *insightService) pastExcerpts(ctx context.Context, scope models.ReflectionScope) []string {
	past, err := s.reflections.ListByScope(ctx, scope, prompts.MaxExcerpts)
	if err != nil {
		s.logger.Warn("failed to load past reflections", zap.Error(err))
		return nil
	}

	var excerpts []string
	for _, ref := range past {
		for _, answer := range ref.Answers {
			if answer.Answer == "" {
				continue
			}
			excerpts = append(excerpts, answer.Answer)
			break
		}
		if len(excerpts) >= prompts.MaxExcerpts {
			break
		}
	}
	return excerpts
}

// QuickReflection generates a lightweight question set from whatever
// was just logged. Like ReflectionPrompts it always returns questions.
func (s *insightService) QuickReflection(ctx context.Context, trigger string, lastEntryID *uuid.UUID) (*models.ContextualReflectionResult, error) {
	var lastEntry *models.Entry
	if lastEntryID != nil {
		var err error
		lastEntry, err = s.entries.GetByID(ctx, *lastEntryID)
		if err != nil {
			return nil, err
		}
	}

	user := prompts.BuildQuickReflectionPrompt(trigger, lastEntry)
	response, err := s.complete(ctx, s.cfg.QuickTimeout, prompts.ReflectionSystemMessage(), user)
	if err != nil {
		s.logger.Info("quick reflection degraded to fallback questions",
			zap.String("reason", string(llm.KindOf(err))))
		return &models.ContextualReflectionResult{
			Questions: prompts.FallbackQuestions(models.ReflectionQuick),
			Trigger:   trigger,
		}, nil
	}

	questions, suggestions := ParseReflectionQuestions(response)
	if len(questions) == 0 {
		questions = prompts.FallbackQuestions(models.ReflectionQuick)
	}
	return &models.ContextualReflectionResult{
		Questions:   questions,
		Suggestions: suggestions,
		Trigger:     trigger,
	}, nil
}

// SingleQuestion generates one follow-up question about a topic under
// the quick timeout. Unlike reflections there is no canned fallback;
// the caller surfaces the failure.
func (s *insightService) SingleQuestion(ctx context.Context, topic string) (string, error) {
	response, err := s.complete(ctx, s.cfg.QuickTimeout,
		prompts.SingleQuestionSystemMessage(), prompts.BuildSingleQuestionPrompt(topic))
	if err != nil {
		return "", err
	}
	return ParseSingleQuestion(response), nil
}

// ExtractThemes derives theme tags from reflection answers. Empty input
// returns no themes without a network call, and an unconfigured AI
// degrades to no themes rather than an error.
func (s *insightService) ExtractThemes(ctx context.Context, answers []string) ([]string, error) {
	nonEmpty := 0
	for _, a := range answers {
		if strings.TrimSpace(a) != "" {
			nonEmpty++
		}
	}
	if nonEmpty == 0 {
		return nil, nil
	}

	response, err := s.complete(ctx, s.cfg.QuickTimeout,
		prompts.ThemesSystemMessage(), prompts.BuildThemeExtractionPrompt(answers))
	if llm.IsNotConfigured(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ParseThemes(response), nil
}

// AnalyzeDecisionPatterns looks for patterns across past decisions.
// Below the minimum decision count the analysis reports the count and
// nothing else; there is no signal in two data points.
func (s *insightService) AnalyzeDecisionPatterns(ctx context.Context) (*models.DecisionPatternAnalysis, error) {
	decisions, err := s.entries.ListDecisions(ctx, prompts.MaxRecentEntries)
	if err != nil {
		return nil, err
	}

	if len(decisions) < s.cfg.MinDecisionsForPatterns {
		return &models.DecisionPatternAnalysis{DecisionCount: len(decisions)}, nil
	}

	response, err := s.complete(ctx, s.cfg.FullTimeout,
		prompts.PatternsSystemMessage(), prompts.BuildDecisionPatternsPrompt(decisions))
	if err != nil {
		return nil, err
	}

	analysis := ParsePatternAnalysis(response)
	analysis.DecisionCount = len(decisions)
	return analysis, nil
}

// TranscribeAudio converts a voice note to text under the full timeout.
func (s *insightService) TranscribeAudio(ctx context.Context, audio []byte) (string, error) {
	if len(audio) == 0 {
		return "", fmt.Errorf("empty audio payload")
	}
	return llm.Race(ctx, s.cfg.FullTimeout, func(runCtx context.Context) (string, error) {
		return s.client.Transcribe(runCtx, audio, prompts.TranscriptionInstruction)
	})
}

var _ InsightService = (*insightService)(nil)
