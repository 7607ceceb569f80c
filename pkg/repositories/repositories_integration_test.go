package repositories_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crewlog/crewlog-engine/pkg/apperrors"
	"github.com/crewlog/crewlog-engine/pkg/models"
	"github.com/crewlog/crewlog-engine/pkg/repositories"
	"github.com/crewlog/crewlog-engine/pkg/testhelpers"
)

func seedProject(t *testing.T, repo repositories.ProjectRepository) *models.Project {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Millisecond)
	p := &models.Project{
		ID:           uuid.New(),
		Name:         "Platform Rebuild",
		Type:         models.ProjectTypeInitiative,
		Status:       models.ProjectActive,
		Priority:     4,
		LastActiveAt: now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, repo.Create(context.Background(), p))
	return p
}

func seedPerson(t *testing.T, repo repositories.PersonRepository) *models.Person {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Millisecond)
	p := &models.Person{
		ID:           uuid.New(),
		Name:         "Dana",
		Relationship: models.RelationshipDirectReport,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, repo.Create(context.Background(), p))
	return p
}

func TestEntryRepository_RoundTrip(t *testing.T) {
	db := testhelpers.GetTestDB(t)
	ctx := context.Background()

	entries := repositories.NewEntryRepository(db.Pool)
	projects := repositories.NewProjectRepository(db.Pool)
	people := repositories.NewPersonRepository(db.Pool)

	project := seedProject(t, projects)
	person := seedPerson(t, people)

	now := time.Now().UTC().Truncate(time.Millisecond)
	review := now.Add(30 * 24 * time.Hour)
	entry := &models.Entry{
		ID:         uuid.New(),
		Kind:       models.EntryKindDecision,
		Title:      "Delay the launch",
		Content:    "Pushing to Q4.",
		OccurredAt: now,
		Decision: &models.Decision{
			Rationale:  "Not enough signal",
			Confidence: 3,
			Stakes:     models.StakesHigh,
			Outcome:    models.OutcomePending,
			ReviewAt:   &review,
		},
		ProjectID: &project.ID,
		PersonIDs: []uuid.UUID{person.ID},
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, entries.Create(ctx, entry))

	got, err := entries.GetByID(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, entry.Title, got.Title)
	require.NotNil(t, got.Decision)
	assert.Equal(t, models.StakesHigh, got.Decision.Stakes)
	assert.Equal(t, []uuid.UUID{person.ID}, got.PersonIDs)

	forProject, err := entries.ListForProject(ctx, project.ID, 10)
	require.NoError(t, err)
	assert.Len(t, forProject, 1)

	forPerson, err := entries.ListForPerson(ctx, person.ID, 10)
	require.NoError(t, err)
	assert.Len(t, forPerson, 1)

	decisions, err := entries.ListDecisions(ctx, 10)
	require.NoError(t, err)
	assert.NotEmpty(t, decisions)
}

func TestEntryRepository_SoftDelete(t *testing.T) {
	db := testhelpers.GetTestDB(t)
	ctx := context.Background()

	entries := repositories.NewEntryRepository(db.Pool)

	now := time.Now().UTC().Truncate(time.Millisecond)
	projects := repositories.NewProjectRepository(db.Pool)
	project := seedProject(t, projects)
	entry := &models.Entry{
		ID:         uuid.New(),
		Kind:       models.EntryKindNote,
		Title:      "Scratch note",
		OccurredAt: now,
		ProjectID:  &project.ID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	require.NoError(t, entries.Create(ctx, entry))
	require.NoError(t, entries.SoftDelete(ctx, entry.ID, now))

	_, err := entries.GetByID(ctx, entry.ID)
	assert.ErrorIs(t, err, apperrors.ErrDeleted)

	// Deleting twice is a not-found; the row is already marked.
	err = entries.SoftDelete(ctx, entry.ID, now)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	recent, err := entries.ListRecent(ctx, 100)
	require.NoError(t, err)
	for _, e := range recent {
		assert.NotEqual(t, entry.ID, e.ID)
	}
}

func TestCommitmentRepository_CountsForPerson(t *testing.T) {
	db := testhelpers.GetTestDB(t)
	ctx := context.Background()

	commitments := repositories.NewCommitmentRepository(db.Pool)
	people := repositories.NewPersonRepository(db.Pool)
	person := seedPerson(t, people)

	now := time.Now().UTC().Truncate(time.Millisecond)
	overdue := now.Add(-48 * time.Hour)
	seed := []models.Commitment{
		{Title: "Send feedback", Direction: models.DirectionIOwe, Status: models.CommitmentOpen, DueAt: &overdue},
		{Title: "Share the doc", Direction: models.DirectionIOwe, Status: models.CommitmentBlocked},
		{Title: "Review draft", Direction: models.DirectionWaitingFor, Status: models.CommitmentOpen},
		{Title: "Old promise", Direction: models.DirectionIOwe, Status: models.CommitmentDone},
	}
	for i := range seed {
		seed[i].ID = uuid.New()
		seed[i].PersonID = &person.ID
		seed[i].Importance = 3
		seed[i].Urgency = 3
		seed[i].CreatedAt = now
		seed[i].UpdatedAt = now
		require.NoError(t, commitments.Create(ctx, &seed[i]))
	}

	counts, err := commitments.CountsForPerson(ctx, person.ID, now)
	require.NoError(t, err)
	assert.Equal(t, 3, counts.Active)
	assert.Equal(t, 1, counts.Overdue)
	assert.Equal(t, 2, counts.IOwe)
	assert.Equal(t, 1, counts.WaitingFor)

	open, err := commitments.ListOpenForPerson(ctx, person.ID)
	require.NoError(t, err)
	assert.Len(t, open, 3)
}

func TestReflectionRepository_RoundTrip(t *testing.T) {
	db := testhelpers.GetTestDB(t)
	ctx := context.Background()

	reflections := repositories.NewReflectionRepository(db.Pool)

	now := time.Now().UTC().Truncate(time.Millisecond)
	ref := &models.Reflection{
		ID:     uuid.New(),
		Scope:  models.ReflectionPeriodic,
		Mood:   "steady",
		Themes: []string{"delegation"},
		Answers: []models.ReflectionAnswer{
			{Question: "What went well?", Answer: "Shipped the migration."},
		},
		CreatedAt: now,
	}
	require.NoError(t, reflections.Create(ctx, ref))

	got, err := reflections.GetByID(ctx, ref.ID)
	require.NoError(t, err)
	assert.Equal(t, ref.Mood, got.Mood)
	require.Len(t, got.Answers, 1)
	assert.Equal(t, "Shipped the migration.", got.Answers[0].Answer)

	byScope, err := reflections.ListByScope(ctx, models.ReflectionPeriodic, 10)
	require.NoError(t, err)
	assert.NotEmpty(t, byScope)
}
