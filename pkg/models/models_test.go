package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newTestUUID(t *testing.T) uuid.UUID {
	t.Helper()
	return uuid.New()
}

func TestValidEntryKind(t *testing.T) {
	for _, k := range []EntryKind{
		EntryKindMeeting, EntryKindUpdate, EntryKindDecision,
		EntryKindNote, EntryKindPrep, EntryKindReflection,
	} {
		assert.True(t, ValidEntryKind(k), "kind %q", k)
	}
	assert.False(t, ValidEntryKind("standup"))
	assert.False(t, ValidEntryKind(""))
}

func TestEntry_SoftDelete(t *testing.T) {
	e := &Entry{}
	assert.False(t, e.IsDeleted())

	now := time.Now()
	e.DeletedAt = &now
	assert.True(t, e.IsDeleted())
}

func TestProject_Touch(t *testing.T) {
	p := &Project{LastActiveAt: time.Now().Add(-48 * time.Hour)}
	now := time.Now()
	p.Touch(now)
	assert.Equal(t, now, p.LastActiveAt)
}

func TestValidReflectionScope(t *testing.T) {
	assert.True(t, ValidReflectionScope(ReflectionPeriodic))
	assert.True(t, ValidReflectionScope(ReflectionQuick))
	assert.False(t, ValidReflectionScope("weekly"))
}

func TestValidCommitmentStatus(t *testing.T) {
	assert.True(t, ValidCommitmentStatus(CommitmentOpen))
	assert.True(t, ValidCommitmentStatus(CommitmentDropped))
	assert.False(t, ValidCommitmentStatus("closed"))
}
