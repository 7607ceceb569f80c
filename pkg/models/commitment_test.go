package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommitmentDirection(t *testing.T) {
	tests := []struct {
		input string
		want  CommitmentDirection
	}{
		{"i_owe", DirectionIOwe},
		{"waiting_for", DirectionWaitingFor},
		{"owed_to_me", DirectionIOwe},
		{"WAITING_FOR", DirectionIOwe},
		{"", DirectionIOwe},
		{"garbage", DirectionIOwe},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseCommitmentDirection(tt.input), "input %q", tt.input)
	}
}

func TestCommitment_MarkDoneAndReopen(t *testing.T) {
	c := &Commitment{Status: CommitmentOpen}
	now := time.Now()

	c.MarkDone(now)
	assert.Equal(t, CommitmentDone, c.Status)
	require.NotNil(t, c.CompletedAt)
	assert.Equal(t, now, *c.CompletedAt)

	c.Reopen()
	assert.Equal(t, CommitmentOpen, c.Status)
	assert.Nil(t, c.CompletedAt, "reopen must clear the completion timestamp")
}

func TestCommitment_IsOverdue(t *testing.T) {
	now := time.Now()
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	open := &Commitment{Status: CommitmentOpen, DueAt: &past}
	assert.True(t, open.IsOverdue(now))

	notDue := &Commitment{Status: CommitmentOpen, DueAt: &future}
	assert.False(t, notDue.IsOverdue(now))

	noDue := &Commitment{Status: CommitmentOpen}
	assert.False(t, noDue.IsOverdue(now))

	done := &Commitment{Status: CommitmentDone, DueAt: &past}
	assert.False(t, done.IsOverdue(now), "done commitments are never overdue")
}

func TestCommitment_HasAnchor(t *testing.T) {
	id := newTestUUID(t)

	assert.False(t, (&Commitment{}).HasAnchor())
	assert.True(t, (&Commitment{ProjectID: &id}).HasAnchor())
	assert.True(t, (&Commitment{PersonID: &id}).HasAnchor())
}
