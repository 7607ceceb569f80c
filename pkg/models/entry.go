// Package models contains domain types for crewlog-engine.
package models

import (
	"time"

	"github.com/google/uuid"
)

// EntryKind classifies a journal entry.
type EntryKind string

const (
	EntryKindMeeting    EntryKind = "meeting"
	EntryKindUpdate     EntryKind = "update"
	EntryKindDecision   EntryKind = "decision"
	EntryKindNote       EntryKind = "note"
	EntryKindPrep       EntryKind = "prep"
	EntryKindReflection EntryKind = "reflection"
)

// ValidEntryKind reports whether k is a known entry kind.
func ValidEntryKind(k EntryKind) bool {
	switch k {
	case EntryKindMeeting, EntryKindUpdate, EntryKindDecision,
		EntryKindNote, EntryKindPrep, EntryKindReflection:
		return true
	}
	return false
}

// DecisionStakes indicates how much is riding on a decision.
type DecisionStakes string

const (
	StakesLow    DecisionStakes = "low"
	StakesMedium DecisionStakes = "medium"
	StakesHigh   DecisionStakes = "high"
)

// DecisionOutcome records how a decision played out on review.
type DecisionOutcome string

const (
	OutcomePending DecisionOutcome = "pending"
	OutcomeGood    DecisionOutcome = "good"
	OutcomeBad     DecisionOutcome = "bad"
	OutcomeMixed   DecisionOutcome = "mixed"
)

// Decision holds the optional decision metadata on a decision entry.
type Decision struct {
	Rationale  string          `json:"rationale"`
	Confidence int             `json:"confidence"` // 1-5
	Stakes     DecisionStakes  `json:"stakes"`
	Outcome    DecisionOutcome `json:"outcome"`
	ReviewAt   *time.Time      `json:"review_at,omitempty"`
}

// Entry is one logged activity: a meeting, update, decision, note,
// prep briefing saved to the timeline, or a completed reflection.
// Entries are soft-deleted; DeletedAt is set rather than erasing the row.
type Entry struct {
	ID         uuid.UUID   `json:"id"`
	Kind       EntryKind   `json:"kind"`
	Title      string      `json:"title"`
	Content    string      `json:"content"`
	OccurredAt time.Time   `json:"occurred_at"`
	Decision   *Decision   `json:"decision,omitempty"`
	ProjectID  *uuid.UUID  `json:"project_id,omitempty"`
	PersonIDs  []uuid.UUID `json:"person_ids,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
	DeletedAt  *time.Time  `json:"deleted_at,omitempty"`
}

// IsDeleted reports whether the entry has been soft-deleted.
func (e *Entry) IsDeleted() bool {
	return e.DeletedAt != nil
}

// IsDecision reports whether the entry is a decision entry.
func (e *Entry) IsDecision() bool {
	return e.Kind == EntryKindDecision
}
