package models

import (
	"time"

	"github.com/google/uuid"
)

// CommitmentDirection indicates who owes whom.
type CommitmentDirection string

const (
	// DirectionIOwe means the user owes the counterparty.
	DirectionIOwe CommitmentDirection = "i_owe"
	// DirectionWaitingFor means the counterparty owes the user.
	DirectionWaitingFor CommitmentDirection = "waiting_for"
)

// ParseCommitmentDirection maps a free-form direction string to a typed
// direction. Unrecognized values default to i_owe rather than erroring;
// LLM responses are not trusted to use the exact enum spelling.
func ParseCommitmentDirection(s string) CommitmentDirection {
	switch CommitmentDirection(s) {
	case DirectionWaitingFor:
		return DirectionWaitingFor
	default:
		return DirectionIOwe
	}
}

// CommitmentStatus is the lifecycle state of a commitment.
type CommitmentStatus string

const (
	CommitmentOpen    CommitmentStatus = "open"
	CommitmentDone    CommitmentStatus = "done"
	CommitmentBlocked CommitmentStatus = "blocked"
	CommitmentDropped CommitmentStatus = "dropped"
)

// ValidCommitmentStatus reports whether s is a known status.
func ValidCommitmentStatus(s CommitmentStatus) bool {
	switch s {
	case CommitmentOpen, CommitmentDone, CommitmentBlocked, CommitmentDropped:
		return true
	}
	return false
}

// Commitment is a promise in one of two directions, optionally anchored
// to a project, a person, and the entry it originated from. A commitment
// must reference at least a project or a person; that invariant is
// enforced by the journal service, not the type.
type Commitment struct {
	ID            uuid.UUID           `json:"id"`
	Title         string              `json:"title"`
	Direction     CommitmentDirection `json:"direction"`
	Status        CommitmentStatus    `json:"status"`
	Importance    int                 `json:"importance"` // 1-5
	Urgency       int                 `json:"urgency"`    // 1-5
	DueAt         *time.Time          `json:"due_at,omitempty"`
	ProjectID     *uuid.UUID          `json:"project_id,omitempty"`
	PersonID      *uuid.UUID          `json:"person_id,omitempty"`
	SourceEntryID *uuid.UUID          `json:"source_entry_id,omitempty"`
	CompletedAt   *time.Time          `json:"completed_at,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// HasAnchor reports whether the commitment references a project or person.
func (c *Commitment) HasAnchor() bool {
	return c.ProjectID != nil || c.PersonID != nil
}

// IsOverdue reports whether an open commitment is past its due date.
func (c *Commitment) IsOverdue(now time.Time) bool {
	return c.Status == CommitmentOpen && c.DueAt != nil && c.DueAt.Before(now)
}

// MarkDone transitions the commitment to done and stamps completion.
func (c *Commitment) MarkDone(now time.Time) {
	c.Status = CommitmentDone
	c.CompletedAt = &now
}

// Reopen transitions the commitment back to open. The completion
// timestamp is cleared; done -> open is fully reversible.
func (c *Commitment) Reopen() {
	c.Status = CommitmentOpen
	c.CompletedAt = nil
}
