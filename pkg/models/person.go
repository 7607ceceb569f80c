package models

import (
	"time"

	"github.com/google/uuid"
)

// RelationshipType classifies how a person relates to the journal owner.
type RelationshipType string

const (
	RelationshipDirectReport RelationshipType = "direct_report"
	RelationshipManager      RelationshipType = "manager"
	RelationshipPeer         RelationshipType = "peer"
	RelationshipStakeholder  RelationshipType = "stakeholder"
	RelationshipExternal     RelationshipType = "external"
)

// HealthStatus buckets a relationship health score for display.
type HealthStatus string

const (
	HealthHealthy        HealthStatus = "healthy"
	HealthNeedsAttention HealthStatus = "needs_attention"
	HealthAtRisk         HealthStatus = "at_risk"
)

// StalenessBucket bands days-since-last-interaction.
type StalenessBucket string

const (
	StalenessActive  StalenessBucket = "active"  // <= 7 days
	StalenessRecent  StalenessBucket = "recent"  // 8-30 days
	StalenessDormant StalenessBucket = "dormant" // > 30 days
)

// Person is a counterparty the journal owner works with.
type Person struct {
	ID                uuid.UUID        `json:"id"`
	Name              string           `json:"name"`
	Organization      string           `json:"organization"`
	Role              string           `json:"role"`
	Relationship      RelationshipType `json:"relationship"`
	Notes             string           `json:"notes"`
	LastInteractionAt *time.Time       `json:"last_interaction_at,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// PersonMetrics holds derived, non-persisted relationship metrics.
// Computed on demand from commitment counts and interaction recency.
type PersonMetrics struct {
	ActiveCommitments    int             `json:"active_commitments"`
	OverdueCommitments   int             `json:"overdue_commitments"`
	DaysSinceInteraction int             `json:"days_since_interaction"`
	Balance              int             `json:"balance"` // waiting_for minus i_owe
	HealthScore          int             `json:"health_score"`
	HealthStatus         HealthStatus    `json:"health_status"`
	Staleness            StalenessBucket `json:"staleness"`
}
