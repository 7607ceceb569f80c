package services

import (
	"time"

	"github.com/crewlog/crewlog-engine/pkg/models"
)

// Relationship health is a deterministic heuristic, not an AI feature.
// The score starts at 100 and only goes down; it is monotone
// non-increasing in days of silence and in overdue commitments.

// HealthPolicy holds the tunable weights of the health score.
type HealthPolicy struct {
	// SilenceGraceDays is how long a relationship can go quiet before
	// the score starts dropping.
	SilenceGraceDays int
	// SilencePenaltyPerDay is subtracted for each day of silence past
	// the grace period.
	SilencePenaltyPerDay int
	// OverduePenalty is subtracted per overdue commitment.
	OverduePenalty int
	// LoadThreshold is how many active commitments are fine; each one
	// above it costs LoadPenalty.
	LoadThreshold int
	LoadPenalty   int
}

// DefaultHealthPolicy returns the standard weights.
func DefaultHealthPolicy() HealthPolicy {
	return HealthPolicy{
		SilenceGraceDays:     7,
		SilencePenaltyPerDay: 2,
		OverduePenalty:       15,
		LoadThreshold:        5,
		LoadPenalty:          3,
	}
}

// HealthScore computes the 0-100 relationship health score.
func (p HealthPolicy) HealthScore(daysSilent, overdue, active int) int {
	score := 100

	if daysSilent > p.SilenceGraceDays {
		score -= (daysSilent - p.SilenceGraceDays) * p.SilencePenaltyPerDay
	}
	score -= overdue * p.OverduePenalty
	if active > p.LoadThreshold {
		score -= (active - p.LoadThreshold) * p.LoadPenalty
	}

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// HealthStatusFor buckets a score for display.
func HealthStatusFor(score int) models.HealthStatus {
	switch {
	case score >= 70:
		return models.HealthHealthy
	case score >= 40:
		return models.HealthNeedsAttention
	default:
		return models.HealthAtRisk
	}
}

// StalenessBucketFor bands days-since-last-interaction.
func StalenessBucketFor(days int) models.StalenessBucket {
	switch {
	case days <= 7:
		return models.StalenessActive
	case days <= 30:
		return models.StalenessRecent
	default:
		return models.StalenessDormant
	}
}

// CommitmentBalance is positive when they owe the user more than the
// user owes them.
func CommitmentBalance(waitingFor, iOwe int) int {
	return waitingFor - iOwe
}

// maxDaysSilent caps the silence measurement at one year; beyond that
// the relationship is equally dormant either way.
const maxDaysSilent = 365

// DaysSince returns whole days between last and now, capped at one
// year. A nil last (never interacted) counts as the cap.
func DaysSince(last *time.Time, now time.Time) int {
	if last == nil {
		return maxDaysSilent
	}
	days := int(now.Sub(*last).Hours() / 24)
	if days < 0 {
		return 0
	}
	if days > maxDaysSilent {
		return maxDaysSilent
	}
	return days
}
