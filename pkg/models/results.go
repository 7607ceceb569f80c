package models

import "github.com/google/uuid"

// Result value types returned by the insight service. None of these are
// persisted; the caller decides whether to save them to the timeline.

// SuggestedCommitment is a commitment the model extracted from an entry.
type SuggestedCommitment struct {
	Title     string              `json:"title"`
	Direction CommitmentDirection `json:"direction"`
}

// EntrySummaryResult is the typed outcome of summarizing an entry.
// For decision entries the assumptions and review-day fields are
// populated; for other kinds they are zero.
type EntrySummaryResult struct {
	Summary             string                `json:"summary"`
	SuggestedActions    []SuggestedCommitment `json:"suggested_actions"`
	Assumptions         string                `json:"assumptions,omitempty"`
	SuggestedReviewDays int                   `json:"suggested_review_days,omitempty"`
}

// PrepBriefingResult is a generated briefing ahead of a meeting with a
// person or a project check-in.
type PrepBriefingResult struct {
	Briefing string `json:"briefing"`
}

// ReflectionQuestion is one generated question. EntryID links the
// question to a source entry; the link travels in this field only and is
// never embedded in the question text.
type ReflectionQuestion struct {
	Text    string     `json:"text"`
	EntryID *uuid.UUID `json:"entry_id,omitempty"`
}

// ReflectionPromptsResult is a generated set of reflection questions
// for a periodic, project, or relationship reflection.
type ReflectionPromptsResult struct {
	Questions   []ReflectionQuestion `json:"questions"`
	Suggestions []string             `json:"suggestions,omitempty"`
}

// ContextualReflectionResult is a lightweight quick-reflection prompt
// set generated from whatever the user just logged.
type ContextualReflectionResult struct {
	Questions   []ReflectionQuestion `json:"questions"`
	Suggestions []string             `json:"suggestions,omitempty"`
	Trigger     string               `json:"trigger,omitempty"`
}

// DecisionPatternAnalysis summarizes patterns across past decisions:
// up to three insights and a single recommendation.
type DecisionPatternAnalysis struct {
	Insights       []string `json:"insights"`
	Recommendation string   `json:"recommendation,omitempty"`
	DecisionCount  int      `json:"decision_count"`
}
