package models

import (
	"time"

	"github.com/google/uuid"
)

// ReflectionScope identifies what a reflection covers.
type ReflectionScope string

const (
	ReflectionPeriodic     ReflectionScope = "periodic"
	ReflectionProject      ReflectionScope = "project"
	ReflectionRelationship ReflectionScope = "relationship"
	ReflectionQuick        ReflectionScope = "quick"
)

// ValidReflectionScope reports whether s is a known reflection scope.
func ValidReflectionScope(s ReflectionScope) bool {
	switch s {
	case ReflectionPeriodic, ReflectionProject, ReflectionRelationship, ReflectionQuick:
		return true
	}
	return false
}

// ReflectionAnswer is one answered question within a saved reflection.
// EntryID carries the optional link back to the entry a question was
// derived from; question text itself never embeds identifiers.
type ReflectionAnswer struct {
	Question string     `json:"question"`
	Answer   string     `json:"answer"`
	EntryID  *uuid.UUID `json:"entry_id,omitempty"`
}

// Reflection is a saved set of question/answer pairs tied to a period,
// project, or person, with an optional mood tag and AI-derived themes.
type Reflection struct {
	ID          uuid.UUID          `json:"id"`
	Scope       ReflectionScope    `json:"scope"`
	PeriodStart *time.Time         `json:"period_start,omitempty"`
	PeriodEnd   *time.Time         `json:"period_end,omitempty"`
	ProjectID   *uuid.UUID         `json:"project_id,omitempty"`
	PersonID    *uuid.UUID         `json:"person_id,omitempty"`
	Mood        string             `json:"mood,omitempty"`
	Themes      []string           `json:"themes,omitempty"`
	Answers     []ReflectionAnswer `json:"answers"`
	CreatedAt   time.Time          `json:"created_at"`
}
