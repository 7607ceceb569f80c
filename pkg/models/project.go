package models

import (
	"time"

	"github.com/google/uuid"
)

// ProjectStatus is the lifecycle state of a project.
type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "active"
	ProjectOnHold    ProjectStatus = "on_hold"
	ProjectCompleted ProjectStatus = "completed"
	ProjectArchived  ProjectStatus = "archived"
)

// ValidProjectStatus reports whether s is a known project status.
func ValidProjectStatus(s ProjectStatus) bool {
	switch s {
	case ProjectActive, ProjectOnHold, ProjectCompleted, ProjectArchived:
		return true
	}
	return false
}

// Project type constants. Free-form types are allowed; these cover the
// common cases surfaced in the UI.
const (
	ProjectTypeInitiative = "initiative"
	ProjectTypeTeam       = "team"
	ProjectTypeProduct    = "product"
	ProjectTypeOperations = "operations"
)

// Project groups entries and commitments under one piece of work.
type Project struct {
	ID           uuid.UUID     `json:"id"`
	Name         string        `json:"name"`
	Type         string        `json:"type"`
	Status       ProjectStatus `json:"status"`
	Priority     int           `json:"priority"` // 1-5
	Notes        string        `json:"notes"`
	LastActiveAt time.Time     `json:"last_active_at"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// Touch updates the last-active timestamp. Called whenever a new entry
// or commitment is attached to the project.
func (p *Project) Touch(now time.Time) {
	p.LastActiveAt = now
}
