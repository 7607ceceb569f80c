package prompts

import (
	"fmt"
	"strings"
	"time"

	"github.com/crewlog/crewlog-engine/pkg/models"
)

// PersonPrepContext carries everything the person-prep builder needs.
type PersonPrepContext struct {
	Person          *models.Person
	Metrics         models.PersonMetrics
	RecentEntries   []models.Entry
	OpenCommitments []models.Commitment
	Now             time.Time
}

// PrepSystemMessage returns the system message for prep briefings.
func PrepSystemMessage() string {
	return `You are a chief of staff preparing a leader for an upcoming conversation. Produce a short, scannable briefing: where things stand, open loops in both directions, and one or two things worth raising. Plain prose, no headers.`
}

// BuildPersonPrepPrompt creates the user prompt for a relationship prep
// briefing.
func BuildPersonPrepPrompt(pc PersonPrepContext) string {
	var b strings.Builder

	p := pc.Person
	b.WriteString("# Upcoming Conversation\n\n")
	b.WriteString(fmt.Sprintf("With: %s (%s, %s)\n",
		orPlaceholder(p.Name, "Unknown"),
		orPlaceholder(p.Role, "Unknown"),
		orPlaceholder(p.Organization, "Unknown")))
	b.WriteString(fmt.Sprintf("Relationship: %s\n", orPlaceholder(string(p.Relationship), "Unknown")))
	b.WriteString(fmt.Sprintf("Days since last interaction: %d\n", pc.Metrics.DaysSinceInteraction))
	b.WriteString(fmt.Sprintf("Relationship health: %d/100 (%s)\n\n", pc.Metrics.HealthScore, pc.Metrics.HealthStatus))

	b.WriteString("## Recent History\n\n")
	entries := limitEntries(pc.RecentEntries)
	if len(entries) == 0 {
		b.WriteString("None\n")
	}
	for _, e := range entries {
		writeEntryLine(&b, e)
	}
	b.WriteString("\n## Open Commitments\n\n")
	if len(pc.OpenCommitments) == 0 {
		b.WriteString("None\n")
	}
	for _, c := range pc.OpenCommitments {
		writeCommitmentLine(&b, c, pc.Now)
	}

	b.WriteString("\n## Output Format\n\n")
	b.WriteString("Respond in JSON with a single field:\n")
	b.WriteString("- `briefing`: the briefing text, 4-8 sentences\n\n")
	b.WriteString("Return ONLY the JSON, no additional text.\n")

	return b.String()
}

// ProjectPrepContext carries everything the project-prep builder needs.
type ProjectPrepContext struct {
	Project         *models.Project
	RecentEntries   []models.Entry
	OpenCommitments []models.Commitment
	Now             time.Time
}

// BuildProjectPrepPrompt creates the user prompt for a project check-in
// briefing.
func BuildProjectPrepPrompt(pc ProjectPrepContext) string {
	var b strings.Builder

	p := pc.Project
	b.WriteString("# Project Check-in\n\n")
	b.WriteString(fmt.Sprintf("Project: %s (%s)\n", orPlaceholder(p.Name, "Unknown"), orPlaceholder(p.Type, "Unknown")))
	b.WriteString(fmt.Sprintf("Status: %s, priority %d/5\n", p.Status, p.Priority))
	b.WriteString(fmt.Sprintf("Last active: %s\n", p.LastActiveAt.Format("2006-01-02")))
	if notes := strings.TrimSpace(p.Notes); notes != "" {
		b.WriteString(fmt.Sprintf("Notes: %s\n", excerpt(notes)))
	}

	b.WriteString("\n## Recent Activity\n\n")
	entries := limitEntries(pc.RecentEntries)
	if len(entries) == 0 {
		b.WriteString("None\n")
	}
	for _, e := range entries {
		writeEntryLine(&b, e)
	}
	b.WriteString("\n## Open Commitments\n\n")
	if len(pc.OpenCommitments) == 0 {
		b.WriteString("None\n")
	}
	for _, c := range pc.OpenCommitments {
		writeCommitmentLine(&b, c, pc.Now)
	}

	b.WriteString("\n## Output Format\n\n")
	b.WriteString("Respond in JSON with a single field:\n")
	b.WriteString("- `briefing`: the briefing text, 4-8 sentences\n\n")
	b.WriteString("Return ONLY the JSON, no additional text.\n")

	return b.String()
}
