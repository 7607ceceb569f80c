package prompts

import (
	"fmt"
	"strings"

	"github.com/crewlog/crewlog-engine/pkg/models"
)

// ReflectionContext carries the inputs for reflection-question
// generation. PeriodLabel is human text like "this week"; ProjectName
// and PersonName are set for project/relationship scopes respectively.
type ReflectionContext struct {
	Scope         models.ReflectionScope
	PeriodLabel   string
	ProjectName   string
	PersonName    string
	RecentEntries []models.Entry
	// PastExcerpts are short fragments of earlier reflection answers,
	// used so new questions build on previous thinking.
	PastExcerpts []string
}

// ReflectionSystemMessage returns the system message for reflection
// question generation. The model must reference source events by title
// text only; any entry linkage travels in the structured entry_id field
// and never inside user-facing question text.
func ReflectionSystemMessage() string {
	return `You are a leadership coach generating reflection questions from a leader's own journal.

Rules:
- Ask open questions grounded in the events provided, not generic prompts.
- When a question refers to a source event, reference it by its title text only.
- Carry any link to a source entry exclusively in the separate "entry_id" field of that question. Never embed identifiers, UUIDs, or codes inside the question text itself.
- At most 5 questions.`
}

// BuildReflectionPrompt creates the user prompt for periodic, project,
// and relationship reflections.
func BuildReflectionPrompt(rc ReflectionContext) string {
	var b strings.Builder

	b.WriteString("# Reflection Request\n\n")
	switch rc.Scope {
	case models.ReflectionProject:
		b.WriteString(fmt.Sprintf("Scope: project %q\n", orPlaceholder(rc.ProjectName, "Unknown")))
	case models.ReflectionRelationship:
		b.WriteString(fmt.Sprintf("Scope: working relationship with %s\n", orPlaceholder(rc.PersonName, "Unknown")))
	default:
		b.WriteString(fmt.Sprintf("Scope: %s\n", orPlaceholder(rc.PeriodLabel, "recent period")))
	}

	b.WriteString("\n## Events\n\n")
	entries := limitEntries(rc.RecentEntries)
	if len(entries) == 0 {
		b.WriteString("None\n")
	}
	for _, e := range entries {
		b.WriteString(fmt.Sprintf("- id=%s title=%q kind=%s date=%s\n",
			e.ID, orPlaceholder(e.Title, "Untitled"), e.Kind, e.OccurredAt.Format("2006-01-02")))
	}

	excerpts := rc.PastExcerpts
	if len(excerpts) > MaxExcerpts {
		excerpts = excerpts[:MaxExcerpts]
	}
	if len(excerpts) > 0 {
		b.WriteString("\n## Earlier Reflections\n\n")
		for _, ex := range excerpts {
			b.WriteString("> ")
			b.WriteString(excerpt(ex))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n## Output Format\n\n")
	b.WriteString("Respond in JSON with:\n")
	b.WriteString("- `questions`: array of question objects\n")
	b.WriteString("  - `text`: the question, referencing events by title only\n")
	b.WriteString("  - `entry_id`: the id of the source event, or null if the question is general\n")
	b.WriteString("- `suggestions`: array of 0-3 short suggested focus areas\n\n")
	b.WriteString("Return ONLY the JSON, no additional text.\n")

	return b.String()
}

// BuildQuickReflectionPrompt creates the user prompt for a lightweight
// contextual reflection triggered by something just logged.
func BuildQuickReflectionPrompt(trigger string, lastEntry *models.Entry) string {
	var b strings.Builder

	b.WriteString("# Quick Reflection\n\n")
	b.WriteString(fmt.Sprintf("Trigger: %s\n", orPlaceholder(trigger, "Unknown")))
	if lastEntry != nil {
		b.WriteString("\n## Just Logged\n\n")
		b.WriteString(fmt.Sprintf("- id=%s title=%q kind=%s\n",
			lastEntry.ID, orPlaceholder(lastEntry.Title, "Untitled"), lastEntry.Kind))
		if content := strings.TrimSpace(lastEntry.Content); content != "" {
			b.WriteString(excerpt(content))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n## Output Format\n\n")
	b.WriteString("Respond in JSON with:\n")
	b.WriteString("- `questions`: array of 1-3 {text, entry_id} question objects\n")
	b.WriteString("- `suggestions`: array of 0-2 short suggested focus areas\n\n")
	b.WriteString("Return ONLY the JSON, no additional text.\n")

	return b.String()
}

// SingleQuestionSystemMessage returns the system message for generating
// one follow-up question.
func SingleQuestionSystemMessage() string {
	return `You are a leadership coach. Generate exactly one short, open follow-up question. Respond with the question text only, no JSON, no quotes.`
}

// BuildSingleQuestionPrompt creates the user prompt for one follow-up
// question about a topic.
func BuildSingleQuestionPrompt(topic string) string {
	return fmt.Sprintf("Topic: %s\n\nOne follow-up question:", orPlaceholder(topic, "Unknown"))
}
