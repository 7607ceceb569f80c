package prompts

import (
	"fmt"
	"strings"

	"github.com/crewlog/crewlog-engine/pkg/models"
)

// EntrySummarySystemMessage returns the system message for entry
// summarization.
func EntrySummarySystemMessage() string {
	return `You are an executive assistant summarizing a leader's journal entry. Be concise and factual. Extract only commitments that are clearly stated or strongly implied.`
}

// BuildEntrySummaryPrompt creates the user prompt for summarizing a
// journal entry. The project name is optional; "None" is rendered when
// the entry has no project.
func BuildEntrySummaryPrompt(entry *models.Entry, projectName string) string {
	var b strings.Builder

	b.WriteString("# Journal Entry\n\n")
	b.WriteString(fmt.Sprintf("Kind: %s\n", entry.Kind))
	b.WriteString(fmt.Sprintf("Title: %s\n", orPlaceholder(entry.Title, "Untitled")))
	b.WriteString(fmt.Sprintf("Project: %s\n", orPlaceholder(projectName, "None")))
	b.WriteString(fmt.Sprintf("Occurred: %s\n\n", entry.OccurredAt.Format("2006-01-02")))
	b.WriteString("## Content\n\n")
	b.WriteString(orPlaceholder(entry.Content, "None"))
	b.WriteString("\n\n")

	b.WriteString("## Output Format\n\n")
	b.WriteString("Respond in JSON with:\n")
	b.WriteString("- `summary`: 2-3 sentence summary of the entry\n")
	b.WriteString("- `commitments`: Array of commitments mentioned (may be empty)\n")
	b.WriteString("  - `title`: short imperative description\n")
	b.WriteString("  - `direction`: \"i_owe\" if the author promised it, \"waiting_for\" if someone else did\n\n")
	b.WriteString("Example:\n")
	b.WriteString("```json\n")
	b.WriteString(`{"summary": "Discussed Q3 staffing with the platform team.", "commitments": [{"title": "Send headcount proposal", "direction": "i_owe"}]}` + "\n")
	b.WriteString("```\n\n")
	b.WriteString("Return ONLY the JSON, no additional text.\n")

	return b.String()
}

// DecisionSummarySystemMessage returns the system message for decision
// summarization.
func DecisionSummarySystemMessage() string {
	return `You are a decision-journaling coach. Summarize the decision, surface the assumptions it rests on, and suggest when to review it. Be direct; do not soften bad news.`
}

// BuildDecisionSummaryPrompt creates the user prompt for summarizing a
// decision entry, including its metadata when present.
func BuildDecisionSummaryPrompt(entry *models.Entry, projectName string) string {
	var b strings.Builder

	b.WriteString("# Decision Record\n\n")
	b.WriteString(fmt.Sprintf("Title: %s\n", orPlaceholder(entry.Title, "Untitled")))
	b.WriteString(fmt.Sprintf("Project: %s\n", orPlaceholder(projectName, "None")))
	b.WriteString(fmt.Sprintf("Decided: %s\n", entry.OccurredAt.Format("2006-01-02")))

	if d := entry.Decision; d != nil {
		b.WriteString(fmt.Sprintf("Rationale: %s\n", orPlaceholder(d.Rationale, "Unknown")))
		if d.Confidence > 0 {
			b.WriteString(fmt.Sprintf("Stated confidence: %d/5\n", d.Confidence))
		}
		if d.Stakes != "" {
			b.WriteString(fmt.Sprintf("Stakes: %s\n", d.Stakes))
		}
	}
	b.WriteString("\n## Content\n\n")
	b.WriteString(orPlaceholder(entry.Content, "None"))
	b.WriteString("\n\n")

	b.WriteString("## Output Format\n\n")
	b.WriteString("Respond in JSON with:\n")
	b.WriteString("- `summary`: what was decided, in 1-2 sentences\n")
	b.WriteString("- `assumptions`: the key assumptions this decision rests on\n")
	b.WriteString("- `suggestedReviewDays`: integer, days until the decision should be reviewed\n")
	b.WriteString("- `commitments`: array of {title, direction} follow-ups (may be empty)\n\n")
	b.WriteString("Return ONLY the JSON, no additional text.\n")

	return b.String()
}
