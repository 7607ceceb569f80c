package prompts

import (
	"fmt"
	"strings"

	"github.com/crewlog/crewlog-engine/pkg/models"
)

// PatternsSystemMessage returns the system message for decision-pattern
// analysis.
func PatternsSystemMessage() string {
	return `You are a decision-quality analyst reviewing a leader's past decisions. Identify recurring patterns: confidence calibration, stakes versus outcomes, themes in what goes well or badly. Be specific and honest.`
}

// BuildDecisionPatternsPrompt creates the user prompt for analyzing
// patterns across past decision entries.
func BuildDecisionPatternsPrompt(decisions []models.Entry) string {
	var b strings.Builder

	b.WriteString("# Decision History\n\n")
	for _, d := range limitEntries(decisions) {
		b.WriteString(fmt.Sprintf("- %q (%s)", orPlaceholder(d.Title, "Untitled"), d.OccurredAt.Format("2006-01-02")))
		if meta := d.Decision; meta != nil {
			if meta.Confidence > 0 {
				b.WriteString(fmt.Sprintf(" confidence=%d/5", meta.Confidence))
			}
			if meta.Stakes != "" {
				b.WriteString(fmt.Sprintf(" stakes=%s", meta.Stakes))
			}
			if meta.Outcome != "" && meta.Outcome != models.OutcomePending {
				b.WriteString(fmt.Sprintf(" outcome=%s", meta.Outcome))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString("\n## Output Format\n\n")
	b.WriteString("Respond in JSON with:\n")
	b.WriteString("- `insights`: array of at most 3 short pattern observations\n")
	b.WriteString("- `recommendation`: one concrete recommendation\n\n")
	b.WriteString("Return ONLY the JSON, no additional text.\n")

	return b.String()
}

// ThemesSystemMessage returns the system message for theme extraction.
func ThemesSystemMessage() string {
	return `You extract recurring themes from reflection answers. Themes are 1-3 word lowercase phrases. At most 5 themes.`
}

// BuildThemeExtractionPrompt creates the user prompt for extracting
// themes from a set of reflection answers.
func BuildThemeExtractionPrompt(answers []string) string {
	var b strings.Builder

	b.WriteString("# Reflection Answers\n\n")
	for _, a := range answers {
		if strings.TrimSpace(a) == "" {
			continue
		}
		b.WriteString("> ")
		b.WriteString(excerpt(a))
		b.WriteString("\n")
	}

	b.WriteString("\n## Output Format\n\n")
	b.WriteString("Respond in JSON with:\n")
	b.WriteString("- `themes`: array of lowercase theme strings\n\n")
	b.WriteString("Return ONLY the JSON, no additional text.\n")

	return b.String()
}

// TranscriptionInstruction is the formatting prompt sent with audio
// transcription requests.
const TranscriptionInstruction = "Transcribe this leadership journal voice note. Use complete sentences and paragraph breaks. Preserve names as spoken."
