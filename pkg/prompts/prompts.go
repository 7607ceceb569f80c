// Package prompts assembles the (system, user) prompt pairs for every
// AI operation. Builders are pure functions of their inputs: long lists
// are truncated to bound prompt size, missing optional fields render as
// placeholder text, and no builder ever fails.
package prompts

import (
	"fmt"
	"strings"
	"time"

	"github.com/crewlog/crewlog-engine/pkg/models"
)

// Truncation bounds applied by every builder.
const (
	MaxRecentEntries = 10
	MaxExcerpts      = 3
	MaxExcerptLen    = 200
)

// orPlaceholder substitutes a placeholder for empty optional fields so
// prompts never contain bare gaps.
func orPlaceholder(s, placeholder string) string {
	if strings.TrimSpace(s) == "" {
		return placeholder
	}
	return s
}

// excerpt clips s to MaxExcerptLen runes.
func excerpt(s string) string {
	runes := []rune(strings.TrimSpace(s))
	if len(runes) <= MaxExcerptLen {
		return string(runes)
	}
	return string(runes[:MaxExcerptLen]) + "..."
}

// limitEntries returns at most MaxRecentEntries entries.
func limitEntries(entries []models.Entry) []models.Entry {
	if len(entries) > MaxRecentEntries {
		return entries[:MaxRecentEntries]
	}
	return entries
}

// writeEntryLine renders one timeline entry as a bullet.
func writeEntryLine(b *strings.Builder, e models.Entry) {
	title := orPlaceholder(e.Title, "Untitled")
	b.WriteString(fmt.Sprintf("- [%s] %s (%s)", e.Kind, title, e.OccurredAt.Format("2006-01-02")))
	if content := strings.TrimSpace(e.Content); content != "" {
		b.WriteString(": ")
		b.WriteString(excerpt(content))
	}
	b.WriteString("\n")
}

// writeCommitmentLine renders one commitment as a bullet.
func writeCommitmentLine(b *strings.Builder, c models.Commitment, now time.Time) {
	who := "I owe"
	if c.Direction == models.DirectionWaitingFor {
		who = "Waiting for"
	}
	b.WriteString(fmt.Sprintf("- %s: %s [%s]", who, orPlaceholder(c.Title, "Untitled"), c.Status))
	if c.DueAt != nil {
		b.WriteString(fmt.Sprintf(" due %s", c.DueAt.Format("2006-01-02")))
		if c.IsOverdue(now) {
			b.WriteString(" (OVERDUE)")
		}
	}
	b.WriteString("\n")
}
