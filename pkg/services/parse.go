// Package services implements the journal and insight services on top
// of the repositories and the AI client.
package services

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"

	"github.com/crewlog/crewlog-engine/pkg/jsonutil"
	"github.com/crewlog/crewlog-engine/pkg/llm"
	"github.com/crewlog/crewlog-engine/pkg/models"
)

// Response parsing is tolerant by contract: a malformed model response
// never produces an error, only a degraded result. Every parser here
// returns a usable value for arbitrary input.

type rawCommitment struct {
	Title     json.RawMessage `json:"title"`
	Direction json.RawMessage `json:"direction"`
}

type rawEntrySummary struct {
	Summary             json.RawMessage `json:"summary"`
	Assumptions         json.RawMessage `json:"assumptions"`
	SuggestedReviewDays json.RawMessage `json:"suggestedReviewDays"`
	Commitments         []rawCommitment `json:"commitments"`
}

// ParseEntrySummary converts a model response into an EntrySummaryResult.
// When no JSON can be found the whole response is treated as the summary
// text with no suggested actions.
func ParseEntrySummary(response string) *models.EntrySummaryResult {
	result := &models.EntrySummaryResult{
		SuggestedActions: []models.SuggestedCommitment{},
	}

	extracted, ok := llm.ExtractJSON(response)
	if !ok {
		result.Summary = strings.TrimSpace(response)
		return result
	}

	var raw rawEntrySummary
	if err := json.Unmarshal([]byte(extracted), &raw); err != nil {
		result.Summary = strings.TrimSpace(response)
		return result
	}

	result.Summary = strings.TrimSpace(jsonutil.FlexibleString(raw.Summary))
	result.Assumptions = strings.TrimSpace(jsonutil.FlexibleString(raw.Assumptions))
	result.SuggestedReviewDays = jsonutil.FlexibleInt(raw.SuggestedReviewDays)

	for _, c := range raw.Commitments {
		title := strings.TrimSpace(jsonutil.FlexibleString(c.Title))
		if title == "" {
			continue
		}
		result.SuggestedActions = append(result.SuggestedActions, models.SuggestedCommitment{
			Title:     title,
			Direction: models.ParseCommitmentDirection(jsonutil.FlexibleString(c.Direction)),
		})
	}

	return result
}

// ParsePrepBriefing converts a model response into a PrepBriefingResult.
// A response without JSON is used verbatim as the briefing.
func ParsePrepBriefing(response string) *models.PrepBriefingResult {
	extracted, ok := llm.ExtractJSON(response)
	if !ok {
		return &models.PrepBriefingResult{Briefing: strings.TrimSpace(response)}
	}

	var raw struct {
		Briefing json.RawMessage `json:"briefing"`
	}
	if err := json.Unmarshal([]byte(extracted), &raw); err != nil {
		return &models.PrepBriefingResult{Briefing: strings.TrimSpace(response)}
	}

	briefing := strings.TrimSpace(jsonutil.FlexibleString(raw.Briefing))
	if briefing == "" {
		briefing = strings.TrimSpace(response)
	}
	return &models.PrepBriefingResult{Briefing: briefing}
}

type rawQuestion struct {
	Text    json.RawMessage `json:"text"`
	EntryID json.RawMessage `json:"entry_id"`
}

// ParseReflectionQuestions converts a model response into questions and
// suggestions. When the response carries no JSON, its non-empty prose
// lines become questions with no entry links.
func ParseReflectionQuestions(response string) ([]models.ReflectionQuestion, []string) {
	extracted, ok := llm.ExtractJSON(response)
	if !ok {
		return questionsFromProse(response), nil
	}

	var raw struct {
		Questions   []rawQuestion   `json:"questions"`
		Suggestions json.RawMessage `json:"suggestions"`
	}
	if err := json.Unmarshal([]byte(extracted), &raw); err != nil {
		return questionsFromProse(response), nil
	}

	var questions []models.ReflectionQuestion
	for _, q := range raw.Questions {
		text := strings.TrimSpace(jsonutil.FlexibleString(q.Text))
		if text == "" {
			continue
		}
		question := models.ReflectionQuestion{Text: text}
		if id, err := uuid.Parse(jsonutil.FlexibleString(q.EntryID)); err == nil {
			question.EntryID = &id
		}
		questions = append(questions, question)
	}

	return questions, jsonutil.FlexibleStrings(raw.Suggestions)
}

// questionsFromProse salvages question lines from a non-JSON response.
func questionsFromProse(response string) []models.ReflectionQuestion {
	var questions []models.ReflectionQuestion
	for _, line := range strings.Split(response, "\n") {
		line = stripListMarker(strings.TrimSpace(line))
		if line == "" || strings.HasPrefix(line, "{") || strings.HasPrefix(line, "[") {
			continue
		}
		questions = append(questions, models.ReflectionQuestion{Text: line})
	}
	return questions
}

// stripListMarker removes a leading bullet or ordinal ("- ", "* ",
// "1. ", "2) ") from a line. A bare number followed by text is content,
// not a marker, and is left alone.
func stripListMarker(line string) string {
	if len(line) >= 2 && (line[0] == '-' || line[0] == '*') && (line[1] == ' ' || line[1] == '\t') {
		return strings.TrimSpace(line[2:])
	}
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i > 0 && i < len(line) && (line[i] == '.' || line[i] == ')') {
		rest := line[i+1:]
		if rest != strings.TrimLeft(rest, " \t") {
			return strings.TrimSpace(rest)
		}
	}
	return line
}

// ParseThemes converts a model response into lowercase theme strings.
func ParseThemes(response string) []string {
	extracted, ok := llm.ExtractJSON(response)
	if !ok {
		return nil
	}

	var raw struct {
		Themes json.RawMessage `json:"themes"`
	}
	if err := json.Unmarshal([]byte(extracted), &raw); err != nil {
		return nil
	}

	var themes []string
	for _, t := range jsonutil.FlexibleStrings(raw.Themes) {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			themes = append(themes, t)
		}
	}
	return themes
}

// maxPatternInsights caps how many pattern observations are kept.
const maxPatternInsights = 3

// ParsePatternAnalysis converts a model response into a pattern
// analysis. A response without JSON becomes the recommendation text.
func ParsePatternAnalysis(response string) *models.DecisionPatternAnalysis {
	extracted, ok := llm.ExtractJSON(response)
	if !ok {
		return &models.DecisionPatternAnalysis{
			Recommendation: strings.TrimSpace(response),
		}
	}

	var raw struct {
		Insights       json.RawMessage `json:"insights"`
		Recommendation json.RawMessage `json:"recommendation"`
	}
	if err := json.Unmarshal([]byte(extracted), &raw); err != nil {
		return &models.DecisionPatternAnalysis{
			Recommendation: strings.TrimSpace(response),
		}
	}

	insights := jsonutil.FlexibleStrings(raw.Insights)
	if len(insights) > maxPatternInsights {
		insights = insights[:maxPatternInsights]
	}

	return &models.DecisionPatternAnalysis{
		Insights:       insights,
		Recommendation: strings.TrimSpace(jsonutil.FlexibleString(raw.Recommendation)),
	}
}

// ParseSingleQuestion extracts one question from a plain-text response.
// The model is told to reply with the question only; this trims the
// decoration models add anyway.
func ParseSingleQuestion(response string) string {
	line := strings.TrimSpace(response)
	if idx := strings.IndexByte(line, '\n'); idx >= 0 {
		line = strings.TrimSpace(line[:idx])
	}
	line = strings.Trim(line, `"'`)
	return strings.TrimSpace(line)
}
