package prompts

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/crewlog/crewlog-engine/pkg/models"
)

//go:embed fallbacks.yaml
var fallbacksYAML []byte

var fallbackSets map[string][]string

func init() {
	if err := yaml.Unmarshal(fallbacksYAML, &fallbackSets); err != nil {
		// The file is embedded at build time; a parse failure is a
		// packaging bug, not a runtime condition.
		panic(fmt.Sprintf("prompts: invalid fallbacks.yaml: %v", err))
	}
}

// FallbackQuestions returns the fixed, non-AI question set for a
// reflection scope. Unknown scopes get the quick set. The returned
// questions carry no entry links.
func FallbackQuestions(scope models.ReflectionScope) []models.ReflectionQuestion {
	texts, ok := fallbackSets[string(scope)]
	if !ok {
		texts = fallbackSets[string(models.ReflectionQuick)]
	}

	questions := make([]models.ReflectionQuestion, 0, len(texts))
	for _, text := range texts {
		questions = append(questions, models.ReflectionQuestion{Text: text})
	}
	return questions
}
