package llm

import (
	"strings"

	"go.uber.org/zap"
)

// Supported provider names.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// New builds the AI client for the configured provider. Unknown or
// empty providers fall back to OpenAI. Construction never fails:
// missing credentials surface per call as ErrNotConfigured so the
// journal keeps working without AI.
func New(cfg *Config, logger *zap.Logger) Client {
	switch strings.ToLower(cfg.Provider) {
	case ProviderAnthropic:
		return NewAnthropicClient(cfg, logger)
	default:
		return NewOpenAIClient(cfg, logger)
	}
}
