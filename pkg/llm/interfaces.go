// Package llm provides the AI completion and transcription clients,
// their error taxonomy, and the timeout race used to bound every call.
package llm

import "context"

// CompleteOptions tune a single completion request.
type CompleteOptions struct {
	// Temperature defaults to 0.4 when zero.
	Temperature float32
	// MaxTokens defaults to 1024 when zero.
	MaxTokens int
}

// Client is the provider-agnostic AI client. Each method performs
// exactly one network call; there is no internal retry. Use this
// interface for dependency injection to enable mocking in tests.
type Client interface {
	// Complete sends one chat-completion request and returns the
	// model's response text, trimmed of surrounding whitespace.
	Complete(ctx context.Context, systemPrompt, userPrompt string, opts CompleteOptions) (string, error)

	// Transcribe sends raw audio bytes with a formatting instruction
	// and returns the transcribed text, trimmed.
	Transcribe(ctx context.Context, audio []byte, instruction string) (string, error)

	// Model returns the configured completion model name.
	Model() string
}

// Config holds configuration for creating an AI client.
type Config struct {
	Provider string // "openai" (default) or "anthropic"
	BaseURL  string // optional override, e.g. for a proxy
	Model    string // completion model; provider default when empty
	APIKey   string // completion credential; calls fail with ErrNotConfigured when empty

	// Transcription always goes through the OpenAI audio endpoint.
	// TranscriptionAPIKey falls back to APIKey for the openai provider.
	TranscriptionModel  string
	TranscriptionAPIKey string
}

// EffectiveTranscriptionKey returns the credential used for audio
// transcription, falling back to the completion key for OpenAI setups.
func (c *Config) EffectiveTranscriptionKey() string {
	if c.TranscriptionAPIKey != "" {
		return c.TranscriptionAPIKey
	}
	if c.Provider == "" || c.Provider == ProviderOpenAI {
		return c.APIKey
	}
	return ""
}
