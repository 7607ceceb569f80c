package llm

import (
	"context"
	"errors"
	"strings"

	"github.com/liushuangls/go-anthropic/v2"
	"go.uber.org/zap"
)

// DefaultAnthropicModel is used when no model is configured.
const DefaultAnthropicModel = "claude-3-5-haiku-latest"

// AnthropicClient talks to the Anthropic messages endpoint for
// completions. Transcription is delegated to an OpenAI audio client
// when a transcription credential is configured; Anthropic has no
// audio endpoint.
type AnthropicClient struct {
	api         *anthropic.Client
	model       string
	apiKey      string
	transcriber *OpenAIClient
	logger      *zap.Logger
}

// NewAnthropicClient creates an Anthropic-backed AI client.
func NewAnthropicClient(cfg *Config, logger *zap.Logger) *AnthropicClient {
	model := cfg.Model
	if model == "" {
		model = DefaultAnthropicModel
	}

	var transcriber *OpenAIClient
	if cfg.TranscriptionAPIKey != "" {
		transcriber = NewOpenAIClient(&Config{
			APIKey:             cfg.TranscriptionAPIKey,
			TranscriptionModel: cfg.TranscriptionModel,
		}, logger)
	}

	return &AnthropicClient{
		api:         anthropic.NewClient(cfg.APIKey),
		model:       model,
		apiKey:      cfg.APIKey,
		transcriber: transcriber,
		logger:      logger.Named("llm-anthropic"),
	}
}

// Complete implements Client. One request, no retry.
func (c *AnthropicClient) Complete(ctx context.Context, systemPrompt, userPrompt string, opts CompleteOptions) (string, error) {
	if c.apiKey == "" {
		return "", ErrNotConfigured
	}

	temperature := opts.Temperature
	if temperature == 0 {
		temperature = 0.4
	}
	maxTokens := opts.MaxTokens
	if maxTokens == 0 {
		maxTokens = 1024
	}

	c.logger.Debug("completion request",
		zap.String("model", c.model),
		zap.Int("prompt_len", len(userPrompt)))

	resp, err := c.api.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:  anthropic.Model(c.model),
		System: systemPrompt,
		Messages: []anthropic.Message{
			anthropic.NewUserTextMessage(userPrompt),
		},
		MaxTokens:   maxTokens,
		Temperature: &temperature,
	})
	if err != nil {
		return "", classifyAnthropicError(err)
	}

	text := resp.GetFirstContentText()
	if text == "" {
		return "", &Error{Kind: ErrorKindEnvelope, Message: "no text content in response"}
	}

	return strings.TrimSpace(text), nil
}

// Transcribe implements Client by delegating to the OpenAI audio
// endpoint. Without a transcription credential this is a
// configuration failure, not a transport one.
func (c *AnthropicClient) Transcribe(ctx context.Context, audio []byte, instruction string) (string, error) {
	if c.transcriber == nil {
		return "", ErrNotConfigured
	}
	return c.transcriber.Transcribe(ctx, audio, instruction)
}

// Model implements Client.
func (c *AnthropicClient) Model() string {
	return c.model
}

func classifyAnthropicError(err error) error {
	if timeoutErr, ok := wrapContextErr(err); ok {
		return timeoutErr
	}

	var apiErr *anthropic.APIError
	if errors.As(err, &apiErr) {
		return &Error{
			Kind:    ErrorKindServer,
			Message: apiErr.Message,
			Cause:   err,
		}
	}

	var reqErr *anthropic.RequestError
	if errors.As(err, &reqErr) {
		return &Error{
			Kind:       ErrorKindStatus,
			StatusCode: reqErr.StatusCode,
			Cause:      err,
		}
	}

	return &Error{Kind: ErrorKindStatus, Message: "request failed", Cause: err}
}

var _ Client = (*AnthropicClient)(nil)
