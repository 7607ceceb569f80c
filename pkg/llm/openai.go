package llm

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// Default models for the OpenAI provider.
const (
	DefaultOpenAIModel        = "gpt-4o-mini"
	DefaultTranscriptionModel = "whisper-1"
)

// OpenAIClient talks to the OpenAI chat-completion and audio endpoints.
type OpenAIClient struct {
	api             *openai.Client
	model           string
	transcribeModel string
	apiKey          string
	transcribeKey   string
	logger          *zap.Logger
}

// NewOpenAIClient creates an OpenAI-backed AI client. The client is
// always constructed, even without a credential; calls made while
// unconfigured fail with ErrNotConfigured so features can degrade
// instead of the process refusing to start.
func NewOpenAIClient(cfg *Config, logger *zap.Logger) *OpenAIClient {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	}

	model := cfg.Model
	if model == "" {
		model = DefaultOpenAIModel
	}
	transcribeModel := cfg.TranscriptionModel
	if transcribeModel == "" {
		transcribeModel = DefaultTranscriptionModel
	}

	return &OpenAIClient{
		api:             openai.NewClientWithConfig(clientConfig),
		model:           model,
		transcribeModel: transcribeModel,
		apiKey:          cfg.APIKey,
		transcribeKey:   cfg.EffectiveTranscriptionKey(),
		logger:          logger.Named("llm-openai"),
	}
}

// Complete implements Client. One request, no retry.
func (c *OpenAIClient) Complete(ctx context.Context, systemPrompt, userPrompt string, opts CompleteOptions) (string, error) {
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
		zap.Int("prompt_len", len(userPrompt)),
		zap.Float32("temperature", temperature))

	start := time.Now()

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		c.logger.Warn("completion request failed",
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return "", classifyOpenAIError(err)
	}

	if len(resp.Choices) == 0 {
		return "", &Error{Kind: ErrorKindEnvelope, Message: "no choices in response"}
	}

	c.logger.Debug("completion request completed",
		zap.Int("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens),
		zap.Duration("elapsed", time.Since(start)))

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// Transcribe implements Client using the audio transcription endpoint.
// The audio bytes are sent as a multipart m4a file with the formatting
// instruction in the prompt field.
func (c *OpenAIClient) Transcribe(ctx context.Context, audio []byte, instruction string) (string, error) {
	if c.transcribeKey == "" {
		return "", ErrNotConfigured
	}

	resp, err := c.api.CreateTranscription(ctx, openai.AudioRequest{
		Model:    c.transcribeModel,
		FilePath: "capture.m4a",
		Reader:   bytes.NewReader(audio),
		Prompt:   instruction,
	})
	if err != nil {
		return "", classifyOpenAIError(err)
	}

	return strings.TrimSpace(resp.Text), nil
}

// Model implements Client.
func (c *OpenAIClient) Model() string {
	return c.model
}

// classifyOpenAIError maps SDK errors onto the transport taxonomy:
// a structured API error body becomes a server error with the
// server-supplied message, a bare non-2xx becomes a status error, and
// context expiry becomes the timeout kind.
func classifyOpenAIError(err error) error {
	if timeoutErr, ok := wrapContextErr(err); ok {
		return timeoutErr
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &Error{
			Kind:       ErrorKindServer,
			StatusCode: apiErr.HTTPStatusCode,
			Message:    apiErr.Message,
			Cause:      err,
		}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &Error{
			Kind:       ErrorKindStatus,
			StatusCode: reqErr.HTTPStatusCode,
			Cause:      err,
		}
	}

	return &Error{Kind: ErrorKindStatus, Message: "request failed", Cause: err}
}

var _ Client = (*OpenAIClient)(nil)
