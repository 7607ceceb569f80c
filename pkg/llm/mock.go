package llm

import "context"

// MockClient is a configurable mock for testing AI-backed code paths.
// Set the function fields to control behavior in tests.
type MockClient struct {
	// CompleteFunc is called when Complete is invoked.
	// If nil, returns empty string and nil error.
	CompleteFunc func(ctx context.Context, systemPrompt, userPrompt string, opts CompleteOptions) (string, error)

	// TranscribeFunc is called when Transcribe is invoked.
	// If nil, returns empty string and nil error.
	TranscribeFunc func(ctx context.Context, audio []byte, instruction string) (string, error)

	// ModelName is returned by Model. Defaults to "mock-model".
	ModelName string

	// Call tracking for verification
	CompleteCalls   int
	TranscribeCalls int
}

// NewMockClient creates a new mock with sensible defaults.
func NewMockClient() *MockClient {
	return &MockClient{ModelName: "mock-model"}
}

// Complete implements Client.
func (m *MockClient) Complete(ctx context.Context, systemPrompt, userPrompt string, opts CompleteOptions) (string, error) {
	m.CompleteCalls++
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, systemPrompt, userPrompt, opts)
	}
	return "", nil
}

// Transcribe implements Client.
func (m *MockClient) Transcribe(ctx context.Context, audio []byte, instruction string) (string, error) {
	m.TranscribeCalls++
	if m.TranscribeFunc != nil {
		return m.TranscribeFunc(ctx, audio, instruction)
	}
	return "", nil
}

// Model implements Client.
func (m *MockClient) Model() string {
	if m.ModelName == "" {
		return "mock-model"
	}
	return m.ModelName
}

// Reset clears call tracking counters.
func (m *MockClient) Reset() {
	m.CompleteCalls = 0
	m.TranscribeCalls = 0
}

var _ Client = (*MockClient)(nil)
