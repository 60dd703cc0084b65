package llm

import "context"

// Provider is the interface all LLM backends must implement. A handle is
// configured for exactly one model identifier at construction time.
type Provider interface {
	// Chat sends a chat completion request and returns the full response.
	Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error)

	// Name returns the provider family name (e.g. "openai", "anthropic").
	Name() string

	// Model returns the model identifier this handle is configured for.
	Model() string
}

// LLMError wraps an error with a classification.
type LLMError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *LLMError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *LLMError) Unwrap() error {
	return e.Err
}
