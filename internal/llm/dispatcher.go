package llm

import (
	"context"
	"fmt"

	"chatrelay/internal/config"
)

// MemorySource supplies the accumulated conversation context for a session.
// Implemented by the session registry.
type MemorySource interface {
	Variables(ctx context.Context, sessionID string) ([]Message, error)
}

// Dispatcher maps model identifiers to configured provider handles and
// issues completions, optionally bound to a session's memory.
type Dispatcher struct {
	cfg    config.LLMConfig
	memory MemorySource
}

// NewDispatcher creates a dispatcher. memory may be nil if only stateless
// invocation is needed.
func NewDispatcher(cfg config.LLMConfig, memory MemorySource) *Dispatcher {
	return &Dispatcher{cfg: cfg, memory: memory}
}

// SelectBackend constructs a provider handle for the given model identifier,
// configured with the family's credential and the selected model.
func (d *Dispatcher) SelectBackend(model string) (Provider, error) {
	family, err := FamilyOf(model)
	if err != nil {
		return nil, err
	}

	switch family {
	case FamilyOpenAI:
		return NewOpenAIProvider(OpenAIConfig{
			APIKey:  d.cfg.OpenAIAPIKey,
			BaseURL: d.cfg.OpenAIBaseURL,
			Model:   model,
		}), nil
	case FamilyAnthropic:
		return NewAnthropicProvider(AnthropicConfig{
			APIKey: d.cfg.AnthropicAPIKey,
			Model:  model,
		}), nil
	}
	return nil, &UnsupportedModelError{Model: model}
}

// InvokeStateless issues a single-turn completion with no conversation
// context.
func (d *Dispatcher) InvokeStateless(ctx context.Context, model, message string) (string, error) {
	provider, err := d.SelectBackend(model)
	if err != nil {
		return "", err
	}

	req := &ChatRequest{
		Model:       model,
		Messages:    []Message{{Role: RoleUser, Content: message}},
		MaxTokens:   d.cfg.MaxTokens,
		Temperature: d.cfg.Temperature,
	}

	resp, err := provider.Chat(ctx, req)
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

// InvokeWithMemory issues a completion with the session's accumulated
// history as prior context and message as the new input. It never appends
// to memory itself; the caller appends the user turn before invoking and
// the assistant turn after.
func (d *Dispatcher) InvokeWithMemory(ctx context.Context, model, sessionID, message string) (string, error) {
	if d.memory == nil {
		return "", fmt.Errorf("no memory source configured")
	}

	provider, err := d.SelectBackend(model)
	if err != nil {
		return "", err
	}

	history, err := d.memory.Variables(ctx, sessionID)
	if err != nil {
		return "", err
	}

	req := &ChatRequest{
		Model:       model,
		Messages:    buildMessages(history, message),
		MaxTokens:   d.cfg.MaxTokens,
		Temperature: d.cfg.Temperature,
	}

	resp, err := provider.Chat(ctx, req)
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

// buildMessages appends message as the final user turn unless the caller
// already appended it to the history before invoking.
func buildMessages(history []Message, message string) []Message {
	if n := len(history); n > 0 && history[n-1].Role == RoleUser && history[n-1].Content == message {
		return history
	}
	return append(history, Message{Role: RoleUser, Content: message})
}
