package llm

import (
	"errors"
	"testing"

	"chatrelay/internal/config"
)

func testDispatcher() *Dispatcher {
	return NewDispatcher(config.LLMConfig{
		OpenAIAPIKey:    "sk-test",
		AnthropicAPIKey: "sk-ant-test",
		Temperature:     0.7,
		MaxTokens:       1024,
	}, nil)
}

func TestSelectBackendOpenAI(t *testing.T) {
	d := testDispatcher()

	for _, model := range []string{ModelGPT35Turbo, ModelGPT4} {
		provider, err := d.SelectBackend(model)
		if err != nil {
			t.Fatal(err)
		}
		if provider.Name() != "openai" {
			t.Fatalf("%s: expected openai backend, got %s", model, provider.Name())
		}
		if provider.Model() != model {
			t.Fatalf("expected handle bound to %s, got %s", model, provider.Model())
		}
	}
}

func TestSelectBackendAnthropic(t *testing.T) {
	d := testDispatcher()

	for _, model := range []string{ModelClaudeOpus, ModelClaudeSonnet} {
		provider, err := d.SelectBackend(model)
		if err != nil {
			t.Fatal(err)
		}
		if provider.Name() != "anthropic" {
			t.Fatalf("%s: expected anthropic backend, got %s", model, provider.Name())
		}
	}
}

func TestSelectBackendUnsupported(t *testing.T) {
	d := testDispatcher()

	_, err := d.SelectBackend("unknown-model")
	var unsupported *UnsupportedModelError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected UnsupportedModelError, got %v", err)
	}
}

func TestBuildMessagesAppendsInput(t *testing.T) {
	history := []Message{
		{Role: RoleUser, Content: "Hello"},
		{Role: RoleAssistant, Content: "Hi!"},
	}

	msgs := buildMessages(history, "How are you?")
	if len(msgs) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(msgs))
	}
	if msgs[2].Role != RoleUser || msgs[2].Content != "How are you?" {
		t.Fatalf("expected input as final user turn, got %+v", msgs[2])
	}
}

func TestBuildMessagesSkipsDuplicateInput(t *testing.T) {
	// The caller appends the user turn to memory before invoking; the
	// dispatcher must not send it twice.
	history := []Message{
		{Role: RoleUser, Content: "Hello"},
	}

	msgs := buildMessages(history, "Hello")
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}
}

func TestBuildMessagesEmptyHistory(t *testing.T) {
	msgs := buildMessages(nil, "Hello")
	if len(msgs) != 1 || msgs[0].Content != "Hello" {
		t.Fatalf("unexpected messages: %+v", msgs)
	}
}
