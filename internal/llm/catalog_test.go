package llm

import (
	"errors"
	"testing"
)

func TestFamilyOf(t *testing.T) {
	cases := []struct {
		model  string
		family Family
	}{
		{ModelGPT35Turbo, FamilyOpenAI},
		{ModelGPT4, FamilyOpenAI},
		{ModelClaudeOpus, FamilyAnthropic},
		{ModelClaudeSonnet, FamilyAnthropic},
	}

	for _, tc := range cases {
		family, err := FamilyOf(tc.model)
		if err != nil {
			t.Fatalf("%s: %v", tc.model, err)
		}
		if family != tc.family {
			t.Fatalf("%s: expected %s, got %s", tc.model, tc.family, family)
		}
	}
}

func TestFamilyOfUnknownModel(t *testing.T) {
	_, err := FamilyOf("unknown-model")
	if err == nil {
		t.Fatal("expected error for unknown model")
	}

	var unsupported *UnsupportedModelError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected UnsupportedModelError, got %T", err)
	}
	if unsupported.Model != "unknown-model" {
		t.Fatalf("expected model in error, got %q", unsupported.Model)
	}
}

func TestSupported(t *testing.T) {
	for _, model := range SupportedModels() {
		if !Supported(model) {
			t.Fatalf("%s should be supported", model)
		}
	}
	if Supported("gpt-5-does-not-exist") {
		t.Fatal("unknown model reported as supported")
	}
}
