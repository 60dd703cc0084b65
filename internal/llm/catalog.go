package llm

import "fmt"

// Family identifies the provider family a model belongs to.
type Family string

const (
	FamilyOpenAI    Family = "openai"
	FamilyAnthropic Family = "anthropic"
)

// The closed set of selectable models. Selection outside this set is an
// UnsupportedModelError, not a passthrough to the provider.
const (
	ModelGPT35Turbo   = "gpt-3.5-turbo"
	ModelGPT4         = "gpt-4"
	ModelClaudeOpus   = "claude-3-opus-latest"
	ModelClaudeSonnet = "claude-3-7-sonnet-latest"
)

var modelFamilies = map[string]Family{
	ModelGPT35Turbo:   FamilyOpenAI,
	ModelGPT4:         FamilyOpenAI,
	ModelClaudeOpus:   FamilyAnthropic,
	ModelClaudeSonnet: FamilyAnthropic,
}

// UnsupportedModelError is returned when a model identifier is outside the
// supported enumeration.
type UnsupportedModelError struct {
	Model string
}

func (e *UnsupportedModelError) Error() string {
	return fmt.Sprintf("unsupported model: %s", e.Model)
}

// FamilyOf returns the provider family for a model identifier.
func FamilyOf(model string) (Family, error) {
	family, ok := modelFamilies[model]
	if !ok {
		return "", &UnsupportedModelError{Model: model}
	}
	return family, nil
}

// SupportedModels returns the model enumeration in a stable order.
func SupportedModels() []string {
	return []string{ModelGPT35Turbo, ModelGPT4, ModelClaudeOpus, ModelClaudeSonnet}
}

// Supported reports whether the model identifier is in the enumeration.
func Supported(model string) bool {
	_, ok := modelFamilies[model]
	return ok
}
