package config

// Config is the top-level application configuration.
type Config struct {
	Server ServerConfig `json:"server"`
	LLM    LLMConfig    `json:"llm"`
	Store  StoreConfig  `json:"store"`
	Auth   AuthConfig   `json:"auth"`
}

type ServerConfig struct {
	Addr string `json:"addr"`
}

// LLMConfig carries the credentials and generation parameters for both
// provider families. A key may hold the "[keyring]" placeholder, in which
// case it is resolved through the key store at startup.
type LLMConfig struct {
	OpenAIAPIKey    string  `json:"openai_api_key,omitempty"`
	OpenAIBaseURL   string  `json:"openai_base_url,omitempty"`
	AnthropicAPIKey string  `json:"anthropic_api_key,omitempty"`
	Temperature     float64 `json:"temperature"`
	MaxTokens       int     `json:"max_tokens"`
}

type StoreConfig struct {
	Path string `json:"path,omitempty"`
}

// AuthConfig selects how bearer credentials are verified.
// Mode "static" checks tokens against the Tokens map (token -> user id).
// Mode "remote" asks the auth service at URL.
type AuthConfig struct {
	Mode   string            `json:"mode"`
	Tokens map[string]string `json:"tokens,omitempty"`
	URL    string            `json:"url,omitempty"`
}
