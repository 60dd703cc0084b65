package config

// Defaults returns a Config with sensible default values.
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: ":8080",
		},
		LLM: LLMConfig{
			Temperature: 0.7,
			MaxTokens:   1024,
		},
		Auth: AuthConfig{
			Mode: "static",
		},
	}
}
