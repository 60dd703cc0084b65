package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
)

const (
	configDir  = ".chatrelay"
	configFile = "config.json"
)

// Loader manages reading and writing the config file.
type Loader struct {
	mu       sync.RWMutex
	config   *Config
	filePath string
}

// NewLoader creates a loader that stores config in ~/.chatrelay/config.json.
func NewLoader() (*Loader, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(home, configDir)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}
	return &Loader{
		filePath: filepath.Join(dir, configFile),
	}, nil
}

// Load reads the config from disk, then applies environment overrides.
// If the file doesn't exist, returns defaults.
func (l *Loader) Load() (*Config, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	cfg := Defaults()

	data, err := os.ReadFile(l.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnv(cfg)
			l.config = cfg
			return cfg, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	applyEnv(cfg)
	l.config = cfg
	return cfg, nil
}

// Save writes the current config to disk.
func (l *Loader) Save(cfg *Config) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	l.config = cfg
	return os.WriteFile(l.filePath, data, 0600)
}

// Get returns the currently loaded config (or defaults if not loaded yet).
func (l *Loader) Get() *Config {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.config == nil {
		return Defaults()
	}
	return l.config
}

// FilePath returns the config file path.
func (l *Loader) FilePath() string {
	return l.filePath
}

// applyEnv overlays environment variables onto the config. Env values win
// over file values so deployments can inject credentials without editing
// the config file.
func applyEnv(cfg *Config) {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.LLM.OpenAIAPIKey = v
	}
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		cfg.LLM.OpenAIBaseURL = v
	}
	if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
		cfg.LLM.AnthropicAPIKey = v
	}
	if v := os.Getenv("CHATRELAY_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("CHATRELAY_DB_PATH"); v != "" {
		cfg.Store.Path = v
	}
	if v := os.Getenv("CHATRELAY_AUTH_URL"); v != "" {
		cfg.Auth.Mode = "remote"
		cfg.Auth.URL = v
	}
	if v := os.Getenv("CHATRELAY_TEMPERATURE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.LLM.Temperature = f
		}
	}
}

// Validate checks that the config is complete enough to start serving.
// Missing provider credentials are fatal: the process must refuse to start
// rather than fail lazily per request.
func Validate(cfg *Config) error {
	if cfg.LLM.OpenAIAPIKey == "" {
		return fmt.Errorf("missing OpenAI API key (set OPENAI_API_KEY or llm.openai_api_key)")
	}
	if cfg.LLM.AnthropicAPIKey == "" {
		return fmt.Errorf("missing Anthropic API key (set ANTHROPIC_API_KEY or llm.anthropic_api_key)")
	}
	switch cfg.Auth.Mode {
	case "static":
		if len(cfg.Auth.Tokens) == 0 {
			return fmt.Errorf("auth mode is static but no tokens are configured")
		}
	case "remote":
		if cfg.Auth.URL == "" {
			return fmt.Errorf("auth mode is remote but no auth URL is configured")
		}
	default:
		return fmt.Errorf("unknown auth mode: %s", cfg.Auth.Mode)
	}
	return nil
}
