package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	loader := &Loader{
		filePath: filepath.Join(t.TempDir(), "config.json"),
	}

	cfg, err := loader.Load()
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Server.Addr != ":8080" {
		t.Fatalf("expected :8080, got %s", cfg.Server.Addr)
	}
	if cfg.LLM.Temperature != 0.7 {
		t.Fatalf("expected 0.7, got %v", cfg.LLM.Temperature)
	}
	if cfg.Auth.Mode != "static" {
		t.Fatalf("expected static auth mode, got %s", cfg.Auth.Mode)
	}
}

func TestSaveAndLoad(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	path := filepath.Join(t.TempDir(), "config.json")
	loader := &Loader{filePath: path}

	cfg := Defaults()
	cfg.LLM.OpenAIAPIKey = "sk-test"
	cfg.Store.Path = "/tmp/chat.db"
	cfg.Auth.Tokens = map[string]string{"tok": "alice"}

	if err := loader.Save(cfg); err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("config file was not created")
	}

	loaded, err := loader.Load()
	if err != nil {
		t.Fatal(err)
	}

	if loaded.LLM.OpenAIAPIKey != "sk-test" {
		t.Fatalf("expected sk-test, got %s", loaded.LLM.OpenAIAPIKey)
	}
	if loaded.Store.Path != "/tmp/chat.db" {
		t.Fatalf("expected /tmp/chat.db, got %s", loaded.Store.Path)
	}
	if loaded.Auth.Tokens["tok"] != "alice" {
		t.Fatal("expected auth tokens to round-trip")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-from-env")
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant-from-env")
	t.Setenv("CHATRELAY_ADDR", ":9999")

	loader := &Loader{
		filePath: filepath.Join(t.TempDir(), "config.json"),
	}

	cfg, err := loader.Load()
	if err != nil {
		t.Fatal(err)
	}

	if cfg.LLM.OpenAIAPIKey != "sk-from-env" {
		t.Fatalf("expected env key, got %s", cfg.LLM.OpenAIAPIKey)
	}
	if cfg.LLM.AnthropicAPIKey != "sk-ant-from-env" {
		t.Fatalf("expected env key, got %s", cfg.LLM.AnthropicAPIKey)
	}
	if cfg.Server.Addr != ":9999" {
		t.Fatalf("expected :9999, got %s", cfg.Server.Addr)
	}
}

func TestValidateMissingCredentials(t *testing.T) {
	cfg := Defaults()
	cfg.Auth.Tokens = map[string]string{"tok": "alice"}

	if err := Validate(cfg); err == nil {
		t.Fatal("expected error for missing OpenAI key")
	}

	cfg.LLM.OpenAIAPIKey = "sk-test"
	if err := Validate(cfg); err == nil {
		t.Fatal("expected error for missing Anthropic key")
	}

	cfg.LLM.AnthropicAPIKey = "sk-ant-test"
	if err := Validate(cfg); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestValidateAuthModes(t *testing.T) {
	cfg := Defaults()
	cfg.LLM.OpenAIAPIKey = "sk-test"
	cfg.LLM.AnthropicAPIKey = "sk-ant-test"

	// Static mode needs tokens.
	if err := Validate(cfg); err == nil {
		t.Fatal("expected error for static mode without tokens")
	}

	cfg.Auth.Mode = "remote"
	if err := Validate(cfg); err == nil {
		t.Fatal("expected error for remote mode without URL")
	}

	cfg.Auth.URL = "https://auth.example.com/verify"
	if err := Validate(cfg); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}

	cfg.Auth.Mode = "oauth"
	if err := Validate(cfg); err == nil {
		t.Fatal("expected error for unknown auth mode")
	}
}
