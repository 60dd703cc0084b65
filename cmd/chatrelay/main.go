package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"chatrelay/internal/config"
	"chatrelay/internal/eventbus"
	"chatrelay/internal/llm"
	"chatrelay/internal/memory"
	"chatrelay/internal/security"
	"chatrelay/internal/server"
	"chatrelay/internal/store"
)

const (
	keyringPlaceholder  = "[keyring]"
	secretNameOpenAI    = "openai_api_key"
	secretNameAnthropic = "anthropic_api_key"
)

func main() {
	_ = godotenv.Load()

	loader, err := config.NewLoader()
	if err != nil {
		log.Fatalf("[config] failed to create loader: %v", err)
	}

	cfg, err := loader.Load()
	if err != nil {
		log.Fatalf("[config] failed to load %s: %v", loader.FilePath(), err)
	}

	resolveSecrets(cfg)

	if err := config.Validate(cfg); err != nil {
		log.Fatalf("[config] %v", err)
	}

	dbPath := cfg.Store.Path
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Fatalf("[store] cannot determine home directory: %v", err)
		}
		dbPath = filepath.Join(home, ".chatrelay", "chat.db")
	}

	st, err := store.NewSQLiteStore(dbPath)
	if err != nil {
		log.Fatalf("[store] failed to open %s: %v", dbPath, err)
	}
	defer st.Close()

	bus := eventbus.New()
	bus.Subscribe(eventbus.TopicSessionEvicted, func(e eventbus.Event) {
		log.Printf("[memory] evicted session %v", e.Payload)
	})
	bus.Subscribe(eventbus.TopicPersistenceError, func(e eventbus.Event) {
		log.Printf("[store] persistence error: %v", e.Payload)
	})

	registry := memory.NewRegistry(st, bus)
	dispatcher := llm.NewDispatcher(cfg.LLM, registry)

	var verifier security.Verifier
	switch cfg.Auth.Mode {
	case "remote":
		verifier = security.NewRemoteVerifier(cfg.Auth.URL)
	default:
		verifier = security.NewStaticVerifier(cfg.Auth.Tokens)
	}

	srv := server.New(cfg.Server, verifier, registry, dispatcher, bus)

	go func() {
		log.Printf("[server] listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[server] %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("[server] shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("[server] shutdown: %v", err)
	}
}

// resolveSecrets replaces "[keyring]" placeholders in the config with
// values from the OS keychain / encrypted vault.
func resolveSecrets(cfg *config.Config) {
	if cfg.LLM.OpenAIAPIKey != keyringPlaceholder && cfg.LLM.AnthropicAPIKey != keyringPlaceholder {
		return
	}

	ks, err := security.NewKeyStore(os.Getenv("CHATRELAY_VAULT_PASSPHRASE"))
	if err != nil {
		log.Printf("[config] keystore unavailable: %v", err)
		return
	}

	if cfg.LLM.OpenAIAPIKey == keyringPlaceholder {
		cfg.LLM.OpenAIAPIKey = lookupSecret(ks, secretNameOpenAI)
	}
	if cfg.LLM.AnthropicAPIKey == keyringPlaceholder {
		cfg.LLM.AnthropicAPIKey = lookupSecret(ks, secretNameAnthropic)
	}
}

func lookupSecret(ks *security.KeyStore, name string) string {
	val, err := ks.Get(name)
	if err != nil {
		log.Printf("[config] secret %s not found in keystore: %v", name, err)
		return ""
	}
	return val
}
