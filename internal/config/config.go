package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Contact is the static human-handoff information rendered into
// escalation messages.
type Contact struct {
	Email        string `yaml:"email"`
	Hours        string `yaml:"hours"`
	ResponseTime string `yaml:"response_time"`
}

// Config holds every tunable of the pipeline. It is resolved once at
// process start and treated as read-only afterwards; concurrent runs share
// it without locking.
type Config struct {
	// ConfidenceThreshold is the minimum classifier confidence required to
	// route a handled category to the RAG branch. Inclusive bound.
	ConfidenceThreshold float64 `yaml:"confidence_threshold"`

	// ClarificationThreshold selects the clarification variant of the
	// escalation message when a handled category lands below it.
	ClarificationThreshold float64 `yaml:"clarification_threshold"`

	// TopK is the number of passages requested from the retriever.
	TopK int `yaml:"top_k_docs"`

	// CompletionTimeout bounds each completion call (classify, generate).
	CompletionTimeout time.Duration `yaml:"completion_timeout"`

	// RetrievalTimeout bounds each retriever call.
	RetrievalTimeout time.Duration `yaml:"retrieval_timeout"`

	// Model is the completion model identifier passed to the adapter.
	Model string `yaml:"model"`

	// APIKey for the completion backend. Usually supplied via env.
	APIKey string `yaml:"api_key"`

	Contact Contact `yaml:"contact"`

	// ListenAddr is the HTTP adapter bind address.
	ListenAddr string `yaml:"listen_addr"`

	// RedisAddr, when set, switches the transcript store to Redis.
	RedisAddr string `yaml:"redis_addr"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		ConfidenceThreshold:    0.7,
		ClarificationThreshold: 0.5,
		TopK:                   4,
		CompletionTimeout:      30 * time.Second,
		RetrievalTimeout:       5 * time.Second,
		Model:                  "gpt-4o-mini",
		Contact: Contact{
			Email:        "support@techgear.com",
			Hours:        "Mon-Sat, 9AM-6PM IST",
			ResponseTime: "24 hours",
		},
		ListenAddr: ":8080",
	}
}

// Load resolves the effective configuration: defaults, then the YAML file
// (if path is non-empty), then environment overrides, then validation.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv("CANOPY_MODEL"); v != "" {
		c.Model = v
	}
	if v := os.Getenv("CANOPY_CONFIDENCE_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.ConfidenceThreshold = f
		}
	}
	if v := os.Getenv("CANOPY_TOP_K_DOCS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.TopK = n
		}
	}
	if v := os.Getenv("CANOPY_LISTEN_ADDR"); v != "" {
		c.ListenAddr = v
	}
	if v := os.Getenv("CANOPY_REDIS_ADDR"); v != "" {
		c.RedisAddr = v
	}
}

// Validate rejects configurations the engine cannot run with. This is the
// one failure class surfaced to callers as an error instead of an
// escalation outcome.
func (c *Config) Validate() error {
	if c.ConfidenceThreshold < 0 || c.ConfidenceThreshold > 1 {
		return fmt.Errorf("confidence_threshold must be in [0,1], got %v", c.ConfidenceThreshold)
	}
	if c.ClarificationThreshold < 0 || c.ClarificationThreshold > c.ConfidenceThreshold {
		return fmt.Errorf("clarification_threshold must be in [0,%v], got %v", c.ConfidenceThreshold, c.ClarificationThreshold)
	}
	if c.TopK < 1 {
		return fmt.Errorf("top_k_docs must be >= 1, got %d", c.TopK)
	}
	if c.Contact.Email == "" {
		return fmt.Errorf("contact.email is required")
	}
	return nil
}
