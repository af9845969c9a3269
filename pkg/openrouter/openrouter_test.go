package openrouter

import (
	"context"
	"testing"
)

func TestNewClientRequiresAPIKey(t *testing.T) {
	t.Parallel()

	if c := NewClient(Config{APIKey: "  "}); c != nil {
		t.Fatal("expected nil client without api key")
	}
	if c := NewClient(Config{APIKey: "k", BaseURL: "http://localhost:1/v1/"}); c == nil {
		t.Fatal("expected client with api key")
	}
}

func TestConfigNewBuildsChatModel(t *testing.T) {
	t.Parallel()

	maxTokens := 64
	cfg := &Config{
		BaseURL:            "http://localhost:1/v1",
		APIKey:             "k",
		Model:              "openai/gpt-4o-mini",
		MaxCompletionToken: &maxTokens,
	}
	m, err := cfg.New(context.Background())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if m == nil {
		t.Fatal("New() returned nil model")
	}
}
