//-------------------------------------------------------------------------
//
// AyurGPT Server
//
// Portions copyright (c) 2025 - 2026, the AyurGPT authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package factory

import (
	"testing"

	"github.com/ayurgpt/ayurgpt-server/internal/config"
)

func TestNewEmbeddingProvider_Ollama(t *testing.T) {
	provider, err := NewEmbeddingProvider(config.EmbeddingConfig{
		Provider:   "ollama",
		Model:      "all-minilm",
		Dimensions: 384,
	}, &config.LoadedKeys{})
	if err != nil {
		t.Fatalf("NewEmbeddingProvider failed: %v", err)
	}

	if provider.ModelName() != "all-minilm" {
		t.Errorf("expected model all-minilm, got %s", provider.ModelName())
	}
	if provider.Dimensions() != 384 {
		t.Errorf("expected 384 dimensions, got %d", provider.Dimensions())
	}
}

func TestNewEmbeddingProvider_OpenAIWithoutKey(t *testing.T) {
	_, err := NewEmbeddingProvider(config.EmbeddingConfig{
		Provider: "openai",
		Model:    "text-embedding-3-small",
	}, &config.LoadedKeys{})
	if err == nil {
		t.Fatal("expected error without API key")
	}
}

func TestNewEmbeddingProvider_Unknown(t *testing.T) {
	_, err := NewEmbeddingProvider(config.EmbeddingConfig{
		Provider: "bedrock",
	}, &config.LoadedKeys{})
	if err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestNewCompletionProvider_Groq(t *testing.T) {
	provider, err := NewCompletionProvider(config.GenerationConfig{
		Provider:    "groq",
		Model:       "llama3-70b-8192",
		Temperature: 0.2,
		MaxTokens:   1024,
		TopP:        1.0,
	}, &config.LoadedKeys{Groq: "test-key"})
	if err != nil {
		t.Fatalf("NewCompletionProvider failed: %v", err)
	}

	if provider.ModelName() != "llama3-70b-8192" {
		t.Errorf("expected model llama3-70b-8192, got %s", provider.ModelName())
	}
}

func TestNewCompletionProvider_GroqWithoutKey(t *testing.T) {
	_, err := NewCompletionProvider(config.GenerationConfig{
		Provider: "groq",
		Model:    "llama3-70b-8192",
	}, &config.LoadedKeys{})
	if err == nil {
		t.Fatal("expected error without API key")
	}
}

func TestNewCompletionProvider_Unknown(t *testing.T) {
	_, err := NewCompletionProvider(config.GenerationConfig{
		Provider: "vertex",
	}, &config.LoadedKeys{})
	if err == nil {
		t.Fatal("expected error for unknown provider")
	}
}
