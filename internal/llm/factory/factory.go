//-------------------------------------------------------------------------
//
// AyurGPT Server
//
// Copyright (c) 2025 - 2026, the AyurGPT authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package factory provides functions to create LLM providers from
// configuration.
package factory

import (
	"fmt"
	"strings"

	"github.com/ayurgpt/ayurgpt-server/internal/config"
	"github.com/ayurgpt/ayurgpt-server/internal/llm"
	"github.com/ayurgpt/ayurgpt-server/internal/llm/ollama"
	"github.com/ayurgpt/ayurgpt-server/internal/llm/openai"
)

// Provider constants for matching configuration values.
const (
	ProviderGroq   = "groq"
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
)

// NewEmbeddingProvider creates an embedding provider based on configuration.
func NewEmbeddingProvider(
	cfg config.EmbeddingConfig,
	apiKeys *config.LoadedKeys,
) (llm.EmbeddingProvider, error) {
	provider := strings.ToLower(cfg.Provider)

	switch provider {
	case ProviderOllama:
		opts := []ollama.EmbeddingOption{
			ollama.WithEmbeddingModel(cfg.Model),
			ollama.WithDimensions(cfg.Dimensions),
		}
		if cfg.BaseURL != "" {
			opts = append(opts, ollama.WithEmbeddingClient(
				ollama.NewClient(ollama.WithBaseURL(cfg.BaseURL))))
		}
		return ollama.NewEmbeddingProvider(opts...), nil

	case ProviderOpenAI:
		if apiKeys.OpenAI == "" {
			return nil, fmt.Errorf("OpenAI API key required for embedding provider")
		}
		opts := []openai.EmbeddingOption{
			openai.WithEmbeddingModel(cfg.Model),
			openai.WithDimensions(cfg.Dimensions),
		}
		if cfg.BaseURL != "" {
			opts = append(opts, openai.WithEmbeddingClient(
				openai.NewClient(apiKeys.OpenAI, openai.WithBaseURL(cfg.BaseURL))))
		}
		return openai.NewEmbeddingProvider(apiKeys.OpenAI, opts...), nil

	default:
		return nil, fmt.Errorf("unknown embedding provider: %s", cfg.Provider)
	}
}

// NewCompletionProvider creates a completion provider based on configuration.
func NewCompletionProvider(
	cfg config.GenerationConfig,
	apiKeys *config.LoadedKeys,
) (llm.CompletionProvider, error) {
	provider := strings.ToLower(cfg.Provider)

	switch provider {
	case ProviderGroq:
		if apiKeys.Groq == "" {
			return nil, fmt.Errorf("Groq API key required for completion provider")
		}
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = openai.GroqBaseURL
		}
		client := openai.NewClient(apiKeys.Groq,
			openai.WithBaseURL(baseURL),
			openai.WithTimeout(cfg.TimeoutSeconds))
		return openai.NewCompletionProvider(apiKeys.Groq,
			openai.WithCompletionClient(client),
			openai.WithCompletionModel(cfg.Model),
			openai.WithMaxTokens(cfg.MaxTokens),
			openai.WithTemperature(cfg.Temperature),
			openai.WithTopP(cfg.TopP)), nil

	case ProviderOpenAI:
		if apiKeys.OpenAI == "" {
			return nil, fmt.Errorf("OpenAI API key required for completion provider")
		}
		opts := []openai.CompletionOption{
			openai.WithCompletionModel(cfg.Model),
			openai.WithMaxTokens(cfg.MaxTokens),
			openai.WithTemperature(cfg.Temperature),
			openai.WithTopP(cfg.TopP),
		}
		clientOpts := []openai.ClientOption{openai.WithTimeout(cfg.TimeoutSeconds)}
		if cfg.BaseURL != "" {
			clientOpts = append(clientOpts, openai.WithBaseURL(cfg.BaseURL))
		}
		opts = append(opts, openai.WithCompletionClient(
			openai.NewClient(apiKeys.OpenAI, clientOpts...)))
		return openai.NewCompletionProvider(apiKeys.OpenAI, opts...), nil

	case ProviderOllama:
		opts := []ollama.CompletionOption{
			ollama.WithCompletionModel(cfg.Model),
			ollama.WithTemperature(cfg.Temperature),
		}
		clientOpts := []ollama.ClientOption{ollama.WithTimeout(cfg.TimeoutSeconds)}
		if cfg.BaseURL != "" {
			clientOpts = append(clientOpts, ollama.WithBaseURL(cfg.BaseURL))
		}
		opts = append(opts, ollama.WithCompletionClient(ollama.NewClient(clientOpts...)))
		return ollama.NewCompletionProvider(opts...), nil

	default:
		return nil, fmt.Errorf("unknown completion provider: %s", cfg.Provider)
	}
}
