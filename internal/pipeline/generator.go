//-------------------------------------------------------------------------
//
// AyurGPT Server
//
// Copyright (c) 2025 - 2026, the AyurGPT authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/url"
	"strings"

	"github.com/ayurgpt/ayurgpt-server/internal/llm"
)

// Fixed user-facing fallback answers. Each failure class gets its own text
// so operators can tell them apart in logs while the user only ever sees an
// apology.
const (
	FallbackGeneration = "I apologize, but I'm having trouble generating a response at the moment. Please try again."
	FallbackConnection = "I apologize, but I'm having trouble connecting to the knowledge base. Please try again in a few moments."
	FallbackUnexpected = "I apologize, but I'm having trouble processing your request. Please try again."
)

// NoContextAnswer is the canned answer when retrieval produced nothing to
// ground a generation on.
const NoContextAnswer = "I don't have enough information to answer this question."

// Generator invokes the completion backend with fixed decoding parameters
// and absorbs every failure into a fallback answer.
type Generator struct {
	provider    llm.CompletionProvider
	maxTokens   int
	temperature float64
	topP        float64
	logger      *slog.Logger
}

// GeneratorConfig contains the dependencies for creating a Generator.
type GeneratorConfig struct {
	Provider    llm.CompletionProvider
	MaxTokens   int
	Temperature float64
	TopP        float64
	Logger      *slog.Logger
}

// NewGenerator creates a new generator.
func NewGenerator(cfg GeneratorConfig) *Generator {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{
		provider:    cfg.Provider,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		topP:        cfg.TopP,
		logger:      logger,
	}
}

// Generate produces an answer for the composed prompt. It never returns an
// empty string and never reports an error: failures map to one of the
// fallback answers.
func (g *Generator) Generate(ctx context.Context, prompt string) string {
	resp, err := g.provider.Complete(ctx, llm.CompletionRequest{
		Messages: []llm.Message{
			{Role: "user", Content: prompt},
		},
		MaxTokens:   g.maxTokens,
		Temperature: g.temperature,
		TopP:        g.topP,
	})

	switch {
	case err == nil:
		answer := strings.TrimSpace(resp.Content)
		if answer == "" {
			g.logger.Warn("completion returned empty content",
				"model", g.provider.ModelName())
			return FallbackGeneration
		}
		return answer

	case errors.Is(err, llm.ErrNoChoices):
		g.logger.Warn("completion returned no choices",
			"model", g.provider.ModelName())
		return FallbackGeneration

	case isConnectionError(err):
		g.logger.Warn("completion backend unreachable",
			"model", g.provider.ModelName(),
			"error", err)
		return FallbackConnection

	default:
		g.logger.Warn("completion failed",
			"model", g.provider.ModelName(),
			"error", err)
		return FallbackUnexpected
	}
}

// isConnectionError reports whether the error is a transport-level failure,
// including a client-side timeout.
func isConnectionError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
