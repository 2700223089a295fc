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
	"log/slog"
	"strings"
	"time"
)

// HistoryStore persists a completed exchange. Satisfied by *history.Store.
type HistoryStore interface {
	Save(ctx context.Context, userID int64, question, answer string) (int64, error)
}

// processingSteps is the fixed step list echoed back with every answer so
// clients can render pipeline progress.
var processingSteps = []string{
	"Loading vectorstore and embedding model",
	"Vectorizing your query",
	"Searching through Ayurvedic knowledge base",
	"Retrieving relevant Sanskrit references",
	"Generating Ayurvedic response",
}

// Orchestrator runs a question through retrieval and generation and records
// the exchange.
type Orchestrator struct {
	retriever *Retriever
	generator *Generator
	history   HistoryStore
	topK      int
	budget    int
	logger    *slog.Logger
}

// OrchestratorConfig contains the dependencies for creating an Orchestrator.
type OrchestratorConfig struct {
	Retriever     *Retriever
	Generator     *Generator
	History       HistoryStore
	TopK          int
	ContextBudget int
	Logger        *slog.Logger
}

// NewOrchestrator creates a new orchestrator.
func NewOrchestrator(cfg OrchestratorConfig) *Orchestrator {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		retriever: cfg.Retriever,
		generator: cfg.Generator,
		history:   cfg.History,
		topK:      cfg.TopK,
		budget:    cfg.ContextBudget,
		logger:    logger,
	}
}

// Chat answers a question for the given user and persists the exchange.
// Every answered question is recorded exactly once, fallback answers
// included; only a blank question or a history write failure surfaces as an
// error, and neither leaves a record behind.
func (o *Orchestrator) Chat(
	ctx context.Context,
	userID int64,
	question string,
) (*ChatResponse, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, ErrEmptyQuestion
	}

	start := time.Now()

	texts, err := o.retriever.Retrieve(ctx, question, o.topK)
	if err != nil {
		return nil, err
	}

	var answer string
	if len(texts) == 0 {
		o.logger.Info("no context retrieved, skipping generation",
			"user_id", userID)
		answer = NoContextAnswer
	} else {
		prompt := ComposePrompt(question, texts, o.budget)
		answer = o.generator.Generate(ctx, prompt)
	}

	chatID, err := o.history.Save(ctx, userID, question, answer)
	if err != nil {
		o.logger.Error("failed to record chat",
			"user_id", userID,
			"error", err)
		return nil, err
	}

	o.logger.Info("chat answered",
		"user_id", userID,
		"chat_id", chatID,
		"context_passages", len(texts),
		"duration", time.Since(start))

	return &ChatResponse{
		Question:        question,
		Answer:          answer,
		ChatID:          chatID,
		ProcessingSteps: processingSteps,
	}, nil
}
