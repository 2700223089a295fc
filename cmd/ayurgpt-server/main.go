//-------------------------------------------------------------------------
//
// AyurGPT Server
//
// Portions copyright (c) 2025, the AyurGPT authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ayurgpt/ayurgpt-server/internal/auth"
	"github.com/ayurgpt/ayurgpt-server/internal/config"
	"github.com/ayurgpt/ayurgpt-server/internal/database"
	"github.com/ayurgpt/ayurgpt-server/internal/history"
	"github.com/ayurgpt/ayurgpt-server/internal/llm/factory"
	"github.com/ayurgpt/ayurgpt-server/internal/milvus"
	"github.com/ayurgpt/ayurgpt-server/internal/passages"
	"github.com/ayurgpt/ayurgpt-server/internal/pipeline"
	"github.com/ayurgpt/ayurgpt-server/internal/server"
)

// Version information - set via ldflags during build
var (
	version   = "1.0.0-alpha1"
	buildTime = "unknown"
	gitCommit = "unknown"
)

func main() {
	var (
		showVersion = flag.Bool("version", false, "Show version information")
		showHelp    = flag.Bool("help", false, "Show help message")
		configPath  = flag.String("config", "", "Path to configuration file")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `AyurGPT Server - Grounded question answering over Ayurvedic texts

Usage:
    ayurgpt-server [options]

Options:
    -config string
        Path to configuration file. If not specified, searches:
        1. /etc/ayurgpt/ayurgpt-server.yaml
        2. ayurgpt-server.yaml (in binary directory)

    -version
        Show version information and exit

    -help
        Show this help message and exit
`)
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		fmt.Printf("AyurGPT Server\n")
		fmt.Printf("  Version:    %s\n", version)
		fmt.Printf("  Build Time: %s\n", buildTime)
		fmt.Printf("  Git Commit: %s\n", gitCommit)
		os.Exit(0)
	}

	// Set up logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Run the server
	if err := run(*configPath, logger); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath string, logger *slog.Logger) error {
	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger.Info("configuration loaded",
		"collection", cfg.Index.Collection,
		"embedding_provider", cfg.Embedding.Provider,
		"generation_provider", cfg.Generation.Provider)

	startupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Connect to PostgreSQL and ensure the schema exists
	db, err := database.NewPool(startupCtx, cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := db.Migrate(startupCtx); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// Open the passage store
	store, err := passages.Open(cfg.Passages.Path)
	if err != nil {
		return fmt.Errorf("failed to open passage store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close passage store", "error", err)
		}
	}()

	if count, err := store.Count(startupCtx); err == nil {
		logger.Info("passage store opened",
			"path", store.Path(),
			"passages", count)
	}

	// Load API keys for the configured providers
	keyLoader := config.NewAPIKeyLoader(cfg.APIKeys)
	apiKeys, err := keyLoader.LoadRequiredKeys(cfg)
	if err != nil {
		return fmt.Errorf("failed to load API keys: %w", err)
	}

	// Create LLM providers
	embedder, err := factory.NewEmbeddingProvider(cfg.Embedding, apiKeys)
	if err != nil {
		return fmt.Errorf("failed to create embedding provider: %w", err)
	}

	completer, err := factory.NewCompletionProvider(cfg.Generation, apiKeys)
	if err != nil {
		return fmt.Errorf("failed to create completion provider: %w", err)
	}

	// Connect to the vector index and verify the embedding dimensionality
	// matches the collection schema. A mismatch makes every search garbage,
	// so it is fatal.
	index := milvus.NewClient(milvus.Config{
		Host:           cfg.Index.Host,
		Port:           cfg.Index.Port,
		Collection:     cfg.Index.Collection,
		MetricType:     cfg.Index.MetricType,
		Nprobe:         cfg.Index.Nprobe,
		TimeoutSeconds: cfg.Index.TimeoutSeconds,
	})

	info, err := index.Describe(startupCtx)
	if err != nil {
		logger.Warn("vector index unreachable at startup, continuing",
			"collection", cfg.Index.Collection,
			"error", err)
	} else if info.Dimension != embedder.Dimensions() {
		return fmt.Errorf(
			"embedding dimension mismatch: model %s produces %d, collection %s expects %d",
			embedder.ModelName(), embedder.Dimensions(), info.Name, info.Dimension)
	}

	// Assemble the pipeline
	pipelineLogger := logger.With("component", "pipeline")

	retriever := pipeline.NewRetriever(pipeline.RetrieverConfig{
		Embedder: embedder,
		Index:    index,
		Store:    store,
		Logger:   pipelineLogger,
	})

	generator := pipeline.NewGenerator(pipeline.GeneratorConfig{
		Provider:    completer,
		MaxTokens:   cfg.Generation.MaxTokens,
		Temperature: cfg.Generation.Temperature,
		TopP:        cfg.Generation.TopP,
		Logger:      pipelineLogger,
	})

	chats := history.NewStore(db)

	orchestrator := pipeline.NewOrchestrator(pipeline.OrchestratorConfig{
		Retriever:     retriever,
		Generator:     generator,
		History:       chats,
		TopK:          cfg.Retrieval.TopK,
		ContextBudget: cfg.Retrieval.ContextBudget,
		Logger:        pipelineLogger,
	})

	// Create and start server
	srv := server.New(cfg, orchestrator, chats, auth.NewService(db), logger)

	// Handle graceful shutdown
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	// Wait for shutdown signal or server error
	select {
	case err := <-errCh:
		return err
	case sig := <-shutdownCh:
		logger.Info("received shutdown signal", "signal", sig)

		// Give 30 seconds for graceful shutdown
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		return srv.Shutdown(ctx)
	}
}
