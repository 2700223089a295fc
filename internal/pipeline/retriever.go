//-------------------------------------------------------------------------
//
// AyurGPT Server
//
// Portions copyright (c) 2025 - 2026, the AyurGPT authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/ayurgpt/ayurgpt-server/internal/llm"
	"github.com/ayurgpt/ayurgpt-server/internal/milvus"
	"github.com/ayurgpt/ayurgpt-server/internal/passages"
)

// Index performs nearest-neighbor search over pre-embedded passages.
// Satisfied by *milvus.Client.
type Index interface {
	Search(ctx context.Context, embedding []float32, topK int) ([]milvus.Hit, error)
}

// PassageStore looks up passage text by id. Satisfied by *passages.Store.
type PassageStore interface {
	GetText(ctx context.Context, id int64) (string, error)
}

// Retriever turns a query into an ordered list of passage texts.
type Retriever struct {
	embedder llm.EmbeddingProvider
	index    Index
	store    PassageStore
	logger   *slog.Logger
}

// RetrieverConfig contains the dependencies for creating a Retriever.
type RetrieverConfig struct {
	Embedder llm.EmbeddingProvider
	Index    Index
	Store    PassageStore
	Logger   *slog.Logger
}

// NewRetriever creates a new retriever.
func NewRetriever(cfg RetrieverConfig) *Retriever {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Retriever{
		embedder: cfg.Embedder,
		index:    cfg.Index,
		store:    cfg.Store,
		logger:   logger,
	}
}

// Retrieve embeds the query, searches the index, and joins each hit back to
// its source text in ascending-distance order. Ids missing from the passage
// store are skipped. An unreachable index degrades to an empty context so
// the caller can answer with canned text instead of failing the request.
func (r *Retriever) Retrieve(
	ctx context.Context,
	query string,
	topK int,
) ([]string, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuestion
	}

	embedding, err := r.embedder.Embed(ctx, query)
	if err != nil {
		r.logger.Warn("query embedding failed",
			"model", r.embedder.ModelName(),
			"error", err)
		return []string{}, nil
	}

	hits, err := r.index.Search(ctx, embedding, topK)
	if err != nil {
		if errors.Is(err, milvus.ErrUnavailable) {
			r.logger.Warn("vector index unavailable", "error", err)
		} else {
			r.logger.Warn("vector search failed", "error", err)
		}
		return []string{}, nil
	}

	texts := make([]string, 0, len(hits))
	for _, hit := range hits {
		text, err := r.store.GetText(ctx, hit.PassageID)
		if errors.Is(err, passages.ErrNotFound) {
			r.logger.Debug("no text for passage", "passage_id", hit.PassageID)
			continue
		}
		if err != nil {
			r.logger.Warn("passage lookup failed",
				"passage_id", hit.PassageID,
				"error", err)
			continue
		}
		texts = append(texts, text)
	}

	r.logger.Debug("retrieved context",
		"hits", len(hits),
		"passages", len(texts))

	return texts, nil
}
