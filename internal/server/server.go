//-------------------------------------------------------------------------
//
// AyurGPT Server
//
// Copyright (c) 2025 - 2026, the AyurGPT authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package server provides the HTTP server for the AyurGPT API.
package server

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/ayurgpt/ayurgpt-server/internal/auth"
	"github.com/ayurgpt/ayurgpt-server/internal/config"
	"github.com/ayurgpt/ayurgpt-server/internal/history"
	"github.com/ayurgpt/ayurgpt-server/internal/pipeline"
)

// ChatPipeline answers questions. Satisfied by *pipeline.Orchestrator.
type ChatPipeline interface {
	Chat(ctx context.Context, userID int64, question string) (*pipeline.ChatResponse, error)
}

// HistoryStore reads and deletes recorded chats. Satisfied by
// *history.Store.
type HistoryStore interface {
	ListByUser(ctx context.Context, userID int64) ([]history.Chat, error)
	Delete(ctx context.Context, userID, chatID int64) error
}

// Authenticator manages accounts and bearer tokens. Satisfied by
// *auth.Service.
type Authenticator interface {
	Register(ctx context.Context, username, email, password string) (auth.User, string, error)
	Login(ctx context.Context, email, password string) (auth.User, string, error)
	Authenticate(ctx context.Context, token string) (auth.User, error)
}

// Server is the HTTP server for the AyurGPT API.
type Server struct {
	config  *config.Config
	chat    ChatPipeline
	history HistoryStore
	auth    Authenticator
	logger  *slog.Logger
	server  *http.Server
	mux     *http.ServeMux
}

// New creates a new HTTP server.
func New(
	cfg *config.Config,
	chat ChatPipeline,
	hist HistoryStore,
	authn Authenticator,
	logger *slog.Logger,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		config:  cfg,
		chat:    chat,
		history: hist,
		auth:    authn,
		logger:  logger,
		mux:     http.NewServeMux(),
	}

	// Set up routes
	s.setupRoutes()

	return s
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.ListenAddress, s.config.Server.Port)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.applyMiddleware(s.mux),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	s.logger.Info("starting server",
		"address", addr,
		"tls", s.config.Server.TLS.Enabled)

	if s.config.Server.TLS.Enabled {
		return s.serveTLS()
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	return s.server.Serve(listener)
}

// serveTLS starts the server with TLS.
func (s *Server) serveTLS() error {
	tlsCfg := &tls.Config{
		MinVersion: tls.VersionTLS12,
	}
	s.server.TLSConfig = tlsCfg

	return s.server.ListenAndServeTLS(
		s.config.Server.TLS.CertFile,
		s.config.Server.TLS.KeyFile,
	)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down server")

	if s.server != nil {
		return s.server.Shutdown(ctx)
	}

	return nil
}

// Addr returns the server's address. Returns empty string if not started.
func (s *Server) Addr() string {
	if s.server != nil {
		return s.server.Addr
	}
	return ""
}
