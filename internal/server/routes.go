//-------------------------------------------------------------------------
//
// AyurGPT Server
//
// Copyright (c) 2025 - 2026, the AyurGPT authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package server

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// API v1 routes
	s.mux.HandleFunc("GET /v1/health", s.handleHealth)
	s.mux.HandleFunc("POST /v1/auth/register", s.handleRegister)
	s.mux.HandleFunc("POST /v1/auth/login", s.handleLogin)
	s.mux.HandleFunc("GET /v1/auth/user", s.requireAuth(s.handleGetUser))
	s.mux.HandleFunc("POST /v1/chat", s.requireAuth(s.handleChat))
	s.mux.HandleFunc("GET /v1/chat/history", s.requireAuth(s.handleListHistory))
	s.mux.HandleFunc("DELETE /v1/chat/history/{id}", s.requireAuth(s.handleDeleteHistory))
}
