//-------------------------------------------------------------------------
//
// AyurGPT Server
//
// Copyright (c) 2025 - 2026, the AyurGPT authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/ayurgpt/ayurgpt-server/internal/auth"
	"github.com/ayurgpt/ayurgpt-server/internal/history"
	"github.com/ayurgpt/ayurgpt-server/internal/pipeline"
)

// HealthResponse is the response for the health check endpoint.
type HealthResponse struct {
	Status string `json:"status"`
}

// RegisterRequest is the request body for account creation.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the request body for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is the response for register and login.
type AuthResponse struct {
	User  auth.User `json:"user"`
	Token string    `json:"token"`
}

// HistoryResponse is the response for the chat history endpoint.
type HistoryResponse struct {
	Chats []history.Chat `json:"chats"`
}

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// handleHealth handles the GET /health endpoint.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, HealthResponse{Status: "healthy"})
}

// handleRegister handles the POST /auth/register endpoint.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "INVALID_REQUEST",
			"invalid request body: "+err.Error())
		return
	}

	user, token, err := s.auth.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrMissingField):
			s.respondError(w, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		case errors.Is(err, auth.ErrEmailTaken):
			s.respondError(w, http.StatusConflict, "EMAIL_TAKEN", err.Error())
		default:
			s.logger.Error("registration failed", "error", err)
			s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR",
				"failed to create account")
		}
		return
	}

	s.respondJSON(w, http.StatusCreated, AuthResponse{User: user, Token: token})
}

// handleLogin handles the POST /auth/login endpoint.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "INVALID_REQUEST",
			"invalid request body: "+err.Error())
		return
	}

	user, token, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			s.respondError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS",
				err.Error())
			return
		}
		s.logger.Error("login failed", "error", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR",
			"failed to log in")
		return
	}

	s.respondJSON(w, http.StatusOK, AuthResponse{User: user, Token: token})
}

// handleGetUser handles the GET /auth/user endpoint.
func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(r.Context())
	if !ok {
		s.respondError(w, http.StatusUnauthorized, "UNAUTHORIZED",
			"authentication required")
		return
	}

	s.respondJSON(w, http.StatusOK, user)
}

// handleChat handles the POST /chat endpoint.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(r.Context())
	if !ok {
		s.respondError(w, http.StatusUnauthorized, "UNAUTHORIZED",
			"authentication required")
		return
	}

	var req pipeline.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "INVALID_REQUEST",
			"invalid request body: "+err.Error())
		return
	}

	resp, err := s.chat.Chat(r.Context(), user.ID, req.Question)
	if err != nil {
		if errors.Is(err, pipeline.ErrEmptyQuestion) {
			s.respondError(w, http.StatusBadRequest, "INVALID_REQUEST",
				"no question provided")
			return
		}
		s.logger.Error("chat failed",
			"user_id", user.ID,
			"error", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR",
			"failed to process question")
		return
	}

	s.respondJSON(w, http.StatusOK, resp)
}

// handleListHistory handles the GET /chat/history endpoint.
func (s *Server) handleListHistory(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(r.Context())
	if !ok {
		s.respondError(w, http.StatusUnauthorized, "UNAUTHORIZED",
			"authentication required")
		return
	}

	chats, err := s.history.ListByUser(r.Context(), user.ID)
	if err != nil {
		s.logger.Error("history listing failed",
			"user_id", user.ID,
			"error", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR",
			"failed to load chat history")
		return
	}

	s.respondJSON(w, http.StatusOK, HistoryResponse{Chats: chats})
}

// handleDeleteHistory handles the DELETE /chat/history/{id} endpoint.
func (s *Server) handleDeleteHistory(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(r.Context())
	if !ok {
		s.respondError(w, http.StatusUnauthorized, "UNAUTHORIZED",
			"authentication required")
		return
	}

	chatID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "INVALID_REQUEST",
			"invalid chat id")
		return
	}

	err = s.history.Delete(r.Context(), user.ID, chatID)
	if err != nil {
		if errors.Is(err, history.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "CHAT_NOT_FOUND",
				"chat not found")
			return
		}
		s.logger.Error("history deletion failed",
			"user_id", user.ID,
			"chat_id", chatID,
			"error", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR",
			"failed to delete chat")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// respondJSON sends a JSON response.
func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

// respondError sends an error response.
func (s *Server) respondError(w http.ResponseWriter, status int, code, message string) {
	s.respondJSON(w, status, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}
