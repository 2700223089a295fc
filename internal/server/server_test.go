//-------------------------------------------------------------------------
//
// AyurGPT Server
//
// Portions copyright (c) 2025, the AyurGPT authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ayurgpt/ayurgpt-server/internal/auth"
	"github.com/ayurgpt/ayurgpt-server/internal/config"
	"github.com/ayurgpt/ayurgpt-server/internal/history"
	"github.com/ayurgpt/ayurgpt-server/internal/pipeline"
)

// mockChatPipeline implements ChatPipeline for testing.
type mockChatPipeline struct {
	ChatFunc func(ctx context.Context, userID int64, question string) (*pipeline.ChatResponse, error)
}

func (m *mockChatPipeline) Chat(
	ctx context.Context,
	userID int64,
	question string,
) (*pipeline.ChatResponse, error) {
	if m.ChatFunc != nil {
		return m.ChatFunc(ctx, userID, question)
	}
	return &pipeline.ChatResponse{
		Question: question,
		Answer:   "A mock answer.",
		ChatID:   1,
	}, nil
}

// mockHistoryStore implements HistoryStore for testing.
type mockHistoryStore struct {
	ListFunc   func(ctx context.Context, userID int64) ([]history.Chat, error)
	DeleteFunc func(ctx context.Context, userID, chatID int64) error
}

func (m *mockHistoryStore) ListByUser(ctx context.Context, userID int64) ([]history.Chat, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, userID)
	}
	return []history.Chat{}, nil
}

func (m *mockHistoryStore) Delete(ctx context.Context, userID, chatID int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID, chatID)
	}
	return nil
}

// mockAuthenticator implements Authenticator for testing. The token
// "valid-token" resolves to user id 7.
type mockAuthenticator struct {
	RegisterFunc func(ctx context.Context, username, email, password string) (auth.User, string, error)
	LoginFunc    func(ctx context.Context, email, password string) (auth.User, string, error)
}

func (m *mockAuthenticator) Register(
	ctx context.Context,
	username, email, password string,
) (auth.User, string, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, username, email, password)
	}
	return auth.User{ID: 7, Username: username, Email: email}, "new-token", nil
}

func (m *mockAuthenticator) Login(
	ctx context.Context,
	email, password string,
) (auth.User, string, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return auth.User{ID: 7, Username: "tester", Email: email}, "new-token", nil
}

func (m *mockAuthenticator) Authenticate(ctx context.Context, token string) (auth.User, error) {
	if token == "valid-token" {
		return auth.User{ID: 7, Username: "tester", Email: "tester@example.com"}, nil
	}
	return auth.User{}, auth.ErrInvalidToken
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			ListenAddress: "127.0.0.1",
			Port:          8080,
		},
	}
}

func testServer() *Server {
	return New(testConfig(), &mockChatPipeline{}, &mockHistoryStore{},
		&mockAuthenticator{}, nil)
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	return resp
}

func TestHealthEndpoint(t *testing.T) {
	srv := testServer()

	req := httptest.NewRequest(http.MethodGet, "/v1/health", nil)
	w := httptest.NewRecorder()

	srv.mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	var resp HealthResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != "healthy" {
		t.Errorf("expected status healthy, got %s", resp.Status)
	}
}

func TestChatEndpoint(t *testing.T) {
	srv := testServer()

	body, _ := json.Marshal(pipeline.ChatRequest{Question: "What helps with indigestion?"})
	req := httptest.NewRequest(http.MethodPost, "/v1/chat", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer valid-token")
	w := httptest.NewRecorder()

	srv.mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	var resp pipeline.ChatResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Answer != "A mock answer." {
		t.Errorf("unexpected answer: %q", resp.Answer)
	}
}

func TestChatEndpoint_EmptyQuestion(t *testing.T) {
	srv := New(testConfig(), &mockChatPipeline{
		ChatFunc: func(ctx context.Context, userID int64, question string) (*pipeline.ChatResponse, error) {
			return nil, pipeline.ErrEmptyQuestion
		},
	}, &mockHistoryStore{}, &mockAuthenticator{}, nil)

	body, _ := json.Marshal(pipeline.ChatRequest{Question: ""})
	req := httptest.NewRequest(http.MethodPost, "/v1/chat", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer valid-token")
	w := httptest.NewRecorder()

	srv.mux.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
	if resp := decodeError(t, w); resp.Error.Code != "INVALID_REQUEST" {
		t.Errorf("expected code INVALID_REQUEST, got %s", resp.Error.Code)
	}
}

func TestChatEndpoint_Unauthorized(t *testing.T) {
	srv := testServer()

	tests := []struct {
		name   string
		header string
	}{
		{name: "no header", header: ""},
		{name: "bad token", header: "Bearer wrong-token"},
		{name: "wrong scheme", header: "Basic dXNlcjpwYXNz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(pipeline.ChatRequest{Question: "What is vata?"})
			req := httptest.NewRequest(http.MethodPost, "/v1/chat", bytes.NewReader(body))
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			srv.mux.ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
			}
		})
	}
}

func TestRegisterEndpoint(t *testing.T) {
	srv := testServer()

	body, _ := json.Marshal(RegisterRequest{
		Username: "tester",
		Email:    "tester@example.com",
		Password: "secret",
	})
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/register", bytes.NewReader(body))
	w := httptest.NewRecorder()

	srv.mux.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, w.Code)
	}

	var resp AuthResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Token == "" {
		t.Error("expected a token")
	}
	if resp.User.Email != "tester@example.com" {
		t.Errorf("unexpected user email: %s", resp.User.Email)
	}
}

func TestRegisterEndpoint_EmailTaken(t *testing.T) {
	srv := New(testConfig(), &mockChatPipeline{}, &mockHistoryStore{},
		&mockAuthenticator{
			RegisterFunc: func(ctx context.Context, username, email, password string) (auth.User, string, error) {
				return auth.User{}, "", auth.ErrEmailTaken
			},
		}, nil)

	body, _ := json.Marshal(RegisterRequest{
		Username: "tester",
		Email:    "taken@example.com",
		Password: "secret",
	})
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/register", bytes.NewReader(body))
	w := httptest.NewRecorder()

	srv.mux.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected status %d, got %d", http.StatusConflict, w.Code)
	}
	if resp := decodeError(t, w); resp.Error.Code != "EMAIL_TAKEN" {
		t.Errorf("expected code EMAIL_TAKEN, got %s", resp.Error.Code)
	}
}

func TestLoginEndpoint_InvalidCredentials(t *testing.T) {
	srv := New(testConfig(), &mockChatPipeline{}, &mockHistoryStore{},
		&mockAuthenticator{
			LoginFunc: func(ctx context.Context, email, password string) (auth.User, string, error) {
				return auth.User{}, "", auth.ErrInvalidCredentials
			},
		}, nil)

	body, _ := json.Marshal(LoginRequest{Email: "tester@example.com", Password: "wrong"})
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", bytes.NewReader(body))
	w := httptest.NewRecorder()

	srv.mux.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestGetUserEndpoint(t *testing.T) {
	srv := testServer()

	req := httptest.NewRequest(http.MethodGet, "/v1/auth/user", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	w := httptest.NewRecorder()

	srv.mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	var user auth.User
	if err := json.NewDecoder(w.Body).Decode(&user); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if user.ID != 7 {
		t.Errorf("expected user id 7, got %d", user.ID)
	}
}

func TestHistoryEndpoint(t *testing.T) {
	srv := New(testConfig(), &mockChatPipeline{}, &mockHistoryStore{
		ListFunc: func(ctx context.Context, userID int64) ([]history.Chat, error) {
			if userID != 7 {
				t.Errorf("expected user id 7, got %d", userID)
			}
			return []history.Chat{
				{ID: 2, Question: "What is pitta?", Answer: "The fire dosha."},
				{ID: 1, Question: "What is vata?", Answer: "The air dosha."},
			}, nil
		},
	}, &mockAuthenticator{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/chat/history", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	w := httptest.NewRecorder()

	srv.mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	var resp HistoryResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Chats) != 2 {
		t.Fatalf("expected 2 chats, got %d", len(resp.Chats))
	}
	if resp.Chats[0].ID != 2 {
		t.Errorf("expected newest chat first, got id %d", resp.Chats[0].ID)
	}
}

func TestDeleteHistoryEndpoint(t *testing.T) {
	srv := testServer()

	req := httptest.NewRequest(http.MethodDelete, "/v1/chat/history/42", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	w := httptest.NewRecorder()

	srv.mux.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("expected status %d, got %d", http.StatusNoContent, w.Code)
	}
}

func TestDeleteHistoryEndpoint_NotFound(t *testing.T) {
	srv := New(testConfig(), &mockChatPipeline{}, &mockHistoryStore{
		DeleteFunc: func(ctx context.Context, userID, chatID int64) error {
			return history.ErrNotFound
		},
	}, &mockAuthenticator{}, nil)

	req := httptest.NewRequest(http.MethodDelete, "/v1/chat/history/999", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	w := httptest.NewRecorder()

	srv.mux.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, w.Code)
	}
}

func TestDeleteHistoryEndpoint_InvalidID(t *testing.T) {
	srv := testServer()

	req := httptest.NewRequest(http.MethodDelete, "/v1/chat/history/abc", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	w := httptest.NewRecorder()

	srv.mux.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}
