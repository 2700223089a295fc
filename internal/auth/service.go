//-------------------------------------------------------------------------
//
// AyurGPT Server
//
// Copyright (c) 2025 - 2026, the AyurGPT authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package auth provides user registration, login, and opaque bearer token
// authentication backed by PostgreSQL.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"github.com/ayurgpt/ayurgpt-server/internal/database"
)

// Errors surfaced to the request boundary.
var (
	ErrEmailTaken         = errors.New("a user with this email already exists")
	ErrInvalidCredentials = errors.New("incorrect credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrMissingField       = errors.New("username, email, and password are required")
)

// uniqueViolation is the PostgreSQL error code for unique constraint
// violations.
const uniqueViolation = "23505"

// User is an authenticated account.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Service provides account and token operations over a shared pool.
type Service struct {
	db *database.Pool
}

// NewService creates a new auth service.
func NewService(db *database.Pool) *Service {
	return &Service{db: db}
}

// Register creates a new account and returns the user plus a fresh token.
func (s *Service) Register(
	ctx context.Context,
	username, email, password string,
) (User, string, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(strings.ToLower(email))
	if username == "" || email == "" || password == "" {
		return User{}, "", ErrMissingField
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, "", fmt.Errorf("failed to hash password: %w", err)
	}

	var user User
	err = s.db.Pool().QueryRow(ctx,
		`INSERT INTO users (username, email, password_hash)
		 VALUES ($1, $2, $3)
		 RETURNING id, username, email`,
		username, email, string(hash)).Scan(&user.ID, &user.Username, &user.Email)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return User{}, "", ErrEmailTaken
		}
		return User{}, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.issueToken(ctx, user.ID)
	if err != nil {
		return User{}, "", err
	}

	return user, token, nil
}

// Login authenticates by email and password and returns the user plus a
// fresh token.
func (s *Service) Login(
	ctx context.Context,
	email, password string,
) (User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return User{}, "", ErrInvalidCredentials
	}

	var user User
	var hash string
	err := s.db.Pool().QueryRow(ctx,
		`SELECT id, username, email, password_hash
		 FROM users
		 WHERE email = $1`,
		email).Scan(&user.ID, &user.Username, &user.Email, &hash)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, "", ErrInvalidCredentials
	}
	if err != nil {
		return User{}, "", fmt.Errorf("failed to look up user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return User{}, "", ErrInvalidCredentials
	}

	token, err := s.issueToken(ctx, user.ID)
	if err != nil {
		return User{}, "", err
	}

	return user, token, nil
}

// Authenticate resolves a bearer token to its user.
func (s *Service) Authenticate(ctx context.Context, token string) (User, error) {
	if token == "" {
		return User{}, ErrInvalidToken
	}

	var user User
	err := s.db.Pool().QueryRow(ctx,
		`SELECT u.id, u.username, u.email
		 FROM auth_tokens t
		 JOIN users u ON u.id = t.user_id
		 WHERE t.token_hash = $1`,
		hashToken(token)).Scan(&user.ID, &user.Username, &user.Email)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrInvalidToken
	}
	if err != nil {
		return User{}, fmt.Errorf("failed to look up token: %w", err)
	}

	return user, nil
}

// issueToken mints an opaque token for a user and stores only its hash.
func (s *Service) issueToken(ctx context.Context, userID int64) (string, error) {
	token := newToken()

	_, err := s.db.Pool().Exec(ctx,
		`INSERT INTO auth_tokens (token_hash, user_id) VALUES ($1, $2)`,
		hashToken(token), userID)
	if err != nil {
		return "", fmt.Errorf("failed to store token: %w", err)
	}

	return token, nil
}
