//-------------------------------------------------------------------------
//
// AyurGPT Server
//
// Copyright (c) 2025 - 2026, the AyurGPT authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package history persists the per-user question/answer exchanges produced
// by the chat pipeline.
package history

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ayurgpt/ayurgpt-server/internal/database"
)

// ErrNotFound is returned when a chat does not exist or belongs to another
// user.
var ErrNotFound = errors.New("chat not found")

// Chat is a single persisted exchange.
type Chat struct {
	ID        int64     `json:"id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Timestamp time.Time `json:"timestamp"`
}

// Store provides chat history persistence over a shared connection pool.
type Store struct {
	db *database.Pool
}

// NewStore creates a new history store.
func NewStore(db *database.Pool) *Store {
	return &Store{db: db}
}

// Save records an exchange for a user and returns the assigned chat id.
func (s *Store) Save(
	ctx context.Context,
	userID int64,
	question, answer string,
) (int64, error) {
	var id int64
	err := s.db.Pool().QueryRow(ctx,
		`INSERT INTO chat_history (user_id, question, answer)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		userID, question, answer).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to save chat: %w", err)
	}
	return id, nil
}

// ListByUser returns a user's chats, newest first.
func (s *Store) ListByUser(ctx context.Context, userID int64) ([]Chat, error) {
	rows, err := s.db.Pool().Query(ctx,
		`SELECT id, question, answer, created_at
		 FROM chat_history
		 WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list chats: %w", err)
	}
	defer rows.Close()

	var chats []Chat
	for rows.Next() {
		var c Chat
		if err := rows.Scan(&c.ID, &c.Question, &c.Answer, &c.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan chat: %w", err)
		}
		chats = append(chats, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating chats: %w", err)
	}

	return chats, nil
}

// Delete removes a chat owned by the given user. Deleting another user's
// chat, or a missing one, yields ErrNotFound.
func (s *Store) Delete(ctx context.Context, userID, chatID int64) error {
	tag, err := s.db.Pool().Exec(ctx,
		`DELETE FROM chat_history WHERE id = $1 AND user_id = $2`,
		chatID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete chat: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
