//-------------------------------------------------------------------------
//
// AyurGPT Server
//
// Portions copyright (c) 2025, the AyurGPT authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package pipeline implements the retrieval-and-generation pipeline: embed
// the question, search the vector index, join hits back to passage text,
// compose a grounded prompt, and generate an answer.
package pipeline

import "errors"

// ErrEmptyQuestion is returned for a blank question. It is the only
// pipeline error that reaches the request boundary; every internal failure
// degrades to a fallback answer instead.
var ErrEmptyQuestion = errors.New("no question provided")

// ChatRequest is a chat query.
type ChatRequest struct {
	Question string `json:"question"`
}

// ChatResponse is the result of a chat query.
type ChatResponse struct {
	Question        string   `json:"question"`
	Answer          string   `json:"answer"`
	ChatID          int64    `json:"chat_id"`
	ProcessingSteps []string `json:"processing_steps"`
}
