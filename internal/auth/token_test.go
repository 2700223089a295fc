//-------------------------------------------------------------------------
//
// AyurGPT Server
//
// Portions copyright (c) 2025 - 2026, the AyurGPT authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package auth

import (
	"strings"
	"testing"
)

func TestNewToken(t *testing.T) {
	token := newToken()

	if len(token) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(token))
	}
	if strings.Contains(token, "-") {
		t.Error("token must not contain dashes")
	}

	if newToken() == token {
		t.Error("tokens must be unique")
	}
}

func TestHashToken(t *testing.T) {
	hash := hashToken("some-token")

	if len(hash) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(hash))
	}
	if hash == hashToken("other-token") {
		t.Error("different tokens must hash differently")
	}
	if hash != hashToken("some-token") {
		t.Error("hashing must be deterministic")
	}
}
