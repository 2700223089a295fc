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
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

// newToken mints an opaque bearer token. Two UUIDs give 256 bits of
// randomness.
func newToken() string {
	return strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")
}

// hashToken returns the hex SHA-256 of a token. Only hashes are stored so a
// leaked database does not leak usable tokens.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
