// Package cache memoizes finished endpoint payloads keyed by content digest.
// Entries are pure functions of their key, so stores never need invalidation;
// backends only differ in lifetime (process vs external).
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Store is the injected memoization backend. Get reports a miss with
// ok=false; Put overwrites silently (last write wins).
type Store interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Put(ctx context.Context, key string, value []byte) error
}

// Digest returns the hex SHA-256 of the uploaded bytes, the identity used
// for deduplication and cache keys.
func Digest(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// Key namespaces a digest by endpoint so summarize and risks entries for the
// same document do not collide in a shared backend.
func Key(endpoint, digest string) string {
	return endpoint + ":" + digest
}

// QAKey extends the document key with the normalized question.
func QAKey(digest, question string) string {
	return "qa:" + digest + "\n" + strings.TrimSpace(question)
}
