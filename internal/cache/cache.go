package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"rag-bot/internal/embeddings"
)

const keyPrefix = "embed:"

// Cache stores embedding vectors keyed by model+text so repeated embed
// requests skip the provider call.
type Cache interface {
	// GetEmbedding retrieves a cached vector by key.
	// Returns nil on miss.
	GetEmbedding(ctx context.Context, key string) (embeddings.Vector, error)

	// SetEmbedding stores a vector with TTL.
	SetEmbedding(ctx context.Context, key string, vec embeddings.Vector, ttl time.Duration) error

	// Close closes the cache connection.
	Close() error
}

// Key derives a stable cache key from the model and input text.
func Key(model, text string) string {
	h := sha256.New()
	h.Write([]byte(model))
	h.Write([]byte{0})
	h.Write([]byte(text))
	return keyPrefix + hex.EncodeToString(h.Sum(nil))
}
