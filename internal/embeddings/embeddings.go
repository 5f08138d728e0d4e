package embeddings

import (
	"context"
	"errors"
	"math"
)

// Vector is a fixed-length embedding.
type Vector []float32

var (
	ErrRateLimited  = errors.New("embedding provider rate limited")
	ErrInvalidInput = errors.New("invalid embedding input")
	ErrUnavailable  = errors.New("embedding provider unavailable")
)

// Embedder defines the embedding interface.
type Embedder interface {
	Embed(ctx context.Context, text string) (Vector, error)
}

// CosineSimilarity returns the cosine of the angle between two vectors,
// or 0 when either is empty or their lengths differ.
func CosineSimilarity(a, b Vector) float32 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
