package embeddings

import (
	"context"
	"crypto/sha256"
	"fmt"
	"strings"
)

// StubEmbedder produces deterministic vectors without any API call.
// Useful for local development and smoke tests.
type StubEmbedder struct {
	Dim int
}

func (s StubEmbedder) Embed(_ context.Context, text string) (Vector, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: text must be provided", ErrInvalidInput)
	}
	dim := s.Dim
	if dim <= 0 {
		dim = 1536
	}
	sum := sha256.Sum256([]byte(text))
	vec := make(Vector, dim)
	for i := range vec {
		vec[i] = float32(sum[i%len(sum)]) / 255
	}
	return vec, nil
}
