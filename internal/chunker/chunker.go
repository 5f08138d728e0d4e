package chunker

import (
	"errors"
	"fmt"
)

// Defaults used by the service configuration when the caller omits sizes.
const (
	DefaultChunkSize    = 500
	DefaultChunkOverlap = 50
)

// ErrInvalidParameter reports a size/overlap combination that is malformed
// or would never terminate. It is always returned before any chunk is
// produced, never mid-computation.
var ErrInvalidParameter = errors.New("invalid chunking parameter")

// Options controls how text is split.
type Options struct {
	ChunkSize    int // maximum chunk length, in characters
	ChunkOverlap int // characters shared by consecutive chunks
}

// Split partitions text into overlapping fixed-size character windows.
// Consecutive chunks share exactly Options.ChunkOverlap characters; the
// final chunk may be shorter than Options.ChunkSize. Empty input yields
// no chunks. Characters are Unicode code points, not bytes, so multibyte
// runes are never split across chunks.
func Split(text string, opts Options) ([]string, error) {
	if opts.ChunkSize <= 0 {
		return nil, fmt.Errorf("%w: chunk_size must be > 0, got %d", ErrInvalidParameter, opts.ChunkSize)
	}
	if opts.ChunkOverlap < 0 {
		return nil, fmt.Errorf("%w: chunk_overlap must be >= 0, got %d", ErrInvalidParameter, opts.ChunkOverlap)
	}
	if opts.ChunkOverlap >= opts.ChunkSize {
		return nil, fmt.Errorf("%w: chunk_overlap (%d) must be < chunk_size (%d)", ErrInvalidParameter, opts.ChunkOverlap, opts.ChunkSize)
	}

	runes := []rune(text)
	if len(runes) == 0 {
		return nil, nil
	}

	// Validation above guarantees step >= 1, so the cursor always advances.
	step := opts.ChunkSize - opts.ChunkOverlap
	var chunks []string
	for start := 0; start < len(runes); start += step {
		end := start + opts.ChunkSize
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
		if end == len(runes) {
			break
		}
	}
	return chunks, nil
}
