package chunker

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSplitScenarios(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		size     int
		overlap  int
		expected []string
	}{
		{"overlap of one", "abcdefghij", 4, 1, []string{"abcd", "defg", "ghij"}},
		{"no overlap", "abcdefghij", 5, 0, []string{"abcde", "fghij"}},
		{"empty input", "", 4, 1, nil},
		{"shorter than chunk size", "abc", 10, 2, []string{"abc"}},
		{"exact single chunk", "abcd", 4, 1, []string{"abcd"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks, err := Split(tt.text, Options{ChunkSize: tt.size, ChunkOverlap: tt.overlap})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(chunks, tt.expected) {
				t.Errorf("got %q, want %q", chunks, tt.expected)
			}
		})
	}
}

func TestSplitInvalidParameters(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		overlap int
	}{
		{"overlap equals size", 3, 3},
		{"overlap greater than size", 3, 5},
		{"zero size", 0, 0},
		{"negative size", -1, 0},
		{"negative overlap", 4, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks, err := Split("abcdef", Options{ChunkSize: tt.size, ChunkOverlap: tt.overlap})
			if !errors.Is(err, ErrInvalidParameter) {
				t.Fatalf("expected ErrInvalidParameter, got %v", err)
			}
			if chunks != nil {
				t.Errorf("expected no chunks on validation failure, got %q", chunks)
			}
		})
	}
}

func TestSplitCoverage(t *testing.T) {
	// Dropping the leading overlap of every chunk after the first must
	// reconstruct the input exactly.
	texts := []string{
		"the quick brown fox jumps over the lazy dog",
		strings.Repeat("abcdefg", 37),
		"short",
	}
	for _, text := range texts {
		for _, opts := range []Options{{7, 0}, {7, 3}, {10, 9}, {100, 10}} {
			chunks, err := Split(text, opts)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			var rebuilt []rune
			for i, c := range chunks {
				runes := []rune(c)
				if i > 0 {
					runes = runes[min(opts.ChunkOverlap, len(runes)):]
				}
				rebuilt = append(rebuilt, runes...)
			}
			if string(rebuilt) != text {
				t.Errorf("opts %+v: reconstruction mismatch: got %q, want %q", opts, string(rebuilt), text)
			}
		}
	}
}

func TestSplitOverlapExactness(t *testing.T) {
	text := strings.Repeat("0123456789", 13)
	opts := Options{ChunkSize: 24, ChunkOverlap: 6}
	chunks, err := Split(text, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 1; i < len(chunks); i++ {
		prev := []rune(chunks[i-1])
		cur := []rune(chunks[i])
		if len(prev) < opts.ChunkOverlap || len(cur) < opts.ChunkOverlap {
			continue
		}
		tail := string(prev[len(prev)-opts.ChunkOverlap:])
		head := string(cur[:opts.ChunkOverlap])
		if tail != head {
			t.Errorf("chunk %d: tail %q != head %q", i, tail, head)
		}
	}
}

func TestSplitCountFormula(t *testing.T) {
	// count = ceil((len - overlap) / (size - overlap)) for non-empty input
	tests := []struct {
		length  int
		size    int
		overlap int
	}{
		{10, 4, 1},
		{10, 5, 0},
		{3, 10, 2},
		{500, 50, 10},
		{501, 50, 10},
		{1, 1, 0},
		{97, 13, 12},
	}
	for _, tt := range tests {
		text := strings.Repeat("x", tt.length)
		chunks, err := Split(text, Options{ChunkSize: tt.size, ChunkOverlap: tt.overlap})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		stride := tt.size - tt.overlap
		want := (tt.length - tt.overlap + stride - 1) / stride
		if want < 1 {
			want = 1
		}
		if len(chunks) != want {
			t.Errorf("len=%d size=%d overlap=%d: got %d chunks, want %d",
				tt.length, tt.size, tt.overlap, len(chunks), want)
		}
	}
}

func TestSplitBoundedLength(t *testing.T) {
	text := strings.Repeat("lorem ipsum ", 42)
	chunks, err := Split(text, Options{ChunkSize: 17, ChunkOverlap: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, c := range chunks {
		if n := utf8.RuneCountInString(c); n > 17 {
			t.Errorf("chunk %d has %d characters, max is 17", i, n)
		}
	}
}

func TestSplitDeterminism(t *testing.T) {
	text := strings.Repeat("determinism ", 30)
	opts := Options{ChunkSize: 40, ChunkOverlap: 8}
	first, err := Split(text, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Split(text, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("identical inputs produced different chunk sequences")
	}
}

func TestSplitUnicode(t *testing.T) {
	// Multibyte runes must count as single characters and never be cut.
	text := "héllo wörld 你好世界 🙂🙃 end"
	chunks, err := Split(text, Options{ChunkSize: 5, ChunkOverlap: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, c := range chunks {
		if !utf8.ValidString(c) {
			t.Errorf("chunk %d is not valid UTF-8: %q", i, c)
		}
		if n := utf8.RuneCountInString(c); n > 5 {
			t.Errorf("chunk %d has %d runes, max is 5", i, n)
		}
	}
	var rebuilt []rune
	for i, c := range chunks {
		runes := []rune(c)
		if i > 0 {
			runes = runes[2:]
		}
		rebuilt = append(rebuilt, runes...)
	}
	if string(rebuilt) != text {
		t.Errorf("reconstruction mismatch: got %q", string(rebuilt))
	}
}
