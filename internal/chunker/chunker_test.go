package chunker

import (
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		c := New()
		if c.chunkSize != DefaultChunkSize {
			t.Errorf("expected chunkSize %d, got %d", DefaultChunkSize, c.chunkSize)
		}
		if c.overlap != DefaultChunkOverlap {
			t.Errorf("expected overlap %d, got %d", DefaultChunkOverlap, c.overlap)
		}
	})

	t.Run("custom values", func(t *testing.T) {
		c := New(WithChunkSize(500), WithOverlap(50))
		if c.chunkSize != 500 {
			t.Errorf("expected chunkSize 500, got %d", c.chunkSize)
		}
		if c.overlap != 50 {
			t.Errorf("expected overlap 50, got %d", c.overlap)
		}
	})

	t.Run("overlap exceeds chunk size", func(t *testing.T) {
		c := New(WithChunkSize(100), WithOverlap(150))
		if c.overlap >= c.chunkSize {
			t.Error("overlap should be reduced when it exceeds chunk size")
		}
	})

	t.Run("zero values ignored", func(t *testing.T) {
		c := New(WithChunkSize(0), WithOverlap(-1))
		if c.chunkSize != DefaultChunkSize {
			t.Errorf("expected default chunkSize, got %d", c.chunkSize)
		}
		if c.overlap != DefaultChunkOverlap {
			t.Errorf("expected default overlap, got %d", c.overlap)
		}
	})
}

func TestSplit_EmptyText(t *testing.T) {
	c := New()
	if chunks := c.Split(""); len(chunks) != 0 {
		t.Errorf("expected 0 chunks for empty text, got %d", len(chunks))
	}
}

func TestSplit_SmallText(t *testing.T) {
	c := New(WithChunkSize(100), WithOverlap(20))
	text := "This is a small piece of content."

	chunks := c.Split(text)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk for small text, got %d", len(chunks))
	}
	if chunks[0] != text {
		t.Errorf("expected chunk to match input text")
	}
}

func TestSplit_Overlap(t *testing.T) {
	c := New(WithChunkSize(10), WithOverlap(4))
	text := "abcdefghijklmnopqrstuvwxyz"

	chunks := c.Split(text)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	// Consecutive chunks share exactly the overlap.
	for i := 1; i < len(chunks); i++ {
		prev := []rune(chunks[i-1])
		tail := string(prev[len(prev)-4:])
		if !strings.HasPrefix(chunks[i], tail) {
			t.Errorf("chunk %d does not start with the previous chunk's overlap: %q vs %q",
				i, chunks[i], tail)
		}
	}
}

func TestSplit_Properties(t *testing.T) {
	c := New(WithChunkSize(50), WithOverlap(10))
	text := strings.Repeat("The quick brown fox jumps over the lazy dog. ", 20)

	chunks := c.Split(text)
	if len(chunks) == 0 {
		t.Fatal("expected chunks for non-empty text")
	}

	for i, chunk := range chunks {
		if chunk == "" {
			t.Errorf("chunk %d is empty", i)
		}
		if !strings.Contains(text, chunk) {
			t.Errorf("chunk %d is not a substring of the input", i)
		}
	}

	// Reconstructing with the overlap removed yields the original text.
	var b strings.Builder
	b.WriteString(chunks[0])
	for i := 1; i < len(chunks); i++ {
		runes := []rune(chunks[i])
		b.WriteString(string(runes[10:]))
	}
	if b.String() != text {
		t.Errorf("overlap-removed concatenation does not reconstruct the input")
	}
}

func TestSplit_FinalChunkShorter(t *testing.T) {
	c := New(WithChunkSize(10), WithOverlap(2))
	text := strings.Repeat("x", 25)

	chunks := c.Split(text)
	last := chunks[len(chunks)-1]
	if len(last) > 10 {
		t.Errorf("final chunk longer than chunk size: %d", len(last))
	}
}

func TestSplit_MultiByte(t *testing.T) {
	c := New(WithChunkSize(4), WithOverlap(1))
	text := "日本語のテキストです"

	chunks := c.Split(text)
	for i, chunk := range chunks {
		if !strings.Contains(text, chunk) {
			t.Errorf("chunk %d split mid-character: %q", i, chunk)
		}
	}
}
