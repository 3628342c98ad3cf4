package chunker

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSplit_Identity(t *testing.T) {
	tests := []struct {
		name string
		text string
		max  int
	}{
		{"short", "Hello world. This is a test.", 4000},
		{"exact limit", strings.Repeat("a", 10), 10},
		{"whitespace preserved", "  line one\n\nline two  ", 100},
		{"huge limit", "Hello world. This is a test.", 1 << 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := Split(tt.text, tt.max)
			if len(chunks) != 1 || chunks[0] != tt.text {
				t.Fatalf("Split() = %q, want [%q]", chunks, tt.text)
			}
		})
	}
}

func TestSplit_DefaultLimit(t *testing.T) {
	text := strings.Repeat("word ", 1000) // 5000 chars
	chunks := Split(text, 0)
	if len(chunks) < 2 {
		t.Fatalf("expected default limit to split text, got %d chunks", len(chunks))
	}
	for i, c := range chunks {
		if n := utf8.RuneCountInString(c); n > DefaultMaxChunkSize {
			t.Errorf("chunk %d has %d chars, limit %d", i, n, DefaultMaxChunkSize)
		}
	}
}

func TestSplit_PacksSentences(t *testing.T) {
	text := "One two. Three four! Five six? Seven."
	chunks := Split(text, 20)
	want := []string{"One two. Three four!", "Five six? Seven."}
	if len(chunks) != len(want) {
		t.Fatalf("Split() = %q, want %q", chunks, want)
	}
	for i := range want {
		if chunks[i] != want[i] {
			t.Errorf("chunk %d = %q, want %q", i, chunks[i], want[i])
		}
	}
}

func TestSplit_BoundaryNeedsWhitespace(t *testing.T) {
	// "3.14" and "e.g.x" contain no sentence boundary.
	text := "Pi is 3.14 and e.g.x is fine. Next sentence here."
	chunks := Split(text, 30)
	if chunks[0] != "Pi is 3.14 and e.g.x is fine." {
		t.Fatalf("first chunk = %q", chunks[0])
	}
}

func TestSplit_LongSentenceFallsBackToWords(t *testing.T) {
	long := strings.TrimSpace(strings.Repeat("la ", 20)) // 59 chars, no boundary
	text := "Short one. " + long
	chunks := Split(text, 20)
	if chunks[0] != "Short one." {
		t.Fatalf("first chunk = %q, want %q", chunks[0], "Short one.")
	}
	for i, c := range chunks {
		if n := utf8.RuneCountInString(c); n > 20 {
			t.Errorf("chunk %d has %d chars: %q", i, n, c)
		}
	}
	assertSameWords(t, text, chunks)
}

func TestSplit_OversizedWordKeptWhole(t *testing.T) {
	word := strings.Repeat("x", 50)
	text := "tiny " + word + " end"
	chunks := Split(text, 10)
	found := false
	for _, c := range chunks {
		if c == word {
			found = true
			continue
		}
		if n := utf8.RuneCountInString(c); n > 10 {
			t.Errorf("chunk %q exceeds limit and is not the oversized word", c)
		}
	}
	if !found {
		t.Fatalf("expected oversized word as its own chunk, got %q", chunks)
	}
	assertSameWords(t, text, chunks)
}

func TestSplit_ReassemblesInOrder(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 300; i++ {
		b.WriteString("This is sentence number ")
		b.WriteString(strings.Repeat("i", i%7+1))
		switch i % 3 {
		case 0:
			b.WriteString(".\n")
		case 1:
			b.WriteString("! ")
		default:
			b.WriteString("?  ")
		}
	}
	text := b.String()
	for _, max := range []int{40, 100, 500, 4000} {
		chunks := Split(text, max)
		for i, c := range chunks {
			if n := utf8.RuneCountInString(c); n > max {
				t.Errorf("max=%d: chunk %d has %d chars", max, i, n)
			}
		}
		assertSameWords(t, text, chunks)
	}
}

func TestSplit_MultibyteCountedAsCharacters(t *testing.T) {
	sentence := strings.Repeat("ආ", 8) + "."
	text := sentence + " " + sentence
	chunks := Split(text, 9)
	if len(chunks) != 2 || chunks[0] != sentence || chunks[1] != sentence {
		t.Fatalf("Split() = %q", chunks)
	}
}

func assertSameWords(t *testing.T, text string, chunks []string) {
	t.Helper()
	got := strings.Fields(strings.Join(chunks, " "))
	want := strings.Fields(text)
	if len(got) != len(want) {
		t.Fatalf("reassembled %d words, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("word %d = %q, want %q", i, got[i], want[i])
		}
	}
}
