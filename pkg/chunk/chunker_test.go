package chunk

import (
	"strings"
	"testing"
)

func TestSplitReconstructsWordSequence(t *testing.T) {
	texts := []string{
		"the quick brown fox jumps over the lazy dog",
		"a  b\tc\nd   e",
		"one",
		"liability indemnification termination governing law severability",
	}
	for _, text := range texts {
		for _, max := range []int{1, 5, 10, 50, 1000} {
			chunks := Split(text, max)
			got := strings.Fields(strings.Join(chunks, " "))
			want := strings.Fields(text)
			if len(got) != len(want) {
				t.Fatalf("Split(%q, %d): word count %d, want %d", text, max, len(got), len(want))
			}
			for i := range want {
				if got[i] != want[i] {
					t.Fatalf("Split(%q, %d): word %d = %q, want %q", text, max, i, got[i], want[i])
				}
			}
		}
	}
}

func TestSplitRespectsBound(t *testing.T) {
	text := strings.Repeat("word ", 500)
	for _, max := range []int{10, 25, 100} {
		for i, c := range Split(text, max) {
			if len(c) > max {
				t.Fatalf("chunk %d has length %d > %d", i, len(c), max)
			}
		}
	}
}

func TestSplitEmptyInput(t *testing.T) {
	if got := Split("", 100); len(got) != 0 {
		t.Fatalf("expected no chunks, got %v", got)
	}
	if got := Split("   \n\t ", 100); len(got) != 0 {
		t.Fatalf("expected no chunks for whitespace input, got %v", got)
	}
}

func TestSplitOversizedWord(t *testing.T) {
	word := strings.Repeat("a", 5000)
	chunks := Split(word, 10)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0] != word {
		t.Fatalf("oversized word was altered")
	}
}

func TestSplitOversizedWordBetweenOthers(t *testing.T) {
	long := strings.Repeat("x", 40)
	chunks := Split("short "+long+" tail", 10)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d: %v", len(chunks), chunks)
	}
	if chunks[1] != long {
		t.Fatalf("middle chunk = %q, want the oversized word", chunks[1])
	}
}

func TestSplitCountMonotonic(t *testing.T) {
	text := strings.Repeat("clause seven governs assignment and novation ", 40)
	prev := 0
	for _, max := range []int{2000, 500, 100, 20, 5} {
		n := len(Split(text, max))
		if n < prev {
			t.Fatalf("chunk count decreased from %d to %d as maxChars shrank to %d", prev, n, max)
		}
		prev = n
	}
}

func TestSplitDeterministic(t *testing.T) {
	text := strings.Repeat("some repeated agreement text ", 30)
	a := Split(text, 64)
	b := Split(text, 64)
	if len(a) != len(b) {
		t.Fatalf("non-deterministic chunk count: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("chunk %d differs between runs", i)
		}
	}
}
