package anchor

import (
	"testing"

	"github.com/magnusgp/fermatter/internal/segment"
)

func para(text string) segment.Paragraph {
	return segment.Paragraph{Index: 0, Text: text, StartOffset: 0, EndOffset: len([]rune(text))}
}

func TestResolve_ExactMatch(t *testing.T) {
	p := para("The quick brown fox jumps over the lazy dog.")

	span, ok := Resolve(p, "brown fox")
	if !ok {
		t.Fatal("Expected anchor to resolve")
	}
	if got := string([]rune(p.Text)[span.Start:span.End]); got != "brown fox" {
		t.Errorf("Span [%d:%d] yields %q, want 'brown fox'", span.Start, span.End, got)
	}
}

func TestResolve_CaseInsensitive(t *testing.T) {
	p := para("Clearly THE Results Were Significant.")

	span, ok := Resolve(p, "the results were")
	if !ok {
		t.Fatal("Expected case-insensitive anchor to resolve")
	}
	if span.Start != 8 {
		t.Errorf("Expected match at rune 8, got %d", span.Start)
	}
}

func TestResolve_LeftmostWins(t *testing.T) {
	p := para("again and again and again")

	span, ok := Resolve(p, "again")
	if !ok {
		t.Fatal("Expected anchor to resolve")
	}
	if span.Start != 0 {
		t.Errorf("Expected leftmost match at 0, got %d", span.Start)
	}
}

func TestResolve_NoMatch(t *testing.T) {
	p := para("Nothing to see here.")

	if _, ok := Resolve(p, "completely absent phrase"); ok {
		t.Error("Expected no match for absent fragment")
	}
	if _, ok := Resolve(p, ""); ok {
		t.Error("Expected no match for empty anchor")
	}
}

func TestResolveInDocument_GlobalOffsets(t *testing.T) {
	doc := "First paragraph.\n\nSecond paragraph with a target phrase inside."
	paragraphs := segment.Split(doc)

	span, ok := ResolveInDocument(paragraphs, 1, "target phrase")
	if !ok {
		t.Fatal("Expected anchor to resolve in paragraph 1")
	}
	if got := string([]rune(doc)[span.Start:span.End]); got != "target phrase" {
		t.Errorf("Global span [%d:%d] yields %q, want 'target phrase'", span.Start, span.End, got)
	}
}

func TestResolveInDocument_OutOfRange(t *testing.T) {
	paragraphs := segment.Split("Only one paragraph.")

	if _, ok := ResolveInDocument(paragraphs, 5, "paragraph"); ok {
		t.Error("Expected no match for out-of-range index")
	}
	if _, ok := ResolveInDocument(paragraphs, -1, "paragraph"); ok {
		t.Error("Expected no match for negative index")
	}
}

func TestVerify(t *testing.T) {
	paragraphs := segment.Split("Alpha beta gamma.\n\nDelta epsilon.")

	if !Verify(paragraphs, 0, "BETA GAMMA") {
		t.Error("Expected case-insensitive verify to pass")
	}
	if Verify(paragraphs, 1, "beta") {
		t.Error("Expected verify to fail for text from another paragraph")
	}
}
