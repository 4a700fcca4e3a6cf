// Package anchor locates quoted fragments inside segmented paragraphs
// so the UI can highlight the exact span a finding refers to.
package anchor

import (
	"strings"

	"github.com/magnusgp/fermatter/internal/segment"
)

// Span is a half-open [Start, End) rune range.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Resolve finds anchorText inside the paragraph, case-insensitively,
// leftmost match first. Coordinates are paragraph-local rune offsets.
// Returns false when the fragment does not occur verbatim; callers
// degrade to an unhighlighted observation, never an error.
func Resolve(p segment.Paragraph, anchorText string) (Span, bool) {
	if anchorText == "" {
		return Span{}, false
	}

	haystack := strings.ToLower(p.Text)
	needle := strings.ToLower(anchorText)

	byteIdx := strings.Index(haystack, needle)
	if byteIdx < 0 {
		return Span{}, false
	}

	// Convert byte offsets back to rune offsets. Lowercasing is done on
	// both sides so the byte index lines up with the lowered haystack.
	start := len([]rune(haystack[:byteIdx]))
	length := len([]rune(needle))

	return Span{Start: start, End: start + length}, true
}

// ResolveInDocument resolves an anchor in document-global coordinates.
// An out-of-range paragraph index resolves to nothing.
func ResolveInDocument(paragraphs []segment.Paragraph, paragraphIndex int, anchorText string) (Span, bool) {
	if paragraphIndex < 0 || paragraphIndex >= len(paragraphs) {
		return Span{}, false
	}

	p := paragraphs[paragraphIndex]
	local, ok := Resolve(p, anchorText)
	if !ok {
		return Span{}, false
	}

	return Span{
		Start: p.StartOffset + local.Start,
		End:   p.StartOffset + local.End,
	}, true
}

// Verify reports whether anchorText occurs verbatim (case-insensitive)
// in the paragraph at paragraphIndex.
func Verify(paragraphs []segment.Paragraph, paragraphIndex int, anchorText string) bool {
	_, ok := ResolveInDocument(paragraphs, paragraphIndex, anchorText)
	return ok
}
