package segment

import "strings"

// Paragraph is one non-blank block of the document. Offsets are rune
// positions into the original document string, so Text is always the
// literal substring document[StartOffset:EndOffset].
type Paragraph struct {
	Index       int    `json:"index"`
	Text        string `json:"text"`
	StartOffset int    `json:"start_offset"`
	EndOffset   int    `json:"end_offset"`
}

// Split segments a document into paragraphs. One or more blank lines
// delimit paragraphs; whitespace-only blocks are dropped and indices
// are assigned consecutively to the survivors. Pure and total: an
// empty document yields an empty slice, a document without blank-line
// separators yields a single paragraph.
func Split(document string) []Paragraph {
	runes := []rune(document)

	var paragraphs []Paragraph
	start := -1 // rune offset where the current block began, -1 = between blocks

	flush := func(end int) {
		if start < 0 {
			return
		}
		s, e := start, end
		start = -1
		// Trim the block to its non-whitespace extent so Text carries
		// no stray newlines while offsets stay exact.
		for s < e && isSpace(runes[s]) {
			s++
		}
		for e > s && isSpace(runes[e-1]) {
			e--
		}
		if s == e {
			return
		}
		paragraphs = append(paragraphs, Paragraph{
			Index:       len(paragraphs),
			Text:        string(runes[s:e]),
			StartOffset: s,
			EndOffset:   e,
		})
	}

	lineStart := 0
	for i := 0; i <= len(runes); i++ {
		if i < len(runes) && runes[i] != '\n' {
			continue
		}
		line := string(runes[lineStart:i])
		blank := strings.TrimSpace(line) == ""
		if blank {
			flush(lineStart)
		} else if start < 0 {
			start = lineStart
		}
		lineStart = i + 1
	}
	flush(len(runes))

	return paragraphs
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\v' || r == '\f'
}

// Texts returns just the paragraph bodies, in order.
func Texts(paragraphs []Paragraph) []string {
	out := make([]string, len(paragraphs))
	for i, p := range paragraphs {
		out[i] = p.Text
	}
	return out
}
