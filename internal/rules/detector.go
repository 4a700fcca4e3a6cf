// Package rules implements the deterministic heuristic detectors that
// scan paragraphs and emit candidate findings. Detectors critique, they
// never rewrite: every candidate quotes the text it is about and asks a
// question, leaving the document untouched.
package rules

import (
	"strings"

	"github.com/magnusgp/fermatter/internal/model"
	"github.com/magnusgp/fermatter/internal/segment"
)

// Candidate is a pre-finalized finding. The coordinator turns it into a
// model.Observation once ids are assigned and anchors validated.
type Candidate struct {
	Type       model.ObservationType
	Severity   int
	Paragraph  int
	AnchorText string
	Title      string
	Note       string
	Question   string
}

// Detector is one pure heuristic. Check receives a single paragraph
// and must not touch anything outside its arguments.
type Detector struct {
	// Name identifies the detector in warnings and tests.
	Name string
	// Modes lists the modes under which this detector runs.
	Modes []model.Mode
	// Check scans one paragraph and returns zero or more candidates.
	Check func(p segment.Paragraph, mode model.Mode, goal string) []Candidate
}

func (d Detector) runsUnder(mode model.Mode) bool {
	for _, m := range d.Modes {
		if m == mode {
			return true
		}
	}
	return false
}

var allModes = []model.Mode{model.ModeScientific, model.ModeJournalist, model.ModeGrandma}

// clampSeverity keeps severities inside the documented 1..5 range.
func clampSeverity(s int) int {
	if s < 1 {
		return 1
	}
	if s > 5 {
		return 5
	}
	return s
}

// anchorFor extracts the original-case fragment of text that matched a
// lowercase needle, so the candidate's anchor is verbatim quotable.
func anchorFor(text, lowerNeedle string) string {
	idx := strings.Index(strings.ToLower(text), lowerNeedle)
	if idx < 0 {
		return ""
	}
	return text[idx : idx+len(lowerNeedle)]
}

// firstKeyword returns the first keyword from the list that occurs in
// the lowered text, preserving list order for determinism.
func firstKeyword(lowered string, keywords []string) (string, bool) {
	for _, kw := range keywords {
		if containsWord(lowered, kw) {
			return kw, true
		}
	}
	return "", false
}

// containsWord reports whether needle occurs in lowered text on word
// boundaries, so "all" never matches inside "small".
func containsWord(lowered, needle string) bool {
	from := 0
	for {
		idx := strings.Index(lowered[from:], needle)
		if idx < 0 {
			return false
		}
		abs := from + idx
		beforeOK := abs == 0 || !isWordByte(lowered[abs-1])
		after := abs + len(needle)
		afterOK := after >= len(lowered) || !isWordByte(lowered[after])
		if beforeOK && afterOK {
			return true
		}
		from = abs + 1
	}
}

func isWordByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9') || b == '\''
}
