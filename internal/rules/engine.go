package rules

import (
	"fmt"
	"sort"
	"strings"

	"github.com/magnusgp/fermatter/internal/model"
	"github.com/magnusgp/fermatter/internal/segment"
)

// Engine runs the registered detector battery over a segmentation.
// Registration order is fixed at construction and is the final
// tie-break for output ordering, so identical inputs always produce
// identical output.
type Engine struct {
	detectors []Detector
}

// NewEngine creates an engine with the default detector battery.
func NewEngine() *Engine {
	return &Engine{detectors: []Detector{
		missingEvidenceDetector(),
		vagueLanguageDetector(),
		hedgingDetector(),
		logicGapDetector(),
		structureDetector(),
		topicSentenceDetector(),
		toneDetector(),
		precisionDetector(),
		citationNeededDetector(),
	}}
}

// NewEngineWith creates an engine with an explicit detector list.
// Used by tests to inject failing detectors.
func NewEngineWith(detectors []Detector) *Engine {
	return &Engine{detectors: detectors}
}

// ranked pairs a candidate with its detector's registration index.
type ranked struct {
	Candidate
	order int
}

// Evaluate runs every detector that applies under the mode over the
// in-scope paragraphs. A panicking detector is isolated: its findings
// are dropped, a warning is recorded, and the rest of the battery runs.
func (e *Engine) Evaluate(paragraphs []segment.Paragraph, mode model.Mode, scope model.Scope, goal string) ([]Candidate, []string) {
	eligible := scopeFilter(paragraphs, scope)

	var found []ranked
	var warnings []string

	for i, det := range e.detectors {
		if !det.runsUnder(mode) {
			continue
		}
		candidates, err := runIsolated(det, eligible, mode, goal)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("detector %s failed: %v", det.Name, err))
			continue
		}
		for _, c := range candidates {
			c.Severity = clampSeverity(c.Severity)
			found = append(found, ranked{Candidate: c, order: i})
		}
	}

	sort.SliceStable(found, func(a, b int) bool {
		if found[a].Paragraph != found[b].Paragraph {
			return found[a].Paragraph < found[b].Paragraph
		}
		if found[a].Severity != found[b].Severity {
			return found[a].Severity > found[b].Severity
		}
		return found[a].order < found[b].order
	})

	out := make([]Candidate, len(found))
	for i, r := range found {
		out[i] = r.Candidate
	}
	return out, warnings
}

// runIsolated executes one detector over all paragraphs, converting a
// panic into an error so a single bad rule cannot abort the battery.
func runIsolated(det Detector, paragraphs []segment.Paragraph, mode model.Mode, goal string) (candidates []Candidate, err error) {
	defer func() {
		if r := recover(); r != nil {
			candidates = nil
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	for _, p := range paragraphs {
		candidates = append(candidates, det.Check(p, mode, goal)...)
	}
	return candidates, nil
}

// scopeFilter restricts iteration to paragraphs covered by a selection
// scope. Document scope and an empty selection pass every paragraph
// through; a non-empty selection that covers no paragraph yields an
// empty eligible set.
func scopeFilter(paragraphs []segment.Paragraph, scope model.Scope) []segment.Paragraph {
	if scope.Type != model.ScopeSelection || strings.TrimSpace(scope.SelectionText) == "" {
		return paragraphs
	}

	selection := strings.ToLower(scope.SelectionText)
	var eligible []segment.Paragraph
	for _, p := range paragraphs {
		if strings.Contains(selection, strings.ToLower(p.Text)) {
			eligible = append(eligible, p)
		}
	}
	return eligible
}
