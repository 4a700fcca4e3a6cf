package rules

import (
	"regexp"
	"strings"

	"github.com/magnusgp/fermatter/internal/model"
	"github.com/magnusgp/fermatter/internal/segment"
)

// Cues that a paragraph offers support for what it asserts.
var evidenceCues = []string{
	"because", "since", "therefore", "research shows", "according to",
	"study", "studies", "evidence", "data", "found that", "measured",
	"observed", "reported",
}

// Sweeping-claim markers. A paragraph that leans on these without any
// evidence cue is asserting, not arguing.
var absoluteClaimCues = []string{
	"clearly", "obviously", "undoubtedly", "everyone knows",
	"it is known", "without question", "always", "never",
	"all experts agree", "no one disputes",
}

var citationTokenRe = regexp.MustCompile(`\[\d+\]|\[[SU]\d+\]|\(\w+,?\s*\d{4}\)|https?://`)
var statisticRe = regexp.MustCompile(`\d+(\.\d+)?\s*(%|percent)`)

var factualClaimCues = []string{
	"studies show", "research shows", "it is estimated", "statistics show",
	"scientists say", "experts say", "surveys show", "the majority of",
}

func missingEvidenceDetector() Detector {
	return Detector{
		Name:  "missing_evidence",
		Modes: []model.Mode{model.ModeScientific, model.ModeJournalist},
		Check: func(p segment.Paragraph, mode model.Mode, goal string) []Candidate {
			lowered := strings.ToLower(p.Text)

			claim, hasClaim := firstKeyword(lowered, absoluteClaimCues)
			if !hasClaim {
				return nil
			}
			if _, hasEvidence := firstKeyword(lowered, evidenceCues); hasEvidence {
				return nil
			}

			severity := 2
			question := "What evidence or reasoning supports this claim?"
			if mode == model.ModeScientific {
				severity = 3
				question = "What data, citation or derivation backs this statement?"
			}

			return []Candidate{{
				Type:       model.TypeMissingEvidence,
				Severity:   severity,
				Paragraph:  p.Index,
				AnchorText: anchorFor(p.Text, claim),
				Title:      "Unsupported claim",
				Note:       "This paragraph makes a strong claim without visible supporting evidence.",
				Question:   question,
			}}
		},
	}
}

func citationNeededDetector() Detector {
	return Detector{
		Name:  "citation_needed",
		Modes: []model.Mode{model.ModeScientific, model.ModeJournalist},
		Check: func(p segment.Paragraph, mode model.Mode, goal string) []Candidate {
			if citationTokenRe.MatchString(p.Text) {
				return nil
			}
			lowered := strings.ToLower(p.Text)

			var anchorSrc string
			if m := statisticRe.FindString(lowered); m != "" {
				anchorSrc = m
			} else if cue, ok := firstKeyword(lowered, factualClaimCues); ok {
				anchorSrc = cue
			} else {
				return nil
			}

			severity := 3
			title := "Attribution needed"
			note := "A factual assertion like this needs a named, checkable source."
			question := "Who says so? Name the source in the text."
			if mode == model.ModeScientific {
				severity = 4
				title = "Citation needed"
				note = "Quantitative or factual statements need a citation the reader can verify."
				question = "Which reference supports this figure or finding?"
			}

			return []Candidate{{
				Type:       model.TypeCitationNeeded,
				Severity:   severity,
				Paragraph:  p.Index,
				AnchorText: anchorFor(p.Text, anchorSrc),
				Title:      title,
				Note:       note,
				Question:   question,
			}}
		},
	}
}

// Connectors that announce a conclusion.
var conclusionCues = []string{
	"therefore", "thus", "hence", "consequently", "as a result",
	"this proves", "this shows", "it follows that", "which means",
}

// Connectors that supply a premise.
var premiseCues = []string{
	"because", "since", "given that", "due to", "as shown",
	"assuming", "if we", "based on",
}

func logicGapDetector() Detector {
	return Detector{
		Name:  "logic_gap",
		Modes: []model.Mode{model.ModeScientific, model.ModeJournalist},
		Check: func(p segment.Paragraph, mode model.Mode, goal string) []Candidate {
			lowered := strings.ToLower(p.Text)

			conclusion, ok := firstKeyword(lowered, conclusionCues)
			if !ok {
				return nil
			}

			// A premise cue anywhere before the conclusion marker makes
			// the inference at least locally grounded.
			cutoff := strings.Index(lowered, conclusion)
			before := lowered[:cutoff]
			if _, grounded := firstKeyword(before, premiseCues); grounded {
				return nil
			}

			return []Candidate{{
				Type:       model.TypeLogicGap,
				Severity:   3,
				Paragraph:  p.Index,
				AnchorText: anchorFor(p.Text, conclusion),
				Title:      "Conclusion without premise",
				Note:       "A conclusion marker appears here, but no stated premise leads up to it.",
				Question:   "What earlier statement is this conclusion drawn from?",
			}}
		},
	}
}
