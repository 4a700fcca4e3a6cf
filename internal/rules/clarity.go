package rules

import (
	"strings"

	"github.com/magnusgp/fermatter/internal/model"
	"github.com/magnusgp/fermatter/internal/segment"
)

var vagueCues = []string{
	"things", "stuff", "something", "somehow", "somewhat",
	"etc", "and so on", "and so forth", "in some way",
}

var vagueIntensifierPairs = []string{
	"very good", "very bad", "very important", "very interesting",
	"really good", "really bad", "really important",
	"quite good", "quite interesting", "rather important",
}

func vagueLanguageDetector() Detector {
	return Detector{
		Name:  "vague_language",
		Modes: allModes,
		Check: func(p segment.Paragraph, mode model.Mode, goal string) []Candidate {
			lowered := strings.ToLower(p.Text)

			cue, ok := firstKeyword(lowered, vagueCues)
			if !ok {
				cue, ok = firstKeyword(lowered, vagueIntensifierPairs)
			}
			if !ok {
				return nil
			}

			severity := 1
			note := "This wording is vague and could be more specific."
			question := "Can you say more precisely what you mean here?"
			if mode == model.ModeScientific {
				severity = 2
				note = "Vague wording weakens a technical argument; name the concrete object or quantity."
			}
			if mode == model.ModeGrandma {
				question = "Would the reader know exactly what you are referring to?"
			}

			return []Candidate{{
				Type:       model.TypeUnclearClaim,
				Severity:   severity,
				Paragraph:  p.Index,
				AnchorText: anchorFor(p.Text, cue),
				Title:      "Vague language",
				Note:       note,
				Question:   question,
			}}
		},
	}
}

var hedgingCues = []string{
	"might", "maybe", "perhaps", "possibly", "seems", "appears",
	"sort of", "kind of", "arguably", "presumably",
}

func hedgingDetector() Detector {
	return Detector{
		Name:  "hedging",
		Modes: []model.Mode{model.ModeScientific, model.ModeJournalist},
		Check: func(p segment.Paragraph, mode model.Mode, goal string) []Candidate {
			lowered := strings.ToLower(p.Text)

			var hits []string
			for _, cue := range hedgingCues {
				if containsWord(lowered, cue) {
					hits = append(hits, cue)
				}
			}
			// One hedge is a style choice; a pile of them buries the claim.
			if len(hits) < 2 {
				return nil
			}

			return []Candidate{{
				Type:       model.TypeUnclearClaim,
				Severity:   2,
				Paragraph:  p.Index,
				AnchorText: anchorFor(p.Text, hits[0]),
				Title:      "Heavily hedged claim",
				Note:       "Stacked hedges make it unclear what this paragraph actually commits to.",
				Question:   "Which part of this are you confident enough to state directly?",
			}}
		},
	}
}

var impreciseQuantityCues = []string{
	"many", "a lot of", "lots of", "several", "a few", "most people",
	"a huge", "a tiny", "significantly", "substantially", "a number of",
}

func precisionDetector() Detector {
	return Detector{
		Name:  "precision",
		Modes: []model.Mode{model.ModeScientific, model.ModeJournalist},
		Check: func(p segment.Paragraph, mode model.Mode, goal string) []Candidate {
			lowered := strings.ToLower(p.Text)

			cue, ok := firstKeyword(lowered, impreciseQuantityCues)
			if !ok {
				return nil
			}
			// A concrete figure nearby excuses the rounded phrasing.
			if statisticRe.MatchString(lowered) {
				return nil
			}

			severity := 2
			question := "Can you replace this with a number, range or named set?"
			if mode == model.ModeJournalist {
				question = "How many, exactly? Readers will ask."
			}

			return []Candidate{{
				Type:       model.TypePrecision,
				Severity:   severity,
				Paragraph:  p.Index,
				AnchorText: anchorFor(p.Text, cue),
				Title:      "Imprecise quantity",
				Note:       "An unquantified amount invites the reader to guess at the scale.",
				Question:   question,
			}}
		},
	}
}
