package rules

import (
	"fmt"
	"strings"

	"github.com/magnusgp/fermatter/internal/model"
	"github.com/magnusgp/fermatter/internal/segment"
)

const (
	longParagraphWords  = 150
	shortParagraphWords = 8
)

func structureDetector() Detector {
	return Detector{
		Name:  "structure",
		Modes: allModes,
		Check: func(p segment.Paragraph, mode model.Mode, goal string) []Candidate {
			words := len(strings.Fields(p.Text))

			if words > longParagraphWords {
				return []Candidate{{
					Type:      model.TypeStructure,
					Severity:  2,
					Paragraph: p.Index,
					Title:     "Long paragraph",
					Note:      fmt.Sprintf("This paragraph has %d words; one idea per paragraph reads better.", words),
					Question:  "Could this be split into more focused sections?",
				}}
			}

			// Fragments are fine in a personal note, distracting elsewhere.
			if mode != model.ModeGrandma && words > 0 && words < shortParagraphWords && !looksLikeHeading(p.Text) {
				return []Candidate{{
					Type:      model.TypeStructure,
					Severity:  1,
					Paragraph: p.Index,
					Title:     "Fragmentary paragraph",
					Note:      fmt.Sprintf("Only %d words stand alone here; the point may be underdeveloped.", words),
					Question:  "Does this deserve a full paragraph, or does it belong to a neighbor?",
				}}
			}

			return nil
		},
	}
}

// looksLikeHeading guesses that a short line without terminal
// punctuation is a heading rather than an underdeveloped paragraph.
func looksLikeHeading(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || strings.ContainsAny(trimmed, "\n") {
		return false
	}
	last := trimmed[len(trimmed)-1]
	return last != '.' && last != '!' && last != '?' && last != ','
}

var weakOpenerCues = []string{
	"however,", "but ", "and ", "also,", "so ", "additionally,",
}

func topicSentenceDetector() Detector {
	return Detector{
		Name:  "topic_sentence",
		Modes: []model.Mode{model.ModeScientific, model.ModeJournalist},
		Check: func(p segment.Paragraph, mode model.Mode, goal string) []Candidate {
			if p.Index == 0 {
				return nil
			}
			lowered := strings.ToLower(strings.TrimSpace(p.Text))

			for _, cue := range weakOpenerCues {
				if strings.HasPrefix(lowered, cue) {
					return []Candidate{{
						Type:       model.TypeStructure,
						Severity:   2,
						Paragraph:  p.Index,
						AnchorText: anchorFor(p.Text, strings.TrimSpace(cue)),
						Title:      "Weak paragraph opening",
						Note:       "This paragraph opens on a connective instead of stating its own point.",
						Question:   "What is this paragraph about? Lead with that.",
					}}
				}
			}
			return nil
		},
	}
}

var informalCues = []string{
	"i think", "i guess", "i feel like", "kinda", "sorta", "gonna",
	"wanna", "you know", "basically", "honestly", "stuff like that",
}

var stiffCues = []string{
	"heretofore", "aforementioned", "pursuant", "utilize",
	"it should be noted", "in accordance with", "notwithstanding",
}

var sensationalCues = []string{
	"shocking", "unbelievable", "mind-blowing", "game-changing",
	"you won't believe", "incredible",
}

func toneDetector() Detector {
	return Detector{
		Name:  "tone",
		Modes: allModes,
		Check: func(p segment.Paragraph, mode model.Mode, goal string) []Candidate {
			lowered := strings.ToLower(p.Text)

			switch mode {
			case model.ModeScientific:
				if cue, ok := firstKeyword(lowered, informalCues); ok {
					return []Candidate{{
						Type:       model.TypeTone,
						Severity:   3,
						Paragraph:  p.Index,
						AnchorText: anchorFor(p.Text, cue),
						Title:      "Informal register",
						Note:       "Conversational phrasing sits oddly in a scientific text.",
						Question:   "Can this be stated impersonally, as a finding rather than a feeling?",
					}}
				}
			case model.ModeJournalist:
				if cue, ok := firstKeyword(lowered, sensationalCues); ok {
					return []Candidate{{
						Type:       model.TypeTone,
						Severity:   2,
						Paragraph:  p.Index,
						AnchorText: anchorFor(p.Text, cue),
						Title:      "Sensational wording",
						Note:       "Hype words spend the reader's trust; the facts should carry the weight.",
						Question:   "Does the story still land if this word is removed?",
					}}
				}
			case model.ModeGrandma:
				if cue, ok := firstKeyword(lowered, stiffCues); ok {
					return []Candidate{{
						Type:       model.TypeTone,
						Severity:   1,
						Paragraph:  p.Index,
						AnchorText: anchorFor(p.Text, cue),
						Title:      "Stiff wording",
						Note:       "This reads like a form letter rather than a note to family.",
						Question:   "How would you say this out loud across the kitchen table?",
					}}
				}
			}
			return nil
		},
	}
}
