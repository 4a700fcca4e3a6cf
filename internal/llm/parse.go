package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/magnusgp/fermatter/internal/model"
)

// rawObservation is the lenient wire shape the model returns.
type rawObservation struct {
	Type       string   `json:"type"`
	Severity   int      `json:"severity"`
	Paragraph  int      `json:"paragraph"`
	AnchorText string   `json:"anchor_text"`
	Title      string   `json:"title"`
	Note       string   `json:"note"`
	Question   string   `json:"question"`
	SourceIDs  []string `json:"source_ids"`
}

type rawEnvelope struct {
	Observations []rawObservation `json:"observations"`
}

// ParseObservations extracts observations from raw model output.
// Markdown code fences around the JSON are tolerated and stripped.
func ParseObservations(content string) ([]rawObservation, error) {
	cleaned := stripFences(strings.TrimSpace(content))

	var envelope rawEnvelope
	if err := json.Unmarshal([]byte(cleaned), &envelope); err == nil && envelope.Observations != nil {
		return envelope.Observations, nil
	}

	var list []rawObservation
	if err := json.Unmarshal([]byte(cleaned), &list); err == nil {
		return list, nil
	}

	return nil, fmt.Errorf("response is not valid observation JSON")
}

func stripFences(content string) string {
	if !strings.HasPrefix(content, "```") {
		return content
	}
	var kept []string
	inBlock := false
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, "```") {
			inBlock = !inBlock
			continue
		}
		if inBlock {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

// ValidateObservations clamps and normalizes raw model output into
// model observations. Ids are left empty: the coordinator assigns them
// so enriched findings obey the same determinism rules as heuristics.
func ValidateObservations(raw []rawObservation, paragraphCount int, allowedSourceIDs []string) []model.Observation {
	allowed := make(map[string]bool, len(allowedSourceIDs))
	for _, id := range allowedSourceIDs {
		allowed[id] = true
	}

	var observations []model.Observation
	for _, r := range raw {
		typ := model.ObservationType(r.Type)
		if !typ.IsValid() || typ == model.TypeInstability {
			// Instability is derived from history only; the model may
			// not assert it.
			typ = model.TypeUnclearClaim
		}

		paragraph := r.Paragraph
		if paragraph < 0 {
			paragraph = 0
		}
		if paragraph >= paragraphCount {
			if paragraphCount == 0 {
				continue
			}
			paragraph = paragraphCount - 1
		}

		severity := r.Severity
		if severity < 1 {
			severity = 1
		}
		if severity > 5 {
			severity = 5
		}

		var sourceIDs []string
		for _, id := range r.SourceIDs {
			if allowed[id] {
				sourceIDs = append(sourceIDs, id)
			}
		}

		title := strings.TrimSpace(r.Title)
		if title == "" {
			title = "Observation"
		}

		observations = append(observations, model.Observation{
			Type:       typ,
			Severity:   severity,
			Paragraph:  paragraph,
			AnchorText: strings.TrimSpace(r.AnchorText),
			Title:      title,
			Note:       strings.TrimSpace(r.Note),
			Question:   strings.TrimSpace(r.Question),
			SourceIDs:  sourceIDs,
		})
	}
	return observations
}
