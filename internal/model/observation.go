package model

// ObservationType categorizes the nature of a finding
type ObservationType string

const (
	TypeMissingEvidence ObservationType = "missing_evidence" // Strong claim without visible support
	TypeUnclearClaim    ObservationType = "unclear_claim"    // Vague or hedged statement
	TypeLogicGap        ObservationType = "logic_gap"        // Conclusion without a connected premise
	TypeStructure       ObservationType = "structure"        // Paragraph length/shape problems
	TypeInstability     ObservationType = "instability"      // Frequently rewritten content
	TypeTone            ObservationType = "tone"             // Register mismatch for the chosen mode
	TypePrecision       ObservationType = "precision"        // Imprecise quantities or comparisons
	TypeCitationNeeded  ObservationType = "citation_needed"  // Claim that should carry a reference
)

// ValidTypes lists every observation type in a stable order.
func ValidTypes() []ObservationType {
	return []ObservationType{
		TypeMissingEvidence,
		TypeUnclearClaim,
		TypeLogicGap,
		TypeStructure,
		TypeInstability,
		TypeTone,
		TypePrecision,
		TypeCitationNeeded,
	}
}

// IsValid reports whether t is a known observation type.
func (t ObservationType) IsValid() bool {
	for _, v := range ValidTypes() {
		if t == v {
			return true
		}
	}
	return false
}

// Observation is a single anchored finding about the document.
// The engine never rewrites text: an observation only points at a
// literal span and asks the writer a question about it.
type Observation struct {
	ID         string          `json:"id"`                    // Deterministic, derived from content+position
	Type       ObservationType `json:"type"`                  // Which detector family produced it
	Severity   int             `json:"severity"`              // 1 (minor) .. 5 (critical)
	Paragraph  int             `json:"paragraph"`             // Index into the segmentation of this call
	AnchorText string          `json:"anchor_text,omitempty"` // Verbatim fragment of the paragraph, or empty
	Title      string          `json:"title"`                 // Short label
	Note       string          `json:"note"`                  // Explanation
	Question   string          `json:"question"`              // Guiding question for the writer
	SourceIDs  []string        `json:"source_ids,omitempty"`  // References into the source registry
}

// UnstableParagraph reports a paragraph slot that has been rewritten
// repeatedly across the snapshot history.
type UnstableParagraph struct {
	Paragraph    int    `json:"paragraph"`
	RewriteCount int    `json:"rewrite_count"`
	Note         string `json:"note"`
}
