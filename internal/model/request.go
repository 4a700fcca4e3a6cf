package model

// Mode is the stylistic lens applied during analysis. It changes which
// detectors run and how findings are worded, never the text itself.
type Mode string

const (
	ModeScientific Mode = "scientific" // Academic rigor: citations, precision, formal register
	ModeJournalist Mode = "journalist" // General audience: clarity, attribution, lead strength
	ModeGrandma    Mode = "grandma"    // Personal email/letter: warmth, simplicity
)

// IsValid reports whether m is a known mode.
func (m Mode) IsValid() bool {
	switch m {
	case ModeScientific, ModeJournalist, ModeGrandma:
		return true
	}
	return false
}

// ScopeType selects whole-document or selection analysis.
type ScopeType string

const (
	ScopeDocument  ScopeType = "document"
	ScopeSelection ScopeType = "selection"
)

// Scope restricts which paragraphs detectors may flag.
type Scope struct {
	Type          ScopeType `json:"type"`
	SelectionText string    `json:"selection_text,omitempty"`
}

// DocumentScope returns the default whole-document scope.
func DocumentScope() Scope {
	return Scope{Type: ScopeDocument}
}

// Snapshot is one historical version of the document text.
type Snapshot struct {
	TS   string `json:"ts"`   // ISO-8601 timestamp
	Text string `json:"text"` // Full text at snapshot time
}

// SourcesInput carries the caller's citation context: free-form user
// sources and ids into the shared source library.
type SourcesInput struct {
	User       []string `json:"user"`
	LibraryIDs []string `json:"library_ids"`
}

// AnalyzeRequest is the single input shape of the engine.
type AnalyzeRequest struct {
	Text      string       `json:"text"`
	Snapshots []Snapshot   `json:"snapshots,omitempty"`
	Goal      string       `json:"goal,omitempty"`
	Mode      Mode         `json:"mode"`
	Sources   SourcesInput `json:"sources"`
	Scope     Scope        `json:"scope"`
}

// Normalize fills defaults for fields the caller may omit.
func (r *AnalyzeRequest) Normalize() {
	if !r.Mode.IsValid() {
		r.Mode = ModeScientific
	}
	if r.Scope.Type != ScopeSelection {
		r.Scope = DocumentScope()
	}
}

// Meta describes one analysis call.
type Meta struct {
	ParagraphCount int    `json:"paragraph_count"`
	LatencyMS      int    `json:"latency_ms"`
	UsedLLM        bool   `json:"used_llm"`
	Warning        string `json:"warning,omitempty"`
}

// AnalyzeResponse is the single output shape of the engine. It is fully
// recomputed per call; the engine keeps no state between calls.
type AnalyzeResponse struct {
	Observations []Observation       `json:"observations"`
	Unstable     []UnstableParagraph `json:"unstable"`
	SourcesUsed  []SourceUsed        `json:"sources_used"`
	Meta         Meta                `json:"meta"`
}
