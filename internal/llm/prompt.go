package llm

import (
	"fmt"
	"strings"

	"github.com/magnusgp/fermatter/internal/model"
	"github.com/magnusgp/fermatter/internal/sources"
)

// Mode-specific system prompt adjustments.
var modePrompts = map[model.Mode]string{
	model.ModeScientific: `You are reviewing academic/scientific writing.
Focus on: precision of claims, citation needs, logical structure, methodology clarity,
and avoiding overstatement. Be rigorous but constructive.`,
	model.ModeJournalist: `You are reviewing journalistic writing.
Focus on: clarity for general audiences, lead strength, source attribution,
fact-checking needs, and engaging structure. Be direct and practical.`,
	model.ModeGrandma: `You are reviewing an email or letter to a family member.
Focus on: warmth, clarity, avoiding confusion, appropriate length,
and emotional tone. Be gentle and supportive in your feedback.`,
}

// BuildSystemPrompt constructs the system message. The critical rules
// mirror the product invariant: the reviewer critiques, it never
// writes replacement text.
func BuildSystemPrompt(req ReviewRequest) string {
	mode := req.Request.Mode
	modeNote, ok := modePrompts[mode]
	if !ok {
		modeNote = modePrompts[model.ModeScientific]
	}

	scopeNote := "You are analyzing the FULL DOCUMENT."
	if req.Request.Scope.Type == model.ScopeSelection {
		scopeNote = "You are analyzing a TEXT SELECTION from a larger document."
	}

	sourcesContext := req.SourcesContext
	if sourcesContext == "" {
		sourcesContext = "No sources provided."
	}

	goalNote := ""
	if req.Request.Goal != "" {
		goalNote = fmt.Sprintf("\nThe writer's stated goal: %s\n", req.Request.Goal)
	}

	return fmt.Sprintf(`You are a writing critic and editor. Your role is to provide feedback ONLY.

CRITICAL RULES:
1. NEVER write replacement text or suggested sentences for the user
2. NEVER rewrite any part of their text
3. Only provide critiques, questions, flags, and references
4. Be specific about which paragraph (0-indexed) you're commenting on
5. Quote a short "anchor_text" (3-10 words) verbatim from the paragraph you're referencing

%s

%s
%s
AVAILABLE SOURCES FOR CITATION:
%s

CITATION RULES:
- When recommending references, ONLY cite ids from the provided sources ([S#] or [U#])
- If no source supports a claim that needs support, output a "citation_needed" observation
- NEVER invent or hallucinate sources

OUTPUT FORMAT:
Return a JSON object with this exact structure:
{
  "observations": [
    {
      "type": "missing_evidence|unclear_claim|logic_gap|structure|tone|precision|citation_needed",
      "severity": 1,
      "paragraph": 0,
      "anchor_text": "short quoted text",
      "title": "Brief title",
      "note": "Detailed explanation",
      "question": "Question for the writer to consider",
      "source_ids": ["S1"]
    }
  ]
}

Make 3-8 high-signal observations. Prefer quality over quantity.
Severity scale: 1=minor suggestion, 3=should address, 5=critical issue.`,
		modeNote, scopeNote, goalNote, sourcesContext)
}

// BuildUserPrompt numbers the paragraphs so the model can reference
// them by index.
func BuildUserPrompt(req ReviewRequest) string {
	var b strings.Builder
	b.WriteString("Please analyze the following text and provide feedback.\n\nTEXT TO ANALYZE:\n")
	for i, p := range req.Paragraphs {
		fmt.Fprintf(&b, "[Paragraph %d]\n%s\n\n", i, p)
	}
	b.WriteString("Remember: Return ONLY valid JSON matching the schema. No markdown, no explanations outside the JSON.")
	return b.String()
}

// FormatSourcesContext renders the citable-source allowlist for the
// prompt and returns the ids it contains.
func FormatSourcesContext(libraryIDs []string, userSources []string) (string, []string) {
	var lines []string
	var ids []string

	for _, id := range libraryIDs {
		s, ok := sources.LibrarySourceByID(id)
		if !ok {
			continue
		}
		lines = append(lines, fmt.Sprintf("[%s] %s — %s", s.ID, s.Title, s.URL))
		if s.Snippet != "" {
			lines = append(lines, "    "+s.Snippet)
		}
		ids = append(ids, s.ID)
	}
	for i, raw := range userSources {
		id := fmt.Sprintf("U%d", i+1)
		lines = append(lines, fmt.Sprintf("[%s] User-provided: %s", id, raw))
		ids = append(ids, id)
	}

	if len(lines) == 0 {
		return "No sources provided.", nil
	}
	return strings.Join(lines, "\n"), ids
}
