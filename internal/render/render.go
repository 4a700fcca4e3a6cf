package render

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/magnusgp/fermatter/internal/model"
)

// Renderer writes analysis results as JSON or Markdown
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a new renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the response as indented JSON to the given path
func (r *Renderer) RenderJSON(resp *model.AnalyzeResponse, path string) error {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal response: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}

// RenderMarkdown writes a human-readable report to the given path
func (r *Renderer) RenderMarkdown(resp *model.AnalyzeResponse, path string) error {
	md := r.Markdown(resp)
	if err := os.WriteFile(path, []byte(md), 0o644); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}

// Markdown renders the response as a Markdown report
func (r *Renderer) Markdown(resp *model.AnalyzeResponse) string {
	var b strings.Builder

	b.WriteString("# Writing Review\n\n")
	fmt.Fprintf(&b, "Paragraphs analyzed: %d\n\n", resp.Meta.ParagraphCount)
	if resp.Meta.Warning != "" {
		fmt.Fprintf(&b, "> Warning: %s\n\n", resp.Meta.Warning)
	}

	if len(resp.Observations) == 0 {
		b.WriteString("No observations.\n")
	} else {
		b.WriteString("## Observations\n\n")
		byParagraph := groupByParagraph(resp.Observations)
		var paragraphs []int
		for p := range byParagraph {
			paragraphs = append(paragraphs, p)
		}
		sort.Ints(paragraphs)

		for _, p := range paragraphs {
			fmt.Fprintf(&b, "### Paragraph %d\n\n", p+1)
			for _, obs := range byParagraph[p] {
				fmt.Fprintf(&b, "- **%s** (%s, severity %d)", obs.Title, obs.Type, obs.Severity)
				if obs.AnchorText != "" {
					fmt.Fprintf(&b, " — %q", obs.AnchorText)
				}
				b.WriteString("\n")
				if obs.Note != "" {
					fmt.Fprintf(&b, "  - %s\n", obs.Note)
				}
				if obs.Question != "" {
					fmt.Fprintf(&b, "  - *%s*\n", obs.Question)
				}
				if len(obs.SourceIDs) > 0 {
					fmt.Fprintf(&b, "  - Sources: %s\n", strings.Join(obs.SourceIDs, ", "))
				}
			}
			b.WriteString("\n")
		}
	}

	if len(resp.Unstable) > 0 {
		b.WriteString("## Unstable Paragraphs\n\n")
		for _, u := range resp.Unstable {
			fmt.Fprintf(&b, "- Paragraph %d: rewritten %d times. %s\n", u.Paragraph+1, u.RewriteCount, u.Note)
		}
		b.WriteString("\n")
	}

	if len(resp.SourcesUsed) > 0 {
		b.WriteString("## Sources\n\n")
		for _, s := range resp.SourcesUsed {
			if s.URL != "" {
				fmt.Fprintf(&b, "- [%s] [%s](%s)\n", s.ID, s.Title, s.URL)
			} else {
				fmt.Fprintf(&b, "- [%s] %s\n", s.ID, s.Title)
			}
		}
		b.WriteString("\n")
	}

	if r.includeFooter {
		fmt.Fprintf(&b, "---\nGenerated in %dms", resp.Meta.LatencyMS)
		if resp.Meta.UsedLLM {
			b.WriteString(" (with model review)")
		}
		b.WriteString("\n")
	}

	return b.String()
}

// RenderSummary prints a one-line summary per paragraph to stdout
func (r *Renderer) RenderSummary(resp *model.AnalyzeResponse) {
	fmt.Printf("Paragraphs: %d  Observations: %d  Unstable: %d\n",
		resp.Meta.ParagraphCount, len(resp.Observations), len(resp.Unstable))

	counts := make(map[model.ObservationType]int)
	for _, obs := range resp.Observations {
		counts[obs.Type]++
	}
	for _, typ := range model.ValidTypes() {
		if n := counts[typ]; n > 0 {
			fmt.Printf("  %-18s %d\n", typ, n)
		}
	}
	if resp.Meta.Warning != "" {
		fmt.Printf("Warning: %s\n", resp.Meta.Warning)
	}
}

func groupByParagraph(observations []model.Observation) map[int][]model.Observation {
	grouped := make(map[int][]model.Observation)
	for _, obs := range observations {
		grouped[obs.Paragraph] = append(grouped[obs.Paragraph], obs)
	}
	return grouped
}
