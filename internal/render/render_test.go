package render

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/magnusgp/fermatter/internal/model"
)

func sampleResponse() *model.AnalyzeResponse {
	return &model.AnalyzeResponse{
		Observations: []model.Observation{
			{
				ID:         "ab12cd34",
				Type:       model.TypeMissingEvidence,
				Severity:   3,
				Paragraph:  0,
				AnchorText: "studies show",
				Title:      "Unsupported claim",
				Note:       "No citation or data accompanies this claim.",
				Question:   "Which studies?",
				SourceIDs:  []string{"S3"},
			},
			{
				ID:        "ef56ab78",
				Type:      model.TypeUnclearClaim,
				Severity:  2,
				Paragraph: 1,
				Title:     "Vague language",
			},
		},
		Unstable: []model.UnstableParagraph{
			{Paragraph: 2, RewriteCount: 3, Note: "Rewritten 3 times across snapshots"},
		},
		SourcesUsed: []model.SourceUsed{
			{ID: "S3", Title: "They Say / I Say", URL: ""},
		},
		Meta: model.Meta{ParagraphCount: 3, LatencyMS: 12},
	}
}

func TestRenderJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.json")

	r := NewRenderer(false)
	if err := r.RenderJSON(sampleResponse(), path); err != nil {
		t.Fatalf("RenderJSON failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var decoded model.AnalyzeResponse
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded.Observations) != 2 {
		t.Errorf("expected 2 observations, got %d", len(decoded.Observations))
	}
	if decoded.Observations[0].ID != "ab12cd34" {
		t.Errorf("unexpected id: %s", decoded.Observations[0].ID)
	}
}

func TestMarkdown(t *testing.T) {
	r := NewRenderer(true)
	md := r.Markdown(sampleResponse())

	for _, want := range []string{
		"# Writing Review",
		"### Paragraph 1",
		"### Paragraph 2",
		"Unsupported claim",
		`"studies show"`,
		"Which studies?",
		"Sources: S3",
		"## Unstable Paragraphs",
		"rewritten 3 times",
		"They Say / I Say",
		"Generated in 12ms",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
}

func TestMarkdown_NoFooter(t *testing.T) {
	r := NewRenderer(false)
	md := r.Markdown(sampleResponse())
	if strings.Contains(md, "Generated in") {
		t.Error("footer should be omitted")
	}
}

func TestMarkdown_Empty(t *testing.T) {
	r := NewRenderer(false)
	md := r.Markdown(&model.AnalyzeResponse{Meta: model.Meta{ParagraphCount: 0}})
	if !strings.Contains(md, "No observations.") {
		t.Errorf("expected empty-report marker, got %q", md)
	}
}

func TestMarkdown_Warning(t *testing.T) {
	r := NewRenderer(false)
	resp := sampleResponse()
	resp.Meta.Warning = "detector tone failed"
	md := r.Markdown(resp)
	if !strings.Contains(md, "Warning: detector tone failed") {
		t.Error("expected warning block in markdown")
	}
}
