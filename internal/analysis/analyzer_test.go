package analysis

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/magnusgp/fermatter/internal/model"
	"github.com/magnusgp/fermatter/internal/segment"
)

func newTestAnalyzer(opts ...Option) *Analyzer {
	return NewAnalyzer(model.DefaultAnalysisConfig(), opts...)
}

func TestAnalyze_SingleShortParagraph(t *testing.T) {
	result := newTestAnalyzer().Analyze(context.Background(), model.AnalyzeRequest{
		Text: "A.",
		Mode: model.ModeScientific,
	})

	if result.Meta.ParagraphCount != 1 {
		t.Errorf("Expected paragraph_count 1, got %d", result.Meta.ParagraphCount)
	}
	if len(result.Unstable) != 0 {
		t.Errorf("Expected no unstable paragraphs, got %v", result.Unstable)
	}
	if result.Meta.UsedLLM {
		t.Error("Expected used_llm=false for the core pipeline")
	}
}

func TestAnalyze_IdenticalSnapshotsNoInstability(t *testing.T) {
	text := "Para one.\n\nPara two."
	snapshots := []model.Snapshot{
		{TS: "2026-01-01T10:00:00Z", Text: text},
		{TS: "2026-01-01T10:05:00Z", Text: text},
		{TS: "2026-01-01T10:10:00Z", Text: text},
	}

	result := newTestAnalyzer().Analyze(context.Background(), model.AnalyzeRequest{
		Text: text, Snapshots: snapshots, Mode: model.ModeScientific,
	})

	if len(result.Unstable) != 0 {
		t.Errorf("Expected no instability from identical snapshots, got %v", result.Unstable)
	}
}

func TestAnalyze_InstabilityInBothRepresentations(t *testing.T) {
	snapshots := []model.Snapshot{
		{TS: "2026-01-01T10:00:00Z", Text: "Para one.\n\nEarly thoughts about glaciers and ice."},
		{TS: "2026-01-01T10:05:00Z", Text: "Para one.\n\nReworked musings concerning deserts instead."},
		{TS: "2026-01-01T10:10:00Z", Text: "Para one.\n\nPara two."},
	}

	result := newTestAnalyzer().Analyze(context.Background(), model.AnalyzeRequest{
		Text: "Para one.\n\nPara two.", Snapshots: snapshots, Mode: model.ModeScientific,
	})

	if len(result.Unstable) != 1 || result.Unstable[0].Paragraph != 1 || result.Unstable[0].RewriteCount != 2 {
		t.Fatalf("Expected unstable paragraph 1 with rewrite_count 2, got %v", result.Unstable)
	}

	found := false
	for _, obs := range result.Observations {
		if obs.Type == model.TypeInstability && obs.Paragraph == 1 {
			found = true
			if obs.ID == "" {
				t.Error("Expected instability observation to carry an id")
			}
		}
	}
	if !found {
		t.Error("Expected an instability-typed observation mirroring the unstable list")
	}
}

func TestAnalyze_Determinism(t *testing.T) {
	req := model.AnalyzeRequest{
		Text: "Clearly many things might possibly break here and stuff.\n\nTherefore we should wait.",
		Snapshots: []model.Snapshot{
			{TS: "2026-01-01T10:00:00Z", Text: "Different early draft about trains entirely, nothing shared."},
		},
		Mode:    model.ModeScientific,
		Sources: model.SourcesInput{LibraryIDs: []string{"S1", "S3"}},
	}

	first := newTestAnalyzer().Analyze(context.Background(), req)
	second := newTestAnalyzer().Analyze(context.Background(), req)

	if len(first.Observations) != len(second.Observations) {
		t.Fatalf("Observation counts differ: %d vs %d", len(first.Observations), len(second.Observations))
	}
	for i := range first.Observations {
		a, b := first.Observations[i], second.Observations[i]
		if a.ID != b.ID {
			t.Errorf("Observation %d ids differ: %s vs %s", i, a.ID, b.ID)
		}
		if !reflect.DeepEqual(a, b) {
			t.Errorf("Observation %d differs across identical calls", i)
		}
	}
}

func TestAnalyze_AnchorFidelity(t *testing.T) {
	text := "Clearly the approach has many things going for it.\n\nTherefore it might possibly seem very important, you know."
	result := newTestAnalyzer().Analyze(context.Background(), model.AnalyzeRequest{
		Text: text, Mode: model.ModeScientific,
	})

	paragraphs := segment.Split(text)
	for _, obs := range result.Observations {
		if obs.AnchorText == "" {
			continue
		}
		haystack := strings.ToLower(paragraphs[obs.Paragraph].Text)
		if !strings.Contains(haystack, strings.ToLower(obs.AnchorText)) {
			t.Errorf("Anchor %q not a substring of paragraph %d", obs.AnchorText, obs.Paragraph)
		}
	}
}

func TestAnalyze_DanglingAnchorDropped(t *testing.T) {
	paragraphs := segment.Split("Real paragraph text here.")
	finished := finish([]model.Observation{{
		Type:       model.TypeUnclearClaim,
		Severity:   2,
		Paragraph:  0,
		AnchorText: "phrase that does not occur",
		Title:      "Simulated",
	}}, paragraphs)

	if len(finished) != 1 {
		t.Fatalf("Expected observation kept, got %d", len(finished))
	}
	if finished[0].AnchorText != "" {
		t.Errorf("Expected dangling anchor dropped, got %q", finished[0].AnchorText)
	}
	if finished[0].ID == "" {
		t.Error("Expected id assigned")
	}
}

func TestAnalyze_SelectionScope(t *testing.T) {
	text := "Para one has many things in it.\n\nPara two has many things as well."
	result := newTestAnalyzer().Analyze(context.Background(), model.AnalyzeRequest{
		Text:  text,
		Mode:  model.ModeScientific,
		Scope: model.Scope{Type: model.ScopeSelection, SelectionText: "Para two has many things as well."},
	})

	for _, obs := range result.Observations {
		if obs.Paragraph != 1 {
			t.Errorf("Expected findings only in paragraph 1, got paragraph %d (%s)", obs.Paragraph, obs.Type)
		}
	}
}

func TestAnalyze_SourcesUsed(t *testing.T) {
	result := newTestAnalyzer().Analyze(context.Background(), model.AnalyzeRequest{
		Text:    "Adoption grew by 45% last year among enterprise teams.",
		Mode:    model.ModeScientific,
		Sources: model.SourcesInput{LibraryIDs: []string{"S3", "S6"}},
	})

	foundS3 := false
	for _, s := range result.SourcesUsed {
		if s.ID == "S3" {
			foundS3 = true
			if s.Title == "" || s.URL == "" {
				t.Error("Expected S3 metadata populated")
			}
		}
		if s.ID == "S999" {
			t.Error("Unknown source id must never appear")
		}
	}
	if !foundS3 {
		t.Errorf("Expected S3 in sources_used, got %v", result.SourcesUsed)
	}
}

func TestAnalyze_OriginalTextNeverEchoedAsEdited(t *testing.T) {
	text := "Clearly the approach has many things going for it and stuff."
	result := newTestAnalyzer().Analyze(context.Background(), model.AnalyzeRequest{
		Text: text, Mode: model.ModeScientific,
	})

	for _, obs := range result.Observations {
		if obs.Note == text || obs.Question == text {
			t.Error("Observation must not echo the document text as content")
		}
		if len(obs.Note) > 0 && strings.Contains(obs.Note, text) {
			t.Error("Observation note must not embed the full document")
		}
	}
}

type stubEnricher struct {
	name    string
	resp    *model.AnalyzeResponse
	err     error
	delay   time.Duration
	invoked bool
}

func (s *stubEnricher) Name() string { return s.name }

func (s *stubEnricher) Enrich(ctx context.Context, det *model.AnalyzeResponse, req model.AnalyzeRequest) (*model.AnalyzeResponse, error) {
	s.invoked = true
	if s.delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(s.delay):
		}
	}
	return s.resp, s.err
}

func TestAnalyze_EnrichmentFailureKeepsDeterministicResult(t *testing.T) {
	enricher := &stubEnricher{name: "stub", err: errors.New("api down")}
	analyzer := newTestAnalyzer(WithEnricher(enricher, time.Second))

	result := analyzer.Analyze(context.Background(), model.AnalyzeRequest{
		Text: "Clearly many things are wrong.", Mode: model.ModeScientific,
	})

	if !enricher.invoked {
		t.Fatal("Expected enricher to be invoked")
	}
	if result.Meta.UsedLLM {
		t.Error("Expected used_llm=false after enrichment failure")
	}
	if !strings.Contains(result.Meta.Warning, "enrichment") {
		t.Errorf("Expected enrichment warning, got %q", result.Meta.Warning)
	}
	if len(result.Observations) == 0 {
		t.Error("Expected deterministic observations to survive")
	}
}

func TestAnalyze_EnrichmentTimeout(t *testing.T) {
	enricher := &stubEnricher{name: "slow", delay: 200 * time.Millisecond}
	analyzer := newTestAnalyzer(WithEnricher(enricher, 10*time.Millisecond))

	result := analyzer.Analyze(context.Background(), model.AnalyzeRequest{
		Text: "Some text.", Mode: model.ModeScientific,
	})

	if result.Meta.UsedLLM {
		t.Error("Expected used_llm=false after timeout")
	}
	if result.Meta.Warning == "" {
		t.Error("Expected a warning after enrichment timeout")
	}
}

func TestAnalyze_EnrichmentReplacementRevalidated(t *testing.T) {
	enricher := &stubEnricher{
		name: "stub",
		resp: &model.AnalyzeResponse{
			Observations: []model.Observation{{
				Type:       model.TypeTone,
				Severity:   3,
				Paragraph:  0,
				AnchorText: "does not occur anywhere",
				Title:      "From the model",
				Note:       "Enriched note.",
			}},
		},
	}
	analyzer := newTestAnalyzer(WithEnricher(enricher, time.Second))

	result := analyzer.Analyze(context.Background(), model.AnalyzeRequest{
		Text: "Plain text paragraph.", Mode: model.ModeScientific,
	})

	if !result.Meta.UsedLLM {
		t.Fatal("Expected used_llm=true after successful enrichment")
	}
	if len(result.Observations) != 1 {
		t.Fatalf("Expected the enriched observation set, got %d", len(result.Observations))
	}
	obs := result.Observations[0]
	if obs.AnchorText != "" {
		t.Errorf("Expected invalid enriched anchor dropped, got %q", obs.AnchorText)
	}
	if obs.ID == "" {
		t.Error("Expected enriched observation to get a deterministic id")
	}
}

func TestAnalyze_DeclinedEnrichmentKeepsResult(t *testing.T) {
	enricher := &stubEnricher{name: "decline", resp: nil, err: nil}
	analyzer := newTestAnalyzer(WithEnricher(enricher, time.Second))

	result := analyzer.Analyze(context.Background(), model.AnalyzeRequest{
		Text: "Clearly many things happen.", Mode: model.ModeScientific,
	})

	if result.Meta.UsedLLM {
		t.Error("Expected used_llm=false when the hook declines")
	}
	if result.Meta.Warning != "" {
		t.Errorf("Expected no warning for a declining hook, got %q", result.Meta.Warning)
	}
}

func TestAnalyze_EmptyDocument(t *testing.T) {
	result := newTestAnalyzer().Analyze(context.Background(), model.AnalyzeRequest{Text: "", Mode: model.ModeScientific})

	if result.Meta.ParagraphCount != 0 {
		t.Errorf("Expected paragraph_count 0, got %d", result.Meta.ParagraphCount)
	}
	if len(result.Observations) != 0 {
		t.Errorf("Expected no observations for empty text, got %d", len(result.Observations))
	}
}
