// Package analysis wires the segmenter, rule engine, instability
// tracker, anchor resolver and source matcher into the single analyze
// operation. One call is atomic input to output: the engine keeps no
// state between calls.
package analysis

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/magnusgp/fermatter/internal/anchor"
	"github.com/magnusgp/fermatter/internal/instability"
	"github.com/magnusgp/fermatter/internal/model"
	"github.com/magnusgp/fermatter/internal/rules"
	"github.com/magnusgp/fermatter/internal/segment"
	"github.com/magnusgp/fermatter/internal/sources"
)

// Enricher is the optional post-processing hook. It may augment or
// replace the deterministic result; its failure only ever costs the
// enrichment, never the request.
type Enricher interface {
	Name() string
	Enrich(ctx context.Context, deterministic *model.AnalyzeResponse, req model.AnalyzeRequest) (*model.AnalyzeResponse, error)
}

// Analyzer coordinates one analysis call.
type Analyzer struct {
	cfg      model.AnalysisConfig
	engine   *rules.Engine
	tracker  *instability.Tracker
	enricher Enricher // nil when enrichment is disabled

	enrichTimeout time.Duration
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithEnricher installs the enrichment hook with a bounded timeout.
func WithEnricher(e Enricher, timeout time.Duration) Option {
	return func(a *Analyzer) {
		a.enricher = e
		if timeout > 0 {
			a.enrichTimeout = timeout
		}
	}
}

// NewAnalyzer creates an analyzer with the given engine thresholds.
func NewAnalyzer(cfg model.AnalysisConfig, opts ...Option) *Analyzer {
	a := &Analyzer{
		cfg:           cfg,
		engine:        rules.NewEngine(),
		tracker:       instability.NewTracker(cfg),
		enrichTimeout: 20 * time.Second,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze runs the deterministic pipeline to completion and then, if an
// enricher is installed, attempts enrichment under its own timeout.
// The context only governs the enrichment step; the deterministic work
// is CPU-bound and always runs to completion.
func (a *Analyzer) Analyze(ctx context.Context, req model.AnalyzeRequest) *model.AnalyzeResponse {
	start := time.Now()
	req.Normalize()

	paragraphs := segment.Split(req.Text)
	snapshots := boundSnapshots(req.Snapshots, a.cfg.MaxSnapshots)

	candidates, warnings := a.engine.Evaluate(paragraphs, req.Mode, req.Scope, req.Goal)
	unstable := a.tracker.Track(snapshots, req.Text)

	observations := make([]model.Observation, 0, len(candidates)+len(unstable))
	for _, c := range candidates {
		observations = append(observations, model.Observation{
			Type:       c.Type,
			Severity:   c.Severity,
			Paragraph:  c.Paragraph,
			AnchorText: c.AnchorText,
			Title:      c.Title,
			Note:       c.Note,
			Question:   c.Question,
			SourceIDs:  sources.Suggest(c.Type, req.Sources.LibraryIDs),
		})
	}
	observations = append(observations, instabilityObservations(unstable)...)

	registry := sources.NewRegistry(req.Sources.LibraryIDs, req.Sources.User)
	observations = finish(observations, paragraphs)

	result := &model.AnalyzeResponse{
		Observations: observations,
		Unstable:     unstable,
		SourcesUsed:  sources.Match(observations, registry),
		Meta: model.Meta{
			ParagraphCount: len(paragraphs),
			Warning:        strings.Join(warnings, "; "),
		},
	}

	if a.enricher != nil {
		a.applyEnrichment(ctx, result, req, paragraphs, registry)
	}

	result.Meta.LatencyMS = int(time.Since(start).Milliseconds())
	return result
}

// applyEnrichment runs the hook under a bounded timeout and merges its
// output through the same finishing pass as the deterministic path, so
// enriched anchors and ids obey the same invariants.
func (a *Analyzer) applyEnrichment(ctx context.Context, result *model.AnalyzeResponse, req model.AnalyzeRequest, paragraphs []segment.Paragraph, registry *sources.Registry) {
	enrichCtx, cancel := context.WithTimeout(ctx, a.enrichTimeout)
	defer cancel()

	enriched, err := a.enricher.Enrich(enrichCtx, result, req)
	if err != nil {
		appendWarning(&result.Meta, fmt.Sprintf("enrichment (%s) failed: %v", a.enricher.Name(), err))
		return
	}
	if enriched == nil {
		// The hook declined; the deterministic result stands.
		return
	}

	enriched.Observations = finish(enriched.Observations, paragraphs)
	result.Observations = enriched.Observations
	result.SourcesUsed = sources.Match(result.Observations, registry)
	result.Meta.UsedLLM = true
	if enriched.Meta.Warning != "" {
		appendWarning(&result.Meta, enriched.Meta.Warning)
	}
}

// finish applies the invariant-bearing touches to a set of
// observations: verbatim-anchor validation, paragraph clamping and
// deterministic ids.
func finish(observations []model.Observation, paragraphs []segment.Paragraph) []model.Observation {
	out := make([]model.Observation, 0, len(observations))
	ids := make(map[string]bool, len(observations))

	for _, obs := range observations {
		if !obs.Type.IsValid() {
			obs.Type = model.TypeUnclearClaim
		}
		if obs.Paragraph < 0 || obs.Paragraph >= len(paragraphs) {
			if len(paragraphs) == 0 {
				continue
			}
			obs.Paragraph = len(paragraphs) - 1
		}
		if obs.AnchorText != "" && !anchor.Verify(paragraphs, obs.Paragraph, obs.AnchorText) {
			// Degrade to an unhighlighted observation, keep the finding.
			obs.AnchorText = ""
		}
		obs.ID = observationID(obs)
		if ids[obs.ID] {
			// Same type, position, anchor and title twice over is a
			// detector bug, not input noise.
			panic(fmt.Sprintf("analysis: duplicate observation id %s (%s, paragraph %d)", obs.ID, obs.Type, obs.Paragraph))
		}
		ids[obs.ID] = true
		out = append(out, obs)
	}

	sort.SliceStable(out, func(a, b int) bool {
		if out[a].Paragraph != out[b].Paragraph {
			return out[a].Paragraph < out[b].Paragraph
		}
		return out[a].Severity > out[b].Severity
	})
	return out
}

// instabilityObservations mirrors the unstable list into observation
// form; the UI consumes both representations independently.
func instabilityObservations(unstable []model.UnstableParagraph) []model.Observation {
	var out []model.Observation
	for _, u := range unstable {
		severity := 1
		if u.RewriteCount >= 4 {
			severity = 2
		}
		out = append(out, model.Observation{
			Type:      model.TypeInstability,
			Severity:  severity,
			Paragraph: u.Paragraph,
			Title:     "Frequently rewritten",
			Note:      fmt.Sprintf("This paragraph has been rewritten %d times.", u.RewriteCount),
			Question:  "Are you struggling to express this idea clearly?",
		})
	}
	return out
}

// boundSnapshots keeps the newest n snapshots by input order without
// mutating the caller's slice.
func boundSnapshots(snapshots []model.Snapshot, n int) []model.Snapshot {
	if n <= 0 || len(snapshots) <= n {
		return snapshots
	}
	return snapshots[len(snapshots)-n:]
}

func appendWarning(meta *model.Meta, warning string) {
	if meta.Warning == "" {
		meta.Warning = warning
		return
	}
	meta.Warning += "; " + warning
}
