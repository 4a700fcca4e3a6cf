package llm

import (
	"context"
	"fmt"

	"github.com/magnusgp/fermatter/internal/model"
	"github.com/magnusgp/fermatter/internal/segment"
)

// Enricher adapts a Provider to the coordinator's enrichment hook.
// On success the model's observations are merged after the
// deterministic ones; the heuristic findings are never discarded.
type Enricher struct {
	provider Provider
}

// NewEnricher wraps a provider. A nil provider yields a nil enricher,
// which callers treat as enrichment-disabled.
func NewEnricher(provider Provider) *Enricher {
	if provider == nil {
		return nil
	}
	return &Enricher{provider: provider}
}

// Name returns the underlying provider's name.
func (e *Enricher) Name() string {
	return e.provider.Name()
}

// Enrich runs one review call and merges its observations into the
// deterministic result. The returned response still passes through the
// coordinator's finishing pass, so model-supplied anchors that do not
// occur verbatim are dropped there, not trusted here.
func (e *Enricher) Enrich(ctx context.Context, deterministic *model.AnalyzeResponse, req model.AnalyzeRequest) (*model.AnalyzeResponse, error) {
	paragraphs := segment.Texts(segment.Split(req.Text))
	sourcesContext, allowedIDs := FormatSourcesContext(req.Sources.LibraryIDs, req.Sources.User)

	review, err := e.provider.Review(ctx, ReviewRequest{
		Request:          req,
		Paragraphs:       paragraphs,
		SourcesContext:   sourcesContext,
		AllowedSourceIDs: allowedIDs,
	})
	if err != nil {
		return nil, fmt.Errorf("review: %w", err)
	}
	if len(review.Observations) == 0 {
		// Nothing useful came back; decline rather than replace.
		return nil, nil
	}

	merged := *deterministic
	merged.Observations = append(append([]model.Observation{}, deterministic.Observations...), dedupe(review.Observations, deterministic.Observations)...)
	return &merged, nil
}

// dedupe drops model findings that restate a heuristic finding of the
// same type in the same paragraph.
func dedupe(fromModel, existing []model.Observation) []model.Observation {
	seen := make(map[string]bool, len(existing))
	for _, obs := range existing {
		seen[key(obs)] = true
	}

	var out []model.Observation
	for _, obs := range fromModel {
		if seen[key(obs)] {
			continue
		}
		seen[key(obs)] = true
		out = append(out, obs)
	}
	return out
}

func key(obs model.Observation) string {
	return fmt.Sprintf("%s|%d", obs.Type, obs.Paragraph)
}
