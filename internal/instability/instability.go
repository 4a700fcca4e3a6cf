// Package instability derives a rewrite signal from the caller's
// snapshot history. History is the only observable trace of a writer's
// uncertainty: a paragraph slot that keeps changing substantively is
// reported so the UI can surface it.
package instability

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/magnusgp/fermatter/internal/model"
	"github.com/magnusgp/fermatter/internal/segment"
)

// Tracker counts substantive rewrites per paragraph slot across an
// ordered snapshot history.
type Tracker struct {
	cfg model.AnalysisConfig
}

// NewTracker creates a tracker with the given thresholds.
func NewTracker(cfg model.AnalysisConfig) *Tracker {
	if cfg.SimilarityThreshold <= 0 || cfg.SimilarityThreshold > 1 {
		cfg.SimilarityThreshold = model.DefaultAnalysisConfig().SimilarityThreshold
	}
	if cfg.RewriteThreshold <= 0 {
		cfg.RewriteThreshold = model.DefaultAnalysisConfig().RewriteThreshold
	}
	return &Tracker{cfg: cfg}
}

// Track sorts the snapshots by timestamp, appends currentText as the
// final version, and counts per-slot rewrites. Only slots present in
// the latest segmentation whose count meets the materiality threshold
// are reported. The input slice is never mutated.
func (t *Tracker) Track(snapshots []model.Snapshot, currentText string) []model.UnstableParagraph {
	counts := t.RewriteCounts(snapshots, currentText)
	if len(counts) == 0 {
		return nil
	}

	slots := make([]int, 0, len(counts))
	for slot := range counts {
		slots = append(slots, slot)
	}
	sort.Ints(slots)

	var unstable []model.UnstableParagraph
	for _, slot := range slots {
		count := counts[slot]
		if count < t.cfg.RewriteThreshold {
			continue
		}
		unstable = append(unstable, model.UnstableParagraph{
			Paragraph:    slot,
			RewriteCount: count,
			Note:         fmt.Sprintf("Rewritten %d times across snapshots", count),
		})
	}
	return unstable
}

// RewriteCounts returns the raw rewrite count for every paragraph slot
// of the latest version, materiality threshold not yet applied.
func (t *Tracker) RewriteCounts(snapshots []model.Snapshot, currentText string) map[int]int {
	versions := sortedTexts(snapshots)
	versions = append(versions, currentText)
	if len(versions) < 2 {
		return nil
	}

	segmented := make([][]segment.Paragraph, len(versions))
	for i, text := range versions {
		segmented[i] = segment.Split(text)
	}

	latest := segmented[len(segmented)-1]
	counts := make(map[int]int, len(latest))

	// Alignment is positional: the content occupying slot i in one
	// version is compared against slot i in the next. A slot missing on
	// either side is not a rewrite, only a size change.
	for slot := range latest {
		for v := 1; v < len(segmented); v++ {
			prev, curr := segmented[v-1], segmented[v]
			if slot >= len(prev) || slot >= len(curr) {
				continue
			}
			if Similarity(prev[slot].Text, curr[slot].Text) < t.cfg.SimilarityThreshold {
				counts[slot]++
			}
		}
	}
	return counts
}

// sortedTexts orders snapshot texts oldest first. Snapshots with
// unparsable timestamps keep their input position against the sorted
// rest, so a garbled entry degrades instead of failing the call.
func sortedTexts(snapshots []model.Snapshot) []string {
	type stamped struct {
		at  time.Time
		ok  bool
		pos int
		txt string
	}

	entries := make([]stamped, len(snapshots))
	for i, s := range snapshots {
		at, err := parseTimestamp(s.TS)
		entries[i] = stamped{at: at, ok: err == nil, pos: i, txt: s.Text}
	}

	sort.SliceStable(entries, func(a, b int) bool {
		if !entries[a].ok || !entries[b].ok {
			return entries[a].pos < entries[b].pos
		}
		if entries[a].at.Equal(entries[b].at) {
			return entries[a].pos < entries[b].pos
		}
		return entries[a].at.Before(entries[b].at)
	})

	texts := make([]string, len(entries))
	for i, e := range entries {
		texts[i] = e.txt
	}
	return texts
}

func parseTimestamp(ts string) (time.Time, error) {
	if ts == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if at, err := time.Parse(layout, ts); err == nil {
			return at, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparsable timestamp: %s", ts)
}

// Similarity is the token-overlap (Jaccard) ratio between two texts
// after normalization. 1.0 means identical token sets, 0.0 disjoint.
// Whitespace and punctuation edits therefore never count as rewrites.
func Similarity(a, b string) float64 {
	ta, tb := tokenSet(a), tokenSet(b)
	if len(ta) == 0 && len(tb) == 0 {
		return 1.0
	}
	if len(ta) == 0 || len(tb) == 0 {
		return 0.0
	}

	intersection := 0
	for tok := range ta {
		if tb[tok] {
			intersection++
		}
	}
	union := len(ta) + len(tb) - intersection
	return float64(intersection) / float64(union)
}

func tokenSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, field := range strings.Fields(strings.ToLower(text)) {
		tok := strings.TrimFunc(field, func(r rune) bool {
			return !isAlnum(r)
		})
		if tok != "" {
			set[tok] = true
		}
	}
	return set
}

func isAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r > 127
}
