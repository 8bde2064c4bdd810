// Package stats holds the two insight engines: per-feature attribution for the
// scoring model and per-feature correlation against the outcome label.
package stats

import (
	"math"
	"sort"

	"github.com/cockroachdb/errors"

	"mental-insights/frame"
	"mental-insights/models"
	"mental-insights/scoring"
)

// TopAttributions scores every feature by its mean absolute contribution
// across rows and returns the top n, descending, rounded to 4 decimal places.
// Ties keep the model's declared feature order. The matrix must be non-empty
// and column-aligned with the scorer's schema.
func TopAttributions(x *frame.Frame, scorer scoring.Scorer, n int) (models.ScoreMap, error) {
	names := scorer.FeatureNames()
	cols := x.Columns()
	if x.Len() == 0 {
		return nil, errors.New("attribution: empty feature matrix")
	}
	if len(cols) != len(names) {
		return nil, errors.Newf("attribution: matrix has %d columns, model expects %d", len(cols), len(names))
	}
	for i := range names {
		if cols[i] != names[i] {
			return nil, errors.Newf("attribution: column %d is %q, model expects %q", i, cols[i], names[i])
		}
	}

	contribs, err := scorer.Explain(x)
	if err != nil {
		return nil, errors.Wrap(err, "attribution: explain")
	}

	summary := make([]float64, len(names))
	for _, row := range contribs {
		for j, c := range row {
			summary[j] += math.Abs(c)
		}
	}
	for j := range summary {
		summary[j] /= float64(len(contribs))
	}

	order := make([]int, len(names))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return summary[order[a]] > summary[order[b]]
	})

	if n > len(order) {
		n = len(order)
	}
	out := make(models.ScoreMap, 0, n)
	for _, j := range order[:n] {
		out = append(out, models.Score{Feature: names[j], Value: round4(summary[j])})
	}
	return out, nil
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
