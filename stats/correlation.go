package stats

import (
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"mental-insights/frame"
	"mental-insights/models"
)

// TopCorrelations averages every column per wall-clock time-of-day bucket,
// computes the Pearson correlation of each feature's bucket means against the
// target's, and returns the top n by absolute value, rounded to 4 decimal
// places. An absent target or a degenerate correlation (fewer than two
// buckets, or zero target variance) yields an empty map rather than an error.
func TopCorrelations(f *frame.Frame, target string, n int) models.ScoreMap {
	if !f.HasColumn(target) || f.Len() == 0 {
		return models.ScoreMap{}
	}

	buckets := bucketByTimeOfDay(f)
	if len(buckets) < 2 {
		return models.ScoreMap{}
	}

	cols := f.Columns()
	means := make(map[string][]float64, len(cols))
	for _, c := range cols {
		means[c] = bucketMeans(f.Col(c), buckets)
	}
	if stat.Variance(means[target], nil) == 0 {
		return models.ScoreMap{}
	}

	type corr struct {
		feature string
		r       float64
	}
	var results []corr
	for _, c := range cols {
		if c == target {
			continue
		}
		r := stat.Correlation(means[c], means[target], nil)
		if math.IsNaN(r) {
			continue
		}
		results = append(results, corr{feature: c, r: r})
	}

	sort.SliceStable(results, func(a, b int) bool {
		return math.Abs(results[a].r) > math.Abs(results[b].r)
	})
	if n > len(results) {
		n = len(results)
	}
	out := make(models.ScoreMap, 0, n)
	for _, c := range results[:n] {
		out = append(out, models.Score{Feature: c.feature, Value: round4(c.r)})
	}
	return out
}

// bucketByTimeOfDay groups row indices by the time component of the index,
// discarding the date, in first-seen order.
func bucketByTimeOfDay(f *frame.Frame) [][]int {
	keys := map[string]int{}
	var buckets [][]int
	for i, ts := range f.Index() {
		key := ts.Format(time.TimeOnly)
		slot, ok := keys[key]
		if !ok {
			slot = len(buckets)
			keys[key] = slot
			buckets = append(buckets, nil)
		}
		buckets[slot] = append(buckets[slot], i)
	}
	return buckets
}

func bucketMeans(vals []float64, buckets [][]int) []float64 {
	out := make([]float64, len(buckets))
	for b, rows := range buckets {
		var sum float64
		for _, i := range rows {
			sum += vals[i]
		}
		out[b] = sum / float64(len(rows))
	}
	return out
}
