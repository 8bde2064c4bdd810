package preprocess

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"mental-insights/frame"
)

// outlierLabel is the known sentinel defect on the {0,1,2}-valued label.
const outlierLabel = 2

// RemoveTargetOutliers replaces every label equal to the sentinel with the
// higher of its two neighbors. Rows at either sequence boundary have no
// neighbor pair and are left as-is; the feed has never produced a boundary
// defect, so no imputation is attempted there.
func RemoveTargetOutliers(f *frame.Frame) *frame.Frame {
	out := f.Copy()
	labels := out.Col(Target)
	if labels == nil {
		return out
	}

	n := out.Len()
	var defects []int
	for i, v := range labels {
		if v == outlierLabel {
			defects = append(defects, i)
		}
	}
	for _, i := range defects {
		if i <= 0 || i >= n-1 {
			continue
		}
		labels[i] = math.Max(labels[i-1], labels[i+1])
	}
	return out
}

// FlipOutlierSign repairs suspected sign-flip errors in col. A row is a
// candidate when it falls outside the IQR fences; it is flipped only when its
// magnitude sits between its neighbors' magnitudes and its sign disagrees with
// the non-zero sign of the neighbor sum. Boundary rows are never touched.
func FlipOutlierSign(f *frame.Frame, col string, iqrCoef float64) *frame.Frame {
	out := f.Copy()
	vals := out.Col(col)
	if vals == nil || out.Len() < 3 {
		return out
	}

	q25 := quantile(vals, 0.25)
	q75 := quantile(vals, 0.75)
	iqr := q75 - q25
	lo, hi := q25-iqrCoef*iqr, q75+iqrCoef*iqr

	var outliers []int
	for i, v := range vals {
		if v < lo || v > hi {
			outliers = append(outliers, i)
		}
	}
	for _, i := range outliers {
		if i <= 0 || i >= out.Len()-1 {
			continue
		}
		before, cur, after := vals[i-1], vals[i], vals[i+1]
		neighborSign := sign(before + after)
		loMag := math.Min(math.Abs(before), math.Abs(after))
		hiMag := math.Max(math.Abs(before), math.Abs(after))
		if loMag <= math.Abs(cur) && math.Abs(cur) <= hiMag &&
			sign(cur) != neighborSign && neighborSign != 0 {
			vals[i] = -cur
		}
	}
	return out
}

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

func quantile(vals []float64, p float64) float64 {
	sorted := make([]float64, 0, len(vals))
	for _, v := range vals {
		if !math.IsNaN(v) {
			sorted = append(sorted, v)
		}
	}
	sort.Float64s(sorted)
	if len(sorted) == 0 {
		return math.NaN()
	}
	return stat.Quantile(p, stat.LinInterp, sorted, nil)
}
