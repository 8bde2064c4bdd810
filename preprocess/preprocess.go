package preprocess

import (
	"time"

	"mental-insights/frame"
)

const defaultIQRCoef = 1.5

// Options tunes the optional autocorrelation lag-synthesis path. The default
// model schema does not request synthesized lags, so the zero value skips it.
type Options struct {
	// LagColumns are the source columns for ACF/PACF lag synthesis; empty
	// disables the path.
	LagColumns []string
	// ResamplePeriod coarsens the series before the ACF/PACF (zero = raw
	// 15-minute cadence).
	ResamplePeriod time.Duration
	// MaxLag caps the number of lags examined (default 48).
	MaxLag int
}

// Run is the full pipeline: drop ingestion bookkeeping, repair label outliers
// and mood-score sign flips, derive calendar features, optionally synthesize
// autocorrelation lags, reconcile against the declared model features, then
// drop every row still holding a missing value. Pure and deterministic; the
// final drop is the only step that changes row count.
func Run(f *frame.Frame, modelFeatures []string, opts Options) *frame.Frame {
	out := f.Copy()
	out.DropCols("processed")

	out = RemoveTargetOutliers(out)
	out = FlipOutlierSign(out, MoodColumn, defaultIQRCoef)
	out = AddTimeFeatures(out)

	if len(opts.LagColumns) > 0 {
		maxLag := opts.MaxLag
		if maxLag <= 0 {
			maxLag = 48
		}
		out = AddACFLagFeatures(out, opts.LagColumns, opts.ResamplePeriod, maxLag)
		out = AddPACFLagFeatures(out, opts.LagColumns, opts.ResamplePeriod, maxLag)
	}

	out = GenerateRequiredLags(out, modelFeatures)
	return out.DropNA()
}
