package preprocess

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"

	"mental-insights/frame"
)

// AddTimeFeatures derives hour, weekday (Monday=0), a weekend indicator, and
// the sine/cosine encoding of hour-of-day with period 24.
func AddTimeFeatures(f *frame.Frame) *frame.Frame {
	out := f.Copy()
	n := out.Len()
	hour := make([]float64, n)
	weekday := make([]float64, n)
	weekend := make([]float64, n)
	hourSin := make([]float64, n)
	hourCos := make([]float64, n)

	for i, ts := range out.Index() {
		h := float64(ts.Hour())
		wd := float64((int(ts.Weekday()) + 6) % 7)
		hour[i] = h
		weekday[i] = wd
		if wd >= 5 {
			weekend[i] = 1
		}
		hourSin[i] = math.Sin(2 * math.Pi * h / 24)
		hourCos[i] = math.Cos(2 * math.Pi * h / 24)
	}

	out.SetCol("hour", hour)          //nolint:errcheck
	out.SetCol("weekday", weekday)    //nolint:errcheck
	out.SetCol("is_weekend", weekend) //nolint:errcheck
	out.SetCol("hour_sin", hourSin)   //nolint:errcheck
	out.SetCol("hour_cos", hourCos)   //nolint:errcheck
	return out
}

var lagPattern = regexp.MustCompile(`^(.+)_lag_(\d+)$`)

// GenerateRequiredLags reconciles the frame against the model's declared
// feature list. Declared `<base>_lag_<k>` features are materialized by
// shifting `<base>` k rows (NaN-filled at the head) when the base column
// exists, NaN-filled otherwise; any other declared feature missing from the
// frame is NaN-filled. The result carries exactly the declared features in
// declared order, plus the label when present.
func GenerateRequiredLags(f *frame.Frame, featureList []string) *frame.Frame {
	work := f.Copy()
	n := work.Len()

	for _, feature := range featureList {
		if m := lagPattern.FindStringSubmatch(feature); m != nil {
			base := m[1]
			k, _ := strconv.Atoi(m[2])
			if src := work.Col(base); src != nil {
				work.SetCol(feature, shift(src, k)) //nolint:errcheck
			} else {
				work.SetCol(feature, nanColumn(n)) //nolint:errcheck
			}
			continue
		}
		if !work.HasColumn(feature) {
			work.SetCol(feature, nanColumn(n)) //nolint:errcheck
		}
	}

	keep := featureList
	if work.HasColumn(Target) {
		keep = append(append([]string{}, featureList...), Target)
	}
	out, _ := work.Select(keep)
	return out
}

// AddACFLagFeatures emits one rolling-mean feature per source column, with the
// window chosen as the first autocorrelation lag beyond index 1 whose
// magnitude drops below the 95% significance threshold (default window 4 when
// none does). An optional resampling period coarsens the series before the
// ACF; the chosen window is then rescaled back to 15-minute base spacing.
func AddACFLagFeatures(f *frame.Frame, cols []string, period time.Duration, maxLag int) *frame.Frame {
	out := f.Copy()
	for _, col := range cols {
		src := out.Col(col)
		if src == nil {
			continue
		}
		series := resample(out.Index(), src, period)
		adjusted := min(maxLag, len(series)/3-1)
		if adjusted < 1 {
			continue
		}

		acfVals := autocorr(series, adjusted)
		threshold := 1.96 / math.Sqrt(float64(len(series)))
		window := 4
		for lag := 1; lag < len(acfVals); lag++ {
			if math.Abs(acfVals[lag]) < threshold {
				window = lag
				break
			}
		}
		if window <= 1 {
			continue
		}
		window = rescaleLag(window, period)
		name := fmt.Sprintf("%s_ma_lag_%d", col, window)
		out.SetCol(name, rollingMean(src, window)) //nolint:errcheck
	}
	return out
}

// AddPACFLagFeatures emits one shifted-lag feature per lag whose partial
// autocorrelation magnitude exceeds the 95% significance threshold.
func AddPACFLagFeatures(f *frame.Frame, cols []string, period time.Duration, maxLag int) *frame.Frame {
	out := f.Copy()
	for _, col := range cols {
		src := out.Col(col)
		if src == nil {
			continue
		}
		series := resample(out.Index(), src, period)
		adjusted := min(maxLag, len(series)/3-1)
		if adjusted < 1 {
			continue
		}

		pacfVals := pacf(series, adjusted)
		threshold := 1.96 / math.Sqrt(float64(len(series)))
		for lag := 1; lag < len(pacfVals); lag++ {
			if math.Abs(pacfVals[lag]) <= threshold {
				continue
			}
			scaled := rescaleLag(lag, period)
			name := fmt.Sprintf("%s_lag_%d", col, scaled)
			out.SetCol(name, shift(src, scaled)) //nolint:errcheck
		}
	}
	return out
}

// rescaleLag converts a lag counted in resampled steps back into steps of the
// raw 15-minute cadence.
func rescaleLag(lag int, period time.Duration) int {
	if period <= 0 {
		return lag
	}
	return lag * int(period.Minutes()) / 15
}

func shift(vals []float64, k int) []float64 {
	out := make([]float64, len(vals))
	for i := range out {
		if i < k {
			out[i] = math.NaN()
		} else {
			out[i] = vals[i-k]
		}
	}
	return out
}

func rollingMean(vals []float64, window int) []float64 {
	out := make([]float64, len(vals))
	for i := range vals {
		start := i - window + 1
		if start < 0 {
			start = 0
		}
		sum, cnt := 0.0, 0
		for j := start; j <= i; j++ {
			if math.IsNaN(vals[j]) {
				continue
			}
			sum += vals[j]
			cnt++
		}
		if cnt == 0 {
			out[i] = math.NaN()
		} else {
			out[i] = sum / float64(cnt)
		}
	}
	return out
}

// resample averages the series into period-sized buckets in time order,
// dropping NaNs and empty buckets. A zero period returns the NaN-stripped
// series unchanged.
func resample(index []time.Time, vals []float64, period time.Duration) []float64 {
	if period <= 0 {
		out := make([]float64, 0, len(vals))
		for _, v := range vals {
			if !math.IsNaN(v) {
				out = append(out, v)
			}
		}
		return out
	}

	type bucket struct {
		sum float64
		n   int
	}
	buckets := map[time.Time]*bucket{}
	var order []time.Time
	for i, ts := range index {
		if math.IsNaN(vals[i]) {
			continue
		}
		key := ts.Truncate(period)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{}
			buckets[key] = b
			order = append(order, key)
		}
		b.sum += vals[i]
		b.n++
	}

	out := make([]float64, 0, len(order))
	for _, key := range order {
		b := buckets[key]
		out = append(out, b.sum/float64(b.n))
	}
	return out
}

func nanColumn(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}
