package preprocess

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mental-insights/frame"
)

func TestAddTimeFeatures(t *testing.T) {
	// Saturday 13:00 and Monday 00:00.
	index := []time.Time{
		time.Date(2024, 1, 6, 13, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC),
	}
	f := frame.New(index)
	require.NoError(t, f.SetCol("mood_score", []float64{1, 2}))

	out := AddTimeFeatures(f)

	assert.Equal(t, []float64{13, 0}, out.Col("hour"))
	assert.Equal(t, []float64{5, 0}, out.Col("weekday"))
	assert.Equal(t, []float64{1, 0}, out.Col("is_weekend"))
	assert.InDelta(t, math.Sin(2*math.Pi*13/24), out.Col("hour_sin")[0], 1e-12)
	assert.InDelta(t, math.Cos(2*math.Pi*13/24), out.Col("hour_cos")[0], 1e-12)
	assert.InDelta(t, 0, out.Col("hour_sin")[1], 1e-12)
	assert.InDelta(t, 1, out.Col("hour_cos")[1], 1e-12)
}

func TestGenerateRequiredLags(t *testing.T) {
	f := testFrame(t, map[string][]float64{
		"a":    {1, 2, 3, 4},
		"b":    {10, 20, 30, 40},
		Target: {0, 1, 0, 1},
	}, 4)

	out := GenerateRequiredLags(f, []string{"a", "b_lag_2", "c"})

	assert.Equal(t, []string{"a", "b_lag_2", "c", Target}, out.Columns())
	assert.Equal(t, 4, out.Len())

	lagged := out.Col("b_lag_2")
	assert.True(t, math.IsNaN(lagged[0]))
	assert.True(t, math.IsNaN(lagged[1]))
	assert.Equal(t, []float64{10, 20}, lagged[2:])

	for _, v := range out.Col("c") {
		assert.True(t, math.IsNaN(v))
	}
}

func TestGenerateRequiredLagsWithoutTarget(t *testing.T) {
	f := testFrame(t, map[string][]float64{"a": {1, 2, 3}}, 3)

	out := GenerateRequiredLags(f, []string{"a_lag_1"})
	assert.Equal(t, []string{"a_lag_1"}, out.Columns())
}

func TestAddACFLagFeaturesDefaultWindow(t *testing.T) {
	// A period-2 alternating series never decorrelates within the examined
	// lags, so the default window of 4 applies.
	vals := make([]float64, 60)
	for i := range vals {
		if i%2 == 0 {
			vals[i] = 5
		} else {
			vals[i] = 1
		}
	}
	f := testFrame(t, map[string][]float64{"x": vals}, 60)

	out := AddACFLagFeatures(f, []string{"x"}, 0, 48)

	require.True(t, out.HasColumn("x_ma_lag_4"))
	ma := out.Col("x_ma_lag_4")
	assert.Equal(t, 5.0, ma[0])
	assert.Equal(t, 3.0, ma[1])
	assert.Equal(t, (5.0+1+5+1)/4, ma[3])
	assert.Equal(t, (1.0+5+1+5)/4, ma[4])
}

func TestAddACFLagFeaturesCutoffWindow(t *testing.T) {
	// For the 0..59 trend, lag 16 is the first whose autocorrelation drops
	// under 1.96/sqrt(60), so the rolling window is 16.
	vals := make([]float64, 60)
	for i := range vals {
		vals[i] = float64(i)
	}
	f := testFrame(t, map[string][]float64{"x": vals}, 60)

	out := AddACFLagFeatures(f, []string{"x"}, 0, 48)

	assert.True(t, out.HasColumn("x_ma_lag_16"))
	assert.Equal(t, []string{"x", "x_ma_lag_16"}, out.Columns())
}

func TestAddACFLagFeaturesSkipsFlatSeries(t *testing.T) {
	vals := make([]float64, 60)
	for i := range vals {
		vals[i] = 3.5
	}
	f := testFrame(t, map[string][]float64{"x": vals}, 60)

	out := AddACFLagFeatures(f, []string{"x"}, 0, 48)
	assert.Equal(t, []string{"x"}, out.Columns())
}

func TestAddACFLagFeaturesShortSeries(t *testing.T) {
	f := testFrame(t, map[string][]float64{"x": {1, 2, 3}}, 3)
	out := AddACFLagFeatures(f, []string{"x"}, 0, 48)
	assert.Equal(t, []string{"x"}, out.Columns())
}

func TestAddPACFLagFeaturesTrend(t *testing.T) {
	vals := make([]float64, 60)
	for i := range vals {
		vals[i] = float64(i)
	}
	f := testFrame(t, map[string][]float64{"x": vals}, 60)

	out := AddPACFLagFeatures(f, []string{"x"}, 0, 48)

	require.True(t, out.HasColumn("x_lag_1"))
	lagged := out.Col("x_lag_1")
	assert.True(t, math.IsNaN(lagged[0]))
	assert.Equal(t, 0.0, lagged[1])
	assert.Equal(t, 58.0, lagged[59])
}

func TestRescaleLag(t *testing.T) {
	assert.Equal(t, 3, rescaleLag(3, 0))
	assert.Equal(t, 12, rescaleLag(3, time.Hour))
	assert.Equal(t, 8, rescaleLag(2, time.Hour))
}

func TestAutocorr(t *testing.T) {
	alt := []float64{1, -1, 1, -1, 1, -1, 1, -1}
	r := autocorr(alt, 2)
	assert.Equal(t, 1.0, r[0])
	assert.Less(t, r[1], -0.8)
	assert.Greater(t, r[2], 0.6)
}

func TestPacfFirstLagEqualsACF(t *testing.T) {
	vals := []float64{1, 3, 2, 5, 4, 6, 5, 8, 7, 9}
	r := autocorr(vals, 3)
	p := pacf(vals, 3)
	assert.Equal(t, 1.0, p[0])
	assert.InDelta(t, r[1], p[1], 1e-12)
}

func TestRollingMeanHandlesNaN(t *testing.T) {
	vals := []float64{math.NaN(), 2, 4}
	out := rollingMean(vals, 2)
	assert.True(t, math.IsNaN(out[0]))
	assert.Equal(t, 2.0, out[1])
	assert.Equal(t, 3.0, out[2])
}

func TestResample(t *testing.T) {
	base := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	index := []time.Time{
		base, base.Add(15 * time.Minute), base.Add(30 * time.Minute),
		base.Add(time.Hour), base.Add(75 * time.Minute),
	}
	vals := []float64{1, 2, 3, 10, 20}

	out := resample(index, vals, time.Hour)
	assert.Equal(t, []float64{2, 15}, out)

	raw := resample(index, vals, 0)
	assert.Equal(t, vals, raw)
}
