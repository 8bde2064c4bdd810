package scoring

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mental-insights/frame"
)

func writeModel(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func newMatrix(t *testing.T, cols []string, rows [][]float64) *frame.Frame {
	t.Helper()
	base := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	index := make([]time.Time, len(rows))
	for i := range index {
		index[i] = base.Add(time.Duration(i) * time.Minute)
	}
	f := frame.New(index)
	for j, name := range cols {
		vals := make([]float64, len(rows))
		for i := range rows {
			vals[i] = rows[i][j]
		}
		require.NoError(t, f.SetCol(name, vals))
	}
	return f
}

func TestLoadLinearModel(t *testing.T) {
	path := writeModel(t, `{"features":["a","b"],"weights":[1.5,-1],"intercept":0.5}`)

	m, err := LoadLinearModel(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, m.FeatureNames())
	assert.Equal(t, 0.5, m.Intercept)
}

func TestLoadLinearModelRejectsBadFiles(t *testing.T) {
	_, err := LoadLinearModel(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = LoadLinearModel(writeModel(t, `{"features":["a"],"weights":[1,2]}`))
	assert.Error(t, err)

	_, err = LoadLinearModel(writeModel(t, `not json`))
	assert.Error(t, err)
}

func TestLoadCachesPerPath(t *testing.T) {
	path := writeModel(t, `{"features":["a"],"weights":[2]}`)

	first, err := Load(path)
	require.NoError(t, err)
	second, err := Load(path)
	require.NoError(t, err)
	assert.Same(t, first, second)

	reloaded, err := Reload(path)
	require.NoError(t, err)
	assert.NotSame(t, first, reloaded)
}

func TestPredict(t *testing.T) {
	m := &LinearModel{Features: []string{"a", "b"}, Weights: []float64{1, -1}, Intercept: 0.5}
	x := newMatrix(t, []string{"a", "b"}, [][]float64{{1, 2}, {3, 1}})

	got, err := m.Predict(x)
	require.NoError(t, err)
	assert.Equal(t, []float64{-0.5, 2.5}, got)
}

func TestExplainLinearContributions(t *testing.T) {
	m := &LinearModel{Features: []string{"a", "b"}, Weights: []float64{2, 1}}
	x := newMatrix(t, []string{"a", "b"}, [][]float64{{1, 10}, {3, 10}})

	got, err := m.Explain(x)
	require.NoError(t, err)
	// Column means are 2 and 10.
	assert.Equal(t, [][]float64{{-2, 0}, {2, 0}}, got)
}

func TestExplainSchemaMismatch(t *testing.T) {
	m := &LinearModel{Features: []string{"a", "b"}, Weights: []float64{1, 1}}

	_, err := m.Explain(newMatrix(t, []string{"b", "a"}, [][]float64{{1, 2}}))
	assert.True(t, errors.Is(err, ErrSchemaMismatch))

	_, err = m.Explain(newMatrix(t, []string{"a"}, [][]float64{{1}}))
	assert.True(t, errors.Is(err, ErrSchemaMismatch))
}
