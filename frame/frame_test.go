package frame

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testIndex(n int) []time.Time {
	base := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	out := make([]time.Time, n)
	for i := range out {
		out[i] = base.Add(time.Duration(i) * 15 * time.Minute)
	}
	return out
}

func TestSetColAndColumns(t *testing.T) {
	f := New(testIndex(3))
	require.NoError(t, f.SetCol("a", []float64{1, 2, 3}))
	require.NoError(t, f.SetCol("b", []float64{4, 5, 6}))

	assert.Equal(t, []string{"a", "b"}, f.Columns())
	assert.Equal(t, []float64{1, 2, 3}, f.Col("a"))

	// Replacing keeps position.
	require.NoError(t, f.SetCol("a", []float64{7, 8, 9}))
	assert.Equal(t, []string{"a", "b"}, f.Columns())
	assert.Equal(t, []float64{7, 8, 9}, f.Col("a"))

	assert.Error(t, f.SetCol("c", []float64{1}))
}

func TestSelect(t *testing.T) {
	f := New(testIndex(2))
	require.NoError(t, f.SetCol("a", []float64{1, 2}))
	require.NoError(t, f.SetCol("b", []float64{3, 4}))

	sub, err := f.Select([]string{"b", "a"})
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, sub.Columns())
	assert.Equal(t, []float64{3, 4}, sub.Col("b"))

	_, err = f.Select([]string{"missing"})
	assert.Error(t, err)
}

func TestCopyIsIndependent(t *testing.T) {
	f := New(testIndex(2))
	require.NoError(t, f.SetCol("a", []float64{1, 2}))

	cp := f.Copy()
	cp.Col("a")[0] = 99
	assert.Equal(t, 1.0, f.Col("a")[0])
}

func TestDropNA(t *testing.T) {
	f := New(testIndex(4))
	require.NoError(t, f.SetCol("a", []float64{1, math.NaN(), 3, 4}))
	require.NoError(t, f.SetCol("b", []float64{1, 2, math.NaN(), 4}))

	out := f.DropNA()
	assert.Equal(t, 2, out.Len())
	assert.Equal(t, []float64{1, 4}, out.Col("a"))
	assert.Equal(t, []float64{1, 4}, out.Col("b"))
	assert.Equal(t, f.Index()[0], out.Index()[0])
	assert.Equal(t, f.Index()[3], out.Index()[1])

	// Original untouched.
	assert.Equal(t, 4, f.Len())
}

func TestDropColsAndRow(t *testing.T) {
	f := New(testIndex(2))
	require.NoError(t, f.SetCol("a", []float64{1, 2}))
	require.NoError(t, f.SetCol("b", []float64{3, 4}))

	f.DropCols("a", "nonexistent")
	assert.Equal(t, []string{"b"}, f.Columns())
	assert.False(t, f.HasColumn("a"))
	assert.Equal(t, []float64{4}, f.Row(1))
}
