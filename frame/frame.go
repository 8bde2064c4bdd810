// Package frame holds a minimal ordered-row, named-column table indexed by
// timestamp. It is the in-memory shape every pipeline stage consumes and
// produces; NaN marks a missing value.
package frame

import (
	"math"
	"time"

	"github.com/cockroachdb/errors"
)

type Frame struct {
	index []time.Time
	cols  []string
	data  map[string][]float64
}

// New creates an empty frame over the given timestamp index.
func New(index []time.Time) *Frame {
	idx := make([]time.Time, len(index))
	copy(idx, index)
	return &Frame{index: idx, data: map[string][]float64{}}
}

func (f *Frame) Len() int { return len(f.index) }

// Index returns the timestamp index. Callers must not mutate it.
func (f *Frame) Index() []time.Time { return f.index }

// Columns returns column names in insertion order. Callers must not mutate it.
func (f *Frame) Columns() []string { return f.cols }

func (f *Frame) HasColumn(name string) bool {
	_, ok := f.data[name]
	return ok
}

// Col returns the column's values, or nil if absent. Callers must not mutate
// the slice; use SetCol to replace a column.
func (f *Frame) Col(name string) []float64 { return f.data[name] }

// SetCol adds or replaces a column. The values slice must match the frame
// length and is owned by the frame afterwards.
func (f *Frame) SetCol(name string, values []float64) error {
	if len(values) != len(f.index) {
		return errors.Newf("frame: column %q has %d values, frame has %d rows", name, len(values), len(f.index))
	}
	if _, exists := f.data[name]; !exists {
		f.cols = append(f.cols, name)
	}
	f.data[name] = values
	return nil
}

// Copy returns a deep copy; pipeline stages copy before mutating so each stage
// stays a pure function of its input.
func (f *Frame) Copy() *Frame {
	out := New(f.index)
	for _, c := range f.cols {
		vals := make([]float64, len(f.data[c]))
		copy(vals, f.data[c])
		out.SetCol(c, vals) //nolint:errcheck // lengths match by construction
	}
	return out
}

// Select returns a new frame holding only the named columns, in the given
// order. Missing names are an error.
func (f *Frame) Select(names []string) (*Frame, error) {
	out := New(f.index)
	for _, name := range names {
		src, ok := f.data[name]
		if !ok {
			return nil, errors.Newf("frame: no column %q", name)
		}
		vals := make([]float64, len(src))
		copy(vals, src)
		out.SetCol(name, vals) //nolint:errcheck
	}
	return out, nil
}

// DropCols removes the named columns if present.
func (f *Frame) DropCols(names ...string) {
	for _, name := range names {
		if _, ok := f.data[name]; !ok {
			continue
		}
		delete(f.data, name)
		for i, c := range f.cols {
			if c == name {
				f.cols = append(f.cols[:i], f.cols[i+1:]...)
				break
			}
		}
	}
}

// DropNA returns a copy without any row that has a NaN in any column.
func (f *Frame) DropNA() *Frame {
	keep := make([]int, 0, len(f.index))
	for i := range f.index {
		ok := true
		for _, c := range f.cols {
			if math.IsNaN(f.data[c][i]) {
				ok = false
				break
			}
		}
		if ok {
			keep = append(keep, i)
		}
	}

	idx := make([]time.Time, len(keep))
	for j, i := range keep {
		idx[j] = f.index[i]
	}
	out := New(idx)
	for _, c := range f.cols {
		vals := make([]float64, len(keep))
		for j, i := range keep {
			vals[j] = f.data[c][i]
		}
		out.SetCol(c, vals) //nolint:errcheck
	}
	return out
}

// Row returns the values of one row in column order.
func (f *Frame) Row(i int) []float64 {
	out := make([]float64, len(f.cols))
	for j, c := range f.cols {
		out[j] = f.data[c][i]
	}
	return out
}
