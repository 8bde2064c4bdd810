// Package scoring wraps the externally trained classifier. The core never
// trains anything; it loads model weights from a fixed path and asks the model
// for per-row, per-feature contributions.
package scoring

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/cockroachdb/errors"

	"mental-insights/frame"
)

// ErrSchemaMismatch marks an Explain call whose feature matrix does not line
// up with the model's declared schema. Callers may Reload and retry once.
var ErrSchemaMismatch = errors.New("feature matrix does not match model schema")

// Scorer is the opaque scoring function. FeatureNames returns the declared
// ordered schema; Explain returns one contribution per row and feature,
// aligned with that schema.
type Scorer interface {
	FeatureNames() []string
	Explain(x *frame.Frame) ([][]float64, error)
}

var (
	mu         sync.Mutex
	activePath string
	active     Scorer
)

// Load returns the process-wide scorer, reading the model file on first use
// and reusing it afterwards.
func Load(path string) (Scorer, error) {
	mu.Lock()
	defer mu.Unlock()
	if active != nil && activePath == path {
		return active, nil
	}
	return loadLocked(path)
}

// Reload rereads the model file, replacing the cached scorer. Used when the
// stored schema and the loaded model have drifted apart.
func Reload(path string) (Scorer, error) {
	mu.Lock()
	defer mu.Unlock()
	return loadLocked(path)
}

func loadLocked(path string) (Scorer, error) {
	m, err := LoadLinearModel(path)
	if err != nil {
		return nil, err
	}
	active = m
	activePath = path
	return m, nil
}

// LinearModel scores with a fixed weight per feature. Its contributions are
// the exact SHAP values of a linear model: w_j * (x_ij - mean_j), with the
// column mean taken over the explained matrix.
type LinearModel struct {
	Features  []string  `json:"features"`
	Weights   []float64 `json:"weights"`
	Intercept float64   `json:"intercept"`
}

// LoadLinearModel reads model weights from a JSON file.
func LoadLinearModel(path string) (*LinearModel, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read model file")
	}
	var m LinearModel
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, errors.Wrap(err, "decode model file")
	}
	if len(m.Features) == 0 || len(m.Features) != len(m.Weights) {
		return nil, errors.Newf("model declares %d features but %d weights", len(m.Features), len(m.Weights))
	}
	return &m, nil
}

func (m *LinearModel) FeatureNames() []string { return m.Features }

// Predict returns the raw score per row.
func (m *LinearModel) Predict(x *frame.Frame) ([]float64, error) {
	if err := m.checkSchema(x); err != nil {
		return nil, err
	}
	out := make([]float64, x.Len())
	for j, name := range m.Features {
		col := x.Col(name)
		for i, v := range col {
			out[i] += m.Weights[j] * v
		}
	}
	for i := range out {
		out[i] += m.Intercept
	}
	return out, nil
}

func (m *LinearModel) Explain(x *frame.Frame) ([][]float64, error) {
	if err := m.checkSchema(x); err != nil {
		return nil, err
	}
	n := x.Len()
	out := make([][]float64, n)
	for i := range out {
		out[i] = make([]float64, len(m.Features))
	}
	for j, name := range m.Features {
		col := x.Col(name)
		var mean float64
		for _, v := range col {
			mean += v
		}
		mean /= float64(n)
		for i, v := range col {
			out[i][j] = m.Weights[j] * (v - mean)
		}
	}
	return out, nil
}

func (m *LinearModel) checkSchema(x *frame.Frame) error {
	cols := x.Columns()
	if len(cols) != len(m.Features) {
		return errors.Wrapf(ErrSchemaMismatch, "got %d columns, want %d", len(cols), len(m.Features))
	}
	for i, name := range m.Features {
		if cols[i] != name {
			return errors.Wrapf(ErrSchemaMismatch, "column %d is %q, want %q", i, cols[i], name)
		}
	}
	if x.Len() == 0 {
		return errors.New("empty feature matrix")
	}
	return nil
}
