package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"strconv"

	"github.com/cockroachdb/errors"
)

// Score is one feature/score pair.
type Score struct {
	Feature string
	Value   float64
}

// ScoreMap is an ordered feature -> score mapping. Order matters: attribution
// maps are sorted descending by score, correlation maps descending by |r|, and
// that order must survive the JSON column round trip, so it is a slice rather
// than a Go map. It serializes as a plain JSON object.
type ScoreMap []Score

func (m ScoreMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, s := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(s.Feature)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.FormatFloat(s.Value, 'f', -1, 64))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON walks the object token by token so key order is preserved.
func (m *ScoreMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.New("scoremap: expected JSON object")
	}

	out := ScoreMap{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return errors.New("scoremap: non-string key")
		}
		valTok, err := dec.Token()
		if err != nil {
			return err
		}
		val, ok := valTok.(float64)
		if !ok {
			return errors.Newf("scoremap: non-numeric value for %q", key)
		}
		out = append(out, Score{Feature: key, Value: val})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*m = out
	return nil
}

// Value implements driver.Valuer so a ScoreMap persists as a JSON text column.
func (m ScoreMap) Value() (driver.Value, error) {
	b, err := m.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (m *ScoreMap) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*m = nil
		return nil
	case string:
		return m.UnmarshalJSON([]byte(v))
	case []byte:
		return m.UnmarshalJSON(v)
	default:
		return errors.Newf("scoremap: cannot scan %T", src)
	}
}
