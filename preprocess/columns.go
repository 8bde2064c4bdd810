// Package preprocess turns raw sensor rows into the model-ready feature table:
// defect repair, calendar/cyclic features, lag synthesis, and reconciliation
// against the scoring model's declared feature schema.
package preprocess

// Target is the outcome label column.
const Target = "mental_health_status"

// MoodColumn is the continuous column known to carry sign-flip defects.
const MoodColumn = "mood_score"

// BaseFeatures are the raw sensor columns, in storage order.
var BaseFeatures = []string{
	"location_id",
	"temperature_celsius",
	"humidity_percent",
	"air_quality_index",
	"noise_level_db",
	"lighting_lux",
	"crowd_density",
	"stress_level",
	"sleep_hours",
	"mood_score",
}
