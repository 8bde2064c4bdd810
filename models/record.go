package models

import "time"

// SensorRecord is one raw sample from the campus sensor feed. Rows are
// append-only; the promotion workflow is the only writer of Processed and
// only ever flips it false -> true.
type SensorRecord struct {
	ID                 uint      `json:"id" gorm:"primaryKey"`
	Timestamp          time.Time `json:"timestamp" gorm:"index"`
	LocationID         float64   `json:"location_id"`
	TemperatureCelsius float64   `json:"temperature_celsius"`
	HumidityPercent    float64   `json:"humidity_percent"`
	AirQualityIndex    float64   `json:"air_quality_index"`
	NoiseLevelDB       float64   `json:"noise_level_db"`
	LightingLux        float64   `json:"lighting_lux"`
	CrowdDensity       float64   `json:"crowd_density"`
	StressLevel        float64   `json:"stress_level"`
	SleepHours         float64   `json:"sleep_hours"`
	MoodScore          float64   `json:"mood_score"`
	MentalHealthStatus float64   `json:"mental_health_status"`
	Processed          bool      `json:"processed"`
}

func (SensorRecord) TableName() string { return "incoming_data" }
