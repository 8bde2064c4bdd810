package insights

import (
	"time"

	"mental-insights/frame"
	"mental-insights/models"
	"mental-insights/preprocess"
)

// recordFrame lays sensor rows out as a timestamp-indexed frame with the base
// sensor columns plus the label, in storage order.
func recordFrame(recs []models.SensorRecord) *frame.Frame {
	index := make([]time.Time, len(recs))
	for i, r := range recs {
		index[i] = r.Timestamp
	}
	f := frame.New(index)

	cols := map[string][]float64{}
	for _, name := range preprocess.BaseFeatures {
		cols[name] = make([]float64, len(recs))
	}
	label := make([]float64, len(recs))

	for i, r := range recs {
		cols["location_id"][i] = r.LocationID
		cols["temperature_celsius"][i] = r.TemperatureCelsius
		cols["humidity_percent"][i] = r.HumidityPercent
		cols["air_quality_index"][i] = r.AirQualityIndex
		cols["noise_level_db"][i] = r.NoiseLevelDB
		cols["lighting_lux"][i] = r.LightingLux
		cols["crowd_density"][i] = r.CrowdDensity
		cols["stress_level"][i] = r.StressLevel
		cols["sleep_hours"][i] = r.SleepHours
		cols["mood_score"][i] = r.MoodScore
		label[i] = r.MentalHealthStatus
	}

	for _, name := range preprocess.BaseFeatures {
		f.SetCol(name, cols[name]) //nolint:errcheck
	}
	f.SetCol(preprocess.Target, label) //nolint:errcheck
	return f
}

// dayRange summarizes the distinct calendar days covered by the index:
// "first to last" plus the day count.
func dayRange(index []time.Time) (string, int) {
	seen := map[string]struct{}{}
	var first, last string
	for _, ts := range index {
		day := ts.Format(time.DateOnly)
		if _, ok := seen[day]; !ok {
			seen[day] = struct{}{}
		}
		if first == "" || day < first {
			first = day
		}
		if day > last {
			last = day
		}
	}
	return first + " to " + last, len(seen)
}
