// Command loadcsv bulk-loads a sensor readings CSV into the incoming_data
// table with processed=false. One-time bootstrap utility.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"gorm.io/gorm"

	"mental-insights/config"
	"mental-insights/database"
	"mental-insights/models"
)

var csvColumns = []string{
	"timestamp", "location_id", "temperature_celsius", "humidity_percent",
	"air_quality_index", "noise_level_db", "lighting_lux", "crowd_density",
	"stress_level", "sleep_hours", "mood_score", "mental_health_status",
}

func main() {
	csvPath := flag.String("csv", "assets/university_mental_health_iot_dataset.csv", "path to the readings CSV")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "open database:", err)
		os.Exit(1)
	}

	n, err := load(db, *csvPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "load:", err)
		os.Exit(1)
	}
	fmt.Printf("Inserted %d rows into incoming_data.\n", n)
}

func load(db *gorm.DB, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	records, err := parseCSV(f)
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, nil
	}
	if err := db.CreateInBatches(records, 500).Error; err != nil {
		return 0, err
	}
	return len(records), nil
}

func parseCSV(r io.Reader) ([]models.SensorRecord, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return nil, errors.Wrap(err, "read header")
	}
	idx := map[string]int{}
	for i, name := range header {
		idx[name] = i
	}
	for _, name := range csvColumns {
		if _, ok := idx[name]; !ok {
			return nil, errors.Newf("missing column %q", name)
		}
	}

	var out []models.SensorRecord
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}

		ts, err := parseTimestamp(row[idx["timestamp"]])
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		nums := make(map[string]float64, len(csvColumns)-1)
		for _, name := range csvColumns[1:] {
			v, err := strconv.ParseFloat(row[idx[name]], 64)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d column %s", line, name)
			}
			nums[name] = v
		}

		out = append(out, models.SensorRecord{
			Timestamp:          ts,
			LocationID:         nums["location_id"],
			TemperatureCelsius: nums["temperature_celsius"],
			HumidityPercent:    nums["humidity_percent"],
			AirQualityIndex:    nums["air_quality_index"],
			NoiseLevelDB:       nums["noise_level_db"],
			LightingLux:        nums["lighting_lux"],
			CrowdDensity:       nums["crowd_density"],
			StressLevel:        nums["stress_level"],
			SleepHours:         nums["sleep_hours"],
			MoodScore:          nums["mood_score"],
			MentalHealthStatus: nums["mental_health_status"],
			Processed:          false,
		})
	}
	return out, nil
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range []string{time.DateTime, time.RFC3339, "2006-01-02 15:04"} {
		if ts, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, errors.Newf("unrecognized timestamp %q", s)
}
