// Package store is the persistence boundary: raw sensor rows on one side,
// cached insight rows on the other. All cross-invocation coordination happens
// through these tables.
package store

import (
	"database/sql"

	"github.com/cockroachdb/errors"
	"gorm.io/gorm"

	"mental-insights/models"
)

// Records reads and flags rows of the incoming_data table. Rows are
// append-only; MarkProcessed is the only mutation and flags by row identity,
// never by date, so rows ingested concurrently stay unprocessed.
type Records struct {
	db *gorm.DB
}

func NewRecords(db *gorm.DB) *Records {
	return &Records{db: db}
}

// FetchUnprocessed returns the day's unprocessed rows in timestamp order.
// date is ISO YYYY-MM-DD.
func (r *Records) FetchUnprocessed(date string) ([]models.SensorRecord, error) {
	var recs []models.SensorRecord
	err := r.db.
		Where("date(timestamp) = ? AND processed = ?", date, false).
		Order("timestamp").
		Find(&recs).Error
	if err != nil {
		return nil, errors.Wrap(err, "fetch unprocessed")
	}
	return recs, nil
}

// FetchProcessedThrough returns every processed row whose day is on or before
// date, in timestamp order.
func (r *Records) FetchProcessedThrough(date string) ([]models.SensorRecord, error) {
	var recs []models.SensorRecord
	err := r.db.
		Where("date(timestamp) <= ? AND processed = ?", date, true).
		Order("timestamp").
		Find(&recs).Error
	if err != nil {
		return nil, errors.Wrap(err, "fetch processed through date")
	}
	return recs, nil
}

// FetchAll returns every row regardless of date or flag, in timestamp order.
func (r *Records) FetchAll() ([]models.SensorRecord, error) {
	var recs []models.SensorRecord
	if err := r.db.Order("timestamp").Find(&recs).Error; err != nil {
		return nil, errors.Wrap(err, "fetch all records")
	}
	return recs, nil
}

// MarkProcessed flips the processed flag on exactly the given rows.
func (r *Records) MarkProcessed(ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	err := r.db.Model(&models.SensorRecord{}).
		Where("id IN ?", ids).
		Update("processed", true).Error
	return errors.Wrap(err, "mark processed")
}

// EarliestUnprocessedDate returns the earliest day holding unprocessed rows,
// or ok=false when none remain.
func (r *Records) EarliestUnprocessedDate() (string, bool, error) {
	var date sql.NullString
	err := r.db.Model(&models.SensorRecord{}).
		Where("processed = ?", false).
		Select("MIN(date(timestamp))").
		Scan(&date).Error
	if err != nil {
		return "", false, errors.Wrap(err, "earliest unprocessed date")
	}
	if !date.Valid || date.String == "" {
		return "", false, nil
	}
	return date.String, true, nil
}
