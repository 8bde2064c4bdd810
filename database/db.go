package database

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"mental-insights/models"
)

// Open connects to the SQLite database and migrates the insight tables.
// TranslateError is required: the promotion workflow relies on the unique
// index violation surfacing as gorm.ErrDuplicatedKey.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&models.SensorRecord{},
		&models.DailyInsight{},
		&models.HistoricalInsight{},
	)
	if err != nil {
		return nil, err
	}
	return db, nil
}
