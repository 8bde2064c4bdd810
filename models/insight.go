package models

import "time"

// DailyInsight is the cached result of promoting one calendar day. The unique
// index on InsightDate is what makes the promotion check-then-insert atomic:
// the losing writer of a race gets a duplicate-key error, never a second row.
type DailyInsight struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	InsightDate  string    `json:"insight_date" gorm:"uniqueIndex;size:10"`
	TopFeatures  ScoreMap  `json:"top_features" gorm:"type:text"`
	Correlations ScoreMap  `json:"correlations" gorm:"type:text"`
	CreatedAt    time.Time `json:"created_at"`
}

func (DailyInsight) TableName() string { return "daily_insights" }

// HistoricalInsight is one append-only entry summarizing attribution and
// correlation over all promoted data at the time it was written. The latest
// row by CreatedAt is the current summary.
type HistoricalInsight struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	TimeRange    string    `json:"time_range"`
	DaysAnalyzed int       `json:"days_analyzed"`
	TopFeatures  ScoreMap  `json:"top_features" gorm:"type:text"`
	Correlations ScoreMap  `json:"correlations" gorm:"type:text"`
	CreatedAt    time.Time `json:"created_at"`
}

func (HistoricalInsight) TableName() string { return "historical_insights" }
