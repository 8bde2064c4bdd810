package store

import (
	"github.com/cockroachdb/errors"
	"gorm.io/gorm"

	"mental-insights/models"
)

// ErrDuplicateDay reports a daily insight that already exists for the date.
// It is produced by the unique index on insight_date, so two racing writers
// cannot both insert: one commits, the other observes this error.
var ErrDuplicateDay = errors.New("daily insight already exists for date")

// Insights owns the daily_insights and historical_insights tables.
type Insights struct {
	db *gorm.DB
}

func NewInsights(db *gorm.DB) *Insights {
	return &Insights{db: db}
}

// CreateDaily inserts the day's insight. The insert itself is the existence
// check; a duplicate date comes back as ErrDuplicateDay.
func (s *Insights) CreateDaily(ins *models.DailyInsight) error {
	err := s.db.Create(ins).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errors.Wrapf(ErrDuplicateDay, "%s", ins.InsightDate)
	}
	return errors.Wrap(err, "create daily insight")
}

// GetDaily returns the cached insight for the date, or ok=false.
func (s *Insights) GetDaily(date string) (*models.DailyInsight, bool, error) {
	var ins models.DailyInsight
	err := s.db.Where("insight_date = ?", date).First(&ins).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrap(err, "get daily insight")
	}
	return &ins, true, nil
}

// AppendHistorical adds one corpus-summary entry to the append-only log.
func (s *Insights) AppendHistorical(ins *models.HistoricalInsight) error {
	return errors.Wrap(s.db.Create(ins).Error, "append historical insight")
}

// LatestHistorical returns the most recently created summary, or ok=false.
func (s *Insights) LatestHistorical() (*models.HistoricalInsight, bool, error) {
	var ins models.HistoricalInsight
	err := s.db.Order("created_at DESC, id DESC").First(&ins).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrap(err, "latest historical insight")
	}
	return &ins, true, nil
}
