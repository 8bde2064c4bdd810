// Package insights is the promotion state machine and tiered read path over
// the raw record and insight stores. Each exported method is one self-contained
// unit of work; cross-invocation coordination happens only through the store.
package insights

import (
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"mental-insights/frame"
	"mental-insights/models"
	"mental-insights/preprocess"
	"mental-insights/scoring"
	"mental-insights/stats"
	"mental-insights/store"
)

// Source tags on a successful Read.
const (
	SourceCache           = "cache"
	SourceComputedPartial = "computed-partial"
)

// AttributionFunc and CorrelationFunc are the engine signatures; the service
// fields exist so tests can count or stub engine invocations.
type (
	AttributionFunc func(x *frame.Frame, scorer scoring.Scorer, n int) (models.ScoreMap, error)
	CorrelationFunc func(f *frame.Frame, target string, n int) models.ScoreMap
)

type Service struct {
	DB        *gorm.DB
	Log       *zap.Logger
	ModelPath string

	// MinDailyRows is the coverage threshold: one reading every 15 minutes
	// over 24 hours.
	MinDailyRows int
	TopN         int
	LagOptions   preprocess.Options

	Attribution  AttributionFunc
	Correlation  CorrelationFunc
	LoadScorer   func(path string) (scoring.Scorer, error)
	ReloadScorer func(path string) (scoring.Scorer, error)
}

func New(db *gorm.DB, log *zap.Logger, modelPath string, minDailyRows, topN int) *Service {
	return &Service{
		DB:           db,
		Log:          log,
		ModelPath:    modelPath,
		MinDailyRows: minDailyRows,
		TopN:         topN,
		Attribution:  stats.TopAttributions,
		Correlation:  stats.TopCorrelations,
		LoadScorer:   scoring.Load,
		ReloadScorer: scoring.Reload,
	}
}

// DailyResult is a Read or Promote payload.
type DailyResult struct {
	Source       string          `json:"source"`
	InsightDate  string          `json:"insight_date"`
	TopFeatures  models.ScoreMap `json:"top_features"`
	Correlations models.ScoreMap `json:"correlations"`
}

// SummaryResult is a corpus-level summary payload.
type SummaryResult struct {
	TimeRange    string          `json:"time_range"`
	DaysAnalyzed int             `json:"days_analyzed"`
	TopFeatures  models.ScoreMap `json:"top_features"`
	Correlations models.ScoreMap `json:"correlations"`
	CreatedAt    time.Time       `json:"created_at"`
}

// Promote converts one day's unprocessed rows into a cached DailyInsight,
// flags exactly those rows processed, then appends a fresh historical summary
// over all promoted data through that day. The daily write and flag flip
// commit together; the historical append is a second unit, and its failure
// comes back as ErrHistoricalRecompute with the daily result intact.
func (s *Service) Promote(date string) (*DailyResult, error) {
	if err := validateDate(date); err != nil {
		return nil, err
	}

	cache := store.NewInsights(s.DB)
	if _, exists, err := cache.GetDaily(date); err != nil {
		return nil, errors.Mark(err, ErrStore)
	} else if exists {
		return nil, errors.Mark(errors.Newf("insight for %s already exists", date), ErrAlreadyPromoted)
	}

	records := store.NewRecords(s.DB)
	recs, err := records.FetchUnprocessed(date)
	if err != nil {
		return nil, errors.Mark(err, ErrStore)
	}
	if len(recs) == 0 {
		return nil, errors.Mark(errors.Newf("no unprocessed data found for %s", date), ErrNotFound)
	}
	if len(recs) < s.MinDailyRows {
		return nil, errors.Mark(
			errors.Newf("expected %d entries, found %d for %s", s.MinDailyRows, len(recs), date),
			ErrInsufficientCoverage)
	}

	top, corr, _, err := s.computeMaps(recs)
	if err != nil {
		return nil, errors.Mark(err, ErrComputation)
	}

	ids := make([]uint, len(recs))
	for i, r := range recs {
		ids[i] = r.ID
	}
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		daily := &models.DailyInsight{
			InsightDate:  date,
			TopFeatures:  top,
			Correlations: corr,
		}
		if err := store.NewInsights(tx).CreateDaily(daily); err != nil {
			return err
		}
		return store.NewRecords(tx).MarkProcessed(ids)
	})
	if errors.Is(err, store.ErrDuplicateDay) {
		return nil, errors.Mark(err, ErrAlreadyPromoted)
	}
	if err != nil {
		return nil, errors.Mark(err, ErrStore)
	}

	result := &DailyResult{
		Source:       SourceCache,
		InsightDate:  date,
		TopFeatures:  top,
		Correlations: corr,
	}
	s.Log.Info("daily insight promoted",
		zap.String("date", date),
		zap.Int("rows", len(recs)))

	if err := s.recomputeHistorical(date); err != nil {
		s.Log.Error("historical recompute failed", zap.String("date", date), zap.Error(err))
		return result, errors.Mark(err, ErrHistoricalRecompute)
	}
	return result, nil
}

// Read is the tiered read path: cached insight first, else an unpersisted
// partial result over the day's unprocessed rows, else not found. A cache hit
// never touches the pipeline or engines.
func (s *Service) Read(date string) (*DailyResult, error) {
	if err := validateDate(date); err != nil {
		return nil, err
	}

	cached, exists, err := store.NewInsights(s.DB).GetDaily(date)
	if err != nil {
		return nil, errors.Mark(err, ErrStore)
	}
	if exists {
		return &DailyResult{
			Source:       SourceCache,
			InsightDate:  cached.InsightDate,
			TopFeatures:  cached.TopFeatures,
			Correlations: cached.Correlations,
		}, nil
	}

	recs, err := store.NewRecords(s.DB).FetchUnprocessed(date)
	if err != nil {
		return nil, errors.Mark(err, ErrStore)
	}
	if len(recs) == 0 {
		return nil, errors.Mark(errors.Newf("no data found for %s", date), ErrNotFound)
	}

	top, corr, _, err := s.computeMaps(recs)
	if err != nil {
		return nil, errors.Mark(err, ErrComputation)
	}
	return &DailyResult{
		Source:       SourceComputedPartial,
		InsightDate:  date,
		TopFeatures:  top,
		Correlations: corr,
	}, nil
}

// Summarize returns the most recently created historical summary.
func (s *Service) Summarize() (*SummaryResult, error) {
	ins, exists, err := store.NewInsights(s.DB).LatestHistorical()
	if err != nil {
		return nil, errors.Mark(err, ErrStore)
	}
	if !exists {
		return nil, errors.Mark(errors.New("no historical insights found"), ErrNotFound)
	}
	return &SummaryResult{
		TimeRange:    ins.TimeRange,
		DaysAnalyzed: ins.DaysAnalyzed,
		TopFeatures:  ins.TopFeatures,
		Correlations: ins.Correlations,
		CreatedAt:    ins.CreatedAt,
	}, nil
}

// RecomputeAll rebuilds the corpus summary over every raw row regardless of
// date or processed flag and appends it to the historical log. Daily insights
// and flags are untouched; used for full-corpus bootstrap.
func (s *Service) RecomputeAll() (*SummaryResult, error) {
	recs, err := store.NewRecords(s.DB).FetchAll()
	if err != nil {
		return nil, errors.Mark(err, ErrStore)
	}
	if len(recs) == 0 {
		return nil, errors.Mark(errors.New("no data available for historical insights"), ErrNotFound)
	}

	top, corr, proc, err := s.computeMaps(recs)
	if err != nil {
		return nil, errors.Mark(err, ErrComputation)
	}
	timeRange, days := dayRange(proc.Index())

	ins := &models.HistoricalInsight{
		TimeRange:    timeRange,
		DaysAnalyzed: days,
		TopFeatures:  top,
		Correlations: corr,
	}
	if err := store.NewInsights(s.DB).AppendHistorical(ins); err != nil {
		return nil, errors.Mark(err, ErrStore)
	}
	s.Log.Info("historical insights recomputed",
		zap.String("time_range", timeRange),
		zap.Int("days_analyzed", days))
	return &SummaryResult{
		TimeRange:    timeRange,
		DaysAnalyzed: days,
		TopFeatures:  top,
		Correlations: corr,
		CreatedAt:    ins.CreatedAt,
	}, nil
}

// recomputeHistorical summarizes all promoted rows through date. It runs after
// the daily transaction commits, so it observes the fresh flag flips.
func (s *Service) recomputeHistorical(date string) error {
	recs, err := store.NewRecords(s.DB).FetchProcessedThrough(date)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		return errors.New("no processed data available for historical insights")
	}

	top, corr, proc, err := s.computeMaps(recs)
	if err != nil {
		return err
	}
	timeRange, days := dayRange(proc.Index())
	return store.NewInsights(s.DB).AppendHistorical(&models.HistoricalInsight{
		TimeRange:    timeRange,
		DaysAnalyzed: days,
		TopFeatures:  top,
		Correlations: corr,
	})
}

// computeMaps runs the preprocessing pipeline and both engines over the rows.
// On a model/schema mismatch it reloads the model once and retries.
func (s *Service) computeMaps(recs []models.SensorRecord) (models.ScoreMap, models.ScoreMap, *frame.Frame, error) {
	scorer, err := s.LoadScorer(s.ModelPath)
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "load scoring model")
	}

	top, proc, err := s.attribute(recs, scorer)
	if errors.Is(err, scoring.ErrSchemaMismatch) {
		scorer, err = s.ReloadScorer(s.ModelPath)
		if err != nil {
			return nil, nil, nil, errors.Wrap(err, "reload scoring model")
		}
		top, proc, err = s.attribute(recs, scorer)
	}
	if err != nil {
		return nil, nil, nil, err
	}

	corr := s.Correlation(proc, preprocess.Target, s.TopN)
	return top, corr, proc, nil
}

func (s *Service) attribute(recs []models.SensorRecord, scorer scoring.Scorer) (models.ScoreMap, *frame.Frame, error) {
	proc := preprocess.Run(recordFrame(recs), scorer.FeatureNames(), s.LagOptions)
	if proc.Len() == 0 {
		return nil, nil, errors.New("no rows survive preprocessing")
	}
	x, err := proc.Select(scorer.FeatureNames())
	if err != nil {
		return nil, nil, err
	}
	top, err := s.Attribution(x, scorer, s.TopN)
	if err != nil {
		return nil, nil, err
	}
	return top, proc, nil
}

func validateDate(date string) error {
	if date == "" {
		return errors.Mark(errors.New("missing 'date' parameter, provide date: YYYY-MM-DD"), ErrValidation)
	}
	if _, err := time.Parse(time.DateOnly, date); err != nil {
		return errors.Mark(errors.Newf("malformed date %q, provide date: YYYY-MM-DD", date), ErrValidation)
	}
	return nil
}
