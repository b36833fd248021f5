package store

import (
	"context"
	"fmt"
	"time"

	"github.com/quantpulse/riskscore/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store wraps all persistence access for bars, news and risk scores.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// LoadPriceBars reads every persisted bar for the universe. An empty universe
// loads all instruments. Ordering is left to the engine.
func (s *Store) LoadPriceBars(ctx context.Context, universe []string) ([]models.PriceBar, error) {
	var bars []models.PriceBar
	q := s.db.WithContext(ctx)
	if len(universe) > 0 {
		q = q.Where("instrument IN ?", universe)
	}
	if err := q.Find(&bars).Error; err != nil {
		return nil, fmt.Errorf("load price bars: %w", err)
	}
	return bars, nil
}

// LoadNewsEvents reads every persisted news event for the universe.
func (s *Store) LoadNewsEvents(ctx context.Context, universe []string) ([]models.NewsEvent, error) {
	var events []models.NewsEvent
	q := s.db.WithContext(ctx)
	if len(universe) > 0 {
		q = q.Where("instrument IN ?", universe)
	}
	if err := q.Find(&events).Error; err != nil {
		return nil, fmt.Errorf("load news events: %w", err)
	}
	return events, nil
}

// InsertPriceBars bulk-inserts bars, silently skipping rows whose
// (instrument, trade_date) already exists. Returns the number inserted.
func (s *Store) InsertPriceBars(ctx context.Context, bars []models.PriceBar) (int64, error) {
	if len(bars) == 0 {
		return 0, nil
	}
	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(bars, 500)
	if res.Error != nil {
		return 0, fmt.Errorf("insert price bars: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// InsertNewsEvents bulk-inserts events, skipping duplicates of
// (instrument, published_at, headline).
func (s *Store) InsertNewsEvents(ctx context.Context, events []models.NewsEvent) (int64, error) {
	if len(events) == 0 {
		return 0, nil
	}
	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(events, 500)
	if res.Error != nil {
		return 0, fmt.Errorf("insert news events: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// ScoresByInstrument returns the persisted risk series for one instrument,
// optionally bounded by [from, to], ordered by date ascending.
func (s *Store) ScoresByInstrument(ctx context.Context, instrument string, from, to time.Time) ([]models.RiskScore, error) {
	var scores []models.RiskScore
	q := s.db.WithContext(ctx).Where("instrument = ?", instrument)
	if !from.IsZero() {
		q = q.Where("score_date >= ?", from)
	}
	if !to.IsZero() {
		q = q.Where("score_date <= ?", to)
	}
	if err := q.Order("score_date ASC").Find(&scores).Error; err != nil {
		return nil, fmt.Errorf("query scores: %w", err)
	}
	return scores, nil
}

// LatestScores returns the full cross-section for the most recent score date.
func (s *Store) LatestScores(ctx context.Context) ([]models.RiskScore, error) {
	var scores []models.RiskScore
	err := s.db.WithContext(ctx).
		Where("score_date = (SELECT MAX(score_date) FROM risk_scores)").
		Order("instrument ASC").
		Find(&scores).Error
	if err != nil {
		return nil, fmt.Errorf("query latest scores: %w", err)
	}
	return scores, nil
}
