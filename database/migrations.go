package database

import (
	"fmt"

	"gorm.io/gorm"
)

// OptimizeIndexes creates the composite indexes used by the engine's range
// loads and the API's date-range queries.
func OptimizeIndexes(db *gorm.DB) error {
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_price_bars_instrument_date
		ON price_bars (instrument, trade_date DESC)
	`).Error; err != nil {
		return fmt.Errorf("failed to create price bars index: %w", err)
	}

	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_news_events_instrument_published
		ON news_events (instrument, published_at DESC)
	`).Error; err != nil {
		return fmt.Errorf("failed to create news events index: %w", err)
	}

	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_risk_scores_instrument_date
		ON risk_scores (instrument, score_date DESC)
	`).Error; err != nil {
		return fmt.Errorf("failed to create risk scores index: %w", err)
	}

	// Latest cross-section lookups scan by date alone.
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_risk_scores_date
		ON risk_scores (score_date DESC)
	`).Error; err != nil {
		return fmt.Errorf("failed to create risk scores date index: %w", err)
	}

	return nil
}
