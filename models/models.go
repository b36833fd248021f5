package models

import (
	"time"
)

// PriceBar is one daily OHLCV bar for an instrument. Bars are written once by
// ingestion and never mutated afterwards.
type PriceBar struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Instrument string    `gorm:"size:20;index:idx_price_instrument;uniqueIndex:uidx_price_instrument_date" json:"instrument"`
	TradeDate  time.Time `gorm:"uniqueIndex:uidx_price_instrument_date" json:"trade_date"`
	Open       float64   `json:"open"`
	High       float64   `json:"high"`
	Low        float64   `json:"low"`
	Close      float64   `json:"close"`
	Volume     float64   `json:"volume"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewsEvent is one sentiment-tagged headline. The unique index makes repeated
// ingestion of the same (instrument, published_at, headline) a no-op.
type NewsEvent struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Instrument  string    `gorm:"size:20;index:idx_news_instrument;uniqueIndex:uidx_news_event" json:"instrument"`
	PublishedAt time.Time `gorm:"uniqueIndex:uidx_news_event" json:"published_at"`
	Headline    string    `gorm:"size:512;uniqueIndex:uidx_news_event" json:"headline"`
	SourceURL   string    `gorm:"type:text" json:"source_url"`
	SourceName  string    `gorm:"size:100" json:"source_name"`
	Sentiment   float64   `json:"sentiment"`
	RawPayload  string    `gorm:"type:text" json:"raw_payload"`
	CreatedAt   time.Time `json:"created_at"`
}

// RiskScore is one scored (instrument, date) row of the output series.
// Vol20d is nil when the instrument had fewer than the volatility window's
// worth of returns on that date; the z-scores are still populated via the
// cross-sectional median fill.
type RiskScore struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Instrument string    `gorm:"size:20;index:idx_risk_instrument;uniqueIndex:uidx_risk_instrument_date" json:"instrument"`
	ScoreDate  time.Time `gorm:"uniqueIndex:uidx_risk_instrument_date" json:"score_date"`
	Vol20d     *float64  `json:"vol_20d"`
	NewsSent7d float64   `json:"news_sent_7d"`
	VolZ       float64   `json:"vol_z"`
	SentZ      float64   `json:"sent_z"`
	TotalScore float64   `json:"total_score"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Day truncates t to midnight UTC, the canonical form for all date keys.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
