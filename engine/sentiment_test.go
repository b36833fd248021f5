package engine

import (
	"testing"
	"time"

	"github.com/quantpulse/riskscore/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newsAt(instrument string, d time.Time, headline string, sentiment float64) models.NewsEvent {
	return models.NewsEvent{
		Instrument:  instrument,
		PublishedAt: d,
		Headline:    headline,
		Sentiment:   sentiment,
	}
}

func TestSentimentTrendEmptyInput(t *testing.T) {
	assert.Empty(t, sentimentTrend(nil, 7))
	assert.Empty(t, sentimentTrend([]models.NewsEvent{}, 7))
}

func TestSentimentTrendSameDayAveraging(t *testing.T) {
	events := []models.NewsEvent{
		newsAt("X", day(0).Add(9*time.Hour), "upgrade", 0.5),
		newsAt("X", day(0).Add(16*time.Hour), "lawsuit", -0.1),
	}
	trend := sentimentTrend(events, 7)
	require.Len(t, trend, 1)
	assert.InDelta(t, 0.2, trend[day(0)], 1e-12)
}

func TestSentimentTrendContinuousCalendar(t *testing.T) {
	// News on day 0 and day 10 only. The trailing 7-day window keeps the
	// day-0 value alive through day 6, goes dark for days 7-9, and picks up
	// the day-10 value on day 10.
	events := []models.NewsEvent{
		newsAt("X", day(0), "record quarter", 1.0),
		newsAt("X", day(10), "flat outlook", 0.0),
	}
	trend := sentimentTrend(events, 7)

	for i := 0; i <= 6; i++ {
		require.Contains(t, trend, day(i), "day %d", i)
		assert.InDelta(t, 1.0, trend[day(i)], 1e-12)
	}
	for i := 7; i <= 9; i++ {
		assert.NotContains(t, trend, day(i), "day %d has no news in its window", i)
	}
	require.Contains(t, trend, day(10))
	assert.InDelta(t, 0.0, trend[day(10)], 1e-12)
	assert.Len(t, trend, 8)
}

func TestSentimentTrendWindowMean(t *testing.T) {
	// Observed days contribute their daily mean; missing days are excluded
	// from the count, not zeroed.
	events := []models.NewsEvent{
		newsAt("X", day(0), "a", 0.6),
		newsAt("X", day(3), "b", 0.0),
	}
	trend := sentimentTrend(events, 7)

	assert.InDelta(t, 0.6, trend[day(0)], 1e-12)
	assert.InDelta(t, 0.3, trend[day(3)], 1e-12) // mean of {0.6, 0.0}, not /7
}

func TestSentimentTrendDuplicateEventsDoNotSkew(t *testing.T) {
	// Identical duplicates from a sloppy feed shift the daily mean only if
	// their values differ; true duplicates leave it unchanged.
	events := []models.NewsEvent{
		newsAt("X", day(0), "same story", 0.4),
		newsAt("X", day(0), "same story", 0.4),
	}
	trend := sentimentTrend(events, 7)
	assert.InDelta(t, 0.4, trend[day(0)], 1e-12)
}
