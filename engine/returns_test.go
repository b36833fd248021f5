package engine

import (
	"math/rand"
	"testing"
	"time"

	"github.com/quantpulse/riskscore/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(n int) time.Time {
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

// barsRising builds n consecutive daily bars whose close grows by growth each
// day.
func barsRising(instrument string, n int, growth float64) []models.PriceBar {
	bars := make([]models.PriceBar, 0, n)
	close := 100.0
	for i := 0; i < n; i++ {
		bars = append(bars, models.PriceBar{
			Instrument: instrument,
			TradeDate:  day(i),
			Open:       close,
			High:       close * 1.01,
			Low:        close * 0.99,
			Close:      close,
			Volume:     1000,
		})
		close *= 1 + growth
	}
	return bars
}

func TestRollingVolatilityWarmup(t *testing.T) {
	points := rollingVolatility(barsRising("X", 25, 0.01), 20)
	require.Len(t, points, 25)

	for i := 0; i < 20; i++ {
		assert.False(t, points[i].Valid, "point %d should be inside the warm-up window", i)
	}
	for i := 20; i < 25; i++ {
		require.True(t, points[i].Valid, "point %d should carry volatility", i)
		// Constant 1% returns: the sample std is numerically ~0.
		assert.GreaterOrEqual(t, points[i].Vol, 0.0)
		assert.Less(t, points[i].Vol, 1e-9)
	}
	assert.Equal(t, day(24), points[24].Date)
}

func TestRollingVolatilityTooFewBars(t *testing.T) {
	points := rollingVolatility(barsRising("Y", 10, 0.01), 20)
	require.Len(t, points, 10)
	for _, p := range points {
		assert.False(t, p.Valid)
	}
}

func TestRollingVolatilityUnsortedInput(t *testing.T) {
	bars := barsRising("X", 30, 0.02)
	shuffled := make([]models.PriceBar, len(bars))
	copy(shuffled, bars)
	rand.New(rand.NewSource(1)).Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	assert.Equal(t, rollingVolatility(bars, 20), rollingVolatility(shuffled, 20))
}

func TestRollingVolatilityCalendarGaps(t *testing.T) {
	// Returns are against the previous available bar, not the previous
	// calendar day.
	bars := []models.PriceBar{
		{Instrument: "X", TradeDate: day(0), Close: 100},
		{Instrument: "X", TradeDate: day(1), Close: 110},
		{Instrument: "X", TradeDate: day(5), Close: 99},
	}
	points := rollingVolatility(bars, 2)
	require.Len(t, points, 3)

	assert.False(t, points[0].Valid)
	assert.False(t, points[1].Valid)
	require.True(t, points[2].Valid)
	// Returns are +10% then -10%: sample std of {0.1, -0.1}.
	assert.InDelta(t, 0.1414213562, points[2].Vol, 1e-9)
	assert.Equal(t, day(5), points[2].Date)
}
