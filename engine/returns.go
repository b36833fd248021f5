package engine

import (
	"sort"
	"time"

	"github.com/quantpulse/riskscore/models"
	"gonum.org/v1/gonum/stat"
)

// volPoint is one (date, realized volatility) observation. Valid is false
// until the instrument has a full window of trailing returns; that state is
// distinct from a volatility of zero.
type volPoint struct {
	Date  time.Time
	Vol   float64
	Valid bool
}

// rollingVolatility sorts an instrument's bars by trade date and computes the
// rolling sample standard deviation (Bessel's correction) of daily returns
// over the trailing window observations. A return is the percentage change of
// close versus the previous available bar, so calendar gaps are tolerated.
// One point is emitted per bar; the first window bars are invalid because the
// first bar has no return and the window needs exactly `window` of them.
func rollingVolatility(bars []models.PriceBar, window int) []volPoint {
	sorted := make([]models.PriceBar, len(bars))
	copy(sorted, bars)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].TradeDate.Before(sorted[j].TradeDate)
	})

	// rets[i] is the return at bar i, defined for i >= 1.
	rets := make([]float64, len(sorted))
	for i := 1; i < len(sorted); i++ {
		rets[i] = sorted[i].Close/sorted[i-1].Close - 1
	}

	points := make([]volPoint, 0, len(sorted))
	for i, b := range sorted {
		p := volPoint{Date: models.Day(b.TradeDate)}
		if i >= window {
			p.Vol = stat.StdDev(rets[i-window+1:i+1], nil)
			p.Valid = true
		}
		points = append(points, p)
	}
	return points
}
