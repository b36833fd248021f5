package engine

import (
	"math"
	"sort"
	"time"

	"github.com/quantpulse/riskscore/models"
	"gonum.org/v1/gonum/stat"
)

// featureRow is one (instrument, date) pair after the feature join, before
// normalization.
type featureRow struct {
	Instrument string
	Date       time.Time
	Vol        float64
	VolValid   bool
	Sent       float64
}

// joinFeatures joins the sentiment trend onto the volatility series keyed by
// (instrument, date). Trading dates define the row set: sentiment on
// non-trading days never becomes a score, and trading days without news get
// the neutral 0.0 fill here, not earlier.
func joinFeatures(vol map[string][]volPoint, sent map[string]map[time.Time]float64) []featureRow {
	var rows []featureRow
	for instrument, points := range vol {
		trend := sent[instrument]
		for _, p := range points {
			r := featureRow{
				Instrument: instrument,
				Date:       p.Date,
				Vol:        p.Vol,
				VolValid:   p.Valid,
			}
			if v, ok := trend[p.Date]; ok {
				r.Sent = v
			}
			rows = append(rows, r)
		}
	}
	return rows
}

// normalize groups the joined rows by date and standardizes both signals
// across each date's cross-section. Instruments still inside their warm-up
// window borrow the date's median volatility for z-scoring only; their stored
// vol_20d stays NULL. Dates where no instrument has a finite volatility are
// skipped entirely rather than scored against a guessed distribution.
// Returns rows ordered by (date, instrument) and the skipped-date count.
func (e *Engine) normalize(rows []featureRow) ([]models.RiskScore, int) {
	byDate := make(map[time.Time][]featureRow)
	for _, r := range rows {
		byDate[r.Date] = append(byDate[r.Date], r)
	}

	dates := make([]time.Time, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	var out []models.RiskScore
	skipped := 0
	for _, d := range dates {
		group := byDate[d]
		sort.Slice(group, func(i, j int) bool { return group[i].Instrument < group[j].Instrument })

		var finite []float64
		for _, r := range group {
			if r.VolValid {
				finite = append(finite, r.Vol)
			}
		}
		if len(finite) == 0 {
			skipped++
			e.log.Debug().Time("date", d).Int("instruments", len(group)).
				Msg("no finite volatility in cross-section, date skipped")
			continue
		}
		med := median(finite)

		volFill := make([]float64, len(group))
		sents := make([]float64, len(group))
		for i, r := range group {
			if r.VolValid {
				volFill[i] = r.Vol
			} else {
				volFill[i] = med
			}
			sents[i] = r.Sent
		}

		volZ := zscores(volFill)
		sentZ := zscores(sents)

		for i, r := range group {
			var vol20 *float64
			if r.VolValid {
				v := r.Vol
				vol20 = &v
			}
			out = append(out, models.RiskScore{
				Instrument: r.Instrument,
				ScoreDate:  d,
				Vol20d:     vol20,
				NewsSent7d: r.Sent,
				VolZ:       volZ[i],
				SentZ:      sentZ[i],
				TotalScore: composeScore(volZ[i], sentZ[i], e.params),
			})
		}
	}
	return out, skipped
}

// zscores standardizes against the group's own mean and population standard
// deviation. A zero or undefined deviation degrades to plain demeaning so a
// degenerate cross-section yields zeros instead of dividing by zero.
func zscores(xs []float64) []float64 {
	mu := stat.Mean(xs, nil)
	sd := stat.PopStdDev(xs, nil)
	zs := make([]float64, len(xs))
	for i, x := range xs {
		if sd == 0 || math.IsNaN(sd) {
			zs[i] = x - mu
		} else {
			zs[i] = (x - mu) / sd
		}
	}
	return zs
}

// median with linear interpolation between the two middle values, matching
// the fill policy's definition for even-sized groups.
func median(xs []float64) float64 {
	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
