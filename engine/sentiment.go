package engine

import (
	"time"

	"github.com/quantpulse/riskscore/models"
)

// sentimentTrend collapses an instrument's news into one mean sentiment per
// calendar day, rebuilds the continuous daily calendar between the first and
// last news date, and computes the trailing windowDays mean with a minimum of
// one observation. Days whose window holds no news at all produce no entry;
// days with news contribute their daily mean to every window covering them.
// Missing days are excluded from both the sum and the count, never zeroed.
func sentimentTrend(events []models.NewsEvent, windowDays int) map[time.Time]float64 {
	if len(events) == 0 {
		return nil
	}

	type acc struct {
		sum float64
		n   int
	}
	daily := make(map[time.Time]*acc)
	var first, last time.Time
	for _, ev := range events {
		d := models.Day(ev.PublishedAt.UTC())
		a, ok := daily[d]
		if !ok {
			a = &acc{}
			daily[d] = a
		}
		a.sum += ev.Sentiment
		a.n++
		if first.IsZero() || d.Before(first) {
			first = d
		}
		if last.IsZero() || d.After(last) {
			last = d
		}
	}

	trend := make(map[time.Time]float64)
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		var sum float64
		n := 0
		for back := 0; back < windowDays; back++ {
			if a, ok := daily[d.AddDate(0, 0, -back)]; ok {
				sum += a.sum / float64(a.n)
				n++
			}
		}
		if n > 0 {
			trend[d] = sum / float64(n)
		}
	}
	return trend
}
