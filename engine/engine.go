package engine

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/quantpulse/riskscore/models"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// ErrNoPriceData is returned when the universe has no persisted bars at all.
// Nothing is written in that case.
var ErrNoPriceData = errors.New("no price data for universe")

// Params holds the window sizes and composition weights. They are injected at
// construction so tests can vary them without process-wide state.
type Params struct {
	VolWindow      int
	SentWindowDays int
	VolWeight      float64
	SentWeight     float64
}

func DefaultParams() Params {
	return Params{VolWindow: 20, SentWindowDays: 7, VolWeight: 0.6, SentWeight: 0.4}
}

// Source is the read side of the persistence boundary.
type Source interface {
	LoadPriceBars(ctx context.Context, universe []string) ([]models.PriceBar, error)
	LoadNewsEvents(ctx context.Context, universe []string) ([]models.NewsEvent, error)
}

// Sink reconciles computed rows into the persisted series. Implementations
// must be idempotent per (instrument, score_date) key.
type Sink interface {
	UpsertRiskScore(ctx context.Context, row *models.RiskScore) (created bool, err error)
}

// Summary reports what one batch pass did.
type Summary struct {
	Instruments  int
	Rows         int
	Created      int
	Updated      int
	SkippedDates int
}

// Engine is the batch feature and scoring pipeline: per-instrument rolling
// features, a cross-sectional join keyed by date, and a reconciling write.
type Engine struct {
	params Params
	src    Source
	sink   Sink
	log    zerolog.Logger
}

func New(params Params, src Source, sink Sink, log zerolog.Logger) *Engine {
	return &Engine{
		params: params,
		src:    src,
		sink:   sink,
		log:    log.With().Str("component", "engine").Logger(),
	}
}

// Run executes one full batch pass over the universe and persists the scored
// rows. Re-running over the same inputs converges to the same stored state.
func (e *Engine) Run(ctx context.Context, universe []string) (Summary, error) {
	var sum Summary

	bars, err := e.src.LoadPriceBars(ctx, universe)
	if err != nil {
		return sum, fmt.Errorf("load price bars: %w", err)
	}
	if len(bars) == 0 {
		return sum, ErrNoPriceData
	}

	events, err := e.src.LoadNewsEvents(ctx, universe)
	if err != nil {
		return sum, fmt.Errorf("load news events: %w", err)
	}

	vol, sent := e.computeFeatures(bars, events)
	sum.Instruments = len(vol)

	scored, skipped := e.normalize(joinFeatures(vol, sent))
	sum.SkippedDates = skipped

	for i := range scored {
		created, err := e.sink.UpsertRiskScore(ctx, &scored[i])
		if err != nil {
			return sum, fmt.Errorf("persist risk scores: %w", err)
		}
		if created {
			sum.Created++
		} else {
			sum.Updated++
		}
		sum.Rows++
	}

	e.log.Info().
		Int("instruments", sum.Instruments).
		Int("rows", sum.Rows).
		Int("created", sum.Created).
		Int("updated", sum.Updated).
		Int("skipped_dates", sum.SkippedDates).
		Msg("batch pass complete")
	return sum, nil
}

// computeFeatures derives the per-instrument rolling series. Each instrument
// is independent until the cross-sectional join, so the fan-out cannot change
// results.
func (e *Engine) computeFeatures(bars []models.PriceBar, events []models.NewsEvent) (map[string][]volPoint, map[string]map[time.Time]float64) {
	barsBy := make(map[string][]models.PriceBar)
	for _, b := range bars {
		barsBy[b.Instrument] = append(barsBy[b.Instrument], b)
	}
	eventsBy := make(map[string][]models.NewsEvent)
	for _, ev := range events {
		eventsBy[ev.Instrument] = append(eventsBy[ev.Instrument], ev)
	}

	var mu sync.Mutex
	vol := make(map[string][]volPoint, len(barsBy))
	sent := make(map[string]map[time.Time]float64, len(eventsBy))

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())

	for instrument, ib := range barsBy {
		instrument, ib := instrument, ib
		g.Go(func() error {
			pts := rollingVolatility(ib, e.params.VolWindow)
			mu.Lock()
			vol[instrument] = pts
			mu.Unlock()
			return nil
		})
	}
	for instrument, ev := range eventsBy {
		instrument, ev := instrument, ev
		g.Go(func() error {
			trend := sentimentTrend(ev, e.params.SentWindowDays)
			mu.Lock()
			sent[instrument] = trend
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return vol, sent
}
