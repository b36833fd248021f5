package ingest

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/quantpulse/riskscore/models"
	"github.com/quantpulse/riskscore/provider"
	"github.com/quantpulse/riskscore/sentiment"
	"github.com/rs/zerolog"
)

// BarWriter and EventWriter are the slices of the store the processor needs.
type BarWriter interface {
	InsertPriceBars(ctx context.Context, bars []models.PriceBar) (int64, error)
}

type EventWriter interface {
	InsertNewsEvents(ctx context.Context, events []models.NewsEvent) (int64, error)
}

// Processor runs the provider ETL for a universe: symbols fan out over a
// bounded worker pool, each fetch is converted to model rows and
// batch-inserted with duplicate-skip semantics. Provider failures abort the
// run; retrying is the providers' job, not ours.
type Processor struct {
	prices  provider.PriceProvider
	news    provider.NewsProvider
	scorer  sentiment.Scorer
	workers int
	log     zerolog.Logger

	insertedBars   int64
	insertedEvents int64
}

func NewProcessor(prices provider.PriceProvider, news provider.NewsProvider, scorer sentiment.Scorer, workers int, log zerolog.Logger) *Processor {
	if workers <= 0 {
		workers = 4
	}
	return &Processor{
		prices:  prices,
		news:    news,
		scorer:  scorer,
		workers: workers,
		log:     log.With().Str("component", "ingest").Logger(),
	}
}

// IngestPrices fetches and persists daily bars for every symbol in the
// universe. Returns the number of newly inserted bars.
func (p *Processor) IngestPrices(ctx context.Context, universe []string, w BarWriter) (int64, error) {
	atomic.StoreInt64(&p.insertedBars, 0)

	err := p.forEachSymbol(ctx, universe, func(ctx context.Context, symbol string) error {
		bars, err := p.prices.DailyBars(ctx, symbol)
		if err != nil {
			return err
		}
		rows := make([]models.PriceBar, 0, len(bars))
		for _, b := range bars {
			rows = append(rows, models.PriceBar{
				Instrument: symbol,
				TradeDate:  models.Day(b.Date),
				Open:       b.Open,
				High:       b.High,
				Low:        b.Low,
				Close:      b.Close,
				Volume:     b.Volume,
			})
		}
		n, err := w.InsertPriceBars(ctx, rows)
		if err != nil {
			return err
		}
		atomic.AddInt64(&p.insertedBars, n)
		p.log.Info().Str("symbol", symbol).Int64("inserted", n).Int("fetched", len(rows)).Msg("price bars ingested")
		return nil
	})

	return atomic.LoadInt64(&p.insertedBars), err
}

// IngestNews fetches recent headlines for every symbol, scores each headline
// and persists the events. Returns the number of newly inserted events.
func (p *Processor) IngestNews(ctx context.Context, universe []string, w EventWriter) (int64, error) {
	atomic.StoreInt64(&p.insertedEvents, 0)

	err := p.forEachSymbol(ctx, universe, func(ctx context.Context, symbol string) error {
		items, err := p.news.RecentNews(ctx, symbol)
		if err != nil {
			return err
		}
		rows := make([]models.NewsEvent, 0, len(items))
		for _, it := range items {
			rows = append(rows, models.NewsEvent{
				Instrument:  symbol,
				PublishedAt: it.PublishedAt,
				Headline:    it.Headline,
				SourceURL:   it.URL,
				SourceName:  it.Source,
				Sentiment:   p.scorer.Score(it.Headline),
				RawPayload:  it.Raw,
			})
		}
		n, err := w.InsertNewsEvents(ctx, rows)
		if err != nil {
			return err
		}
		atomic.AddInt64(&p.insertedEvents, n)
		p.log.Info().Str("symbol", symbol).Int64("inserted", n).Int("fetched", len(rows)).Msg("news ingested")
		return nil
	})

	return atomic.LoadInt64(&p.insertedEvents), err
}

// forEachSymbol fans the universe out over the worker pool. The first error
// cancels the remaining work.
func (p *Processor) forEachSymbol(ctx context.Context, universe []string, fn func(ctx context.Context, symbol string) error) error {
	start := time.Now()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	symbolChan := make(chan string, len(universe))
	for _, s := range universe {
		symbolChan <- s
	}
	close(symbolChan)

	errChan := make(chan error, p.workers)
	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for symbol := range symbolChan {
				if ctx.Err() != nil {
					return
				}
				if err := fn(ctx, symbol); err != nil {
					select {
					case errChan <- fmt.Errorf("%s: %w", symbol, err):
					default:
					}
					cancel()
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errChan)

	if err := <-errChan; err != nil {
		return err
	}
	p.log.Info().Int("symbols", len(universe)).Dur("took", time.Since(start)).Msg("universe processed")
	return nil
}
