package ingest

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/quantpulse/riskscore/models"
	"github.com/quantpulse/riskscore/provider"
	"github.com/quantpulse/riskscore/sentiment"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPrices struct {
	bars map[string][]provider.Bar
	err  error
}

func (s *stubPrices) DailyBars(_ context.Context, symbol string) ([]provider.Bar, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.bars[symbol], nil
}

type stubNews struct {
	items map[string][]provider.NewsItem
}

func (s *stubNews) RecentNews(_ context.Context, symbol string) ([]provider.NewsItem, error) {
	return s.items[symbol], nil
}

// recorder collects inserted rows and reports them all as new.
type recorder struct {
	mu     sync.Mutex
	bars   []models.PriceBar
	events []models.NewsEvent
}

func (r *recorder) InsertPriceBars(_ context.Context, bars []models.PriceBar) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bars = append(r.bars, bars...)
	return int64(len(bars)), nil
}

func (r *recorder) InsertNewsEvents(_ context.Context, events []models.NewsEvent) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, events...)
	return int64(len(events)), nil
}

func TestIngestPrices(t *testing.T) {
	d := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	prices := &stubPrices{bars: map[string][]provider.Bar{
		"AAPL": {{Date: d, Open: 1, High: 2, Low: 0.5, Close: 1.5, Volume: 100}},
		"MSFT": {{Date: d, Close: 410}, {Date: d.AddDate(0, 0, 1), Close: 415}},
	}}
	rec := &recorder{}
	p := NewProcessor(prices, nil, sentiment.Neutral{}, 2, zerolog.Nop())

	n, err := p.IngestPrices(context.Background(), []string{"AAPL", "MSFT"}, rec)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.Len(t, rec.bars, 3)

	for _, b := range rec.bars {
		assert.Equal(t, b.TradeDate, models.Day(b.TradeDate), "trade dates must be normalized to midnight UTC")
	}
}

func TestIngestPricesProviderFailureAborts(t *testing.T) {
	boom := errors.New("upstream down")
	p := NewProcessor(&stubPrices{err: boom}, nil, sentiment.Neutral{}, 2, zerolog.Nop())

	_, err := p.IngestPrices(context.Background(), []string{"AAPL", "MSFT"}, &recorder{})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestIngestNewsScoresHeadlines(t *testing.T) {
	d := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	news := &stubNews{items: map[string][]provider.NewsItem{
		"AAPL": {
			{PublishedAt: d, Headline: "Apple beats estimates on record growth", URL: "u", Source: "s", Raw: "{}"},
			{PublishedAt: d, Headline: "Supplier lawsuit filed", URL: "u2", Source: "s", Raw: "{}"},
		},
	}}
	rec := &recorder{}
	p := NewProcessor(nil, news, sentiment.NewLexiconScorer(), 1, zerolog.Nop())

	n, err := p.IngestNews(context.Background(), []string{"AAPL"}, rec)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	require.Len(t, rec.events, 2)

	byHeadline := map[string]models.NewsEvent{}
	for _, ev := range rec.events {
		byHeadline[ev.Headline] = ev
	}
	assert.Greater(t, byHeadline["Apple beats estimates on record growth"].Sentiment, 0.0)
	assert.Less(t, byHeadline["Supplier lawsuit filed"].Sentiment, 0.0)
}

func TestIngestEmptyUniverse(t *testing.T) {
	p := NewProcessor(&stubPrices{}, &stubNews{}, sentiment.Neutral{}, 4, zerolog.Nop())
	n, err := p.IngestPrices(context.Background(), nil, &recorder{})
	require.NoError(t, err)
	assert.Zero(t, n)
}
