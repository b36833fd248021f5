package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/quantpulse/riskscore/config"
	"github.com/rs/zerolog"
)

// Marketaux fetches recent headline-level news from the Marketaux /news/all
// endpoint.
type Marketaux struct {
	baseURL string
	apiKey  string
	limit   int
	fetcher httpFetcher
	log     zerolog.Logger
}

func NewMarketaux(cfg config.Provider, limit int, log zerolog.Logger) *Marketaux {
	return &Marketaux{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		limit:   limit,
		fetcher: newHTTPFetcher(cfg.RequestsPerMinute, cfg.Retries, cfg.Backoff),
		log:     log.With().Str("component", "marketaux").Logger(),
	}
}

type marketauxArticle struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Source      string `json:"source"`
	PublishedAt string `json:"published_at"`
}

func (m *Marketaux) RecentNews(ctx context.Context, symbol string) ([]NewsItem, error) {
	q := url.Values{}
	q.Set("symbols", symbol)
	q.Set("filter_entities", "true")
	q.Set("language", "en")
	q.Set("api_token", m.apiKey)
	q.Set("limit", strconv.Itoa(m.limit))

	body, err := m.fetcher.getWithBackoff(ctx, m.baseURL+"?"+q.Encode(), func(status int, _ []byte) bool {
		return status != 200
	})
	if err != nil {
		return nil, fmt.Errorf("marketaux %s: %w", symbol, err)
	}

	var payload struct {
		Data []json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("marketaux %s: decode: %w", symbol, err)
	}

	items := make([]NewsItem, 0, len(payload.Data))
	for _, raw := range payload.Data {
		var a marketauxArticle
		if err := json.Unmarshal(raw, &a); err != nil {
			return nil, fmt.Errorf("marketaux %s: decode article: %w", symbol, err)
		}
		if a.Title == "" {
			continue
		}
		published, err := time.Parse(time.RFC3339, a.PublishedAt)
		if err != nil {
			m.log.Warn().Str("symbol", symbol).Str("published_at", a.PublishedAt).Msg("skipping article with bad timestamp")
			continue
		}
		items = append(items, NewsItem{
			PublishedAt: published.UTC(),
			Headline:    a.Title,
			URL:         a.URL,
			Source:      a.Source,
			Raw:         string(raw),
		})
	}

	m.log.Debug().Str("symbol", symbol).Int("items", len(items)).Msg("fetched news")
	return items, nil
}

var _ NewsProvider = (*Marketaux)(nil)
