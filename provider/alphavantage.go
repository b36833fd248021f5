package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/quantpulse/riskscore/config"
	"github.com/rs/zerolog"
)

// AlphaVantage fetches compact daily time series from the Alpha Vantage
// TIME_SERIES_DAILY endpoint.
type AlphaVantage struct {
	baseURL string
	apiKey  string
	fetcher httpFetcher
	log     zerolog.Logger
}

func NewAlphaVantage(cfg config.Provider, log zerolog.Logger) *AlphaVantage {
	return &AlphaVantage{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		fetcher: newHTTPFetcher(cfg.RequestsPerMinute, cfg.Retries, cfg.Backoff),
		log:     log.With().Str("component", "alphavantage").Logger(),
	}
}

func (a *AlphaVantage) DailyBars(ctx context.Context, symbol string) ([]Bar, error) {
	q := url.Values{}
	q.Set("function", "TIME_SERIES_DAILY")
	q.Set("symbol", symbol)
	q.Set("outputsize", "compact")
	q.Set("apikey", a.apiKey)

	body, err := a.fetcher.getWithBackoff(ctx, a.baseURL+"?"+q.Encode(), func(status int, body []byte) bool {
		// A "Note" body is the free-tier rate limiter talking.
		return status != 200 || bytes.Contains(body, []byte(`"Note"`))
	})
	if err != nil {
		return nil, fmt.Errorf("alphavantage %s: %w", symbol, err)
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("alphavantage %s: decode: %w", symbol, err)
	}
	for _, k := range []string{"Error Message", "Information"} {
		if msg, ok := payload[k]; ok {
			return nil, fmt.Errorf("alphavantage %s: %s", symbol, bytes.Trim(msg, `"`))
		}
	}

	// The series key differs between DAILY and DAILY_ADJUSTED payloads.
	var seriesKey string
	for k := range payload {
		if strings.Contains(k, "Time Series") {
			seriesKey = k
			break
		}
	}
	if seriesKey == "" {
		return nil, fmt.Errorf("alphavantage %s: no time series in response", symbol)
	}

	var series map[string]map[string]string
	if err := json.Unmarshal(payload[seriesKey], &series); err != nil {
		return nil, fmt.Errorf("alphavantage %s: decode series: %w", symbol, err)
	}

	bars := make([]Bar, 0, len(series))
	for date, fields := range series {
		d, err := time.Parse("2006-01-02", date)
		if err != nil {
			return nil, fmt.Errorf("alphavantage %s: bad date %q: %w", symbol, date, err)
		}
		bar := Bar{Date: d}
		// Field names are numbered and the volume index differs between
		// endpoints, so match on the suffix.
		for _, f := range []struct {
			name string
			dst  *float64
		}{
			{"open", &bar.Open},
			{"high", &bar.High},
			{"low", &bar.Low},
			{"close", &bar.Close},
			{"volume", &bar.Volume},
		} {
			v, ok := seriesField(fields, f.name)
			if !ok {
				return nil, fmt.Errorf("alphavantage %s: missing %s for %s", symbol, f.name, date)
			}
			parsed, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, fmt.Errorf("alphavantage %s: bad %s for %s: %w", symbol, f.name, date, err)
			}
			*f.dst = parsed
		}
		bars = append(bars, bar)
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	a.log.Debug().Str("symbol", symbol).Int("bars", len(bars)).Msg("fetched daily bars")
	return bars, nil
}

func seriesField(fields map[string]string, name string) (string, bool) {
	for k, v := range fields {
		if strings.HasSuffix(k, ". "+name) {
			return v, true
		}
	}
	return "", false
}

var _ PriceProvider = (*AlphaVantage)(nil)
