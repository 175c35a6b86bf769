package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/nkoval/coindash/internal/model"
	"github.com/nkoval/coindash/internal/normalize"
)

const (
	binanceKlinesPath = "/api/v3/klines"

	// quoteSuffix forms the traded pair from a plain ticker symbol.
	quoteSuffix = "USDT"
)

// BinanceClient provides access to the public klines endpoint. It is the
// first fallback and requires a plain ticker symbol, not the dashboard's
// composite identifier.
type BinanceClient struct {
	baseURL string
	opts    options
	now     func() time.Time
}

// NewBinance creates the klines fallback client.
func NewBinance(baseURL string, opts ...Option) *BinanceClient {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &BinanceClient{baseURL: baseURL, opts: o, now: time.Now}
}

// FetchOHLCV fetches klines for symbol+USDT over a trailing window. Every
// failure mode returns Unavailable: this provider's failure must never abort
// the fallback chain, so nothing here is allowed to escalate.
func (c *BinanceClient) FetchOHLCV(ctx context.Context, symbol string, rng model.RangeRequest) Outcome {
	if err := c.opts.wait(ctx); err != nil {
		return Unavailable(fmt.Sprintf("rate limiter: %v", err))
	}

	pair := strings.ToUpper(symbol) + quoteSuffix
	startMs, endMs := normalize.TrailingWindow(rng.Days, c.now())

	query := url.Values{}
	query.Set("symbol", pair)
	query.Set("interval", normalize.KlineInterval(rng.Interval))
	query.Set("limit", strconv.Itoa(normalize.KlineLimit(rng.Days, rng.Interval)))
	query.Set("startTime", strconv.FormatInt(startMs, 10))
	query.Set("endTime", strconv.FormatInt(endMs, 10))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+binanceKlinesPath+"?"+query.Encode(), nil)
	if err != nil {
		return Unavailable(fmt.Sprintf("create request: %v", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.opts.httpClient.Do(req)
	if err != nil {
		c.opts.logger.Warn("binance request failed", "pair", pair, "err", err)
		return Unavailable(fmt.Sprintf("unreachable: %v", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Unavailable(fmt.Sprintf("read response: %v", err))
	}

	if resp.StatusCode != http.StatusOK {
		c.opts.logger.Warn("binance non-ok response",
			"pair", pair,
			"status", resp.StatusCode,
		)
		return Unavailable(fmt.Sprintf("status %d", resp.StatusCode))
	}

	series, err := parseKlines(body)
	if err != nil {
		return Unavailable(ReasonMalformed)
	}
	if len(series) == 0 {
		c.opts.logger.Warn("binance returned no klines", "pair", pair)
		return Unavailable(ReasonEmptyBody)
	}

	return Success(series)
}

// parseKlines converts the 12-element kline arrays to canonical candles.
// Open time is element 0 (epoch ms); open/high/low/close are elements 1-4 as
// numeric strings.
func parseKlines(body []byte) (model.CandleSeries, error) {
	var raw [][]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal klines: %w", err)
	}

	series := make(model.CandleSeries, 0, len(raw))
	for _, k := range raw {
		if len(k) < 5 {
			continue
		}

		var openTime int64
		if err := json.Unmarshal(k[0], &openTime); err != nil {
			continue
		}

		fields := make([]float64, 4)
		ok := true
		for i := 1; i <= 4; i++ {
			f, err := klineFloat(k[i])
			if err != nil {
				ok = false
				break
			}
			fields[i-1] = f
		}
		if !ok {
			continue
		}

		series = append(series, model.Candle{
			TimestampMs: normalize.ToMillis(openTime),
			Open:        fields[0],
			High:        fields[1],
			Low:         fields[2],
			Close:       fields[3],
		})
	}

	return series, nil
}

// klineFloat parses a kline field that may be a JSON string or number.
func klineFloat(raw json.RawMessage) (float64, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strconv.ParseFloat(s, 64)
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, err
	}
	return f, nil
}
