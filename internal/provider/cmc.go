package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/nkoval/coindash/internal/model"
	"github.com/nkoval/coindash/internal/normalize"
)

const (
	cmcOHLCVPath  = "/v2/cryptocurrency/ohlcv/historical"
	cmcQuotesPath = "/v1/cryptocurrency/quotes/latest"

	// cmcKeyHeader carries the provisioned API key on every request.
	cmcKeyHeader = "X-CMC_PRO_API_KEY"
)

// CMCClient provides access to the CoinMarketCap-compatible REST API, the
// authoritative quotes+OHLCV provider.
type CMCClient struct {
	baseURL string
	apiKey  string
	opts    options
	now     func() time.Time
}

// NewCMC creates the primary provider client.
func NewCMC(baseURL, apiKey string, opts ...Option) *CMCClient {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &CMCClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		opts:    o,
		now:     time.Now,
	}
}

// FetchOHLCV fetches historical candles for the resolved coin. The outcome
// classifies 403 as Unavailable (plan restriction, expected on lower tiers)
// and 429 as TransientError; it never returns a Go error.
func (c *CMCClient) FetchOHLCV(ctx context.Context, ref model.CoinRef, rng model.RangeRequest) Outcome {
	if err := c.opts.wait(ctx); err != nil {
		return Transient(fmt.Sprintf("rate limiter: %v", err))
	}

	startSec, endSec := normalize.PrimaryWindow(rng.Days, c.now())

	query := url.Values{}
	name, value := ref.QueryParam()
	query.Set(name, value)
	query.Set("convert", "USD")
	query.Set("time_start", strconv.FormatInt(startSec, 10))
	query.Set("time_end", strconv.FormatInt(endSec, 10))
	query.Set("interval", normalize.PrimaryInterval(rng.Interval))
	query.Set("count", strconv.Itoa(normalize.PrimaryCount(rng.Days)))

	body, err := c.doRequest(ctx, cmcOHLCVPath, query)
	if err != nil {
		apiErr, ok := err.(*APIError)
		if !ok {
			return Transient(fmt.Sprintf("unreachable: %v", err))
		}
		switch apiErr.StatusCode {
		case http.StatusForbidden:
			// Expected on plans without OHLCV entitlement; low severity.
			c.opts.logger.Warn("cmc ohlcv not entitled",
				"coin", ref.RawID,
				"detail", apiErr.Message,
			)
			return Unavailable(ReasonNotEntitled)
		case http.StatusTooManyRequests:
			c.opts.logger.Warn("cmc rate limit exceeded", "coin", ref.RawID)
			return Transient(ReasonRateLimited)
		default:
			return Transient(fmt.Sprintf("status %d", apiErr.StatusCode))
		}
	}

	var resp cmcOHLCVResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return Unavailable(ReasonMalformed)
	}

	series := make(model.CandleSeries, 0, len(resp.Data.Quotes))
	for _, q := range resp.Data.Quotes {
		ts, err := time.Parse(time.RFC3339, q.TimeOpen)
		if err != nil {
			continue
		}
		series = append(series, model.Candle{
			TimestampMs: ts.UnixMilli(),
			Open:        q.Quote.USD.Open,
			High:        q.Quote.USD.High,
			Low:         q.Quote.USD.Low,
			Close:       q.Quote.USD.Close,
		})
	}

	return Success(series)
}

// FetchQuote fetches the latest quote for the resolved coin. Secondaries use
// the returned symbol and name to correct their own identifier schemes; the
// quote poller uses the full price shape.
func (c *CMCClient) FetchQuote(ctx context.Context, ref model.CoinRef) (*model.Quote, error) {
	if err := c.opts.wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	query := url.Values{}
	name, value := ref.QueryParam()
	query.Set(name, value)
	query.Set("convert", "USD")

	body, err := c.doRequest(ctx, cmcQuotesPath, query)
	if err != nil {
		return nil, err
	}

	var resp cmcQuotesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshal quotes response: %w", err)
	}

	for _, coin := range resp.Data {
		usd := coin.Quote.USD
		q := &model.Quote{
			ID:        coin.ID,
			Name:      coin.Name,
			USD:       usd.Price,
			Coin:      coin.Symbol,
			Price:     usd.Price,
			Change24h: usd.PercentChange24h,
			MarketCap: usd.MarketCap,
			Volume24h: usd.Volume24h,
		}
		if ts, err := time.Parse(time.RFC3339, usd.LastUpdated); err == nil {
			q.Timestamp = ts.UnixMilli()
		}
		return q, nil
	}

	return nil, fmt.Errorf("no quote data for %s", ref.RawID)
}

// doRequest performs an authenticated GET and returns the body, or an
// APIError for non-2xx responses.
func (c *CMCClient) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set(cmcKeyHeader, c.apiKey)

	resp, err := c.opts.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := http.StatusText(resp.StatusCode)
		var envelope struct {
			Status cmcStatus `json:"status"`
		}
		if json.Unmarshal(body, &envelope) == nil && envelope.Status.ErrorMessage != "" {
			msg = envelope.Status.ErrorMessage
		}
		return nil, &APIError{Provider: "cmc", StatusCode: resp.StatusCode, Message: msg}
	}

	return body, nil
}
