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

	"github.com/nkoval/coindash/internal/model"
	"github.com/nkoval/coindash/internal/normalize"
)

// geckoIDBySymbol maps common ticker symbols to long-form coin ids. The
// public OHLC provider is keyed by these, not by symbol.
var geckoIDBySymbol = map[string]string{
	"BTC":   "bitcoin",
	"ETH":   "ethereum",
	"BNB":   "binancecoin",
	"SOL":   "solana",
	"XRP":   "ripple",
	"ADA":   "cardano",
	"DOGE":  "dogecoin",
	"DOT":   "polkadot",
	"MATIC": "matic-network",
	"LINK":  "chainlink",
	"LTC":   "litecoin",
	"AVAX":  "avalanche-2",
	"UNI":   "uniswap",
	"ATOM":  "cosmos",
	"ETC":   "ethereum-classic",
	"XLM":   "stellar",
	"ALGO":  "algorand",
	"FIL":   "filecoin",
	"TRX":   "tron",
	"VET":   "vechain",
}

// CoinGeckoClient provides access to the public OHLC endpoint, the last
// fallback. It is keyed by long-form coin id ("bitcoin"), resolved from the
// symbol table, the composite identifier, or the coin's display name.
type CoinGeckoClient struct {
	baseURL string
	opts    options
}

// NewCoinGecko creates the public OHLC fallback client.
func NewCoinGecko(baseURL string, opts ...Option) *CoinGeckoClient {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &CoinGeckoClient{baseURL: baseURL, opts: o}
}

// ResolveID derives the long-form coin id for a coin. Resolution order:
// symbol table keyed on the quote-corrected ticker (falling back to the
// parsed one), first token of the composite identifier (with BTC/ETH
// shorthand corrected), then the display name lower-cased with spaces
// replaced by hyphens. Reports false when nothing at all can be derived.
func ResolveID(ref model.CoinRef, symbol, displayName string) (string, bool) {
	if symbol == "" {
		symbol = ref.Symbol
	}
	if id, ok := geckoIDBySymbol[strings.ToUpper(symbol)]; ok {
		return id, true
	}

	switch token := ref.SlugToken(); token {
	case "":
		// fall through to display name
	case "btc":
		return "bitcoin", true
	case "eth":
		return "ethereum", true
	default:
		return token, true
	}

	if displayName != "" {
		return strings.Join(strings.Fields(strings.ToLower(displayName)), "-"), true
	}

	return "", false
}

// FetchOHLCV fetches day-bucketed OHLC rows for the coin. When no id can be
// resolved it returns Unavailable without a network call: a guaranteed-wrong
// id would waste the request. All other failures are Unavailable too; the
// chain is already on its last provider.
func (c *CoinGeckoClient) FetchOHLCV(ctx context.Context, ref model.CoinRef, symbol, displayName string, rng model.RangeRequest) Outcome {
	coinID, ok := ResolveID(ref, symbol, displayName)
	if !ok {
		c.opts.logger.Warn("no coin id mapping", "coin", ref.RawID)
		return Unavailable(ReasonNoMapping)
	}

	if err := c.opts.wait(ctx); err != nil {
		return Unavailable(fmt.Sprintf("rate limiter: %v", err))
	}

	query := url.Values{}
	query.Set("vs_currency", "usd")
	query.Set("days", strconv.Itoa(normalize.OHLCDays(rng.Days)))

	reqURL := fmt.Sprintf("%s/coins/%s/ohlc?%s", c.baseURL, url.PathEscape(coinID), query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return Unavailable(fmt.Sprintf("create request: %v", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.opts.httpClient.Do(req)
	if err != nil {
		c.opts.logger.Warn("coingecko request failed", "coin_id", coinID, "err", err)
		return Unavailable(fmt.Sprintf("unreachable: %v", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Unavailable(fmt.Sprintf("read response: %v", err))
	}

	if resp.StatusCode != http.StatusOK {
		c.opts.logger.Warn("coingecko non-ok response",
			"coin_id", coinID,
			"status", resp.StatusCode,
		)
		return Unavailable(fmt.Sprintf("status %d", resp.StatusCode))
	}

	// Rows arrive in canonical shape already: [ts_ms, open, high, low, close].
	var rows [][]float64
	if err := json.Unmarshal(body, &rows); err != nil {
		return Unavailable(ReasonMalformed)
	}
	if len(rows) == 0 {
		c.opts.logger.Warn("coingecko returned no rows", "coin_id", coinID)
		return Unavailable(ReasonEmptyBody)
	}

	series := make(model.CandleSeries, 0, len(rows))
	for _, row := range rows {
		if len(row) < 5 {
			continue
		}
		series = append(series, model.Candle{
			TimestampMs: normalize.ToMillis(int64(row[0])),
			Open:        row[1],
			High:        row[2],
			Low:         row[3],
			Close:       row[4],
		})
	}

	return Success(series)
}
