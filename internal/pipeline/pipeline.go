package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/nkoval/coindash/internal/cache"
	"github.com/nkoval/coindash/internal/model"
	"github.com/nkoval/coindash/internal/provider"
)

// PrimaryProvider is the authoritative quotes+OHLCV provider.
type PrimaryProvider interface {
	FetchOHLCV(ctx context.Context, ref model.CoinRef, rng model.RangeRequest) provider.Outcome
	FetchQuote(ctx context.Context, ref model.CoinRef) (*model.Quote, error)
}

// KlinesProvider is the symbol-keyed secondary.
type KlinesProvider interface {
	FetchOHLCV(ctx context.Context, symbol string, rng model.RangeRequest) provider.Outcome
}

// OHLCProvider is the coin-id-keyed secondary. symbol is the quote-corrected
// ticker from earlier in the chain, used to key the provider's id table.
type OHLCProvider interface {
	FetchOHLCV(ctx context.Context, ref model.CoinRef, symbol, displayName string, rng model.RangeRequest) provider.Outcome
}

// TTLConfig holds the per-endpoint-class cache TTLs.
type TTLConfig struct {
	PrimaryOHLCV   time.Duration
	SecondaryOHLCV time.Duration
	Quote          time.Duration
}

// DefaultTTLConfig returns TTLs sized to the providers' free-tier limits.
func DefaultTTLConfig() TTLConfig {
	return TTLConfig{
		PrimaryOHLCV:   3 * time.Minute,
		SecondaryOHLCV: time.Minute,
		Quote:          time.Minute,
	}
}

// Service executes the market data resolution pipeline.
type Service struct {
	primary PrimaryProvider
	klines  KlinesProvider
	ohlc    OHLCProvider
	cache   cache.Cache
	ttl     TTLConfig
	logger  *slog.Logger
}

// New creates a pipeline service over the three providers.
func New(primary PrimaryProvider, klines KlinesProvider, ohlc OHLCProvider, c cache.Cache, ttl TTLConfig, logger *slog.Logger) *Service {
	if c == nil {
		c = cache.Nop{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		primary: primary,
		klines:  klines,
		ohlc:    ohlc,
		cache:   c,
		ttl:     ttl,
		logger:  logger,
	}
}

// GetCoinOHLCV resolves the identifier once and walks the fallback chain.
// It never returns an error: total failure surfaces as an empty series, and
// callers must treat that as "no data currently available".
func (s *Service) GetCoinOHLCV(ctx context.Context, rawID string, rng model.RangeRequest) model.CandleSeries {
	if !rng.Interval.Valid() {
		rng.Interval = model.IntervalHourly
	}

	inv := newInvocation(rawID, rng)
	series := s.run(ctx, inv)
	if series == nil {
		series = model.CandleSeries{}
	}
	return series
}

// GetQuote returns the latest quote for a coin, served read-through from the
// quote cache. Unlike GetCoinOHLCV this does surface errors; the live path
// has no fallback and its consumers poll again anyway.
func (s *Service) GetQuote(ctx context.Context, rawID string) (*model.Quote, error) {
	return s.cachedQuote(ctx, model.ParseCoinRef(rawID))
}

// primaryAttempt runs the primary OHLCV fetch through the cache.
func (s *Service) primaryAttempt(ctx context.Context, inv *invocation) provider.Outcome {
	key := cache.Key("cmc", "ohlcv", inv.ref.Identifier(), rangeKey(inv.rng))
	if series, ok := s.cachedSeries(ctx, key); ok {
		return provider.Success(series)
	}

	out := s.primary.FetchOHLCV(ctx, inv.ref, inv.rng)
	s.storeSeries(ctx, key, out, s.ttl.PrimaryOHLCV)
	return out
}

// klinesAttempt runs the symbol-keyed secondary through the cache.
func (s *Service) klinesAttempt(ctx context.Context, inv *invocation) provider.Outcome {
	key := cache.Key("binance", "klines", strings.ToUpper(inv.symbol), rangeKey(inv.rng))
	if series, ok := s.cachedSeries(ctx, key); ok {
		return provider.Success(series)
	}

	out := s.klines.FetchOHLCV(ctx, inv.symbol, inv.rng)
	s.storeSeries(ctx, key, out, s.ttl.SecondaryOHLCV)
	return out
}

// ohlcAttempt runs the coin-id-keyed secondary through the cache.
func (s *Service) ohlcAttempt(ctx context.Context, inv *invocation) provider.Outcome {
	key := cache.Key("coingecko", "ohlc", strings.ToLower(inv.ref.RawID), strconv.Itoa(inv.rng.Days))
	if series, ok := s.cachedSeries(ctx, key); ok {
		return provider.Success(series)
	}

	out := s.ohlc.FetchOHLCV(ctx, inv.ref, inv.symbol, inv.name, inv.rng)
	s.storeSeries(ctx, key, out, s.ttl.SecondaryOHLCV)
	return out
}

// cachedQuote fetches the latest primary quote read-through.
func (s *Service) cachedQuote(ctx context.Context, ref model.CoinRef) (*model.Quote, error) {
	key := cache.Key("cmc", "quote", ref.Identifier())
	if b, ok := s.cache.Get(ctx, key); ok {
		var q model.Quote
		if err := json.Unmarshal(b, &q); err == nil {
			return &q, nil
		}
	}

	q, err := s.primary.FetchQuote(ctx, ref)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(q); err == nil {
		s.cache.Set(ctx, key, b, s.ttl.Quote)
	}
	return q, nil
}

func (s *Service) cachedSeries(ctx context.Context, key string) (model.CandleSeries, bool) {
	b, ok := s.cache.Get(ctx, key)
	if !ok {
		return nil, false
	}
	var series model.CandleSeries
	if err := json.Unmarshal(b, &series); err != nil {
		return nil, false
	}
	return series, true
}

// storeSeries caches a successful non-empty outcome. Failures and empty
// results are not cached; the next invocation should retry the provider.
func (s *Service) storeSeries(ctx context.Context, key string, out provider.Outcome, ttl time.Duration) {
	if out.Failed() || len(out.Series) == 0 {
		return
	}
	if b, err := json.Marshal(out.Series); err == nil {
		s.cache.Set(ctx, key, b, ttl)
	}
}

func rangeKey(rng model.RangeRequest) string {
	return fmt.Sprintf("%d:%s", rng.Days, rng.Interval)
}
