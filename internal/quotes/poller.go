package quotes

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/nkoval/coindash/internal/model"
)

// minInterval is the floor for the poll cadence. The quote endpoint is
// rate-limited upstream; polling faster than this only burns credits.
const minInterval = time.Minute

// QuoteSource fetches the latest quote for one coin.
type QuoteSource interface {
	GetQuote(ctx context.Context, rawID string) (*model.Quote, error)
}

// TickHandler receives fetched quote ticks.
type TickHandler interface {
	HandleTick(coin string, tick model.LiveTick)
}

// TickHandlerFunc is a function adapter for TickHandler.
type TickHandlerFunc func(coin string, tick model.LiveTick)

func (f TickHandlerFunc) HandleTick(coin string, tick model.LiveTick) {
	f(coin, tick)
}

// Config holds poller configuration.
type Config struct {
	Interval time.Duration // Poll interval (floored at 1m)
	Timeout  time.Duration // Per-request timeout (default: 10s)
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Interval: time.Minute,
		Timeout:  10 * time.Second,
	}
}

// Poller periodically fetches quotes for a fixed watchlist.
type Poller struct {
	cfg       Config
	source    QuoteSource
	watchlist []string
	handler   TickHandler
	logger    *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a new Poller over the given watchlist of composite coin ids.
func New(cfg Config, source QuoteSource, watchlist []string, handler TickHandler, logger *slog.Logger) *Poller {
	if cfg.Interval < minInterval {
		cfg.Interval = minInterval
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Poller{
		cfg:       cfg,
		source:    source,
		watchlist: watchlist,
		handler:   handler,
		logger:    logger,
	}
}

// Start begins the polling loop.
func (p *Poller) Start(ctx context.Context) error {
	p.ctx, p.cancel = context.WithCancel(ctx)

	p.wg.Add(1)
	go p.run()

	p.logger.Info("quote poller started",
		"interval", p.cfg.Interval,
		"coins", len(p.watchlist),
	)

	return nil
}

// Stop gracefully shuts down the poller.
func (p *Poller) Stop(ctx context.Context) error {
	if p.cancel != nil {
		p.cancel()
	}

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.logger.Info("quote poller stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// run is the main polling loop.
func (p *Poller) run() {
	defer p.wg.Done()

	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	// Poll immediately on start.
	p.pollAll()

	for {
		select {
		case <-p.ctx.Done():
			return
		case <-ticker.C:
			p.pollAll()
		}
	}
}

// pollAll fetches the latest quote for every watched coin sequentially.
// Watchlists are small and the upstream is rate-limited, so there is no
// point fanning out.
func (p *Poller) pollAll() {
	start := time.Now()
	var fetched, errors int

	for _, coin := range p.watchlist {
		select {
		case <-p.ctx.Done():
			return
		default:
		}

		if err := p.pollCoin(coin); err != nil {
			p.logger.Warn("failed to poll quote",
				"coin", coin,
				"err", err,
			)
			errors++
			continue
		}
		fetched++
	}

	p.logger.Info("quote poll cycle complete",
		"coins", len(p.watchlist),
		"fetched", fetched,
		"errors", errors,
		"duration", time.Since(start),
	)
}

// pollCoin fetches and handles a single coin's quote.
func (p *Poller) pollCoin(coin string) error {
	ctx, cancel := context.WithTimeout(p.ctx, p.cfg.Timeout)
	defer cancel()

	q, err := p.source.GetQuote(ctx, coin)
	if err != nil {
		return err
	}

	if p.handler != nil {
		p.handler.HandleTick(coin, q.Tick())
	}

	return nil
}
