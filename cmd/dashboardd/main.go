package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/nkoval/coindash/internal/cache"
	"github.com/nkoval/coindash/internal/config"
	"github.com/nkoval/coindash/internal/model"
	"github.com/nkoval/coindash/internal/pipeline"
	"github.com/nkoval/coindash/internal/provider"
	"github.com/nkoval/coindash/internal/quotes"
	"github.com/nkoval/coindash/internal/version"
)

func main() {
	configPath := flag.String("config", "configs/dashboardd.yaml", "path to config file")
	flag.Parse()

	// Local .env, if present, feeds ${VAR} expansion in the config file.
	_ = godotenv.Load()

	// Set up structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	logger.Info("starting dashboardd",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
	)

	// Load configuration
	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("configuration loaded",
		"instance_id", cfg.Instance.ID,
		"primary_url", cfg.Primary.BaseURL,
		"cache_backend", cfg.Cache.Backend,
	)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	// Set up the response cache
	var store cache.Cache
	switch cfg.Cache.Backend {
	case "redis":
		r, err := cache.NewRedis(ctx, cfg.Cache.Redis.Addr, cfg.Cache.Redis.Password, cfg.Cache.Redis.DB, logger)
		if err != nil {
			logger.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		defer r.Close()
		store = r
		logger.Info("redis cache connected", "addr", cfg.Cache.Redis.Addr)
	default:
		store = cache.NewMemory()
	}

	// Provider clients
	primary := provider.NewCMC(
		cfg.Primary.BaseURL,
		cfg.Primary.APIKey,
		provider.WithLogger(logger),
		provider.WithTimeout(cfg.Primary.Timeout),
		provider.WithRateLimit(float64(cfg.Primary.RatePerMin)),
	)
	binance := provider.NewBinance(
		cfg.Binance.BaseURL,
		provider.WithLogger(logger),
		provider.WithTimeout(cfg.Binance.Timeout),
		provider.WithRateLimit(float64(cfg.Binance.RatePerMin)),
	)
	gecko := provider.NewCoinGecko(
		cfg.CoinGecko.BaseURL,
		provider.WithLogger(logger),
		provider.WithTimeout(cfg.CoinGecko.Timeout),
		provider.WithRateLimit(float64(cfg.CoinGecko.RatePerMin)),
	)

	svc := pipeline.New(primary, binance, gecko, store, pipeline.TTLConfig{
		PrimaryOHLCV:   cfg.Cache.PrimaryTTL,
		SecondaryOHLCV: cfg.Cache.SecondaryTTL,
		Quote:          cfg.Cache.QuoteTTL,
	}, logger)

	// Live quote polling for the watchlist
	tickStore := quotes.NewStore()
	poller := quotes.New(quotes.Config{
		Interval: cfg.Poller.Interval,
		Timeout:  cfg.Poller.Timeout,
	}, svc, cfg.Poller.Watchlist, tickStore, logger)

	if len(cfg.Poller.Watchlist) > 0 {
		if err := poller.Start(ctx); err != nil {
			logger.Error("failed to start quote poller", "error", err)
			os.Exit(1)
		}
		defer func() {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer shutdownCancel()
			poller.Stop(shutdownCtx)
		}()
	}

	// HTTP API
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: createHandler(svc, tickStore, logger),
	}

	go func() {
		logger.Info("starting http server", "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("http server error", "error", err)
		}
	}()

	logger.Info("dashboardd running",
		"instance_id", cfg.Instance.ID,
		"health_url", fmt.Sprintf("http://localhost:%d/health", cfg.Server.Port),
	)

	// Wait for shutdown
	<-ctx.Done()

	logger.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	server.Shutdown(shutdownCtx)

	logger.Info("dashboardd stopped")
}

// createHandler builds the HTTP API: health, historical OHLCV with live
// merge, and latest quotes.
func createHandler(svc *pipeline.Service, ticks *quotes.Store, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"status":  "healthy",
			"version": version.String(),
		})
	})

	mux.HandleFunc("/api/ohlcv", func(w http.ResponseWriter, r *http.Request) {
		coin := r.URL.Query().Get("coin")
		if coin == "" {
			http.Error(w, "coin parameter is required", http.StatusBadRequest)
			return
		}

		days := 1
		if d := r.URL.Query().Get("days"); d != "" {
			n, err := strconv.Atoi(d)
			if err != nil || n < 1 {
				http.Error(w, "days must be a positive integer", http.StatusBadRequest)
				return
			}
			days = n
		}

		interval := model.Interval(r.URL.Query().Get("interval"))
		if !interval.Valid() {
			interval = model.IntervalHourly
		}

		series := svc.GetCoinOHLCV(r.Context(), coin, model.RangeRequest{Days: days, Interval: interval})

		// Splice in the freshest polled tick, when one exists.
		if tick, ok := ticks.Latest(coin); ok {
			series = pipeline.Merge(series, &tick)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"coin":    coin,
			"days":    days,
			"candles": series,
		})
	})

	mux.HandleFunc("/api/quote", func(w http.ResponseWriter, r *http.Request) {
		coin := r.URL.Query().Get("coin")
		if coin == "" {
			http.Error(w, "coin parameter is required", http.StatusBadRequest)
			return
		}

		q, err := svc.GetQuote(r.Context(), coin)
		if err != nil {
			logger.Warn("quote request failed", "coin", coin, "error", err)
			http.Error(w, "quote unavailable", http.StatusBadGateway)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(q)
	})

	return mux
}
