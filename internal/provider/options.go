package provider

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// options holds configuration shared by all provider clients.
type options struct {
	httpClient *http.Client
	logger     *slog.Logger
	limiter    *rate.Limiter
}

// Option configures a provider client.
type Option func(*options)

func defaultOptions() options {
	return options{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     slog.Default(),
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) {
		o.httpClient = hc
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.httpClient.Timeout = d
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRateLimit caps outbound requests at perMin requests per minute. Calls
// beyond the cap block until the limiter admits them or the context ends.
// Non-positive values leave the client unlimited.
func WithRateLimit(perMin float64) Option {
	return func(o *options) {
		if perMin <= 0 {
			return
		}
		o.limiter = rate.NewLimiter(rate.Limit(perMin/60), 1)
	}
}

// wait blocks on the rate limiter, if one is configured.
func (o *options) wait(ctx context.Context) error {
	if o.limiter == nil {
		return nil
	}
	return o.limiter.Wait(ctx)
}
