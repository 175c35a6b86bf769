package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultPrimaryURL   = "https://pro-api.coinmarketcap.com"
	DefaultBinanceURL   = "https://api.binance.com"
	DefaultCoinGeckoURL = "https://api.coingecko.com/api/v3"
	DefaultTimeout      = 30 * time.Second
	DefaultCacheBackend = "memory"
	DefaultPrimaryTTL   = 3 * time.Minute
	DefaultSecondaryTTL = 1 * time.Minute
	DefaultQuoteTTL     = 1 * time.Minute
	DefaultPollInterval = 1 * time.Minute
	DefaultPollTimeout  = 10 * time.Second
	DefaultServerPort   = 8080
)

func (c *Config) applyDefaults() {
	if c.Primary.BaseURL == "" {
		c.Primary.BaseURL = DefaultPrimaryURL
	}
	if c.Primary.Timeout <= 0 {
		c.Primary.Timeout = DefaultTimeout
	}

	if c.Binance.BaseURL == "" {
		c.Binance.BaseURL = DefaultBinanceURL
	}
	if c.Binance.Timeout <= 0 {
		c.Binance.Timeout = DefaultTimeout
	}

	if c.CoinGecko.BaseURL == "" {
		c.CoinGecko.BaseURL = DefaultCoinGeckoURL
	}
	if c.CoinGecko.Timeout <= 0 {
		c.CoinGecko.Timeout = DefaultTimeout
	}

	if c.Cache.Backend == "" {
		c.Cache.Backend = DefaultCacheBackend
	}
	if c.Cache.PrimaryTTL <= 0 {
		c.Cache.PrimaryTTL = DefaultPrimaryTTL
	}
	if c.Cache.SecondaryTTL <= 0 {
		c.Cache.SecondaryTTL = DefaultSecondaryTTL
	}
	if c.Cache.QuoteTTL <= 0 {
		c.Cache.QuoteTTL = DefaultQuoteTTL
	}

	if c.Poller.Interval <= 0 {
		c.Poller.Interval = DefaultPollInterval
	}
	if c.Poller.Timeout <= 0 {
		c.Poller.Timeout = DefaultPollTimeout
	}

	if c.Server.Port == 0 {
		c.Server.Port = DefaultServerPort
	}
}
