package config

import "time"

// Config is the root configuration for a dashboard data instance.
type Config struct {
	Instance  InstanceConfig `yaml:"instance"`
	Primary   PrimaryConfig  `yaml:"primary"`
	Binance   ProviderConfig `yaml:"binance"`
	CoinGecko ProviderConfig `yaml:"coingecko"`
	Cache     CacheConfig    `yaml:"cache"`
	Poller    PollerConfig   `yaml:"poller"`
	Server    ServerConfig   `yaml:"server"`
}

// InstanceConfig identifies this instance in logs.
type InstanceConfig struct {
	ID string `yaml:"id"`
}

// PrimaryConfig holds the CoinMarketCap-compatible provider settings.
type PrimaryConfig struct {
	BaseURL    string        `yaml:"base_url"`
	APIKey     string        `yaml:"api_key"`
	Timeout    time.Duration `yaml:"timeout"`
	RatePerMin int           `yaml:"rate_per_min"`
}

// ProviderConfig holds settings for a keyless secondary provider.
type ProviderConfig struct {
	BaseURL    string        `yaml:"base_url"`
	Timeout    time.Duration `yaml:"timeout"`
	RatePerMin int           `yaml:"rate_per_min"`
}

// CacheConfig selects and tunes the response cache.
type CacheConfig struct {
	Backend      string        `yaml:"backend"` // "memory" or "redis"
	Redis        RedisConfig   `yaml:"redis"`
	PrimaryTTL   time.Duration `yaml:"primary_ttl"`
	SecondaryTTL time.Duration `yaml:"secondary_ttl"`
	QuoteTTL     time.Duration `yaml:"quote_ttl"`
}

// RedisConfig holds the redis connection.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// PollerConfig holds quote poller settings.
type PollerConfig struct {
	Interval  time.Duration `yaml:"interval"`
	Timeout   time.Duration `yaml:"timeout"`
	Watchlist []string      `yaml:"watchlist"`
}

// ServerConfig holds the HTTP API settings.
type ServerConfig struct {
	Port int `yaml:"port"`
}
