package model

import "time"

// Interval names an abstract candle bucket size. Providers each speak their
// own interval vocabulary; this is the dashboard-level one.
type Interval string

const (
	IntervalHourly Interval = "hourly"
	IntervalDaily  Interval = "daily"
)

// Valid reports whether the interval is one of the supported names.
func (i Interval) Valid() bool {
	return i == IntervalHourly || i == IntervalDaily
}

// Candle is one time bucket's open/high/low/close price summary.
type Candle struct {
	TimestampMs int64   `json:"t"` // Bucket open time (ms since epoch)
	Open        float64 `json:"o"`
	High        float64 `json:"h"`
	Low         float64 `json:"l"`
	Close       float64 `json:"c"`
}

// LiveTick is a single Candle-shaped latest-price sample produced by the
// quote poller and merged into a historical series.
type LiveTick = Candle

// CandleSeries is an ordered sequence of candles, non-decreasing by
// TimestampMs once normalized. Provider clients may emit duplicates; dedup
// beyond the merge boundary rule is deliberately not performed.
type CandleSeries []Candle

// Last returns the final candle of the series, if any.
func (s CandleSeries) Last() (Candle, bool) {
	if len(s) == 0 {
		return Candle{}, false
	}
	return s[len(s)-1], true
}

// Sorted reports whether the series is non-decreasing by timestamp.
func (s CandleSeries) Sorted() bool {
	for i := 1; i < len(s); i++ {
		if s[i].TimestampMs < s[i-1].TimestampMs {
			return false
		}
	}
	return true
}

// RangeRequest describes the requested historical horizon. Days is clamped to
// each provider's supported horizon before use.
type RangeRequest struct {
	Days     int
	Interval Interval
}

// Quote is the latest-price shape served to live-update consumers.
type Quote struct {
	ID        int64   `json:"id,omitempty"`
	Name      string  `json:"name,omitempty"`
	USD       float64 `json:"usd"`
	Coin      string  `json:"coin"`
	Price     float64 `json:"price"`
	Change24h float64 `json:"change24h"`
	MarketCap float64 `json:"marketCap"`
	Volume24h float64 `json:"volume24h"`
	Timestamp int64   `json:"timestamp"` // ms since epoch
}

// Tick converts the quote to a flat live tick at its own timestamp.
func (q *Quote) Tick() LiveTick {
	ts := q.Timestamp
	if ts == 0 {
		ts = time.Now().UnixMilli()
	}
	return LiveTick{
		TimestampMs: ts,
		Open:        q.Price,
		High:        q.Price,
		Low:         q.Price,
		Close:       q.Price,
	}
}
