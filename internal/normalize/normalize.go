package normalize

import (
	"time"

	"github.com/nkoval/coindash/internal/model"
)

// msEpoch2000 is 2000-01-01T00:00:00Z expressed in milliseconds since epoch.
// Any timestamp above it is already millisecond-denominated; at or below it,
// second-denominated.
const msEpoch2000 = 946_684_800_000

const dayMs = 24 * 60 * 60 * 1000

// Unit classifies an epoch timestamp's denomination.
type Unit int

const (
	UnitSeconds Unit = iota
	UnitMillis
)

func (u Unit) String() string {
	if u == UnitMillis {
		return "ms"
	}
	return "s"
}

// DetectUnit classifies a raw epoch timestamp.
func DetectUnit(t int64) Unit {
	if t > msEpoch2000 {
		return UnitMillis
	}
	return UnitSeconds
}

// ToMillis canonicalizes a raw epoch timestamp to milliseconds. Millisecond
// inputs pass through unchanged; second inputs are scaled up.
func ToMillis(t int64) int64 {
	if DetectUnit(t) == UnitMillis {
		return t
	}
	return t * 1000
}

// ToSeconds converts a canonical millisecond timestamp to seconds for
// boundary consumers.
func ToSeconds(ms int64) int64 {
	return ms / 1000
}

// MaxPrimaryDays is the primary provider's supported horizon.
const MaxPrimaryDays = 30

// ClampDays bounds a requested horizon to [1, max].
func ClampDays(days, max int) int {
	if days < 1 {
		return 1
	}
	if days > max {
		return max
	}
	return days
}

// PrimaryInterval maps the abstract interval to the primary provider's
// vocabulary.
func PrimaryInterval(iv model.Interval) string {
	if iv == model.IntervalHourly {
		return "hourly"
	}
	return "daily"
}

// PrimaryCount derives the candle count for the primary provider: 24 for an
// intraday request, otherwise the clamped day count.
func PrimaryCount(days int) int {
	days = ClampDays(days, MaxPrimaryDays)
	if days <= 1 {
		return 24
	}
	return days
}

// PrimaryWindow returns the trailing [start, end] request window in epoch
// seconds, clamped to the primary horizon.
func PrimaryWindow(days int, now time.Time) (startSec, endSec int64) {
	days = ClampDays(days, MaxPrimaryDays)
	endSec = now.Unix()
	startSec = endSec - int64(days)*24*60*60
	return startSec, endSec
}

// Kline limits for the klines-style secondary.
const (
	minKlineLimit = 100
	maxKlineLimit = 1000
)

// KlineInterval maps the abstract interval to the klines vocabulary.
func KlineInterval(iv model.Interval) string {
	switch iv {
	case model.IntervalHourly:
		return "1h"
	case model.IntervalDaily:
		return "1d"
	default:
		return "1h"
	}
}

// KlineLimit derives the kline count for a horizon: one candle per hour or
// day, clamped to the provider's [100, 1000] bounds.
func KlineLimit(days int, iv model.Interval) int {
	if days < 1 {
		days = 1
	}
	perDay := 1
	if iv == model.IntervalHourly {
		perDay = 24
	}
	limit := days * perDay
	if limit < minKlineLimit {
		return minKlineLimit
	}
	if limit > maxKlineLimit {
		return maxKlineLimit
	}
	return limit
}

// TrailingWindow returns a [start, end] window in epoch milliseconds covering
// the trailing day count, ending at now.
func TrailingWindow(days int, now time.Time) (startMs, endMs int64) {
	if days < 1 {
		days = 1
	}
	endMs = now.UnixMilli()
	startMs = endMs - int64(days)*dayMs
	return startMs, endMs
}

// OHLCDays maps a horizon to the public OHLC provider's day bucket.
func OHLCDays(days int) int {
	if days <= 1 {
		return 1
	}
	return days
}
