package pipeline

import (
	"sort"

	"github.com/nkoval/coindash/internal/model"
)

// Merge combines a freshly polled live tick with a historical series into a
// new series value; neither input is mutated, so a previously returned series
// stays valid for any holder that captured it.
//
// When the tick's timestamp equals the last historical candle's, the tick
// replaces that candle (the in-progress bucket is being refined); otherwise
// it is appended. The result is then stably sorted ascending, which guards
// against out-of-order polling. Duplicate timestamps elsewhere in the series
// are a provider anomaly and pass through unchanged.
func Merge(historical model.CandleSeries, live *model.LiveTick) model.CandleSeries {
	if live == nil {
		return historical
	}

	merged := make(model.CandleSeries, 0, len(historical)+1)
	if last, ok := historical.Last(); ok && last.TimestampMs == live.TimestampMs {
		merged = append(merged, historical[:len(historical)-1]...)
	} else {
		merged = append(merged, historical...)
	}
	merged = append(merged, *live)

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].TimestampMs < merged[j].TimestampMs
	})

	return merged
}
