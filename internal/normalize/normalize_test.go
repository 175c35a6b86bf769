package normalize

import (
	"testing"
	"time"

	"github.com/nkoval/coindash/internal/model"
)

// TestDetectUnit validates the millisecond/second classification boundary.
func TestDetectUnit(t *testing.T) {
	tests := []struct {
		name string
		t    int64
		want Unit
	}{
		{"exactly at cutoff is seconds", 946_684_800_000, UnitSeconds},
		{"one above cutoff is ms", 946_684_800_001, UnitMillis},
		{"2023 in seconds", 1_700_000_000, UnitSeconds},
		{"2023 in ms", 1_700_000_000_000, UnitMillis},
		{"zero", 0, UnitSeconds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectUnit(tt.t); got != tt.want {
				t.Errorf("DetectUnit(%d) = %v, want %v", tt.t, got, tt.want)
			}
		})
	}
}

// TestToMillis validates canonicalization and the second/ms round trip.
func TestToMillis(t *testing.T) {
	t.Run("seconds are scaled", func(t *testing.T) {
		if got := ToMillis(1_700_000_000); got != 1_700_000_000_000 {
			t.Errorf("ToMillis = %d, want 1700000000000", got)
		}
	})

	t.Run("ms pass through", func(t *testing.T) {
		if got := ToMillis(1_700_000_000_000); got != 1_700_000_000_000 {
			t.Errorf("ToMillis = %d, want unchanged", got)
		}
	})

	t.Run("round trip on second-aligned values", func(t *testing.T) {
		for _, ms := range []int64{1_700_000_000_000, 946_684_801_000, 2_000_000_000_000} {
			if got := ToMillis(ToSeconds(ms)); got != ms {
				t.Errorf("ToMillis(ToSeconds(%d)) = %d, want %d", ms, got, ms)
			}
		}
	})
}

// TestClampDays validates horizon clamping.
func TestClampDays(t *testing.T) {
	tests := []struct {
		days, max, want int
	}{
		{0, 30, 1},
		{-5, 30, 1},
		{1, 30, 1},
		{30, 30, 30},
		{90, 30, 30},
	}

	for _, tt := range tests {
		if got := ClampDays(tt.days, tt.max); got != tt.want {
			t.Errorf("ClampDays(%d, %d) = %d, want %d", tt.days, tt.max, got, tt.want)
		}
	}
}

// TestPrimaryMapping validates the primary provider's interval and count rules.
func TestPrimaryMapping(t *testing.T) {
	if got := PrimaryInterval(model.IntervalHourly); got != "hourly" {
		t.Errorf("PrimaryInterval(hourly) = %q, want hourly", got)
	}
	if got := PrimaryInterval(model.IntervalDaily); got != "daily" {
		t.Errorf("PrimaryInterval(daily) = %q, want daily", got)
	}
	if got := PrimaryInterval(model.Interval("5m")); got != "daily" {
		t.Errorf("PrimaryInterval(unknown) = %q, want daily", got)
	}

	if got := PrimaryCount(1); got != 24 {
		t.Errorf("PrimaryCount(1) = %d, want 24", got)
	}
	if got := PrimaryCount(7); got != 7 {
		t.Errorf("PrimaryCount(7) = %d, want 7", got)
	}
	if got := PrimaryCount(90); got != 30 {
		t.Errorf("PrimaryCount(90) = %d, want 30", got)
	}
}

// TestPrimaryWindow validates the trailing second-denominated window.
func TestPrimaryWindow(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)

	start, end := PrimaryWindow(7, now)
	if end != 1_700_000_000 {
		t.Errorf("end = %d, want %d", end, 1_700_000_000)
	}
	if end-start != 7*24*60*60 {
		t.Errorf("window width = %d, want 7 days of seconds", end-start)
	}

	// Clamped to the 30-day horizon.
	start, end = PrimaryWindow(365, now)
	if end-start != 30*24*60*60 {
		t.Errorf("clamped window width = %d, want 30 days of seconds", end-start)
	}
}

// TestKlineMapping validates the secondary's interval vocabulary and limits.
func TestKlineMapping(t *testing.T) {
	if got := KlineInterval(model.IntervalHourly); got != "1h" {
		t.Errorf("KlineInterval(hourly) = %q, want 1h", got)
	}
	if got := KlineInterval(model.IntervalDaily); got != "1d" {
		t.Errorf("KlineInterval(daily) = %q, want 1d", got)
	}
	if got := KlineInterval(model.Interval("")); got != "1h" {
		t.Errorf("KlineInterval(unknown) = %q, want 1h", got)
	}

	tests := []struct {
		days int
		iv   model.Interval
		want int
	}{
		{1, model.IntervalHourly, 100},   // 24, floored to 100
		{7, model.IntervalHourly, 168},   // within bounds
		{30, model.IntervalDaily, 100},   // 30, floored to 100
		{90, model.IntervalHourly, 1000}, // 2160, capped at 1000
		{0, model.IntervalDaily, 100},
	}
	for _, tt := range tests {
		if got := KlineLimit(tt.days, tt.iv); got != tt.want {
			t.Errorf("KlineLimit(%d, %s) = %d, want %d", tt.days, tt.iv, got, tt.want)
		}
	}
}

// TestTrailingWindow validates the millisecond trailing window.
func TestTrailingWindow(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)

	start, end := TrailingWindow(3, now)
	if end != 1_700_000_000_000 {
		t.Errorf("end = %d, want now in ms", end)
	}
	if end-start != 3*24*60*60*1000 {
		t.Errorf("window width = %d, want 3 days of ms", end-start)
	}
}

// TestOHLCDays validates the public OHLC provider's day buckets.
func TestOHLCDays(t *testing.T) {
	if got := OHLCDays(0); got != 1 {
		t.Errorf("OHLCDays(0) = %d, want 1", got)
	}
	if got := OHLCDays(1); got != 1 {
		t.Errorf("OHLCDays(1) = %d, want 1", got)
	}
	if got := OHLCDays(14); got != 14 {
		t.Errorf("OHLCDays(14) = %d, want 14", got)
	}
}
