package pipeline

import (
	"reflect"
	"testing"

	"github.com/nkoval/coindash/internal/model"
)

func TestMergeNilLive(t *testing.T) {
	hist := model.CandleSeries{
		{TimestampMs: 1000, Open: 1, High: 2, Low: 0.5, Close: 1.5},
	}

	got := Merge(hist, nil)
	if !reflect.DeepEqual(got, hist) {
		t.Errorf("Merge(hist, nil) = %v, want unchanged %v", got, hist)
	}
}

func TestMergeReplacesBoundaryCandle(t *testing.T) {
	hist := model.CandleSeries{
		{TimestampMs: 1000, Open: 1, High: 2, Low: 0.5, Close: 1.5},
		{TimestampMs: 2000, Open: 1.5, High: 2.5, Low: 1, Close: 2},
	}
	live := &model.LiveTick{TimestampMs: 2000, Open: 2, High: 3, Low: 1.5, Close: 2.5}

	got := Merge(hist, live)
	if len(got) != 2 {
		t.Fatalf("merged length = %d, want 2", len(got))
	}
	if got[1] != *live {
		t.Errorf("boundary candle = %v, want %v", got[1], *live)
	}
	if got[0] != hist[0] {
		t.Errorf("earlier candle changed: %v", got[0])
	}
}

func TestMergeAppendsNewerTick(t *testing.T) {
	hist := model.CandleSeries{
		{TimestampMs: 1000, Close: 1.5},
		{TimestampMs: 2000, Close: 2},
	}
	live := &model.LiveTick{TimestampMs: 3000, Open: 2, High: 3, Low: 2, Close: 2.8}

	got := Merge(hist, live)
	if len(got) != 3 {
		t.Fatalf("merged length = %d, want 3", len(got))
	}
	if got[2] != *live {
		t.Errorf("appended candle = %v, want %v", got[2], *live)
	}
	if !got.Sorted() {
		t.Errorf("merged series not sorted: %v", got)
	}
}

func TestMergeSortsOutOfOrderResult(t *testing.T) {
	// A tick older than the series tail still ends up in timestamp order.
	hist := model.CandleSeries{
		{TimestampMs: 2000, Close: 2},
		{TimestampMs: 4000, Close: 4},
	}
	live := &model.LiveTick{TimestampMs: 3000, Close: 3}

	got := Merge(hist, live)
	want := []int64{2000, 3000, 4000}
	for i, ts := range want {
		if got[i].TimestampMs != ts {
			t.Errorf("got[%d].TimestampMs = %d, want %d", i, got[i].TimestampMs, ts)
		}
	}
}

func TestMergeKeepsMidSeriesDuplicates(t *testing.T) {
	// Only the boundary candle is ever replaced; interior duplicates from
	// overlapping provider responses survive the merge.
	hist := model.CandleSeries{
		{TimestampMs: 1000, Close: 1},
		{TimestampMs: 1000, Close: 1.1},
		{TimestampMs: 2000, Close: 2},
	}
	live := &model.LiveTick{TimestampMs: 3000, Close: 3}

	got := Merge(hist, live)
	if len(got) != 4 {
		t.Fatalf("merged length = %d, want 4", len(got))
	}
	if got[0].TimestampMs != 1000 || got[1].TimestampMs != 1000 {
		t.Errorf("interior duplicates were collapsed: %v", got)
	}
}

func TestMergeDoesNotMutateInput(t *testing.T) {
	hist := model.CandleSeries{
		{TimestampMs: 1000, Close: 1},
		{TimestampMs: 2000, Close: 2},
	}
	orig := append(model.CandleSeries(nil), hist...)
	live := &model.LiveTick{TimestampMs: 2000, Close: 9}

	Merge(hist, live)
	if !reflect.DeepEqual(hist, orig) {
		t.Errorf("input series mutated: %v", hist)
	}
}
