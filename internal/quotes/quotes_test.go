package quotes

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/nkoval/coindash/internal/model"
)

type fakeSource struct {
	mu    sync.Mutex
	calls []string
	err   error
}

func (f *fakeSource) GetQuote(ctx context.Context, rawID string) (*model.Quote, error) {
	f.mu.Lock()
	f.calls = append(f.calls, rawID)
	f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	return &model.Quote{Coin: "BTC", Price: 65000, Timestamp: 1_700_000_000_000}, nil
}

func (f *fakeSource) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestStoreLatest(t *testing.T) {
	s := NewStore()

	if _, ok := s.Latest("bitcoin-1"); ok {
		t.Error("Latest on empty store returned ok")
	}

	first := model.LiveTick{TimestampMs: 1000, Close: 1}
	second := model.LiveTick{TimestampMs: 2000, Close: 2}
	s.HandleTick("bitcoin-1", first)
	s.HandleTick("bitcoin-1", second)

	got, ok := s.Latest("bitcoin-1")
	if !ok {
		t.Fatal("Latest returned no tick after HandleTick")
	}
	if got != second {
		t.Errorf("Latest = %v, want %v", got, second)
	}
}

func TestPollerImmediateFirstPoll(t *testing.T) {
	src := &fakeSource{}
	done := make(chan struct{}, 4)
	handler := TickHandlerFunc(func(coin string, tick model.LiveTick) {
		done <- struct{}{}
	})

	p := New(Config{Interval: time.Hour}, src, []string{"bitcoin-1", "ethereum-1027"}, handler, quietLogger())
	if err := p.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer p.Stop(context.Background())

	for i := 0; i < 2; i++ {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for tick %d from immediate poll", i)
		}
	}

	if src.callCount() != 2 {
		t.Errorf("source calls = %d, want 2", src.callCount())
	}
}

func TestPollerErrorsDoNotStopCycle(t *testing.T) {
	src := &fakeSource{err: errors.New("upstream down")}
	var handled int
	handler := TickHandlerFunc(func(coin string, tick model.LiveTick) {
		handled++
	})

	p := New(Config{Interval: time.Hour}, src, []string{"bitcoin-1", "ethereum-1027"}, handler, quietLogger())
	if err := p.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for src.callCount() < 2 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	p.Stop(context.Background())

	if src.callCount() != 2 {
		t.Errorf("source calls = %d, want 2 (error should not abort cycle)", src.callCount())
	}
	if handled != 0 {
		t.Errorf("handler invoked %d times on errors, want 0", handled)
	}
}

func TestNewFloorsInterval(t *testing.T) {
	p := New(Config{Interval: 5 * time.Second}, &fakeSource{}, nil, nil, quietLogger())
	if p.cfg.Interval != minInterval {
		t.Errorf("interval = %v, want floored to %v", p.cfg.Interval, minInterval)
	}
}

func TestStopWaitsForLoop(t *testing.T) {
	p := New(DefaultConfig(), &fakeSource{}, []string{"bitcoin-1"}, NewStore(), quietLogger())
	if err := p.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := p.Stop(ctx); err != nil {
		t.Errorf("Stop: %v", err)
	}
}
