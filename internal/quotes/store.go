package quotes

import (
	"sync"

	"github.com/nkoval/coindash/internal/model"
)

// Store keeps the latest tick per coin. It implements TickHandler so a
// Poller can feed it directly.
type Store struct {
	mu    sync.RWMutex
	ticks map[string]model.LiveTick
}

// NewStore creates an empty tick store.
func NewStore() *Store {
	return &Store{ticks: make(map[string]model.LiveTick)}
}

// HandleTick records the latest tick for a coin.
func (s *Store) HandleTick(coin string, tick model.LiveTick) {
	s.mu.Lock()
	s.ticks[coin] = tick
	s.mu.Unlock()
}

// Latest returns the most recent tick for a coin, if one has been recorded.
func (s *Store) Latest(coin string) (model.LiveTick, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.ticks[coin]
	return t, ok
}
