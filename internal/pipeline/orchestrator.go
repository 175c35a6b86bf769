package pipeline

import (
	"context"

	"github.com/google/uuid"

	"github.com/nkoval/coindash/internal/model"
	"github.com/nkoval/coindash/internal/provider"
)

// state is the position of an invocation in the fallback chain.
type state int

const (
	statePrimary state = iota
	stateSecondaryA
	stateSecondaryB
	stateExhausted
)

func (s state) String() string {
	switch s {
	case statePrimary:
		return "primary"
	case stateSecondaryA:
		return "secondary_a"
	case stateSecondaryB:
		return "secondary_b"
	case stateExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// invocation carries the resolved identity of a single OHLCV request through
// the chain. trace ties the attempt logs of one request together.
type invocation struct {
	trace uuid.UUID
	ref   model.CoinRef
	rng   model.RangeRequest

	// symbol is the pair base used by the klines provider. It starts as the
	// parsed symbol and may be replaced once by a quote lookup.
	symbol string

	// name is the display name from the quote lookup, if one happened.
	name string

	resolved bool
}

func newInvocation(rawID string, rng model.RangeRequest) *invocation {
	ref := model.ParseCoinRef(rawID)
	return &invocation{
		trace:  uuid.New(),
		ref:    ref,
		rng:    rng,
		symbol: ref.Symbol,
	}
}

// run walks the chain in fixed order. Each provider gets exactly one attempt
// per invocation; the first successful outcome wins even when its series is
// empty for the primary, while empty secondary results advance the chain.
func (s *Service) run(ctx context.Context, inv *invocation) model.CandleSeries {
	st := statePrimary
	for st != stateExhausted {
		var out provider.Outcome
		switch st {
		case statePrimary:
			out = s.primaryAttempt(ctx, inv)
			if out.Status == provider.StatusSuccess {
				s.logResolved(inv, st, out)
				return out.Series
			}
		case stateSecondaryA:
			s.resolveSymbol(ctx, inv)
			out = s.klinesAttempt(ctx, inv)
			if out.Status == provider.StatusSuccess && len(out.Series) > 0 {
				s.logResolved(inv, st, out)
				return out.Series
			}
		case stateSecondaryB:
			out = s.ohlcAttempt(ctx, inv)
			if out.Status == provider.StatusSuccess && len(out.Series) > 0 {
				s.logResolved(inv, st, out)
				return out.Series
			}
		}

		s.logger.Debug("provider attempt did not resolve",
			"trace", inv.trace.String(),
			"coin", inv.ref.RawID,
			"stage", st.String(),
			"status", out.Status.String(),
			"reason", out.Reason)
		st++
	}

	s.logger.Warn("all providers exhausted",
		"trace", inv.trace.String(),
		"coin", inv.ref.RawID,
		"days", inv.rng.Days,
		"interval", string(inv.rng.Interval))
	return model.CandleSeries{}
}

// resolveSymbol refreshes the pair base via a primary quote lookup before
// the klines attempt. Best effort: on failure the parsed symbol stands. The
// lookup happens at most once per invocation and its display name also feeds
// the coingecko id resolution later in the chain.
func (s *Service) resolveSymbol(ctx context.Context, inv *invocation) {
	if inv.resolved {
		return
	}
	inv.resolved = true

	q, err := s.cachedQuote(ctx, inv.ref)
	if err != nil {
		s.logger.Debug("symbol re-resolution failed, keeping parsed symbol",
			"trace", inv.trace.String(),
			"coin", inv.ref.RawID,
			"symbol", inv.symbol,
			"error", err)
		return
	}
	if q.Coin != "" {
		inv.symbol = q.Coin
	}
	inv.name = q.Name
}

func (s *Service) logResolved(inv *invocation, st state, out provider.Outcome) {
	s.logger.Info("ohlcv resolved",
		"trace", inv.trace.String(),
		"coin", inv.ref.RawID,
		"stage", st.String(),
		"candles", len(out.Series))
}
