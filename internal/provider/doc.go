// Package provider implements the three market data provider clients.
//
// Each client exposes one fetch operation returning an Outcome: a tagged
// Success / Unavailable / TransientError result that the fallback chain
// consumes and discards. Clients never return Go errors for fetch failures;
// classification happens here so the orchestrator stays a pure state machine.
//
// Providers:
//   - CMCClient: the authoritative quotes+OHLCV provider (API-key header,
//     entitlement-gated OHLCV endpoint).
//   - BinanceClient: public klines endpoint keyed by plain ticker symbol.
//   - CoinGeckoClient: public OHLC endpoint keyed by long-form coin id.
//
// All emitted candle timestamps are canonical epoch milliseconds.
package provider
