// Package model defines the value types shared across the market data
// resolution pipeline.
//
// Conventions:
//   - Candle timestamps: int64 milliseconds since Unix epoch. Provider clients
//     are the unit boundary; nothing downstream of them sees seconds.
//   - Identifiers: dashboard-level composite tokens ("btc-1") resolve to a
//     CoinRef once per request and are threaded through every provider attempt.
//
// All types are plain values. Nothing in this package is persisted or shared;
// series and ticks cross component boundaries by copy.
package model
