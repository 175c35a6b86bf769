// Package pipeline implements the market data resolution pipeline: an
// explicit fallback state machine over the three provider clients, the live
// merge engine, and the never-fails public boundary.
//
// The fallback chain gives each provider exactly one attempt, in a fixed
// order (primary, klines secondary, public OHLC secondary), and degrades to
// an empty series rather than surfacing a fetch failure. One CoinRef is
// resolved per invocation and shared by every attempt so that no provider is
// queried with a diverging identifier.
package pipeline
