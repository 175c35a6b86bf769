// Package quotes polls latest-price quotes for a watchlist of coins and
// keeps the most recent tick per coin in memory for live-series merging.
package quotes
