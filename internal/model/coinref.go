package model

import (
	"strconv"
	"strings"
)

// CoinRef is a resolved dashboard coin identifier. The dashboard addresses
// coins by a composite "symbol-numericId" token ("btc-1", "eth-1027"); each
// provider wants a different slice of it. A CoinRef is resolved once per
// request and reused for every provider attempt in the same fallback chain,
// so all providers see the same identifier.
type CoinRef struct {
	RawID     string // Original composite token, as received
	NumericID string // Trailing numeric token, if present
	Symbol    string // Upper-cased symbol portion
}

// ParseCoinRef resolves a composite identifier. If the trailing token (split
// on "-") is numeric it becomes NumericID and the remainder the symbol;
// otherwise the whole token is the symbol, upper-cased. Never fails.
func ParseCoinRef(rawID string) CoinRef {
	parts := strings.Split(rawID, "-")
	if len(parts) >= 2 {
		last := parts[len(parts)-1]
		if _, err := strconv.Atoi(last); err == nil {
			return CoinRef{
				RawID:     rawID,
				NumericID: last,
				Symbol:    strings.ToUpper(strings.Join(parts[:len(parts)-1], "-")),
			}
		}
	}
	return CoinRef{RawID: rawID, Symbol: strings.ToUpper(rawID)}
}

// QueryParam returns the request parameter name and value a provider should
// use for this coin: the numeric id when known, the symbol otherwise.
func (r CoinRef) QueryParam() (name, value string) {
	if r.NumericID != "" {
		return "id", r.NumericID
	}
	return "symbol", r.Symbol
}

// Identifier returns the value half of QueryParam.
func (r CoinRef) Identifier() string {
	_, v := r.QueryParam()
	return v
}

// SlugToken returns the first token of the raw identifier, lower-cased.
// Used to derive candidate long-form coin ids ("bitcoin-1" -> "bitcoin").
func (r CoinRef) SlugToken() string {
	token, _, _ := strings.Cut(r.RawID, "-")
	return strings.ToLower(token)
}
