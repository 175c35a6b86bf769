package provider

import (
	"fmt"

	"github.com/nkoval/coindash/internal/model"
)

// Status tags a provider Outcome.
type Status int

const (
	// StatusSuccess carries a (possibly empty) canonical series.
	StatusSuccess Status = iota
	// StatusUnavailable marks a failure that is expected or permanent for
	// this request: entitlement restrictions, unmappable identifiers,
	// malformed payloads, empty bodies.
	StatusUnavailable
	// StatusTransient marks a failure that might not recur: rate limits,
	// network errors, 5xx responses.
	StatusTransient
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusUnavailable:
		return "unavailable"
	case StatusTransient:
		return "transient"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Well-known failure reasons.
const (
	ReasonNotEntitled = "not entitled"
	ReasonRateLimited = "rate limited"
	ReasonNoMapping   = "no mapping"
	ReasonEmptyBody   = "empty response"
	ReasonMalformed   = "malformed response"
)

// Outcome is the tagged result of a single provider attempt. Created fresh
// per call and consumed immediately by the fallback chain; never persisted.
type Outcome struct {
	Status Status
	Series model.CandleSeries // set only on success
	Reason string             // set only on failure
}

// Success wraps a canonical series. An empty series is a valid success.
func Success(series model.CandleSeries) Outcome {
	return Outcome{Status: StatusSuccess, Series: series}
}

// Unavailable marks an expected or permanent failure.
func Unavailable(reason string) Outcome {
	return Outcome{Status: StatusUnavailable, Reason: reason}
}

// Transient marks a possibly-recoverable failure.
func Transient(reason string) Outcome {
	return Outcome{Status: StatusTransient, Reason: reason}
}

// Failed reports whether the outcome is any non-success.
func (o Outcome) Failed() bool {
	return o.Status != StatusSuccess
}

// APIError represents a non-2xx response from a provider.
type APIError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s api error %d: %s", e.Provider, e.StatusCode, e.Message)
}
