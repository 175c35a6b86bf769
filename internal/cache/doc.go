// Package cache provides the short-TTL read-through cache that keeps the
// pipeline inside each provider's rate-limit tier.
//
// Entries are keyed by the exact logical request (provider, endpoint,
// resolved identifier, range) and expire passively; there is no explicit
// invalidation, so the staleness bound equals the configured TTL.
//
// Two backends implement the same interface: an in-process memory cache and
// a redis-backed cache for deployments that share quota across replicas.
// Cache failures are absorbed (a miss is always a safe answer); the pipeline
// never fails because its cache did.
package cache
