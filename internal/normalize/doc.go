// Package normalize implements the temporal normalizer: epoch unit detection,
// per-provider interval vocabulary, and range policy.
//
// The canonical internal timestamp is milliseconds since epoch. Consumers that
// need seconds (charting surfaces) convert at their own boundary with
// ToSeconds, never internally.
//
// No two providers share an interval vocabulary or a horizon limit, so both
// are mapped through small fixed tables here rather than passed through.
package normalize
