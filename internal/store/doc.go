// Package store provides a generic in-memory entity repository keyed by
// identity, together with a derived grouping index. The repository owns the
// uniqueness and existence invariants; reads hand out snapshots so callers
// can never mutate internal state through a returned value. Neither type
// locks internally: a repository has exactly one owner at a time, and
// callers needing shared access must serialize it themselves.
package store
