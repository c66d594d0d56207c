// Package conformance holds the behaviour every repository backend must share.
// Each suite is a testify suite that builds fresh repositories through its
// factory fields, so the in-memory and postgres stores run the same checks.
package conformance

import (
	"time"
)

// baseTime is truncated to microseconds, the precision postgres keeps.
func baseTime() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

func pluck[E any, V any](items []E, fn func(E) V) []V {
	out := make([]V, len(items))
	for i, item := range items {
		out[i] = fn(item)
	}

	return out
}

func ptr[T any](v T) *T {
	return &v
}
