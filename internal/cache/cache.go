// Package cache provides the optional result cache consulted by the
// router before dispatching to a backend. Caching is an optimization,
// never a correctness dependency: both operations are total and swallow
// their own failures, so a broken cache degrades to uncached operation.
package cache

import "context"

// Cache is the interface for query result caching. Get treats every
// failure as a miss; Set treats every failure as a no-op.
type Cache interface {
	// Get retrieves a previously stored payload
	Get(ctx context.Context, key string) (any, bool)
	// Set stores a payload under the caller-supplied key
	Set(ctx context.Context, key string, value any)
}
