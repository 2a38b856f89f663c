// Package cache provides result caching for analysis runs.
//
// Analysis of a large codebase is cheap to repeat but not free; caching
// lets the CLI and the API server hand back a previous report when
// neither the file list nor the options changed. Three backends are
// provided:
//   - FileCache: directory-based, for CLI usage
//   - RedisCache: shared cache for server deployments
//   - NullCache: disables caching
//
// Keys are produced by a Keyer so that CLI and API agree on the layout,
// and ScopedKeyer adds a prefix for multi-tenant isolation.
package cache

import (
	"context"
	"time"
)

// TTLs for the cached artifact classes.
const (
	// TTLReport is how long a full analysis report stays valid.
	TTLReport = 24 * time.Hour
	// TTLDiagram is how long rendered diagrams stay valid.
	TTLDiagram = 7 * 24 * time.Hour
)

// Cache is the storage interface shared by all backends.
type Cache interface {
	// Get retrieves the value for key. The second return is false on a
	// miss; an error indicates a backend failure, not a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}
