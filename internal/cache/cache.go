package cache

import (
	"context"
	"time"
)

// Cache is the TTL cache port shared by the analytics services. Values are
// JSON-encoded on write and decoded into dest on read, so the in-memory and
// Redis implementations are interchangeable.
type Cache interface {
	// Get decodes the entry for key into dest and reports whether it was a
	// hit. An expired or absent entry is a miss, not an error.
	Get(ctx context.Context, key string, dest any) (bool, error)

	// Set overwrites any existing entry for key with the given TTL.
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}
