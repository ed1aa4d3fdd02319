package cache

import (
	"context"
	"errors"
	"time"
)

const (
	TagProducts   = "products"
	TagCategories = "categories"
	TagBrands     = "brands"
	TagDrivers    = "drivers"
	TagUsers      = "users"
)

var ErrCacheMiss = errors.New("cache miss")

// Cache stores raw query results under a key. Every entry is linked to zero or
// more tags and Invalidate drops all entries linked to any of the given tags.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration, tags ...string) error
	Invalidate(ctx context.Context, tags ...string) error
}
