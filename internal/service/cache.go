package service

import (
	"context"
	"fmt"

	"github.com/Sodstar/mountain-pos/internal/cache"
	"github.com/Sodstar/mountain-pos/pkg/errs"
)

// invalidate drops the cached reads linked to tags once a write has been
// stored. The write is reported as failed when the cache could not be cleared,
// since readers would otherwise see stale data until the TTL runs out.
func invalidate(ctx context.Context, qc *cache.QueryCache, tags ...string) error {
	if err := qc.Invalidate(ctx, tags...); err != nil {
		return fmt.Errorf("invalidating cached %v reads: %w", tags, errs.ErrServiceUnavailable)
	}

	return nil
}
