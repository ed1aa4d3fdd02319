package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

// Query names a cacheable read. Params are serialized into the key, so two
// calls share an entry only when their parameters are identical.
type Query struct {
	Name   string
	Params interface{}
	Tags   []string
	TTL    time.Duration
}

func (q Query) Key() (string, error) {
	if q.Params == nil {
		return q.Name, nil
	}

	params, err := json.Marshal(q.Params)
	if err != nil {
		return "", fmt.Errorf("serializing params of %s: %w", q.Name, err)
	}

	return q.Name + ":" + string(params), nil
}

// QueryCache memoizes named reads on top of a Cache backend.
type QueryCache struct {
	backend    Cache
	defaultTTL time.Duration
	group      singleflight.Group
	generation atomic.Uint64
}

func NewQueryCache(backend Cache, defaultTTL time.Duration) *QueryCache {
	return &QueryCache{backend: backend, defaultTTL: defaultTTL}
}

// Invalidate drops every cached read linked to tags. Fetches that started
// before the call are not written back to the backend.
func (qc *QueryCache) Invalidate(ctx context.Context, tags ...string) error {
	qc.generation.Add(1)
	if err := qc.backend.Invalidate(ctx, tags...); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "QueryCache").Strs("tags", tags).Msg("failed to invalidate cache")
		return err
	}

	return nil
}

// Remember returns the cached result of q, running fetch on a miss. Both paths
// decode the same serialized bytes, so a hit is indistinguishable from the
// live read it was stored from.
func Remember[T any](ctx context.Context, qc *QueryCache, q Query, fetch func(ctx context.Context) (T, error)) (result T, err error) {
	key, err := q.Key()
	if err != nil {
		return
	}

	raw, err := qc.backend.Get(ctx, key)
	switch {
	case err == nil:
		if err = json.Unmarshal(raw, &result); err == nil {
			return result, nil
		}
		log.Ctx(ctx).Warn().Err(err).Str("component", "QueryCache").Str("key", key).Msg("discarding undecodable cache entry")
	case !errors.Is(err, ErrCacheMiss):
		log.Ctx(ctx).Warn().Err(err).Str("component", "QueryCache").Str("key", key).Msg("cache read failed")
	}

	generation := qc.generation.Load()
	flightKey := key + "#" + strconv.FormatUint(generation, 10)

	// the shared fetch outlives any single caller so one cancelled request
	// does not fail the others waiting on it
	fetchCtx := context.WithoutCancel(ctx)

	ch := qc.group.DoChan(flightKey, func() (interface{}, error) {
		value, err := fetch(fetchCtx)
		if err != nil {
			return nil, err
		}

		raw, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("serializing result of %s: %w", q.Name, err)
		}

		ttl := q.TTL
		if ttl == 0 {
			ttl = qc.defaultTTL
		}

		if qc.generation.Load() == generation {
			if err := qc.backend.Set(fetchCtx, key, raw, ttl, q.Tags...); err != nil {
				log.Ctx(fetchCtx).Warn().Err(err).Str("component", "QueryCache").Str("key", key).Msg("cache write failed")
			}

			// an invalidation raced with the write above
			if qc.generation.Load() != generation {
				if err := qc.backend.Invalidate(fetchCtx, q.Tags...); err != nil {
					log.Ctx(fetchCtx).Error().Err(err).Str("component", "QueryCache").Str("key", key).Msg("stale entry left after racing invalidation")
				}
			}
		}

		return raw, nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return result, ctx.Err()
	case res = <-ch:
	}

	if res.Err != nil {
		return result, res.Err
	}

	var decoded T
	if err = json.Unmarshal(res.Val.([]byte), &decoded); err != nil {
		return
	}

	return decoded, nil
}
