package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// setScript stores KEYS[1] and links it to the tag sets in KEYS[2:]. A tag set
// lives at least as long as its longest lived member.
var setScript = redis.NewScript(`
local ttl = tonumber(ARGV[2])
redis.call('SET', KEYS[1], ARGV[1], 'PX', ttl)
for i = 2, #KEYS do
	redis.call('SADD', KEYS[i], KEYS[1])
	if redis.call('PTTL', KEYS[i]) < ttl then
		redis.call('PEXPIRE', KEYS[i], ttl)
	end
end
return #KEYS - 1
`)

// invalidateScript drops every member of the tag sets in KEYS together with
// the sets, so a concurrent Set either lands before and is dropped or after
// and starts a new set.
var invalidateScript = redis.NewScript(`
local removed = 0
for _, tag in ipairs(KEYS) do
	local members = redis.call('SMEMBERS', tag)
	for i = 1, #members, 500 do
		removed = removed + redis.call('DEL', unpack(members, i, math.min(i + 499, #members)))
	end
	redis.call('DEL', tag)
end
return removed
`)

type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (r *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, entryKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	return data, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration, tags ...string) error {
	if ttl <= 0 {
		return nil
	}

	keys := make([]string, 0, len(tags)+1)
	keys = append(keys, entryKey(key))
	for _, tag := range tags {
		keys = append(keys, tagKey(tag))
	}

	if err := setScript.Run(ctx, r.client, keys, value, ttl.Milliseconds()).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}

	return nil
}

func (r *RedisCache) Invalidate(ctx context.Context, tags ...string) error {
	if len(tags) == 0 {
		return nil
	}

	keys := make([]string, 0, len(tags))
	for _, tag := range tags {
		keys = append(keys, tagKey(tag))
	}

	if err := invalidateScript.Run(ctx, r.client, keys).Err(); err != nil {
		return fmt.Errorf("redis invalidate failed: %w", err)
	}

	return nil
}

func entryKey(key string) string {
	return fmt.Sprintf("query:%s", key)
}

func tagKey(tag string) string {
	return fmt.Sprintf("tag:%s", tag)
}
