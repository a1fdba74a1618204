package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	redisKeyPrefix   = "lakbay:cache"
	redisVersionKey  = "lakbay:cache:schema_version"
	redisIndexRetain = 30 * 24 * time.Hour
)

// RedisStore backs the cache with Redis. Entry TTLs map onto Redis key
// expiry, so lazy deletion is native; Sweep is a no-op here.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) (*RedisStore, error) {
	s := &RedisStore{client: client}
	if err := s.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return s, nil
}

// ensureSchema records the schema version. Upgrades are additive only:
// namespaces are key prefixes, so a new namespace needs no migration,
// just the recorded version bump.
func (s *RedisStore) ensureSchema(ctx context.Context) error {
	stored, err := s.client.Get(ctx, redisVersionKey).Result()
	if err != nil && err != redis.Nil {
		return fmt.Errorf("cache: reading schema version: %w", err)
	}
	version, _ := strconv.Atoi(stored)
	if version < SchemaVersion {
		if version > 0 {
			log.Printf("cache: upgrading schema version %d -> %d (additive)", version, SchemaVersion)
		}
		if err := s.client.Set(ctx, redisVersionKey, strconv.Itoa(SchemaVersion), 0).Err(); err != nil {
			return fmt.Errorf("cache: writing schema version: %w", err)
		}
	}
	return nil
}

func entryKey(ns Namespace, key string) string {
	return fmt.Sprintf("%s:%s:%s", redisKeyPrefix, ns, key)
}

func indexKey(ns Namespace, secondaryKey string) string {
	return fmt.Sprintf("%s:%s:idx:%s", redisKeyPrefix, ns, secondaryKey)
}

func (s *RedisStore) Get(ctx context.Context, ns Namespace, key string) ([]byte, bool, error) {
	raw, err := s.client.Get(ctx, entryKey(ns, key)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var e Entry
	if err := json.Unmarshal(raw, &e); err != nil {
		// A corrupt entry behaves as absent; drop it.
		s.client.Del(ctx, entryKey(ns, key))
		return nil, false, nil
	}
	if e.expired(time.Now()) {
		s.client.Del(ctx, entryKey(ns, key))
		return nil, false, nil
	}
	return e.Value, true, nil
}

func (s *RedisStore) Set(ctx context.Context, ns Namespace, key string, value []byte, ttl time.Duration, secondaryKey string) error {
	now := time.Now()
	e := Entry{
		Key:          key,
		Value:        value,
		Timestamp:    now,
		ExpiresAt:    now.Add(ttl),
		SecondaryKey: secondaryKey,
	}
	raw, err := json.Marshal(e)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, entryKey(ns, key), raw, ttl).Err(); err != nil {
		return err
	}
	if secondaryKey != "" {
		pipe := s.client.Pipeline()
		pipe.SAdd(ctx, indexKey(ns, secondaryKey), entryKey(ns, key))
		pipe.Expire(ctx, indexKey(ns, secondaryKey), redisIndexRetain)
		if _, err := pipe.Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context, ns Namespace) error {
	pattern := fmt.Sprintf("%s:%s:*", redisKeyPrefix, ns)
	iter := s.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func (s *RedisStore) InvalidateBy(ctx context.Context, ns Namespace, secondaryKey string) (int, error) {
	members, err := s.client.SMembers(ctx, indexKey(ns, secondaryKey)).Result()
	if err != nil && err != redis.Nil {
		return 0, err
	}
	removed := 0
	for _, member := range members {
		n, err := s.client.Del(ctx, member).Result()
		if err != nil {
			return removed, err
		}
		removed += int(n)
	}
	s.client.Del(ctx, indexKey(ns, secondaryKey))
	return removed, nil
}

// Sweep is satisfied by Redis key expiry.
func (s *RedisStore) Sweep(ctx context.Context) (int, error) {
	return 0, nil
}
