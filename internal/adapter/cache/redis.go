// Package cache implements the byte-level cache port on Redis. Keys live
// under a configurable namespace so several deployments can share one
// instance without colliding.
package cache

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"om-svc-order/internal/core/domain"
)

const scanBatchSize = 100

type Store struct {
	rdb       *redis.Client
	namespace string
	logger    *zap.Logger
}

func NewStore(addr, namespace string, logger *zap.Logger) (*Store, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	return &Store{
		rdb:       rdb,
		namespace: namespace,
		logger:    logger,
	}, nil
}

// Get returns the stored bytes for key. A missing key and an unreachable
// backend both surface as domain.ErrCacheMiss so callers fall through to the
// authoritative store either way.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.rdb.Get(ctx, s.namespace+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("redis get", zap.Error(err), zap.String("key", key))
		}
		return nil, domain.ErrCacheMiss
	}
	return data, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.rdb.Set(ctx, s.namespace+key, value, ttl).Err()
}

// InvalidateKeys deletes every key each pattern covers. A pattern with a
// trailing "*" is a prefix purge resolved by SCAN; the bare form is also
// deleted directly for the rare key that is its own prefix. SCAN walks only
// keys under the store's namespace, so the cost scales with the namespace,
// not the whole instance.
func (s *Store) InvalidateKeys(ctx context.Context, patterns []string) error {
	for _, pattern := range patterns {
		prefix := strings.TrimSuffix(pattern, "*")

		if err := s.rdb.Del(ctx, s.namespace+prefix).Err(); err != nil {
			return err
		}
		if prefix == pattern {
			continue
		}

		iter := s.rdb.Scan(ctx, 0, s.namespace+prefix+"*", scanBatchSize).Iterator()
		batch := make([]string, 0, scanBatchSize)
		for iter.Next(ctx) {
			batch = append(batch, iter.Val())
			if len(batch) == scanBatchSize {
				if err := s.rdb.Del(ctx, batch...).Err(); err != nil {
					return err
				}
				batch = batch[:0]
			}
		}
		if err := iter.Err(); err != nil {
			return err
		}
		if len(batch) > 0 {
			if err := s.rdb.Del(ctx, batch...).Err(); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Store) Close() error {
	return s.rdb.Close()
}
