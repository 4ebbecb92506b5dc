package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"gamebalance/internal/kv"

	"github.com/redis/go-redis/v9"
)

const scanBatchSize = 100

type kvStore struct {
	client *redis.Client
}

// NewKVStore exposes the provider's client as a kv.Store. Records are stored without expiry.
func NewKVStore(p *RedisProvider) kv.Store {
	return &kvStore{client: p.Client}
}

func (s *kvStore) Get(ctx context.Context, key string, dst interface{}) error {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return kv.ErrNotFound
		}
		return fmt.Errorf("failed to get %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return nil
}

func (s *kvStore) Set(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := s.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

func (s *kvStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (s *kvStore) ScanPrefix(ctx context.Context, prefix string) ([]kv.Entry, error) {
	pattern := escapeGlob(prefix) + "*"

	seen := make(map[string]struct{})
	var cursor uint64
	for {
		keys, next, err := s.client.Scan(ctx, cursor, pattern, scanBatchSize).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", prefix, err)
		}
		// SCAN may return a key more than once
		for _, k := range keys {
			seen[k] = struct{}{}
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}

	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	entries := make([]kv.Entry, 0, len(keys))
	for start := 0; start < len(keys); start += scanBatchSize {
		end := start + scanBatchSize
		if end > len(keys) {
			end = len(keys)
		}
		batch := keys[start:end]

		values, err := s.client.MGet(ctx, batch...).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", prefix, err)
		}
		for i, v := range values {
			str, ok := v.(string)
			if !ok {
				// deleted between SCAN and MGET
				continue
			}
			entries = append(entries, kv.Entry{Key: batch[i], Value: []byte(str)})
		}
	}

	return entries, nil
}

var globReplacer = strings.NewReplacer(
	`\`, `\\`,
	`*`, `\*`,
	`?`, `\?`,
	`[`, `\[`,
	`]`, `\]`,
)

func escapeGlob(s string) string {
	return globReplacer.Replace(s)
}
