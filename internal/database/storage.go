package database

import (
	"context"
	"time"

	logg "server/internal/logger"

	"github.com/valkey-io/valkey-go"
)

// LimiterStorage adapts the valkey cache client to fiber's Storage
// interface so rate-limit counters can be shared across instances. Keys are
// namespaced to keep limiter state apart from anything else on the server.
type LimiterStorage struct {
	client CacheClient
	prefix string
	log    logg.Logger
}

func NewLimiterStorage(client CacheClient, prefix string) *LimiterStorage {
	return &LimiterStorage{
		client: client,
		prefix: prefix,
		log:    logg.New("limiterStorage"),
	}
}

func (s *LimiterStorage) key(k string) string {
	return s.prefix + ":" + k
}

func (s *LimiterStorage) Get(key string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	value, err := s.client.Do(ctx, s.client.B().Get().Key(s.key(key)).Build()).AsBytes()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, nil
		}
		return nil, s.log.Function("Get").Err("failed to get limiter key", err, "key", key)
	}

	return value, nil
}

func (s *LimiterStorage) Set(key string, value []byte, expiration time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	builder := s.client.B().Set().Key(s.key(key)).Value(string(value))
	var cmd valkey.Completed
	if expiration > 0 {
		cmd = builder.Ex(expiration).Build()
	} else {
		cmd = builder.Build()
	}

	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return s.log.Function("Set").Err("failed to set limiter key", err, "key", key)
	}

	return nil
}

func (s *LimiterStorage) Delete(key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := s.client.Do(ctx, s.client.B().Del().Key(s.key(key)).Build()).Error(); err != nil {
		return s.log.Function("Delete").Err("failed to delete limiter key", err, "key", key)
	}

	return nil
}

// Reset drops only this storage's namespace, not the whole cache database.
func (s *LimiterStorage) Reset() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	keys, err := s.client.Do(ctx, s.client.B().Keys().Pattern(s.prefix+":*").Build()).AsStrSlice()
	if err != nil {
		return s.log.Function("Reset").Err("failed to list limiter keys", err)
	}
	if len(keys) == 0 {
		return nil
	}

	if err := s.client.Do(ctx, s.client.B().Del().Key(keys...).Build()).Error(); err != nil {
		return s.log.Function("Reset").Err("failed to reset limiter keys", err)
	}

	return nil
}

// Close is a no-op; the underlying client is owned by database.DB.
func (s *LimiterStorage) Close() error {
	return nil
}
