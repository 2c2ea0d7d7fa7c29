package tenant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisKeyPrefix namespaces tenant records in a shared Redis instance.
const DefaultRedisKeyPrefix = "tenant:"

// RedisStore is a Store backed by Redis. Tenant records are stored as JSON
// under both the ID and the subdomain key so either identifier resolves.
type RedisStore struct {
	client    redis.UniversalClient
	keyPrefix string
	ttl       time.Duration
}

// RedisStoreOption configures a RedisStore.
type RedisStoreOption func(*RedisStore)

// WithRedisKeyPrefix overrides the default key prefix.
func WithRedisKeyPrefix(prefix string) RedisStoreOption {
	return func(s *RedisStore) {
		if prefix != "" {
			s.keyPrefix = prefix
		}
	}
}

// WithRedisTTL sets an expiration on stored tenant records.
// Zero (the default) stores records without expiration.
func WithRedisTTL(ttl time.Duration) RedisStoreOption {
	return func(s *RedisStore) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// NewRedisStore creates a Redis-backed tenant store.
func NewRedisStore(client redis.UniversalClient, opts ...RedisStoreOption) *RedisStore {
	store := &RedisStore{
		client:    client,
		keyPrefix: DefaultRedisKeyPrefix,
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

// Put stores a tenant record under its ID and subdomain keys.
func (s *RedisStore) Put(ctx context.Context, t *Tenant) error {
	if t == nil {
		return fmt.Errorf("%w: nil tenant", ErrInvalidIdentifier)
	}

	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("marshal tenant %s: %w", t.ID, err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.keyPrefix+t.ID.String(), data, s.ttl)
	if t.Subdomain != "" {
		pipe.Set(ctx, s.keyPrefix+t.Subdomain, data, s.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}

// Delete removes a tenant's records from Redis.
func (s *RedisStore) Delete(ctx context.Context, t *Tenant) error {
	if t == nil {
		return fmt.Errorf("%w: nil tenant", ErrInvalidIdentifier)
	}

	keys := []string{s.keyPrefix + t.ID.String()}
	if t.Subdomain != "" {
		keys = append(keys, s.keyPrefix+t.Subdomain)
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}

// GetByIdentifier retrieves a tenant by ID or subdomain.
func (s *RedisStore) GetByIdentifier(ctx context.Context, identifier string) (*Tenant, error) {
	data, err := s.client.Get(ctx, s.keyPrefix+identifier).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrTenantNotFound
		}
		return nil, errors.Join(ErrStoreUnavailable, err)
	}

	var t Tenant
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("unmarshal tenant %q: %w", identifier, err)
	}
	return &t, nil
}
