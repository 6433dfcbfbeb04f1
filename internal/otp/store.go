// Package otp implements the mobile-number verification flow: a short
// numeric code delivered over SMS, held with a TTL, verified once.
package otp

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pro-joshi-grammer/sahayatha/internal/domain"
)

// Store holds pending codes. Take removes the code it returns, which is
// what makes verification single-use.
type Store interface {
	Put(ctx context.Context, mobile, code string, ttl time.Duration) error
	Take(ctx context.Context, mobile string) (string, error)
}

// MemoryStore is the in-process fallback when Redis is not configured.
type MemoryStore struct {
	mu      sync.Mutex
	pending map[string]memoryEntry
	now     func() time.Time
}

type memoryEntry struct {
	code      string
	expiresAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		pending: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (s *MemoryStore) Put(_ context.Context, mobile, code string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[mobile] = memoryEntry{code: code, expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *MemoryStore) Take(_ context.Context, mobile string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.pending[mobile]
	if !ok {
		return "", domain.ErrOTPNotFound
	}
	delete(s.pending, mobile)
	if s.now().After(entry.expiresAt) {
		return "", domain.ErrOTPNotFound
	}
	return entry.code, nil
}

// RedisStore keeps pending codes in Redis so verification works across
// replicas. The TTL is enforced by Redis itself.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects using a redis URL (redis://host:port/db).
func NewRedisStore(url string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return &RedisStore{client: redis.NewClient(opts)}, nil
}

func (s *RedisStore) Put(ctx context.Context, mobile, code string, ttl time.Duration) error {
	return s.client.Set(ctx, redisKey(mobile), code, ttl).Err()
}

func (s *RedisStore) Take(ctx context.Context, mobile string) (string, error) {
	code, err := s.client.GetDel(ctx, redisKey(mobile)).Result()
	if err == redis.Nil {
		return "", domain.ErrOTPNotFound
	}
	if err != nil {
		return "", err
	}
	return code, nil
}

func redisKey(mobile string) string {
	return "otp:" + mobile
}
