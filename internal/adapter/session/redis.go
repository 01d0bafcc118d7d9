package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/ntotao/baby-tracker/internal/capture"
	"github.com/ntotao/baby-tracker/internal/domain"
)

const keyPrefix = "babytracker:session:"

// RedisStore keeps sessions in Redis; expiry is the key TTL.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a new RedisStore.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Ping verifies the connection.
func (s *RedisStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w: %v", domain.ErrStorageUnavailable, err)
	}
	return nil
}

func redisKey(key capture.Key) string {
	return fmt.Sprintf("%s%d:%d", keyPrefix, key.ChatID, key.UserID)
}

// Get returns the session for key, or nil when absent or expired.
func (s *RedisStore) Get(ctx context.Context, key capture.Key) (*capture.Session, error) {
	data, err := s.client.Get(ctx, redisKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, mapError(err)
	}

	var sess capture.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &sess, nil
}

// Put stores the session; every write restarts the TTL.
func (s *RedisStore) Put(ctx context.Context, key capture.Key, sess *capture.Session, ttl time.Duration) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.client.Set(ctx, redisKey(key), data, ttl).Err(); err != nil {
		return mapError(err)
	}
	return nil
}

// Delete removes the session for key.
func (s *RedisStore) Delete(ctx context.Context, key capture.Key) error {
	if err := s.client.Del(ctx, redisKey(key)).Err(); err != nil {
		return mapError(err)
	}
	return nil
}

// TTL returns the remaining lifetime of a stored session, zero when absent.
func (s *RedisStore) TTL(ctx context.Context, key capture.Key) (time.Duration, error) {
	d, err := s.client.TTL(ctx, redisKey(key)).Result()
	if err != nil {
		return 0, mapError(err)
	}
	if d < 0 {
		return 0, nil
	}
	return d, nil
}

func mapError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("redis: %w: %v", domain.ErrStorageUnavailable, err)
}
