package verification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "verification:"

// RedisStore keeps entries in Redis so every instance sees the same codes. Keys expire
// with the entry.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
	now    func() time.Time
}

// NewRedisStore creates a RedisStore on top of client. The caller owns the client.
func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: redisKeyPrefix,
		now:    time.Now,
	}
}

func (s *RedisStore) key(email string) string {
	return s.prefix + email
}

// Save stores entry under the email key, expiring it at entry.ExpiresAt.
func (s *RedisStore) Save(ctx context.Context, email string, entry Entry) error {
	ttl := entry.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return fmt.Errorf("verification entry for %s already expired", email)
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode verification entry: %w", err)
	}
	if err := s.client.Set(ctx, s.key(email), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store verification entry: %w", err)
	}
	return nil
}

// Get loads the entry for email; a missing key reports false.
func (s *RedisStore) Get(ctx context.Context, email string) (Entry, bool, error) {
	data, err := s.client.Get(ctx, s.key(email)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("failed to read verification entry: %w", err)
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return Entry{}, false, fmt.Errorf("failed to decode verification entry: %w", err)
	}
	return entry, true, nil
}

// Delete removes the key for email.
func (s *RedisStore) Delete(ctx context.Context, email string) error {
	if err := s.client.Del(ctx, s.key(email)).Err(); err != nil {
		return fmt.Errorf("failed to delete verification entry: %w", err)
	}
	return nil
}
