package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"quizbank/internal/question"
)

// DefaultRedisKey is the key holding the bank document.
const DefaultRedisKey = "quizbank:bank"

// RedisBackend stores the bank document as one JSON string value.
type RedisBackend struct {
	client *redis.Client
	key    string
}

// NewRedisBackend wraps client. An empty key uses DefaultRedisKey.
func NewRedisBackend(client *redis.Client, key string) *RedisBackend {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisBackend{client: client, key: key}
}

// OpenRedis connects to addr and verifies the server responds.
func OpenRedis(ctx context.Context, addr, password string, db int, key string) (*RedisBackend, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return NewRedisBackend(client, key), nil
}

// Name identifies the backend.
func (b *RedisBackend) Name() string {
	return "redis key " + b.key
}

// Read loads the document. A missing key is not an error.
func (b *RedisBackend) Read(ctx context.Context) (question.Bank, bool, error) {
	data, err := b.client.Get(ctx, b.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return question.Bank{}, false, nil
	}
	if err != nil {
		return question.Bank{}, false, &ReadError{Source: b.Name(), Err: err}
	}
	bank, err := DecodeBank(b.Name(), data)
	if err != nil {
		return question.Bank{}, true, err
	}
	return bank, true, nil
}

// Write replaces the document.
func (b *RedisBackend) Write(ctx context.Context, bank question.Bank) error {
	payload, err := EncodeBank(bank)
	if err != nil {
		return &WriteError{Source: b.Name(), Err: err}
	}
	if err := b.client.Set(ctx, b.key, payload, 0).Err(); err != nil {
		return &WriteError{Source: b.Name(), Err: err}
	}
	return nil
}

const (
	redisLockTTL   = 30 * time.Second
	redisLockRetry = 10 * time.Millisecond
)

// releaseScript deletes the lock only while it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0`)

// LockKey returns the key used to exclude writers.
func (b *RedisBackend) LockKey() string {
	return b.key + ":lock"
}

// Lock takes a writer lock shared by every process using the same key. The
// lock expires after redisLockTTL if its holder dies.
func (b *RedisBackend) Lock(ctx context.Context) (func() error, error) {
	token := uuid.NewString()
	lockKey := b.LockKey()
	for {
		ok, err := b.client.SetNX(ctx, lockKey, token, redisLockTTL).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(redisLockRetry):
		}
	}
	return func() error {
		return releaseScript.Run(context.Background(), b.client, []string{lockKey}, token).Err()
	}, nil
}

// Close closes the client.
func (b *RedisBackend) Close() error {
	return b.client.Close()
}
