package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/terraincognita07/wellnest/internal/models"
)

const redisKeyPrefix = "session:"

// RedisStore keeps sessions in Redis as JSON with a server-side TTL, so
// several app instances can share them.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: normalizeTTL(ttl)}
}

// DialRedis connects to addr and verifies the server answers PING.
func DialRedis(ctx context.Context, addr string, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return client, nil
}

func (store *RedisStore) Get(ctx context.Context, id string) (models.Identity, bool, error) {
	raw, err := store.client.Get(ctx, redisKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.Identity{}, false, nil
	}
	if err != nil {
		return models.Identity{}, false, fmt.Errorf("load session: %w", err)
	}

	var identity models.Identity
	if err := json.Unmarshal(raw, &identity); err != nil {
		// Unreadable payloads are treated as a missing session.
		_ = store.client.Del(ctx, redisKeyPrefix+id).Err()
		return models.Identity{}, false, nil
	}
	return identity, true, nil
}

func (store *RedisStore) Save(ctx context.Context, id string, identity models.Identity) error {
	if id == "" {
		return ErrInvalidSessionID
	}

	payload, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := store.client.Set(ctx, redisKeyPrefix+id, payload, store.ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (store *RedisStore) Delete(ctx context.Context, id string) error {
	if err := store.client.Del(ctx, redisKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (store *RedisStore) Close() error {
	return store.client.Close()
}
