package auth

import (
	"context"
	"time"

	"github.com/redis/rueidis"
)

type RedisTokenStore struct {
	client rueidis.Client
	prefix string
}

func NewRedisTokenStore(client rueidis.Client, keyPrefix string) *RedisTokenStore {
	return &RedisTokenStore{
		client: client,
		prefix: keyPrefix,
	}
}

func (r *RedisTokenStore) key(token string) string {
	return r.prefix + ":" + token
}

func (r *RedisTokenStore) Save(ctx context.Context, token string, userID string, validity time.Duration) error {
	cmd := r.client.B().Set().
		Key(r.key(token)).
		Value(userID).
		Ex(validity).
		Build()

	return r.client.Do(ctx, cmd).Error()
}

func (r *RedisTokenStore) UserID(ctx context.Context, token string) (string, error) {
	cmd := r.client.B().Get().Key(r.key(token)).Build()
	result := r.client.Do(ctx, cmd)

	userID, err := result.ToString()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return "", ErrTokenNotFound
		}
		return "", err
	}

	return userID, nil
}

func (r *RedisTokenStore) Revoke(ctx context.Context, token string) error {
	cmd := r.client.B().Del().Key(r.key(token)).Build()
	return r.client.Do(ctx, cmd).Error()
}
