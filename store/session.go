package store

import (
	"context"
	"errors"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// SessionStore keeps the current refresh token of each user in redis.
// Storing a new token invalidates the previous one.
type SessionStore struct {
	client *redis.Client
}

func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

func sessionKey(userID uint) string {
	return strconv.FormatUint(uint64(userID), 10)
}

func (s *SessionStore) Save(ctx context.Context, userID uint, refresh string) error {
	return s.client.Set(ctx, sessionKey(userID), refresh, 0).Err()
}

func (s *SessionStore) Get(ctx context.Context, userID uint) (string, error) {
	token, err := s.client.Get(ctx, sessionKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	return token, err
}
