package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrTokenNotFound    = errors.New("token not found")
	ErrRedisUnavailable = errors.New("redis unavailable")
	ErrExtendFailed     = errors.New("token extend failed")
)

const (
	UserTokenPrefix = "login:user:token"
	UserTokenExpire = 30 * time.Minute
)

// TokenRepository checks that the bearer token a request carries is the one
// the auth service last issued for the user.
type TokenRepository struct{}

func (r *TokenRepository) Get(ctx context.Context, userID uint64) (string, error) {
	key := fmt.Sprintf("%s:%d", UserTokenPrefix, userID)
	token, err := Client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrTokenNotFound
	}
	if err != nil {
		return "", ErrRedisUnavailable
	}
	return token, nil
}

func (r *TokenRepository) Extend(ctx context.Context, userID uint64) error {
	key := fmt.Sprintf("%s:%d", UserTokenPrefix, userID)
	if _, err := Client.Expire(ctx, key, UserTokenExpire).Result(); err != nil {
		return ErrExtendFailed
	}
	return nil
}
