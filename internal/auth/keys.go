package auth

import (
	"context"
	"errors"
	"strconv"

	"github.com/go-redis/redis/v8"
)

const apiKeyPrefix = "trainingsmart-api-key||"

var ErrUnknownAPIKey = errors.New("unknown api key")

// KeyResolver maps device/provider API keys to user IDs. Keys are stored
// in redis so they can be issued and revoked without a deploy.
type KeyResolver struct {
	redisClient *redis.Client
}

func NewKeyResolver(redisClient *redis.Client) *KeyResolver {
	return &KeyResolver{
		redisClient: redisClient,
	}
}

func (kr *KeyResolver) UserIDForKey(ctx context.Context, apiKey string) (int, error) {
	cmd := kr.redisClient.Get(ctx, apiKeyPrefix+apiKey)
	if err := cmd.Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrUnknownAPIKey
		}
		return 0, err
	}

	userID, err := strconv.Atoi(cmd.Val())
	if err != nil {
		return 0, err
	}
	return userID, nil
}

func (kr *KeyResolver) RegisterKey(ctx context.Context, apiKey string, userID int) error {
	return kr.redisClient.Set(ctx, apiKeyPrefix+apiKey, userID, 0).Err()
}

func (kr *KeyResolver) RevokeKey(ctx context.Context, apiKey string) error {
	return kr.redisClient.Del(ctx, apiKeyPrefix+apiKey).Err()
}
