package blacklist

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"
)

const (
	// Key prefix for Redis; one set per player holding everyone they are split from
	blacklistKeyPrefix = "blacklist:"
)

// Config holds configuration for the Redis blacklist repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed blacklist repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

// Ban adds each player to the other's set in one round trip
func (r *redisRepository) Ban(ctx context.Context, input *BanInput) error {
	if err := validateBan(input); err != nil {
		return err
	}

	if input.PlayerID == input.BannedPlayerID {
		return nil
	}

	pipe := r.client.Pipeline()
	pipe.SAdd(ctx, blacklistKey(input.PlayerID), input.BannedPlayerID)
	pipe.SAdd(ctx, blacklistKey(input.BannedPlayerID), input.PlayerID)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to ban player: %w", err)
	}

	return nil
}

// IsBanned checks one side of the pair; Ban always writes both
func (r *redisRepository) IsBanned(ctx context.Context, input *IsBannedInput) (bool, error) {
	if input == nil || input.PlayerID == "" || input.OtherPlayerID == "" {
		return false, errors.New("input and player IDs cannot be empty")
	}

	banned, err := r.client.SIsMember(ctx, blacklistKey(input.PlayerID), input.OtherPlayerID).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check ban: %w", err)
	}

	return banned, nil
}

// GetBanned returns the members of the player's set
func (r *redisRepository) GetBanned(ctx context.Context, input *GetBannedInput) (*GetBannedOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, errors.New("input and player ID cannot be empty")
	}

	members, err := r.client.SMembers(ctx, blacklistKey(input.PlayerID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list banned players: %w", err)
	}

	sort.Strings(members)
	return &GetBannedOutput{
		PlayerIDs: members,
	}, nil
}

func blacklistKey(playerID string) string {
	return fmt.Sprintf("%s%s", blacklistKeyPrefix, playerID)
}

func validateBan(input *BanInput) error {
	if input == nil || input.PlayerID == "" || input.BannedPlayerID == "" {
		return errors.New("input and player IDs cannot be empty")
	}
	return nil
}
