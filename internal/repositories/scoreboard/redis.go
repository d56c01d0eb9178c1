package scoreboard

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/KirkDiggler/rochambeau/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefix for Redis; one hash per player
	scoreKeyPrefix = "score:"

	gamesField = "games"
	winsField  = "wins"
)

// Config holds configuration for the Redis scoreboard repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed scoreboard repository
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

// IncrementGames bumps the games field of the player's hash
func (r *redisRepository) IncrementGames(ctx context.Context, input *IncrementGamesInput) error {
	if input == nil || input.PlayerID == "" {
		return errors.New("input and player ID cannot be empty")
	}

	if err := r.client.HIncrBy(ctx, scoreKey(input.PlayerID), gamesField, 1).Err(); err != nil {
		return fmt.Errorf("failed to increment games: %w", err)
	}

	return nil
}

// IncrementWins bumps the wins field of the player's hash
func (r *redisRepository) IncrementWins(ctx context.Context, input *IncrementWinsInput) error {
	if input == nil || input.PlayerID == "" {
		return errors.New("input and player ID cannot be empty")
	}

	if err := r.client.HIncrBy(ctx, scoreKey(input.PlayerID), winsField, 1).Err(); err != nil {
		return fmt.Errorf("failed to increment wins: %w", err)
	}

	return nil
}

// GetScore reads the player's hash
func (r *redisRepository) GetScore(ctx context.Context, input *GetScoreInput) (*models.Score, error) {
	if input == nil || input.PlayerID == "" {
		return nil, errors.New("input and player ID cannot be empty")
	}

	fields, err := r.client.HGetAll(ctx, scoreKey(input.PlayerID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get score: %w", err)
	}

	if len(fields) == 0 {
		return nil, ErrScoreNotFound
	}

	score := &models.Score{PlayerID: input.PlayerID}
	if score.Games, err = parseCounter(fields[gamesField]); err != nil {
		return nil, fmt.Errorf("corrupt games counter for %s: %w", input.PlayerID, err)
	}
	if score.Wins, err = parseCounter(fields[winsField]); err != nil {
		return nil, fmt.Errorf("corrupt wins counter for %s: %w", input.PlayerID, err)
	}

	return score, nil
}

func scoreKey(playerID string) string {
	return fmt.Sprintf("%s%s", scoreKeyPrefix, playerID)
}

// parseCounter treats a missing field as zero
func parseCounter(raw string) (int64, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseInt(raw, 10, 64)
}
