package scoreboard

import (
	"context"
	"errors"
	"sync"

	"github.com/KirkDiggler/rochambeau/internal/models"
)

// memoryRepository keeps scores in process memory. Used when no Redis is
// configured; scores are lost on restart.
type memoryRepository struct {
	mu     sync.RWMutex
	scores map[string]*models.Score
}

// NewMemory creates an in-memory scoreboard
func NewMemory() *memoryRepository {
	return &memoryRepository{
		scores: make(map[string]*models.Score),
	}
}

func (r *memoryRepository) IncrementGames(ctx context.Context, input *IncrementGamesInput) error {
	if input == nil || input.PlayerID == "" {
		return errors.New("input and player ID cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.getOrCreate(input.PlayerID).Games++
	return nil
}

func (r *memoryRepository) IncrementWins(ctx context.Context, input *IncrementWinsInput) error {
	if input == nil || input.PlayerID == "" {
		return errors.New("input and player ID cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.getOrCreate(input.PlayerID).Wins++
	return nil
}

func (r *memoryRepository) GetScore(ctx context.Context, input *GetScoreInput) (*models.Score, error) {
	if input == nil || input.PlayerID == "" {
		return nil, errors.New("input and player ID cannot be empty")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	score, ok := r.scores[input.PlayerID]
	if !ok {
		return nil, ErrScoreNotFound
	}

	copied := *score
	return &copied, nil
}

// getOrCreate must be called with the write lock held
func (r *memoryRepository) getOrCreate(playerID string) *models.Score {
	score, ok := r.scores[playerID]
	if !ok {
		score = &models.Score{PlayerID: playerID}
		r.scores[playerID] = score
	}
	return score
}
