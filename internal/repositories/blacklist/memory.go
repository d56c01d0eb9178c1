package blacklist

import (
	"context"
	"errors"
	"sort"
	"sync"
)

// memoryRepository keeps the ban relation as a map of sets, giving O(1)
// membership checks. Both directions are stored so the relation stays symmetric.
type memoryRepository struct {
	mu     sync.RWMutex
	banned map[string]map[string]struct{}
}

// NewMemory creates an in-memory blacklist
func NewMemory() *memoryRepository {
	return &memoryRepository{
		banned: make(map[string]map[string]struct{}),
	}
}

func (r *memoryRepository) Ban(ctx context.Context, input *BanInput) error {
	if err := validateBan(input); err != nil {
		return err
	}

	if input.PlayerID == input.BannedPlayerID {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.add(input.PlayerID, input.BannedPlayerID)
	r.add(input.BannedPlayerID, input.PlayerID)
	return nil
}

func (r *memoryRepository) IsBanned(ctx context.Context, input *IsBannedInput) (bool, error) {
	if input == nil || input.PlayerID == "" || input.OtherPlayerID == "" {
		return false, errors.New("input and player IDs cannot be empty")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.banned[input.PlayerID][input.OtherPlayerID]
	return ok, nil
}

func (r *memoryRepository) GetBanned(ctx context.Context, input *GetBannedInput) (*GetBannedOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, errors.New("input and player ID cannot be empty")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.banned[input.PlayerID]))
	for id := range r.banned[input.PlayerID] {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return &GetBannedOutput{
		PlayerIDs: ids,
	}, nil
}

// add must be called with the write lock held
func (r *memoryRepository) add(who, whom string) {
	set, ok := r.banned[who]
	if !ok {
		set = make(map[string]struct{})
		r.banned[who] = set
	}
	set[whom] = struct{}{}
}
