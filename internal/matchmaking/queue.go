package matchmaking

import (
	"context"
	"errors"
	"sync"

	"github.com/KirkDiggler/rochambeau/internal/dice"
	"github.com/KirkDiggler/rochambeau/internal/repositories/blacklist"
	"go.uber.org/zap"
)

// jitterSides is the die rolled for every candidate; only a 1 lets the
// candidate be considered, so two out of three go back to the tail.
const jitterSides = 3

// Config holds the queue's collaborators
type Config struct {
	Blacklist blacklist.Repository
	Roller    dice.Roller
	Logger    *zap.Logger
}

// Queue is the FIFO of players waiting for a room. GetMatch pulls batches of
// players that have not banned each other.
type Queue struct {
	blacklist blacklist.Repository
	roller    dice.Roller
	logger    *zap.Logger

	mu       sync.Mutex
	items    []string
	pending  []string
	changed  chan struct{}
	version  uint64
	matching bool
}

// New creates an empty queue
func New(cfg *Config) (*Queue, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Blacklist == nil {
		return nil, errors.New("blacklist repository cannot be nil")
	}

	if cfg.Roller == nil {
		return nil, errors.New("dice roller cannot be nil")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Queue{
		blacklist: cfg.Blacklist,
		roller:    cfg.Roller,
		logger:    logger,
		changed:   make(chan struct{}),
	}, nil
}

// Add appends a player to the tail. Duplicates are not detected.
func (q *Queue) Add(playerID string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.items = append(q.items, playerID)
	q.notifyLocked()
}

// Remove drops the first occurrence of the player, including from a batch
// that GetMatch is still assembling. Missing players are ignored.
func (q *Queue) Remove(playerID string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if i := indexOf(q.pending, playerID); i >= 0 {
		q.pending = append(q.pending[:i], q.pending[i+1:]...)
		q.notifyLocked()
		return
	}

	if i := indexOf(q.items, playerID); i >= 0 {
		q.items = append(q.items[:i], q.items[i+1:]...)
		q.notifyLocked()
	}
}

// Len is the number of waiting entries, not counting a batch in progress
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Snapshot returns the waiting entries in order
func (q *Queue) Snapshot() []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]string, len(q.items))
	copy(out, q.items)
	return out
}

// GetMatch blocks until it can remove n players that have not banned each
// other and returns them in acceptance order.
//
// Candidates are taken from the head. Each one rolls a three-sided die and goes
// back to the tail unless it rolls a 1; a surviving candidate that conflicts
// with the batch so far also goes back to the tail. When every waiting player
// conflicts with the batch, the batch is released to the tail so a different
// head gets a chance. Once each player has had that chance the call sleeps
// until the queue changes.
func (q *Queue) GetMatch(ctx context.Context, n int) ([]string, error) {
	if n < 1 {
		return nil, ErrInvalidBatchSize
	}

	q.mu.Lock()
	if q.matching {
		q.mu.Unlock()
		return nil, ErrMatchInProgress
	}
	q.matching = true
	q.mu.Unlock()

	var (
		rejected    = make(map[string]struct{})
		releases    int
		seenVersion uint64
	)

	for {
		if err := ctx.Err(); err != nil {
			q.abandon()
			return nil, err
		}

		q.mu.Lock()
		if seenVersion != q.version {
			seenVersion = q.version
			releases = 0
			clear(rejected)
		}

		if len(q.pending) == n {
			batch := q.pending
			q.pending = nil
			q.matching = false
			q.mu.Unlock()
			return batch, nil
		}

		population := len(q.items) + len(q.pending)
		if population < n || releases >= population {
			wait := q.changed
			q.mu.Unlock()

			select {
			case <-wait:
			case <-ctx.Done():
			}
			continue
		}

		head := q.items[0]
		if q.roller.Roll(jitterSides) != 1 {
			q.items = append(q.items[1:], head)
			q.mu.Unlock()
			continue
		}

		// head stays queued during the lookup so Remove still finds it
		batch := append([]string(nil), q.pending...)
		q.mu.Unlock()

		conflict := q.conflicts(ctx, head, batch)

		q.mu.Lock()
		if q.version != seenVersion {
			q.mu.Unlock()
			continue
		}
		q.items = q.items[1:]

		if conflict {
			q.items = append(q.items, head)
			rejected[head] = struct{}{}

			if allIn(q.items, rejected) {
				q.items = append(q.items, q.pending...)
				q.pending = nil
				releases++
				clear(rejected)
			}
			q.mu.Unlock()
			continue
		}

		q.pending = append(q.pending, head)
		clear(rejected)
		q.mu.Unlock()
	}
}

// conflicts reports whether the candidate may not join the batch. Lookup
// failures count as conflicts.
func (q *Queue) conflicts(ctx context.Context, candidate string, batch []string) bool {
	for _, member := range batch {
		if member == candidate {
			return true
		}

		banned, err := q.blacklist.IsBanned(ctx, &blacklist.IsBannedInput{
			PlayerID:      candidate,
			OtherPlayerID: member,
		})
		if err != nil {
			q.logger.Warn("blacklist lookup failed, treating as conflict",
				zap.String("player", candidate),
				zap.String("other", member),
				zap.Error(err))
			return true
		}
		if banned {
			return true
		}
	}
	return false
}

// abandon puts a partial batch back at the head and ends the match
func (q *Queue) abandon() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.pending) > 0 {
		q.items = append(q.pending, q.items...)
		q.pending = nil
		q.notifyLocked()
	}
	q.matching = false
}

// notifyLocked wakes a sleeping GetMatch
func (q *Queue) notifyLocked() {
	q.version++
	close(q.changed)
	q.changed = make(chan struct{})
}

func indexOf(ids []string, id string) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

func allIn(ids []string, set map[string]struct{}) bool {
	for _, id := range ids {
		if _, ok := set[id]; !ok {
			return false
		}
	}
	return true
}
