package messaging

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/KirkDiggler/rochambeau/internal/dice"
)

// defaultKeepAliveLines is the chant sent to idle connections
var defaultKeepAliveLines = []string{
	"Rock, paper, scissors, shoot!",
	"Paper wraps the rock up tight,",
	"Scissors snip the paper's light,",
	"Rock will blunt the scissors' bite,",
	"Round and round we go tonight.",
}

var tieMessages = []string{
	"Stalemate! Nobody blinks.",
	"Great minds think alike. Again!",
	"A draw. The arena demands a rematch.",
	"Nobody wins, nobody loses. Go again.",
}

var winMessages = []string{
	"%s takes the round!",
	"%s carries the day.",
	"Fortune favours %s this time.",
	"%s was the lucky move.",
}

// service implements the Service interface
type service struct {
	roller dice.Roller

	mu    sync.Mutex
	lines []string
	next  int
}

// NewService creates a new messaging service
func NewService(config *ServiceConfig) (Service, error) {
	if config == nil {
		return nil, errors.New("config cannot be nil")
	}

	if config.Roller == nil {
		return nil, errors.New("dice roller cannot be nil")
	}

	lines := config.KeepAliveLines
	if len(lines) == 0 {
		lines = defaultKeepAliveLines
	}

	return &service{
		roller: config.Roller,
		lines:  lines,
	}, nil
}

// GetJoinMessage returns a message for when a player joins a room
func (s *service) GetJoinMessage(ctx context.Context, input *GetJoinMessageInput) (*GetJoinMessageOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, errors.New("player ID cannot be empty")
	}

	return &GetJoinMessageOutput{
		Message: fmt.Sprintf("Player %s joined the game.", input.PlayerID),
	}, nil
}

// GetLeaveMessage returns a message for when a player leaves mid-match
func (s *service) GetLeaveMessage(ctx context.Context, input *GetLeaveMessageInput) (*GetLeaveMessageOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, errors.New("player ID cannot be empty")
	}

	return &GetLeaveMessageOutput{
		Message: fmt.Sprintf("Player %s left the game.", input.PlayerID),
	}, nil
}

// GetRoundSummaryMessage picks a random line for the outcome
func (s *service) GetRoundSummaryMessage(ctx context.Context, input *GetRoundSummaryMessageInput) (*GetRoundSummaryMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if input.Tie {
		return &GetRoundSummaryMessageOutput{
			Message: tieMessages[dice.Pick(s.roller, len(tieMessages))],
		}, nil
	}

	if !input.LuckyMove.IsValid() {
		return nil, fmt.Errorf("invalid lucky move %q", input.LuckyMove)
	}

	template := winMessages[dice.Pick(s.roller, len(winMessages))]
	message := fmt.Sprintf(template, input.LuckyMove.String())
	if input.WinnerCount > 1 {
		message = fmt.Sprintf("%s %d players share the win.", message, input.WinnerCount)
	}

	return &GetRoundSummaryMessageOutput{
		Message: message,
	}, nil
}

// GetKeepAliveMessage returns the chant lines in order, wrapping around
func (s *service) GetKeepAliveMessage(ctx context.Context, input *GetKeepAliveMessageInput) (*GetKeepAliveMessageOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	line := s.lines[s.next]
	s.next = (s.next + 1) % len(s.lines)

	return &GetKeepAliveMessageOutput{
		Message: line,
	}, nil
}
