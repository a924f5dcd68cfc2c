package bot

import "fmt"

// NewAgent constructs a bot agent for the given user id and seat.
func NewAgent(userID string, seat int) (*Agent, error) {
	if !IsBot(userID) {
		return nil, fmt.Errorf("user id %q is not a bot id", userID)
	}
	return &Agent{
		ID:       userID,
		Name:     GetBotUsername(userID),
		Seat:     seat,
		Strategy: &GreedyBot{},
	}, nil
}
