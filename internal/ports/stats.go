package ports

import "context"

// StatsPort is the statistics/leaderboard collaborator. It is solely
// responsible for any persistent historical record beyond the current
// game's lifetime; the engine does not retry failed deliveries.
type StatsPort interface {
	// OnMatchEnded reports the per-seat score deltas of a finished match.
	OnMatchEnded(ctx context.Context, gameID string, matchNumber int, perSeatScores [4]int32) error

	// OnGameOver reports the overall winner and final cumulative scores.
	OnGameOver(ctx context.Context, gameID string, winnerSeat int, finalScores [4]int32) error
}
