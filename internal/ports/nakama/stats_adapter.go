package nakama

import (
	"context"
	"encoding/json"
	"fmt"

	"bigtwo/internal/domain"

	"github.com/heroiclabs/nakama-common/runtime"
)

const (
	leaderboardWins          = "bigtwo_wins"
	storageCollectionResults = "bigtwo_results"
)

// NakamaStatsAdapter implements ports.StatsPort: match results go to a
// storage collection, game wins go to a leaderboard. Bot seats are
// skipped.
type NakamaStatsAdapter struct {
	nk runtime.NakamaModule
	// seatUser resolves a seat index to the occupying user id ("" when
	// empty), supplied by the match handler.
	seatUser func(seat int) string
	isBot    func(userID string) bool
}

// NewNakamaStatsAdapter creates a new stats adapter.
func NewNakamaStatsAdapter(nk runtime.NakamaModule, seatUser func(int) string, isBot func(string) bool) *NakamaStatsAdapter {
	return &NakamaStatsAdapter{nk: nk, seatUser: seatUser, isBot: isBot}
}

// OnMatchEnded records the per-seat score deltas of one finished match.
func (a *NakamaStatsAdapter) OnMatchEnded(ctx context.Context, gameID string, matchNumber int, perSeatScores [domain.NumSeats]int32) error {
	value, err := json.Marshal(map[string]any{
		"match_number": matchNumber,
		"scores":       perSeatScores,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal match result: %w", err)
	}
	_, err = a.nk.StorageWrite(ctx, []*runtime.StorageWrite{{
		Collection:      storageCollectionResults,
		Key:             fmt.Sprintf("%s:%03d", gameID, matchNumber),
		Value:           string(value),
		PermissionRead:  2,
		PermissionWrite: 0,
	}})
	if err != nil {
		return fmt.Errorf("failed to write match result: %w", err)
	}
	return nil
}

// OnGameOver credits the winning seat on the wins leaderboard.
func (a *NakamaStatsAdapter) OnGameOver(ctx context.Context, gameID string, winnerSeat int, finalScores [domain.NumSeats]int32) error {
	userID := a.seatUser(winnerSeat)
	if userID == "" || a.isBot(userID) {
		return nil
	}
	metadata := map[string]any{
		"game_id":      gameID,
		"final_scores": finalScores,
	}
	if _, err := a.nk.LeaderboardRecordWrite(ctx, leaderboardWins, userID, "", 1, 0, metadata, nil); err != nil {
		return fmt.Errorf("failed to write leaderboard record: %w", err)
	}
	return nil
}
