package nakama

import (
	"context"
	"encoding/json"
	"fmt"

	"bigtwo/internal/domain"

	"github.com/heroiclabs/nakama-common/runtime"
)

const (
	storageCollectionGames   = "bigtwo_games"
	storageCollectionHistory = "bigtwo_history"
)

// NakamaStorageAdapter implements ports.StoragePort on the Nakama storage
// engine: one snapshot object per active game plus one object per play
// record, keyed by match number and sequence.
type NakamaStorageAdapter struct {
	nk runtime.NakamaModule
}

// NewNakamaStorageAdapter creates a new storage adapter.
func NewNakamaStorageAdapter(nk runtime.NakamaModule) *NakamaStorageAdapter {
	return &NakamaStorageAdapter{nk: nk}
}

// SaveSnapshot overwrites the game's single authoritative snapshot record.
func (a *NakamaStorageAdapter) SaveSnapshot(ctx context.Context, gameID string, game *domain.Game) error {
	value, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	_, err = a.nk.StorageWrite(ctx, []*runtime.StorageWrite{{
		Collection:      storageCollectionGames,
		Key:             gameID,
		Value:           string(value),
		PermissionRead:  0,
		PermissionWrite: 0,
	}})
	if err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

// AppendPlay writes one immutable play-history record.
func (a *NakamaStorageAdapter) AppendPlay(ctx context.Context, gameID string, matchNumber, seq int, record domain.PlayRecord) error {
	value, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal play record: %w", err)
	}
	_, err = a.nk.StorageWrite(ctx, []*runtime.StorageWrite{{
		Collection:      storageCollectionHistory,
		Key:             fmt.Sprintf("%s:%03d:%04d", gameID, matchNumber, seq),
		Value:           string(value),
		PermissionRead:  0,
		PermissionWrite: 0,
	}})
	if err != nil {
		return fmt.Errorf("failed to write play record: %w", err)
	}
	return nil
}
