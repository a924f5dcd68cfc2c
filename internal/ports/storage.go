package ports

import (
	"context"

	"bigtwo/internal/domain"
)

// StoragePort persists the authoritative state of an active game. Both
// operations are fire-and-forget from the engine's perspective: correctness
// never depends on a write being observed, only on the snapshot being the
// durable record of the game.
type StoragePort interface {
	// SaveSnapshot overwrites the single structured record kept per active
	// game with the post-mutation turn state.
	SaveSnapshot(ctx context.Context, gameID string, game *domain.Game) error

	// AppendPlay appends one record to the game's append-only play history
	// collection. seq is the record's position within the current match.
	AppendPlay(ctx context.Context, gameID string, matchNumber, seq int, record domain.PlayRecord) error
}
