package nakama

const (
	// RpcQuickMatch is the Nakama RPC id clients call to find or create a
	// lobby-capable match.
	RpcQuickMatch = "quick_match"

	// MatchNameBigTwo is the authoritative match handler name registered
	// with Nakama.
	MatchNameBigTwo = "bigtwo_match"
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpStartGame int64 = 1
	OpPlayCards int64 = 2
	OpPassTurn  int64 = 3

	// Server -> Client events
	OpPlayerJoined   int64 = 101
	OpPlayerLeft     int64 = 102
	OpMatchStarted   int64 = 103
	OpHandDealt      int64 = 104 // sent privately
	OpCardPlayed     int64 = 105
	OpTurnPassed     int64 = 106
	OpTimerStarted   int64 = 107
	OpTimerCancelled int64 = 108
	OpTimerExpired   int64 = 109
	OpMatchEnded     int64 = 110
	OpGameOver       int64 = 111
	OpGameError      int64 = 112
	OpStateSnapshot  int64 = 113 // public state, sent on join/reconnect
)
