package nakama

import (
	"encoding/json"

	"bigtwo/internal/app"
	"bigtwo/internal/domain"

	"github.com/heroiclabs/nakama-common/runtime"
)

// PlayCardsRequest is the client payload for OpPlayCards.
type PlayCardsRequest struct {
	Cards []domain.Card `json:"cards"`
}

// GameErrorPayload is sent privately to the seat whose move was rejected.
type GameErrorPayload struct {
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

// LabelPayload is the match label advertised for quick-match queries.
type LabelPayload struct {
	Open  int    `json:"open"`
	Game  string `json:"game"`
	Phase string `json:"phase"`
}

// eventOpCode maps engine event kinds to wire op codes.
func eventOpCode(kind app.EventKind) (int64, bool) {
	switch kind {
	case app.EventMatchStarted:
		return OpMatchStarted, true
	case app.EventHandDealt:
		return OpHandDealt, true
	case app.EventCardPlayed:
		return OpCardPlayed, true
	case app.EventTurnPassed:
		return OpTurnPassed, true
	case app.EventTimerStarted:
		return OpTimerStarted, true
	case app.EventTimerCancelled:
		return OpTimerCancelled, true
	case app.EventTimerExpired:
		return OpTimerExpired, true
	case app.EventMatchEnded:
		return OpMatchEnded, true
	case app.EventGameOver:
		return OpGameOver, true
	}
	return 0, false
}

func marshalPayload(payload any) ([]byte, error) {
	return json.Marshal(payload)
}

// runtimeLoggerAdapter exposes runtime.Logger through the engine's minimal
// logging surface.
type runtimeLoggerAdapter struct {
	logger runtime.Logger
}

func (a runtimeLoggerAdapter) Infof(format string, args ...any) {
	a.logger.Info(format, args...)
}

func (a runtimeLoggerAdapter) Warnf(format string, args ...any) {
	a.logger.Warn(format, args...)
}
