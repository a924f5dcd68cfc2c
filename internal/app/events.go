package app

import (
	"time"

	"bigtwo/internal/domain"
)

// EventKind identifies emitted engine events for transport dispatch.
type EventKind string

const (
	EventMatchStarted   EventKind = "match_started"
	EventHandDealt      EventKind = "hand_dealt"
	EventCardPlayed     EventKind = "card_played"
	EventTurnPassed     EventKind = "turn_passed"
	EventTimerStarted   EventKind = "timer_started"
	EventTimerCancelled EventKind = "timer_cancelled"
	EventTimerExpired   EventKind = "timer_expired"
	EventMatchEnded     EventKind = "match_ended"
	EventGameOver       EventKind = "game_over"
)

// Event is an engine event produced by an accepted mutation. The realtime
// distribution layer fans it out verbatim; the engine never retries
// delivery.
type Event struct {
	Kind    EventKind
	Payload any
	// RecipientSeats restricts delivery to specific seats; nil means
	// broadcast to every observer.
	RecipientSeats []int
}

type MatchStartedPayload struct {
	MatchNumber   int                  `json:"match_number"`
	FirstTurnSeat int                  `json:"first_turn_seat"`
	HandCounts    [domain.NumSeats]int `json:"hand_counts"`
	OpeningNeeded bool                 `json:"opening_needed"`
}

type HandDealtPayload struct {
	Seat int           `json:"seat"`
	Hand []domain.Card `json:"hand"`
}

type CardPlayedPayload struct {
	Seat           int          `json:"seat"`
	Combo          domain.Combo `json:"combo"`
	NextSeat       int          `json:"next_seat"`
	CardsRemaining int          `json:"cards_remaining"`
}

type TurnPassedPayload struct {
	Seat     int  `json:"seat"`
	NextSeat int  `json:"next_seat"`
	TrickWon bool `json:"trick_won"`
	Forced   bool `json:"forced"`
}

type TimerStartedPayload struct {
	Seat      int           `json:"seat"`
	Combo     domain.Combo  `json:"combo"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
}

type TimerCancelledPayload struct {
	Seat int `json:"seat"` // seat whose move cancelled the countdown
}

type TimerExpiredPayload struct {
	Seat        int   `json:"seat"` // seat that armed the countdown
	ForcedSeats []int `json:"forced_seats"`
}

type MatchEndedPayload struct {
	MatchNumber      int                    `json:"match_number"`
	WinnerSeat       int                    `json:"winner_seat"`
	PerSeatScores    [domain.NumSeats]int32 `json:"per_seat_scores"`
	CumulativeScores [domain.NumSeats]int32 `json:"cumulative_scores"`
}

type GameOverPayload struct {
	WinnerSeat  int                    `json:"winner_seat"`
	FinalScores [domain.NumSeats]int32 `json:"final_scores"`
}
