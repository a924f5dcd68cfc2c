package app

import (
	"time"

	"bigtwo/internal/domain"
)

// SeatView is the public per-seat projection: counts and scores, never
// hand contents.
type SeatView struct {
	Seat            int   `json:"seat"`
	CardsRemaining  int   `json:"cards_remaining"`
	CumulativeScore int32 `json:"cumulative_score"`
	LastMatchScore  int32 `json:"last_match_score"`
}

// TimerView projects an active auto-pass countdown. Only the start instant
// and duration are authoritative; RemainingMs is a convenience derived at
// the moment of this read.
type TimerView struct {
	Seat        int          `json:"seat"`
	Combo       domain.Combo `json:"combo"`
	StartedAt   time.Time    `json:"started_at"`
	DurationMs  int64        `json:"duration_ms"`
	RemainingMs int64        `json:"remaining_ms"`
}

// PublicState is the observer-facing snapshot of the turn state: the
// canonical record minus every other seat's private hand.
type PublicState struct {
	GameID          string                    `json:"game_id"`
	Phase           domain.Phase              `json:"phase"`
	MatchNumber     int                       `json:"match_number"`
	CurrentSeat     int                       `json:"current_seat"`
	LastPlay        *domain.Combo             `json:"last_play,omitempty"`
	LastPlaySeat    int                       `json:"last_play_seat"`
	PassCount       int                       `json:"pass_count"`
	Seats           [domain.NumSeats]SeatView `json:"seats"`
	History         []domain.PlayRecord       `json:"history"`
	Timer           *TimerView                `json:"timer,omitempty"`
	MatchWinnerSeat int                       `json:"match_winner_seat"`
	GameWinnerSeat  int                       `json:"game_winner_seat"`

	// Hand is the viewer's own hand; absent for spectators.
	Hand []domain.Card `json:"hand,omitempty"`
}

// toPublicView redacts private hands at the query boundary. The canonical
// state stays internal; this projection is the only shape observers see.
func toPublicView(gameID string, g *domain.Game, viewerSeat int, now time.Time) *PublicState {
	view := &PublicState{
		GameID:          gameID,
		Phase:           g.Phase,
		MatchNumber:     g.MatchNumber,
		CurrentSeat:     g.CurrentSeat,
		LastPlaySeat:    g.LastPlaySeat,
		PassCount:       g.PassCount,
		History:         append([]domain.PlayRecord{}, g.History...),
		MatchWinnerSeat: g.MatchWinnerSeat,
		GameWinnerSeat:  g.GameWinnerSeat,
	}
	if g.LastPlay != nil {
		lp := *g.LastPlay
		view.LastPlay = &lp
	}
	for s := 0; s < domain.NumSeats; s++ {
		view.Seats[s] = SeatView{
			Seat:            s,
			CardsRemaining:  len(g.Hands[s]),
			CumulativeScore: g.CumulativeScores[s],
			LastMatchScore:  g.LastMatchScores[s],
		}
	}
	if t := g.Timer; t != nil {
		view.Timer = &TimerView{
			Seat:        t.Seat,
			Combo:       t.Combo,
			StartedAt:   t.StartedAt,
			DurationMs:  t.Duration.Milliseconds(),
			RemainingMs: t.Remaining(now).Milliseconds(),
		}
	}
	if viewerSeat >= 0 && viewerSeat < domain.NumSeats {
		view.Hand = append([]domain.Card{}, g.Hands[viewerSeat]...)
	}
	return view
}
