package bot

import (
	"sort"

	"bigtwo/internal/app"
	"bigtwo/internal/bot/internal"
	"bigtwo/internal/domain"
)

// GreedyBot sheds as many cards as possible per turn and keeps its high
// cards for later tricks.
type GreedyBot struct{}

func (b *GreedyBot) CalculateMove(state *app.PublicState, rules domain.Ruleset) (Move, error) {
	hand := state.Hand
	if len(hand) == 0 {
		return Move{Pass: true}, nil
	}

	moves := internal.GetValidMoves(hand, state.LastPlay, rules)

	// First play of the game must include the opening card.
	if state.MatchNumber == 1 && len(state.History) == 0 {
		moves = filterContaining(moves, rules.OpeningCard)
	}

	moves = b.applyOneCardLeft(state, rules, moves)
	if len(moves) == 0 {
		return Move{Pass: true}, nil
	}

	sort.Slice(moves, func(i, j int) bool {
		if moves[i].Combo.Count != moves[j].Combo.Count {
			return moves[i].Combo.Count > moves[j].Combo.Count
		}
		return moves[i].Combo.Value < moves[j].Combo.Value
	})
	return Move{Cards: moves[0].Cards}, nil
}

// applyOneCardLeft mirrors the engine's defensive-play obligation so the
// bot never submits a move the validator would bounce.
func (b *GreedyBot) applyOneCardLeft(state *app.PublicState, rules domain.Ruleset, moves []internal.ValidMove) []internal.ValidMove {
	next := (state.CurrentSeat + 1) % domain.NumSeats
	if state.Seats[next].CardsRemaining != 1 {
		return moves
	}
	strongest := domain.CardPower(domain.HighestSingle(state.Hand))

	kept := moves[:0]
	for _, mv := range moves {
		if mv.Combo.Kind == domain.ComboSingle && mv.Combo.Value < strongest {
			continue
		}
		kept = append(kept, mv)
	}
	return kept
}

func filterContaining(moves []internal.ValidMove, card domain.Card) []internal.ValidMove {
	kept := moves[:0]
	for _, mv := range moves {
		for _, c := range mv.Cards {
			if c == card {
				kept = append(kept, mv)
				break
			}
		}
	}
	return kept
}
