package internal

import (
	"bigtwo/internal/domain"
)

// ValidMove represents a possible legal play.
type ValidMove struct {
	Cards []domain.Card
	Combo domain.Combo
}

// GetValidMoves returns all legal plays for a hand against the last played
// combination. A nil lastPlay means the seat is leading and may play any
// legal combo.
func GetValidMoves(hand []domain.Card, lastPlay *domain.Combo, rules domain.Ruleset) []ValidMove {
	sorted := append([]domain.Card{}, hand...)
	domain.SortHand(sorted)

	var candidates []ValidMove
	if lastPlay == nil {
		candidates = append(candidates, subsetsOfSize(sorted, 1)...)
		candidates = append(candidates, subsetsOfSize(sorted, 2)...)
		candidates = append(candidates, subsetsOfSize(sorted, 3)...)
		candidates = append(candidates, subsetsOfSize(sorted, 5)...)
		return candidates
	}

	for _, mv := range subsetsOfSize(sorted, lastPlay.Count) {
		if domain.Beats(mv.Combo, *lastPlay, rules) {
			candidates = append(candidates, mv)
		}
	}
	return candidates
}

// subsetsOfSize enumerates every classifiable subset of the given size.
// Hands hold at most 13 cards, so brute force stays small (C(13,5)=1287).
func subsetsOfSize(hand []domain.Card, size int) []ValidMove {
	var moves []ValidMove
	pick := make([]domain.Card, 0, size)

	var walk func(start int)
	walk = func(start int) {
		if len(pick) == size {
			combo := domain.Classify(pick)
			if combo.Kind != domain.ComboInvalid {
				moves = append(moves, ValidMove{Cards: append([]domain.Card{}, pick...), Combo: combo})
			}
			return
		}
		for i := start; i <= len(hand)-(size-len(pick)); i++ {
			pick = append(pick, hand[i])
			walk(i + 1)
			pick = pick[:len(pick)-1]
		}
	}
	walk(0)
	return moves
}
