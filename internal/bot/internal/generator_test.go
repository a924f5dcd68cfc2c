package internal

import (
	"testing"

	"bigtwo/internal/domain"
)

func TestGetValidMovesLeading(t *testing.T) {
	hand := []domain.Card{
		{Rank: domain.RankThree, Suit: domain.SuitDiamonds},
		{Rank: domain.RankThree, Suit: domain.SuitClubs},
		{Rank: domain.RankThree, Suit: domain.SuitHearts},
		{Rank: domain.RankSeven, Suit: domain.SuitSpades},
	}
	moves := GetValidMoves(hand, nil, domain.DefaultRuleset())

	counts := map[domain.ComboKind]int{}
	for _, mv := range moves {
		counts[mv.Combo.Kind]++
	}
	if counts[domain.ComboSingle] != 4 {
		t.Errorf("singles = %d, want 4", counts[domain.ComboSingle])
	}
	if counts[domain.ComboPair] != 3 {
		t.Errorf("pairs = %d, want 3", counts[domain.ComboPair])
	}
	if counts[domain.ComboTriple] != 1 {
		t.Errorf("triples = %d, want 1", counts[domain.ComboTriple])
	}
}

func TestGetValidMovesFollowingSingle(t *testing.T) {
	rules := domain.DefaultRuleset()
	hand := []domain.Card{
		{Rank: domain.RankThree, Suit: domain.SuitDiamonds},
		{Rank: domain.RankNine, Suit: domain.SuitHearts},
		{Rank: domain.RankTwo, Suit: domain.SuitSpades},
	}
	lastPlay := domain.Classify([]domain.Card{{Rank: domain.RankNine, Suit: domain.SuitClubs}})

	moves := GetValidMoves(hand, &lastPlay, rules)
	if len(moves) != 2 {
		t.Fatalf("got %d moves, want 2 beating singles", len(moves))
	}
	for _, mv := range moves {
		if mv.Combo.Kind != domain.ComboSingle {
			t.Errorf("unexpected kind %v", mv.Combo.Kind)
		}
		if !domain.Beats(mv.Combo, lastPlay, rules) {
			t.Errorf("move %v does not beat the last play", mv.Cards)
		}
	}
}

func TestGetValidMovesFiveCardChaining(t *testing.T) {
	rules := domain.DefaultRuleset()
	hand := []domain.Card{
		{Rank: domain.RankThree, Suit: domain.SuitClubs},
		{Rank: domain.RankFive, Suit: domain.SuitClubs},
		{Rank: domain.RankSeven, Suit: domain.SuitClubs},
		{Rank: domain.RankNine, Suit: domain.SuitClubs},
		{Rank: domain.RankJack, Suit: domain.SuitClubs},
	}
	lastPlay := domain.Classify([]domain.Card{
		{Rank: domain.RankTen, Suit: domain.SuitDiamonds},
		{Rank: domain.RankJack, Suit: domain.SuitDiamonds},
		{Rank: domain.RankQueen, Suit: domain.SuitSpades},
		{Rank: domain.RankKing, Suit: domain.SuitDiamonds},
		{Rank: domain.RankAce, Suit: domain.SuitHearts},
	})

	moves := GetValidMoves(hand, &lastPlay, rules)
	if len(moves) != 1 {
		t.Fatalf("got %d moves, want the flush chaining over the straight", len(moves))
	}
	if moves[0].Combo.Kind != domain.ComboFlush {
		t.Errorf("kind = %v, want flush", moves[0].Combo.Kind)
	}

	rules.FiveCardChaining = false
	if moves := GetValidMoves(hand, &lastPlay, rules); len(moves) != 0 {
		t.Errorf("chaining disabled: got %d moves, want 0", len(moves))
	}
}

func TestGetValidMovesNoneWhenOutclassed(t *testing.T) {
	hand := []domain.Card{
		{Rank: domain.RankThree, Suit: domain.SuitDiamonds},
		{Rank: domain.RankFour, Suit: domain.SuitClubs},
	}
	lastPlay := domain.Classify([]domain.Card{{Rank: domain.RankTwo, Suit: domain.SuitSpades}})

	if moves := GetValidMoves(hand, &lastPlay, domain.DefaultRuleset()); len(moves) != 0 {
		t.Errorf("got %d moves against the highest single, want 0", len(moves))
	}
}
