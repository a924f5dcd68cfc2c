package domain

import "fmt"

// Rank indices order the thirteen ranks by strength: 3 is the lowest
// rank in the game and 2 is the single highest.
const (
	RankThree int32 = iota
	RankFour
	RankFive
	RankSix
	RankSeven
	RankEight
	RankNine
	RankTen
	RankJack
	RankQueen
	RankKing
	RankAce
	RankTwo
)

// Suit indices break ties between equal ranks, lowest first.
const (
	SuitDiamonds int32 = iota
	SuitClubs
	SuitHearts
	SuitSpades
)

// NumRanks and NumSuits describe the standard 52-card deck.
const (
	NumRanks = 13
	NumSuits = 4
	DeckSize = NumRanks * NumSuits
)

// Card is a single playing card. Identity is (rank, suit); no duplicates
// may ever appear in active play.
type Card struct {
	Rank int32 `json:"rank"` // 0..12 (3=0, A=11, 2=12)
	Suit int32 `json:"suit"` // 0..3 (D=0, C=1, H=2, S=3)
}

var rankNames = [NumRanks]string{"3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A", "2"}
var suitNames = [NumSuits]string{"D", "C", "H", "S"}

// String renders a card as rank+suit, e.g. "3D" or "KS".
func (c Card) String() string {
	if c.Rank < 0 || c.Rank >= NumRanks || c.Suit < 0 || c.Suit >= NumSuits {
		return fmt.Sprintf("?%d/%d", c.Rank, c.Suit)
	}
	return rankNames[c.Rank] + suitNames[c.Suit]
}

// Valid reports whether the card is a member of the standard deck.
func (c Card) Valid() bool {
	return c.Rank >= 0 && c.Rank < NumRanks && c.Suit >= 0 && c.Suit < NumSuits
}

// CardPower is the total order over single cards: rank first, suit as
// tie-break.
func CardPower(c Card) int32 {
	return c.Rank*NumSuits + c.Suit
}

// ContainsAll reports whether hand holds every card in cards, with
// multiset semantics.
func ContainsAll(hand []Card, cards []Card) bool {
	counts := make(map[Card]int, len(hand))
	for _, c := range hand {
		counts[c]++
	}
	for _, c := range cards {
		if counts[c] == 0 {
			return false
		}
		counts[c]--
	}
	return true
}

// RemoveCards removes the specified cards from a hand and returns the
// updated hand.
func RemoveCards(hand []Card, toRemove []Card) []Card {
	if len(toRemove) == 0 || len(hand) == 0 {
		return hand
	}

	removeCounts := make(map[Card]int, len(toRemove))
	for _, card := range toRemove {
		removeCounts[card]++
	}

	updated := make([]Card, 0, len(hand))
	for _, card := range hand {
		if count, ok := removeCounts[card]; ok && count > 0 {
			removeCounts[card] = count - 1
			continue
		}
		updated = append(updated, card)
	}

	return updated
}

// HighestSingle returns the strongest card in a non-empty hand.
func HighestSingle(hand []Card) Card {
	best := hand[0]
	for _, c := range hand[1:] {
		if CardPower(c) > CardPower(best) {
			best = c
		}
	}
	return best
}

// LowestSingle returns the weakest card in a non-empty hand.
func LowestSingle(hand []Card) Card {
	best := hand[0]
	for _, c := range hand[1:] {
		if CardPower(c) < CardPower(best) {
			best = c
		}
	}
	return best
}
