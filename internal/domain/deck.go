package domain

import (
	"math/rand"
	"sort"
)

// NewDeck returns a sorted 52-card deck.
func NewDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for r := int32(0); r < NumRanks; r++ {
		for s := int32(0); s < NumSuits; s++ {
			deck = append(deck, Card{Rank: r, Suit: s})
		}
	}
	return deck
}

// ShuffleDeck returns a shuffled copy of the given deck.
func ShuffleDeck(deck []Card, rng *rand.Rand) []Card {
	out := make([]Card, len(deck))
	copy(out, deck)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// DealHands splits a full deck into four sorted 13-card hands.
func DealHands(deck []Card) [NumSeats][]Card {
	var hands [NumSeats][]Card
	if len(deck) != DeckSize {
		return hands
	}
	for seat := 0; seat < NumSeats; seat++ {
		hand := append([]Card{}, deck[seat*HandSize:(seat+1)*HandSize]...)
		SortHand(hand)
		hands[seat] = hand
	}
	return hands
}

// SortHand orders a hand by ascending power.
func SortHand(cards []Card) {
	sort.Slice(cards, func(i, j int) bool {
		return CardPower(cards[i]) < CardPower(cards[j])
	})
}
