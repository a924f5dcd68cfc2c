package domain

import (
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		cards    []Card
		expected ComboKind
	}{
		{
			name:     "Single",
			cards:    []Card{{Rank: RankThree, Suit: SuitDiamonds}},
			expected: ComboSingle,
		},
		{
			name:     "Pair",
			cards:    []Card{{Rank: RankSeven, Suit: SuitDiamonds}, {Rank: RankSeven, Suit: SuitSpades}},
			expected: ComboPair,
		},
		{
			name:     "Triple",
			cards:    []Card{{Rank: RankKing, Suit: SuitDiamonds}, {Rank: RankKing, Suit: SuitClubs}, {Rank: RankKing, Suit: SuitHearts}},
			expected: ComboTriple,
		},
		{
			name: "Straight",
			cards: []Card{
				{Rank: RankFour, Suit: SuitDiamonds}, {Rank: RankFive, Suit: SuitClubs}, {Rank: RankSix, Suit: SuitSpades},
				{Rank: RankSeven, Suit: SuitDiamonds}, {Rank: RankEight, Suit: SuitHearts},
			},
			expected: ComboStraight,
		},
		{
			name: "StraightEndingOnTwo",
			cards: []Card{
				{Rank: RankTen, Suit: SuitDiamonds}, {Rank: RankJack, Suit: SuitClubs}, {Rank: RankQueen, Suit: SuitSpades},
				{Rank: RankKing, Suit: SuitDiamonds}, {Rank: RankAce, Suit: SuitHearts},
			},
			expected: ComboStraight,
		},
		{
			name: "JQKA2IsAStraight",
			cards: []Card{
				{Rank: RankJack, Suit: SuitDiamonds}, {Rank: RankQueen, Suit: SuitClubs}, {Rank: RankKing, Suit: SuitSpades},
				{Rank: RankAce, Suit: SuitDiamonds}, {Rank: RankTwo, Suit: SuitHearts},
			},
			expected: ComboStraight,
		},
		{
			name: "NoWraparoundThroughTwo",
			cards: []Card{
				{Rank: RankTwo, Suit: SuitDiamonds}, {Rank: RankThree, Suit: SuitClubs}, {Rank: RankFour, Suit: SuitSpades},
				{Rank: RankFive, Suit: SuitDiamonds}, {Rank: RankSix, Suit: SuitHearts},
			},
			expected: ComboInvalid,
		},
		{
			name: "NoWraparoundAroundAce",
			cards: []Card{
				{Rank: RankAce, Suit: SuitDiamonds}, {Rank: RankTwo, Suit: SuitClubs}, {Rank: RankThree, Suit: SuitSpades},
				{Rank: RankFour, Suit: SuitDiamonds}, {Rank: RankFive, Suit: SuitHearts},
			},
			expected: ComboInvalid,
		},
		{
			name: "Flush",
			cards: []Card{
				{Rank: RankThree, Suit: SuitHearts}, {Rank: RankSix, Suit: SuitHearts}, {Rank: RankNine, Suit: SuitHearts},
				{Rank: RankJack, Suit: SuitHearts}, {Rank: RankAce, Suit: SuitHearts},
			},
			expected: ComboFlush,
		},
		{
			name: "FullHouse",
			cards: []Card{
				{Rank: RankNine, Suit: SuitDiamonds}, {Rank: RankNine, Suit: SuitClubs}, {Rank: RankNine, Suit: SuitHearts},
				{Rank: RankFour, Suit: SuitDiamonds}, {Rank: RankFour, Suit: SuitSpades},
			},
			expected: ComboFullHouse,
		},
		{
			name: "FourOfAKindWithKicker",
			cards: []Card{
				{Rank: RankTen, Suit: SuitDiamonds}, {Rank: RankTen, Suit: SuitClubs}, {Rank: RankTen, Suit: SuitHearts},
				{Rank: RankTen, Suit: SuitSpades}, {Rank: RankThree, Suit: SuitDiamonds},
			},
			expected: ComboFourOfAKind,
		},
		{
			name: "StraightFlush",
			cards: []Card{
				{Rank: RankFour, Suit: SuitSpades}, {Rank: RankFive, Suit: SuitSpades}, {Rank: RankSix, Suit: SuitSpades},
				{Rank: RankSeven, Suit: SuitSpades}, {Rank: RankEight, Suit: SuitSpades},
			},
			expected: ComboStraightFlush,
		},
		{
			name:     "MismatchedPair",
			cards:    []Card{{Rank: RankSeven, Suit: SuitDiamonds}, {Rank: RankEight, Suit: SuitSpades}},
			expected: ComboInvalid,
		},
		{
			name: "FourCardsNeverLegal",
			cards: []Card{
				{Rank: RankTen, Suit: SuitDiamonds}, {Rank: RankTen, Suit: SuitClubs},
				{Rank: RankTen, Suit: SuitHearts}, {Rank: RankTen, Suit: SuitSpades},
			},
			expected: ComboInvalid,
		},
		{
			name:     "EmptySet",
			cards:    []Card{},
			expected: ComboInvalid,
		},
		{
			name:     "DuplicateCard",
			cards:    []Card{{Rank: RankSeven, Suit: SuitDiamonds}, {Rank: RankSeven, Suit: SuitDiamonds}},
			expected: ComboInvalid,
		},
		{
			name: "FiveGarbageCards",
			cards: []Card{
				{Rank: RankThree, Suit: SuitDiamonds}, {Rank: RankFive, Suit: SuitClubs}, {Rank: RankNine, Suit: SuitHearts},
				{Rank: RankJack, Suit: SuitSpades}, {Rank: RankTwo, Suit: SuitDiamonds},
			},
			expected: ComboInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			combo := Classify(tt.cards)
			if combo.Kind != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, combo.Kind)
			}
			if tt.expected != ComboInvalid && combo.Count != len(tt.cards) {
				t.Errorf("expected count %d, got %d", len(tt.cards), combo.Count)
			}
		})
	}
}

func TestClassifyStraightFlushBeatsOtherReadings(t *testing.T) {
	// A set that is simultaneously a straight and a flush must classify as
	// the strongest category it forms.
	cards := []Card{
		{Rank: RankNine, Suit: SuitHearts}, {Rank: RankTen, Suit: SuitHearts}, {Rank: RankJack, Suit: SuitHearts},
		{Rank: RankQueen, Suit: SuitHearts}, {Rank: RankKing, Suit: SuitHearts},
	}
	combo := Classify(cards)
	if combo.Kind != ComboStraightFlush {
		t.Fatalf("expected straight flush, got %v", combo.Kind)
	}
}

func TestBeats(t *testing.T) {
	rules := DefaultRuleset()

	tests := []struct {
		name     string
		a        []Card
		b        []Card
		expected bool
	}{
		{
			name:     "HigherRankSingleWins",
			a:        []Card{{Rank: RankFour, Suit: SuitDiamonds}},
			b:        []Card{{Rank: RankThree, Suit: SuitSpades}},
			expected: true,
		},
		{
			name:     "SuitBreaksRankTie",
			a:        []Card{{Rank: RankNine, Suit: SuitHearts}},
			b:        []Card{{Rank: RankNine, Suit: SuitClubs}},
			expected: true,
		},
		{
			name:     "TwoIsTheHighestRank",
			a:        []Card{{Rank: RankTwo, Suit: SuitDiamonds}},
			b:        []Card{{Rank: RankAce, Suit: SuitSpades}},
			expected: true,
		},
		{
			name:     "EqualCardCannotBeatItself",
			a:        []Card{{Rank: RankNine, Suit: SuitHearts}},
			b:        []Card{{Rank: RankNine, Suit: SuitHearts}},
			expected: false,
		},
		{
			name:     "PairCannotBeatSingle",
			a:        []Card{{Rank: RankTwo, Suit: SuitHearts}, {Rank: RankTwo, Suit: SuitSpades}},
			b:        []Card{{Rank: RankThree, Suit: SuitDiamonds}},
			expected: false,
		},
		{
			name:     "PairComparedByTopCard",
			a:        []Card{{Rank: RankEight, Suit: SuitDiamonds}, {Rank: RankEight, Suit: SuitSpades}},
			b:        []Card{{Rank: RankEight, Suit: SuitClubs}, {Rank: RankEight, Suit: SuitHearts}},
			expected: true,
		},
		{
			name: "HigherStraightWins",
			a: []Card{
				{Rank: RankFive, Suit: SuitDiamonds}, {Rank: RankSix, Suit: SuitClubs}, {Rank: RankSeven, Suit: SuitSpades},
				{Rank: RankEight, Suit: SuitDiamonds}, {Rank: RankNine, Suit: SuitHearts},
			},
			b: []Card{
				{Rank: RankFour, Suit: SuitDiamonds}, {Rank: RankFive, Suit: SuitClubs}, {Rank: RankSix, Suit: SuitSpades},
				{Rank: RankSeven, Suit: SuitHearts}, {Rank: RankEight, Suit: SuitHearts},
			},
			expected: true,
		},
		{
			name: "FlushChainsOverStraight",
			a: []Card{
				{Rank: RankThree, Suit: SuitClubs}, {Rank: RankFive, Suit: SuitClubs}, {Rank: RankSeven, Suit: SuitClubs},
				{Rank: RankNine, Suit: SuitClubs}, {Rank: RankJack, Suit: SuitClubs},
			},
			b: []Card{
				{Rank: RankTen, Suit: SuitDiamonds}, {Rank: RankJack, Suit: SuitClubs}, {Rank: RankQueen, Suit: SuitSpades},
				{Rank: RankKing, Suit: SuitDiamonds}, {Rank: RankAce, Suit: SuitHearts},
			},
			expected: true,
		},
		{
			name: "StraightNeverChainsOverFlush",
			a: []Card{
				{Rank: RankTen, Suit: SuitDiamonds}, {Rank: RankJack, Suit: SuitClubs}, {Rank: RankQueen, Suit: SuitSpades},
				{Rank: RankKing, Suit: SuitDiamonds}, {Rank: RankAce, Suit: SuitHearts},
			},
			b: []Card{
				{Rank: RankThree, Suit: SuitClubs}, {Rank: RankFive, Suit: SuitClubs}, {Rank: RankSeven, Suit: SuitClubs},
				{Rank: RankNine, Suit: SuitClubs}, {Rank: RankJack, Suit: SuitClubs},
			},
			expected: false,
		},
		{
			name: "FullHouseComparedByTriple",
			a: []Card{
				{Rank: RankTen, Suit: SuitDiamonds}, {Rank: RankTen, Suit: SuitClubs}, {Rank: RankTen, Suit: SuitHearts},
				{Rank: RankThree, Suit: SuitDiamonds}, {Rank: RankThree, Suit: SuitClubs},
			},
			b: []Card{
				{Rank: RankNine, Suit: SuitDiamonds}, {Rank: RankNine, Suit: SuitClubs}, {Rank: RankNine, Suit: SuitHearts},
				{Rank: RankAce, Suit: SuitDiamonds}, {Rank: RankAce, Suit: SuitClubs},
			},
			expected: true,
		},
		{
			name: "StraightFlushChainsOverFourOfAKind",
			a: []Card{
				{Rank: RankThree, Suit: SuitDiamonds}, {Rank: RankFour, Suit: SuitDiamonds}, {Rank: RankFive, Suit: SuitDiamonds},
				{Rank: RankSix, Suit: SuitDiamonds}, {Rank: RankSeven, Suit: SuitDiamonds},
			},
			b: []Card{
				{Rank: RankTwo, Suit: SuitDiamonds}, {Rank: RankTwo, Suit: SuitClubs}, {Rank: RankTwo, Suit: SuitHearts},
				{Rank: RankTwo, Suit: SuitSpades}, {Rank: RankThree, Suit: SuitHearts},
			},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Classify(tt.a)
			b := Classify(tt.b)
			if a.Kind == ComboInvalid || b.Kind == ComboInvalid {
				t.Fatalf("test combos must classify, got %v and %v", a.Kind, b.Kind)
			}
			if got := Beats(a, b, rules); got != tt.expected {
				t.Errorf("Beats(%v, %v) = %t, want %t", a.Kind, b.Kind, got, tt.expected)
			}
		})
	}
}

func TestBeatsWithoutChaining(t *testing.T) {
	rules := DefaultRuleset()
	rules.FiveCardChaining = false

	flush := Classify([]Card{
		{Rank: RankThree, Suit: SuitClubs}, {Rank: RankFive, Suit: SuitClubs}, {Rank: RankSeven, Suit: SuitClubs},
		{Rank: RankNine, Suit: SuitClubs}, {Rank: RankJack, Suit: SuitClubs},
	})
	straight := Classify([]Card{
		{Rank: RankTen, Suit: SuitDiamonds}, {Rank: RankJack, Suit: SuitHearts}, {Rank: RankQueen, Suit: SuitSpades},
		{Rank: RankKing, Suit: SuitDiamonds}, {Rank: RankAce, Suit: SuitHearts},
	})

	if Beats(flush, straight, rules) {
		t.Fatalf("flush must not chain over straight with chaining disabled")
	}
	if Beats(straight, flush, rules) {
		t.Fatalf("straight can never beat flush")
	}
}

func TestBeatsAntisymmetric(t *testing.T) {
	rules := DefaultRuleset()
	combos := []Combo{
		Classify([]Card{{Rank: RankThree, Suit: SuitDiamonds}}),
		Classify([]Card{{Rank: RankTwo, Suit: SuitSpades}}),
		Classify([]Card{{Rank: RankNine, Suit: SuitDiamonds}, {Rank: RankNine, Suit: SuitHearts}}),
		Classify([]Card{
			{Rank: RankFour, Suit: SuitDiamonds}, {Rank: RankFive, Suit: SuitClubs}, {Rank: RankSix, Suit: SuitSpades},
			{Rank: RankSeven, Suit: SuitDiamonds}, {Rank: RankEight, Suit: SuitHearts},
		}),
		Classify([]Card{
			{Rank: RankThree, Suit: SuitHearts}, {Rank: RankSix, Suit: SuitHearts}, {Rank: RankNine, Suit: SuitHearts},
			{Rank: RankJack, Suit: SuitHearts}, {Rank: RankAce, Suit: SuitHearts},
		}),
	}

	for i, a := range combos {
		for j, b := range combos {
			if Beats(a, b, rules) && Beats(b, a, rules) {
				t.Errorf("combos %d and %d beat each other", i, j)
			}
		}
	}
}
