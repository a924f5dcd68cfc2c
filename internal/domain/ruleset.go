package domain

import "time"

// Ruleset carries the house-rule parameters referenced by the engine.
// Point values and the five-card cross-category ordering are deliberately
// data, not code: table variants differ between houses.
type Ruleset struct {
	// OpeningCard must be part of the very first play of the very first
	// match of a game.
	OpeningCard Card

	// FiveCardChaining allows any five-card combo to beat any five-card
	// combo of a strictly lower category, per CategoryRank.
	FiveCardChaining bool

	// CardPoints is the match-score cost of each rank left unplayed in a
	// losing hand, indexed by rank.
	CardPoints [NumRanks]int32

	// ScoreThreshold ends the game once any seat's cumulative score
	// reaches it.
	ScoreThreshold int32

	// AutoPassDuration is the shared countdown started after a provably
	// unbeatable play.
	AutoPassDuration time.Duration

	// TurnDuration bounds how long a seat may sit on its turn before the
	// engine acts for it. Zero disables the turn clock.
	TurnDuration time.Duration
}

// CategoryRank orders the five five-card categories for chaining:
// straight < flush < full house < four-of-a-kind < straight flush.
func CategoryRank(kind ComboKind) int {
	switch kind {
	case ComboStraight:
		return 0
	case ComboFlush:
		return 1
	case ComboFullHouse:
		return 2
	case ComboFourOfAKind:
		return 3
	case ComboStraightFlush:
		return 4
	default:
		return -1
	}
}

// DefaultRuleset returns the rules used when no config file overrides them.
func DefaultRuleset() Ruleset {
	r := Ruleset{
		OpeningCard:      Card{Rank: RankThree, Suit: SuitDiamonds},
		FiveCardChaining: true,
		ScoreThreshold:   100,
		AutoPassDuration: 10 * time.Second,
		TurnDuration:     30 * time.Second,
	}
	for rank := RankThree; rank <= RankTen; rank++ {
		r.CardPoints[rank] = 1
	}
	r.CardPoints[RankJack] = 2
	r.CardPoints[RankQueen] = 2
	r.CardPoints[RankKing] = 2
	r.CardPoints[RankAce] = 3
	r.CardPoints[RankTwo] = 5
	return r
}
