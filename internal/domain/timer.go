package domain

import "time"

// AutoPassTimer is the shared countdown started when a play is provably
// unbeatable. Only the start instant and the fixed duration are stored;
// remaining time is always derived from them, so independent observers can
// never disagree about expiry except by their own clock read.
type AutoPassTimer struct {
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
	Seat      int           `json:"seat"`
	Combo     Combo         `json:"combo"`
}

// Remaining computes time left on the countdown as observed at now. Never
// negative.
func (t *AutoPassTimer) Remaining(now time.Time) time.Duration {
	rem := t.StartedAt.Add(t.Duration).Sub(now)
	if rem < 0 {
		return 0
	}
	return rem
}

// Expired reports whether the countdown has elapsed as observed at now.
func (t *AutoPassTimer) Expired(now time.Time) bool {
	return !now.Before(t.StartedAt.Add(t.Duration))
}

// IsUnbeatable reports whether no combination formable from the unseen
// cards can beat the played combo. Unseen is the full deck minus the
// public play history and the actor's own remaining hand; every opponent
// hand is a subset of it, so a true result is a proof.
func IsUnbeatable(combo Combo, unseen []Card, rules Ruleset) bool {
	switch combo.Kind {
	case ComboSingle:
		if bestSingle(unseen) > combo.Value {
			return false
		}
	case ComboPair:
		if bestOfAKind(unseen, 2) > combo.Value {
			return false
		}
	case ComboTriple:
		if bestOfAKind(unseen, 3) > combo.Value {
			return false
		}
	case ComboStraight, ComboFlush, ComboFullHouse, ComboFourOfAKind, ComboStraightFlush:
		if bestFiveCard(unseen, combo.Kind) > combo.Value {
			return false
		}
		if rules.FiveCardChaining {
			for _, kind := range []ComboKind{ComboStraight, ComboFlush, ComboFullHouse, ComboFourOfAKind, ComboStraightFlush} {
				if CategoryRank(kind) > CategoryRank(combo.Kind) && bestFiveCard(unseen, kind) >= 0 {
					return false
				}
			}
		}
	default:
		return false
	}
	return true
}

// bestSingle returns the highest single-card power in the set, or -1.
func bestSingle(cards []Card) int32 {
	best := int32(-1)
	for _, c := range cards {
		if p := CardPower(c); p > best {
			best = p
		}
	}
	return best
}

// bestOfAKind returns the strongest pair or triple value formable, or -1.
// The value of a same-rank set is the power of its highest card.
func bestOfAKind(cards []Card, n int) int32 {
	counts, tops := rankProfile(cards)
	best := int32(-1)
	for r := int32(0); r < NumRanks; r++ {
		if counts[r] >= n && tops[r] > best {
			best = tops[r]
		}
	}
	return best
}

// bestFiveCard returns the strongest value of the given five-card category
// formable from the set, or -1 when none exists.
func bestFiveCard(cards []Card, kind ComboKind) int32 {
	switch kind {
	case ComboStraight:
		return bestStraight(cards)
	case ComboFlush:
		return bestFlush(cards)
	case ComboFullHouse:
		return bestFullHouse(cards)
	case ComboFourOfAKind:
		return bestFourOfAKind(cards)
	case ComboStraightFlush:
		return bestStraightFlush(cards)
	}
	return -1
}

func bestStraight(cards []Card) int32 {
	_, tops := rankProfile(cards)
	best := int32(-1)
	for lo := int32(0); lo+4 < NumRanks; lo++ {
		ok := true
		for r := lo; r <= lo+4; r++ {
			if tops[r] < 0 {
				ok = false
				break
			}
		}
		if ok && tops[lo+4] > best {
			best = tops[lo+4]
		}
	}
	return best
}

func bestFlush(cards []Card) int32 {
	best := int32(-1)
	for s := int32(0); s < NumSuits; s++ {
		count := 0
		top := int32(-1)
		for _, c := range cards {
			if c.Suit != s {
				continue
			}
			count++
			if p := CardPower(c); p > top {
				top = p
			}
		}
		if count >= 5 && top > best {
			best = top
		}
	}
	return best
}

func bestFullHouse(cards []Card) int32 {
	counts, tops := rankProfile(cards)
	best := int32(-1)
	for r := int32(0); r < NumRanks; r++ {
		if counts[r] < 3 {
			continue
		}
		hasPair := false
		for other := int32(0); other < NumRanks; other++ {
			if other != r && counts[other] >= 2 {
				hasPair = true
				break
			}
		}
		if hasPair && tops[r] > best {
			best = tops[r]
		}
	}
	return best
}

func bestFourOfAKind(cards []Card) int32 {
	counts, _ := rankProfile(cards)
	best := int32(-1)
	for r := int32(0); r < NumRanks; r++ {
		if counts[r] != 4 {
			continue
		}
		// A kicker from any other rank is required.
		if len(cards) < 5 {
			continue
		}
		if v := r*NumSuits + SuitSpades; v > best {
			best = v
		}
	}
	return best
}

func bestStraightFlush(cards []Card) int32 {
	var present [NumSuits][NumRanks]bool
	for _, c := range cards {
		present[c.Suit][c.Rank] = true
	}
	best := int32(-1)
	for s := int32(0); s < NumSuits; s++ {
		for lo := int32(0); lo+4 < NumRanks; lo++ {
			ok := true
			for r := lo; r <= lo+4; r++ {
				if !present[s][r] {
					ok = false
					break
				}
			}
			if !ok {
				continue
			}
			if v := (lo+4)*NumSuits + s; v > best {
				best = v
			}
		}
	}
	return best
}

// rankProfile returns per-rank card counts and the highest power present
// per rank (-1 when absent).
func rankProfile(cards []Card) (counts [NumRanks]int, tops [NumRanks]int32) {
	for i := range tops {
		tops[i] = -1
	}
	for _, c := range cards {
		counts[c.Rank]++
		if p := CardPower(c); p > tops[c.Rank] {
			tops[c.Rank] = p
		}
	}
	return counts, tops
}
