package domain

// ComboKind identifies the classified type of a played set of cards.
type ComboKind int32

const (
	ComboInvalid ComboKind = iota
	ComboSingle
	ComboPair
	ComboTriple
	ComboStraight
	ComboFlush
	ComboFullHouse
	ComboFourOfAKind
	ComboStraightFlush
)

var comboKindNames = map[ComboKind]string{
	ComboInvalid:       "invalid",
	ComboSingle:        "single",
	ComboPair:          "pair",
	ComboTriple:        "triple",
	ComboStraight:      "straight",
	ComboFlush:         "flush",
	ComboFullHouse:     "full_house",
	ComboFourOfAKind:   "four_of_a_kind",
	ComboStraightFlush: "straight_flush",
}

func (k ComboKind) String() string {
	if name, ok := comboKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Combo is a classified combination of 1, 2, 3 or 5 cards. It is derived
// at classification time and never persisted.
type Combo struct {
	Kind  ComboKind `json:"kind"`
	Cards []Card    `json:"cards"` // sorted ascending by power
	Value int32     `json:"value"` // comparison key within (kind, count)
	Count int       `json:"count"`
}

// Classify analyzes a set of cards and returns the strongest combination
// they form, or a Combo with Kind ComboInvalid. Only cardinalities 1, 2, 3
// and 5 are legal plays. Five-card sets are tried in descending strength
// order so classification is never ambiguous.
func Classify(cards []Card) Combo {
	n := len(cards)
	if n != 1 && n != 2 && n != 3 && n != 5 {
		return Combo{Kind: ComboInvalid}
	}
	for _, c := range cards {
		if !c.Valid() {
			return Combo{Kind: ComboInvalid}
		}
	}
	if hasDuplicates(cards) {
		return Combo{Kind: ComboInvalid}
	}

	sorted := append([]Card{}, cards...)
	SortHand(sorted)
	top := sorted[n-1]

	if n == 1 {
		return Combo{Kind: ComboSingle, Cards: sorted, Value: CardPower(top), Count: 1}
	}

	if n == 2 || n == 3 {
		if !allSameRank(sorted) {
			return Combo{Kind: ComboInvalid}
		}
		kind := ComboPair
		if n == 3 {
			kind = ComboTriple
		}
		return Combo{Kind: kind, Cards: sorted, Value: CardPower(top), Count: n}
	}

	straight := isStraight(sorted)
	flush := isFlush(sorted)
	switch {
	case straight && flush:
		return Combo{Kind: ComboStraightFlush, Cards: sorted, Value: CardPower(top), Count: 5}
	case isFourOfAKind(sorted):
		return Combo{Kind: ComboFourOfAKind, Cards: sorted, Value: quadValue(sorted), Count: 5}
	case isFullHouse(sorted):
		return Combo{Kind: ComboFullHouse, Cards: sorted, Value: tripleValue(sorted), Count: 5}
	case flush:
		return Combo{Kind: ComboFlush, Cards: sorted, Value: CardPower(top), Count: 5}
	case straight:
		return Combo{Kind: ComboStraight, Cards: sorted, Value: CardPower(top), Count: 5}
	}
	return Combo{Kind: ComboInvalid}
}

// Beats reports whether a beats b. Both combos must be valid. Outside one
// (kind, count) class the answer is false, except for five-card category
// chaining when the ruleset enables it.
func Beats(a, b Combo, rules Ruleset) bool {
	if a.Kind == ComboInvalid || b.Kind == ComboInvalid {
		return false
	}
	if a.Count != b.Count {
		return false
	}
	if a.Kind == b.Kind {
		return a.Value > b.Value
	}
	if a.Count == 5 && rules.FiveCardChaining {
		return CategoryRank(a.Kind) > CategoryRank(b.Kind)
	}
	return false
}

func hasDuplicates(cards []Card) bool {
	seen := make(map[Card]struct{}, len(cards))
	for _, c := range cards {
		if _, ok := seen[c]; ok {
			return true
		}
		seen[c] = struct{}{}
	}
	return false
}

func allSameRank(cards []Card) bool {
	if len(cards) == 0 {
		return false
	}
	r := cards[0].Rank
	for _, c := range cards {
		if c.Rank != r {
			return false
		}
	}
	return true
}

// isStraight expects sorted input: five strictly consecutive rank indices.
// The index order already places 2 highest and 3 lowest, so no wraparound
// straights exist (A-2-3-4-5 is not consecutive by index).
func isStraight(sorted []Card) bool {
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Rank != sorted[i-1].Rank+1 {
			return false
		}
	}
	return true
}

func isFlush(cards []Card) bool {
	s := cards[0].Suit
	for _, c := range cards {
		if c.Suit != s {
			return false
		}
	}
	return true
}

// isFourOfAKind expects sorted input: four equal ranks plus one kicker.
func isFourOfAKind(sorted []Card) bool {
	return sorted[0].Rank == sorted[3].Rank || sorted[1].Rank == sorted[4].Rank
}

// isFullHouse expects sorted input: a triple and a pair in either order.
func isFullHouse(sorted []Card) bool {
	lo3 := sorted[0].Rank == sorted[2].Rank && sorted[3].Rank == sorted[4].Rank
	hi3 := sorted[0].Rank == sorted[1].Rank && sorted[2].Rank == sorted[4].Rank
	return (lo3 || hi3) && sorted[0].Rank != sorted[4].Rank
}

// quadValue is the power of the highest card of the quad; the kicker never
// participates in comparison.
func quadValue(sorted []Card) int32 {
	rank := sorted[2].Rank // middle card always belongs to the quad
	return rank*NumSuits + SuitSpades
}

// tripleValue keys a full house by its triple: the power of the triple's
// highest card.
func tripleValue(sorted []Card) int32 {
	var rank int32
	if sorted[0].Rank == sorted[2].Rank {
		rank = sorted[0].Rank
	} else {
		rank = sorted[4].Rank
	}
	best := int32(-1)
	for _, c := range sorted {
		if c.Rank == rank && CardPower(c) > best {
			best = CardPower(c)
		}
	}
	return best
}
