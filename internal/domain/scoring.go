package domain

// HandPoints is the match-score cost of the cards left in a hand at match
// end, per the ruleset's point table. Pure function of hand contents.
func HandPoints(hand []Card, rules Ruleset) int32 {
	var total int32
	for _, c := range hand {
		if c.Rank >= 0 && c.Rank < NumRanks {
			total += rules.CardPoints[c.Rank]
		}
	}
	return total
}
