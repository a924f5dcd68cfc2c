package domain

import (
	"fmt"
	"time"
)

// NumSeats and HandSize fix the four-player deal.
const (
	NumSeats = 4
	HandSize = 13
)

// Phase represents the lifecycle stage of the authoritative turn state.
type Phase string

const (
	// PhaseLeading means no play has been recorded this trick; the current
	// seat may play any legal combo and cannot pass.
	PhaseLeading Phase = "leading"
	// PhaseFollowing means a last play exists; the current seat must beat
	// it or pass.
	PhaseFollowing Phase = "following"
	// PhaseMatchFinished is terminal per match: a seat emptied its hand.
	PhaseMatchFinished Phase = "match_finished"
	// PhaseGameOver is terminal overall: a cumulative score crossed the
	// threshold.
	PhaseGameOver Phase = "game_over"
)

// PlayRecord is one entry of the append-only play history for the current
// match.
type PlayRecord struct {
	Seat     int       `json:"seat"`
	Cards    []Card    `json:"cards,omitempty"`
	Pass     bool      `json:"pass"`
	PlayedAt time.Time `json:"played_at"`
}

// Game is the authoritative state for one game instance. All mutation goes
// through SubmitPlay, SubmitPass and StartNextMatch; callers are expected
// to serialize access per game.
type Game struct {
	Rules Ruleset
	Phase Phase

	MatchNumber  int
	CurrentSeat  int
	LastPlay     *Combo // nil while leading
	LastPlaySeat int
	PassCount    int // consecutive passes since the last non-pass play, 0..3

	Hands   [NumSeats][]Card
	History []PlayRecord

	Timer         *AutoPassTimer // nil when no countdown is active
	TurnStartedAt time.Time

	CumulativeScores [NumSeats]int32
	LastMatchScores  [NumSeats]int32
	MatchWinnerSeat  int // -1 until a match finishes
	GameWinnerSeat   int // -1 until the game is over

	Halted bool
}

// MoveResult describes what an accepted move did to the state.
type MoveResult struct {
	Seat           int
	Pass           bool
	Combo          *Combo
	NextSeat       int
	TrickWon       bool // three passes returned the lead to LastPlaySeat
	TimerStarted   bool
	TimerCancelled bool
	MatchFinished  bool
	GameOver       bool
}

// NewGame deals the first match from the given full deck. The seat holding
// the opening card leads.
func NewGame(rules Ruleset, deck []Card, now time.Time) (*Game, error) {
	if len(deck) != DeckSize {
		return nil, fmt.Errorf("deck has %d cards, want %d", len(deck), DeckSize)
	}
	g := &Game{
		Rules:           rules,
		Phase:           PhaseLeading,
		MatchNumber:     1,
		MatchWinnerSeat: -1,
		GameWinnerSeat:  -1,
		LastPlaySeat:    -1,
		TurnStartedAt:   now,
	}
	g.Hands = DealHands(deck)
	g.CurrentSeat = g.seatHolding(rules.OpeningCard)
	if err := g.checkIntegrity(); err != nil {
		return nil, err
	}
	return g, nil
}

// SubmitPlay validates a proposed play against the current snapshot and
// commits it. A rejection leaves the state untouched.
func (g *Game) SubmitPlay(seat int, cards []Card, now time.Time) (*MoveResult, error) {
	if err := g.checkTurn(seat); err != nil {
		return nil, err
	}
	if !ContainsAll(g.Hands[seat], cards) {
		return nil, ruleErr(ReasonCardNotHeld, "seat %d does not hold all of %v", seat, cards)
	}

	combo := Classify(cards)
	if combo.Kind == ComboInvalid {
		return nil, ruleErr(ReasonInvalidCombo, "%v is not a legal combination", cards)
	}

	if g.MatchNumber == 1 && len(g.History) == 0 && !containsCard(cards, g.Rules.OpeningCard) {
		return nil, ruleErr(ReasonMustIncludeOpening, "first play of the game must include %s", g.Rules.OpeningCard)
	}

	if g.Phase == PhaseFollowing {
		if !Beats(combo, *g.LastPlay, g.Rules) {
			return nil, ruleErr(ReasonCannotBeat, "%s (%d) does not beat %s (%d)",
				combo.Kind, combo.Value, g.LastPlay.Kind, g.LastPlay.Value)
		}
	}

	if err := g.checkOneCardLeft(seat, &combo); err != nil {
		return nil, err
	}

	// Commit.
	res := &MoveResult{Seat: seat, Combo: &combo}
	res.TimerCancelled = g.clearTimer()
	g.Hands[seat] = RemoveCards(g.Hands[seat], cards)
	g.History = append(g.History, PlayRecord{Seat: seat, Cards: combo.Cards, PlayedAt: now})
	g.LastPlay = &combo
	g.LastPlaySeat = seat
	g.PassCount = 0
	g.Phase = PhaseFollowing

	if len(g.Hands[seat]) == 0 {
		g.finishMatch(seat)
		res.MatchFinished = true
		res.GameOver = g.Phase == PhaseGameOver
		res.NextSeat = -1
		return res, g.checkIntegrity()
	}

	g.CurrentSeat = g.nextSeat(seat)
	g.TurnStartedAt = now
	res.NextSeat = g.CurrentSeat

	if IsUnbeatable(combo, g.UnseenCards(seat), g.Rules) {
		g.Timer = &AutoPassTimer{
			StartedAt: now,
			Duration:  g.Rules.AutoPassDuration,
			Seat:      seat,
			Combo:     combo,
		}
		res.TimerStarted = true
	}

	return res, g.checkIntegrity()
}

// SubmitPass validates and commits a pass for the given seat.
func (g *Game) SubmitPass(seat int, now time.Time) (*MoveResult, error) {
	if err := g.checkTurn(seat); err != nil {
		return nil, err
	}
	if g.Phase == PhaseLeading {
		return nil, ruleErr(ReasonCannotPassLeading, "seat %d must lead a combination", seat)
	}
	if err := g.checkOneCardLeft(seat, nil); err != nil {
		return nil, err
	}

	// Any accepted move clears an armed countdown; the seat acted, so the
	// countdown's premise of waiting on it is gone.
	res := &MoveResult{Seat: seat, Pass: true}
	res.TimerCancelled = g.clearTimer()
	g.History = append(g.History, PlayRecord{Seat: seat, Pass: true, PlayedAt: now})
	g.PassCount++

	if g.PassCount >= NumSeats-1 {
		// Everyone else passed; the last non-passing seat leads a new trick.
		g.CurrentSeat = g.LastPlaySeat
		g.LastPlay = nil
		g.PassCount = 0
		g.Phase = PhaseLeading
		res.TrickWon = true
	} else {
		g.CurrentSeat = g.nextSeat(seat)
	}
	g.TurnStartedAt = now
	res.NextSeat = g.CurrentSeat

	return res, g.checkIntegrity()
}

// StartNextMatch re-deals after a finished match. The winner of the
// previous match leads, with no opening-card constraint.
func (g *Game) StartNextMatch(deck []Card, now time.Time) error {
	if g.Halted {
		return ErrGameHalted
	}
	if g.Phase != PhaseMatchFinished {
		return ruleErr(ReasonWrongPhase, "cannot re-deal in phase %q", g.Phase)
	}
	if len(deck) != DeckSize {
		return fmt.Errorf("deck has %d cards, want %d", len(deck), DeckSize)
	}

	g.MatchNumber++
	g.Hands = DealHands(deck)
	g.History = nil
	g.LastPlay = nil
	g.PassCount = 0
	g.Timer = nil
	g.CurrentSeat = g.MatchWinnerSeat
	g.MatchWinnerSeat = -1
	g.Phase = PhaseLeading
	g.TurnStartedAt = now
	return g.checkIntegrity()
}

// HandCounts exposes the public per-seat remaining card counts.
func (g *Game) HandCounts() [NumSeats]int {
	var counts [NumSeats]int
	for s, h := range g.Hands {
		counts[s] = len(h)
	}
	return counts
}

// UnseenCards returns the full deck minus all cards publicly played this
// match and minus the given seat's own remaining hand. Opponents' hands
// are a subset of this set, which is what makes the unbeatable proof
// sound.
func (g *Game) UnseenCards(seat int) []Card {
	seen := make(map[Card]struct{}, DeckSize)
	for _, rec := range g.History {
		for _, c := range rec.Cards {
			seen[c] = struct{}{}
		}
	}
	for _, c := range g.Hands[seat] {
		seen[c] = struct{}{}
	}

	unseen := make([]Card, 0, DeckSize-len(seen))
	for _, c := range NewDeck() {
		if _, ok := seen[c]; !ok {
			unseen = append(unseen, c)
		}
	}
	return unseen
}

func (g *Game) checkTurn(seat int) error {
	if g.Halted {
		return ErrGameHalted
	}
	if g.Phase != PhaseLeading && g.Phase != PhaseFollowing {
		return ruleErr(ReasonWrongPhase, "no moves accepted in phase %q", g.Phase)
	}
	if seat < 0 || seat >= NumSeats {
		return ruleErr(ReasonNotYourTurn, "seat %d does not exist", seat)
	}
	if seat != g.CurrentSeat {
		return ruleErr(ReasonNotYourTurn, "seat %d acted but seat %d is current", seat, g.CurrentSeat)
	}
	return nil
}

// checkOneCardLeft enforces the defensive-play obligation: when the next
// seat holds exactly one card, the acting seat may not pass away a winning
// single nor dump anything weaker than its strongest single where a single
// play is legal. combo is nil for a pass.
func (g *Game) checkOneCardLeft(seat int, combo *Combo) error {
	next := g.nextSeat(seat)
	if len(g.Hands[next]) != 1 {
		return nil
	}
	strongest := HighestSingle(g.Hands[seat])

	if g.Phase == PhaseLeading {
		// Leading a single must lead the strongest one; multi-card leads
		// are unrestricted.
		if combo != nil && combo.Kind == ComboSingle && combo.Value < CardPower(strongest) {
			return ruleErr(ReasonMustPlayHighestSingle, "next seat has one card; lead %s, not %s", strongest, combo.Cards[0])
		}
		return nil
	}

	if g.LastPlay == nil || g.LastPlay.Kind != ComboSingle {
		return nil // a single-card play is not legal against this trick
	}
	if !Beats(Classify([]Card{strongest}), *g.LastPlay, g.Rules) {
		return nil // no eligible single; passing is fine
	}
	if combo == nil {
		return ruleErr(ReasonMustPlayHighestSingle, "next seat has one card; seat %d must play %s, not pass", seat, strongest)
	}
	if combo.Kind == ComboSingle && combo.Value < CardPower(strongest) {
		return ruleErr(ReasonMustPlayHighestSingle, "next seat has one card; play %s, not %s", strongest, combo.Cards[0])
	}
	return nil
}

func (g *Game) finishMatch(winner int) {
	g.clearTimer()
	g.MatchWinnerSeat = winner
	g.Phase = PhaseMatchFinished

	var deltas [NumSeats]int32
	for s := 0; s < NumSeats; s++ {
		if s == winner {
			continue
		}
		deltas[s] = HandPoints(g.Hands[s], g.Rules)
	}
	g.LastMatchScores = deltas
	for s, d := range deltas {
		g.CumulativeScores[s] += d
	}

	if g.thresholdCrossed() {
		g.Phase = PhaseGameOver
		g.GameWinnerSeat = g.lowestScoreSeat()
	}
}

func (g *Game) thresholdCrossed() bool {
	for _, score := range g.CumulativeScores {
		if score >= g.Rules.ScoreThreshold {
			return true
		}
	}
	return false
}

// lowestScoreSeat picks the overall winner: lowest cumulative score, ties
// broken by lowest seat index.
func (g *Game) lowestScoreSeat() int {
	best := 0
	for s := 1; s < NumSeats; s++ {
		if g.CumulativeScores[s] < g.CumulativeScores[best] {
			best = s
		}
	}
	return best
}

func (g *Game) clearTimer() bool {
	if g.Timer == nil {
		return false
	}
	g.Timer = nil
	return true
}

func (g *Game) nextSeat(seat int) int {
	return (seat + 1) % NumSeats
}

func (g *Game) seatHolding(card Card) int {
	for s, hand := range g.Hands {
		if containsCard(hand, card) {
			return s
		}
	}
	return 0
}

func containsCard(cards []Card, target Card) bool {
	for _, c := range cards {
		if c == target {
			return true
		}
	}
	return false
}

// checkIntegrity verifies the card-conservation and pass-count invariants
// after every mutation. A failure halts the game: the condition is never
// silently repaired.
func (g *Game) checkIntegrity() error {
	if g.PassCount < 0 || g.PassCount >= NumSeats {
		g.Halted = true
		return &InconsistencyError{Detail: fmt.Sprintf("pass count %d out of range", g.PassCount)}
	}

	counts := make(map[Card]int, DeckSize)
	total := 0
	for _, hand := range g.Hands {
		for _, c := range hand {
			counts[c]++
			total++
		}
	}
	for _, rec := range g.History {
		for _, c := range rec.Cards {
			counts[c]++
			total++
		}
	}
	if total != DeckSize {
		g.Halted = true
		return &InconsistencyError{Detail: fmt.Sprintf("%d cards in hands plus history, want %d", total, DeckSize)}
	}
	for c, n := range counts {
		if n != 1 {
			g.Halted = true
			return &InconsistencyError{Detail: fmt.Sprintf("card %s appears %d times", c, n)}
		}
	}
	return nil
}
