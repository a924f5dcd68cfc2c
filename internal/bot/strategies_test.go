package bot

import (
	"testing"

	"bigtwo/internal/app"
	"bigtwo/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seatViews(counts [domain.NumSeats]int) [domain.NumSeats]app.SeatView {
	var views [domain.NumSeats]app.SeatView
	for s := range views {
		views[s] = app.SeatView{Seat: s, CardsRemaining: counts[s]}
	}
	return views
}

func TestGreedyBotPrefersLargerCombos(t *testing.T) {
	state := &app.PublicState{
		Phase:       domain.PhaseLeading,
		MatchNumber: 2,
		CurrentSeat: 0,
		Seats:       seatViews([domain.NumSeats]int{6, 5, 5, 5}),
		Hand: []domain.Card{
			{Rank: domain.RankFour, Suit: domain.SuitDiamonds},
			{Rank: domain.RankFive, Suit: domain.SuitClubs},
			{Rank: domain.RankSix, Suit: domain.SuitSpades},
			{Rank: domain.RankSeven, Suit: domain.SuitDiamonds},
			{Rank: domain.RankEight, Suit: domain.SuitHearts},
			{Rank: domain.RankTwo, Suit: domain.SuitSpades},
		},
	}

	move, err := (&GreedyBot{}).CalculateMove(state, domain.DefaultRuleset())
	require.NoError(t, err)
	require.False(t, move.Pass)
	assert.Len(t, move.Cards, 5, "the straight sheds the most cards")
	assert.Equal(t, domain.ComboStraight, domain.Classify(move.Cards).Kind)
}

func TestGreedyBotHonorsOpeningCard(t *testing.T) {
	rules := domain.DefaultRuleset()
	state := &app.PublicState{
		Phase:       domain.PhaseLeading,
		MatchNumber: 1,
		CurrentSeat: 0,
		Seats:       seatViews([domain.NumSeats]int{3, 13, 13, 13}),
		Hand: []domain.Card{
			rules.OpeningCard,
			{Rank: domain.RankNine, Suit: domain.SuitHearts},
			{Rank: domain.RankNine, Suit: domain.SuitSpades},
		},
	}

	move, err := (&GreedyBot{}).CalculateMove(state, rules)
	require.NoError(t, err)
	require.False(t, move.Pass)
	assert.Contains(t, move.Cards, rules.OpeningCard, "the first play of the game must include the opening card")
}

func TestGreedyBotPassesWhenOutclassed(t *testing.T) {
	lastPlay := domain.Classify([]domain.Card{{Rank: domain.RankTwo, Suit: domain.SuitSpades}})
	state := &app.PublicState{
		Phase:       domain.PhaseFollowing,
		MatchNumber: 2,
		CurrentSeat: 0,
		LastPlay:    &lastPlay,
		Seats:       seatViews([domain.NumSeats]int{2, 5, 5, 5}),
		Hand: []domain.Card{
			{Rank: domain.RankThree, Suit: domain.SuitDiamonds},
			{Rank: domain.RankFour, Suit: domain.SuitClubs},
		},
	}

	move, err := (&GreedyBot{}).CalculateMove(state, domain.DefaultRuleset())
	require.NoError(t, err)
	assert.True(t, move.Pass)
}

func TestGreedyBotDefendsAgainstOneCardLeft(t *testing.T) {
	lastPlay := domain.Classify([]domain.Card{{Rank: domain.RankFive, Suit: domain.SuitSpades}})
	state := &app.PublicState{
		Phase:       domain.PhaseFollowing,
		MatchNumber: 2,
		CurrentSeat: 0,
		LastPlay:    &lastPlay,
		Seats:       seatViews([domain.NumSeats]int{3, 1, 5, 5}), // next seat on match point
		Hand: []domain.Card{
			{Rank: domain.RankSeven, Suit: domain.SuitDiamonds},
			{Rank: domain.RankTen, Suit: domain.SuitClubs},
			{Rank: domain.RankAce, Suit: domain.SuitSpades},
		},
	}

	move, err := (&GreedyBot{}).CalculateMove(state, domain.DefaultRuleset())
	require.NoError(t, err)
	require.False(t, move.Pass)
	require.Len(t, move.Cards, 1)
	assert.Equal(t, domain.Card{Rank: domain.RankAce, Suit: domain.SuitSpades}, move.Cards[0],
		"only the strongest single is a legal defense")
}

func TestNewAgentRejectsHumanID(t *testing.T) {
	_, err := NewAgent("human-user", 0)
	assert.Error(t, err)

	agent, err := NewAgent(GetBotIdentity(1).UserID, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, agent.Seat)
	assert.NotEmpty(t, agent.Name)
}

func TestIsBot(t *testing.T) {
	assert.True(t, IsBot(GetBotIdentity(0).UserID))
	assert.False(t, IsBot("550e8400-e29b-41d4-a716-446655440000"))
	assert.False(t, IsBot(""))
}
