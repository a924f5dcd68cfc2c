package bot

import (
	"bigtwo/internal/app"
	"bigtwo/internal/domain"
)

// Agent represents an autonomous bot player occupying a seat. Its moves go
// through the same engine entry points as human moves and are subject to
// the same validation.
type Agent struct {
	ID       string
	Name     string
	Seat     int
	Strategy Brain
}

// Play asks the agent to calculate its move from the engine's public
// projection for its seat.
func (a *Agent) Play(state *app.PublicState, rules domain.Ruleset) (Move, error) {
	if state == nil || len(state.Hand) == 0 {
		return Move{Pass: true}, nil
	}
	move, err := a.Strategy.CalculateMove(state, rules)
	if err != nil {
		return Move{Pass: true}, err
	}
	return move, nil
}
