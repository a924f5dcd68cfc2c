package bot

import (
	"bigtwo/internal/app"
	"bigtwo/internal/domain"
)

// Move represents the decision made by a bot.
type Move struct {
	Pass  bool
	Cards []domain.Card
}

// Brain is the interface all bot strategies implement. Strategies only see
// the public projection plus their own hand; a bot is not a privileged
// observer.
type Brain interface {
	CalculateMove(state *app.PublicState, rules domain.Ruleset) (Move, error)
}
