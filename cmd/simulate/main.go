// Command simulate runs bot-vs-bot games against the engine service and
// reports outcomes. It is the fastest way to exercise the full rule set,
// including the auto-pass countdown, without a Nakama server.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"sync"
	"time"

	"bigtwo/internal/app"
	"bigtwo/internal/bot"
	"bigtwo/internal/domain"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// simClock is an injectable clock the simulator advances manually so the
// auto-pass countdown resolves without real waiting.
type simClock struct {
	mu sync.Mutex
	t  time.Time
}

func newSimClock() *simClock {
	return &simClock{t: time.Now()}
}

func (c *simClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *simClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func main() {
	games := flag.Int("games", 10, "number of games to simulate")
	seed := flag.Int64("seed", time.Now().UnixNano(), "rng seed")
	verbose := flag.Bool("verbose", false, "log every move")
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	log.WithFields(logrus.Fields{"games": *games, "seed": *seed}).Info("Starting simulation")

	rules := domain.DefaultRuleset()
	clock := newSimClock()
	svc := app.NewService(rules,
		app.WithRNG(rand.New(rand.NewSource(*seed))),
		app.WithClock(clock.Now),
		app.WithLogger(log),
	)

	wins := [domain.NumSeats]int{}
	for i := 0; i < *games; i++ {
		gameID := uuid.NewString()
		winner, err := runGame(svc, clock, rules, gameID, log)
		if err != nil {
			log.WithError(err).WithField("game_id", gameID).Error("Game aborted")
			os.Exit(1)
		}
		wins[winner]++
	}

	for seat, count := range wins {
		log.WithFields(logrus.Fields{
			"seat": seat,
			"name": bot.GetBotIdentity(seat).Username,
			"wins": count,
		}).Info("Final standings")
	}
}

func runGame(svc *app.Service, clock *simClock, rules domain.Ruleset, gameID string, log *logrus.Logger) (int, error) {
	if _, err := svc.CreateGame(gameID); err != nil {
		return -1, err
	}
	defer svc.RemoveGame(gameID)

	agents := [domain.NumSeats]*bot.Agent{}
	for seat := range agents {
		agent, err := bot.NewAgent(bot.GetBotIdentity(seat).UserID, seat)
		if err != nil {
			return -1, err
		}
		agents[seat] = agent
	}

	// Generous cap; a four-player game is far shorter than this.
	for move := 0; move < 100000; move++ {
		view, err := svc.PublicState(gameID, -1)
		if err != nil {
			return -1, err
		}

		if view.Phase == domain.PhaseGameOver {
			log.WithFields(logrus.Fields{
				"game_id": gameID,
				"winner":  view.GameWinnerSeat,
				"matches": view.MatchNumber,
				"moves":   move,
			}).Info("Game over")
			return view.GameWinnerSeat, nil
		}

		// An armed countdown means the last play was proven unbeatable;
		// jump past the deadline so the engine force-passes the others.
		if view.Timer != nil {
			clock.Advance(time.Duration(view.Timer.RemainingMs+1) * time.Millisecond)
			if _, err := svc.Tick(gameID); err != nil {
				return -1, err
			}
			continue
		}

		seat := view.CurrentSeat
		seatView, err := svc.PublicState(gameID, seat)
		if err != nil {
			return -1, err
		}

		botMove, err := agents[seat].Play(seatView, rules)
		if err != nil {
			return -1, err
		}

		if botMove.Pass {
			_, err = svc.SubmitPass(gameID, seat)
		} else {
			_, err = svc.SubmitPlay(gameID, seat, botMove.Cards)
		}
		if err != nil {
			if domain.RejectionReason(err) == domain.ReasonMustPlayHighestSingle && len(seatView.Hand) > 0 {
				_, err = svc.SubmitPlay(gameID, seat, []domain.Card{domain.HighestSingle(seatView.Hand)})
			}
			if err != nil {
				return -1, fmt.Errorf("seat %d move rejected: %w", seat, err)
			}
		}

		log.WithFields(logrus.Fields{
			"game_id": gameID,
			"seat":    seat,
			"pass":    botMove.Pass,
			"cards":   len(botMove.Cards),
		}).Debug("Move applied")
	}

	return -1, fmt.Errorf("game %s did not finish within the move cap", gameID)
}
