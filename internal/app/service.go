package app

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"bigtwo/internal/domain"
	"bigtwo/internal/ports"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrGameExists   = errors.New("game already exists")
)

// Logger is the minimal logging surface the engine needs. *logrus.Logger
// satisfies it directly; the Nakama adapter wraps runtime.Logger.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
}

// Option configures a Service.
type Option func(*Service)

// WithRNG supplies a deterministic source for dealing.
func WithRNG(rng *rand.Rand) Option {
	return func(s *Service) { s.rng = rng }
}

// WithClock supplies the time source; tests inject a manual clock.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithStorage attaches the snapshot/history persistence collaborator.
func WithStorage(p ports.StoragePort) Option {
	return func(s *Service) { s.storage = p }
}

// WithStats attaches the statistics/leaderboard collaborator.
func WithStats(p ports.StatsPort) Option {
	return func(s *Service) { s.stats = p }
}

// WithLogger attaches a logger for best-effort collaborator failures.
func WithLogger(l Logger) Option {
	return func(s *Service) { s.log = l }
}

// Service owns the authoritative turn state of every active game, keyed by
// game id. Each game has a single logical lock: a proposed move is
// validated and committed atomically against the current snapshot, never a
// stale copy, so concurrent submissions serialize and the second arrival
// is naturally rejected.
type Service struct {
	rules   domain.Ruleset
	now     func() time.Time
	log     Logger
	storage ports.StoragePort
	stats   ports.StatsPort

	rngMu sync.Mutex
	rng   *rand.Rand

	mu    sync.Mutex
	games map[string]*gameInstance
}

type gameInstance struct {
	mu   sync.Mutex
	game *domain.Game
	// persisted counts how many history records of the current match have
	// been handed to storage.
	persisted int
}

// NewService constructs the engine with the given house rules.
func NewService(rules domain.Ruleset, opts ...Option) *Service {
	s := &Service{
		rules: rules,
		now:   time.Now,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
		games: make(map[string]*gameInstance),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateGame deals the first match of a new game instance and returns the
// initial events (private hands plus the public match start).
func (s *Service) CreateGame(gameID string) ([]Event, error) {
	s.mu.Lock()
	if _, ok := s.games[gameID]; ok {
		s.mu.Unlock()
		return nil, ErrGameExists
	}
	game, err := domain.NewGame(s.rules, s.shuffledDeck(), s.now())
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	inst := &gameInstance{game: game}
	s.games[gameID] = inst
	s.mu.Unlock()

	inst.mu.Lock()
	defer inst.mu.Unlock()
	events := matchStartedEvents(game)
	s.persistSnapshot(gameID, game)
	return events, nil
}

// RemoveGame drops a game instance from the store.
func (s *Service) RemoveGame(gameID string) {
	s.mu.Lock()
	delete(s.games, gameID)
	s.mu.Unlock()
}

// SubmitPlay validates and commits a play for the given seat. Rejections
// carry a machine-readable reason and leave the state untouched.
func (s *Service) SubmitPlay(gameID string, seat int, cards []domain.Card) ([]Event, error) {
	inst, err := s.instance(gameID)
	if err != nil {
		return nil, err
	}
	inst.mu.Lock()
	defer inst.mu.Unlock()

	res, err := inst.game.SubmitPlay(seat, cards, s.now())
	if err != nil {
		return nil, err
	}
	return s.afterMove(gameID, inst, res, false), nil
}

// SubmitPass validates and commits a pass for the given seat.
func (s *Service) SubmitPass(gameID string, seat int) ([]Event, error) {
	inst, err := s.instance(gameID)
	if err != nil {
		return nil, err
	}
	inst.mu.Lock()
	defer inst.mu.Unlock()

	res, err := inst.game.SubmitPass(seat, s.now())
	if err != nil {
		return nil, err
	}
	return s.afterMove(gameID, inst, res, false), nil
}

// Tick drives the time-based rules: auto-pass countdown expiry and the
// per-turn clock. It may be invoked by any number of concurrent observers;
// once an earlier winner has resolved the countdown, later invocations are
// no-ops because every forced pass is re-validated against current state.
func (s *Service) Tick(gameID string) ([]Event, error) {
	inst, err := s.instance(gameID)
	if err != nil {
		return nil, err
	}
	inst.mu.Lock()
	defer inst.mu.Unlock()

	g := inst.game
	if g.Halted || (g.Phase != domain.PhaseLeading && g.Phase != domain.PhaseFollowing) {
		return nil, nil
	}
	now := s.now()

	if t := g.Timer; t != nil && t.Expired(now) {
		return s.resolveExpiredTimer(gameID, inst, t, now), nil
	}

	if g.Rules.TurnDuration > 0 && now.Sub(g.TurnStartedAt) >= g.Rules.TurnDuration {
		return s.forceTimedOutMove(gameID, inst, now), nil
	}

	return nil, nil
}

// resolveExpiredTimer passes every seat that has not acted since the
// triggering play, in turn order, re-validating each one: a seat may have
// already acted in the interim and the state machine is the judge.
func (s *Service) resolveExpiredTimer(gameID string, inst *gameInstance, t *domain.AutoPassTimer, now time.Time) []Event {
	g := inst.game
	forced := make([]int, 0, domain.NumSeats-1)
	var passes []Event

	for g.Phase == domain.PhaseFollowing {
		res, err := g.SubmitPass(g.CurrentSeat, now)
		if err != nil {
			s.warnf("game %s: forced pass for seat %d rejected: %v", gameID, g.CurrentSeat, err)
			break
		}
		forced = append(forced, res.Seat)
		passes = append(passes, Event{Kind: EventTurnPassed, Payload: TurnPassedPayload{
			Seat:     res.Seat,
			NextSeat: res.NextSeat,
			TrickWon: res.TrickWon,
			Forced:   true,
		}})
		if res.TrickWon {
			break
		}
	}

	events := make([]Event, 0, len(passes)+1)
	events = append(events, Event{Kind: EventTimerExpired, Payload: TimerExpiredPayload{
		Seat:        t.Seat,
		ForcedSeats: forced,
	}})
	events = append(events, passes...)

	s.persistPlays(gameID, inst)
	s.persistSnapshot(gameID, g)
	return events
}

// forceTimedOutMove acts for a seat that exhausted its decision window:
// pass when following, lead the lowest single otherwise. The one-card-left
// rule and the opening-card rule still bind the forced choice.
func (s *Service) forceTimedOutMove(gameID string, inst *gameInstance, now time.Time) []Event {
	g := inst.game
	seat := g.CurrentSeat

	if g.Phase == domain.PhaseFollowing {
		res, err := g.SubmitPass(seat, now)
		if err == nil {
			return s.afterMove(gameID, inst, res, true)
		}
		if domain.RejectionReason(err) != domain.ReasonMustPlayHighestSingle {
			s.warnf("game %s: timeout pass for seat %d rejected: %v", gameID, seat, err)
			return nil
		}
		// Obliged to beat: play the strongest single instead.
		res, err = g.SubmitPlay(seat, []domain.Card{domain.HighestSingle(g.Hands[seat])}, now)
		if err != nil {
			s.warnf("game %s: timeout play for seat %d rejected: %v", gameID, seat, err)
			return nil
		}
		return s.afterMove(gameID, inst, res, true)
	}

	card := domain.LowestSingle(g.Hands[seat])
	if g.MatchNumber == 1 && len(g.History) == 0 {
		card = g.Rules.OpeningCard
	} else if len(g.Hands[(seat+1)%domain.NumSeats]) == 1 {
		card = domain.HighestSingle(g.Hands[seat])
	}
	res, err := g.SubmitPlay(seat, []domain.Card{card}, now)
	if err != nil {
		s.warnf("game %s: timeout lead for seat %d rejected: %v", gameID, seat, err)
		return nil
	}
	return s.afterMove(gameID, inst, res, true)
}

// PublicState projects the turn state for an observer, never exposing any
// other seat's hand contents. viewerSeat -1 yields the fully redacted view.
func (s *Service) PublicState(gameID string, viewerSeat int) (*PublicState, error) {
	inst, err := s.instance(gameID)
	if err != nil {
		return nil, err
	}
	inst.mu.Lock()
	defer inst.mu.Unlock()
	return toPublicView(gameID, inst.game, viewerSeat, s.now()), nil
}

// afterMove assembles the events of an accepted move, runs the match
// lifecycle, and persists the play history and the new snapshot.
func (s *Service) afterMove(gameID string, inst *gameInstance, res *domain.MoveResult, forced bool) []Event {
	g := inst.game
	events := moveEvents(g, res, forced)
	s.persistPlays(gameID, inst)

	if res.MatchFinished {
		events = append(events, s.finishMatchEvents(gameID, inst)...)
	}

	s.persistSnapshot(gameID, g)
	return events
}

// finishMatchEvents reports the finished match, notifies the stats
// collaborator, and re-deals unless the game is over.
func (s *Service) finishMatchEvents(gameID string, inst *gameInstance) []Event {
	g := inst.game
	endedMatch := g.MatchNumber

	events := []Event{{Kind: EventMatchEnded, Payload: MatchEndedPayload{
		MatchNumber:      endedMatch,
		WinnerSeat:       g.MatchWinnerSeat,
		PerSeatScores:    g.LastMatchScores,
		CumulativeScores: g.CumulativeScores,
	}}}
	if s.stats != nil {
		if err := s.stats.OnMatchEnded(context.Background(), gameID, endedMatch, g.LastMatchScores); err != nil {
			s.warnf("game %s: stats match-ended delivery failed: %v", gameID, err)
		}
	}

	if g.Phase == domain.PhaseGameOver {
		events = append(events, Event{Kind: EventGameOver, Payload: GameOverPayload{
			WinnerSeat:  g.GameWinnerSeat,
			FinalScores: g.CumulativeScores,
		}})
		if s.stats != nil {
			if err := s.stats.OnGameOver(context.Background(), gameID, g.GameWinnerSeat, g.CumulativeScores); err != nil {
				s.warnf("game %s: stats game-over delivery failed: %v", gameID, err)
			}
		}
		return events
	}

	if err := g.StartNextMatch(s.shuffledDeck(), s.now()); err != nil {
		s.warnf("game %s: re-deal failed: %v", gameID, err)
		return events
	}
	inst.persisted = 0
	return append(events, matchStartedEvents(g)...)
}

func moveEvents(g *domain.Game, res *domain.MoveResult, forced bool) []Event {
	var events []Event
	if res.Pass {
		events = append(events, Event{Kind: EventTurnPassed, Payload: TurnPassedPayload{
			Seat:     res.Seat,
			NextSeat: res.NextSeat,
			TrickWon: res.TrickWon,
			Forced:   forced,
		}})
	} else {
		events = append(events, Event{Kind: EventCardPlayed, Payload: CardPlayedPayload{
			Seat:           res.Seat,
			Combo:          *res.Combo,
			NextSeat:       res.NextSeat,
			CardsRemaining: len(g.Hands[res.Seat]),
		}})
	}
	if res.TimerCancelled {
		events = append(events, Event{Kind: EventTimerCancelled, Payload: TimerCancelledPayload{Seat: res.Seat}})
	}
	if res.TimerStarted && g.Timer != nil {
		events = append(events, Event{Kind: EventTimerStarted, Payload: TimerStartedPayload{
			Seat:      g.Timer.Seat,
			Combo:     g.Timer.Combo,
			StartedAt: g.Timer.StartedAt,
			Duration:  g.Timer.Duration,
		}})
	}
	return events
}

func matchStartedEvents(g *domain.Game) []Event {
	events := make([]Event, 0, domain.NumSeats+1)
	events = append(events, Event{Kind: EventMatchStarted, Payload: MatchStartedPayload{
		MatchNumber:   g.MatchNumber,
		FirstTurnSeat: g.CurrentSeat,
		HandCounts:    g.HandCounts(),
		OpeningNeeded: g.MatchNumber == 1,
	}})
	for seat := 0; seat < domain.NumSeats; seat++ {
		events = append(events, Event{
			Kind:           EventHandDealt,
			Payload:        HandDealtPayload{Seat: seat, Hand: append([]domain.Card{}, g.Hands[seat]...)},
			RecipientSeats: []int{seat},
		})
	}
	return events
}

func (s *Service) instance(gameID string) (*gameInstance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inst, ok := s.games[gameID]
	if !ok {
		return nil, ErrGameNotFound
	}
	return inst, nil
}

func (s *Service) shuffledDeck() []domain.Card {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return domain.ShuffleDeck(domain.NewDeck(), s.rng)
}

func (s *Service) persistSnapshot(gameID string, g *domain.Game) {
	if s.storage == nil {
		return
	}
	if err := s.storage.SaveSnapshot(context.Background(), gameID, g); err != nil {
		s.warnf("game %s: snapshot write failed: %v", gameID, err)
	}
}

func (s *Service) persistPlays(gameID string, inst *gameInstance) {
	if s.storage == nil {
		inst.persisted = len(inst.game.History)
		return
	}
	g := inst.game
	for ; inst.persisted < len(g.History); inst.persisted++ {
		rec := g.History[inst.persisted]
		if err := s.storage.AppendPlay(context.Background(), gameID, g.MatchNumber, inst.persisted, rec); err != nil {
			s.warnf("game %s: play history write failed: %v", gameID, err)
		}
	}
}

func (s *Service) warnf(format string, args ...any) {
	if s.log != nil {
		s.log.Warnf(format, args...)
	}
}
