package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"math/rand"
	"strconv"
	"time"

	"bigtwo/internal/app"
	"bigtwo/internal/bot"
	"bigtwo/internal/config"
	"bigtwo/internal/domain"

	"github.com/heroiclabs/nakama-common/runtime"
)

// MatchState holds the authoritative runtime state for the Nakama match
// handler. Game-rule state lives inside the engine service; this struct
// only tracks seating, presences and bot pacing.
type MatchState struct {
	Seats     [domain.NumSeats]string     `json:"seats"` // user IDs, "" means empty
	OwnerSeat int                         `json:"owner_seat"`
	Tick      int64                       `json:"tick"`
	Presences map[string]runtime.Presence `json:"-"`

	MatchID string       `json:"match_id"`
	App     *app.Service `json:"-"`
	Playing bool         `json:"playing"`

	BotsEnabled          bool                  `json:"bots_enabled"`
	BotMinDelay          int                   `json:"bot_min_delay"`
	BotMaxDelay          int                   `json:"bot_max_delay"`
	BotAutoFillDelay     int                   `json:"bot_auto_fill_delay"`
	BotWaitUntil         int64                 `json:"bot_wait_until"`
	LastSinglePlayerTick int64                 `json:"last_single_player_tick"`
	Bots                 map[string]*bot.Agent `json:"-"`

	Rules domain.Ruleset `json:"-"`
}

func (ms *MatchState) GetOpenSeatsCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat == "" {
			count++
		}
	}
	return count
}

func (ms *MatchState) GetOccupiedSeatCount() int {
	return domain.NumSeats - ms.GetOpenSeatsCount()
}

func (ms *MatchState) GetHumanPlayerCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat != "" && !bot.IsBot(seat) {
			count++
		}
	}
	return count
}

func (ms *MatchState) seatOf(userID string) int {
	for i, seatUserID := range ms.Seats {
		if seatUserID == userID {
			return i
		}
	}
	return -1
}

// isHumanSeat reports whether the seat index belongs to a human player.
func isHumanSeat(seats []string, seatIndex int) bool {
	if seatIndex < 0 || seatIndex >= len(seats) {
		return false
	}
	userID := seats[seatIndex]
	return userID != "" && !bot.IsBot(userID)
}

// findFirstHumanSeat returns the first seat index with a human occupant or
// -1 if none exist.
func findFirstHumanSeat(seats []string) int {
	for i, userID := range seats {
		if userID != "" && !bot.IsBot(userID) {
			return i
		}
	}
	return -1
}

func newMatchHandler() runtime.Match {
	return &matchHandler{}
}

type matchHandler struct{}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	logger.Debug("MatchInit: Initializing match handler.")

	if err := config.LoadRulesConfig("data/rules_config.json"); err != nil {
		logger.Warn("MatchInit: Could not load rules config, using defaults: %v", err)
	}
	rules := config.Ruleset()

	matchID, _ := ctx.Value(runtime.RUNTIME_CTX_MATCH_ID).(string)

	state := &MatchState{
		Tick:      time.Now().Unix(),
		Presences: make(map[string]runtime.Presence),
		OwnerSeat: -1,
		MatchID:   matchID,
		Bots:      make(map[string]*bot.Agent),
		Rules:     rules,
	}
	state.App = app.NewService(rules,
		app.WithStorage(NewNakamaStorageAdapter(nk)),
		app.WithStats(NewNakamaStatsAdapter(nk,
			func(seat int) string {
				if seat < 0 || seat >= domain.NumSeats {
					return ""
				}
				return state.Seats[seat]
			},
			bot.IsBot,
		)),
		app.WithLogger(runtimeLoggerAdapter{logger: logger}),
	)

	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	if val, ok := env["bigtwo_bots_enabled"]; ok {
		state.BotsEnabled = val == "true"
	}
	if val, ok := env["bigtwo_bot_min_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			state.BotMinDelay = i
		}
	}
	if val, ok := env["bigtwo_bot_max_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			state.BotMaxDelay = i
		}
	}
	if val, ok := env["bigtwo_bot_auto_fill_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			state.BotAutoFillDelay = i
		}
	}

	// Defaults if not set
	if state.BotMinDelay == 0 {
		state.BotMinDelay = 1
	}
	if state.BotMaxDelay == 0 {
		state.BotMaxDelay = 3
	}
	if state.BotAutoFillDelay == 0 {
		if c := config.GetRulesConfig(); c != nil && c.BotAutoFillDelaySeconds > 0 {
			state.BotAutoFillDelay = c.BotAutoFillDelaySeconds
		} else {
			state.BotAutoFillDelay = 5
		}
	}

	labelBytes, err := json.Marshal(LabelPayload{Open: domain.NumSeats, Game: "bigtwo", Phase: "lobby"})
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}

	tickRate := 1
	return state, tickRate, string(labelBytes)
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	// Rejoins are always allowed.
	if matchState.seatOf(presence.GetUserId()) >= 0 {
		return state, true, ""
	}

	// Otherwise there must be an empty seat, or a replaceable bot before
	// the game starts.
	if matchState.GetOpenSeatsCount() <= 0 {
		hasBot := false
		if !matchState.Playing {
			for _, seat := range matchState.Seats {
				if bot.IsBot(seat) {
					hasBot = true
					break
				}
			}
		}
		if !hasBot {
			return state, false, "Match full"
		}
	}

	return state, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		matchState.Presences[p.GetUserId()] = p

		if seat := matchState.seatOf(p.GetUserId()); seat >= 0 {
			// Rejoin: resend the personalized state snapshot.
			mh.sendSnapshot(matchState, dispatcher, logger, p.GetUserId(), seat)
			continue
		}

		assigned := false
		for i, seatUserID := range matchState.Seats {
			if seatUserID == "" {
				matchState.Seats[i] = p.GetUserId()
				assigned = true
				break
			}
		}

		if !assigned && !matchState.Playing {
			for i, seatUserID := range matchState.Seats {
				if bot.IsBot(seatUserID) {
					logger.Info("MatchJoin: Replacing bot %s with human %s in seat %d", seatUserID, p.GetUserId(), i)
					delete(matchState.Bots, seatUserID)
					matchState.Seats[i] = p.GetUserId()
					assigned = true
					break
				}
			}
		}

		if !assigned {
			logger.Warn("MatchJoin: User %s joined but no seat was available.", p.GetUserId())
			continue
		}

		payload, _ := marshalPayload(map[string]any{
			"user_id": p.GetUserId(),
			"seat":    matchState.seatOf(p.GetUserId()),
		})
		dispatcher.BroadcastMessage(OpPlayerJoined, payload, nil, nil, true)
	}

	// Ensure owner seat is assigned to a human player only.
	if !isHumanSeat(matchState.Seats[:], matchState.OwnerSeat) {
		matchState.OwnerSeat = findFirstHumanSeat(matchState.Seats[:])
		if matchState.OwnerSeat >= 0 {
			logger.Debug("MatchJoin: Owner set to human seat %d.", matchState.OwnerSeat)
		}
	}

	mh.updateLabel(matchState, dispatcher, logger)
	return matchState
}

// MatchLeave frees seats, or hands them to bots when a game is running so
// the remaining seats can finish the match.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		delete(matchState.Presences, p.GetUserId())

		seat := matchState.seatOf(p.GetUserId())
		if seat < 0 {
			continue
		}

		if matchState.Playing && matchState.BotsEnabled {
			identity := bot.GetBotIdentity(seat)
			matchState.Seats[seat] = identity.UserID
			if agent, err := bot.NewAgent(identity.UserID, seat); err == nil {
				matchState.Bots[identity.UserID] = agent
			}
			logger.Info("MatchLeave: User %s left mid-game, seat %d handed to bot %s.", p.GetUserId(), seat, identity.Username)
		} else {
			matchState.Seats[seat] = ""
			logger.Debug("MatchLeave: User %s left, seat %d freed.", p.GetUserId(), seat)
		}

		payload, _ := marshalPayload(map[string]any{"user_id": p.GetUserId(), "seat": seat})
		dispatcher.BroadcastMessage(OpPlayerLeft, payload, nil, nil, true)
	}

	if newOwner := findFirstHumanSeat(matchState.Seats[:]); newOwner != matchState.OwnerSeat {
		matchState.OwnerSeat = newOwner
	}

	if findFirstHumanSeat(matchState.Seats[:]) == -1 {
		logger.Info("MatchLeave: Terminating match with no humans.")
		if matchState.Playing {
			matchState.App.RemoveGame(matchState.MatchID)
		}
		return nil
	}

	mh.updateLabel(matchState, dispatcher, logger)
	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	matchState.Tick = tick

	for _, msg := range messages {
		switch msg.GetOpCode() {
		case OpStartGame:
			mh.handleStartGame(matchState, dispatcher, logger, msg)
		case OpPlayCards:
			mh.handlePlayCards(matchState, dispatcher, logger, msg)
		case OpPassTurn:
			mh.handlePassTurn(matchState, dispatcher, logger, msg)
		default:
			logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
		}
	}

	// Drive the auto-pass countdown and the turn clock.
	if matchState.Playing {
		events, err := matchState.App.Tick(matchState.MatchID)
		if err != nil {
			logger.Error("MatchLoop: Tick failed: %v", err)
		}
		mh.broadcastEvents(matchState, dispatcher, logger, events)
	}

	if matchState.BotsEnabled {
		mh.processBots(matchState, dispatcher, logger)
	}

	return matchState
}

func (mh *matchHandler) handleStartGame(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderSeat := state.seatOf(msg.GetUserId())

	if state.Playing {
		mh.sendError(state, dispatcher, logger, msg.GetUserId(), "wrong_phase", "game already running")
		return
	}
	if senderSeat != state.OwnerSeat {
		logger.Warn("StartGame: User %s tried to start game but is not owner (owner_seat=%d)", msg.GetUserId(), state.OwnerSeat)
		return
	}

	// Fill remaining seats with bots; the engine needs exactly four.
	for i, seatUserID := range state.Seats {
		if seatUserID != "" {
			continue
		}
		if !state.BotsEnabled {
			mh.sendError(state, dispatcher, logger, msg.GetUserId(), "too_few_players", "all four seats must be occupied")
			return
		}
		identity := bot.GetBotIdentity(i)
		state.Seats[i] = identity.UserID
		if agent, err := bot.NewAgent(identity.UserID, i); err == nil {
			state.Bots[identity.UserID] = agent
		}
		logger.Info("StartGame: Added bot %s to seat %d", identity.Username, i)
	}

	events, err := state.App.CreateGame(state.MatchID)
	if err != nil {
		logger.Error("StartGame: Failed to start game: %v", err)
		return
	}
	state.Playing = true

	mh.updateLabel(state, dispatcher, logger)
	mh.broadcastEvents(state, dispatcher, logger, events)
	logger.Info("StartGame: Game started with %d seats.", domain.NumSeats)
}

func (mh *matchHandler) handlePlayCards(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderSeat := state.seatOf(msg.GetUserId())
	if !state.Playing || senderSeat < 0 {
		mh.sendError(state, dispatcher, logger, msg.GetUserId(), "wrong_phase", "no game running")
		return
	}

	var request PlayCardsRequest
	if err := json.Unmarshal(msg.GetData(), &request); err != nil {
		logger.Error("handlePlayCards: Failed to unmarshal PlayCardsRequest: %v", err)
		return
	}

	events, err := state.App.SubmitPlay(state.MatchID, senderSeat, request.Cards)
	if err != nil {
		logger.Warn("handlePlayCards: User %s (seat %d) failed to play cards: %v. Requested: %v", msg.GetUserId(), senderSeat, err, request.Cards)
		mh.sendError(state, dispatcher, logger, msg.GetUserId(), string(domain.RejectionReason(err)), err.Error())
		return
	}

	mh.broadcastEvents(state, dispatcher, logger, events)
}

func (mh *matchHandler) handlePassTurn(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderSeat := state.seatOf(msg.GetUserId())
	if !state.Playing || senderSeat < 0 {
		mh.sendError(state, dispatcher, logger, msg.GetUserId(), "wrong_phase", "no game running")
		return
	}

	events, err := state.App.SubmitPass(state.MatchID, senderSeat)
	if err != nil {
		logger.Warn("handlePassTurn: User %s (seat %d) failed to pass: %v", msg.GetUserId(), senderSeat, err)
		mh.sendError(state, dispatcher, logger, msg.GetUserId(), string(domain.RejectionReason(err)), err.Error())
		return
	}

	mh.broadcastEvents(state, dispatcher, logger, events)
}

func (mh *matchHandler) processBots(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	// 1. Auto-fill the lobby with bots when a single human waited too long.
	if !state.Playing {
		humanCount := state.GetHumanPlayerCount()
		if humanCount == 1 {
			if state.LastSinglePlayerTick == 0 {
				state.LastSinglePlayerTick = state.Tick
				logger.Debug("processBots: Single player detected, starting auto-fill timer.")
			}

			if state.Tick-state.LastSinglePlayerTick >= int64(state.BotAutoFillDelay) {
				added := false
				for i, seat := range state.Seats {
					if seat == "" {
						identity := bot.GetBotIdentity(i)
						state.Seats[i] = identity.UserID
						if agent, err := bot.NewAgent(identity.UserID, i); err == nil {
							state.Bots[identity.UserID] = agent
						} else {
							logger.Error("Failed to create bot agent for %s: %v", identity.UserID, err)
						}
						logger.Info("processBots: Added bot %s (%s) to seat %d", identity.Username, identity.UserID, i)
						added = true
					}
				}
				if added {
					mh.updateLabel(state, dispatcher, logger)
				}
				state.LastSinglePlayerTick = 0
			}
		} else {
			state.LastSinglePlayerTick = 0
		}
		return
	}

	// 2. Play bot turns in-game, after a humanizing delay.
	view, err := state.App.PublicState(state.MatchID, -1)
	if err != nil || (view.Phase != domain.PhaseLeading && view.Phase != domain.PhaseFollowing) {
		return
	}
	currentUserID := state.Seats[view.CurrentSeat]
	if !bot.IsBot(currentUserID) {
		state.BotWaitUntil = 0
		return
	}

	if state.BotWaitUntil == 0 {
		delay := rand.Intn(state.BotMaxDelay-state.BotMinDelay+1) + state.BotMinDelay
		state.BotWaitUntil = state.Tick + int64(delay)
		return
	}
	if state.Tick < state.BotWaitUntil {
		return
	}
	state.BotWaitUntil = 0

	agent, exists := state.Bots[currentUserID]
	if !exists {
		agent, err = bot.NewAgent(currentUserID, view.CurrentSeat)
		if err != nil {
			logger.Error("processBots: Failed to create fallback agent: %v", err)
			return
		}
		state.Bots[currentUserID] = agent
	}

	seatView, err := state.App.PublicState(state.MatchID, view.CurrentSeat)
	if err != nil {
		logger.Error("processBots: Failed to project state for bot: %v", err)
		return
	}

	move, err := agent.Play(seatView, state.Rules)
	if err != nil {
		logger.Error("processBots: Bot %s failed to calculate move: %v", currentUserID, err)
		move = bot.Move{Pass: true}
	}

	var events []app.Event
	if move.Pass {
		events, err = state.App.SubmitPass(state.MatchID, view.CurrentSeat)
	} else {
		events, err = state.App.SubmitPlay(state.MatchID, view.CurrentSeat, move.Cards)
	}
	if err != nil {
		// The validator is authoritative; fall back to the obligation it
		// names, else let the turn clock handle it.
		if domain.RejectionReason(err) == domain.ReasonMustPlayHighestSingle && len(seatView.Hand) > 0 {
			events, err = state.App.SubmitPlay(state.MatchID, view.CurrentSeat, []domain.Card{domain.HighestSingle(seatView.Hand)})
		}
		if err != nil {
			logger.Warn("processBots: Bot %s move rejected: %v", currentUserID, err)
			return
		}
	}

	mh.broadcastEvents(state, dispatcher, logger, events)
}

// broadcastEvents converts engine events to wire messages. Targeted events
// go only to their seats' presences; if no intended recipient is connected
// (e.g. bots), nothing is sent.
func (mh *matchHandler) broadcastEvents(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, events []app.Event) {
	for _, ev := range events {
		opCode, ok := eventOpCode(ev.Kind)
		if !ok {
			logger.Warn("Unknown event kind: %v", ev.Kind)
			continue
		}

		payload, err := marshalPayload(ev.Payload)
		if err != nil {
			logger.Error("Failed to marshal event %v: %v", ev.Kind, err)
			continue
		}

		var recipients []runtime.Presence
		if len(ev.RecipientSeats) > 0 {
			for _, seat := range ev.RecipientSeats {
				if seat < 0 || seat >= domain.NumSeats {
					continue
				}
				if p, ok := state.Presences[state.Seats[seat]]; ok {
					recipients = append(recipients, p)
				}
			}
			if len(recipients) == 0 {
				continue
			}
		}

		dispatcher.BroadcastMessage(opCode, payload, recipients, nil, true)

		if ev.Kind == app.EventGameOver {
			state.App.RemoveGame(state.MatchID)
			state.Playing = false
			mh.updateLabel(state, dispatcher, logger)
		}
	}
}

// sendSnapshot sends the personalized public state to a single user, used
// on join and reconnect instead of replaying missed events.
func (mh *matchHandler) sendSnapshot(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, seat int) {
	if !state.Playing {
		return
	}
	view, err := state.App.PublicState(state.MatchID, seat)
	if err != nil {
		logger.Warn("sendSnapshot: %v", err)
		return
	}
	payload, err := marshalPayload(view)
	if err != nil {
		logger.Error("sendSnapshot: Failed to marshal: %v", err)
		return
	}
	if p, ok := state.Presences[userID]; ok {
		dispatcher.BroadcastMessage(OpStateSnapshot, payload, []runtime.Presence{p}, nil, true)
	}
}

// sendError sends a GameErrorPayload to a specific user.
func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, reason, message string) {
	payload, err := marshalPayload(GameErrorPayload{Reason: reason, Message: message})
	if err != nil {
		logger.Error("Failed to marshal GameErrorPayload: %v", err)
		return
	}

	presence, ok := state.Presences[userID]
	if !ok {
		logger.Warn("Cannot send error to %s: Presence not found", userID)
		return
	}

	dispatcher.BroadcastMessage(OpGameError, payload, []runtime.Presence{presence}, nil, true)
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	phase := "lobby"
	if state.Playing {
		phase = "playing"
	}

	labelBytes, err := json.Marshal(LabelPayload{
		Open:  state.GetOpenSeatsCount(),
		Game:  "bigtwo",
		Phase: phase,
	})
	if err != nil {
		logger.Error("UpdateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(string(labelBytes)); err != nil {
		logger.Error("UpdateLabel: Failed to update: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, reason int) interface{} {
	logger.Debug("MatchTerminate: Match terminated for reason %d", reason)
	if matchState, ok := state.(*MatchState); ok && matchState.Playing {
		matchState.App.RemoveGame(matchState.MatchID)
	}
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
