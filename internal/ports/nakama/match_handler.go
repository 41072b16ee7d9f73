package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"math/rand"
	"strconv"
	"time"

	"github.com/heroiclabs/nakama-common/runtime"

	"tarneeb/internal/app"
	"tarneeb/internal/bot"
	"tarneeb/internal/config"
	"tarneeb/internal/domain"
)

// MatchState holds the authoritative runtime state for the Nakama match handler.
type MatchState struct {
	Tick         int64                       `json:"tick"`
	Presences    map[string]runtime.Presence `json:"-"`
	App          *app.Service                `json:"-"`
	Game         *domain.Game                `json:"-"`
	BotsEnabled  bool                        `json:"bots_enabled"`
	BotMinDelay  int                         `json:"bot_min_delay"`  // Min seconds a bot waits
	BotMaxDelay  int                         `json:"bot_max_delay"`  // Max seconds a bot waits
	BotWaitUntil int64                       `json:"bot_wait_until"` // Tick when the pending bot acts
}

// humanCount counts seated players with a live connection.
func (ms *MatchState) humanCount() int {
	count := 0
	for _, p := range ms.Game.Players {
		if p.IsBot {
			continue
		}
		if _, connected := ms.Presences[p.UserID]; connected {
			count++
		}
	}
	return count
}

// NewMatch is the factory function registered with Nakama.
func NewMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error) {
	return &matchHandler{}, nil
}

type matchHandler struct{}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	logger.Debug("MatchInit: Initializing tarneeb match handler.")

	if err := config.LoadGameConfig("data/game_config.json"); err != nil {
		logger.Warn("MatchInit: Could not load game config: %v", err)
	}
	cfg := config.GetGameConfig()

	if cfg.BotIdentitiesPath != "" {
		if err := bot.LoadIdentities(cfg.BotIdentitiesPath); err != nil {
			logger.Warn("MatchInit: Could not load bot identities: %v", err)
		}
	}

	state := &MatchState{
		Tick:        time.Now().Unix(),
		Presences:   make(map[string]runtime.Presence),
		App:         app.NewService(nil),
		Game:        domain.NewGame("", cfg.TargetScore),
		BotsEnabled: true,
		BotMinDelay: cfg.BotMinDelaySeconds,
		BotMaxDelay: cfg.BotMaxDelaySeconds,
	}

	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	if val, ok := env["tarneeb_bots_enabled"]; ok {
		state.BotsEnabled = val == "true"
	}
	if val, ok := env["tarneeb_bot_min_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			state.BotMinDelay = i
		}
	}
	if val, ok := env["tarneeb_bot_max_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			state.BotMaxDelay = i
		}
	}
	if state.BotMinDelay <= 0 {
		state.BotMinDelay = 1
	}
	if state.BotMaxDelay < state.BotMinDelay {
		state.BotMaxDelay = state.BotMinDelay + 2
	}

	labelBytes, err := json.Marshal(domain.ComputeLabel(state.Game))
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}

	tickRate := 1 // one tick per second, bot delays are measured in ticks
	return state, tickRate, string(labelBytes)
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	// Reconnects are always allowed.
	if matchState.Game.PlayerByID(presence.GetUserId()) != nil {
		return matchState, true, ""
	}

	if matchState.Game.Phase != domain.PhaseWaiting {
		return matchState, false, "match in progress"
	}
	if len(matchState.Game.Players) >= domain.NumSeats {
		return matchState, false, "match full"
	}
	return matchState, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		matchState.Presences[p.GetUserId()] = p

		if matchState.Game.PlayerByID(p.GetUserId()) != nil {
			logger.Debug("MatchJoin: User %s reconnected.", p.GetUserId())
			mh.sendSnapshot(matchState, dispatcher, logger, p)
			continue
		}

		events, err := matchState.App.Join(matchState.Game, p.GetUserId(), p.GetUsername())
		if err != nil {
			logger.Warn("MatchJoin: User %s could not be seated: %v", p.GetUserId(), err)
			continue
		}

		// The first human to take a seat owns the match.
		if matchState.Game.CreatorID == "" {
			matchState.Game.CreatorID = p.GetUserId()
		}

		for _, ev := range events {
			mh.broadcastEvent(matchState, dispatcher, logger, ev)
		}
	}

	mh.updateLabel(matchState, dispatcher, logger)
	return matchState
}

// MatchLeave is called when one or more players leave the match. Seats stay
// bound to their players so a reconnect resumes the same hand.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		delete(matchState.Presences, p.GetUserId())
	}

	if matchState.humanCount() == 0 {
		logger.Info("MatchLeave: Terminating match with no humans.")
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
		case OpPlaceBid:
			mh.handlePlaceBid(matchState, dispatcher, logger, msg)
		case OpPassBid:
			mh.handlePassBid(matchState, dispatcher, logger, msg)
		case OpChooseTrump:
			mh.handleChooseTrump(matchState, dispatcher, logger, msg)
		case OpPlayCard:
			mh.handlePlayCard(matchState, dispatcher, logger, msg)
		case OpStopGame:
			mh.handleHalt(matchState, dispatcher, logger, msg, app.ActionStop)
		case OpEndGame:
			mh.handleHalt(matchState, dispatcher, logger, msg, app.ActionEnd)
		default:
			logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
		}
	}

	if matchState.BotsEnabled {
		mh.processBots(matchState, dispatcher, logger)
	}

	return matchState
}

// processBots lets the pending bot act after a randomized thinking pause. One
// decision per tick window; the engine itself never sleeps.
func (mh *matchHandler) processBots(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	seat, pending := state.App.PendingBot(state.Game)
	if !pending {
		state.BotWaitUntil = 0
		return
	}

	if state.BotWaitUntil == 0 {
		delay := rand.Intn(state.BotMaxDelay-state.BotMinDelay+1) + state.BotMinDelay
		state.BotWaitUntil = state.Tick + int64(delay)
		logger.Debug("processBots: Bot at seat %d will act at tick %d (current %d)", seat, state.BotWaitUntil, state.Tick)
		return
	}

	if state.Tick < state.BotWaitUntil {
		return
	}
	state.BotWaitUntil = 0

	events, acted, err := state.App.StepBot(state.Game)
	if err != nil {
		logger.Error("processBots: Bot at seat %d failed to act: %v", seat, err)
		return
	}
	if !acted {
		return
	}

	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}
	mh.afterEvents(state, dispatcher, logger, events)
}

func (mh *matchHandler) handleStartGame(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()

	if senderID != state.Game.CreatorID {
		logger.Warn("StartGame: User %s tried to start the game but is not the owner.", senderID)
		mh.sendError(state, dispatcher, logger, senderID, errorCode(app.ErrNotCreator), app.ErrNotCreator.Error())
		return
	}

	events, err := state.App.StartGame(state.Game, senderID)
	if err != nil {
		logger.Warn("StartGame: User %s failed to start game: %v", senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, errorCode(err), err.Error())
		return
	}

	mh.updateLabel(state, dispatcher, logger)
	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}
	logger.Info("StartGame: Game started with %d players.", len(state.Game.Players))
}

func (mh *matchHandler) handlePlaceBid(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()

	var request PlaceBidRequest
	if err := json.Unmarshal(msg.GetData(), &request); err != nil {
		logger.Warn("handlePlaceBid: Invalid request from %s: %v", senderID, err)
		return
	}

	events, err := state.App.Bid(state.Game, senderID, request.Amount)
	if err != nil {
		logger.Warn("handlePlaceBid: User %s failed to bid %d: %v", senderID, request.Amount, err)
		mh.sendError(state, dispatcher, logger, senderID, errorCode(err), err.Error())
		return
	}

	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}
	mh.afterEvents(state, dispatcher, logger, events)
}

func (mh *matchHandler) handlePassBid(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()

	events, err := state.App.Pass(state.Game, senderID)
	if err != nil {
		logger.Warn("handlePassBid: User %s failed to pass: %v", senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, errorCode(err), err.Error())
		return
	}

	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}
	mh.afterEvents(state, dispatcher, logger, events)
}

func (mh *matchHandler) handleChooseTrump(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()

	var request ChooseTrumpRequest
	if err := json.Unmarshal(msg.GetData(), &request); err != nil {
		logger.Warn("handleChooseTrump: Invalid request from %s: %v", senderID, err)
		return
	}

	events, err := state.App.ChooseTrump(state.Game, senderID, domain.Suit(request.Suit))
	if err != nil {
		logger.Warn("handleChooseTrump: User %s failed to choose trump %q: %v", senderID, request.Suit, err)
		mh.sendError(state, dispatcher, logger, senderID, errorCode(err), err.Error())
		return
	}

	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}
	mh.afterEvents(state, dispatcher, logger, events)
}

func (mh *matchHandler) handlePlayCard(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()

	var request PlayCardRequest
	if err := json.Unmarshal(msg.GetData(), &request); err != nil {
		logger.Warn("handlePlayCard: Invalid request from %s: %v", senderID, err)
		return
	}

	card := toDomainCard(request.Card)
	events, err := state.App.PlayCard(state.Game, senderID, card)
	if err != nil {
		logger.Warn("handlePlayCard: User %s failed to play %s: %v", senderID, card, err)
		mh.sendError(state, dispatcher, logger, senderID, errorCode(err), err.Error())
		return
	}

	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}
	mh.afterEvents(state, dispatcher, logger, events)
}

func (mh *matchHandler) handleHalt(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData, action app.ActionType) {
	senderID := msg.GetUserId()

	events, err := state.App.Apply(state.Game, senderID, app.Action{Type: action})
	if err != nil {
		logger.Warn("handleHalt: User %s failed to end game: %v", senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, errorCode(err), err.Error())
		return
	}

	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}
	mh.afterEvents(state, dispatcher, logger, events)
}

// afterEvents refreshes the label when a batch of events crossed a phase
// boundary that listing queries care about.
func (mh *matchHandler) afterEvents(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, events []app.Event) {
	for _, ev := range events {
		switch ev.Kind {
		case app.EventTrumpSelectionStarted,
			app.EventTrumpChosen,
			app.EventRoundStarted,
			app.EventGameEnded,
			app.EventGameStopped:
			mh.updateLabel(state, dispatcher, logger)
			return
		}
	}
}

// broadcastEvent converts an app event to its wire frame and dispatches it.
func (mh *matchHandler) broadcastEvent(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, ev app.Event) {
	opCode, ok := eventOpCode(ev.Kind)
	if !ok {
		logger.Warn("Unknown event kind: %v", ev.Kind)
		return
	}

	bytes, err := json.Marshal(ev.Payload)
	if err != nil {
		logger.Error("Failed to marshal event %v: %v", ev.Kind, err)
		return
	}

	// Determine recipients (default to broadcast)
	var recipients []runtime.Presence
	if len(ev.Recipients) > 0 {
		for _, uid := range ev.Recipients {
			if p, ok := state.Presences[uid]; ok {
				recipients = append(recipients, p)
			}
		}

		// If we had intended recipients but none are connected (e.g. they are
		// bots), we MUST NOT broadcast to everyone else.
		if len(recipients) == 0 {
			return
		}
	}

	dispatcher.BroadcastMessage(opCode, bytes, recipients, nil, true)
}

// sendSnapshot sends the full public game state plus the player's own hand to
// a single presence, used on reconnect.
func (mh *matchHandler) sendSnapshot(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, presence runtime.Presence) {
	snapshot := app.BuildSnapshot(state.Game)
	bytes, err := json.Marshal(snapshot)
	if err != nil {
		logger.Error("Failed to marshal snapshot: %v", err)
		return
	}
	dispatcher.BroadcastMessage(OpStateSnapshot, bytes, []runtime.Presence{presence}, nil, true)

	if hand, ok := state.Game.HandOf(presence.GetUserId()); ok && len(hand) > 0 {
		player := state.Game.PlayerByID(presence.GetUserId())
		payload := app.HandDealtPayload{UserID: presence.GetUserId(), Seat: player.Seat, Hand: hand}
		if bytes, err := json.Marshal(payload); err == nil {
			dispatcher.BroadcastMessage(OpHandDealt, bytes, []runtime.Presence{presence}, nil, true)
		}
	}
}

// sendError sends a GameErrorPayload to a specific user.
func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, code int, message string) {
	bytes, err := json.Marshal(GameErrorPayload{Code: code, Message: message})
	if err != nil {
		logger.Error("Failed to marshal error payload: %v", err)
		return
	}

	presence, ok := state.Presences[userID]
	if !ok {
		logger.Warn("Cannot send error to %s: Presence not found", userID)
		return
	}

	dispatcher.BroadcastMessage(OpGameError, bytes, []runtime.Presence{presence}, nil, true)
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	labelBytes, err := json.Marshal(domain.ComputeLabel(state.Game))
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
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
