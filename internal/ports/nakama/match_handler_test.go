package nakama

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/heroiclabs/nakama-common/runtime"

	"tarneeb/internal/app"
	"tarneeb/internal/domain"
)

// noopLogger implements runtime.Logger for tests that only need to satisfy the interface.
type noopLogger struct{}

func (noopLogger) Debug(string, ...interface{}) {}
func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}
func (noopLogger) WithField(string, interface{}) runtime.Logger {
	return noopLogger{}
}
func (noopLogger) WithFields(map[string]interface{}) runtime.Logger {
	return noopLogger{}
}
func (noopLogger) Fields() map[string]interface{} {
	return nil
}

// mockDispatcher records match dispatcher calls for assertions.
type mockDispatcher struct {
	broadcasts   []broadcast
	labelUpdates []string
}

type broadcast struct {
	opCode    int64
	data      []byte
	presences []runtime.Presence
}

func (md *mockDispatcher) BroadcastMessage(opCode int64, data []byte, presences []runtime.Presence, sender runtime.Presence, reliable bool) error {
	md.broadcasts = append(md.broadcasts, broadcast{
		opCode:    opCode,
		data:      append([]byte(nil), data...),
		presences: presences,
	})
	return nil
}

func (md *mockDispatcher) BroadcastMessageDeferred(opCode int64, data []byte, presences []runtime.Presence, sender runtime.Presence, reliable bool) error {
	return nil
}

func (md *mockDispatcher) MatchKick(presences []runtime.Presence) error {
	return nil
}

func (md *mockDispatcher) MatchLabelUpdate(label string) error {
	md.labelUpdates = append(md.labelUpdates, label)
	return nil
}

func (md *mockDispatcher) lastOpCodes() []int64 {
	codes := make([]int64, 0, len(md.broadcasts))
	for _, b := range md.broadcasts {
		codes = append(codes, b.opCode)
	}
	return codes
}

// mockPresence is a minimal runtime.Presence for tests.
type mockPresence struct {
	userID   string
	username string
}

func (mp mockPresence) GetUserId() string    { return mp.userID }
func (mp mockPresence) GetSessionId() string { return "session-" + mp.userID }
func (mp mockPresence) GetNodeId() string    { return "node" }
func (mp mockPresence) GetHidden() bool      { return false }
func (mp mockPresence) GetPersistence() bool { return true }
func (mp mockPresence) GetUsername() string  { return mp.username }
func (mp mockPresence) GetStatus() string    { return "" }
func (mp mockPresence) GetReason() runtime.PresenceReason {
	return runtime.PresenceReasonUnknown
}

// mockMatchData is a minimal runtime.MatchData carrying a JSON payload.
type mockMatchData struct {
	mockPresence
	opCode int64
	data   []byte
}

func (md mockMatchData) GetOpCode() int64      { return md.opCode }
func (md mockMatchData) GetData() []byte       { return md.data }
func (md mockMatchData) GetReliable() bool     { return true }
func (md mockMatchData) GetReceiveTime() int64 { return 0 }

func newTestMatch(t *testing.T) (*matchHandler, *MatchState) {
	t.Helper()
	mh := &matchHandler{}
	rawState, tickRate, label := mh.MatchInit(context.Background(), noopLogger{}, nil, nil, nil)
	if tickRate != 1 {
		t.Fatalf("tick rate = %d, want 1", tickRate)
	}

	var parsed domain.LabelPayload
	if err := json.Unmarshal([]byte(label), &parsed); err != nil {
		t.Fatalf("label is not valid JSON: %v", err)
	}
	if !parsed.Open || parsed.Game != "tarneeb" || parsed.Phase != string(domain.PhaseWaiting) {
		t.Fatalf("initial label = %+v", parsed)
	}

	state, ok := rawState.(*MatchState)
	if !ok {
		t.Fatalf("MatchInit returned %T", rawState)
	}
	// Deterministic, pause-free bot stepping for tests.
	state.BotMinDelay = 1
	state.BotMaxDelay = 1
	return mh, state
}

func joinUser(t *testing.T, mh *matchHandler, state *MatchState, dispatcher *mockDispatcher, userID string) {
	t.Helper()
	presence := mockPresence{userID: userID, username: "name-" + userID}
	_, allowed, reason := mh.MatchJoinAttempt(context.Background(), noopLogger{}, nil, nil, dispatcher, 0, state, presence, nil)
	if !allowed {
		t.Fatalf("join attempt for %s rejected: %s", userID, reason)
	}
	mh.MatchJoin(context.Background(), noopLogger{}, nil, nil, dispatcher, 0, state, []runtime.Presence{presence})
}

func TestMatchJoinSeatsPlayerAndSetsOwner(t *testing.T) {
	mh, state := newTestMatch(t)
	dispatcher := &mockDispatcher{}

	joinUser(t, mh, state, dispatcher, "u1")

	if state.Game.CreatorID != "u1" {
		t.Fatalf("creator = %q, want u1", state.Game.CreatorID)
	}
	if p := state.Game.PlayerByID("u1"); p == nil || p.Seat != 0 {
		t.Fatalf("u1 not seated at seat 0")
	}
	if len(dispatcher.broadcasts) == 0 || dispatcher.broadcasts[0].opCode != OpPlayerJoined {
		t.Fatalf("expected player_joined broadcast, got %v", dispatcher.lastOpCodes())
	}
	if len(dispatcher.labelUpdates) == 0 {
		t.Fatalf("expected a label update after join")
	}
}

func TestMatchJoinAttemptRejectsMidGame(t *testing.T) {
	mh, state := newTestMatch(t)
	dispatcher := &mockDispatcher{}

	joinUser(t, mh, state, dispatcher, "u1")
	mh.handleStartGame(state, dispatcher, noopLogger{}, mockMatchData{
		mockPresence: mockPresence{userID: "u1"},
		opCode:       OpStartGame,
	})
	if state.Game.Phase != domain.PhaseBidding {
		t.Fatalf("phase = %s, want bidding", state.Game.Phase)
	}

	_, allowed, _ := mh.MatchJoinAttempt(context.Background(), noopLogger{}, nil, nil, dispatcher, 0, state, mockPresence{userID: "late"}, nil)
	if allowed {
		t.Fatalf("join should be rejected once the game started")
	}

	// The seated player may still reconnect.
	_, allowed, _ = mh.MatchJoinAttempt(context.Background(), noopLogger{}, nil, nil, dispatcher, 0, state, mockPresence{userID: "u1"}, nil)
	if !allowed {
		t.Fatalf("reconnect for a seated player should be allowed")
	}
}

func TestStartGameOnlyOwner(t *testing.T) {
	mh, state := newTestMatch(t)
	dispatcher := &mockDispatcher{}

	joinUser(t, mh, state, dispatcher, "u1")
	joinUser(t, mh, state, dispatcher, "u2")

	mh.handleStartGame(state, dispatcher, noopLogger{}, mockMatchData{
		mockPresence: mockPresence{userID: "u2"},
		opCode:       OpStartGame,
	})
	if state.Game.Phase != domain.PhaseWaiting {
		t.Fatalf("non-owner started the game")
	}

	// The rejected sender gets a targeted error frame.
	last := dispatcher.broadcasts[len(dispatcher.broadcasts)-1]
	if last.opCode != OpGameError {
		t.Fatalf("last opcode = %d, want %d", last.opCode, OpGameError)
	}
	var errPayload GameErrorPayload
	if err := json.Unmarshal(last.data, &errPayload); err != nil {
		t.Fatalf("error payload: %v", err)
	}
	if errPayload.Code != errorCode(app.ErrNotCreator) {
		t.Fatalf("error code = %d, want %d", errPayload.Code, errorCode(app.ErrNotCreator))
	}
}

func TestHandDealtIsPrivate(t *testing.T) {
	mh, state := newTestMatch(t)
	dispatcher := &mockDispatcher{}

	joinUser(t, mh, state, dispatcher, "u1")
	mh.handleStartGame(state, dispatcher, noopLogger{}, mockMatchData{
		mockPresence: mockPresence{userID: "u1"},
		opCode:       OpStartGame,
	})

	handFrames := 0
	for _, b := range dispatcher.broadcasts {
		if b.opCode != OpHandDealt {
			continue
		}
		handFrames++
		if len(b.presences) != 1 || b.presences[0].GetUserId() != "u1" {
			t.Fatalf("hand frame not targeted to u1: %v", b.presences)
		}
		var payload app.HandDealtPayload
		if err := json.Unmarshal(b.data, &payload); err != nil {
			t.Fatalf("hand payload: %v", err)
		}
		if len(payload.Hand) != 13 {
			t.Fatalf("hand size = %d, want 13", len(payload.Hand))
		}
	}
	// Bot hands have no connected presence and must not be broadcast at all.
	if handFrames != 1 {
		t.Fatalf("hand frames = %d, want 1", handFrames)
	}
}

func TestBidMessageFlow(t *testing.T) {
	mh, state := newTestMatch(t)
	dispatcher := &mockDispatcher{}

	joinUser(t, mh, state, dispatcher, "u1")
	mh.handleStartGame(state, dispatcher, noopLogger{}, mockMatchData{
		mockPresence: mockPresence{userID: "u1"},
		opCode:       OpStartGame,
	})

	data, _ := json.Marshal(PlaceBidRequest{Amount: 5})
	msg := mockMatchData{
		mockPresence: mockPresence{userID: "u1"},
		opCode:       OpPlaceBid,
		data:         data,
	}
	mh.MatchLoop(context.Background(), noopLogger{}, nil, nil, dispatcher, 1, state, []runtime.MatchData{msg})

	if state.Game.CurrentBid != 5 {
		t.Fatalf("current bid = %d, want 5", state.Game.CurrentBid)
	}
	if state.Game.HighestBidderSeat != 0 {
		t.Fatalf("highest bidder seat = %d, want 0", state.Game.HighestBidderSeat)
	}

	found := false
	for _, b := range dispatcher.broadcasts {
		if b.opCode == OpBidPlaced {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected bid_placed broadcast, got %v", dispatcher.lastOpCodes())
	}
}

func TestBotsActAfterTickDelay(t *testing.T) {
	mh, state := newTestMatch(t)
	dispatcher := &mockDispatcher{}

	joinUser(t, mh, state, dispatcher, "u1")
	mh.handleStartGame(state, dispatcher, noopLogger{}, mockMatchData{
		mockPresence: mockPresence{userID: "u1"},
		opCode:       OpStartGame,
	})

	// Seat 0 (the human) opens the auction; pass to hand the turn to the bots.
	mh.MatchLoop(context.Background(), noopLogger{}, nil, nil, dispatcher, 1, state, []runtime.MatchData{
		mockMatchData{mockPresence: mockPresence{userID: "u1"}, opCode: OpPassBid},
	})
	if state.Game.BiddingTurnSeat != 1 {
		t.Fatalf("bidding turn seat = %d, want 1", state.Game.BiddingTurnSeat)
	}

	// The same loop tick arms the pending bot's delay without letting it act.
	if state.BotWaitUntil == 0 {
		t.Fatalf("bot delay was not armed")
	}
	if state.Game.PassesCount != 1 {
		t.Fatalf("passes = %d, bot acted before its delay elapsed", state.Game.PassesCount)
	}

	// Run empty ticks; each elapsed delay allows exactly one bot decision,
	// until the turn comes back around to the human at seat 0.
	for tick := int64(2); tick < 60 && state.Game.BiddingTurnSeat != 0; tick++ {
		mh.MatchLoop(context.Background(), noopLogger{}, nil, nil, dispatcher, tick, state, nil)
	}

	if state.Game.BiddingTurnSeat != 0 {
		t.Fatalf("bots never handed the turn back to seat 0")
	}
	if state.Game.CurrentBid == 0 && state.Game.PassesCount <= 1 {
		t.Fatalf("no bot decision was recorded: bid=%d passes=%d", state.Game.CurrentBid, state.Game.PassesCount)
	}
}

// lastLabelPhase parses the most recent label update pushed to the dispatcher.
func lastLabelPhase(t *testing.T, dispatcher *mockDispatcher) string {
	t.Helper()
	if len(dispatcher.labelUpdates) == 0 {
		t.Fatalf("no label updates recorded")
	}
	var payload domain.LabelPayload
	if err := json.Unmarshal([]byte(dispatcher.labelUpdates[len(dispatcher.labelUpdates)-1]), &payload); err != nil {
		t.Fatalf("label is not valid JSON: %v", err)
	}
	return payload.Phase
}

// Listing queries read the match label, so it has to follow the game through
// every phase, not just game end.
func TestLabelTracksPhaseChanges(t *testing.T) {
	mh, state := newTestMatch(t)
	dispatcher := &mockDispatcher{}

	users := []string{"u1", "u2", "u3", "u4"}
	for _, u := range users {
		joinUser(t, mh, state, dispatcher, u)
	}

	mh.handleStartGame(state, dispatcher, noopLogger{}, mockMatchData{
		mockPresence: mockPresence{userID: "u1"},
		opCode:       OpStartGame,
	})
	if got := lastLabelPhase(t, dispatcher); got != string(domain.PhaseBidding) {
		t.Fatalf("label phase after start = %q, want %q", got, domain.PhaseBidding)
	}

	// u1 bids, the other three pass; the standing bid closes the auction.
	bidData, _ := json.Marshal(PlaceBidRequest{Amount: 5})
	mh.MatchLoop(context.Background(), noopLogger{}, nil, nil, dispatcher, 1, state, []runtime.MatchData{
		mockMatchData{mockPresence: mockPresence{userID: "u1"}, opCode: OpPlaceBid, data: bidData},
		mockMatchData{mockPresence: mockPresence{userID: "u2"}, opCode: OpPassBid},
		mockMatchData{mockPresence: mockPresence{userID: "u3"}, opCode: OpPassBid},
		mockMatchData{mockPresence: mockPresence{userID: "u4"}, opCode: OpPassBid},
	})
	if state.Game.Phase != domain.PhaseTrumpSelection {
		t.Fatalf("phase = %s, want trump_selection", state.Game.Phase)
	}
	if got := lastLabelPhase(t, dispatcher); got != string(domain.PhaseTrumpSelection) {
		t.Fatalf("label phase after auction = %q, want %q", got, domain.PhaseTrumpSelection)
	}

	trumpData, _ := json.Marshal(ChooseTrumpRequest{Suit: string(domain.SuitSpades)})
	mh.MatchLoop(context.Background(), noopLogger{}, nil, nil, dispatcher, 2, state, []runtime.MatchData{
		mockMatchData{mockPresence: mockPresence{userID: "u1"}, opCode: OpChooseTrump, data: trumpData},
	})
	if state.Game.Phase != domain.PhasePlaying {
		t.Fatalf("phase = %s, want playing", state.Game.Phase)
	}
	if got := lastLabelPhase(t, dispatcher); got != string(domain.PhasePlaying) {
		t.Fatalf("label phase after trump choice = %q, want %q", got, domain.PhasePlaying)
	}
}

func TestMatchLeaveTerminatesWithoutHumans(t *testing.T) {
	mh, state := newTestMatch(t)
	dispatcher := &mockDispatcher{}

	joinUser(t, mh, state, dispatcher, "u1")
	joinUser(t, mh, state, dispatcher, "u2")

	out := mh.MatchLeave(context.Background(), noopLogger{}, nil, nil, dispatcher, 0, state, []runtime.Presence{
		mockPresence{userID: "u1"},
	})
	if out == nil {
		t.Fatalf("match should stay alive while a human remains")
	}

	out = mh.MatchLeave(context.Background(), noopLogger{}, nil, nil, dispatcher, 0, state, []runtime.Presence{
		mockPresence{userID: "u2"},
	})
	if out != nil {
		t.Fatalf("match should terminate once the last human leaves")
	}
}
