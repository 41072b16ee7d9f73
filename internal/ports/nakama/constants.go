package nakama

// MatchNameTarneeb is the authoritative match handler name registered with
// the Nakama runtime.
const MatchNameTarneeb = "tarneeb"

// RpcQuickMatch finds or creates an open tarneeb match.
const RpcQuickMatch = "quickmatch"

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpStartGame   int64 = 1
	OpPlaceBid    int64 = 2
	OpPassBid     int64 = 3
	OpChooseTrump int64 = 4
	OpPlayCard    int64 = 5
	OpStopGame    int64 = 6
	OpEndGame     int64 = 7

	// Server -> Client events
	OpPlayerJoined     int64 = 101
	OpGameStarted      int64 = 102
	OpHandDealt        int64 = 103 // sent privately
	OpBidPlaced        int64 = 104
	OpBidPassed        int64 = 105
	OpBiddingRestarted int64 = 106
	OpTrumpSelection   int64 = 107
	OpTrumpChosen      int64 = 108
	OpCardPlayed       int64 = 109
	OpTrickWon         int64 = 110
	OpRoundEnded       int64 = 111
	OpRoundStarted     int64 = 112
	OpGameEnded        int64 = 113
	OpGameStopped      int64 = 114
	OpGameError        int64 = 120
	OpStateSnapshot    int64 = 121
)
