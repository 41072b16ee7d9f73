package app

import "tarneeb/internal/domain"

// EventKind identifies emitted game events for host dispatch.
type EventKind string

const (
	EventPlayerJoined          EventKind = "player_joined"
	EventGameStarted           EventKind = "game_started"
	EventHandDealt             EventKind = "hand_dealt"
	EventBidPlaced             EventKind = "bid_placed"
	EventBidPassed             EventKind = "bid_passed"
	EventBiddingRestarted      EventKind = "bidding_restarted"
	EventTrumpSelectionStarted EventKind = "trump_selection_started"
	EventTrumpChosen           EventKind = "trump_chosen"
	EventCardPlayed            EventKind = "card_played"
	EventTrickWon              EventKind = "trick_won"
	EventRoundEnded            EventKind = "round_ended"
	EventRoundStarted          EventKind = "round_started"
	EventGameEnded             EventKind = "game_ended"
	EventGameStopped           EventKind = "game_stopped"
)

// Event is a game event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []string // user ids; empty means broadcast
}

type PlayerJoinedPayload struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Seat        int    `json:"seat"`
	IsBot       bool   `json:"is_bot"`
}

type GameStartedPayload struct {
	Round            int `json:"round"`
	FirstBiddingSeat int `json:"first_bidding_seat"`
}

type HandDealtPayload struct {
	UserID string        `json:"user_id"`
	Seat   int           `json:"seat"`
	Hand   []domain.Card `json:"hand"`
}

type BidPlacedPayload struct {
	Seat     int `json:"seat"`
	Amount   int `json:"amount"`
	NextSeat int `json:"next_seat"`
}

type BidPassedPayload struct {
	Seat     int `json:"seat"`
	Passes   int `json:"passes"`
	NextSeat int `json:"next_seat"`
}

type BiddingRestartedPayload struct {
	Round int `json:"round"`
}

type TrumpSelectionStartedPayload struct {
	BidderSeat int `json:"bidder_seat"`
	Bid        int `json:"bid"`
}

type TrumpChosenPayload struct {
	Seat          int         `json:"seat"`
	Suit          domain.Suit `json:"suit"`
	FirstTurnSeat int         `json:"first_turn_seat"`
}

type CardPlayedPayload struct {
	Seat     int         `json:"seat"`
	Card     domain.Card `json:"card"`
	NextSeat int         `json:"next_seat"` // NoSeat when the trick completed
}

type TrickWonPayload struct {
	Seat        int         `json:"seat"`
	Card        domain.Card `json:"card"`
	TrickNumber int         `json:"trick_number"` // 1..13 within the round
}

type RoundEndedPayload struct {
	Round       int    `json:"round"`
	TeamTricks  [2]int `json:"team_tricks"`
	BiddingTeam int    `json:"bidding_team"`
	Bid         int    `json:"bid"`
	BidMade     bool   `json:"bid_made"`
	TeamScores  [2]int `json:"team_scores"`
}

type RoundStartedPayload struct {
	Round      int    `json:"round"`
	TeamScores [2]int `json:"team_scores"`
}

type GameEndedPayload struct {
	WinningTeam int    `json:"winning_team"`
	TeamScores  [2]int `json:"team_scores"`
}

type GameStoppedPayload struct {
	ByUserID   string `json:"by_user_id"`
	TeamScores [2]int `json:"team_scores"`
}
