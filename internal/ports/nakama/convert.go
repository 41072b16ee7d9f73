package nakama

import (
	"errors"

	"tarneeb/internal/app"
	"tarneeb/internal/domain"
)

// Client request payloads, JSON-encoded in match data frames.

type PlaceBidRequest struct {
	Amount int `json:"amount"`
}

type ChooseTrumpRequest struct {
	Suit string `json:"suit"`
}

type CardPayload struct {
	Suit string `json:"suit"`
	Rank int    `json:"rank"`
}

type PlayCardRequest struct {
	Card CardPayload `json:"card"`
}

// GameErrorPayload is sent privately to the user whose action was rejected.
type GameErrorPayload struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func toDomainCard(p CardPayload) domain.Card {
	return domain.Card{Suit: domain.Suit(p.Suit), Rank: p.Rank}
}

// eventOpCode maps an engine event kind to its wire opcode.
func eventOpCode(kind app.EventKind) (int64, bool) {
	switch kind {
	case app.EventPlayerJoined:
		return OpPlayerJoined, true
	case app.EventGameStarted:
		return OpGameStarted, true
	case app.EventHandDealt:
		return OpHandDealt, true
	case app.EventBidPlaced:
		return OpBidPlaced, true
	case app.EventBidPassed:
		return OpBidPassed, true
	case app.EventBiddingRestarted:
		return OpBiddingRestarted, true
	case app.EventTrumpSelectionStarted:
		return OpTrumpSelection, true
	case app.EventTrumpChosen:
		return OpTrumpChosen, true
	case app.EventCardPlayed:
		return OpCardPlayed, true
	case app.EventTrickWon:
		return OpTrickWon, true
	case app.EventRoundEnded:
		return OpRoundEnded, true
	case app.EventRoundStarted:
		return OpRoundStarted, true
	case app.EventGameEnded:
		return OpGameEnded, true
	case app.EventGameStopped:
		return OpGameStopped, true
	default:
		return 0, false
	}
}

// errorCode gives each validation failure a stable wire code.
func errorCode(err error) int {
	switch {
	case errors.Is(err, app.ErrInvalidPhase):
		return 1
	case errors.Is(err, app.ErrNotYourTurn):
		return 2
	case errors.Is(err, app.ErrNotHighestBidder):
		return 3
	case errors.Is(err, app.ErrBidTooLow):
		return 4
	case errors.Is(err, app.ErrBidTooHigh):
		return 5
	case errors.Is(err, app.ErrCardNotInHand):
		return 6
	case errors.Is(err, app.ErrMustFollowSuit):
		return 7
	case errors.Is(err, app.ErrAlreadyJoined):
		return 8
	case errors.Is(err, app.ErrGameFull):
		return 9
	case errors.Is(err, app.ErrTooFewPlayers):
		return 10
	case errors.Is(err, app.ErrUnknownPlayer):
		return 11
	case errors.Is(err, app.ErrNotCreator):
		return 12
	case errors.Is(err, app.ErrInvalidSuit):
		return 13
	default:
		return 99
	}
}
