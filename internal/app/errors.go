package app

import "errors"

// Validation failures returned to the acting caller. All of them leave game
// state unchanged; none are fatal. The host surfaces them to the user.
var (
	ErrInvalidPhase     = errors.New("invalid phase for action")
	ErrNotYourTurn      = errors.New("not your turn")
	ErrNotHighestBidder = errors.New("only the highest bidder can choose the tarneeb suit")
	ErrBidTooLow        = errors.New("bid must be higher than the current bid")
	ErrBidTooHigh       = errors.New("bid cannot exceed the tricks in a round")
	ErrCardNotInHand    = errors.New("card not in hand")
	ErrMustFollowSuit   = errors.New("must follow the lead suit")
	ErrAlreadyJoined    = errors.New("player already joined")
	ErrGameFull         = errors.New("game is full")
	ErrTooFewPlayers    = errors.New("not enough players to start")
	ErrUnknownPlayer    = errors.New("player not found")
	ErrNotCreator       = errors.New("only the game creator can stop the game")
	ErrInvalidSuit      = errors.New("unknown suit")
)
