package app

import (
	"fmt"

	"tarneeb/internal/domain"
)

// ActionType tags the closed set of in-game actions a seated player can take.
type ActionType int

const (
	ActionBid ActionType = iota
	ActionPass
	ActionChooseTrump
	ActionPlayCard
	ActionStop
	ActionEnd
)

// Action is a tagged union of player actions; only the fields relevant to
// the type are read.
type Action struct {
	Type ActionType
	Bid  int
	Suit domain.Suit
	Card domain.Card
}

// Apply dispatches an action to the matching use-case. Registries and other
// generic hosts use this single entry point; typed callers use the methods
// directly.
func (s *Service) Apply(g *domain.Game, userID string, act Action) ([]Event, error) {
	switch act.Type {
	case ActionBid:
		return s.Bid(g, userID, act.Bid)
	case ActionPass:
		return s.Pass(g, userID)
	case ActionChooseTrump:
		return s.ChooseTrump(g, userID, act.Suit)
	case ActionPlayCard:
		return s.PlayCard(g, userID, act.Card)
	case ActionStop:
		return s.Stop(g, userID)
	case ActionEnd:
		return s.End(g, userID)
	default:
		return nil, fmt.Errorf("unknown action type: %d", act.Type)
	}
}
