package bot

import (
	"tarneeb/internal/domain"
)

// BotLevel selects a decision strategy for an AI seat.
type BotLevel int

const (
	// BotLevelRandom plays legal but unconsidered moves.
	BotLevelRandom BotLevel = iota
	// BotLevelStandard applies the hand-strength heuristics.
	BotLevelStandard
)

// Brain is the interface that all bot strategies must implement. All methods
// are pure decisions: they never mutate the hand or the game, and any
// randomness comes from the source injected at construction.
type Brain interface {
	// DecideBid returns the tricks to bid, or 0 to pass.
	DecideBid(hand []domain.Card, currentBid, passes int) int
	// ChooseTrump picks the tarneeb suit after winning the auction.
	ChooseTrump(hand []domain.Card) domain.Suit
	// ChooseCard picks a rule-legal card for the current trick.
	ChooseCard(hand []domain.Card, trick []domain.PlayedCard, trump domain.Suit) domain.Card
}
