package bot

import (
	"math/rand"

	"tarneeb/internal/domain"
)

// Agent binds a bot identity to its strategy for the duration of a game.
type Agent struct {
	ID       string
	Name     string
	Strategy Brain
}

// NewAgent creates an agent for the given bot user id, picking the strategy
// from the identity's configured difficulty.
func NewAgent(userID string, rng *rand.Rand) (*Agent, error) {
	identity, _ := GetBotConfig(userID)
	brain, err := NewBrain(LevelForDifficulty(identity.Difficulty), rng)
	if err != nil {
		return nil, err
	}
	name := identity.DisplayName
	if name == "" {
		name = userID
	}
	return &Agent{ID: userID, Name: name, Strategy: brain}, nil
}

// DecideBid asks the agent for a bid decision. 0 means pass.
func (a *Agent) DecideBid(hand []domain.Card, currentBid, passes int) int {
	return a.Strategy.DecideBid(hand, currentBid, passes)
}

// ChooseTrump asks the agent for a tarneeb suit.
func (a *Agent) ChooseTrump(hand []domain.Card) domain.Suit {
	return a.Strategy.ChooseTrump(hand)
}

// ChooseCard asks the agent for a card to play in the current trick.
func (a *Agent) ChooseCard(hand []domain.Card, trick []domain.PlayedCard, trump domain.Suit) domain.Card {
	return a.Strategy.ChooseCard(hand, trick, trump)
}
