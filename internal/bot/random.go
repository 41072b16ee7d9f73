package bot

import (
	"math/rand"

	"tarneeb/internal/domain"
)

// RandomBot plays legal but unconsidered moves. Used for the "easy"
// difficulty tier and as a fuzzing opponent in tests.
type RandomBot struct {
	rng *rand.Rand
}

// NewRandomBot constructs the random strategy with the given source.
func NewRandomBot(rng *rand.Rand) *RandomBot {
	return &RandomBot{rng: rng}
}

// DecideBid passes whenever it can, bidding the minimum only when three
// passes with no standing bid would otherwise force a redeal.
func (b *RandomBot) DecideBid(hand []domain.Card, currentBid, passes int) int {
	if passes >= 3 && currentBid == 0 {
		return 1
	}
	return 0
}

// ChooseTrump picks the longest suit.
func (b *RandomBot) ChooseTrump(hand []domain.Card) domain.Suit {
	best := domain.Suits[0]
	bestCount := len(domain.CardsOfSuit(hand, best))
	for _, s := range domain.Suits[1:] {
		if count := len(domain.CardsOfSuit(hand, s)); count > bestCount {
			best, bestCount = s, count
		}
	}
	return best
}

// ChooseCard plays any legal card.
func (b *RandomBot) ChooseCard(hand []domain.Card, trick []domain.PlayedCard, trump domain.Suit) domain.Card {
	var lead domain.Suit
	if len(trick) > 0 {
		lead = trick[0].Card.Suit
	}
	legal := domain.LegalPlays(hand, lead)
	return legal[b.rng.Intn(len(legal))]
}
