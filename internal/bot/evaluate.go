package bot

import (
	"tarneeb/internal/domain"
)

// HandStrength scores a hand for bidding on a 0-13 scale: high-card points
// (A=4, K=3, Q=2, J=1) plus a length bonus per suit. Suits of five or more
// cards add count-2, suits of three or four add one.
func HandStrength(hand []domain.Card) int {
	strength := domain.HighCardPoints(hand)
	for _, s := range domain.Suits {
		count := len(domain.CardsOfSuit(hand, s))
		switch {
		case count >= 5:
			strength += count - 2
		case count >= 3:
			strength++
		}
	}
	if strength > 13 {
		strength = 13
	}
	return strength
}

// suitScore rates a suit as a trump candidate: length weighted double, plus
// its honor points.
func suitScore(hand []domain.Card, s domain.Suit) int {
	cards := domain.CardsOfSuit(hand, s)
	return 2*len(cards) + domain.HighCardPoints(cards)
}

// bestTrumpSuit returns the suit maximizing suitScore. Ties resolve to the
// earlier suit in canonical order.
func bestTrumpSuit(hand []domain.Card) domain.Suit {
	best := domain.Suits[0]
	bestScore := suitScore(hand, best)
	for _, s := range domain.Suits[1:] {
		if score := suitScore(hand, s); score > bestScore {
			best, bestScore = s, score
		}
	}
	return best
}
