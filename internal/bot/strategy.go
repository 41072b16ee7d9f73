package bot

import (
	"math/rand"

	"tarneeb/internal/domain"
)

// StandardBot bids from hand strength and plays with basic trick heuristics.
type StandardBot struct {
	rng *rand.Rand
}

// NewStandardBot constructs the default strategy with the given source.
func NewStandardBot(rng *rand.Rand) *StandardBot {
	return &StandardBot{rng: rng}
}

// DecideBid computes a bid range from hand strength and picks uniformly
// within it. Strong hands (strength >= 8) bid 5..7, medium hands (>= 5) bid
// 3..5, weak hands pass unless three players already passed with no bid on
// the table, in which case a minimal 1-2 bid keeps the round alive.
func (b *StandardBot) DecideBid(hand []domain.Card, currentBid, passes int) int {
	strength := HandStrength(hand)

	var minBid, maxBid int
	switch {
	case strength >= 8:
		minBid = max(currentBid+1, 5)
		maxBid = min(7, strength/2+3)
	case strength >= 5:
		minBid = max(currentBid+1, 3)
		maxBid = min(5, strength/2+2)
	default:
		if passes >= 3 && currentBid == 0 {
			minBid, maxBid = 1, 2
		} else {
			return 0
		}
	}

	if minBid > maxBid || minBid > 7 {
		return 0
	}
	return minBid + b.rng.Intn(maxBid-minBid+1)
}

// ChooseTrump picks the suit with the best length and honor profile.
func (b *StandardBot) ChooseTrump(hand []domain.Card) domain.Suit {
	return bestTrumpSuit(hand)
}

// ChooseCard picks a legal card for the trick in progress.
func (b *StandardBot) ChooseCard(hand []domain.Card, trick []domain.PlayedCard, trump domain.Suit) domain.Card {
	var lead domain.Suit
	if len(trick) > 0 {
		lead = trick[0].Card.Suit
	}
	legal := domain.LegalPlays(hand, lead)

	if lead == "" {
		return b.chooseLead(legal, trump)
	}

	if same := domain.CardsOfSuit(legal, lead); len(same) > 0 {
		return chooseFollow(same, trick, trump)
	}
	return chooseOffSuit(legal, trick, trump)
}

// chooseLead opens a trick: a high non-trump honor when available, else the
// lowest trump, else anything.
func (b *StandardBot) chooseLead(legal []domain.Card, trump domain.Suit) domain.Card {
	var highNonTrump []domain.Card
	for _, c := range legal {
		if c.Suit != trump && c.Rank >= domain.RankKing {
			highNonTrump = append(highNonTrump, c)
		}
	}
	if len(highNonTrump) > 0 {
		return highNonTrump[b.rng.Intn(len(highNonTrump))]
	}
	if trumps := domain.CardsOfSuit(legal, trump); len(trumps) > 0 {
		return domain.LowestCard(trumps)
	}
	return legal[b.rng.Intn(len(legal))]
}

// chooseFollow plays the cheapest card that still wins the trick, or the
// lowest of the suit when no win is possible.
func chooseFollow(same []domain.Card, trick []domain.PlayedCard, trump domain.Suit) domain.Card {
	winning, ok := domain.WinningCard(trick, trump)
	if !ok {
		return domain.LowestCard(same)
	}
	var beating []domain.Card
	for _, c := range same {
		if domain.Beats(c, winning, trump) {
			beating = append(beating, c)
		}
	}
	if len(beating) > 0 {
		return domain.LowestCard(beating)
	}
	return domain.LowestCard(same)
}

// chooseOffSuit handles a void in the lead suit: ruff with the lowest trump
// unless the trick already holds one, otherwise discard the lowest non-trump.
func chooseOffSuit(legal []domain.Card, trick []domain.PlayedCard, trump domain.Suit) domain.Card {
	trumpPlayed := false
	for _, pc := range trick {
		if pc.Card.Suit == trump {
			trumpPlayed = true
			break
		}
	}

	trumps := domain.CardsOfSuit(legal, trump)
	var nonTrump []domain.Card
	for _, c := range legal {
		if c.Suit != trump {
			nonTrump = append(nonTrump, c)
		}
	}

	if len(trumps) > 0 && !trumpPlayed {
		return domain.LowestCard(trumps)
	}
	if len(nonTrump) > 0 {
		return domain.LowestCard(nonTrump)
	}
	return domain.LowestCard(trumps)
}
