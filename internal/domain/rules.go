package domain

// LegalPlays returns the subset of hand that may legally be played given the
// lead suit of the current trick. With no lead suit established, every card
// is legal. A player holding the lead suit must follow it.
func LegalPlays(hand []Card, lead Suit) []Card {
	if lead == "" {
		return append([]Card(nil), hand...)
	}
	var same []Card
	for _, c := range hand {
		if c.Suit == lead {
			same = append(same, c)
		}
	}
	if len(same) > 0 {
		return same
	}
	return append([]Card(nil), hand...)
}

// Beats reports whether the candidate card beats the current best card of a
// trick. The best card is always either trump or of the lead suit, so a card
// of any third suit never wins.
func Beats(candidate, best Card, trump Suit) bool {
	if candidate.Suit == best.Suit {
		return candidate.Rank > best.Rank
	}
	return candidate.Suit == trump
}

// TrickWinner resolves a complete trick to the winning seat: the highest
// trump if any trump was played, otherwise the highest card of the lead suit.
// The first entry of the trick establishes the lead.
func TrickWinner(trick []PlayedCard, trump Suit) int {
	if len(trick) == 0 {
		return NoSeat
	}
	best := trick[0]
	for _, pc := range trick[1:] {
		if Beats(pc.Card, best.Card, trump) {
			best = pc
		}
	}
	return best.Seat
}

// WinningCard returns the card currently winning a (possibly incomplete)
// trick, and false when the trick is empty.
func WinningCard(trick []PlayedCard, trump Suit) (Card, bool) {
	if len(trick) == 0 {
		return Card{}, false
	}
	return trick[TrickWinnerIndex(trick, trump)].Card, true
}

// TrickWinnerIndex returns the index within the trick of the winning entry.
func TrickWinnerIndex(trick []PlayedCard, trump Suit) int {
	idx := 0
	for i := 1; i < len(trick); i++ {
		if Beats(trick[i].Card, trick[idx].Card, trump) {
			idx = i
		}
	}
	return idx
}

// HighCardPoints scores a set of cards by honor count: A=4, K=3, Q=2, J=1.
func HighCardPoints(cards []Card) int {
	points := 0
	for _, c := range cards {
		switch c.Rank {
		case RankAce:
			points += 4
		case RankKing:
			points += 3
		case RankQueen:
			points += 2
		case RankJack:
			points += 1
		}
	}
	return points
}

// CardsOfSuit filters the cards of the given suit, preserving order.
func CardsOfSuit(cards []Card, s Suit) []Card {
	var out []Card
	for _, c := range cards {
		if c.Suit == s {
			out = append(out, c)
		}
	}
	return out
}

// LowestCard returns the lowest-ranked card of the set. Panics on empty input.
func LowestCard(cards []Card) Card {
	low := cards[0]
	for _, c := range cards[1:] {
		if c.Rank < low.Rank {
			low = c
		}
	}
	return low
}

// HighestCard returns the highest-ranked card of the set. Panics on empty input.
func HighestCard(cards []Card) Card {
	high := cards[0]
	for _, c := range cards[1:] {
		if c.Rank > high.Rank {
			high = c
		}
	}
	return high
}
