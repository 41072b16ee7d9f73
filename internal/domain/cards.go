package domain

import (
	"fmt"
	"math/rand"
	"sort"
)

// Suit identifies one of the four card suits.
type Suit string

const (
	SuitSpades   Suit = "S"
	SuitClubs    Suit = "C"
	SuitHearts   Suit = "H"
	SuitDiamonds Suit = "D"
)

// Suits lists all suits in canonical deck order.
var Suits = [4]Suit{SuitSpades, SuitClubs, SuitHearts, SuitDiamonds}

// rankNames maps rank index 0..12 to its display name. 2 is lowest, Ace highest.
var rankNames = [13]string{"2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A"}

// Honor rank indices.
const (
	RankJack  = 9
	RankQueen = 10
	RankKing  = 11
	RankAce   = 12
)

var suitSymbols = map[Suit]string{
	SuitSpades:   "♠",
	SuitClubs:    "♣",
	SuitHearts:   "♥",
	SuitDiamonds: "♦",
}

var suitNames = map[Suit]string{
	SuitSpades:   "Spades",
	SuitClubs:    "Clubs",
	SuitHearts:   "Hearts",
	SuitDiamonds: "Diamonds",
}

// Valid reports whether the suit is one of the four playable suits.
func (s Suit) Valid() bool {
	_, ok := suitSymbols[s]
	return ok
}

// Symbol returns the unicode glyph for the suit.
func (s Suit) Symbol() string {
	return suitSymbols[s]
}

// Name returns the full english name of the suit.
func (s Suit) Name() string {
	return suitNames[s]
}

// Card is a single playing card. Rank runs 0..12 with 2 lowest and Ace highest.
type Card struct {
	Suit Suit `json:"suit"`
	Rank int  `json:"rank"`
}

// RankName returns the display name of the card's rank ("2".."10", "J", "Q", "K", "A").
func (c Card) RankName() string {
	if c.Rank < 0 || c.Rank >= len(rankNames) {
		return "?"
	}
	return rankNames[c.Rank]
}

func (c Card) String() string {
	return fmt.Sprintf("%s%s", c.RankName(), c.Suit.Symbol())
}

// NewDeck returns all 52 cards in canonical order: suits in Suits order,
// ranks ascending within each suit.
func NewDeck() []Card {
	deck := make([]Card, 0, 52)
	for _, s := range Suits {
		for r := 0; r < 13; r++ {
			deck = append(deck, Card{Suit: s, Rank: r})
		}
	}
	return deck
}

// ShuffleDeck returns a shuffled copy of the given deck using the provided source.
func ShuffleDeck(deck []Card, rng *rand.Rand) []Card {
	out := make([]Card, len(deck))
	copy(out, deck)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// SortHand orders a hand by suit (canonical order) then ascending rank.
// Play rules never depend on hand order; this is for presentation.
func SortHand(cards []Card) {
	sort.Slice(cards, func(i, j int) bool {
		if cards[i].Suit != cards[j].Suit {
			return suitOrder(cards[i].Suit) < suitOrder(cards[j].Suit)
		}
		return cards[i].Rank < cards[j].Rank
	})
}

func suitOrder(s Suit) int {
	for i, v := range Suits {
		if v == s {
			return i
		}
	}
	return len(Suits)
}

// CompareSameSuit orders two cards of the same suit by rank.
// Returns a negative value when a is lower, positive when higher, 0 when equal.
func CompareSameSuit(a, b Card) int {
	return a.Rank - b.Rank
}
