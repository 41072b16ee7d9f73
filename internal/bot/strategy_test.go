package bot

import (
	"math/rand"
	"testing"

	"tarneeb/internal/domain"
)

func card(s domain.Suit, r int) domain.Card {
	return domain.Card{Suit: s, Rank: r}
}

func TestHandStrength(t *testing.T) {
	cases := []struct {
		name string
		hand []domain.Card
		want int
	}{
		{
			name: "honors plus long suit",
			hand: []domain.Card{
				card(domain.SuitSpades, domain.RankAce),
				card(domain.SuitSpades, domain.RankKing),
				card(domain.SuitSpades, 7),
				card(domain.SuitSpades, 5),
				card(domain.SuitSpades, 2),
				card(domain.SuitHearts, 3),
			},
			// HCP 7, spades length 5 adds 3
			want: 10,
		},
		{
			name: "no honors short suits",
			hand: []domain.Card{
				card(domain.SuitClubs, 0),
				card(domain.SuitHearts, 1),
				card(domain.SuitDiamonds, 2),
			},
			want: 0,
		},
		{
			name: "three card suit bonus",
			hand: []domain.Card{
				card(domain.SuitHearts, domain.RankQueen),
				card(domain.SuitHearts, 4),
				card(domain.SuitHearts, 2),
			},
			// HCP 2, hearts length 3 adds 1
			want: 3,
		},
		{
			name: "capped at thirteen",
			hand: []domain.Card{
				card(domain.SuitSpades, domain.RankAce),
				card(domain.SuitSpades, domain.RankKing),
				card(domain.SuitSpades, domain.RankQueen),
				card(domain.SuitSpades, domain.RankJack),
				card(domain.SuitSpades, 8),
				card(domain.SuitHearts, domain.RankAce),
				card(domain.SuitHearts, domain.RankKing),
				card(domain.SuitHearts, domain.RankQueen),
			},
			want: 13,
		},
	}

	for _, tc := range cases {
		if got := HandStrength(tc.hand); got != tc.want {
			t.Errorf("%s: HandStrength = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestDecideBidStrongHand(t *testing.T) {
	b := NewStandardBot(rand.New(rand.NewSource(1)))
	hand := []domain.Card{
		card(domain.SuitSpades, domain.RankAce),
		card(domain.SuitSpades, domain.RankKing),
		card(domain.SuitSpades, domain.RankQueen),
		card(domain.SuitSpades, 8),
		card(domain.SuitSpades, 6),
		card(domain.SuitHearts, domain.RankAce),
	}
	for i := 0; i < 50; i++ {
		amount := b.DecideBid(hand, 0, 0)
		if amount < 5 || amount > 7 {
			t.Fatalf("strong hand bid = %d, want 5..7", amount)
		}
	}
}

func TestDecideBidWeakHandPasses(t *testing.T) {
	b := NewStandardBot(rand.New(rand.NewSource(1)))
	hand := []domain.Card{
		card(domain.SuitClubs, 0),
		card(domain.SuitHearts, 1),
		card(domain.SuitDiamonds, 2),
	}
	if amount := b.DecideBid(hand, 0, 0); amount != 0 {
		t.Fatalf("weak hand bid = %d, want pass", amount)
	}
}

func TestDecideBidForcedWhenAllOthersPassed(t *testing.T) {
	b := NewStandardBot(rand.New(rand.NewSource(1)))
	hand := []domain.Card{
		card(domain.SuitClubs, 0),
		card(domain.SuitHearts, 1),
		card(domain.SuitDiamonds, 2),
	}
	for i := 0; i < 50; i++ {
		amount := b.DecideBid(hand, 0, 3)
		if amount < 1 || amount > 2 {
			t.Fatalf("forced bid = %d, want 1..2", amount)
		}
	}
	// The forced bid never applies once someone has bid.
	if amount := b.DecideBid(hand, 2, 3); amount != 0 {
		t.Fatalf("bid = %d, want pass when a bid stands", amount)
	}
}

func TestDecideBidCannotOvercallBeyondRange(t *testing.T) {
	b := NewStandardBot(rand.New(rand.NewSource(1)))
	hand := []domain.Card{
		card(domain.SuitSpades, domain.RankAce),
		card(domain.SuitSpades, domain.RankKing),
		card(domain.SuitSpades, domain.RankQueen),
		card(domain.SuitSpades, 8),
		card(domain.SuitSpades, 6),
		card(domain.SuitHearts, domain.RankAce),
	}
	if amount := b.DecideBid(hand, 7, 0); amount != 0 {
		t.Fatalf("bid = %d, want pass when the range is exhausted", amount)
	}
}

func TestChooseTrumpPicksBestSuit(t *testing.T) {
	b := NewStandardBot(rand.New(rand.NewSource(1)))
	hand := []domain.Card{
		card(domain.SuitHearts, domain.RankAce),
		card(domain.SuitHearts, domain.RankKing),
		card(domain.SuitHearts, 7),
		card(domain.SuitHearts, 4),
		card(domain.SuitHearts, 2),
		card(domain.SuitSpades, 3),
		card(domain.SuitClubs, 5),
	}
	if suit := b.ChooseTrump(hand); suit != domain.SuitHearts {
		t.Fatalf("trump = %s, want H", suit)
	}
}

func TestChooseCardFollowsWithCheapestWinner(t *testing.T) {
	b := NewStandardBot(rand.New(rand.NewSource(1)))
	hand := []domain.Card{
		card(domain.SuitHearts, 4),
		card(domain.SuitHearts, 8),
		card(domain.SuitHearts, domain.RankAce),
	}
	trick := []domain.PlayedCard{
		{Seat: 0, Card: card(domain.SuitHearts, 6)},
	}
	got := b.ChooseCard(hand, trick, domain.SuitSpades)
	if got != card(domain.SuitHearts, 8) {
		t.Fatalf("follow = %s, want 10♥ (cheapest winner)", got)
	}
}

func TestChooseCardDumpsLowestWhenCannotWin(t *testing.T) {
	b := NewStandardBot(rand.New(rand.NewSource(1)))
	hand := []domain.Card{
		card(domain.SuitHearts, 2),
		card(domain.SuitHearts, 5),
	}
	trick := []domain.PlayedCard{
		{Seat: 0, Card: card(domain.SuitHearts, domain.RankAce)},
	}
	got := b.ChooseCard(hand, trick, domain.SuitSpades)
	if got != card(domain.SuitHearts, 2) {
		t.Fatalf("follow = %s, want lowest heart", got)
	}
}

func TestChooseCardRuffsWhenVoid(t *testing.T) {
	b := NewStandardBot(rand.New(rand.NewSource(1)))
	hand := []domain.Card{
		card(domain.SuitSpades, 1),
		card(domain.SuitSpades, 9),
		card(domain.SuitClubs, 3),
	}
	trick := []domain.PlayedCard{
		{Seat: 0, Card: card(domain.SuitHearts, domain.RankKing)},
	}
	got := b.ChooseCard(hand, trick, domain.SuitSpades)
	if got != card(domain.SuitSpades, 1) {
		t.Fatalf("play = %s, want lowest trump ruff", got)
	}
}

func TestChooseCardDiscardsWhenTrickAlreadyTrumped(t *testing.T) {
	b := NewStandardBot(rand.New(rand.NewSource(1)))
	hand := []domain.Card{
		card(domain.SuitSpades, 1),
		card(domain.SuitClubs, 3),
		card(domain.SuitDiamonds, 6),
	}
	trick := []domain.PlayedCard{
		{Seat: 0, Card: card(domain.SuitHearts, domain.RankKing)},
		{Seat: 1, Card: card(domain.SuitSpades, 10)},
	}
	got := b.ChooseCard(hand, trick, domain.SuitSpades)
	if got != card(domain.SuitClubs, 3) {
		t.Fatalf("play = %s, want lowest non-trump discard", got)
	}
}

func TestChooseCardLeadPrefersHighHonor(t *testing.T) {
	b := NewStandardBot(rand.New(rand.NewSource(1)))
	hand := []domain.Card{
		card(domain.SuitHearts, domain.RankAce),
		card(domain.SuitClubs, 4),
		card(domain.SuitSpades, 2),
	}
	got := b.ChooseCard(hand, nil, domain.SuitSpades)
	if got != card(domain.SuitHearts, domain.RankAce) {
		t.Fatalf("lead = %s, want A♥", got)
	}
}

func TestChooseCardAlwaysLegal(t *testing.T) {
	b := NewStandardBot(rand.New(rand.NewSource(3)))
	rng := rand.New(rand.NewSource(4))

	for i := 0; i < 200; i++ {
		deck := domain.ShuffleDeck(domain.NewDeck(), rng)
		hand := deck[:13]
		trick := []domain.PlayedCard{
			{Seat: 0, Card: deck[20]},
		}
		trump := domain.Suits[rng.Intn(len(domain.Suits))]

		got := b.ChooseCard(hand, trick, trump)
		legal := domain.LegalPlays(hand, trick[0].Card.Suit)
		found := false
		for _, c := range legal {
			if c == got {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("chose illegal card %s (lead %s)", got, trick[0].Card.Suit)
		}
	}
}

func TestRandomBotForcedBid(t *testing.T) {
	b := NewRandomBot(rand.New(rand.NewSource(1)))
	weak := []domain.Card{
		card(domain.SuitClubs, 0),
		card(domain.SuitHearts, 1),
	}
	if amount := b.DecideBid(weak, 0, 3); amount != 1 {
		t.Fatalf("forced bid = %d, want 1", amount)
	}
	if amount := b.DecideBid(weak, 5, 3); amount != 0 {
		t.Fatalf("bid = %d, want pass against a standing bid", amount)
	}
}
