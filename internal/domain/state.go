package domain

// Phase represents the lifecycle stage of a Tarneeb game.
type Phase string

const (
	// PhaseWaiting is the pre-game state where players can join.
	PhaseWaiting Phase = "waiting"
	// PhaseBidding is the auction for the right to choose the trump suit.
	PhaseBidding Phase = "bidding"
	// PhaseTrumpSelection waits for the highest bidder to name the tarneeb suit.
	PhaseTrumpSelection Phase = "trump_selection"
	// PhasePlaying is the trick-play state.
	PhasePlaying Phase = "playing"
	// PhaseFinished is terminal; no transitions lead out of it.
	PhaseFinished Phase = "finished"
)

const (
	// NumSeats is the fixed seat count of a partnership Tarneeb table.
	NumSeats = 4
	// TricksPerRound is the number of tricks in one full deal.
	TricksPerRound = 13
	// MaxBid caps a bid at the number of tricks in a round.
	MaxBid = TricksPerRound
	// DefaultTargetScore ends the game once a team reaches it, checked at round boundaries.
	DefaultTargetScore = 31
	// NoSeat marks an unset seat reference.
	NoSeat = -1
)

// Player holds the state for one seated participant. The entity persists for
// the whole game; only the hand is cleared and redealt between rounds.
type Player struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Seat        int    `json:"seat"` // 0-based, assigned in arrival order
	IsBot       bool   `json:"is_bot"`
	Hand        []Card `json:"-"`
}

// HasSuit reports whether the player holds at least one card of the suit.
func (p *Player) HasSuit(s Suit) bool {
	for _, c := range p.Hand {
		if c.Suit == s {
			return true
		}
	}
	return false
}

// HasCard reports whether the player holds the exact card.
func (p *Player) HasCard(card Card) bool {
	for _, c := range p.Hand {
		if c == card {
			return true
		}
	}
	return false
}

// RemoveCard takes the card out of the player's hand. Returns false if absent.
func (p *Player) RemoveCard(card Card) bool {
	for i, c := range p.Hand {
		if c == card {
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			return true
		}
	}
	return false
}

// PlayedCard is one entry of the current trick.
type PlayedCard struct {
	Seat int  `json:"seat"`
	Card Card `json:"card"`
}

// Game is the aggregate root for a single Tarneeb table.
type Game struct {
	CreatorID string
	Phase     Phase
	Round     int

	Players []*Player // seat index == slice index once seated

	// Bidding state.
	CurrentBid        int // 0 = no bid yet
	HighestBidderSeat int // NoSeat until someone bids
	PassesCount       int
	BiddingTurnSeat   int

	// Play state.
	Trump     Suit // "" until chosen
	TurnSeat  int
	LeadSuit  Suit // "" between tricks
	Trick     []PlayedCard
	TricksWon [NumSeats]int

	// Cumulative team scores: index 0 = seats 0/2, index 1 = seats 1/3.
	TeamScores  [2]int
	TargetScore int
}

// NewGame creates a game in the waiting phase with no seated players.
func NewGame(creatorID string, targetScore int) *Game {
	if targetScore <= 0 {
		targetScore = DefaultTargetScore
	}
	return &Game{
		CreatorID:         creatorID,
		Phase:             PhaseWaiting,
		Round:             1,
		HighestBidderSeat: NoSeat,
		TargetScore:       targetScore,
	}
}

// TeamOfSeat maps a seat to its team index: seats 0/2 are team 0, seats 1/3 team 1.
func TeamOfSeat(seat int) int {
	return seat % 2
}

// PlayerBySeat returns the player at the seat, or nil if unseated.
func (g *Game) PlayerBySeat(seat int) *Player {
	if seat < 0 || seat >= len(g.Players) {
		return nil
	}
	return g.Players[seat]
}

// PlayerByID returns the seated player with the given user id, or nil.
func (g *Game) PlayerByID(userID string) *Player {
	for _, p := range g.Players {
		if p.UserID == userID {
			return p
		}
	}
	return nil
}

// HandOf returns a display-sorted copy of a seated player's hand.
func (g *Game) HandOf(userID string) ([]Card, bool) {
	p := g.PlayerByID(userID)
	if p == nil {
		return nil, false
	}
	hand := append([]Card(nil), p.Hand...)
	SortHand(hand)
	return hand, true
}

// TricksResolved returns the number of completed tricks this round.
func (g *Game) TricksResolved() int {
	n := 0
	for _, t := range g.TricksWon {
		n += t
	}
	return n
}

// TeamTricks sums tricks won this round by team.
func (g *Game) TeamTricks() [2]int {
	var tt [2]int
	for seat, n := range g.TricksWon {
		tt[TeamOfSeat(seat)] += n
	}
	return tt
}

// Finished reports whether the game reached its terminal phase.
func (g *Game) Finished() bool {
	return g.Phase == PhaseFinished
}

// LabelPayload carries the values advertised for match listing queries.
type LabelPayload struct {
	Open  bool   `json:"open"`
	Game  string `json:"game"`
	Phase string `json:"phase"`
}

// ComputeLabel derives the advertised label from game state.
func ComputeLabel(g *Game) LabelPayload {
	open := g.Phase == PhaseWaiting && len(g.Players) < NumSeats
	return LabelPayload{Open: open, Game: "tarneeb", Phase: string(g.Phase)}
}
