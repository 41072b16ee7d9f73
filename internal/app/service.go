package app

import (
	"math/rand"
	"time"

	"tarneeb/internal/bot"
	"tarneeb/internal/domain"
)

// Service contains the Tarneeb use-cases operating on domain state. Every
// mutating method validates the action against the current phase and turn,
// applies it, and returns the resulting events for the host to render. On a
// validation error the game is left untouched.
//
// A Service drives one game at a time from the host's point of view; the
// host guarantees mutual exclusion per game instance.
type Service struct {
	rng    *rand.Rand
	agents map[string]*bot.Agent
}

// NewService constructs a Service with the provided rng or a time-seeded default.
func NewService(rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{
		rng:    rng,
		agents: make(map[string]*bot.Agent),
	}
}

// Join seats a new player. Valid only while waiting for players.
func (s *Service) Join(g *domain.Game, userID, name string) ([]Event, error) {
	if g.Phase != domain.PhaseWaiting {
		return nil, ErrInvalidPhase
	}
	if g.PlayerByID(userID) != nil {
		return nil, ErrAlreadyJoined
	}
	if len(g.Players) >= domain.NumSeats {
		return nil, ErrGameFull
	}

	p := &domain.Player{
		UserID:      userID,
		DisplayName: name,
		Seat:        len(g.Players),
	}
	g.Players = append(g.Players, p)

	return []Event{{
		Kind:    EventPlayerJoined,
		Payload: PlayerJoinedPayload{UserID: p.UserID, DisplayName: p.DisplayName, Seat: p.Seat},
	}}, nil
}

// StartGame fills the remaining seats with AI players, deals the first round
// and opens the auction at seat 0. The actor must be seated.
func (s *Service) StartGame(g *domain.Game, actorID string) ([]Event, error) {
	if g.Phase != domain.PhaseWaiting {
		return nil, ErrInvalidPhase
	}
	if g.PlayerByID(actorID) == nil {
		return nil, ErrUnknownPlayer
	}
	if len(g.Players) < 1 {
		return nil, ErrTooFewPlayers
	}

	var events []Event
	for seat := len(g.Players); seat < domain.NumSeats; seat++ {
		identity := bot.GetBotIdentity(seat)
		agent, err := bot.NewAgent(identity.UserID, s.rng)
		if err != nil {
			return nil, err
		}
		s.agents[identity.UserID] = agent

		p := &domain.Player{
			UserID:      identity.UserID,
			DisplayName: agent.Name,
			Seat:        seat,
			IsBot:       true,
		}
		g.Players = append(g.Players, p)
		events = append(events, Event{
			Kind:    EventPlayerJoined,
			Payload: PlayerJoinedPayload{UserID: p.UserID, DisplayName: p.DisplayName, Seat: p.Seat, IsBot: true},
		})
	}

	g.Phase = domain.PhaseBidding
	s.resetAuction(g)
	g.TricksWon = [domain.NumSeats]int{}
	g.Trump = ""

	events = append(events, Event{
		Kind:    EventGameStarted,
		Payload: GameStartedPayload{Round: g.Round, FirstBiddingSeat: g.BiddingTurnSeat},
	})
	events = append(events, s.deal(g)...)
	return events, nil
}

// Bid places a bid for the seat whose turn it is in the auction.
func (s *Service) Bid(g *domain.Game, userID string, amount int) ([]Event, error) {
	if g.Phase != domain.PhaseBidding {
		return nil, ErrInvalidPhase
	}
	p := g.PlayerByID(userID)
	if p == nil {
		return nil, ErrUnknownPlayer
	}
	if p.Seat != g.BiddingTurnSeat {
		return nil, ErrNotYourTurn
	}
	if amount <= g.CurrentBid {
		return nil, ErrBidTooLow
	}
	if amount > domain.MaxBid {
		return nil, ErrBidTooHigh
	}

	g.CurrentBid = amount
	g.HighestBidderSeat = p.Seat
	g.PassesCount = 0
	g.BiddingTurnSeat = (p.Seat + 1) % domain.NumSeats

	events := []Event{{
		Kind:    EventBidPlaced,
		Payload: BidPlacedPayload{Seat: p.Seat, Amount: amount, NextSeat: g.BiddingTurnSeat},
	}}
	return append(events, s.evaluateBidding(g)...), nil
}

// Pass records a pass for the seat whose turn it is in the auction.
func (s *Service) Pass(g *domain.Game, userID string) ([]Event, error) {
	if g.Phase != domain.PhaseBidding {
		return nil, ErrInvalidPhase
	}
	p := g.PlayerByID(userID)
	if p == nil {
		return nil, ErrUnknownPlayer
	}
	if p.Seat != g.BiddingTurnSeat {
		return nil, ErrNotYourTurn
	}

	g.PassesCount++
	g.BiddingTurnSeat = (p.Seat + 1) % domain.NumSeats

	events := []Event{{
		Kind:    EventBidPassed,
		Payload: BidPassedPayload{Seat: p.Seat, Passes: g.PassesCount, NextSeat: g.BiddingTurnSeat},
	}}
	return append(events, s.evaluateBidding(g)...), nil
}

// evaluateBidding checks the auction for completion after every bid or pass.
// Three consecutive passes against a standing bid close the auction; four
// passes with no bid at all trigger a redeal of the same round.
func (s *Service) evaluateBidding(g *domain.Game) []Event {
	if g.PassesCount >= domain.NumSeats-1 && g.HighestBidderSeat != domain.NoSeat {
		g.Phase = domain.PhaseTrumpSelection
		return []Event{{
			Kind:    EventTrumpSelectionStarted,
			Payload: TrumpSelectionStartedPayload{BidderSeat: g.HighestBidderSeat, Bid: g.CurrentBid},
		}}
	}

	if g.PassesCount >= domain.NumSeats {
		s.resetAuction(g)
		events := []Event{{
			Kind:    EventBiddingRestarted,
			Payload: BiddingRestartedPayload{Round: g.Round},
		}}
		return append(events, s.deal(g)...)
	}

	return nil
}

// ChooseTrump sets the tarneeb suit and opens trick play at seat 0. Only the
// highest bidder may choose.
func (s *Service) ChooseTrump(g *domain.Game, userID string, suit domain.Suit) ([]Event, error) {
	if g.Phase != domain.PhaseTrumpSelection {
		return nil, ErrInvalidPhase
	}
	p := g.PlayerByID(userID)
	if p == nil {
		return nil, ErrUnknownPlayer
	}
	if p.Seat != g.HighestBidderSeat {
		return nil, ErrNotHighestBidder
	}
	if !suit.Valid() {
		return nil, ErrInvalidSuit
	}

	g.Trump = suit
	g.Phase = domain.PhasePlaying
	g.TurnSeat = 0
	g.LeadSuit = ""
	g.Trick = nil

	return []Event{{
		Kind:    EventTrumpChosen,
		Payload: TrumpChosenPayload{Seat: p.Seat, Suit: suit, FirstTurnSeat: g.TurnSeat},
	}}, nil
}

// PlayCard plays one card for the seat whose turn it is, resolving the trick
// and the round when they complete.
func (s *Service) PlayCard(g *domain.Game, userID string, card domain.Card) ([]Event, error) {
	if g.Phase != domain.PhasePlaying {
		return nil, ErrInvalidPhase
	}
	p := g.PlayerByID(userID)
	if p == nil {
		return nil, ErrUnknownPlayer
	}
	if p.Seat != g.TurnSeat {
		return nil, ErrNotYourTurn
	}
	if !p.HasCard(card) {
		return nil, ErrCardNotInHand
	}
	if g.LeadSuit != "" && card.Suit != g.LeadSuit && p.HasSuit(g.LeadSuit) {
		return nil, ErrMustFollowSuit
	}

	p.RemoveCard(card)
	g.Trick = append(g.Trick, domain.PlayedCard{Seat: p.Seat, Card: card})
	if g.LeadSuit == "" {
		g.LeadSuit = card.Suit
	}

	if len(g.Trick) < domain.NumSeats {
		g.TurnSeat = (p.Seat + 1) % domain.NumSeats
		return []Event{{
			Kind:    EventCardPlayed,
			Payload: CardPlayedPayload{Seat: p.Seat, Card: card, NextSeat: g.TurnSeat},
		}}, nil
	}

	events := []Event{{
		Kind:    EventCardPlayed,
		Payload: CardPlayedPayload{Seat: p.Seat, Card: card, NextSeat: domain.NoSeat},
	}}
	return append(events, s.resolveTrick(g)...), nil
}

// resolveTrick awards a complete trick to its winner, who leads the next one.
func (s *Service) resolveTrick(g *domain.Game) []Event {
	winnerIdx := domain.TrickWinnerIndex(g.Trick, g.Trump)
	winner := g.Trick[winnerIdx]

	g.TricksWon[winner.Seat]++
	g.Trick = nil
	g.LeadSuit = ""
	g.TurnSeat = winner.Seat

	events := []Event{{
		Kind: EventTrickWon,
		Payload: TrickWonPayload{
			Seat:        winner.Seat,
			Card:        winner.Card,
			TrickNumber: g.TricksResolved(),
		},
	}}

	if g.TricksResolved() >= domain.TricksPerRound {
		events = append(events, s.resolveRound(g)...)
	}
	return events
}

// resolveRound scores a finished round. The full bid amount goes to the
// bidding team when it took at least that many tricks, otherwise to the
// opponents. The game ends only at a round boundary.
func (s *Service) resolveRound(g *domain.Game) []Event {
	teamTricks := g.TeamTricks()
	biddingTeam := domain.TeamOfSeat(g.HighestBidderSeat)
	bidMade := teamTricks[biddingTeam] >= g.CurrentBid

	if bidMade {
		g.TeamScores[biddingTeam] += g.CurrentBid
	} else {
		g.TeamScores[1-biddingTeam] += g.CurrentBid
	}

	events := []Event{{
		Kind: EventRoundEnded,
		Payload: RoundEndedPayload{
			Round:       g.Round,
			TeamTricks:  teamTricks,
			BiddingTeam: biddingTeam,
			Bid:         g.CurrentBid,
			BidMade:     bidMade,
			TeamScores:  g.TeamScores,
		},
	}}

	for team, score := range g.TeamScores {
		if score >= g.TargetScore {
			g.Phase = domain.PhaseFinished
			return append(events, Event{
				Kind:    EventGameEnded,
				Payload: GameEndedPayload{WinningTeam: team, TeamScores: g.TeamScores},
			})
		}
	}

	g.Round++
	s.resetAuction(g)
	g.Trump = ""
	g.TricksWon = [domain.NumSeats]int{}
	g.Phase = domain.PhaseBidding

	events = append(events, Event{
		Kind:    EventRoundStarted,
		Payload: RoundStartedPayload{Round: g.Round, TeamScores: g.TeamScores},
	})
	return append(events, s.deal(g)...)
}

// Stop ends the game from any non-terminal phase. Creator only.
func (s *Service) Stop(g *domain.Game, userID string) ([]Event, error) {
	if g.Phase == domain.PhaseFinished {
		return nil, ErrInvalidPhase
	}
	if userID != g.CreatorID {
		return nil, ErrNotCreator
	}
	return s.halt(g, userID), nil
}

// End ends the game from any non-terminal phase. Any seated player may call it.
func (s *Service) End(g *domain.Game, userID string) ([]Event, error) {
	if g.Phase == domain.PhaseFinished {
		return nil, ErrInvalidPhase
	}
	if g.PlayerByID(userID) == nil {
		return nil, ErrUnknownPlayer
	}
	return s.halt(g, userID), nil
}

func (s *Service) halt(g *domain.Game, userID string) []Event {
	g.Phase = domain.PhaseFinished
	return []Event{{
		Kind:    EventGameStopped,
		Payload: GameStoppedPayload{ByUserID: userID, TeamScores: g.TeamScores},
	}}
}

// resetAuction clears all bidding state; the auction restarts at seat 0.
func (s *Service) resetAuction(g *domain.Game) {
	g.CurrentBid = 0
	g.HighestBidderSeat = domain.NoSeat
	g.PassesCount = 0
	g.BiddingTurnSeat = 0
	g.TurnSeat = 0
	g.LeadSuit = ""
	g.Trick = nil
}

// deal shuffles a fresh deck and distributes it round-robin, 13 cards per
// seat, emitting a private hand_dealt event per player.
func (s *Service) deal(g *domain.Game) []Event {
	for _, p := range g.Players {
		p.Hand = nil
	}

	deck := domain.ShuffleDeck(domain.NewDeck(), s.rng)
	for i, card := range deck {
		p := g.Players[i%domain.NumSeats]
		p.Hand = append(p.Hand, card)
	}

	events := make([]Event, 0, len(g.Players))
	for _, p := range g.Players {
		hand := append([]domain.Card(nil), p.Hand...)
		domain.SortHand(hand)
		events = append(events, Event{
			Kind:       EventHandDealt,
			Payload:    HandDealtPayload{UserID: p.UserID, Seat: p.Seat, Hand: hand},
			Recipients: []string{p.UserID},
		})
	}
	return events
}

// PendingBot reports the seat that owes an AI decision in the current phase,
// if any. The host decides when to let it act.
func (s *Service) PendingBot(g *domain.Game) (int, bool) {
	var seat int
	switch g.Phase {
	case domain.PhaseBidding:
		seat = g.BiddingTurnSeat
	case domain.PhaseTrumpSelection:
		seat = g.HighestBidderSeat
	case domain.PhasePlaying:
		seat = g.TurnSeat
	default:
		return domain.NoSeat, false
	}

	p := g.PlayerBySeat(seat)
	if p == nil || !p.IsBot {
		return domain.NoSeat, false
	}
	return seat, true
}

// StepBot applies exactly one pending AI decision. It reports whether a bot
// acted; the host schedules any pause between steps.
func (s *Service) StepBot(g *domain.Game) ([]Event, bool, error) {
	seat, ok := s.PendingBot(g)
	if !ok {
		return nil, false, nil
	}
	p := g.PlayerBySeat(seat)

	agent, err := s.agentFor(p.UserID)
	if err != nil {
		return nil, false, err
	}

	var events []Event
	switch g.Phase {
	case domain.PhaseBidding:
		if amount := agent.DecideBid(p.Hand, g.CurrentBid, g.PassesCount); amount > 0 {
			events, err = s.Bid(g, p.UserID, amount)
		} else {
			events, err = s.Pass(g, p.UserID)
		}
	case domain.PhaseTrumpSelection:
		events, err = s.ChooseTrump(g, p.UserID, agent.ChooseTrump(p.Hand))
	case domain.PhasePlaying:
		events, err = s.PlayCard(g, p.UserID, agent.ChooseCard(p.Hand, g.Trick, g.Trump))
	}
	if err != nil {
		return nil, false, err
	}
	return events, true, nil
}

// RunBots drains all pending AI decisions without any pause, until a human
// must act or the game finishes. Intended for tests and hosts that do not
// simulate thinking time.
func (s *Service) RunBots(g *domain.Game) ([]Event, error) {
	var events []Event
	for {
		stepEvents, acted, err := s.StepBot(g)
		if err != nil {
			return events, err
		}
		if !acted {
			return events, nil
		}
		events = append(events, stepEvents...)
	}
}

func (s *Service) agentFor(userID string) (*bot.Agent, error) {
	if agent, ok := s.agents[userID]; ok {
		return agent, nil
	}
	agent, err := bot.NewAgent(userID, s.rng)
	if err != nil {
		return nil, err
	}
	s.agents[userID] = agent
	return agent, nil
}
