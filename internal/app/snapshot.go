package app

import "tarneeb/internal/domain"

// PlayerView is the public view of a seated player. Hands are never included;
// they travel only in targeted hand_dealt events.
type PlayerView struct {
	UserID         string `json:"user_id"`
	DisplayName    string `json:"display_name"`
	Seat           int    `json:"seat"`
	IsBot          bool   `json:"is_bot"`
	CardsRemaining int    `json:"cards_remaining"`
	TricksWon      int    `json:"tricks_won"`
}

// Snapshot is the full public state of a game for presentation layers.
type Snapshot struct {
	Phase             domain.Phase        `json:"phase"`
	Round             int                 `json:"round"`
	CurrentBid        int                 `json:"current_bid"`
	HighestBidderSeat int                 `json:"highest_bidder_seat"`
	PassesCount       int                 `json:"passes_count"`
	BiddingTurnSeat   int                 `json:"bidding_turn_seat"`
	TurnSeat          int                 `json:"turn_seat"`
	Trump             domain.Suit         `json:"trump"`
	LeadSuit          domain.Suit         `json:"lead_suit"`
	Trick             []domain.PlayedCard `json:"trick"`
	TeamTricks        [2]int              `json:"team_tricks"`
	TeamScores        [2]int              `json:"team_scores"`
	TargetScore       int                 `json:"target_score"`
	Players           []PlayerView        `json:"players"`
}

// BuildSnapshot captures the public game state.
func BuildSnapshot(g *domain.Game) Snapshot {
	snap := Snapshot{
		Phase:             g.Phase,
		Round:             g.Round,
		CurrentBid:        g.CurrentBid,
		HighestBidderSeat: g.HighestBidderSeat,
		PassesCount:       g.PassesCount,
		BiddingTurnSeat:   g.BiddingTurnSeat,
		TurnSeat:          g.TurnSeat,
		Trump:             g.Trump,
		LeadSuit:          g.LeadSuit,
		Trick:             append([]domain.PlayedCard(nil), g.Trick...),
		TeamTricks:        g.TeamTricks(),
		TeamScores:        g.TeamScores,
		TargetScore:       g.TargetScore,
	}
	for _, p := range g.Players {
		snap.Players = append(snap.Players, PlayerView{
			UserID:         p.UserID,
			DisplayName:    p.DisplayName,
			Seat:           p.Seat,
			IsBot:          p.IsBot,
			CardsRemaining: len(p.Hand),
			TricksWon:      g.TricksWon[p.Seat],
		})
	}
	return snap
}
