package main

import (
	"github.com/pterm/pterm"

	"tarneeb/internal/app"
	"tarneeb/internal/domain"
	"tarneeb/internal/registry"
)

// printState renders the table: opponents on top, trick and scores in the
// middle, the human's seat at the bottom.
func printState(snap app.Snapshot, hand []domain.Card) {
	var opponents []pterm.Panel
	var mine pterm.Panel
	for _, p := range snap.Players {
		if p.UserID == userID {
			mine = pterm.Panel{Data: printPlayerInfo(snap, p, hand)}
			continue
		}
		opponents = append(opponents, pterm.Panel{Data: printPlayerInfo(snap, p, nil)})
	}

	board := pterm.Panel{Data: printBoardInfo(snap)}
	pterm.DefaultPanel.WithPanels([][]pterm.Panel{
		opponents,
		{board},
		{mine},
	}).Render()
}

func printPlayerInfo(snap app.Snapshot, p app.PlayerView, hand []domain.Card) string {
	hpadding := 4
	if hand != nil {
		hpadding = 10
	}
	pbox := pterm.DefaultBox.WithLeftPadding(hpadding).WithRightPadding(hpadding).WithTopPadding(1).WithBottomPadding(1)

	title := pterm.Sprintf("%s (seat %d, team %d)", p.DisplayName, p.Seat, domain.TeamOfSeat(p.Seat))
	status := ""
	if turnSeat(snap) == p.Seat {
		status = pterm.LightGreen("To act")
	}
	if snap.HighestBidderSeat == p.Seat && snap.CurrentBid > 0 {
		status += pterm.LightYellow(pterm.Sprintf(" Bid %d", snap.CurrentBid))
	}

	body := pterm.Sprintf("%s\nCards: %d  Tricks: %d\n", status, p.CardsRemaining, p.TricksWon)
	if hand != nil {
		cards := ""
		for _, c := range hand {
			cards += c.String() + " "
		}
		body += pterm.BgGreen.Sprint(cards) + "\n"
	}
	return pbox.WithTitle(title).WithTitleTopLeft().Sprintf("%s", body)
}

func printBoardInfo(snap app.Snapshot) string {
	trick := ""
	for _, pc := range snap.Trick {
		trick += pterm.Sprintf("seat %d: %s  ", pc.Seat, pc.Card)
	}
	if trick == "" {
		trick = "no cards on the table"
	}

	trump := "not chosen"
	if snap.Trump != "" {
		trump = pterm.Sprintf("%s %s", snap.Trump.Symbol(), snap.Trump.Name())
	}

	pbox := pterm.DefaultBox.WithLeftPadding(4).WithRightPadding(4).WithTopPadding(1).WithBottomPadding(1)
	body := pterm.Sprintf("Round %d  Phase: %s  Tarneeb: %s\n%s\nTeam 0+2: %d points  Team 1+3: %d points (to %d)",
		snap.Round, snap.Phase, trump, trick,
		snap.TeamScores[0], snap.TeamScores[1], snap.TargetScore)
	return pbox.WithTitle(pterm.LightYellow("|TABLE|")).WithTitleTopCenter().Sprintf("%s", body)
}

func turnSeat(snap app.Snapshot) int {
	switch snap.Phase {
	case domain.PhaseBidding:
		return snap.BiddingTurnSeat
	case domain.PhaseTrumpSelection:
		return snap.HighestBidderSeat
	case domain.PhasePlaying:
		return snap.TurnSeat
	default:
		return domain.NoSeat
	}
}

// renderEvents narrates engine events as log lines.
func renderEvents(table registry.Table, events []app.Event) {
	snap := table.Describe()
	names := make(map[int]string, len(snap.Players))
	for _, p := range snap.Players {
		names[p.Seat] = p.DisplayName
	}

	for _, ev := range events {
		switch p := ev.Payload.(type) {
		case app.PlayerJoinedPayload:
			who := p.DisplayName
			if p.IsBot {
				who += " (AI)"
			}
			pterm.Info.Printfln("%s sat down at seat %d", who, p.Seat)
		case app.GameStartedPayload:
			pterm.Info.Printfln("Round %d begins. Bidding opens at seat %d.", p.Round, p.FirstBiddingSeat)
		case app.HandDealtPayload:
			if p.UserID == userID {
				cards := ""
				for _, c := range p.Hand {
					cards += c.String() + " "
				}
				pterm.Info.Printfln("Your hand: %s", cards)
			}
		case app.BidPlacedPayload:
			pterm.Info.Printfln("%s bids %d", names[p.Seat], p.Amount)
		case app.BidPassedPayload:
			pterm.Info.Printfln("%s passes", names[p.Seat])
		case app.BiddingRestartedPayload:
			pterm.Warning.Printfln("Everyone passed. Redealing round %d.", p.Round)
		case app.TrumpSelectionStartedPayload:
			pterm.Info.Printfln("%s wins the auction at %d and picks the tarneeb suit", names[p.BidderSeat], p.Bid)
		case app.TrumpChosenPayload:
			pterm.Info.Printfln("%s chose %s %s as tarneeb", names[p.Seat], p.Suit.Symbol(), p.Suit.Name())
		case app.CardPlayedPayload:
			pterm.Info.Printfln("%s plays %s", names[p.Seat], p.Card)
		case app.TrickWonPayload:
			pterm.Success.Printfln("%s takes trick %d with %s", names[p.Seat], p.TrickNumber, p.Card)
		case app.RoundEndedPayload:
			outcome := "made"
			if !p.BidMade {
				outcome = "failed"
			}
			pterm.Info.Printfln("Round %d over: team %d %s its bid of %d (tricks %d-%d). Scores %d-%d.",
				p.Round, p.BiddingTeam, outcome, p.Bid, p.TeamTricks[0], p.TeamTricks[1], p.TeamScores[0], p.TeamScores[1])
		case app.RoundStartedPayload:
			pterm.Info.Printfln("Round %d begins.", p.Round)
		case app.GameEndedPayload:
			pterm.Success.Printfln("Team %d wins the game %d-%d!", p.WinningTeam, p.TeamScores[0], p.TeamScores[1])
		case app.GameStoppedPayload:
			pterm.Warning.Printfln("Game ended early. Scores %d-%d.", p.TeamScores[0], p.TeamScores[1])
		}
	}
}
