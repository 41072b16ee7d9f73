// Command tarneeb-cli plays a single-player game of Tarneeb against three AI
// opponents in the terminal, driving the same engine the Nakama match handler
// uses.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"

	"tarneeb/internal/app"
	"tarneeb/internal/domain"
	"tarneeb/internal/registry"
)

const (
	roomID = "local"
	userID = "human"
)

func main() {
	seedFlag := flag.Int64("seed", 0, "deterministic shuffle seed (0 uses the clock)")
	targetFlag := flag.Int("target", domain.DefaultTargetScore, "score a team must reach to win")
	flag.Parse()

	seed := *seedFlag
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	pterm.Print("\n")
	title, err := pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithStyle("T", pterm.FgRed.ToStyle()),
		putils.LettersFromStringWithStyle("arneeb", pterm.FgDarkGray.ToStyle()),
	).Srender()
	if err == nil {
		pterm.Print(title)
	}

	name, _ := pterm.DefaultInteractiveTextInput.WithDefaultText("Enter your name").WithDefaultValue("Player").Show()
	pterm.Println()

	reg := registry.NewRegistry(rng, *targetFlag)
	session, err := reg.Create(roomID, registry.GameTypeTarneeb, userID, name)
	if err != nil {
		pterm.Error.Printfln("Could not create the game: %v", err)
		return
	}
	table := session.Table

	events, err := table.Start(userID)
	if err != nil {
		pterm.Error.Printfln("Could not start the game: %v", err)
		return
	}
	renderEvents(table, events)

	for {
		events, err := table.RunBots()
		renderEvents(table, events)
		if err != nil {
			pterm.Error.Printfln("AI opponent failed: %v", err)
			return
		}

		snap := table.Describe()
		if snap.Phase == domain.PhaseFinished {
			break
		}

		printState(snap, handOf(table))

		act, quit := promptAction(snap, handOf(table))
		if quit {
			events, err := table.Apply(userID, app.Action{Type: app.ActionEnd})
			if err == nil {
				renderEvents(table, events)
			}
			break
		}

		events, err = table.Apply(userID, act)
		if err != nil {
			pterm.Error.Printfln("Invalid move: %v", err)
			continue
		}
		renderEvents(table, events)
	}

	reg.End(roomID)
	pterm.Println()
	pterm.Println("Thank you for playing.")
}

func handOf(table registry.Table) []domain.Card {
	hand, _ := table.HandOf(userID)
	return hand
}

// promptAction asks the human for their next move based on the phase. The
// second return value is true when they chose to quit.
func promptAction(snap app.Snapshot, hand []domain.Card) (app.Action, bool) {
	switch snap.Phase {
	case domain.PhaseBidding:
		return promptBid(snap)
	case domain.PhaseTrumpSelection:
		return promptTrump()
	case domain.PhasePlaying:
		return promptCard(snap, hand)
	default:
		return app.Action{}, true
	}
}

func promptBid(snap app.Snapshot) (app.Action, bool) {
	options := []string{"Pass", "Bid", "Quit"}
	choice, _ := pterm.DefaultInteractiveSelect.
		WithDefaultText(pterm.Sprintf("Current bid is %d. Your call", snap.CurrentBid)).
		WithOptions(options).Show()

	switch choice {
	case "Bid":
		for {
			raw, _ := pterm.DefaultInteractiveTextInput.
				WithDefaultText(pterm.Sprintf("Enter your bid (%d-%d)", snap.CurrentBid+1, domain.MaxBid)).Show()
			amount, err := strconv.Atoi(raw)
			if err != nil || amount <= snap.CurrentBid || amount > domain.MaxBid {
				pterm.Error.Println("That is not a valid bid.")
				continue
			}
			return app.Action{Type: app.ActionBid, Bid: amount}, false
		}
	case "Quit":
		return app.Action{}, true
	default:
		return app.Action{Type: app.ActionPass}, false
	}
}

func promptTrump() (app.Action, bool) {
	options := make([]string, 0, len(domain.Suits))
	bySuit := make(map[string]domain.Suit, len(domain.Suits))
	for _, s := range domain.Suits {
		label := fmt.Sprintf("%s %s", s.Symbol(), s.Name())
		options = append(options, label)
		bySuit[label] = s
	}

	choice, _ := pterm.DefaultInteractiveSelect.
		WithDefaultText("You won the auction. Choose the tarneeb suit").
		WithOptions(options).Show()
	return app.Action{Type: app.ActionChooseTrump, Suit: bySuit[choice]}, false
}

func promptCard(snap app.Snapshot, hand []domain.Card) (app.Action, bool) {
	legal := domain.LegalPlays(hand, snap.LeadSuit)
	options := make([]string, 0, len(legal))
	byLabel := make(map[string]domain.Card, len(legal))
	for _, c := range legal {
		label := c.String()
		options = append(options, label)
		byLabel[label] = c
	}

	choice, _ := pterm.DefaultInteractiveSelect.
		WithDefaultText("Choose a card to play").
		WithMaxHeight(len(options)).
		WithOptions(options).Show()
	return app.Action{Type: app.ActionPlayCard, Card: byLabel[choice]}, false
}
