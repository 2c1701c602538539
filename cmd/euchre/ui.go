package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog/log"

	"github.com/leviroth/euchre/internal/bid"
	"github.com/leviroth/euchre/internal/deck"
	"github.com/leviroth/euchre/internal/layout"
	"github.com/leviroth/euchre/internal/state"
	"github.com/leviroth/euchre/internal/table"
)

const chatTail = 8

// ui is the terminal front end. It only renders view snapshots and
// translates input lines; every game decision stays in the table loop.
type ui struct {
	table *table.Table
	area  *pterm.AreaPrinter
}

func newUI() *ui {
	area, err := pterm.DefaultArea.Start()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start terminal area")
	}
	return &ui{area: area}
}

func (u *ui) stop() {
	if err := u.area.Stop(); err != nil {
		log.Debug().Err(err).Msg("failed to stop terminal area")
	}
}

func (u *ui) render(v table.View) {
	u.area.Update(renderView(v))
}

// readInput forwards stdin lines to the table. Bidding shortcuts are
// translated here; everything else is chat or a table command.
func (u *ui) readInput(ctx context.Context, quit func()) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		command, rest, _ := strings.Cut(line, " ")
		switch command {
		case "/quit", "/exit":
			quit()
			return
		case "/pickup", "/call":
			u.table.BidCall()
		case "/pass":
			u.table.BidPass()
		case "/trump":
			suit := deck.Suit(strings.ToUpper(strings.TrimSpace(rest)))
			u.table.BidTrump(suit)
		case "/alone":
			answer := strings.ToLower(strings.TrimSpace(rest))
			u.table.BidAlone(answer == "y" || answer == "yes")
		default:
			u.table.Input(line)
		}
	}
	if err := scanner.Err(); err != nil {
		log.Error().Err(err).Msg("stdin closed")
	}
	quit()
}

func renderView(v table.View) string {
	var b strings.Builder

	if !v.Seated {
		b.WriteString(pterm.Bold.Sprint("Choose a seat:") + "\n")
		for seat := layout.Seat(0); seat <= 3; seat++ {
			name := v.Names[seat]
			if name == "" {
				fmt.Fprintf(&b, "  seat %d: open (/seat %d)\n", seat, seat)
			} else {
				fmt.Fprintf(&b, "  seat %d: %s\n", seat, name)
			}
		}
		b.WriteString("\n")
		writeChat(&b, v)
		return b.String()
	}

	for _, pos := range []layout.Position{layout.Top, layout.Left, layout.Right} {
		opp, ok := v.Opponents[pos]
		if !ok {
			continue
		}
		marker := ""
		if opp.Dealer {
			marker += " (dealer)"
		}
		if opp.Turn {
			marker += " *"
		}
		fmt.Fprintf(&b, "%-6s %s: %d cards%s\n", pos, displayName(opp.Name, opp.Seat), opp.Cards, marker)
	}

	if len(v.Trick) > 0 {
		b.WriteString("\n" + pterm.Bold.Sprint("Trick:") + " ")
		for _, pos := range []layout.Position{layout.Left, layout.Top, layout.Right, layout.Bottom} {
			if card, ok := v.Trick[pos]; ok {
				fmt.Fprintf(&b, "%s=%s ", pos, renderCard(card))
			}
		}
		b.WriteString("\n")
	}

	if v.Upcard != nil {
		fmt.Fprintf(&b, "\nUpcard: %s\n", renderCard(*v.Upcard))
	}

	b.WriteString("\n" + pterm.Bold.Sprint("Your hand:") + " ")
	for i, card := range v.Hand {
		fmt.Fprintf(&b, "%d:%s ", i, renderCard(card))
	}
	b.WriteString("\n")

	writeStatus(&b, v)
	writeBidPrompt(&b, v)
	b.WriteString("\n")
	writeChat(&b, v)
	return b.String()
}

func writeStatus(b *strings.Builder, v table.View) {
	if v.Dealing {
		b.WriteString("You are the dealer\n")
	}
	if v.YourTurn {
		b.WriteString(pterm.Bold.Sprint("It's your turn") + "\n")
	}
	if v.Trump != nil {
		fmt.Fprintf(b, "Trump: %s\n", v.Trump.Glyph())
	}
	fmt.Fprintf(b, "Tricks taken: %d-%d    Score: %d-%d\n",
		v.TrickScore[0], v.TrickScore[1], v.Score[0], v.Score[1])
	if v.Phase == state.PhaseGameOver {
		b.WriteString(pterm.Bold.Sprint("Game over") + "\n")
	}
}

func writeBidPrompt(b *strings.Builder, v table.View) {
	if !v.Bid.Active {
		return
	}
	switch v.Bid.Stage {
	case bid.StageCall:
		if v.Bid.TwoRound {
			b.WriteString("Name trump (/call) or /pass\n")
		} else {
			b.WriteString("Pick it up (/pickup) or /pass\n")
		}
	case bid.StageTrump:
		b.WriteString("Trump: /trump C, /trump D, /trump H, or /trump S\n")
	case bid.StageAlone:
		b.WriteString("Go alone? /alone y or /alone n\n")
	}
}

func writeChat(b *strings.Builder, v table.View) {
	messages := v.Chat
	if len(messages) > chatTail {
		messages = messages[len(messages)-chatTail:]
	}
	for _, msg := range messages {
		fmt.Fprintf(b, "%s: %s\n", pterm.Italic.Sprint(msg.Sender), msg.Text)
	}
}

func renderCard(card deck.Card) string {
	if card.Suit.Color() == deck.Red {
		return pterm.FgRed.Sprint(card.Display())
	}
	return card.Display()
}

func displayName(name string, seat layout.Seat) string {
	if name == "" {
		return fmt.Sprintf("seat %d", seat)
	}
	return name
}
