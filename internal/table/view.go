package table

import (
	"github.com/leviroth/euchre/internal/bid"
	"github.com/leviroth/euchre/internal/deck"
	"github.com/leviroth/euchre/internal/layout"
	"github.com/leviroth/euchre/internal/session"
	"github.com/leviroth/euchre/internal/state"
)

// OpponentView is one of the three face-down hands around the table.
type OpponentView struct {
	Seat   layout.Seat
	Name   string
	Cards  int
	Dealer bool
	Turn   bool
}

// BidView describes the bidding dialog to render, if any.
type BidView struct {
	Active   bool
	TwoRound bool
	Stage    bid.Stage
}

// View is a self-contained, seat-relative snapshot for rendering. It
// shares no memory with the table's internal state.
type View struct {
	// Seated is false while the local player has no seat; the caller
	// then renders seat-selection controls from Names.
	Seated bool
	Seat   layout.Seat
	Names  [4]string

	Phase    state.Phase
	YourTurn bool
	Dealing  bool
	Trump    *deck.Suit
	Upcard   *deck.Card
	Alone    layout.Seat

	Hand      []deck.Card
	Opponents map[layout.Position]OpponentView
	Trick     map[layout.Position]deck.Card

	// Score and TrickScore list the local player's team first once
	// seated, matching the scoreboard's "us-them" presentation.
	Score      [2]int
	TrickScore [2]int

	Bid  BidView
	Chat []session.ChatMessage
}

func (t *Table) buildView() View {
	g := t.game
	v := View{
		Seated: t.local.Valid(),
		Seat:   t.local,
		Names:  g.Seats,
		Phase:  g.Phase,
		Trump:  copyPtr(g.Trump),
		Alone:  g.Alone,
		Hand:   t.hand.Cards(),
		Chat:   append([]session.ChatMessage(nil), t.chat...),
	}

	if g.Phase.Bidding() {
		v.Upcard = copyPtr(g.Upcard)
	}

	v.Score = g.Score
	v.TrickScore = g.TrickScore
	if v.Seated {
		v.YourTurn = g.Turn == t.local
		v.Dealing = g.Dealer == t.local
		if t.local.Team() == 1 {
			v.Score = [2]int{g.Score[1], g.Score[0]}
			v.TrickScore = [2]int{g.TrickScore[1], g.TrickScore[0]}
		}

		v.Opponents = make(map[layout.Position]OpponentView, 3)
		v.Trick = make(map[layout.Position]deck.Card, 4)
		for seat := layout.Seat(0); seat <= 3; seat++ {
			pos, ok := layout.Resolve(seat, t.local)
			if !ok {
				continue
			}
			if seat != t.local {
				v.Opponents[pos] = OpponentView{
					Seat:   seat,
					Name:   g.Seats[seat],
					Cards:  g.HandSizes[seat],
					Dealer: g.Dealer == seat,
					Turn:   g.Turn == seat,
				}
			}
			if card, played := t.trickCard(seat); played {
				v.Trick[pos] = card
			}
		}
	}

	if t.wizard != nil {
		v.Bid = BidView{
			Active:   true,
			TwoRound: t.wizard.TwoRound(),
			Stage:    t.wizard.Stage(),
		}
	}
	return v
}

// trickCard prefers the per-event assembler entry and falls back to the
// trick carried in the public-state snapshot.
func (t *Table) trickCard(seat layout.Seat) (deck.Card, bool) {
	if card, ok := t.trick.Card(seat); ok {
		return card, true
	}
	if card := t.game.Trick[seat]; card != nil {
		return *card, true
	}
	return deck.Card{}, false
}

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
