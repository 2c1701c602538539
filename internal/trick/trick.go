// Package trick assembles the trick currently in progress from pushed
// card_played events.
package trick

import (
	"fmt"

	"github.com/leviroth/euchre/internal/deck"
	"github.com/leviroth/euchre/internal/layout"
)

// Assembler keeps the sparse seat-to-card mapping for the current trick.
// The mapping is cleared, never appended across, trick boundaries.
type Assembler struct {
	cards map[layout.Seat]deck.Card
}

func NewAssembler() *Assembler {
	return &Assembler{cards: make(map[layout.Seat]deck.Card)}
}

// CardPlayed records that seat played card, overwriting any earlier entry
// for the seat so that a replayed event has no additional effect.
func (a *Assembler) CardPlayed(seat layout.Seat, card deck.Card) error {
	if !seat.Valid() {
		return fmt.Errorf("card played by invalid seat %d", seat)
	}
	a.cards[seat] = card
	return nil
}

// NewTrick clears the mapping at a trick boundary.
func (a *Assembler) NewTrick() {
	a.cards = make(map[layout.Seat]deck.Card)
}

// NewHand clears all trick state at the start of a new deal.
func (a *Assembler) NewHand() {
	a.NewTrick()
}

// Card returns the card a seat has played in this trick, if any.
func (a *Assembler) Card(seat layout.Seat) (deck.Card, bool) {
	c, ok := a.cards[seat]
	return c, ok
}

// Cards returns a copy of the seat-to-card mapping.
func (a *Assembler) Cards() map[layout.Seat]deck.Card {
	out := make(map[layout.Seat]deck.Card, len(a.cards))
	for seat, c := range a.cards {
		out[seat] = c
	}
	return out
}

// Size is the number of seats that have played into the current trick.
func (a *Assembler) Size() int {
	return len(a.cards)
}
