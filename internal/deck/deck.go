package deck

import (
	"fmt"
	"strings"
)

// Suit is a card suit in its single-letter wire form.
type Suit string

const (
	Clubs    Suit = "C"
	Diamonds Suit = "D"
	Hearts   Suit = "H"
	Spades   Suit = "S"
)

// Suits lists all four suits in wire order.
var Suits = []Suit{Clubs, Diamonds, Hearts, Spades}

func (s Suit) Valid() bool {
	switch s {
	case Clubs, Diamonds, Hearts, Spades:
		return true
	}
	return false
}

// Glyph returns the Unicode symbol for the suit, or "?" for an invalid suit.
func (s Suit) Glyph() string {
	switch s {
	case Clubs:
		return "♣"
	case Diamonds:
		return "♦"
	case Hearts:
		return "♥"
	case Spades:
		return "♠"
	}
	return "?"
}

// Color is the display color of a suit.
type Color string

const (
	Red   Color = "red"
	Black Color = "black"
)

func (s Suit) Color() Color {
	if s == Diamonds || s == Hearts {
		return Red
	}
	return Black
}

// Rank is a card rank in its wire form. Euchre uses the six ranks nine
// through ace.
type Rank string

const (
	Nine  Rank = "9"
	Ten   Rank = "10"
	Jack  Rank = "J"
	Queen Rank = "Q"
	King  Rank = "K"
	Ace   Rank = "A"
)

// Ranks lists all ranks in ascending natural order.
var Ranks = []Rank{Nine, Ten, Jack, Queen, King, Ace}

func (r Rank) Valid() bool {
	switch r {
	case Nine, Ten, Jack, Queen, King, Ace:
		return true
	}
	return false
}

// Card is an immutable rank/suit pair. Its wire encoding is
// "<rank>.<suit>", e.g. "10.S".
type Card struct {
	Rank Rank
	Suit Suit
}

func (c Card) String() string {
	return string(c.Rank) + "." + string(c.Suit)
}

// Display renders the card with its suit glyph, e.g. "10♠".
func (c Card) Display() string {
	return string(c.Rank) + c.Suit.Glyph()
}

// ErrBadCard reports a string that does not parse as a card.
var ErrBadCard = fmt.Errorf("malformed card")

// Parse decodes the "<rank>.<suit>" wire encoding.
func Parse(s string) (Card, error) {
	rank, suit, found := strings.Cut(s, ".")
	if !found {
		return Card{}, fmt.Errorf("%w: %q", ErrBadCard, s)
	}
	c := Card{Rank: Rank(rank), Suit: Suit(suit)}
	if !c.Rank.Valid() || !c.Suit.Valid() {
		return Card{}, fmt.Errorf("%w: %q", ErrBadCard, s)
	}
	return c, nil
}

// ParseAll decodes a slice of wire-encoded cards, as pushed on the
// private hand topic.
func ParseAll(ss []string) ([]Card, error) {
	cards := make([]Card, 0, len(ss))
	for _, s := range ss {
		c, err := Parse(s)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}
