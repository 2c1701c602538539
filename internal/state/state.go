// Package state mirrors the authoritative public game state pushed by the
// server. The client never runs phase-transition logic of its own: each
// push carries a possibly-partial set of fields that is merged into the
// snapshot, and every pushed transition is accepted as pre-validated.
package state

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/leviroth/euchre/internal/deck"
	"github.com/leviroth/euchre/internal/layout"
)

// Phase is a stage of the deal as named on the wire. An absent phase and
// turn mean the table is still seating.
type Phase string

const (
	PhaseSeating  Phase = ""
	PhaseBid1     Phase = "bid1"
	PhaseBid2     Phase = "bid2"
	PhaseDiscard  Phase = "discard"
	PhasePlay     Phase = "play"
	PhaseGameOver Phase = "gameover"
)

// Bidding reports whether the phase is one of the two bidding rounds.
func (p Phase) Bidding() bool {
	return p == PhaseBid1 || p == PhaseBid2
}

// Game is the mirrored authoritative snapshot. Optional fields use
// pointer or sentinel values so that an explicitly pushed null clears
// them while an absent field preserves the previous value.
type Game struct {
	Phase      Phase
	Dealer     layout.Seat
	Turn       layout.Seat
	Trump      *deck.Suit
	Score      [2]int
	TrickScore [2]int
	HandSizes  [4]int
	Sitting    layout.Seat
	Alone      layout.Seat
	Upcard     *deck.Card
	Trick      [4]*deck.Card
	Seats      [4]string
}

// New returns an empty snapshot in the seating stage.
func New() *Game {
	return &Game{
		Dealer:  layout.NoSeat,
		Turn:    layout.NoSeat,
		Sitting: layout.NoSeat,
		Alone:   layout.NoSeat,
	}
}

// Seating reports whether no deal is in progress yet.
func (g *Game) Seating() bool {
	return g.Phase == PhaseSeating && g.Turn == layout.NoSeat
}

var null = []byte("null")

// ApplyDelta merges one pushed public-state delta into the snapshot.
// Fields present in the push always overwrite, even when explicitly null;
// absent fields keep their previous value. Field keys match the wire
// names (trick_score, up_card).
func (g *Game) ApplyDelta(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("decode public state delta: %w", err)
	}

	for key, raw := range fields {
		var err error
		switch key {
		case "phase":
			err = applyString(raw, (*string)(&g.Phase))
		case "dealer":
			err = applySeat(raw, &g.Dealer)
		case "turn":
			err = applySeat(raw, &g.Turn)
		case "sitting":
			err = applySeat(raw, &g.Sitting)
		case "alone":
			err = applySeat(raw, &g.Alone)
		case "trump":
			err = applySuit(raw, &g.Trump)
		case "up_card":
			err = applyCard(raw, &g.Upcard)
		case "score":
			err = applyPair(raw, &g.Score)
		case "trick_score":
			err = applyPair(raw, &g.TrickScore)
		case "hands":
			err = applyCounts(raw, &g.HandSizes)
		case "trick":
			err = applyTrick(raw, &g.Trick)
		case "seats":
			err = applySeatNames(raw, &g.Seats)
		default:
			// Unknown fields are ignored so older clients survive
			// newer servers.
			continue
		}
		if err != nil {
			return fmt.Errorf("public state field %q: %w", key, err)
		}
	}
	return nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), null)
}

func applyString(raw json.RawMessage, dst *string) error {
	if isNull(raw) {
		*dst = ""
		return nil
	}
	return json.Unmarshal(raw, dst)
}

func applySeat(raw json.RawMessage, dst *layout.Seat) error {
	if isNull(raw) {
		*dst = layout.NoSeat
		return nil
	}
	var n int
	if err := json.Unmarshal(raw, &n); err != nil {
		return err
	}
	seat := layout.Seat(n)
	if !seat.Valid() {
		return fmt.Errorf("seat %d out of range", n)
	}
	*dst = seat
	return nil
}

func applySuit(raw json.RawMessage, dst **deck.Suit) error {
	if isNull(raw) {
		*dst = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return err
	}
	suit := deck.Suit(s)
	if !suit.Valid() {
		return fmt.Errorf("unknown suit %q", s)
	}
	*dst = &suit
	return nil
}

func applyCard(raw json.RawMessage, dst **deck.Card) error {
	if isNull(raw) {
		*dst = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return err
	}
	card, err := deck.Parse(s)
	if err != nil {
		return err
	}
	*dst = &card
	return nil
}

func applyPair(raw json.RawMessage, dst *[2]int) error {
	if isNull(raw) {
		*dst = [2]int{}
		return nil
	}
	var pair [2]int
	if err := json.Unmarshal(raw, &pair); err != nil {
		return err
	}
	*dst = pair
	return nil
}

func applyCounts(raw json.RawMessage, dst *[4]int) error {
	if isNull(raw) {
		*dst = [4]int{}
		return nil
	}
	var counts [4]int
	if err := json.Unmarshal(raw, &counts); err != nil {
		return err
	}
	*dst = counts
	return nil
}

// applyTrick decodes the per-seat trick array: four entries, each a wire
// card or null for a seat that has not played.
func applyTrick(raw json.RawMessage, dst *[4]*deck.Card) error {
	var trick [4]*deck.Card
	if isNull(raw) {
		*dst = trick
		return nil
	}
	var entries []*string
	if err := json.Unmarshal(raw, &entries); err != nil {
		return err
	}
	if len(entries) > 4 {
		return fmt.Errorf("trick has %d entries", len(entries))
	}
	for i, entry := range entries {
		if entry == nil {
			continue
		}
		card, err := deck.Parse(*entry)
		if err != nil {
			return err
		}
		trick[i] = &card
	}
	*dst = trick
	return nil
}

func applySeatNames(raw json.RawMessage, dst *[4]string) error {
	var names [4]string
	if isNull(raw) {
		*dst = names
		return nil
	}
	var entries []*string
	if err := json.Unmarshal(raw, &entries); err != nil {
		return err
	}
	if len(entries) > 4 {
		return fmt.Errorf("seat roster has %d entries", len(entries))
	}
	for i, entry := range entries {
		if entry != nil {
			names[i] = *entry
		}
	}
	*dst = names
	return nil
}
