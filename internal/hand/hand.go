// Package hand manages the local player's hand and reconciles optimistic
// card removals against authoritative hand replacements.
//
// RPC responses and private-hand pushes travel on independent channels
// with no ordering guarantee between them. Removing a card by index after
// an asynchronous response would corrupt the hand whenever a replacement
// (a new deal, say) slipped in first, so every replacement bumps a
// version counter and an optimistic removal applies only if the version
// recorded at submission time is still current.
package hand

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/leviroth/euchre/internal/deck"
)

// Reconciler owns the ordered local hand. It is not safe for concurrent
// use; the table's event loop is its single writer.
type Reconciler struct {
	cards   []deck.Card
	version uint64
}

func NewReconciler() *Reconciler {
	return &Reconciler{}
}

// Cards returns a copy of the current hand in order.
func (r *Reconciler) Cards() []deck.Card {
	out := make([]deck.Card, len(r.cards))
	copy(out, r.cards)
	return out
}

func (r *Reconciler) Len() int {
	return len(r.cards)
}

// Version identifies the current hand contents. It increases on every
// replacement and never repeats.
func (r *Reconciler) Version() uint64 {
	return r.version
}

// Replace installs a wholesale authoritative hand from a private-hand
// push and invalidates any play staged against the previous hand.
func (r *Reconciler) Replace(cards []deck.Card) {
	r.cards = make([]deck.Card, len(cards))
	copy(r.cards, cards)
	r.version++
}

// Staged captures a pending play: the card, its index, and the hand
// version at submission time.
type Staged struct {
	Index   int
	Card    deck.Card
	Version uint64
}

// Stage records the play of the card at index i without mutating the
// hand. The caller submits the move and then settles it with Confirm.
func (r *Reconciler) Stage(i int) (Staged, error) {
	if i < 0 || i >= len(r.cards) {
		return Staged{}, fmt.Errorf("no card at index %d in a hand of %d", i, len(r.cards))
	}
	return Staged{Index: i, Card: r.cards[i], Version: r.version}, nil
}

// Confirm applies the optimistic removal for an accepted move. If the
// hand was replaced while the move was in flight the removal is
// discarded — the replacement already reflects the server's view — and
// Confirm reports false after emitting a race diagnostic.
func (r *Reconciler) Confirm(st Staged) bool {
	if st.Version != r.version {
		log.Warn().
			Str("component", "hand").
			Str("card", st.Card.String()).
			Uint64("staged_version", st.Version).
			Uint64("current_version", r.version).
			Msg("hand replaced while move in flight; dropping optimistic removal")
		return false
	}
	r.cards = append(r.cards[:st.Index], r.cards[st.Index+1:]...)
	return true
}
