package hand

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leviroth/euchre/internal/deck"
)

func cards(ss ...string) []deck.Card {
	out, err := deck.ParseAll(ss)
	if err != nil {
		panic(err)
	}
	return out
}

func TestConfirmRemovesStagedCard(t *testing.T) {
	r := NewReconciler()
	r.Replace(cards("A.S", "9.C", "Q.H"))

	st, err := r.Stage(1)
	require.NoError(t, err)
	assert.Equal(t, "9.C", st.Card.String())

	assert.True(t, r.Confirm(st))
	assert.Equal(t, cards("A.S", "Q.H"), r.Cards())
}

func TestReplaceDuringFlightSuppressesRemoval(t *testing.T) {
	r := NewReconciler()
	r.Replace(cards("A.S", "9.C", "Q.H"))

	st, err := r.Stage(1)
	require.NoError(t, err)

	// A new deal races the RPC response.
	r.Replace(cards("10.D", "K.S"))

	assert.False(t, r.Confirm(st))
	assert.Equal(t, cards("10.D", "K.S"), r.Cards(), "authoritative replacement wins")
}

func TestRejectionLeavesHandUntouched(t *testing.T) {
	r := NewReconciler()
	r.Replace(cards("A.S", "9.C"))

	_, err := r.Stage(0)
	require.NoError(t, err)

	// The move was rejected, so Confirm is never called.
	assert.Equal(t, cards("A.S", "9.C"), r.Cards())
}

func TestStageOutOfRange(t *testing.T) {
	r := NewReconciler()
	r.Replace(cards("A.S"))

	_, err := r.Stage(1)
	assert.Error(t, err)
	_, err = r.Stage(-1)
	assert.Error(t, err)
}

func TestVersionMonotonic(t *testing.T) {
	r := NewReconciler()
	v0 := r.Version()
	r.Replace(cards("A.S"))
	v1 := r.Version()
	r.Replace(nil)
	v2 := r.Version()
	assert.Less(t, v0, v1)
	assert.Less(t, v1, v2)
	assert.Zero(t, r.Len())
}

func TestCardsReturnsCopy(t *testing.T) {
	r := NewReconciler()
	r.Replace(cards("A.S", "9.C"))
	got := r.Cards()
	got[0] = deck.Card{Rank: deck.King, Suit: deck.Diamonds}
	assert.Equal(t, cards("A.S", "9.C"), r.Cards())
}
