package trick

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leviroth/euchre/internal/deck"
	"github.com/leviroth/euchre/internal/layout"
)

func mustCard(t *testing.T, s string) deck.Card {
	t.Helper()
	c, err := deck.Parse(s)
	require.NoError(t, err)
	return c
}

func TestNewTrickClears(t *testing.T) {
	a := NewAssembler()
	require.NoError(t, a.CardPlayed(0, mustCard(t, "9.C")))
	require.NoError(t, a.CardPlayed(1, mustCard(t, "A.H")))
	assert.Equal(t, 2, a.Size())

	a.NewTrick()
	assert.Zero(t, a.Size())
	_, ok := a.Card(0)
	assert.False(t, ok)
}

func TestCardPlayedOverwritesSeat(t *testing.T) {
	a := NewAssembler()
	require.NoError(t, a.CardPlayed(2, mustCard(t, "10.S")))
	require.NoError(t, a.CardPlayed(2, mustCard(t, "Q.H")))

	assert.Equal(t, 1, a.Size())
	c, ok := a.Card(2)
	require.True(t, ok)
	assert.Equal(t, "Q.H", c.String())
}

func TestCardPlayedRejectsBadSeat(t *testing.T) {
	a := NewAssembler()
	assert.Error(t, a.CardPlayed(4, mustCard(t, "9.C")))
	assert.Error(t, a.CardPlayed(layout.NoSeat, mustCard(t, "9.C")))
	assert.Zero(t, a.Size())
}

func TestNewHandClears(t *testing.T) {
	a := NewAssembler()
	require.NoError(t, a.CardPlayed(3, mustCard(t, "K.D")))
	a.NewHand()
	assert.Zero(t, a.Size())
}

func TestNeverMoreThanFourEntries(t *testing.T) {
	a := NewAssembler()
	for seat := layout.Seat(0); seat <= 3; seat++ {
		require.NoError(t, a.CardPlayed(seat, mustCard(t, "9.C")))
		require.NoError(t, a.CardPlayed(seat, mustCard(t, "10.C")))
	}
	assert.Equal(t, 4, a.Size())
}

func TestCardsReturnsCopy(t *testing.T) {
	a := NewAssembler()
	require.NoError(t, a.CardPlayed(1, mustCard(t, "A.S")))
	m := a.Cards()
	m[2] = mustCard(t, "9.C")
	assert.Equal(t, 1, a.Size())
}
