package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveBottomIffLocal(t *testing.T) {
	for local := Seat(0); local <= 3; local++ {
		for target := Seat(0); target <= 3; target++ {
			pos, ok := Resolve(target, local)
			require.True(t, ok)
			if target == local {
				assert.Equal(t, Bottom, pos)
			} else {
				assert.NotEqual(t, Bottom, pos)
			}
		}
	}
}

func TestResolveBijection(t *testing.T) {
	for local := Seat(0); local <= 3; local++ {
		seen := map[Position]Seat{}
		for target := Seat(0); target <= 3; target++ {
			if target == local {
				continue
			}
			pos, ok := Resolve(target, local)
			require.True(t, ok)
			_, dup := seen[pos]
			assert.False(t, dup, "position %s assigned twice for local seat %d", pos, local)
			seen[pos] = target
		}
		assert.Len(t, seen, 3)
		for _, pos := range []Position{Left, Top, Right} {
			assert.Contains(t, seen, pos)
		}
	}
}

func TestResolveRotation(t *testing.T) {
	// From seat 1: seat 2 is on the left, seat 3 across, seat 0 on the right.
	for _, tc := range []struct {
		target Seat
		want   Position
	}{
		{1, Bottom},
		{2, Left},
		{3, Top},
		{0, Right},
	} {
		pos, ok := Resolve(tc.target, 1)
		require.True(t, ok)
		assert.Equal(t, tc.want, pos, "target %d", tc.target)
	}
}

func TestResolveUnassignedLocal(t *testing.T) {
	_, ok := Resolve(2, NoSeat)
	assert.False(t, ok)

	_, ok = Resolve(4, 0)
	assert.False(t, ok)

	_, ok = Resolve(NoSeat, 0)
	assert.False(t, ok)
}

func TestTeams(t *testing.T) {
	assert.Equal(t, Team(0), Seat(0).Team())
	assert.Equal(t, Team(1), Seat(1).Team())
	assert.Equal(t, Team(0), Seat(2).Team())
	assert.Equal(t, Team(1), Seat(3).Team())
}
