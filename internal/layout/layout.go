// Package layout resolves absolute seat numbers into the seat-relative
// slots used to lay out the table around the local player.
package layout

// Seat is one of the four fixed player slots at the table.
type Seat int

// NoSeat marks a player who has not taken a seat yet.
const NoSeat Seat = -1

func (s Seat) Valid() bool {
	return s >= 0 && s <= 3
}

// Team is one of the two partnerships. Seats 0/2 form team 0, seats 1/3
// form team 1.
type Team int

func (s Seat) Team() Team {
	return Team(s % 2)
}

// Position is a seat-relative visual slot.
type Position string

const (
	Bottom Position = "bottom"
	Left   Position = "left"
	Top    Position = "top"
	Right  Position = "right"
)

// Resolve maps an absolute target seat onto the slot it occupies from the
// local seat's point of view: the local player sits at the bottom and the
// remaining seats proceed clockwise. It reports false when the local seat
// is unassigned or either seat is out of range; with no local seat there
// is no orientation, and the caller renders seat selection instead.
func Resolve(target, local Seat) (Position, bool) {
	if !target.Valid() || !local.Valid() {
		return "", false
	}
	switch (target - local + 4) % 4 {
	case 1:
		return Left, true
	case 2:
		return Top, true
	case 3:
		return Right, true
	}
	return Bottom, true
}
