package board

// AirDefense holds, per color, the union of circular zones stamped by that
// color's Navy/AntiAir/Missile pieces (with heroic bonus). It is a derived
// projection: recomputed whenever defender positions may have changed.
type AirDefense struct {
	zones [NumColors]Bitboard
}

// Zone returns the covered-square bitboard for color.
func (a AirDefense) Zone(c Color) Bitboard {
	return a.zones[c]
}

// IsCovered reports whether sq is defended by color.
func (a AirDefense) IsCovered(c Color, sq Square) bool {
	return a.zones[c].IsSet(sq)
}

// CountDefended returns the number of squares color currently defends.
func (a AirDefense) CountDefended(c Color) int {
	return a.zones[c].PopCount()
}

// Rebuild recomputes both colors' zones from scratch by iterating every
// defender square on the board (including defenders inside stacks, since a
// carried Navy/AntiAir/Missile still projects its zone) and OR-ing their
// stamped circle masks. Called after any mutation that may change defender
// presence: put, remove, move, undo, deploy step or commit.
func (a *AirDefense) Rebuild(occupants func(yield func(sq Square, p Piece) bool)) {
	a.zones[Red] = EmptyBitboard
	a.zones[Blue] = EmptyBitboard

	occupants(func(sq Square, p Piece) bool {
		for _, sub := range Flatten(p) {
			radius := EffectiveAirDefenseRadius(sub.Role, sub.Heroic)
			if radius == 0 {
				continue
			}
			a.zones[sub.Color] = a.zones[sub.Color].Or(CircleZone(sq.File(), sq.Rank(), radius))
		}
		return true
	})
}
