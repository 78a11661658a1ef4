package board

// maxAttackRange is the largest capture range any heroic piece can reach
// (AirForce/Navy base range 4, heroic +1 = 5).
const maxAttackRange = 5

// Attackers returns every square holding a color-c piece that currently
// attacks target, per spec.md §4.8: scan all 8 directions from target up
// to maxAttackRange, and for each direction's squares (nearest first),
// test whether the first-encountered occupant (if color c) can reach
// target at that exact distance given its role's range/diagonal/blocking
// configuration; roles whose capture ignores blocking (Artillery, Missile,
// Navy) may still attack from behind an intervening piece.
func (s *GameState) Attackers(target Square, c Color) []Square {
	var attackers []Square
	for _, dir := range AllDirections {
		blocked := false
		cur := target
		for d := 1; d <= maxAttackRange; d++ {
			next, ok := dir.Step(cur)
			if !ok {
				break
			}
			cur = next

			occ := s.At(cur)
			if occ.IsZero() {
				continue
			}
			if occ.Color == c && s.canRoleCaptureAt(occ, c, dir, d, target) && (!blocked || ignoresBlocking(occ.Role)) {
				attackers = append(attackers, cur)
			}
			blocked = true
		}
	}
	return attackers
}

// IsAttacked reports whether any color-c piece attacks target.
func (s *GameState) IsAttacked(target Square, c Color) bool {
	for _, dir := range AllDirections {
		blocked := false
		cur := target
		for d := 1; d <= maxAttackRange; d++ {
			next, ok := dir.Step(cur)
			if !ok {
				break
			}
			cur = next

			occ := s.At(cur)
			if occ.IsZero() {
				continue
			}
			if occ.Color == c && s.canRoleCaptureAt(occ, c, dir, d, target) && (!blocked || ignoresBlocking(occ.Role)) {
				return true
			}
			blocked = true
		}
	}
	return false
}

func ignoresBlocking(role PieceRole) bool {
	cfg, ok := roleConfigs[role]
	return ok && cfg.CaptureIgnoresBlocking
}

// canRoleCaptureAt reports whether the occupant standing at distance d in
// direction dir from target could capture a piece sitting on target,
// given its own role/heroic configuration. The occupant is always the
// stack's carrier, since only the carrier's movement rules apply to a
// non-deploying stack.
func (s *GameState) canRoleCaptureAt(occ Piece, attackerColor Color, dir Direction, d int, target Square) bool {
	switch occ.Role {
	case Commander:
		if d != 1 {
			return false
		}
		isDiag := dir == NE || dir == NW || dir == SE || dir == SW
		return !isDiag || occ.Heroic
	case Headquarter:
		if !occ.Heroic {
			return false
		}
		return d == 1
	case Militia:
		r := 1
		if occ.Heroic {
			r = 2
		}
		return d <= r
	case AirForce:
		cfg, _ := Config(AirForce, occ.Heroic)
		if d > cfg.CaptureRange {
			return false
		}
		if !cfg.CanMoveDiagonal && isDiagonalDir(dir) {
			return false
		}
		return s.airForceCumulativeClear(target, dir, d, attackerColor)
	default:
		cfg, ok := Config(occ.Role, occ.Heroic)
		if !ok {
			return false
		}
		if d > cfg.CaptureRange {
			return false
		}
		if !cfg.CanMoveDiagonal && isDiagonalDir(dir) {
			return false
		}
		return true
	}
}

func isDiagonalDir(dir Direction) bool {
	return dir == NE || dir == NW || dir == SE || dir == SW
}

// airForceCumulativeClear implements spec.md §4.6's AirForce traversal
// rule: walking the flight path from target back toward the AirForce's
// square (target first, d squares in all, the AirForce's own square not
// included), if two or more squares covered by the defending color's
// air-defense zone are encountered, the AirForce cannot reach
// or attack that far. The defending zone is the opponent of attackerColor
// (the side being attacked owns the air-defense that can shoot it down).
func (s *GameState) airForceCumulativeClear(target Square, dir Direction, d int, attackerColor Color) bool {
	zone := s.AirDefense.Zone(attackerColor.Opponent())

	covered := 0
	cur := target
	if zone.IsSet(cur) {
		covered++
	}
	for i := 1; i < d; i++ {
		next, ok := dir.Step(cur)
		if !ok {
			return false
		}
		cur = next
		if zone.IsSet(cur) {
			covered++
		}
		if covered >= 2 {
			return false
		}
	}
	return covered < 2
}

// AirForceReachable reports whether an AirForce of attackerColor flying from
// d squares away, in the direction opposite to dir (i.e. dir points from
// target back toward the flier), can reach or attack target without being
// blocked by cumulative enemy air-defense coverage. Exported so pkg/movegen
// can apply the identical cumulative rule to move generation that attacks.go
// applies to the attacker query.
func (s *GameState) AirForceReachable(target Square, dir Direction, d int, attackerColor Color) bool {
	return s.airForceCumulativeClear(target, dir, d, attackerColor)
}

// IsExposed reports whether the two commanders share an empty orthogonal
// ray (spec.md §4.7's exposure rule): scanning the four orthogonal
// directions from color's commander square, the first non-empty square is
// the opposing commander.
func (s *GameState) IsExposed(color Color) bool {
	from := s.Commander[color]
	if !from.IsValid() {
		return false
	}
	for _, dir := range OrthogonalDirections {
		cur := from
		for {
			next, ok := dir.Step(cur)
			if !ok {
				break
			}
			cur = next
			occ := s.At(cur)
			if occ.IsZero() {
				continue
			}
			if occ.Role == Commander && occ.Color != color {
				return true
			}
			break
		}
	}
	return false
}

// IsCommanderSafe reports whether color's commander is neither attacked
// nor exposed nor captured (spec.md §4.7, conditions 1-3).
func (s *GameState) IsCommanderSafe(color Color) bool {
	sq := s.Commander[color]
	if !sq.IsValid() {
		return false
	}
	if s.IsAttacked(sq, color.Opponent()) {
		return false
	}
	return !s.IsExposed(color)
}
