package movegen

import "github.com/cotulenh-dev/cotulenh-engine/pkg/board"

// effectiveConfig returns the movement profile for role, heroic, covering
// both the generic RoleConfig table and the three special roles
// (Commander, Headquarter, Militia) that board.Config declines to serve.
// The numbers mirror the per-role switch in attacks.go's canRoleCaptureAt,
// read as "can I reach here" rather than "can an attacker reach me".
func effectiveConfig(role board.PieceRole, heroic bool) board.RoleConfig {
	if cfg, ok := board.Config(role, heroic); ok {
		return cfg
	}
	switch role {
	case board.Commander:
		return board.RoleConfig{MoveRange: 1, CaptureRange: 1, CanMoveDiagonal: heroic}
	case board.Headquarter:
		r := 0
		if heroic {
			r = 1
		}
		return board.RoleConfig{MoveRange: r, CaptureRange: r, CanMoveDiagonal: true}
	case board.Militia:
		r := 1
		if heroic {
			r = 2
		}
		return board.RoleConfig{MoveRange: r, CaptureRange: r, CanMoveDiagonal: true}
	default:
		return board.RoleConfig{}
	}
}

// captureKinds returns every move kind role produces when landing on an
// enemy square at the target. Artillery is the ranged piece spec.md §4.6
// calls out as staying put ("Navy and certain ranged pieces"); Missile is
// the explicit self-sacrifice case. Navy's "dual attack" (also named in
// §4.6) is read as offering the player a choice: it may either relocate
// onto the captured square or stay in place, so both candidates are
// generated. Every other role only relocates.
func captureKinds(role board.PieceRole) []board.MoveKind {
	switch role {
	case board.Missile:
		return []board.MoveKind{board.SuicideCapture}
	case board.Artillery:
		return []board.MoveKind{board.StayCapture}
	case board.Navy:
		return []board.MoveKind{board.Capture, board.StayCapture}
	default:
		return []board.MoveKind{board.Capture}
	}
}

// slideCandidates walks every direction mover's profile permits from from,
// stopping, capturing, or flying over blockers per its RoleConfig, and
// returns one board.Move per reachable destination. When forDeploy is true
// every candidate is emitted as a DeployStepKind move (the uniform kind a
// deploy sub-move always takes, regardless of what sits at the
// destination); otherwise the move is classified Normal, Capture,
// StayCapture, SuicideCapture or Combination by what occupies the target
// square. Execute itself re-reads the board for Captured/Combined, so
// neither field is populated here.
func slideCandidates(s *board.GameState, from board.Square, mover board.Piece, forDeploy bool) []board.Move {
	cfg := effectiveConfig(mover.Role, mover.Heroic)
	maxRange := cfg.MoveRange
	if cfg.CaptureRange > maxRange {
		maxRange = cfg.CaptureRange
	}
	if maxRange <= 0 {
		return nil
	}

	dirs := board.OrthogonalDirections
	if cfg.CanMoveDiagonal {
		dirs = board.AllDirections
	}

	var moves []board.Move
	for _, dir := range dirs {
		cur := from
		blocked := false
		ignoresAny := cfg.MoveIgnoresBlocking || cfg.CaptureIgnoresBlocking

		for d := 1; d <= maxRange; d++ {
			next, ok := dir.Step(cur)
			if !ok {
				break
			}
			if mover.Role.IsHeavy() && s.Terrain.IsRiverCrossing(cur, next) &&
				!s.Terrain.IsBridge(cur) && !s.Terrain.IsBridge(next) {
				break
			}
			cur = next

			canLand := cfg.MoveIgnoresBlocking || !blocked
			canCapture := cfg.CaptureIgnoresBlocking || !blocked

			occ := s.At(cur)
			stop := false
			switch {
			case occ.IsZero():
				if canLand && d <= cfg.MoveRange && s.Terrain.CanOccupy(mover.Role, cur) &&
					airForceClear(s, mover, dir, d, cur) {
					kind := board.Normal
					if forDeploy {
						kind = board.DeployStepKind
					}
					moves = append(moves, board.Move{Kind: kind, From: from, To: cur, Role: mover.Role, Heroic: mover.Heroic})
				}

			case occ.Color == mover.Color:
				if canLand && d <= cfg.MoveRange && s.Terrain.CanOccupy(mover.Role, cur) {
					if forDeploy {
						moves = append(moves, board.Move{Kind: board.DeployStepKind, From: from, To: cur, Role: mover.Role, Heroic: mover.Heroic})
					} else if _, err := s.Stacker.Combine([]board.Piece{occ, mover}); err == nil {
						moves = append(moves, board.Move{Kind: board.Combination, From: from, To: cur, Role: mover.Role, Heroic: mover.Heroic})
					}
				}
				blocked = true
				stop = !ignoresAny

			default: // enemy
				if canCapture && d <= cfg.CaptureRange && airForceClear(s, mover, dir, d, cur) {
					if forDeploy {
						if d <= cfg.CaptureRange && s.Terrain.CanOccupy(mover.Role, cur) {
							moves = append(moves, board.Move{Kind: board.DeployStepKind, From: from, To: cur, Role: mover.Role, Heroic: mover.Heroic})
						}
					} else {
						for _, kind := range captureKinds(mover.Role) {
							if kind == board.Capture && !s.Terrain.CanOccupy(mover.Role, cur) {
								continue // relocating onto cur requires mover's own terrain compatibility
							}
							moves = append(moves, board.Move{Kind: kind, From: from, To: cur, Role: mover.Role, Heroic: mover.Heroic})
						}
					}
				}
				blocked = true
				stop = !ignoresAny
			}
			if stop {
				break
			}
		}
	}
	return moves
}

// airForceClear gates AirForce reach by the same cumulative air-defense rule
// attacks.go applies to the attacker query (spec.md §4.6): every non-AirForce
// role is unrestricted here.
func airForceClear(s *board.GameState, mover board.Piece, dir board.Direction, d int, target board.Square) bool {
	if mover.Role != board.AirForce {
		return true
	}
	return s.AirForceReachable(target, dir.Opposite(), d, mover.Color)
}
