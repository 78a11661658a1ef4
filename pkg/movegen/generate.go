// Package movegen enumerates pseudo-legal moves for a CoTuLenh position and
// filters them down to legal ones (spec.md §4.6-4.7). It depends only on
// pkg/board: every rule it consults (RoleConfig, Terrain, Stacker, the
// attacker query) already lives there.
package movegen

import (
	"github.com/cotulenh-dev/cotulenh-engine/pkg/board"
)

// PseudoLegalMoves returns every pseudo-legal move available to color in the
// current state, honoring an active deploy session: while Deploy is active,
// only further DeployStep moves from the deploying stack are offered (spec.md
// §4.10's Active-state table), never whole-board moves for other squares.
func PseudoLegalMoves(s *board.GameState, color board.Color) []board.Move {
	if s.Deploy != nil {
		if s.Deploy.Turn != color {
			return nil
		}
		return deployStepMoves(s)
	}

	var moves []board.Move
	for sq := board.Square(0); ; sq++ {
		if sq.IsValid() {
			p := s.At(sq)
			if !p.IsZero() && p.Color == color {
				moves = append(moves, wholePieceMoves(s, sq, p)...)
				if p.IsStack() {
					moves = append(moves, deployStartMoves(s, sq, p)...)
				}
			}
		}
		if sq == board.NumSquares-1 {
			break
		}
	}
	return moves
}

// LegalMoves filters PseudoLegalMoves by spec.md §4.7: a move is legal iff,
// after executing it, the mover's commander exists, is not attacked, and is
// not exposed to the enemy commander along an open orthogonal ray. Every
// candidate is executed and undone on the live state; no copy is made.
func LegalMoves(s *board.GameState, color board.Color) []board.Move {
	candidates := PseudoLegalMoves(s, color)
	legal := make([]board.Move, 0, len(candidates))
	for _, m := range candidates {
		mv := m
		if err := s.Execute(&mv); err != nil {
			continue
		}
		safe := s.Commander[color].IsValid() && s.IsCommanderSafe(color)
		if uerr := s.Undo(&mv); uerr != nil {
			// Undo should never fail for a move Execute just accepted; an
			// internal-invariant situation the caller cannot recover from
			// locally, so the candidate is dropped rather than trusted.
			continue
		}
		if safe {
			legal = append(legal, m)
		}
	}
	return legal
}

// wholePieceMoves generates moves for the piece at sq moving (or capturing,
// or combining) as a single unit, using the carrier role's own movement
// profile. A stack moves using its carrier's rules; the carried pieces go
// along for the ride unless deployed separately (see deployStartMoves). The
// full piece (including Carrying) is passed through so a Combination
// candidate's Stacker.Combine call sees every carried piece, not just the
// carrier.
func wholePieceMoves(s *board.GameState, from board.Square, mover board.Piece) []board.Move {
	return slideCandidates(s, from, mover, false)
}

// deployStartMoves generates the first-step DeployStep candidates for every
// flattened piece inside a stack at sq: each sub-piece is offered the
// destinations its own role/heroic profile reaches from sq, against the
// current (pre-deploy) board.
func deployStartMoves(s *board.GameState, sq board.Square, stack board.Piece) []board.Move {
	var moves []board.Move
	for _, sub := range board.Flatten(stack) {
		moves = append(moves, slideCandidates(s, sq, sub, true)...)
	}
	return moves
}

// deployStepMoves generates further DeployStep candidates for an already
// active session: only pieces still Deployable (not yet moved, not marked to
// stay) may move again, and destinations are computed against the session's
// virtual overlay (GameState.At already consults it).
func deployStepMoves(s *board.GameState) []board.Move {
	var moves []board.Move
	sq := s.Deploy.StackSquare
	for _, sub := range s.Deploy.Deployable() {
		moves = append(moves, slideCandidates(s, sq, sub, true)...)
	}
	return moves
}
