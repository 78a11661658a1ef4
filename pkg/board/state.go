package board

import "github.com/cotulenh-dev/cotulenh-engine/pkg/errs"

// NoSquare is the sentinel used for "no such square", e.g. a captured
// commander.
const NoSquare Square = 0xFF

// GameState is the full engine-visible state: the board array, commander
// locations, turn, clocks, an optional active deploy session, the derived
// air-defense projection, and the position-repetition map. It is mutated
// only through Put/Remove (direct placement, used by FEN load and the
// public facade's put/remove) and the move Execute/Undo commands in
// execute.go.
type GameState struct {
	Squares   [NumSquares]Piece
	Commander [NumColors]Square

	Turn           Color
	HalfMoveClock  int
	FullMoveNumber int

	Deploy *DeploySession

	AirDefense AirDefense
	Repetition map[string]int

	Terrain   Terrain
	Blueprint Blueprint
	Stacker   Stacker
}

// NewEmptyState returns a state with an empty board, Red to move, default
// terrain and blueprint, move 1.
func NewEmptyState() *GameState {
	s := &GameState{
		Turn:           Red,
		FullMoveNumber: 1,
		Repetition:     map[string]int{},
		Terrain:        DefaultTerrain,
		Blueprint:      DefaultBlueprint,
	}
	s.Stacker = Stacker{Blueprint: s.Blueprint}
	s.Commander[Red] = NoSquare
	s.Commander[Blue] = NoSquare
	return s
}

// At returns the piece (possibly a stack) occupying sq, or the zero Piece
// if empty. During an active deploy session the virtual overlay takes
// precedence over the base board.
func (s *GameState) At(sq Square) Piece {
	if s.Deploy != nil {
		if p, ok := s.Deploy.overlayAt(sq); ok {
			return p
		}
	}
	return s.Squares[sq]
}

// baseAt returns the piece on the real board, bypassing any deploy
// overlay. Used by execute/undo, which always mutate the real board.
func (s *GameState) baseAt(sq Square) Piece {
	return s.Squares[sq]
}

// Put places piece at sq directly (not a move command). Used by FEN
// loading and the facade's Put operation. Rejects terrain-incompatible
// placement and a second Commander of the same color.
func (s *GameState) Put(sq Square, p Piece) error {
	if !sq.IsValid() {
		return &errs.IllegalPlacement{Reason: "square off board"}
	}
	if !s.Terrain.CanOccupy(p.Role, sq) {
		return &errs.IllegalPlacement{Reason: p.Role.String() + " cannot occupy this terrain"}
	}
	for _, sub := range Flatten(p) {
		if sub.Role == Commander && s.Commander[sub.Color].IsValid() && s.Commander[sub.Color] != sq {
			return &errs.IllegalPlacement{Reason: "a second commander of that color already exists"}
		}
	}
	s.Squares[sq] = p
	for _, sub := range Flatten(p) {
		if sub.Role == Commander {
			s.Commander[sub.Color] = sq
		}
	}
	s.refreshAirDefense()
	return nil
}

// Remove clears sq and returns what was there, or the zero Piece if empty.
func (s *GameState) Remove(sq Square) Piece {
	p := s.Squares[sq]
	if p.IsZero() {
		return Piece{}
	}
	s.Squares[sq] = Piece{}
	for _, sub := range Flatten(p) {
		if sub.Role == Commander && s.Commander[sub.Color] == sq {
			s.Commander[sub.Color] = NoSquare
		}
	}
	s.refreshAirDefense()
	return p
}

func (s *GameState) refreshAirDefense() {
	s.AirDefense.Rebuild(func(yield func(Square, Piece) bool) {
		for sq := Square(0); ; sq++ {
			if sq.IsValid() {
				if p := s.At(Square(sq)); !p.IsZero() {
					if !yield(sq, p) {
						return
					}
				}
			}
			if sq == NumSquares-1 {
				return
			}
		}
	})
}

// Validate checks the invariants of spec.md §4.4: at most one Commander
// per color, every piece on terrain it may occupy, and commander-square
// bookkeeping consistent with board contents.
func (s *GameState) Validate() error {
	var found [NumColors]int
	var foundSq [NumColors]Square

	for sq := Square(0); ; sq++ {
		if sq.IsValid() {
			p := s.baseAt(sq)
			if !p.IsZero() {
				if !s.Terrain.CanOccupy(p.Role, sq) {
					return &errs.InvariantViolation{Detail: p.Role.String() + " rests on incompatible terrain at " + sq.String()}
				}
				for _, sub := range Flatten(p) {
					if sub.Role == Commander {
						found[sub.Color]++
						foundSq[sub.Color] = sq
					}
				}
			}
		}
		if sq == NumSquares-1 {
			break
		}
	}

	for c := Color(0); c < NumColors; c++ {
		if found[c] > 1 {
			return &errs.InvariantViolation{Detail: "more than one commander for " + c.String()}
		}
		if found[c] == 1 && s.Commander[c] != foundSq[c] {
			return &errs.InvariantViolation{Detail: "commander square field out of sync for " + c.String()}
		}
		if found[c] == 0 && s.Commander[c].IsValid() {
			return &errs.InvariantViolation{Detail: "commander square field points to a missing commander for " + c.String()}
		}
	}
	return nil
}

// EffectivePieceAt is a convenience combining At with Flatten, returning
// every single piece present at sq (carrier first), honoring the deploy
// overlay.
func (s *GameState) EffectivePieceAt(sq Square) []Piece {
	return Flatten(s.At(sq))
}
