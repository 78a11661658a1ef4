package board

import "github.com/cotulenh-dev/cotulenh-engine/pkg/errs"

// DeployPlacement records one piece that has already left the deploying
// stack and landed on a destination square.
type DeployPlacement struct {
	Role   PieceRole
	To     Square
	Heroic bool
}

// DeploySession is the virtual overlay for an in-progress deploy turn
// (spec.md §4.10). It exists only between the first and last sub-move of a
// deploy; Remaining holds the pieces still virtually sitting on
// StackSquare (recombined whenever it changes), Moved records completed
// placements, and Overlay is the flat square->piece map consulted by
// GameState.At and move generation in preference to the real board.
type DeploySession struct {
	StackSquare   Square
	Turn          Color
	OriginalPiece Piece

	Remaining []Piece
	Moved     []DeployPlacement
	Stayed    map[PieceRole]bool

	Overlay map[Square]Piece
	stacker Stacker
}

// NewDeploySession starts a deploy session for the stack currently sitting
// at stackSquare.
func NewDeploySession(stackSquare Square, turn Color, stack Piece, stacker Stacker) *DeploySession {
	d := &DeploySession{
		StackSquare:   stackSquare,
		Turn:          turn,
		OriginalPiece: stack,
		Remaining:     Flatten(stack),
		Stayed:        map[PieceRole]bool{},
		Overlay:       map[Square]Piece{},
		stacker:       stacker,
	}
	d.recombineStackSquare()
	return d
}

func (d *DeploySession) overlayAt(sq Square) (Piece, bool) {
	p, ok := d.Overlay[sq]
	return p, ok
}

// Step removes role from Remaining and places it at `to`, updating the
// overlay for both `to` and StackSquare. Returns DeployError{WrongStack}
// if role is not currently sitting at the deploying stack.
func (d *DeploySession) Step(role PieceRole, to Square, heroic bool) error {
	idx := -1
	for i, p := range d.Remaining {
		if p.Role == role {
			idx = i
			break
		}
	}
	if idx == -1 {
		return &errs.DeployError{Kind: errs.WrongStack, Detail: "role " + role.String() + " is not part of the deploying stack"}
	}

	d.Remaining = append(append([]Piece{}, d.Remaining[:idx]...), d.Remaining[idx+1:]...)
	d.Moved = append(d.Moved, DeployPlacement{Role: role, To: to, Heroic: heroic})

	if existing, ok := d.Overlay[to]; ok && !existing.IsZero() {
		combined, err := d.stacker.Combine([]Piece{existing, {Role: role, Color: d.Turn, Heroic: heroic}})
		if err != nil {
			return err
		}
		d.Overlay[to] = combined
	} else {
		d.Overlay[to] = Piece{Role: role, Color: d.Turn, Heroic: heroic}
	}

	d.recombineStackSquare()
	return nil
}

// MarkStay records that role has been explicitly chosen to remain behind
// at StackSquare for the rest of this deploy session: it is no longer
// offered as a candidate for further deploy steps, though it still
// contributes to the stack-square recombination like any other member of
// Remaining.
func (d *DeploySession) MarkStay(role PieceRole) error {
	found := false
	for _, p := range d.Remaining {
		if p.Role == role {
			found = true
			break
		}
	}
	if !found {
		return &errs.DeployError{Kind: errs.WrongStack, Detail: "role " + role.String() + " is not part of the deploying stack"}
	}
	d.Stayed[role] = true
	return nil
}

// IsEmpty reports whether the session has recorded no steps and no stays
// yet, i.e. it is equivalent to never having started (spec.md §4.10:
// "Undo of first step -> Idle").
func (d *DeploySession) IsEmpty() bool {
	return len(d.Moved) == 0 && len(d.Stayed) == 0
}

// Deployable returns the Remaining pieces not yet marked to stay: the set
// still eligible for a further DeployStep this session.
func (d *DeploySession) Deployable() []Piece {
	var ret []Piece
	for _, p := range d.Remaining {
		if !d.Stayed[p.Role] {
			ret = append(ret, p)
		}
	}
	return ret
}

// Undo reverses the most recent Step, moving its piece back into Remaining
// and clearing (or restoring) the destination square's overlay entry.
func (d *DeploySession) Undo() (DeployPlacement, bool) {
	if len(d.Moved) == 0 {
		return DeployPlacement{}, false
	}
	last := d.Moved[len(d.Moved)-1]
	d.Moved = d.Moved[:len(d.Moved)-1]

	delete(d.Overlay, last.To)
	d.Remaining = append(d.Remaining, Piece{Role: last.Role, Color: d.Turn, Heroic: last.Heroic})
	d.recombineStackSquare()
	return last, true
}

// recombineStackSquare recomputes the overlay entry for StackSquare from
// Remaining. If Remaining is empty the square is cleared. If the pieces
// left behind cannot legally recombine, the overlay is cleared and the
// caller (IsNonRecombinable) should reject completion of the session.
func (d *DeploySession) recombineStackSquare() {
	if len(d.Remaining) == 0 {
		delete(d.Overlay, d.StackSquare)
		return
	}
	combined, err := d.stacker.Combine(d.Remaining)
	if err != nil {
		delete(d.Overlay, d.StackSquare)
		return
	}
	d.Overlay[d.StackSquare] = combined
}

// IsNonRecombinable reports whether Remaining is non-empty but cannot form
// a legal stack, i.e. completing the session right now would violate
// spec.md §4.6's deploy-generation rule ("if they cannot form a legal
// stack the deploy step is rejected").
func (d *DeploySession) IsNonRecombinable() bool {
	if len(d.Remaining) == 0 {
		return false
	}
	_, ok := d.Overlay[d.StackSquare]
	return !ok
}

// Commit writes the overlay onto the real board, resolves the remaining
// stack-square occupant, flips the turn, and clears the session. It is the
// caller's responsibility (GameState.CommitDeploy) to invoke this only
// when IsNonRecombinable is false.
func (d *DeploySession) Commit(s *GameState) error {
	if d.IsNonRecombinable() {
		return &errs.DeployError{Kind: errs.NonRecombinable, Detail: "pieces left at the stack square cannot recombine"}
	}

	s.Squares[d.StackSquare] = Piece{}
	if rest, ok := d.Overlay[d.StackSquare]; ok {
		s.Squares[d.StackSquare] = rest
	}
	for _, m := range d.Moved {
		s.Squares[m.To] = d.Overlay[m.To]
	}
	for sq, p := range d.Overlay {
		if sq == d.StackSquare {
			continue
		}
		s.Squares[sq] = p
	}

	s.syncCommanderSquares()
	s.Deploy = nil
	s.Turn = s.Turn.Opponent()
	if s.Turn == Red {
		s.FullMoveNumber++
	}
	s.refreshAirDefense()
	return nil
}

func (s *GameState) syncCommanderSquares() {
	s.Commander[Red] = NoSquare
	s.Commander[Blue] = NoSquare
	for sq := Square(0); ; sq++ {
		if sq.IsValid() {
			for _, sub := range Flatten(s.Squares[sq]) {
				if sub.Role == Commander {
					s.Commander[sub.Color] = sq
				}
			}
		}
		if sq == NumSquares-1 {
			break
		}
	}
}
