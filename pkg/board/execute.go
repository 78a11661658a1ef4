package board

import "github.com/cotulenh-dev/cotulenh-engine/pkg/errs"

// Execute applies move to the real board (spec.md §4.9), exhaustively
// switching on its Kind. It is the only way (besides Put/Remove direct
// placement) that GameState.Squares is mutated for a non-deploy move; a
// DeployStepKind move instead delegates to the active DeploySession. On
// success, move is enriched with enough snapshot data (unexported) for a
// later call to Undo to restore the state exactly.
func (s *GameState) Execute(move *Move) error {
	switch move.Kind {
	case Normal:
		return s.executeRelocate(move, false)
	case Capture:
		return s.executeRelocate(move, true)
	case StayCapture:
		return s.executeStayCapture(move)
	case SuicideCapture:
		return s.executeSuicideCapture(move)
	case Combination:
		return s.executeCombination(move)
	case DeployStepKind:
		return s.executeDeployStep(move)
	default:
		return &errs.IllegalMove{Reason: "unknown move kind"}
	}
}

// Undo reverses a move previously passed to Execute. It must be called
// with the same Move value (its snapshot fields populated by Execute) and
// only in the reverse order moves were executed.
func (s *GameState) Undo(move *Move) error {
	switch move.Kind {
	case Normal, Capture:
		return s.undoRelocate(move)
	case StayCapture:
		return s.undoStayCapture(move)
	case SuicideCapture:
		return s.undoSuicideCapture(move)
	case Combination:
		return s.undoCombination(move)
	case DeployStepKind:
		return s.undoDeployStep(move)
	default:
		return &errs.IllegalMove{Reason: "unknown move kind"}
	}
}

func (s *GameState) executeRelocate(move *Move, isCapture bool) error {
	mover := s.baseAt(move.From)
	if mover.IsZero() {
		return &errs.IllegalMove{Reason: "no piece at " + move.From.String()}
	}
	move.moverSnapshot = mover
	move.Heroic = mover.Heroic

	if isCapture {
		target := s.baseAt(move.To)
		if target.IsZero() {
			return &errs.IllegalMove{Reason: "no piece to capture at " + move.To.String()}
		}
		move.Captured = target
	} else if !s.baseAt(move.To).IsZero() {
		return &errs.IllegalMove{Reason: move.To.String() + " is occupied"}
	}

	s.Squares[move.From] = Piece{}
	s.Squares[move.To] = mover
	return s.finishNonDeployMove(move, mover.Color, move.To)
}

func (s *GameState) undoRelocate(move *Move) error {
	s.Squares[move.To] = move.Captured
	s.Squares[move.From] = move.moverSnapshot
	s.restoreClockTurn(move)
	s.syncCommanderSquares()
	s.refreshAirDefense()
	return nil
}

func (s *GameState) executeStayCapture(move *Move) error {
	mover := s.baseAt(move.From)
	if mover.IsZero() {
		return &errs.IllegalMove{Reason: "no piece at " + move.From.String()}
	}
	target := s.baseAt(move.To)
	if target.IsZero() {
		return &errs.IllegalMove{Reason: "no piece to stay-capture at " + move.To.String()}
	}
	move.moverSnapshot = mover
	move.Heroic = mover.Heroic
	move.Captured = target

	s.Squares[move.To] = Piece{}
	return s.finishNonDeployMove(move, mover.Color, move.From)
}

func (s *GameState) undoStayCapture(move *Move) error {
	s.Squares[move.From] = move.moverSnapshot
	s.Squares[move.To] = move.Captured
	s.restoreClockTurn(move)
	s.syncCommanderSquares()
	s.refreshAirDefense()
	return nil
}

func (s *GameState) executeSuicideCapture(move *Move) error {
	mover := s.baseAt(move.From)
	if mover.IsZero() {
		return &errs.IllegalMove{Reason: "no piece at " + move.From.String()}
	}
	target := s.baseAt(move.To)
	if target.IsZero() {
		return &errs.IllegalMove{Reason: "no piece to suicide-capture at " + move.To.String()}
	}
	move.moverSnapshot = mover
	move.Heroic = mover.Heroic
	move.Captured = target

	s.Squares[move.From] = Piece{}
	s.Squares[move.To] = Piece{}
	return s.finishNonDeployMove(move, mover.Color, NoSquare)
}

func (s *GameState) undoSuicideCapture(move *Move) error {
	s.Squares[move.From] = move.moverSnapshot
	s.Squares[move.To] = move.Captured
	s.restoreClockTurn(move)
	s.syncCommanderSquares()
	s.refreshAirDefense()
	return nil
}

func (s *GameState) executeCombination(move *Move) error {
	mover := s.baseAt(move.From)
	if mover.IsZero() {
		return &errs.IllegalMove{Reason: "no piece at " + move.From.String()}
	}
	existing := s.baseAt(move.To)
	if existing.IsZero() {
		return &errs.IllegalMove{Reason: "no piece to combine with at " + move.To.String()}
	}
	combined, err := s.Stacker.Combine([]Piece{existing, mover})
	if err != nil {
		return err
	}
	move.moverSnapshot = mover
	move.Heroic = mover.Heroic
	move.Combined = existing

	s.Squares[move.From] = Piece{}
	s.Squares[move.To] = combined
	return s.finishNonDeployMove(move, mover.Color, move.To)
}

func (s *GameState) undoCombination(move *Move) error {
	s.Squares[move.To] = move.Combined
	s.Squares[move.From] = move.moverSnapshot
	s.restoreClockTurn(move)
	s.syncCommanderSquares()
	s.refreshAirDefense()
	return nil
}

func (s *GameState) executeDeployStep(move *Move) error {
	if s.Deploy == nil {
		stack := s.baseAt(move.From)
		if stack.IsZero() {
			return &errs.IllegalMove{Reason: "no stack to deploy at " + move.From.String()}
		}
		s.Deploy = NewDeploySession(move.From, s.Turn, stack, s.Stacker)
	} else if s.Deploy.StackSquare != move.From {
		return &errs.DeployError{Kind: errs.WrongStack, Detail: "a different stack is already deploying"}
	}
	var err error
	if move.DeployStay {
		err = s.Deploy.MarkStay(move.Role)
	} else {
		err = s.Deploy.Step(move.Role, move.To, move.Heroic)
	}
	// Air-defense must reflect the overlay immediately: a deploy step that
	// captures an enemy defender (or relocates a friendly one) changes what
	// later deploy steps from the same stack may reach (spec.md §4.10).
	s.refreshAirDefense()
	return err
}

func (s *GameState) undoDeployStep(move *Move) error {
	if s.Deploy == nil {
		return &errs.DeployError{Kind: errs.NotActive, Detail: "no active deploy session to undo"}
	}
	if move.DeployStay {
		delete(s.Deploy.Stayed, move.Role)
		if s.Deploy.IsEmpty() {
			s.Deploy = nil
		}
		s.refreshAirDefense()
		return nil
	}
	_, ok := s.Deploy.Undo()
	if !ok {
		return &errs.DeployError{Kind: errs.NotActive, Detail: "deploy session has no step to undo"}
	}
	if s.Deploy.IsEmpty() {
		s.Deploy = nil
	}
	s.refreshAirDefense()
	return nil
}

// CommitDeploy finalizes the active deploy session: spreads its overlay
// onto the real board, flips the turn, and clears the session.
func (s *GameState) CommitDeploy() error {
	if s.Deploy == nil {
		return &errs.DeployError{Kind: errs.NotActive, Detail: "no active deploy session"}
	}
	return s.Deploy.Commit(s)
}

// finishNonDeployMove is the common tail of every non-deploy Execute path:
// it snapshots clock/turn for Undo, updates the half-move clock, checks for
// heroic promotion at landedSq (the square the mover ends up occupying, or
// NoSquare for SuicideCapture where the mover no longer exists), flips the
// turn and advances the full-move counter.
func (s *GameState) finishNonDeployMove(move *Move, color Color, landedSq Square) error {
	move.prevHalfMoveClock = s.HalfMoveClock
	move.prevFullMoveNumber = s.FullMoveNumber
	move.prevTurn = s.Turn

	if move.IsCaptureLike() {
		s.HalfMoveClock = 0
	} else {
		s.HalfMoveClock++
	}

	s.syncCommanderSquares()
	s.refreshAirDefense()
	s.checkHeroicPromotion(move, color, landedSq)

	s.Turn = s.Turn.Opponent()
	if s.Turn == Red {
		s.FullMoveNumber++
	}
	return nil
}

func (s *GameState) restoreClockTurn(move *Move) {
	s.HalfMoveClock = move.prevHalfMoveClock
	s.FullMoveNumber = move.prevFullMoveNumber
	s.Turn = move.prevTurn
}

// checkHeroicPromotion implements spec.md §4.9: a piece earns heroic
// status the instant it delivers an attack on the enemy commander. Only
// the specific piece that just landed on landedSq is considered (not any
// other piece of the same color already attacking), and only if it is not
// already heroic.
func (s *GameState) checkHeroicPromotion(move *Move, color Color, landedSq Square) {
	if !landedSq.IsValid() {
		return
	}
	enemy := color.Opponent()
	enemySq := s.Commander[enemy]
	if !enemySq.IsValid() {
		return
	}
	mover := s.baseAt(landedSq)
	if mover.IsZero() || mover.Color != color || mover.Heroic {
		return
	}
	for _, atk := range s.Attackers(enemySq, color) {
		if atk == landedSq {
			mover.Heroic = true
			s.Squares[landedSq] = mover
			move.PromotedHeroic = true
			move.PromotedSquare = landedSq
			s.refreshAirDefense()
			return
		}
	}
}
