package board

// MoveKind is a closed sum type over the six kinds of move the engine can
// execute. Exhaustively switched over in Execute/Undo rather than modeled
// as an inheritance hierarchy, per spec.md §9's design note.
type MoveKind uint8

const (
	Normal MoveKind = iota
	Capture
	StayCapture
	SuicideCapture
	Combination
	DeployStepKind
)

func (k MoveKind) String() string {
	switch k {
	case Normal:
		return "Normal"
	case Capture:
		return "Capture"
	case StayCapture:
		return "StayCapture"
	case SuicideCapture:
		return "SuicideCapture"
	case Combination:
		return "Combination"
	case DeployStepKind:
		return "DeployStep"
	default:
		return "Unknown"
	}
}

// Move is a not-necessarily-legal move together with enough metadata to
// both execute it and, later, undo it or render it in SAN.
type Move struct {
	Kind MoveKind
	From Square
	To   Square

	// Role is the role of the sub-piece actually relocating: the carrier's
	// role for a whole-stack move, or the deployed piece's role for a
	// DeployStep.
	Role   PieceRole
	Heroic bool // heroic flag of the moving piece, before this move

	// Captured is the piece (possibly a stack) that was removed from To,
	// set for Capture, StayCapture and SuicideCapture.
	Captured Piece

	// Combined is the friendly piece that previously occupied To, set for
	// Combination moves so Undo can split the merged stack back apart.
	Combined Piece

	// DeployStay, valid only for DeployStepKind, marks that this step
	// designates Role to remain at From rather than move to To (To is then
	// ignored and equals From).
	DeployStay bool

	// PromotedHeroic and PromotedSquare are filled in by Execute, not the
	// caller: they record whether this move caused the mover to earn
	// heroic status (spec.md §4.9) so Undo can reverse it.
	PromotedHeroic bool
	PromotedSquare Square

	// moverSnapshot, prevHalfMoveClock, prevFullMoveNumber and prevTurn are
	// filled in by Execute and consumed only by Undo.
	moverSnapshot      Piece
	prevHalfMoveClock  int
	prevFullMoveNumber int
	prevTurn           Color
}

// IsCaptureLike reports whether the move removes an enemy piece.
func (m Move) IsCaptureLike() bool {
	switch m.Kind {
	case Capture, StayCapture, SuicideCapture:
		return true
	default:
		return false
	}
}

func (m Move) String() string {
	return m.Kind.String() + " " + m.Role.String() + " " + m.From.String() + "-" + m.To.String()
}
