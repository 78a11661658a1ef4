package engine

import (
	"context"

	"github.com/cotulenh-dev/cotulenh-engine/pkg/board"
	"github.com/cotulenh-dev/cotulenh-engine/pkg/board/fen"
	"github.com/cotulenh-dev/cotulenh-engine/pkg/board/san"
	"github.com/seekerror/logw"
)

// MoveFilter narrows Moves' result (spec.md §4.12 `moves`). A zero value
// matches every legal move for the side to move.
type MoveFilter struct {
	Square  string // restrict to moves/deploy steps starting here
	Role    string // restrict to this role letter, either case
	Verbose bool   // also populate MoveResult.Move, not just SAN
}

// MoveResult is one entry of Moves' result: always a SAN string, plus the
// structured board.Move when Verbose was requested.
type MoveResult struct {
	SAN  string
	Move board.Move
}

// Turn returns the side to move (spec.md §4.12 `turn`).
func (e *Engine) Turn(ctx context.Context) board.Color {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.s.Turn
}

// IsCheck reports whether the side to move's commander is attacked
// (spec.md §4.12 `isCheck`).
func (e *Engine) IsCheck(ctx context.Context) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.isCheckLocked()
}

func (e *Engine) isCheckLocked() bool {
	color := e.s.Turn
	sq := e.s.Commander[color]
	return sq.IsValid() && e.s.IsAttacked(sq, color.Opponent())
}

// IsCheckmate reports check with no legal response (spec.md §4.12
// `isCheckmate`).
func (e *Engine) IsCheckmate(ctx context.Context) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.isCheckLocked() && len(e.legalMovesLocked()) == 0
}

// IsDraw reports threefold repetition of the current canonical position
// (spec.md §4.12 `isDraw`, §8 scenario F). The half-move clock is
// excluded from the repetition key per §9's design note.
func (e *Engine) IsDraw(ctx context.Context) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.isDrawLocked()
}

func (e *Engine) isDrawLocked() bool {
	return e.s.Repetition[fen.Canonical(e.s)] >= 3
}

// IsGameOver reports checkmate, a drawn position, or stalemate -- the side
// to move has no legal moves and is not in check (spec.md §4.12
// `isGameOver`).
func (e *Engine) IsGameOver(ctx context.Context) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.isDrawLocked() {
		return true
	}
	return len(e.legalMovesLocked()) == 0
}

// Moves returns the legal moves for the side to move (or for the stack
// mid-deploy), filtered by filter (spec.md §4.12 `moves`).
func (e *Engine) Moves(ctx context.Context, filter MoveFilter) ([]MoveResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	legal := e.legalMovesLocked()

	var fromFilter board.Square
	hasFrom := false
	if filter.Square != "" {
		sq, ok := board.ParseSquare(filter.Square)
		if !ok {
			return nil, &illegalFilterError{reason: "invalid square '" + filter.Square + "'"}
		}
		fromFilter, hasFrom = sq, true
	}
	var roleFilter board.PieceRole
	hasRole := false
	if filter.Role != "" {
		r, ok := board.ParseRole(rune(filter.Role[0]))
		if !ok {
			return nil, &illegalFilterError{reason: "invalid role '" + filter.Role + "'"}
		}
		roleFilter, hasRole = r, true
	}

	var out []MoveResult
	for _, m := range legal {
		if hasFrom && m.From != fromFilter {
			continue
		}
		if hasRole && m.Role != roleFilter {
			continue
		}
		sanStr, err := san.Generate(e.s, m, legal)
		if err != nil {
			continue
		}
		res := MoveResult{SAN: sanStr}
		if filter.Verbose {
			res.Move = m
		}
		out = append(out, res)
	}
	return out, nil
}

// Get returns the piece (possibly a stack) at square, optionally asserting
// it matches role (spec.md §4.12 `get`). An empty square or a role
// mismatch both yield the zero Piece.
func (e *Engine) Get(ctx context.Context, square string, role string) (board.Piece, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	sq, ok := board.ParseSquare(square)
	if !ok {
		return board.Piece{}, &illegalFilterError{reason: "invalid square '" + square + "'"}
	}
	p := e.s.At(sq)
	if role != "" {
		r, ok := board.ParseRole(rune(role[0]))
		if !ok {
			return board.Piece{}, &illegalFilterError{reason: "invalid role '" + role + "'"}
		}
		if p.Role != r {
			return board.Piece{}, nil
		}
	}
	return p, nil
}

// Put places p at square directly, outside move execution (spec.md §4.12
// `put`). When combine is true and square is already occupied, p is
// stacked onto the existing occupant instead of overwriting it.
func (e *Engine) Put(ctx context.Context, p board.Piece, square string, combine bool) (board.Piece, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	sq, ok := board.ParseSquare(square)
	if !ok {
		return board.Piece{}, &illegalFilterError{reason: "invalid square '" + square + "'"}
	}

	target := p
	if combine {
		if existing := e.s.At(sq); !existing.IsZero() {
			combined, err := e.s.Stacker.Combine([]board.Piece{existing, p})
			if err != nil {
				return board.Piece{}, err
			}
			target = combined
		}
	}

	before := cloneState(e.s)
	if err := e.s.Put(sq, target); err != nil {
		return board.Piece{}, err
	}
	e.pushHistoryLocked(historyEntry{label: "put", before: before})
	e.recordRepetitionLocked()

	logw.Infof(ctx, "Put %v at %v", target, sq)
	return target, nil
}

// Remove clears square and returns what was there (spec.md §4.12
// `remove`).
func (e *Engine) Remove(ctx context.Context, square string) (board.Piece, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	sq, ok := board.ParseSquare(square)
	if !ok {
		return board.Piece{}, &illegalFilterError{reason: "invalid square '" + square + "'"}
	}

	before := cloneState(e.s)
	removed := e.s.Remove(sq)
	e.pushHistoryLocked(historyEntry{label: "remove", before: before})

	logw.Infof(ctx, "Remove %v from %v", removed, sq)
	return removed, nil
}

// History returns every executed move, deploy step and commit in order
// (spec.md §4.12 `history`). put/remove are excluded since they are not
// moves. Move is only populated when verbose is true.
func (e *Engine) History(ctx context.Context, verbose bool) []MoveResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	var out []MoveResult
	for _, h := range e.history {
		if h.label != "move" && h.label != "deployStep" && h.label != "commitDeploy" {
			continue
		}
		label := h.san
		if label == "" {
			label = h.label
		}
		res := MoveResult{SAN: label}
		if verbose {
			res.Move = h.move
		}
		out = append(out, res)
	}
	return out
}

// GetAirDefense returns the per-color air-defense projection (spec.md
// §4.12 `getAirDefense`).
func (e *Engine) GetAirDefense(ctx context.Context) board.AirDefense {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.s.AirDefense
}

type illegalFilterError struct {
	reason string
}

func (e *illegalFilterError) Error() string {
	return "invalid query: " + e.reason
}
