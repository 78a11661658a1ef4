package engine

import (
	"context"
	"strings"

	"github.com/cotulenh-dev/cotulenh-engine/pkg/board"
	"github.com/cotulenh-dev/cotulenh-engine/pkg/board/san"
	"github.com/cotulenh-dev/cotulenh-engine/pkg/errs"
	"github.com/seekerror/logw"
)

// MoveSpec is the structured alternative to a SAN string for Move (spec.md
// §4.12 `move`'s "SAN or structured object" input). Role and Combine
// disambiguate when From/To alone match more than one legal move.
type MoveSpec struct {
	From    string
	To      string
	Role    string // optional: role letter, either case
	Combine bool   // true selects a Combination candidate over Normal/Capture
}

// DeployStepSpec is the structured input to DeployStep (spec.md §4.12
// `deployStep`). Stay requests the Role piece remain at From rather than
// relocate; To is ignored when Stay is set. Move generation produces no
// stay candidates, so a request with Stay set is rejected as illegal.
type DeployStepSpec struct {
	From string
	To   string
	Role string
	Stay bool
}

// Move parses moveSpec as SAN and, if it resolves to exactly one legal
// move, executes it (spec.md §4.12 `move`). A bare "-" between the
// disambiguator and target square (as in long-algebraic notation) is
// tolerated even though the SAN grammar itself has no separator for
// Normal moves.
func (e *Engine) Move(ctx context.Context, moveSpec string) (board.Move, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	logw.Infof(ctx, "Move %v", moveSpec)

	normalized := strings.Replace(moveSpec, "-", "", 1)
	candidate, err := san.Parse(e.s, normalized, e.s.Turn)
	if err != nil {
		return board.Move{}, err
	}
	return e.executeResolvedLocked(ctx, "move", candidate)
}

// MoveWithSpec executes the single legal move matching spec (spec.md
// §4.12 `move`'s structured-object form). Returns AmbiguousMove if more
// than one legal move matches From/To/Role/Combine.
func (e *Engine) MoveWithSpec(ctx context.Context, spec MoveSpec) (board.Move, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	logw.Infof(ctx, "Move %+v", spec)

	from, ok := board.ParseSquare(spec.From)
	if !ok {
		return board.Move{}, &errs.IllegalMove{Reason: "invalid from square '" + spec.From + "'"}
	}
	to, ok := board.ParseSquare(spec.To)
	if !ok {
		return board.Move{}, &errs.IllegalMove{Reason: "invalid to square '" + spec.To + "'"}
	}

	var role board.PieceRole
	hasRole := false
	if spec.Role != "" {
		r, ok := board.ParseRole(rune(spec.Role[0]))
		if !ok {
			return board.Move{}, &errs.IllegalMove{Reason: "invalid role '" + spec.Role + "'"}
		}
		role, hasRole = r, true
	}

	legal := e.legalMovesLocked()
	var candidates []board.Move
	for _, m := range legal {
		if m.From != from || m.To != to {
			continue
		}
		if hasRole && m.Role != role {
			continue
		}
		if spec.Combine && m.Kind != board.Combination {
			continue
		}
		if !spec.Combine && m.Kind == board.Combination {
			continue
		}
		candidates = append(candidates, m)
	}

	switch len(candidates) {
	case 0:
		return board.Move{}, &errs.IllegalMove{Reason: "no legal move matches the given spec"}
	case 1:
		return e.executeResolvedLocked(ctx, "move", candidates[0])
	default:
		return board.Move{}, ambiguous(candidates)
	}
}

// DeployStep executes a single deploy sub-move (spec.md §4.12
// `deployStep`): the first call on a stack opens an Active DeploySession,
// further calls extend it.
func (e *Engine) DeployStep(ctx context.Context, spec DeployStepSpec) (board.Move, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	logw.Infof(ctx, "DeployStep %+v", spec)

	from, ok := board.ParseSquare(spec.From)
	if !ok {
		return board.Move{}, &errs.IllegalMove{Reason: "invalid from square '" + spec.From + "'"}
	}
	role, ok := board.ParseRole(rune(firstRune(spec.Role)))
	if !ok {
		return board.Move{}, &errs.IllegalMove{Reason: "invalid role '" + spec.Role + "'"}
	}
	var to board.Square
	if !spec.Stay {
		to, ok = board.ParseSquare(spec.To)
		if !ok {
			return board.Move{}, &errs.IllegalMove{Reason: "invalid to square '" + spec.To + "'"}
		}
	}

	legal := e.legalMovesLocked()
	var match *board.Move
	for i := range legal {
		m := legal[i]
		if m.Kind != board.DeployStepKind || m.From != from || m.Role != role {
			continue
		}
		if spec.Stay {
			if m.DeployStay {
				match = &legal[i]
				break
			}
			continue
		}
		if !m.DeployStay && m.To == to {
			match = &legal[i]
			break
		}
	}
	if match == nil {
		return board.Move{}, &errs.IllegalMove{Reason: "no legal deploy step matches the given spec"}
	}

	return e.executeResolvedLocked(ctx, "deployStep", *match)
}

// executeResolvedLocked renders candidate as SAN against the pre-move
// state, executes it for real, records repetition and history. Caller
// must hold e.mu.
func (e *Engine) executeResolvedLocked(ctx context.Context, label string, candidate board.Move) (board.Move, error) {
	legal := e.legalMovesLocked()

	sanStr, err := san.Generate(e.s, candidate, legal)
	if err != nil {
		return board.Move{}, err
	}

	before := cloneState(e.s)
	mv := candidate
	if err := e.s.Execute(&mv); err != nil {
		return board.Move{}, err
	}
	e.recordRepetitionLocked()
	e.pushHistoryLocked(historyEntry{label: label, san: sanStr, move: mv, before: before})

	logw.Infof(ctx, "%v %v: %v", label, sanStr, mv)
	return mv, nil
}

// CommitDeploy finalizes the Active deploy session (spec.md §4.12
// `commitDeploy`): errors with DeployError{NotActive} if Idle.
func (e *Engine) CommitDeploy(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	logw.Infof(ctx, "CommitDeploy")

	if e.s.Deploy == nil {
		return &errs.DeployError{Kind: errs.NotActive, Detail: "no active deploy session"}
	}

	before := cloneState(e.s)
	if err := e.s.CommitDeploy(); err != nil {
		return err
	}
	e.recordRepetitionLocked()
	e.pushHistoryLocked(historyEntry{label: "commitDeploy", before: before})

	logw.Infof(ctx, "CommitDeploy: turn now %v", e.s.Turn)
	return nil
}

func ambiguous(candidates []board.Move) error {
	names := make([]string, 0, len(candidates))
	for _, c := range candidates {
		names = append(names, c.String())
	}
	return &errs.AmbiguousMove{Candidates: names}
}

func firstRune(s string) rune {
	if s == "" {
		return 0
	}
	return rune(s[0])
}
