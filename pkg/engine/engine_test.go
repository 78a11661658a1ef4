package engine_test

import (
	"context"
	"testing"

	"github.com/cotulenh-dev/cotulenh-engine/pkg/board"
	"github.com/cotulenh-dev/cotulenh-engine/pkg/board/fen"
	"github.com/cotulenh-dev/cotulenh-engine/pkg/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestScenarioLegalInfantryAdvance is spec.md §8 scenario A: a quiet
// Infantry step from the default starting position flips the turn,
// changes only that square, and leaves the mover un-checked. The starting
// FEN's own Infantry sits at c5/k5 rather than the scenario's illustrative
// "c2", so this exercises the same shape of move against the real board.
func TestScenarioLegalInfantryAdvance(t *testing.T) {
	ctx := context.Background()
	e, err := engine.New(ctx, "")
	require.NoError(t, err)

	before := e.Fen(ctx)

	mv, err := e.MoveWithSpec(ctx, engine.MoveSpec{From: "c5", To: "c6"})
	require.NoError(t, err)
	assert.Equal(t, board.Infantry, mv.Role)
	assert.Equal(t, board.Normal, mv.Kind)

	assert.Equal(t, board.Blue, e.Turn(ctx))
	assert.False(t, e.IsCheck(ctx))

	after := e.Fen(ctx)
	assert.NotEqual(t, before, after)

	p, err := e.Get(ctx, "c6", "")
	require.NoError(t, err)
	assert.Equal(t, board.Infantry, p.Role)
	assert.Equal(t, board.Red, p.Color)

	empty, err := e.Get(ctx, "c5", "")
	require.NoError(t, err)
	assert.True(t, empty.IsZero())
}

// TestScenarioStackFormationByCombination is spec.md §8 scenario B.
func TestScenarioStackFormationByCombination(t *testing.T) {
	ctx := context.Background()
	e, err := engine.New(ctx, fen.Empty)
	require.NoError(t, err)

	_, err = e.Put(ctx, board.Piece{Role: board.Commander, Color: board.Red}, "j1", false)
	require.NoError(t, err)
	_, err = e.Put(ctx, board.Piece{Role: board.Commander, Color: board.Blue}, "k12", false)
	require.NoError(t, err)
	_, err = e.Put(ctx, board.Piece{Role: board.Tank, Color: board.Red}, "d5", false)
	require.NoError(t, err)
	_, err = e.Put(ctx, board.Piece{Role: board.Infantry, Color: board.Red}, "d4", false)
	require.NoError(t, err)

	mv, err := e.MoveWithSpec(ctx, engine.MoveSpec{From: "d4", To: "d5", Combine: true})
	require.NoError(t, err)
	assert.Equal(t, board.Combination, mv.Kind)

	d5, err := e.Get(ctx, "d5", "")
	require.NoError(t, err)
	assert.True(t, d5.IsStack())
	assert.Equal(t, board.Tank, d5.Role)
	require.Len(t, d5.Carrying, 1)
	assert.Equal(t, board.Infantry, d5.Carrying[0].Role)

	d4, err := e.Get(ctx, "d4", "")
	require.NoError(t, err)
	assert.True(t, d4.IsZero())
}

// TestScenarioHeroicPromotion is spec.md §8 scenario D: a Tank capture
// that lands attacking the enemy Commander earns heroic status.
func TestScenarioHeroicPromotion(t *testing.T) {
	ctx := context.Background()
	e, err := engine.New(ctx, fen.Empty)
	require.NoError(t, err)

	_, err = e.Put(ctx, board.Piece{Role: board.Commander, Color: board.Red}, "j1", false)
	require.NoError(t, err)
	_, err = e.Put(ctx, board.Piece{Role: board.Commander, Color: board.Blue}, "e9", false)
	require.NoError(t, err)
	_, err = e.Put(ctx, board.Piece{Role: board.Tank, Color: board.Red}, "e5", false)
	require.NoError(t, err)
	_, err = e.Put(ctx, board.Piece{Role: board.Infantry, Color: board.Blue}, "e7", false)
	require.NoError(t, err)

	mv, err := e.MoveWithSpec(ctx, engine.MoveSpec{From: "e5", To: "e7"})
	require.NoError(t, err)
	assert.Equal(t, board.Capture, mv.Kind)
	assert.True(t, mv.PromotedHeroic)

	p, err := e.Get(ctx, "e7", "")
	require.NoError(t, err)
	assert.True(t, p.Heroic)
}

// TestScenarioThreefoldRepetition is spec.md §8 scenario F: a shuttling
// loop that restores board, turn and deploy state (Idle throughout) three
// times makes isDraw() true. The starting position itself is the first
// occurrence, so two repeats of the 4-ply loop reach the third.
func TestScenarioThreefoldRepetition(t *testing.T) {
	ctx := context.Background()
	e, err := engine.New(ctx, fen.Empty)
	require.NoError(t, err)

	_, err = e.Put(ctx, board.Piece{Role: board.Commander, Color: board.Red}, "j1", false)
	require.NoError(t, err)
	_, err = e.Put(ctx, board.Piece{Role: board.Commander, Color: board.Blue}, "k12", false)
	require.NoError(t, err)
	_, err = e.Put(ctx, board.Piece{Role: board.Infantry, Color: board.Red}, "c5", false)
	require.NoError(t, err)
	_, err = e.Put(ctx, board.Piece{Role: board.Infantry, Color: board.Blue}, "c8", false)
	require.NoError(t, err)

	assert.False(t, e.IsDraw(ctx))

	for i := 0; i < 2; i++ {
		_, err = e.MoveWithSpec(ctx, engine.MoveSpec{From: "c5", To: "c6"})
		require.NoError(t, err)
		_, err = e.MoveWithSpec(ctx, engine.MoveSpec{From: "c8", To: "c7"})
		require.NoError(t, err)
		_, err = e.MoveWithSpec(ctx, engine.MoveSpec{From: "c6", To: "c5"})
		require.NoError(t, err)
		_, err = e.MoveWithSpec(ctx, engine.MoveSpec{From: "c7", To: "c8"})
		require.NoError(t, err)
	}

	assert.True(t, e.IsDraw(ctx))
	assert.True(t, e.IsGameOver(ctx))
}

func TestUndoRevertsMostRecentMutation(t *testing.T) {
	ctx := context.Background()
	e, err := engine.New(ctx, "")
	require.NoError(t, err)

	before := e.Fen(ctx)
	_, err = e.MoveWithSpec(ctx, engine.MoveSpec{From: "c5", To: "c6"})
	require.NoError(t, err)
	require.NotEqual(t, before, e.Fen(ctx))

	require.NoError(t, e.Undo(ctx))
	assert.Equal(t, before, e.Fen(ctx))

	assert.Error(t, e.Undo(ctx))
}

func TestUndoRevertsPut(t *testing.T) {
	ctx := context.Background()
	e, err := engine.New(ctx, fen.Empty)
	require.NoError(t, err)

	before := e.Fen(ctx)
	_, err = e.Put(ctx, board.Piece{Role: board.Commander, Color: board.Red}, "j1", false)
	require.NoError(t, err)
	require.NotEqual(t, before, e.Fen(ctx))

	require.NoError(t, e.Undo(ctx))
	assert.Equal(t, before, e.Fen(ctx))
}

func TestDeployStepAndCommit(t *testing.T) {
	ctx := context.Background()
	e, err := engine.New(ctx, fen.Empty)
	require.NoError(t, err)

	_, err = e.Put(ctx, board.Piece{Role: board.Commander, Color: board.Red}, "j1", false)
	require.NoError(t, err)
	_, err = e.Put(ctx, board.Piece{Role: board.Commander, Color: board.Blue}, "k12", false)
	require.NoError(t, err)

	tank := board.Piece{Role: board.Tank, Color: board.Red}
	air := board.Piece{Role: board.AirForce, Color: board.Red}
	stack, err := board.DefaultStacker.Combine([]board.Piece{tank, air})
	require.NoError(t, err)
	_, err = e.Put(ctx, stack, "d5", false)
	require.NoError(t, err)

	mv, err := e.DeployStep(ctx, engine.DeployStepSpec{From: "d5", To: "d7", Role: "Tank"})
	require.NoError(t, err)
	assert.Equal(t, board.DeployStepKind, mv.Kind)
	assert.Contains(t, e.Fen(ctx), "D:d5")

	mv2, err := e.DeployStep(ctx, engine.DeployStepSpec{From: "d5", To: "h5", Role: "F"})
	require.NoError(t, err)
	assert.Equal(t, board.AirForce, mv2.Role)

	require.NoError(t, e.CommitDeploy(ctx))
	assert.NotContains(t, e.Fen(ctx), "D:")
	assert.Equal(t, board.Blue, e.Turn(ctx))
}

// TestUndoOfFirstDeployStepReturnsToIdle covers spec.md §4.10's "Undo of
// first step -> Idle": undoing a session's only step must clear the
// session entirely, not leave an empty-but-Active one behind (an empty
// Active session leaks into Fen as a bogus "D:" suffix and misdirects
// subsequent move generation down the deploy-only path).
func TestUndoOfFirstDeployStepReturnsToIdle(t *testing.T) {
	ctx := context.Background()
	e, err := engine.New(ctx, fen.Empty)
	require.NoError(t, err)

	_, err = e.Put(ctx, board.Piece{Role: board.Commander, Color: board.Red}, "j1", false)
	require.NoError(t, err)
	_, err = e.Put(ctx, board.Piece{Role: board.Commander, Color: board.Blue}, "k12", false)
	require.NoError(t, err)

	tank := board.Piece{Role: board.Tank, Color: board.Red}
	air := board.Piece{Role: board.AirForce, Color: board.Red}
	stack, err := board.DefaultStacker.Combine([]board.Piece{tank, air})
	require.NoError(t, err)
	_, err = e.Put(ctx, stack, "d5", false)
	require.NoError(t, err)

	before := e.Fen(ctx)

	_, err = e.DeployStep(ctx, engine.DeployStepSpec{From: "d5", To: "d7", Role: "Tank"})
	require.NoError(t, err)
	require.NoError(t, e.Undo(ctx))

	assert.Equal(t, before, e.Fen(ctx))
	assert.NotContains(t, e.Fen(ctx), "D:")

	// A read-only legal-move query over the same stack must leave the
	// state exactly as it found it too.
	_, err = e.Moves(ctx, engine.MoveFilter{})
	require.NoError(t, err)
	assert.Equal(t, before, e.Fen(ctx))
}

func TestMovesFilterBySquareAndRole(t *testing.T) {
	ctx := context.Background()
	e, err := engine.New(ctx, "")
	require.NoError(t, err)

	results, err := e.Moves(ctx, engine.MoveFilter{Square: "c5", Verbose: true})
	require.NoError(t, err)
	require.NotEmpty(t, results)
	for _, r := range results {
		assert.Equal(t, board.Infantry, r.Move.Role)
	}
}

func TestLoadInvalidFENReturnsTypedError(t *testing.T) {
	ctx := context.Background()
	_, err := engine.New(ctx, "not-a-fen")
	require.Error(t, err)
}

func TestHistoryRecordsMoves(t *testing.T) {
	ctx := context.Background()
	e, err := engine.New(ctx, "")
	require.NoError(t, err)

	_, err = e.MoveWithSpec(ctx, engine.MoveSpec{From: "c5", To: "c6"})
	require.NoError(t, err)

	hist := e.History(ctx, false)
	require.Len(t, hist, 1)
	assert.NotEmpty(t, hist[0].SAN)
}
