package board_test

import (
	"testing"

	"github.com/cotulenh-dev/cotulenh-engine/pkg/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteNormalMoveAndUndo(t *testing.T) {
	s := board.NewEmptyState()
	from := board.NewSquare(5, 5)
	to := board.NewSquare(5, 6)
	require.NoError(t, s.Put(from, board.Piece{Role: board.Infantry, Color: board.Red}))

	move := &board.Move{Kind: board.Normal, From: from, To: to, Role: board.Infantry}
	require.NoError(t, s.Execute(move))

	assert.True(t, s.At(from).IsZero())
	assert.Equal(t, board.Infantry, s.At(to).Role)
	assert.Equal(t, board.Blue, s.Turn)
	assert.Equal(t, 1, s.HalfMoveClock)

	require.NoError(t, s.Undo(move))
	assert.Equal(t, board.Infantry, s.At(from).Role)
	assert.True(t, s.At(to).IsZero())
	assert.Equal(t, board.Red, s.Turn)
	assert.Equal(t, 0, s.HalfMoveClock)
}

func TestExecuteCaptureResetsHalfMoveClockAndUndo(t *testing.T) {
	s := board.NewEmptyState()
	from := board.NewSquare(5, 5)
	to := board.NewSquare(5, 6)
	require.NoError(t, s.Put(from, board.Piece{Role: board.Tank, Color: board.Red}))
	require.NoError(t, s.Put(to, board.Piece{Role: board.Infantry, Color: board.Blue}))
	s.HalfMoveClock = 7

	move := &board.Move{Kind: board.Capture, From: from, To: to, Role: board.Tank}
	require.NoError(t, s.Execute(move))

	assert.Equal(t, board.Tank, s.At(to).Role)
	assert.Equal(t, board.Infantry, move.Captured.Role)
	assert.Equal(t, 0, s.HalfMoveClock)

	require.NoError(t, s.Undo(move))
	assert.Equal(t, board.Tank, s.At(from).Role)
	assert.Equal(t, board.Infantry, s.At(to).Role)
	assert.Equal(t, 7, s.HalfMoveClock)
}

func TestExecuteStayCaptureLeavesMoverInPlace(t *testing.T) {
	s := board.NewEmptyState()
	from := board.NewSquare(5, 5)
	to := board.NewSquare(5, 7)
	require.NoError(t, s.Put(from, board.Piece{Role: board.Artillery, Color: board.Red}))
	require.NoError(t, s.Put(to, board.Piece{Role: board.Infantry, Color: board.Blue}))

	move := &board.Move{Kind: board.StayCapture, From: from, To: to, Role: board.Artillery}
	require.NoError(t, s.Execute(move))

	assert.Equal(t, board.Artillery, s.At(from).Role)
	assert.True(t, s.At(to).IsZero())

	require.NoError(t, s.Undo(move))
	assert.Equal(t, board.Artillery, s.At(from).Role)
	assert.Equal(t, board.Infantry, s.At(to).Role)
}

func TestExecuteSuicideCaptureRemovesBoth(t *testing.T) {
	s := board.NewEmptyState()
	from := board.NewSquare(5, 5)
	to := board.NewSquare(5, 6)
	require.NoError(t, s.Put(from, board.Piece{Role: board.Infantry, Color: board.Red}))
	require.NoError(t, s.Put(to, board.Piece{Role: board.Infantry, Color: board.Blue}))

	move := &board.Move{Kind: board.SuicideCapture, From: from, To: to, Role: board.Infantry}
	require.NoError(t, s.Execute(move))
	assert.True(t, s.At(from).IsZero())
	assert.True(t, s.At(to).IsZero())

	require.NoError(t, s.Undo(move))
	assert.Equal(t, board.Red, s.At(from).Color)
	assert.Equal(t, board.Blue, s.At(to).Color)
}

func TestExecuteCombinationMergesStacks(t *testing.T) {
	s := board.NewEmptyState()
	from := board.NewSquare(2, 5)
	to := board.NewSquare(2, 6)
	require.NoError(t, s.Put(from, board.Piece{Role: board.Tank, Color: board.Red}))
	require.NoError(t, s.Put(to, board.Piece{Role: board.Navy, Color: board.Red}))

	move := &board.Move{Kind: board.Combination, From: from, To: to, Role: board.Tank}
	require.NoError(t, s.Execute(move))

	assert.Equal(t, board.Navy, s.At(to).Role)
	assert.Len(t, s.At(to).Carrying, 1)
	assert.True(t, s.At(from).IsZero())

	require.NoError(t, s.Undo(move))
	assert.Equal(t, board.Tank, s.At(from).Role)
	assert.Equal(t, board.Navy, s.At(to).Role)
	assert.Empty(t, s.At(to).Carrying)
}

func TestExecuteTriggersHeroicPromotionAndUndoReverts(t *testing.T) {
	s := board.NewEmptyState()
	commander := board.NewSquare(5, 0)
	require.NoError(t, s.Put(commander, board.Piece{Role: board.Commander, Color: board.Blue}))

	from := board.NewSquare(5, 2)
	to := board.NewSquare(5, 1)
	require.NoError(t, s.Put(from, board.Piece{Role: board.Infantry, Color: board.Red}))

	move := &board.Move{Kind: board.Normal, From: from, To: to, Role: board.Infantry}
	require.NoError(t, s.Execute(move))

	assert.True(t, s.At(to).Heroic)
	assert.True(t, move.PromotedHeroic)

	require.NoError(t, s.Undo(move))
	assert.False(t, s.At(from).Heroic)
}

func TestExecuteDeployStepStartsSessionAndCommitFlipsTurn(t *testing.T) {
	s := board.NewEmptyState()
	stackSq := board.NewSquare(2, 5)
	require.NoError(t, s.Put(stackSq, board.Piece{
		Role:  board.Navy,
		Color: board.Red,
		Carrying: []board.Piece{
			{Role: board.Tank, Color: board.Red},
		},
	}))

	dest := board.NewSquare(3, 5)
	move := &board.Move{Kind: board.DeployStepKind, From: stackSq, To: dest, Role: board.Tank}
	require.NoError(t, s.Execute(move))
	require.NotNil(t, s.Deploy)

	require.NoError(t, s.CommitDeploy())
	assert.Equal(t, board.Blue, s.Turn)
	assert.Equal(t, board.Tank, s.At(dest).Role)
	assert.Equal(t, board.Navy, s.At(stackSq).Role)
}
