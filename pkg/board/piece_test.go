package board_test

import (
	"testing"

	"github.com/cotulenh-dev/cotulenh-engine/pkg/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	r, ok := board.ParseRole('n')
	require.True(t, ok)
	assert.Equal(t, board.Navy, r)

	_, ok = board.ParseRole('x')
	assert.False(t, ok)
}

func TestPieceLetterAndHeroicString(t *testing.T) {
	red := board.Piece{Role: board.Tank, Color: board.Red}
	assert.Equal(t, "T", red.Letter())

	blue := board.Piece{Role: board.Tank, Color: board.Blue, Heroic: true}
	assert.Equal(t, "t", blue.Letter())
	assert.Equal(t, "+t", blue.String())
}

func TestPieceIsStackAndString(t *testing.T) {
	stack := board.Piece{
		Role:  board.Navy,
		Color: board.Red,
		Carrying: []board.Piece{
			{Role: board.Infantry, Color: board.Red},
		},
	}
	assert.True(t, stack.IsStack())
	assert.Equal(t, "(NI)", stack.String())
}

func TestPieceIsZero(t *testing.T) {
	assert.True(t, board.Piece{}.IsZero())
	assert.False(t, board.Piece{Role: board.Commander}.IsZero())
}

func TestIsHeavy(t *testing.T) {
	assert.True(t, board.Artillery.IsHeavy())
	assert.True(t, board.Navy.IsHeavy())
	assert.False(t, board.Infantry.IsHeavy())
}
