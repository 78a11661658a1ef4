package board_test

import (
	"testing"

	"github.com/cotulenh-dev/cotulenh-engine/pkg/board"
	"github.com/stretchr/testify/assert"
)

func TestBitboardSetClear(t *testing.T) {
	var bb board.Bitboard
	sq := board.NewSquare(3, 4)

	assert.False(t, bb.IsSet(sq))
	bb = bb.Set(sq)
	assert.True(t, bb.IsSet(sq))
	assert.Equal(t, 1, bb.PopCount())

	bb = bb.Clear(sq)
	assert.False(t, bb.IsSet(sq))
	assert.True(t, bb.IsEmpty())
}

func TestBitboardBooleanOps(t *testing.T) {
	a := board.EmptyBitboard.Set(board.NewSquare(0, 0)).Set(board.NewSquare(1, 1))
	b := board.EmptyBitboard.Set(board.NewSquare(1, 1)).Set(board.NewSquare(2, 2))

	and := a.And(b)
	assert.Equal(t, 1, and.PopCount())
	assert.True(t, and.IsSet(board.NewSquare(1, 1)))

	or := a.Or(b)
	assert.Equal(t, 3, or.PopCount())

	andNot := a.AndNot(b)
	assert.Equal(t, 1, andNot.PopCount())
	assert.True(t, andNot.IsSet(board.NewSquare(0, 0)))
}

func TestCircleZoneRadius1(t *testing.T) {
	center := board.NewSquare(5, 5)
	zone := board.CircleZone(5, 5, 1)

	assert.True(t, zone.IsSet(center))
	assert.True(t, zone.IsSet(board.NewSquare(5, 6)))
	assert.True(t, zone.IsSet(board.NewSquare(6, 6)))
	assert.False(t, zone.IsSet(board.NewSquare(5, 7)))
}

func TestCircleZoneClipsToBoard(t *testing.T) {
	zone := board.CircleZone(0, 0, 2)
	assert.True(t, zone.IsSet(board.NewSquare(0, 0)))
	assert.True(t, zone.IsSet(board.NewSquare(1, 1)))
	for _, sq := range zone.Positions() {
		assert.True(t, sq.IsValid())
	}
}

func TestCircleZoneOutOfRangeRadius(t *testing.T) {
	assert.True(t, board.CircleZone(5, 5, 0).IsEmpty())
	assert.True(t, board.CircleZone(5, 5, 4).IsEmpty())
}
