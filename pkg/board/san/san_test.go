package san_test

import (
	"errors"
	"testing"

	"github.com/cotulenh-dev/cotulenh-engine/pkg/board"
	"github.com/cotulenh-dev/cotulenh-engine/pkg/board/san"
	"github.com/cotulenh-dev/cotulenh-engine/pkg/errs"
	"github.com/cotulenh-dev/cotulenh-engine/pkg/movegen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateQuietMove(t *testing.T) {
	s := board.NewEmptyState()
	from := board.NewSquare(2, 9)
	to := board.NewSquare(2, 8)
	require.NoError(t, s.Put(from, board.Piece{Role: board.Infantry, Color: board.Red}))
	require.NoError(t, s.Put(board.NewSquare(10, 11), board.Piece{Role: board.Commander, Color: board.Red}))
	require.NoError(t, s.Put(board.NewSquare(9, 0), board.Piece{Role: board.Commander, Color: board.Blue}))

	legal := movegen.LegalMoves(s, board.Red)
	var move board.Move
	for _, m := range legal {
		if m.From == from && m.To == to {
			move = m
		}
	}
	require.Equal(t, board.Infantry, move.Role)

	got, err := san.Generate(s, move, legal)
	require.NoError(t, err)
	assert.Equal(t, "I"+to.String(), got)
}

func TestGenerateAndParseCapture(t *testing.T) {
	s := board.NewEmptyState()
	from := board.NewSquare(5, 5)
	target := board.NewSquare(5, 6)
	require.NoError(t, s.Put(from, board.Piece{Role: board.Tank, Color: board.Red}))
	require.NoError(t, s.Put(target, board.Piece{Role: board.Infantry, Color: board.Blue}))
	require.NoError(t, s.Put(board.NewSquare(10, 11), board.Piece{Role: board.Commander, Color: board.Red}))
	require.NoError(t, s.Put(board.NewSquare(9, 0), board.Piece{Role: board.Commander, Color: board.Blue}))

	legal := movegen.LegalMoves(s, board.Red)
	var move board.Move
	for _, m := range legal {
		if m.Kind == board.Capture && m.From == from && m.To == target {
			move = m
		}
	}
	require.Equal(t, board.Tank, move.Role)

	str, err := san.Generate(s, move, legal)
	require.NoError(t, err)
	assert.Equal(t, "Tx"+target.String(), str)

	parsed, err := san.Parse(s, str, board.Red)
	require.NoError(t, err)
	assert.Equal(t, move.Kind, parsed.Kind)
	assert.Equal(t, move.From, parsed.From)
	assert.Equal(t, move.To, parsed.To)
}

func TestGenerateStayCapture(t *testing.T) {
	s := board.NewEmptyState()
	from := board.NewSquare(5, 6)
	blocker := board.NewSquare(5, 7)
	target := board.NewSquare(5, 8)
	require.NoError(t, s.Put(from, board.Piece{Role: board.Artillery, Color: board.Red}))
	require.NoError(t, s.Put(blocker, board.Piece{Role: board.Infantry, Color: board.Blue}))
	require.NoError(t, s.Put(target, board.Piece{Role: board.Infantry, Color: board.Blue}))
	require.NoError(t, s.Put(board.NewSquare(10, 11), board.Piece{Role: board.Commander, Color: board.Red}))
	require.NoError(t, s.Put(board.NewSquare(9, 0), board.Piece{Role: board.Commander, Color: board.Blue}))

	legal := movegen.LegalMoves(s, board.Red)
	var move board.Move
	for _, m := range legal {
		if m.Kind == board.StayCapture {
			move = m
		}
	}
	require.Equal(t, board.Artillery, move.Role)

	str, err := san.Generate(s, move, legal)
	require.NoError(t, err)
	assert.Equal(t, "A_"+target.String(), str)
}

func TestParseDisambiguatesByFile(t *testing.T) {
	s := board.NewEmptyState()
	a := board.NewSquare(4, 6)
	b := board.NewSquare(6, 6)
	target := board.NewSquare(5, 6)
	require.NoError(t, s.Put(a, board.Piece{Role: board.Infantry, Color: board.Red}))
	require.NoError(t, s.Put(b, board.Piece{Role: board.Infantry, Color: board.Red}))
	require.NoError(t, s.Put(board.NewSquare(10, 11), board.Piece{Role: board.Commander, Color: board.Red}))
	require.NoError(t, s.Put(board.NewSquare(9, 0), board.Piece{Role: board.Commander, Color: board.Blue}))

	legal := movegen.LegalMoves(s, board.Red)
	var moveA, moveB board.Move
	for _, m := range legal {
		if m.To == target && m.From == a {
			moveA = m
		}
		if m.To == target && m.From == b {
			moveB = m
		}
	}
	require.Equal(t, board.Infantry, moveA.Role)
	require.Equal(t, board.Infantry, moveB.Role)

	strA, err := san.Generate(s, moveA, legal)
	require.NoError(t, err)
	strB, err := san.Generate(s, moveB, legal)
	require.NoError(t, err)
	assert.NotEqual(t, strA, strB)

	parsedA, err := san.Parse(s, strA, board.Red)
	require.NoError(t, err)
	assert.Equal(t, a, parsedA.From)

	parsedB, err := san.Parse(s, strB, board.Red)
	require.NoError(t, err)
	assert.Equal(t, b, parsedB.From)
}

func TestParseAmbiguousMove(t *testing.T) {
	s := board.NewEmptyState()
	require.NoError(t, s.Put(board.NewSquare(4, 5), board.Piece{Role: board.Infantry, Color: board.Red}))
	require.NoError(t, s.Put(board.NewSquare(6, 5), board.Piece{Role: board.Infantry, Color: board.Red}))
	require.NoError(t, s.Put(board.NewSquare(10, 11), board.Piece{Role: board.Commander, Color: board.Red}))
	require.NoError(t, s.Put(board.NewSquare(9, 0), board.Piece{Role: board.Commander, Color: board.Blue}))

	_, err := san.Parse(s, "I"+board.NewSquare(5, 5).String(), board.Red)
	require.Error(t, err)
	var amb *errs.AmbiguousMove
	assert.True(t, errors.As(err, &amb))
}
