// Package fen reads and writes CoTuLenh positions in FEN notation
// (spec.md §6). The grammar differs from chess FEN in board shape (11x12),
// piece alphabet (11 roles), stacks (parenthesized, carrier first), a
// heroic '+' prefix, and an optional deploy-session suffix.
package fen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cotulenh-dev/cotulenh-engine/pkg/board"
	"github.com/cotulenh-dev/cotulenh-engine/pkg/errs"
)

// Initial is the starting position FEN (spec.md §6).
const Initial = "6c4/1n2fh1hf2/3a2s2a1/2n1gt1tg2/2ie2m2ei/11/11/2IE2M2EI/2N1GT1TG2/3A2S2A1/1N2FH1HF2/6C4 r - - 0 1"

// Empty is the empty-board FEN (spec.md §6).
const Empty = "11/11/11/11/11/11/11/11/11/11/11/11 r - - 0 1"

// Decode parses a FEN string into a new GameState. Deploy-suffix fields (if
// present) reconstruct an active DeploySession on the returned state.
func Decode(fenStr string) (*board.GameState, error) {
	fields := strings.SplitN(strings.TrimSpace(fenStr), " ", 7)
	if len(fields) < 6 {
		return nil, &errs.InvalidFEN{Reason: "expected at least 6 space-separated fields", Location: "whole"}
	}

	s := board.NewEmptyState()

	if err := decodeBoard(s, fields[0]); err != nil {
		return nil, err
	}

	turn, ok := board.ParseColor(fields[1])
	if !ok {
		return nil, &errs.InvalidFEN{Reason: "invalid turn '" + fields[1] + "'", Location: "turn"}
	}
	s.Turn = turn

	if fields[2] != "-" || fields[3] != "-" {
		return nil, &errs.InvalidFEN{Reason: "reserved fields must both be '-'", Location: "reserved"}
	}

	half, err := strconv.Atoi(fields[4])
	if err != nil || half < 0 {
		return nil, &errs.InvalidFEN{Reason: "invalid halfmove clock '" + fields[4] + "'", Location: "halfmoves"}
	}
	s.HalfMoveClock = half

	full, err := strconv.Atoi(fields[5])
	if err != nil || full <= 0 {
		return nil, &errs.InvalidFEN{Reason: "invalid fullmove number '" + fields[5] + "'", Location: "fullmove"}
	}
	s.FullMoveNumber = full

	if len(fields) == 7 && fields[6] != "" {
		if err := decodeDeploySuffix(s, fields[6]); err != nil {
			return nil, err
		}
	}

	if err := s.Validate(); err != nil {
		return nil, &errs.InvalidFEN{Reason: err.Error(), Location: "board"}
	}
	return s, nil
}

// decodeBoard parses the Board field: 12 ranks top-to-bottom (visual rank
// 12 first), each a left-to-right run of Empty/Piece/Stack tokens.
func decodeBoard(s *board.GameState, field string) error {
	ranks := strings.Split(field, "/")
	if len(ranks) != board.NumRanks {
		return &errs.InvalidFEN{Reason: fmt.Sprintf("expected %d ranks, got %d", board.NumRanks, len(ranks)), Location: "board"}
	}

	for rank, rankStr := range ranks {
		file := 0
		runes := []rune(rankStr)
		for i := 0; i < len(runes); i++ {
			r := runes[i]
			switch {
			case r >= '1' && r <= '9':
				n, rest := readInt(runes, i)
				file += n
				i = rest - 1

			case r == '(':
				end := strings.IndexRune(string(runes[i:]), ')')
				if end < 0 {
					return &errs.InvalidFEN{Reason: "unterminated stack", Location: "board"}
				}
				inner := runes[i+1 : i+end]
				stack, err := decodeStack(inner)
				if err != nil {
					return err
				}
				if file >= board.NumFiles {
					return &errs.InvalidFEN{Reason: "rank overflows board width", Location: "board"}
				}
				sq := board.NewSquare(file, rank)
				if err := s.Put(sq, stack); err != nil {
					return &errs.InvalidFEN{Reason: err.Error(), Location: "board"}
				}
				file++
				i += end

			case r == '+' || isRoleLetter(r):
				piece, consumed, err := decodePiece(runes[i:])
				if err != nil {
					return err
				}
				if file >= board.NumFiles {
					return &errs.InvalidFEN{Reason: "rank overflows board width", Location: "board"}
				}
				sq := board.NewSquare(file, rank)
				if err := s.Put(sq, piece); err != nil {
					return &errs.InvalidFEN{Reason: err.Error(), Location: "board"}
				}
				file++
				i += consumed - 1

			default:
				return &errs.InvalidFEN{Reason: fmt.Sprintf("unexpected character '%c'", r), Location: "board"}
			}
		}
		if file != board.NumFiles {
			return &errs.InvalidFEN{Reason: fmt.Sprintf("rank %d has width %d, want %d", rank, file, board.NumFiles), Location: "board"}
		}
	}
	return nil
}

// decodeStack parses the inner run of a '(' ... ')' token: carrier first,
// then carried pieces, each possibly heroic-prefixed.
func decodeStack(runes []rune) (board.Piece, error) {
	var pieces []board.Piece
	for i := 0; i < len(runes); {
		p, consumed, err := decodePiece(runes[i:])
		if err != nil {
			return board.Piece{}, err
		}
		pieces = append(pieces, p)
		i += consumed
	}
	if len(pieces) < 2 {
		return board.Piece{}, &errs.InvalidFEN{Reason: "stack must contain at least two pieces", Location: "board"}
	}
	color := pieces[0].Color
	for _, p := range pieces {
		if p.Color != color {
			return board.Piece{}, &errs.InvalidFEN{Reason: "stack mixes colors", Location: "board"}
		}
	}
	carrier := pieces[0]
	carrier.Carrying = append([]board.Piece{}, pieces[1:]...)
	return carrier, nil
}

// decodePiece reads a single optionally-heroic piece letter from the front
// of runes and returns it along with how many runes were consumed.
func decodePiece(runes []rune) (board.Piece, int, error) {
	i := 0
	heroic := false
	if i < len(runes) && runes[i] == '+' {
		heroic = true
		i++
	}
	if i >= len(runes) {
		return board.Piece{}, 0, &errs.InvalidFEN{Reason: "dangling heroic marker", Location: "board"}
	}
	role, ok := board.ParseRole(runes[i])
	if !ok {
		return board.Piece{}, 0, &errs.InvalidFEN{Reason: fmt.Sprintf("invalid piece letter '%c'", runes[i]), Location: "board"}
	}
	color := board.Blue
	if runes[i] >= 'A' && runes[i] <= 'Z' {
		color = board.Red
	}
	i++
	return board.Piece{Role: role, Color: color, Heroic: heroic}, i, nil
}

func isRoleLetter(r rune) bool {
	_, ok := board.ParseRole(r)
	return ok
}

func readInt(runes []rune, start int) (int, int) {
	n := 0
	i := start
	for i < len(runes) && runes[i] >= '0' && runes[i] <= '9' {
		n = n*10 + int(runes[i]-'0')
		i++
	}
	return n, i
}

// decodeDeploySuffix parses 'D:' Square '[' DeployList ']' ('/' StayList)?
// and reconstructs the equivalent active DeploySession on s. DeployList is
// a comma-separated run of placements (piece-letter + destination square,
// e.g. "Tf7"); StayList is a comma-separated run of bare piece letters
// still sitting on stackSquare.
func decodeDeploySuffix(s *board.GameState, field string) error {
	if !strings.HasPrefix(field, "D:") {
		return &errs.InvalidFEN{Reason: "deploy suffix must start with 'D:'", Location: "deploy"}
	}
	rest := field[2:]

	open := strings.IndexRune(rest, '[')
	if open < 0 {
		return &errs.InvalidFEN{Reason: "deploy suffix missing '['", Location: "deploy"}
	}
	sqStr := rest[:open]
	stackSq, ok := board.ParseSquare(sqStr)
	if !ok {
		return &errs.InvalidFEN{Reason: "invalid deploy stack square '" + sqStr + "'", Location: "deploy"}
	}

	closeIdx := strings.IndexRune(rest, ']')
	if closeIdx < 0 || closeIdx < open {
		return &errs.InvalidFEN{Reason: "deploy suffix missing ']'", Location: "deploy"}
	}
	deployList := rest[open+1 : closeIdx]

	stayList := ""
	if tail := rest[closeIdx+1:]; tail != "" {
		if !strings.HasPrefix(tail, "/") {
			return &errs.InvalidFEN{Reason: "expected '/' before stay list", Location: "deploy"}
		}
		stayList = tail[1:]
	}

	stack := s.Squares[stackSq]
	if stack.IsZero() {
		return &errs.InvalidFEN{Reason: "no stack at deploy square " + stackSq.String(), Location: "deploy"}
	}
	s.Deploy = board.NewDeploySession(stackSq, s.Turn, stack, s.Stacker)

	if deployList != "" {
		for _, tok := range strings.Split(deployList, ",") {
			piece, consumed, err := decodePiece([]rune(tok))
			if err != nil {
				return err
			}
			toStr := tok[consumed:]
			to, ok := board.ParseSquare(toStr)
			if !ok {
				return &errs.InvalidFEN{Reason: "invalid deploy destination '" + toStr + "'", Location: "deploy"}
			}
			if err := s.Deploy.Step(piece.Role, to, piece.Heroic); err != nil {
				return &errs.InvalidFEN{Reason: err.Error(), Location: "deploy"}
			}
		}
	}

	if stayList != "" {
		for _, tok := range strings.Split(stayList, ",") {
			piece, _, err := decodePiece([]rune(tok))
			if err != nil {
				return err
			}
			if err := s.Deploy.MarkStay(piece.Role); err != nil {
				return &errs.InvalidFEN{Reason: err.Error(), Location: "deploy"}
			}
		}
	}
	return nil
}

// Encode renders s as its canonical FEN, including a deploy suffix while a
// deploy session is active. The board field always reflects the real board
// (pre-deploy stack still at its square, destinations untouched); an active
// session is carried entirely in the 'D:' suffix so that Decode, which
// replays the suffix's steps against that same real board, round-trips
// exactly (execute/undo never touch GameState.Squares until CommitDeploy).
func Encode(s *board.GameState) string {
	var sb strings.Builder

	for rank := 0; rank < board.NumRanks; rank++ {
		blanks := 0
		for file := 0; file < board.NumFiles; file++ {
			sq := board.NewSquare(file, rank)
			p := s.Squares[sq]
			if p.IsZero() {
				blanks++
				continue
			}
			if blanks > 0 {
				sb.WriteString(strconv.Itoa(blanks))
				blanks = 0
			}
			sb.WriteString(p.String())
		}
		if blanks > 0 {
			sb.WriteString(strconv.Itoa(blanks))
		}
		if rank < board.NumRanks-1 {
			sb.WriteString("/")
		}
	}

	fmt.Fprintf(&sb, " %v - - %v %v", s.Turn, s.HalfMoveClock, s.FullMoveNumber)

	if s.Deploy != nil {
		sb.WriteString(" ")
		sb.WriteString(encodeDeploySuffix(s.Deploy))
	}

	return sb.String()
}

// Canonical renders the subset of s's FEN that determines position
// equivalence for repetition detection (spec.md §9): board, turn and the
// deploy suffix, explicitly excluding the half-move clock and full-move
// number, which advance even when the position itself repeats.
func Canonical(s *board.GameState) string {
	full := Encode(s)
	fields := strings.SplitN(full, " ", 7)
	key := fields[0] + " " + fields[1]
	if len(fields) == 7 {
		key += " " + fields[6]
	}
	return key
}

func encodeDeploySuffix(d *board.DeploySession) string {
	var sb strings.Builder
	sb.WriteString("D:")
	sb.WriteString(d.StackSquare.String())
	sb.WriteString("[")
	for i, m := range d.Moved {
		if i > 0 {
			sb.WriteString(",")
		}
		p := board.Piece{Role: m.Role, Color: d.Turn, Heroic: m.Heroic}
		sb.WriteString(p.String())
		sb.WriteString(m.To.String())
	}
	sb.WriteString("]")

	if len(d.Stayed) > 0 {
		sb.WriteString("/")
		first := true
		for _, p := range d.Remaining {
			if !d.Stayed[p.Role] {
				continue
			}
			if !first {
				sb.WriteString(",")
			}
			first = false
			stayPiece := board.Piece{Role: p.Role, Color: d.Turn, Heroic: p.Heroic}
			sb.WriteString(stayPiece.String())
		}
	}
	return sb.String()
}
