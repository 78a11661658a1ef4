// Package san renders and parses CoTuLenh's SAN-like move notation
// (spec.md §4.11/§6): [pieceLetter][disambig][sep][targetSquare][combine?]
// [heroic?][check|mate?]. It depends on pkg/movegen to resolve
// disambiguators and to decide check/mate suffixes against the real legal
// move list, since neither is a property of a Move value in isolation.
package san

import (
	"strings"

	"github.com/cotulenh-dev/cotulenh-engine/pkg/board"
	"github.com/cotulenh-dev/cotulenh-engine/pkg/errs"
	"github.com/cotulenh-dev/cotulenh-engine/pkg/movegen"
)

func separatorFor(kind board.MoveKind) byte {
	switch kind {
	case board.DeployStepKind:
		return '>'
	case board.StayCapture:
		return '_'
	case board.Capture:
		return 'x'
	case board.SuicideCapture:
		return '@'
	case board.Combination:
		return '&'
	default:
		return 0
	}
}

func kindForSeparator(b byte) (board.MoveKind, bool) {
	switch b {
	case '>':
		return board.DeployStepKind, true
	case '_':
		return board.StayCapture, true
	case 'x':
		return board.Capture, true
	case '@':
		return board.SuicideCapture, true
	case '&':
		return board.Combination, true
	default:
		return board.Normal, false
	}
}

// moverColor returns the color to move right now, honoring an active
// deploy session (which may differ from s.Turn mid-session only in the
// sense that it's pinned to the color that opened the session, same value
// in practice since the turn doesn't flip until Commit).
func moverColor(s *board.GameState) board.Color {
	if s.Deploy != nil {
		return s.Deploy.Turn
	}
	return s.Turn
}

// Generate renders move as SAN, given the state move is about to be (or
// was just) applied from. legal is the full legal-move list for the mover
// at the pre-move state, used to compute the minimal disambiguator.
func Generate(s *board.GameState, move board.Move, legal []board.Move) (string, error) {
	color := moverColor(s)
	letter := board.Piece{Role: move.Role, Color: color}.Letter()

	disambig := minimalDisambiguator(legal, move)

	var sb strings.Builder
	sb.WriteString(letter)
	sb.WriteString(disambig)
	if sep := separatorFor(move.Kind); sep != 0 {
		sb.WriteByte(sep)
	}
	sb.WriteString(move.To.String())

	mv := move
	if err := s.Execute(&mv); err != nil {
		return "", err
	}
	defer func() { _ = s.Undo(&mv) }()

	if mv.Kind == board.Combination {
		sb.WriteString(s.At(mv.To).String())
	}
	if mv.PromotedHeroic {
		sb.WriteString("+")
	}

	enemy := color.Opponent()
	enemySq := s.Commander[enemy]
	if enemySq.IsValid() && s.IsAttacked(enemySq, color) {
		if len(movegen.LegalMoves(s, enemy)) == 0 {
			sb.WriteString("#")
		} else {
			sb.WriteString("^")
		}
	}

	return sb.String(), nil
}

// minimalDisambiguator returns the shortest prefix (none, file, rank, or
// both) of move.From that, combined with move.Role and move.To, uniquely
// identifies move among legal. Full-square disambiguation (both file and
// rank) is only needed when three or more same-role candidates share a
// target and neither file alone nor rank alone separates move from every
// other candidate.
func minimalDisambiguator(legal []board.Move, move board.Move) string {
	var rivals []board.Move
	for _, m := range legal {
		if m.Role == move.Role && m.To == move.To && m.Kind == move.Kind && m.From != move.From {
			rivals = append(rivals, m)
		}
	}
	if len(rivals) == 0 {
		return ""
	}

	file := move.From.File()
	rank := move.From.Rank()

	fileUnique := true
	rankUnique := true
	for _, r := range rivals {
		if r.From.File() == file {
			fileUnique = false
		}
		if r.From.Rank() == rank {
			rankUnique = false
		}
	}
	switch {
	case fileUnique:
		return string(rune('a' + file))
	case rankUnique:
		return move.From.String()[1:] // visual rank digits only
	default:
		return move.From.String()
	}
}

// Parse resolves a SAN string against the legal moves available to color
// in s, returning errs.IllegalMove if no legal move matches or
// errs.AmbiguousMove if more than one does.
func Parse(s *board.GameState, sanStr string, color board.Color) (board.Move, error) {
	str := strings.TrimSuffix(strings.TrimSuffix(sanStr, "#"), "^")
	str = strings.TrimSuffix(str, "+")
	if idx := strings.IndexByte(str, '('); idx >= 0 {
		str = str[:idx]
	}
	if len(str) == 0 {
		return board.Move{}, &errs.IllegalMove{Reason: "empty move string"}
	}

	role, ok := board.ParseRole(rune(str[0]))
	if !ok {
		return board.Move{}, &errs.IllegalMove{Reason: "invalid piece letter in '" + sanStr + "'"}
	}
	letterColor := board.Blue
	if str[0] >= 'A' && str[0] <= 'Z' {
		letterColor = board.Red
	}
	if letterColor != color {
		return board.Move{}, &errs.IllegalMove{Reason: "piece letter color does not match the side to move in '" + sanStr + "'"}
	}
	rest := str[1:]

	var kind board.MoveKind
	var hasSep bool
	var disambig, targetStr string
	sepIdx := strings.IndexAny(rest, ">_x@&")
	if sepIdx >= 0 {
		kind, hasSep = kindForSeparator(rest[sepIdx])
		disambig = rest[:sepIdx]
		targetStr = rest[sepIdx+1:]
	} else {
		kind = board.Normal
	}

	legal := movegen.LegalMoves(s, color)

	var candidates []board.Move
	if hasSep {
		to, ok := board.ParseSquare(targetStr)
		if !ok {
			return board.Move{}, &errs.IllegalMove{Reason: "invalid target square in '" + sanStr + "'"}
		}
		candidates = matchCandidates(legal, role, kind, to, disambig)
	} else {
		// No separator: try both possible target-square lengths (2 chars
		// for a single-digit rank, 3 for a double-digit rank 10-12) and
		// keep whichever split actually resolves against the legal list.
		for _, cut := range []int{2, 3} {
			if cut > len(rest) {
				continue
			}
			targetStr = rest[len(rest)-cut:]
			disambig = rest[:len(rest)-cut]
			to, ok := board.ParseSquare(targetStr)
			if !ok {
				continue
			}
			if found := matchCandidates(legal, role, board.Normal, to, disambig); len(found) > 0 {
				candidates = found
				break
			}
		}
	}

	switch len(candidates) {
	case 0:
		return board.Move{}, &errs.IllegalMove{Reason: "no legal move matches '" + sanStr + "'"}
	case 1:
		return candidates[0], nil
	default:
		var names []string
		for _, c := range candidates {
			names = append(names, c.String())
		}
		return board.Move{}, &errs.AmbiguousMove{Candidates: names}
	}
}

func matchCandidates(legal []board.Move, role board.PieceRole, kind board.MoveKind, to board.Square, disambig string) []board.Move {
	var out []board.Move
	for _, m := range legal {
		if m.Role != role || m.To != to || m.Kind != kind {
			continue
		}
		if !disambigMatches(m.From, disambig) {
			continue
		}
		out = append(out, m)
	}
	return out
}

// disambigMatches reports whether from is consistent with a (possibly
// empty) disambiguator string: a bare file letter, bare rank digits, or a
// full square string.
func disambigMatches(from board.Square, disambig string) bool {
	if disambig == "" {
		return true
	}
	if sq, ok := board.ParseSquare(disambig); ok {
		return sq == from
	}
	if f, ok := board.ParseFile(rune(disambig[0])); ok && len(disambig) == 1 {
		return from.File() == f
	}
	// bare rank digits
	want := from.String()[1:]
	return disambig == want
}
