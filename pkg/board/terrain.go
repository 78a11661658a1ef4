package board

// Terrain holds the immutable, precomputed geometry masks that move
// generation consults for every role: which squares are land, water,
// "mixed" (valid for both), and which squares form river-crossing bridges
// for heavy pieces (Artillery, Missile, AntiAir, Navy).
//
// The exact terrain layout is domain knowledge external to this module
// (see DESIGN.md's Open Question note); DefaultTerrain encodes the
// conventional CoTuLenh board: files a-b are open water, file c is mixed
// coast, and a horizontal river separates the two halves of the board with
// two bridges (files c and h) that heavy pieces may use to cross.
type Terrain struct {
	Land   Bitboard
	Navy   Bitboard
	Mixed  Bitboard
	Bridge Bitboard
}

// riverLowRank/riverHighRank are the internal ranks immediately bordering
// the river (visual ranks 6 and 7).
const (
	riverHighRank = NumRanks/2 - 1 // visual rank 7 side
	riverLowRank  = NumRanks / 2   // visual rank 6 side
)

var bridgeFiles = []int{2, 7}

// DefaultTerrain is the terrain schema used unless a host overrides it.
var DefaultTerrain = buildDefaultTerrain()

func buildDefaultTerrain() Terrain {
	var t Terrain
	for rank := 0; rank < NumRanks; rank++ {
		for file := 0; file < NumFiles; file++ {
			sq := NewSquare(file, rank)
			switch {
			case file <= 1:
				t.Navy = t.Navy.Set(sq)
			case file == 2:
				t.Mixed = t.Mixed.Set(sq)
				t.Navy = t.Navy.Set(sq)
				t.Land = t.Land.Set(sq)
			default:
				t.Land = t.Land.Set(sq)
			}
		}
	}
	for _, f := range bridgeFiles {
		t.Bridge = t.Bridge.Set(NewSquare(f, riverLowRank))
		t.Bridge = t.Bridge.Set(NewSquare(f, riverHighRank))
	}
	return t
}

// IsLand reports whether land-based roles may stand on sq.
func (t Terrain) IsLand(sq Square) bool {
	return t.Land.IsSet(sq)
}

// IsNavigable reports whether Navy may stand on sq (water or mixed coast).
func (t Terrain) IsNavigable(sq Square) bool {
	return t.Navy.IsSet(sq)
}

// CanOccupy reports whether the given role may rest on sq at all, ignoring
// river-crossing rules (which constrain transit, not final rest for most
// roles, except that a heavy piece must still end its move on a
// terrain-compatible square).
func (t Terrain) CanOccupy(role PieceRole, sq Square) bool {
	if role == Navy {
		return t.IsNavigable(sq)
	}
	return t.IsLand(sq)
}

// IsRiverCrossing reports whether a single orthogonal step from `from` to
// an adjacent `to` crosses the river, i.e. steps from riverHighRank to
// riverLowRank or vice versa.
func (t Terrain) IsRiverCrossing(from, to Square) bool {
	fr, tr := from.Rank(), to.Rank()
	return (fr == riverHighRank && tr == riverLowRank) || (fr == riverLowRank && tr == riverHighRank)
}

// IsBridge reports whether sq is a bridge square, allowing heavy pieces to
// cross the river there.
func (t Terrain) IsBridge(sq Square) bool {
	return t.Bridge.IsSet(sq)
}
