package board

import "strings"

// PieceRole identifies a kind of piece, independent of color.
type PieceRole uint8

const (
	NoRole PieceRole = iota
	Commander
	Infantry
	Tank
	Militia
	Engineer
	Artillery
	AntiAir
	Missile
	AirForce
	Navy
	Headquarter
)

const NumRoles = 11

// AllRoles enumerates every playable role in a stable order, convenient for
// table-driven iteration (move generation config, blueprint schemas, tests).
var AllRoles = []PieceRole{
	Commander, Infantry, Tank, Militia, Engineer,
	Artillery, AntiAir, Missile, AirForce, Navy, Headquarter,
}

// ParseRole parses a single role letter, case-insensitive.
func ParseRole(r rune) (PieceRole, bool) {
	switch r {
	case 'c', 'C':
		return Commander, true
	case 'i', 'I':
		return Infantry, true
	case 't', 'T':
		return Tank, true
	case 'm', 'M':
		return Militia, true
	case 'e', 'E':
		return Engineer, true
	case 'a', 'A':
		return Artillery, true
	case 'g', 'G':
		return AntiAir, true
	case 's', 'S':
		return Missile, true
	case 'f', 'F':
		return AirForce, true
	case 'n', 'N':
		return Navy, true
	case 'h', 'H':
		return Headquarter, true
	default:
		return NoRole, false
	}
}

func (p PieceRole) letter() string {
	switch p {
	case Commander:
		return "c"
	case Infantry:
		return "i"
	case Tank:
		return "t"
	case Militia:
		return "m"
	case Engineer:
		return "e"
	case Artillery:
		return "a"
	case AntiAir:
		return "g"
	case Missile:
		return "s"
	case AirForce:
		return "f"
	case Navy:
		return "n"
	case Headquarter:
		return "h"
	default:
		return "?"
	}
}

// String returns the lowercase (Blue-style) role letter.
func (p PieceRole) String() string {
	return p.letter()
}

// IsHeavy reports whether the role is one of the river-crossing-restricted
// heavy pieces: Artillery, Missile, AntiAir, Navy.
func (p PieceRole) IsHeavy() bool {
	switch p {
	case Artillery, Missile, AntiAir, Navy:
		return true
	default:
		return false
	}
}

// Piece is a board occupant: a single carrier, optionally carrying a bounded
// ordered stack of same-color pieces that cannot themselves carry further
// (they are flattened before re-stacking, per the combination rules).
type Piece struct {
	Role     PieceRole
	Color    Color
	Heroic   bool
	Carrying []Piece
}

// Letter returns the FEN piece letter: uppercase for Red, lowercase for
// Blue, without the heroic '+' prefix.
func (p Piece) Letter() string {
	if p.Color == Red {
		return strings.ToUpper(p.Role.letter())
	}
	return p.Role.letter()
}

// IsStack reports whether the piece is carrying at least one other piece.
func (p Piece) IsStack() bool {
	return len(p.Carrying) > 0
}

// IsZero reports whether this is the absence-of-piece sentinel value.
func (p Piece) IsZero() bool {
	return p.Role == NoRole
}

func (p Piece) String() string {
	if !p.IsStack() {
		return p.letterWithHeroic()
	}
	var sb strings.Builder
	sb.WriteString("(")
	sb.WriteString(p.letterWithHeroic())
	for _, c := range p.Carrying {
		sb.WriteString(c.letterWithHeroic())
	}
	sb.WriteString(")")
	return sb.String()
}

func (p Piece) letterWithHeroic() string {
	if p.Heroic {
		return "+" + p.Letter()
	}
	return p.Letter()
}
