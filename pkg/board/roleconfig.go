package board

// RoleConfig describes one role's generic movement capability: how far it
// can move/capture, whether it may step diagonally, and whether its
// capture or move path ignores intervening pieces. Commander, Headquarter
// and Militia have rules too irregular for this shared table (see
// IsSpecialRole below) and are handled separately by both the attacker
// query and move generation.
type RoleConfig struct {
	MoveRange              int
	CaptureRange           int
	CanMoveDiagonal        bool
	CaptureIgnoresBlocking bool // Artillery, Missile, Navy "shoot over" blockers
	MoveIgnoresBlocking    bool // AirForce flies over blockers
}

// roleConfigs holds the base (non-heroic) config for every role that uses
// the generic sliding-piece model.
var roleConfigs = map[PieceRole]RoleConfig{
	Infantry:    {MoveRange: 1, CaptureRange: 1},
	Tank:        {MoveRange: 2, CaptureRange: 2},
	Engineer:    {MoveRange: 1, CaptureRange: 1},
	Artillery:   {MoveRange: 3, CaptureRange: 3, CaptureIgnoresBlocking: true},
	AntiAir:     {MoveRange: 1, CaptureRange: 1},
	Missile:     {MoveRange: 2, CaptureRange: 2, CaptureIgnoresBlocking: true},
	AirForce:    {MoveRange: 4, CaptureRange: 4, MoveIgnoresBlocking: true},
	Navy:        {MoveRange: 4, CaptureRange: 4, CaptureIgnoresBlocking: true},
}

// Config returns the effective config for role, with heroic range bonus
// (+1) and diagonal capability applied. Commander, Headquarter and
// Militia are not in roleConfigs and return the zero value with ok=false:
// callers must special-case them.
func Config(role PieceRole, heroic bool) (RoleConfig, bool) {
	c, ok := roleConfigs[role]
	if !ok {
		return RoleConfig{}, false
	}
	if heroic {
		c.MoveRange++
		c.CaptureRange++
		c.CanMoveDiagonal = true
	}
	return c, true
}

// IsSpecialRole reports whether role uses bespoke movement rules
// (Commander, Headquarter, Militia) rather than the generic RoleConfig
// table.
func IsSpecialRole(role PieceRole) bool {
	switch role {
	case Commander, Headquarter, Militia:
		return true
	default:
		return false
	}
}

// AirDefenseRadius returns the base (non-heroic) circular air-defense
// radius contributed by role, or 0 for roles that do not defend airspace.
func AirDefenseRadius(role PieceRole) int {
	switch role {
	case Navy, AntiAir:
		return 1
	case Missile:
		return 2
	default:
		return 0
	}
}

// EffectiveAirDefenseRadius applies the heroic bonus: +1, capped at 3.
// A base radius of 0 (non-defending roles) stays 0 even when heroic.
func EffectiveAirDefenseRadius(role PieceRole, heroic bool) int {
	r := AirDefenseRadius(role)
	if r == 0 {
		return 0
	}
	if heroic {
		r++
		if r > 3 {
			r = 3
		}
	}
	return r
}
