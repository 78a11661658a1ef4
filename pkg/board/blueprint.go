package board

// Slot is one carrying capacity of a carrier schema: a set of acceptable
// roles and a maximum occupancy (always 1 in the default schema, but kept
// general since spec.md describes slots as independently configurable).
type Slot struct {
	Accepted map[PieceRole]bool
	MaxCount int
}

func slot(max int, roles ...PieceRole) Slot {
	accepted := make(map[PieceRole]bool, len(roles))
	for _, r := range roles {
		accepted[r] = true
	}
	return Slot{Accepted: accepted, MaxCount: max}
}

func (s Slot) accepts(role PieceRole) bool {
	return s.Accepted[role]
}

// CarrierSchema describes one potential carrier role: its priority (lower
// value wins when multiple candidate carriers are combined) and its
// ordered list of slots.
type CarrierSchema struct {
	Role     PieceRole
	Priority int
	Slots    []Slot
}

// Blueprint is the full combination-rule schema: which roles may carry,
// their relative priority, and their slot capacities. The canonical rule
// set is external domain data (see DESIGN.md); Blueprint makes it a data
// input that callers may override via LoadBlueprint instead of a
// hard-coded rule engine.
type Blueprint struct {
	Carriers map[PieceRole]CarrierSchema
}

// CarrierPriority returns the schema's priority for role and whether role
// is a valid carrier at all. Lower numbers are higher priority.
func (b Blueprint) CarrierPriority(role PieceRole) (int, bool) {
	c, ok := b.Carriers[role]
	if !ok {
		return 0, false
	}
	return c.Priority, true
}

// DefaultBlueprint is the schema used unless a host overrides it via
// LoadBlueprint. Priority order, per spec.md §4.3: Navy > AirForce > Tank >
// Engineer > Headquarter. Exact slot capacities beyond that ordering are
// not given by spec.md; see DESIGN.md's Open Question note for the
// best-faith defaults chosen here.
var DefaultBlueprint = Blueprint{
	Carriers: map[PieceRole]CarrierSchema{
		Navy: {
			Role:     Navy,
			Priority: 0,
			Slots: []Slot{
				slot(1, Tank, AirForce, Infantry, Engineer, Artillery, AntiAir, Missile, Commander, Headquarter),
				slot(1, Tank, AirForce, Infantry, Engineer, Artillery, AntiAir, Missile, Commander, Headquarter),
			},
		},
		AirForce: {
			Role:     AirForce,
			Priority: 1,
			Slots: []Slot{
				slot(1, Tank, Infantry, Engineer, Artillery, AntiAir, Missile, Commander, Headquarter),
			},
		},
		Tank: {
			Role:     Tank,
			Priority: 2,
			Slots: []Slot{
				slot(1, Infantry, Engineer, Commander),
			},
		},
		Engineer: {
			Role:     Engineer,
			Priority: 3,
			Slots: []Slot{
				slot(1, Infantry, Commander),
			},
		},
		Headquarter: {
			Role:     Headquarter,
			Priority: 4,
			Slots: []Slot{
				slot(1, Infantry, Commander),
			},
		},
	},
}
