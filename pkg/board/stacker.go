package board

import "github.com/cotulenh-dev/cotulenh-engine/pkg/errs"

// Stacker implements the piece combination rules (spec.md §4.3) against a
// given Blueprint. The zero value uses DefaultBlueprint.
type Stacker struct {
	Blueprint Blueprint
}

// DefaultStacker combines using DefaultBlueprint.
var DefaultStacker = Stacker{Blueprint: DefaultBlueprint}

// Flatten returns every single piece in p's stack, carrier first,
// depth-first. Carried pieces never carry themselves (it is an invariant
// violation if they do), but Flatten still recurses defensively rather
// than trusting the invariant blindly.
func Flatten(p Piece) []Piece {
	if p.IsZero() {
		return nil
	}
	flat := []Piece{{Role: p.Role, Color: p.Color, Heroic: p.Heroic}}
	for _, c := range p.Carrying {
		flat = append(flat, Flatten(c)...)
	}
	return flat
}

// Combine flattens every input piece and re-forms a single stack: the
// highest-priority candidate carrier (per the Blueprint's priority order)
// becomes the carrier, and every remaining flattened piece is placed into
// the carrier's slots in declared order.
func (s Stacker) Combine(pieces []Piece) (Piece, error) {
	var flat []Piece
	for _, p := range pieces {
		flat = append(flat, Flatten(p)...)
	}
	if len(flat) == 0 {
		return Piece{}, nil
	}
	if len(flat) == 1 {
		return flat[0], nil
	}

	color := flat[0].Color
	for _, p := range flat {
		if p.Color != color {
			return Piece{}, &errs.StackError{Kind: errs.ColorMismatch, Detail: "cannot combine pieces of different colors"}
		}
	}

	carrierIdx := -1
	bestPriority := -1
	for i, p := range flat {
		pr, ok := s.Blueprint.CarrierPriority(p.Role)
		if !ok {
			continue
		}
		if carrierIdx == -1 || pr < bestPriority {
			carrierIdx, bestPriority = i, pr
		}
	}
	if carrierIdx == -1 {
		return Piece{}, &errs.StackError{Kind: errs.CarrierIncompatible, Detail: "no candidate piece can act as a carrier"}
	}

	carrier := flat[carrierIdx]
	schema := s.Blueprint.Carriers[carrier.Role]

	occupied := make([]int, len(schema.Slots))
	var carrying []Piece
	for i, p := range flat {
		if i == carrierIdx {
			continue
		}
		placed := false
		for si, sl := range schema.Slots {
			if occupied[si] >= sl.MaxCount {
				continue
			}
			if !sl.accepts(p.Role) {
				continue
			}
			occupied[si]++
			carrying = append(carrying, p)
			placed = true
			break
		}
		if !placed {
			if _, ok := s.Blueprint.CarrierPriority(p.Role); ok {
				return Piece{}, &errs.StackError{Kind: errs.CarrierIncompatible, Detail: p.Role.String() + " has no accepting slot in " + carrier.Role.String()}
			}
			return Piece{}, &errs.StackError{Kind: errs.SlotFull, Detail: "no free slot accepts " + p.Role.String()}
		}
	}

	carrier.Carrying = carrying
	return carrier, nil
}

// Remove locates target within stack (the carrier itself, or one of its
// carried pieces) and removes that piece alone. When the carrier is
// removed, the pieces it was carrying stay behind and are recombined into
// the remainder. It returns the removed piece (as a lone, non-carrying
// piece) and the recombined remainder, which is the zero Piece if nothing
// is left.
func Remove(stack Piece, target PieceRole) (removed Piece, remainder Piece, ok bool) {
	if stack.IsZero() {
		return Piece{}, Piece{}, false
	}
	if stack.Role == target {
		removed = Piece{Role: stack.Role, Color: stack.Color, Heroic: stack.Heroic}
		if len(stack.Carrying) == 0 {
			return removed, Piece{}, true
		}
		rest, err := DefaultStacker.Combine(stack.Carrying)
		if err != nil {
			// The remaining carried pieces were legal together as carried
			// pieces of the old carrier; if they cannot recombine alone,
			// surface the zero piece and let the caller treat it as a
			// non-recombinable deploy stay-set.
			return removed, Piece{}, true
		}
		return removed, rest, true
	}

	for i, c := range stack.Carrying {
		if c.Role != target {
			continue
		}
		removed = Piece{Role: c.Role, Color: c.Color, Heroic: c.Heroic}
		rest := stack
		rest.Carrying = append(append([]Piece{}, stack.Carrying[:i]...), stack.Carrying[i+1:]...)
		return removed, rest, true
	}
	return Piece{}, Piece{}, false
}
