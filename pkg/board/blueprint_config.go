package board

import (
	"encoding/json"
	"fmt"
	"io"
)

// blueprintDoc is the on-disk JSON shape for a Blueprint override. No
// example repo in the retrieval pack pulls in a schema/config library
// (viper, koanf, envconfig); encoding/json is stdlib and sufficient for
// this narrow, infrequently-loaded shape, so it is used directly rather
// than introducing an unneeded dependency.
type blueprintDoc struct {
	Carriers []carrierDoc `json:"carriers"`
}

type carrierDoc struct {
	Role     string     `json:"role"`
	Priority int        `json:"priority"`
	Slots    []slotDoc  `json:"slots"`
}

type slotDoc struct {
	Accepted []string `json:"accepted"`
	MaxCount int      `json:"maxCount"`
}

// LoadBlueprint parses a JSON blueprint document, letting a host
// application supply the authoritative carrier/slot schema instead of
// DefaultBlueprint.
func LoadBlueprint(r io.Reader) (Blueprint, error) {
	var doc blueprintDoc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Blueprint{}, fmt.Errorf("decode blueprint: %w", err)
	}

	bp := Blueprint{Carriers: make(map[PieceRole]CarrierSchema, len(doc.Carriers))}
	for _, c := range doc.Carriers {
		role, ok := ParseRole([]rune(c.Role)[0])
		if !ok {
			return Blueprint{}, fmt.Errorf("unknown carrier role %q", c.Role)
		}
		var slots []Slot
		for _, s := range c.Slots {
			var roles []PieceRole
			for _, rs := range s.Accepted {
				rr, ok := ParseRole([]rune(rs)[0])
				if !ok {
					return Blueprint{}, fmt.Errorf("unknown accepted role %q", rs)
				}
				roles = append(roles, rr)
			}
			slots = append(slots, slot(s.MaxCount, roles...))
		}
		bp.Carriers[role] = CarrierSchema{Role: role, Priority: c.Priority, Slots: slots}
	}
	return bp, nil
}
