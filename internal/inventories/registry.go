package inventories

import "fmt"

// Inventory IDs are storage keys: submissions and metrics persist
// them, so the numbering is frozen. New inventories append only.
const (
	BigFiveID          = 0
	CoreSelfID         = 1
	CareerCommitmentID = 2
	AmbiguityID        = 3
	FiroBID            = 4
	ViaID              = 5
)

// Registry is the closed set of inventory types keyed by their stable
// IDs. Built once at startup; construction validates the static
// scoring data (FiroB bucket table, VIA item bank).
type Registry struct {
	ordered []Inventory
}

func NewRegistry() (*Registry, error) {
	firoB, err := NewFiroB()
	if err != nil {
		return nil, fmt.Errorf("build firo-b: %w", err)
	}

	via, err := NewVia()
	if err != nil {
		return nil, fmt.Errorf("build via: %w", err)
	}

	ordered := []Inventory{
		NewBigFive(),
		NewCoreSelf(),
		NewCareerCommitment(),
		NewAmbiguity(),
		firoB,
		via,
	}

	for i, inv := range ordered {
		if inv.ID() != i {
			return nil, fmt.Errorf("inventory %s registered at index %d but declares id %d", inv.Name(), i, inv.ID())
		}
	}

	return &Registry{ordered: ordered}, nil
}

// ByID resolves an inventory by its stable ID.
func (r *Registry) ByID(id int) (Inventory, bool) {
	if id < 0 || id >= len(r.ordered) {
		return nil, false
	}
	return r.ordered[id], true
}

// All returns every registered inventory in ID order.
func (r *Registry) All() []Inventory {
	return r.ordered
}

// Numeric returns the inventories whose metrics aggregate as plain
// numeric series. VIA is excluded: its statistics are signature
// strength tallies, not metric distributions.
func (r *Registry) Numeric() []Inventory {
	numeric := make([]Inventory, 0, len(r.ordered)-1)
	for _, inv := range r.ordered {
		if inv.ID() != ViaID {
			numeric = append(numeric, inv)
		}
	}
	return numeric
}

// Via returns the VIA inventory instance.
func (r *Registry) Via() *Via {
	inv, _ := r.ByID(ViaID)
	return inv.(*Via)
}
