package turn

import "github.com/talgya/hexfront/internal/world"

// Civilization is a player or AI nation holding territory and units.
type Civilization struct {
	ID      world.CivID    `json:"id"`
	Name    string         `json:"name"`
	Capital world.HexCoord `json:"capital"`
	Player  bool           `json:"player"` // Controlled by the local user

	// Wars with other civilizations (civ ID → at war).
	War map[world.CivID]bool `json:"war"`
}

// NewCivilization creates a civilization at peace with everyone.
func NewCivilization(id world.CivID, name string, capital world.HexCoord) *Civilization {
	return &Civilization{
		ID:      id,
		Name:    name,
		Capital: capital,
		War:     make(map[world.CivID]bool),
	}
}

// DeclareWar puts a and b at war with each other.
func DeclareWar(a, b *Civilization) {
	a.War[b.ID] = true
	b.War[a.ID] = true
}

// UnitKind is a template for creating units.
type UnitKind struct {
	Name     string
	Movement int // Whole movement points per turn
}

// Starting units granted to every civilization, in placement order.
var StartingUnits = []UnitKind{
	{Name: "Settler", Movement: 2},
	{Name: "Warrior", Movement: 2},
	{Name: "Scout", Movement: 3},
}
