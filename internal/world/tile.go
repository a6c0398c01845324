package world

import "github.com/google/uuid"

// Terrain types for hex tiles.
type Terrain uint8

const (
	TerrainGrassland Terrain = iota // Open, fertile land
	TerrainPlains                   // Open land, some production
	TerrainDesert                   // Arid flats
	TerrainTundra                   // Frozen flats
	TerrainHill                     // Raised ground, extends sight
	TerrainForest                   // Slow going
	TerrainJungle                   // Slow going
	TerrainMountain                 // Impassable to land units
	TerrainCoast                    // Shallow water
	TerrainOcean                    // Deep water
)

// BaseMoveCost returns the cost to enter a tile of this terrain.
func (t Terrain) BaseMoveCost() Movement {
	switch t {
	case TerrainHill, TerrainForest, TerrainJungle:
		return Points(2)
	case TerrainMountain:
		return Points(3)
	default:
		return Points(1)
	}
}

// Height is used for sight occlusion: 0 flat, 1 hill, 2 mountain.
func (t Terrain) Height() int {
	switch t {
	case TerrainHill:
		return 1
	case TerrainMountain:
		return 2
	default:
		return 0
	}
}

// IsWater reports whether the terrain is coast or ocean.
func (t Terrain) IsWater() bool {
	return t == TerrainCoast || t == TerrainOcean
}

// RoadStatus marks built transport on a tile.
type RoadStatus uint8

const (
	RoadNone RoadStatus = iota
	RoadRoad
	RoadRailroad
)

// CivID identifies a civilization.
type CivID uint64

// Tile is a single hex on the map. Tiles are owned by a Grid; all mutation of
// ownership, occupancy and fog-of-war state goes through Grid methods.
type Tile struct {
	Coord   HexCoord   `json:"coord"`
	Terrain Terrain    `json:"terrain"`
	Road    RoadStatus `json:"road"`

	// Cost to enter this tile, supplied by the terrain/improvement model.
	MoveCost Movement `json:"move_cost"`
	Height   int      `json:"height"`

	Owner      *CivID `json:"owner,omitempty"`
	Occupant   *Unit  `json:"-"`
	CityCenter bool   `json:"city_center"`

	// Fog of war. Explored never goes back to false.
	Explored bool `json:"explored"`
	Visible  bool `json:"visible"`
}

// NewTile creates a tile whose cost and height derive from its terrain.
func NewTile(coord HexCoord, terrain Terrain) *Tile {
	return &Tile{
		Coord:    coord,
		Terrain:  terrain,
		MoveCost: terrain.BaseMoveCost(),
		Height:   terrain.Height(),
	}
}

// OwnedBy reports whether civ owns this tile.
func (t *Tile) OwnedBy(civ CivID) bool {
	return t.Owner != nil && *t.Owner == civ
}

// HasIdleUnit reports whether the tile holds a unit with movement left and no
// standing order.
func (t *Tile) HasIdleUnit() bool {
	return t.Occupant != nil && t.Occupant.Idle()
}

// UnitID uniquely identifies a unit for the lifetime of a game.
type UnitID string

// NewUnitID returns a fresh random unit identifier.
func NewUnitID() UnitID {
	return UnitID(uuid.NewString())
}

// MoveOrder is a standing order to walk toward Dest on later turns.
type MoveOrder struct {
	Dest HexCoord `json:"dest"`
}

// Unit is a movable piece belonging to a civilization.
type Unit struct {
	ID          UnitID     `json:"id"`
	Name        string     `json:"name"`
	Civ         CivID      `json:"civ"`
	Movement    Movement   `json:"movement"`     // Remaining this turn
	MaxMovement Movement   `json:"max_movement"` // Restored at turn start
	Order       *MoveOrder `json:"order,omitempty"`
}

// NewUnit creates a unit at full movement.
func NewUnit(name string, civ CivID, maxMovement Movement) *Unit {
	return &Unit{
		ID:          NewUnitID(),
		Name:        name,
		Civ:         civ,
		Movement:    maxMovement,
		MaxMovement: maxMovement,
	}
}

// Idle reports whether the unit still has movement and nothing queued.
func (u *Unit) Idle() bool {
	return u.Movement > 0 && u.Order == nil
}

// ResetMovement restores the unit's full allowance for a new turn.
func (u *Unit) ResetMovement() {
	u.Movement = u.MaxMovement
}
