package world

import (
	"errors"
	"fmt"
	"iter"
	"slices"
)

var (
	// ErrInvalidCoordinate is returned for coordinates outside the grid's
	// declared shape, such as those read from a corrupted save.
	ErrInvalidCoordinate = errors.New("coordinate outside map shape")
	// ErrOccupied is returned when a tile already holds a different unit.
	ErrOccupied = errors.New("tile already occupied")
	// ErrNoUnit is returned when a unit operation targets an empty tile.
	ErrNoUnit = errors.New("no unit on tile")
	// ErrNoTile is returned when a mutator targets a coordinate with no tile.
	ErrNoTile = errors.New("no tile at coordinate")
)

// Grid holds every tile on the map, keyed by coordinate. The set of
// coordinates is fixed once generation finishes; only tile contents change.
type Grid struct {
	tiles  map[HexCoord]*Tile
	units  map[UnitID]HexCoord
	Radius int `json:"radius"`
}

// NewGrid creates an empty grid with the given radius.
// A hex grid of radius R may contain hexes where max(|q|, |r|, |s|) <= R.
func NewGrid(radius int) *Grid {
	return &Grid{
		tiles:  make(map[HexCoord]*Tile),
		units:  make(map[UnitID]HexCoord),
		Radius: radius,
	}
}

// NewFilledGrid creates a grid with a tile of the given terrain at every
// coordinate within radius.
func NewFilledGrid(radius int, terrain Terrain) *Grid {
	g := NewGrid(radius)
	for _, c := range Spiral(HexCoord{}, radius) {
		g.Set(NewTile(c, terrain))
	}
	return g
}

// Set places a tile at its coordinate. Used during map generation only.
func (g *Grid) Set(tile *Tile) {
	g.tiles[tile.Coord] = tile
	if tile.Occupant != nil {
		g.units[tile.Occupant.ID] = tile.Coord
	}
}

// Get returns the tile at the given coordinate, or nil if there is none.
func (g *Grid) Get(coord HexCoord) *Tile {
	return g.tiles[coord]
}

// Lookup is Get with shape validation: coordinates outside the declared
// radius return ErrInvalidCoordinate, while holes inside the shape return
// a nil tile and no error.
func (g *Grid) Lookup(coord HexCoord) (*Tile, error) {
	if !g.InBounds(coord) {
		return nil, fmt.Errorf("%w: (%d,%d) radius %d", ErrInvalidCoordinate, coord.Q, coord.R, g.Radius)
	}
	return g.tiles[coord], nil
}

// InBounds returns true if the coordinate is within the map radius.
func (g *Grid) InBounds(coord HexCoord) bool {
	return Distance(coord, HexCoord{}) <= g.Radius
}

// Len returns the total number of tiles in the grid.
func (g *Grid) Len() int {
	return len(g.tiles)
}

// NeighborsOf yields the tiles adjacent to coord that exist in the grid, in
// HexNeighborDirections order.
func (g *Grid) NeighborsOf(coord HexCoord) iter.Seq[*Tile] {
	return func(yield func(*Tile) bool) {
		for _, n := range coord.Neighbors() {
			t := g.tiles[n]
			if t == nil {
				continue
			}
			if !yield(t) {
				return
			}
		}
	}
}

// TilesWithin returns existing tiles within k steps of center, innermost first.
func (g *Grid) TilesWithin(center HexCoord, k int) []*Tile {
	return g.existing(Spiral(center, k))
}

// TilesAt returns existing tiles exactly k steps from center.
func (g *Grid) TilesAt(center HexCoord, k int) []*Tile {
	return g.existing(Ring(center, k))
}

func (g *Grid) existing(coords []HexCoord) []*Tile {
	result := make([]*Tile, 0, len(coords))
	for _, c := range coords {
		if t := g.tiles[c]; t != nil {
			result = append(result, t)
		}
	}
	return result
}

// Coords returns every coordinate in the grid in Less order.
func (g *Grid) Coords() []HexCoord {
	coords := make([]HexCoord, 0, len(g.tiles))
	for c := range g.tiles {
		coords = append(coords, c)
	}
	slices.SortFunc(coords, Compare)
	return coords
}

// Tiles yields every tile in Less order.
func (g *Grid) Tiles() iter.Seq[*Tile] {
	return func(yield func(*Tile) bool) {
		for _, c := range g.Coords() {
			if !yield(g.tiles[c]) {
				return
			}
		}
	}
}

// UnitLocation returns where a unit currently stands.
func (g *Grid) UnitLocation(id UnitID) (HexCoord, bool) {
	c, ok := g.units[id]
	return c, ok
}

// SetOccupant puts u on the tile at coord. If u is already on the map its
// previous tile is cleared in the same step, so a unit never occupies two
// tiles.
func (g *Grid) SetOccupant(coord HexCoord, u *Unit) error {
	t := g.tiles[coord]
	if t == nil {
		return fmt.Errorf("set occupant (%d,%d): %w", coord.Q, coord.R, ErrNoTile)
	}
	if t.Occupant != nil && t.Occupant.ID != u.ID {
		return fmt.Errorf("set occupant (%d,%d): %w", coord.Q, coord.R, ErrOccupied)
	}
	if prev, ok := g.units[u.ID]; ok && prev != coord {
		if pt := g.tiles[prev]; pt != nil {
			pt.Occupant = nil
		}
	}
	t.Occupant = u
	g.units[u.ID] = coord
	return nil
}

// ClearOccupant removes whatever unit stands at coord and returns it.
func (g *Grid) ClearOccupant(coord HexCoord) *Unit {
	t := g.tiles[coord]
	if t == nil || t.Occupant == nil {
		return nil
	}
	u := t.Occupant
	t.Occupant = nil
	delete(g.units, u.ID)
	return u
}

// MoveUnit relocates the unit at from to the empty tile at to.
func (g *Grid) MoveUnit(from, to HexCoord) (*Unit, error) {
	src := g.tiles[from]
	if src == nil || src.Occupant == nil {
		return nil, fmt.Errorf("move from (%d,%d): %w", from.Q, from.R, ErrNoUnit)
	}
	u := src.Occupant
	if err := g.SetOccupant(to, u); err != nil {
		return nil, err
	}
	return u, nil
}

// SetOwner assigns the tile at coord to civ, or clears ownership when civ is nil.
func (g *Grid) SetOwner(coord HexCoord, civ *CivID) {
	t := g.tiles[coord]
	if t == nil {
		return
	}
	if civ == nil {
		t.Owner = nil
		return
	}
	id := *civ
	t.Owner = &id
}

// SetVisible sets the live visibility flag of a tile.
func (g *Grid) SetVisible(coord HexCoord, visible bool) {
	if t := g.tiles[coord]; t != nil {
		t.Visible = visible
	}
}

// SetExplored marks a tile as explored. There is no way to unset it.
func (g *Grid) SetExplored(coord HexCoord) {
	if t := g.tiles[coord]; t != nil {
		t.Explored = true
	}
}

// PlaceUnitNear puts u on the first free, non-water tile within two steps of
// coord, searching inner rings first.
func (g *Grid) PlaceUnitNear(coord HexCoord, u *Unit) (HexCoord, error) {
	for _, t := range g.TilesWithin(coord, 2) {
		if t.Occupant != nil || t.Terrain.IsWater() || t.Terrain == TerrainMountain {
			continue
		}
		if err := g.SetOccupant(t.Coord, u); err != nil {
			return HexCoord{}, err
		}
		return t.Coord, nil
	}
	return HexCoord{}, fmt.Errorf("place %s near (%d,%d): %w", u.Name, coord.Q, coord.R, ErrOccupied)
}

// String returns a summary of the map.
func (g *Grid) String() string {
	return fmt.Sprintf("Grid(radius=%d, tiles=%d, units=%d)", g.Radius, g.Len(), len(g.units))
}
