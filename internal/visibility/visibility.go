// Package visibility computes which tiles a civilization can currently see
// and applies the result to the grid's fog-of-war flags.
//
// Visibility is recomputed in full on every call rather than diffed, because
// ownership and unit positions can change arbitrarily between calls. Callers
// should recompute once per logical update, not once per tile.
package visibility

import (
	"log/slog"
	"slices"

	"github.com/talgya/hexfront/internal/world"
)

// DefaultUnitRadius is how many steps a unit sees in every direction.
const DefaultUnitRadius = 2

// Config controls how far and how cleanly units see.
type Config struct {
	UnitRadius int
	// HillBonus extends the radius by one for units standing on raised ground.
	HillBonus bool
	// Occlusion hides tiles behind higher ground: a tile in ring i is seen
	// only if a seen neighbor in an inner ring is flat or lower than it.
	Occlusion bool
}

// DefaultConfig returns a plain two-step radius with no terrain effects.
func DefaultConfig() Config {
	return Config{UnitRadius: DefaultUnitRadius}
}

// Set is an immutable set of visible coordinates.
type Set struct {
	coords map[world.HexCoord]struct{}
}

// Contains reports whether c is visible.
func (s Set) Contains(c world.HexCoord) bool {
	_, ok := s.coords[c]
	return ok
}

// Len returns the number of visible tiles.
func (s Set) Len() int {
	return len(s.coords)
}

// Coords returns the visible coordinates in world.Less order.
func (s Set) Coords() []world.HexCoord {
	coords := make([]world.HexCoord, 0, len(s.coords))
	for c := range s.coords {
		coords = append(coords, c)
	}
	slices.SortFunc(coords, world.Compare)
	return coords
}

// Compute returns the tiles civ can see: every tile adjacent to a tile civ
// owns, plus every tile within sight of a tile holding one of civ's units.
// Only coordinates present in the grid are included.
func Compute(g *world.Grid, civ world.CivID, cfg Config) Set {
	seen := make(map[world.HexCoord]struct{})

	for t := range g.Tiles() {
		if t.OwnedBy(civ) {
			for n := range g.NeighborsOf(t.Coord) {
				seen[n.Coord] = struct{}{}
			}
		}
		if t.Occupant != nil && t.Occupant.Civ == civ {
			radius := cfg.UnitRadius
			if cfg.HillBonus && t.Height > 0 {
				radius++
			}
			for _, c := range sight(g, t, radius, cfg.Occlusion) {
				seen[c] = struct{}{}
			}
		}
	}

	return Set{coords: seen}
}

// sight runs a ring-by-ring frontier expansion from the viewer's tile, bounded
// by radius, over tiles that exist in the grid.
func sight(g *world.Grid, from *world.Tile, radius int, occlusion bool) []world.HexCoord {
	visited := map[world.HexCoord]bool{from.Coord: true}
	result := []world.HexCoord{from.Coord}
	frontier := []*world.Tile{from}

	for ring := 1; ring <= radius && len(frontier) > 0; ring++ {
		var next []*world.Tile
		for _, cur := range frontier {
			for n := range g.NeighborsOf(cur.Coord) {
				if visited[n.Coord] {
					continue
				}
				// The viewer always sees its immediate surroundings.
				if occlusion && ring > 1 && !(cur.Height == 0 || cur.Height < n.Height) {
					continue
				}
				visited[n.Coord] = true
				result = append(result, n.Coord)
				next = append(next, n)
			}
		}
		frontier = next
	}
	return result
}

// Delta summarizes how an Apply changed the grid.
type Delta struct {
	Revealed      int // Tiles that became visible
	Hidden        int // Tiles that stopped being visible
	NewlyExplored int // Tiles explored for the first time
}

// Changed reports whether any tile flag changed.
func (d Delta) Changed() bool {
	return d.Revealed > 0 || d.Hidden > 0 || d.NewlyExplored > 0
}

// Apply writes set onto the grid: members become visible and explored, every
// other tile becomes not visible. Explored is never cleared.
func Apply(g *world.Grid, set Set) Delta {
	var d Delta
	for t := range g.Tiles() {
		visible := set.Contains(t.Coord)
		switch {
		case visible && !t.Visible:
			d.Revealed++
		case !visible && t.Visible:
			d.Hidden++
		}
		g.SetVisible(t.Coord, visible)
		if visible && !t.Explored {
			d.NewlyExplored++
			g.SetExplored(t.Coord)
		}
	}
	return d
}

// Refresh recomputes civ's visibility and applies it to the grid.
func Refresh(g *world.Grid, civ world.CivID, cfg Config) (Set, Delta) {
	set := Compute(g, civ, cfg)
	d := Apply(g, set)
	slog.Debug("visibility recomputed",
		"civ", civ,
		"visible", set.Len(),
		"revealed", d.Revealed,
		"hidden", d.Hidden,
		"explored", d.NewlyExplored,
	)
	return set, d
}
