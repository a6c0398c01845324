package turn

import (
	"github.com/talgya/hexfront/internal/movement"
	"github.com/talgya/hexfront/internal/world"
)

// zocStop is charged for stepping between two tiles that are both next to an
// enemy unit. It exceeds any real budget, so the step ends the unit's move.
const zocStop = world.Movement(1 << 40)

// CanEnter reports whether u may end a step on t. Land units stay off water
// and mountains, and no unit may share a tile.
func (g *Game) CanEnter(u *world.Unit, t *world.Tile) bool {
	if t == nil {
		return false
	}
	if t.Terrain.IsWater() || t.Terrain == world.TerrainMountain {
		return false
	}
	if t.Occupant != nil && t.Occupant.ID != u.ID {
		return false
	}
	return true
}

// MoveCost returns the per-step cost function for u: terrain and roads, plus
// zone of control, where leaving one enemy-adjacent tile for another spends
// all remaining movement.
func (g *Game) MoveCost(u *world.Unit) movement.CostFunc {
	base := movement.TerrainCost(g.Settings.Machinery)
	return func(from, to *world.Tile) world.Movement {
		if g.inEnemyZone(u.Civ, from.Coord) && g.inEnemyZone(u.Civ, to.Coord) {
			return zocStop
		}
		return base(from, to)
	}
}

// MoveOptions returns the reachability options for u under the game's rules.
func (g *Game) MoveOptions(u *world.Unit) movement.Options {
	return movement.Options{
		CanEnter: func(t *world.Tile) bool { return g.CanEnter(u, t) },
		Cost:     g.MoveCost(u),
		Policy:   g.Settings.Policy,
	}
}

// inEnemyZone reports whether c touches a unit of a civilization civ is at
// war with.
func (g *Game) inEnemyZone(civ world.CivID, c world.HexCoord) bool {
	for n := range g.Grid.NeighborsOf(c) {
		if n.Occupant != nil && g.AtWar(civ, n.Occupant.Civ) {
			return true
		}
	}
	return false
}
