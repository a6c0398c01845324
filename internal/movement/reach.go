// Package movement computes where a unit can go: the tiles reachable this
// turn within its movement budget, and multi-turn routes for standing orders.
package movement

import (
	"container/heap"
	"slices"

	"github.com/talgya/hexfront/internal/world"
)

// Policy decides what happens when the next tile costs more than the unit
// has left.
type Policy uint8

const (
	// FinalStep lets a unit with any movement left enter one tile that costs
	// more than it has; doing so spends everything it has left.
	FinalStep Policy = iota
	// Strict only allows tiles whose cumulative cost fits in the budget.
	Strict
)

// CostFunc returns the cost of stepping from one tile onto an adjacent one.
type CostFunc func(from, to *world.Tile) world.Movement

// Options configures a reachability search.
type Options struct {
	// CanEnter rules a tile in or out before any cost is paid. Terrain
	// passability, foreign units and zone of control live here. Nil allows
	// every tile.
	CanEnter func(*world.Tile) bool
	// Cost defaults to TerrainCost(false).
	Cost   CostFunc
	Policy Policy
}

func (o Options) cost() CostFunc {
	if o.Cost != nil {
		return o.Cost
	}
	return TerrainCost(false)
}

func (o Options) canEnter(t *world.Tile) bool {
	return o.CanEnter == nil || o.CanEnter(t)
}

// TerrainCost charges the destination tile's movement cost, reduced when both
// tiles carry a road (1/2, or 1/3 once machinery is known) or a railroad (1/10).
func TerrainCost(machinery bool) CostFunc {
	return func(from, to *world.Tile) world.Movement {
		if from.Road == world.RoadRailroad && to.Road == world.RoadRailroad {
			return world.Fraction(1, 10)
		}
		if from.Road != world.RoadNone && to.Road != world.RoadNone {
			if machinery {
				return world.Fraction(1, 3)
			}
			return world.Fraction(1, 2)
		}
		return to.MoveCost
	}
}

// Result maps each reachable coordinate to the movement spent getting there.
// It is never modified after Reachable returns.
type Result struct {
	origin world.HexCoord
	budget world.Movement
	costs  map[world.HexCoord]world.Movement
	final  map[world.HexCoord]bool
}

// Origin returns the coordinate the search started from.
func (r *Result) Origin() world.HexCoord { return r.origin }

// Budget returns the movement the search was allowed to spend.
func (r *Result) Budget() world.Movement { return r.budget }

// Len returns the number of reachable tiles, origin included.
func (r *Result) Len() int { return len(r.costs) }

// Cost returns the cumulative movement needed to stop on c.
func (r *Result) Cost(c world.HexCoord) (world.Movement, bool) {
	m, ok := r.costs[c]
	return m, ok
}

// Contains reports whether c is reachable this turn.
func (r *Result) Contains(c world.HexCoord) bool {
	_, ok := r.costs[c]
	return ok
}

// IsFinal reports whether entering c leaves no movement, so the unit must
// stop there. Tiles reached with movement to spare return false.
func (r *Result) IsFinal(c world.HexCoord) bool {
	return r.final[c]
}

// Coords returns the reachable coordinates in world.Less order.
func (r *Result) Coords() []world.HexCoord {
	coords := make([]world.HexCoord, 0, len(r.costs))
	for c := range r.costs {
		coords = append(coords, c)
	}
	slices.SortFunc(coords, world.Compare)
	return coords
}

func emptyResult(origin world.HexCoord, budget world.Movement) *Result {
	return &Result{
		origin: origin,
		budget: budget,
		costs:  make(map[world.HexCoord]world.Movement),
		final:  make(map[world.HexCoord]bool),
	}
}

// Reachable returns every tile a unit standing on origin can reach with budget
// movement points, with the cheapest cost to each.
//
// An origin outside the grid's shape yields an empty result and
// world.ErrInvalidCoordinate; an origin with no tile (a unit removed
// mid-turn) yields an empty result and no error. With budget <= 0 only the
// origin is reachable.
func Reachable(g *world.Grid, origin world.HexCoord, budget world.Movement, opts Options) (*Result, error) {
	res := emptyResult(origin, budget)
	start, err := g.Lookup(origin)
	if err != nil {
		return res, err
	}
	if start == nil {
		return res, nil
	}

	res.costs[origin] = 0
	if budget <= 0 {
		res.final[origin] = true
		return res, nil
	}

	cost := opts.cost()
	frontier := &openList{{tile: start, cost: 0}}
	heap.Init(frontier)
	done := make(map[world.HexCoord]bool)

	for frontier.Len() > 0 {
		cur := heap.Pop(frontier).(*pathNode)
		c := cur.tile.Coord
		if done[c] {
			continue
		}
		done[c] = true
		// A tile reached with nothing left is a final stop.
		if cur.cost >= budget {
			continue
		}

		for next := range g.NeighborsOf(c) {
			nc := next.Coord
			if done[nc] || !opts.canEnter(next) {
				continue
			}
			total := cur.cost + cost(cur.tile, next)
			if total > budget {
				if opts.Policy == Strict {
					continue
				}
				total = budget
			}
			if prev, ok := res.costs[nc]; ok && total >= prev {
				continue
			}
			res.costs[nc] = total
			heap.Push(frontier, &pathNode{tile: next, cost: total})
		}
	}

	for c, m := range res.costs {
		if m >= budget {
			res.final[c] = true
		}
	}
	return res, nil
}

// --- priority queue ---

type pathNode struct {
	tile  *world.Tile
	cost  world.Movement
	index int // heap index
}

type openList []*pathNode

func (ol openList) Len() int { return len(ol) }

// Less breaks cost ties by coordinate so expansion order never depends on
// map iteration.
func (ol openList) Less(i, j int) bool {
	if ol[i].cost != ol[j].cost {
		return ol[i].cost < ol[j].cost
	}
	return world.Less(ol[i].tile.Coord, ol[j].tile.Coord)
}

func (ol openList) Swap(i, j int) {
	ol[i], ol[j] = ol[j], ol[i]
	ol[i].index = i
	ol[j].index = j
}

func (ol *openList) Push(x any) {
	n := x.(*pathNode)
	n.index = len(*ol)
	*ol = append(*ol, n)
}

func (ol *openList) Pop() any {
	old := *ol
	n := old[len(old)-1]
	old[len(old)-1] = nil
	*ol = old[:len(old)-1]
	return n
}
