package movement

import (
	"errors"
	"fmt"
	"slices"

	"github.com/talgya/hexfront/internal/world"
)

// ErrNoPath is returned when no route reaches the destination in time.
var ErrNoPath = errors.New("no path to destination")

// PathTo plans a multi-turn route from origin to dest. The first turn is
// spent with current movement and every later turn with full. The returned
// waypoints are the tiles the unit stops on at the end of each turn, ending
// with dest; a unit already at dest gets an empty route.
//
// Each turn expands every stop of the previous turn with Reachable, so the
// search is bounded by maxTurns times the tiles reachable per turn.
func PathTo(g *world.Grid, origin, dest world.HexCoord, current, full world.Movement, opts Options, maxTurns int) ([]world.HexCoord, error) {
	if _, err := g.Lookup(dest); err != nil {
		return nil, err
	}
	start, err := g.Lookup(origin)
	if err != nil {
		return nil, err
	}
	if start == nil {
		return nil, fmt.Errorf("path from (%d,%d): %w", origin.Q, origin.R, ErrNoPath)
	}
	if origin == dest {
		return nil, nil
	}

	// parents records, for each end-of-turn stop, the stop it was reached from.
	parents := map[world.HexCoord]world.HexCoord{origin: origin}
	frontier := []world.HexCoord{origin}

	for turn := 1; turn <= maxTurns && len(frontier) > 0; turn++ {
		budget := full
		if turn == 1 {
			budget = current
		}

		var (
			found    bool
			bestFrom world.HexCoord
			bestCost world.Movement
			next     []world.HexCoord
		)
		for _, from := range frontier {
			r, err := Reachable(g, from, budget, opts)
			if err != nil {
				return nil, err
			}
			if c, ok := r.Cost(dest); ok {
				if !found || c < bestCost {
					found, bestFrom, bestCost = true, from, c
				}
				continue
			}
			for _, c := range r.Coords() {
				if _, seen := parents[c]; seen {
					continue
				}
				parents[c] = from
				next = append(next, c)
			}
		}

		if found {
			path := []world.HexCoord{dest}
			for c := bestFrom; c != origin; c = parents[c] {
				path = append(path, c)
			}
			slices.Reverse(path)
			return path, nil
		}

		slices.SortFunc(next, world.Compare)
		frontier = next
	}

	return nil, fmt.Errorf("path (%d,%d) -> (%d,%d): %w", origin.Q, origin.R, dest.Q, dest.R, ErrNoPath)
}
