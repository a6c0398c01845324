package turn

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/talgya/hexfront/internal/movement"
	"github.com/talgya/hexfront/internal/world"
)

// CommitMove charges u for a move the caller has already validated against a
// reachability result. Any standing order is dropped because the player took
// direct control.
func (g *Game) CommitMove(u *world.Unit, from, to world.HexCoord, cost world.Movement) error {
	if cost < 0 {
		return fmt.Errorf("commit move of %s: negative cost %s", u.Name, cost)
	}
	u.Movement = max(u.Movement-cost, 0)
	u.Order = nil
	g.record("move", "%s moved (%d,%d) -> (%d,%d) for %s", u.Name, from.Q, from.R, to.Q, to.R, cost)
	g.RefreshVisibility()
	return nil
}

// OrderMove gives u a standing order toward dest and walks it as far as its
// remaining movement allows right away. The rest is carried out on later turns.
func (g *Game) OrderMove(u *world.Unit, dest world.HexCoord) error {
	if _, err := g.Grid.Lookup(dest); err != nil {
		return fmt.Errorf("order %s: %w", u.Name, err)
	}
	u.Order = &world.MoveOrder{Dest: dest}
	g.record("order", "%s ordered to (%d,%d)", u.Name, dest.Q, dest.R)
	g.advanceOrder(u)
	g.RefreshVisibility()
	return nil
}

// NextTurn advances the game: movement is restored, standing orders are
// carried out, visibility is recomputed, and the player is warned about enemy
// units in or near their territory.
func (g *Game) NextTurn() {
	g.Turn++
	g.Notifications = nil

	var units []*world.Unit
	for t := range g.Grid.Tiles() {
		if t.Occupant != nil {
			units = append(units, t.Occupant)
		}
	}

	for _, u := range units {
		u.ResetMovement()
	}
	for _, u := range units {
		if u.Order != nil {
			g.advanceOrder(u)
		}
	}

	g.RefreshVisibility()
	g.spotEnemies()

	g.record("turn", "turn %d began", g.Turn)
	slog.Info("turn advanced", "turn", g.Turn, "units", len(units), "notifications", len(g.Notifications))
}

// advanceOrder moves u one turn's worth along the route to its order's
// destination. Orders that can no longer be completed are cancelled.
func (g *Game) advanceOrder(u *world.Unit) {
	loc, ok := g.Grid.UnitLocation(u.ID)
	if !ok {
		u.Order = nil
		return
	}
	dest := u.Order.Dest
	if loc == dest {
		u.Order = nil
		return
	}
	if u.Movement <= 0 {
		return
	}

	opts := g.MoveOptions(u)
	path, err := movement.PathTo(g.Grid, loc, dest, u.Movement, u.MaxMovement, opts, g.Settings.MaxPathTurns)
	if err != nil {
		if errors.Is(err, movement.ErrNoPath) {
			g.record("order", "%s cannot reach (%d,%d), order cancelled", u.Name, dest.Q, dest.R)
		} else {
			slog.Warn("order path failed", "unit", u.ID, "error", err)
		}
		u.Order = nil
		return
	}

	reach, err := movement.Reachable(g.Grid, loc, u.Movement, opts)
	if err != nil {
		slog.Warn("order reachability failed", "unit", u.ID, "error", err)
		return
	}
	stop := path[0]
	cost, ok := reach.Cost(stop)
	if !ok {
		return
	}
	if _, err := g.Grid.MoveUnit(loc, stop); err != nil {
		slog.Warn("order move failed", "unit", u.ID, "error", err)
		return
	}
	u.Movement = max(u.Movement-cost, 0)
	g.record("move", "%s advanced (%d,%d) -> (%d,%d) toward (%d,%d)", u.Name, loc.Q, loc.R, stop.Q, stop.R, dest.Q, dest.R)
	if stop == dest {
		u.Order = nil
	}
}

// spotEnemies notifies the player about visible enemy units standing in or
// next to their territory.
func (g *Game) spotEnemies() {
	player := g.Player()
	if player == nil {
		return
	}
	for _, c := range g.visible[player.ID].Coords() {
		t := g.Grid.Get(c)
		if t == nil || t.Occupant == nil || !g.AtWar(player.ID, t.Occupant.Civ) {
			continue
		}
		where := ""
		if t.OwnedBy(player.ID) {
			where = "in"
		} else {
			for n := range g.Grid.NeighborsOf(c) {
				if n.OwnedBy(player.ID) {
					where = "near"
					break
				}
			}
		}
		if where == "" {
			continue
		}
		text := fmt.Sprintf("An enemy %s was spotted %s our territory", t.Occupant.Name, where)
		g.notify(text, c)
		g.record("sighting", "%s at (%d,%d)", text, c.Q, c.R)
	}
}
