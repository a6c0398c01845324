package selection

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/talgya/hexfront/internal/movement"
	"github.com/talgya/hexfront/internal/world"
)

// ErrNoMovement is returned by BeginMove when the selected tile has no unit
// or the unit has no movement left.
var ErrNoMovement = errors.New("no unit with movement on selected tile")

// ErrNotSelected is returned by BeginMove outside the TileSelected state.
var ErrNotSelected = errors.New("no tile selected")

// Board is the game-state owner the controller reads from.
type Board interface {
	CurrentTileMap() *world.Grid
	CivilizationOf(u *world.Unit) world.CivID
	MovementPointsRemaining(u *world.Unit) world.Movement
}

// Rules supplies the movement options for a particular unit: which tiles it
// may enter, what each step costs, and the overspend policy.
type Rules interface {
	MoveOptions(u *world.Unit) movement.Options
}

// Mover carries out moves the controller decides on.
type Mover interface {
	// CommitMove charges u for a move within this turn's range. The
	// controller has already moved the unit on the grid when this is called.
	CommitMove(u *world.Unit, from, to world.HexCoord, cost world.Movement) error
	// OrderMove records a standing order for a destination out of range.
	OrderMove(u *world.Unit, dest world.HexCoord) error
}

// Controller tracks selection state for one civilization's view. It is not
// safe for concurrent use; input is expected to be processed one event at a
// time.
type Controller struct {
	board Board
	rules Rules
	mover Mover
	civ   world.CivID

	state   State
	reach   *movement.Result
	version uint64
}

// New creates a controller in the Idle state acting for civ.
func New(board Board, rules Rules, mover Mover, civ world.CivID) *Controller {
	return &Controller{
		board: board,
		rules: rules,
		mover: mover,
		civ:   civ,
		state: Idle{},
	}
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

// Version increases on every state change. A view polls it once per frame
// and redraws when it differs from the last value seen.
func (c *Controller) Version() uint64 {
	return c.version
}

// Reachable returns the cached reachability for the pending move, or nil
// when no move is pending.
func (c *Controller) Reachable() *movement.Result {
	return c.reach
}

// Selected returns the selected coordinate in TileSelected and AwaitingMove.
func (c *Controller) Selected() (world.HexCoord, bool) {
	switch s := c.state.(type) {
	case TileSelected:
		return s.Coord, true
	case AwaitingMove:
		return s.Origin, true
	default:
		return world.HexCoord{}, false
	}
}

func (c *Controller) transition(next State) {
	if next != c.state {
		slog.Debug("selection changed", "from", c.state.String(), "to", next.String())
	}
	c.state = next
	if _, ok := next.(AwaitingMove); !ok {
		c.reach = nil
	}
	c.version++
}

// SelectTile handles a click on coord. While a move is pending, a destination
// inside the cached range moves the unit there; a destination outside it
// becomes a standing order. Either way coord ends up selected.
func (c *Controller) SelectTile(coord world.HexCoord) error {
	grid := c.board.CurrentTileMap()
	if _, err := grid.Lookup(coord); err != nil {
		return err
	}

	pending, ok := c.state.(AwaitingMove)
	if !ok || coord == pending.Origin {
		c.transition(TileSelected{Coord: coord})
		return nil
	}

	src := grid.Get(pending.Origin)
	if src == nil || src.Occupant == nil {
		// The unit vanished since the move began.
		c.transition(TileSelected{Coord: coord})
		return nil
	}
	u := src.Occupant

	// Clicking another unit just selects it.
	if dst := grid.Get(coord); dst != nil && dst.Occupant != nil {
		c.transition(TileSelected{Coord: coord})
		return nil
	}

	if cost, inRange := c.reach.Cost(coord); inRange {
		if _, err := grid.MoveUnit(pending.Origin, coord); err != nil {
			return fmt.Errorf("commit move: %w", err)
		}
		if err := c.mover.CommitMove(u, pending.Origin, coord, cost); err != nil {
			if _, undoErr := grid.MoveUnit(coord, pending.Origin); undoErr != nil {
				slog.Error("failed to undo rejected move", "unit", u.ID, "error", undoErr)
			}
			return fmt.Errorf("commit move: %w", err)
		}
		c.transition(TileSelected{Coord: coord})
		return nil
	}

	if err := c.mover.OrderMove(u, coord); err != nil {
		slog.Warn("move order rejected", "unit", u.ID, "dest", coord, "error", err)
	}
	c.transition(TileSelected{Coord: coord})
	return nil
}

// BeginMove enters move mode for the unit on the selected tile and caches its
// reachable tiles for the view.
func (c *Controller) BeginMove() error {
	sel, ok := c.state.(TileSelected)
	if !ok {
		return ErrNotSelected
	}
	t := c.board.CurrentTileMap().Get(sel.Coord)
	if t == nil || t.Occupant == nil {
		return ErrNoMovement
	}
	u := t.Occupant
	budget := c.board.MovementPointsRemaining(u)
	if budget <= 0 {
		return ErrNoMovement
	}

	reach, err := movement.Reachable(c.board.CurrentTileMap(), sel.Coord, budget, c.rules.MoveOptions(u))
	if err != nil {
		return err
	}
	c.transition(AwaitingMove{Origin: sel.Coord, Budget: budget})
	c.reach = reach
	return nil
}

// CancelMove leaves move mode, keeping the unit's tile selected.
func (c *Controller) CancelMove() {
	if pending, ok := c.state.(AwaitingMove); ok {
		c.transition(TileSelected{Coord: pending.Origin})
	}
}

// Deselect returns to Idle from any state.
func (c *Controller) Deselect() {
	c.transition(Idle{})
}

// SelectNextIdleUnit selects the next of this civilization's idle units after
// the current selection. ok is false when no unit is idle.
func (c *Controller) SelectNextIdleUnit() (world.HexCoord, bool) {
	grid := c.board.CurrentTileMap()
	var (
		next world.HexCoord
		ok   bool
	)
	if current, selected := c.Selected(); selected {
		next, ok = world.NextIdleUnit(grid, current, c.isIdle)
	} else if tiles := grid.IdleUnitTiles(c.isIdle); len(tiles) > 0 {
		next, ok = tiles[0], true
	}
	if !ok {
		return world.HexCoord{}, false
	}
	c.transition(TileSelected{Coord: next})
	return next, true
}

// isIdle: one of ours, movement left, nothing queued.
func (c *Controller) isIdle(u *world.Unit) bool {
	return c.board.CivilizationOf(u) == c.civ &&
		c.board.MovementPointsRemaining(u) > 0 &&
		u.Order == nil
}
