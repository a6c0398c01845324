// Package selection is the interaction state machine behind the map view:
// which tile is selected, whether a unit is waiting for a move destination,
// and the reachability the view should highlight.
package selection

import (
	"fmt"

	"github.com/talgya/hexfront/internal/world"
)

// State is one of Idle, TileSelected or AwaitingMove.
type State interface {
	fmt.Stringer
	isState()
}

// Idle means nothing is selected.
type Idle struct{}

// TileSelected means Coord is selected and shown in the tile panel.
type TileSelected struct {
	Coord world.HexCoord
}

// AwaitingMove means the unit on Origin is waiting for a destination. Budget
// is the unit's movement when the move began.
type AwaitingMove struct {
	Origin world.HexCoord
	Budget world.Movement
}

func (Idle) isState()         {}
func (TileSelected) isState() {}
func (AwaitingMove) isState() {}

func (Idle) String() string { return "idle" }

func (s TileSelected) String() string {
	return fmt.Sprintf("selected (%d,%d)", s.Coord.Q, s.Coord.R)
}

func (s AwaitingMove) String() string {
	return fmt.Sprintf("moving from (%d,%d) with %s", s.Origin.Q, s.Origin.R, s.Budget)
}
