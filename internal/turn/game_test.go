package turn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/hexfront/internal/movement"
	"github.com/talgya/hexfront/internal/world"
)

func hex(q, r int) world.HexCoord { return world.HexCoord{Q: q, R: r} }

// newTestGame returns an open grassland game with a player civilization (1)
// and a rival (2), neither owning anything yet.
func newTestGame(t *testing.T, radius int) (*Game, *Civilization, *Civilization) {
	t.Helper()
	g, err := NewGame(world.NewFilledGrid(radius, world.TerrainGrassland), nil, DefaultSettings())
	require.NoError(t, err)

	player := NewCivilization(1, "Aram", hex(0, 0))
	player.Player = true
	rival := NewCivilization(2, "Belo", hex(radius, 0))
	g.AddCivilization(player)
	g.AddCivilization(rival)
	return g, player, rival
}

func addUnit(t *testing.T, g *Game, c world.HexCoord, civ world.CivID, name string, points int) *world.Unit {
	t.Helper()
	u := world.NewUnit(name, civ, world.Points(points))
	require.NoError(t, g.Grid.SetOccupant(c, u))
	return u
}

func TestNewGame_PlacesCivilizations(t *testing.T) {
	g := world.NewFilledGrid(5, world.TerrainGrassland)
	capitals := []world.CapitalSeed{
		{Coord: hex(-3, 0), Name: "Aram"},
		{Coord: hex(3, 0), Name: "Belo"},
	}

	game, err := NewGame(g, capitals, DefaultSettings())
	require.NoError(t, err)
	require.Len(t, game.Civs, 2)
	require.NotNil(t, game.Player())
	assert.Equal(t, "Aram", game.Player().Name)
	assert.False(t, game.Civilization(2).Player)

	for _, civ := range game.Civs {
		capital := g.Get(civ.Capital)
		assert.True(t, capital.CityCenter)
		for _, tile := range g.TilesWithin(civ.Capital, 1) {
			assert.True(t, tile.OwnedBy(civ.ID), "%s owns %v", civ.Name, tile.Coord)
		}

		require.NotNil(t, capital.Occupant)
		assert.Equal(t, StartingUnits[0].Name, capital.Occupant.Name)

		var units int
		for tile := range g.Tiles() {
			if tile.Occupant != nil && tile.Occupant.Civ == civ.ID {
				units++
				assert.LessOrEqual(t, world.Distance(civ.Capital, tile.Coord), 1)
			}
		}
		assert.Equal(t, len(StartingUnits), units)
	}

	// Fog follows the player's view only.
	assert.True(t, g.Get(hex(-3, 0)).Visible)
	assert.True(t, g.Get(hex(-3, 0)).Explored)
	assert.False(t, g.Get(hex(3, 0)).Visible)
	assert.True(t, game.Visible(2).Contains(hex(3, 0)))
	assert.NotZero(t, game.VisibilityVersion())
}

func TestNewGame_FailsWithoutRoomForUnits(t *testing.T) {
	g := world.NewFilledGrid(3, world.TerrainOcean)
	g.Set(world.NewTile(hex(0, 0), world.TerrainPlains))

	_, err := NewGame(g, []world.CapitalSeed{{Coord: hex(0, 0), Name: "Aram"}}, DefaultSettings())
	assert.ErrorIs(t, err, world.ErrOccupied)
}

func TestCanEnter(t *testing.T) {
	g, player, rival := newTestGame(t, 3)
	u := addUnit(t, g, hex(0, 0), player.ID, "Warrior", 2)
	addUnit(t, g, hex(1, 0), rival.ID, "Warrior", 2)
	g.Grid.Get(hex(0, 1)).Terrain = world.TerrainMountain
	g.Grid.Get(hex(-1, 0)).Terrain = world.TerrainCoast

	assert.True(t, g.CanEnter(u, g.Grid.Get(hex(0, 0))), "own tile")
	assert.False(t, g.CanEnter(u, g.Grid.Get(hex(1, 0))), "occupied")
	assert.False(t, g.CanEnter(u, g.Grid.Get(hex(0, 1))), "mountain")
	assert.False(t, g.CanEnter(u, g.Grid.Get(hex(-1, 0))), "water")
	assert.True(t, g.CanEnter(u, g.Grid.Get(hex(0, -1))))
	assert.False(t, g.CanEnter(u, nil))
}

func TestMoveCost_ZoneOfControl(t *testing.T) {
	g, player, rival := newTestGame(t, 4)
	u := addUnit(t, g, hex(1, 0), player.ID, "Warrior", 1)
	addUnit(t, g, hex(2, 0), rival.ID, "Warrior", 2)

	cost := g.MoveCost(u)
	// (1,0) and (1,1) both touch the rival at (2,0).
	assert.Equal(t, world.Points(1), cost(g.Grid.Get(hex(1, 0)), g.Grid.Get(hex(1, 1))), "no effect at peace")

	DeclareWar(player, rival)
	assert.True(t, g.AtWar(1, 2))
	assert.True(t, g.AtWar(2, 1))
	assert.Equal(t, zocStop, cost(g.Grid.Get(hex(1, 0)), g.Grid.Get(hex(1, 1))))
	assert.Equal(t, world.Points(1), cost(g.Grid.Get(hex(1, 0)), g.Grid.Get(hex(0, 0))), "leaving the zone is normal")
	assert.Equal(t, world.Points(1), cost(g.Grid.Get(hex(0, 0)), g.Grid.Get(hex(1, 0))), "entering the zone is normal")

	opts := g.MoveOptions(u)
	opts.Policy = movement.Strict
	res, err := movement.Reachable(g.Grid, hex(1, 0), u.Movement, opts)
	require.NoError(t, err)
	assert.False(t, res.Contains(hex(1, 1)), "cannot slide along the enemy")
	assert.True(t, res.Contains(hex(0, 0)))

	opts.Policy = movement.FinalStep
	res, err = movement.Reachable(g.Grid, hex(1, 0), u.Movement, opts)
	require.NoError(t, err)
	require.True(t, res.Contains(hex(1, 1)))
	assert.True(t, res.IsFinal(hex(1, 1)), "a zone step ends the move")
}

func TestCommitMove(t *testing.T) {
	g, player, _ := newTestGame(t, 3)
	u := addUnit(t, g, hex(0, 0), player.ID, "Scout", 3)
	u.Order = &world.MoveOrder{Dest: hex(3, 0)}

	_, err := g.Grid.MoveUnit(hex(0, 0), hex(1, 0))
	require.NoError(t, err)
	require.NoError(t, g.CommitMove(u, hex(0, 0), hex(1, 0), world.Points(1)))

	assert.Equal(t, world.Points(2), u.Movement)
	assert.Nil(t, u.Order, "direct control drops the standing order")
	assert.True(t, g.Grid.Get(hex(3, 0)).Visible, "vision follows the unit")

	events := g.DrainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, "move", events[0].Category)
	assert.Empty(t, g.DrainEvents())

	assert.Error(t, g.CommitMove(u, hex(1, 0), hex(1, 0), -1))
}

func TestOrderMove_CarriedOutOverTurns(t *testing.T) {
	g, player, _ := newTestGame(t, 6)
	u := addUnit(t, g, hex(-5, 0), player.ID, "Warrior", 2)
	dest := hex(5, 0)

	require.NoError(t, g.OrderMove(u, dest))
	loc, ok := g.Grid.UnitLocation(u.ID)
	require.True(t, ok)
	assert.Equal(t, 8, world.Distance(loc, dest), "first leg walked immediately")
	assert.Equal(t, world.Movement(0), u.Movement)
	require.NotNil(t, u.Order)

	for want := 6; want >= 0; want -= 2 {
		g.NextTurn()
		loc, _ = g.Grid.UnitLocation(u.ID)
		assert.Equal(t, want, world.Distance(loc, dest), "turn %d", g.Turn)
	}
	assert.Equal(t, 4, g.Turn)
	assert.Equal(t, dest, loc)
	assert.Nil(t, u.Order, "order completes on arrival")
}

func TestOrderMove_Rejected(t *testing.T) {
	g, player, _ := newTestGame(t, 3)
	u := addUnit(t, g, hex(0, 0), player.ID, "Warrior", 2)

	err := g.OrderMove(u, hex(9, 9))
	assert.ErrorIs(t, err, world.ErrInvalidCoordinate)
	assert.Nil(t, u.Order)

	// Reachable in bounds but walled off by water: cancelled on the spot.
	for _, c := range world.Ring(hex(3, 0), 1) {
		if tile := g.Grid.Get(c); tile != nil {
			tile.Terrain = world.TerrainOcean
		}
	}
	require.NoError(t, g.OrderMove(u, hex(3, 0)))
	assert.Nil(t, u.Order)
	loc, _ := g.Grid.UnitLocation(u.ID)
	assert.Equal(t, hex(0, 0), loc)
}

func TestNextTurn_ResetsMovement(t *testing.T) {
	g, player, rival := newTestGame(t, 3)
	a := addUnit(t, g, hex(0, 0), player.ID, "Scout", 3)
	b := addUnit(t, g, hex(2, 0), rival.ID, "Warrior", 2)
	a.Movement = 0
	b.Movement = world.Fraction(1, 3)

	g.NextTurn()
	assert.Equal(t, 1, g.Turn)
	assert.Equal(t, world.Points(3), a.Movement)
	assert.Equal(t, world.Points(2), b.Movement)

	events := g.DrainEvents()
	require.NotEmpty(t, events)
	last := events[len(events)-1]
	assert.Equal(t, Event{Turn: 1, Description: "turn 1 began", Category: "turn"}, last)
}

func TestNextTurn_SpotsEnemies(t *testing.T) {
	g, player, rival := newTestGame(t, 4)
	for _, tile := range g.Grid.TilesWithin(hex(0, 0), 1) {
		id := player.ID
		g.Grid.SetOwner(tile.Coord, &id)
	}
	addUnit(t, g, hex(2, 0), rival.ID, "Warrior", 2)

	g.NextTurn()
	assert.Empty(t, g.Notifications, "peaceful neighbors are not reported")

	DeclareWar(player, rival)
	g.NextTurn()
	require.Len(t, g.Notifications, 1)
	assert.Equal(t, "An enemy Warrior was spotted near our territory", g.Notifications[0].Text)
	assert.Equal(t, hex(2, 0), g.Notifications[0].Coord)
	assert.Equal(t, 2, g.Notifications[0].Turn)

	// Stepping inside the border changes the wording.
	_, err := g.Grid.MoveUnit(hex(2, 0), hex(1, 0))
	require.NoError(t, err)
	g.NextTurn()
	require.Len(t, g.Notifications, 1)
	assert.Equal(t, "An enemy Warrior was spotted in our territory", g.Notifications[0].Text)
}

func TestRefreshVisibility_VersionTracksChanges(t *testing.T) {
	g, player, _ := newTestGame(t, 5)
	addUnit(t, g, hex(-4, 0), player.ID, "Scout", 3)

	g.RefreshVisibility()
	v := g.VisibilityVersion()
	g.RefreshVisibility()
	assert.Equal(t, v, g.VisibilityVersion(), "nothing moved")

	_, err := g.Grid.MoveUnit(hex(-4, 0), hex(-3, 0))
	require.NoError(t, err)
	g.RefreshVisibility()
	assert.Greater(t, g.VisibilityVersion(), v)
}
