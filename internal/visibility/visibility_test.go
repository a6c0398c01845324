package visibility

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/hexfront/internal/world"
)

func hex(q, r int) world.HexCoord { return world.HexCoord{Q: q, R: r} }

func TestCompute_SingleOwnedTile(t *testing.T) {
	g := world.NewFilledGrid(4, world.TerrainPlains)
	civ := world.CivID(1)
	a := hex(1, -1)
	g.SetOwner(a, &civ)

	set := Compute(g, civ, DefaultConfig())

	neighbors := a.Neighbors()
	assert.Equal(t, 6, set.Len())
	for _, n := range neighbors {
		assert.True(t, set.Contains(n), "neighbor %v", n)
	}
	assert.False(t, set.Contains(a), "the owned tile itself is only seen from a neighbor")
}

func TestCompute_BorderAtMapEdge(t *testing.T) {
	g := world.NewFilledGrid(1, world.TerrainPlains)
	civ := world.CivID(1)
	g.SetOwner(hex(1, 0), &civ)

	set := Compute(g, civ, DefaultConfig())
	assert.Equal(t, 3, set.Len(), "neighbors off the map are not included")
}

func TestCompute_UnitRadius(t *testing.T) {
	g := world.NewFilledGrid(5, world.TerrainPlains)
	civ := world.CivID(2)
	require.NoError(t, g.SetOccupant(hex(0, 0), world.NewUnit("Scout", civ, world.Points(2))))
	// Foreign unit sees nothing for civ.
	require.NoError(t, g.SetOccupant(hex(4, 0), world.NewUnit("Warrior", 9, world.Points(2))))

	set := Compute(g, civ, DefaultConfig())
	assert.Equal(t, 19, set.Len())
	for _, c := range set.Coords() {
		assert.LessOrEqual(t, world.Distance(hex(0, 0), c), 2)
	}

	cfg := Config{UnitRadius: 3}
	assert.Equal(t, 37, Compute(g, civ, cfg).Len())
}

func TestCompute_HillBonusAndOcclusion(t *testing.T) {
	g := world.NewFilledGrid(5, world.TerrainPlains)
	civ := world.CivID(1)
	viewer := g.Get(hex(0, 0))
	viewer.Terrain = world.TerrainHill
	viewer.Height = world.TerrainHill.Height()
	require.NoError(t, g.SetOccupant(hex(0, 0), world.NewUnit("Scout", civ, world.Points(2))))

	cfg := DefaultConfig()
	cfg.HillBonus = true
	assert.Equal(t, 37, Compute(g, civ, cfg).Len(), "hill adds one ring")

	// Move the viewer to flat ground behind a mountain ridge to the east.
	g2 := world.NewFilledGrid(5, world.TerrainPlains)
	require.NoError(t, g2.SetOccupant(hex(0, 0), world.NewUnit("Scout", civ, world.Points(2))))
	for _, c := range []world.HexCoord{hex(1, 0), hex(1, -1), hex(0, 1)} {
		g2.Get(c).Height = 2
	}
	occluded := Config{UnitRadius: 2, Occlusion: true}
	set := Compute(g2, civ, occluded)
	assert.True(t, set.Contains(hex(1, 0)), "adjacent tiles are always seen")
	assert.False(t, set.Contains(hex(2, 0)), "flat tile behind the ridge is hidden")
	assert.True(t, set.Contains(hex(-2, 0)), "open side is seen")
}

func TestApply_ExploredNeverUnset(t *testing.T) {
	g := world.NewFilledGrid(4, world.TerrainPlains)
	civ := world.CivID(1)
	u := world.NewUnit("Scout", civ, world.Points(2))
	require.NoError(t, g.SetOccupant(hex(-2, 0), u))

	_, d := Refresh(g, civ, DefaultConfig())
	assert.Equal(t, 0, d.Hidden)
	assert.Positive(t, d.NewlyExplored)
	assert.True(t, g.Get(hex(-3, 0)).Visible)
	assert.True(t, g.Get(hex(-3, 0)).Explored)

	// Walk the unit to the other side; the old area stays explored.
	_, err := g.MoveUnit(hex(-2, 0), hex(2, 0))
	require.NoError(t, err)
	set, d := Refresh(g, civ, DefaultConfig())
	assert.True(t, d.Changed())
	assert.Positive(t, d.Hidden)
	assert.False(t, g.Get(hex(-3, 0)).Visible)
	assert.True(t, g.Get(hex(-3, 0)).Explored)

	for tile := range g.Tiles() {
		assert.Equal(t, set.Contains(tile.Coord), tile.Visible, "tile %v", tile.Coord)
		if tile.Visible {
			assert.True(t, tile.Explored)
		}
	}

	// Nothing owned, nothing visible; explored flags survive.
	g.ClearOccupant(hex(2, 0))
	_, d = Refresh(g, civ, DefaultConfig())
	assert.Equal(t, 0, d.NewlyExplored)
	assert.True(t, g.Get(hex(-3, 0)).Explored)
	assert.True(t, g.Get(hex(3, 0)).Explored)
}

func TestRefresh_Idempotent(t *testing.T) {
	g := world.Generate(world.SmallTestConfig())
	civ := world.CivID(1)
	g.SetOwner(hex(0, 0), &civ)

	first, _ := Refresh(g, civ, DefaultConfig())
	second, d := Refresh(g, civ, DefaultConfig())
	assert.Equal(t, first.Coords(), second.Coords())
	assert.False(t, d.Changed())
}
