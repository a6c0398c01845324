// World generation using layered simplex noise.
// Generates elevation, rainfall, and temperature maps, then derives terrain.
package world

import (
	"math"
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// GenConfig holds world generation parameters.
type GenConfig struct {
	Radius      int     // Hex grid radius
	Seed        int64   // Random seed (0 = random)
	SeaLevel    float64 // Elevation threshold for water (0.0–1.0)
	MountainLvl float64 // Elevation threshold for mountains (0.0–1.0)
}

// DefaultGenConfig returns a reasonable starting configuration.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Radius:      10,
		Seed:        0,
		SeaLevel:    0.25,
		MountainLvl: 0.72,
	}
}

// SmallTestConfig returns a tiny world for rapid iteration.
func SmallTestConfig() GenConfig {
	return GenConfig{
		Radius:      5,
		Seed:        42,
		SeaLevel:    0.30,
		MountainLvl: 0.75,
	}
}

// Generate creates a complete hexagonal grid with terrain on every tile.
func Generate(cfg GenConfig) *Grid {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}

	// Three noise generators for independent layers.
	elevNoise := opensimplex.NewNormalized(seed)
	rainNoise := opensimplex.NewNormalized(seed + 1)
	tempNoise := opensimplex.NewNormalized(seed + 2)

	g := NewGrid(cfg.Radius)

	for _, coord := range Spiral(HexCoord{}, cfg.Radius) {
		// Hex axial → cartesian: x = q + r*0.5, y = r * sqrt(3)/2
		x := float64(coord.Q) + float64(coord.R)*0.5
		y := float64(coord.R) * math.Sqrt(3.0) / 2.0

		elev := octaveNoise(elevNoise, x, y, 4, 0.08, 0.5)
		rain := octaveNoise(rainNoise, x, y, 3, 0.06, 0.5)
		temp := octaveNoise(tempNoise, x, y, 3, 0.05, 0.5)

		// Continental shaping: reduce elevation near edges to create ocean border.
		radius := math.Max(float64(cfg.Radius), 1)
		distFromCenter := math.Sqrt(x*x+y*y) / radius
		edgeFalloff := 1.0 - math.Pow(distFromCenter, 3.5)
		if edgeFalloff < 0 {
			edgeFalloff = 0
		}
		elev *= edgeFalloff

		// Temperature decreases with elevation and distance from equator.
		temp = temp*0.6 + (1.0-math.Abs(y)/radius)*0.3 + (1.0-elev)*0.1

		g.Set(NewTile(coord, deriveTerrain(elev, rain, temp, cfg)))
	}

	markCoast(g)

	return g
}

// deriveTerrain determines terrain type from environmental parameters.
func deriveTerrain(elev, rain, temp float64, cfg GenConfig) Terrain {
	if elev < cfg.SeaLevel {
		return TerrainOcean
	}
	if elev > cfg.MountainLvl {
		return TerrainMountain
	}
	if elev > cfg.MountainLvl-0.1 {
		return TerrainHill
	}
	if temp < 0.25 {
		return TerrainTundra
	}
	if rain < 0.25 && temp > 0.5 {
		return TerrainDesert
	}
	if rain > 0.7 && temp > 0.6 {
		return TerrainJungle
	}
	if rain > 0.45 && elev > 0.45 {
		return TerrainForest
	}
	if rain > 0.5 {
		return TerrainGrassland
	}
	return TerrainPlains
}

// markCoast converts ocean tiles next to land into coast.
func markCoast(g *Grid) {
	var toMark []HexCoord

	for coord, t := range g.tiles {
		if t.Terrain != TerrainOcean {
			continue
		}
		for n := range g.NeighborsOf(coord) {
			if !n.Terrain.IsWater() {
				toMark = append(toMark, coord)
				break
			}
		}
	}

	for _, coord := range toMark {
		t := g.tiles[coord]
		t.Terrain = TerrainCoast
		t.MoveCost = TerrainCoast.BaseMoveCost()
	}
}

// octaveNoise generates fractal noise by layering multiple frequencies.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}

// TerrainCounts returns a summary of terrain type distribution.
func TerrainCounts(g *Grid) map[Terrain]int {
	counts := make(map[Terrain]int)
	for _, t := range g.tiles {
		counts[t.Terrain]++
	}
	return counts
}

// TerrainName returns a human-readable name for a terrain type.
func TerrainName(t Terrain) string {
	switch t {
	case TerrainGrassland:
		return "Grassland"
	case TerrainPlains:
		return "Plains"
	case TerrainDesert:
		return "Desert"
	case TerrainTundra:
		return "Tundra"
	case TerrainHill:
		return "Hill"
	case TerrainForest:
		return "Forest"
	case TerrainJungle:
		return "Jungle"
	case TerrainMountain:
		return "Mountain"
	case TerrainCoast:
		return "Coast"
	case TerrainOcean:
		return "Ocean"
	default:
		return "Unknown"
	}
}
