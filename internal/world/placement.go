// Capital placement: finds suitable starting locations for civilizations.
package world

import (
	"math/rand"
	"sort"
)

// CapitalSeed is a chosen starting location for a civilization.
type CapitalSeed struct {
	Coord HexCoord
	Score float64 // Desirability score
	Name  string
}

// PlaceCapitals picks up to n well-spaced land tiles for civilization capitals,
// best locations first. Fewer than n are returned on maps too small to keep
// the spacing.
func PlaceCapitals(g *Grid, n int, seed int64) []CapitalSeed {
	rng := rand.New(rand.NewSource(seed + 200))

	type scored struct {
		coord HexCoord
		score float64
	}
	var candidates []scored

	for _, coord := range g.Coords() {
		t := g.tiles[coord]
		if t.Terrain.IsWater() || t.Terrain == TerrainMountain {
			continue
		}
		if s := capitalScore(g, coord, t); s > 0 {
			candidates = append(candidates, scored{coord, s})
		}
	}

	// Stable sort keeps ties in coordinate order so placement is reproducible.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	// Spread capitals across the map: at least a third of the diameter apart,
	// but never closer than 3 steps.
	minDist := max(3, (2*g.Radius)/3)

	var seeds []CapitalSeed
	for _, c := range candidates {
		if len(seeds) >= n {
			break
		}
		if tooClose(c.coord, seeds, minDist) {
			continue
		}
		seeds = append(seeds, CapitalSeed{Coord: c.coord, Score: c.score})
	}

	names := generateNames(rng, len(seeds))
	for i := range seeds {
		seeds[i].Name = names[i]
	}

	return seeds
}

// capitalScore evaluates how desirable a tile is for a capital.
// Prefers open land with varied, passable surroundings and nearby water.
func capitalScore(g *Grid, coord HexCoord, t *Tile) float64 {
	score := 0.0

	switch t.Terrain {
	case TerrainGrassland, TerrainPlains:
		score += 3.0
	case TerrainHill:
		score += 2.5 // Defensible, sees further
	case TerrainForest, TerrainJungle:
		score += 1.0
	case TerrainDesert, TerrainTundra:
		score += 0.5
	default:
		return 0
	}

	terrainTypes := make(map[Terrain]bool)
	water := false
	for n := range g.NeighborsOf(coord) {
		if n.Terrain.IsWater() {
			water = true
			continue
		}
		terrainTypes[n.Terrain] = true
	}
	score += float64(len(terrainTypes)) * 0.3
	if water {
		score += 0.5
	}

	return score
}

func tooClose(coord HexCoord, existing []CapitalSeed, minDist int) bool {
	for _, s := range existing {
		if Distance(coord, s.Coord) < minDist {
			return true
		}
	}
	return false
}

// generateNames produces procedural civilization names by combining syllables.
func generateNames(rng *rand.Rand, count int) []string {
	prefixes := []string{
		"Iron", "Green", "Ash", "Stone", "Cross", "Black", "Silver", "Red",
		"White", "High", "Far", "Deep", "Gold", "Frost", "Storm", "Thorn",
	}
	suffixes := []string{
		"haven", "ford", "wick", "gate", "keep", "stead", "dale", "crest",
		"vale", "port", "bury", "moor", "ridge", "watch", "reach", "helm",
	}

	used := make(map[string]bool)
	names := make([]string, 0, count)

	for len(names) < count {
		name := prefixes[rng.Intn(len(prefixes))] + suffixes[rng.Intn(len(suffixes))]
		if !used[name] {
			used[name] = true
			names = append(names, name)
		}
	}

	return names
}
