package world

// IdleUnitTiles returns the coordinates of tiles whose occupant satisfies
// isIdle, in Less order.
func (g *Grid) IdleUnitTiles(isIdle func(*Unit) bool) []HexCoord {
	var result []HexCoord
	for _, c := range g.Coords() {
		t := g.tiles[c]
		if t.Occupant != nil && isIdle(t.Occupant) {
			result = append(result, c)
		}
	}
	return result
}

// NextIdleUnit picks the idle-unit tile that follows current in Less order,
// wrapping to the first. If current holds no idle unit (or is not on the map)
// the first idle-unit tile is returned. ok is false when no unit is idle.
func NextIdleUnit(g *Grid, current HexCoord, isIdle func(*Unit) bool) (HexCoord, bool) {
	tiles := g.IdleUnitTiles(isIdle)
	if len(tiles) == 0 {
		return HexCoord{}, false
	}
	for i, c := range tiles {
		if c == current {
			return tiles[(i+1)%len(tiles)], true
		}
	}
	return tiles[0], true
}
