// Package world provides the hex grid, tiles, units, and the map they live on.
// Uses axial coordinates (q, r) for the hex grid.
package world

// HexCoord represents a position on the hex grid using axial coordinates.
// The third cube coordinate s is derived: s = -q - r.
// HexCoord is a comparable value and is used directly as a map key.
type HexCoord struct {
	Q int `json:"q"`
	R int `json:"r"`
}

// S returns the implicit third cube coordinate.
func (h HexCoord) S() int {
	return -h.Q - h.R
}

// Add returns the component-wise sum of two coordinates.
func (h HexCoord) Add(o HexCoord) HexCoord {
	return HexCoord{Q: h.Q + o.Q, R: h.R + o.R}
}

// HexNeighborDirections defines the six neighbor offsets in axial coordinates,
// in the fixed order E, NE, NW, W, SW, SE.
var HexNeighborDirections = [6]HexCoord{
	{Q: 1, R: 0},
	{Q: 1, R: -1},
	{Q: 0, R: -1},
	{Q: -1, R: 0},
	{Q: -1, R: 1},
	{Q: 0, R: 1},
}

// Neighbors returns the six adjacent hex coordinates.
func (h HexCoord) Neighbors() [6]HexCoord {
	var result [6]HexCoord
	for i, dir := range HexNeighborDirections {
		result[i] = h.Add(dir)
	}
	return result
}

// Distance returns the hex distance between two coordinates.
// It counts steps, not movement cost.
func Distance(a, b HexCoord) int {
	dq := abs(a.Q - b.Q)
	dr := abs(a.R - b.R)
	ds := abs(a.S() - b.S())
	// Max of the three absolute differences in cube coordinates.
	return max(dq, dr, ds)
}

// Ring returns the coordinates exactly k steps from center, walking the ring
// from its SW corner. Ring(c, 0) is just c.
func Ring(center HexCoord, k int) []HexCoord {
	if k <= 0 {
		return []HexCoord{center}
	}
	result := make([]HexCoord, 0, 6*k)
	dir := HexNeighborDirections[4]
	cur := HexCoord{Q: center.Q + dir.Q*k, R: center.R + dir.R*k}
	for side := 0; side < 6; side++ {
		step := HexNeighborDirections[side]
		for i := 0; i < k; i++ {
			result = append(result, cur)
			cur = cur.Add(step)
		}
	}
	return result
}

// Spiral returns every coordinate within k steps of center, innermost ring first.
func Spiral(center HexCoord, k int) []HexCoord {
	result := []HexCoord{center}
	for i := 1; i <= k; i++ {
		result = append(result, Ring(center, i)...)
	}
	return result
}

// Less orders coordinates row by row (R, then Q). This is the enumeration
// order used wherever the grid must be walked deterministically.
func Less(a, b HexCoord) bool {
	if a.R != b.R {
		return a.R < b.R
	}
	return a.Q < b.Q
}

// Compare is Less in the three-way form expected by slices.SortFunc.
func Compare(a, b HexCoord) int {
	switch {
	case Less(a, b):
		return -1
	case Less(b, a):
		return 1
	default:
		return 0
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
