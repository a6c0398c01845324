package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNeighbors_FixedOrder(t *testing.T) {
	got := HexCoord{Q: 2, R: -1}.Neighbors()
	want := [6]HexCoord{
		{Q: 3, R: -1}, {Q: 3, R: -2}, {Q: 2, R: -2},
		{Q: 1, R: -1}, {Q: 1, R: 0}, {Q: 2, R: 0},
	}
	assert.Equal(t, want, got)

	for _, n := range got {
		assert.Equal(t, 1, Distance(HexCoord{Q: 2, R: -1}, n))
	}
}

func TestCoordEquality_AsMapKey(t *testing.T) {
	m := map[HexCoord]int{{Q: 1, R: -1}: 7}
	built := HexCoord{}.Add(HexCoord{Q: 1, R: 0}).Add(HexCoord{Q: 0, R: -1})
	assert.Equal(t, 7, m[built])
}

func TestDistance(t *testing.T) {
	tests := []struct {
		a, b HexCoord
		want int
	}{
		{HexCoord{}, HexCoord{}, 0},
		{HexCoord{}, HexCoord{Q: 3, R: 0}, 3},
		{HexCoord{}, HexCoord{Q: 2, R: -3}, 3},
		{HexCoord{Q: -2, R: 1}, HexCoord{Q: 1, R: 1}, 3},
		{HexCoord{Q: 1, R: 1}, HexCoord{Q: -1, R: -1}, 4},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Distance(tt.a, tt.b), "%v -> %v", tt.a, tt.b)
		assert.Equal(t, tt.want, Distance(tt.b, tt.a), "symmetric %v -> %v", tt.b, tt.a)
	}
}

func TestRingAndSpiral(t *testing.T) {
	center := HexCoord{Q: 1, R: 2}
	for k := 1; k <= 4; k++ {
		ring := Ring(center, k)
		require.Len(t, ring, 6*k)
		seen := make(map[HexCoord]bool)
		for _, c := range ring {
			assert.Equal(t, k, Distance(center, c))
			assert.False(t, seen[c], "duplicate %v in ring %d", c, k)
			seen[c] = true
		}
	}

	assert.Equal(t, []HexCoord{center}, Ring(center, 0))
	assert.Len(t, Spiral(center, 2), 19)
	assert.Equal(t, center, Spiral(center, 2)[0])
}

func TestCompare(t *testing.T) {
	assert.True(t, Less(HexCoord{Q: 5, R: -1}, HexCoord{Q: -5, R: 0}))
	assert.True(t, Less(HexCoord{Q: -1, R: 0}, HexCoord{Q: 0, R: 0}))
	assert.Equal(t, 0, Compare(HexCoord{Q: 1, R: 1}, HexCoord{Q: 1, R: 1}))
	assert.Equal(t, 1, Compare(HexCoord{Q: 0, R: 1}, HexCoord{Q: 1, R: 0}))
}

func TestMovement(t *testing.T) {
	assert.Equal(t, Movement(60), Points(1))
	assert.Equal(t, Movement(30), Fraction(1, 2))
	assert.Equal(t, Movement(20), Fraction(1, 3))
	assert.Equal(t, Movement(6), Fraction(1, 10))
	assert.Equal(t, Movement(9), Fraction(1, 7), "non-dividing denominators round up")
	assert.Equal(t, Points(1), Fraction(1, 3)*3, "thirds add up exactly")

	assert.Equal(t, "2", Points(2).String())
	assert.Equal(t, "1/2", Fraction(1, 2).String())
	assert.Equal(t, "1 1/3", (Points(1) + Fraction(1, 3)).String())
	assert.InDelta(t, 1.5, Fraction(3, 2).Float(), 1e-9)
}
