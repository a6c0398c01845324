package world

import "fmt"

// Movement is a quantity of movement points, stored in fixed-point sixtieths
// so that every cost the rules produce (whole points, 1/2, 1/3, 1/10) is
// represented exactly and compares exactly.
type Movement int64

// PointScale is the number of Movement units in one whole movement point.
const PointScale Movement = 60

// Points returns n whole movement points.
func Points(n int) Movement {
	return Movement(n) * PointScale
}

// Fraction returns num/den movement points. Denominators that do not divide
// PointScale are rounded up so a positive fraction never becomes free.
func Fraction(num, den int) Movement {
	if den <= 0 {
		return 0
	}
	scaled := int64(num) * int64(PointScale)
	q := scaled / int64(den)
	if scaled%int64(den) != 0 && scaled > 0 {
		q++
	}
	return Movement(q)
}

// Float returns the movement as floating-point points, for display only.
func (m Movement) Float() float64 {
	return float64(m) / float64(PointScale)
}

// String formats whole points as "2" and fractional ones as "1 1/2".
func (m Movement) String() string {
	whole := m / PointScale
	rem := m % PointScale
	if rem == 0 {
		return fmt.Sprintf("%d", whole)
	}
	g := gcd(int64(rem), int64(PointScale))
	num, den := int64(rem)/g, int64(PointScale)/g
	if whole == 0 {
		return fmt.Sprintf("%d/%d", num, den)
	}
	return fmt.Sprintf("%d %d/%d", whole, num, den)
}

func gcd(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
