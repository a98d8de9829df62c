package lightprobe

import "math"

// solveCubic returns the largest real root of t³ + b·t² + c·t + d = 0.
func solveCubic(b, c, d float64) float64 {
	// Depressed cubic s³ + p·s + q = 0 with t = s - b/3.
	p := c - b*b/3
	q := 2*b*b*b/27 - b*c/3 + d
	shift := -b / 3

	disc := q*q/4 + p*p*p/27
	if disc > 0 {
		// Single real root, Cardano.
		s := math.Sqrt(disc)
		return math.Cbrt(-q/2+s) + math.Cbrt(-q/2-s) + shift
	}
	if p == 0 {
		// Triple root.
		return shift
	}
	// Three real roots, trigonometric method. k=0 is the largest.
	r := 2 * math.Sqrt(-p/3)
	arg := 3 * q / (p * r)
	arg = math.Max(-1, math.Min(1, arg))
	return r*math.Cos(math.Acos(arg)/3) + shift
}

// solveQuadratic returns the largest real root of a·t² + b·t + c = 0.
// When there is no real root the extremum -b/2a is returned.
// A vanishing a falls back to the linear equation.
func solveQuadratic(a, b, c float64) float64 {
	if a == 0 {
		if b == 0 {
			return 0
		}
		return -c / b
	}
	disc := b*b - 4*a*c
	if disc < 0 {
		return -b / (2 * a)
	}
	s := math.Sqrt(disc)
	return math.Max((-b+s)/(2*a), (-b-s)/(2*a))
}
