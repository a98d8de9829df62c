package lightprobe

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestSolveCubic(t *testing.T) {
	const tol = 1e-7
	for _, test := range []struct {
		roots [3]float64
	}{
		{roots: [3]float64{1, 2, 3}},
		{roots: [3]float64{-math.Sqrt(3), -math.Sqrt(3), math.Sqrt(3)}},
		{roots: [3]float64{-0.5, -0.5, 5}},
		{roots: [3]float64{2, 2, 2}},
		{roots: [3]float64{-1, -1, -1}},
	} {
		r := test.roots
		b := -(r[0] + r[1] + r[2])
		c := r[0]*r[1] + r[0]*r[2] + r[1]*r[2]
		d := -r[0] * r[1] * r[2]
		want := math.Max(r[0], math.Max(r[1], r[2]))
		got := solveCubic(b, c, d)
		if math.Abs(got-want) > tol {
			t.Errorf("roots %v: got %v, want %v", r, got, want)
		}
	}
	// t³ + t - 2 = (t-1)(t²+t+2) has a single real root.
	if got := solveCubic(0, 1, -2); math.Abs(got-1) > 1e-9 {
		t.Errorf("single real root: got %v, want 1", got)
	}
}

func TestSolveQuadratic(t *testing.T) {
	for _, test := range []struct {
		a, b, c float64
		want    float64
	}{
		{a: 1, b: -3, c: 2, want: 2},
		{a: -1, b: 3, c: -2, want: 2},
		{a: 1, b: 2, c: 5, want: -1}, // no real root, vertex.
		{a: 0, b: 2, c: -4, want: 2}, // linear.
		{a: 0, b: 0, c: 1, want: 0},
	} {
		got := solveQuadratic(test.a, test.b, test.c)
		if math.Abs(got-test.want) > 1e-12 {
			t.Errorf("%gt²%+gt%+g: got %v, want %v", test.a, test.b, test.c, got, test.want)
		}
	}
}

func TestMinWeight(t *testing.T) {
	for _, test := range []struct {
		w    [4]float64
		want int
	}{
		{w: [4]float64{-1, 0, 0, 0}, want: 0},
		{w: [4]float64{0, -1, 0, 0}, want: 1},
		{w: [4]float64{0, 0, -1, 0}, want: 2},
		{w: [4]float64{0, 0, 0, -1}, want: 3},
		{w: [4]float64{-1, -1, 0, 0}, want: 1},
		{w: [4]float64{-1, 0, 0, -1}, want: 3},
	} {
		if got := minWeight(test.w); got != test.want {
			t.Errorf("%v: got %d, want %d", test.w, got, test.want)
		}
	}
}

func TestTriangleBarycentric(t *testing.T) {
	p0, p1, p2 := r3.Vec{}, r3.Vec{X: 1}, r3.Vec{Y: 1}
	got := triangleBarycentric(p0, p1, p2, r3.Vec{X: 0.25, Y: 0.5, Z: 7})
	want := r3.Vec{X: 0.25, Y: 0.25, Z: 0.5}
	if r3.Norm(r3.Sub(got, want)) > 1e-12 {
		t.Errorf("got %v, want %v", got, want)
	}
}
