package lightprobe_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/soypat/lightprobe"
	"github.com/soypat/lightprobe/internal/d3"
	gr3 "gonum.org/v1/gonum/spatial/r3"
)

func TestLocateInside(t *testing.T) {
	const tol = 1e-9
	var d lightprobe.Delaunay
	mesh := d.Build(randomProbes(5, 40))
	rng := rand.New(rand.NewSource(6))
	last := -1
	for i := 0; i < 200; i++ {
		// Convex combination of probes lies inside the hull.
		a, b, c := mesh.Probes[rng.Intn(40)], mesh.Probes[rng.Intn(40)], mesh.Probes[rng.Intn(40)]
		pos := d3.Centroid(a.Position, b.Position, c.Position)
		cell, w := mesh.Locate(pos, last)
		if cell < 0 {
			t.Fatalf("no cell found for %v", pos)
		}
		last = cell
		if !mesh.Tetrahedra[cell].IsInner() {
			// Hull faces may be hit exactly.
			continue
		}
		sum := w[0] + w[1] + w[2] + w[3]
		if math.Abs(sum-1) > tol {
			t.Errorf("weights %v sum to %v", w, sum)
		}
		var got gr3.Vec
		for k, v := range mesh.Tetrahedra[cell].Vertices {
			got = gr3.Add(got, gr3.Scale(w[k], mesh.Probes[v].Position))
		}
		if !d3.EqualWithin(got, pos, 1e-6) {
			t.Errorf("weights %v reconstruct %v, want %v", w, got, pos)
		}
		for k := range w {
			if w[k] < -tol {
				t.Errorf("cell %d: negative weight %v for interior point", cell, w)
			}
		}
	}
}

func TestLocateOuter(t *testing.T) {
	const tol = 1e-6
	var d lightprobe.Delaunay
	mesh := d.Build(probesAt(regularTetrahedron...))
	for face := 0; face < 4; face++ {
		// Face opposite vertex i, pushed out to twice its distance from the center.
		var tri []gr3.Vec
		for i, p := range regularTetrahedron {
			if i != face {
				tri = append(tri, p)
			}
		}
		pos := gr3.Scale(2, d3.Centroid(tri...))
		cell, w := mesh.Locate(pos, 0)
		if !mesh.Tetrahedra[cell].IsOuter() {
			t.Fatalf("face %d: got inner cell %d, want outer cell", face, cell)
		}
		for k := 0; k < 3; k++ {
			if math.Abs(w[k]-1./3) > tol {
				t.Errorf("face %d: got weights %v, want 1/3 each", face, w)
				break
			}
		}
		if w[3] != 0 {
			t.Errorf("face %d: got w[3]=%v, want 0", face, w[3])
		}
		if mesh.Tetrahedra[cell].Contains(face) {
			t.Errorf("face %d: outer cell uses opposite vertex", face)
		}
	}
}

func TestLocateFromAnyStart(t *testing.T) {
	var d lightprobe.Delaunay
	pts := append(append([]gr3.Vec(nil), regularTetrahedron...), gr3.Vec{})
	mesh := d.Build(probesAt(pts...))
	pos := gr3.Vec{X: 0.2, Y: 0.3, Z: 0.1}
	want, _ := mesh.Locate(pos, -1)
	for start := range mesh.Tetrahedra {
		got, w := mesh.Locate(pos, start)
		if got != want {
			t.Errorf("start %d: got cell %d (weights %v), want %d", start, got, w, want)
		}
	}
}

func TestInterpolate(t *testing.T) {
	const tol = 1e-9
	probes := probesAt(regularTetrahedron...)
	for i := range probes {
		// Linear field f(p) = 2p + (1,0,0) must be reproduced inside the hull.
		p := probes[i].Position
		probes[i].Coefficients = []gr3.Vec{gr3.Add(gr3.Scale(2, p), gr3.Vec{X: 1})}
	}
	var d lightprobe.Delaunay
	mesh := d.Build(probes)
	pos := gr3.Vec{X: 0.1, Y: -0.2, Z: 0.05}
	out := make([]gr3.Vec, 2)
	out[1] = gr3.Vec{X: 5}
	cell := mesh.Interpolate(pos, -1, out)
	if cell != 0 {
		t.Fatalf("got cell %d, want 0", cell)
	}
	want := gr3.Add(gr3.Scale(2, pos), gr3.Vec{X: 1})
	if !d3.EqualWithin(out[0], want, tol) {
		t.Errorf("got %v, want %v", out[0], want)
	}
	if out[1] != (gr3.Vec{}) {
		t.Errorf("missing coefficient: got %v, want zero", out[1])
	}
}

func TestReindex(t *testing.T) {
	var d lightprobe.Delaunay
	built := d.Build(randomProbes(7, 30))
	decoded := lightprobe.Mesh{Probes: built.Probes, Tetrahedra: built.Tetrahedra}
	decoded.Reindex()
	pos := gr3.Vec{X: 1, Y: 2, Z: -1}
	c1, w1 := built.Locate(pos, -1)
	c2, w2 := decoded.Locate(pos, -1)
	if c1 != c2 || w1 != w2 {
		t.Errorf("reindexed mesh: got (%d,%v), want (%d,%v)", c2, w2, c1, w1)
	}
}
