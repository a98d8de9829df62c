package lightprobe

import (
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	// OuterCell in Vertices[3] marks an unbounded cell attached to a hull
	// face whose extrapolation polynomial is a monic cubic.
	OuterCell = -1
	// QuadraticOuterCell in Vertices[3] marks an outer cell whose cubic
	// degenerated. Its polynomial is quadratic and is not normalized.
	QuadraticOuterCell = -2
)

// Vertex is a light probe.
type Vertex struct {
	Position r3.Vec
	// Normal is the smoothed outward normal of the convex hull at the probe.
	// It is the zero vector for probes strictly inside the hull.
	Normal r3.Vec
	// Coefficients is an opaque payload, such as spherical harmonics
	// coefficients, carried through the build and blended by Mesh.Interpolate.
	Coefficients []r3.Vec
}

// NewVertex returns a probe at pos with no coefficients.
func NewVertex(pos r3.Vec) Vertex {
	return Vertex{Position: pos}
}

// CircumSphere is the sphere through the four vertices of a tetrahedron.
type CircumSphere struct {
	Center        r3.Vec
	RadiusSquared float64
}

// newCircumSphere calculates the circumsphere of 4 points in R^3.
// The center c solves (pi-p0)·c = (|pi|²-|p0|²)/2 for i=1,2,3.
func newCircumSphere(p0, p1, p2, p3 r3.Vec) CircumSphere {
	e1, e2, e3 := r3.Sub(p1, p0), r3.Sub(p2, p0), r3.Sub(p3, p0)
	m := rowsMat3(e1, e2, e3).Inv()
	n := r3.Vec{
		X: r3.Dot(r3.Add(p1, p0), e1) * 0.5,
		Y: r3.Dot(r3.Add(p2, p0), e2) * 0.5,
		Z: r3.Dot(r3.Add(p3, p0), e3) * 0.5,
	}
	center := m.MulVec(n)
	return CircumSphere{
		Center:        center,
		RadiusSquared: r3.Norm2(r3.Sub(p0, center)),
	}
}

// Contains reports whether p lies inside the sphere by more than margin,
// measured on squared distances.
func (s CircumSphere) Contains(p r3.Vec, margin float64) bool {
	return r3.Norm2(r3.Sub(p, s.Center)) < s.RadiusSquared-margin
}

// Tetrahedron is either an inner tetrahedron of the Delaunay mesh or
// an outer cell extending a convex hull face to infinity.
type Tetrahedron struct {
	// Vertices holds probe indices. Vertices[3] is OuterCell or
	// QuadraticOuterCell for outer cells.
	Vertices [4]int
	// Neighbours[i] is the cell across the face opposite vertex i for
	// inner tetrahedra. For outer cells Neighbours[i] for i<3 is the
	// outer cell across the hull edge opposite vertex i and Neighbours[3]
	// is the adjoining inner tetrahedron. -1 means unresolved.
	Neighbours [4]int
	// Matrix maps a point relative to Vertices[3] to the first three
	// barycentric coordinates for inner tetrahedra. For outer cells
	// Matrix*p + Offset gives the extrapolation polynomial coefficients.
	Matrix Mat3
	// Offset is only valid for outer cells.
	Offset r3.Vec
	// Sphere is only valid for inner tetrahedra.
	Sphere CircumSphere
}

func newTetrahedron(probes []Vertex, v0, v1, v2, v3 int) Tetrahedron {
	t := Tetrahedron{
		Vertices:   [4]int{v0, v1, v2, v3},
		Neighbours: [4]int{-1, -1, -1, -1},
	}
	if v3 >= 0 {
		t.Sphere = newCircumSphere(probes[v0].Position, probes[v1].Position,
			probes[v2].Position, probes[v3].Position)
	}
	return t
}

func newOuterCell(v0, v1, v2 int) Tetrahedron {
	return Tetrahedron{
		Vertices:   [4]int{v0, v1, v2, OuterCell},
		Neighbours: [4]int{-1, -1, -1, -1},
	}
}

// IsInner reports whether t is a bounded tetrahedron.
func (t *Tetrahedron) IsInner() bool { return t.Vertices[3] >= 0 }

// IsOuter reports whether t is an outer cell, cubic or quadratic.
func (t *Tetrahedron) IsOuter() bool { return t.Vertices[3] < 0 }

// IsQuadratic reports whether t is an outer cell solved with a quadratic.
func (t *Tetrahedron) IsQuadratic() bool { return t.Vertices[3] == QuadraticOuterCell }

// Contains reports whether the probe index is one of t's vertices.
func (t *Tetrahedron) Contains(vertex int) bool {
	return t.Vertices[0] == vertex || t.Vertices[1] == vertex ||
		t.Vertices[2] == vertex || t.Vertices[3] == vertex
}
