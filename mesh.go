package lightprobe

import (
	"github.com/soypat/lightprobe/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Mesh is the result of a build: the probes with their hull normals and the
// cells covering all of space. Inner tetrahedra precede outer cells.
//
// Query methods do not modify the Mesh and are safe for concurrent use.
type Mesh struct {
	Probes     []Vertex
	Tetrahedra []Tetrahedron

	// index seeds point location when no start cell is known.
	index *pointIndex
}

// InnerCount returns the number of inner tetrahedra.
func (m *Mesh) InnerCount() int {
	n := 0
	for n < len(m.Tetrahedra) && m.Tetrahedra[n].IsInner() {
		n++
	}
	return n
}

// Reindex rebuilds the spatial index used to find a starting cell for
// point location. It must be called after Tetrahedra or Probes are replaced,
// for instance when a Mesh is decoded from a file.
func (m *Mesh) Reindex() {
	inner := m.InnerCount()
	pts := make([]indexedPoint, inner)
	for i := range pts {
		v := m.Tetrahedra[i].Vertices
		pts[i] = indexedPoint{
			pos: d3.Centroid(m.Probes[v[0]].Position, m.Probes[v[1]].Position,
				m.Probes[v[2]].Position, m.Probes[v[3]].Position),
			id: i,
		}
	}
	m.index = newPointIndex(pts)
}

// Weights returns the interpolation weights of pos with respect to the
// vertices of cell. For inner tetrahedra these are barycentric coordinates.
// For outer cells the first three are the barycentric coordinates of pos in
// the hull face swept along the vertex normals and the fourth is zero, or
// -1 when pos lies behind the hull face.
// A point is inside cell when all weights are non-negative.
func (m *Mesh) Weights(cell int, pos r3.Vec) [4]float64 {
	t := &m.Tetrahedra[cell]
	if t.IsInner() {
		return m.tetrahedronWeights(t, pos)
	}
	return m.outerCellWeights(t, pos)
}

func (m *Mesh) tetrahedronWeights(t *Tetrahedron, pos r3.Vec) [4]float64 {
	w := t.Matrix.MulVec(r3.Sub(pos, m.Probes[t.Vertices[3]].Position))
	return [4]float64{w.X, w.Y, w.Z, 1 - w.X - w.Y - w.Z}
}

func (m *Mesh) outerCellWeights(t *Tetrahedron, pos r3.Vec) [4]float64 {
	v0 := &m.Probes[t.Vertices[0]]
	v1 := &m.Probes[t.Vertices[1]]
	v2 := &m.Probes[t.Vertices[2]]

	normal := d3.TriangleNormal(v0.Position, v1.Position, v2.Position)
	if r3.Dot(r3.Sub(pos, v0.Position), normal) < 0 {
		// Behind the hull face, continue with the inner tetrahedron.
		return [4]float64{0, 0, 0, -1}
	}

	coef := r3.Add(t.Matrix.MulVec(pos), t.Offset)
	var s float64
	if t.IsQuadratic() {
		s = solveQuadratic(coef.X, coef.Y, coef.Z)
	} else {
		s = solveCubic(coef.X, coef.Y, coef.Z)
	}
	w := triangleBarycentric(
		r3.Add(v0.Position, r3.Scale(s, v0.Normal)),
		r3.Add(v1.Position, r3.Scale(s, v1.Normal)),
		r3.Add(v2.Position, r3.Scale(s, v2.Normal)),
		pos,
	)
	return [4]float64{w.X, w.Y, w.Z, 0}
}

// Locate walks the mesh from cell start towards pos and returns the cell
// containing pos and its interpolation weights. If start is out of range the
// walk begins at the inner tetrahedron whose centroid is nearest to pos.
// Passing the result of a previous query at a nearby position as start keeps
// walks short. Locate returns -1 for an empty mesh.
//
// Numerical noise may stop the walk one cell short, in which case a weight
// is slightly negative.
func (m *Mesh) Locate(pos r3.Vec, start int) (cell int, weights [4]float64) {
	n := len(m.Tetrahedra)
	if n == 0 {
		return -1, weights
	}
	cell = start
	if cell < 0 || cell >= n {
		cell = m.nearestCell(pos)
	}
	last := -1
	for i := 0; i < n; i++ {
		weights = m.Weights(cell, pos)
		if weights[0] >= 0 && weights[1] >= 0 && weights[2] >= 0 && weights[3] >= 0 {
			break
		}
		next := m.Tetrahedra[cell].Neighbours[minWeight(weights)]
		if next < 0 || next == last {
			// Bouncing between two cells due to precision errors.
			break
		}
		last, cell = cell, next
	}
	return cell, weights
}

// Interpolate blends the coefficients of the probes around pos into out
// and returns the cell used, as Locate does. Only the first len(out)
// coefficients are blended. Probes with fewer coefficients contribute zero
// to the missing ones.
func (m *Mesh) Interpolate(pos r3.Vec, start int, out []r3.Vec) int {
	for i := range out {
		out[i] = r3.Vec{}
	}
	cell, w := m.Locate(pos, start)
	if cell < 0 {
		return cell
	}
	t := &m.Tetrahedra[cell]
	for k, vi := range t.Vertices {
		if vi < 0 || w[k] == 0 {
			continue
		}
		coeffs := m.Probes[vi].Coefficients
		for i := range out {
			if i >= len(coeffs) {
				break
			}
			out[i] = r3.Add(out[i], r3.Scale(w[k], coeffs[i]))
		}
	}
	return cell
}

func (m *Mesh) nearestCell(pos r3.Vec) int {
	if m.index == nil {
		return 0
	}
	id, ok := m.index.nearest(pos)
	if !ok {
		return 0
	}
	return id
}

// minWeight returns the index of the smallest weight. Ties go to the
// later index.
func minWeight(w [4]float64) int {
	switch {
	case w[0] < w[1] && w[0] < w[2] && w[0] < w[3]:
		return 0
	case w[1] < w[2] && w[1] < w[3]:
		return 1
	case w[2] < w[3]:
		return 2
	}
	return 3
}

// triangleBarycentric returns the barycentric coordinates of the projection
// of p onto the plane of triangle (p0,p1,p2). Degenerate triangles weigh
// their vertices equally.
func triangleBarycentric(p0, p1, p2, p r3.Vec) r3.Vec {
	n := d3.TriangleNormal(p0, p1, p2)
	area2 := r3.Norm2(n)
	if area2 == 0 {
		return r3.Vec{X: 1. / 3, Y: 1. / 3, Z: 1. / 3}
	}
	w0 := r3.Dot(d3.TriangleNormal(p, p1, p2), n) / area2
	w1 := r3.Dot(d3.TriangleNormal(p0, p, p2), n) / area2
	return r3.Vec{X: w0, Y: w1, Z: 1 - w0 - w1}
}
