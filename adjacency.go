package lightprobe

import (
	"github.com/soypat/lightprobe/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// computeAdjacency links neighbouring tetrahedra, creates an outer cell on
// every hull face, links outer cells along hull edges and finally sets the
// hull probes' normals.
func (d *Delaunay) computeAdjacency() {
	innerCount := len(d.tetrahedra)

	d.triangles = d.triangles[:0]
	for i := 0; i < innerCount; i++ {
		d.appendFaces(i)
	}
	d.shared = resetFlags(d.shared, len(d.triangles))
	for i := range d.triangles {
		tri := d.triangles[i]
		for k := i + 1; k < len(d.triangles); k++ {
			other := &d.triangles[k]
			if tri.same(other) {
				d.tetrahedra[tri.tetrahedron].Neighbours[tri.index] = other.tetrahedron
				d.tetrahedra[other.tetrahedron].Neighbours[other.index] = tri.tetrahedron
				d.shared[i] = true
				d.shared[k] = true
				break
			}
		}
		if !d.shared[i] {
			d.addOuterCell(tri)
		}
	}

	d.linkOuterCells(innerCount)

	for i := range d.probes {
		d.probes[i].Normal = d3.Unit(d.probes[i].Normal)
	}
}

// addOuterCell creates the outer cell over hull face tri, facing out.
func (d *Delaunay) addOuterCell(tri triangle) {
	p0 := &d.probes[tri.vertices[0]]
	p1 := &d.probes[tri.vertices[1]]
	p2 := &d.probes[tri.vertices[2]]
	p3 := d.probes[tri.opposite].Position

	normal := d3.TriangleNormal(p0.Position, p1.Position, p2.Position)
	flip := r3.Dot(normal, r3.Sub(p3, p0.Position)) > 0
	if flip {
		normal = r3.Scale(-1, normal)
	}

	// Area weighted accumulation, normalized once all faces are visited.
	p0.Normal = r3.Add(p0.Normal, normal)
	p1.Normal = r3.Add(p1.Normal, normal)
	p2.Normal = r3.Add(p2.Normal, normal)

	v1, v2 := tri.vertices[1], tri.vertices[2]
	if flip {
		v1, v2 = v2, v1
	}
	cell := newOuterCell(tri.vertices[0], v1, v2)
	cell.Neighbours[3] = tri.tetrahedron
	d.tetrahedra[tri.tetrahedron].Neighbours[tri.index] = len(d.tetrahedra)
	d.tetrahedra = append(d.tetrahedra, cell)
}

// linkOuterCells links the outer cells starting at index first
// to the outer cells sharing each of their hull edges.
func (d *Delaunay) linkOuterCells(first int) {
	d.edges = d.edges[:0]
	for i := first; i < len(d.tetrahedra); i++ {
		d.appendEdges(i)
	}
	for i := range d.edges {
		for k := i + 1; k < len(d.edges); k++ {
			ei, ek := &d.edges[i], &d.edges[k]
			if ei.same(ek) {
				d.tetrahedra[ei.tetrahedron].Neighbours[ei.index] = ek.tetrahedron
				d.tetrahedra[ek.tetrahedron].Neighbours[ek.index] = ei.tetrahedron
			}
		}
	}
}
