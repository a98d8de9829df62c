package lightprobe

// triangle tags one face of a tetrahedron during cavity and adjacency scans.
type triangle struct {
	tetrahedron int // owning tetrahedron index.
	index       int // face index in the owning tetrahedron, opposite vertex.
	vertices    [3]int
	// opposite is the owning tetrahedron's vertex not on the face.
	// Used to orient the face normal outwards.
	opposite int
}

// same reports whether t and o are the same face regardless of vertex order.
func (t *triangle) same(o *triangle) bool {
	a, b := t.vertices, o.vertices
	return (a[0] == b[0] && a[1] == b[1] && a[2] == b[2]) ||
		(a[0] == b[0] && a[1] == b[2] && a[2] == b[1]) ||
		(a[0] == b[1] && a[1] == b[0] && a[2] == b[2]) ||
		(a[0] == b[1] && a[1] == b[2] && a[2] == b[0]) ||
		(a[0] == b[2] && a[1] == b[0] && a[2] == b[1]) ||
		(a[0] == b[2] && a[1] == b[1] && a[2] == b[0])
}

// appendFaces appends the four faces of tetrahedron ti to the scratch
// triangles. Face i is opposite vertex i.
func (d *Delaunay) appendFaces(ti int) {
	v := d.tetrahedra[ti].Vertices
	d.triangles = append(d.triangles,
		triangle{tetrahedron: ti, index: 0, vertices: [3]int{v[1], v[3], v[2]}, opposite: v[0]},
		triangle{tetrahedron: ti, index: 1, vertices: [3]int{v[0], v[2], v[3]}, opposite: v[1]},
		triangle{tetrahedron: ti, index: 2, vertices: [3]int{v[0], v[3], v[1]}, opposite: v[2]},
		triangle{tetrahedron: ti, index: 3, vertices: [3]int{v[0], v[1], v[2]}, opposite: v[3]},
	)
}

// edge tags one hull edge of an outer cell.
type edge struct {
	tetrahedron int // owning outer cell index.
	index       int // edge index in the outer cell, opposite vertex.
	v0, v1      int
}

func (e *edge) same(o *edge) bool {
	return (e.v0 == o.v0 && e.v1 == o.v1) || (e.v0 == o.v1 && e.v1 == o.v0)
}

// appendEdges appends the three hull edges of outer cell ti to the scratch edges.
func (d *Delaunay) appendEdges(ti int) {
	v := d.tetrahedra[ti].Vertices
	d.edges = append(d.edges,
		edge{tetrahedron: ti, index: 0, v0: v[1], v1: v[2]},
		edge{tetrahedron: ti, index: 1, v0: v[2], v1: v[0]},
		edge{tetrahedron: ti, index: 2, v0: v[0], v1: v[1]},
	)
}
