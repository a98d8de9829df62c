package lightprobe

import (
	"math"
	"sort"

	"github.com/soypat/lightprobe/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Delaunay builds tetrahedral meshes over light probes.
// The zero value is ready to use with DefaultConfig.
// A Delaunay reuses its scratch buffers between builds and
// must not be used by multiple goroutines simultaneously.
type Delaunay struct {
	cfg    Config
	active Config // cfg with defaults applied, set by Build.

	probes     []Vertex
	tetrahedra []Tetrahedron

	// Scratch buffers. Cleared, not reallocated, on every step.
	triangles []triangle
	edges     []edge
	removed   []bool // per tetrahedron: inside the cavity.
	shared    []bool // per triangle: face shared by two tetrahedra.
}

// NewDelaunay returns a builder with the given configuration.
// Zero fields of cfg take their default value.
func NewDelaunay(cfg Config) *Delaunay {
	return &Delaunay{cfg: cfg}
}

// Build tetrahedralizes probes and returns the resulting mesh.
// probes is not modified. The returned Mesh holds a copy of the
// probes with their hull normals populated, followed by inner tetrahedra
// and then outer cells.
func (d *Delaunay) Build(probes []Vertex) Mesh {
	d.active = d.cfg.withDefaults()
	d.reset(probes)
	if len(d.probes) > 0 {
		d.tetrahedralize()
		d.computeAdjacency()
		d.computeMatrices()
	}
	mesh := Mesh{
		Probes:     d.probes,
		Tetrahedra: d.tetrahedra,
	}
	mesh.Reindex()
	// Ownership of the results passes to the caller.
	d.probes = nil
	d.tetrahedra = nil
	return mesh
}

func (d *Delaunay) reset(probes []Vertex) {
	// Room for the bootstrap vertices.
	d.probes = make([]Vertex, len(probes), len(probes)+4)
	for i, p := range probes {
		d.probes[i] = Vertex{
			Position:     p.Position,
			Coefficients: append([]r3.Vec(nil), p.Coefficients...),
		}
	}
	d.tetrahedra = make([]Tetrahedron, 0, 6*len(probes)+1)
	d.triangles = d.triangles[:0]
	d.edges = d.edges[:0]
}

// tetrahedralize runs the Bowyer-Watson algorithm over all probes and
// leaves only tetrahedra between real probes, sorted from the center out.
func (d *Delaunay) tetrahedralize() {
	probeCount := len(d.probes)
	center := d.bootstrap()

	for i := 0; i < probeCount; i++ {
		d.insert(i)
	}

	// Remove tetrahedra with a bootstrap vertex.
	n := 0
	for _, t := range d.tetrahedra {
		if t.Vertices[0] >= probeCount || t.Vertices[1] >= probeCount ||
			t.Vertices[2] >= probeCount || t.Vertices[3] >= probeCount {
			continue
		}
		d.tetrahedra[n] = t
		n++
	}
	d.tetrahedra = d.tetrahedra[:n]
	d.probes = d.probes[:probeCount]

	d.reorder(center)
}

// bootstrap appends four vertices forming a tetrahedron that strictly
// contains every probe and returns the center of the probes' bounding box.
func (d *Delaunay) bootstrap() r3.Vec {
	bb := d3.Box{Min: d3.Elem(math.MaxFloat64), Max: d3.Elem(-math.MaxFloat64)}
	for i := range d.probes {
		bb = bb.Include(d.probes[i].Position)
	}
	center := bb.Center()
	offset := d3.Max(bb.Size()) * d.active.SuperScale

	index := len(d.probes)
	d.probes = append(d.probes,
		NewVertex(r3.Vec{X: center.X, Y: center.Y + offset, Z: center.Z}),
		NewVertex(r3.Vec{X: center.X - offset, Y: center.Y - offset, Z: center.Z - offset}),
		NewVertex(r3.Vec{X: center.X - offset, Y: center.Y - offset, Z: center.Z + offset}),
		NewVertex(r3.Vec{X: center.X + offset, Y: center.Y - offset, Z: center.Z}),
	)
	d.tetrahedra = append(d.tetrahedra, newTetrahedron(d.probes, index, index+1, index+2, index+3))
	return center
}

// insert adds probe vertexIndex to the triangulation.
func (d *Delaunay) insert(vertexIndex int) {
	pos := d.probes[vertexIndex].Position

	// Collect the faces of every tetrahedron whose circumsphere contains the probe.
	d.triangles = d.triangles[:0]
	d.removed = resetFlags(d.removed, len(d.tetrahedra))
	for i := range d.tetrahedra {
		if d.tetrahedra[i].Sphere.Contains(pos, d.active.CircumSphereMargin) {
			d.removed[i] = true
			d.appendFaces(i)
		}
	}

	// Faces shared by two removed tetrahedra are inside the cavity.
	d.shared = resetFlags(d.shared, len(d.triangles))
	for i := range d.triangles {
		for k := i + 1; k < len(d.triangles); k++ {
			if d.triangles[i].same(&d.triangles[k]) {
				d.shared[i] = true
				d.shared[k] = true
			}
		}
	}

	n := 0
	for i := range d.tetrahedra {
		if !d.removed[i] {
			d.tetrahedra[n] = d.tetrahedra[i]
			n++
		}
	}
	d.tetrahedra = d.tetrahedra[:n]

	// Connect the cavity boundary to the new probe.
	for i := range d.triangles {
		if d.shared[i] {
			continue
		}
		v := d.triangles[i].vertices
		d.tetrahedra = append(d.tetrahedra, newTetrahedron(d.probes, v[0], v[1], v[2], vertexIndex))
	}
}

// reorder places the tetrahedra nearest to center first so point location
// walks starting at the front of the list are short.
func (d *Delaunay) reorder(center r3.Vec) {
	sort.SliceStable(d.tetrahedra, func(i, j int) bool {
		return r3.Norm2(r3.Sub(d.tetrahedra[i].Sphere.Center, center)) <
			r3.Norm2(r3.Sub(d.tetrahedra[j].Sphere.Center, center))
	})
}

// resetFlags returns b resized to n with all elements false.
func resetFlags(b []bool, n int) []bool {
	if cap(b) < n {
		return make([]bool, n)
	}
	b = b[:n]
	for i := range b {
		b[i] = false
	}
	return b
}
