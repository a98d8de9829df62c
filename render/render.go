package render

import (
	"io"

	"github.com/soypat/lightprobe"
	"github.com/soypat/lightprobe/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Renderer streams triangles. ReadTriangles returns io.EOF once all
// triangles have been read.
type Renderer interface {
	ReadTriangles(t []r3.Triangle) (int, error)
}

// RenderAll reads the full contents of a Renderer and returns the slice read.
// It does not return error on io.EOF, like the io.ReadAll implementation.
func RenderAll(r Renderer) ([]r3.Triangle, error) {
	var err error
	var nt int
	result := make([]r3.Triangle, 0, 1<<10)
	buf := make([]r3.Triangle, 1024)
	for {
		nt, err = r.ReadTriangles(buf)
		result = append(result, buf[:nt]...)
		if err != nil {
			break
		}
	}
	if err == io.EOF {
		return result, nil
	}
	return result, err
}

// triangleBuffer is a Renderer over a fixed set of triangles.
type triangleBuffer struct {
	buf []r3.Triangle
}

func (b *triangleBuffer) ReadTriangles(t []r3.Triangle) (int, error) {
	if len(b.buf) == 0 {
		return 0, io.EOF
	}
	n := copy(t, b.buf)
	b.buf = b.buf[n:]
	return n, nil
}

// NewHullRenderer returns a Renderer over the convex hull of the mesh,
// see HullTriangles.
func NewHullRenderer(mesh *lightprobe.Mesh) Renderer {
	return &triangleBuffer{buf: HullTriangles(mesh)}
}

// NewTetraRenderer returns a Renderer over the inner tetrahedra of the mesh,
// see TetraTriangles.
func NewTetraRenderer(mesh *lightprobe.Mesh, shrink float64) Renderer {
	return &triangleBuffer{buf: TetraTriangles(mesh, shrink)}
}

// HullTriangles returns the hull faces of the mesh, one per outer cell,
// with normals pointing out of the hull.
func HullTriangles(mesh *lightprobe.Mesh) []r3.Triangle {
	var tris []r3.Triangle
	for i := range mesh.Tetrahedra {
		t := &mesh.Tetrahedra[i]
		if !t.IsOuter() {
			continue
		}
		tris = append(tris, r3.Triangle{
			mesh.Probes[t.Vertices[0]].Position,
			mesh.Probes[t.Vertices[1]].Position,
			mesh.Probes[t.Vertices[2]].Position,
		})
	}
	return tris
}

// TetraTriangles returns the four faces of every inner tetrahedron.
// Each tetrahedron is scaled by 1-shrink about its centroid so that
// individual cells can be told apart. Faces point outward.
func TetraTriangles(mesh *lightprobe.Mesh, shrink float64) []r3.Triangle {
	var tris []r3.Triangle
	scale := 1 - shrink
	for i := range mesh.Tetrahedra {
		t := &mesh.Tetrahedra[i]
		if !t.IsInner() {
			continue
		}
		var p [4]r3.Vec
		for k, v := range t.Vertices {
			p[k] = mesh.Probes[v].Position
		}
		c := d3.Centroid(p[:]...)
		for k := range p {
			p[k] = r3.Add(c, r3.Scale(scale, r3.Sub(p[k], c)))
		}
		faces := [4]r3.Triangle{
			{p[1], p[3], p[2]},
			{p[0], p[2], p[3]},
			{p[0], p[3], p[1]},
			{p[0], p[1], p[2]},
		}
		for k := range faces {
			// Face k is opposite vertex k.
			if r3.Dot(faces[k].Normal(), r3.Sub(p[k], faces[k][0])) > 0 {
				faces[k][1], faces[k][2] = faces[k][2], faces[k][1]
			}
		}
		tris = append(tris, faces[:]...)
	}
	return tris
}
