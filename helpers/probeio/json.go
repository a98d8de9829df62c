// Package probeio reads and writes light probe sets and meshes.
package probeio

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/soypat/lightprobe"
	"gonum.org/v1/gonum/spatial/r3"
)

type probeFile struct {
	Probes []probeJSON `json:"probes"`
}

type probeJSON struct {
	Position     [3]float64   `json:"position"`
	Normal       *[3]float64  `json:"normal,omitempty"`
	Coefficients [][3]float64 `json:"coefficients,omitempty"`
}

type meshFile struct {
	Probes     []probeJSON `json:"probes"`
	Tetrahedra []tetraJSON `json:"tetrahedra"`
}

type tetraJSON struct {
	Vertices   [4]int      `json:"vertices"`
	Neighbours [4]int      `json:"neighbours"`
	Matrix     [9]float64  `json:"matrix"`
	Offset     *[3]float64 `json:"offset,omitempty"`
	Center     *[3]float64 `json:"center,omitempty"`
	Radius2    float64     `json:"radius2,omitempty"`
}

// ReadProbesFile reads probes from a JSON probe file or from the nodes of
// a glTF scene, chosen by file extension. For glTF files every node whose
// name starts with prefix is a probe.
func ReadProbesFile(path, prefix string) ([]lightprobe.Vertex, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gltf", ".glb":
		return LoadGLTF(path, prefix)
	case ".json":
		fp, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer fp.Close()
		return ReadProbes(fp)
	}
	return nil, fmt.Errorf("unsupported probe file extension %q", filepath.Ext(path))
}

// ReadProbes decodes a JSON probe list of the form
//  {"probes":[{"position":[x,y,z],"coefficients":[[r,g,b],...]}]}
func ReadProbes(r io.Reader) ([]lightprobe.Vertex, error) {
	var f probeFile
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decoding probes: %w", err)
	}
	probes := make([]lightprobe.Vertex, len(f.Probes))
	for i := range f.Probes {
		probes[i] = f.Probes[i].vertex()
	}
	return probes, nil
}

// WriteProbes encodes probes as a JSON probe list. Normals are not written.
func WriteProbes(w io.Writer, probes []lightprobe.Vertex) error {
	f := probeFile{Probes: make([]probeJSON, len(probes))}
	for i := range probes {
		f.Probes[i] = newProbeJSON(&probes[i], false)
	}
	return encode(w, f)
}

// WriteMesh encodes a built mesh as JSON.
func WriteMesh(w io.Writer, mesh *lightprobe.Mesh) error {
	f := meshFile{
		Probes:     make([]probeJSON, len(mesh.Probes)),
		Tetrahedra: make([]tetraJSON, len(mesh.Tetrahedra)),
	}
	for i := range mesh.Probes {
		f.Probes[i] = newProbeJSON(&mesh.Probes[i], true)
	}
	for i := range mesh.Tetrahedra {
		t := &mesh.Tetrahedra[i]
		tj := tetraJSON{
			Vertices:   t.Vertices,
			Neighbours: t.Neighbours,
			Matrix:     t.Matrix,
		}
		if t.IsOuter() {
			off := array(t.Offset)
			tj.Offset = &off
		} else {
			center := array(t.Sphere.Center)
			tj.Center = &center
			tj.Radius2 = t.Sphere.RadiusSquared
		}
		f.Tetrahedra[i] = tj
	}
	return encode(w, f)
}

// ReadMesh decodes a mesh written by WriteMesh and indexes it
// for point location.
func ReadMesh(r io.Reader) (lightprobe.Mesh, error) {
	var f meshFile
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return lightprobe.Mesh{}, fmt.Errorf("decoding mesh: %w", err)
	}
	mesh := lightprobe.Mesh{
		Probes:     make([]lightprobe.Vertex, len(f.Probes)),
		Tetrahedra: make([]lightprobe.Tetrahedron, len(f.Tetrahedra)),
	}
	for i := range f.Probes {
		mesh.Probes[i] = f.Probes[i].vertex()
	}
	outer := false
	for i, tj := range f.Tetrahedra {
		for k, v := range tj.Vertices {
			if v >= len(mesh.Probes) || v < 0 && (k < 3 || v < lightprobe.QuadraticOuterCell) {
				return lightprobe.Mesh{}, fmt.Errorf("tetrahedron %d: vertex %d out of range", i, v)
			}
		}
		if tj.Vertices[3] < 0 {
			outer = true
		} else if outer {
			return lightprobe.Mesh{}, fmt.Errorf("tetrahedron %d: inner tetrahedron after outer cells", i)
		}
		for _, nb := range tj.Neighbours {
			if nb >= len(f.Tetrahedra) || nb < -1 {
				return lightprobe.Mesh{}, fmt.Errorf("tetrahedron %d: neighbour %d out of range", i, nb)
			}
		}
		t := lightprobe.Tetrahedron{
			Vertices:   tj.Vertices,
			Neighbours: tj.Neighbours,
			Matrix:     tj.Matrix,
		}
		if tj.Offset != nil {
			t.Offset = vec(*tj.Offset)
		}
		if tj.Center != nil {
			t.Sphere = lightprobe.CircumSphere{Center: vec(*tj.Center), RadiusSquared: tj.Radius2}
		}
		mesh.Tetrahedra[i] = t
	}
	mesh.Reindex()
	return mesh, nil
}

func newProbeJSON(v *lightprobe.Vertex, withNormal bool) probeJSON {
	pj := probeJSON{Position: array(v.Position)}
	if withNormal {
		n := array(v.Normal)
		pj.Normal = &n
	}
	if len(v.Coefficients) > 0 {
		pj.Coefficients = make([][3]float64, len(v.Coefficients))
		for i, c := range v.Coefficients {
			pj.Coefficients[i] = array(c)
		}
	}
	return pj
}

func (pj *probeJSON) vertex() lightprobe.Vertex {
	v := lightprobe.NewVertex(vec(pj.Position))
	if pj.Normal != nil {
		v.Normal = vec(*pj.Normal)
	}
	if len(pj.Coefficients) > 0 {
		v.Coefficients = make([]r3.Vec, len(pj.Coefficients))
		for i, c := range pj.Coefficients {
			v.Coefficients[i] = vec(c)
		}
	}
	return v
}

func encode(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "\t")
	return enc.Encode(v)
}

func array(v r3.Vec) [3]float64 { return [3]float64{v.X, v.Y, v.Z} }

func vec(a [3]float64) r3.Vec { return r3.Vec{X: a[0], Y: a[1], Z: a[2]} }
