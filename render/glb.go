package render

import (
	"errors"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"gonum.org/v1/gonum/spatial/r3"
)

// WriteGLB writes the triangles as a single indexed mesh to a binary glTF
// file. Coincident vertices are welded.
func WriteGLB(path, name string, model []r3.Triangle) error {
	doc, err := newGLTFDocument(name, model)
	if err != nil {
		return err
	}
	return gltf.SaveBinary(doc, path)
}

func newGLTFDocument(name string, model []r3.Triangle) (*gltf.Document, error) {
	if len(model) == 0 {
		return nil, errors.New("empty triangle slice")
	}
	var (
		positions [][3]float32
		indices   = make([]uint32, 0, 3*len(model))
		welded    = make(map[[3]float32]uint32)
	)
	for _, t := range model {
		for _, v := range t {
			p := f32(v)
			idx, ok := welded[p]
			if !ok {
				idx = uint32(len(positions))
				welded[p] = idx
				positions = append(positions, p)
			}
			indices = append(indices, idx)
		}
	}

	doc := gltf.NewDocument()
	posAccessor := modeler.WritePosition(doc, positions)
	indAccessor := modeler.WriteIndices(doc, indices)
	doc.Meshes = append(doc.Meshes, &gltf.Mesh{
		Name: name,
		Primitives: []*gltf.Primitive{{
			Indices:    gltf.Index(indAccessor),
			Attributes: map[string]int{gltf.POSITION: posAccessor},
			Mode:       gltf.PrimitiveTriangles,
		}},
	})
	doc.Nodes = append(doc.Nodes, &gltf.Node{Name: name, Mesh: gltf.Index(len(doc.Meshes) - 1)})
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, len(doc.Nodes)-1)
	return doc, nil
}
