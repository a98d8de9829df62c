package probeio

import (
	"errors"
	"fmt"
	"strings"

	"github.com/qmuntal/gltf"
	"github.com/soypat/lightprobe"
	"github.com/soypat/lightprobe/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// LoadGLTF returns a probe at the world position of every node in the
// default scene of a glTF or GLB file whose name starts with prefix.
// An empty prefix selects every node. Probes are returned in depth-first
// scene order.
func LoadGLTF(path, prefix string) ([]lightprobe.Vertex, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}
	return sceneProbes(doc, prefix)
}

func sceneProbes(doc *gltf.Document, prefix string) ([]lightprobe.Vertex, error) {
	if len(doc.Scenes) == 0 {
		return nil, errors.New("gltf document has no scenes")
	}
	scene := 0
	if doc.Scene != nil {
		scene = *doc.Scene
	}
	if scene < 0 || scene >= len(doc.Scenes) {
		return nil, fmt.Errorf("default scene %d out of range", scene)
	}
	var probes []lightprobe.Vertex
	visited := make([]bool, len(doc.Nodes))
	var walk func(node int, parent d3.Transform) error
	walk = func(node int, parent d3.Transform) error {
		if node < 0 || node >= len(doc.Nodes) {
			return fmt.Errorf("node %d out of range", node)
		}
		if visited[node] {
			return fmt.Errorf("node %d visited twice, scene is not a tree", node)
		}
		visited[node] = true
		n := doc.Nodes[node]
		world := parent.Mul(nodeTransform(n))
		if strings.HasPrefix(n.Name, prefix) {
			probes = append(probes, lightprobe.NewVertex(world.Transform(r3.Vec{})))
		}
		for _, child := range n.Children {
			if err := walk(child, world); err != nil {
				return err
			}
		}
		return nil
	}
	for _, root := range doc.Scenes[scene].Nodes {
		if err := walk(root, d3.Transform{}); err != nil {
			return nil, err
		}
	}
	return probes, nil
}

// nodeTransform returns the local transform of a node. glTF nodes carry
// either a matrix or TRS properties, the unused one being the identity.
func nodeTransform(n *gltf.Node) d3.Transform {
	t := n.TranslationOrDefault()
	s := n.ScaleOrDefault()
	q := n.RotationOrDefault() // x, y, z, w
	trs := d3.ComposeTransform(
		r3.Vec{X: t[0], Y: t[1], Z: t[2]},
		r3.Vec{X: s[0], Y: s[1], Z: s[2]},
		r3.Rotation{Real: q[3], Imag: q[0], Jmag: q[1], Kmag: q[2]},
	)
	return d3.NewTransformColumnMajor(n.MatrixOrDefault()).Mul(trs)
}
