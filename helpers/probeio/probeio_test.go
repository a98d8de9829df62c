package probeio

import (
	"bytes"
	"fmt"
	"math"
	"math/rand"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/soypat/lightprobe"
	"github.com/soypat/lightprobe/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestReadProbes(t *testing.T) {
	const input = `{"probes":[
		{"position":[0,0,0],"coefficients":[[1,0.5,0.25]]},
		{"position":[1,0,0]},
		{"position":[0,1,0]},
		{"position":[0,0,1]}
	]}`
	probes, err := ReadProbes(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if len(probes) != 4 {
		t.Fatalf("got %d probes, want 4", len(probes))
	}
	if probes[3].Position != (r3.Vec{Z: 1}) {
		t.Errorf("got position %v, want (0,0,1)", probes[3].Position)
	}
	if len(probes[0].Coefficients) != 1 || probes[0].Coefficients[0] != (r3.Vec{X: 1, Y: 0.5, Z: 0.25}) {
		t.Errorf("got coefficients %v", probes[0].Coefficients)
	}
	if probes[1].Coefficients != nil {
		t.Errorf("got coefficients %v, want none", probes[1].Coefficients)
	}
}

func TestProbesRoundTrip(t *testing.T) {
	want := randomProbes(1, 10)
	var b bytes.Buffer
	if err := WriteProbes(&b, want); err != nil {
		t.Fatal(err)
	}
	got, err := ReadProbes(&b)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("probes differ after round trip")
	}
}

func TestMeshRoundTrip(t *testing.T) {
	var d lightprobe.Delaunay
	want := d.Build(randomProbes(2, 20))
	var b bytes.Buffer
	if err := WriteMesh(&b, &want); err != nil {
		t.Fatal(err)
	}
	got, err := ReadMesh(&b)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got.Probes, want.Probes) {
		t.Error("probes differ after round trip")
	}
	if !reflect.DeepEqual(got.Tetrahedra, want.Tetrahedra) {
		t.Error("tetrahedra differ after round trip")
	}
	pos := r3.Vec{X: 0.5, Y: 0.5, Z: 0.5}
	c1, w1 := want.Locate(pos, -1)
	c2, w2 := got.Locate(pos, -1)
	if c1 != c2 || w1 != w2 {
		t.Errorf("decoded mesh locate: got (%d,%v), want (%d,%v)", c2, w2, c1, w1)
	}
}

func TestReadMeshOutOfRange(t *testing.T) {
	const input = `{"probes":[{"position":[0,0,0]}],"tetrahedra":[{"vertices":[0,0,0,7],"neighbours":[-1,-1,-1,-1],"matrix":[0,0,0,0,0,0,0,0,0]}]}`
	if _, err := ReadMesh(strings.NewReader(input)); err == nil {
		t.Error("expected error for out of range vertex")
	}
}

func TestReadMeshMalformedCells(t *testing.T) {
	const probes = `"probes":[{"position":[0,0,0]},{"position":[1,0,0]},{"position":[0,1,0]},{"position":[0,0,1]}]`
	const cell = `{"vertices":%s,"neighbours":[-1,-1,-1,-1],"matrix":[0,0,0,0,0,0,0,0,0]}`
	for _, test := range []struct {
		name  string
		cells []string
	}{
		{name: "outer marker in slot 0", cells: []string{"[-1,1,2,3]"}},
		{name: "quadratic marker in slot 2", cells: []string{"[0,1,-2,3]"}},
		{name: "bad marker in slot 3", cells: []string{"[0,1,2,-3]"}},
		{name: "inner after outer", cells: []string{"[0,1,2,-1]", "[0,1,2,3]"}},
	} {
		var tets []string
		for _, c := range test.cells {
			tets = append(tets, fmt.Sprintf(cell, c))
		}
		input := "{" + probes + `,"tetrahedra":[` + strings.Join(tets, ",") + "]}"
		if _, err := ReadMesh(strings.NewReader(input)); err == nil {
			t.Errorf("%s: expected error", test.name)
		}
	}
}

func TestLoadGLTF(t *testing.T) {
	const tol = 1e-12
	s := math.Sqrt2 / 2
	doc := gltf.NewDocument()
	room := newNode("room")
	room.Translation = [3]float64{1, 0, 0}
	room.Scale = [3]float64{2, 2, 2}
	room.Children = []int{1, 2}
	a := newNode("probe.a")
	a.Translation = [3]float64{0, 1, 0}
	turn := newNode("turn")
	turn.Rotation = [4]float64{0, 0, s, s}
	turn.Children = []int{3}
	b := newNode("probe.b")
	b.Translation = [3]float64{1, 0, 0}
	c := newNode("probe.c")
	c.Matrix = [16]float64{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		5, 6, 7, 1,
	}
	light := newNode("light")
	light.Translation = [3]float64{9, 9, 9}
	doc.Nodes = []*gltf.Node{room, a, turn, b, c, light}
	doc.Scenes[0].Nodes = []int{0, 4, 5}
	doc.Buffers = nil // Nodes only, no geometry.
	path := filepath.Join(t.TempDir(), "scene.gltf")
	if err := gltf.Save(doc, path); err != nil {
		t.Fatal(err)
	}
	probes, err := LoadGLTF(path, "probe")
	if err != nil {
		t.Fatal(err)
	}
	want := []r3.Vec{
		{X: 1, Y: 2, Z: 0},
		{X: 1, Y: 2, Z: 0},
		{X: 5, Y: 6, Z: 7},
	}
	if len(probes) != len(want) {
		t.Fatalf("got %d probes, want %d", len(probes), len(want))
	}
	for i := range want {
		if !d3.EqualWithin(probes[i].Position, want[i], tol) {
			t.Errorf("probe %d: got %v, want %v", i, probes[i].Position, want[i])
		}
	}

	all, err := ReadProbesFile(path, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != len(doc.Nodes) {
		t.Errorf("got %d probes with empty prefix, want %d", len(all), len(doc.Nodes))
	}
}

func newNode(name string) *gltf.Node {
	return &gltf.Node{
		Name:     name,
		Matrix:   [16]float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1},
		Rotation: [4]float64{0, 0, 0, 1},
		Scale:    [3]float64{1, 1, 1},
	}
}

func randomProbes(seed int64, n int) []lightprobe.Vertex {
	rng := rand.New(rand.NewSource(seed))
	probes := make([]lightprobe.Vertex, n)
	for i := range probes {
		probes[i] = lightprobe.NewVertex(r3.Vec{X: rng.Float64(), Y: rng.Float64(), Z: rng.Float64()})
		probes[i].Coefficients = []r3.Vec{{X: rng.Float64()}, {Y: rng.Float64()}}
	}
	return probes
}
