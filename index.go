package lightprobe

import (
	"math"

	"github.com/soypat/lightprobe/internal/d3"
	"gonum.org/v1/gonum/spatial/kdtree"
	"gonum.org/v1/gonum/spatial/r3"
)

// pointIndex is a kd-tree over identified points.
type pointIndex struct {
	tree *kdtree.Tree
}

func newPointIndex(pts []indexedPoint) *pointIndex {
	if len(pts) == 0 {
		return nil
	}
	// kdtree.New reorders the set, keep the caller's slice intact.
	set := pointSet(append([]indexedPoint(nil), pts...))
	return &pointIndex{tree: kdtree.New(set, true)}
}

// nearest returns the id of the point nearest to p.
func (idx *pointIndex) nearest(p r3.Vec) (id int, ok bool) {
	if idx == nil || idx.tree == nil {
		return -1, false
	}
	got, _ := idx.tree.Nearest(&indexedPoint{pos: p})
	if got == nil {
		return -1, false
	}
	return got.(*indexedPoint).id, true
}

// within returns the ids of all points at distance less than or equal
// to radius from p.
func (idx *pointIndex) within(p r3.Vec, radius float64) []int {
	if idx == nil || idx.tree == nil {
		return nil
	}
	keep := kdtree.NewDistKeeper(radius * radius)
	idx.tree.NearestSet(keep, &indexedPoint{pos: p})
	var ids []int
	for _, c := range keep.Heap {
		// DistKeeper seeds its heap with a nil sentinel.
		if c.Comparable == nil {
			continue
		}
		ids = append(ids, c.Comparable.(*indexedPoint).id)
	}
	return ids
}

type indexedPoint struct {
	pos r3.Vec
	id  int
}

func (p *indexedPoint) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(*indexedPoint)
	switch d {
	case 0:
		return p.pos.X - q.pos.X
	case 1:
		return p.pos.Y - q.pos.Y
	case 2:
		return p.pos.Z - q.pos.Z
	}
	panic("unreachable")
}

func (p *indexedPoint) Dims() int { return 3 }

// Distance returns the squared euclidean distance, as kdtree expects.
func (p *indexedPoint) Distance(c kdtree.Comparable) float64 {
	return r3.Norm2(r3.Sub(p.pos, c.(*indexedPoint).pos))
}

type pointSet []indexedPoint

// Index returns the ith element of the list of points.
func (s pointSet) Index(i int) kdtree.Comparable { return &s[i] }

// Len returns the length of the list.
func (s pointSet) Len() int { return len(s) }

// Pivot partitions the list based on the dimension specified.
func (s pointSet) Pivot(d kdtree.Dim) int {
	p := kdPlane{dim: d, points: s}
	return kdtree.Partition(p, kdtree.MedianOfMedians(p))
}

// Slice returns a slice of the list using zero-based half
// open indexing equivalent to built-in slice indexing.
func (s pointSet) Slice(start, end int) kdtree.Interface { return s[start:end] }

// Bounds implements the kdtree.Bounder interface.
func (s pointSet) Bounds() *kdtree.Bounding {
	min := indexedPoint{pos: d3.Elem(math.MaxFloat64)}
	max := indexedPoint{pos: d3.Elem(-math.MaxFloat64)}
	for i := range s {
		min.pos = d3.MinElem(min.pos, s[i].pos)
		max.pos = d3.MaxElem(max.pos, s[i].pos)
	}
	return &kdtree.Bounding{Min: &min, Max: &max}
}

type kdPlane struct {
	dim    kdtree.Dim
	points pointSet
}

func (p kdPlane) Less(i, j int) bool {
	return p.points[i].Compare(&p.points[j], p.dim) < 0
}
func (p kdPlane) Swap(i, j int) {
	p.points[i], p.points[j] = p.points[j], p.points[i]
}
func (p kdPlane) Len() int {
	return len(p.points)
}
func (p kdPlane) Slice(start, end int) kdtree.SortSlicer {
	p.points = p.points[start:end]
	return p
}
