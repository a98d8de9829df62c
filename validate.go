package lightprobe

import (
	"errors"
	"fmt"
	"math"

	"github.com/soypat/lightprobe/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	ErrTooFewProbes    = errors.New("at least 4 probes are needed to build a tetrahedral mesh")
	ErrDuplicateProbes = errors.New("duplicate probes")
	ErrCoplanarProbes  = errors.New("probes are coplanar")
	ErrInvalidPosition = errors.New("probe position is not finite")
)

// ValidateConfig sets the tolerances used by Validate.
type ValidateConfig struct {
	// DuplicateTolerance is the distance under which two probes
	// are considered the same.
	DuplicateTolerance float64
	// CoplanarTolerance is the smallest accepted ratio between the volume
	// spanned by the probes and the cube of their extent.
	CoplanarTolerance float64
}

// DefaultValidateConfig returns the tolerances used when a field of
// ValidateConfig is zero.
func DefaultValidateConfig() ValidateConfig {
	return ValidateConfig{
		DuplicateTolerance: 1e-5,
		CoplanarTolerance:  1e-9,
	}
}

// Validate checks probes for input that Delaunay.Build accepts but
// tetrahedralizes poorly. Build does not call Validate.
func Validate(probes []Vertex, cfg ValidateConfig) error {
	def := DefaultValidateConfig()
	if cfg.DuplicateTolerance == 0 {
		cfg.DuplicateTolerance = def.DuplicateTolerance
	}
	if cfg.CoplanarTolerance == 0 {
		cfg.CoplanarTolerance = def.CoplanarTolerance
	}
	if len(probes) < 4 {
		return fmt.Errorf("got %d probes: %w", len(probes), ErrTooFewProbes)
	}
	pts := make([]indexedPoint, len(probes))
	for i := range probes {
		if !d3.IsFinite(probes[i].Position) {
			return fmt.Errorf("probe %d: %w", i, ErrInvalidPosition)
		}
		pts[i] = indexedPoint{pos: probes[i].Position, id: i}
	}
	idx := newPointIndex(pts)
	for i := range probes {
		for _, j := range idx.within(probes[i].Position, cfg.DuplicateTolerance) {
			if j != i {
				a, b := i, j
				if a > b {
					a, b = b, a
				}
				return fmt.Errorf("probes %d and %d at %v: %w", a, b, probes[i].Position, ErrDuplicateProbes)
			}
		}
	}
	positions := make(d3.Set, len(probes))
	for i := range probes {
		positions[i] = probes[i].Position
	}
	extent := d3.Max(positions.Bounds().Size())
	vol := spanningVolume(positions)
	if extent == 0 || vol/(extent*extent*extent) < cfg.CoplanarTolerance {
		return fmt.Errorf("spanning volume %g for extent %g: %w", vol, extent, ErrCoplanarProbes)
	}
	return nil
}

// spanningVolume returns the volume of a large tetrahedron with vertices
// in pts found greedily: each vertex is the point farthest from the simplex
// spanned by the previous ones. Zero means pts lie on a plane.
func spanningVolume(pts d3.Set) float64 {
	p0 := pts[0]
	p1 := farthest(pts, func(p r3.Vec) float64 { return r3.Norm2(r3.Sub(p, p0)) })
	axis := r3.Sub(p1, p0)
	p2 := farthest(pts, func(p r3.Vec) float64 { return r3.Norm2(r3.Cross(axis, r3.Sub(p, p0))) })
	normal := d3.TriangleNormal(p0, p1, p2)
	p3 := farthest(pts, func(p r3.Vec) float64 { return math.Abs(r3.Dot(normal, r3.Sub(p, p0))) })
	return math.Abs(d3.SignedVolume(p0, p1, p2, p3))
}

func farthest(pts d3.Set, dist func(r3.Vec) float64) r3.Vec {
	best, bestDist := pts[0], math.Inf(-1)
	for _, p := range pts {
		if d := dist(p); d > bestDist {
			best, bestDist = p, d
		}
	}
	return best
}
