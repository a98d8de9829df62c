package lightprobe_test

import (
	"errors"
	"math"
	"testing"

	"github.com/soypat/lightprobe"
	gr3 "gonum.org/v1/gonum/spatial/r3"
)

func TestValidate(t *testing.T) {
	var cfg lightprobe.ValidateConfig
	for _, test := range []struct {
		name   string
		probes []lightprobe.Vertex
		want   error
	}{
		{name: "regular", probes: probesAt(regularTetrahedron...)},
		{name: "random", probes: randomProbes(8, 100)},
		{name: "three", probes: probesAt(regularTetrahedron[:3]...), want: lightprobe.ErrTooFewProbes},
		{
			name:   "duplicate",
			probes: probesAt(append(append([]gr3.Vec(nil), regularTetrahedron...), gr3.Vec{X: 1, Y: 1, Z: 1 + 1e-7})...),
			want:   lightprobe.ErrDuplicateProbes,
		},
		{
			name:   "coplanar",
			probes: probesAt(gr3.Vec{}, gr3.Vec{X: 1}, gr3.Vec{Y: 1}, gr3.Vec{X: 1, Y: 1}, gr3.Vec{X: 0.5, Y: 0.3}),
			want:   lightprobe.ErrCoplanarProbes,
		},
		{
			name:   "collinear",
			probes: probesAt(gr3.Vec{}, gr3.Vec{X: 1}, gr3.Vec{X: 2}, gr3.Vec{X: 3}),
			want:   lightprobe.ErrCoplanarProbes,
		},
		{
			name:   "nan",
			probes: probesAt(append(append([]gr3.Vec(nil), regularTetrahedron...), gr3.Vec{X: math.NaN()})...),
			want:   lightprobe.ErrInvalidPosition,
		},
	} {
		err := lightprobe.Validate(test.probes, cfg)
		if test.want == nil && err != nil {
			t.Errorf("%s: unexpected error %v", test.name, err)
		} else if !errors.Is(err, test.want) {
			t.Errorf("%s: got error %v, want %v", test.name, err, test.want)
		}
	}
}
