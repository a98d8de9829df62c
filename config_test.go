package lightprobe

import "testing"

func TestConfigDefaults(t *testing.T) {
	for _, test := range []struct {
		margin, want float64
	}{
		{margin: 0, want: DefaultCircumSphereMargin},
		{margin: 0.5, want: 0.5},
		{margin: -1, want: 0},
	} {
		d := NewDelaunay(Config{CircumSphereMargin: test.margin})
		d.Build(nil)
		got := d.active
		if got.CircumSphereMargin != test.want {
			t.Errorf("margin %v: got %v, want %v", test.margin, got.CircumSphereMargin, test.want)
		}
		if got.CubicTolerance != DefaultCubicTolerance || got.SuperScale != DefaultSuperScale {
			t.Errorf("margin %v: other fields not defaulted: %+v", test.margin, got)
		}
		// Building again must not reinterpret an exact margin as unset.
		d.Build(nil)
		if d.active.CircumSphereMargin != test.want {
			t.Errorf("margin %v: second build got %v", test.margin, d.active.CircumSphereMargin)
		}
	}
}
