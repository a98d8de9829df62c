package lightprobe

const (
	// DefaultCircumSphereMargin is subtracted from a circumsphere's squared
	// radius before testing containment during insertion. Points closer than
	// the margin to the sphere surface are treated as outside, which keeps
	// near-cospherical configurations from flipping between insertions.
	// It is an absolute value in squared scene units.
	DefaultCircumSphereMargin = 0.01
	// DefaultCubicTolerance is the magnitude below which an outer cell's
	// cubic leading coefficient is considered zero. Such cells fall back to
	// quadratic solving and are marked with QuadraticOuterCell.
	DefaultCubicTolerance = 1e-6
	// DefaultSuperScale multiplies the largest extent of the probe bounds to
	// size the bootstrap tetrahedron.
	DefaultSuperScale = 10.0
)

// Config holds the tuning parameters of a Delaunay builder.
// Zero fields are replaced by their defaults.
type Config struct {
	// CircumSphereMargin, see DefaultCircumSphereMargin. A negative value
	// disables the margin so containment uses the exact circumsphere.
	CircumSphereMargin float64
	// CubicTolerance, see DefaultCubicTolerance.
	CubicTolerance float64
	// SuperScale, see DefaultSuperScale.
	SuperScale float64
}

// DefaultConfig returns the configuration used by the zero Delaunay value.
func DefaultConfig() Config {
	return Config{
		CircumSphereMargin: DefaultCircumSphereMargin,
		CubicTolerance:     DefaultCubicTolerance,
		SuperScale:         DefaultSuperScale,
	}
}

func (c Config) withDefaults() Config {
	if c.CircumSphereMargin == 0 {
		c.CircumSphereMargin = DefaultCircumSphereMargin
	} else if c.CircumSphereMargin < 0 {
		c.CircumSphereMargin = 0
	}
	if c.CubicTolerance == 0 {
		c.CubicTolerance = DefaultCubicTolerance
	}
	if c.SuperScale == 0 {
		c.SuperScale = DefaultSuperScale
	}
	return c
}
