package d3

import "gonum.org/v1/gonum/spatial/r3"

// Triple returns the scalar triple product a·(b×c).
func Triple(a, b, c r3.Vec) float64 {
	return r3.Dot(a, r3.Cross(b, c))
}

// SignedVolume returns the signed volume of the tetrahedron (p0,p1,p2,p3).
// The sign is positive when p3 lies on the side of (p0,p1,p2) that
// the right-handed normal (p1-p0)×(p2-p0) points to.
func SignedVolume(p0, p1, p2, p3 r3.Vec) float64 {
	return Triple(r3.Sub(p3, p0), r3.Sub(p1, p0), r3.Sub(p2, p0)) / 6
}

// TriangleNormal returns the unnormalized right-handed normal of
// the triangle (p0,p1,p2). Its length is twice the triangle area.
func TriangleNormal(p0, p1, p2 r3.Vec) r3.Vec {
	return r3.Cross(r3.Sub(p1, p0), r3.Sub(p2, p0))
}

// Centroid returns the arithmetic mean of the points.
func Centroid(pts ...r3.Vec) r3.Vec {
	var c r3.Vec
	for _, p := range pts {
		c = r3.Add(c, p)
	}
	return r3.Scale(1/float64(len(pts)), c)
}
