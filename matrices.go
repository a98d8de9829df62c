package lightprobe

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

func (d *Delaunay) computeMatrices() {
	for i := range d.tetrahedra {
		t := &d.tetrahedra[i]
		if t.IsInner() {
			d.tetrahedronMatrix(t)
		} else {
			d.outerCellMatrix(t)
		}
	}
}

// tetrahedronMatrix sets the matrix mapping q-p3 to the barycentric
// coordinates of q with respect to p0, p1 and p2.
// Nearly flat tetrahedra yield an ill-conditioned matrix.
func (d *Delaunay) tetrahedronMatrix(t *Tetrahedron) {
	p0 := d.probes[t.Vertices[0]].Position
	p1 := d.probes[t.Vertices[1]].Position
	p2 := d.probes[t.Vertices[2]].Position
	p3 := d.probes[t.Vertices[3]].Position

	t.Matrix = rowsMat3(r3.Sub(p0, p3), r3.Sub(p1, p3), r3.Sub(p2, p3)).Inv().Transpose()
}

// outerCellMatrix sets the matrix and offset of an outer cell.
//
// A point q outside the hull face lies on the triangle swept by moving each
// vertex pi along its normal ni by t. Coplanarity of q with the swept
// triangle is the cubic
//
//	det[a + t·a', b + t·b', (q-p2) + t·c'] = 0
//
// with a = p0-p2, a' = n0-n2, b = p1-p2, b' = n1-n2, c' = -n2. The
// coefficients of t², t and 1 are affine in q and are stored as
// Matrix*q + Offset, normalized by the t³ coefficient when it is not
// negligible.
func (d *Delaunay) outerCellMatrix(t *Tetrahedron) {
	n0 := d.probes[t.Vertices[0]].Normal
	n1 := d.probes[t.Vertices[1]].Normal
	n2 := d.probes[t.Vertices[2]].Normal
	p0 := d.probes[t.Vertices[0]].Position
	p1 := d.probes[t.Vertices[1]].Position
	p2 := d.probes[t.Vertices[2]].Position

	a := r3.Sub(p0, p2)
	ap := r3.Sub(n0, n2)
	b := r3.Sub(p1, p2)
	bp := r3.Sub(n1, n2)
	cp := r3.Scale(-1, n2)

	var m [12]float64

	// t² terms.
	m[0] = ap.Y*bp.Z - ap.Z*bp.Y
	m[3] = -ap.X*bp.Z + ap.Z*bp.X
	m[6] = ap.X*bp.Y - ap.Y*bp.X
	m[9] = a.X*bp.Y*cp.Z -
		a.Y*bp.X*cp.Z +
		ap.X*b.Y*cp.Z -
		ap.Y*b.X*cp.Z +
		a.Z*bp.X*cp.Y -
		a.Z*bp.Y*cp.X +
		ap.Z*b.X*cp.Y -
		ap.Z*b.Y*cp.X -
		a.X*bp.Z*cp.Y +
		a.Y*bp.Z*cp.X -
		ap.X*b.Z*cp.Y +
		ap.Y*b.Z*cp.X
	m[9] -= p2.X*m[0] + p2.Y*m[3] + p2.Z*m[6]

	// t terms.
	m[1] = ap.Y*b.Z + a.Y*bp.Z - ap.Z*b.Y - a.Z*bp.Y
	m[4] = -a.X*bp.Z - ap.X*b.Z + a.Z*bp.X + ap.Z*b.X
	m[7] = a.X*bp.Y - a.Y*bp.X + ap.X*b.Y - ap.Y*b.X
	m[10] = a.X*b.Y*cp.Z -
		a.Y*b.X*cp.Z -
		a.X*b.Z*cp.Y +
		a.Y*b.Z*cp.X +
		a.Z*b.X*cp.Y -
		a.Z*b.Y*cp.X
	m[10] -= p2.X*m[1] + p2.Y*m[4] + p2.Z*m[7]

	// Constant terms.
	m[2] = -a.Z*b.Y + a.Y*b.Z
	m[5] = -a.X*b.Z + a.Z*b.X
	m[8] = a.X*b.Y - a.Y*b.X
	m[11] = -(p2.X*m[2] + p2.Y*m[5] + p2.Z*m[8])

	// t³ coefficient.
	c := ap.X*bp.Y*cp.Z -
		ap.Y*bp.X*cp.Z +
		ap.Z*bp.X*cp.Y -
		ap.Z*bp.Y*cp.X +
		ap.Y*bp.Z*cp.X -
		ap.X*bp.Z*cp.Y

	if math.Abs(c) > d.active.CubicTolerance {
		// t³ + p·t² + q·t + r = 0
		for k := range m {
			m[k] /= c
		}
	} else {
		// p·t² + q·t + r = 0
		t.Vertices[3] = QuadraticOuterCell
	}

	t.Matrix = Mat3{
		m[0], m[1], m[2],
		m[3], m[4], m[5],
		m[6], m[7], m[8],
	}.Transpose()
	t.Offset = r3.Vec{X: m[9], Y: m[10], Z: m[11]}
}
