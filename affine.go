package imgrotate

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Affine is a 2x3 affine matrix in row-major order:
//
//	| a  b  c |
//	| d  e  f |
//
// mapping x' = a*x + b*y + c and y' = d*x + e*y + f.
// Points are pixel indices, with x the column and y the row.
type Affine f64.Aff3

// Identity returns the identity transform.
func Identity() Affine {
	return Affine{
		1, 0, 0,
		0, 1, 0,
	}
}

// Translate returns a transform that shifts points by (tx, ty).
func Translate(tx, ty float64) Affine {
	return Affine{
		1, 0, tx,
		0, 1, ty,
	}
}

// Rotation returns the rotation block for the given sine and cosine.
// With the y axis pointing down, a positive angle turns counter-clockwise on screen.
func Rotation(sin, cos float64) Affine {
	return Affine{
		cos, sin, 0,
		-sin, cos, 0,
	}
}

// Multiply returns m * other, which applies other first and then m.
func (m Affine) Multiply(other Affine) Affine {
	return Affine{
		m[0]*other[0] + m[1]*other[3],
		m[0]*other[1] + m[1]*other[4],
		m[0]*other[2] + m[1]*other[5] + m[2],
		m[3]*other[0] + m[4]*other[3],
		m[3]*other[1] + m[4]*other[4],
		m[3]*other[2] + m[4]*other[5] + m[5],
	}
}

// Invert returns the inverse transform, or false if m is singular.
func (m Affine) Invert() (Affine, bool) {
	det := m[0]*m[4] - m[1]*m[3]
	if math.Abs(det) < 1e-10 {
		return Affine{}, false
	}
	inv := 1 / det
	return Affine{
		m[4] * inv,
		-m[1] * inv,
		(m[1]*m[5] - m[2]*m[4]) * inv,
		-m[3] * inv,
		m[0] * inv,
		(m[2]*m[3] - m[0]*m[5]) * inv,
	}, true
}

// Apply maps the point (x, y).
func (m Affine) Apply(x, y float64) (float64, float64) {
	return m[0]*x + m[1]*y + m[2], m[3]*x + m[4]*y + m[5]
}

// Aff3 returns m as the x/image matrix type.
func (m Affine) Aff3() f64.Aff3 {
	return f64.Aff3(m)
}

// ApproxEqual reports whether every coefficient differs by at most tol.
func (m Affine) ApproxEqual(other Affine, tol float64) bool {
	for i := range m {
		if math.Abs(m[i]-other[i]) > tol {
			return false
		}
	}
	return true
}
