package svgpath

import "math"

// Matrix2D is an affine transformation of the plane,
// mapping the point (x, y) to
//
//	x' = A*x + C*y + E
//	y' = B*x + D*y + F
//
// which matches the column order of the SVG matrix() operator
// matrix(a b c d e f).
type Matrix2D struct {
	A, B, C, D, E, F float64
}

// Identity is the identity transformation.
var Identity = Matrix2D{1, 0, 0, 1, 0, 0}

// Mult returns a times b, so that applying the result is
// equivalent to applying b first, then a.
func (a Matrix2D) Mult(b Matrix2D) Matrix2D {
	return Matrix2D{
		A: a.A*b.A + a.C*b.B,
		B: a.B*b.A + a.D*b.B,
		C: a.A*b.C + a.C*b.D,
		D: a.B*b.C + a.D*b.D,
		E: a.A*b.E + a.C*b.F + a.E,
		F: a.B*b.E + a.D*b.F + a.F,
	}
}

// Apply maps the coordinates (x, y) through the transformation.
func (a Matrix2D) Apply(x, y float64) (float64, float64) {
	return a.A*x + a.C*y + a.E, a.B*x + a.D*y + a.F
}

// TransformPoint maps the point p through the transformation.
func (a Matrix2D) TransformPoint(p Point) Point {
	x, y := a.Apply(p.X, p.Y)
	return Point{X: x, Y: y}
}

// TransformVector maps the vector (x, y) through the transformation,
// ignoring the translation part.
func (a Matrix2D) TransformVector(x, y float64) (float64, float64) {
	return a.A*x + a.C*y, a.B*x + a.D*y
}

// Translate appends a translation by (x, y) to the transformation.
func (a Matrix2D) Translate(x, y float64) Matrix2D {
	return a.Mult(Matrix2D{1, 0, 0, 1, x, y})
}

// Scale appends a scaling by (x, y) to the transformation.
func (a Matrix2D) Scale(x, y float64) Matrix2D {
	return a.Mult(Matrix2D{x, 0, 0, y, 0, 0})
}

// Rotate appends a rotation of `rad` radians around the origin
// to the transformation.
func (a Matrix2D) Rotate(rad float64) Matrix2D {
	sin, cos := math.Sin(rad), math.Cos(rad)
	return a.Mult(Matrix2D{cos, sin, -sin, cos, 0, 0})
}

// SkewX appends a skew of `rad` radians along the x axis
// to the transformation.
func (a Matrix2D) SkewX(rad float64) Matrix2D {
	return a.Mult(Matrix2D{1, 0, math.Tan(rad), 1, 0, 0})
}

// SkewY appends a skew of `rad` radians along the y axis
// to the transformation.
func (a Matrix2D) SkewY(rad float64) Matrix2D {
	return a.Mult(Matrix2D{1, math.Tan(rad), 0, 1, 0, 0})
}
