// Package svgpath implements an abstract representation of
// SVG paths, which can then be consumed by painting or
// geometry drivers.
package svgpath

// Point is a position in user space.
type Point struct {
	X, Y float64
}

// FillRule selects the winding convention a consumer should use to
// decide which regions are inside a path. The conversion pipeline
// only carries this tag; it never interprets it.
type FillRule uint8

const (
	// NonZero is the SVG "nonzero" winding rule, and the default.
	NonZero FillRule = iota
	// EvenOdd is the SVG "evenodd" winding rule.
	EvenOdd
)

func (f FillRule) String() string {
	if f == EvenOdd {
		return "evenodd"
	}
	return "nonzero"
}

// Builder accumulates the primitive path construction commands.
// It doesn't need any SVG knowledge: transformations are already
// applied to the points before sending them to the Builder.
type Builder interface {
	// Start starts a new subpath at the given point.
	Start(a Point)
	// Line adds a line segment to the current subpath.
	Line(b Point)
	// QuadBezier adds a quadratic bezier curve to the current subpath.
	QuadBezier(b, c Point)
	// CubeBezier adds a cubic bezier curve to the current subpath.
	CubeBezier(b, c, d Point)
	// Stop closes the subpath to its start point if closeLoop is true.
	Stop(closeLoop bool)
}

// Operation groups the canonical path commands. The coordinates
// of curves are their control points, end point last.
type Operation interface {
	// add itself on the builder `b`, after applying the transformation `m`
	drawTo(b Builder, m Matrix2D)
}

// MoveTo starts a new subpath at the given point.
type MoveTo Point

// LineTo draws a line to the given point.
type LineTo Point

// QuadTo draws a quadratic bezier curve.
type QuadTo [2]Point

// CubicTo draws a cubic bezier curve.
type CubicTo [3]Point

// Close closes the current subpath, joining the current
// point to the subpath start.
type Close struct{}

func (op MoveTo) drawTo(b Builder, m Matrix2D) {
	b.Stop(false) // implicit end of the previous subpath
	b.Start(m.TransformPoint(Point(op)))
}

func (op LineTo) drawTo(b Builder, m Matrix2D) {
	b.Line(m.TransformPoint(Point(op)))
}

func (op QuadTo) drawTo(b Builder, m Matrix2D) {
	b.QuadBezier(m.TransformPoint(op[0]), m.TransformPoint(op[1]))
}

func (op CubicTo) drawTo(b Builder, m Matrix2D) {
	b.CubeBezier(m.TransformPoint(op[0]), m.TransformPoint(op[1]), m.TransformPoint(op[2]))
}

func (op Close) drawTo(b Builder, m Matrix2D) {
	b.Stop(true)
}

// Path describes a sequence of canonical path operations.
// Higher-level shapes may be reduced to a path.
//
// A valid path begins every subpath with a MoveTo; paths built by
// ParsePath or the shape helpers always do.
type Path []Operation

// Path implements Builder, so paths can be replayed into one
// another and used as the output of shape reduction.
var _ Builder = (*Path)(nil)

// Start starts a new subpath at the given point.
func (p *Path) Start(a Point) {
	*p = append(*p, MoveTo(a))
}

// Line adds a line segment to the current subpath.
func (p *Path) Line(b Point) {
	*p = append(*p, LineTo(b))
}

// QuadBezier adds a quadratic segment to the current subpath.
func (p *Path) QuadBezier(b, c Point) {
	*p = append(*p, QuadTo{b, c})
}

// CubeBezier adds a cubic segment to the current subpath.
func (p *Path) CubeBezier(b, c, d Point) {
	*p = append(*p, CubicTo{b, c, d})
}

// Stop appends a Close if closeLoop is true; an open subpath
// end is not recorded.
func (p *Path) Stop(closeLoop bool) {
	if closeLoop {
		*p = append(*p, Close{})
	}
}

// Clear zeros the path slice, keeping the storage.
func (p *Path) Clear() {
	*p = (*p)[:0]
}

// DrawTo replays the path into the builder `b`, applying the
// transformation `m` to every coordinate. Each new subpath is
// preceded by a Stop(false) on `b`, and a final Stop(false) is
// issued after the last operation, so that builders needing an
// explicit end of subpath always receive one.
func (p Path) DrawTo(b Builder, m Matrix2D) {
	for _, op := range p {
		op.drawTo(b, m)
	}
	b.Stop(false)
}

// String returns the SVG path data representation of the path.
func (p Path) String() string {
	return p.ToSVGPath(-1)
}
