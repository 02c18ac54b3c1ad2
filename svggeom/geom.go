// Package svggeom bridges converted paths to the vector geometry
// types of seehuhn.de/go/geom, and writes path collections back to
// standalone SVG documents.
package svggeom

import (
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"

	"github.com/karolisr/roarsvg/svgpath"
)

func v2(p svgpath.Point) vec.Vec2 {
	return vec.Vec2{X: p.X, Y: p.Y}
}

// Builder accumulates path commands into a path.Data.
// The zero value is ready to use.
type Builder struct {
	data *path.Data
}

func (b *Builder) init() {
	if b.data == nil {
		b.data = &path.Data{}
	}
}

// Start starts a new subpath at the given point.
func (b *Builder) Start(a svgpath.Point) {
	b.init()
	b.data = b.data.MoveTo(v2(a))
}

// Line adds a line segment to the current subpath.
func (b *Builder) Line(p svgpath.Point) {
	b.init()
	b.data = b.data.LineTo(v2(p))
}

// QuadBezier adds a quadratic bezier curve to the current subpath.
func (b *Builder) QuadBezier(c, p svgpath.Point) {
	b.init()
	b.data = b.data.QuadTo(v2(c), v2(p))
}

// CubeBezier adds a cubic bezier curve to the current subpath.
func (b *Builder) CubeBezier(c1, c2, p svgpath.Point) {
	b.init()
	b.data = b.data.CubeTo(v2(c1), v2(c2), v2(p))
}

// Stop closes the current subpath if closeLoop is true.
func (b *Builder) Stop(closeLoop bool) {
	if closeLoop {
		b.init()
		b.data = b.data.Close()
	}
}

// Data returns the accumulated path, never nil.
func (b *Builder) Data() *path.Data {
	b.init()
	return b.data
}

var _ svgpath.Builder = (*Builder)(nil)

// FromPath converts a path to its path.Data equivalent, applying
// the transformation `m` to every coordinate.
func FromPath(p svgpath.Path, m svgpath.Matrix2D) *path.Data {
	var b Builder
	p.DrawTo(&b, m)
	return b.Data()
}

// ToPath is the inverse of FromPath: it converts a path.Data back
// to the canonical operation stream.
func ToPath(d *path.Data) svgpath.Path {
	var out svgpath.Path
	coordIdx := 0
	for _, cmd := range d.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			out.Start(point(d.Coords[coordIdx]))
			coordIdx++
		case path.CmdLineTo:
			out.Line(point(d.Coords[coordIdx]))
			coordIdx++
		case path.CmdQuadTo:
			out.QuadBezier(point(d.Coords[coordIdx]), point(d.Coords[coordIdx+1]))
			coordIdx += 2
		case path.CmdCubeTo:
			out.CubeBezier(point(d.Coords[coordIdx]), point(d.Coords[coordIdx+1]),
				point(d.Coords[coordIdx+2]))
			coordIdx += 3
		case path.CmdClose:
			out.Stop(true)
		}
	}
	return out
}

func point(v vec.Vec2) svgpath.Point {
	return svgpath.Point{X: v.X, Y: v.Y}
}

// PathData serializes a path.Data to SVG path data text, with
// `prec` decimals per coordinate (negative for the shortest form).
func PathData(d *path.Data, prec int) string {
	return ToPath(d).ToSVGPath(prec)
}
