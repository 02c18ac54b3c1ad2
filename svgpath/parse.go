package svgpath

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// This file implements the compiler from the SVG path data
// mini-language (the `d` attribute) to a Path.

// Parsing errors, wrapped in *ParseError.
var (
	ErrUnknownCommand = errors.New("unknown command letter")
	ErrParamMismatch  = errors.New("wrong number of parameters")
	ErrBadNumber      = errors.New("malformed number")
	ErrNoMoveTo       = errors.New("draw command before any moveto")
)

// ParseError is a syntax error in a path data string.
type ParseError struct {
	Offset int   // byte offset of the offending token in the source
	Cmd    byte  // active command letter, or 0 if none
	Err    error // one of the Err... sentinels
}

func (e *ParseError) Error() string {
	if e.Cmd != 0 {
		return fmt.Sprintf("invalid path data: %s (command %q, offset %d)", e.Err, e.Cmd, e.Offset)
	}
	return fmt.Sprintf("invalid path data: %s (offset %d)", e.Err, e.Offset)
}

func (e *ParseError) Unwrap() error { return e.Err }

// number of coordinates consumed by each command letter
var cmdArities = map[byte]int{
	'M': 2, 'L': 2, 'H': 1, 'V': 1,
	'C': 6, 'S': 4, 'Q': 4, 'T': 2,
	'A': 7, 'Z': 0,
}

// maxArcAngle is the maximum angular span covered by one cubic
// segment when approximating an elliptical arc.
const maxArcAngle = math.Pi / 2

// pathCursor is the state of the path data compiler.
type pathCursor struct {
	data []byte
	pos  int

	path Path

	placeX, placeY float64 // current point
	startX, startY float64 // start of the current subpath
	cntlX, cntlY   float64 // last control point, for smooth curves
	lastCmd        byte    // previous command letter, uppercased
	inPath         bool    // a moveto has been seen
}

// ParsePath compiles an SVG path data string into a Path.
//
// The grammar follows the SVG specification: each command letter is
// followed by its coordinates, extra coordinate groups repeat the
// command (repeating a moveto draws lines), and numbers may be packed
// without separators where the boundary is unambiguous, as in
// "1-2" or ".5.5". Lowercase letters use coordinates relative to the
// current point. Elliptical arcs are approximated by cubic bezier
// segments spanning at most a quarter turn each.
//
// A blank string yields an empty path. Any syntax error aborts the
// compilation and is reported as a *ParseError.
func ParsePath(data string) (Path, error) {
	c := pathCursor{data: []byte(data)}
	for {
		c.skipSeparators()
		if c.pos >= len(c.data) {
			return c.path, nil
		}
		if err := c.readCommand(); err != nil {
			return nil, err
		}
	}
}

// ParseNumbers parses a list of numbers separated by whitespace
// and/or commas, using the same loose tokenization as path data:
// a minus sign or a second dot also starts a new number. It is
// used for the `points`, `viewBox` and transformation attributes.
func ParseNumbers(data string) ([]float64, error) {
	c := pathCursor{data: []byte(data)}
	var out []float64
	for {
		c.skipSeparators()
		if c.pos >= len(c.data) {
			return out, nil
		}
		v, err := c.readNumber(0)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
}

func isDigit(b byte) bool { return '0' <= b && b <= '9' }

func isSeparator(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\f', ',':
		return true
	}
	return false
}

func (c *pathCursor) skipSeparators() {
	for c.pos < len(c.data) && isSeparator(c.data[c.pos]) {
		c.pos++
	}
}

// startsNumber reports whether the byte at the cursor can begin
// a number token.
func (c *pathCursor) startsNumber() bool {
	if c.pos >= len(c.data) {
		return false
	}
	b := c.data[c.pos]
	return isDigit(b) || b == '.' || b == '+' || b == '-'
}

// readNumber scans one number token. The token ends at the first
// byte that cannot extend it, so that packed forms like "1-2",
// "1.5.5" or "1e3.5" split correctly.
func (c *pathCursor) readNumber(cmd byte) (float64, error) {
	c.skipSeparators()
	start := c.pos
	i, n := c.pos, len(c.data)
	if i < n && (c.data[i] == '+' || c.data[i] == '-') {
		i++
	}
	digits := false
	for i < n && isDigit(c.data[i]) {
		i++
		digits = true
	}
	if i < n && c.data[i] == '.' {
		i++
		for i < n && isDigit(c.data[i]) {
			i++
			digits = true
		}
	}
	if !digits {
		return 0, &ParseError{Offset: start, Cmd: cmd, Err: ErrBadNumber}
	}
	if i < n && (c.data[i] == 'e' || c.data[i] == 'E') {
		// only consume the exponent if it is well formed
		j := i + 1
		if j < n && (c.data[j] == '+' || c.data[j] == '-') {
			j++
		}
		if j < n && isDigit(c.data[j]) {
			for j < n && isDigit(c.data[j]) {
				j++
			}
			i = j
		}
	}
	v, err := strconv.ParseFloat(string(c.data[start:i]), 64)
	if err != nil {
		return 0, &ParseError{Offset: start, Cmd: cmd, Err: ErrBadNumber}
	}
	c.pos = i
	return v, nil
}

// readCommand compiles one command letter and all its coordinate
// groups, including implicit repetitions.
func (c *pathCursor) readCommand() error {
	off := c.pos
	cmd := c.data[c.pos]
	up := cmd &^ 0x20 // uppercase ASCII letter
	arity, known := cmdArities[up]
	if !known {
		return &ParseError{Offset: off, Err: ErrUnknownCommand}
	}
	c.pos++
	if !c.inPath && up != 'M' {
		return &ParseError{Offset: off, Cmd: cmd, Err: ErrNoMoveTo}
	}
	if up == 'Z' {
		c.closeSubpath()
		c.lastCmd = 'Z'
		return nil
	}

	rel := cmd >= 'a'
	var pts [7]float64
	first := true
	for {
		for i := 0; i < arity; i++ {
			v, err := c.readNumber(cmd)
			if err != nil {
				if i > 0 {
					// the group started, so this is a truncated
					// coordinate group rather than a bad token
					err.(*ParseError).Err = ErrParamMismatch
				}
				return err
			}
			pts[i] = v
		}
		c.apply(up, rel, first, pts[:arity])
		first = false
		c.skipSeparators()
		if !c.startsNumber() {
			return nil
		}
	}
}

// apply executes one coordinate group of the command `up`.
func (c *pathCursor) apply(up byte, rel, first bool, pts []float64) {
	switch up {
	case 'M':
		x, y := pts[0], pts[1]
		if rel {
			x += c.placeX
			y += c.placeY
		}
		if first {
			c.path.Start(Point{x, y})
			c.startX, c.startY = x, y
			c.inPath = true
			c.lastCmd = 'M'
		} else {
			// extra pairs after a moveto draw lines
			c.path.Line(Point{x, y})
			c.lastCmd = 'L'
		}
		c.placeX, c.placeY = x, y
	case 'L':
		x, y := pts[0], pts[1]
		if rel {
			x += c.placeX
			y += c.placeY
		}
		c.lineTo(x, y)
	case 'H':
		x := pts[0]
		if rel {
			x += c.placeX
		}
		c.lineTo(x, c.placeY)
	case 'V':
		y := pts[0]
		if rel {
			y += c.placeY
		}
		c.lineTo(c.placeX, y)
	case 'C':
		x1, y1, x2, y2, x, y := pts[0], pts[1], pts[2], pts[3], pts[4], pts[5]
		if rel {
			x1 += c.placeX
			y1 += c.placeY
			x2 += c.placeX
			y2 += c.placeY
			x += c.placeX
			y += c.placeY
		}
		c.cubicTo(x1, y1, x2, y2, x, y)
	case 'S':
		x2, y2, x, y := pts[0], pts[1], pts[2], pts[3]
		if rel {
			x2 += c.placeX
			y2 += c.placeY
			x += c.placeX
			y += c.placeY
		}
		x1, y1 := c.reflectControl('C', 'S')
		c.cubicTo(x1, y1, x2, y2, x, y)
	case 'Q':
		x1, y1, x, y := pts[0], pts[1], pts[2], pts[3]
		if rel {
			x1 += c.placeX
			y1 += c.placeY
			x += c.placeX
			y += c.placeY
		}
		c.quadTo(x1, y1, x, y)
	case 'T':
		x, y := pts[0], pts[1]
		if rel {
			x += c.placeX
			y += c.placeY
		}
		x1, y1 := c.reflectControl('Q', 'T')
		c.quadTo(x1, y1, x, y)
	case 'A':
		x, y := pts[5], pts[6]
		if rel {
			x += c.placeX
			y += c.placeY
		}
		c.arcTo(pts[0], pts[1], pts[2], pts[3] != 0, pts[4] != 0, x, y)
		c.lastCmd = 'A'
	}
}

func (c *pathCursor) lineTo(x, y float64) {
	c.path.Line(Point{x, y})
	c.placeX, c.placeY = x, y
	c.lastCmd = 'L'
}

func (c *pathCursor) quadTo(x1, y1, x, y float64) {
	c.path.QuadBezier(Point{x1, y1}, Point{x, y})
	c.cntlX, c.cntlY = x1, y1
	c.placeX, c.placeY = x, y
	c.lastCmd = 'Q'
}

func (c *pathCursor) cubicTo(x1, y1, x2, y2, x, y float64) {
	c.path.CubeBezier(Point{x1, y1}, Point{x2, y2}, Point{x, y})
	c.cntlX, c.cntlY = x2, y2
	c.placeX, c.placeY = x, y
	c.lastCmd = 'C'
}

// reflectControl returns the first control point of a smooth curve:
// the reflection of the last control point about the current point
// if the previous command was of the same family (cmd1 or cmd2),
// the current point otherwise.
func (c *pathCursor) reflectControl(cmd1, cmd2 byte) (float64, float64) {
	if c.lastCmd == cmd1 || c.lastCmd == cmd2 {
		return 2*c.placeX - c.cntlX, 2*c.placeY - c.cntlY
	}
	return c.placeX, c.placeY
}

func (c *pathCursor) closeSubpath() {
	c.path.Stop(true)
	c.placeX, c.placeY = c.startX, c.startY
}

// arcTo appends the cubic approximation of the elliptical arc from
// the current point to (x, y). Degenerate arcs, where a radius is
// zero or the end point equals the start point, reduce to a line.
func (c *pathCursor) arcTo(rx, ry, rotDeg float64, largeArc, sweep bool, x, y float64) {
	px, py := c.placeX, c.placeY
	rx, ry = math.Abs(rx), math.Abs(ry)
	if rx == 0 || ry == 0 || (px == x && py == y) {
		c.lineTo(x, y)
		return
	}
	rotX := rotDeg * math.Pi / 180
	cx, cy := findEllipseCenter(&rx, &ry, rotX, px, py, x, y, sweep, !largeArc)
	c.placeX, c.placeY = c.path.addArc(rx, ry, rotX, largeArc, sweep, cx, cy, px, py, x, y)
}
