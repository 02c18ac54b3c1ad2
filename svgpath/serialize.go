package svgpath

import "strconv"

// This file implements the reverse direction of the parser,
// formatting a Path back into path data.

// ToSVGPath returns the SVG path data representation of the path,
// using absolute commands and one letter per operation, so that
// ParsePath applied to the result reproduces the operation stream.
// `prec` is the number of decimals to emit for each coordinate;
// a negative value uses the shortest representation.
func (p Path) ToSVGPath(prec int) string {
	var out []byte
	for i, op := range p {
		if i > 0 {
			out = append(out, ' ')
		}
		switch op := op.(type) {
		case MoveTo:
			out = append(out, 'M')
			out = appendPoint(out, Point(op), prec, true)
		case LineTo:
			out = append(out, 'L')
			out = appendPoint(out, Point(op), prec, true)
		case QuadTo:
			out = append(out, 'Q')
			out = appendPoint(out, op[0], prec, true)
			out = appendPoint(out, op[1], prec, false)
		case CubicTo:
			out = append(out, 'C')
			out = appendPoint(out, op[0], prec, true)
			out = appendPoint(out, op[1], prec, false)
			out = appendPoint(out, op[2], prec, false)
		case Close:
			out = append(out, 'Z')
		}
	}
	return string(out)
}

func appendPoint(out []byte, p Point, prec int, first bool) []byte {
	if !first {
		out = append(out, ' ')
	}
	out = strconv.AppendFloat(out, p.X, 'f', prec, 64)
	out = append(out, ',')
	return strconv.AppendFloat(out, p.Y, 'f', prec, 64)
}
