package svgpath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseBasic(t *testing.T) {
	p, err := ParsePath("M0 0 L10 0 L10 10 Z")
	require.NoError(t, err)
	require.Equal(t, Path{
		MoveTo{0, 0},
		LineTo{10, 0},
		LineTo{10, 10},
		Close{},
	}, p)
}

func TestParseEmpty(t *testing.T) {
	for _, data := range []string{"", "   ", "\n\t , "} {
		p, err := ParsePath(data)
		require.NoError(t, err)
		require.Empty(t, p)
	}
}

func TestParseRelative(t *testing.T) {
	p, err := ParsePath("m 10 10 l 5 0 5 5 z")
	require.NoError(t, err)
	require.Equal(t, Path{
		MoveTo{10, 10},
		LineTo{15, 10},
		LineTo{20, 15},
		Close{},
	}, p)
}

func TestParseImplicitLineAfterMove(t *testing.T) {
	p, err := ParsePath("M1 2 3 4 5 6")
	require.NoError(t, err)
	require.Equal(t, Path{
		MoveTo{1, 2},
		LineTo{3, 4},
		LineTo{5, 6},
	}, p)

	// relative moveto repetitions accumulate
	p, err = ParsePath("m1 2 3 4")
	require.NoError(t, err)
	require.Equal(t, Path{
		MoveTo{1, 2},
		LineTo{4, 6},
	}, p)
}

func TestParseLooseNumbers(t *testing.T) {
	p, err := ParsePath("M1-2L.5.5-4,2")
	require.NoError(t, err)
	require.Equal(t, Path{
		MoveTo{1, -2},
		LineTo{0.5, 0.5},
		LineTo{-4, 2},
	}, p)

	p, err = ParsePath("M1e1 1E+1L+2e-1 3")
	require.NoError(t, err)
	require.Equal(t, Path{
		MoveTo{10, 10},
		LineTo{0.2, 3},
	}, p)
}

func TestParseHorizontalVertical(t *testing.T) {
	p, err := ParsePath("M0 0 H10 V5 h-2 v-1")
	require.NoError(t, err)
	require.Equal(t, Path{
		MoveTo{0, 0},
		LineTo{10, 0},
		LineTo{10, 5},
		LineTo{8, 5},
		LineTo{8, 4},
	}, p)
}

func TestParseSmoothCubic(t *testing.T) {
	p, err := ParsePath("M0 0 C 0 10 10 10 10 0 S 20 -10 20 0")
	require.NoError(t, err)
	require.Equal(t, Path{
		MoveTo{0, 0},
		CubicTo{{0, 10}, {10, 10}, {10, 0}},
		// first control point is (10, 10) reflected about (10, 0)
		CubicTo{{10, -10}, {20, -10}, {20, 0}},
	}, p)
}

func TestParseSmoothQuad(t *testing.T) {
	p, err := ParsePath("M0 0 Q 5 10 10 0 T 20 0")
	require.NoError(t, err)
	require.Equal(t, Path{
		MoveTo{0, 0},
		QuadTo{{5, 10}, {10, 0}},
		QuadTo{{15, -10}, {20, 0}},
	}, p)
}

func TestParseSmoothWithoutPreviousCurve(t *testing.T) {
	// no previous curve of the same family: the control point
	// collapses onto the current point
	p, err := ParsePath("M5 5 S 10 10 10 5")
	require.NoError(t, err)
	require.Equal(t, Path{
		MoveTo{5, 5},
		CubicTo{{5, 5}, {10, 10}, {10, 5}},
	}, p)

	p, err = ParsePath("M5 5 L6 6 T 10 5")
	require.NoError(t, err)
	require.Equal(t, Path{
		MoveTo{5, 5},
		LineTo{6, 6},
		QuadTo{{6, 6}, {10, 5}},
	}, p)
}

func TestParseCloseResetsCurrentPoint(t *testing.T) {
	// after a close, relative coordinates are taken from the
	// subpath start point
	p, err := ParsePath("M10 10 L20 10 Z l1 2")
	require.NoError(t, err)
	require.Equal(t, Path{
		MoveTo{10, 10},
		LineTo{20, 10},
		Close{},
		LineTo{11, 12},
	}, p)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		data       string
		wantErr    error
		wantOffset int
	}{
		{"M 0 0 X 1", ErrUnknownCommand, 6},
		{"L 1 2", ErrNoMoveTo, 0},
		{"Z", ErrNoMoveTo, 0},
		{"M--1 0", ErrBadNumber, 1},
		{"M 1", ErrParamMismatch, 3},
		{"M 1 2 3", ErrParamMismatch, 7},
		{"M 1 2 L 3 x", ErrParamMismatch, 10},
		{"M 1 2 L", ErrBadNumber, 7},
	}
	for _, tt := range tests {
		p, err := ParsePath(tt.data)
		require.Error(t, err, tt.data)
		require.Nil(t, p, tt.data)
		require.ErrorIs(t, err, tt.wantErr, tt.data)

		var pe *ParseError
		require.ErrorAs(t, err, &pe, tt.data)
		require.Equal(t, tt.wantOffset, pe.Offset, tt.data)
	}
}

// evalCubic evaluates the cubic bezier (p0, op) at time t.
func evalCubic(p0 Point, op CubicTo, t float64) Point {
	u := 1 - t
	return Point{
		X: u*u*u*p0.X + 3*u*u*t*op[0].X + 3*u*t*t*op[1].X + t*t*t*op[2].X,
		Y: u*u*u*p0.Y + 3*u*u*t*op[0].Y + 3*u*t*t*op[1].Y + t*t*t*op[2].Y,
	}
}

func TestParseArcFullCircle(t *testing.T) {
	const r = 10.0
	p, err := ParsePath("M 10 0 A 10 10 0 1 1 -10 0 A 10 10 0 1 1 10 0 Z")
	require.NoError(t, err)

	require.IsType(t, MoveTo{}, p[0])
	require.IsType(t, Close{}, p[len(p)-1])

	current := Point(p[0].(MoveTo))
	nbCubics := 0
	for _, op := range p[1 : len(p)-1] {
		cube, ok := op.(CubicTo)
		require.True(t, ok)
		// sample the segment; it must stay on the circle
		for _, time := range []float64{0, 0.25, 0.5, 0.75, 1} {
			pt := evalCubic(current, cube, time)
			radius := math.Hypot(pt.X, pt.Y)
			require.InDelta(t, r, radius, r*1e-3)
		}
		current = cube[2]
		nbCubics++
	}
	require.GreaterOrEqual(t, nbCubics, 4)
	// the end point of each half is exact
	require.Equal(t, Point{10, 0}, current)
}

func TestParseArcDegenerate(t *testing.T) {
	p, err := ParsePath("M0 0 A 0 5 0 0 1 10 10")
	require.NoError(t, err)
	require.Equal(t, Path{MoveTo{0, 0}, LineTo{10, 10}}, p)

	p, err = ParsePath("M5 5 A 4 4 0 0 1 5 5")
	require.NoError(t, err)
	require.Equal(t, Path{MoveTo{5, 5}, LineTo{5, 5}}, p)
}

func TestParseArcSweep(t *testing.T) {
	// same radii and end point, opposite sweep flags: the two arcs
	// bulge on opposite sides of the chord
	up, err := ParsePath("M0 0 A 5 5 0 0 1 10 0")
	require.NoError(t, err)
	down, err := ParsePath("M0 0 A 5 5 0 0 0 10 0")
	require.NoError(t, err)

	midUp := evalCubic(Point{0, 0}, up[1].(CubicTo), 0.5)
	midDown := evalCubic(Point{0, 0}, down[1].(CubicTo), 0.5)
	require.Less(t, midUp.Y, 0.0)
	require.Greater(t, midDown.Y, 0.0)
}

func TestParseNumbers(t *testing.T) {
	vals, err := ParseNumbers(" 1, 2.5 -3.5.5 4e2 ")
	require.NoError(t, err)
	require.Equal(t, []float64{1, 2.5, -3.5, 0.5, 400}, vals)

	vals, err = ParseNumbers("")
	require.NoError(t, err)
	require.Empty(t, vals)

	_, err = ParseNumbers("1 2 x")
	require.ErrorIs(t, err, ErrBadNumber)
}
