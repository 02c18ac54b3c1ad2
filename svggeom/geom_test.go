package svggeom

import (
	"testing"

	"github.com/stretchr/testify/require"
	"seehuhn.de/go/geom/path"

	"github.com/karolisr/roarsvg/svgpath"
)

func TestFromPathRoundTrip(t *testing.T) {
	p, err := svgpath.ParsePath("M0 0 L10 0 Q15 5 10 10 C5 10 0 5 0 0 Z M20 20 l1 1")
	require.NoError(t, err)

	data := FromPath(p, svgpath.Identity)
	require.Equal(t, p, ToPath(data))
}

func TestFromPathTransform(t *testing.T) {
	var p svgpath.Path
	p.AddRect(0, 0, 1, 1)

	data := FromPath(p, svgpath.Identity.Scale(10, 10))
	back := ToPath(data)
	require.Equal(t, svgpath.MoveTo{X: 0, Y: 0}, back[0])
	require.Equal(t, svgpath.LineTo{X: 10, Y: 0}, back[1])
	require.Equal(t, svgpath.Close{}, back[len(back)-1])
}

func TestPathData(t *testing.T) {
	p, err := svgpath.ParsePath("M0 0 L10 0 Z")
	require.NoError(t, err)

	require.Equal(t, "M0,0 L10,0 Z", PathData(FromPath(p, svgpath.Identity), -1))
}

func TestBuilderCommands(t *testing.T) {
	var b Builder
	b.Start(svgpath.Point{X: 1, Y: 2})
	b.Line(svgpath.Point{X: 3, Y: 4})
	b.Stop(true)

	data := b.Data()
	require.Equal(t, []path.Command{path.CmdMoveTo, path.CmdLineTo, path.CmdClose}, data.Cmds)

	// Stop(false) does not close
	var open Builder
	open.Start(svgpath.Point{X: 0, Y: 0})
	open.Line(svgpath.Point{X: 1, Y: 0})
	open.Stop(false)
	require.Equal(t, []path.Command{path.CmdMoveTo, path.CmdLineTo}, open.Data().Cmds)
}
