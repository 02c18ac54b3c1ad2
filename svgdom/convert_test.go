package svgdom

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/karolisr/roarsvg/svgpath"
)

// recordingDriver collects the converted paths, one per
// StartPath/FinishPath pair.
type recordingDriver struct {
	fills    []svgpath.FillRule
	paths    []svgpath.Path
	building []*svgpath.Path
}

func (d *recordingDriver) StartPath(fill svgpath.FillRule) svgpath.Builder {
	d.fills = append(d.fills, fill)
	p := &svgpath.Path{}
	d.building = append(d.building, p)
	return p
}

func (d *recordingDriver) FinishPath(b svgpath.Builder) {
	p := b.(*svgpath.Path)
	d.paths = append(d.paths, *p)
}

func rectNode(x, y, w, h float64) Node {
	return Node{Kind: KindRect, X: x, Y: y, W: w, H: h, Href: None}
}

func TestConvertPerNode(t *testing.T) {
	tree := NewTree()
	tree.Append(tree.Root, rectNode(0, 0, 10, 10))
	tree.Append(tree.Root, Node{Kind: KindLine, X2: 5, Y2: 5, Href: None})

	var d recordingDriver
	report, err := Convert(tree, &d, Options{})
	require.NoError(t, err)
	require.True(t, report.Complete())

	require.Len(t, d.paths, 2)
	require.Equal(t, svgpath.Path{
		svgpath.MoveTo{X: 0, Y: 0},
		svgpath.LineTo{X: 10, Y: 0},
		svgpath.LineTo{X: 10, Y: 10},
		svgpath.LineTo{X: 0, Y: 10},
		svgpath.Close{},
	}, d.paths[0])
	require.Equal(t, svgpath.Path{
		svgpath.MoveTo{X: 0, Y: 0},
		svgpath.LineTo{X: 5, Y: 5},
	}, d.paths[1])
}

func TestConvertMerge(t *testing.T) {
	tree := NewTree()
	tree.Append(tree.Root, rectNode(0, 0, 10, 10))
	tree.Append(tree.Root, Node{Kind: KindLine, X2: 5, Y2: 5, Href: None})

	var d recordingDriver
	report, err := Convert(tree, &d, Options{Merge: true})
	require.NoError(t, err)
	require.True(t, report.Complete())

	require.Len(t, d.paths, 1)
	require.Equal(t, []svgpath.FillRule{svgpath.NonZero}, d.fills)
	// both shapes end up in the single output path
	require.Equal(t, svgpath.Path{
		svgpath.MoveTo{X: 0, Y: 0},
		svgpath.LineTo{X: 10, Y: 0},
		svgpath.LineTo{X: 10, Y: 10},
		svgpath.LineTo{X: 0, Y: 10},
		svgpath.Close{},
		svgpath.MoveTo{X: 0, Y: 0},
		svgpath.LineTo{X: 5, Y: 5},
	}, d.paths[0])
}

func TestConvertComposedTransforms(t *testing.T) {
	outer := svgpath.Identity.Translate(5, 5)
	inner := svgpath.Identity.Scale(2, 2)

	tree := NewTree()
	g := tree.Append(tree.Root, Node{Kind: KindGroup, Transform: &outer, Href: None})
	rect := rectNode(1, 1, 2, 3)
	rect.Transform = &inner
	tree.Append(g, rect)

	var d recordingDriver
	_, err := Convert(tree, &d, Options{})
	require.NoError(t, err)

	// the inner transform applies first: (1,1) -> (2,2) -> (7,7)
	require.Len(t, d.paths, 1)
	require.Equal(t, svgpath.MoveTo{X: 7, Y: 7}, d.paths[0][0])
	require.Equal(t, svgpath.LineTo{X: 11, Y: 7}, d.paths[0][1])
}

func TestConvertLocalSpace(t *testing.T) {
	outer := svgpath.Identity.Translate(5, 5)

	tree := NewTree()
	g := tree.Append(tree.Root, Node{Kind: KindGroup, Transform: &outer, Href: None})
	tree.Append(g, rectNode(1, 1, 2, 3))

	var d recordingDriver
	_, err := Convert(tree, &d, Options{LocalSpace: true})
	require.NoError(t, err)

	require.Len(t, d.paths, 1)
	require.Equal(t, svgpath.MoveTo{X: 1, Y: 1}, d.paths[0][0])
}

func TestConvertFillRuleInheritance(t *testing.T) {
	evenOdd, nonZero := svgpath.EvenOdd, svgpath.NonZero

	tree := NewTree()
	g := tree.Append(tree.Root, Node{Kind: KindGroup, Fill: &evenOdd, Href: None})
	tree.Append(g, rectNode(0, 0, 1, 1))
	override := rectNode(0, 0, 1, 1)
	override.Fill = &nonZero
	tree.Append(g, override)
	tree.Append(tree.Root, rectNode(0, 0, 1, 1))

	var d recordingDriver
	_, err := Convert(tree, &d, Options{})
	require.NoError(t, err)
	require.Equal(t, []svgpath.FillRule{
		svgpath.EvenOdd, // inherited from the group
		svgpath.NonZero, // node override
		svgpath.NonZero, // document default
	}, d.fills)
}

func TestConvertHidden(t *testing.T) {
	tree := NewTree()
	hidden := rectNode(0, 0, 1, 1)
	hidden.Hidden = true
	tree.Append(tree.Root, hidden)

	hiddenGroup := tree.Append(tree.Root, Node{Kind: KindGroup, Hidden: true, Href: None})
	tree.Append(hiddenGroup, rectNode(0, 0, 1, 1))

	var d recordingDriver
	report, err := Convert(tree, &d, Options{})
	require.NoError(t, err)
	require.True(t, report.Complete())
	require.Empty(t, d.paths)
}

func TestConvertSkipsInvalidPath(t *testing.T) {
	tree := NewTree()
	bad := tree.Append(tree.Root, Node{Kind: KindPath, Data: "M 0 0 L x", Href: None})
	tree.Append(tree.Root, rectNode(0, 0, 1, 1))

	var d recordingDriver
	report, err := Convert(tree, &d, Options{})
	require.NoError(t, err)

	// the invalid node is reported, the valid one is converted
	require.Len(t, report.Skipped, 1)
	require.Equal(t, bad, report.Skipped[0].Node)
	var pe *svgpath.ParseError
	require.ErrorAs(t, report.Skipped[0].Err, &pe)
	require.Len(t, d.paths, 1)
}

func TestConvertUse(t *testing.T) {
	tree := NewTree()
	defs := tree.Append(tree.Root, Node{Kind: KindGroup, Hidden: true, Href: None})
	target := tree.Append(defs, rectNode(0, 0, 2, 2))
	tree.Append(tree.Root, Node{Kind: KindUse, Href: target, X: 10, Y: 0})

	var d recordingDriver
	_, err := Convert(tree, &d, Options{})
	require.NoError(t, err)

	require.Len(t, d.paths, 1)
	require.Equal(t, svgpath.MoveTo{X: 10, Y: 0}, d.paths[0][0])
}

func TestConvertUseShared(t *testing.T) {
	// two references to the same target are both drawn
	tree := NewTree()
	defs := tree.Append(tree.Root, Node{Kind: KindGroup, Hidden: true, Href: None})
	target := tree.Append(defs, rectNode(0, 0, 2, 2))
	tree.Append(tree.Root, Node{Kind: KindUse, Href: target})
	tree.Append(tree.Root, Node{Kind: KindUse, Href: target, X: 5})

	var d recordingDriver
	report, err := Convert(tree, &d, Options{})
	require.NoError(t, err)
	require.True(t, report.Complete())
	require.Len(t, d.paths, 2)
	require.Equal(t, svgpath.MoveTo{X: 0, Y: 0}, d.paths[0][0])
	require.Equal(t, svgpath.MoveTo{X: 5, Y: 0}, d.paths[1][0])
}

func TestConvertUseDangling(t *testing.T) {
	tree := NewTree()
	tree.Append(tree.Root, Node{Kind: KindUse, Href: None})

	var d recordingDriver
	report, err := Convert(tree, &d, Options{})
	require.NoError(t, err)
	require.True(t, report.Complete())
	require.Empty(t, d.paths)
}

func TestConvertUseCycle(t *testing.T) {
	tree := NewTree()
	g := tree.Append(tree.Root, Node{Kind: KindGroup, Href: None})
	tree.Append(g, Node{Kind: KindUse, Href: g})

	var d recordingDriver
	report, err := Convert(tree, &d, Options{})
	require.ErrorIs(t, err, ErrCircularRef)
	require.Nil(t, report)
}

func TestConvertUnsupportedKind(t *testing.T) {
	tree := NewTree()
	id := tree.Append(tree.Root, Node{Kind: Kind(200), Href: None})

	var d recordingDriver
	report, err := Convert(tree, &d, Options{})
	require.NoError(t, err)
	require.Len(t, report.Skipped, 1)
	require.Equal(t, id, report.Skipped[0].Node)
	require.ErrorIs(t, report.Skipped[0].Err, ErrUnsupportedNode)
}
