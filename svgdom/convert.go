package svgdom

import (
	"errors"
	"fmt"

	"github.com/karolisr/roarsvg/svgpath"
)

// This file implements the conversion driver: a depth-first walk of
// the document tree, composing transforms and resolving inherited
// fill rules, feeding each drawable node to the output builders.

// ErrCircularRef means the document contains a `use` reference
// cycle; the conversion is aborted.
var ErrCircularRef = errors.New("circular reference")

// ErrUnsupportedNode marks a node variant the conversion cannot
// turn into a path. It is reported through the Report, never as
// a terminal error.
var ErrUnsupportedNode = errors.New("unsupported node")

// Driver provides the output paths receiving the converted geometry.
type Driver interface {
	// StartPath returns the builder for the next output path,
	// to be filled with the given rule.
	StartPath(fill svgpath.FillRule) svgpath.Builder
	// FinishPath is called with the builder returned by StartPath
	// once all its commands have been emitted.
	FinishPath(b svgpath.Builder)
}

// Options configures a conversion run.
type Options struct {
	// Merge emits the whole document as a single output path,
	// instead of one path per drawable node. The merged path uses
	// the NonZero fill rule.
	Merge bool

	// LocalSpace emits every node in its own, untransformed
	// coordinate space, ignoring the composed transforms.
	LocalSpace bool
}

// Diagnostic records a node skipped during a conversion.
type Diagnostic struct {
	Node NodeID
	Err  error
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("node %d skipped: %s", d.Node, d.Err)
}

// Report is the outcome of a conversion that ran to completion.
type Report struct {
	// Skipped lists the drawable nodes whose geometry could not be
	// converted, with the reason. The rest of the document is
	// unaffected by the listed failures.
	Skipped []Diagnostic
}

// Complete reports whether every drawable node was converted.
func (r *Report) Complete() bool { return len(r.Skipped) == 0 }

// Convert walks the tree in document order and replays every
// drawable node into the driver's builders, with the composed
// transformation applied to all coordinates.
//
// Nodes that fail to convert, because of invalid path data or an
// unsupported variant, are recorded in the Report and skipped.
// Only structural failures, today a circular `use` reference,
// abort the conversion with an error.
func Convert(t *Tree, d Driver, opts Options) (*Report, error) {
	c := converter{tree: t, driver: d, opts: opts}
	if opts.Merge {
		c.merged = d.StartPath(svgpath.NonZero)
	}
	err := c.walk(t.Root, svgpath.Identity, svgpath.NonZero, make(map[NodeID]bool))
	if err != nil {
		return nil, err
	}
	if c.merged != nil {
		d.FinishPath(c.merged)
	}
	return &c.report, nil
}

type converter struct {
	tree   *Tree
	driver Driver
	opts   Options

	merged svgpath.Builder // non nil when merging
	report Report
}

// walk processes the node and its subtree. `visiting` holds the
// nodes of the current reference chain, to detect cycles.
func (c *converter) walk(id NodeID, ctm svgpath.Matrix2D, fill svgpath.FillRule, visiting map[NodeID]bool) error {
	n := c.tree.Node(id)
	if n == nil || n.Hidden {
		return nil
	}
	if n.Transform != nil {
		ctm = ctm.Mult(*n.Transform)
	}
	if n.Fill != nil {
		fill = *n.Fill
	}

	switch n.Kind {
	case KindGroup:
		if visiting[id] {
			return fmt.Errorf("%w: node %d", ErrCircularRef, id)
		}
		visiting[id] = true
		for _, child := range n.Children {
			if err := c.walk(child, ctm, fill, visiting); err != nil {
				return err
			}
		}
		delete(visiting, id)
		return nil
	case KindUse:
		if n.Href == None {
			// dangling references are dropped silently
			return nil
		}
		if visiting[id] {
			return fmt.Errorf("%w: node %d", ErrCircularRef, id)
		}
		visiting[id] = true
		// the target is drawn as if it were a child of the use node,
		// shifted by the x/y attributes
		err := c.walk(n.Href, ctm.Translate(n.X, n.Y), fill, visiting)
		delete(visiting, id)
		return err
	default:
		return c.draw(id, n, ctm, fill)
	}
}

// draw converts one drawable node and replays it into the driver.
func (c *converter) draw(id NodeID, n *Node, ctm svgpath.Matrix2D, fill svgpath.FillRule) error {
	path, err := nodePath(n)
	if err != nil {
		c.report.Skipped = append(c.report.Skipped, Diagnostic{Node: id, Err: err})
		return nil
	}
	if len(path) == 0 {
		return nil
	}
	if c.opts.LocalSpace {
		ctm = svgpath.Identity
	}
	b := c.merged
	if b == nil {
		b = c.driver.StartPath(fill)
	}
	path.DrawTo(b, ctm)
	if c.merged == nil {
		c.driver.FinishPath(b)
	}
	return nil
}

// nodePath reduces a drawable node to its canonical path.
func nodePath(n *Node) (svgpath.Path, error) {
	var p svgpath.Path
	switch n.Kind {
	case KindPath:
		return svgpath.ParsePath(n.Data)
	case KindRect:
		p.AddRoundedRect(n.X, n.Y, n.W, n.H, n.Rx, n.Ry)
	case KindCircle:
		p.AddCircle(n.Cx, n.Cy, n.R)
	case KindEllipse:
		p.AddEllipse(n.Cx, n.Cy, n.Rx, n.Ry)
	case KindLine:
		p.AddLine(n.X1, n.Y1, n.X2, n.Y2)
	case KindPolyline:
		p.AddPolyline(n.Points)
	case KindPolygon:
		p.AddPolygon(n.Points)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedNode, n.Kind)
	}
	return p, nil
}
