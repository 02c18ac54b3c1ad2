// Package svgdom implements the typed document tree of an SVG file,
// and the driver converting it into canonical path commands.
//
// The tree stores its nodes in a flat arena; nodes reference each
// other by index, so that `use` references, including forward ones,
// resolve without pointers.
package svgdom

import "github.com/karolisr/roarsvg/svgpath"

// NodeID identifies a node inside a Tree.
type NodeID int

// None is the null node reference.
const None NodeID = -1

// Kind is the variant of a Node.
type Kind uint8

const (
	KindGroup Kind = iota
	KindPath
	KindRect
	KindCircle
	KindEllipse
	KindLine
	KindPolyline
	KindPolygon
	KindUse
)

func (k Kind) String() string {
	switch k {
	case KindGroup:
		return "group"
	case KindPath:
		return "path"
	case KindRect:
		return "rect"
	case KindCircle:
		return "circle"
	case KindEllipse:
		return "ellipse"
	case KindLine:
		return "line"
	case KindPolyline:
		return "polyline"
	case KindPolygon:
		return "polygon"
	case KindUse:
		return "use"
	}
	return "<invalid>"
}

// Node is one element of the document tree. Only the fields
// matching the Kind are meaningful.
type Node struct {
	Kind Kind

	// XMLID is the value of the `id` attribute, or empty.
	XMLID string

	// Transform is the local transformation of the node,
	// nil meaning identity.
	Transform *svgpath.Matrix2D

	// Fill is the fill rule declared on the node,
	// nil meaning inherited from the parent.
	Fill *svgpath.FillRule

	// Hidden excludes the node (and its children) from conversion.
	Hidden bool

	// Data is the path data of a KindPath node.
	Data string

	// Geometry of rect (X, Y, W, H, Rx, Ry), circle (Cx, Cy, R),
	// ellipse (Cx, Cy, Rx, Ry) and line (X1, Y1, X2, Y2) nodes.
	// Use nodes store their x/y offset in X, Y.
	X, Y, W, H     float64
	Rx, Ry         float64
	Cx, Cy, R      float64
	X1, Y1, X2, Y2 float64

	// Points of polyline and polygon nodes.
	Points []svgpath.Point

	// Href is the node referenced by a KindUse node,
	// None when the reference did not resolve.
	Href NodeID

	// Children of a KindGroup node, in document order.
	Children []NodeID
}

// Tree is a parsed SVG document.
type Tree struct {
	Nodes []Node
	// Root is the top-level group.
	Root NodeID

	// ViewBox is the declared coordinate system of the document,
	// zero if absent.
	ViewBox struct{ X, Y, W, H float64 }

	Titles       []string // Title elements collect here
	Descriptions []string // Description elements collect here

	ids map[string]NodeID
}

// NewTree creates an empty document: a tree holding
// a single root group.
func NewTree() *Tree {
	t := &Tree{ids: make(map[string]NodeID)}
	t.Root = t.Append(None, Node{Kind: KindGroup, Href: None})
	return t
}

// Append adds the node to the arena and registers it as the last
// child of `parent` (None leaves it unattached). It returns the
// id of the new node.
func (t *Tree) Append(parent NodeID, n Node) NodeID {
	id := NodeID(len(t.Nodes))
	t.Nodes = append(t.Nodes, n)
	if parent != None {
		t.Nodes[parent].Children = append(t.Nodes[parent].Children, id)
	}
	if n.XMLID != "" {
		if t.ids == nil {
			t.ids = make(map[string]NodeID)
		}
		if _, taken := t.ids[n.XMLID]; !taken {
			t.ids[n.XMLID] = id
		}
	}
	return id
}

// Lookup resolves an `id` attribute value to a node.
func (t *Tree) Lookup(xmlID string) (NodeID, bool) {
	id, ok := t.ids[xmlID]
	return id, ok
}

// Node returns the node for the given id, or nil if the
// id is out of range.
func (t *Tree) Node(id NodeID) *Node {
	if id < 0 || int(id) >= len(t.Nodes) {
		return nil
	}
	return &t.Nodes[id]
}
