package svgdom

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"strconv"
	"strings"

	"golang.org/x/net/html/charset"

	"github.com/karolisr/roarsvg/svgpath"
)

// ErrorMode defines how the parser reacts to elements
// it does not recognize.
type ErrorMode uint8

const (
	// IgnoreErrorMode skips unsupported elements silently.
	IgnoreErrorMode ErrorMode = iota
	// WarnErrorMode skips unsupported elements with a log message.
	WarnErrorMode
	// StrictErrorMode aborts the parsing on unsupported elements.
	StrictErrorMode
)

var errTransformFormat = errors.New("invalid transform attribute")

// treeCursor is used while parsing SVG files
type treeCursor struct {
	tree      *Tree
	errorMode ErrorMode

	// stack mirrors the chain of open elements; the top is the
	// node receiving new children.
	stack []NodeID

	// hrefs collects `use` references, resolved once the whole
	// document has been read so that forward references work.
	hrefs map[NodeID]string

	inTitleText, inDescText bool
}

func (c *treeCursor) top() NodeID { return c.stack[len(c.stack)-1] }

func (c *treeCursor) push(id NodeID) { c.stack = append(c.stack, id) }

func (c *treeCursor) pop() { c.stack = c.stack[:len(c.stack)-1] }

type elementFunc func(c *treeCursor, attrs []xml.Attr) error

var elementFuncs = map[string]elementFunc{
	"svg":      svgF,
	"g":        groupF,
	"defs":     defsF,
	"path":     pathF,
	"rect":     rectF,
	"circle":   circleF,
	"ellipse":  ellipseF,
	"line":     lineF,
	"polyline": polylineF,
	"polygon":  polygonF,
	"use":      useF,
	"title":    titleF,
	"desc":     descF,
}

// ReadTreeStream reads an SVG document from the given io.Reader.
// errMode controls the behavior on unsupported elements; malformed
// XML or attributes always abort with an error.
func ReadTreeStream(stream io.Reader, errMode ErrorMode) (*Tree, error) {
	tree := NewTree()
	cursor := &treeCursor{
		tree:      tree,
		errorMode: errMode,
		stack:     []NodeID{tree.Root},
		hrefs:     make(map[NodeID]string),
	}
	decoder := xml.NewDecoder(stream)
	decoder.CharsetReader = charset.NewReaderLabel
	seenTag := false
	for {
		t, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				if !seenTag {
					return nil, errors.New("invalid svg xml document")
				}
				break
			}
			return nil, err
		}
		switch se := t.(type) {
		case xml.StartElement:
			seenTag = true
			if err := cursor.readStartElement(se); err != nil {
				return nil, err
			}
		case xml.EndElement:
			cursor.pop()
			switch se.Name.Local {
			case "title":
				cursor.inTitleText = false
			case "desc":
				cursor.inDescText = false
			}
		case xml.CharData:
			if cursor.inTitleText {
				tree.Titles[len(tree.Titles)-1] += string(se)
			}
			if cursor.inDescText {
				tree.Descriptions[len(tree.Descriptions)-1] += string(se)
			}
		}
	}
	// a reference to a missing id stays None, and the use node
	// is dropped at conversion
	for id, ref := range cursor.hrefs {
		if target, ok := tree.Lookup(ref); ok {
			tree.Nodes[id].Href = target
		}
	}
	return tree, nil
}

// ReadTree reads an SVG document from the named file.
func ReadTree(path string, errMode ErrorMode) (*Tree, error) {
	fin, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fin.Close()
	return ReadTreeStream(fin, errMode)
}

// readStartElement dispatches one start element. Every element,
// recognized or not, pushes exactly one entry on the stack; the
// matching end element pops it.
func (c *treeCursor) readStartElement(se xml.StartElement) error {
	parse, ok := elementFuncs[se.Name.Local]
	if !ok {
		switch c.errorMode {
		case StrictErrorMode:
			return fmt.Errorf("cannot process svg element <%s>", se.Name.Local)
		case WarnErrorMode:
			log.Printf("svgdom: ignoring svg element <%s>\n", se.Name.Local)
		}
		// the subtree of an unknown element is still walked
		c.push(c.top())
		return nil
	}
	return parse(c, se.Attr)
}

// commonNode builds a node of the given kind from the attributes
// shared by all elements: id, transform, fill-rule, display and style.
func (c *treeCursor) commonNode(kind Kind, attrs []xml.Attr) (Node, error) {
	n := Node{Kind: kind, Href: None}
	for _, attr := range attrs {
		var err error
		switch attr.Name.Local {
		case "id":
			n.XMLID = attr.Value
		case "transform":
			var m svgpath.Matrix2D
			m, err = parseTransform(attr.Value)
			if err == nil && m != svgpath.Identity {
				n.Transform = &m
			}
		case "fill-rule":
			readFillRule(&n, attr.Value)
		case "display":
			if attr.Value == "none" {
				n.Hidden = true
			}
		case "visibility":
			if attr.Value == "hidden" {
				n.Hidden = true
			}
		case "style":
			err = readStyleAttr(&n, attr.Value)
		}
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

// readStyleAttr applies the supported css declarations of a
// style attribute.
func readStyleAttr(n *Node, style string) error {
	for _, decl := range strings.Split(style, ";") {
		decl = strings.TrimSpace(decl)
		if decl == "" {
			continue
		}
		k, v, found := strings.Cut(decl, ":")
		if !found {
			return fmt.Errorf("invalid style declaration %q", decl)
		}
		k, v = strings.TrimSpace(k), strings.TrimSpace(v)
		switch k {
		case "fill-rule":
			readFillRule(n, v)
		case "display":
			if v == "none" {
				n.Hidden = true
			}
		case "visibility":
			if v == "hidden" {
				n.Hidden = true
			}
		}
	}
	return nil
}

func readFillRule(n *Node, v string) {
	switch v {
	case "nonzero":
		fr := svgpath.NonZero
		n.Fill = &fr
	case "evenodd":
		fr := svgpath.EvenOdd
		n.Fill = &fr
	}
}

// parseTransform compiles a transform attribute, composing its
// operations left to right.
func parseTransform(v string) (svgpath.Matrix2D, error) {
	m := svgpath.Identity
	for _, op := range strings.Split(v, ")") {
		op = strings.Trim(op, " \t\r\n,")
		if op == "" {
			continue
		}
		name, args, found := strings.Cut(op, "(")
		if !found || args == "" {
			return m, errTransformFormat
		}
		points, err := svgpath.ParseNumbers(args)
		if err != nil {
			return m, err
		}
		m, err = applyTransformOp(m, strings.ToLower(strings.TrimSpace(name)), points)
		if err != nil {
			return m, err
		}
	}
	return m, nil
}

func applyTransformOp(m svgpath.Matrix2D, name string, points []float64) (svgpath.Matrix2D, error) {
	ln := len(points)
	switch name {
	case "rotate":
		if ln == 1 {
			m = m.Rotate(points[0] * math.Pi / 180)
		} else if ln == 3 {
			m = m.Translate(points[1], points[2]).
				Rotate(points[0] * math.Pi / 180).
				Translate(-points[1], -points[2])
		} else {
			return m, errTransformFormat
		}
	case "translate":
		if ln == 1 {
			m = m.Translate(points[0], 0)
		} else if ln == 2 {
			m = m.Translate(points[0], points[1])
		} else {
			return m, errTransformFormat
		}
	case "skewx":
		if ln != 1 {
			return m, errTransformFormat
		}
		m = m.SkewX(points[0] * math.Pi / 180)
	case "skewy":
		if ln != 1 {
			return m, errTransformFormat
		}
		m = m.SkewY(points[0] * math.Pi / 180)
	case "scale":
		if ln == 1 {
			m = m.Scale(points[0], points[0])
		} else if ln == 2 {
			m = m.Scale(points[0], points[1])
		} else {
			return m, errTransformFormat
		}
	case "matrix":
		if ln != 6 {
			return m, errTransformFormat
		}
		m = m.Mult(svgpath.Matrix2D{
			A: points[0], B: points[1],
			C: points[2], D: points[3],
			E: points[4], F: points[5],
		})
	default:
		return m, errTransformFormat
	}
	return m, nil
}

// parseLength parses a length attribute. Only user units (with an
// optional px suffix) are supported.
func parseLength(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "px")
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

func svgF(c *treeCursor, attrs []xml.Attr) error {
	var width, height float64
	for _, attr := range attrs {
		var err error
		switch attr.Name.Local {
		case "viewBox":
			points, errVB := svgpath.ParseNumbers(attr.Value)
			if errVB != nil {
				return errVB
			}
			if len(points) != 4 {
				return errors.New("invalid viewBox attribute")
			}
			c.tree.ViewBox.X = points[0]
			c.tree.ViewBox.Y = points[1]
			c.tree.ViewBox.W = points[2]
			c.tree.ViewBox.H = points[3]
		case "width":
			if !strings.HasSuffix(attr.Value, "%") {
				width, err = parseLength(attr.Value)
			}
		case "height":
			if !strings.HasSuffix(attr.Value, "%") {
				height, err = parseLength(attr.Value)
			}
		}
		if err != nil {
			return err
		}
	}
	if c.tree.ViewBox.W == 0 {
		c.tree.ViewBox.W = width
	}
	if c.tree.ViewBox.H == 0 {
		c.tree.ViewBox.H = height
	}
	// the svg element itself adds no node
	c.push(c.top())
	return nil
}

func groupF(c *treeCursor, attrs []xml.Attr) error {
	n, err := c.commonNode(KindGroup, attrs)
	if err != nil {
		return err
	}
	c.push(c.tree.Append(c.top(), n))
	return nil
}

// defsF opens a hidden group: its content is parsed and
// addressable by id, but never drawn directly.
func defsF(c *treeCursor, attrs []xml.Attr) error {
	n, err := c.commonNode(KindGroup, attrs)
	if err != nil {
		return err
	}
	n.Hidden = true
	c.push(c.tree.Append(c.top(), n))
	return nil
}

func pathF(c *treeCursor, attrs []xml.Attr) error {
	n, err := c.commonNode(KindPath, attrs)
	if err != nil {
		return err
	}
	for _, attr := range attrs {
		if attr.Name.Local == "d" {
			n.Data = attr.Value
		}
	}
	c.push(c.tree.Append(c.top(), n))
	return nil
}

func rectF(c *treeCursor, attrs []xml.Attr) error {
	n, err := c.commonNode(KindRect, attrs)
	if err != nil {
		return err
	}
	var hasRx, hasRy bool
	for _, attr := range attrs {
		var err error
		switch attr.Name.Local {
		case "x":
			n.X, err = parseLength(attr.Value)
		case "y":
			n.Y, err = parseLength(attr.Value)
		case "width":
			n.W, err = parseLength(attr.Value)
		case "height":
			n.H, err = parseLength(attr.Value)
		case "rx":
			n.Rx, err = parseLength(attr.Value)
			hasRx = true
		case "ry":
			n.Ry, err = parseLength(attr.Value)
			hasRy = true
		}
		if err != nil {
			return err
		}
	}
	// a single radius attribute applies to both axes
	if hasRx && !hasRy {
		n.Ry = n.Rx
	} else if hasRy && !hasRx {
		n.Rx = n.Ry
	}
	c.push(c.tree.Append(c.top(), n))
	return nil
}

func circleF(c *treeCursor, attrs []xml.Attr) error {
	n, err := c.commonNode(KindCircle, attrs)
	if err != nil {
		return err
	}
	if err := readCenterAttrs(&n, attrs); err != nil {
		return err
	}
	c.push(c.tree.Append(c.top(), n))
	return nil
}

func ellipseF(c *treeCursor, attrs []xml.Attr) error {
	n, err := c.commonNode(KindEllipse, attrs)
	if err != nil {
		return err
	}
	if err := readCenterAttrs(&n, attrs); err != nil {
		return err
	}
	c.push(c.tree.Append(c.top(), n))
	return nil
}

func readCenterAttrs(n *Node, attrs []xml.Attr) error {
	for _, attr := range attrs {
		var err error
		switch attr.Name.Local {
		case "cx":
			n.Cx, err = parseLength(attr.Value)
		case "cy":
			n.Cy, err = parseLength(attr.Value)
		case "r":
			n.R, err = parseLength(attr.Value)
		case "rx":
			n.Rx, err = parseLength(attr.Value)
		case "ry":
			n.Ry, err = parseLength(attr.Value)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func lineF(c *treeCursor, attrs []xml.Attr) error {
	n, err := c.commonNode(KindLine, attrs)
	if err != nil {
		return err
	}
	for _, attr := range attrs {
		var err error
		switch attr.Name.Local {
		case "x1":
			n.X1, err = parseLength(attr.Value)
		case "y1":
			n.Y1, err = parseLength(attr.Value)
		case "x2":
			n.X2, err = parseLength(attr.Value)
		case "y2":
			n.Y2, err = parseLength(attr.Value)
		}
		if err != nil {
			return err
		}
	}
	c.push(c.tree.Append(c.top(), n))
	return nil
}

func polylineF(c *treeCursor, attrs []xml.Attr) error {
	return readPolyShape(c, KindPolyline, attrs)
}

func polygonF(c *treeCursor, attrs []xml.Attr) error {
	return readPolyShape(c, KindPolygon, attrs)
}

func readPolyShape(c *treeCursor, kind Kind, attrs []xml.Attr) error {
	n, err := c.commonNode(kind, attrs)
	if err != nil {
		return err
	}
	for _, attr := range attrs {
		if attr.Name.Local != "points" {
			continue
		}
		vals, err := svgpath.ParseNumbers(attr.Value)
		if err != nil {
			return err
		}
		if len(vals)%2 != 0 {
			return fmt.Errorf("%s has an odd number of coordinates", kind)
		}
		n.Points = make([]svgpath.Point, len(vals)/2)
		for i := range n.Points {
			n.Points[i] = svgpath.Point{X: vals[i*2], Y: vals[i*2+1]}
		}
	}
	c.push(c.tree.Append(c.top(), n))
	return nil
}

func useF(c *treeCursor, attrs []xml.Attr) error {
	n, err := c.commonNode(KindUse, attrs)
	if err != nil {
		return err
	}
	var ref string
	for _, attr := range attrs {
		var err error
		switch attr.Name.Local {
		case "href": // covers xlink:href as well
			ref = strings.TrimPrefix(attr.Value, "#")
		case "x":
			n.X, err = parseLength(attr.Value)
		case "y":
			n.Y, err = parseLength(attr.Value)
		}
		if err != nil {
			return err
		}
	}
	id := c.tree.Append(c.top(), n)
	if ref != "" {
		c.hrefs[id] = ref
	}
	c.push(id)
	return nil
}

func titleF(c *treeCursor, attrs []xml.Attr) error {
	c.inTitleText = true
	c.tree.Titles = append(c.tree.Titles, "")
	c.push(c.top())
	return nil
}

func descF(c *treeCursor, attrs []xml.Attr) error {
	c.inDescText = true
	c.tree.Descriptions = append(c.tree.Descriptions, "")
	c.push(c.top())
	return nil
}
