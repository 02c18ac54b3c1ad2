// Package svgpdf implements a PDF backend for converted documents,
// by wrapping github.com/jung-kurt/gofpdf.
package svgpdf

import (
	"errors"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/karolisr/roarsvg/svgdom"
	"github.com/karolisr/roarsvg/svgpath"
)

// Renderer writes converted paths into a PDF document. It
// implements the conversion driver interface of svgdom: each
// finished path is drawn as a filled PDF path.
type Renderer struct {
	pdf *gofpdf.Fpdf
}

var _ svgdom.Driver = Renderer{}

// NewRenderer returns a renderer which will write to the
// given `pdf`.
func NewRenderer(pdf *gofpdf.Fpdf) Renderer {
	return Renderer{pdf: pdf}
}

// pather implements the path commands, tracking the bounding box
// of the current path.
type pather struct {
	pdf  *gofpdf.Fpdf
	fill svgpath.FillRule

	a           svgpath.Point // current point, used to compute boundingBox
	boundingBox svgpath.Rect  // bounding box for the current path
	empty       bool
}

func (p *pather) grow(seg svgpath.Path) {
	box, ok := seg.BoundingBox()
	if !ok {
		return
	}
	if p.empty {
		p.boundingBox = box
		p.empty = false
	} else {
		p.boundingBox = p.boundingBox.Union(box)
	}
}

func (p *pather) Start(a svgpath.Point) {
	p.pdf.MoveTo(a.X, a.Y)
	p.grow(svgpath.Path{svgpath.MoveTo(a)})
	p.a = a
}

func (p *pather) Line(b svgpath.Point) {
	p.pdf.LineTo(b.X, b.Y)
	p.grow(svgpath.Path{svgpath.MoveTo(p.a), svgpath.LineTo(b)})
	p.a = b
}

func (p *pather) QuadBezier(b, c svgpath.Point) {
	p.pdf.CurveTo(b.X, b.Y, c.X, c.Y)
	p.grow(svgpath.Path{svgpath.MoveTo(p.a), svgpath.QuadTo{b, c}})
	p.a = c
}

func (p *pather) CubeBezier(b, c, d svgpath.Point) {
	p.pdf.CurveBezierCubicTo(b.X, b.Y, c.X, c.Y, d.X, d.Y)
	p.grow(svgpath.Path{svgpath.MoveTo(p.a), svgpath.CubicTo{b, c, d}})
	p.a = d
}

func (p *pather) Stop(closeLoop bool) {
	if closeLoop {
		p.pdf.ClosePath()
	}
}

// StartPath opens a new PDF path.
func (r Renderer) StartPath(fill svgpath.FillRule) svgpath.Builder {
	return &pather{pdf: r.pdf, fill: fill, empty: true}
}

// FinishPath fills the accumulated path. The PDF fill operator is
// chosen from the fill rule: "f" for nonzero, "f*" for evenodd.
func (r Renderer) FinishPath(b svgpath.Builder) {
	p, ok := b.(*pather)
	if !ok || p.empty {
		return
	}
	styleStr := "f*"
	if p.fill == svgpath.NonZero {
		styleStr = "f"
	}
	r.pdf.DrawPath(styleStr)
}

// boundsDriver measures a document without drawing anything.
type boundsDriver struct {
	box svgpath.Rect
	ok  bool
}

func (d *boundsDriver) StartPath(svgpath.FillRule) svgpath.Builder {
	return &svgpath.Path{}
}

func (d *boundsDriver) FinishPath(b svgpath.Builder) {
	box, ok := (*b.(*svgpath.Path)).BoundingBox()
	if !ok {
		return
	}
	if d.ok {
		d.box = d.box.Union(box)
	} else {
		d.box, d.ok = box, true
	}
}

// RenderTree draws the converted document into the current page
// of `pdf`, in the pdf unit coordinate system.
func RenderTree(tree *svgdom.Tree, pdf *gofpdf.Fpdf) (*svgdom.Report, error) {
	return svgdom.Convert(tree, NewRenderer(pdf), svgdom.Options{})
}

// RenderSVGToPDF reads an SVG document and writes it, filled in
// black, to a single page PDF file. The page is sized in points
// from the document viewBox, or from the bounding box of the
// geometry when no viewBox is declared.
func RenderSVGToPDF(svg io.Reader, pdfFile string) error {
	tree, err := svgdom.ReadTreeStream(svg, svgdom.IgnoreErrorMode)
	if err != nil {
		return err
	}

	x, y := tree.ViewBox.X, tree.ViewBox.Y
	w, h := tree.ViewBox.W, tree.ViewBox.H
	if w <= 0 || h <= 0 {
		var bd boundsDriver
		if _, err := svgdom.Convert(tree, &bd, svgdom.Options{}); err != nil {
			return err
		}
		if !bd.ok {
			return errors.New("svg document has no geometry")
		}
		x, y = bd.box.MinX, bd.box.MinY
		w, h = bd.box.Width(), bd.box.Height()
	}
	if x != 0 || y != 0 {
		// shift the drawing into the page
		m := svgpath.Identity.Translate(-x, -y)
		tree.Nodes[tree.Root].Transform = &m
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: w, Ht: h},
	})
	pdf.AddPage()
	if _, err := RenderTree(tree, pdf); err != nil {
		return err
	}
	return pdf.OutputFileAndClose(pdfFile)
}
