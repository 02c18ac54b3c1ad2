// Package svgraster implements a raster backend for converted
// documents, by wrapping rasterx.
package svgraster

import (
	"errors"
	"image"
	"image/color"
	"io"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"

	"github.com/karolisr/roarsvg/svgdom"
	"github.com/karolisr/roarsvg/svgpath"
)

// Renderer fills converted paths into a raster image. It implements
// the conversion driver interface of svgdom: each output path is
// rasterized when it is finished.
type Renderer struct {
	filler *rasterx.Filler
	view   svgpath.Matrix2D // user space to pixels
}

var _ svgdom.Driver = (*Renderer)(nil)

// NewRenderer returns a renderer filling into the given scanner.
func NewRenderer(width, height int, scanner rasterx.Scanner) *Renderer {
	return &Renderer{
		filler: rasterx.NewFiller(width, height, scanner),
		view:   svgpath.Identity,
	}
}

// SetViewTransform sets the transformation from document user space
// to image pixels, applied on top of the composed node transforms.
func (rd *Renderer) SetViewTransform(m svgpath.Matrix2D) {
	rd.view = m
}

// SetColor sets the color used to fill the paths.
func (rd *Renderer) SetColor(c color.Color) {
	rd.filler.Scanner.SetColor(c)
}

// fillBuilder feeds one path into the shared filler, converting
// the coordinates to fixed point at the last moment.
type fillBuilder struct {
	filler *rasterx.Filler
	view   svgpath.Matrix2D
}

func (b fillBuilder) point(a svgpath.Point) fixed.Point26_6 {
	x, y := b.view.Apply(a.X, a.Y)
	return fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)}
}

func (b fillBuilder) Start(a svgpath.Point) { b.filler.Start(b.point(a)) }

func (b fillBuilder) Line(p svgpath.Point) { b.filler.Line(b.point(p)) }

func (b fillBuilder) QuadBezier(c, p svgpath.Point) {
	b.filler.QuadBezier(b.point(c), b.point(p))
}

func (b fillBuilder) CubeBezier(c1, c2, p svgpath.Point) {
	b.filler.CubeBezier(b.point(c1), b.point(c2), b.point(p))
}

func (b fillBuilder) Stop(closeLoop bool) { b.filler.Stop(closeLoop) }

// StartPath prepares the filler for a new path.
func (rd *Renderer) StartPath(fill svgpath.FillRule) svgpath.Builder {
	rd.filler.Clear()
	rd.filler.SetWinding(fill == svgpath.NonZero)
	return fillBuilder{filler: rd.filler, view: rd.view}
}

// FinishPath rasterizes the finished path.
func (rd *Renderer) FinishPath(svgpath.Builder) {
	rd.filler.Draw()
	rd.filler.Clear()
}

// Draw renders the document into a new image of the given size,
// mapping the document viewBox onto the full image. A size of zero
// takes the pixel size of the viewBox.
func Draw(tree *svgdom.Tree, width, height int) (*image.RGBA, error) {
	vb := tree.ViewBox
	if width == 0 {
		width = int(vb.W)
	}
	if height == 0 {
		height = int(vb.H)
	}
	if width <= 0 || height <= 0 {
		return nil, errors.New("unknown image size")
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	scanner.SetColor(color.Black)
	rd := NewRenderer(width, height, scanner)
	if vb.W > 0 && vb.H > 0 {
		rd.SetViewTransform(svgpath.Identity.
			Scale(float64(width)/vb.W, float64(height)/vb.H).
			Translate(-vb.X, -vb.Y))
	}

	if _, err := svgdom.Convert(tree, rd, svgdom.Options{}); err != nil {
		return nil, err
	}
	return img, nil
}

// RasterSVGToImage reads an SVG document and renders it into an
// image sized by its viewBox.
func RasterSVGToImage(svg io.Reader) (*image.RGBA, error) {
	tree, err := svgdom.ReadTreeStream(svg, svgdom.IgnoreErrorMode)
	if err != nil {
		return nil, err
	}
	return Draw(tree, 0, 0)
}
