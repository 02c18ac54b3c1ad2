package svggeom

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/karolisr/roarsvg/svgpath"
)

// Writer accumulates paths and serializes them to a standalone SVG
// document. The viewBox of the document is computed from the union
// of the path bounding boxes, so that the drawing is framed exactly.
//
// Writer implements the conversion driver interface of svgdom, which
// makes a full read / convert / write round trip possible.
type Writer struct {
	paths []writerPath
}

type writerPath struct {
	path svgpath.Path
	fill svgpath.FillRule
}

// writerBuilder tags an in-progress path with its fill rule.
type writerBuilder struct {
	svgpath.Path
	fill svgpath.FillRule
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Push adds a finished path to the document.
// Empty paths are dropped.
func (w *Writer) Push(p svgpath.Path, fill svgpath.FillRule) {
	if len(p) == 0 {
		return
	}
	w.paths = append(w.paths, writerPath{path: p, fill: fill})
}

// StartPath opens a new output path with the given fill rule.
func (w *Writer) StartPath(fill svgpath.FillRule) svgpath.Builder {
	return &writerBuilder{fill: fill}
}

// FinishPath commits a path opened by StartPath to the document.
func (w *Writer) FinishPath(b svgpath.Builder) {
	wb, ok := b.(*writerBuilder)
	if !ok {
		return
	}
	w.Push(wb.Path, wb.fill)
}

// BoundingBox returns the union of the bounding boxes of the pushed
// paths; ok is false when the document has no geometry.
func (w *Writer) BoundingBox() (box svgpath.Rect, ok bool) {
	for _, p := range w.paths {
		pb, pok := p.path.BoundingBox()
		if !pok {
			continue
		}
		if !ok {
			box, ok = pb, true
		} else {
			box = box.Union(pb)
		}
	}
	return box, ok
}

func fmtF(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// WriteSVG writes the document to `out`.
func (w *Writer) WriteSVG(out io.Writer) error {
	box, ok := w.BoundingBox()
	if !ok {
		box = svgpath.Rect{}
	}
	_, err := fmt.Fprintf(out,
		"<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n"+
			"<svg xmlns=\"http://www.w3.org/2000/svg\" viewBox=\"%s %s %s %s\">\n",
		fmtF(box.MinX), fmtF(box.MinY), fmtF(box.Width()), fmtF(box.Height()))
	if err != nil {
		return err
	}
	for _, p := range w.paths {
		if p.fill == svgpath.EvenOdd {
			_, err = fmt.Fprintf(out, "<path fill-rule=\"evenodd\" d=\"%s\"/>\n", p.path.ToSVGPath(-1))
		} else {
			_, err = fmt.Fprintf(out, "<path d=\"%s\"/>\n", p.path.ToSVGPath(-1))
		}
		if err != nil {
			return err
		}
	}
	_, err = io.WriteString(out, "</svg>\n")
	return err
}

// WriteSVGFile writes the document to the named file.
func (w *Writer) WriteSVGFile(filename string) error {
	fout, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := w.WriteSVG(fout); err != nil {
		fout.Close()
		return err
	}
	return fout.Close()
}
