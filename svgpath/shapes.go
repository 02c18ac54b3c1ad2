package svgpath

import "math"

// This file implements the reduction of the basic SVG shapes
// to their path equivalent.

// AddRect adds a rectangle with top-left corner (x, y), starting
// there and walking the outline in the +x direction first.
// Nothing is added if the rectangle has a non-positive dimension.
func (p *Path) AddRect(x, y, w, h float64) {
	if w <= 0 || h <= 0 {
		return
	}
	p.Start(Point{x, y})
	p.Line(Point{x + w, y})
	p.Line(Point{x + w, y + h})
	p.Line(Point{x, y + h})
	p.Stop(true)
}

// AddRoundedRect adds a rectangle with rounded corners of radius
// rx in the x axis and ry in the y axis. Radii are clamped to half
// the rectangle sides; if either is not positive the corners are
// square and the shape reduces to AddRect.
func (p *Path) AddRoundedRect(x, y, w, h, rx, ry float64) {
	if rx <= 0 || ry <= 0 {
		p.AddRect(x, y, w, h)
		return
	}
	if w <= 0 || h <= 0 {
		return
	}
	if rx > w/2 {
		rx = w / 2
	}
	if ry > h/2 {
		ry = h / 2
	}
	p.Start(Point{x + rx, y})
	p.Line(Point{x + w - rx, y})
	p.addArc(rx, ry, 0, false, true, x+w-rx, y+ry, x+w-rx, y, x+w, y+ry)
	p.Line(Point{x + w, y + h - ry})
	p.addArc(rx, ry, 0, false, true, x+w-rx, y+h-ry, x+w, y+h-ry, x+w-rx, y+h)
	p.Line(Point{x + rx, y + h})
	p.addArc(rx, ry, 0, false, true, x+rx, y+h-ry, x+rx, y+h, x, y+h-ry)
	p.Line(Point{x, y + ry})
	p.addArc(rx, ry, 0, false, true, x+rx, y+ry, x, y+ry, x+rx, y)
	p.Stop(true)
}

// AddCircle adds a circle of radius r centered on (cx, cy).
func (p *Path) AddCircle(cx, cy, r float64) {
	p.AddEllipse(cx, cy, r, r)
}

// AddEllipse adds an axis-aligned ellipse centered on (cx, cy),
// built from two half-turn arcs starting at (cx+rx, cy).
// Nothing is added if either radius is not positive.
func (p *Path) AddEllipse(cx, cy, rx, ry float64) {
	if rx <= 0 || ry <= 0 {
		return
	}
	p.Start(Point{cx + rx, cy})
	p.addArc(rx, ry, 0, false, true, cx, cy, cx+rx, cy, cx-rx, cy)
	p.addArc(rx, ry, 0, false, true, cx, cy, cx-rx, cy, cx+rx, cy)
	p.Stop(true)
}

// AddLine adds the open segment from (x1, y1) to (x2, y2).
func (p *Path) AddLine(x1, y1, x2, y2 float64) {
	p.Start(Point{x1, y1})
	p.Line(Point{x2, y2})
}

// AddPolyline adds the open polyline through the given points.
// Fewer than two points is a no-op.
func (p *Path) AddPolyline(pts []Point) {
	if len(pts) < 2 {
		return
	}
	p.Start(pts[0])
	for _, pt := range pts[1:] {
		p.Line(pt)
	}
}

// AddPolygon adds the closed polygon through the given points.
// Fewer than three points is a no-op.
func (p *Path) AddPolygon(pts []Point) {
	if len(pts) < 3 {
		return
	}
	p.Start(pts[0])
	for _, pt := range pts[1:] {
		p.Line(pt)
	}
	p.Stop(true)
}

// addArc appends the cubic spline approximation of the elliptical
// arc with radii (rx, ry), x-axis rotation rotX (radians) and center
// (cx, cy), going from (px, py) to (x2, y2). It returns the end
// point actually reached.
func (p *Path) addArc(rx, ry, rotX float64, largeArc, sweep bool, cx, cy, px, py, x2, y2 float64) (lx, ly float64) {
	startAngle := math.Atan2(py-cy, px-cx) - rotX
	endAngle := math.Atan2(y2-cy, x2-cx) - rotX
	deltaTheta := endAngle - startAngle
	arcBig := math.Abs(deltaTheta) > math.Pi

	// approximate the ellipse in its parametric angle eta
	etaStart := math.Atan2(math.Sin(startAngle)/ry, math.Cos(startAngle)/rx)
	etaEnd := math.Atan2(math.Sin(endAngle)/ry, math.Cos(endAngle)/rx)
	deltaEta := etaEnd - etaStart
	if arcBig != largeArc {
		if deltaEta < 0 {
			deltaEta += math.Pi * 2
		} else {
			deltaEta -= math.Pi * 2
		}
	}
	// This check might be needed if the center point of the ellipse is
	// at the midpoint of the start and end lines.
	if deltaEta < 0 && sweep {
		deltaEta += math.Pi * 2
	} else if deltaEta >= 0 && !sweep {
		deltaEta -= math.Pi * 2
	}

	segs := int(math.Abs(deltaEta)/maxArcAngle) + 1
	dEta := deltaEta / float64(segs) // span of each segment
	// Approximate the ellipse using a set of cubic bezier curves by the method of
	// L. Maisonobe, "Drawing an elliptical arc using polylines, quadratic
	// or cubic Bezier curves", 2003
	// https://www.spaceroots.org/documents/elllipse/elliptical-arc.pdf
	tde := math.Tan(dEta / 2)
	alpha := math.Sin(dEta) * (math.Sqrt(4+3*tde*tde) - 1) / 3
	lx, ly = px, py
	sinTheta, cosTheta := math.Sin(rotX), math.Cos(rotX)
	ldx, ldy := ellipsePrime(rx, ry, sinTheta, cosTheta, etaStart)
	for i := 1; i <= segs; i++ {
		eta := etaStart + dEta*float64(i)
		var nx, ny float64
		if i == segs {
			nx, ny = x2, y2 // keeps the end point exact, no roundoff error
		} else {
			nx, ny = ellipsePointAt(rx, ry, sinTheta, cosTheta, eta, cx, cy)
		}
		dx, dy := ellipsePrime(rx, ry, sinTheta, cosTheta, eta)
		p.CubeBezier(Point{lx + alpha*ldx, ly + alpha*ldy},
			Point{nx - alpha*dx, ny - alpha*dy}, Point{nx, ny})
		lx, ly, ldx, ldy = nx, ny, dx, dy
	}
	return lx, ly
}

// ellipsePrime gives the tangent vector of the parameterized ellipse
// with radii a, b at angle eta.
func ellipsePrime(a, b, sinTheta, cosTheta, eta float64) (px, py float64) {
	bCosEta := b * math.Cos(eta)
	aSinEta := a * math.Sin(eta)
	px = -aSinEta*cosTheta - bCosEta*sinTheta
	py = -aSinEta*sinTheta + bCosEta*cosTheta
	return
}

// ellipsePointAt gives the point of the parameterized ellipse with
// radii a, b and center (cx, cy) at angle eta.
func ellipsePointAt(a, b, sinTheta, cosTheta, eta, cx, cy float64) (px, py float64) {
	aCosEta := a * math.Cos(eta)
	bSinEta := b * math.Sin(eta)
	px = cx + aCosEta*cosTheta - bSinEta*sinTheta
	py = cy + aCosEta*sinTheta + bSinEta*cosTheta
	return
}

// findEllipseCenter locates the center of the ellipse if it exists. If it does not exist,
// the radius values will be increased minimally for a solution to be possible
// while preserving the ra to rb ratio. ra and rb arguments are pointers that can be
// checked after the call to see if the values changed. This method uses coordinate transformations
// to reduce the problem to finding the center of a circle that includes the origin
// and an arbitrary point. The center of the circle is then transformed
// back to the original coordinates and returned.
func findEllipseCenter(ra, rb *float64, rotX, startX, startY, endX, endY float64, sweep, smallArc bool) (cx, cy float64) {
	cos, sin := math.Cos(rotX), math.Sin(rotX)

	// Move origin to start point
	nx, ny := endX-startX, endY-startY

	// Rotate ellipse x-axis to coordinate x-axis
	nx, ny = nx*cos+ny*sin, -nx*sin+ny*cos
	// Scale X dimension so that ra = rb
	nx *= *rb / *ra // Now the ellipse is a circle radius rb; therefore foci and center coincide

	midX, midY := nx/2, ny/2
	midlenSq := midX*midX + midY*midY

	var hr float64
	if *rb**rb < midlenSq {
		// Requested ellipse does not exist; scale ra, rb to fit. Length of
		// span is greater than max width of ellipse, must scale *ra, *rb
		nrb := math.Sqrt(midlenSq)
		if *ra == *rb {
			*ra = nrb // prevents roundoff
		} else {
			*ra = *ra * nrb / *rb
		}
		*rb = nrb
	} else {
		hr = math.Sqrt(*rb**rb-midlenSq) / math.Sqrt(midlenSq)
	}
	// Notice that if hr is zero, both answers are the same.
	if (sweep && smallArc) || (!sweep && !smallArc) {
		cx = midX + midY*hr
		cy = midY - midX*hr
	} else {
		cx = midX - midY*hr
		cy = midY + midX*hr
	}

	// reverse scale
	cx *= *ra / *rb
	// reverse rotate and translate back to original coordinates
	return cx*cos - cy*sin + startX, cx*sin + cy*cos + startY
}
