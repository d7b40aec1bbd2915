// Copyright 2023 The geokit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package geokit

import "math"

// Location is the position of a point relative to a geometry, as used
// in the DE-9IM intersection matrix.
type Location int

const (
	Interior Location = iota
	Boundary
	Exterior
)

// polygon is a list of closed rings, exterior first. Exterior rings
// run counter-clockwise and holes clockwise, so the interior is always
// to the left of a ring.
type polygon [][]Coord

// parts is a geometry broken down into its primitive components.
type parts struct {
	points []Coord
	lines  [][]Coord
	polys  []polygon
}

func (g *Geometry) flatten() *parts {
	p := &parts{}
	p.collect(g)
	return p
}

func (p *parts) collect(g *Geometry) {
	switch g.typ {
	case Point:
		if len(g.coords) > 0 && isFinite(g.coords[0]) {
			p.points = append(p.points, g.coords[0])
		}
	case LineString, LinearRing:
		switch len(g.coords) {
		case 0:
		case 1:
			p.points = append(p.points, g.coords[0])
		default:
			p.lines = append(p.lines, append([]Coord(nil), g.coords...))
		}
	case Polygon:
		if len(g.parts) == 0 || len(g.parts[0].coords) == 0 {
			return
		}
		poly := make(polygon, 0, len(g.parts))
		for i, r := range g.parts {
			ring := closedCopy(r.coords)
			if len(ring) < 4 {
				continue
			}
			a := ringArea(ring)
			if i == 0 && a < 0 || i > 0 && a > 0 {
				reverseCoords(ring)
			}
			poly = append(poly, ring)
		}
		if len(poly) > 0 {
			p.polys = append(p.polys, poly)
		}
	default:
		for _, q := range g.parts {
			p.collect(q)
		}
	}
}

func (p *parts) isEmpty() bool {
	return len(p.points) == 0 && len(p.lines) == 0 && len(p.polys) == 0
}

// dimension returns the highest dimension present, or -1 if empty.
func (p *parts) dimension() int {
	switch {
	case len(p.polys) > 0:
		return 2
	case len(p.lines) > 0:
		return 1
	case len(p.points) > 0:
		return 0
	default:
		return -1
	}
}

func (p *parts) eachCoord(f func(c Coord)) {
	for _, c := range p.points {
		f(c)
	}
	for _, l := range p.lines {
		for _, c := range l {
			f(c)
		}
	}
	for _, poly := range p.polys {
		for _, r := range poly {
			for _, c := range r {
				f(c)
			}
		}
	}
}

// rings returns every ring of every polygon.
func (p *parts) rings() [][]Coord {
	var rings [][]Coord
	for _, poly := range p.polys {
		rings = append(rings, poly...)
	}
	return rings
}

// tolerance returns the distance within which two coordinates of the
// given operands are considered coincident.
func tolerance(ps ...*parts) float64 {
	m := 1.0
	for _, p := range ps {
		p.eachCoord(func(c Coord) {
			m = math.Max(m, math.Max(math.Abs(c.X), math.Abs(c.Y)))
		})
	}
	return m * 1e-10
}

// locator answers point location queries against one geometry.
type locator struct {
	p   *parts
	eps float64
	// segs holds line segments, with path set to -1, then ring
	// segments, with path set to the polygon index.
	segs  []segment
	index spatialIndex
	// ends counts line end points, for the mod-2 boundary rule.
	ends map[[2]float64]int
}

func newLocator(p *parts, eps float64) *locator {
	l := &locator{p: p, eps: eps, ends: make(map[[2]float64]int)}
	for _, line := range p.lines {
		for i := 1; i < len(line); i++ {
			l.segs = append(l.segs, segment{a: line[i-1], b: line[i], path: -1, i: i - 1})
		}
		if first, last := line[0], line[len(line)-1]; !first.equal2D(last) {
			l.ends[[2]float64{first.X, first.Y}]++
			l.ends[[2]float64{last.X, last.Y}]++
		}
	}
	for k, poly := range p.polys {
		for _, r := range poly {
			for i := 1; i < len(r); i++ {
				l.segs = append(l.segs, segment{a: r[i-1], b: r[i], path: k, i: i - 1})
			}
		}
	}
	l.index = indexSegments(l.segs, eps)
	return l
}

// probe gathers what is known about c: whether it lies on a line, on
// the boundary of which polygons, and inside which polygons.
type probe struct {
	onLine   bool
	onRing   []bool
	inside   []bool
	anyRing  bool
	anyInner bool
}

func (l *locator) probe(c Coord) probe {
	pr := probe{}
	n := len(l.p.polys)
	if n > 0 {
		pr.onRing = make([]bool, n)
		pr.inside = make([]bool, n)
	}
	l.index.visit(pointBox(c, l.eps), func(i int) bool {
		s := &l.segs[i]
		if segmentDistance(c, s.a, s.b) <= l.eps {
			if s.path < 0 {
				pr.onLine = true
			} else {
				pr.onRing[s.path] = true
				pr.anyRing = true
			}
		}
		return true
	})
	if n > 0 {
		l.index.visit(rayBox(c), func(i int) bool {
			s := &l.segs[i]
			if s.path >= 0 && (s.a.Y > c.Y) != (s.b.Y > c.Y) &&
				c.X < s.a.X+(c.Y-s.a.Y)*(s.b.X-s.a.X)/(s.b.Y-s.a.Y) {
				pr.inside[s.path] = !pr.inside[s.path]
			}
			return true
		})
		for k := range pr.inside {
			if pr.inside[k] && !pr.onRing[k] {
				pr.anyInner = true
			}
		}
	}
	return pr
}

// locate returns the location of c relative to the whole geometry.
func (l *locator) locate(c Coord) Location {
	if loc := l.locateCurves(c); loc != Exterior {
		return loc
	}
	for _, p := range l.p.points {
		if distance(p, c) <= l.eps {
			return Interior
		}
	}
	return Exterior
}

// locateCurves locates c ignoring the point components.
func (l *locator) locateCurves(c Coord) Location {
	pr := l.probe(c)
	lineBoundary := pr.onLine && l.ends[[2]float64{c.X, c.Y}]%2 == 1
	switch {
	case pr.anyInner:
		return Interior
	case pr.onLine && !lineBoundary:
		return Interior
	case pr.anyRing || pr.onLine:
		return Boundary
	default:
		return Exterior
	}
}

// locateArea locates c relative to the polygon components only.
func (l *locator) locateArea(c Coord) Location {
	if len(l.p.polys) == 0 {
		return Exterior
	}
	pr := l.probe(c)
	switch {
	case pr.anyInner:
		return Interior
	case pr.anyRing:
		return Boundary
	default:
		return Exterior
	}
}
