// Copyright 2023 The geokit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package geokit

import "math"

// Simplify returns a copy of the geometry simplified with the
// Douglas-Peucker algorithm: each curve keeps its end points and every
// vertex further than tolerance from the simplified curve. Rings that
// collapse below four points are dropped, and a polygon whose exterior
// ring collapses is dropped with all its holes. The result may be
// invalid even when g is valid.
func (g *Geometry) Simplify(tolerance float64) *Geometry {
	h := g.Clone()
	h.simplify(tolerance, nil)
	return h
}

// SimplifyPreserveTopology returns a copy of the geometry simplified
// like Simplify, except that a shortcut is only taken if it neither
// crosses nor touches any other segment of the geometry, nor passes on
// the wrong side of any other vertex. Rings never collapse; a ring that
// cannot be simplified to four points keeps its original coordinates.
func (g *Geometry) SimplifyPreserveTopology(tolerance float64) *Geometry {
	h := g.Clone()
	h.simplify(tolerance, newTopologyGuard(h))
	return h
}

func (g *Geometry) simplify(tol float64, guard *topologyGuard) {
	switch g.typ {
	case LineString:
		g.coords = guard.douglasPeucker(g, tol)
	case LinearRing:
		if r := guard.douglasPeucker(g, tol); len(r) >= 4 {
			g.coords = r
		} else if guard == nil {
			g.coords = nil
		}
	case Polygon:
		kept := g.parts[:0]
		for i, r := range g.parts {
			r.simplify(tol, guard)
			if len(r.coords) > 0 {
				kept = append(kept, r)
			} else if i == 0 {
				g.parts = nil
				return
			}
		}
		g.parts = kept
	case MultiPolygon, GeometryCollection:
		kept := g.parts[:0]
		for _, p := range g.parts {
			p.simplify(tol, guard)
			if p.typ != Polygon || len(p.parts) > 0 {
				kept = append(kept, p)
			}
		}
		g.parts = kept
	default:
		for _, p := range g.parts {
			p.simplify(tol, guard)
		}
	}
}

// douglasPeucker returns the simplified coordinates of a curve.
func (guard *topologyGuard) douglasPeucker(g *Geometry, tol float64) []Coord {
	pts := g.coords
	n := len(pts)
	if n < 3 {
		return pts
	}
	keep := make([]bool, n)
	keep[0], keep[n-1] = true, true
	type span struct{ i, j int }
	stack := []span{{0, n - 1}}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if s.j-s.i < 2 {
			continue
		}
		k, dmax := -1, -1.0
		for m := s.i + 1; m < s.j; m++ {
			if d := segmentDistance(pts[m], pts[s.i], pts[s.j]); d > dmax {
				k, dmax = m, d
			}
		}
		if dmax <= tol && guard.accept(g, s.i, s.j) {
			continue
		}
		keep[k] = true
		stack = append(stack, span{s.i, k}, span{k, s.j})
	}
	out := make([]Coord, 0, n)
	for i, c := range pts {
		if keep[i] {
			out = append(out, c)
		}
	}
	return out
}

// topologyGuard vets shortcuts against the original segments of a
// geometry and the shortcuts already taken.
type topologyGuard struct {
	segs     []segment
	index    spatialIndex
	paths    map[*Geometry]int
	eps      float64
	accepted []segment
}

func newTopologyGuard(g *Geometry) *topologyGuard {
	guard := &topologyGuard{paths: make(map[*Geometry]int)}
	var paths [][]Coord
	var walk func(h *Geometry)
	walk = func(h *Geometry) {
		if h.typ.isCurve() {
			guard.paths[h] = len(paths)
			paths = append(paths, h.coords)
		}
		for _, p := range h.parts {
			walk(p)
		}
	}
	walk(g)
	guard.segs = pathSegments(nil, paths, 0)
	guard.eps = tolerance(&parts{lines: paths})
	guard.index = indexSegments(guard.segs, guard.eps)
	return guard
}

// accept reports whether the curve g may replace its coordinates i..j
// with a single segment. A nil guard accepts everything.
func (guard *topologyGuard) accept(g *Geometry, i, j int) bool {
	if guard == nil {
		return true
	}
	path := guard.paths[g]
	a, b := g.coords[i], g.coords[j]
	ok := true
	guard.index.visit(segmentBox(a, b, guard.eps), func(k int) bool {
		s := &guard.segs[k]
		if s.path == path && s.i >= i && s.i < j {
			return true
		}
		kind, x, _ := intersectSegments(a, b, s.a, s.b, guard.eps)
		switch kind {
		case noIntersection:
		case pointIntersection:
			ok = distance(x, a) <= guard.eps || distance(x, b) <= guard.eps
		default:
			ok = false
		}
		return ok
	})
	if !ok {
		return false
	}
	for k := range guard.accepted {
		s := &guard.accepted[k]
		if crossesProperly(a, b, s.a, s.b) {
			return false
		}
	}

	// No vertex may lie inside the area between the shortcut and the
	// run of coordinates it replaces.
	region := closedCopy(g.coords[i : j+1])
	box := EmptyEnvelope
	for _, c := range region {
		box.MergeXY(c.X, c.Y)
	}
	guard.index.visit(box.box(), func(k int) bool {
		s := &guard.segs[k]
		if s.path == path && s.i >= i && s.i < j {
			return true
		}
		for _, v := range [2]Coord{s.a, s.b} {
			if !v.equal2D(a) && !v.equal2D(b) && ringLocation(region, v, guard.eps) == Interior {
				ok = false
			}
		}
		return ok
	})
	if ok {
		guard.accepted = append(guard.accepted, segment{a: a, b: b, path: path, i: i})
	}
	return ok
}

// Segmentize inserts evenly spaced coordinates so that no segment of
// any curve or ring is longer than maxLength. Z values are
// interpolated. A non-positive maxLength leaves the geometry unchanged.
func (g *Geometry) Segmentize(maxLength float64) {
	if !(maxLength > 0) {
		return
	}
	if g.typ.isCurve() && len(g.coords) > 1 {
		out := make([]Coord, 0, len(g.coords))
		out = append(out, g.coords[0])
		for i := 1; i < len(g.coords); i++ {
			a, b := g.coords[i-1], g.coords[i]
			n := int(math.Ceil(distance(a, b) / maxLength))
			for k := 1; k < n; k++ {
				out = append(out, interpolate(a, b, float64(k)/float64(n)))
			}
			out = append(out, b)
		}
		g.coords = out
	}
	for _, p := range g.parts {
		p.Segmentize(maxLength)
	}
}
