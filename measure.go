// Copyright 2023 The geokit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package geokit

import "math"

// Area returns the planar area of the polygonal parts of the geometry,
// in the square of its coordinate units. Holes are subtracted.
func (g *Geometry) Area() float64 {
	switch g.typ {
	case Polygon:
		var a float64
		for i, r := range g.parts {
			ra := math.Abs(ringArea(closedCopy(r.coords)))
			if i == 0 {
				a += ra
			} else {
				a -= ra
			}
		}
		return a
	case LinearRing:
		return math.Abs(ringArea(closedCopy(g.coords)))
	default:
		var a float64
		for _, p := range g.parts {
			a += p.Area()
		}
		return a
	}
}

// Length returns the planar length of the curves of the geometry. The
// length of a polygon is its perimeter, including holes.
func (g *Geometry) Length() float64 {
	switch g.typ {
	case Point:
		return 0
	case LineString, LinearRing:
		return pathLength(g.coords)
	default:
		var l float64
		for _, p := range g.parts {
			l += p.Length()
		}
		return l
	}
}

// Centroid returns the centre of mass of the geometry as a
// two-dimensional point with the geometry's spatial reference. Only the
// highest-dimensional parts count: the area-weighted centroid of the
// polygons if there are any, otherwise the length-weighted centroid of
// the curves, otherwise the mean of the points. The centroid of an
// empty geometry is an empty point.
func (g *Geometry) Centroid() *Geometry {
	p := g.flatten()
	c := Create(Point)
	c.ref = g.ref
	var sx, sy, w float64
	switch p.dimension() {
	case 2:
		for _, poly := range p.polys {
			for _, r := range poly {
				o := r[0]
				for i := 1; i < len(r)-1; i++ {
					a, b := r[i], r[i+1]
					cross := (a.X-o.X)*(b.Y-o.Y) - (b.X-o.X)*(a.Y-o.Y)
					sx += cross * (o.X + a.X + b.X)
					sy += cross * (o.Y + a.Y + b.Y)
					w += cross * 3
				}
			}
		}
	case 1:
		for _, l := range p.lines {
			for i := 1; i < len(l); i++ {
				d := distance(l[i-1], l[i])
				m := midpoint(l[i-1], l[i])
				sx += d * m.X
				sy += d * m.Y
				w += d
			}
		}
		if w == 0 {
			// Every line is degenerate; use the vertices.
			for _, l := range p.lines {
				for _, v := range l {
					sx, sy, w = sx+v.X, sy+v.Y, w+1
				}
			}
		}
	case 0:
		for _, v := range p.points {
			sx, sy, w = sx+v.X, sy+v.Y, w+1
		}
	}
	if w != 0 {
		c.coords = []Coord{{X: sx / w, Y: sy / w}}
	}
	return c
}

// Distance returns the minimum planar distance between g and o: zero
// if they intersect, and zero if either is empty. Returns an error
// under the same conditions as Intersects.
func (g *Geometry) Distance(o *Geometry) (float64, error) {
	if err := checkOperands(g, o, false); err != nil {
		return 0, wrapErr("distance", err)
	}
	pa, pb := g.flatten(), o.flatten()
	if pa.isEmpty() || pb.isEmpty() {
		return 0, nil
	}
	eps := tolerance(pa, pb)
	// One operand may lie inside a polygon of the other without any
	// segments coming close.
	if inside(pa, pb, eps) || inside(pb, pa, eps) {
		return 0, nil
	}
	segsA, ptsA := pieces(pa)
	segsB, ptsB := pieces(pb)
	d := math.Inf(1)
	for _, a := range ptsA {
		for _, b := range ptsB {
			d = math.Min(d, distance(a, b))
		}
		for _, s := range segsB {
			d = math.Min(d, segmentDistance(a, s.a, s.b))
		}
	}
	for _, s := range segsA {
		for _, b := range ptsB {
			d = math.Min(d, segmentDistance(b, s.a, s.b))
		}
		for _, t := range segsB {
			d = math.Min(d, segmentsDistance(s.a, s.b, t.a, t.b))
		}
	}
	return d, nil
}

// inside reports whether any coordinate of p lies in the area of q.
func inside(p, q *parts, eps float64) bool {
	if len(q.polys) == 0 {
		return false
	}
	loc := newLocator(q, eps)
	found := false
	p.eachCoord(func(c Coord) {
		found = found || loc.locateArea(c) != Exterior
	})
	return found
}

// pieces returns the segments and the isolated points of p.
func pieces(p *parts) ([]segment, []Coord) {
	segs := pathSegments(nil, p.lines, 0)
	segs = pathSegments(segs, p.rings(), len(p.lines))
	return segs, p.points
}

// Boundary returns the combinatorial boundary of the geometry: the
// end points of curves under the mod-2 rule, and the rings of
// polygons. The boundary of a point is an empty collection. Returns an
// error wrapping ErrGeometryOperation for a GeometryCollection, whose
// boundary is undefined.
func (g *Geometry) Boundary() (*Geometry, error) {
	var b *Geometry
	switch g.typ {
	case Point, MultiPoint:
		b = Create(GeometryCollection)
	case LineString, LinearRing, MultiLineString:
		b = Create(MultiPoint)
		var lines [][]Coord
		if g.typ == MultiLineString {
			for _, p := range g.parts {
				lines = append(lines, p.coords)
			}
		} else {
			lines = [][]Coord{g.coords}
		}
		count := make(map[Coord]int)
		var order []Coord
		for _, l := range lines {
			if len(l) < 2 || l[0].equal2D(l[len(l)-1]) {
				continue
			}
			for _, c := range []Coord{l[0], l[len(l)-1]} {
				if count[c] == 0 {
					order = append(order, c)
				}
				count[c]++
			}
		}
		for _, c := range order {
			if count[c]%2 == 1 {
				b.parts = append(b.parts, &Geometry{typ: Point, coords: []Coord{c}})
			}
		}
	case Polygon:
		if len(g.parts) <= 1 {
			b = Create(LineString)
			if len(g.parts) == 1 {
				b.coords = append([]Coord(nil), g.parts[0].coords...)
			}
			break
		}
		b = Create(MultiLineString)
		for _, r := range g.parts {
			b.parts = append(b.parts, &Geometry{typ: LineString, coords: append([]Coord(nil), r.coords...)})
		}
	case MultiPolygon:
		b = Create(MultiLineString)
		for _, p := range g.parts {
			for _, r := range p.parts {
				b.parts = append(b.parts, &Geometry{typ: LineString, coords: append([]Coord(nil), r.coords...)})
			}
		}
	default:
		return nil, kindErr(ErrGeometryOperation, "boundary of %s is undefined", g.Name())
	}
	b.setDim(g.is3D)
	b.AssignSRS(g.ref)
	return b, nil
}
