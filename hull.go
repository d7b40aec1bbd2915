// Copyright 2023 The geokit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package geokit

import "sort"

// ConvexHull returns the smallest convex geometry containing every
// coordinate of g: a counter-clockwise Polygon in general, a LineString
// if the coordinates are collinear, a Point if there is only one, and
// an empty GeometryCollection if g is empty. The hull is
// two-dimensional and has the spatial reference of g.
func (g *Geometry) ConvexHull() *Geometry {
	var pts []Coord
	g.eachCoord(func(c *Coord) {
		if isFinite(*c) {
			pts = append(pts, Coord{X: c.X, Y: c.Y})
		}
	})
	sort.Slice(pts, func(i, j int) bool {
		return pts[i].X < pts[j].X || pts[i].X == pts[j].X && pts[i].Y < pts[j].Y
	})
	pts = dedupe(pts)

	var h *Geometry
	switch len(pts) {
	case 0:
		h = Create(GeometryCollection)
	case 1:
		h = NewPoint(pts[0].X, pts[0].Y)
	default:
		hull := monotoneChain(pts)
		if len(hull) < 3 {
			h = NewLineString(pts[0], pts[len(pts)-1])
		} else {
			h = NewPolygon(append(hull, hull[0]))
		}
	}
	h.ref = g.ref
	return h
}

// monotoneChain returns the vertices of the convex hull of the sorted,
// distinct points in counter-clockwise order, without collinear
// vertices.
func monotoneChain(pts []Coord) []Coord {
	hull := make([]Coord, 0, 2*len(pts))
	for _, p := range pts {
		for len(hull) >= 2 && orient(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	lower := len(hull) + 1
	for i := len(pts) - 2; i >= 0; i-- {
		p := pts[i]
		for len(hull) >= lower && orient(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	return hull[:len(hull)-1]
}
