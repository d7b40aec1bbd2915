// Copyright 2023 The geokit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package geokit

import "math"

// orient returns twice the signed area of the triangle abc: positive
// if c lies to the left of the directed line ab, negative if to the
// right and zero if the points are collinear.
func orient(a, b, c Coord) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

func distance(a, b Coord) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// segmentParam returns the parameter of the projection of p onto the
// line through a and b, where a is at 0 and b at 1.
func segmentParam(p, a, b Coord) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return 0
	}
	return ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / l2
}

// segmentDistance returns the distance from p to the closed segment ab.
func segmentDistance(p, a, b Coord) float64 {
	t := segmentParam(p, a, b)
	if t <= 0 {
		return distance(p, a)
	} else if t >= 1 {
		return distance(p, b)
	}
	return distance(p, interpolate(a, b, t))
}

func interpolate(a, b Coord, t float64) Coord {
	return Coord{
		X: a.X + t*(b.X-a.X),
		Y: a.Y + t*(b.Y-a.Y),
		Z: a.Z + t*(b.Z-a.Z),
	}
}

func midpoint(a, b Coord) Coord {
	return interpolate(a, b, 0.5)
}

// crossesProperly reports whether segments pq and rs intersect in a
// single point interior to both.
func crossesProperly(p, q, r, s Coord) bool {
	d1, d2 := orient(p, q, r), orient(p, q, s)
	d3, d4 := orient(r, s, p), orient(r, s, q)
	return (d1 > 0 && d2 < 0 || d1 < 0 && d2 > 0) &&
		(d3 > 0 && d4 < 0 || d3 < 0 && d4 > 0)
}

// lineIntersection returns the intersection of the lines through pq
// and rs, which must not be parallel. Z is interpolated along pq.
func lineIntersection(p, q, r, s Coord) Coord {
	d1, d2 := orient(r, s, p), orient(r, s, q)
	return interpolate(p, q, d1/(d1-d2))
}

type intersectionKind int

const (
	noIntersection intersectionKind = iota
	pointIntersection
	overlapIntersection
)

// intersectSegments classifies the intersection of the closed segments
// pq and rs, treating points within eps of a segment as lying on it.
// For a point intersection the point is returned in x; for a collinear
// overlap the ends of the shared part are returned in x and y.
func intersectSegments(p, q, r, s Coord, eps float64) (k intersectionKind, x, y Coord) {
	var touches [4]Coord
	n := 0
	add := func(c Coord) {
		for i := 0; i < n; i++ {
			if distance(touches[i], c) <= eps {
				return
			}
		}
		touches[n] = c
		n++
	}
	if segmentDistance(p, r, s) <= eps {
		add(p)
	}
	if segmentDistance(q, r, s) <= eps {
		add(q)
	}
	if segmentDistance(r, p, q) <= eps {
		add(r)
	}
	if segmentDistance(s, p, q) <= eps {
		add(s)
	}
	switch {
	case n >= 2:
		return overlapIntersection, touches[0], touches[1]
	case n == 1:
		return pointIntersection, touches[0], Coord{}
	case crossesProperly(p, q, r, s):
		return pointIntersection, lineIntersection(p, q, r, s), Coord{}
	default:
		return noIntersection, Coord{}, Coord{}
	}
}

// segmentsDistance returns the distance between the closed segments pq
// and rs.
func segmentsDistance(p, q, r, s Coord) float64 {
	if crossesProperly(p, q, r, s) {
		return 0
	}
	return math.Min(
		math.Min(segmentDistance(p, r, s), segmentDistance(q, r, s)),
		math.Min(segmentDistance(r, p, q), segmentDistance(s, p, q)))
}

// ringArea returns the signed area of a closed ring: positive if the
// ring runs counter-clockwise.
func ringArea(ring []Coord) float64 {
	if len(ring) < 3 {
		return 0
	}
	// Shift to the first vertex to limit cancellation.
	o := ring[0]
	var sum float64
	for i := 1; i < len(ring)-1; i++ {
		a, b := ring[i], ring[i+1]
		sum += (a.X-o.X)*(b.Y-o.Y) - (b.X-o.X)*(a.Y-o.Y)
	}
	return sum / 2
}

// ringLocation locates c relative to the closed ring.
func ringLocation(ring []Coord, c Coord, eps float64) Location {
	inside := false
	for i := 1; i < len(ring); i++ {
		a, b := ring[i-1], ring[i]
		if segmentDistance(c, a, b) <= eps {
			return Boundary
		}
		if (a.Y > c.Y) != (b.Y > c.Y) && c.X < a.X+(c.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y) {
			inside = !inside
		}
	}
	if inside {
		return Interior
	}
	return Exterior
}

func pathLength(path []Coord) float64 {
	var l float64
	for i := 1; i < len(path); i++ {
		l += distance(path[i-1], path[i])
	}
	return l
}

func reverseCoords(c []Coord) {
	for i, j := 0, len(c)-1; i < j; i, j = i+1, j-1 {
		c[i], c[j] = c[j], c[i]
	}
}

// closedCopy returns a copy of the ring with the first coordinate
// repeated at the end if it was not already.
func closedCopy(ring []Coord) []Coord {
	c := make([]Coord, len(ring), len(ring)+1)
	copy(c, ring)
	if len(c) > 0 && !c[0].equal2D(c[len(c)-1]) {
		c = append(c, c[0])
	}
	return c
}

func isFinite(c Coord) bool {
	return !math.IsNaN(c.X) && !math.IsInf(c.X, 0) && !math.IsNaN(c.Y) && !math.IsInf(c.Y, 0)
}
