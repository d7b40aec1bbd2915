// Copyright 2023 The geokit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package geokit

import "math"

// Buffer returns the polygonal geometry holding every point within
// distance of g, with round joins and caps approximated by segments
// straight edges per quarter circle. A negative distance erodes the
// polygonal parts of g and gives an empty polygon for points and
// curves. The result is two-dimensional and has the spatial reference
// of g. Returns an error wrapping ErrInvalidGeometry if a polygonal
// part of g is invalid.
func (g *Geometry) Buffer(distance float64, segments int) (*Geometry, error) {
	if err := g.validatePolygonal(); err != nil {
		return nil, wrapErr("buffer", err)
	}
	if segments < 1 {
		segments = 1
	}
	p := g.flatten()
	var r *parts
	switch {
	case distance == 0:
		r = &parts{polys: p.polys}
	case distance > 0:
		pieces := []*parts{{polys: p.polys}}
		for _, c := range p.points {
			pieces = append(pieces, circle(c, distance, segments))
		}
		for _, l := range p.lines {
			pieces = append(pieces, pathPieces(l, distance, segments)...)
		}
		for _, ring := range p.rings() {
			pieces = append(pieces, pathPieces(ring, distance, segments)...)
		}
		r = unionAll(pieces)
	case len(p.polys) > 0:
		var pieces []*parts
		for _, ring := range p.rings() {
			pieces = append(pieces, pathPieces(ring, -distance, segments)...)
		}
		r = overlayParts(&parts{polys: p.polys}, unionAll(pieces), opDifference)
	default:
		r = &parts{}
	}
	// Only areas survive a buffer.
	r.lines, r.points = nil, nil
	b := r.geometry(2)
	b.AssignSRS(g.ref)
	return b, nil
}

// circle returns a counter-clockwise polygon approximating the circle
// of radius d around c.
func circle(c Coord, d float64, segments int) *parts {
	n := 4 * segments
	ring := make([]Coord, n+1)
	for k := 0; k < n; k++ {
		theta := 2 * math.Pi * float64(k) / float64(n)
		ring[k] = Coord{X: c.X + d*math.Cos(theta), Y: c.Y + d*math.Sin(theta)}
	}
	ring[n] = ring[0]
	return &parts{polys: []polygon{{ring}}}
}

// pathPieces returns a rectangle of half-width d around each segment of
// path and a circle of radius d around each vertex.
func pathPieces(path []Coord, d float64, segments int) []*parts {
	var out []*parts
	for i, c := range path {
		closing := i > 0 && i == len(path)-1 && c.equal2D(path[0])
		if (i == 0 || !c.equal2D(path[i-1])) && !closing {
			out = append(out, circle(c, d, segments))
		}
		if i == 0 {
			continue
		}
		a, b := path[i-1], c
		l := distance(a, b)
		if l == 0 {
			continue
		}
		nx, ny := -(b.Y-a.Y)/l*d, (b.X-a.X)/l*d
		rect := []Coord{
			{X: a.X - nx, Y: a.Y - ny},
			{X: b.X - nx, Y: b.Y - ny},
			{X: b.X + nx, Y: b.Y + ny},
			{X: a.X + nx, Y: a.Y + ny},
			{X: a.X - nx, Y: a.Y - ny},
		}
		out = append(out, &parts{polys: []polygon{{rect}}})
	}
	return out
}

// unionAll returns the union of the polygonal pieces, merging them
// pairwise so that each overlay works on operands of similar size.
func unionAll(pieces []*parts) *parts {
	var live []*parts
	for _, p := range pieces {
		if !p.isEmpty() {
			live = append(live, p)
		}
	}
	if len(live) == 0 {
		return &parts{}
	}
	for len(live) > 1 {
		next := make([]*parts, 0, (len(live)+1)/2)
		for i := 0; i+1 < len(live); i += 2 {
			next = append(next, overlayParts(live[i], live[i+1], opUnion))
		}
		if len(live)%2 == 1 {
			next = append(next, live[len(live)-1])
		}
		live = next
	}
	return live[0]
}
