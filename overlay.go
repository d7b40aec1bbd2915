// Copyright 2023 The geokit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package geokit

import (
	"math"
	"sort"
)

type overlayOp int

const (
	opIntersection overlayOp = iota
	opUnion
	opDifference
	opSymDifference
)

func (op overlayOp) String() string {
	switch op {
	case opIntersection:
		return "intersection"
	case opUnion:
		return "union"
	case opDifference:
		return "difference"
	default:
		return "symmetric difference"
	}
}

// keep reports whether a point in the given operands is in the result.
func (op overlayOp) keep(inA, inB bool) bool {
	switch op {
	case opIntersection:
		return inA && inB
	case opUnion:
		return inA || inB
	case opDifference:
		return inA && !inB
	default:
		return inA != inB
	}
}

// emptyDimension returns the dimension of the empty result of op on
// operands of dimension da and db.
func (op overlayOp) emptyDimension(da, db int) int {
	switch op {
	case opIntersection:
		if da < db {
			return da
		}
		return db
	case opDifference:
		return da
	default:
		if da > db {
			return da
		}
		return db
	}
}

// Intersection returns the points shared by g and o.
//
// All four overlay operations return an error wrapping
// ErrGeometryOperation if only one operand has a spatial reference or
// the references differ, and ErrInvalidGeometry if a polygonal operand
// is not valid. An empty result is an empty geometry, not an error.
// The result has the spatial reference of g.
func (g *Geometry) Intersection(o *Geometry) (*Geometry, error) {
	return g.overlay(o, opIntersection)
}

// Union returns the points in either g or o.
func (g *Geometry) Union(o *Geometry) (*Geometry, error) {
	return g.overlay(o, opUnion)
}

// Difference returns the points of g that are not in o.
func (g *Geometry) Difference(o *Geometry) (*Geometry, error) {
	return g.overlay(o, opDifference)
}

// SymDifference returns the points in exactly one of g and o.
func (g *Geometry) SymDifference(o *Geometry) (*Geometry, error) {
	return g.overlay(o, opSymDifference)
}

func (g *Geometry) overlay(o *Geometry, op overlayOp) (*Geometry, error) {
	if err := checkOperands(g, o, true); err != nil {
		return nil, wrapErr("%s", err, op)
	}
	pa, pb := g.flatten(), o.flatten()
	var r *Geometry
	switch {
	case pa.isEmpty() && pb.isEmpty():
		r = emptyOfDimension(op.emptyDimension(g.Dimension(), o.Dimension()))
	case pb.isEmpty() && op != opIntersection:
		r = g.Clone()
	case pa.isEmpty() && (op == opUnion || op == opSymDifference):
		r = o.Clone()
	default:
		r = overlayParts(pa, pb, op).geometry(op.emptyDimension(pa.dimension(), pb.dimension()))
	}
	r.setDim(g.is3D || o.is3D)
	r.AssignSRS(g.ref)
	return r, nil
}

func emptyOfDimension(d int) *Geometry {
	switch d {
	case 0:
		return Create(Point)
	case 1:
		return Create(LineString)
	case 2:
		return Create(Polygon)
	default:
		return Create(GeometryCollection)
	}
}

// halfEdge is a directed edge between two arrangement nodes.
type halfEdge struct {
	from, to int
}

// overlayParts computes a boolean operation on two non-empty operands.
func overlayParts(pa, pb *parts, op overlayOp) *parts {
	eps := tolerance(pa, pb)
	arr := newArrangement(eps)
	arr.add(0, pa)
	arr.add(1, pb)
	arr.build()
	la, lb := newLocator(pa, eps), newLocator(pb, eps)

	n := len(arr.edges)
	locs := make([][2]edgeLocation, n)
	covered := make([]bool, n)
	used := make([]bool, len(arr.nodes))
	var boundary []halfEdge
	for i := range arr.edges {
		e := &arr.edges[i]
		ea, eb := arr.locateEdge(e, 0, la), arr.locateEdge(e, 1, lb)
		locs[i] = [2]edgeLocation{ea, eb}
		inL := op.keep(ea.left == Interior, eb.left == Interior)
		inR := op.keep(ea.right == Interior, eb.right == Interior)
		covered[i] = inL || inR
		switch {
		case inL && !inR:
			boundary = append(boundary, halfEdge{e.from, e.to})
		case inR && !inL:
			boundary = append(boundary, halfEdge{e.to, e.from})
		default:
			continue
		}
		used[e.from], used[e.to] = true, true
	}

	var linework []halfEdge
	for i := range arr.edges {
		if covered[i] {
			continue
		}
		if op.keep(locs[i][0].on != Exterior, locs[i][1].on != Exterior) {
			e := &arr.edges[i]
			linework = append(linework, halfEdge{e.from, e.to})
			used[e.from], used[e.to] = true, true
		}
	}

	r := &parts{
		polys: buildPolygons(arr.nodes, boundary, eps),
		lines: mergeLines(arr.nodes, linework),
	}
	var rl *locator
	for id, c := range arr.nodes {
		if used[id] || !op.keep(la.locate(c) != Exterior, lb.locate(c) != Exterior) {
			continue
		}
		if rl == nil {
			rl = newLocator(r, eps)
		}
		if rl.locateCurves(c) == Exterior {
			r.points = append(r.points, c)
		}
	}
	return r
}

// buildPolygons links directed boundary edges, each having the result
// interior on its left, into rings and groups the rings into polygons.
func buildPolygons(nodes []Coord, edges []halfEdge, eps float64) []polygon {
	out := make(map[int][]int)
	for i, h := range edges {
		out[h.from] = append(out[h.from], i)
	}
	angle := func(from, to int) float64 {
		a, b := nodes[from], nodes[to]
		return math.Atan2(b.Y-a.Y, b.X-a.X)
	}

	var shells, holes [][]Coord
	done := make([]bool, len(edges))
	for start := range edges {
		if done[start] {
			continue
		}
		var ring []Coord
		closed := false
		for cur := start; ; {
			done[cur] = true
			h := edges[cur]
			ring = append(ring, nodes[h.from])
			// Leave each node by the first edge clockwise from the
			// one we arrived on, which keeps the face on the left.
			back := angle(h.to, h.from)
			next, best := -1, math.Inf(1)
			for _, c := range out[h.to] {
				turn := back - angle(h.to, edges[c].to)
				for turn <= 0 {
					turn += 2 * math.Pi
				}
				if turn < best {
					next, best = c, turn
				}
			}
			if next == start {
				closed = true
				break
			}
			if next < 0 || done[next] {
				break
			}
			cur = next
		}
		if !closed || len(ring) < 3 {
			continue
		}
		ring = append(ring, ring[0])
		a := ringArea(ring)
		switch {
		case a > eps*eps:
			shells = append(shells, ring)
		case a < -eps*eps:
			holes = append(holes, ring)
		}
	}

	polys := make([]polygon, len(shells))
	areas := make([]float64, len(shells))
	for i, s := range shells {
		polys[i] = polygon{s}
		areas[i] = ringArea(s)
	}
	for _, h := range holes {
		best := -1
		for i, s := range shells {
			if (best < 0 || areas[i] < areas[best]) && ringInside(h, s, eps) {
				best = i
			}
		}
		if best >= 0 {
			polys[best] = append(polys[best], h)
		}
	}
	return polys
}

// ringInside reports whether ring r lies inside ring s, judged by the
// first vertex of r, or failing that edge midpoint, not on s.
func ringInside(r, s []Coord, eps float64) bool {
	for i := range r {
		if loc := ringLocation(s, r[i], eps); loc != Boundary {
			return loc == Interior
		}
	}
	for i := 1; i < len(r); i++ {
		if loc := ringLocation(s, midpoint(r[i-1], r[i]), eps); loc != Boundary {
			return loc == Interior
		}
	}
	return false
}

// mergeLines joins edges into maximal paths that break only at nodes
// where other than two edges meet.
func mergeLines(nodes []Coord, edges []halfEdge) [][]Coord {
	degree := make(map[int]int)
	incident := make(map[int][]int)
	for i, e := range edges {
		degree[e.from]++
		degree[e.to]++
		incident[e.from] = append(incident[e.from], i)
		incident[e.to] = append(incident[e.to], i)
	}
	done := make([]bool, len(edges))
	walk := func(n, e int) []Coord {
		line := []Coord{nodes[n]}
		for e >= 0 {
			done[e] = true
			if edges[e].from == n {
				n = edges[e].to
			} else {
				n = edges[e].from
			}
			line = append(line, nodes[n])
			if degree[n] != 2 {
				break
			}
			next := -1
			for _, c := range incident[n] {
				if !done[c] {
					next = c
					break
				}
			}
			e = next
		}
		return line
	}

	var lines [][]Coord
	for i, e := range edges {
		switch {
		case done[i]:
		case degree[e.from] != 2:
			lines = append(lines, walk(e.from, i))
		case degree[e.to] != 2:
			line := walk(e.to, i)
			reverseCoords(line)
			lines = append(lines, line)
		}
	}
	// What remains are closed loops.
	for i, e := range edges {
		if !done[i] {
			lines = append(lines, walk(e.from, i))
		}
	}
	return lines
}

// geometry assembles the components into a single geometry: a simple
// or Multi* geometry if only one dimension is present, otherwise a
// collection. An empty result is an empty geometry of dimension d.
func (p *parts) geometry(d int) *Geometry {
	var polys, lines, points []*Geometry
	for _, poly := range p.polys {
		polys = append(polys, NewPolygon(poly...))
	}
	for _, l := range p.lines {
		lines = append(lines, NewLineString(l...))
	}
	sort.SliceStable(p.points, func(i, j int) bool {
		a, b := p.points[i], p.points[j]
		return a.X < b.X || a.X == b.X && a.Y < b.Y
	})
	for _, c := range p.points {
		points = append(points, NewPointZ(c.X, c.Y, c.Z))
	}

	kinds := 0
	for _, k := range [][]*Geometry{polys, lines, points} {
		if len(k) > 0 {
			kinds++
		}
	}
	switch {
	case kinds == 0:
		return emptyOfDimension(d)
	case kinds > 1:
		return collect(GeometryCollection, append(append(polys, lines...), points...))
	case len(polys) == 1:
		return polys[0]
	case len(polys) > 1:
		return collect(MultiPolygon, polys)
	case len(lines) == 1:
		return lines[0]
	case len(lines) > 1:
		return collect(MultiLineString, lines)
	case len(points) == 1:
		return points[0]
	default:
		return collect(MultiPoint, points)
	}
}

func collect(t Type, members []*Geometry) *Geometry {
	g := Create(t)
	for _, m := range members {
		if err := g.AddGeometry(m); err != nil {
			fmtPanic("assembling %s: %v", g.Name(), err)
		}
	}
	return g
}
