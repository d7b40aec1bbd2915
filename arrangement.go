// Copyright 2023 The geokit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package geokit

import (
	"math"
	"sort"

	"github.com/gogama/geokit/packedrtree"
)

// An arrangement is the planar subdivision formed by the segments of
// two operands. Every segment is split at each point where it meets
// another segment, so that any two edges of the arrangement either
// coincide, share an end node, or are disjoint. Coordinates closer
// than eps are snapped to a single node.
type arrangement struct {
	eps   float64
	nodes []Coord
	grid  map[[2]int64][]int
	segs  []inputSegment
	edges []edge
	byKey map[[2]int]int
}

type inputSegment struct {
	a, b    int
	operand int
	ring    bool
}

// edgeLabel records how one operand covers an edge.
type edgeLabel struct {
	line bool
	ring bool
	// dir is the sum over the operand's rings running along the edge
	// of +1 if the ring runs from->to and -1 otherwise. Rings keep
	// their interior on the left.
	dir int
}

type edge struct {
	from, to int
	label    [2]edgeLabel
}

func newArrangement(eps float64) *arrangement {
	return &arrangement{
		eps:   eps,
		grid:  make(map[[2]int64][]int),
		byKey: make(map[[2]int]int),
	}
}

// node returns the id of the node within eps of c, adding one if there
// is none.
func (a *arrangement) node(c Coord) int {
	kx, ky := int64(math.Floor(c.X/a.eps)), int64(math.Floor(c.Y/a.eps))
	for dx := int64(-1); dx <= 1; dx++ {
		for dy := int64(-1); dy <= 1; dy++ {
			for _, id := range a.grid[[2]int64{kx + dx, ky + dy}] {
				if distance(a.nodes[id], c) <= a.eps {
					return id
				}
			}
		}
	}
	id := len(a.nodes)
	a.nodes = append(a.nodes, c)
	k := [2]int64{kx, ky}
	a.grid[k] = append(a.grid[k], id)
	return id
}

// add adds the components of one operand, 0 or 1.
func (a *arrangement) add(operand int, p *parts) {
	for _, c := range p.points {
		a.node(c)
	}
	for _, l := range p.lines {
		a.addPath(operand, false, l)
	}
	for _, poly := range p.polys {
		for _, r := range poly {
			a.addPath(operand, true, r)
		}
	}
}

func (a *arrangement) addPath(operand int, ring bool, path []Coord) {
	prev := a.node(path[0])
	for _, c := range path[1:] {
		n := a.node(c)
		if n != prev {
			a.segs = append(a.segs, inputSegment{a: prev, b: n, operand: operand, ring: ring})
		}
		prev = n
	}
}

func (a *arrangement) segmentBox(i int) packedrtree.Box {
	s := &a.segs[i]
	return segmentBox(a.nodes[s.a], a.nodes[s.b], a.eps)
}

// build splits every segment at its intersections and merges the
// pieces into edges.
func (a *arrangement) build() {
	splits := make([][]int, len(a.segs))
	index := newSpatialIndex(len(a.segs), a.segmentBox)
	original := len(a.nodes)
	for i := range a.segs {
		index.visit(a.segmentBox(i), func(j int) bool {
			if j > i {
				a.intersect(i, j, splits)
			}
			return true
		})
	}
	// A crossing node may also lie on a segment that took no part in
	// creating it.
	for id := original; id < len(a.nodes); id++ {
		c := a.nodes[id]
		index.visit(pointBox(c, a.eps), func(j int) bool {
			a.splitIfOn(j, id, splits)
			return true
		})
	}
	for i := range a.segs {
		a.addEdges(i, splits[i])
	}
}

func (a *arrangement) splitIfOn(i, id int, splits [][]int) bool {
	s := &a.segs[i]
	if id == s.a || id == s.b {
		return false
	}
	if segmentDistance(a.nodes[id], a.nodes[s.a], a.nodes[s.b]) > a.eps {
		return false
	}
	splits[i] = append(splits[i], id)
	return true
}

func (a *arrangement) intersect(i, j int, splits [][]int) {
	si, sj := &a.segs[i], &a.segs[j]
	touched := false
	for _, id := range [2]int{sj.a, sj.b} {
		touched = a.splitIfOn(i, id, splits) || touched
	}
	for _, id := range [2]int{si.a, si.b} {
		touched = a.splitIfOn(j, id, splits) || touched
	}
	if touched || si.a == sj.a || si.a == sj.b || si.b == sj.a || si.b == sj.b {
		return
	}
	p, q := a.nodes[si.a], a.nodes[si.b]
	r, s := a.nodes[sj.a], a.nodes[sj.b]
	if !crossesProperly(p, q, r, s) {
		return
	}
	id := a.node(lineIntersection(p, q, r, s))
	if id != si.a && id != si.b {
		splits[i] = append(splits[i], id)
	}
	if id != sj.a && id != sj.b {
		splits[j] = append(splits[j], id)
	}
}

func (a *arrangement) addEdges(i int, split []int) {
	s := a.segs[i]
	p, q := a.nodes[s.a], a.nodes[s.b]
	sort.Slice(split, func(x, y int) bool {
		return segmentParam(a.nodes[split[x]], p, q) < segmentParam(a.nodes[split[y]], p, q)
	})
	prev := s.a
	for _, id := range append(split, s.b) {
		if id != prev {
			a.addEdge(prev, id, s.operand, s.ring)
			prev = id
		}
	}
}

func (a *arrangement) addEdge(u, v, operand int, ring bool) {
	key := [2]int{u, v}
	if v < u {
		key = [2]int{v, u}
	}
	k, ok := a.byKey[key]
	if !ok {
		k = len(a.edges)
		a.edges = append(a.edges, edge{from: u, to: v})
		a.byKey[key] = k
	}
	e := &a.edges[k]
	l := &e.label[operand]
	if !ring {
		l.line = true
	} else if e.from == u {
		l.ring, l.dir = true, l.dir+1
	} else {
		l.ring, l.dir = true, l.dir-1
	}
}

// edgeLocation is the location of an edge, and of the areas to its
// left and right, relative to one operand.
type edgeLocation struct {
	on, left, right Location
}

// locateEdge locates edge e relative to the given operand.
func (a *arrangement) locateEdge(e *edge, operand int, loc *locator) edgeLocation {
	l := e.label[operand]
	p, q := a.nodes[e.from], a.nodes[e.to]
	m := midpoint(p, q)

	var el edgeLocation
	switch {
	case l.ring && l.dir == 0:
		el.on = Interior
	case l.ring:
		el.on = Boundary
	case l.line:
		el.on = Interior
	default:
		el.on = loc.locateCurves(m)
	}

	if len(loc.p.polys) == 0 {
		el.left, el.right = Exterior, Exterior
		return el
	}
	switch {
	case l.ring && l.dir > 0:
		el.left, el.right = Interior, Exterior
	case l.ring && l.dir < 0:
		el.left, el.right = Exterior, Interior
	case l.ring:
		el.left, el.right = Interior, Interior
	default:
		side := loc.locateArea(m)
		if side != Boundary {
			el.left, el.right = side, side
			break
		}
		// The edge runs along the boundary without sharing its nodes;
		// probe either side of it.
		d := math.Max(100*a.eps, distance(p, q)*1e-6)
		nx, ny := -(q.Y-p.Y)/distance(p, q)*d, (q.X-p.X)/distance(p, q)*d
		el.left = interiorUnlessExterior(loc.locateArea(Coord{X: m.X + nx, Y: m.Y + ny}))
		el.right = interiorUnlessExterior(loc.locateArea(Coord{X: m.X - nx, Y: m.Y - ny}))
	}
	return el
}

func interiorUnlessExterior(l Location) Location {
	if l == Exterior {
		return Exterior
	}
	return Interior
}
