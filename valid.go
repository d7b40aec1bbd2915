// Copyright 2023 The geokit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package geokit

// IsValid reports whether the geometry is well formed according to the
// OGC Simple Features rules: curves have at least two distinct points,
// rings are closed and simple, holes lie inside their shell without
// nesting, and the polygons of a multi-polygon touch at most at points.
func (g *Geometry) IsValid() bool {
	return g.validate() == nil
}

// validate returns an error wrapping ErrInvalidGeometry describing the
// first problem found, or nil.
func (g *Geometry) validate() error {
	switch g.typ {
	case Point:
		if len(g.coords) > 0 && !isFinite(g.coords[0]) {
			return kindErr(ErrInvalidGeometry, "point has a non-finite coordinate")
		}
	case LineString:
		if err := checkFinite(g.coords); err != nil {
			return err
		}
		if len(g.coords) > 0 && len(dedupe(g.coords)) < 2 {
			return kindErr(ErrInvalidGeometry, "line string has fewer than two distinct points")
		}
	case LinearRing:
		if len(g.coords) > 0 {
			return validateRings([][]Coord{g.coords})
		}
	case Polygon, MultiPolygon:
		return g.validatePolygonal()
	default:
		for i, p := range g.parts {
			if err := p.validate(); err != nil {
				return wrapErr("part %d", err, i)
			}
		}
	}
	return nil
}

// validatePolygonal validates the polygonal components of g, including
// those inside collections, and ignores every other component.
func (g *Geometry) validatePolygonal() error {
	switch g.typ {
	case Polygon:
		return validatePolygons([]*Geometry{g})
	case MultiPolygon:
		return validatePolygons(g.parts)
	case GeometryCollection:
		for i, p := range g.parts {
			if err := p.validatePolygonal(); err != nil {
				return wrapErr("part %d", err, i)
			}
		}
	}
	return nil
}

func checkFinite(coords []Coord) error {
	for i := range coords {
		if !isFinite(coords[i]) {
			return kindErr(ErrInvalidGeometry, "coordinate %d is not finite", i)
		}
	}
	return nil
}

// dedupe returns the coordinates with consecutive repeats removed.
func dedupe(coords []Coord) []Coord {
	out := make([]Coord, 0, len(coords))
	for i, c := range coords {
		if i == 0 || !c.equal2D(coords[i-1]) {
			out = append(out, c)
		}
	}
	return out
}

// checkRing validates one ring on its own and returns it without
// repeated points.
func checkRing(ring []Coord) ([]Coord, error) {
	if err := checkFinite(ring); err != nil {
		return nil, err
	}
	if !ring[0].equal2D(ring[len(ring)-1]) {
		return nil, kindErr(ErrInvalidGeometry, "ring is not closed")
	}
	r := dedupe(ring)
	if len(r) < 4 {
		return nil, kindErr(ErrInvalidGeometry, "ring has fewer than four points")
	}
	if ringArea(r) == 0 {
		return nil, kindErr(ErrInvalidGeometry, "ring has no area")
	}
	return r, nil
}

// validatePolygons validates a set of polygons that together form one
// polygonal geometry.
func validatePolygons(polys []*Geometry) error {
	var rings [][]Coord
	var owner []int
	var shells []int
	for k, poly := range polys {
		if poly.IsEmpty() {
			continue
		}
		if len(poly.parts[0].coords) == 0 {
			return kindErr(ErrInvalidGeometry, "polygon %d has holes but no shell", k)
		}
		shells = append(shells, len(rings))
		for _, r := range poly.parts {
			if len(r.coords) == 0 {
				continue
			}
			rings = append(rings, r.coords)
			owner = append(owner, k)
		}
	}
	if len(rings) == 0 {
		return nil
	}
	if err := validateRings(rings); err != nil {
		return err
	}

	p := &parts{}
	for _, r := range rings {
		p.lines = append(p.lines, r)
	}
	eps := tolerance(p)
	isShell := make(map[int]bool, len(shells))
	for _, s := range shells {
		isShell[s] = true
	}
	for i, r := range rings {
		for j, s := range rings {
			if i == j {
				continue
			}
			sameOwner := owner[i] == owner[j]
			switch {
			case isShell[j] && sameOwner && !isShell[i]:
				if ringTouchesOutside(r, s, eps) {
					return kindErr(ErrInvalidGeometry, "hole lies outside its shell")
				}
			case !isShell[j] && sameOwner && !isShell[i]:
				if ringInside(r, s, eps) {
					return kindErr(ErrInvalidGeometry, "holes are nested")
				}
			case isShell[j] && !sameOwner:
				if polygonHasInside(polys[owner[j]], r, eps) {
					return kindErr(ErrInvalidGeometry, "polygons %d and %d overlap", owner[i], owner[j])
				}
			}
		}
	}
	return nil
}

func ringTouchesOutside(r, s []Coord, eps float64) bool {
	for _, c := range r {
		if ringLocation(s, c, eps) == Exterior {
			return true
		}
	}
	return false
}

// polygonHasInside reports whether any vertex or edge midpoint of r lies
// in the interior of poly.
func polygonHasInside(poly *Geometry, r []Coord, eps float64) bool {
	loc := newLocator(poly.flatten(), eps)
	for i, c := range r {
		if loc.locateArea(c) == Interior {
			return true
		}
		if i > 0 && loc.locateArea(midpoint(r[i-1], c)) == Interior {
			return true
		}
	}
	return false
}

// validateRings checks that every ring is closed and simple, and that
// no two rings cross or share an edge. Rings may touch at points.
func validateRings(rings [][]Coord) error {
	paths := make([][]Coord, len(rings))
	for i, ring := range rings {
		r, err := checkRing(ring)
		if err != nil {
			if len(rings) > 1 {
				return wrapErr("ring %d", err, i)
			}
			return err
		}
		paths[i] = r
	}
	segs := pathSegments(nil, paths, 0)
	eps := tolerance(&parts{lines: paths})
	index := indexSegments(segs, eps)
	var err error
	for i := range segs {
		index.visit(segmentBox(segs[i].a, segs[i].b, eps), func(j int) bool {
			if j <= i {
				return true
			}
			err = checkSegmentPair(&segs[i], &segs[j], len(paths[segs[i].path])-1, eps)
			return err == nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// checkSegmentPair checks two ring segments, where n is the number of
// segments of the ring holding s.
func checkSegmentPair(s, t *segment, n int, eps float64) error {
	k, x, _ := intersectSegments(s.a, s.b, t.a, t.b, eps)
	if k == noIntersection {
		return nil
	}
	if s.path != t.path {
		if k == overlapIntersection {
			return kindErr(ErrInvalidGeometry, "rings %d and %d share an edge", s.path, t.path)
		}
		if isEndpoint(x, s, eps) || isEndpoint(x, t, eps) {
			return nil
		}
		return kindErr(ErrInvalidGeometry, "rings %d and %d cross at %s", s.path, t.path, x)
	}
	adjacent := t.i-s.i == 1 || s.i == 0 && t.i == n-1
	if adjacent && k == pointIntersection {
		return nil
	}
	return kindErr(ErrInvalidGeometry, "ring self-intersects at %s", x)
}

func isEndpoint(c Coord, s *segment, eps float64) bool {
	return distance(c, s.a) <= eps || distance(c, s.b) <= eps
}

// IsSimple reports whether the geometry has no anomalous points, such
// as self-intersections or repeated points. Line strings may only touch
// themselves at their closing point, and the members of a
// multi-line-string may only touch at their end points. Polygonal
// geometries are simple if their rings are. Empty geometries are
// simple.
func (g *Geometry) IsSimple() bool {
	switch g.typ {
	case Point:
		return true
	case MultiPoint:
		seen := make(map[[2]float64]bool, len(g.parts))
		for _, p := range g.parts {
			if len(p.coords) == 0 {
				continue
			}
			k := [2]float64{p.coords[0].X, p.coords[0].Y}
			if seen[k] {
				return false
			}
			seen[k] = true
		}
		return true
	case LineString, LinearRing:
		return linesSimple([][]Coord{g.coords})
	case MultiLineString:
		lines := make([][]Coord, 0, len(g.parts))
		for _, p := range g.parts {
			lines = append(lines, p.coords)
		}
		return linesSimple(lines)
	case Polygon:
		for _, r := range g.parts {
			if !linesSimple([][]Coord{r.coords}) {
				return false
			}
		}
		return true
	default:
		for _, p := range g.parts {
			if !p.IsSimple() {
				return false
			}
		}
		return true
	}
}

func linesSimple(lines [][]Coord) bool {
	var paths [][]Coord
	for _, l := range lines {
		if len(l) > 0 {
			paths = append(paths, dedupe(l))
		}
	}
	segs := pathSegments(nil, paths, 0)
	if len(segs) == 0 {
		return true
	}
	eps := tolerance(&parts{lines: paths})
	closed := func(p int) bool {
		path := paths[p]
		return len(path) > 2 && path[0].equal2D(path[len(path)-1])
	}
	atEnd := func(c Coord, p int) bool {
		path := paths[p]
		return !closed(p) && (distance(c, path[0]) <= eps || distance(c, path[len(path)-1]) <= eps)
	}
	simple := true
	index := indexSegments(segs, eps)
	for i := range segs {
		s := &segs[i]
		index.visit(segmentBox(s.a, s.b, eps), func(j int) bool {
			if j <= i {
				return true
			}
			t := &segs[j]
			k, x, _ := intersectSegments(s.a, s.b, t.a, t.b, eps)
			switch {
			case k == noIntersection:
				return true
			case k == overlapIntersection:
				simple = false
			case s.path != t.path:
				simple = atEnd(x, s.path) && atEnd(x, t.path)
			default:
				n := len(paths[s.path]) - 1
				simple = t.i-s.i == 1 || closed(s.path) && s.i == 0 && t.i == n-1
			}
			return simple
		})
		if !simple {
			return false
		}
	}
	return true
}

// IsRing reports whether g is a closed, simple curve of at least four
// points.
func (g *Geometry) IsRing() bool {
	if !g.typ.isCurve() {
		return false
	}
	n := len(g.coords)
	return n >= 4 && g.coords[0].equal2D(g.coords[n-1]) && g.IsSimple()
}
