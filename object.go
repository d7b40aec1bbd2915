// Copyright 2023 The geokit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package geokit

import (
	geojson "github.com/paulmach/go.geojson"
)

// Object returns the geometry as a GeoJSON-like object tree, with
// coordinates as float slices. Three-dimensional coordinates have
// three elements. A LinearRing becomes a LineString.
func (g *Geometry) Object() *geojson.Geometry {
	switch g.typ {
	case Point:
		var c []float64
		if len(g.coords) > 0 {
			c = g.position(g.coords[0])
		}
		return geojson.NewPointGeometry(c)
	case LineString, LinearRing:
		return geojson.NewLineStringGeometry(g.positions(g.coords))
	case Polygon:
		return geojson.NewPolygonGeometry(g.rings())
	case MultiPoint:
		var pts [][]float64
		for _, p := range g.parts {
			if len(p.coords) > 0 {
				pts = append(pts, g.position(p.coords[0]))
			}
		}
		return geojson.NewMultiPointGeometry(pts...)
	case MultiLineString:
		lines := make([][][]float64, len(g.parts))
		for i, p := range g.parts {
			lines[i] = g.positions(p.coords)
		}
		return geojson.NewMultiLineStringGeometry(lines...)
	case MultiPolygon:
		polys := make([][][][]float64, len(g.parts))
		for i, p := range g.parts {
			polys[i] = p.rings()
		}
		return geojson.NewMultiPolygonGeometry(polys...)
	default:
		members := make([]*geojson.Geometry, len(g.parts))
		for i, p := range g.parts {
			members[i] = p.Object()
		}
		return geojson.NewCollectionGeometry(members...)
	}
}

func (g *Geometry) position(c Coord) []float64 {
	if g.is3D {
		return []float64{c.X, c.Y, c.Z}
	}
	return []float64{c.X, c.Y}
}

func (g *Geometry) positions(cs []Coord) [][]float64 {
	out := make([][]float64, len(cs))
	for i := range cs {
		out[i] = g.position(cs[i])
	}
	return out
}

func (g *Geometry) rings() [][][]float64 {
	out := make([][][]float64, len(g.parts))
	for i, r := range g.parts {
		out[i] = g.positions(r.coords)
	}
	return out
}

// FromObject converts a GeoJSON-like object tree to a geometry. The
// result is three-dimensional if any position has a third element.
// Returns an error wrapping ErrParse if a position has fewer than two
// elements or the type is unknown.
func FromObject(o *geojson.Geometry) (*Geometry, error) {
	if o == nil {
		textPanic("nil object")
	}
	var g *Geometry
	var err error
	switch o.Type {
	case geojson.GeometryPoint:
		g = Create(Point)
		if len(o.Point) > 0 {
			var c Coord
			if c, err = fromPosition(o.Point); err == nil {
				g.AddPoint(c)
			}
		}
	case geojson.GeometryLineString:
		g = Create(LineString)
		g.coords, err = fromPositions(o.LineString)
	case geojson.GeometryPolygon:
		g, err = fromRings(o.Polygon)
	case geojson.GeometryMultiPoint:
		g = Create(MultiPoint)
		for _, pos := range o.MultiPoint {
			var c Coord
			if c, err = fromPosition(pos); err != nil {
				break
			}
			g.parts = append(g.parts, &Geometry{typ: Point, coords: []Coord{c}})
		}
	case geojson.GeometryMultiLineString:
		g = Create(MultiLineString)
		for _, line := range o.MultiLineString {
			p := Create(LineString)
			if p.coords, err = fromPositions(line); err != nil {
				break
			}
			g.parts = append(g.parts, p)
		}
	case geojson.GeometryMultiPolygon:
		g = Create(MultiPolygon)
		for _, rings := range o.MultiPolygon {
			var p *Geometry
			if p, err = fromRings(rings); err != nil {
				break
			}
			g.parts = append(g.parts, p)
		}
	case geojson.GeometryCollection:
		g = Create(GeometryCollection)
		for i, member := range o.Geometries {
			var p *Geometry
			if p, err = FromObject(member); err != nil {
				return nil, wrapErr("member %d", err, i)
			}
			if err = g.AddGeometry(p); err != nil {
				return nil, kindErr(ErrParse, "%v", err)
			}
		}
		return g, nil
	default:
		return nil, kindErr(ErrParse, "unknown GeoJSON geometry type %q", o.Type)
	}
	if err != nil {
		return nil, err
	}
	is3D := false
	g.eachCoord(func(c *Coord) {
		is3D = is3D || c.Z != 0
	})
	g.setDim(is3D || objectHasZ(o))
	return g, nil
}

func fromPosition(p []float64) (Coord, error) {
	switch len(p) {
	case 0, 1:
		return Coord{}, kindErr(ErrParse, "GeoJSON position has %d elements", len(p))
	case 2:
		return Coord{X: p[0], Y: p[1]}, nil
	default:
		return Coord{X: p[0], Y: p[1], Z: p[2]}, nil
	}
}

func fromPositions(ps [][]float64) ([]Coord, error) {
	out := make([]Coord, len(ps))
	for i, p := range ps {
		c, err := fromPosition(p)
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}

func fromRings(rings [][][]float64) (*Geometry, error) {
	g := Create(Polygon)
	for _, r := range rings {
		coords, err := fromPositions(r)
		if err != nil {
			return nil, err
		}
		g.parts = append(g.parts, &Geometry{typ: LinearRing, coords: coords})
	}
	return g, nil
}

// objectHasZ reports whether any position of a non-collection object
// has three or more elements.
func objectHasZ(o *geojson.Geometry) bool {
	has := func(p []float64) bool { return len(p) > 2 }
	if has(o.Point) {
		return true
	}
	for _, p := range o.MultiPoint {
		if has(p) {
			return true
		}
	}
	for _, p := range o.LineString {
		if has(p) {
			return true
		}
	}
	for _, lines := range [][][][]float64{o.MultiLineString, o.Polygon} {
		for _, l := range lines {
			for _, p := range l {
				if has(p) {
					return true
				}
			}
		}
	}
	for _, poly := range o.MultiPolygon {
		for _, r := range poly {
			for _, p := range r {
				if has(p) {
					return true
				}
			}
		}
	}
	return false
}
