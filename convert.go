// Copyright 2023 The geokit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package geokit

import (
	"math"

	geom "github.com/twpayne/go-geom"
)

// toGeom converts g to the go-geom representation used by the WKT, WKB
// and GeoJSON codecs. A LinearRing becomes a LineString.
func toGeom(g *Geometry) (geom.T, error) {
	layout := geom.XY
	if g.is3D {
		layout = geom.XYZ
	}
	switch g.typ {
	case Point:
		if len(g.coords) == 0 {
			return geom.NewPointEmpty(layout), nil
		}
		return geom.NewPoint(layout).SetCoords(toGeomCoord(g.coords[0], layout))
	case LineString, LinearRing:
		return geom.NewLineString(layout).SetCoords(toGeomCoords(g.coords, layout))
	case Polygon:
		rings := make([][]geom.Coord, len(g.parts))
		for i, r := range g.parts {
			rings[i] = toGeomCoords(r.coords, layout)
		}
		return geom.NewPolygon(layout).SetCoords(rings)
	case MultiPoint:
		mp := geom.NewMultiPoint(layout)
		for _, p := range g.parts {
			q, err := toGeom(p)
			if err != nil {
				return nil, err
			}
			if err = mp.Push(q.(*geom.Point)); err != nil {
				return nil, err
			}
		}
		return mp, nil
	case MultiLineString:
		ml := geom.NewMultiLineString(layout)
		for _, p := range g.parts {
			q, err := toGeom(p)
			if err != nil {
				return nil, err
			}
			if err = ml.Push(q.(*geom.LineString)); err != nil {
				return nil, err
			}
		}
		return ml, nil
	case MultiPolygon:
		mp := geom.NewMultiPolygon(layout)
		for _, p := range g.parts {
			q, err := toGeom(p)
			if err != nil {
				return nil, err
			}
			if err = mp.Push(q.(*geom.Polygon)); err != nil {
				return nil, err
			}
		}
		return mp, nil
	case GeometryCollection:
		gc := geom.NewGeometryCollection()
		for _, p := range g.parts {
			q, err := toGeom(p)
			if err != nil {
				return nil, err
			}
			if err = gc.Push(q); err != nil {
				return nil, err
			}
		}
		return gc, nil
	default:
		return nil, kindErr(ErrGeometryOperation, "cannot encode %s", g.Name())
	}
}

func toGeomCoord(c Coord, layout geom.Layout) geom.Coord {
	if layout == geom.XYZ {
		return geom.Coord{c.X, c.Y, c.Z}
	}
	return geom.Coord{c.X, c.Y}
}

func toGeomCoords(cs []Coord, layout geom.Layout) []geom.Coord {
	out := make([]geom.Coord, len(cs))
	for i := range cs {
		out[i] = toGeomCoord(cs[i], layout)
	}
	return out
}

// fromGeom converts a decoded go-geom geometry. M values are dropped. A
// point with NaN coordinates is an empty point, as in WKB.
func fromGeom(t geom.T) (*Geometry, error) {
	zi := t.Layout().ZIndex()
	var g *Geometry
	switch v := t.(type) {
	case *geom.Point:
		g = Create(Point)
		if !v.Empty() {
			c := fromGeomCoord(v.Coords(), zi)
			if !math.IsNaN(c.X) || !math.IsNaN(c.Y) {
				g.coords = []Coord{c}
			}
		}
	case *geom.LineString:
		g = &Geometry{typ: LineString, coords: fromGeomCoords(v.Coords(), zi)}
	case *geom.LinearRing:
		g = &Geometry{typ: LinearRing, coords: fromGeomCoords(v.Coords(), zi)}
	case *geom.Polygon:
		g = Create(Polygon)
		for i := 0; i < v.NumLinearRings(); i++ {
			g.parts = append(g.parts, &Geometry{
				typ:    LinearRing,
				coords: fromGeomCoords(v.LinearRing(i).Coords(), zi),
			})
		}
	case *geom.MultiPoint:
		g = Create(MultiPoint)
		for i := 0; i < v.NumPoints(); i++ {
			p, err := fromGeom(v.Point(i))
			if err != nil {
				return nil, err
			}
			g.parts = append(g.parts, p)
		}
	case *geom.MultiLineString:
		g = Create(MultiLineString)
		for i := 0; i < v.NumLineStrings(); i++ {
			p, err := fromGeom(v.LineString(i))
			if err != nil {
				return nil, err
			}
			g.parts = append(g.parts, p)
		}
	case *geom.MultiPolygon:
		g = Create(MultiPolygon)
		for i := 0; i < v.NumPolygons(); i++ {
			p, err := fromGeom(v.Polygon(i))
			if err != nil {
				return nil, err
			}
			g.parts = append(g.parts, p)
		}
	case *geom.GeometryCollection:
		g = Create(GeometryCollection)
		for i, part := range v.Geoms() {
			p, err := fromGeom(part)
			if err != nil {
				return nil, wrapErr("part %d", err, i)
			}
			if err = g.AddGeometry(p); err != nil {
				return nil, kindErr(ErrParse, "%v", err)
			}
		}
		return g, nil
	default:
		return nil, kindErr(ErrParse, "unsupported geometry %T", t)
	}
	g.setDim(zi >= 0)
	return g, nil
}

func fromGeomCoord(c geom.Coord, zi int) Coord {
	r := Coord{X: c[0], Y: c[1]}
	if zi >= 0 && zi < len(c) {
		r.Z = c[zi]
	}
	return r
}

func fromGeomCoords(cs []geom.Coord, zi int) []Coord {
	out := make([]Coord, len(cs))
	for i := range cs {
		out[i] = fromGeomCoord(cs[i], zi)
	}
	return out
}
