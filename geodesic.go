// Copyright 2023 The geokit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package geokit

import (
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// GeodesicLength returns the length of the curves of the geometry in
// metres, measured along great circles on a sphere whose radius is the
// mean radius of the reference ellipsoid. Polygon perimeters include
// holes. Projected geometries are first transformed to their
// geographic base. Returns an error wrapping ErrMissingReference if the
// geometry has no spatial reference, and one wrapping
// ErrGeometryOperation if the reference is neither geographic nor
// projected.
func (g *Geometry) GeodesicLength() (float64, error) {
	s, err := g.onSphere("geodesic length")
	if err != nil {
		return 0, err
	}
	var l float64
	s.g.eachPath(func(path []Coord) {
		if len(path) < 2 {
			return
		}
		l += s2.PolylineFromLatLngs(s.latLngs(path)).Length().Radians()
	})
	return l * s.radius, nil
}

// GeodesicArea returns the area of the polygonal parts of the geometry
// in square metres, on the same sphere as GeodesicLength. Each ring is
// taken to enclose the smaller of the two regions it bounds. Errors are
// as for GeodesicLength.
func (g *Geometry) GeodesicArea() (float64, error) {
	s, err := g.onSphere("geodesic area")
	if err != nil {
		return 0, err
	}
	return s.area(s.g) * s.radius * s.radius, nil
}

// sphere holds a geometry in geographic coordinates together with what
// is needed to read them as angles.
type sphere struct {
	g      *Geometry
	swap   bool
	factor float64
	radius float64
}

func (g *Geometry) onSphere(op string) (*sphere, error) {
	if g.ref == nil {
		return nil, kindErr(ErrMissingReference, "%s needs a spatial reference", op)
	}
	h := g
	switch {
	case g.ref.IsGeographic():
	case g.ref.IsProjected():
		h = g.Clone()
		if err := h.TransformTo(g.ref.CloneGeogCS()); err != nil {
			return nil, wrapErr(op, err)
		}
	default:
		return nil, kindErr(ErrGeometryOperation, "%s needs a geographic or projected reference, not %s",
			op, g.ref.Kind())
	}
	ref := h.ref
	a, b := ref.SemiMajor(), ref.SemiMinor()
	if a == 0 {
		return nil, kindErr(ErrGeometryOperation, "%s: reference %q has no ellipsoid", op, ref.Name())
	}
	return &sphere{
		g:      h,
		swap:   ref.AxisOrderSwapped(),
		factor: ref.AngularUnits().Factor,
		radius: (2*a + b) / 3,
	}, nil
}

func (s *sphere) latLng(c Coord) s2.LatLng {
	lng, lat := c.X, c.Y
	if s.swap {
		lng, lat = lat, lng
	}
	return s2.LatLng{Lat: s1.Angle(lat * s.factor), Lng: s1.Angle(lng * s.factor)}
}

func (s *sphere) latLngs(path []Coord) []s2.LatLng {
	lls := make([]s2.LatLng, len(path))
	for i, c := range path {
		lls[i] = s.latLng(c)
	}
	return lls
}

// area returns the area of g on the unit sphere.
func (s *sphere) area(g *Geometry) float64 {
	switch g.typ {
	case Polygon:
		var a float64
		for i, r := range g.parts {
			if i == 0 {
				a += s.ringArea(r.coords)
			} else {
				a -= s.ringArea(r.coords)
			}
		}
		return math.Max(a, 0)
	case LinearRing:
		return s.ringArea(g.coords)
	default:
		var a float64
		for _, p := range g.parts {
			a += s.area(p)
		}
		return a
	}
}

// ringArea returns the area of the smaller region bounded by the ring.
// Loops have no closing vertex and no repeated vertices.
func (s *sphere) ringArea(ring []Coord) float64 {
	pts := make([]s2.Point, 0, len(ring))
	for _, c := range dedupe(ring) {
		pts = append(pts, s2.PointFromLatLng(s.latLng(c)))
	}
	if n := len(pts); n > 1 && pts[0] == pts[n-1] {
		pts = pts[:n-1]
	}
	if len(pts) < 3 {
		return 0
	}
	l := s2.LoopFromPoints(pts)
	l.Normalize()
	return l.Area()
}

// eachPath calls f with the coordinates of every curve and ring of the
// geometry.
func (g *Geometry) eachPath(f func(path []Coord)) {
	switch g.typ {
	case Point:
	case LineString, LinearRing:
		f(g.coords)
	case Polygon:
		for _, r := range g.parts {
			f(r.coords)
		}
	default:
		for _, p := range g.parts {
			p.eachPath(f)
		}
	}
}
