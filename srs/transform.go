// Copyright 2023 The geokit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package srs

import (
	"fmt"
	"math"
)

// Point is a transformed coordinate.
type Point struct {
	X, Y, Z float64
}

func (p Point) String() string {
	return fmt.Sprintf("Point{X:%g,Y:%g,Z:%g}", p.X, p.Y, p.Z)
}

// endpoint is one side of a compiled transformation.
type endpoint struct {
	kind     Kind
	swap     bool
	linear   float64
	angular  float64
	pm       float64
	proj     projector
	geod     geodetic
	toWGS84  helmert
	hasShift bool
}

// Transformation maps coordinates from a source reference to a target
// reference. A Transformation is immutable and safe for concurrent
// use.
type Transformation struct {
	src, dst *SpatialReference
	in, out  endpoint
	// shift is set when the datums differ and coordinates pass through
	// WGS84.
	shift bool
	// identity is set when the references are local or vertical and
	// the same, so coordinates are only copied.
	identity bool
}

// NewTransformation compiles a transformation from src to dst. It
// fails with an error wrapping ErrIncompatibleReference when either
// reference is empty or invalid, uses a projection method that cannot
// be evaluated, is local or vertical without being the same as the
// other reference, or when the datums differ and one of them has no
// TOWGS84 parameters.
func NewTransformation(src, dst *SpatialReference) (*Transformation, error) {
	if src == nil || dst == nil {
		textPanic("nil spatial reference")
	}
	for _, r := range []*SpatialReference{src, dst} {
		if r.IsEmpty() {
			return nil, kindErr(ErrIncompatibleReference, "empty reference")
		}
		if msg := r.Validate(); msg != "" {
			return nil, kindErr(ErrIncompatibleReference, "invalid reference %q: %s", r.Name(), msg)
		}
	}

	t := &Transformation{src: src, dst: dst}
	hs, hd := src.def.horizontal(), dst.def.horizontal()
	if isLocalOrVertical(hs) || isLocalOrVertical(hd) {
		if !src.IsSame(dst) {
			return nil, kindErr(ErrIncompatibleReference, "%s and %s references differ", src.Kind(), dst.Kind())
		}
		t.identity = true
		return t, nil
	}

	var err error
	if t.in, err = newEndpoint(hs); err != nil {
		return nil, kindErr(ErrIncompatibleReference, "source: %w", err)
	}
	if t.out, err = newEndpoint(hd); err != nil {
		return nil, kindErr(ErrIncompatibleReference, "target: %w", err)
	}
	if !hs.geog.datum.sameDatum(&hd.geog.datum) {
		if !t.in.hasShift || !t.out.hasShift {
			return nil, kindErr(ErrIncompatibleReference, "no datum shift between %q and %q",
				hs.geog.datum.name, hd.geog.datum.name)
		}
		t.shift = true
	}
	return t, nil
}

func isLocalOrVertical(d *definition) bool {
	return d == nil || d.kind == KindLocal || d.kind == KindVertical
}

func newEndpoint(d *definition) (endpoint, error) {
	e := endpoint{
		kind:    d.kind,
		linear:  1,
		angular: d.geog.angular.factor,
		pm:      d.geog.pm.lon * degreeFactor,
		geod:    newGeodetic(&d.geog.datum.ellipsoid),
	}
	if d.linear != nil {
		e.linear = d.linear.factor
	}
	if p, ok := d.geog.datum.shift(); ok {
		e.toWGS84 = newHelmert(p)
		e.hasShift = true
	}
	switch d.kind {
	case KindGeographic:
		e.swap = len(d.geog.axes) > 0 && isNorthing(d.geog.axes[0])
	case KindProjected:
		e.swap = len(d.axes) > 0 && isNorthing(d.axes[0])
		p, err := newProjector(d)
		if err != nil {
			return e, err
		}
		e.proj = p
	case KindGeocentric:
	default:
		return e, kindErr(ErrUnsupported, "%s reference", d.kind)
	}
	return e, nil
}

func isNorthing(a axis) bool {
	return a.dir == "NORTH" || a.dir == "SOUTH"
}

// Source returns the source reference.
func (t *Transformation) Source() *SpatialReference {
	return t.src
}

// Target returns the target reference.
func (t *Transformation) Target() *SpatialReference {
	return t.dst
}

// TransformPoint transforms one coordinate. The z value passes through
// unchanged unless one of the references is geocentric. Points outside
// the domain of a projection give an error wrapping ErrOutOfDomain.
func (t *Transformation) TransformPoint(x, y, z float64) (Point, error) {
	if t.identity {
		return Point{x, y, z}, nil
	}

	// Source coordinates to geodetic radians on the source datum.
	in := &t.in
	if in.swap {
		x, y = y, x
	}
	var lam, phi, h float64
	switch in.kind {
	case KindProjected:
		var err error
		if lam, phi, err = in.proj.inverse(x*in.linear, y*in.linear); err != nil {
			return Point{}, err
		}
		h = z
	case KindGeographic:
		lam, phi, h = x*in.angular, y*in.angular, z
		if err := checkLatitude("geographic", lam, phi); err != nil {
			return Point{}, err
		}
	case KindGeocentric:
		lam, phi, h = in.geod.fromECEF(x*in.linear, y*in.linear, z*in.linear)
	}
	lam += in.pm

	if t.shift {
		gx, gy, gz := in.geod.toECEF(lam, phi, h)
		gx, gy, gz = in.toWGS84.forward(gx, gy, gz)
		gx, gy, gz = t.out.toWGS84.inverse(gx, gy, gz)
		var h2 float64
		lam, phi, h2 = t.out.geod.fromECEF(gx, gy, gz)
		if in.kind == KindGeocentric || t.out.kind == KindGeocentric {
			h = h2
		}
	}

	// Geodetic radians on the target datum to target coordinates.
	out := &t.out
	lam -= out.pm
	var p Point
	switch out.kind {
	case KindProjected:
		px, py, err := out.proj.forward(lam, phi)
		if err != nil {
			return Point{}, err
		}
		p = Point{px / out.linear, py / out.linear, z}
	case KindGeographic:
		p = Point{normalizeLongitude(lam) / out.angular, phi / out.angular, z}
		if in.kind == KindGeocentric {
			p.Z = h
		}
	case KindGeocentric:
		gx, gy, gz := out.geod.toECEF(lam, phi, h)
		p = Point{gx / out.linear, gy / out.linear, gz / out.linear}
	}
	if in.kind == KindGeocentric && out.kind == KindProjected {
		p.Z = h
	}
	if out.swap {
		p.X, p.Y = p.Y, p.X
	}
	if math.IsNaN(p.X) || math.IsNaN(p.Y) {
		return Point{}, kindErr(ErrOutOfDomain, "(%g, %g) has no image", x, y)
	}
	return p, nil
}

// TransformPoints transforms coordinates in place. z may be nil; it
// must otherwise have the length of x and y. If any point fails the
// slices are left unchanged and the error identifies the point.
func (t *Transformation) TransformPoints(x, y, z []float64) error {
	if len(x) != len(y) || (z != nil && len(z) != len(x)) {
		fmtPanic("coordinate slices differ in length: x=%d y=%d z=%d", len(x), len(y), len(z))
	}
	pts := make([]Point, len(x))
	for i := range x {
		var zi float64
		if z != nil {
			zi = z[i]
		}
		p, err := t.TransformPoint(x[i], y[i], zi)
		if err != nil {
			return wrapErr("point %d", err, i)
		}
		pts[i] = p
	}
	for i, p := range pts {
		x[i], y[i] = p.X, p.Y
		if z != nil {
			z[i] = p.Z
		}
	}
	return nil
}
