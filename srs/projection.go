// Copyright 2023 The geokit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package srs

import (
	"math"
	"strings"
)

// A projector maps geodetic coordinates in radians, with longitude
// relative to the prime meridian of the datum, to projected
// coordinates in metres and back. False easting and northing are
// applied by the projector.
type projector interface {
	forward(lam, phi float64) (x, y float64, err error)
	inverse(x, y float64) (lam, phi float64, err error)
}

// projParams holds the parameters of a projection converted to
// radians and metres.
type projParams struct {
	a, e, es   float64
	lat0, lon0 float64
	sp1, sp2   float64
	hasSP2     bool
	k0         float64
	fe, fn     float64
}

func newProjector(d *definition) (projector, error) {
	if d.proj == nil {
		return nil, kindErr(ErrUnsupported, "reference %q has no projection", d.name)
	}
	m := findMethod(d.proj.method)
	if m == nil {
		return nil, kindErr(ErrUnsupported, "projection method %q", d.proj.method)
	}
	ell := &d.geog.datum.ellipsoid
	ang := d.geog.angular.factor
	lin := 1.0
	if d.linear != nil {
		lin = d.linear.factor
	}
	get := d.proj.get
	pp := projParams{
		a:    ell.a,
		es:   ell.es(),
		lat0: get(paramLatOrigin, 0) * ang,
		lon0: get(paramCentralMe, 0) * ang,
		sp1:  get(paramSP1, 0) * ang,
		sp2:  get(paramSP2, 0) * ang,
		k0:   get(paramScale, 1),
		fe:   get(paramFE, 0) * lin,
		fn:   get(paramFN, 0) * lin,
	}
	pp.hasSP2 = d.proj.has(paramSP2)
	pp.e = math.Sqrt(pp.es)

	switch m.name {
	case TransverseMercator:
		return newTransverseMercator(pp), nil
	case Mercator1SP:
		return newMercator(pp, false), nil
	case Mercator2SP:
		pp.k0 = math.Cos(pp.sp1) / math.Sqrt(1-pp.es*sq(math.Sin(pp.sp1)))
		return newMercator(pp, false), nil
	case PseudoMercator:
		return newMercator(pp, true), nil
	case LambertConformalConic1:
		return newLambert(pp, false)
	case LambertConformalConic2:
		return newLambert(pp, true)
	case Equirectangular:
		return &equirectangular{pp}, nil
	case Orthographic:
		return &orthographic{pp}, nil
	case Mollweide:
		return &mollweide{pp}, nil
	}
	return nil, kindErr(ErrUnsupported, "projection method %q", strings.ToLower(m.name))
}

func sq(x float64) float64 {
	return x * x
}

// relLon returns lam - lon0 wrapped to [-pi, pi].
func relLon(lam, lon0 float64) float64 {
	return normalizeLongitude(lam - lon0)
}

func outOfDomain(what string, lam, phi float64) error {
	return kindErr(ErrOutOfDomain, "%s: lon %g lat %g", what, lam*180/math.Pi, phi*180/math.Pi)
}

// checkLatitude rejects latitudes outside [-pi/2, pi/2].
func checkLatitude(what string, lam, phi float64) error {
	if math.IsNaN(phi) || math.Abs(phi) > math.Pi/2+1e-12 {
		return outOfDomain(what, lam, phi)
	}
	return nil
}

// conformalTS returns Snyder's t function of the geodetic latitude.
func conformalTS(phi, e float64) float64 {
	s := e * math.Sin(phi)
	return math.Tan(math.Pi/4-phi/2) / math.Pow((1-s)/(1+s), e/2)
}

// phiFromTS inverts conformalTS by fixed point iteration.
func phiFromTS(ts, e float64) float64 {
	phi := math.Pi/2 - 2*math.Atan(ts)
	for i := 0; i < 30; i++ {
		s := e * math.Sin(phi)
		next := math.Pi/2 - 2*math.Atan(ts*math.Pow((1-s)/(1+s), e/2))
		if math.Abs(next-phi) < 1e-14 {
			return next
		}
		phi = next
	}
	return phi
}
