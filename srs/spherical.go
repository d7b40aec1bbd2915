// Copyright 2023 The geokit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package srs

import "math"

// equirectangular is the spherical Equidistant Cylindrical projection
// on a sphere of the ellipsoid's semi-major axis.
type equirectangular struct {
	projParams
}

func (q *equirectangular) forward(lam, phi float64) (float64, float64, error) {
	if err := checkLatitude("equirectangular", lam, phi); err != nil {
		return 0, 0, err
	}
	x := q.fe + q.a*relLon(lam, q.lon0)*math.Cos(q.sp1)
	y := q.fn + q.a*(phi-q.lat0)
	return x, y, nil
}

func (q *equirectangular) inverse(x, y float64) (float64, float64, error) {
	phi := (y-q.fn)/q.a + q.lat0
	lam := (x-q.fe)/(q.a*math.Cos(q.sp1)) + q.lon0
	if err := checkLatitude("equirectangular", lam, phi); err != nil {
		return 0, 0, err
	}
	return normalizeLongitude(lam), phi, nil
}

// orthographic is the spherical Orthographic projection. Points on the
// far hemisphere are outside its domain.
type orthographic struct {
	projParams
}

func (o *orthographic) forward(lam, phi float64) (float64, float64, error) {
	if err := checkLatitude("orthographic", lam, phi); err != nil {
		return 0, 0, err
	}
	dlam := relLon(lam, o.lon0)
	sp0, cp0 := math.Sincos(o.lat0)
	sp, cp := math.Sincos(phi)
	cosc := sp0*sp + cp0*cp*math.Cos(dlam)
	if cosc < -1e-10 {
		return 0, 0, outOfDomain("orthographic", lam, phi)
	}
	x := o.fe + o.a*cp*math.Sin(dlam)
	y := o.fn + o.a*(cp0*sp-sp0*cp*math.Cos(dlam))
	return x, y, nil
}

func (o *orthographic) inverse(x, y float64) (float64, float64, error) {
	dx, dy := x-o.fe, y-o.fn
	rho := math.Hypot(dx, dy)
	if rho > o.a*(1+1e-12) {
		return 0, 0, kindErr(ErrOutOfDomain, "orthographic: point (%g, %g) off the globe", x, y)
	}
	if rho < 1e-12 {
		return normalizeLongitude(o.lon0), o.lat0, nil
	}
	c := math.Asin(math.Min(rho/o.a, 1))
	sc, cc := math.Sincos(c)
	sp0, cp0 := math.Sincos(o.lat0)
	phi := math.Asin(math.Max(-1, math.Min(1, cc*sp0+dy*sc*cp0/rho)))
	lam := o.lon0 + math.Atan2(dx*sc, rho*cc*cp0-dy*sc*sp0)
	return normalizeLongitude(lam), phi, nil
}

// mollweide is the spherical Mollweide equal area projection.
type mollweide struct {
	projParams
}

func (m *mollweide) forward(lam, phi float64) (float64, float64, error) {
	if err := checkLatitude("mollweide", lam, phi); err != nil {
		return 0, 0, err
	}
	theta := mollweideTheta(phi)
	x := m.fe + 2*math.Sqrt2/math.Pi*m.a*relLon(lam, m.lon0)*math.Cos(theta)
	y := m.fn + math.Sqrt2*m.a*math.Sin(theta)
	return x, y, nil
}

// mollweideTheta solves 2t + sin(2t) = pi sin(phi) for t with Newton
// iteration.
func mollweideTheta(phi float64) float64 {
	if math.Abs(math.Abs(phi)-math.Pi/2) < 1e-12 {
		return phi
	}
	target := math.Pi * math.Sin(phi)
	t2 := phi
	for i := 0; i < 50; i++ {
		d := (t2 + math.Sin(t2) - target) / (1 + math.Cos(t2))
		t2 -= d
		if math.Abs(d) < 1e-14 {
			break
		}
	}
	return t2 / 2
}

func (m *mollweide) inverse(x, y float64) (float64, float64, error) {
	s := (y - m.fn) / (math.Sqrt2 * m.a)
	if math.Abs(s) > 1+1e-12 {
		return 0, 0, kindErr(ErrOutOfDomain, "mollweide: point (%g, %g) off the map", x, y)
	}
	theta := math.Asin(math.Max(-1, math.Min(1, s)))
	phi := math.Asin(math.Max(-1, math.Min(1, (2*theta+math.Sin(2*theta))/math.Pi)))
	ct := math.Cos(theta)
	if ct < 1e-12 {
		return normalizeLongitude(m.lon0), phi, nil
	}
	dlam := math.Pi * (x - m.fe) / (2 * math.Sqrt2 * m.a * ct)
	if math.Abs(dlam) > math.Pi+1e-10 {
		return 0, 0, kindErr(ErrOutOfDomain, "mollweide: point (%g, %g) off the map", x, y)
	}
	return normalizeLongitude(dlam + m.lon0), phi, nil
}
