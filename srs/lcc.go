// Copyright 2023 The geokit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package srs

import "math"

// lambert is the ellipsoidal Lambert Conformal Conic projection with
// one or two standard parallels.
type lambert struct {
	projParams
	n, f, rho0 float64
}

func lambertM(phi, es float64) float64 {
	s := math.Sin(phi)
	return math.Cos(phi) / math.Sqrt(1-es*s*s)
}

func newLambert(p projParams, twoSP bool) (*lambert, error) {
	l := &lambert{projParams: p}
	if twoSP {
		l.k0 = 1
		m1, t1 := lambertM(p.sp1, p.es), conformalTS(p.sp1, p.e)
		if math.Abs(p.sp1-p.sp2) < 1e-10 || !p.hasSP2 {
			l.n = math.Sin(p.sp1)
		} else {
			m2, t2 := lambertM(p.sp2, p.es), conformalTS(p.sp2, p.e)
			l.n = (math.Log(m1) - math.Log(m2)) / (math.Log(t1) - math.Log(t2))
		}
		l.f = m1 / (l.n * math.Pow(t1, l.n))
	} else {
		m0, t0 := lambertM(p.lat0, p.es), conformalTS(p.lat0, p.e)
		l.n = math.Sin(p.lat0)
		l.f = m0 / (l.n * math.Pow(t0, l.n))
	}
	if math.Abs(l.n) < 1e-10 || math.IsNaN(l.f) || math.IsInf(l.f, 0) {
		return nil, kindErr(ErrUnsupported, "lambert conformal conic with equatorial standard parallel")
	}
	l.rho0 = l.rho(p.lat0)
	return l, nil
}

func (l *lambert) rho(phi float64) float64 {
	if math.Abs(math.Abs(phi)-math.Pi/2) < 1e-12 {
		if phi*l.n > 0 {
			return 0
		}
		return math.Inf(1)
	}
	return l.a * l.f * l.k0 * math.Pow(conformalTS(phi, l.e), l.n)
}

func (l *lambert) forward(lam, phi float64) (float64, float64, error) {
	if err := checkLatitude("lambert conformal conic", lam, phi); err != nil {
		return 0, 0, err
	}
	rho := l.rho(phi)
	if math.IsInf(rho, 0) {
		return 0, 0, outOfDomain("lambert conformal conic", lam, phi)
	}
	theta := l.n * relLon(lam, l.lon0)
	return l.fe + rho*math.Sin(theta), l.fn + l.rho0 - rho*math.Cos(theta), nil
}

func (l *lambert) inverse(x, y float64) (float64, float64, error) {
	dx, dy := x-l.fe, l.rho0-(y-l.fn)
	sign := 1.0
	if l.n < 0 {
		sign = -1
	}
	rho := sign * math.Hypot(dx, dy)
	theta := math.Atan2(sign*dx, sign*dy)
	if rho == 0 {
		return normalizeLongitude(l.lon0), sign * math.Pi / 2, nil
	}
	ts := math.Pow(rho/(l.a*l.f*l.k0), 1/l.n)
	phi := phiFromTS(ts, l.e)
	return normalizeLongitude(theta/l.n + l.lon0), phi, nil
}
