// Copyright 2023 The geokit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package srs

import "math"

// mercator is the normal aspect Mercator projection. The pseudo
// variant applies the spherical formulas to ellipsoidal coordinates,
// as web maps do.
type mercator struct {
	projParams
	pseudo bool
}

func newMercator(p projParams, pseudo bool) *mercator {
	if pseudo {
		p.e, p.es, p.k0 = 0, 0, 1
	}
	return &mercator{projParams: p, pseudo: pseudo}
}

func (m *mercator) forward(lam, phi float64) (float64, float64, error) {
	if math.IsNaN(phi) || math.Abs(phi) >= math.Pi/2-1e-12 {
		return 0, 0, outOfDomain("mercator", lam, phi)
	}
	x := m.fe + m.a*m.k0*relLon(lam, m.lon0)
	y := m.fn - m.a*m.k0*math.Log(conformalTS(phi, m.e))
	return x, y, nil
}

func (m *mercator) inverse(x, y float64) (float64, float64, error) {
	ts := math.Exp(-(y - m.fn) / (m.a * m.k0))
	phi := phiFromTS(ts, m.e)
	lam := normalizeLongitude((x-m.fe)/(m.a*m.k0) + m.lon0)
	return lam, phi, nil
}
