// Copyright 2023 The geokit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package srs

import "math"

// geodetic holds the ellipsoid constants needed to convert between
// geodetic and Earth-centred Earth-fixed coordinates.
type geodetic struct {
	a, b, es float64
}

func newGeodetic(e *ellipsoid) geodetic {
	return geodetic{a: e.a, b: e.b(), es: e.es()}
}

// toECEF converts longitude and latitude in radians and ellipsoidal
// height in metres to geocentric X, Y and Z in metres.
func (g geodetic) toECEF(lam, phi, h float64) (x, y, z float64) {
	sp, cp := math.Sincos(phi)
	sl, cl := math.Sincos(lam)
	n := g.a / math.Sqrt(1-g.es*sp*sp)
	x = (n + h) * cp * cl
	y = (n + h) * cp * sl
	z = (n*(1-g.es) + h) * sp
	return
}

// fromECEF converts geocentric coordinates to longitude, latitude and
// ellipsoidal height by iterating on the latitude.
func (g geodetic) fromECEF(x, y, z float64) (lam, phi, h float64) {
	p := math.Hypot(x, y)
	lam = math.Atan2(y, x)
	if p < 1e-9 {
		if z >= 0 {
			return lam, math.Pi / 2, z - g.b
		}
		return lam, -math.Pi / 2, -z - g.b
	}
	phi = math.Atan2(z, p*(1-g.es))
	for i := 0; i < 30; i++ {
		sp := math.Sin(phi)
		n := g.a / math.Sqrt(1-g.es*sp*sp)
		next := math.Atan2(z+g.es*n*sp, p)
		if math.Abs(next-phi) < 1e-14 {
			phi = next
			break
		}
		phi = next
	}
	sp, cp := math.Sincos(phi)
	h = p*cp + z*sp - g.a*math.Sqrt(1-g.es*sp*sp)
	return lam, phi, h
}
