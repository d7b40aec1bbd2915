// Copyright 2023 The geokit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package srs

import "math"

// transverseMercator is the ellipsoidal Transverse Mercator projection
// using the Krueger series in the third flattening, carried to sixth
// order.
type transverseMercator struct {
	projParams
	// ak0 is the rectifying radius times the scale factor.
	ak0   float64
	alpha [6]float64
	beta  [6]float64
	// y0 is the unscaled northing of the latitude of origin.
	y0 float64
}

func newTransverseMercator(p projParams) *transverseMercator {
	f := 1 - math.Sqrt(1-p.es)
	n := f / (2 - f)
	n2 := n * n
	n3 := n2 * n
	n4 := n3 * n
	n5 := n4 * n
	n6 := n5 * n
	t := &transverseMercator{projParams: p}
	t.ak0 = p.k0 * p.a / (1 + n) * (1 + n2/4 + n4/64 + n6/256)
	t.alpha = [6]float64{
		n/2 - 2*n2/3 + 5*n3/16 + 41*n4/180 - 127*n5/288 + 7891*n6/37800,
		13*n2/48 - 3*n3/5 + 557*n4/1440 + 281*n5/630 - 1983433*n6/1935360,
		61*n3/240 - 103*n4/140 + 15061*n5/26880 + 167603*n6/181440,
		49561*n4/161280 - 179*n5/168 + 6601661*n6/7257600,
		34729*n5/80640 - 3418889*n6/1995840,
		212378941 * n6 / 319334400,
	}
	t.beta = [6]float64{
		n/2 - 2*n2/3 + 37*n3/96 - n4/360 - 81*n5/512 + 96199*n6/604800,
		n2/48 + n3/15 - 437*n4/1440 + 46*n5/105 - 1118711*n6/3870720,
		17*n3/480 - 37*n4/840 - 209*n5/4480 + 5569*n6/90720,
		4397*n4/161280 - 11*n5/504 - 830251*n6/7257600,
		4583*n5/161280 - 108847*n6/3991680,
		20648693 * n6 / 638668800,
	}
	_, t.y0 = t.series(0, p.lat0)
	return t
}

// series returns the unscaled easting and northing of a point at
// longitude dlam from the central meridian.
func (t *transverseMercator) series(dlam, phi float64) (float64, float64) {
	tau := math.Sinh(math.Atanh(math.Sin(phi)) - t.e*math.Atanh(t.e*math.Sin(phi)))
	xi := math.Atan2(tau, math.Cos(dlam))
	eta := math.Atanh(math.Sin(dlam) / math.Sqrt(1+tau*tau))
	x, y := eta, xi
	for j, a := range t.alpha {
		k := 2 * float64(j+1)
		x += a * math.Cos(k*xi) * math.Sinh(k*eta)
		y += a * math.Sin(k*xi) * math.Cosh(k*eta)
	}
	return x, y
}

func (t *transverseMercator) forward(lam, phi float64) (float64, float64, error) {
	if err := checkLatitude("transverse mercator", lam, phi); err != nil {
		return 0, 0, err
	}
	dlam := relLon(lam, t.lon0)
	if math.Abs(dlam) >= math.Pi/2 {
		return 0, 0, outOfDomain("transverse mercator", lam, phi)
	}
	x, y := t.series(dlam, phi)
	return t.fe + t.ak0*x, t.fn + t.ak0*(y-t.y0), nil
}

func (t *transverseMercator) inverse(x, y float64) (float64, float64, error) {
	eta := (x - t.fe) / t.ak0
	xi := (y-t.fn)/t.ak0 + t.y0
	xip, etap := xi, eta
	for j, b := range t.beta {
		k := 2 * float64(j+1)
		xip -= b * math.Sin(k*xi) * math.Cosh(k*eta)
		etap -= b * math.Cos(k*xi) * math.Sinh(k*eta)
	}
	if math.IsNaN(xip) || math.IsInf(etap, 0) || math.IsNaN(etap) {
		return 0, 0, outOfDomain("transverse mercator", x, y)
	}
	chi := math.Asin(math.Sin(xip) / math.Cosh(etap))
	phi := phiFromTS(math.Tan(math.Pi/4-chi/2), t.e)
	lam := normalizeLongitude(t.lon0 + math.Atan2(math.Sinh(etap), math.Cos(xip)))
	return lam, phi, nil
}
