// Copyright 2023 The geokit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package srs

// helmert is a seven parameter similarity transformation in the
// position vector convention: translations in metres, rotations in
// arc-seconds, scale difference in parts per million.
type helmert struct {
	t [3]float64
	m [3][3]float64
	// inv is the inverse of m.
	inv [3][3]float64
}

func newHelmert(p [7]float64) helmert {
	rx, ry, rz := p[3]*arcSecond, p[4]*arcSecond, p[5]*arcSecond
	s := 1 + p[6]*1e-6
	h := helmert{
		t: [3]float64{p[0], p[1], p[2]},
		m: [3][3]float64{
			{s, -s * rz, s * ry},
			{s * rz, s, -s * rx},
			{-s * ry, s * rx, s},
		},
	}
	h.inv = invert3(h.m)
	return h
}

// forward maps a geocentric point on the source datum to WGS84.
func (h *helmert) forward(x, y, z float64) (float64, float64, float64) {
	m := &h.m
	return h.t[0] + m[0][0]*x + m[0][1]*y + m[0][2]*z,
		h.t[1] + m[1][0]*x + m[1][1]*y + m[1][2]*z,
		h.t[2] + m[2][0]*x + m[2][1]*y + m[2][2]*z
}

// inverse maps a geocentric WGS84 point to the source datum.
func (h *helmert) inverse(x, y, z float64) (float64, float64, float64) {
	x, y, z = x-h.t[0], y-h.t[1], z-h.t[2]
	m := &h.inv
	return m[0][0]*x + m[0][1]*y + m[0][2]*z,
		m[1][0]*x + m[1][1]*y + m[1][2]*z,
		m[2][0]*x + m[2][1]*y + m[2][2]*z
}

func invert3(m [3][3]float64) [3][3]float64 {
	c00 := m[1][1]*m[2][2] - m[1][2]*m[2][1]
	c01 := m[1][2]*m[2][0] - m[1][0]*m[2][2]
	c02 := m[1][0]*m[2][1] - m[1][1]*m[2][0]
	det := m[0][0]*c00 + m[0][1]*c01 + m[0][2]*c02
	return [3][3]float64{
		{c00 / det, (m[0][2]*m[2][1] - m[0][1]*m[2][2]) / det, (m[0][1]*m[1][2] - m[0][2]*m[1][1]) / det},
		{c01 / det, (m[0][0]*m[2][2] - m[0][2]*m[2][0]) / det, (m[0][2]*m[1][0] - m[0][0]*m[1][2]) / det},
		{c02 / det, (m[0][1]*m[2][0] - m[0][0]*m[2][1]) / det, (m[0][0]*m[1][1] - m[0][1]*m[1][0]) / det},
	}
}
