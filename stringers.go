// Copyright 2023 The geokit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package geokit

import (
	"strconv"
	"strings"
)

var typeNames = map[Type]string{
	Unknown:            "Unknown",
	Point:              "Point",
	LineString:         "LineString",
	Polygon:            "Polygon",
	MultiPoint:         "MultiPoint",
	MultiLineString:    "MultiLineString",
	MultiPolygon:       "MultiPolygon",
	GeometryCollection: "GeometryCollection",
	None:               "None",
	LinearRing:         "LinearRing",
}

// String returns the type name, with a "25D" suffix if the 25D bit is
// set, for example "Polygon25D". Unknown codes are formatted as
// "Type(n)".
func (t Type) String() string {
	s, ok := typeNames[t.Flatten()]
	if !ok {
		return "Type(" + strconv.FormatUint(uint64(t), 10) + ")"
	}
	if t.Is25D() {
		s += "25D"
	}
	return s
}

func (l Location) String() string {
	switch l {
	case Interior:
		return "Interior"
	case Boundary:
		return "Boundary"
	case Exterior:
		return "Exterior"
	default:
		return "Location(" + strconv.Itoa(int(l)) + ")"
	}
}

// String returns the WKT of the geometry.
func (g *Geometry) String() string {
	return g.WKT()
}

func (c Coord) String() string {
	var b strings.Builder
	b.WriteByte('(')
	b.WriteString(formatNumber(c.X))
	b.WriteByte(' ')
	b.WriteString(formatNumber(c.Y))
	if c.Z != 0 {
		b.WriteByte(' ')
		b.WriteString(formatNumber(c.Z))
	}
	b.WriteByte(')')
	return b.String()
}

// formatNumber renders a float as the shortest decimal that reads back
// exactly, without an exponent for ordinary magnitudes.
func formatNumber(f float64) string {
	if f == 0 {
		return "0"
	}
	a := f
	if a < 0 {
		a = -a
	}
	if a >= 1e-6 && a < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
