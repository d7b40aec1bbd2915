// Copyright 2023 The geokit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package geokit_test

import (
	"encoding/hex"
	"fmt"

	"github.com/gogama/geokit"
	"github.com/gogama/geokit/srs"
)

func ExampleFromWKT() {
	g, err := geokit.FromWKT("POLYGON ((0 0, 4 0, 4 4, 0 4, 0 0), (1 1, 2 1, 2 2, 1 2, 1 1))")
	if err != nil {
		panic(err)
	}
	fmt.Println(g.Type(), g.NumInteriorRings())
	fmt.Println(g.Area(), g.Length())

	// Output: Polygon 1
	// 15 20
}

func ExampleGeometry_Relate() {
	a, _ := geokit.FromWKT("POLYGON ((0 0, 1 0, 1 1, 0 1, 0 0))")
	b, _ := geokit.FromWKT("POLYGON ((1 0, 2 0, 2 1, 1 1, 1 0))")

	m, err := a.Relate(b)
	if err != nil {
		panic(err)
	}
	touches, _ := a.Touches(b)
	fmt.Println(m, touches)

	// Output: FF2F11212 true
}

func ExampleGeometry_Intersection() {
	a, _ := geokit.FromWKT("POLYGON ((0 0, 2 0, 2 2, 0 2, 0 0))")
	b, _ := geokit.FromWKT("POLYGON ((1 1, 3 1, 3 3, 1 3, 1 1))")

	i, err := a.Intersection(b)
	if err != nil {
		panic(err)
	}
	u, err := a.Union(b)
	if err != nil {
		panic(err)
	}
	fmt.Println(i.Type(), i.Area())
	fmt.Println(u.Type(), u.Area())

	// Output: Polygon 1
	// Polygon 7
}

func ExampleGeometry_TransformTo() {
	wgs84, _ := srs.FromEPSG(4326)
	utm, _ := srs.FromEPSG(32631)

	g := geokit.NewPoint(3, 0)
	g.AssignSRS(wgs84)
	if err := g.TransformTo(utm); err != nil {
		panic(err)
	}
	fmt.Printf("%.3f %.3f %s\n", g.X(), g.Y(), g.SRS().Name())

	// Output: 500000.000 0.000 WGS 84 / UTM zone 31N
}

func ExampleGeometry_WKB() {
	b, err := geokit.NewPointZ(1, 2, 3).WKB(geokit.NDR, geokit.WKBVariantISO)
	if err != nil {
		panic(err)
	}
	fmt.Println(hex.EncodeToString(b))

	// Output: 01e9030000000000000000f03f00000000000000400000000000000840
}

func ExampleGeometry_GeodesicLength() {
	wgs84, _ := srs.FromEPSG(4326)
	g, _ := geokit.FromWKT("LINESTRING (0 0, 90 0)")
	g.AssignSRS(wgs84)

	l, err := g.GeodesicLength()
	if err != nil {
		panic(err)
	}
	fmt.Printf("%.0f km\n", l/1000)

	// Output: 10008 km
}

func ExampleGeometry_Buffer() {
	g := geokit.NewPoint(0, 0)

	b, err := g.Buffer(1, 1)
	if err != nil {
		panic(err)
	}
	fmt.Printf("%s %d %.3f\n", b.Type(), b.ExteriorRing().NumPoints(), b.Area())

	// Output: Polygon 5 2.000
}
