// Copyright 2023 The geokit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package srs_test

import (
	"fmt"
	"github.com/gogama/geokit/srs"
)

func ExampleFromEPSG() {
	r, err := srs.FromEPSG(32633)
	if err != nil {
		panic(err)
	}
	p4, err := r.Proj4()
	if err != nil {
		panic(err)
	}
	fmt.Println(r.Name())
	fmt.Println(p4)

	// Output: WGS 84 / UTM zone 33N
	// +proj=utm +zone=33 +datum=WGS84 +units=m +no_defs
}

func ExampleNewTransformation() {
	src, _ := srs.FromEPSG(4326)
	dst, _ := srs.FromEPSG(32631)
	t, err := srs.NewTransformation(src, dst)
	if err != nil {
		panic(err)
	}

	p, err := t.TransformPoint(3, 0, 0)
	if err != nil {
		panic(err)
	}
	fmt.Printf("%.3f %.3f\n", p.X, p.Y)

	// Output: 500000.000 0.000
}

func ExampleFromUserInput() {
	r, err := srs.FromUserInput("urn:ogc:def:crs:EPSG::4326")
	if err != nil {
		panic(err)
	}
	fmt.Println(r.AxisOrderSwapped(), r.AuthorityCode(""))

	// Output: true 4326
}

func ExampleSpatialReference_MorphToESRI() {
	r, _ := srs.FromEPSG(4326)
	r.MorphToESRI()
	fmt.Println(r.PrettyWKT(false))

	// Output: GEOGCS["GCS_WGS_1984",
	//     DATUM["D_WGS_1984",
	//         SPHEROID["WGS_1984",6378137,298.257223563]],
	//     PRIMEM["Greenwich",0],
	//     UNIT["Degree",0.0174532925199433]]
}
