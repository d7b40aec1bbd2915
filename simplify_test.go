// Copyright 2023 The geokit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package geokit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeometry_Simplify(t *testing.T) {
	testCases := []struct {
		name      string
		wkt       string
		tolerance float64
		want      string
	}{
		{"Straightens", "LINESTRING (0 0, 1 0.1, 2 0)", 0.5, "LINESTRING (0 0, 2 0)"},
		{"KeepsFarVertex", "LINESTRING (0 0, 1 0.1, 2 0)", 0.01, "LINESTRING (0 0, 1 0.1, 2 0)"},
		{"TwoPoints", "LINESTRING (0 0, 1 1)", 10, "LINESTRING (0 0, 1 1)"},
		{
			"Ring",
			"POLYGON ((0 0, 5 0.01, 10 0, 10 10, 0 10, 0 0))",
			0.1,
			"POLYGON ((0 0, 10 0, 10 10, 0 10, 0 0))",
		},
		{
			"CollapsedRingDropped",
			"POLYGON ((0 0, 10 0, 10 0.01, 0 0))",
			1,
			"POLYGON EMPTY",
		},
		{
			"CollapsedPolygonLeavesMulti",
			"MULTIPOLYGON (((0 0, 10 0, 10 0.01, 0 0)), ((0 5, 4 5, 4 9, 0 9, 0 5)))",
			1,
			"MULTIPOLYGON (((0 5, 4 5, 4 9, 0 9, 0 5)))",
		},
		{
			"Z",
			"LINESTRING Z (0 0 1, 1 0.1 2, 2 0 3)",
			0.5,
			"LINESTRING Z (0 0 1, 2 0 3)",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			g := mustWKT(t, testCase.wkt)
			s := g.Simplify(testCase.tolerance)

			assert.True(t, mustWKT(t, testCase.want).EqualsExact(s, 0), s.WKT())
			assert.True(t, mustWKT(t, testCase.wkt).EqualsExact(g, 0), "input modified")
		})
	}
}

func TestGeometry_SimplifyPreserveTopology(t *testing.T) {
	t.Run("AvoidsCrossing", func(t *testing.T) {
		g := mustWKT(t, "MULTILINESTRING ((0 0, 5 1, 10 0), (4 0.5, 6 -0.5))")
		require.True(t, g.IsSimple())

		s := g.Simplify(2)
		assert.Equal(t, 2, s.Geometry(0).NumPoints())
		assert.False(t, s.IsSimple())

		p := g.SimplifyPreserveTopology(2)
		assert.Equal(t, 3, p.Geometry(0).NumPoints())
		assert.True(t, p.IsSimple())
	})

	t.Run("KeepsRings", func(t *testing.T) {
		g := mustWKT(t, "POLYGON ((0 0, 10 0, 10 0.01, 0 0))")
		p := g.SimplifyPreserveTopology(1)

		assert.True(t, g.EqualsExact(p, 0), p.WKT())
	})

	t.Run("SimplifiesWhereSafe", func(t *testing.T) {
		g := mustWKT(t, "LINESTRING (0 0, 1 0.1, 2 0, 3 5)")
		p := g.SimplifyPreserveTopology(0.5)

		assert.Equal(t, "LINESTRING (0 0, 2 0, 3 5)", p.WKT())
	})
}

func TestGeometry_Segmentize(t *testing.T) {
	testCases := []struct {
		name      string
		wkt       string
		maxLength float64
		want      string
	}{
		{"Splits", "LINESTRING (0 0, 10 0)", 3, "LINESTRING (0 0, 2.5 0, 5 0, 7.5 0, 10 0)"},
		{"ShortEnough", "LINESTRING (0 0, 1 0)", 3, "LINESTRING (0 0, 1 0)"},
		{"Z", "LINESTRING Z (0 0 0, 4 0 4)", 2, "LINESTRING Z (0 0 0, 2 0 2, 4 0 4)"},
		{"Ring", "POLYGON ((0 0, 2 0, 2 2, 0 0))", 1, "POLYGON ((0 0, 1 0, 2 0, 2 1, 2 2, 1.333333333333 1.333333333333, 0.666666666667 0.666666666667, 0 0))"},
		{"NonPositive", "LINESTRING (0 0, 10 0)", 0, "LINESTRING (0 0, 10 0)"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			g := mustWKT(t, testCase.wkt)
			g.Segmentize(testCase.maxLength)

			assert.True(t, mustWKT(t, testCase.want).EqualsExact(g, 1e-9), g.WKT())
		})
	}
}
