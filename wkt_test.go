// Copyright 2023 The geokit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package geokit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleWKT holds one geometry of each kind, in two and three
// dimensions, for the codec round trip tests.
var sampleWKT = []string{
	"POINT (1 2)",
	"POINT Z (1 2 3)",
	"POINT (-122.4194 37.7749)",
	"LINESTRING (0 0, 1 1, 2 0.5)",
	"LINESTRING Z (0 0 0, 1 1 1, 2 0.5 -3)",
	"LINESTRING EMPTY",
	"POLYGON ((0 0, 10 0, 10 10, 0 10, 0 0))",
	"POLYGON ((0 0, 10 0, 10 10, 0 10, 0 0), (2 2, 4 2, 4 4, 2 2))",
	"POLYGON Z ((0 0 1, 10 0 2, 10 10 3, 0 0 1))",
	"POLYGON EMPTY",
	"MULTIPOINT ((1 2), (3 4))",
	"MULTIPOINT Z ((1 2 3), (4 5 6))",
	"MULTILINESTRING ((0 0, 1 1), (2 2, 3 3, 4 2))",
	"MULTILINESTRING Z ((0 0 1, 1 1 1), (2 2 2, 3 3 3))",
	"MULTIPOLYGON (((0 0, 1 0, 1 1, 0 0)), ((5 5, 6 5, 6 6, 5 5), (5.2 5.1, 5.8 5.1, 5.8 5.7, 5.2 5.1)))",
	"MULTIPOLYGON Z (((0 0 5, 1 0 5, 1 1 5, 0 0 5)))",
	"MULTIPOLYGON EMPTY",
	"GEOMETRYCOLLECTION (POINT (1 2), LINESTRING (0 0, 1 1), POLYGON ((0 0, 1 0, 1 1, 0 0)))",
	"GEOMETRYCOLLECTION (MULTIPOINT ((0 0)), GEOMETRYCOLLECTION (POINT (5 5)))",
	"GEOMETRYCOLLECTION EMPTY",
}

func TestFromWKT(t *testing.T) {
	testCases := []struct {
		wkt      string
		wantType Type
		wantDim  int
		wantNum  int
	}{
		{"POINT (1 2)", Point, 2, 1},
		{"POINT Z (1 2 3)", Point, 3, 1},
		{"  LINESTRING (0 0, 1 1)  ", LineString, 2, 2},
		{"LINEARRING (0 0, 1 0, 1 1, 0 0)", LinearRing, 2, 4},
		{"LinearRing Z (0 0 1, 1 0 1, 1 1 1, 0 0 1)", LinearRing, 3, 4},
	}

	for _, testCase := range testCases {
		t.Run(testCase.wkt, func(t *testing.T) {
			g := mustWKT(t, testCase.wkt)

			assert.Equal(t, testCase.wantType, g.Type())
			assert.Equal(t, testCase.wantDim, g.CoordinateDimension())
			assert.Equal(t, testCase.wantNum, g.NumPoints())
		})
	}

	t.Run("LooseRings", func(t *testing.T) {
		testCases := []struct {
			name      string
			wkt       string
			wantRings []int
		}{
			{"Unclosed", "POLYGON ((0 0, 1 0, 1 1))", []int{3}},
			{"ClosedShort", "POLYGON ((0 0, 1 0, 0 0))", []int{3}},
			{"SinglePoint", "POLYGON ((5 5))", []int{1}},
			{"UnclosedZ", "POLYGON Z ((0 0 1, 1 0 1, 1 1 1, 0 1 2))", []int{4}},
			{"Hole", "POLYGON ((0 0, 4 0, 4 4, 0 4, 0 0), (1 1, 2 1, 2 2))", []int{5, 3}},
			{"Multi", "MULTIPOLYGON (((0 0, 1 0, 1 1)), ((5 5, 6 5, 6 6, 5 5)))", []int{3, 4}},
			{
				"Collection",
				"GEOMETRYCOLLECTION (POINT (1e3 2), POLYGON EMPTY, POLYGON ((0 0, 1 0)), MULTIPOLYGON (((0 0, 2 0, 2 2))))",
				[]int{2, 3},
			},
		}

		for _, testCase := range testCases {
			t.Run(testCase.name, func(t *testing.T) {
				g := mustWKT(t, testCase.wkt)

				var rings []int
				var walk func(g *Geometry)
				walk = func(g *Geometry) {
					if g.Type() == Polygon {
						for _, r := range g.parts {
							rings = append(rings, r.NumPoints())
						}
						return
					}
					for _, p := range g.parts {
						walk(p)
					}
				}
				walk(g)
				assert.Equal(t, testCase.wantRings, rings)

				h, err := FromWKT(g.WKT())
				require.NoError(t, err)
				assert.True(t, g.EqualsExact(h, 0), h.WKT())
			})
		}

		t.Run("ConstructedRoundTrip", func(t *testing.T) {
			g := NewPolygon([]Coord{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}})
			assert.Equal(t, "POLYGON ((0 0, 1 0, 1 1))", g.WKT())

			h, err := FromWKT(g.WKT())
			require.NoError(t, err)
			assert.True(t, g.EqualsExact(h, 0), h.WKT())
			assert.False(t, h.IsValid())

			h.CloseRings()
			assert.Equal(t, "POLYGON ((0 0, 1 0, 1 1, 0 0))", h.WKT())
		})
	})

	t.Run("Errors", func(t *testing.T) {
		for _, s := range []string{
			"",
			"POINT",
			"POINT (1)",
			"CIRCLE (1 2, 3)",
			"LINESTRING (0 0, 1 1",
			"POLYGON ((a b, c d))",
		} {
			_, err := FromWKT(s)
			assert.ErrorIs(t, err, ErrParse, s)
		}
	})
}

func TestGeometry_WKT(t *testing.T) {
	testCases := []struct {
		g    *Geometry
		want string
	}{
		{NewPoint(1, 2), "POINT (1 2)"},
		{NewPointZ(1, 2, 3), "POINT Z (1 2 3)"},
		{Create(Point), "POINT EMPTY"},
		{NewLineString(Coord{X: 0, Y: 0}, Coord{X: 1.5, Y: -2}), "LINESTRING (0 0, 1.5 -2)"},
		{NewLinearRing(square(0, 0, 1)...), "LINEARRING (0 0, 1 0, 1 1, 0 1, 0 0)"},
		{NewPolygon(square(0, 0, 1)), "POLYGON ((0 0, 1 0, 1 1, 0 1, 0 0))"},
		{Create(Polygon), "POLYGON EMPTY"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.want, func(t *testing.T) {
			assert.Equal(t, testCase.want, testCase.g.WKT())
			assert.Equal(t, testCase.want, testCase.g.String())
		})
	}
}

func TestWKT_RoundTrip(t *testing.T) {
	for _, s := range sampleWKT {
		t.Run(s, func(t *testing.T) {
			g := mustWKT(t, s)
			h, err := FromWKT(g.WKT())

			require.NoError(t, err)
			assert.True(t, g.EqualsExact(h, 0), h.WKT())
		})
	}

	t.Run("LinearRing", func(t *testing.T) {
		g := NewLinearRing(Coord{X: 0, Y: 0, Z: 1}, Coord{X: 1, Y: 0, Z: 1}, Coord{X: 0, Y: 1, Z: 1}, Coord{X: 0, Y: 0, Z: 1})
		h, err := FromWKT(g.WKT())

		require.NoError(t, err)
		assert.True(t, g.EqualsExact(h, 0), h.WKT())
	})
}
