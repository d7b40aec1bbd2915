// Copyright 2023 The geokit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package geokit

import (
	"testing"

	geojson "github.com/paulmach/go.geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeometry_Object(t *testing.T) {
	t.Run("Point", func(t *testing.T) {
		o := NewPointZ(1, 2, 3).Object()

		assert.Equal(t, geojson.GeometryPoint, o.Type)
		assert.Equal(t, []float64{1, 2, 3}, o.Point)
	})

	t.Run("Polygon", func(t *testing.T) {
		o := mustWKT(t, "POLYGON ((0 0, 2 0, 2 2, 0 0), (0.5 0.25, 1 0.25, 1 0.5, 0.5 0.25))").Object()

		assert.Equal(t, geojson.GeometryPolygon, o.Type)
		require.Len(t, o.Polygon, 2)
		assert.Equal(t, []float64{2, 2}, o.Polygon[0][2])
		assert.Equal(t, []float64{0.5, 0.25}, o.Polygon[1][0])
	})

	t.Run("LinearRing", func(t *testing.T) {
		o := NewLinearRing(square(0, 0, 1)...).Object()

		assert.Equal(t, geojson.GeometryLineString, o.Type)
		assert.Len(t, o.LineString, 5)
	})

	t.Run("Collection", func(t *testing.T) {
		o := mustWKT(t, "GEOMETRYCOLLECTION (POINT (1 2), MULTILINESTRING ((0 0, 1 1)))").Object()

		assert.Equal(t, geojson.GeometryCollection, o.Type)
		require.Len(t, o.Geometries, 2)
		assert.Equal(t, geojson.GeometryMultiLineString, o.Geometries[1].Type)
	})
}

func TestObject_RoundTrip(t *testing.T) {
	for _, s := range sampleWKT {
		t.Run(s, func(t *testing.T) {
			g := mustWKT(t, s)
			h, err := FromObject(g.Object())

			require.NoError(t, err)
			assert.True(t, g.EqualsExact(h, 0), h.WKT())
		})
	}
}

func TestFromObject(t *testing.T) {
	t.Run("Encoded", func(t *testing.T) {
		o, err := geojson.UnmarshalGeometry([]byte(`{"type":"MultiPoint","coordinates":[[1,2],[3,4,5]]}`))
		require.NoError(t, err)

		g, err := FromObject(o)
		require.NoError(t, err)
		assert.Equal(t, MultiPoint, g.Type())
		assert.Equal(t, 3, g.CoordinateDimension())
		assert.Equal(t, 5.0, g.Geometry(1).Z())
	})

	t.Run("Errors", func(t *testing.T) {
		testCases := []*geojson.Geometry{
			geojson.NewPointGeometry([]float64{1}),
			geojson.NewLineStringGeometry([][]float64{{0, 0}, {1}}),
			geojson.NewCollectionGeometry(geojson.NewMultiPointGeometry([]float64{})),
			{Type: "Banana"},
		}

		for _, testCase := range testCases {
			_, err := FromObject(testCase)
			assert.ErrorIs(t, err, ErrParse)
		}
	})

	t.Run("Nil", func(t *testing.T) {
		assert.PanicsWithValue(t, "geokit: nil object", func() {
			_, _ = FromObject(nil)
		})
	})
}
