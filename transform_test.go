// Copyright 2023 The geokit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package geokit

import (
	"testing"

	"github.com/gogama/geokit/srs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustEPSG(t *testing.T, code int) *srs.SpatialReference {
	ref, err := srs.FromEPSG(code)
	require.NoError(t, err)
	return ref
}

func TestGeometry_Transform(t *testing.T) {
	wgs84, mercator := mustEPSG(t, 4326), mustEPSG(t, 3857)
	tr, err := srs.NewTransformation(wgs84, mercator)
	require.NoError(t, err)

	t.Run("Polygon", func(t *testing.T) {
		g := mustWKT(t, "POLYGON ((0 0, 180 0, 180 10, 0 0))")
		g.AssignSRS(wgs84)

		require.NoError(t, g.Transform(tr))

		assert.Same(t, mercator, g.SRS())
		assert.Same(t, mercator, g.ExteriorRing().SRS())
		assert.InDelta(t, 20037508.342789244, g.ExteriorRing().Point(1).X, 1e-6)
		assert.Equal(t, 0.0, g.ExteriorRing().Point(1).Y)
		assert.Greater(t, g.ExteriorRing().Point(2).Y, 1e6)
	})

	t.Run("KeepsZ", func(t *testing.T) {
		g := NewPointZ(0, 0, 42)
		require.NoError(t, g.Transform(tr))
		assert.Equal(t, 42.0, g.Z())
		assert.Equal(t, 3, g.CoordinateDimension())

		g = NewPoint(0, 0)
		require.NoError(t, g.Transform(tr))
		assert.Equal(t, 0.0, g.Z())
		assert.Equal(t, 2, g.CoordinateDimension())
	})

	t.Run("AllOrNothing", func(t *testing.T) {
		g := mustWKT(t, "MULTIPOINT ((10 10), (20 100))")
		g.AssignSRS(wgs84)

		err := g.Transform(tr)

		assert.ErrorIs(t, err, srs.ErrOutOfDomain)
		assert.True(t, mustWKT(t, "MULTIPOINT ((10 10), (20 100))").EqualsExact(g, 0), g.WKT())
		assert.Same(t, wgs84, g.SRS())
	})

	t.Run("Empty", func(t *testing.T) {
		g := Create(GeometryCollection)
		require.NoError(t, g.Transform(tr))
		assert.Same(t, mercator, g.SRS())
	})

	t.Run("NilTransformation", func(t *testing.T) {
		assert.PanicsWithValue(t, "geokit: nil transformation", func() {
			_ = NewPoint(0, 0).Transform(nil)
		})
	})
}

func TestGeometry_TransformTo(t *testing.T) {
	wgs84, utm := mustEPSG(t, 4326), mustEPSG(t, 32631)

	t.Run("RoundTrip", func(t *testing.T) {
		g := mustWKT(t, "LINESTRING (3 0, 3.5 45.25)")
		g.AssignSRS(wgs84)

		require.NoError(t, g.TransformTo(utm))
		assert.InDelta(t, 500000, g.Point(0).X, 1e-6)
		assert.InDelta(t, 0, g.Point(0).Y, 1e-6)

		require.NoError(t, g.TransformTo(wgs84))
		assert.True(t, mustWKT(t, "LINESTRING (3 0, 3.5 45.25)").EqualsExact(g, 1e-8), g.WKT())
		assert.Same(t, wgs84, g.SRS())
	})

	t.Run("MissingReference", func(t *testing.T) {
		g := NewPoint(1, 2)
		err := g.TransformTo(utm)

		assert.ErrorIs(t, err, ErrMissingReference)
		assert.Equal(t, 1.0, g.X())
	})

	t.Run("Incompatible", func(t *testing.T) {
		local, err := srs.FromWKT(`LOCAL_CS["Site grid",LOCAL_DATUM["Site",32767],UNIT["metre",1],AXIS["X",EAST],AXIS["Y",NORTH]]`)
		require.NoError(t, err)
		g := NewPoint(1, 2)
		g.AssignSRS(wgs84)

		err = g.TransformTo(local)

		assert.ErrorIs(t, err, srs.ErrIncompatibleReference)
		assert.Same(t, wgs84, g.SRS())
	})}
