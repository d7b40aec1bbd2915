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

func TestGeometry_Overlay(t *testing.T) {
	const (
		a = "POLYGON ((0 0, 2 0, 2 2, 0 2, 0 0))"
		b = "POLYGON ((1 1, 3 1, 3 3, 1 3, 1 1))"
	)
	testCases := []struct {
		name       string
		a, b       string
		op         func(g, o *Geometry) (*Geometry, error)
		wantType   Type
		wantArea   float64
		wantLength float64
		wantEmpty  bool
	}{
		{"Intersection", a, b, (*Geometry).Intersection, Polygon, 1, 4, false},
		{"Union", a, b, (*Geometry).Union, Polygon, 7, 12, false},
		{"Difference", a, b, (*Geometry).Difference, Polygon, 3, 8, false},
		{"DifferenceReversed", b, a, (*Geometry).Difference, Polygon, 3, 8, false},
		{
			name:     "UnionAdjacent",
			a:        "POLYGON ((0 0, 1 0, 1 1, 0 1, 0 0))",
			b:        "POLYGON ((1 0, 2 0, 2 1, 1 1, 1 0))",
			op:       (*Geometry).Union,
			wantType: Polygon, wantArea: 2, wantLength: 6,
		},
		{
			name:     "UnionDisjoint",
			a:        "POLYGON ((0 0, 1 0, 1 1, 0 1, 0 0))",
			b:        "POLYGON ((5 5, 6 5, 6 6, 5 6, 5 5))",
			op:       (*Geometry).Union,
			wantType: MultiPolygon, wantArea: 2, wantLength: 8,
		},
		{
			name:      "IntersectionDisjoint",
			a:         "POLYGON ((0 0, 1 0, 1 1, 0 1, 0 0))",
			b:         "POLYGON ((5 5, 6 5, 6 6, 5 6, 5 5))",
			op:        (*Geometry).Intersection,
			wantType:  Polygon,
			wantEmpty: true,
		},
		{
			name:     "DifferenceMakesHole",
			a:        "POLYGON ((0 0, 4 0, 4 4, 0 4, 0 0))",
			b:        "POLYGON ((1 1, 3 1, 3 3, 1 3, 1 1))",
			op:       (*Geometry).Difference,
			wantType: Polygon, wantArea: 12, wantLength: 24,
		},
		{
			name:     "LineClippedByPolygon",
			a:        "LINESTRING (-1 0.5, 2 0.5)",
			b:        "POLYGON ((0 0, 1 0, 1 1, 0 1, 0 0))",
			op:       (*Geometry).Intersection,
			wantType: LineString, wantLength: 1,
		},
		{
			name:     "LineMinusPolygon",
			a:        "LINESTRING (-1 0.5, 2 0.5)",
			b:        "POLYGON ((0 0, 1 0, 1 1, 0 1, 0 0))",
			op:       (*Geometry).Difference,
			wantType: MultiLineString, wantLength: 2,
		},
		{
			name:     "PointInPolygon",
			a:        "POINT (0.5 0.5)",
			b:        "POLYGON ((0 0, 1 0, 1 1, 0 1, 0 0))",
			op:       (*Geometry).Intersection,
			wantType: Point,
		},
		{
			name:      "PointOutsidePolygon",
			a:         "POINT (5 5)",
			b:         "POLYGON ((0 0, 1 0, 1 1, 0 1, 0 0))",
			op:        (*Geometry).Intersection,
			wantType:  Point,
			wantEmpty: true,
		},
		{
			name:     "UnionPointAndPolygon",
			a:        "POINT (5 5)",
			b:        "POLYGON ((0 0, 1 0, 1 1, 0 1, 0 0))",
			op:       (*Geometry).Union,
			wantType: GeometryCollection, wantArea: 1, wantLength: 4,
		},
		{
			name:      "BothEmpty",
			a:         "POINT EMPTY",
			b:         "POLYGON EMPTY",
			op:        (*Geometry).Union,
			wantType:  Polygon,
			wantEmpty: true,
		},
		{
			name:     "UnionWithEmpty",
			a:        "POLYGON EMPTY",
			b:        "POLYGON ((0 0, 1 0, 1 1, 0 1, 0 0))",
			op:       (*Geometry).Union,
			wantType: Polygon, wantArea: 1, wantLength: 4,
		},
		{
			name:     "DifferenceWithEmpty",
			a:        "POLYGON ((0 0, 1 0, 1 1, 0 1, 0 0))",
			b:        "LINESTRING EMPTY",
			op:       (*Geometry).Difference,
			wantType: Polygon, wantArea: 1, wantLength: 4,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			g, o := mustWKT(t, testCase.a), mustWKT(t, testCase.b)
			r, err := testCase.op(g, o)

			require.NoError(t, err)
			assert.Equal(t, testCase.wantType, r.Type(), r.WKT())
			assert.Equal(t, testCase.wantEmpty, r.IsEmpty())
			assert.InDelta(t, testCase.wantArea, r.Area(), 1e-9)
			assert.InDelta(t, testCase.wantLength, r.Length(), 1e-9)
			assert.True(t, r.IsValid(), r.WKT())
		})
	}
}

func TestGeometry_SymDifference(t *testing.T) {
	a := mustWKT(t, "POLYGON ((0 0, 2 0, 2 2, 0 2, 0 0))")
	b := mustWKT(t, "POLYGON ((1 1, 3 1, 3 3, 1 3, 1 1))")

	r, err := a.SymDifference(b)
	require.NoError(t, err)
	assert.InDelta(t, 6, r.Area(), 1e-9)

	// The symmetric difference is the union minus the intersection.
	u, err := a.Union(b)
	require.NoError(t, err)
	i, err := a.Intersection(b)
	require.NoError(t, err)
	d, err := u.Difference(i)
	require.NoError(t, err)
	eq, err := r.Equals(d)
	require.NoError(t, err)
	assert.True(t, eq)
}

func TestGeometry_OverlayKeepsFirstReference(t *testing.T) {
	ref, err := srs.FromEPSG(32633)
	require.NoError(t, err)
	a := mustWKT(t, "POLYGON Z ((0 0 1, 2 0 1, 2 2 1, 0 2 1, 0 0 1))")
	a.AssignSRS(ref)
	b := mustWKT(t, "POLYGON ((1 1, 3 1, 3 3, 1 3, 1 1))")
	b.AssignSRS(ref)

	r, err := a.Intersection(b)
	require.NoError(t, err)
	assert.Same(t, ref, r.SRS())
	assert.Same(t, ref, r.ExteriorRing().SRS())
	assert.Equal(t, 3, r.CoordinateDimension())
}

func TestGeometry_OverlayAgreesWithPredicates(t *testing.T) {
	shapes := []string{
		"POLYGON ((0 0, 2 0, 2 2, 0 2, 0 0))",
		"POLYGON ((1 1, 3 1, 3 3, 1 3, 1 1))",
		"POLYGON ((2 0, 4 0, 4 2, 2 2, 2 0))",
		"POLYGON ((10 10, 11 10, 11 11, 10 10))",
		"LINESTRING (-1 1, 5 1)",
		"POINT (1 1)",
	}

	for _, sa := range shapes {
		for _, sb := range shapes {
			t.Run(sa+"/"+sb, func(t *testing.T) {
				a, b := mustWKT(t, sa), mustWKT(t, sb)
				r, err := a.Intersection(b)
				require.NoError(t, err)
				intersects, err := a.Intersects(b)
				require.NoError(t, err)

				assert.Equal(t, intersects, !r.IsEmpty(), r.WKT())
			})
		}
	}
}
