// Copyright 2023 The geokit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package geokit

import (
	"encoding/json"
	"testing"

	"github.com/gogama/geokit/srs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeometry_JSON(t *testing.T) {
	testCases := []struct {
		name string
		g    *Geometry
		want string
	}{
		{
			name: "Point",
			g:    NewPoint(1, 2),
			want: `{"type":"Point","coordinates":[1,2]}`,
		},
		{
			name: "PointZ",
			g:    NewPointZ(1, 2, 3),
			want: `{"type":"Point","coordinates":[1,2,3]}`,
		},
		{
			name: "LinearRing",
			g:    NewLinearRing(Coord{X: 0, Y: 0}, Coord{X: 1, Y: 0}, Coord{X: 1, Y: 1}, Coord{X: 0, Y: 0}),
			want: `{"type":"LineString","coordinates":[[0,0],[1,0],[1,1],[0,0]]}`,
		},
		{
			name: "Polygon",
			g:    NewPolygon(square(0, 0, 1)),
			want: `{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,1],[0,0]]]}`,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			b, err := testCase.g.JSON()

			require.NoError(t, err)
			assert.JSONEq(t, testCase.want, string(b))
		})
	}
}

func TestGeoJSON_RoundTrip(t *testing.T) {
	for _, s := range sampleWKT {
		t.Run(s, func(t *testing.T) {
			g := mustWKT(t, s)
			if g.IsEmpty() {
				t.Skip("empty geometries have no coordinates to encode")
			}
			b, err := g.JSON()
			require.NoError(t, err)

			h, err := FromGeoJSON(b)
			require.NoError(t, err)
			assert.Equal(t, g.Dimension(), h.Dimension())
			assert.True(t, g.EqualsExact(h, 0), h.WKT())
		})
	}
}

func TestGeometry_UnmarshalJSON(t *testing.T) {
	ref, err := srs.FromEPSG(4326)
	require.NoError(t, err)

	type feature struct {
		ID       int       `json:"id"`
		Geometry *Geometry `json:"geometry"`
	}

	t.Run("Embedded", func(t *testing.T) {
		var f feature
		err := json.Unmarshal([]byte(`{"id":7,"geometry":{"type":"LineString","coordinates":[[0,0],[3,4]]}}`), &f)

		require.NoError(t, err)
		assert.Equal(t, 7, f.ID)
		assert.Equal(t, LineString, f.Geometry.Type())
		assert.Equal(t, 5.0, f.Geometry.Length())

		b, err := json.Marshal(f)
		require.NoError(t, err)
		assert.JSONEq(t, `{"id":7,"geometry":{"type":"LineString","coordinates":[[0,0],[3,4]]}}`, string(b))
	})

	t.Run("KeepsReference", func(t *testing.T) {
		g := NewPoint(0, 0)
		g.AssignSRS(ref)

		err := g.UnmarshalJSON([]byte(`{"type":"Point","coordinates":[5,6]}`))

		require.NoError(t, err)
		assert.Equal(t, 5.0, g.X())
		assert.Equal(t, 6.0, g.Y())
		assert.Same(t, ref, g.SRS())
	})

	t.Run("Error", func(t *testing.T) {
		g := NewPoint(1, 1)
		err := g.UnmarshalJSON([]byte(`{"type":"Banana"}`))

		assert.ErrorIs(t, err, ErrParse)
		assert.Equal(t, 1.0, g.X())
	})
}

func TestFromGeoJSON(t *testing.T) {
	for _, s := range []string{
		``,
		`[]`,
		`null`,
		`{"type":"Banana","coordinates":[1,2]}`,
		`{"type":"Point","coordinates":"x"}`,
	} {
		_, err := FromGeoJSON([]byte(s))
		assert.ErrorIs(t, err, ErrParse, s)
	}
}
