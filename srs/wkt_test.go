// Copyright 2023 The geokit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package srs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromWKT(t *testing.T) {
	t.Run("Parentheses", func(t *testing.T) {
		r, err := FromWKT(`GEOGCS("WGS 84", DATUM("WGS_1984", SPHEROID("WGS 84", 6378137, 298.257223563)),
			PRIMEM("Greenwich", 0), UNIT("degree", 0.0174532925199433))`)
		require.NoError(t, err)

		assert.True(t, r.IsSame(mustEPSG(t, 4326)))
		assert.Equal(t, "", r.AuthorityCode(""))
	})

	t.Run("Compound", func(t *testing.T) {
		r, err := FromWKT(`COMPD_CS["WGS 84 + EGM96 height",` + mustEPSG(t, 4326).WKT() + `,` + mustEPSG(t, 5773).WKT() + `]`)
		require.NoError(t, err)

		assert.True(t, r.IsCompound())
		assert.True(t, r.IsGeographic())
		assert.True(t, r.IsVertical())
		assert.True(t, r.IsSameGeogCS(mustEPSG(t, 4326)))
		assert.True(t, r.IsSameVertCS(mustEPSG(t, 5773)))
		assert.Equal(t, "WGS 84 + EGM96 height", r.Name())
		assert.Equal(t, "5773", r.AuthorityCode("VERT_CS"))

		p4, err := r.Proj4()
		require.NoError(t, err)
		assert.Equal(t, "+proj=longlat +datum=WGS84 +no_defs", p4)

		s, err := FromWKT(r.WKT())
		require.NoError(t, err)
		assert.True(t, s.IsSame(r))
	})

	t.Run("Local", func(t *testing.T) {
		r, err := FromWKT(`LOCAL_CS["Site grid",LOCAL_DATUM["Site",32767],UNIT["foot",0.3048],AXIS["X",EAST],AXIS["Y",NORTH]]`)
		require.NoError(t, err)

		assert.True(t, r.IsLocal())
		assert.Equal(t, Units{"foot", footFactor}, r.LinearUnits())
		assert.Equal(t, `LOCAL_CS["Site grid",LOCAL_DATUM["Site",32767],UNIT["foot",0.3048],AXIS["X",EAST],AXIS["Y",NORTH]]`, r.WKT())
	})

	t.Run("Geocentric", func(t *testing.T) {
		r, err := FromWKT(mustEPSG(t, 4978).WKT())
		require.NoError(t, err)

		assert.True(t, r.IsGeocentric())
		assert.Equal(t, 6378137.0, r.SemiMajor())
	})

	t.Run("Extension", func(t *testing.T) {
		wkt := `PROJCS["Google",GEOGCS["WGS 84",DATUM["WGS_1984",SPHEROID["WGS 84",6378137,298.257223563]],PRIMEM["Greenwich",0],UNIT["degree",0.0174532925199433]],PROJECTION["Popular_Visualisation_Pseudo_Mercator"],UNIT["metre",1],EXTENSION["PROJ4","` + googleProj4 + `"]]`
		r, err := FromWKT(wkt)
		require.NoError(t, err)

		assert.Equal(t, wkt, r.WKT())
		r.MorphToESRI()
		assert.NotContains(t, r.WKT(), "EXTENSION")
	})

	t.Run("QuotedQuote", func(t *testing.T) {
		r, err := FromWKT(`VERT_CS["Mean ""sea"" level",VERT_DATUM["MSL",2005],UNIT["metre",1]]`)
		require.NoError(t, err)

		assert.Equal(t, `Mean "sea" level`, r.Name())
	})
}

func TestFromWKT_Errors(t *testing.T) {
	testCases := []struct {
		name string
		wkt  string
	}{
		{"Empty", ""},
		{"Bare", "GEOGCS"},
		{"Unterminated", `GEOGCS["x",DATUM["d",SPHEROID["s",1,2]]`},
		{"MismatchedBrackets", `GEOGCS["x",DATUM["d",SPHEROID["s",1,2])]`},
		{"TrailingText", wkt4326 + " junk"},
		{"UnterminatedQuote", `GEOGCS["x`},
		{"UnknownRoot", `FOOCS["x"]`},
		{"NoName", `GEOGCS[DATUM["d",SPHEROID["s",1,2]]]`},
		{"NoDatum", `GEOGCS["x",UNIT["degree",0.0174532925199433]]`},
		{"NoSpheroid", `GEOGCS["x",DATUM["d"]]`},
		{"ShortSpheroid", `GEOGCS["x",DATUM["d",SPHEROID["s",1]]]`},
		{"BadNumber", `GEOGCS["x",DATUM["d",SPHEROID["s",abc,298]]]`},
		{"NoGeogCS", `PROJCS["p",PROJECTION["Transverse_Mercator"]]`},
		{"ShortParameter", `PROJCS["p",` + wkt4326 + `,PARAMETER["scale_factor"]]`},
		{"ShortAxis", `GEOGCS["x",DATUM["d",SPHEROID["s",1,2]],AXIS["Lat"]]`},
		{"ShortAuthority", `GEOGCS["x",DATUM["d",SPHEROID["s",1,2]],AUTHORITY["EPSG"]]`},
		{"OneComponentCompound", `COMPD_CS["c",` + wkt4326 + `]`},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			_, err := FromWKT(testCase.wkt)

			assert.ErrorIs(t, err, ErrParse)
		})
	}
}

func TestFormatNumber(t *testing.T) {
	testCases := []struct {
		in       float64
		expected string
	}{
		{0, "0"},
		{6378137, "6378137"},
		{298.257223563, "298.257223563"},
		{-0.5, "-0.5"},
		{1e-9, "1e-09"},
		{1e22, "1e+22"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.expected, func(t *testing.T) {
			assert.Equal(t, testCase.expected, formatNumber(testCase.in))
		})
	}
}
