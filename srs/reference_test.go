// Copyright 2023 The geokit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package srs

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wkt4326 = `GEOGCS["WGS 84",DATUM["WGS_1984",SPHEROID["WGS 84",6378137,298.257223563,AUTHORITY["EPSG","7030"]],AUTHORITY["EPSG","6326"]],PRIMEM["Greenwich",0,AUTHORITY["EPSG","8901"]],UNIT["degree",0.0174532925199433,AUTHORITY["EPSG","9122"]],AUTHORITY["EPSG","4326"]]`

func mustEPSG(t *testing.T, code int) *SpatialReference {
	r, err := FromEPSG(code)
	require.NoError(t, err)
	return r
}

func TestFromEPSG(t *testing.T) {
	t.Run("WKT", func(t *testing.T) {
		assert.Equal(t, wkt4326, mustEPSG(t, 4326).WKT())
		assert.Equal(t, wkt4326, mustEPSG(t, 4326).String())
	})

	t.Run("AuthorityAxes", func(t *testing.T) {
		r, err := FromEPSGA(4326)
		require.NoError(t, err)

		assert.True(t, strings.HasSuffix(r.WKT(),
			`AXIS["Latitude",NORTH],AXIS["Longitude",EAST],AUTHORITY["EPSG","4326"]]`))
		assert.True(t, r.AxisOrderSwapped())
		assert.False(t, mustEPSG(t, 4326).AxisOrderSwapped())
		assert.True(t, r.IsSame(mustEPSG(t, 4326)))
	})

	t.Run("NorthingEasting", func(t *testing.T) {
		r, err := FromEPSGA(3006)
		require.NoError(t, err)

		assert.True(t, r.AxisOrderSwapped())
		assert.False(t, mustEPSG(t, 3006).AxisOrderSwapped())
		assert.True(t, mustEPSG(t, 3006).EPSGTreatsAsNorthingEasting())
		assert.False(t, mustEPSG(t, 32633).EPSGTreatsAsNorthingEasting())
	})

	t.Run("Unknown", func(t *testing.T) {
		_, err := FromEPSG(1)

		assert.ErrorIs(t, err, ErrParse)
	})
}

func TestSpatialReference_Queries(t *testing.T) {
	testCases := []struct {
		code       int
		kind       Kind
		geographic bool
		projected  bool
		geocentric bool
		vertical   bool
		linear     Units
		latLong    bool
	}{
		{4326, KindGeographic, true, false, false, false, Units{"unknown", 1}, true},
		{4269, KindGeographic, true, false, false, false, Units{"unknown", 1}, true},
		{32610, KindProjected, false, true, false, false, Units{"metre", 1}, false},
		{3857, KindProjected, false, true, false, false, Units{"metre", 1}, false},
		{4978, KindGeocentric, false, false, true, false, Units{"metre", 1}, false},
		{5773, KindVertical, false, false, false, true, Units{"metre", 1}, false},
	}

	for _, testCase := range testCases {
		t.Run(strconv.Itoa(testCase.code), func(t *testing.T) {
			r := mustEPSG(t, testCase.code)

			assert.Equal(t, testCase.kind, r.Kind())
			assert.False(t, r.IsEmpty())
			assert.Equal(t, testCase.geographic, r.IsGeographic())
			assert.Equal(t, testCase.projected, r.IsProjected())
			assert.Equal(t, testCase.geocentric, r.IsGeocentric())
			assert.Equal(t, testCase.vertical, r.IsVertical())
			assert.False(t, r.IsLocal())
			assert.False(t, r.IsCompound())
			assert.Equal(t, testCase.linear, r.LinearUnits())
			assert.Equal(t, testCase.latLong, r.EPSGTreatsAsLatLong())
			assert.Equal(t, "EPSG", r.AuthorityName(""))
			assert.Equal(t, strconv.Itoa(testCase.code), r.AuthorityCode(""))
		})
	}
}

func TestSpatialReference_Ellipsoid(t *testing.T) {
	r := mustEPSG(t, 4326)

	assert.Equal(t, 6378137.0, r.SemiMajor())
	assert.InDelta(t, 6356752.314245, r.SemiMinor(), 1e-6)
	assert.Equal(t, 298.257223563, r.InvFlattening())
	assert.Equal(t, Units{"degree", degreeFactor}, r.AngularUnits())

	e := New()
	assert.True(t, e.IsEmpty())
	assert.Equal(t, 0.0, e.SemiMajor())
	assert.Equal(t, "", e.WKT())
	assert.Equal(t, "", e.AuthorityCode(""))
}

func TestSpatialReference_AttrValue(t *testing.T) {
	r := mustEPSG(t, 32610)

	testCases := []struct {
		path     string
		i        int
		expected string
	}{
		{"", 0, "WGS 84 / UTM zone 10N"},
		{"PROJCS", 0, "WGS 84 / UTM zone 10N"},
		{"PROJCS|GEOGCS|DATUM", 0, "WGS_1984"},
		{"GEOGCS|UNIT", 1, "0.0174532925199433"},
		{"PROJECTION", 0, TransverseMercator},
		{"SPHEROID", 2, "298.257223563"},
		{"SPHEROID", 9, ""},
		{"NOSUCHNODE", 0, ""},
	}

	for _, testCase := range testCases {
		t.Run(testCase.path, func(t *testing.T) {
			assert.Equal(t, testCase.expected, r.AttrValue(testCase.path, testCase.i))
		})
	}

	assert.Equal(t, "6326", r.AuthorityCode("PROJCS|GEOGCS|DATUM"))
	assert.Equal(t, "4326", r.AuthorityCode("GEOGCS"))
	assert.Equal(t, "EPSG", r.AuthorityName("SPHEROID"))
}

func TestSpatialReference_IsSame(t *testing.T) {
	testCases := []struct {
		name     string
		a, b     int
		expected bool
	}{
		{"Identical", 4326, 4326, true},
		{"DifferentDatum", 4326, 4269, false},
		{"DifferentZone", 32610, 32611, false},
		{"DifferentKind", 4326, 32631, false},
		{"Geocentric", 4978, 4978, true},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			a, b := mustEPSG(t, testCase.a), mustEPSG(t, testCase.b)

			assert.Equal(t, testCase.expected, a.IsSame(b))
			assert.Equal(t, testCase.expected, b.IsSame(a))
		})
	}

	t.Run("GeogCS", func(t *testing.T) {
		assert.True(t, mustEPSG(t, 32610).IsSameGeogCS(mustEPSG(t, 4326)))
		assert.False(t, mustEPSG(t, 26910).IsSameGeogCS(mustEPSG(t, 4326)))
		assert.False(t, mustEPSG(t, 5773).IsSameGeogCS(mustEPSG(t, 4326)))
	})

	t.Run("VertCS", func(t *testing.T) {
		assert.True(t, mustEPSG(t, 5773).IsSameVertCS(mustEPSG(t, 5773)))
		assert.False(t, mustEPSG(t, 5773).IsSameVertCS(mustEPSG(t, 5703)))
		assert.False(t, mustEPSG(t, 4326).IsSameVertCS(mustEPSG(t, 5703)))
	})
}

func TestSpatialReference_Clone(t *testing.T) {
	r := mustEPSG(t, 27700)
	c := r.Clone()

	require.True(t, c.IsSame(r))
	c.MorphToESRI()
	assert.Equal(t, "27700", r.AuthorityCode(""))
	assert.Equal(t, "", c.AuthorityCode(""))

	g := r.CloneGeogCS()
	assert.True(t, g.IsGeographic())
	assert.True(t, g.IsSame(mustEPSG(t, 4277)))
	assert.Equal(t, "4277", g.AuthorityCode(""))

	assert.True(t, mustEPSG(t, 5773).CloneGeogCS().IsEmpty())
}

func TestSpatialReference_WKTRoundTrip(t *testing.T) {
	for _, code := range DefaultCatalog().Codes() {
		r := mustEPSG(t, code)
		s, err := FromWKT(r.WKT())
		require.NoError(t, err, "code %d", code)

		assert.True(t, s.IsSame(r), "code %d", code)
		assert.Equal(t, strconv.Itoa(code), s.AuthorityCode(""), "code %d", code)
	}
}

func TestSpatialReference_Proj4RoundTrip(t *testing.T) {
	for _, code := range DefaultCatalog().Codes() {
		r := mustEPSG(t, code)
		p4, err := r.Proj4()
		if r.IsVertical() {
			assert.ErrorIs(t, err, ErrUnsupported, "code %d", code)
			continue
		}
		require.NoError(t, err, "code %d", code)
		s, err := FromProj4(p4)
		require.NoError(t, err, "code %d: %s", code, p4)

		assert.True(t, s.IsSame(r), "code %d: %s", code, p4)
	}
}

func TestSpatialReference_Proj4(t *testing.T) {
	testCases := []struct {
		code     int
		expected string
	}{
		{4326, "+proj=longlat +datum=WGS84 +no_defs"},
		{4269, "+proj=longlat +datum=NAD83 +no_defs"},
		{32633, "+proj=utm +zone=33 +datum=WGS84 +units=m +no_defs"},
		{32733, "+proj=utm +zone=33 +south +datum=WGS84 +units=m +no_defs"},
		{26910, "+proj=utm +zone=10 +datum=NAD83 +units=m +no_defs"},
		{3857, "+proj=merc +a=6378137 +b=6378137 +lat_ts=0 +lon_0=0 +x_0=0 +y_0=0 +k=1 +units=m +nadgrids=@null +wktext +no_defs"},
		{4978, "+proj=geocent +datum=WGS84 +units=m +no_defs"},
	}

	for _, testCase := range testCases {
		t.Run(strconv.Itoa(testCase.code), func(t *testing.T) {
			p4, err := mustEPSG(t, testCase.code).Proj4()

			require.NoError(t, err)
			assert.Equal(t, testCase.expected, p4)
		})
	}
}

func TestSpatialReference_PrettyWKT(t *testing.T) {
	r := mustEPSG(t, 4326)

	t.Run("Full", func(t *testing.T) {
		p := r.PrettyWKT(false)

		assert.True(t, strings.HasPrefix(p, "GEOGCS[\"WGS 84\",\n    DATUM[\"WGS_1984\",\n        SPHEROID[\"WGS 84\",6378137,298.257223563,\n            AUTHORITY[\"EPSG\",\"7030\"]],"))
		assert.Equal(t, wkt4326, strings.NewReplacer("\n", "", "    ", "").Replace(p))
	})

	t.Run("Simplified", func(t *testing.T) {
		s, err := FromEPSGA(4326)
		require.NoError(t, err)
		p := s.PrettyWKT(true)

		assert.NotContains(t, p, "AXIS")
		assert.Equal(t, 1, strings.Count(p, "AUTHORITY"))
		assert.True(t, strings.HasSuffix(p, "AUTHORITY[\"EPSG\",\"4326\"]]"))
	})
}

func TestSpatialReference_Validate(t *testing.T) {
	geogcs := `GEOGCS["WGS 84",DATUM["WGS_1984",SPHEROID["WGS 84",6378137,298.257223563]],PRIMEM["Greenwich",0],UNIT["degree",0.0174532925199433]]`

	testCases := []struct {
		name     string
		wkt      string
		contains string
	}{
		{"Valid", geogcs, ""},
		{"UnknownMethod", `PROJCS["x",` + geogcs + `,PROJECTION["Foo"],UNIT["metre",1]]`, "unsupported projection method"},
		{"NoProjection", `PROJCS["x",` + geogcs + `,UNIT["metre",1]]`, "no PROJECTION"},
		{"MissingParallel", `PROJCS["x",` + geogcs + `,PROJECTION["Lambert_Conformal_Conic_2SP"],UNIT["metre",1]]`, "standard_parallel_1"},
		{"BadSemiMajor", `GEOGCS["x",DATUM["d",SPHEROID["s",0,298]],UNIT["degree",0.0174532925199433]]`, "semi-major"},
		{"NegativeFlattening", `GEOGCS["x",DATUM["d",SPHEROID["s",6378137,-1]],UNIT["degree",0.0174532925199433]]`, "inverse flattening"},
		{"BadUnit", `GEOGCS["x",DATUM["d",SPHEROID["s",6378137,298]],UNIT["degree",0]]`, "non-positive factor"},
		{"BadAxis", `GEOGCS["x",DATUM["d",SPHEROID["s",6378137,298]],AXIS["Lat",SIDEWAYS]]`, "AXIS direction"},
		{"BadTOWGS84", `GEOGCS["x",DATUM["d",SPHEROID["s",6378137,298],TOWGS84[1,2,3,4,5]]]`, "TOWGS84"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			r, err := FromWKT(testCase.wkt)
			require.NoError(t, err)

			msg := r.Validate()
			if testCase.contains == "" {
				assert.Empty(t, msg)
			} else {
				assert.Contains(t, msg, testCase.contains)
			}
		})
	}

	for _, code := range DefaultCatalog().Codes() {
		assert.Empty(t, mustEPSG(t, code).Validate(), "code %d", code)
	}
	assert.NotEmpty(t, New().Validate())
}

func TestSpatialReference_AutoIdentifyEPSG(t *testing.T) {
	t.Run("Projected", func(t *testing.T) {
		r, err := FromProj4("+proj=utm +zone=10 +datum=NAD83 +units=m +no_defs")
		require.NoError(t, err)

		assert.True(t, r.AutoIdentifyEPSG())
		assert.Equal(t, "26910", r.AuthorityCode(""))
		assert.Equal(t, "4269", r.AuthorityCode("GEOGCS"))
	})

	t.Run("AlreadyIdentified", func(t *testing.T) {
		assert.True(t, mustEPSG(t, 4326).AutoIdentifyEPSG())
	})

	t.Run("NoMatch", func(t *testing.T) {
		r, err := FromProj4("+proj=longlat +R=1000 +no_defs")
		require.NoError(t, err)
		before := r.WKT()

		assert.False(t, r.AutoIdentifyEPSG())
		assert.Equal(t, before, r.WKT())
	})
}

func TestSpatialReference_SetWellKnownGeogCS(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		r := New()

		require.NoError(t, r.SetWellKnownGeogCS("WGS84"))
		assert.True(t, r.IsSame(mustEPSG(t, 4326)))
	})

	t.Run("Projected", func(t *testing.T) {
		r := mustEPSG(t, 32610)

		require.NoError(t, r.SetWellKnownGeogCS("NAD83"))
		assert.True(t, r.IsProjected())
		assert.True(t, r.IsSameGeogCS(mustEPSG(t, 4269)))
	})

	t.Run("EPSG", func(t *testing.T) {
		r := New()

		require.NoError(t, r.SetWellKnownGeogCS("EPSG:4267"))
		assert.True(t, r.IsSame(mustEPSG(t, 4267)))
	})

	t.Run("Unknown", func(t *testing.T) {
		assert.ErrorIs(t, New().SetWellKnownGeogCS("Mars2000"), ErrParse)
		assert.ErrorIs(t, New().SetWellKnownGeogCS("EPSG:32610"), ErrParse)
	})
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "Geographic", KindGeographic.String())
	assert.Equal(t, "Compound", KindCompound.String())
	assert.Equal(t, "Kind(99)", Kind(99).String())
}
