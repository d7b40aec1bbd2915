// Copyright 2023 The geokit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package srs

import (
	"sort"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const googleProj4 = "+proj=merc +a=6378137 +b=6378137 +lat_ts=0 +lon_0=0 +x_0=0 +y_0=0 +k=1 +units=m +nadgrids=@null +wktext +no_defs"

func TestDefaultCatalog(t *testing.T) {
	c := DefaultCatalog()

	assert.Same(t, c, DefaultCatalog())
	assert.True(t, sort.IntsAreSorted(c.Codes()))
	assert.Equal(t, len(c.Codes()), c.Len())

	testCases := []struct {
		code            int
		name            string
		kind            Kind
		latLong         bool
		northingEasting bool
	}{
		{4326, "WGS 84", KindGeographic, true, false},
		{32601, "WGS 84 / UTM zone 1N", KindProjected, false, false},
		{32760, "WGS 84 / UTM zone 60S", KindProjected, false, false},
		{26923, "NAD83 / UTM zone 23N", KindProjected, false, false},
		{3006, "SWEREF99 TM", KindProjected, false, true},
		{4978, "WGS 84", KindGeocentric, false, false},
		{5703, "NAVD88 height", KindVertical, false, false},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			e, ok := c.Entry(testCase.code)

			require.True(t, ok)
			assert.Equal(t, testCase.code, e.Code)
			assert.Equal(t, testCase.name, e.Name)
			assert.Equal(t, testCase.kind, e.Kind)
			assert.Equal(t, testCase.latLong, e.LatLong)
			assert.Equal(t, testCase.northingEasting, e.NorthingEasting)
			assert.NotEmpty(t, e.WKT)
		})
	}

	_, ok := c.Entry(4)
	assert.False(t, ok)
}

func TestCatalog_With(t *testing.T) {
	base := DefaultCatalog()
	c, err := base.With(Entry{Code: 900913, Name: "Google", Proj4: googleProj4})
	require.NoError(t, err)

	t.Run("Added", func(t *testing.T) {
		r, err := c.FromEPSG(900913)
		require.NoError(t, err)

		assert.True(t, r.IsSame(mustEPSG(t, 3857)))
		assert.Equal(t, "900913", r.AuthorityCode(""))
		assert.Equal(t, "Google", r.Name())
		assert.Equal(t, base.Len()+1, c.Len())
	})

	t.Run("ReceiverUnchanged", func(t *testing.T) {
		_, err := base.FromEPSG(900913)

		assert.ErrorIs(t, err, ErrParse)
	})

	t.Run("UserInput", func(t *testing.T) {
		r, err := c.FromUserInput("EPSG:900913")
		require.NoError(t, err)

		assert.Equal(t, "Google", r.Name())
	})

	t.Run("Replace", func(t *testing.T) {
		d, err := c.With(Entry{Code: 4326, WKT: `GEOGCS["Other",DATUM["WGS_1984",SPHEROID["WGS 84",6378137,298.257223563]],UNIT["degree",0.0174532925199433]]`})
		require.NoError(t, err)
		r, err := d.FromEPSG(4326)
		require.NoError(t, err)

		assert.Equal(t, "Other", r.Name())
		assert.Equal(t, "4326", r.AuthorityCode(""))
		assert.Equal(t, "WGS 84", mustEPSG(t, 4326).Name())
	})

	t.Run("Identify", func(t *testing.T) {
		r, err := c.FromProj4(googleProj4)
		require.NoError(t, err)

		require.True(t, r.AutoIdentifyEPSG())
		assert.Equal(t, "3857", r.AuthorityCode(""))
	})
}

func TestNewCatalog(t *testing.T) {
	t.Run("Entries", func(t *testing.T) {
		c, err := NewCatalog(
			Entry{Code: 2, Proj4: "+proj=longlat +datum=NAD27 +no_defs", LatLong: true},
			Entry{Code: 1, WKT: wkt4326},
		)
		require.NoError(t, err)

		assert.Equal(t, []int{1, 2}, c.Codes())
		e, ok := c.Entry(2)
		require.True(t, ok)
		assert.Equal(t, KindGeographic, e.Kind)

		r, err := c.FromEPSGA(2)
		require.NoError(t, err)
		assert.True(t, r.AxisOrderSwapped())
		assert.Equal(t, "2", r.AuthorityCode(""))

		r, err = c.FromEPSG(2)
		require.NoError(t, err)
		assert.False(t, r.AxisOrderSwapped())
	})

	t.Run("EntryCodeWins", func(t *testing.T) {
		c, err := NewCatalog(
			Entry{Code: 900001, Proj4: "+proj=longlat +datum=NAD27 +no_defs"},
			Entry{Code: 900002, Proj4: "+proj=utm +zone=15 +datum=NAD27 +units=m +no_defs"},
			Entry{Code: 900003, WKT: wkt4326},
		)
		require.NoError(t, err)

		for _, code := range c.Codes() {
			r, err := c.FromEPSG(code)
			require.NoError(t, err)
			assert.Equal(t, strconv.Itoa(code), r.AuthorityCode(""))
			assert.Equal(t, "EPSG", r.AuthorityName(""))
		}

		r, err := c.FromEPSG(900002)
		require.NoError(t, err)
		assert.Equal(t, "4267", r.AuthorityCode("GEOGCS"))
	})

	t.Run("Invalid", func(t *testing.T) {
		testCases := []struct {
			name  string
			entry Entry
		}{
			{"Empty", Entry{Code: 1}},
			{"BadWKT", Entry{Code: 1, WKT: "GEOGCS["}},
			{"BadProj4", Entry{Code: 1, Proj4: "+proj=nosuch"}},
		}

		for _, testCase := range testCases {
			t.Run(testCase.name, func(t *testing.T) {
				_, err := NewCatalog(testCase.entry)

				assert.ErrorIs(t, err, ErrParse)
				assert.Contains(t, err.Error(), "catalog entry 1")
			})
		}
	})
}
