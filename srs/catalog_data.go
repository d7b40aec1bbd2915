// Copyright 2023 The geokit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package srs

import (
	"fmt"
	"strconv"
)

type builtinEntry struct {
	code            int
	def             *definition
	latLong         bool
	northingEasting bool
}

// geogBase describes a geographic reference used as the base of the
// built-in projected references.
type geogBase struct {
	code  int
	name  string
	datum *datum
}

var (
	baseWGS84    = geogBase{4326, "WGS 84", &datumWGS84}
	baseNAD83    = geogBase{4269, "NAD83", &datumNAD83}
	baseNAD27    = geogBase{4267, "NAD27", &datumNAD27}
	baseWGS72    = geogBase{4322, "WGS 72", &datumWGS72}
	baseETRS89   = geogBase{4258, "ETRS89", &datumETRS89}
	baseOSGB36   = geogBase{4277, "OSGB 1936", &datumOSGB36}
	baseDHDN     = geogBase{4314, "DHDN", &datumDHDN}
	baseRGF93    = geogBase{4171, "RGF93", &datumRGF93}
	baseSWEREF99 = geogBase{4619, "SWEREF99", &datumSWEREF99}
	baseED50     = geogBase{4230, "ED50", &datumED50}
	baseCGCS2000 = geogBase{4490, "China Geodetic Coordinate System 2000", &datumCGCS2000}
)

var geogBases = []geogBase{
	baseWGS84, baseNAD83, baseNAD27, baseWGS72, baseETRS89, baseOSGB36,
	baseDHDN, baseRGF93, baseSWEREF99, baseED50, baseCGCS2000,
}

func (b geogBase) geog() *geogCS {
	return newGeogCS(b.name, *b.datum, strconv.Itoa(b.code))
}

// wellKnownGeog returns the built-in geographic reference whose datum
// is d.
func wellKnownGeog(d *datum) *geogCS {
	for _, b := range geogBases {
		if b.datum == d {
			return b.geog()
		}
	}
	return newGeogCS("unknown", *d, "")
}

func projected(code int, name string, base geogBase, method string, params []param, axes []axis) *definition {
	u := unitMetre
	return &definition{
		kind:   KindProjected,
		name:   name,
		geog:   base.geog(),
		proj:   &projection{method: method, params: params},
		linear: &u,
		axes:   axes,
		auth:   epsg(strconv.Itoa(code)),
	}
}

func tmParams(lat0, lon0, k, fe, fn float64) []param {
	return []param{
		{paramLatOrigin, lat0},
		{paramCentralMe, lon0},
		{paramScale, k},
		{paramFE, fe},
		{paramFN, fn},
	}
}

func defaultEntries() []builtinEntry {
	entries := make([]builtinEntry, 0, 256)

	for _, b := range geogBases {
		g := b.geog()
		g.axes = latLongAxes()
		entries = append(entries, builtinEntry{
			code:    b.code,
			def:     &definition{kind: KindGeographic, name: b.name, geog: g, auth: g.auth},
			latLong: true,
		})
	}

	add := func(code int, name string, base geogBase, method string, params []param) {
		entries = append(entries, builtinEntry{
			code: code,
			def:  projected(code, name, base, method, params, eastNorthAxes()),
		})
	}
	addNE := func(code int, name string, base geogBase, method string, params []param) {
		entries = append(entries, builtinEntry{
			code:            code,
			def:             projected(code, name, base, method, params, northEastAxes()),
			northingEasting: true,
		})
	}

	add(3857, "WGS 84 / Pseudo-Mercator", baseWGS84, PseudoMercator, tmParams(0, 0, 1, 0, 0))
	add(3395, "WGS 84 / World Mercator", baseWGS84, Mercator1SP, []param{
		{paramCentralMe, 0}, {paramScale, 1}, {paramFE, 0}, {paramFN, 0},
	})
	add(4087, "WGS 84 / World Equidistant Cylindrical", baseWGS84, Equirectangular, []param{
		{paramLatOrigin, 0}, {paramCentralMe, 0}, {paramSP1, 0}, {paramFE, 0}, {paramFN, 0},
	})

	utm := func(first, zoneFrom, zoneTo int, prefix string, base geogBase, north bool) {
		for zone := zoneFrom; zone <= zoneTo; zone++ {
			h := "N"
			if !north {
				h = "S"
			}
			code := first + zone - zoneFrom
			name := fmt.Sprintf("%s / UTM zone %d%s", prefix, zone, h)
			add(code, name, base, TransverseMercator, utmProjection(zone, north).params)
		}
	}
	utm(32601, 1, 60, "WGS 84", baseWGS84, true)
	utm(32701, 1, 60, "WGS 84", baseWGS84, false)
	utm(26901, 1, 23, "NAD83", baseNAD83, true)
	utm(26703, 3, 22, "NAD27", baseNAD27, true)
	utm(25828, 28, 38, "ETRS89", baseETRS89, true)

	add(27700, "OSGB 1936 / British National Grid", baseOSGB36, TransverseMercator,
		tmParams(49, -2, 0.9996012717, 400000, -100000))
	add(2154, "RGF93 / Lambert-93", baseRGF93, LambertConformalConic2, []param{
		{paramSP1, 49}, {paramSP2, 44}, {paramLatOrigin, 46.5}, {paramCentralMe, 3},
		{paramFE, 700000}, {paramFN, 6600000},
	})
	addNE(3006, "SWEREF99 TM", baseSWEREF99, TransverseMercator, tmParams(0, 15, 0.9996, 500000, 0))
	addNE(31467, "DHDN / 3-degree Gauss-Kruger zone 3", baseDHDN, TransverseMercator,
		tmParams(0, 9, 1, 3500000, 0))
	for zone := 25; zone <= 45; zone++ {
		addNE(4513+zone-25, fmt.Sprintf("CGCS2000 / 3-degree Gauss-Kruger zone %d", zone), baseCGCS2000,
			TransverseMercator, tmParams(0, float64(zone*3), 1, float64(zone)*1000000+500000, 0))
	}

	u := unitMetre
	gc := baseWGS84.geog()
	entries = append(entries, builtinEntry{code: 4978, def: &definition{
		kind:   KindGeocentric,
		name:   "WGS 84",
		geog:   &geogCS{datum: gc.datum, pm: gc.pm, angular: gc.angular},
		linear: &u,
		axes:   []axis{{"Geocentric X", "OTHER"}, {"Geocentric Y", "OTHER"}, {"Geocentric Z", "NORTH"}},
		auth:   epsg("4978"),
	}})

	vertical := func(code int, name, datumName, datumCode string) {
		u := unitMetre
		entries = append(entries, builtinEntry{code: code, def: &definition{
			kind:   KindVertical,
			name:   name,
			vdatum: &vertDatum{name: datumName, typ: 2005, auth: epsg(datumCode)},
			linear: &u,
			axes:   []axis{{"Gravity-related height", "UP"}},
			auth:   epsg(strconv.Itoa(code)),
		}})
	}
	vertical(5773, "EGM96 height", "EGM96 geoid", "5171")
	vertical(5703, "NAVD88 height", "North American Vertical Datum 1988", "5103")

	return entries
}
