// Copyright 2023 The geokit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package srs

import (
	"math"
	"strconv"
	"strings"
)

// FromWMSAUTO parses a WMS AUTO identifier using the default catalog.
func FromWMSAUTO(s string) (*SpatialReference, error) {
	return DefaultCatalog().FromWMSAUTO(s)
}

// FromWMSAUTO parses "AUTO:<id>,<units>,<lon>,<lat>".
//
// With three fields the form is "<id>,<lon>,<lat>" with metre units,
// except for id 42005 where it is "<id>,<units>,<lon>". Two fields are
// accepted for 42005 only. Supported ids are 42001 (UTM, zone chosen
// from lon), 42002 (Transverse Mercator), 42003 (Orthographic), 42004
// (Equirectangular) and 42005 (Mollweide). Supported units are 9001
// (metre), 9002 (foot) and 9003 (US survey foot).
func (c *Catalog) FromWMSAUTO(s string) (*SpatialReference, error) {
	body := strings.TrimSpace(s)
	if len(body) >= 5 && strings.EqualFold(body[:5], "AUTO:") {
		body = body[5:]
	}
	fields := strings.Split(body, ",")
	nums := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, parseErr("invalid field %q in WMS AUTO %q", f, s)
		}
		nums[i] = v
	}
	if len(nums) == 0 || nums[0] != math.Trunc(nums[0]) {
		return nil, parseErr("invalid WMS AUTO id in %q", s)
	}

	id := int(nums[0])
	unitCode := 9001.0
	var lon, lat float64
	switch len(nums) {
	case 4:
		unitCode, lon, lat = nums[1], nums[2], nums[3]
	case 3:
		if id == 42005 {
			unitCode, lon = nums[1], nums[2]
		} else {
			lon, lat = nums[1], nums[2]
		}
	case 2:
		if id != 42005 {
			return nil, parseErr("WMS AUTO %d needs a latitude in %q", id, s)
		}
		lon = nums[1]
	default:
		return nil, parseErr("WMS AUTO %q has %d fields", s, len(nums))
	}

	var u unit
	switch unitCode {
	case 9001:
		u = unitMetre
	case 9002:
		u = unitFoot
	case 9003:
		u = unitUSFoot
	default:
		return nil, parseErr("unsupported WMS AUTO unit %v in %q", unitCode, s)
	}

	d := &definition{
		kind:   KindProjected,
		geog:   baseWGS84.geog(),
		linear: &u,
	}
	switch id {
	case 42001:
		zone := int(math.Floor((lon+180)/6)) + 1
		if zone < 1 || zone > 60 {
			return nil, parseErr("longitude %v outside UTM zones in %q", lon, s)
		}
		north := lat >= 0
		d.proj = utmProjection(zone, north)
		d.name = utmName(zone, north)
	case 42002:
		fn := 0.0
		if lat < 0 {
			fn = 10000000
		}
		d.name = "WGS 84 / Auto Tr. Mercator"
		d.proj = &projection{method: TransverseMercator, params: tmParams(0, lon, 0.9996, 500000, fn)}
	case 42003:
		d.name = "WGS 84 / Auto Orthographic"
		d.proj = &projection{method: Orthographic, params: []param{
			{paramLatOrigin, lat}, {paramCentralMe, lon}, {paramFE, 0}, {paramFN, 0},
		}}
	case 42004:
		d.name = "WGS 84 / Auto Equirectangular"
		d.proj = &projection{method: Equirectangular, params: []param{
			{paramLatOrigin, 0}, {paramCentralMe, lon}, {paramSP1, lat}, {paramFE, 0}, {paramFN, 0},
		}}
	case 42005:
		d.name = "WGS 84 / Auto Mollweide"
		d.proj = &projection{method: Mollweide, params: []param{
			{paramCentralMe, lon}, {paramFE, 0}, {paramFN, 0},
		}}
	default:
		return nil, parseErr("unsupported WMS AUTO id %d", id)
	}

	// Linear parameters are expressed in the requested unit.
	if u.factor != 1 {
		for i := range d.proj.params {
			switch d.proj.params[i].name {
			case paramFE, paramFN:
				d.proj.params[i].value /= u.factor
			}
		}
	}
	return newReference(d, c), nil
}
