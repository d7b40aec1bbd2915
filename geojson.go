// Copyright 2023 The geokit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package geokit

import (
	geom "github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// JSON returns the geometry as a GeoJSON geometry object. A LinearRing
// is written as a LineString. The spatial reference is not written.
func (g *Geometry) JSON() ([]byte, error) {
	t, err := toGeom(g)
	if err != nil {
		return nil, wrapErr("GeoJSON", err)
	}
	b, err := geojson.Marshal(t)
	if err != nil {
		return nil, kindErr(ErrGeometryOperation, "GeoJSON: %v", err)
	}
	return b, nil
}

// MarshalJSON implements json.Marshaler using JSON.
func (g *Geometry) MarshalJSON() ([]byte, error) {
	return g.JSON()
}

// UnmarshalJSON implements json.Unmarshaler, replacing g with the
// decoded GeoJSON geometry. The spatial reference of g is kept.
func (g *Geometry) UnmarshalJSON(data []byte) error {
	h, err := FromGeoJSON(data)
	if err != nil {
		return err
	}
	ref := g.ref
	*g = *h
	g.AssignSRS(ref)
	return nil
}

// FromGeoJSON decodes a GeoJSON geometry object. Returns an error
// wrapping ErrParse if data is not a GeoJSON geometry.
func FromGeoJSON(data []byte) (*Geometry, error) {
	var t geom.T
	if err := geojson.Unmarshal(data, &t); err != nil {
		return nil, kindErr(ErrParse, "GeoJSON: %v", err)
	}
	if t == nil {
		return nil, kindErr(ErrParse, "GeoJSON: null geometry")
	}
	return fromGeom(t)
}
