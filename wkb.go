// Copyright 2023 The geokit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package geokit

import (
	"encoding/binary"
	"math"

	geom "github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/ewkb"
	"github.com/twpayne/go-geom/encoding/wkb"

	"github.com/gogama/geokit/srs"
)

// ByteOrder selects the byte order of a WKB encoding.
type ByteOrder int

const (
	BigEndian ByteOrder = iota
	LittleEndian

	XDR = BigEndian
	NDR = LittleEndian
)

func (o ByteOrder) binary() binary.ByteOrder {
	if o == BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// WKBVariant selects how WKB marks three-dimensional geometries.
type WKBVariant int

const (
	// WKBVariantISO adds 1000 to the type code, for example 1001 for a
	// point with Z.
	WKBVariantISO WKBVariant = iota
	// WKBVariantExtended sets Wkb25DBit on the type code, as PostGIS
	// and older GDAL releases do.
	WKBVariantExtended
)

// WKB returns the OGC Well-Known Binary encoding of the geometry. An
// empty point is encoded with NaN coordinates. A LinearRing is encoded
// as a LineString.
func (g *Geometry) WKB(order ByteOrder, variant WKBVariant) ([]byte, error) {
	if g.typ == Point && len(g.coords) == 0 {
		return emptyPointWKB(g.is3D, order, variant), nil
	}
	t, err := toGeom(g)
	if err != nil {
		return nil, wrapErr("WKB", err)
	}
	var b []byte
	if variant == WKBVariantExtended {
		b, err = ewkb.Marshal(t, order.binary())
	} else {
		b, err = wkb.Marshal(t, order.binary())
	}
	if err != nil {
		return nil, kindErr(ErrGeometryOperation, "WKB: %v", err)
	}
	return b, nil
}

// emptyCoordBits is the quiet NaN written for each coordinate of an
// empty point.
const emptyCoordBits = 0x7ff8000000000000

func emptyPointWKB(is3D bool, order ByteOrder, variant WKBVariant) []byte {
	dim, code := 2, uint32(Point)
	if is3D {
		dim = 3
		if variant == WKBVariantExtended {
			code |= uint32(Wkb25DBit)
		} else {
			code += 1000
		}
	}
	b := make([]byte, 5+8*dim)
	if order == LittleEndian {
		b[0] = 1
	}
	bo := order.binary()
	bo.PutUint32(b[1:], code)
	for i := 0; i < dim; i++ {
		bo.PutUint64(b[5+8*i:], emptyCoordBits)
	}
	return b
}

// emptyPointFromWKB returns an empty point if data is a point without
// SRID whose coordinates are all NaN, or nil otherwise.
func emptyPointFromWKB(data []byte, bo binary.ByteOrder) *Geometry {
	code := bo.Uint32(data[1:])
	is3D := false
	switch code {
	case uint32(Point):
	case uint32(Point) + 1000, uint32(Point) | uint32(Wkb25DBit):
		is3D = true
	default:
		return nil
	}
	dim := 2
	if is3D {
		dim = 3
	}
	if len(data) != 5+8*dim {
		return nil
	}
	for i := 0; i < dim; i++ {
		if !math.IsNaN(math.Float64frombits(bo.Uint64(data[5+8*i:]))) {
			return nil
		}
	}
	g := Create(Point)
	g.is3D = is3D
	return g
}

// FromWKB decodes a Well-Known Binary geometry in either byte order and
// either the ISO or the extended variant. An extended geometry that
// carries an SRID is assigned the matching EPSG reference when the
// default catalog knows the code. Returns an error wrapping ErrParse if
// data is not valid WKB.
func FromWKB(data []byte) (*Geometry, error) {
	if len(data) < 5 {
		return nil, kindErr(ErrParse, "WKB: %d bytes is too short", len(data))
	}
	var bo binary.ByteOrder
	switch data[0] {
	case 0:
		bo = binary.BigEndian
	case 1:
		bo = binary.LittleEndian
	default:
		return nil, kindErr(ErrParse, "WKB: invalid byte order %d", data[0])
	}
	if g := emptyPointFromWKB(data, bo); g != nil {
		return g, nil
	}
	var t geom.T
	var err error
	if code := bo.Uint32(data[1:]); code&0xe0000000 != 0 {
		t, err = ewkb.Unmarshal(data)
	} else {
		t, err = wkb.Unmarshal(data)
	}
	if err != nil {
		return nil, kindErr(ErrParse, "WKB: %v", err)
	}
	g, err := fromGeom(t)
	if err != nil {
		return nil, err
	}
	if srid := t.SRID(); srid > 0 {
		if ref, err := srs.FromEPSG(srid); err == nil {
			g.AssignSRS(ref)
		}
	}
	return g, nil
}
