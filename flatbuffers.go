// Copyright 2023 The geokit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package geokit

import (
	"errors"
	"fmt"
	"io"
	"math"

	flatbuffers "github.com/google/flatbuffers/go"

	"github.com/gogama/geokit/flat"
)

// safeFlatBuffersInteraction runs a function that interacts with
// FlatBuffers, trapping any panic that occurs and converting it to a
// normal Go error.
//
// This function exists because FlatBuffer's Go code doesn't use
// standard Go error handling, allegedly for performance reasons, and
// consequently any invalid attempt to interact with FlatBuffer data
// may trigger a panic.
func safeFlatBuffersInteraction(f func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: flatbuffers: %v", r)
		}
	}()
	err = f()
	return
}

// FlatGeobuf returns the geometry encoded as a size-prefixed FlatGeobuf
// Geometry table, the form in which geometries are stored inside
// FlatGeobuf features. A LinearRing is encoded as a LineString, the
// nearest FlatGeobuf type. An empty member of a MultiPoint is encoded
// with NaN coordinates.
func (g *Geometry) FlatGeobuf() []byte {
	b := flatbuffers.NewBuilder(64 + 24*g.coordCount())
	root := buildFlat(b, g)
	b.FinishSizePrefixed(root)
	return b.FinishedBytes()
}

// WriteFlatGeobuf writes the FlatGeobuf encoding of the geometry to w.
func (g *Geometry) WriteFlatGeobuf(w io.Writer) (n int, err error) {
	if w == nil {
		textPanic("nil writer")
	}
	return writeSizePrefixedTable(w, g.FlatGeobuf())
}

// writeSizePrefixedTable writes a size-prefixed root FlatBuffers table
// which is positioned at offset zero of its buffer to an output stream.
func writeSizePrefixedTable(w io.Writer, buf []byte) (n int, err error) {
	var size uint32
	if size, err = tableSize(buf); err != nil {
		return
	}
	return w.Write(buf[0 : flatbuffers.SizeUint32+size])
}

func tableSize(buf []byte) (size uint32, err error) {
	if len(buf) < 2*flatbuffers.SizeUint32 {
		err = fmtErr("not a size-prefixed root FlatBuffers table (Len=%d)", len(buf))
		return
	}
	size = flatbuffers.GetUint32(buf)
	if uint64(size)+flatbuffers.SizeUint32 > uint64(len(buf)) {
		err = fmtErr("FlatBuffers table buffer is smaller than the size prefix (Len=%d, size=%d)", len(buf), size)
	}
	return
}

// FromFlatGeobuf decodes a size-prefixed FlatGeobuf Geometry table, as
// produced by FlatGeobuf. Returns an error wrapping ErrParse if the
// table is malformed or holds a curve or surface type.
func FromFlatGeobuf(data []byte) (*Geometry, error) {
	if _, err := tableSize(data); err != nil {
		return nil, kindErr(ErrParse, "%v", err)
	}
	var g *Geometry
	err := safeFlatBuffersInteraction(func() error {
		var err error
		g, err = fromFlat(flat.GetSizePrefixedRootAsGeometry(data, 0), flat.GeometryTypeUnknown)
		return err
	})
	if errors.Is(err, ErrParse) {
		return nil, wrapErr("FlatGeobuf", err)
	} else if err != nil {
		return nil, kindErr(ErrParse, "FlatGeobuf: %v", err)
	}
	return g, nil
}

func (g *Geometry) coordCount() int {
	n := len(g.coords)
	for _, p := range g.parts {
		n += p.coordCount()
	}
	return n
}

func flatType(t Type) flat.GeometryType {
	if t == LinearRing {
		return flat.GeometryTypeLineString
	}
	return flat.GeometryType(t)
}

func buildFlat(b *flatbuffers.Builder, g *Geometry) flatbuffers.UOffsetT {
	var coords []Coord
	var ends []uint32
	var parts []flatbuffers.UOffsetT
	switch g.typ {
	case Point, LineString, LinearRing:
		coords = g.coords
	case Polygon, MultiLineString:
		for _, p := range g.parts {
			coords = append(coords, p.coords...)
			ends = append(ends, uint32(len(coords)))
		}
		if len(ends) == 1 {
			ends = nil
		}
	case MultiPoint:
		for _, p := range g.parts {
			c := Coord{X: math.Float64frombits(emptyCoordBits), Y: math.Float64frombits(emptyCoordBits)}
			if len(p.coords) > 0 {
				c = p.coords[0]
			}
			coords = append(coords, c)
		}
	default:
		for _, p := range g.parts {
			parts = append(parts, buildFlat(b, p))
		}
	}

	var endsOff, xyOff, zOff, partsOff flatbuffers.UOffsetT
	if len(ends) > 0 {
		flat.GeometryStartEndsVector(b, len(ends))
		for i := len(ends) - 1; i >= 0; i-- {
			b.PrependUint32(ends[i])
		}
		endsOff = b.EndVector(len(ends))
	}
	if len(coords) > 0 {
		flat.GeometryStartXyVector(b, 2*len(coords))
		for i := len(coords) - 1; i >= 0; i-- {
			b.PrependFloat64(coords[i].Y)
			b.PrependFloat64(coords[i].X)
		}
		xyOff = b.EndVector(2 * len(coords))
		if g.is3D {
			flat.GeometryStartZVector(b, len(coords))
			for i := len(coords) - 1; i >= 0; i-- {
				b.PrependFloat64(coords[i].Z)
			}
			zOff = b.EndVector(len(coords))
		}
	}
	if len(parts) > 0 {
		flat.GeometryStartPartsVector(b, len(parts))
		for i := len(parts) - 1; i >= 0; i-- {
			b.PrependUOffsetT(parts[i])
		}
		partsOff = b.EndVector(len(parts))
	}

	flat.GeometryStart(b)
	if endsOff != 0 {
		flat.GeometryAddEnds(b, endsOff)
	}
	if xyOff != 0 {
		flat.GeometryAddXy(b, xyOff)
	}
	if zOff != 0 {
		flat.GeometryAddZ(b, zOff)
	}
	flat.GeometryAddType(b, flatType(g.typ))
	if partsOff != 0 {
		flat.GeometryAddParts(b, partsOff)
	}
	return flat.GeometryEnd(b)
}

// fromFlat decodes a Geometry table. If the table has no type, hint is
// used instead; the members of a FlatGeobuf MultiPolygon need not say
// that they are polygons.
func fromFlat(fg *flat.Geometry, hint flat.GeometryType) (*Geometry, error) {
	t := fg.Type()
	if t == flat.GeometryTypeUnknown {
		t = hint
	}
	n := fg.XyLength() / 2
	is3D := fg.ZLength() > 0
	if is3D && fg.ZLength() != n {
		return nil, kindErr(ErrParse, "%s has %d XY pairs but %d Z values", t, n, fg.ZLength())
	}
	coords := make([]Coord, n)
	for i := range coords {
		coords[i].X, coords[i].Y = fg.Xy(2*i), fg.Xy(2*i+1)
		if is3D {
			coords[i].Z = fg.Z(i)
		}
	}
	pieces := func() ([][]Coord, error) {
		if fg.EndsLength() == 0 {
			if n == 0 {
				return nil, nil
			}
			return [][]Coord{coords}, nil
		}
		var out [][]Coord
		start := uint32(0)
		for i := 0; i < fg.EndsLength(); i++ {
			end := fg.Ends(i)
			if end < start || int(end) > n {
				return nil, kindErr(ErrParse, "%s end %d out of range [%d, %d]", t, end, start, n)
			}
			out = append(out, coords[start:end:end])
			start = end
		}
		return out, nil
	}

	var g *Geometry
	switch t {
	case flat.GeometryTypePoint:
		g = Create(Point)
		if n > 0 && !math.IsNaN(coords[0].X) {
			g.coords = coords[:1]
		}
	case flat.GeometryTypeLineString:
		g = &Geometry{typ: LineString, coords: coords}
	case flat.GeometryTypeMultiPoint:
		g = Create(MultiPoint)
		for _, c := range coords {
			p := Create(Point)
			if !math.IsNaN(c.X) {
				p.coords = []Coord{c}
			}
			g.parts = append(g.parts, p)
		}
	case flat.GeometryTypePolygon, flat.GeometryTypeMultiLineString:
		rings, err := pieces()
		if err != nil {
			return nil, err
		}
		member := LinearRing
		g = Create(Polygon)
		if t == flat.GeometryTypeMultiLineString {
			member = LineString
			g = Create(MultiLineString)
		}
		for _, r := range rings {
			g.parts = append(g.parts, &Geometry{typ: member, coords: r})
		}
	case flat.GeometryTypeMultiPolygon, flat.GeometryTypeGeometryCollection:
		g = Create(MultiPolygon)
		memberHint := flat.GeometryTypePolygon
		if t == flat.GeometryTypeGeometryCollection {
			g = Create(GeometryCollection)
			memberHint = flat.GeometryTypeUnknown
		}
		for i := 0; i < fg.PartsLength(); i++ {
			var part flat.Geometry
			fg.Parts(&part, i)
			p, err := fromFlat(&part, memberHint)
			if err != nil {
				return nil, wrapErr("part %d", err, i)
			}
			if err = g.AddGeometry(p); err != nil {
				return nil, kindErr(ErrParse, "%v", err)
			}
		}
		return g, nil
	default:
		return nil, kindErr(ErrParse, "unsupported FlatGeobuf geometry type %s", t)
	}
	g.setDim(is3D)
	return g, nil
}
