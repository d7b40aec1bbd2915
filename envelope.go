// Copyright 2023 The geokit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package geokit

import (
	"math"
	"strconv"
	"strings"

	"github.com/gogama/geokit/packedrtree"
)

// Envelope is a two-dimensional axis-aligned bounding box. Its bounds
// are closed. An envelope whose minimum exceeds its maximum on either
// axis is empty.
type Envelope struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// EmptyEnvelope is the identity element for Merge and the absorbing
// element for Intersect.
var EmptyEnvelope = Envelope{
	MinX: math.Inf(1), MaxX: math.Inf(-1),
	MinY: math.Inf(1), MaxY: math.Inf(-1),
}

// IsEmpty reports whether the envelope contains no point.
func (e Envelope) IsEmpty() bool {
	return !(e.MinX <= e.MaxX && e.MinY <= e.MaxY)
}

// Contains reports whether o lies entirely within e. The empty
// envelope is contained by every envelope.
func (e Envelope) Contains(o Envelope) bool {
	if o.IsEmpty() {
		return true
	}
	return e.MinX <= o.MinX && o.MaxX <= e.MaxX &&
		e.MinY <= o.MinY && o.MaxY <= e.MaxY
}

// Intersects reports whether e and o share at least one point.
func (e Envelope) Intersects(o Envelope) bool {
	return !e.IsEmpty() && !o.IsEmpty() &&
		e.MinX <= o.MaxX && o.MinX <= e.MaxX &&
		e.MinY <= o.MaxY && o.MinY <= e.MaxY
}

// Intersect shrinks e to its intersection with o. If they are disjoint
// e becomes EmptyEnvelope.
func (e *Envelope) Intersect(o Envelope) {
	if !e.Intersects(o) {
		*e = EmptyEnvelope
		return
	}
	e.MinX = math.Max(e.MinX, o.MinX)
	e.MaxX = math.Min(e.MaxX, o.MaxX)
	e.MinY = math.Max(e.MinY, o.MinY)
	e.MaxY = math.Min(e.MaxY, o.MaxY)
}

// Merge enlarges e, if necessary, to cover o.
func (e *Envelope) Merge(o Envelope) {
	if o.IsEmpty() {
		return
	}
	e.MergeXY(o.MinX, o.MinY)
	e.MergeXY(o.MaxX, o.MaxY)
}

// MergeXY enlarges e, if necessary, to cover the point (x, y).
func (e *Envelope) MergeXY(x, y float64) {
	e.MinX = math.Min(e.MinX, x)
	e.MaxX = math.Max(e.MaxX, x)
	e.MinY = math.Min(e.MinY, y)
	e.MaxY = math.Max(e.MaxY, y)
}

// Width returns the X extent, or zero if e is empty.
func (e Envelope) Width() float64 {
	if e.IsEmpty() {
		return 0
	}
	return e.MaxX - e.MinX
}

// Height returns the Y extent, or zero if e is empty.
func (e Envelope) Height() float64 {
	if e.IsEmpty() {
		return 0
	}
	return e.MaxY - e.MinY
}

// ToPolygon returns the envelope as a counter-clockwise rectangle, or
// an empty polygon if e is empty.
func (e Envelope) ToPolygon() *Geometry {
	if e.IsEmpty() {
		return Create(Polygon)
	}
	return NewPolygon([]Coord{
		{X: e.MinX, Y: e.MinY},
		{X: e.MaxX, Y: e.MinY},
		{X: e.MaxX, Y: e.MaxY},
		{X: e.MinX, Y: e.MaxY},
		{X: e.MinX, Y: e.MinY},
	})
}

func (e Envelope) box() packedrtree.Box {
	return packedrtree.Box{XMin: e.MinX, YMin: e.MinY, XMax: e.MaxX, YMax: e.MaxY}
}

// String returns the envelope as "[minx,miny,maxx,maxy]".
func (e Envelope) String() string {
	return formatBounds(e.MinX, e.MinY, e.MaxX, e.MaxY)
}

// Envelope3D is a three-dimensional axis-aligned bounding box.
type Envelope3D struct {
	MinX, MaxX float64
	MinY, MaxY float64
	MinZ, MaxZ float64
}

// EmptyEnvelope3D is the identity element for Merge and the absorbing
// element for Intersect.
var EmptyEnvelope3D = Envelope3D{
	MinX: math.Inf(1), MaxX: math.Inf(-1),
	MinY: math.Inf(1), MaxY: math.Inf(-1),
	MinZ: math.Inf(1), MaxZ: math.Inf(-1),
}

// IsEmpty reports whether the envelope contains no point.
func (e Envelope3D) IsEmpty() bool {
	return !(e.MinX <= e.MaxX && e.MinY <= e.MaxY && e.MinZ <= e.MaxZ)
}

// Contains reports whether o lies entirely within e.
func (e Envelope3D) Contains(o Envelope3D) bool {
	if o.IsEmpty() {
		return true
	}
	return e.MinX <= o.MinX && o.MaxX <= e.MaxX &&
		e.MinY <= o.MinY && o.MaxY <= e.MaxY &&
		e.MinZ <= o.MinZ && o.MaxZ <= e.MaxZ
}

// Intersects reports whether e and o share at least one point.
func (e Envelope3D) Intersects(o Envelope3D) bool {
	return !e.IsEmpty() && !o.IsEmpty() &&
		e.MinX <= o.MaxX && o.MinX <= e.MaxX &&
		e.MinY <= o.MaxY && o.MinY <= e.MaxY &&
		e.MinZ <= o.MaxZ && o.MinZ <= e.MaxZ
}

// Intersect shrinks e to its intersection with o.
func (e *Envelope3D) Intersect(o Envelope3D) {
	if !e.Intersects(o) {
		*e = EmptyEnvelope3D
		return
	}
	e.MinX = math.Max(e.MinX, o.MinX)
	e.MaxX = math.Min(e.MaxX, o.MaxX)
	e.MinY = math.Max(e.MinY, o.MinY)
	e.MaxY = math.Min(e.MaxY, o.MaxY)
	e.MinZ = math.Max(e.MinZ, o.MinZ)
	e.MaxZ = math.Min(e.MaxZ, o.MaxZ)
}

// Merge enlarges e, if necessary, to cover o.
func (e *Envelope3D) Merge(o Envelope3D) {
	if o.IsEmpty() {
		return
	}
	e.MergeXYZ(o.MinX, o.MinY, o.MinZ)
	e.MergeXYZ(o.MaxX, o.MaxY, o.MaxZ)
}

// MergeXYZ enlarges e, if necessary, to cover the point (x, y, z).
func (e *Envelope3D) MergeXYZ(x, y, z float64) {
	e.MinX = math.Min(e.MinX, x)
	e.MaxX = math.Max(e.MaxX, x)
	e.MinY = math.Min(e.MinY, y)
	e.MaxY = math.Max(e.MaxY, y)
	e.MinZ = math.Min(e.MinZ, z)
	e.MaxZ = math.Max(e.MaxZ, z)
}

// Width returns the X extent, or zero if e is empty.
func (e Envelope3D) Width() float64 {
	if e.IsEmpty() {
		return 0
	}
	return e.MaxX - e.MinX
}

// Height returns the Y extent, or zero if e is empty.
func (e Envelope3D) Height() float64 {
	if e.IsEmpty() {
		return 0
	}
	return e.MaxY - e.MinY
}

// Depth returns the Z extent, or zero if e is empty.
func (e Envelope3D) Depth() float64 {
	if e.IsEmpty() {
		return 0
	}
	return e.MaxZ - e.MinZ
}

// Envelope returns the projection of e onto the XY plane.
func (e Envelope3D) Envelope() Envelope {
	if e.IsEmpty() {
		return EmptyEnvelope
	}
	return Envelope{MinX: e.MinX, MaxX: e.MaxX, MinY: e.MinY, MaxY: e.MaxY}
}

// String returns the envelope as "[minx,miny,minz,maxx,maxy,maxz]".
func (e Envelope3D) String() string {
	return formatBounds(e.MinX, e.MinY, e.MinZ, e.MaxX, e.MaxY, e.MaxZ)
}

func formatBounds(v ...float64) string {
	var s strings.Builder
	s.WriteByte('[')
	for i := range v {
		if i > 0 {
			s.WriteByte(',')
		}
		s.WriteString(strconv.FormatFloat(v[i], 'g', -1, 64))
	}
	s.WriteByte(']')
	return s.String()
}

// Envelope returns the two-dimensional bounding box of the geometry,
// which is EmptyEnvelope if the geometry is empty.
func (g *Geometry) Envelope() Envelope {
	e := EmptyEnvelope
	g.eachCoord(func(c *Coord) {
		e.MergeXY(c.X, c.Y)
	})
	return e
}

// Envelope3D returns the three-dimensional bounding box of the
// geometry. The Z bounds of a two-dimensional geometry are zero.
func (g *Geometry) Envelope3D() Envelope3D {
	e := EmptyEnvelope3D
	g.eachCoord(func(c *Coord) {
		e.MergeXYZ(c.X, c.Y, c.Z)
	})
	return e
}
