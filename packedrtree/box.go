// Copyright 2023 The geokit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package packedrtree

import (
	"math"
	"strconv"
	"strings"
)

// Box is a two-dimensional axis-aligned bounding box.
type Box struct {
	XMin float64
	YMin float64
	XMax float64
	YMax float64
}

// EmptyBox is the identity element for Expand: expanding EmptyBox by
// any box yields that box, and no box intersects EmptyBox.
var EmptyBox = Box{
	XMin: math.Inf(1),
	YMin: math.Inf(1),
	XMax: math.Inf(-1),
	YMax: math.Inf(-1),
}

// String returns the box as "[xmin,ymin,xmax,ymax]".
func (b Box) String() string {
	var s strings.Builder
	s.WriteByte('[')
	s.WriteString(strconv.FormatFloat(b.XMin, 'g', -1, 64))
	s.WriteByte(',')
	s.WriteString(strconv.FormatFloat(b.YMin, 'g', -1, 64))
	s.WriteByte(',')
	s.WriteString(strconv.FormatFloat(b.XMax, 'g', -1, 64))
	s.WriteByte(',')
	s.WriteString(strconv.FormatFloat(b.YMax, 'g', -1, 64))
	s.WriteByte(']')
	return s.String()
}

// Width returns the X extent of the box.
func (b *Box) Width() float64 {
	return b.XMax - b.XMin
}

// Height returns the Y extent of the box.
func (b *Box) Height() float64 {
	return b.YMax - b.YMin
}

func (b *Box) midX() float64 {
	return (b.XMin + b.XMax) / 2
}

func (b *Box) midY() float64 {
	return (b.YMin + b.YMax) / 2
}

// Expand enlarges b, if necessary, so that it also covers c.
func (b *Box) Expand(c *Box) {
	if c.XMin < b.XMin {
		b.XMin = c.XMin
	}
	if c.YMin < b.YMin {
		b.YMin = c.YMin
	}
	if c.XMax > b.XMax {
		b.XMax = c.XMax
	}
	if c.YMax > b.YMax {
		b.YMax = c.YMax
	}
}

// ExpandXY enlarges b, if necessary, so that it covers the point (x, y).
func (b *Box) ExpandXY(x, y float64) {
	if x < b.XMin {
		b.XMin = x
	}
	if y < b.YMin {
		b.YMin = y
	}
	if x > b.XMax {
		b.XMax = x
	}
	if y > b.YMax {
		b.YMax = y
	}
}

// Intersects reports whether b and o share at least one point. Boxes
// are closed, so boxes touching along an edge or at a corner intersect.
func (b *Box) Intersects(o *Box) bool {
	return b.XMin <= o.XMax && o.XMin <= b.XMax &&
		b.YMin <= o.YMax && o.YMin <= b.YMax
}
