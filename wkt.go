// Copyright 2023 The geokit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package geokit

import (
	"strconv"
	"strings"

	"github.com/twpayne/go-geom/encoding/wkt"
)

const (
	lineStringTag = "LINESTRING"
	linearRingTag = "LINEARRING"
)

// FromWKT parses an OGC Well-Known Text geometry, for example
// "POINT (1 2)" or "POLYGON Z ((0 0 1, 1 0 1, 1 1 1, 0 0 1))". The
// LINEARRING tag is accepted in addition to the standard types.
// Polygon rings that are unclosed or have fewer than four points are
// accepted as written; IsValid reports them.
// Returns an error wrapping ErrParse if s is not valid WKT.
func FromWKT(s string) (*Geometry, error) {
	s = strings.TrimSpace(s)
	ring := false
	if len(s) >= len(linearRingTag) && strings.EqualFold(s[:len(linearRingTag)], linearRingTag) {
		s = lineStringTag + s[len(linearRingTag):]
		ring = true
	}
	s, counts := padRings(s)
	t, err := wkt.Unmarshal(s)
	if err != nil {
		return nil, kindErr(ErrParse, "WKT: %v", err)
	}
	g, err := fromGeom(t)
	if err != nil {
		return nil, err
	}
	next := 0
	trimRings(g, counts, &next)
	if ring {
		g.typ = LinearRing
	}
	return g, nil
}

// WKT returns the OGC Well-Known Text of the geometry. Three
// dimensional geometries are tagged with Z, as in "POINT Z (1 2 3)".
func (g *Geometry) WKT() string {
	t, err := toGeom(g)
	if err != nil {
		fmtPanic("WKT: %v", err)
	}
	s, err := wkt.Marshal(t)
	if err != nil {
		fmtPanic("WKT: %v", err)
	}
	if g.typ == LinearRing {
		s = linearRingTag + strings.TrimPrefix(s, lineStringTag)
	}
	return s
}

type ringFrame struct {
	open, ring int
}

// padRings repeats the first point of every polygon ring in s that is
// unclosed or shorter than four points until the WKT decoder accepts
// it. It returns the padded text and, for each ring in text order, the
// number of points written or -1 if the ring was left alone.
func padRings(s string) (string, []int) {
	var (
		b       strings.Builder
		counts  []int
		stack   []ringFrame
		depth   int
		pending = -1
	)
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z':
			j := i
			for j < len(s) && (s[j] >= 'A' && s[j] <= 'Z' || s[j] >= 'a' && s[j] <= 'z') {
				j++
			}
			switch strings.ToUpper(s[i:j]) {
			case "POLYGON":
				pending = depth + 2
			case "MULTIPOLYGON":
				pending = depth + 3
			case "EMPTY":
				pending = -1
			case "POINT", "LINESTRING", "MULTIPOINT", "MULTILINESTRING", "GEOMETRYCOLLECTION":
				pending = 0
			}
			b.WriteString(s[i:j])
			i = j - 1
		case c == '(':
			depth++
			if pending >= 0 {
				stack = append(stack, ringFrame{open: depth, ring: pending})
				pending = -1
			}
			end := strings.IndexByte(s[i+1:], ')')
			if len(stack) == 0 || depth != stack[len(stack)-1].ring || end < 0 {
				b.WriteByte(c)
				continue
			}
			body := s[i+1 : i+1+end]
			padded, n := padRing(body)
			counts = append(counts, n)
			b.WriteByte(c)
			b.WriteString(padded)
			i += end
		case c == ')':
			if len(stack) > 0 && depth == stack[len(stack)-1].open {
				stack = stack[:len(stack)-1]
			}
			depth--
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
	return b.String(), counts
}

func padRing(body string) (string, int) {
	points := strings.Split(body, ",")
	first, ok := parseWKTPoint(points[0])
	if !ok {
		return body, -1
	}
	last, ok := parseWKTPoint(points[len(points)-1])
	if !ok {
		return body, -1
	}
	closed := len(first) == len(last)
	for k := 0; closed && k < len(first); k++ {
		closed = first[k] == last[k]
	}
	if closed && len(points) >= 4 {
		return body, -1
	}
	n := len(points)
	p := strings.TrimSpace(points[0])
	if !closed {
		body += ", " + p
		n++
	}
	for ; n < 4; n++ {
		body += ", " + p
	}
	return body, len(points)
}

func parseWKTPoint(s string) ([]float64, bool) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, false
	}
	v := make([]float64, len(fields))
	for i, f := range fields {
		x, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, false
		}
		v[i] = x
	}
	return v, true
}

// trimRings cuts the rings of g back to the point counts recorded by
// padRings, visiting rings in text order.
func trimRings(g *Geometry, counts []int, next *int) {
	switch g.typ {
	case Polygon:
		for _, r := range g.parts {
			if *next < len(counts) && counts[*next] >= 0 && counts[*next] <= len(r.coords) {
				r.coords = r.coords[:counts[*next]]
			}
			*next++
		}
	case MultiPolygon, GeometryCollection:
		for _, p := range g.parts {
			trimRings(p, counts, next)
		}
	}
}
